package main

import "github.com/theirongolddev/starledger/cmd"

func main() {
	cmd.Execute()
}
