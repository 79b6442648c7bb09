package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all starledger configuration.
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Notifications NotificationsConfig `toml:"notifications"`
	Appearance    AppearanceConfig    `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir       string `toml:"data_dir,omitempty"`
	Currency      string `toml:"currency"`
	DefaultBudget int    `toml:"default_budget"`
}

// NotificationsConfig holds reminder daemon settings. Schedules are cron
// expressions evaluated in local time.
type NotificationsConfig struct {
	Enabled  bool     `toml:"enabled"`
	Schedule []string `toml:"schedule,omitempty"`
	Addr     string   `toml:"addr,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Env holds daemon overrides read from the environment, STARLEDGER_ prefixed.
// These win over the config file so a service unit can pin its own address.
type Env struct {
	Addr     string   `envconfig:"ADDR"`
	Schedule []string `envconfig:"SCHEDULE"`
	DataDir  string   `envconfig:"DATA_DIR"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:      "€",
			DefaultBudget: 50,
		},
		Notifications: NotificationsConfig{
			Enabled:  true,
			Schedule: []string{"0 20 * * *"},
			Addr:     "127.0.0.1:7713",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "starledger")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "starledger")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// ApplyEnv layers STARLEDGER_* environment overrides onto cfg.
func ApplyEnv(cfg Config) (Config, error) {
	var env Env
	if err := envconfig.Process("starledger", &env); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	if env.Addr != "" {
		cfg.Notifications.Addr = env.Addr
	}
	if len(env.Schedule) > 0 {
		cfg.Notifications.Schedule = env.Schedule
	}
	if env.DataDir != "" {
		cfg.General.DataDir = env.DataDir
	}
	return cfg, nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
