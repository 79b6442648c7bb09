// Package daemon provides the long-running reminder service. It watches the
// ledger document, serves a small status API, and fires spending reminders on
// a cron schedule when the day has not been logged yet.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/starledger/internal/ledger"
	"github.com/theirongolddev/starledger/internal/model"
	"github.com/theirongolddev/starledger/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DataDir      string
	Addr         string
	Schedule     []string // cron expressions for reminder checks
	Interval     time.Duration
	EventsBuffer int
	Currency     string
}

// Snapshot is a compact ledger state for status/event payloads.
type Snapshot struct {
	At             time.Time        `json:"at"`
	Score          int              `json:"score"`
	Lives          int              `json:"lives"`
	Streak         int              `json:"streak"`
	AvailableStars int              `json:"available_stars"`
	TodayBudget    int              `json:"today_budget"`
	TodayLogged    bool             `json:"today_logged"`
	TodaySpent     int              `json:"today_spent"`
	Mode           model.BudgetMode `json:"mode"`
	GameOver       bool             `json:"game_over"`
	WishlistOpen   int              `json:"wishlist_open"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Score int `json:"score"`
	Stars int `json:"stars"`
	Lives int `json:"lives"`
}

func (d Delta) isZero() bool {
	return d.Score == 0 && d.Stars == 0 && d.Lives == 0
}

// Event is emitted when the ledger changes or a reminder fires.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
	Message   string    `json:"message,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DataDir         string    `json:"data_dir"`
	Schedule        []string  `json:"schedule"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *logrus.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, log *logrus.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7713"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = store.DefaultDir()
	}
	if log == nil {
		log = logrus.New()
	}

	return &Service{
		cfg:       cfg,
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints, the reminder scheduler, and document polling
// until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	scheduler := cron.New()
	for _, expr := range s.cfg.Schedule {
		if _, err := scheduler.AddFunc(expr, s.remindOnce); err != nil {
			return fmt.Errorf("invalid reminder schedule %q: %w", expr, err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	s.log.WithFields(logrus.Fields{
		"addr":     s.cfg.Addr,
		"data_dir": s.cfg.DataDir,
		"schedule": s.cfg.Schedule,
	}).Info("daemon started")

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	state, err := store.Load(s.cfg.DataDir, now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.WithError(err).Warn("poll failed")
		return
	}

	snap := snapshotFromState(&state, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "ledger_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// remindOnce runs at each cron fire. Reminders are only worth sending while
// the day is unlogged and the game is still on.
func (s *Service) remindOnce() {
	s.pollOnce()

	s.mu.RLock()
	snap := s.snapshot
	has := s.hasSnapshot
	s.mu.RUnlock()

	if !has {
		return
	}

	msg := ReminderMessage(snap, s.cfg.Currency)
	if msg == "" {
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "reminder",
		Timestamp: now,
		Snapshot:  snap,
		Message:   msg,
	}
	s.mu.Unlock()

	s.log.WithField("message", msg).Info("reminder fired")
	s.publishEvent(ev)
}

// ReminderMessage composes the reminder text for a snapshot, or "" when no
// reminder is due.
func ReminderMessage(snap Snapshot, currency string) string {
	if snap.GameOver {
		return "Game over. Run `starledger restart` to start a fresh month."
	}
	if snap.TodayLogged {
		return ""
	}
	if currency == "" {
		currency = "€"
	}
	msg := fmt.Sprintf("Don't forget to log today's spending. Budget left: %s%d.",
		currency, snap.TodayBudget)
	if snap.Lives == 1 {
		msg += " One life left, careful out there."
	}
	return msg
}

func snapshotFromState(state *model.State, now time.Time) Snapshot {
	l := ledger.New(state, ledger.WithClock(func() time.Time { return now }))

	open := 0
	for _, w := range state.Wishlist {
		if !w.Redeemed {
			open++
		}
	}

	snap := Snapshot{
		At:             now,
		Score:          state.Score,
		Lives:          state.Lives,
		Streak:         state.Streak,
		AvailableStars: state.AvailableStars,
		Mode:           state.BudgetMode,
		GameOver:       state.GameOver(),
		WishlistOpen:   open,
	}

	snap.TodayBudget = l.TodayBudget()
	if entry := state.TodayEntry(now); entry != nil {
		snap.TodayLogged = true
		snap.TodaySpent = entry.Spent
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Score: curr.Score - prev.Score,
		Stars: curr.AvailableStars - prev.AvailableStars,
		Lives: curr.Lives - prev.Lives,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DataDir:         s.cfg.DataDir,
		Schedule:        s.cfg.Schedule,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
