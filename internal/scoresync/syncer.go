// Package scoresync mirrors the in-memory balance to the profile store
// without blocking the game loop. The game enqueues absolute balances; a
// single background worker coalesces them per profile and writes the
// latest one. Failed writes are reported on a channel and never retried:
// the in-memory balance stays authoritative for the session.
package scoresync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyward/internal/storage"
)

// ProfileStore is the persistence collaborator.
type ProfileStore interface {
	GetOrCreateProfile(ctx context.Context, id string) (storage.Profile, error)
	UpdatePoints(ctx context.Context, id string, points int) error
	SaveScore(ctx context.Context, e storage.ScoreEntry) (int64, error)
}

// Config holds timeouts for store calls.
type Config struct {
	LoadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LoadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Failure describes a write that did not reach the store.
type Failure struct {
	ProfileID string
	Points    int
	Err       error
}

func (f Failure) Error() string {
	return fmt.Sprintf("sync %s to %d points: %v", f.ProfileID, f.Points, f.Err)
}

// Syncer owns the write queue.
type Syncer struct {
	store  ProfileStore
	cfg    Config
	logger *log.Logger

	mu      sync.Mutex
	pending map[string]int // profile id -> latest balance
	runs    []storage.ScoreEntry

	wake     chan struct{}
	failures chan Failure
	done     chan struct{}
	stopped  chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a syncer. Call Start before enqueueing.
func New(store ProfileStore, cfg Config, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		pending:  make(map[string]int),
		wake:     make(chan struct{}, 1),
		failures: make(chan Failure, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins background processing.
func (s *Syncer) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Stop flushes queued writes and waits for the worker to exit.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.Start() // a never-started syncer still flushes
	<-s.stopped
}

// Failures delivers write failures. Failures are dropped when nobody reads
// and the buffer is full.
func (s *Syncer) Failures() <-chan Failure {
	return s.failures
}

// Enqueue schedules a write of the absolute balance for id. It never blocks.
func (s *Syncer) Enqueue(id string, points int) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.pending[id] = points
	s.mu.Unlock()
	s.signal()
}

// RecordRun schedules a run-history insert. It never blocks.
func (s *Syncer) RecordRun(e storage.ScoreEntry) {
	if e.ProfileID == "" {
		return
	}
	s.mu.Lock()
	s.runs = append(s.runs, e)
	s.mu.Unlock()
	s.signal()
}

func (s *Syncer) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Syncer) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.wake:
			s.drain()
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain writes everything queued so far.
func (s *Syncer) drain() {
	for {
		s.mu.Lock()
		pending := s.pending
		runs := s.runs
		s.pending = make(map[string]int)
		s.runs = nil
		s.mu.Unlock()

		if len(pending) == 0 && len(runs) == 0 {
			return
		}
		for id, points := range pending {
			s.write(id, points)
		}
		for _, e := range runs {
			s.saveRun(e)
		}
	}
}

func (s *Syncer) write(id string, points int) {
	ctx, cancel := s.writeContext()
	defer cancel()

	if err := s.store.UpdatePoints(ctx, id, points); err != nil {
		s.report(Failure{ProfileID: id, Points: points, Err: err})
		return
	}
	s.logger.Debug("Synced points", "profile", id, "points", points)
}

func (s *Syncer) saveRun(e storage.ScoreEntry) {
	ctx, cancel := s.writeContext()
	defer cancel()

	if _, err := s.store.SaveScore(ctx, e); err != nil {
		s.logger.Warn("Failed to save run", "profile", e.ProfileID, "score", e.Score, "error", err)
	}
}

func (s *Syncer) writeContext() (context.Context, context.CancelFunc) {
	if s.cfg.WriteTimeout > 0 {
		return context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	}
	return context.WithCancel(context.Background())
}

func (s *Syncer) report(f Failure) {
	s.logger.Warn("Failed to sync points", "profile", f.ProfileID, "points", f.Points, "error", f.Err)
	select {
	case s.failures <- f:
	default:
	}
}

// Load resolves the profile for id within the load timeout. On failure it
// returns a local profile with zero points alongside the error, so callers
// can continue offline.
func (s *Syncer) Load(ctx context.Context, id string) (storage.Profile, error) {
	return LoadProfile(ctx, s.store, id, s.cfg.LoadTimeout)
}

// LoadProfile is Load without a Syncer.
func LoadProfile(ctx context.Context, store ProfileStore, id string, timeout time.Duration) (storage.Profile, error) {
	local := storage.Profile{ID: id}
	if id == "" {
		return local, fmt.Errorf("scoresync: no profile id")
	}
	if store == nil {
		return local, fmt.Errorf("scoresync: no profile store")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	p, err := store.GetOrCreateProfile(ctx, id)
	if err != nil {
		return local, fmt.Errorf("scoresync: load profile: %w", err)
	}
	return p, nil
}
