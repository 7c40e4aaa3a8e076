package scoresync

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyward/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	points  map[string]int
	writes  int
	runs    []storage.ScoreEntry
	failAll error
	block   chan struct{} // when non-nil, UpdatePoints waits for it or ctx
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{points: make(map[string]int)}
}

func (f *fakeStore) GetOrCreateProfile(ctx context.Context, id string) (storage.Profile, error) {
	if f.loadErr != nil {
		return storage.Profile{}, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return storage.Profile{ID: id, Points: f.points[id]}, nil
}

func (f *fakeStore) UpdatePoints(ctx context.Context, id string, points int) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.failAll != nil {
		return f.failAll
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[id] = points
	f.writes++
	return nil
}

func (f *fakeStore) SaveScore(ctx context.Context, e storage.ScoreEntry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, e)
	return int64(len(f.runs)), nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestSyncerWritesLatestBalance(t *testing.T) {
	store := newFakeStore()
	s := New(store, DefaultConfig(), quietLogger())
	s.Start()

	for i := 1; i <= 200; i++ {
		s.Enqueue("user_1", i*5)
	}
	s.Stop()

	if got := store.points["user_1"]; got != 1000 {
		t.Errorf("stored points = %d, want 1000", got)
	}
	if store.writes > 200 || store.writes == 0 {
		t.Errorf("writes = %d", store.writes)
	}
}

func TestEnqueueDoesNotBlockOnSlowStore(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	s := New(store, Config{WriteTimeout: time.Minute}, quietLogger())
	s.Start()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			s.Enqueue("user_1", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked behind a slow store")
	}

	close(store.block)
	s.Stop()
	if got := store.points["user_1"]; got != 9999 {
		t.Errorf("stored points = %d, want 9999", got)
	}
}

func TestSyncerReportsFailures(t *testing.T) {
	store := newFakeStore()
	store.failAll = errors.New("permission denied")
	s := New(store, DefaultConfig(), quietLogger())
	s.Start()
	defer s.Stop()

	s.Enqueue("user_1", 15)

	select {
	case f := <-s.Failures():
		if f.ProfileID != "user_1" || f.Points != 15 || !errors.Is(f.Err, store.failAll) {
			t.Errorf("failure = %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no failure reported")
	}
}

func TestSyncerWriteTimeout(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	s := New(store, Config{WriteTimeout: 20 * time.Millisecond}, quietLogger())
	s.Start()
	defer func() {
		close(store.block)
		s.Stop()
	}()

	s.Enqueue("user_1", 5)
	select {
	case f := <-s.Failures():
		if !errors.Is(f.Err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", f.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("write did not time out")
	}
}

func TestRecordRun(t *testing.T) {
	store := newFakeStore()
	s := New(store, DefaultConfig(), quietLogger())
	s.Start()
	s.RecordRun(storage.ScoreEntry{ProfileID: "user_1", Score: 35, Pipes: 5, Coins: 1})
	s.RecordRun(storage.ScoreEntry{Score: 10}) // no profile, ignored
	s.Stop()

	if len(store.runs) != 1 || store.runs[0].Score != 35 {
		t.Errorf("runs = %+v", store.runs)
	}
}

func TestStopWithoutStartFlushes(t *testing.T) {
	store := newFakeStore()
	s := New(store, DefaultConfig(), quietLogger())
	s.Enqueue("user_1", 40)
	s.Stop()
	if store.points["user_1"] != 40 {
		t.Errorf("points = %d, want 40", store.points["user_1"])
	}
}

func TestLoadDegradesToLocal(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("connection refused")

	p, err := LoadProfile(context.Background(), store, "user_1", time.Second)
	if err == nil {
		t.Fatal("expected error")
	}
	if p.ID != "user_1" || p.Points != 0 {
		t.Errorf("fallback profile = %+v", p)
	}

	if _, err := LoadProfile(context.Background(), nil, "user_1", time.Second); err == nil {
		t.Error("expected error for nil store")
	}
	if _, err := LoadProfile(context.Background(), newFakeStore(), "", time.Second); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSyncerWithSQLite(t *testing.T) {
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "sync.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s := New(store, DefaultConfig(), quietLogger())
	ctx := context.Background()
	p, err := s.Load(ctx, "user_sql")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Points != 0 {
		t.Errorf("new profile points = %d", p.Points)
	}

	s.Start()
	s.Enqueue("user_sql", 10)
	s.Enqueue("user_sql", 25)
	s.Stop()

	p, err = store.Profile(ctx, "user_sql")
	if err != nil {
		t.Fatal(err)
	}
	if p.Points != 25 {
		t.Errorf("points = %d, want 25", p.Points)
	}
}
