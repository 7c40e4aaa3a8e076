package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/economy"
	"github.com/vovakirdan/skyward/internal/games/skyward"
)

func newSimGame(t *testing.T, seed int64) *skyward.Game {
	t.Helper()
	g := skyward.New(config.DefaultSkywardConfig(), 60, economy.NewLedger(0), rand.New(rand.NewSource(seed)))
	g.Resize(core.Viewport{W: 384, H: 512})
	if err := g.ProfileLoaded(0); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSimulateIdleCrashes(t *testing.T) {
	g := newSimGame(t, 1)
	report, err := simulate(context.Background(), g, &core.StepDriver{Limit: 1000}, 1000, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Phase != skyward.PhaseTerminated {
		t.Errorf("phase = %v, want terminated", report.Phase)
	}
	if report.Events[skyward.EventCrash] != 1 || report.Events[skyward.EventStart] != 1 {
		t.Errorf("events = %v", report.Events)
	}
	if report.Ticks >= 1000 {
		t.Errorf("ticks = %d", report.Ticks)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	run := func() simReport {
		g := newSimGame(t, 99)
		r, err := simulate(context.Background(), g, &core.StepDriver{}, 3000, true)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	a, b := run(), run()
	if a.Ticks != b.Ticks || a.Run != b.Run || a.Phase != b.Phase {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
}

func TestSimulateRespectsTickLimit(t *testing.T) {
	g := newSimGame(t, 3)
	report, err := simulate(context.Background(), g, &core.StepDriver{}, 10, true)
	if err != nil {
		t.Fatal(err)
	}
	if report.Ticks != 10 {
		t.Errorf("ticks = %d, want 10", report.Ticks)
	}
}

func TestSimulateCancelled(t *testing.T) {
	g := newSimGame(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := simulate(ctx, g, &core.StepDriver{}, 10, true)
	if err == nil {
		t.Error("expected context error")
	}
	if report.Ticks != 0 {
		t.Errorf("ticks = %d", report.Ticks)
	}
}
