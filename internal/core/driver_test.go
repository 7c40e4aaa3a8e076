package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStepDriverLimit(t *testing.T) {
	d := &StepDriver{Limit: 25}
	calls := 0

	err := d.Run(context.Background(), func() bool {
		calls++
		return true
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if calls != 25 || d.Steps != 25 {
		t.Errorf("expected 25 steps, got calls=%d Steps=%d", calls, d.Steps)
	}
}

func TestStepDriverStopsWhenStepReturnsFalse(t *testing.T) {
	d := &StepDriver{}
	calls := 0

	err := d.Run(context.Background(), func() bool {
		calls++
		return calls < 7
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if calls != 7 {
		t.Errorf("expected 7 calls, got %d", calls)
	}
}

func TestStepDriverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &StepDriver{Limit: 10}
	err := d.Run(ctx, func() bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if d.Steps != 0 {
		t.Errorf("cancelled driver should not step, got %d", d.Steps)
	}
}

func TestFixedDriver(t *testing.T) {
	d := NewFixedDriver(1000)
	if d.Interval != time.Millisecond {
		t.Fatalf("Interval = %v, expected 1ms", d.Interval)
	}

	calls := 0
	err := d.Run(context.Background(), func() bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestFixedDriverDefaultRate(t *testing.T) {
	d := NewFixedDriver(0)
	if d.Interval != time.Second/60 {
		t.Errorf("Interval = %v, expected 1/60s", d.Interval)
	}
}
