package core

import (
	"context"
	"time"
)

// Driver invokes a step function repeatedly. It abstracts the frame
// scheduler so the simulation can run behind a real-time clock, a terminal
// UI loop, or a test harness. step returns false to stop the driver.
type Driver interface {
	Run(ctx context.Context, step func() bool) error
}

// FixedDriver calls step at a fixed rate using a ticker.
type FixedDriver struct {
	Interval time.Duration
}

// NewFixedDriver creates a driver that ticks tickRate times per second.
func NewFixedDriver(tickRate int) *FixedDriver {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FixedDriver{Interval: time.Second / time.Duration(tickRate)}
}

// Run blocks until step returns false or ctx is cancelled.
func (d *FixedDriver) Run(ctx context.Context, step func() bool) error {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !step() {
				return nil
			}
		}
	}
}

// StepDriver calls step back to back, at most Limit times (0 = unlimited).
// Used for headless simulation and tests.
type StepDriver struct {
	Limit int
	Steps int // Number of steps executed by the last Run
}

// Run blocks until step returns false, the limit is reached, or ctx is cancelled.
func (d *StepDriver) Run(ctx context.Context, step func() bool) error {
	d.Steps = 0
	for d.Limit == 0 || d.Steps < d.Limit {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Steps++
		if !step() {
			return nil
		}
	}
	return nil
}
