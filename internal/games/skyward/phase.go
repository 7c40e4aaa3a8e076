package skyward

import (
	"errors"
	"fmt"
)

// Phase is the coarse game lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseIdle
	PhaseRunning
	PhaseTerminated
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a lifecycle transition is not
// allowed from the current phase.
var ErrInvalidTransition = errors.New("skyward: invalid phase transition")

// transitions lists the allowed edges of the lifecycle.
var transitions = map[Phase][]Phase{
	PhaseLoading:    {PhaseIdle},
	PhaseIdle:       {PhaseRunning},
	PhaseRunning:    {PhaseTerminated},
	PhaseTerminated: {PhaseIdle},
}

func canTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

func (g *Game) transition(to Phase) error {
	if !canTransition(g.phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.phase, to)
	}
	g.phase = to
	return nil
}

// ProfileLoaded leaves the loading phase with the resolved balance.
// Callers pass 0 when the profile could not be loaded.
func (g *Game) ProfileLoaded(points int) error {
	if err := g.transition(PhaseIdle); err != nil {
		return err
	}
	g.ledger.Reset(points)
	g.world.resetEntities(g.tuning)
	return nil
}

// Start enters the running phase. Entities and run counters are reset;
// the cumulative balance is kept.
func (g *Game) Start() error {
	if err := g.transition(PhaseRunning); err != nil {
		return err
	}
	g.world.resetEntities(g.tuning)
	g.run = RunStats{}
	return nil
}

// Restart returns from the terminated phase to idle.
func (g *Game) Restart() error {
	if err := g.transition(PhaseIdle); err != nil {
		return err
	}
	g.world.resetEntities(g.tuning)
	return nil
}

// terminate freezes the world for display.
func (g *Game) terminate() error {
	return g.transition(PhaseTerminated)
}
