// Package skyward implements the flying arcade simulation: a player falls
// under gravity, flaps through gaps between scrolling pipes and collects
// coins. Every point change goes through an economy.Ledger so gameplay and
// redemption share one mutation path.
package skyward

import (
	"math/rand"

	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/core"
	"github.com/vovakirdan/skyward/internal/economy"
)

// Event is a notable occurrence during a tick, used for audio cues and HUD.
type Event int

const (
	EventStart Event = iota
	EventFlap
	EventPipe
	EventCoin
	EventCrash
	EventRestart
)

// String returns a human-readable event name.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventFlap:
		return "flap"
	case EventPipe:
		return "pipe"
	case EventCoin:
		return "coin"
	case EventCrash:
		return "crash"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// StepResult is returned by Step.
type StepResult struct {
	Phase   Phase
	Events  []Event
	Changes []economy.Change // ledger mutations made this tick, to be mirrored
}

// RunStats counts what happened since the last start.
type RunStats struct {
	Ticks  int
	Pipes  int
	Coins  int
	Points int
}

// Game is the simulation context. It owns the world, the random source and
// the phase; it shares the ledger with the redemption flow.
type Game struct {
	cfg      config.SkywardConfig
	tickRate int
	tuning   Tuning
	laid     core.Viewport // last non-empty viewport the world was laid out in
	rng      *rand.Rand
	ledger   *economy.Ledger
	phase    Phase
	world    World
	run      RunStats
	tick     uint64
}

// New creates a game in the loading phase. The viewport is empty until
// Resize is called, and Step does nothing until then.
func New(cfg config.SkywardConfig, tickRate int, ledger *economy.Ledger, rng *rand.Rand) *Game {
	if ledger == nil {
		ledger = economy.NewLedger(0)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	g := &Game{
		cfg:      cfg,
		tickRate: tickRate,
		rng:      rng,
		ledger:   ledger,
		phase:    PhaseLoading,
	}
	g.tuning = NewTuning(cfg, core.Viewport{}, tickRate)
	return g
}

// Resize recomputes the tuning for a new viewport and rescales entities
// so the scene keeps its proportions.
func (g *Game) Resize(vp core.Viewport) {
	g.tuning = NewTuning(g.cfg, vp, g.tickRate)
	if vp.Empty() {
		return
	}
	old := g.laid
	g.laid = vp
	if old.Empty() {
		g.world.InitClouds(g.tuning, g.rng)
		g.world.Player.Y = g.tuning.StartY
		return
	}
	g.world.scale(vp.W/old.W, vp.H/old.H)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) StepResult {
	res := StepResult{Phase: g.phase}
	if g.tuning.Viewport.Empty() {
		return res
	}
	g.tick++
	if g.world.Player.FlapTicks > 0 {
		g.world.Player.FlapTicks--
	}

	switch g.phase {
	case PhaseLoading:
		return res

	case PhaseIdle:
		g.world.AnimateClouds(g.tuning, g.rng)
		if in.Has(core.ActionFlap) || in.Has(core.ActionStart) {
			if err := g.Start(); err == nil {
				res.Events = append(res.Events, EventStart)
				g.world.Flap(g.tuning)
				res.Events = append(res.Events, EventFlap)
				g.runTick(&res)
			}
		}

	case PhaseRunning:
		g.world.AnimateClouds(g.tuning, g.rng)
		if in.Has(core.ActionFlap) {
			g.world.Flap(g.tuning)
			res.Events = append(res.Events, EventFlap)
		}
		g.runTick(&res)

	case PhaseTerminated:
		g.world.AnimateClouds(g.tuning, g.rng)
		if in.Has(core.ActionRestart) {
			if err := g.Restart(); err == nil {
				res.Events = append(res.Events, EventRestart)
			}
		}
	}

	res.Phase = g.phase
	return res
}

// runTick performs physics, collision and scoring for one running tick.
func (g *Game) runTick(res *StepResult) {
	g.world.Advance(g.tuning, g.rng)
	g.run.Ticks++

	out := g.world.Collide(g.tuning)
	if out.Passed != nil {
		g.award(res, g.tuning.PointsPerPipe, economy.ReasonPipe)
		g.run.Pipes++
		res.Events = append(res.Events, EventPipe)
	}
	for range out.Coins {
		g.award(res, g.tuning.PointsPerCoin, economy.ReasonCoin)
		g.run.Coins++
		res.Events = append(res.Events, EventCoin)
	}
	if out.Crashed {
		if err := g.terminate(); err == nil {
			res.Events = append(res.Events, EventCrash)
		}
	}
}

func (g *Game) award(res *StepResult, points int, reason economy.Reason) {
	c := g.ledger.Apply(points, reason)
	g.run.Points += c.Delta
	res.Changes = append(res.Changes, c)
}

// Phase returns the current lifecycle phase.
func (g *Game) Phase() Phase { return g.phase }

// Tuning returns the constants for the current viewport.
func (g *Game) Tuning() Tuning { return g.tuning }

// Ledger returns the shared points ledger.
func (g *Game) Ledger() *economy.Ledger { return g.ledger }

// Run returns the statistics of the current or last run.
func (g *Game) Run() RunStats { return g.run }

// World returns a copy of the entity store.
func (g *Game) World() World { return g.world.clone() }
