package skyward

import "github.com/vovakirdan/skyward/internal/core"

// Autopilot flaps toward the gap of the next pipe ahead of the player.
// It is used by the headless simulator and by tests.
type Autopilot struct{}

// Decide returns the input for the next tick.
func (Autopilot) Decide(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	switch g.Phase() {
	case PhaseIdle:
		in.Set(core.ActionFlap)
		return in
	case PhaseRunning:
	default:
		return in
	}

	t := g.Tuning()
	p := g.world.Player
	target := t.Viewport.H / 2
	for _, pipe := range g.world.Pipes {
		if pipe.Right(t) >= t.PlayerX-t.PlayerW/2 {
			target = pipe.GapY
			break
		}
	}

	// Flap when the player's center would sink below the target next tick.
	next := p.Y + t.PlayerH/2 + p.Vel + t.Gravity
	if next > target+t.PipeGap/8 && p.Vel >= 0 {
		in.Set(core.ActionFlap)
	}
	return in
}
