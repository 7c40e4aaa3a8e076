package skyward

import (
	"math/rand"

	"github.com/vovakirdan/skyward/internal/core"
)

// Flap overrides the player's velocity with the upward impulse.
func (w *World) Flap(t Tuning) {
	w.Player.Vel = -t.FlapVelocity
	w.Player.FlapTicks = t.FlapFrames
}

// Advance runs one physics tick: gravity, movement, rotation, obstacle
// advance, spawning and pruning, in that order.
func (w *World) Advance(t Tuning, rng *rand.Rand) {
	p := &w.Player
	p.Vel += t.Gravity
	p.Y = core.ClampF(p.Y+p.Vel, 0, t.Floor())
	p.Rotation = core.ClampF(p.Vel*t.RotationSpeed, t.MinRotation, t.MaxRotation)

	for i := range w.Pipes {
		w.Pipes[i].X -= t.PipeSpeed
	}
	for i := range w.Coins {
		w.Coins[i].X -= t.PipeSpeed
	}

	if t.SpawnRate > 0 && w.Frame%t.SpawnRate == 0 {
		w.spawn(t, rng)
	}

	w.Pipes = PrunePipes(w.Pipes, t)
	w.Coins = PruneCoins(w.Coins, t)
	w.Frame++
}

// spawn appends a pipe at the right edge and, with CoinChance, a coin in its gap.
func (w *World) spawn(t Tuning, rng *rand.Rand) {
	lo, hi := t.GapRange()
	gapY := lo + rng.Float64()*(hi-lo)
	w.Pipes = append(w.Pipes, Pipe{ID: w.newID(), X: t.Viewport.W, GapY: gapY})

	if rng.Float64() < t.CoinChance {
		w.Coins = append(w.Coins, Coin{
			ID: w.newID(),
			X:  t.Viewport.W + t.PipeW/2,
			Y:  gapY + (rng.Float64()-0.5)*t.CoinJitter,
		})
	}
}

// PrunePipes drops pipes whose right edge is left of the playfield.
// A pipe whose right edge is exactly at 0 is kept. Order is preserved.
func PrunePipes(pipes []Pipe, t Tuning) []Pipe {
	kept := pipes[:0]
	for _, p := range pipes {
		if p.Right(t) >= 0 {
			kept = append(kept, p)
		}
	}
	return kept
}

// PruneCoins drops coins whose right edge is left of the playfield.
func PruneCoins(coins []Coin, t Tuning) []Coin {
	kept := coins[:0]
	for _, c := range coins {
		if c.Box(t).Right() >= 0 {
			kept = append(kept, c)
		}
	}
	return kept
}

// InitClouds scatters the decorative clouds across the viewport.
func (w *World) InitClouds(t Tuning, rng *rand.Rand) {
	c := t.Clouds
	w.Clouds = w.Clouds[:0]
	for range c.Count {
		w.Clouds = append(w.Clouds, Cloud{
			X:       rng.Float64() * t.Viewport.W,
			Y:       rng.Float64() * t.Viewport.H,
			Scale:   rng.Float64()*c.ScaleRange + c.MinScale,
			Opacity: rng.Float64()*c.OpacityRange + c.MinOpacity,
			Speed:   rng.Float64()*c.SpeedRange + c.MinSpeed,
		})
	}
}

// AnimateClouds drifts clouds left and wraps them to the right edge.
func (w *World) AnimateClouds(t Tuning, rng *rand.Rand) {
	c := t.Clouds
	for i := range w.Clouds {
		cl := &w.Clouds[i]
		cl.X -= cl.Speed
		if cl.X < -c.Width*cl.Scale {
			cl.X = t.Viewport.W
			cl.Y = rng.Float64() * t.Viewport.H
			cl.Scale = rng.Float64()*c.ScaleRange + c.MinScale
		}
	}
}
