package skyward

import "github.com/vovakirdan/skyward/internal/core"

// Player is the single long-lived entity controlled by the user.
// Its horizontal position is fixed by Tuning.PlayerX.
type Player struct {
	Y         float64 // top of hitbox
	Vel       float64 // px per tick, positive is down
	Rotation  float64 // degrees, derived from Vel
	FlapTicks int     // remaining ticks of the raised-wing glyph
}

// Pipe is an obstacle pair with a passable gap.
type Pipe struct {
	ID     int
	X      float64 // left edge
	GapY   float64 // gap center
	Scored bool
}

// Right returns the pipe's right edge.
func (p Pipe) Right(t Tuning) float64 {
	return p.X + t.PipeW
}

// GapTop returns the top edge of the gap.
func (p Pipe) GapTop(t Tuning) float64 {
	return p.GapY - t.PipeGap/2
}

// GapBottom returns the bottom edge of the gap.
func (p Pipe) GapBottom(t Tuning) float64 {
	return p.GapY + t.PipeGap/2
}

// Coin is a collectible positioned inside a pipe's gap.
type Coin struct {
	ID   int
	X, Y float64 // center
}

// Box returns the coin hitbox.
func (c Coin) Box(t Tuning) core.Box {
	return core.CenteredBox(c.X, c.Y, t.CoinSize, t.CoinSize)
}

// Cloud is purely decorative.
type Cloud struct {
	X, Y    float64
	Scale   float64
	Opacity float64
	Speed   float64
}

// World is the mutable entity store. Only Game.Step mutates it.
type World struct {
	Player Player
	Pipes  []Pipe
	Coins  []Coin
	Clouds []Cloud
	Frame  int // ticks since entering running
	nextID int
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// resetEntities puts the player at the start and clears obstacles and coins.
// Clouds are kept.
func (w *World) resetEntities(t Tuning) {
	w.Player = Player{Y: t.StartY}
	w.Pipes = w.Pipes[:0]
	w.Coins = w.Coins[:0]
	w.Frame = 0
}

// scale rescales positions when the viewport changes size.
func (w *World) scale(sx, sy float64) {
	w.Player.Y *= sy
	w.Player.Vel *= sy
	for i := range w.Pipes {
		w.Pipes[i].X *= sx
		w.Pipes[i].GapY *= sy
	}
	for i := range w.Coins {
		w.Coins[i].X *= sx
		w.Coins[i].Y *= sy
	}
	for i := range w.Clouds {
		w.Clouds[i].X *= sx
		w.Clouds[i].Y *= sy
	}
}

// clone returns a deep copy.
func (w World) clone() World {
	out := w
	out.Pipes = append([]Pipe(nil), w.Pipes...)
	out.Coins = append([]Coin(nil), w.Coins...)
	out.Clouds = append([]Cloud(nil), w.Clouds...)
	return out
}
