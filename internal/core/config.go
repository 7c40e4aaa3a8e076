package core

// Nominal size of one terminal cell in simulation pixels. The simulation is
// specified in pixels; the terminal platform projects pixels onto cells.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	CellW    int   // Pixels per cell horizontally
	CellH    int   // Pixels per cell vertically
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// Viewport is the playfield size in simulation pixels.
type Viewport struct {
	W, H float64
}

// Empty reports whether the viewport has no area. The simulation does not
// advance on an empty viewport.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  48,
		ScreenH:  32,
		CellW:    DefaultCellW,
		CellH:    DefaultCellH,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Viewport returns the pixel viewport for the configured screen.
func (c RuntimeConfig) Viewport() Viewport {
	cw, ch := c.CellW, c.CellH
	if cw <= 0 {
		cw = DefaultCellW
	}
	if ch <= 0 {
		ch = DefaultCellH
	}
	return Viewport{W: float64(c.ScreenW * cw), H: float64(c.ScreenH * ch)}
}
