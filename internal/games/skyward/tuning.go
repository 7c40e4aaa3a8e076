package skyward

import (
	"math"

	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/core"
)

// flapVisualSeconds is how long the wing glyph stays raised after a flap.
const flapVisualSeconds = 0.15

// Tuning holds the physical constants for one viewport. Every length and
// speed is derived from the viewport, so it must be rebuilt on resize.
// Speeds are per tick.
type Tuning struct {
	Viewport core.Viewport

	Gravity       float64
	FlapVelocity  float64 // magnitude; a flap sets velocity to -FlapVelocity
	RotationSpeed float64
	MinRotation   float64
	MaxRotation   float64

	PlayerW float64
	PlayerH float64
	PlayerX float64 // horizontal center of the player hitbox
	StartY  float64

	PipeW     float64
	PipeGap   float64
	PipeSpeed float64
	SpawnRate int
	Margin    float64

	CoinSize   float64
	CoinChance float64
	CoinJitter float64 // total spread around the gap center

	Clouds config.CloudsConfig

	PointsPerPipe int
	PointsPerCoin int

	FlapFrames int
}

// NewTuning derives the constants for vp.
func NewTuning(cfg config.SkywardConfig, vp core.Viewport, tickRate int) Tuning {
	if tickRate <= 0 {
		tickRate = 60
	}
	return Tuning{
		Viewport: vp,

		Gravity:       cfg.Physics.GravityFactor * vp.H,
		FlapVelocity:  cfg.Physics.FlapStrengthFactor * vp.H,
		RotationSpeed: cfg.Physics.RotationSpeed,
		MinRotation:   cfg.Physics.MinRotation,
		MaxRotation:   cfg.Physics.MaxRotation,

		PlayerW: cfg.Player.WidthRatio * vp.W,
		PlayerH: cfg.Player.HeightRatio * vp.H,
		PlayerX: cfg.Player.XRatio * vp.W,
		StartY:  cfg.Player.StartYRatio * vp.H,

		PipeW:     cfg.Pipes.WidthRatio * vp.W,
		PipeGap:   cfg.Pipes.GapRatio * vp.H,
		PipeSpeed: cfg.Pipes.SpeedFactor * vp.W,
		SpawnRate: cfg.Pipes.SpawnRate,
		Margin:    cfg.Pipes.MarginRatio * vp.H,

		CoinSize:   cfg.Coins.SizeRatio * vp.W,
		CoinChance: cfg.Coins.SpawnChance,
		CoinJitter: cfg.Coins.Jitter * cfg.Pipes.GapRatio * vp.H,

		Clouds: cfg.Clouds,

		PointsPerPipe: cfg.Economy.PointsPerPipe,
		PointsPerCoin: cfg.Economy.PointsPerCoin,

		FlapFrames: int(math.Round(flapVisualSeconds * float64(tickRate))),
	}
}

// PlayerBox returns the player hitbox at vertical position y.
func (t Tuning) PlayerBox(y float64) core.Box {
	return core.NewBox(t.PlayerX-t.PlayerW/2, y, t.PlayerW, t.PlayerH)
}

// GapRange returns the inclusive bounds for a pipe gap center.
func (t Tuning) GapRange() (lo, hi float64) {
	lo = t.PipeGap/2 + t.Margin
	hi = t.Viewport.H - t.PipeGap/2 - t.Margin
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Floor returns the largest legal player position.
func (t Tuning) Floor() float64 {
	return t.Viewport.H - t.PlayerH
}
