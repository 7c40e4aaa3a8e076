// Package config provides YAML-based configuration loading for skyward.
// Simulation tunables are expressed as ratios of the viewport so the game is
// resolution independent; deployment values and secrets come from the
// environment.
package config

import (
	"fmt"
	"time"
)

// SkywardConfig contains all configuration for the game and its services.
type SkywardConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Pipes    PipesConfig    `yaml:"pipes"`
	Coins    CoinsConfig    `yaml:"coins"`
	Clouds   CloudsConfig   `yaml:"clouds"`
	Economy  EconomyConfig  `yaml:"economy"`
	Sync     SyncConfig     `yaml:"sync"`
	Relay    RelayConfig    `yaml:"relay"`
	Storage  StorageConfig  `yaml:"storage"`
	Identity IdentityConfig `yaml:"identity"`
	Audio    AudioConfig    `yaml:"audio"`
}

// PhysicsConfig defines the player's vertical motion.
type PhysicsConfig struct {
	GravityFactor      float64 `yaml:"gravity_factor"`       // × viewport height, per tick
	FlapStrengthFactor float64 `yaml:"flap_strength_factor"` // × viewport height
	RotationSpeed      float64 `yaml:"rotation_speed"`       // degrees per px/tick of velocity
	MinRotation        float64 `yaml:"min_rotation"`
	MaxRotation        float64 `yaml:"max_rotation"`
}

// PlayerConfig defines the player hitbox and start position.
type PlayerConfig struct {
	WidthRatio  float64 `yaml:"width_ratio"`   // × viewport width
	HeightRatio float64 `yaml:"height_ratio"`  // × viewport height
	XRatio      float64 `yaml:"x_ratio"`       // × viewport width, hitbox center
	StartYRatio float64 `yaml:"start_y_ratio"` // × viewport height
}

// PipesConfig defines obstacle size, speed and cadence.
type PipesConfig struct {
	WidthRatio  float64 `yaml:"width_ratio"`  // × viewport width
	GapRatio    float64 `yaml:"gap_ratio"`    // × viewport height
	SpeedFactor float64 `yaml:"speed_factor"` // × viewport width, per tick
	SpawnRate   int     `yaml:"spawn_rate"`   // ticks between spawns
	MarginRatio float64 `yaml:"margin_ratio"` // × viewport height, kept clear above and below the gap
}

// CoinsConfig defines collectible size and spawn odds.
type CoinsConfig struct {
	SizeRatio   float64 `yaml:"size_ratio"`   // × viewport width
	SpawnChance float64 `yaml:"spawn_chance"` // probability per pipe spawn
	Jitter      float64 `yaml:"jitter"`       // × gap height, spread around the gap center
}

// CloudsConfig defines the decorative background.
type CloudsConfig struct {
	Count        int     `yaml:"count"`
	Width        float64 `yaml:"width"` // sprite width in px at scale 1
	MinScale     float64 `yaml:"min_scale"`
	ScaleRange   float64 `yaml:"scale_range"`
	MinOpacity   float64 `yaml:"min_opacity"`
	OpacityRange float64 `yaml:"opacity_range"`
	MinSpeed     float64 `yaml:"min_speed"`
	SpeedRange   float64 `yaml:"speed_range"`
}

// EconomyConfig defines the points policy.
type EconomyConfig struct {
	PointsPerPipe   int           `yaml:"points_per_pipe"`
	PointsPerCoin   int           `yaml:"points_per_coin"`
	RedeemThreshold int           `yaml:"redeem_threshold"`
	RewardLabel     string        `yaml:"reward_label"`
	PhonePattern    string        `yaml:"phone_pattern"`
	BonusPoints     int           `yaml:"bonus_points"`
	BonusCooldown   time.Duration `yaml:"bonus_cooldown"`
	AppName         string        `yaml:"app_name"`
}

// SyncConfig defines timeouts for the persistence collaborator.
type SyncConfig struct {
	LoadTimeout  time.Duration `yaml:"load_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RelayConfig selects and configures the redemption notification channel.
type RelayConfig struct {
	Backend  string         `yaml:"backend"` // "telegram", "ses" or "none"
	Timeout  time.Duration  `yaml:"timeout"`
	Telegram TelegramConfig `yaml:"telegram"`
	SES      SESConfig      `yaml:"ses"`
}

// TelegramConfig configures the Telegram Bot API relay.
type TelegramConfig struct {
	APIURL    string `yaml:"api_url"`
	Token     string `yaml:"token"`
	ChatID    string `yaml:"chat_id"`
	ParseMode string `yaml:"parse_mode"`
}

// SESConfig configures the Amazon SES email relay.
type SESConfig struct {
	Region string `yaml:"region"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
}

// StorageConfig selects the profile store.
type StorageConfig struct {
	Driver string `yaml:"driver"` // "sqlite", "postgres" or "mysql"
	DSN    string `yaml:"dsn"`
}

// IdentityConfig locates the device identity file.
type IdentityConfig struct {
	Path string `yaml:"path"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Validate checks that the simulation tunables are usable.
func (c SkywardConfig) Validate() error {
	switch {
	case c.Physics.GravityFactor <= 0:
		return fmt.Errorf("config: physics.gravity_factor must be positive")
	case c.Physics.FlapStrengthFactor <= 0:
		return fmt.Errorf("config: physics.flap_strength_factor must be positive")
	case c.Physics.MinRotation > c.Physics.MaxRotation:
		return fmt.Errorf("config: physics.min_rotation exceeds max_rotation")
	case c.Player.WidthRatio <= 0 || c.Player.HeightRatio <= 0:
		return fmt.Errorf("config: player size ratios must be positive")
	case c.Pipes.WidthRatio <= 0 || c.Pipes.GapRatio <= 0:
		return fmt.Errorf("config: pipe size ratios must be positive")
	case c.Pipes.GapRatio+2*c.Pipes.MarginRatio >= 1:
		return fmt.Errorf("config: pipes.gap_ratio plus margins must leave room in the viewport")
	case c.Pipes.SpawnRate <= 0:
		return fmt.Errorf("config: pipes.spawn_rate must be positive")
	case c.Coins.SpawnChance < 0 || c.Coins.SpawnChance > 1:
		return fmt.Errorf("config: coins.spawn_chance must be within [0, 1]")
	case c.Economy.RedeemThreshold <= 0:
		return fmt.Errorf("config: economy.redeem_threshold must be positive")
	}
	return nil
}
