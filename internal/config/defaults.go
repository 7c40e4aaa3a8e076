package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skyward.yaml
var defaultSkywardYAML []byte

// DefaultSkywardConfig returns the built-in configuration. It mirrors the
// embedded YAML and is used when that cannot be parsed.
func DefaultSkywardConfig() SkywardConfig {
	return SkywardConfig{
		Physics: PhysicsConfig{
			GravityFactor:      0.5 / 512,
			FlapStrengthFactor: 8.0 / 512,
			RotationSpeed:      4,
			MinRotation:        -30,
			MaxRotation:        90,
		},
		Player: PlayerConfig{
			WidthRatio:  38.0 / 384,
			HeightRatio: 38.0 / 512,
			XRatio:      0.25,
			StartYRatio: 0.5,
		},
		Pipes: PipesConfig{
			WidthRatio:  60.0 / 384,
			GapRatio:    150.0 / 512,
			SpeedFactor: 3.0 / 384,
			SpawnRate:   100,
			MarginRatio: 75.0 / 512,
		},
		Coins: CoinsConfig{
			SizeRatio:   24.0 / 384,
			SpawnChance: 0.5,
			Jitter:      0.7,
		},
		Clouds: CloudsConfig{
			Count:        10,
			Width:        120,
			MinScale:     0.5,
			ScaleRange:   0.5,
			MinOpacity:   0.3,
			OpacityRange: 0.4,
			MinSpeed:     0.2,
			SpeedRange:   0.5,
		},
		Economy: EconomyConfig{
			AppName:         "Skyward Soar",
			PointsPerPipe:   5,
			PointsPerCoin:   10,
			RedeemThreshold: 50000,
			RewardLabel:     "100 DZD Flexy",
			PhonePattern:    `^(05|06|07)\d{8}$`,
			BonusPoints:     10,
			BonusCooldown:   5 * time.Second,
		},
		Sync: SyncConfig{
			LoadTimeout:  10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Relay: RelayConfig{
			Backend: "telegram",
			Timeout: 10 * time.Second,
			Telegram: TelegramConfig{
				APIURL:    "https://api.telegram.org",
				ParseMode: "Markdown",
			},
			SES: SESConfig{
				Region: "us-east-1",
			},
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "~/.skyward/skyward.db",
		},
		Identity: IdentityConfig{
			Path: "~/.skyward/player_id",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSkywardYAML
}
