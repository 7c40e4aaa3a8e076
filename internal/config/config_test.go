package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg SkywardConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	want := DefaultSkywardConfig()

	if cfg.Pipes.SpawnRate != want.Pipes.SpawnRate {
		t.Errorf("spawn rate: got %d, want %d", cfg.Pipes.SpawnRate, want.Pipes.SpawnRate)
	}
	if cfg.Economy.RedeemThreshold != want.Economy.RedeemThreshold {
		t.Errorf("redeem threshold: got %d, want %d", cfg.Economy.RedeemThreshold, want.Economy.RedeemThreshold)
	}
	if cfg.Economy.PhonePattern != want.Economy.PhonePattern {
		t.Errorf("phone pattern: got %q, want %q", cfg.Economy.PhonePattern, want.Economy.PhonePattern)
	}
	if cfg.Economy.BonusCooldown != 5*time.Second {
		t.Errorf("bonus cooldown: got %v", cfg.Economy.BonusCooldown)
	}
	if cfg.Physics.GravityFactor != want.Physics.GravityFactor {
		t.Errorf("gravity: got %v, want %v", cfg.Physics.GravityFactor, want.Physics.GravityFactor)
	}
	if cfg.Clouds.Count != want.Clouds.Count {
		t.Errorf("cloud count: got %d, want %d", cfg.Clouds.Count, want.Clouds.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("pipes:\n  spawn_rate: 80\neconomy:\n  redeem_threshold: 100\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pipes.SpawnRate != 80 {
		t.Errorf("spawn rate: got %d, want 80", cfg.Pipes.SpawnRate)
	}
	if cfg.Economy.RedeemThreshold != 100 {
		t.Errorf("threshold: got %d, want 100", cfg.Economy.RedeemThreshold)
	}
	// Untouched sections keep their defaults.
	if cfg.Coins.SpawnChance != 0.5 {
		t.Errorf("coin chance: got %v, want 0.5", cfg.Coins.SpawnChance)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pipes:\n  spawn_rate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvTelegramToken, "secret")
	t.Setenv(EnvTelegramChatID, "42")
	t.Setenv(EnvRelayTimeout, "3s")
	t.Setenv(EnvAudioEnabled, "false")

	cfg := DefaultSkywardConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Relay.Telegram.Token != "secret" || cfg.Relay.Telegram.ChatID != "42" {
		t.Errorf("telegram: got %+v", cfg.Relay.Telegram)
	}
	if cfg.Relay.Timeout != 3*time.Second {
		t.Errorf("timeout: got %v", cfg.Relay.Timeout)
	}
	if cfg.Audio.Enabled {
		t.Error("audio should be disabled")
	}
}

func TestApplyEnvDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SKYWARD_SES_FROM=noreply@example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSESFrom, "")
	os.Unsetenv(EnvSESFrom)

	cfg := DefaultSkywardConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Relay.SES.From != "noreply@example.com" {
		t.Errorf("ses from: got %q", cfg.Relay.SES.From)
	}
}

func TestApplyEnvBadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvRelayTimeout, "soon")
	cfg := DefaultSkywardConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/.skyward/db", filepath.Join(home, ".skyward/db")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~user/x", "~user/x"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SkywardConfig)
	}{
		{"gravity", func(c *SkywardConfig) { c.Physics.GravityFactor = 0 }},
		{"rotation", func(c *SkywardConfig) { c.Physics.MinRotation = 100 }},
		{"gap", func(c *SkywardConfig) { c.Pipes.GapRatio = 0.9 }},
		{"coin chance", func(c *SkywardConfig) { c.Coins.SpawnChance = 1.5 }},
		{"threshold", func(c *SkywardConfig) { c.Economy.RedeemThreshold = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSkywardConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
