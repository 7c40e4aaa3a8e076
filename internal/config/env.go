package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by ApplyEnv.
const (
	EnvStorageDriver  = "SKYWARD_STORAGE_DRIVER"
	EnvStorageDSN     = "SKYWARD_STORAGE_DSN"
	EnvIdentityPath   = "SKYWARD_IDENTITY_PATH"
	EnvRelayBackend   = "SKYWARD_RELAY_BACKEND"
	EnvRelayTimeout   = "SKYWARD_RELAY_TIMEOUT"
	EnvTelegramAPIURL = "SKYWARD_TELEGRAM_API_URL"
	EnvTelegramToken  = "SKYWARD_TELEGRAM_TOKEN"
	EnvTelegramChatID = "SKYWARD_TELEGRAM_CHAT_ID"
	EnvSESRegion      = "SKYWARD_SES_REGION"
	EnvSESFrom        = "SKYWARD_SES_FROM"
	EnvSESTo          = "SKYWARD_SES_TO"
	EnvAudioEnabled   = "SKYWARD_AUDIO_ENABLED"
)

// ApplyEnv overlays deployment values and secrets from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win over it.
func ApplyEnv(cfg *SkywardConfig) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load .env: %w", err)
	}

	setString(&cfg.Storage.Driver, EnvStorageDriver)
	setString(&cfg.Storage.DSN, EnvStorageDSN)
	setString(&cfg.Identity.Path, EnvIdentityPath)
	setString(&cfg.Relay.Backend, EnvRelayBackend)
	setString(&cfg.Relay.Telegram.APIURL, EnvTelegramAPIURL)
	setString(&cfg.Relay.Telegram.Token, EnvTelegramToken)
	setString(&cfg.Relay.Telegram.ChatID, EnvTelegramChatID)
	setString(&cfg.Relay.SES.Region, EnvSESRegion)
	setString(&cfg.Relay.SES.From, EnvSESFrom)
	setString(&cfg.Relay.SES.To, EnvSESTo)

	if v, ok := os.LookupEnv(EnvRelayTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvRelayTimeout, err)
		}
		cfg.Relay.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvAudioEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvAudioEnabled, err)
		}
		cfg.Audio.Enabled = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
