// Package relay delivers redemption notifications to an operator.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyward/internal/config"
)

// Result is the outcome reported by a relay backend.
type Result struct {
	OK          bool
	Description string
}

// Relay sends a single text payload. A transport error and a Result with
// OK=false are both failures for the caller.
type Relay interface {
	Send(ctx context.Context, text string) (Result, error)
}

// ErrDisabled is returned by the Disabled relay.
var ErrDisabled = errors.New("relay: not configured")

// Disabled rejects every message. It is used when no backend is configured.
type Disabled struct{}

// Send always fails.
func (Disabled) Send(context.Context, string) (Result, error) {
	return Result{OK: false, Description: "relay not configured"}, ErrDisabled
}

// New builds the backend selected by cfg. Backends missing their
// credentials degrade to Disabled.
func New(ctx context.Context, cfg config.RelayConfig, logger *log.Logger) (Relay, error) {
	switch strings.ToLower(cfg.Backend) {
	case "telegram":
		if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == "" {
			logger.Warn("Relay disabled: telegram token or chat id not configured")
			return Disabled{}, nil
		}
		logger.Info("Relay enabled", "backend", "telegram")
		return NewTelegram(cfg.Telegram, cfg.Timeout), nil
	case "ses":
		if cfg.SES.From == "" || cfg.SES.To == "" {
			logger.Warn("Relay disabled: ses from or to address not configured")
			return Disabled{}, nil
		}
		r, err := NewSES(ctx, cfg.SES)
		if err != nil {
			return nil, err
		}
		logger.Info("Relay enabled", "backend", "ses", "region", cfg.SES.Region)
		return r, nil
	case "", "none":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("relay: unknown backend %q", cfg.Backend)
	}
}
