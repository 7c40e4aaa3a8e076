package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/skyward/internal/config"
)

// Telegram posts messages through the Telegram Bot API sendMessage method.
type Telegram struct {
	client    *http.Client
	endpoint  string
	chatID    string
	parseMode string
}

// NewTelegram creates a Telegram relay. A zero timeout leaves the client
// without one.
func NewTelegram(cfg config.TelegramConfig, timeout time.Duration) *Telegram {
	base := strings.TrimRight(cfg.APIURL, "/")
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &Telegram{
		client:    &http.Client{Timeout: timeout},
		endpoint:  fmt.Sprintf("%s/bot%s/sendMessage", base, cfg.Token),
		chatID:    cfg.ChatID,
		parseMode: cfg.ParseMode,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Send posts text to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: t.parseMode,
	})
	if err != nil {
		return Result{}, fmt.Errorf("relay: encode telegram message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("relay: build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("relay: telegram request: %w", err)
	}
	defer resp.Body.Close()

	var out sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("relay: decode telegram response (status %d): %w", resp.StatusCode, err)
	}
	return Result{OK: out.OK, Description: out.Description}, nil
}
