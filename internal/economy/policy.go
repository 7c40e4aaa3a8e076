package economy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/skyward/internal/config"
)

// Redemption validation errors.
var (
	ErrInvalidPhone       = errors.New("economy: phone number must be 10 digits starting with 05, 06 or 07")
	ErrInsufficientPoints = errors.New("economy: not enough points to redeem")
	ErrNoProfile          = errors.New("economy: profile not resolved")
)

// Policy holds the fixed redemption rules.
type Policy struct {
	AppName     string
	Threshold   int
	RewardLabel string
	phone       *regexp.Regexp
}

// NewPolicy compiles the policy from configuration.
func NewPolicy(cfg config.EconomyConfig) (Policy, error) {
	re, err := regexp.Compile(cfg.PhonePattern)
	if err != nil {
		return Policy{}, fmt.Errorf("economy: compile phone pattern: %w", err)
	}
	return Policy{
		AppName:     cfg.AppName,
		Threshold:   cfg.RedeemThreshold,
		RewardLabel: cfg.RewardLabel,
		phone:       re,
	}, nil
}

// Request is a transient redemption request.
type Request struct {
	ProfileID string
	Phone     string
	Points    int
}

// ValidPhone reports whether phone matches the regional format.
func (p Policy) ValidPhone(phone string) bool {
	return p.phone.MatchString(phone)
}

// Validate checks a redemption against the current balance. Checks run in
// order: phone format, balance, profile.
func (p Policy) Validate(profileID, phone string, balance int) (Request, error) {
	phone = strings.TrimSpace(phone)
	if !p.ValidPhone(phone) {
		return Request{}, ErrInvalidPhone
	}
	if balance < p.Threshold {
		return Request{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPoints, balance, p.Threshold)
	}
	if profileID == "" {
		return Request{}, ErrNoProfile
	}
	return Request{ProfileID: profileID, Phone: phone, Points: p.Threshold}, nil
}

// FormatMessage renders the operator notification for req.
func (p Policy) FormatMessage(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New withdrawal request from %q*\n", p.AppName)
	b.WriteString("---------------------------------\n")
	fmt.Fprintf(&b, "👤 User ID: `%s`\n", req.ProfileID)
	fmt.Fprintf(&b, "📱 Phone Number: %s\n", req.Phone)
	fmt.Fprintf(&b, "💰 Points to Withdraw: %s (%s)\n", humanize.Comma(int64(req.Points)), p.RewardLabel)
	b.WriteString("---------------------------------")
	return b.String()
}

