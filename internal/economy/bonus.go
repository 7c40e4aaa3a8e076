package economy

import (
	"errors"
	"time"
)

// ErrBonusCooldown is returned when the bonus is claimed too soon.
var ErrBonusCooldown = errors.New("economy: bonus is cooling down")

// Bonus grants a fixed reward at most once per cooldown window.
type Bonus struct {
	points   int
	cooldown time.Duration
	now      func() time.Time
	last     time.Time
}

// NewBonus creates a bonus reward. now may be nil to use time.Now.
func NewBonus(points int, cooldown time.Duration, now func() time.Time) *Bonus {
	if now == nil {
		now = time.Now
	}
	return &Bonus{points: points, cooldown: cooldown, now: now}
}

// Remaining returns how long until the bonus can be claimed again.
func (b *Bonus) Remaining() time.Duration {
	if b.last.IsZero() {
		return 0
	}
	left := b.cooldown - b.now().Sub(b.last)
	if left < 0 {
		return 0
	}
	return left
}

// Claim applies the reward to ledger.
func (b *Bonus) Claim(ledger *Ledger) (Change, error) {
	if b.Remaining() > 0 {
		return Change{}, ErrBonusCooldown
	}
	b.last = b.now()
	return ledger.Apply(b.points, ReasonBonus), nil
}
