// Package economy owns the points balance and the redemption policy.
//
// All balance changes go through Ledger.Apply, whether they come from
// gameplay scoring, the bonus reward or a redemption deduction.
package economy

// Reason tags a balance change.
type Reason int

const (
	ReasonPipe Reason = iota
	ReasonCoin
	ReasonBonus
	ReasonRedeem
)

// String returns a human-readable reason.
func (r Reason) String() string {
	switch r {
	case ReasonPipe:
		return "pipe"
	case ReasonCoin:
		return "coin"
	case ReasonBonus:
		return "bonus"
	case ReasonRedeem:
		return "redeem"
	default:
		return "unknown"
	}
}

// Change records one applied mutation and the balance after it.
type Change struct {
	Delta   int
	Reason  Reason
	Balance int
}

// Ledger holds the in-memory cumulative balance. It is owned by a single
// goroutine; it is not safe for concurrent use.
type Ledger struct {
	balance int
}

// NewLedger creates a ledger starting at balance (negative values are floored to 0).
func NewLedger(balance int) *Ledger {
	if balance < 0 {
		balance = 0
	}
	return &Ledger{balance: balance}
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	return l.balance
}

// Apply adds delta to the balance, never letting it go below zero.
// The returned Change carries the delta actually applied.
func (l *Ledger) Apply(delta int, reason Reason) Change {
	next := l.balance + delta
	if next < 0 {
		next = 0
	}
	applied := next - l.balance
	l.balance = next
	return Change{Delta: applied, Reason: reason, Balance: next}
}

// Reset replaces the balance, e.g. once a remote profile has loaded.
func (l *Ledger) Reset(balance int) {
	if balance < 0 {
		balance = 0
	}
	l.balance = balance
}
