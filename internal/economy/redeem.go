package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/skyward/internal/relay"
)

// ErrRelayFailed reports that the operator notification was not delivered.
var ErrRelayFailed = errors.New("economy: redemption relay failed")

// Redeemer validates redemption requests and relays them to an operator.
type Redeemer struct {
	policy  Policy
	relay   relay.Relay
	timeout time.Duration
}

// NewRedeemer creates a redeemer. A zero timeout means no extra deadline.
func NewRedeemer(policy Policy, r relay.Relay, timeout time.Duration) *Redeemer {
	return &Redeemer{policy: policy, relay: r, timeout: timeout}
}

// Policy returns the redemption policy.
func (r *Redeemer) Policy() Policy {
	return r.policy
}

// Prepare validates a request without side effects.
func (r *Redeemer) Prepare(profileID, phone string, balance int) (Request, error) {
	return r.policy.Validate(profileID, phone, balance)
}

// Send relays req. It never touches a ledger; callers deduct on success.
func (r *Redeemer) Send(ctx context.Context, req Request) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	res, err := r.relay.Send(ctx, r.policy.FormatMessage(req))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	if !res.OK {
		if res.Description != "" {
			return fmt.Errorf("%w: %s", ErrRelayFailed, res.Description)
		}
		return ErrRelayFailed
	}
	return nil
}

// Redeem validates, relays and then deducts the threshold from ledger.
// On any failure the ledger is left untouched.
func (r *Redeemer) Redeem(ctx context.Context, ledger *Ledger, profileID, phone string) (Change, error) {
	req, err := r.Prepare(profileID, phone, ledger.Balance())
	if err != nil {
		return Change{}, err
	}
	if err := r.Send(ctx, req); err != nil {
		return Change{}, err
	}
	return ledger.Apply(-req.Points, ReasonRedeem), nil
}
