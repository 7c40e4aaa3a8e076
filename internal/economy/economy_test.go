package economy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/skyward/internal/config"
	"github.com/vovakirdan/skyward/internal/relay"
)

type fakeRelay struct {
	calls  int
	text   string
	result relay.Result
	err    error
}

func (f *fakeRelay) Send(_ context.Context, text string) (relay.Result, error) {
	f.calls++
	f.text = text
	return f.result, f.err
}

func testPolicy(t *testing.T) Policy {
	t.Helper()
	p, err := NewPolicy(config.DefaultSkywardConfig().Economy)
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func TestLedgerApply(t *testing.T) {
	l := NewLedger(0)
	c := l.Apply(5, ReasonPipe)
	if c.Balance != 5 || c.Delta != 5 || c.Reason != ReasonPipe {
		t.Errorf("got %+v", c)
	}
	c = l.Apply(-20, ReasonRedeem)
	if c.Balance != 0 || c.Delta != -5 {
		t.Errorf("floor: got %+v", c)
	}
	if NewLedger(-3).Balance() != 0 {
		t.Error("negative start should floor to 0")
	}
}

func TestValidPhone(t *testing.T) {
	p := testPolicy(t)
	tests := []struct {
		phone string
		ok    bool
	}{
		{"0791234567", true},
		{"0512345678", true},
		{"0612345678", true},
		{"12345678", false},
		{"0812345678", false},
		{"079123456", false},
		{"07912345678", false},
		{"07912345a7", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.ValidPhone(tt.phone); got != tt.ok {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.ok)
		}
	}
}

func TestValidateOrder(t *testing.T) {
	p := testPolicy(t)
	tests := []struct {
		name    string
		id      string
		phone   string
		balance int
		want    error
	}{
		{"bad phone", "user_1", "12345678", 60000, ErrInvalidPhone},
		{"bad phone wins over balance", "", "12345678", 0, ErrInvalidPhone},
		{"one short", "user_1", "0791234567", 49999, ErrInsufficientPoints},
		{"no profile", "", "0791234567", 50000, ErrNoProfile},
		{"exact threshold", "user_1", "0791234567", 50000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := p.Validate(tt.id, tt.phone, tt.balance)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want == nil && req.Points != 50000 {
				t.Errorf("points = %d", req.Points)
			}
		})
	}
}

func TestRedeemRejectsWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		balance int
	}{
		{"invalid phone", "12345678", 60000},
		{"insufficient", "0791234567", 49999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRelay{result: relay.Result{OK: true}}
			r := NewRedeemer(testPolicy(t), fr, time.Second)
			l := NewLedger(tt.balance)

			if _, err := r.Redeem(context.Background(), l, "user_1", tt.phone); err == nil {
				t.Fatal("expected rejection")
			}
			if fr.calls != 0 {
				t.Errorf("relay called %d times", fr.calls)
			}
			if l.Balance() != tt.balance {
				t.Errorf("balance changed to %d", l.Balance())
			}
		})
	}
}

func TestRedeemSuccess(t *testing.T) {
	fr := &fakeRelay{result: relay.Result{OK: true}}
	r := NewRedeemer(testPolicy(t), fr, time.Second)
	l := NewLedger(50000)

	c, err := r.Redeem(context.Background(), l, "user_1", "0791234567")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if fr.calls != 1 {
		t.Errorf("relay calls = %d", fr.calls)
	}
	if c.Reason != ReasonRedeem || c.Delta != -50000 || l.Balance() != 0 {
		t.Errorf("change = %+v, balance %d", c, l.Balance())
	}
	for _, want := range []string{"user_1", "0791234567", "50,000", "100 DZD Flexy", "Skyward Soar"} {
		if !strings.Contains(fr.text, want) {
			t.Errorf("message missing %q:\n%s", want, fr.text)
		}
	}
}

func TestFormatMessageGroupsPoints(t *testing.T) {
	msg := testPolicy(t).FormatMessage(Request{ProfileID: "user_1", Phone: "0551234567", Points: 1234567})
	if !strings.Contains(msg, "Points to Withdraw: 1,234,567 (") {
		t.Errorf("points not grouped:\n%s", msg)
	}
}

func TestRedeemRelayFailureKeepsBalance(t *testing.T) {
	tests := []struct {
		name string
		fr   *fakeRelay
	}{
		{"not ok", &fakeRelay{result: relay.Result{OK: false, Description: "chat not found"}}},
		{"transport", &fakeRelay{err: errors.New("connection refused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRedeemer(testPolicy(t), tt.fr, time.Second)
			l := NewLedger(70000)
			_, err := r.Redeem(context.Background(), l, "user_1", "0791234567")
			if !errors.Is(err, ErrRelayFailed) {
				t.Fatalf("err = %v", err)
			}
			if l.Balance() != 70000 {
				t.Errorf("balance = %d", l.Balance())
			}
		})
	}
}

func TestBonusCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBonus(10, 5*time.Second, func() time.Time { return now })
	l := NewLedger(0)

	if _, err := b.Claim(l); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	now = now.Add(4 * time.Second)
	if _, err := b.Claim(l); !errors.Is(err, ErrBonusCooldown) {
		t.Fatalf("expected cooldown, got %v", err)
	}
	if b.Remaining() != time.Second {
		t.Errorf("remaining = %v", b.Remaining())
	}
	now = now.Add(time.Second)
	c, err := b.Claim(l)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if c.Balance != 20 || c.Reason != ReasonBonus {
		t.Errorf("change = %+v", c)
	}
}
