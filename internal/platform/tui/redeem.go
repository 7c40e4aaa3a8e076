package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/skyward/internal/economy"
	"github.com/vovakirdan/skyward/internal/games/skyward"
)

// openDialog shows the phone number prompt. Redemption is offered between
// runs only.
func (m Model) openDialog() (tea.Model, tea.Cmd) {
	switch m.game.Phase() {
	case skyward.PhaseIdle, skyward.PhaseTerminated:
	default:
		return m, nil
	}
	if m.svc.Redeemer == nil {
		cmd := m.showNotice("Redemption is not available on this server", true)
		return m, cmd
	}
	m.dialog = true
	m.dialogErr = ""
	m.phone.SetValue("")
	cmd := m.phone.Focus()
	return m, cmd
}

func (m *Model) closeDialog() {
	m.dialog = false
	m.dialogErr = ""
	m.phone.Blur()
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeDialog()
		return m, nil
	case tea.KeyEnter:
		return m.submitRedeem()
	}
	var cmd tea.Cmd
	m.phone, cmd = m.phone.Update(msg)
	return m, cmd
}

// submitRedeem validates synchronously and relays in the background. The
// balance is only deducted once the relay confirms.
func (m Model) submitRedeem() (tea.Model, tea.Cmd) {
	if m.redeeming {
		m.dialogErr = "A request is already being sent, please wait."
		return m, nil
	}
	req, err := m.svc.Redeemer.Prepare(m.opts.ProfileID, m.phone.Value(), m.ledger.Balance())
	if err != nil {
		m.dialogErr = m.describeRedeemError(err)
		return m, nil
	}
	m.redeeming = true
	m.dialogErr = ""
	m.logger.Info("Sending redemption", "profile", req.ProfileID, "points", req.Points)
	return m, redeemCmd(m.ctx, m.svc.Redeemer, req)
}

func redeemCmd(ctx context.Context, r *economy.Redeemer, req economy.Request) tea.Cmd {
	return func() tea.Msg {
		return redeemResultMsg{req: req, err: r.Send(ctx, req)}
	}
}

// handleRedeemResult applies the deduction on success. The result is
// honoured even if the dialog was closed meanwhile: the operator was
// already notified.
func (m Model) handleRedeemResult(msg redeemResultMsg) (tea.Model, tea.Cmd) {
	m.redeeming = false
	if msg.err != nil {
		m.logger.Error("Redemption failed", "profile", msg.req.ProfileID, "error", msg.err)
		text := m.describeRedeemError(msg.err)
		if m.dialog {
			m.dialogErr = text
			return m, nil
		}
		cmd := m.showNotice(text, true)
		return m, cmd
	}

	c := m.ledger.Apply(-msg.req.Points, economy.ReasonRedeem)
	m.mirror(c)
	m.logger.Info("Redemption sent", "profile", msg.req.ProfileID, "balance", c.Balance)
	m.closeDialog()

	label := m.svc.Redeemer.Policy().RewardLabel
	cmd := m.showNotice(fmt.Sprintf("Request sent! Your %s is on its way.", label), false)
	return m, cmd
}

func (m Model) describeRedeemError(err error) string {
	policy := m.svc.Redeemer.Policy()
	switch {
	case errors.Is(err, economy.ErrInvalidPhone):
		return "Enter a 10-digit number starting with 05, 06 or 07."
	case errors.Is(err, economy.ErrInsufficientPoints):
		return fmt.Sprintf("You need %s points to redeem (you have %s).",
			humanize.Comma(int64(policy.Threshold)), humanize.Comma(int64(m.ledger.Balance())))
	case errors.Is(err, economy.ErrNoProfile):
		return "Your profile is not loaded yet."
	case errors.Is(err, economy.ErrRelayFailed):
		return "Could not send the request, please try again later."
	}
	return err.Error()
}
