package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyward/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space flaps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFlap, false},
		{"up flaps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap, false},
		{"w flaps", runeKey("w"), core.ActionFlap, false},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"a claims bonus", runeKey("a"), core.ActionBonus, false},
		{"dollar redeems", runeKey("$"), core.ActionRedeem, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	if km.MapKeyToFrame(runeKey("w"), &frame) {
		t.Fatal("w reported as quit")
	}
	if !frame.Has(core.ActionFlap) {
		t.Error("flap not set")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q not reported as quit")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouse(press) {
		t.Error("left press should flap")
	}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouse(release) {
		t.Error("release should not flap")
	}
	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if km.MapMouse(right) {
		t.Error("right button should not flap")
	}
}
