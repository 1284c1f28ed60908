package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keylab/internal/search"
)

func TestViewShowsProgress(t *testing.T) {
	m := NewModel(make(chan search.Progress), func() {})
	updated, _ := m.Update(progressMsg(search.Progress{
		Round:       50,
		Rounds:      200,
		Temperature: 0.5,
		Best:        42.1234,
		BestName:    "qwerty-w1",
		Accepted:    3,
	}))
	m = updated.(*Model)

	out := m.View()
	for _, want := range []string{"Optimizing", "50/200", "42.1234", "qwerty-w1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestQuitKeyCancelsOnce(t *testing.T) {
	calls := 0
	m := NewModel(make(chan search.Progress), func() { calls++ })

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(*Model)

	if calls != 1 {
		t.Fatalf("expected one cancel call, got %d", calls)
	}
	if !strings.Contains(m.View(), "Stopping") {
		t.Fatalf("expected the view to announce the stop")
	}
}

func TestClosedChannelQuits(t *testing.T) {
	updates := make(chan search.Progress)
	close(updates)
	m := NewModel(updates, func() {})

	msg := m.Init()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg from a closed channel, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected a quit command after done")
	}
}
