// Package ui provides the Bubble Tea optimization progress interface.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keylab/internal/report"
	"github.com/verte-zerg/keylab/internal/search"
)

// historyLen caps the best-score sparkline history.
const historyLen = 60

type progressMsg search.Progress

type doneMsg struct{}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea optimization progress UI. It drains
// search progress updates until the channel closes, then quits.
type Model struct {
	updates <-chan search.Progress
	cancel  func()

	bar       progress.Model
	width     int
	height    int
	last      search.Progress
	hasLast   bool
	history   []float64
	cancelled bool
}

// NewModel constructs a progress UI over a search progress channel.
// The cancel function is invoked when the user quits early; the model
// still waits for the channel to close so the search can finish its
// round.
func NewModel(updates <-chan search.Progress, cancel func()) *Model {
	return &Model{
		updates: updates,
		cancel:  cancel,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.updates
		if !ok {
			return doneMsg{}
		}
		return progressMsg(p)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := m.width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth < 10 {
			barWidth = 10
		}
		m.bar.Width = barWidth
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC, msg.String() == "q":
			if !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
			return m, nil
		default:
			return m, nil
		}
	case progressMsg:
		m.last = search.Progress(msg)
		m.hasLast = true
		m.history = append(m.history, m.last.Best)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
		return m, m.waitForUpdate()
	case doneMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Optimizing"))
	b.WriteString("\n\n")

	ratio := 0.0
	if m.hasLast && m.last.Rounds > 0 {
		ratio = float64(m.last.Round) / float64(m.last.Rounds)
	}
	b.WriteString(m.bar.ViewAs(ratio))
	b.WriteString("\n\n")

	if m.hasLast {
		b.WriteString(statLine("Round", fmt.Sprintf("%d/%d", m.last.Round, m.last.Rounds)))
		b.WriteString(statLine("Temperature", fmt.Sprintf("%.6f", m.last.Temperature)))
		b.WriteString(statLine("Best", fmt.Sprintf("%.4f (%s)", m.last.Best, m.last.BestName)))
		b.WriteString(statLine("Accepted", fmt.Sprintf("%d", m.last.Accepted)))
		b.WriteString(statLine("Trend", report.Sparkline(m.history)))
	} else {
		b.WriteString(labelStyle.Render("Waiting for the first round..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.cancelled {
		b.WriteString(footerStyle.Render("Stopping after the current round..."))
	} else {
		b.WriteString(footerStyle.Render("q: stop  ctrl+c: stop"))
	}
	b.WriteString("\n")
	return b.String()
}

func statLine(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value) + "\n"
}
