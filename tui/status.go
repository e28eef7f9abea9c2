package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sessionWins counts session records labeled 1.
func (m Model) sessionWins() int {
	n := 0
	for _, rec := range m.engine.Session {
		n += rec.Label
	}
	return n
}

// renderStatusBar produces a full-width inverted status line showing roster
// size, seed, RNG position and session totals.
func (m Model) renderStatusBar() string {
	e := m.engine

	left := fmt.Sprintf(" %d creatures | seed %d", e.Roster.Len(), e.RNG.Seed())
	if m.trace {
		left += " | trace"
	}

	right := fmt.Sprintf("Session: %d (y=1: %d) | pos %d ", len(e.Session), m.sessionWins(), e.RNG.Position())
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > m.width {
		right = fmt.Sprintf("S:%d ", len(e.Session))
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
