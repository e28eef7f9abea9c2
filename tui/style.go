package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	styleDetail = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleWin = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	styleLoss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleUserInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindHeader
	kindDetail
	kindWin
	kindLoss
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "No creature named"),
		strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "Can't read"),
		strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "Usage:"):
		return kindError
	case strings.HasSuffix(trimmed, "(y=1)"), strings.HasSuffix(trimmed, ": y=1"):
		return kindWin
	case strings.HasSuffix(trimmed, "(y=0)"), strings.HasSuffix(trimmed, ": y=0"):
		return kindLoss
	case strings.HasPrefix(line, "  "):
		return kindDetail
	case isMatchupHeader(line):
		return kindHeader
	default:
		return kindPlain
	}
}

// isMatchupHeader matches "Name (Lv n) vs Name (Lv m)".
func isMatchupHeader(line string) bool {
	i := strings.Index(line, ") vs ")
	return i > 0 && strings.Contains(line[:i], "(Lv ") && strings.HasSuffix(line, ")")
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

// styleFor returns the style for a classified output line.
func styleFor(kind lineKind) lipgloss.Style {
	switch kind {
	case kindHeader:
		return styleHeader
	case kindDetail:
		return styleDetail
	case kindWin:
		return styleWin
	case kindLoss:
		return styleLoss
	case kindSystem:
		return styleSystem
	case kindError:
		return styleError
	case kindTrace:
		return styleTrace
	default:
		return stylePlain
	}
}
