// Package tui provides a Bubble Tea terminal UI for the matchup explorer.
package tui

import "slices"

// History keeps recent commands, newest last, for Up/Down recall.
// Re-entering a command moves it to the end instead of storing it twice.
type History struct {
	entries []string
	limit   int
	cursor  int // -1 while not navigating, else an index into entries
}

// NewHistory creates a history holding at most limit commands.
func NewHistory(limit int) *History {
	return &History{
		entries: make([]string, 0, limit),
		limit:   limit,
		cursor:  -1,
	}
}

// Len returns the number of stored commands.
func (h *History) Len() int { return len(h.entries) }

// Push records cmd as the newest entry, evicting the oldest past the limit.
func (h *History) Push(cmd string) {
	if i := slices.Index(h.entries, cmd); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	h.entries = append(h.entries, cmd)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = slices.Delete(h.entries, 0, over)
	}
}

// Prev steps back to an older entry, stopping at the oldest.
// It returns false only when history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor < 0:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward to a newer entry. Stepping past the newest returns false
// and leaves navigation.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	if h.cursor++; h.cursor < len(h.entries) {
		return h.entries[h.cursor], true
	}
	h.cursor = -1
	return "", false
}

// ResetCursor leaves navigation; the next Prev starts from the newest entry.
func (h *History) ResetCursor() {
	h.cursor = -1
}
