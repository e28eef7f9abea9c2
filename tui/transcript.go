package tui

import "strings"

// entry is one unstyled transcript line. Lines are kept raw so the whole
// transcript can be re-wrapped when the terminal is resized.
type entry struct {
	text string
	kind lineKind
	echo bool // the user's own input
	meta bool // output of a slash command
}

// transcript is the scrollback shown in the viewport.
type transcript struct {
	entries []entry
}

// add appends one exchange: the echoed input (if any), its output lines and
// a blank separator.
func (t *transcript) add(input string, lines []string, meta bool) {
	if input != "" {
		t.entries = append(t.entries, entry{text: "> " + input, echo: true})
	}
	for _, line := range lines {
		e := entry{text: line, meta: meta}
		if !meta {
			e.kind = classifyLine(line)
		}
		t.entries = append(t.entries, e)
	}
	t.entries = append(t.entries, entry{})
}

// render wraps and styles every entry for the given width.
func (t *transcript) render(width int) string {
	width = max(width, 10)
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		if e.text == "" {
			out = append(out, "")
			continue
		}
		text := wordWrap(e.text, width)
		switch {
		case e.echo:
			out = append(out, styleUserInput.Render(text))
		case e.meta:
			out = append(out, styledSystemMsg(text))
		default:
			out = append(out, styleFor(e.kind).Render(text))
		}
	}
	return strings.Join(out, "\n")
}

// String returns the raw transcript text, one entry per line.
func (t *transcript) String() string {
	var b strings.Builder
	for _, e := range t.entries {
		b.WriteString(e.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// wordWrap breaks text at spaces so no line exceeds width where a word
// allows it. Leading indentation carries over to continuation lines.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	if 2*len(indent) >= width {
		indent = ""
	}

	var b strings.Builder
	col := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			b.WriteString(indent)
			col = len(indent)
		case col+1+len(word) > width:
			b.WriteByte('\n')
			b.WriteString(indent)
			col = len(indent)
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
