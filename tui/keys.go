package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap binds the explorer's keys. Up/Down belong to history, so the
// viewport only scrolls by page.
type keyMap struct {
	Quit     key.Binding
	Submit   key.Binding
	Older    key.Binding
	Newer    key.Binding
	Scroll   key.Binding
	Complete key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Older:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older command")),
	Newer:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer command")),
	Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d"), key.WithHelp("pgup/pgdn", "scroll")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete name")),
}

func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
