// Package tui: keyboard binding configuration.
package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap defines all keyboard shortcuts for the results view.
type Keymap struct {
	Quit  key.Binding
	Rerun key.Binding
}

// defaultKeymap returns the default key bindings.
func defaultKeymap() Keymap {
	return Keymap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-run"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.Quit}
}
