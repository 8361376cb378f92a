package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	next       key.Binding
	previous   key.Binding
	reset      key.Binding
	poi        key.Binding
	prep       key.Binding
	forward    key.Binding
	back       key.Binding
	countDown  key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "start/stop"),
	),
	next: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("→/n", "next"),
	),
	previous: key.NewBinding(
		key.WithKeys("p", "left", "h"),
		key.WithHelp("←/p", "previous"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	poi: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "POI"),
	),
	prep: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "prep on/off"),
	),
	forward: key.NewBinding(
		key.WithKeys("up", "k", "+"),
		key.WithHelp("↑/+", "+10s"),
	),
	back: key.NewBinding(
		key.WithKeys("down", "j", "-"),
		key.WithHelp("↓/-", "-10s"),
	),
	countDown: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "count up/down"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown under the timer.
func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.togglePlay, k.next, k.previous, k.poi, k.quit}
}

// FullHelp returns every binding, grouped by purpose.
func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.togglePlay, k.reset, k.forward, k.back},
		{k.next, k.previous, k.prep},
		{k.poi, k.countDown, k.quit},
	}
}
