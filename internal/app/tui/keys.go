package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the booking terminal view.
type KeyMap struct {
	// Navigation bar.
	Home    key.Binding
	Flights key.Binding
	History key.Binding

	// Focus movement between form fields and the result list.
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding

	// Gender select.
	Left  key.Binding
	Right key.Binding

	// Enter submits the current screen: search, book, continue, pay,
	// book another.
	Submit key.Binding

	AddPassenger  key.Binding
	Reload        key.Binding
	ExportReceipt key.Binding

	Quit key.Binding
}

// DefaultKeyMap keeps plain letters free for typing into form fields.
var DefaultKeyMap = KeyMap{
	Home: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "home"),
	),
	Flights: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("C-f", "flights"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "history"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev option"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	AddPassenger: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("C-a", "add passenger"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "reload flights"),
	),
	ExportReceipt: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "save receipt"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
