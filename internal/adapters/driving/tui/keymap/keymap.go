// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application from any page.
	Quit key.Binding

	// Submit confirms the current page.
	Submit key.Binding

	// Back skips or declines the current page.
	Back key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// NextTable and PrevTable move between consent tables.
	NextTable key.Binding
	PrevTable key.Binding

	// DeleteRow removes the selected row from the donation.
	DeleteRow key.Binding

	// Close leaves the end page.
	Close key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		NextTable: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next table"),
		),
		PrevTable: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous table"),
		),
		DeleteRow: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove row"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "enter", "esc"),
			key.WithHelp("q", "close"),
		),
	}
}

// ShortHelp returns the bindings shown on every page.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FilePromptHelp returns keybindings for the file prompt.
func (k *KeyMap) FilePromptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Quit}
}

// ConfirmHelp returns keybindings for the confirmation page.
func (k *KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Submit, k.Quit}
}

// ConsentHelp returns keybindings for the consent form.
func (k *KeyMap) ConsentHelp() []key.Binding {
	return []key.Binding{k.NextTable, k.DeleteRow, k.Submit, k.Back, k.Quit}
}

// EndHelp returns keybindings for the end page.
func (k *KeyMap) EndHelp() []key.Binding {
	return []key.Binding{k.Close}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
