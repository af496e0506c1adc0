// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateWorking  State = "working"
	StateDonating State = "donating"
	StateDonated  State = "donated"
	StateError    State = "error"
)

// progressWidth is the number of cells of the progress bar.
const progressWidth = 10

// Bar displays the platform, progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	bindings []key.Binding
	state    State
	message  string
	platform string
	progress int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		bindings: km.ShortHelp(),
		state:    StateReady,
		width:    80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	var parts []string
	if b.platform != "" {
		parts = append(parts, b.styles.Subtitle.Render(b.platform), b.renderProgress())
	}

	switch b.state {
	case StateWorking:
		parts = append(parts, b.styles.Muted.Render("Working..."))
	case StateDonating:
		parts = append(parts, b.styles.Muted.Render("Donating..."))
	case StateDonated:
		parts = append(parts, b.styles.Success.Render("Donation saved"))
	case StateError:
		msg := "Error"
		if b.message != "" {
			msg = fmt.Sprintf("Error: %s", b.message)
		}
		parts = append(parts, b.styles.Error.Render(msg))
	case StateReady:
		if b.message != "" {
			parts = append(parts, b.styles.Normal.Render(b.message))
		}
	}
	return strings.Join(parts, " ")
}

// renderProgress draws a bar such as [#####     ] 50%.
func (b *Bar) renderProgress() string {
	filled := b.progress * progressWidth / 100
	bar := b.styles.Progress.Render(strings.Repeat("#", filled)) + strings.Repeat(" ", progressWidth-filled)
	return fmt.Sprintf("[%s] %d%%", bar, b.progress)
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.bindings))
	for _, binding := range b.bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetError switches to StateError with the error text.
func (b *Bar) SetError(err error) {
	b.state = StateError
	b.message = err.Error()
}

// SetMessage sets a custom message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetPage records the platform and progress of the rendered page.
// Progress is clamped to 0..100.
func (b *Bar) SetPage(platform string, progress int) {
	b.platform = platform
	b.progress = min(max(progress, 0), 100)
}

// Progress returns the current progress percentage.
func (b *Bar) Progress() int {
	return b.progress
}

// SetBindings sets the keybinding hints shown on the right.
func (b *Bar) SetBindings(bindings []key.Binding) {
	b.bindings = bindings
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Clear resets state and message, keeping the page.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
