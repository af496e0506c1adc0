// Package confirm provides the two-choice confirmation page.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// View shows a question with an Ok and a Cancel choice.
// Cancel is selected initially.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	lang     string
	platform string
	prompt   domain.ConfirmPrompt
	ok       bool
	width    int
	height   int
}

// NewView creates a new confirmation view.
func NewView(s *styles.Styles, lang string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		lang:   lang,
		width:  80,
		height: 24,
	}
}

// SetPrompt shows a new question.
func (v *View) SetPrompt(platform string, prompt domain.ConfirmPrompt) {
	v.platform = platform
	v.prompt = prompt
	v.ok = false
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key := km.String(); {
	case keymap.Matches(key, v.keymap.Left):
		v.ok = true
	case keymap.Matches(key, v.keymap.Right):
		v.ok = false
	case key == "tab":
		v.ok = !v.ok
	case key == "y":
		return v, messages.Submit(domain.ConfirmPayload(true))
	case key == "n", keymap.Matches(key, v.keymap.Back):
		return v, messages.Submit(domain.ConfirmPayload(false))
	case keymap.Matches(key, v.keymap.Submit):
		return v, messages.Submit(domain.ConfirmPayload(v.ok))
	}
	return v, nil
}

// View renders the question and both buttons.
func (v *View) View() string {
	okStyle, cancelStyle := v.styles.Button, v.styles.ActiveButton
	if v.ok {
		okStyle, cancelStyle = v.styles.ActiveButton, v.styles.Button
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		okStyle.Render(v.prompt.Ok.Text(v.lang)),
		"  ",
		cancelStyle.Render(v.prompt.Cancel.Text(v.lang)),
	)

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.platform))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Warning.Width(v.width).Render(v.prompt.Text.Text(v.lang)))
	b.WriteString("\n\n")
	b.WriteString(buttons)
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[←/→] choose  [enter] confirm  [y/n] answer"))
	return b.String()
}

// Selected reports whether the Ok choice is highlighted.
func (v *View) Selected() bool {
	return v.ok
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
