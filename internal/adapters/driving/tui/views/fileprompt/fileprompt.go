// Package fileprompt provides the archive selection page.
package fileprompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// View asks the participant for the path of their export.
// Submitting an empty path skips the platform.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.FileInput
	lang     string
	platform string
	prompt   domain.FileInputPrompt
	width    int
	height   int
}

// NewView creates a new file prompt view.
func NewView(s *styles.Styles, lang string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		input:  input.NewFileInput(s),
		lang:   lang,
		width:  80,
		height: 24,
	}
}

// SetPrompt shows a new prompt and clears the previous answer.
func (v *View) SetPrompt(platform string, prompt domain.FileInputPrompt) tea.Cmd {
	v.platform = platform
	v.prompt = prompt
	v.input.Reset()
	if v.lang == domain.LanguageNL {
		v.input.SetLabel("Bestand: ")
	}
	return v.input.Init()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keymap.Matches(msg.String(), v.keymap.Submit):
			path := v.input.Path()
			if path == "" {
				return v, messages.Submit(domain.NoSelection())
			}
			return v, messages.Submit(domain.FilePayload(path))
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, messages.Submit(domain.NoSelection())
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the prompt.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.platform))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Width(v.width).Render(v.prompt.Description.Text(v.lang)))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	if v.prompt.Extensions != "" {
		b.WriteString(v.styles.Muted.Render("Accepted: " + v.prompt.Extensions))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[enter] submit  [esc] skip"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}
