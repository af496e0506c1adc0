// Package end provides the closing page shown when the script finishes.
package end

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

var thanks = domain.Translatable{
	domain.LanguageEN: "Thank you for participating.",
	domain.LanguageNL: "Bedankt voor uw deelname.",
}

// View thanks the participant and lists what was donated.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	lang    string
	donated []string
	width   int
	height  int
}

// NewView creates a new end view.
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

// SetDonated records the keys of the donations made in this session.
func (v *View) SetDonated(keys []string) {
	v.donated = append([]string(nil), keys...)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update quits on any close key.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && keymap.Matches(km.String(), v.keymap.Close) {
		return v, tea.Quit
	}
	return v, nil
}

// View renders the closing page.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(thanks.Text(v.lang)))
	b.WriteString("\n\n")
	if len(v.donated) == 0 {
		b.WriteString(v.styles.Muted.Render("No data was donated."))
	} else {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Donations saved (%d):", len(v.donated))))
		for _, k := range v.donated {
			b.WriteString("\n  ")
			b.WriteString(v.styles.Success.Render(k))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[q] close"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
