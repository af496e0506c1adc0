package end

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func TestView_ListsDonations(t *testing.T) {
	v := NewView(nil, domain.LanguageEN)
	v.SetDonated([]string{"s1-tracking", "s1-TikTok"})

	view := v.View()

	assert.Contains(t, view, "Thank you for participating.")
	assert.Contains(t, view, "Donations saved (2):")
	assert.Contains(t, view, "s1-TikTok")
}

func TestView_NothingDonated(t *testing.T) {
	v := NewView(nil, domain.LanguageNL)

	view := v.View()

	assert.Contains(t, view, "Bedankt voor uw deelname.")
	assert.Contains(t, view, "No data was donated.")
}

func TestView_CloseQuits(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
	} {
		v := NewView(nil, domain.LanguageEN)
		_, cmd := v.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestView_OtherKeysIgnored(t *testing.T) {
	v := NewView(nil, domain.LanguageEN)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Nil(t, cmd)
}
