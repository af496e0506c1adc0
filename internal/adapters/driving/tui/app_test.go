package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/services"
)

func summary() []domain.ExtractionResult {
	table := domain.NewTable("Description", "Number")
	table.Append("Followers", 2)
	return []domain.ExtractionResult{{
		ID:    "tiktok_summary",
		Title: domain.Translatable{domain.LanguageEN: "Summary information"},
		Table: table,
	}}
}

func newTestApp(t *testing.T) (*App, *memory.DonationStore) {
	t.Helper()
	extract := func(context.Context, string) ([]domain.ExtractionResult, error) { return summary(), nil }
	script, err := services.NewScript("s1", []services.PlatformFlow{
		{Platform: "TikTok", Extensions: "application/zip", Extract: extract},
		{Platform: "Facebook", Extensions: "application/zip", Extract: extract},
	})
	require.NoError(t, err)

	store := memory.NewDonationStore()
	app, err := NewApp(NewPorts(script, services.NewDonationService(store)))
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app, store
}

// drain feeds the messages produced by cmd back into the app until the
// app has nothing left to do.
func drain(app *App, cmd tea.Cmd) {
	for i := 0; cmd != nil && i < 20; i++ {
		msg := cmd()
		switch msg.(type) {
		case messages.StepReceived, messages.PayloadSubmitted, messages.DonationRecorded, messages.ErrorOccurred:
			_, cmd = app.Update(msg)
		default:
			return
		}
	}
}

func press(app *App, msg tea.KeyMsg) {
	_, cmd := app.Update(msg)
	drain(app, cmd)
}

func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func start(app *App) {
	drain(app, func() tea.Msg { return messages.StepReceived{Step: app.ports.Script.Start()} })
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Script: &MockScript{}})

	assert.ErrorIs(t, err, ErrMissingDonationService)
	assert.Nil(t, app)
}

func TestApp_InitAndView(t *testing.T) {
	app, err := NewApp(NewPorts(&MockScript{}, &MockDonationService{}))
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
	assert.Equal(t, "Initialising...", app.View())
	assert.Equal(t, messages.ViewLoading, app.CurrentView())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Working...")
}

func TestApp_FullSession(t *testing.T) {
	app, store := newTestApp(t)

	// Tracking donation, then the TikTok file prompt
	start(app)
	require.Equal(t, messages.ViewFilePrompt, app.CurrentView())
	assert.Equal(t, []string{"s1-tracking"}, app.Donated())
	assert.Contains(t, app.View(), "TikTok")

	typeText(app, "/tmp/tiktok.zip")
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewConsent, app.CurrentView())
	assert.Contains(t, app.View(), "Summary information")

	// Donate, then Facebook is prompted
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewFilePrompt, app.CurrentView())
	assert.Contains(t, app.View(), "Facebook")
	assert.Equal(t, []string{"s1-tracking", "s1-TikTok"}, app.Donated())

	// Skip Facebook
	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, messages.ViewEnd, app.CurrentView())
	assert.Contains(t, app.View(), "Donations saved (2):")
	require.NoError(t, app.Err())

	saved, err := store.List(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, saved, 2)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_RetryPrompt(t *testing.T) {
	script := &MockScript{
		start: domain.Step{Command: domain.RenderPage{Platform: "TikTok", Body: domain.FileInputPrompt{}}},
		steps: []domain.Step{{Command: domain.RenderPage{Platform: "TikTok", Body: domain.ConfirmPrompt{
			Text:   domain.Translatable{domain.LanguageEN: "Something went wrong"},
			Ok:     domain.Translatable{domain.LanguageEN: "Try again"},
			Cancel: domain.Translatable{domain.LanguageEN: "Continue"},
		}}}},
	}
	app, err := NewApp(NewPorts(script, &MockDonationService{}))
	require.NoError(t, err)
	app.SetDimensions(120, 40)

	start(app)
	typeText(app, "broken.zip")
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, messages.ViewConfirm, app.CurrentView())

	press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	require.Len(t, script.inputs, 2)
	assert.Equal(t, domain.FilePayload("broken.zip"), script.inputs[0])
	assert.Equal(t, domain.PayloadTrue, script.inputs[1].Kind)
	assert.Equal(t, messages.ViewEnd, app.CurrentView())
}

func TestApp_DonationFailureContinues(t *testing.T) {
	donations := &MockDonationService{RecordFunc: func(context.Context, domain.Donate) (*domain.Donation, error) {
		return nil, errors.New("disk full")
	}}
	script := &MockScript{start: domain.Step{Command: domain.Donate{Key: "mock-tracking", JSON: "[]"}}}
	app, err := NewApp(NewPorts(script, donations))
	require.NoError(t, err)
	app.SetDimensions(120, 40)

	start(app)

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "disk full")
	assert.Equal(t, messages.ViewEnd, app.CurrentView())
	assert.Empty(t, app.Donated())
	require.Len(t, script.inputs, 1)
	assert.Equal(t, domain.PayloadNone, script.inputs[0].Kind)
}

func TestApp_ScriptErrorIsShown(t *testing.T) {
	script := &MockScript{
		start: domain.Step{Command: domain.RenderPage{Platform: "TikTok", Body: domain.FileInputPrompt{}}},
		err:   domain.ErrFlowTerminated,
	}
	app, err := NewApp(NewPorts(script, &MockDonationService{}))
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	start(app)

	press(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, app.Err(), domain.ErrFlowTerminated)
	assert.Contains(t, app.View(), "Error:")
}

func TestApp_KeysIgnoredWhileLoading(t *testing.T) {
	app, err := NewApp(NewPorts(&MockScript{}, &MockDonationService{}))
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewLoading, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)
	start(app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_WithLanguage(t *testing.T) {
	app, _ := newTestApp(t)
	app.WithLanguage(domain.LanguageNL)
	app.SetDimensions(120, 40)

	start(app)

	assert.Contains(t, app.View(), "Bestand:")
}
