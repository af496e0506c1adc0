package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/views/confirm"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/views/consent"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/views/end"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/views/fileprompt"
	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// App hosts one donation session following the Elm architecture.
// Every page the script renders becomes a view; every answer resumes the
// script; every Donate command is persisted before the script continues.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	lang   string

	status         *status.Bar
	filePromptView *fileprompt.View
	confirmView    *confirm.View
	consentView    *consent.View
	endView        *end.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// donated holds the keys of the donations saved so far.
	donated []string

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		currentView: messages.ViewLoading,
	}
	a.status = status.NewBar(a.styles, a.keymap)
	a.WithLanguage(domain.LanguageEN)
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithLanguage selects the language pages are rendered in.
func (a *App) WithLanguage(lang string) *App {
	a.lang = lang
	a.filePromptView = fileprompt.NewView(a.styles, lang)
	a.confirmView = confirm.NewView(a.styles, lang)
	a.consentView = consent.NewView(a.styles, lang)
	a.endView = end.NewView(a.styles, lang)
	return a
}

// Init starts the script.
func (a *App) Init() tea.Cmd {
	script := a.ports.Script
	return tea.Batch(
		tea.SetWindowTitle("donate - session "+script.SessionID()),
		func() tea.Msg { return messages.StepReceived{Step: script.Start()} },
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewFilePrompt:
			a.filePromptView, cmd = a.filePromptView.Update(msg)
		case messages.ViewConfirm:
			a.confirmView, cmd = a.confirmView.Update(msg)
		case messages.ViewConsent:
			a.consentView, cmd = a.consentView.Update(msg)
		case messages.ViewEnd:
			a.endView, cmd = a.endView.Update(msg)
		case messages.ViewLoading:
			// Keys are ignored while the script works
		}
		return a, cmd

	case messages.StepReceived:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		return a, a.handle(msg.Step)

	case messages.PayloadSubmitted:
		a.currentView = messages.ViewLoading
		a.status.SetState(status.StateWorking)
		return a, a.resume(msg.Payload)

	case messages.DonationRecorded:
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.donated = append(a.donated, msg.Donation.Key)
			a.status.SetState(status.StateDonated)
		}
		return a, a.resume(domain.NoSelection())

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// handle turns a script step into the next view or action.
func (a *App) handle(step domain.Step) tea.Cmd {
	switch c := step.Command.(type) {
	case domain.RenderPage:
		a.status.Clear()
		a.status.SetPage(c.Platform, c.Progress)
		return a.show(c)

	case domain.Donate:
		a.currentView = messages.ViewLoading
		a.status.SetState(status.StateDonating)
		return a.record(c)

	default:
		// RenderEnd, or a finished script with nothing left to send
		a.endView.SetDonated(a.donated)
		a.currentView = messages.ViewEnd
		a.status.SetBindings(a.keymap.EndHelp())
		return nil
	}
}

func (a *App) show(page domain.RenderPage) tea.Cmd {
	switch body := page.Body.(type) {
	case domain.FileInputPrompt:
		a.currentView = messages.ViewFilePrompt
		a.status.SetBindings(a.keymap.FilePromptHelp())
		return a.filePromptView.SetPrompt(page.Platform, body)
	case domain.ConfirmPrompt:
		a.currentView = messages.ViewConfirm
		a.status.SetBindings(a.keymap.ConfirmHelp())
		a.confirmView.SetPrompt(page.Platform, body)
	case domain.ConsentForm:
		a.currentView = messages.ViewConsent
		a.status.SetBindings(a.keymap.ConsentHelp())
		a.consentView.SetForm(page.Platform, body)
	default:
		a.fail(fmt.Errorf("%w: page body %T", domain.ErrInvalidInput, page.Body))
	}
	return nil
}

func (a *App) resume(p domain.Payload) tea.Cmd {
	ctx, script := a.ctx, a.ports.Script
	return func() tea.Msg {
		step, err := script.Resume(ctx, p)
		return messages.StepReceived{Step: step, Err: err}
	}
}

func (a *App) record(d domain.Donate) tea.Cmd {
	ctx, donations := a.ctx, a.ports.Donations
	return func() tea.Msg {
		donation, err := donations.Record(ctx, d)
		return messages.DonationRecorded{Donation: donation, Err: err}
	}
}

func (a *App) fail(err error) {
	logger.Error("tui: %v", err)
	a.err = err
	a.status.SetError(err)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewFilePrompt:
		body = a.filePromptView.View()
	case messages.ViewConfirm:
		body = a.confirmView.View()
	case messages.ViewConsent:
		body = a.consentView.View()
	case messages.ViewEnd:
		body = a.endView.View()
	default:
		body = a.styles.Muted.Render("Working...")
	}
	return body + "\n\n" + a.status.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Donated returns the keys of the donations saved so far.
func (a *App) Donated() []string {
	return a.donated
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.status.SetWidth(width)
	a.filePromptView.SetDimensions(width, height)
	a.confirmView.SetDimensions(width, height)
	a.consentView.SetDimensions(width, height)
	a.endView.SetDimensions(width, height)
}
