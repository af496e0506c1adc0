package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Ensure DonationFlow implements the interface.
var _ driving.FlowController = (*DonationFlow)(nil)

// ExtractFunc runs the extraction pipeline on a user-supplied file.
type ExtractFunc func(ctx context.Context, path string) ([]domain.ExtractionResult, error)

// FlowConfig configures a DonationFlow.
type FlowConfig struct {
	// Platform is the label shown to the user and used in the donation key.
	Platform string

	// Extensions lists the MIME types offered by the file prompt.
	Extensions string

	// SessionID identifies the participant session.
	SessionID string

	// Extract builds the result tables for a file.
	Extract ExtractFunc

	// Progress is the counter shown on every rendered page.
	Progress int
}

// DonationFlow is the donation round of one platform for one session.
// It suspends when waiting for a file, a retry decision or consent, and
// owns its audit log exclusively.
type DonationFlow struct {
	cfg     FlowConfig
	state   domain.FlowState
	started bool
	log     []domain.LogEntry
}

// NewDonationFlow creates a flow in the AwaitFile state.
func NewDonationFlow(cfg FlowConfig) (*DonationFlow, error) {
	if cfg.Platform == "" {
		return nil, fmt.Errorf("%w: platform is required", domain.ErrInvalidInput)
	}
	if cfg.Extract == nil {
		return nil, fmt.Errorf("%w: extract function is required", domain.ErrInvalidInput)
	}
	return &DonationFlow{cfg: cfg, state: domain.StateAwaitFile}, nil
}

// Platform returns the platform label.
func (f *DonationFlow) Platform() string {
	return f.cfg.Platform
}

// State returns the current state.
func (f *DonationFlow) State() domain.FlowState {
	return f.state
}

// Log returns a copy of the audit log.
func (f *DonationFlow) Log() []domain.LogEntry {
	out := make([]domain.LogEntry, len(f.log))
	copy(out, f.log)
	return out
}

// Start emits the file prompt. A terminated flow returns a done step.
func (f *DonationFlow) Start() domain.Step {
	if f.state.IsTerminal() {
		return domain.Step{Done: true}
	}
	f.started = true
	f.state = domain.StateAwaitFile
	return f.render(f.filePrompt())
}

// Resume continues the flow with the host's response to the last command.
func (f *DonationFlow) Resume(ctx context.Context, payload domain.Payload) (domain.Step, error) {
	if !f.started {
		return domain.Step{}, domain.ErrFlowNotStarted
	}
	if f.state.IsTerminal() {
		return domain.Step{}, domain.ErrFlowTerminated
	}

	switch f.state {
	case domain.StateAwaitFile:
		return f.onFile(ctx, payload), nil
	case domain.StateRetryOffer:
		return f.onRetry(payload), nil
	case domain.StateConsentPrompt:
		return f.onConsent(payload), nil
	default:
		return domain.Step{}, fmt.Errorf("%w: cannot resume in state %s", domain.ErrInvalidInput, f.state)
	}
}

func (f *DonationFlow) onFile(ctx context.Context, payload domain.Payload) domain.Step {
	if payload.Kind != domain.PayloadString || payload.Value == "" {
		f.logf("skip to next step")
		f.state = domain.StateSkippedNext
		return domain.Step{Done: true}
	}

	f.logf("extracting file")
	f.state = domain.StateExtracting
	results, err := f.extract(ctx, payload.Value)

	// Only an unreadable file with nothing salvaged earns a retry; step
	// read errors next to recovered tables go to consent as log entries.
	if len(results) == 0 && errors.Is(err, domain.ErrArchiveRead) {
		logger.Warn("%s: reading %s: %v", f.cfg.Platform, payload.Value, err)
		f.logf("prompt confirmation to retry file selection")
		f.state = domain.StateRetryOffer
		return f.render(retryConfirmation(f.cfg.Platform))
	}

	if err != nil {
		for _, stepErr := range splitErrors(err) {
			logger.Warn("%s: extraction step failed: %v", f.cfg.Platform, stepErr)
			f.log = append(f.log, domain.LogEntry{
				Level:   domain.LogLevelError,
				Message: fmt.Sprintf("%s: %v", f.cfg.Platform, stepErr),
			})
		}
		f.logf("extraction finished with errors, go to consent form")
	} else {
		f.logf("extraction successful, go to consent form")
	}

	return f.promptConsent(results)
}

func (f *DonationFlow) onRetry(payload domain.Payload) domain.Step {
	if payload.Kind == domain.PayloadTrue {
		f.logf("retry prompt file")
		f.state = domain.StateAwaitFile
		return f.render(f.filePrompt())
	}
	f.logf("skip due to invalid file")
	f.state = domain.StateSkippedNext
	return domain.Step{Done: true}
}

func (f *DonationFlow) onConsent(payload domain.Payload) domain.Step {
	if payload.Kind != domain.PayloadJSON {
		f.logf("consent declined")
		f.state = domain.StateDeclined
		return domain.Step{Done: true}
	}
	f.logf("donate consent data")
	f.state = domain.StateDonating
	return domain.Step{
		Command: domain.Donate{
			Key:  domain.DonationKey(f.cfg.SessionID, f.cfg.Platform),
			JSON: payload.Value,
		},
		Done: true,
	}
}

// extract runs the extractor, turning a panic into an ordinary step error.
func (f *DonationFlow) extract(ctx context.Context, path string) (results []domain.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("%s: extractor panic: %v", f.cfg.Platform, r)
			results, err = nil, fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return f.cfg.Extract(ctx, path)
}

func (f *DonationFlow) promptConsent(results []domain.ExtractionResult) domain.Step {
	tables := make([]domain.ConsentTable, 0, len(results))
	for _, r := range results {
		tables = append(tables, domain.ConsentTable{ID: r.ID, Title: r.Title, Table: r.Table})
	}
	meta := domain.ConsentTable{
		ID:    "log_messages",
		Title: domain.Translatable{domain.LanguageEN: "Log messages", domain.LanguageNL: "Log berichten"},
		Table: domain.LogTable(f.log),
	}

	f.logf("prompt consent")
	f.state = domain.StateConsentPrompt
	return f.render(domain.ConsentForm{Tables: tables, MetaTables: []domain.ConsentTable{meta}})
}

func (f *DonationFlow) filePrompt() domain.FileInputPrompt {
	p := f.cfg.Platform
	return domain.FileInputPrompt{
		Description: domain.Translatable{
			domain.LanguageEN: "Please follow the download instructions and choose the file that you stored on your device. " +
				"Click “Skip” at the right bottom, if you do not have a " + p + " file. ",
			domain.LanguageNL: "Volg de download instructies en kies het bestand dat u opgeslagen heeft op uw apparaat. " +
				"Als u geen " + p + " bestand heeft klik dan op “Overslaan” rechts onder.",
		},
		Extensions: f.cfg.Extensions,
	}
}

func retryConfirmation(platform string) domain.ConfirmPrompt {
	return domain.ConfirmPrompt{
		Text: domain.Translatable{
			domain.LanguageEN: "Unfortunately, we cannot process your " + platform + " file. " +
				"Continue, if you are sure that you selected the right file. Try again to select a different file.",
			domain.LanguageNL: "Helaas, kunnen we uw " + platform + " bestand niet verwerken. " +
				"Weet u zeker dat u het juiste bestand heeft gekozen? Ga dan verder. " +
				"Probeer opnieuw als u een ander bestand wilt kiezen.",
		},
		Ok:     domain.Translatable{domain.LanguageEN: "Try again", domain.LanguageNL: "Probeer opnieuw"},
		Cancel: domain.Translatable{domain.LanguageEN: "Continue", domain.LanguageNL: "Verder"},
	}
}

func (f *DonationFlow) render(body domain.PageBody) domain.Step {
	return domain.Step{Command: domain.RenderPage{
		Platform: f.cfg.Platform,
		Body:     body,
		Progress: f.cfg.Progress,
	}}
}

func (f *DonationFlow) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Debug("%s: %s", f.cfg.Platform, msg)
	f.log = append(f.log, domain.LogEntry{
		Level:   domain.LogLevelDebug,
		Message: f.cfg.Platform + ": " + msg,
	})
}

// splitErrors flattens an errors.Join result into its parts.
func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
