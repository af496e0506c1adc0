package driving

import (
	"context"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// FlowController drives one platform's donation round for one session.
// The host calls Start once, renders the returned command, and calls
// Resume with the user's response until a step reports Done.
type FlowController interface {
	// Platform returns the platform the flow collects.
	Platform() string

	// Start emits the first command.
	Start() domain.Step

	// Resume continues a suspended flow with the host's response.
	Resume(ctx context.Context, payload domain.Payload) (domain.Step, error)

	// State returns the current state.
	State() domain.FlowState

	// Log returns a copy of the audit log.
	Log() []domain.LogEntry
}

// DonationScript sequences the platform flows of one session.
type DonationScript interface {
	// SessionID returns the session the script runs for.
	SessionID() string

	// Start emits the first command of the session.
	Start() domain.Step

	// Resume forwards the host's response to the active flow.
	// Donate commands are acknowledged by resuming with any payload.
	Resume(ctx context.Context, payload domain.Payload) (domain.Step, error)
}
