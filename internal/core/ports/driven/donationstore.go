package driven

import (
	"context"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// DonationStore persists donated payloads.
type DonationStore interface {
	// Save stores a donation. Saving an existing ID replaces it.
	Save(ctx context.Context, donation domain.Donation) error

	// Get retrieves a donation by ID.
	Get(ctx context.Context, id string) (*domain.Donation, error)

	// List returns donations ordered by creation time.
	// An empty sessionID lists every session.
	List(ctx context.Context, sessionID string) ([]domain.Donation, error)

	// Delete removes a donation.
	Delete(ctx context.Context, id string) error
}
