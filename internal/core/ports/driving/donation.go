package driving

import (
	"context"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// DonationService records donate commands emitted by a script.
type DonationService interface {
	// Record stores the payload of a donate command.
	Record(ctx context.Context, cmd domain.Donate) (*domain.Donation, error)

	// Get retrieves a donation by ID.
	Get(ctx context.Context, id string) (*domain.Donation, error)

	// List returns the donations of a session, or all when sessionID is empty.
	List(ctx context.Context, sessionID string) ([]domain.Donation, error)

	// Delete removes a donation.
	Delete(ctx context.Context, id string) error
}
