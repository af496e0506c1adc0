package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Ensure DonationService implements the interface.
var _ driving.DonationService = (*DonationService)(nil)

// DonationService stores the payloads of donate commands.
type DonationService struct {
	store driven.DonationStore
	now   func() time.Time
}

// NewDonationService creates a new donation service.
func NewDonationService(store driven.DonationStore) *DonationService {
	return &DonationService{store: store, now: time.Now}
}

// Record stores the payload of a donate command.
// The payload must be valid JSON and the key must name a session and platform.
func (s *DonationService) Record(ctx context.Context, cmd domain.Donate) (*domain.Donation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	sessionID, platform, err := domain.ParseDonationKey(cmd.Key)
	if err != nil {
		return nil, fmt.Errorf("donation key %q: %w", cmd.Key, err)
	}
	if !json.Valid([]byte(cmd.JSON)) {
		return nil, fmt.Errorf("%w: donation payload is not valid JSON", domain.ErrInvalidInput)
	}

	d := domain.Donation{
		ID:        uuid.New().String(),
		Key:       cmd.Key,
		SessionID: sessionID,
		Platform:  platform,
		Payload:   cmd.JSON,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save donation: %w", err)
	}
	logger.Info("Stored donation %s (%d bytes)", d.Key, len(d.Payload))
	return &d, nil
}

// Get retrieves a donation by ID.
func (s *DonationService) Get(ctx context.Context, id string) (*domain.Donation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns the donations of a session, or all when sessionID is empty.
func (s *DonationService) List(ctx context.Context, sessionID string) ([]domain.Donation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx, sessionID)
}

// Delete removes a donation.
func (s *DonationService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}
