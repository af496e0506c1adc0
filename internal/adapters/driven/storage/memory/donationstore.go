package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
)

// Ensure DonationStore implements the interface.
var _ driven.DonationStore = (*DonationStore)(nil)

// DonationStore is an in-memory implementation of driven.DonationStore.
type DonationStore struct {
	mu        sync.RWMutex
	donations map[string]domain.Donation
}

// NewDonationStore creates a new in-memory donation store.
func NewDonationStore() *DonationStore {
	return &DonationStore{
		donations: make(map[string]domain.Donation),
	}
}

// Save stores or replaces a donation.
func (s *DonationStore) Save(_ context.Context, donation domain.Donation) error {
	if donation.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations[donation.ID] = donation
	return nil
}

// Get retrieves a donation by ID.
func (s *DonationStore) Get(_ context.Context, id string) (*domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donation, ok := s.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &donation, nil
}

// List returns donations ordered by creation time, then key.
func (s *DonationStore) List(_ context.Context, sessionID string) ([]domain.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Donation, 0, len(s.donations))
	for _, d := range s.donations {
		if sessionID == "" || d.SessionID == sessionID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

// Delete removes a donation.
func (s *DonationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.donations, id)
	return nil
}
