package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
type mockExtractionService struct {
	validation *domain.ValidationResult
	results    []domain.ExtractionResult
	err        error
}

func (m *mockExtractionService) Validate(_ context.Context, _, _ string) (*domain.ValidationResult, error) {
	return m.validation, m.err
}

func (m *mockExtractionService) Extract(_ context.Context, _, _ string) ([]domain.ExtractionResult, error) {
	return m.results, m.err
}

// mockRegistry is a mock implementation of driving.ExtractorRegistry.
type mockRegistry struct {
	infos []driving.ExtractorInfo
}

func (m *mockRegistry) Platforms() []string {
	out := make([]string, len(m.infos))
	for i, info := range m.infos {
		out[i] = info.Platform
	}
	return out
}

func (m *mockRegistry) Info(platform string) (driving.ExtractorInfo, error) {
	for _, info := range m.infos {
		if info.Platform == platform {
			return info, nil
		}
	}
	return driving.ExtractorInfo{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
}

func (m *mockRegistry) List() []driving.ExtractorInfo {
	return m.infos
}

// mockDonationService is a mock implementation of driving.DonationService.
type mockDonationService struct {
	donations []domain.Donation
	err       error
}

func (m *mockDonationService) Record(_ context.Context, _ domain.Donate) (*domain.Donation, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockDonationService) Get(_ context.Context, id string) (*domain.Donation, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.donations {
		if m.donations[i].ID == id {
			return &m.donations[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDonationService) List(_ context.Context, sessionID string) ([]domain.Donation, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Donation
	for _, d := range m.donations {
		if d.SessionID == sessionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDonationService) Delete(_ context.Context, _ string) error {
	return m.err
}

func testPorts() *Ports {
	return &Ports{
		Extraction: &mockExtractionService{},
		Registry: &mockRegistry{infos: []driving.ExtractorInfo{
			{Platform: "TikTok", Extensions: "application/zip, text/plain", Categories: []string{"json_en"}},
			{Platform: "Facebook", Extensions: "application/zip", Categories: []string{"json_en"}},
		}},
	}
}
