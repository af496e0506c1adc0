package driving

import (
	"context"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// ExtractionService validates and extracts export archives.
type ExtractionService interface {
	// Validate reports the archive's status code and inferred category.
	// A corrupt zip is a result with StatusBadZip, not an error.
	Validate(ctx context.Context, platform, path string) (*domain.ValidationResult, error)

	// Extract validates the archive and builds the platform's tables.
	// Partial results are returned alongside the errors of failed steps.
	Extract(ctx context.Context, platform, path string) ([]domain.ExtractionResult, error)
}

// ExtractorInfo describes a registered platform.
type ExtractorInfo struct {
	Platform   string
	Extensions string
	Categories []string
}

// ExtractorRegistry lists the platforms that can be donated.
type ExtractorRegistry interface {
	// Platforms returns registered platforms in registration order.
	Platforms() []string

	// Info describes a platform.
	Info(platform string) (ExtractorInfo, error)

	// List describes all registered platforms.
	List() []ExtractorInfo
}
