package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService validates archives before handing them to a platform extractor.
type ExtractionService struct {
	registry *ExtractorRegistry
	opener   driven.ArchiveOpener
}

// NewExtractionService creates a new extraction service.
func NewExtractionService(registry *ExtractorRegistry, opener driven.ArchiveOpener) *ExtractionService {
	return &ExtractionService{registry: registry, opener: opener}
}

// Validate reports the status code and inferred category of an archive.
func (s *ExtractionService) Validate(ctx context.Context, platform, file string) (*domain.ValidationResult, error) {
	e, err := s.registry.Get(platform)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := domain.NewValidationResult(domain.DefaultStatusCodes(), e.Categories())

	archive, err := s.opener.Open(file)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptArchive) {
			result.SetStatusCode(domain.StatusBadZip)
			return result, nil
		}
		return nil, fmt.Errorf("validate archive: %w", err)
	}
	defer archive.Close()

	result.InferCategory(ValidationNames(archive.Names()))
	result.SetStatusCode(domain.StatusValid)
	return result, nil
}

// Extract validates the archive and builds the platform's tables.
// A corrupt archive short-circuits with ErrCorruptArchive before extraction.
func (s *ExtractionService) Extract(ctx context.Context, platform, file string) ([]domain.ExtractionResult, error) {
	// 1. Validate the archive
	result, err := s.Validate(ctx, platform, file)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrArchiveRead, domain.ErrCorruptArchive, result.Status.Message)
	}
	if result.Category != nil {
		logger.Info("%s archive matches category %s", platform, result.Category.ID)
	} else {
		logger.Info("%s archive matches no known category", platform)
	}

	// 2. Run the extractor
	e, err := s.registry.Get(platform)
	if err != nil {
		return nil, err
	}
	results, err := e.Extract(ctx, file)
	logger.Debug("%s extraction produced %d tables", platform, len(results))
	return results, err
}

// ValidationNames returns the base names of the .json and .html entries.
func ValidationNames(names []string) []string {
	var out []string
	for _, n := range names {
		if strings.HasSuffix(n, "/") {
			continue
		}
		switch strings.ToLower(path.Ext(n)) {
		case ".json", ".html":
			out = append(out, path.Base(n))
		}
	}
	return out
}
