package driven

import (
	"context"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// Extractor turns one platform's export archive into result tables.
type Extractor interface {
	// Platform returns the platform name, e.g. "tiktok".
	Platform() string

	// Extensions returns the MIME types offered by the file prompt.
	Extensions() string

	// Categories returns the known archive shapes used for validation.
	Categories() []domain.DDPCategory

	// Extract reads the archive at path.
	// It returns the tables that could be built along with the joined
	// errors of the steps that failed. Read failures wrap domain.ErrArchiveRead.
	Extract(ctx context.Context, path string) ([]domain.ExtractionResult, error)
}
