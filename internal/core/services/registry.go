package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
)

// Ensure ExtractorRegistry implements the interface.
var _ driving.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry holds the extractors of the supported platforms.
// Lookups ignore case, so "tiktok" finds the "TikTok" extractor.
type ExtractorRegistry struct {
	extractors map[string]driven.Extractor
	order      []string
}

// NewExtractorRegistry creates a registry with the given extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	r := &ExtractorRegistry{extractors: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor, replacing one registered for the same platform.
func (r *ExtractorRegistry) Register(e driven.Extractor) {
	key := strings.ToLower(e.Platform())
	if _, exists := r.extractors[key]; !exists {
		r.order = append(r.order, key)
	}
	r.extractors[key] = e
}

// Get returns the extractor for a platform.
func (r *ExtractorRegistry) Get(platform string) (driven.Extractor, error) {
	e, ok := r.extractors[strings.ToLower(platform)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
	}
	return e, nil
}

// Platforms returns registered platform labels in registration order.
func (r *ExtractorRegistry) Platforms() []string {
	out := make([]string, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.extractors[key].Platform())
	}
	return out
}

// Info describes a platform.
func (r *ExtractorRegistry) Info(platform string) (driving.ExtractorInfo, error) {
	e, err := r.Get(platform)
	if err != nil {
		return driving.ExtractorInfo{}, err
	}
	return infoOf(e), nil
}

// List describes all registered platforms.
func (r *ExtractorRegistry) List() []driving.ExtractorInfo {
	out := make([]driving.ExtractorInfo, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, infoOf(r.extractors[key]))
	}
	return out
}

func infoOf(e driven.Extractor) driving.ExtractorInfo {
	cats := e.Categories()
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return driving.ExtractorInfo{
		Platform:   e.Platform(),
		Extensions: e.Extensions(),
		Categories: ids,
	}
}
