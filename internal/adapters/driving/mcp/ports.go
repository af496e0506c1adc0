package mcp

import (
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Extraction validates and extracts archives.
	Extraction driving.ExtractionService

	// Registry lists the supported platforms.
	Registry driving.ExtractorRegistry

	// Donations exposes stored donations as resources.
	Donations driving.DonationService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	// Donations are optional; without them no donation resources are served.
	return nil
}
