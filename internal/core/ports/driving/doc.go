// Package driving holds the interfaces the command line, the TUI and the
// MCP server call into.
//
//   - DonationScript and FlowController: the command/payload loop of a session
//   - ExtractionService and ExtractorRegistry: validating and extracting archives
//   - DonationService: stored donations
//   - SettingsService: extraction and display settings
//
// internal/core/services implements all of them.
package driving
