// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// donation CLI. It lets AI assistants validate and inspect data download
// packages without running a donation session.
package mcp

import "errors"

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")

// ErrMissingRegistry is returned when the extractor registry is not provided.
var ErrMissingRegistry = errors.New("mcp: extractor registry is required")
