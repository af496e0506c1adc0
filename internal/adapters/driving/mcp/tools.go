package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// defaultMaxRows caps the rows returned per table unless the caller asks for more.
const defaultMaxRows = 100

// ValidateInput is the input schema for the validate_archive tool.
type ValidateInput struct {
	Platform string `json:"platform" jsonschema:"platform the archive was exported from, e.g. TikTok or Facebook"`
	Path     string `json:"path" jsonschema:"local path of the zip archive"`
}

// ValidateOutput is the output schema for the validate_archive tool.
type ValidateOutput struct {
	Valid    bool   `json:"valid"`
	StatusID int    `json:"status_id"`
	Status   string `json:"status"`
	Category string `json:"category,omitempty"`
}

// ExtractInput is the input schema for the extract_archive tool.
type ExtractInput struct {
	Platform string `json:"platform" jsonschema:"platform the archive was exported from, e.g. TikTok or Facebook"`
	Path     string `json:"path" jsonschema:"local path of the zip archive"`
	Language string `json:"language,omitempty" jsonschema:"language of table titles, en or nl (default en)"`
	MaxRows  int    `json:"max_rows,omitempty" jsonschema:"maximum rows returned per table (default 100)"`
}

// ExtractOutput is the output schema for the extract_archive tool.
type ExtractOutput struct {
	Tables []TableOutput `json:"tables"`
	Count  int           `json:"count"`
	Errors []string      `json:"errors,omitempty"`
}

// TableOutput represents a single extracted table.
type TableOutput struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated,omitempty"`
}

// PlatformsOutput is the output schema for the list_platforms tool.
type PlatformsOutput struct {
	Platforms []PlatformOutput `json:"platforms"`
}

// PlatformOutput describes one supported platform.
type PlatformOutput struct {
	Platform   string   `json:"platform"`
	Extensions string   `json:"extensions"`
	Categories []string `json:"categories"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_archive",
		Description: "Check whether a data download package can be read and which export shape it has",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_archive",
		Description: "Extract the tables a participant would be asked to donate from a data download package",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_platforms",
		Description: "List the platforms whose data download packages can be extracted",
	}, s.handleListPlatforms)
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	result, err := s.ports.Extraction.Validate(ctx, input.Platform, input.Path)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	output := ValidateOutput{Valid: result.IsValid()}
	if result.Status != nil {
		output.StatusID = result.Status.ID
		output.Status = result.Status.Message
	}
	if result.Category != nil {
		output.Category = result.Category.ID
	}
	return nil, output, nil
}

// handleExtract returns the salvaged tables together with the errors of failed
// steps. It fails only when nothing could be extracted.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	maxRows := input.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}
	lang := input.Language
	if !domain.IsSupportedLanguage(lang) {
		lang = domain.LanguageEN
	}

	results, err := s.ports.Extraction.Extract(ctx, input.Platform, input.Path)
	if err != nil && len(results) == 0 {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		Tables: make([]TableOutput, len(results)),
		Count:  len(results),
	}
	for i, r := range results {
		rows := r.Table.Rows
		if rows == nil {
			rows = [][]any{}
		}
		output.Tables[i] = TableOutput{
			ID:        r.ID,
			Title:     r.Title.Text(lang),
			Columns:   r.Table.Columns,
			Rows:      rows[:min(len(rows), maxRows)],
			RowCount:  len(rows),
			Truncated: len(rows) > maxRows,
		}
	}
	output.Errors = errorStrings(err)

	return nil, output, nil
}

func (s *Server) handleListPlatforms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, PlatformsOutput, error) {
	infos := s.ports.Registry.List()
	output := PlatformsOutput{Platforms: make([]PlatformOutput, len(infos))}
	for i, info := range infos {
		output.Platforms[i] = PlatformOutput{
			Platform:   info.Platform,
			Extensions: info.Extensions,
			Categories: info.Categories,
		}
	}
	return nil, output, nil
}

// errorStrings flattens joined errors into one message per failed step.
func errorStrings(err error) []string {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
