package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

func TestCellText(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "Followers", "Followers"},
		{"int", 42, "42"},
		{"int64", int64(87), "87"},
		{"float", 50.0, "50"},
		{"fraction", 12.34, "12.34"},
		{"json number", json.Number("7"), "7"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cellText(tt.value))
		})
	}
}

func TestRenderTable(t *testing.T) {
	table := domain.NewTable("Sender", "Content")
	table.Append("Alice", "Hi")
	table.Append("Bob", nil)

	buf := new(bytes.Buffer)
	renderTable(buf, "Conversation", table, true)

	out := buf.String()
	assert.Contains(t, out, "Conversation")
	assert.Contains(t, out, "SENDER")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "│ 2 │")
}

func TestRenderResults_Empty(t *testing.T) {
	buf := new(bytes.Buffer)
	renderResults(buf, nil, domain.LanguageEN)

	assert.Equal(t, "No tables extracted.\n", buf.String())
}

func TestResultsJSON(t *testing.T) {
	results := []domain.ExtractionResult{{
		ID:    "tiktok_summary",
		Title: domain.Translatable{domain.LanguageEN: "Summary information", domain.LanguageNL: "Samenvatting gegevens"},
		Table: domain.Table{Columns: []string{"Description", "Number"}},
	}}

	buf := new(bytes.Buffer)
	require.NoError(t, printJSON(buf, resultsJSON(results, domain.LanguageNL)))

	assert.JSONEq(t, `[{"id":"tiktok_summary","title":"Samenvatting gegevens","columns":["Description","Number"],"rows":[]}]`, buf.String())
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	assert.Zero(t, terminalWidth(new(bytes.Buffer)))
}
