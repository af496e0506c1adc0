package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// resultJSON is the --json shape of one extracted table.
type resultJSON struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func resultsJSON(results []domain.ExtractionResult, lang string) []resultJSON {
	out := make([]resultJSON, len(results))
	for i, r := range results {
		rows := r.Table.Rows
		if rows == nil {
			rows = [][]any{}
		}
		out[i] = resultJSON{ID: r.ID, Title: r.Title.Text(lang), Columns: r.Table.Columns, Rows: rows}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderResults prints every result as a titled table.
func renderResults(w io.Writer, results []domain.ExtractionResult, lang string) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No tables extracted.")
		return
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderTable(w, fmt.Sprintf("%s (%s)", r.Title.Text(lang), r.ID), r.Table, false)
	}
}

// renderTable writes t with go-pretty. Numbered tables get a leading row
// number column so rows can be picked for removal.
func renderTable(w io.Writer, title string, t domain.Table, numbered bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle(title)
	}
	if width := terminalWidth(w); width > 0 {
		tw.SetAllowedRowLength(width)
	}

	header := table.Row{}
	if numbered {
		header = append(header, "#")
	}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)

	for i, r := range t.Rows {
		row := table.Row{}
		if numbered {
			row = append(row, i+1)
		}
		for _, v := range r {
			row = append(row, cellText(v))
		}
		tw.AppendRow(row)
	}
	if len(t.Rows) == 0 {
		tw.AppendFooter(table.Row{"(no rows)"})
	}
	tw.Render()
}

// cellText formats a cell the way it appears in a donated payload.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
