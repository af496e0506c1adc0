package domain

// Translatable holds a text in several languages keyed by language code.
type Translatable map[string]string

// Supported languages.
const (
	LanguageEN = "en"
	LanguageNL = "nl"
)

// Text returns the text for lang, falling back to English.
func (t Translatable) Text(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t[LanguageEN]
}

// Table is a column-oriented result with rows of cell values.
// Cells hold strings, integers, floats or json.Number values.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: [][]any{}}
}

// Append adds a row. Missing cells are padded with nil.
func (t *Table) Append(cells ...any) {
	row := make([]any, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column, or -1.
func (t Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// WithoutRows returns a copy of the table with the given row indexes removed.
// Out-of-range indexes are ignored.
func (t Table) WithoutRows(indexes ...int) Table {
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}

	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]any, 0, len(t.Rows)),
	}
	for i, row := range t.Rows {
		if drop[i] {
			continue
		}
		out.Rows = append(out.Rows, append([]any(nil), row...))
	}
	return out
}

// ExtractionResult is a named table produced by one extraction step.
// The ID is stable across runs for the same logical table.
type ExtractionResult struct {
	ID    string
	Title Translatable
	Table Table
}
