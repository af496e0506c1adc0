// Package xlsx writes extraction results to an Excel workbook so
// participants and researchers can inspect a donation outside the CLI.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// ContentsSheet lists every table of the workbook.
const ContentsSheet = "Contents"

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// Write saves one sheet per result to path, preceded by a contents sheet.
// Titles are rendered in lang.
func Write(path string, results []domain.ExtractionResult, lang string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", ContentsSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(ContentsSheet, "A1", &[]any{"Sheet", "ID", "Title", "Rows"}); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetRowStyle(ContentsSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	used := map[string]bool{strings.ToLower(ContentsSheet): true}
	for i, r := range results {
		name := SheetName(r.ID, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: sheet %s: %w", name, err)
		}
		if err := writeTable(f, name, r.Table, bold); err != nil {
			return fmt.Errorf("xlsx: sheet %s: %w", name, err)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		row := []any{name, r.ID, r.Title.Text(lang), r.Table.Len()}
		if err := f.SetSheetRow(ContentsSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %s: %w", path, err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t domain.Table, header int) error {
	columns := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
		return err
	}

	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps values excelize cannot store natively to text.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string, bool, int, int64, float64:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// SheetName derives a unique, valid sheet name from id and records it in used.
// Excel compares sheet names case-insensitively.
func SheetName(id string, used map[string]bool) string {
	base := sheetNameReplacer.Replace(id)
	if base == "" {
		base = "table"
	}
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = base[:min(len(base), maxSheetName-len(suffix))] + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
