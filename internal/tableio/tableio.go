// Package tableio loads and saves model tables as CSV or XLSX files.
package tableio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sells-group/peer-eval-cli/internal/model"
)

// Format is an on-disk table encoding.
type Format string

const (
	// FormatCSV is comma-separated text with a header row.
	FormatCSV Format = "csv"
	// FormatXLSX is a single-sheet Excel workbook.
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the encoding from the file extension. Anything that is not
// .xlsx is treated as CSV.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Load reads the table at path using the encoding implied by its extension.
func Load(path string) (*model.Table, error) {
	if FormatFor(path) == FormatXLSX {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// Save writes t to path using the encoding implied by its extension,
// replacing any existing file.
func Save(path string, t *model.Table) error {
	if FormatFor(path) == FormatXLSX {
		return SaveXLSX(path, t)
	}
	return SaveCSV(path, t)
}

// newTable builds an empty table from a header row. Blank names become
// "Unnamed: <i>" and repeated names get a ".<n>" suffix so every column name
// is unique.
func newTable(header []string) *model.Table {
	cols := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for n := 1; ; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		cols[i] = name
	}
	return model.NewTable(cols...)
}

// appendRecord adds a data record to t. Short records are padded with empty
// cells; callers reject records wider than the header.
func appendRecord(t *model.Table, rec []string) {
	r := make(model.Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(rec) {
			r[c] = model.ParseValue(rec[i])
		} else {
			r[c] = model.Empty
		}
	}
	t.Append(r)
}
