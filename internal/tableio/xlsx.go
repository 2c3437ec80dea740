package tableio

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/peer-eval-cli/internal/model"
)

// SheetName is the worksheet SaveXLSX writes.
const SheetName = "Evaluations"

// LoadXLSX reads the first worksheet of an XLSX file. The first non-blank row
// is the header.
func LoadXLSX(path string) (*model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: file has no sheets")
	}

	var t *model.Table
	width := 0
	for i, row := range f.Sheets[0].Rows {
		if row == nil {
			continue
		}
		cells := rowToStrings(row)
		if t == nil {
			if blank(cells) {
				continue
			}
			t = newTable(cells)
			width = len(cells)
			continue
		}
		if blank(cells) {
			continue
		}
		if len(cells) > width {
			cells = trimTrailingBlank(cells, width)
			if len(cells) > width {
				return nil, eris.Errorf("xlsx: row %d: expected %d fields, saw %d", i+1, width, len(cells))
			}
		}
		appendRecord(t, cells)
	}

	if t == nil {
		return nil, eris.New("xlsx: sheet is empty")
	}
	return t, nil
}

// SaveXLSX writes t to a single worksheet, header row first, every cell as
// text so values round-trip exactly.
func SaveXLSX(path string, t *model.Table) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range t.Columns {
		header.AddCell().SetString(c)
	}
	for i := range t.Rows {
		r := sheet.AddRow()
		for _, v := range t.Record(i) {
			r.AddCell().SetString(v)
		}
	}

	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// trimTrailingBlank drops empty cells past width; spreadsheet editors often
// leave formatted but empty cells at the end of a row.
func trimTrailingBlank(cells []string, width int) []string {
	end := len(cells)
	for end > width && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
