package tableio

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/peer-eval-cli/internal/model"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// LoadCSV reads a CSV file with a header row into a table.
func LoadCSV(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(f)
}

// ReadCSV parses CSV with a header row. Input must be UTF-8, optionally with a
// byte order mark; UTF-16 input is accepted when it starts with a BOM. Blank
// lines are skipped. A bare quote inside a field is kept literally, but a
// quoted field left open at end of input is an error. A record with more
// fields than the header is an error; shorter records are padded with empty
// cells.
func ReadCSV(r io.Reader) (*model.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "csv: read input")
	}

	data, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	if line, open := unclosedQuote(data); open {
		return nil, eris.Errorf("csv: line %d: quoted field is never closed", line)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // widths are checked against the header below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: no columns to parse from file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	t := newTable(header)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		if len(rec) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, eris.Errorf("csv: line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		appendRecord(t, rec)
	}

	return t, nil
}

// unclosedQuote reports the line where a quoted field starts that never
// closes. csv.Reader with LazyQuotes folds such a field into the rest of the
// input instead of failing.
func unclosedQuote(data []byte) (int, bool) {
	line := 1
	fieldStart := true
	for i := 0; i < len(data); i++ {
		c := data[i]
		if fieldStart && c == '"' {
			start := line
			closed := false
			for i++; i < len(data); i++ {
				if data[i] == '\n' {
					line++
					continue
				}
				if data[i] != '"' {
					continue
				}
				if i+1 < len(data) && data[i+1] == '"' {
					i++
					continue
				}
				if i+1 == len(data) || data[i+1] == ',' || data[i+1] == '\n' || data[i+1] == '\r' {
					closed = true
					break
				}
			}
			if !closed {
				return start, true
			}
			fieldStart = false
			continue
		}
		switch c {
		case ',':
			fieldStart = true
		case '\n':
			line++
			fieldStart = true
		default:
			fieldStart = false
		}
	}
	return 0, false
}

// decodeText returns UTF-8 text with any byte order mark removed.
func decodeText(raw []byte) ([]byte, error) {
	utf16 := bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE)
	if !utf16 && !utf8.Valid(raw) {
		return nil, eris.New("csv: input is not valid UTF-8")
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, eris.Wrap(err, "csv: decode input")
	}
	return out, nil
}

// SaveCSV writes t to path as CSV with a header row, replacing any existing
// file.
func SaveCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "csv: create %s", path)
	}

	if err := WriteCSV(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "csv: close %s", path)
}

// WriteCSV encodes t as comma-separated, newline-terminated records with
// minimal quoting.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for i := range t.Rows {
		if err := cw.Write(t.Record(i)); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "csv: flush")
}
