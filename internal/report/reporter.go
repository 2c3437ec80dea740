// Package report carries the human-readable progress and summary text the
// merge and analysis stages print.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Reporter emits lines of report text.
type Reporter interface {
	// Linef writes one formatted line.
	Linef(format string, args ...any)
	// Table writes an aligned table with a header row.
	Table(header []string, rows [][]string)
}

// Console writes report text to an io.Writer, normally stdout.
type Console struct {
	w io.Writer
}

// NewConsole returns a Reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Linef writes one formatted line.
func (c *Console) Linef(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}

// Table writes header and rows as tab-aligned columns.
func (c *Console) Table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(c.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

// Nop discards everything.
type Nop struct{}

// Linef discards the line.
func (Nop) Linef(string, ...any) {}

// Table discards the table.
func (Nop) Table([]string, [][]string) {}

// Rule returns a horizontal rule of n '=' characters.
func Rule(n int) string {
	return strings.Repeat("=", n)
}
