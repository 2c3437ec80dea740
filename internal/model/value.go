package model

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a cell value.
type Kind int

const (
	// KindEmpty marks a missing cell.
	KindEmpty Kind = iota
	// KindNumber marks a cell whose text parses as a finite number.
	KindNumber
	// KindString marks any other cell.
	KindString
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// missingTokens are read as empty cells, matching what spreadsheet exports
// and pandas treat as "no value". Matching is on the exact cell text.
var missingTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-NaN":     true,
	"-nan":     true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// Value is a single table cell. Raw always holds the text read from disk so
// a loaded table can be written back unchanged.
type Value struct {
	Kind Kind
	Raw  string
	Num  float64
}

// Empty is the zero cell used for absent columns.
var Empty = Value{Kind: KindEmpty}

// ParseValue classifies raw cell text.
func ParseValue(raw string) Value {
	if missingTokens[raw] {
		return Value{Kind: KindEmpty, Raw: raw}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Value{Kind: KindNumber, Raw: raw, Num: f}
	}
	return Value{Kind: KindString, Raw: raw}
}

// StringValue builds a string cell without number detection.
func StringValue(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{Kind: KindString, Raw: s}
}

// IsEmpty reports whether the cell is missing.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// IsNumber reports whether the cell holds a number.
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// String returns the raw cell text.
func (v Value) String() string { return v.Raw }

// Key returns the cell text used for grouping and set membership. Missing
// cells have no key.
func (v Value) Key() (string, bool) {
	if v.IsEmpty() {
		return "", false
	}
	return v.Raw, true
}
