// Package ast defines the rows produced by decoding a VSV document.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which case of Row a value is.
type Kind int

const (
	// HeaderRow marks a line of bracketed field names, e.g. {{menu}}.
	HeaderRow Kind = iota + 1
	// DataRow marks a line split on its leading delimiter, e.g. ,a,b,c.
	DataRow
)

// String returns the tag token used for the kind: "header" or "data".
func (k Kind) String() string {
	switch k {
	case HeaderRow:
		return "header"
	case DataRow:
		return "data"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Row is a single decoded line. It is implemented by *Header and *Data
// only.
type Row interface {
	// Kind reports whether the row is a header or a data row.
	Kind() Kind
	// Values returns the row's fields in source order.
	Values() []string
	// Pos returns the 1-based source line the row was decoded from.
	Pos() int
	// String returns a string representation of the row.
	String() string
	rowNode()
}

// Header is a row of bracket-delimited field names.
type Header struct {
	Fields []string
	Line   int
}

func (h *Header) rowNode()         {}
func (h *Header) Kind() Kind       { return HeaderRow }
func (h *Header) Values() []string { return h.Fields }
func (h *Header) Pos() int         { return h.Line }
func (h *Header) String() string   { return "header " + quoteFields(h.Fields) }

// Data is a row of delimiter-separated values.
type Data struct {
	Fields []string
	// Delimiter is the line's leading character.
	Delimiter rune
	Line      int
}

func (d *Data) rowNode()         {}
func (d *Data) Kind() Kind       { return DataRow }
func (d *Data) Values() []string { return d.Fields }
func (d *Data) Pos() int         { return d.Line }
func (d *Data) String() string {
	return "data " + strconv.QuoteRune(d.Delimiter) + " " + quoteFields(d.Fields)
}

// Document is the ordered sequence of rows decoded from one source.
type Document struct {
	Rows []Row
}

// Len returns the number of rows.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// String returns one line per row, in source order.
func (d *Document) String() string {
	if d == nil {
		return ""
	}
	var out bytes.Buffer
	for _, r := range d.Rows {
		fmt.Fprintf(&out, "%d: %s\n", r.Pos(), r.String())
	}
	return out.String()
}

// Lists returns every row as its tag token followed by its fields, e.g.
// ["header", "menu"] or ["data", "a", "b"].
func (d *Document) Lists() [][]string {
	out := make([][]string, 0, d.Len())
	if d == nil {
		return out
	}
	for _, r := range d.Rows {
		fields := r.Values()
		l := make([]string, 0, len(fields)+1)
		l = append(l, r.Kind().String())
		l = append(l, fields...)
		out = append(out, l)
	}
	return out
}

func quoteFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = strconv.Quote(f)
	}
	return "[" + strings.Join(quoted, " ") + "]"
}
