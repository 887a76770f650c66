package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ForrSiis/vsv/ast"
)

const (
	defaultIndent = 2
)

// Style selects how a document is written.
type Style string

const (
	// Text writes Document.String: one numbered row per line.
	Text Style = "text"
	// Lists writes every row as a JSON array led by its tag token.
	Lists Style = "lists"
	// JSON writes the document as an array of row objects.
	JSON Style = "json"
	// Pretty writes a styled listing for terminals.
	Pretty Style = "pretty"
)

// ParseStyle returns the Style named s.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(s)); st {
	case Text, Lists, JSON, Pretty:
		return st, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, lists, json or pretty)", s)
	}
}

// Formatter writes decoded documents to an output stream.
type Formatter struct {
	w      io.Writer
	style  Style
	indent string

	header lipgloss.Style
	data   lipgloss.Style
	muted  lipgloss.Style
}

// New returns a new formatter that writes to w. indentSpaces sets the JSON
// indentation; nil means two spaces and zero means compact output.
func New(w io.Writer, style Style, indentSpaces *int) *Formatter {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}

	// The renderer inspects w, so styling is dropped when w is not a
	// terminal.
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:      w,
		style:  style,
		indent: indentStr,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		data:   r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// Format writes doc in the formatter's style.
func (f *Formatter) Format(doc *ast.Document) error {
	switch f.style {
	case Text:
		_, err := io.WriteString(f.w, doc.String())
		return err
	case Lists:
		return f.writeLists(doc)
	case JSON:
		return f.writeJSON(doc)
	case Pretty:
		return f.writePretty(doc)
	default:
		return fmt.Errorf("unsupported output format %q", f.style)
	}
}

func (f *Formatter) writeLists(doc *ast.Document) error {
	for _, l := range doc.Lists() {
		b, err := json.Marshal(l)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(f.w, "%s\n", b); err != nil {
			return err
		}
	}
	return nil
}

type jsonRow struct {
	Kind      string   `json:"kind"`
	Line      int      `json:"line"`
	Delimiter string   `json:"delimiter,omitempty"`
	Fields    []string `json:"fields"`
}

func (f *Formatter) writeJSON(doc *ast.Document) error {
	rows := make([]jsonRow, 0, doc.Len())
	for _, r := range doc.Rows {
		jr := jsonRow{Kind: r.Kind().String(), Line: r.Pos(), Fields: r.Values()}
		if d, ok := r.(*ast.Data); ok {
			jr.Delimiter = string(d.Delimiter)
		}
		rows = append(rows, jr)
	}

	enc := json.NewEncoder(f.w)
	enc.SetIndent("", f.indent)
	return enc.Encode(rows)
}

func (f *Formatter) writePretty(doc *ast.Document) error {
	width := len(strconv.Itoa(maxLine(doc)))
	sep := f.muted.Render(" │ ")

	for _, r := range doc.Rows {
		num := f.muted.Render(fmt.Sprintf("%*d", width, r.Pos()))

		var tag string
		switch r := r.(type) {
		case *ast.Header:
			tag = f.header.Render("header")
		case *ast.Data:
			tag = f.data.Render("data") + " " + f.muted.Render(strconv.QuoteRune(r.Delimiter))
		}

		fields := make([]string, len(r.Values()))
		for i, v := range r.Values() {
			if v == "" {
				v = f.muted.Render("∅")
			}
			fields[i] = v
		}

		if _, err := fmt.Fprintf(f.w, "%s  %s  %s\n", num, tag, strings.Join(fields, sep)); err != nil {
			return err
		}
	}
	return nil
}

func maxLine(doc *ast.Document) int {
	m := 0
	for _, r := range doc.Rows {
		if r.Pos() > m {
			m = r.Pos()
		}
	}
	return m
}
