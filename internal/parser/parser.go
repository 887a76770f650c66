package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/ForrSiis/vsv/ast"
	"github.com/ForrSiis/vsv/internal/lexer"
	"github.com/ForrSiis/vsv/internal/token"
)

// Reason tells why a line did or did not produce a row.
type Reason int

const (
	// Kept means the line produced a row.
	Kept Reason = iota
	// Blank means the line was empty after trimming.
	Blank
	// Comment means a header line held no bracketed field.
	Comment
	// Illegal means the line could not be read as text.
	Illegal
)

// Result is the outcome of decoding one line. Row is set only when
// Reason is Kept.
type Result struct {
	Row    ast.Row
	Reason Reason
	Token  token.Token
}

// Config controls header extraction.
type Config struct {
	// LooseBrackets pairs any two opening bracket characters with any two
	// closing ones, so "[(x}>" yields "x".
	LooseBrackets bool
}

// Parser turns line tokens into rows.
type Parser struct {
	l   *lexer.Lexer
	cfg Config
}

// New creates a new parser.
func New(l *lexer.Lexer, cfg Config) *Parser {
	return &Parser{l: l, cfg: cfg}
}

// Next decodes the next line. ok is false once the lexer reaches EOF.
func (p *Parser) Next() (res Result, ok bool) {
	tok := p.l.NextToken()
	if tok.Type == token.EOF {
		return Result{Token: tok}, false
	}
	return ParseLine(tok, p.cfg), true
}

// Err returns the read error that ended the input, if any.
func (p *Parser) Err() error {
	return p.l.Err()
}

// ParseLine decodes a single line token.
func ParseLine(tok token.Token, cfg Config) Result {
	res := Result{Token: tok}
	switch tok.Type {
	case token.HEADER:
		fields := ExtractHeader(tok.Literal, cfg.LooseBrackets)
		if len(fields) == 0 {
			res.Reason = Comment
			return res
		}
		res.Row = &ast.Header{Fields: fields, Line: tok.Line}
	case token.DATA:
		delim, fields := SplitData(tok.Literal)
		res.Row = &ast.Data{Fields: fields, Delimiter: delim, Line: tok.Line}
	case token.BLANK:
		res.Reason = Blank
	default:
		res.Reason = Illegal
	}
	return res
}

// ExtractHeader returns the content of every non-overlapping bracketed
// field on line, left to right. A field is a doubled opening bracket, the
// shortest possible content, and the doubled closing bracket of the same
// shape: "{{menu}}", "[[;]]", "{{}}".
func ExtractHeader(line string, loose bool) []string {
	var fields []string
	for i := 0; i+1 < len(line); {
		content, end, ok := matchField(line, i, loose)
		if !ok {
			i++
			continue
		}
		fields = append(fields, content)
		i = end
	}
	return fields
}

// matchField tries to match a bracketed field starting at line[i]. It
// returns the content and the index just past the closing pair.
func matchField(line string, i int, loose bool) (string, int, bool) {
	open, next := line[i], line[i+1]
	if !token.IsOpener(open) || !token.IsOpener(next) {
		return "", 0, false
	}
	start := i + 2

	if loose {
		for j := start; j+1 < len(line); j++ {
			if token.IsCloser(line[j]) && token.IsCloser(line[j+1]) {
				return line[start:j], j + 2, true
			}
		}
		return "", 0, false
	}

	if open != next {
		return "", 0, false
	}
	c, _ := token.Closer(open)
	k := strings.Index(line[start:], string([]byte{c, c}))
	if k < 0 {
		return "", 0, false
	}
	return line[start : start+k], start + k + 2, true
}

// SplitData splits a data line on its leading character. One trailing
// delimiter is ignored; empty fields are kept.
func SplitData(line string) (rune, []string) {
	delim, size := utf8.DecodeRuneInString(line)
	sep := line[:size]
	rest := strings.TrimSuffix(line[size:], sep)
	return delim, strings.Split(rest, sep)
}
