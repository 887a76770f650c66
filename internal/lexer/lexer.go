package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/ForrSiis/vsv/internal/token"
)

// Config controls how raw lines are cleaned up before classification.
type Config struct {
	// StripCR drops one trailing carriage return from each line.
	StripCR bool
	// Unescape decodes HTML entities such as &lt; and &amp;.
	Unescape bool
}

// Lexer holds the state for splitting VSV source into line tokens.
type Lexer struct {
	r    *bufio.Reader
	cfg  Config
	line int
	done bool
	err  error
}

// New creates and returns a new Lexer reading from r.
func New(r io.Reader, cfg Config) *Lexer {
	return &Lexer{
		r:   bufio.NewReader(r),
		cfg: cfg,
	}
}

// NextToken reads the next line and returns it as a token.
//
// Once the input is exhausted, or reading fails, NextToken returns EOF
// forever. Err reports whether the EOF was caused by a read failure.
func (l *Lexer) NextToken() token.Token {
	if l.done {
		return token.Token{Type: token.EOF, Line: l.line}
	}

	raw, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if !errors.Is(err, io.EOF) {
			l.err = err
			return token.Token{Type: token.EOF, Line: l.line}
		}
		if raw == "" {
			return token.Token{Type: token.EOF, Line: l.line}
		}
	}
	l.line++

	tok := token.Token{Line: l.line}
	if !utf8.ValidString(raw) {
		tok.Type = token.ILLEGAL
		tok.Literal = "invalid utf-8"
		return tok
	}

	tok.Literal = l.clean(raw)
	tok.Type = token.Classify(tok.Literal)
	return tok
}

// Err returns the read error that ended the input, if any.
func (l *Lexer) Err() error {
	return l.err
}

// Line returns the number of lines read so far.
func (l *Lexer) Line() int {
	return l.line
}

// clean trims spaces before removing the terminator, so spaces in front
// of a newline are kept. Only U+0020 is trimmed; tabs are valid
// delimiters.
func (l *Lexer) clean(raw string) string {
	s := raw
	if l.cfg.Unescape {
		s = html.UnescapeString(s)
	}
	s = strings.Trim(s, " ")
	s = strings.TrimSuffix(s, "\n")
	if l.cfg.StripCR {
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}
