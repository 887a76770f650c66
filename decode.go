package vsv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ForrSiis/vsv/ast"
	"github.com/ForrSiis/vsv/internal/lexer"
	"github.com/ForrSiis/vsv/internal/parser"
)

const (
	stringSource = "<string>"
	readerSource = "<reader>"
)

// Decode decodes a VSV document. By default source is the literal text to
// decode; with the AsFile option it is the path of a file to read.
//
// If the source cannot be opened or read, or is not valid UTF-8, Decode
// returns an empty Document and a *SourceError. Blank lines and header
// lines without a bracketed field are skipped silently.
func Decode(source string, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return &ast.Document{}, err
	}

	if !o.asFile {
		return newDecoder(strings.NewReader(source), stringSource, o).Decode()
	}

	f, err := os.Open(source)
	if err != nil {
		serr := &SourceError{Source: source, Err: err}
		o.logger.Error("vsv: cannot open source", "source", source, "error", err)
		return &ast.Document{}, serr
	}
	defer f.Close()

	return newDecoder(f, source, o).Decode()
}

// DecodeFile decodes the VSV file at path. It is shorthand for
// Decode(path, AsFile()).
func DecodeFile(path string, opts ...Option) (*ast.Document, error) {
	return Decode(path, append(opts[:len(opts):len(opts)], AsFile())...)
}

// Decoder reads rows from an input stream one line at a time.
//
// A Decoder does not close its reader. It is not safe for concurrent use.
type Decoder struct {
	p       *parser.Parser
	o       *options
	source  string
	skipped []SkippedLine
	err     error
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder buffers data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	if r == nil {
		return &Decoder{err: fmt.Errorf("vsv: NewDecoder(nil reader)")}
	}
	o, err := newOptions(opts)
	if err != nil {
		return &Decoder{err: err}
	}
	return newDecoder(r, readerSource, o)
}

func newDecoder(r io.Reader, source string, o *options) *Decoder {
	if o.charset != nil {
		r = transform.NewReader(r, unicode.BOMOverride(o.charset.NewDecoder()))
	}
	return &Decoder{
		p:      parser.New(lexer.New(r, o.lexer), o.parser),
		o:      o,
		source: source,
	}
}

// Next returns the next row of the document. It returns io.EOF when the
// input is exhausted.
//
// A source failure is returned as a *SourceError, and every later call
// returns the same error.
func (d *Decoder) Next() (ast.Row, error) {
	if d.err != nil {
		return nil, d.err
	}
	for {
		res, ok := d.p.Next()
		if !ok {
			if err := d.p.Err(); err != nil {
				return nil, d.fail(res.Token.Line+1, err)
			}
			return nil, io.EOF
		}

		switch res.Reason {
		case parser.Kept:
			return res.Row, nil
		case parser.Blank:
			d.skip(res, SkipBlank)
		case parser.Comment:
			d.skip(res, SkipComment)
		default:
			return nil, d.fail(res.Token.Line, ErrInvalidText)
		}
	}
}

// Decode reads the rest of the input and returns it as a Document.
// On a source failure it returns an empty Document and the error.
func (d *Decoder) Decode() (*ast.Document, error) {
	doc := &ast.Document{}
	for {
		row, err := d.Next()
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		if err != nil {
			return &ast.Document{}, err
		}
		doc.Rows = append(doc.Rows, row)
	}
}

// Skipped returns the lines skipped so far, in source order.
func (d *Decoder) Skipped() []SkippedLine {
	out := make([]SkippedLine, len(d.skipped))
	copy(out, d.skipped)
	return out
}

func (d *Decoder) skip(res parser.Result, reason SkipReason) {
	s := SkippedLine{Line: res.Token.Line, Reason: reason, Text: res.Token.Literal}
	d.skipped = append(d.skipped, s)
	d.o.logger.Debug("vsv: skipped line", "source", d.source, "line", s.Line, "reason", reason.String())
	if d.o.onSkip != nil {
		d.o.onSkip(s)
	}
}

func (d *Decoder) fail(line int, err error) error {
	d.err = &SourceError{Source: d.source, Line: line, Err: err}
	d.o.logger.Error("vsv: source unavailable", "source", d.source, "line", line, "error", err)
	return d.err
}
