package vsv

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ForrSiis/vsv/internal/lexer"
	"github.com/ForrSiis/vsv/internal/parser"
)

// Option configures a decode call.
type Option func(*options) error

type options struct {
	asFile  bool
	lexer   lexer.Config
	parser  parser.Config
	charset encoding.Encoding
	logger  *slog.Logger
	onSkip  func(SkippedLine)
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// AsFile makes Decode treat its source argument as a path to a file to
// read. It has no effect on a Decoder, which always reads its reader.
func AsFile() Option {
	return func(o *options) error {
		o.asFile = true
		return nil
	}
}

// StripCarriageReturn drops one trailing carriage return from each line
// before trimming, so Windows line endings decode like Unix ones. By
// default the carriage return is kept and becomes part of the last field
// of a data row.
func StripCarriageReturn() Option {
	return func(o *options) error {
		o.lexer.StripCR = true
		return nil
	}
}

// UnescapeEntities decodes HTML character references such as &lt;, &amp;
// and &#62; in every line before it is trimmed and classified. Text copied
// out of a web page can then use &lt;&lt;tag&gt;&gt; headers.
//
// Entities are decoded one line at a time, so &#10; becomes a newline
// inside its line instead of starting a new one, and &#32; at either end
// of a line is trimmed like a literal space.
func UnescapeEntities() Option {
	return func(o *options) error {
		o.lexer.Unescape = true
		return nil
	}
}

// LooseBrackets lets any two opening bracket characters pair with any two
// closing bracket characters in header fields, so "[(x}>" yields "x".
// By default both halves must be a doubled bracket of the same shape.
func LooseBrackets() Option {
	return func(o *options) error {
		o.parser.LooseBrackets = true
		return nil
	}
}

// Charset decodes the source from the named character encoding before
// decoding VSV. Names are WHATWG labels such as "latin1", "utf-16le" or
// "shift_jis". A leading byte order mark takes precedence over name.
//
// Bytes that are invalid in the encoding are replaced with U+FFFD rather
// than failing the decode.
func Charset(name string) Option {
	return func(o *options) error {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return fmt.Errorf("vsv: unknown charset %q: %w", name, err)
		}
		o.charset = enc
		return nil
	}
}

// WithLogger sets a logger for diagnostics. Skipped lines are logged at
// debug level and source failures at error level. Decoding is silent
// without it.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("vsv: logger must not be nil")
		}
		o.logger = l
		return nil
	}
}

// OnSkip registers fn to be called for every line that produces no row.
func OnSkip(fn func(SkippedLine)) Option {
	return func(o *options) error {
		if fn == nil {
			return fmt.Errorf("vsv: skip callback must not be nil")
		}
		o.onSkip = fn
		return nil
	}
}
