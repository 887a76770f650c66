package vsv

import (
	"errors"
	"strconv"
)

var (
	// ErrSourceUnavailable is matched by every SourceError. Use it with
	// errors.Is to detect a decode that was aborted as a whole.
	ErrSourceUnavailable = errors.New("vsv: source unavailable")

	// ErrInvalidText is the cause of a SourceError for input that is not
	// valid UTF-8.
	ErrInvalidText = errors.New("invalid utf-8 text")
)

// A SourceError reports that the text source could not be opened or read.
// Decoding stops and the returned Document is empty.
type SourceError struct {
	// Source is the file path, or "<string>" / "<reader>".
	Source string
	// Line is the line being read when the failure happened, or 0 if the
	// source could not be opened.
	Line int
	Err  error
}

func (e *SourceError) Error() string {
	msg := "vsv: source " + strconv.Quote(e.Source) + " unavailable"
	if e.Line > 0 {
		msg += " at line " + strconv.Itoa(e.Line)
	}
	return msg + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

// SkipReason tells why a line produced no row.
type SkipReason int

const (
	// SkipBlank is a line that was empty after trimming.
	SkipBlank SkipReason = iota + 1
	// SkipComment is a header line without any bracketed field.
	SkipComment
)

func (r SkipReason) String() string {
	switch r {
	case SkipBlank:
		return "blank"
	case SkipComment:
		return "comment"
	default:
		return "SkipReason(" + strconv.Itoa(int(r)) + ")"
	}
}

// SkippedLine describes a source line that produced no row.
type SkippedLine struct {
	Line   int
	Reason SkipReason
	// Text is the trimmed line.
	Text string
}
