package token

// Type is the type of a token.
type Type string

// Token represents one source line after trimming.
type Token struct {
	Type    Type
	Literal string
	Line    int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // A line that is not valid UTF-8
	EOF     Type = "EOF"     // End of input

	// Lines
	HEADER Type = "HEADER" // {{menu}} {{popup}}
	DATA   Type = "DATA"   // ,a,b,c
	BLANK  Type = "BLANK"  // empty after trimming
)

// brackets maps every opening bracket character to its closing partner.
var brackets = map[byte]byte{
	'[': ']',
	'(': ')',
	'{': '}',
	'<': '>',
}

// IsOpener reports whether c opens one of the four bracket shapes.
func IsOpener(c byte) bool {
	_, ok := brackets[c]
	return ok
}

// IsCloser reports whether c closes one of the four bracket shapes.
func IsCloser(c byte) bool {
	switch c {
	case ']', ')', '}', '>':
		return true
	}
	return false
}

// Closer returns the closing partner of the opening bracket c.
// The second result is false if c is not an opening bracket.
func Closer(c byte) (byte, bool) {
	cl, ok := brackets[c]
	return cl, ok
}

// IsHeaderOpener reports whether line starts with a doubled opening
// bracket: "[[", "((", "{{" or "<<".
func IsHeaderOpener(line string) bool {
	return len(line) >= 2 && line[0] == line[1] && IsOpener(line[0])
}

// Classify returns HEADER or DATA for a non-empty trimmed line and BLANK
// for an empty one.
func Classify(line string) Type {
	switch {
	case line == "":
		return BLANK
	case IsHeaderOpener(line):
		return HEADER
	default:
		return DATA
	}
}
