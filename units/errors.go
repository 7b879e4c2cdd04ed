package units

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownUnit reports a unit suffix missing from the vocabulary.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrMalformedNumber reports a literal that does not lex or parse as a number.
	ErrMalformedNumber = errors.New("malformed numeric literal")
)

// ParseError identifies the offending token and where it sits in an
// option structure.
type ParseError struct {
	Path  string // dotted key path, empty for a bare value
	Input string // the full value being parsed
	Token string // the rejected token
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("units: ")
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	if e.Input != "" {
		fmt.Fprintf(&b, "%q: ", e.Input)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, "token %q: ", e.Token)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func asParseError(err error, target **ParseError) bool {
	return errors.As(err, target)
}
