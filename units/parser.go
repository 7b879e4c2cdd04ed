package units

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	quantityLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Sign", Pattern: `[-+]`},
		{Name: "Unit", Pattern: `[A-Za-zµμ]+`},
		{Name: "Other", Pattern: `.`},
	})

	quantityParser = participle.MustBuild[quantityLiteral](
		participle.Lexer(quantityLexer),
		participle.Elide("Whitespace"),
	)

	// A value is treated as a length literal once it starts with a number.
	literalPrefix = regexp.MustCompile(`^\s*[-+]?\s*(?:\d|\.\d)`)
	unitName      = regexp.MustCompile(`^[A-Za-zµμ]+$`)
)

// quantityLiteral is the AST of `[sign] number [unit]`.
type quantityLiteral struct {
	Sign   string `parser:"@Sign?"`
	Number string `parser:"@Number"`
	Unit   string `parser:"@Unit?"`
}

// IsQuantityLiteral reports whether s starts like a numeric literal. Values
// that do not (chip names, "True"/"False" flags) are not lengths.
func IsQuantityLiteral(s string) bool {
	return literalPrefix.MatchString(s)
}

// ParseLength parses s, preserving the unit as written.
func ParseLength(s string) (Length, error) {
	ast, err := quantityParser.ParseString("", s)
	if err != nil {
		return Length{}, &ParseError{Input: s, Token: offendingToken(s, err), Err: ErrMalformedNumber}
	}
	v, err := strconv.ParseFloat(ast.Number, 64)
	if err != nil {
		return Length{}, &ParseError{Input: s, Token: ast.Number, Err: ErrMalformedNumber}
	}
	if ast.Sign == "-" {
		v = -v
	}
	return Length{Value: v, Unit: ast.Unit}, nil
}

// offendingToken extracts the token participle stopped at, falling back to
// the trimmed input.
func offendingToken(s string, err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		off := perr.Position().Offset
		if off >= 0 && off < len(s) {
			rest := strings.TrimSpace(s[off:])
			if f := strings.Fields(rest); len(f) > 0 {
				return f[0]
			}
		}
	}
	return strings.TrimSpace(s)
}

func isUnitName(s string) bool { return unitName.MatchString(s) }
