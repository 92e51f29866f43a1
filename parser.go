package imgii

import (
	"regexp"
	"strconv"
	"strings"
)

// ESC is the ANSI escape control character.
const ESC = "\u001b"

// tokenPattern matches one truecolor foreground escape followed by exactly
// one character: ESC[38;2;<R>;<G>;<B>m<char>. The ASCII renderer emits one
// escape per character, so runs of same-colored characters never coalesce.
const tokenPattern = ESC + `\[38;2;([0-9]+);([0-9]+);([0-9]+)m(.)`

// ColorToken is one parsed character span: a single character and its fill
// color.
type ColorToken struct {
	R, G, B uint8
	Text    string
}

// IsBlank reports whether the token holds only whitespace and should be
// rendered as a blank cell instead of a glyph.
func (t ColorToken) IsBlank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Parser extracts color tokens from lines of colorized ASCII text. The
// escape pattern is compiled once at construction so every line scan and
// every parallel worker shares it.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles the color-escape pattern. A compile failure is a
// pattern error and fatal for the conversion.
func NewParser() (*Parser, error) {
	re, err := regexp.Compile(tokenPattern)
	if err != nil {
		return nil, wrapError(KindPattern, err, "could not compile color escape pattern")
	}
	return &Parser{re: re}, nil
}

// ParseLine scans one line for color-escape spans, in left-to-right order,
// and returns a token per span. A channel value that does not fit in 8 bits
// fails the whole line with a value-parse error.
func (p *Parser) ParseLine(line string) ([]ColorToken, error) {
	matches := p.re.FindAllStringSubmatch(line, -1)
	tokens := make([]ColorToken, 0, len(matches))
	for _, m := range matches {
		r, err := parseChannel("red", m[1])
		if err != nil {
			return nil, err
		}
		g, err := parseChannel("green", m[2])
		if err != nil {
			return nil, err
		}
		b, err := parseChannel("blue", m[3])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, ColorToken{R: r, G: g, B: b, Text: m[4]})
	}
	return tokens, nil
}

// parseChannel parses one decimal color channel as an unsigned 8-bit value.
func parseChannel(name, raw string) (uint8, error) {
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, wrapError(KindValueParse, err,
			"could not parse %s channel from %q", name, raw)
	}
	return uint8(v), nil
}
