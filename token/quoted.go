package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// escapeChar returns the replacement for a single-character escape.
func escapeChar(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 's':
		return ' ', true
	}
	return 0, false
}

// decodeUnicodeEscape decodes the hex digits of a \u{...} escape. The
// result must be a Unicode scalar value.
func decodeUnicodeEscape(hex string) (rune, error) {
	if len(hex) == 0 || len(hex) > 6 {
		return 0, ErrInvalidHexScalar
	}
	var cp rune
	for _, c := range hex {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, ErrInvalidHexScalar
		}
		cp = cp*16 + d
	}
	if cp > unicode.MaxRune || (cp >= 0xd800 && cp <= 0xdfff) {
		return 0, ErrInvalidHexScalar
	}
	return cp, nil
}

// decodeEscapes resolves the escape sequences in a quoted string body.
// A backslash before whitespace removes the whole following whitespace
// run, newlines included.
func decodeEscapes(s string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return "", ErrInvalidEscape
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == 'u' {
			if i+1 >= len(s) || s[i+1] != '{' {
				return "", ErrInvalidEscape
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return "", ErrInvalidEscape
			}
			cp, err := decodeUnicodeEscape(s[i+2 : i+end])
			if err != nil {
				return "", err
			}
			b.WriteRune(cp)
			i += end + 1
			continue
		}
		if unicode.IsSpace(r) {
			for i < len(s) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			continue
		}
		rep, ok := escapeChar(r)
		if !ok {
			return "", fmt.Errorf("%w: \\%c", ErrInvalidEscape, r)
		}
		b.WriteRune(rep)
		i += size
	}
	return b.String(), nil
}

// NeedsQuote reports whether v cannot be written as a bare identifier.
func NeedsQuote(v string) bool {
	return !ValidBareIdentifier(v)
}

// Quote renders v as a single-line quoted KDL string.
func Quote(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			// newline forms beyond \n and \r would end the line early
			if IsDisallowed(r) || IsNewline(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
