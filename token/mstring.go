package token

import (
	"strings"
	"unicode/utf8"
)

// normalizeNewlines collapses every newline form, \r\n included, to \n.
func normalizeNewlines(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\r' {
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteByte('\n')
			i++
			continue
		}
		r := rune(s[i])
		size := 1
		if r >= 0x80 {
			r, size = utf8.DecodeRuneInString(s[i:])
		}
		if IsNewline(r) {
			b.WriteByte('\n')
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// dedentBlock applies multi-line string dedenting: the final line of body
// is the whitespace prefix every preceding line must carry. Lines of pure
// whitespace are exempt from the prefix check and contribute only their
// newline. For non-raw strings, escape sequences are resolved after
// dedenting.
func dedentBlock(body string, raw bool) (string, error) {
	norm := normalizeNewlines(body)
	lines := strings.Split(norm, "\n")
	prefix := lines[len(lines)-1]
	lines = lines[:len(lines)-1]
	for _, r := range prefix {
		if !IsInlineSpace(r) {
			return "", ErrBadBlockStringIndent
		}
	}
	out := make([]string, len(lines))
	for i, ln := range lines {
		switch {
		case strings.TrimSpace(ln) == "":
			out[i] = ""
		case strings.HasPrefix(ln, prefix):
			out[i] = ln[len(prefix):]
		default:
			return "", ErrBadBlockStringIndent
		}
	}
	joined := strings.Join(out, "\n")
	if raw {
		return joined, nil
	}
	return decodeEscapes(joined)
}
