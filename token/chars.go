package token

import "unicode"

// IsNewline reports whether r is one of the KDL line terminators.
func IsNewline(r rune) bool {
	switch r {
	case '\r', '\n', 0x85, 0x0b, 0x0c, 0x2028, 0x2029:
		return true
	}
	return false
}

// IsInlineSpace reports whether r is whitespace that does not terminate a
// line. The BOM is not inline space; it is only tolerated at start of input.
func IsInlineSpace(r rune) bool {
	return unicode.IsSpace(r) && !IsNewline(r)
}

// IsDisallowed reports whether r may never appear in KDL source: control
// characters, the delete character, direction-control characters, and
// surrogate code points.
func IsDisallowed(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r >= 0x0e && r <= 0x1f:
		return true
	case r == 0x7f:
		return true
	case r >= 0x200e && r <= 0x200f:
		return true
	case r >= 0x202a && r <= 0x202e:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	case r >= 0xd800 && r <= 0xdfff:
		return true
	}
	return false
}

// nonIdentChar reports whether r can never be part of a bare identifier.
func nonIdentChar(r rune) bool {
	switch r {
	case '\\', '/', '(', ')', '{', '}', ';', '[', ']', '"', '#', '=':
		return true
	}
	return false
}

func identChar(r rune) bool {
	if r == 0xfeff {
		return false
	}
	return !unicode.IsSpace(r) && !IsNewline(r) && !nonIdentChar(r) && !IsDisallowed(r)
}

// reservedIdent reports whether s is a keyword-like name that must be
// written with a '#' prefix (values) or quoted (identifiers).
func reservedIdent(s string) bool {
	switch s {
	case "true", "false", "null", "inf", "-inf", "+inf", "nan":
		return true
	}
	return false
}

// ValidBareIdentifier reports whether s may appear unquoted in KDL text.
// This rules out invalid characters, reserved names, leading digits, and
// anything that would scan as a number.
func ValidBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if reservedIdent(s) {
		return false
	}
	rs := []rune(s)
	if rs[0] >= '0' && rs[0] <= '9' {
		return false
	}
	rest := rs[1:]
	if rs[0] == '-' || rs[0] == '+' {
		if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			return false
		}
		if len(rest) > 1 && rest[0] == '.' && rest[1] >= '0' && rest[1] <= '9' {
			return false
		}
	}
	if len(rs) > 1 && rs[0] == '.' && rs[1] >= '0' && rs[1] <= '9' {
		return false
	}
	for _, r := range rs {
		if !identChar(r) {
			return false
		}
	}
	return true
}
