package token

import (
	"math/big"
	"strconv"
	"strings"
)

// Number is the decoded payload of a TNumber token. Integers that do not
// fit in an int64 are promoted to a big.Int rather than rejected.
type Number struct {
	IsFloat bool
	Float64 float64
	Int64   int64
	Big     *big.Int
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexDigit(c byte) bool {
	return asciiDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func octDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func binDigit(c byte) bool {
	return c == '0' || c == '1'
}

// digitRun consumes digits and underscores. The run must open with a
// digit; underscores are only legal after the first digit.
func digitRun(d []byte) int {
	if len(d) == 0 || !asciiDigit(d[0]) {
		return 0
	}
	i := 1
	for i < len(d) && (asciiDigit(d[i]) || d[i] == '_') {
		i++
	}
	return i
}

// scanDecimal consumes a decimal number at the start of d, including an
// optional leading sign, fraction, and exponent. Underscores may not touch
// the sign, the dot, or the exponent marker.
func scanDecimal(d []byte) (n int, isFloat bool, err error) {
	i := 0
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		i++
	}
	g := digitRun(d[i:])
	if g == 0 {
		return 0, false, ErrMalformedNumber
	}
	i += g
	if i < len(d) && d[i] == '.' && i+1 < len(d) && asciiDigit(d[i+1]) {
		if d[i-1] == '_' {
			return 0, false, ErrMalformedNumber
		}
		i++
		i += digitRun(d[i:])
		isFloat = true
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		if d[i-1] == '_' {
			return 0, false, ErrMalformedNumber
		}
		j := i + 1
		if j < len(d) && (d[j] == '+' || d[j] == '-') {
			j++
		}
		if g := digitRun(d[j:]); g > 0 {
			i = j + g
			isFloat = true
		}
	}
	return i, isFloat, nil
}

// scanPrefixed consumes the digits of a based number after its 0x/0o/0b
// prefix. The first character must be a digit of the base, so an
// underscore may not touch the prefix.
func scanPrefixed(d []byte, digit func(byte) bool) (int, error) {
	if len(d) == 0 || !digit(d[0]) {
		return 0, ErrMalformedNumber
	}
	i := 1
	for i < len(d) && (digit(d[i]) || d[i] == '_') {
		i++
	}
	return i, nil
}

// decodeInt parses text (with optional sign, underscores permitted) in the
// given base, promoting to big.Int on int64 overflow.
func decodeInt(text string, base int) *Number {
	s := strings.ReplaceAll(text, "_", "")
	if v, err := strconv.ParseInt(s, base, 64); err == nil {
		return &Number{Int64: v}
	}
	b, _ := new(big.Int).SetString(s, base)
	return &Number{Big: b}
}

func decodeFloat(text string) (*Number, error) {
	s := strings.ReplaceAll(text, "_", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ErrMalformedNumber
	}
	return &Number{IsFloat: true, Float64: f}, nil
}
