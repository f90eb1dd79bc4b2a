package token

import (
	"errors"
	"testing"
)

func TestScanDecimal(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		isFloat bool
	}{
		{"0", 1, false},
		{"42 rest", 2, false},
		{"-17", 3, false},
		{"1_000", 5, false},
		{"2.5", 3, true},
		{"2.5e2", 5, true},
		{"1e3", 3, true},
		{"1E-2", 4, true},
		// a dot with no digit after it is not part of the number
		{"1.x", 1, false},
		// a bare exponent marker is not part of the number either
		{"2e", 1, false},
		{"2e+", 1, false},
	}
	for _, tc := range tests {
		n, isFloat, err := scanDecimal([]byte(tc.in))
		if err != nil {
			t.Errorf("`%s` gave %v", tc.in, err)
			continue
		}
		if n != tc.n || isFloat != tc.isFloat {
			t.Errorf("`%s` gave n=%d float=%v want n=%d float=%v",
				tc.in, n, isFloat, tc.n, tc.isFloat)
		}
	}
}

func TestScanDecimalErrors(t *testing.T) {
	bad := []string{"", "-", "_1", "1_.5", "1_e3", ".5"}
	for _, in := range bad {
		if _, _, err := scanDecimal([]byte(in)); !errors.Is(err, ErrMalformedNumber) {
			t.Errorf("`%s` gave %v want %v", in, err, ErrMalformedNumber)
		}
	}
}

func TestScanPrefixed(t *testing.T) {
	if n, err := scanPrefixed([]byte("dead_beef"), hexDigit); err != nil || n != 9 {
		t.Errorf("gave n=%d err=%v", n, err)
	}
	for _, in := range []string{"", "_ff", "g"} {
		if _, err := scanPrefixed([]byte(in), hexDigit); !errors.Is(err, ErrMalformedNumber) {
			t.Errorf("`%s` gave %v want %v", in, err, ErrMalformedNumber)
		}
	}
}

func TestDecodeIntPromotes(t *testing.T) {
	n := decodeInt("9_223_372_036_854_775_807", 10)
	if n.Big != nil || n.Int64 != 9223372036854775807 {
		t.Errorf("max int64 gave %+v", n)
	}
	n = decodeInt("9_223_372_036_854_775_808", 10)
	if n.Big == nil || n.Big.String() != "9223372036854775808" {
		t.Errorf("max int64 + 1 gave %+v", n)
	}
}
