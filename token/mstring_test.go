package token

import (
	"errors"
	"testing"
)

func TestDedentBlock(t *testing.T) {
	tests := []struct {
		body string
		raw  bool
		want string
	}{
		{"  a\n  b\n  ", false, "a\nb"},
		{"  a\n\n  b\n  ", false, "a\n\nb"},
		{"\ta\n\tb\n\t", false, "a\nb"},
		{"a\nb\n", false, "a\nb"},
		{"  a\\tb\n  ", false, "a\tb"},
		{"  a\\tb\n  ", true, "a\\tb"},
		{"  a\r\n  b\r\n  ", false, "a\nb"},
		{"  a\u2028  b\u2028  ", false, "a\nb"},
		// whitespace-only lines contribute only their newline, even when
		// longer than the prefix
		{"   \n  a\n  ", false, "\na"},
		{"    \t\n  a\n  ", false, "\na"},
		{" \n  a\n  ", false, "\na"},
	}
	for _, tc := range tests {
		got, err := dedentBlock(tc.body, tc.raw)
		if err != nil {
			t.Errorf("`%s` gave %v", tc.body, err)
			continue
		}
		if got != tc.want {
			t.Errorf("`%s` gave `%s` want `%s`", tc.body, got, tc.want)
		}
	}
}

func TestDedentBlockErrors(t *testing.T) {
	bad := []string{
		"  a\nb\n  ",
		"  a\n x",
		"  a\n  b\n\ta",
	}
	for _, body := range bad {
		if _, err := dedentBlock(body, true); !errors.Is(err, ErrBadBlockStringIndent) {
			t.Errorf("`%s` gave %v want %v", body, err, ErrBadBlockStringIndent)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	in := "a\r\nb\rc\u0085d\u2029e\x0bf"
	want := "a\nb\nc\nd\ne\nf"
	if got := normalizeNewlines(in); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}
