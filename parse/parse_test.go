package parse

import (
	"errors"
	"math"
	"testing"

	"github.com/mwh/kdly/ir"
)

func parseOne(t *testing.T, in string) *ir.Node {
	t.Helper()
	doc, err := ParseString(in)
	if err != nil {
		t.Fatalf("`%s` gave %v", in, err)
	}
	if doc.Len() != 1 {
		t.Fatalf("`%s` gave %d nodes want 1", in, doc.Len())
	}
	return doc.Nodes[0]
}

func TestParseNode(t *testing.T) {
	n := parseOne(t, `package name="kdly" version=2 stable=#true`)
	if n.Name != "package" {
		t.Errorf("name `%s`", n.Name)
	}
	if len(n.Args) != 0 || n.Props.Len() != 3 {
		t.Errorf("got %d args %d props", len(n.Args), n.Props.Len())
	}
	if v := n.Prop("name"); v == nil || v.Str != "kdly" {
		t.Errorf("name prop %v", v)
	}
	if v := n.Prop("version"); v == nil || v.Int64 != 2 {
		t.Errorf("version prop %v", v)
	}
	if v := n.Prop("stable"); v == nil || !v.Bool {
		t.Errorf("stable prop %v", v)
	}
}

func TestParseArgs(t *testing.T) {
	n := parseOne(t, `point 1 2.5 "three" #null #-inf`)
	if len(n.Args) != 5 {
		t.Fatalf("got %d args", len(n.Args))
	}
	if n.Arg(0).Int64 != 1 || n.Arg(1).Float64 != 2.5 || n.Arg(2).Str != "three" {
		t.Errorf("args %v", n.Args)
	}
	if n.Arg(3).Kind != ir.NullKind {
		t.Errorf("arg 3 %v", n.Arg(3))
	}
	if !math.IsInf(n.Arg(4).Float64, -1) {
		t.Errorf("arg 4 %v", n.Arg(4))
	}
}

func TestParseTags(t *testing.T) {
	n := parseOne(t, `(person)author (uuid)"1234" age=(u8)42`)
	if n.Tag != "person" || n.Name != "author" {
		t.Errorf("node (%s)%s", n.Tag, n.Name)
	}
	if v := n.Arg(0); v.Tag != "uuid" || v.Str != "1234" {
		t.Errorf("arg %v tag %s", v, v.Tag)
	}
	if v := n.Prop("age"); v.Tag != "u8" || v.Int64 != 42 {
		t.Errorf("prop %v", v)
	}
}

func TestParseChildren(t *testing.T) {
	doc, err := ParseString(`
server "web" {
  listen 80; listen 443
  tls {
    cert "/etc/cert.pem"
  }
}
empty {}
childless
`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 3 {
		t.Fatalf("got %d nodes", doc.Len())
	}
	server := doc.Get("server")
	if server.Children.Len() != 3 {
		t.Fatalf("server has %d children", server.Children.Len())
	}
	if got := server.Children.GetAll("listen"); len(got) != 2 {
		t.Errorf("got %d listen nodes", len(got))
	}
	cert, err := doc.SelectOne("server/tls/cert")
	if err != nil || cert.Arg(0).Str != "/etc/cert.pem" {
		t.Errorf("cert gave %v, %v", cert, err)
	}
	if empty := doc.Get("empty"); empty.Children == nil || empty.Children.Len() != 0 {
		t.Errorf("empty block lost: %v", empty.Children)
	}
	if childless := doc.Get("childless"); childless.Children != nil {
		t.Errorf("childless node grew a block")
	}
}

func TestParseSlashdash(t *testing.T) {
	tests := []struct {
		in       string
		nodes    int
		args     int
		props    int
		children bool
	}{
		{"/-gone\nkept 1", 1, 1, 0, false},
		{"kept /-2 3", 1, 1, 0, false},
		{"kept /-k=1 j=2", 1, 0, 1, false},
		{"kept 1 /-{gone;nodes}", 1, 1, 0, false},
		{"kept {a} /-{gone}", 1, 0, 0, true},
		{"kept /-{gone} {real}", 1, 0, 0, true},
		{"/-\ngone 1 2\nkept", 1, 0, 0, false},
	}
	for _, tc := range tests {
		doc, err := ParseString(tc.in)
		if err != nil {
			t.Errorf("`%s` gave %v", tc.in, err)
			continue
		}
		if doc.Len() != tc.nodes {
			t.Errorf("`%s` gave %d nodes want %d", tc.in, doc.Len(), tc.nodes)
			continue
		}
		n := doc.Get("kept")
		if n == nil {
			t.Errorf("`%s` lost the kept node", tc.in)
			continue
		}
		if len(n.Args) != tc.args || n.Props.Len() != tc.props || (n.Children != nil) != tc.children {
			t.Errorf("`%s` gave args=%d props=%d children=%v",
				tc.in, len(n.Args), n.Props.Len(), n.Children != nil)
		}
	}
}

func TestParseRepeatedPropWins(t *testing.T) {
	n := parseOne(t, `node a=1 b=2 a=3`)
	if n.Props.Len() != 2 {
		t.Fatalf("got %d props", n.Props.Len())
	}
	if v := n.Prop("a"); v.Int64 != 3 {
		t.Errorf("a gave %v", v)
	}
	// the surviving occurrence keeps its own position in key order
	keys := n.Props.Keys()
	if keys[0] != "b" || keys[1] != "a" {
		t.Errorf("keys %v", keys)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{`node {`, ErrUnexpectedEOF},
		{`node key=`, ErrUnexpectedEOF},
		{`}`, ErrUnexpectedToken},
		{`node } trailing`, ErrUnexpectedToken},
		{`node {a} 1`, ErrUnexpectedToken},
		{`node {a} {b}`, ErrUnexpectedToken},
		{`node {a} /-1`, ErrUnexpectedToken},
		{`node {a} /-k=1`, ErrUnexpectedToken},
		{`node /-{a} 1`, ErrUnexpectedToken},
		{`node /-{a} k=1`, ErrUnexpectedToken},
		{`node /-{a} {b} {c}`, ErrUnexpectedToken},
		{`node =5`, ErrBadPropertyKey},
		{`node 5=1`, ErrBadPropertyKey},
		{`node (t)"key"=1`, ErrBadPropertyKey},
		{`node #true=1`, ErrKeywordIdentifier},
		{`#true 1`, ErrKeywordIdentifier},
		{`node /-`, ErrDanglingSlashdash},
		{"node /-\nnext", ErrDanglingSlashdash},
		{`/-`, ErrDanglingSlashdash},
		{`node key=key2=3`, ErrBadPropertyKey},
	}
	for _, tc := range tests {
		_, err := ParseString(tc.in)
		if err == nil {
			t.Errorf("`%s` gave no error, want %v", tc.in, tc.want)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("`%s` gave %v want %v", tc.in, err, tc.want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "// nothing here\n", "/* or here */"} {
		doc, err := ParseString(in)
		if err != nil {
			t.Errorf("`%s` gave %v", in, err)
			continue
		}
		if doc.Len() != 0 {
			t.Errorf("`%s` gave %d nodes", in, doc.Len())
		}
	}
}

func TestParsePositions(t *testing.T) {
	doc, err := ParseString("first\nsecond 10\n")
	if err != nil {
		t.Fatal(err)
	}
	if l, c := doc.Nodes[1].Pos.LineCol(); l != 1 || c != 0 {
		t.Errorf("second at line=%d col=%d", l, c)
	}
	if l, c := doc.Nodes[1].Args[0].Pos.LineCol(); l != 1 || c != 7 {
		t.Errorf("arg at line=%d col=%d", l, c)
	}
}
