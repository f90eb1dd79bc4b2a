package encode

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/mwh/kdly/ir"
)

func TestEncodeNodeLine(t *testing.T) {
	n := ir.NewNode("server").AddArg(ir.FromString("web"))
	n.SetProp("port", ir.FromInt(8080))
	n.SetProp("tls", ir.FromBool(true))
	d := ir.New()
	d.Append(n)
	want := "server web port=8080 tls=#true\n"
	if got := MustString(d); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestEncodeChildren(t *testing.T) {
	inner := ir.NewNode("listen").AddArg(ir.FromInt(80))
	outer := ir.NewNode("server")
	outer.AddChild(inner)
	empty := ir.NewNode("empty")
	empty.Children = ir.New()
	d := ir.New()
	d.Append(outer, empty)
	want := "server {\n  listen 80\n}\nempty {}\n"
	if got := MustString(d); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestEncodeIndentOption(t *testing.T) {
	outer := ir.NewNode("a")
	outer.AddChild(ir.NewNode("b"))
	d := ir.New()
	d.Append(outer)
	want := "a {\n    b\n}\n"
	if got := MustString(d, Indent(4)); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestEncodeTags(t *testing.T) {
	n := ir.NewNode("temp").WithTag("sensor")
	n.AddArg(ir.FromInt(21).WithTag("u8"))
	n.SetProp("id", ir.FromString("x 1").WithTag("uuid"))
	d := ir.New()
	d.Append(n)
	want := "(sensor)temp (u8)21 id=(uuid)\"x 1\"\n"
	if got := MustString(d); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestEncodeValues(t *testing.T) {
	tests := []struct {
		v    *ir.Value
		want string
	}{
		{ir.Null(), "#null"},
		{ir.FromBool(false), "#false"},
		{ir.FromInt(-42), "-42"},
		{ir.FromBig(new(big.Int).Lsh(big.NewInt(1), 80)), "1208925819614629174706176"},
		{ir.FromFloat(2.5), "2.5"},
		{ir.FromFloat(10), "10.0"},
		{ir.FromFloat(1e100), "1e+100"},
		{ir.FromFloat(math.Inf(1)), "#inf"},
		{ir.FromFloat(math.Inf(-1)), "#-inf"},
		{ir.FromFloat(math.NaN()), "#nan"},
		{ir.FromString("bare"), "bare"},
		{ir.FromString("true"), `"true"`},
		{ir.FromString("needs quoting"), `"needs quoting"`},
		{ir.FromString("tab\there"), `"tab\there"`},
		{ir.FromString(`say "hi" "there"`), `#"say "hi" "there""#`},
		{ir.FromString(`quote"#run`), `##"quote"#run"##`},
	}
	for _, tc := range tests {
		d := ir.New()
		d.Append(ir.NewNode("n").AddArg(tc.v))
		want := "n " + tc.want + "\n"
		if got := MustString(d); got != want {
			t.Errorf("got `%s` want `%s`", got, want)
		}
	}
}

func TestEncodeBlockString(t *testing.T) {
	n := ir.NewNode("desc").AddArg(ir.FromString("line one\nline two"))
	d := ir.New()
	d.Append(n)
	want := "desc \"\"\"\n  line one\n  line two\n  \"\"\"\n"
	if got := MustString(d); got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestEncodeTypeMapReverses(t *testing.T) {
	v := ir.FromString("raw")
	v.Tag = "upper"
	v.Custom = "LOUD"
	d := ir.New()
	d.Append(ir.NewNode("n").AddArg(v))
	got, err := String(d, EncodeTypeMap(TypeMap{
		"upper": func(custom any) (*ir.Value, error) {
			return ir.FromString(strings.ToLower(custom.(string))), nil
		},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if want := "n (upper)loud\n"; got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
	// without the reverse map the decoded payload is emitted
	if got := MustString(d); got != "n (upper)raw\n" {
		t.Errorf("got `%s`", got)
	}
}

func TestEncodeTypeMapError(t *testing.T) {
	boom := errors.New("boom")
	v := ir.FromInt(1)
	v.Tag = "t"
	v.Custom = struct{}{}
	d := ir.New()
	d.Append(ir.NewNode("n").AddArg(v))
	_, err := String(d, EncodeTypeMap(TypeMap{
		"t": func(any) (*ir.Value, error) { return nil, boom },
	}))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("got %v want %v", err, ErrEncoding)
	}
}

func TestEncodeColorsWrap(t *testing.T) {
	d := ir.New()
	d.Append(ir.NewNode("n").AddArg(ir.FromInt(1)))
	c := &Colors{
		Default: func(s string, _ ...any) string { return "<" + s + ">" },
		Map:     map[Colorable]func(string, ...any) string{},
	}
	got, err := String(d, EncodeColors(c))
	if err != nil {
		t.Fatal(err)
	}
	if want := "<n> <1>\n"; got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}
