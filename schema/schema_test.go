package schema

import (
	"errors"
	"testing"

	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/parse"
)

type Address struct {
	Street string  `kdl:"arg"`
	City   string  `kdl:"prop"`
	Zip    *string `kdl:"prop"`
}

type Person struct {
	Name string `kdl:"arg"`
	Age  int    `kdl:"prop,optional"`
}

type Building struct {
	Name    string    `kdl:"arg"`
	Floors  int       `kdl:"prop,optional"`
	Address *Address  `kdl:"child"`
	People  []*Person `kdl:"children"`
}

const buildingSrc = `
building "HQ" floors=3 {
  address "123 Main St" city="Springfield"
  person "Alice" age=30
  person "Bob"
}
`

func TestBindBuilding(t *testing.T) {
	var b Building
	if err := Parse([]byte(buildingSrc), &b); err != nil {
		t.Fatal(err)
	}
	if b.Name != "HQ" || b.Floors != 3 {
		t.Errorf("building %+v", b)
	}
	if b.Address == nil || b.Address.Street != "123 Main St" || b.Address.City != "Springfield" {
		t.Errorf("address %+v", b.Address)
	}
	if b.Address.Zip != nil {
		t.Errorf("zip should be absent, got %v", *b.Address.Zip)
	}
	if len(b.People) != 2 {
		t.Fatalf("got %d people", len(b.People))
	}
	if b.People[0].Name != "Alice" || b.People[0].Age != 30 {
		t.Errorf("alice %+v", b.People[0])
	}
	if b.People[1].Name != "Bob" || b.People[1].Age != 0 {
		t.Errorf("bob %+v", b.People[1])
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{`building "HQ" { person "A"; address city="x" }`, ErrMissingArgument},
		{`building "HQ" { address "s" city="x"; person "A" "B" }`, ErrExtraArgument},
		{`building "HQ" { address "s" }`, ErrMissingProperty},
		{`building "HQ" { address "s" city="x"; person "A" x=1 }`, ErrExtraProperty},
		{`building "HQ" { address "s" city="x"; gadget }`, ErrUnknownNode},
		{`building "HQ" { address "s" city="x"; address "t" city="y" }`, ErrDuplicateChild},
		{`building "HQ" { person "A" }`, ErrMissingChild},
		{`building "HQ" floors="three" { address "s" city="x" }`, ErrTypeMismatch},
	}
	for _, tc := range tests {
		var b Building
		err := Parse([]byte(tc.src), &b)
		if err == nil {
			t.Errorf("`%s` bound without error, want %v", tc.src, tc.want)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("`%s` gave %v want %v", tc.src, err, tc.want)
		}
	}
}

type Leaf struct {
	V int `kdl:"arg"`
}

func TestUnexpectedChild(t *testing.T) {
	var l Leaf
	err := Parse([]byte("leaf 1 { surprise }"), &l)
	if !errors.Is(err, ErrUnexpectedChild) {
		t.Errorf("got %v want %v", err, ErrUnexpectedChild)
	}
}

type OpenBuilding struct {
	Name  string     `kdl:"arg"`
	Extra []*ir.Node `kdl:"children,rest"`
}

func (OpenBuilding) KDLName() string { return "building" }

func TestOtherChildren(t *testing.T) {
	var b OpenBuilding
	src := `building "HQ" { gadget 1; widget 2 }`
	if err := Parse([]byte(src), &b); err != nil {
		t.Fatal(err)
	}
	if len(b.Extra) != 2 || b.Extra[0].Name != "gadget" || b.Extra[1].Name != "widget" {
		t.Errorf("extra %v", b.Extra)
	}
}

type Loose struct {
	First string      `kdl:"arg"`
	Rest  []*ir.Value `kdl:"args"`
	Props *ir.Props   `kdl:"props"`
}

func TestCatchAlls(t *testing.T) {
	var l Loose
	if err := Parse([]byte(`loose a b 3 x=1 y=2`), &l); err != nil {
		t.Fatal(err)
	}
	if l.First != "a" {
		t.Errorf("first %q", l.First)
	}
	if len(l.Rest) != 2 || l.Rest[0].Str != "b" || l.Rest[1].Int64 != 3 {
		t.Errorf("rest %v", l.Rest)
	}
	if l.Props.Len() != 2 || l.Props.Keys()[0] != "x" || l.Props.Keys()[1] != "y" {
		t.Errorf("props %v", l.Props.Keys())
	}
}

type Span struct {
	Start int  `kdl:"arg"`
	End   *int `kdl:"arg"`
}

func TestOptionalArgs(t *testing.T) {
	var s Span
	if err := Parse([]byte(`span 1`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Start != 1 || s.End != nil {
		t.Errorf("span %+v", s)
	}
	s = Span{}
	if err := Parse([]byte(`span 1 5`), &s); err != nil {
		t.Fatal(err)
	}
	if s.End == nil || *s.End != 5 {
		t.Errorf("span %+v", s)
	}
}

type Cat struct {
	Name string `kdl:"arg"`
}

type Dog struct {
	Name string `kdl:"arg"`
}

type Shelter struct {
	Animals []any `kdl:"children,class=cat|dog"`
}

func TestChildrenUnion(t *testing.T) {
	if err := Register(Cat{}, Dog{}); err != nil {
		t.Fatal(err)
	}
	var s Shelter
	if err := Parse([]byte("shelter {\n  cat Tom\n  dog Rex\n  cat Jess\n}"), &s); err != nil {
		t.Fatal(err)
	}
	if len(s.Animals) != 3 {
		t.Fatalf("got %d animals", len(s.Animals))
	}
	if c, ok := s.Animals[0].(*Cat); !ok || c.Name != "Tom" {
		t.Errorf("animal 0 %#v", s.Animals[0])
	}
	if d, ok := s.Animals[1].(*Dog); !ok || d.Name != "Rex" {
		t.Errorf("animal 1 %#v", s.Animals[1])
	}
}

type Server struct {
	Host string `kdl:"arg"`
	Port int    `kdl:"prop"`
}

type Config struct {
	Servers []*Server `kdl:"children"`
}

// a document whose top-level nodes are the children of a document class
func TestBindDocumentClass(t *testing.T) {
	var c Config
	src := "server a port=80\nserver b port=443\n"
	if err := Parse([]byte(src), &c); err != nil {
		t.Fatal(err)
	}
	if len(c.Servers) != 2 || c.Servers[1].Host != "b" || c.Servers[1].Port != 443 {
		t.Errorf("servers %+v", c.Servers)
	}
}

func TestBindBadTarget(t *testing.T) {
	doc, _ := parse.ParseString("node")
	if err := Bind(doc, Building{}); err == nil {
		t.Error("non-pointer target bound")
	}
	var b *Building
	if err := Bind(doc, b); err == nil {
		t.Error("nil pointer target bound")
	}
}

func TestBindErrPosition(t *testing.T) {
	var b Building
	err := Parse([]byte("building \"HQ\" {\n  address city=\"x\"\n  person \"A\"\n}"), &b)
	be := &BindErr{}
	if !errors.As(err, &be) {
		t.Fatalf("no BindErr in %v", err)
	}
	if l, _ := be.Pos.LineCol(); l != 1 {
		t.Errorf("error on line %d want 1", l)
	}
}
