package schema

import (
	"reflect"
	"testing"

	"github.com/mwh/kdly/encode"
)

func TestMarshalBuilding(t *testing.T) {
	zip := "62704"
	b := &Building{
		Name:   "HQ",
		Floors: 3,
		Address: &Address{
			Street: "123 Main St",
			City:   "Springfield",
			Zip:    &zip,
		},
		People: []*Person{
			{Name: "Alice", Age: 30},
			{Name: "Bob"},
		},
	}
	d, err := Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := encode.String(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `building HQ floors=3 {
  address "123 Main St" city=Springfield zip="62704"
  person Alice age=30
  person Bob age=0
}
`
	if got != want {
		t.Errorf("got `%s` want `%s`", got, want)
	}
}

func TestMarshalBindRoundTrip(t *testing.T) {
	zip := "62704"
	in := &Building{
		Name:    "HQ",
		Floors:  2,
		Address: &Address{Street: "s", City: "c", Zip: &zip},
		People:  []*Person{{Name: "A", Age: 1}},
	}
	d, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Building
	if err := Bind(d, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, &out) {
		t.Errorf("round trip changed %+v to %+v", in, out)
	}
}

func TestMarshalMissingChild(t *testing.T) {
	if _, err := Marshal(&Building{Name: "HQ"}); err == nil {
		t.Error("marshal without required child succeeded")
	}
}

func TestMarshalLevels(t *testing.T) {
	w := &Widget{Verbose: Loud, Count: 2}
	d, err := Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	n := d.Nodes[0]
	if v := n.Prop("verbose"); v == nil || v.Str != "loud" {
		t.Errorf("verbose %v", v)
	}
	if v := n.Prop("count"); v == nil || v.Int64 != 2 {
		t.Errorf("count %v", v)
	}
}
