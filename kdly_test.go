package kdly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type listen struct {
	Addr string `kdl:"arg"`
	TLS  bool   `kdl:"prop,optional"`
}

type server struct {
	Name    string    `kdl:"arg"`
	Listens []*listen `kdl:"children"`
}

type topConfig struct {
	Servers []*server `kdl:"children"`
}

const configSrc = `server web {
  listen "0.0.0.0:80"
  listen "0.0.0.0:443" tls=#true
}
server admin {
  listen "127.0.0.1:9000"
}
`

func TestUnmarshal(t *testing.T) {
	var cfg topConfig
	if err := Unmarshal([]byte(configSrc), &cfg); err != nil {
		t.Fatal(err)
	}
	want := topConfig{
		Servers: []*server{
			{Name: "web", Listens: []*listen{
				{Addr: "0.0.0.0:80"},
				{Addr: "0.0.0.0:443", TLS: true},
			}},
			{Name: "admin", Listens: []*listen{
				{Addr: "127.0.0.1:9000"},
			}},
		},
	}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("unmarshal mismatch (-want +got):\n%s", d)
	}
}

func TestParseEmit(t *testing.T) {
	doc, err := ParseString(configSrc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := EmitString(doc)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(configSrc, got); d != "" {
		t.Errorf("emit mismatch (-want +got):\n%s", d)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	var cfg topConfig
	if err := Unmarshal([]byte(configSrc), &cfg); err != nil {
		t.Fatal(err)
	}
	out, err := Marshal(cfg.Servers[0])
	if err != nil {
		t.Fatal(err)
	}
	var back server
	if err := Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(cfg.Servers[0], &back); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}
