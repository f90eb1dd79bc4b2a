package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/token"
)

type EncState struct {
	depth, indent int
	typeMap       TypeMap

	Color func(ir.Kind, ColorAttr, string) string
}

// Encode writes d as KDL text, one node per line, each line ending with a
// newline.
func Encode(d *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return encodeDocument(d, w, es)
}

// EncodeNode writes a single node and its terminating newline.
func EncodeNode(n *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return encodeNode(n, w, es)
}

func String(d *ir.Document, opts ...EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := Encode(d, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustString panics on encoding errors, which only user-supplied reverse
// converters can produce.
func MustString(d *ir.Document, opts ...EncodeOption) string {
	s, err := String(d, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) paint(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func (es *EncState) pad() string {
	return strings.Repeat(" ", es.indent*es.depth)
}

func encodeDocument(d *ir.Document, w io.Writer, es *EncState) error {
	for _, n := range d.Nodes {
		if err := writeString(w, es.pad()); err != nil {
			return err
		}
		if err := encodeNode(n, w, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeNode(n *ir.Node, w io.Writer, es *EncState) error {
	var b strings.Builder
	if n.Tag != "" {
		b.WriteString(es.paint(ir.StringKind, TagColor, "("+ident(n.Tag)+")"))
	}
	b.WriteString(es.paint(ir.StringKind, NameColor, ident(n.Name)))
	if err := writeString(w, b.String()); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := writeString(w, " "); err != nil {
			return err
		}
		if err := es.encodeValue(a, w); err != nil {
			return err
		}
	}
	for _, k := range n.Props.Keys() {
		v, _ := n.Props.Get(k)
		kv := " " + es.paint(ir.StringKind, PropColor, ident(k)) + es.paint(ir.StringKind, PuncColor, "=")
		if err := writeString(w, kv); err != nil {
			return err
		}
		if err := es.encodeValue(v, w); err != nil {
			return err
		}
	}
	if n.Children == nil {
		return writeString(w, "\n")
	}
	if n.Children.Len() == 0 {
		return writeString(w, " "+es.paint(ir.StringKind, PuncColor, "{}")+"\n")
	}
	if err := writeString(w, " "+es.paint(ir.StringKind, PuncColor, "{")+"\n"); err != nil {
		return err
	}
	es.depth++
	err := encodeDocument(n.Children, w, es)
	es.depth--
	if err != nil {
		return err
	}
	return writeString(w, es.pad()+es.paint(ir.StringKind, PuncColor, "}")+"\n")
}

func (es *EncState) encodeValue(v *ir.Value, w io.Writer) error {
	if v.Custom != nil && v.Tag != "" && es.typeMap != nil {
		if fn, ok := es.typeMap[v.Tag]; ok {
			nv, err := fn(v.Custom)
			if err != nil {
				return fmt.Errorf("%w: tag %q: %v", ErrEncoding, v.Tag, err)
			}
			if nv.Tag == "" {
				nv.Tag = v.Tag
			}
			v = nv
		}
	}
	var b strings.Builder
	if v.Tag != "" {
		b.WriteString(es.paint(v.Kind, TagColor, "("+ident(v.Tag)+")"))
	}
	switch v.Kind {
	case ir.NullKind:
		b.WriteString(es.paint(v.Kind, ValueColor, "#null"))
	case ir.BoolKind:
		b.WriteString(es.paint(v.Kind, ValueColor, "#"+strconv.FormatBool(v.Bool)))
	case ir.IntegerKind:
		if v.Big != nil {
			b.WriteString(es.paint(v.Kind, ValueColor, v.Big.String()))
		} else {
			b.WriteString(es.paint(v.Kind, ValueColor, strconv.FormatInt(v.Int64, 10)))
		}
	case ir.FloatKind:
		b.WriteString(es.paint(v.Kind, ValueColor, formatFloat(v.Float64)))
	default:
		b.WriteString(es.paint(v.Kind, ValueColor, es.stringText(v.Str)))
	}
	return writeString(w, b.String())
}

func ident(s string) string {
	if token.ValidBareIdentifier(s) {
		return s
	}
	return token.Quote(s)
}

// stringText picks the friendliest rendering for a string value: bare,
// multi-line block, raw, or escaped single-line, in that order.
func (es *EncState) stringText(v string) string {
	if token.ValidBareIdentifier(v) {
		return v
	}
	if s, ok := es.blockForm(v); ok {
		return s
	}
	if s, ok := rawForm(v); ok {
		return s
	}
	return token.Quote(v)
}

// blockForm renders a multi-line value as a """ string indented one level
// past the current node. Values containing backslashes, exotic newlines,
// or a quote run that would close the string fall back to other forms.
func (es *EncState) blockForm(v string) (string, bool) {
	if !strings.Contains(v, "\n") || strings.Contains(v, `"""`) {
		return "", false
	}
	for _, r := range v {
		if r == '\\' || token.IsDisallowed(r) {
			return "", false
		}
		if token.IsNewline(r) && r != '\n' {
			return "", false
		}
	}
	prefix := strings.Repeat(" ", es.indent*(es.depth+1))
	var b strings.Builder
	b.WriteString("\"\"\"\n")
	for _, ln := range strings.Split(v, "\n") {
		if ln == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix)
		b.WriteString(ln)
		b.WriteString("\n")
	}
	b.WriteString(prefix)
	b.WriteString(`"""`)
	return b.String(), true
}

// rawForm renders escape-heavy single-line values as a hashed raw string,
// with enough hashes that no quote run inside the value can close it.
func rawForm(v string) (string, bool) {
	if strings.Count(v, `\`)+strings.Count(v, `"`) < 2 {
		return "", false
	}
	for _, r := range v {
		if token.IsNewline(r) || token.IsDisallowed(r) {
			return "", false
		}
	}
	hashes := 1
	for i := 0; i < len(v); i++ {
		if v[i] != '"' {
			continue
		}
		run := 0
		for j := i + 1; j < len(v) && v[j] == '#'; j++ {
			run++
		}
		if run+1 > hashes {
			hashes = run + 1
		}
	}
	h := strings.Repeat("#", hashes)
	return h + `"` + v + `"` + h, true
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "#inf"
	case math.IsInf(f, -1):
		return "#-inf"
	case math.IsNaN(f):
		return "#nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
