package encode

import "github.com/mwh/kdly/ir"

// TypeFunc renders a transformer-produced object back into a plain value.
type TypeFunc func(custom any) (*ir.Value, error)

// TypeMap binds type annotations to reverse converters, undoing the work
// of a parse-side TypeMap before text is emitted.
type TypeMap map[string]TypeFunc

type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Depth sets the nesting level the output starts at.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func EncodeTypeMap(m TypeMap) EncodeOption {
	return func(es *EncState) { es.typeMap = m }
}
