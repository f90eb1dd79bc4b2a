package parse

import "github.com/mwh/kdly/ir"

// TypeFunc converts an annotated value or node during the parse. For a
// value the argument is its plain Go payload (nil, bool, int64, *big.Int,
// float64 or string); for a node it is the *ir.Node itself.
type TypeFunc func(v any) (any, error)

// TypeMap binds type annotations to converters. A value or node whose tag
// is bound keeps its decoded form and carries the converter result in its
// Custom field.
type TypeMap map[string]TypeFunc

// NodeFunc builds a custom object from a node's parts.
type NodeFunc func(children *ir.Document, args []*ir.Value, props *ir.Props) (any, error)

// NodeMap binds node names to converters. When a converter returns an
// *ir.Node, that node replaces the parsed one; any other result is stored
// in the node's Custom field.
type NodeMap map[string]NodeFunc

type parseOpts struct {
	typeMap TypeMap
	nodeMap NodeMap
}

type Option func(*parseOpts)

func WithTypeMap(m TypeMap) Option {
	return func(o *parseOpts) { o.typeMap = m }
}

func WithNodeMap(m NodeMap) Option {
	return func(o *parseOpts) { o.nodeMap = m }
}
