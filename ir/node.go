package ir

import "github.com/mwh/kdly/token"

// Node is one KDL node: a name, an optional type annotation, positional
// arguments, ordered properties, and an optional child block. Children is
// nil when the source had no block at all; an empty block gives an empty,
// non-nil Document.
type Node struct {
	Name     string
	Tag      string
	Args     []*Value
	Props    *Props
	Children *Document

	// Custom holds the result of a node transformer registered for this
	// node's name.
	Custom any

	Pos *token.Pos
}

func NewNode(name string) *Node {
	return &Node{Name: name, Props: NewProps()}
}

// Arg returns the i'th argument, or nil when out of range.
func (n *Node) Arg(i int) *Value {
	if i < 0 || i >= len(n.Args) {
		return nil
	}
	return n.Args[i]
}

// Prop returns the value of the named property, or nil when absent.
func (n *Node) Prop(key string) *Value {
	v, _ := n.Props.Get(key)
	return v
}

func (n *Node) AddArg(v *Value) *Node {
	n.Args = append(n.Args, v)
	return n
}

func (n *Node) SetProp(key string, v *Value) *Node {
	if n.Props == nil {
		n.Props = NewProps()
	}
	n.Props.Set(key, v)
	return n
}

func (n *Node) AddChild(c *Node) *Node {
	if n.Children == nil {
		n.Children = New()
	}
	n.Children.Append(c)
	return n
}

func (n *Node) WithTag(tag string) *Node {
	n.Tag = tag
	return n
}

// Equal compares name, tag, arguments, properties and children. Positions
// and transformer results are ignored.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.Tag != o.Tag {
		return false
	}
	if len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	if !n.Props.Equal(o.Props) {
		return false
	}
	return n.Children.Equal(o.Children)
}
