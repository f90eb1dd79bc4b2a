package ir

// Document is an ordered sequence of nodes: a whole KDL file, or the
// child block of a node.
type Document struct {
	Nodes []*Node
}

func New() *Document {
	return &Document{}
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Nodes)
}

func (d *Document) Append(ns ...*Node) {
	d.Nodes = append(d.Nodes, ns...)
}

// Get returns the first node with the given name, or nil.
func (d *Document) Get(name string) *Node {
	if d == nil {
		return nil
	}
	for _, n := range d.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// GetAll returns every node with the given name, in document order.
func (d *Document) GetAll(name string) []*Node {
	if d == nil {
		return nil
	}
	var res []*Node
	for _, n := range d.Nodes {
		if n.Name == name {
			res = append(res, n)
		}
	}
	return res
}

func (d *Document) Has(name string) bool {
	return d.Get(name) != nil
}

// Equal compares node sequences. A nil document equals an empty one only
// when both are nil or both non-nil; presence of a child block is part of
// node identity.
func (d *Document) Equal(o *Document) bool {
	if (d == nil) != (o == nil) {
		return false
	}
	if d == nil {
		return true
	}
	if len(d.Nodes) != len(o.Nodes) {
		return false
	}
	for i := range d.Nodes {
		if !d.Nodes[i].Equal(o.Nodes[i]) {
			return false
		}
	}
	return true
}
