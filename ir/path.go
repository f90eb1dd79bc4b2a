package ir

import (
	"fmt"
	"strings"
)

// Select returns every node reached by a slash-separated name path, in
// document order. Each segment matches child nodes of the previous match
// by name; "server/listen" finds every listen node under every server
// node. An empty path selects nothing.
func (d *Document) Select(path string) []*Node {
	if d == nil || path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	docs := []*Document{d}
	var matched []*Node
	for _, seg := range segs {
		matched = matched[:0]
		for _, doc := range docs {
			matched = append(matched, doc.GetAll(seg)...)
		}
		docs = docs[:0]
		for _, n := range matched {
			if n.Children != nil {
				docs = append(docs, n.Children)
			}
		}
	}
	return append([]*Node(nil), matched...)
}

// SelectOne resolves a path that must match exactly one node, returning
// ErrNotFound or ErrAmbiguous otherwise.
func (d *Document) SelectOne(path string) (*Node, error) {
	ns := d.Select(path)
	switch len(ns) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	case 1:
		return ns[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d nodes", ErrAmbiguous, path, len(ns))
	}
}

// Select resolves a path against the node's children.
func (n *Node) Select(path string) []*Node {
	if n == nil {
		return nil
	}
	return n.Children.Select(path)
}

// SelectOne resolves a path against the node's children, which must match
// exactly one node.
func (n *Node) SelectOne(path string) (*Node, error) {
	if n == nil || n.Children == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return n.Children.SelectOne(path)
}
