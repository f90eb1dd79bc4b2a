package schema

import (
	"fmt"
	"reflect"

	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/parse"
	"github.com/mwh/kdly/token"
)

// Parse parses KDL source and binds the resulting document to out.
func (r *Registry) Parse(src []byte, out any, opts ...parse.Option) error {
	doc, err := parse.Parse(src, opts...)
	if err != nil {
		return err
	}
	return r.Bind(doc, out)
}

func Parse(src []byte, out any, opts ...parse.Option) error {
	return defaultRegistry.Parse(src, out, opts...)
}

// Bind binds a document to out, a non-nil pointer to a schema struct.
// When the document is exactly one node carrying the class's own name,
// that node is bound; otherwise the top-level nodes are dispatched into
// out's child slots, treating out as a document class.
func (r *Registry) Bind(d *ir.Document, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: bind target must be a non-nil struct pointer, got %T", out)
	}
	cls, err := r.ClassOf(rv.Type().Elem())
	if err != nil {
		return err
	}
	if d.Len() == 1 && d.Nodes[0].Name == cls.Name {
		return r.bindNode(cls, d.Nodes[0], rv.Elem())
	}
	return r.bindChildren(cls, d, rv.Elem(), nil)
}

func Bind(d *ir.Document, out any) error {
	return defaultRegistry.Bind(d, out)
}

// BindNode binds a single node to out without the document-level
// dispatch.
func (r *Registry) BindNode(n *ir.Node, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: bind target must be a non-nil struct pointer, got %T", out)
	}
	cls, err := r.ClassOf(rv.Type().Elem())
	if err != nil {
		return err
	}
	return r.bindNode(cls, n, rv.Elem())
}

func BindNode(n *ir.Node, out any) error {
	return defaultRegistry.BindNode(n, out)
}

func (r *Registry) bindNode(cls *Class, n *ir.Node, rv reflect.Value) error {
	if err := r.bindArgs(cls, n, rv); err != nil {
		return err
	}
	if err := r.bindProps(cls, n, rv); err != nil {
		return err
	}
	return r.bindChildren(cls, n.Children, rv, n.Pos)
}

func (r *Registry) bindArgs(cls *Class, n *ir.Node, rv reflect.Value) error {
	next := 0
	for _, slot := range cls.Args {
		if next >= len(n.Args) {
			if slot.Optional {
				continue
			}
			name := cls.Type.Field(slot.Field).Name
			return newBindErr(fmt.Errorf("%w: %s needs %s", ErrMissingArgument, cls.Name, name), n.Pos)
		}
		v := n.Args[next]
		next++
		if err := coerce(v, rv.Field(slot.Field)); err != nil {
			return newBindErr(err, v.Pos)
		}
	}
	rest := n.Args[next:]
	if len(rest) == 0 {
		return nil
	}
	if cls.OtherArgs == nil {
		err := fmt.Errorf("%w: %s takes %d arguments, got %d", ErrExtraArgument, cls.Name, len(cls.Args), len(n.Args))
		return newBindErr(err, rest[0].Pos)
	}
	rv.Field(cls.OtherArgs.Field).Set(reflect.ValueOf(append([]*ir.Value(nil), rest...)))
	return nil
}

func (r *Registry) bindProps(cls *Class, n *ir.Node, rv reflect.Value) error {
	used := map[string]bool{}
	for _, slot := range cls.Props {
		v, ok := n.Props.Get(slot.Key)
		if !ok {
			if slot.Optional {
				continue
			}
			return newBindErr(fmt.Errorf("%w: %s needs %s=", ErrMissingProperty, cls.Name, slot.Key), n.Pos)
		}
		used[slot.Key] = true
		if err := coerce(v, rv.Field(slot.Field)); err != nil {
			return newBindErr(err, v.Pos)
		}
	}
	var extra *ir.Props
	for _, k := range n.Props.Keys() {
		if used[k] {
			continue
		}
		v, _ := n.Props.Get(k)
		if cls.OtherProps == nil {
			return newBindErr(fmt.Errorf("%w: %s does not take %s=", ErrExtraProperty, cls.Name, k), v.Pos)
		}
		if extra == nil {
			extra = ir.NewProps()
		}
		extra.Set(k, v)
	}
	if extra != nil {
		rv.Field(cls.OtherProps.Field).Set(reflect.ValueOf(extra))
	}
	return nil
}

func (r *Registry) bindChildren(cls *Class, children *ir.Document, rv reflect.Value, pos *token.Pos) error {
	seen := map[*Slot]int{}
	var leftover []*ir.Node
	for _, child := range childNodes(children) {
		slot, sub, err := cls.accepts(r, child.Name)
		if err != nil {
			return newBindErr(err, child.Pos)
		}
		if slot == nil {
			if cls.OtherChildren != nil {
				leftover = append(leftover, child)
				continue
			}
			if len(cls.Children) == 0 {
				return newBindErr(fmt.Errorf("%w: %s takes no children", ErrUnexpectedChild, cls.Name), child.Pos)
			}
			return newBindErr(fmt.Errorf("%w: %q under %s", ErrUnknownNode, child.Name, cls.Name), child.Pos)
		}
		if slot.Kind == ChildSlot && seen[slot] > 0 {
			return newBindErr(fmt.Errorf("%w: %q under %s", ErrDuplicateChild, child.Name, cls.Name), child.Pos)
		}
		seen[slot]++
		nv := reflect.New(sub.Type)
		if err := r.bindNode(sub, child, nv.Elem()); err != nil {
			return err
		}
		fv := rv.Field(slot.Field)
		if slot.Kind == ChildSlot {
			fv.Set(nv)
		} else {
			fv.Set(reflect.Append(fv, nv))
		}
	}
	for _, slot := range cls.Children {
		if slot.Kind == ChildSlot && seen[slot] == 0 && !slot.Optional {
			err := fmt.Errorf("%w: %s needs a %s child", ErrMissingChild, cls.Name, slot.Class.Name)
			return newBindErr(err, pos)
		}
	}
	if leftover != nil {
		rv.Field(cls.OtherChildren.Field).Set(reflect.ValueOf(leftover))
	}
	return nil
}

func childNodes(d *ir.Document) []*ir.Node {
	if d == nil {
		return nil
	}
	return d.Nodes
}
