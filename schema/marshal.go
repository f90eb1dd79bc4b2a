package schema

import (
	"fmt"
	"reflect"

	"github.com/mwh/kdly/ir"
)

// Marshal renders a schema struct as a document holding its single node,
// inverting Bind.
func (r *Registry) Marshal(in any) (*ir.Document, error) {
	n, err := r.MarshalNode(in)
	if err != nil {
		return nil, err
	}
	d := ir.New()
	d.Append(n)
	return d, nil
}

func Marshal(in any) (*ir.Document, error) {
	return defaultRegistry.Marshal(in)
}

func (r *Registry) MarshalNode(in any) (*ir.Node, error) {
	rv := reflect.ValueOf(in)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("schema: cannot marshal nil %T", in)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: cannot marshal %T", in)
	}
	cls, err := r.ClassOf(rv.Type())
	if err != nil {
		return nil, err
	}
	return r.marshalNode(cls, rv)
}

func MarshalNode(in any) (*ir.Node, error) {
	return defaultRegistry.MarshalNode(in)
}

func (r *Registry) marshalNode(cls *Class, rv reflect.Value) (*ir.Node, error) {
	n := ir.NewNode(cls.Name)
	for _, slot := range cls.Args {
		fv := rv.Field(slot.Field)
		if slot.Optional && fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		v, err := uncoerce(fv)
		if err != nil {
			return nil, err
		}
		n.AddArg(v)
	}
	if cls.OtherArgs != nil {
		for _, v := range rv.Field(cls.OtherArgs.Field).Interface().([]*ir.Value) {
			n.AddArg(v)
		}
	}
	for _, slot := range cls.Props {
		fv := rv.Field(slot.Field)
		if slot.Optional && fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		v, err := uncoerce(fv)
		if err != nil {
			return nil, err
		}
		n.SetProp(slot.Key, v)
	}
	if cls.OtherProps != nil {
		if extra := rv.Field(cls.OtherProps.Field).Interface().(*ir.Props); extra != nil {
			for _, k := range extra.Keys() {
				v, _ := extra.Get(k)
				n.SetProp(k, v)
			}
		}
	}
	for _, slot := range cls.Children {
		fv := rv.Field(slot.Field)
		switch slot.Kind {
		case ChildSlot:
			if fv.IsNil() {
				if slot.Optional {
					continue
				}
				return nil, fmt.Errorf("%w: %s needs a %s child", ErrMissingChild, cls.Name, slot.Class.Name)
			}
			child, err := r.marshalNode(slot.Class, fv.Elem())
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		case ChildrenSlot:
			for i := 0; i < fv.Len(); i++ {
				ev := fv.Index(i)
				if ev.IsNil() {
					continue
				}
				var child *ir.Node
				var err error
				if slot.Class != nil {
					child, err = r.marshalNode(slot.Class, ev.Elem())
				} else {
					child, err = r.MarshalNode(ev.Interface())
				}
				if err != nil {
					return nil, err
				}
				n.AddChild(child)
			}
		}
	}
	if cls.OtherChildren != nil {
		for _, child := range rv.Field(cls.OtherChildren.Field).Interface().([]*ir.Node) {
			n.AddChild(child)
		}
	}
	return n, nil
}
