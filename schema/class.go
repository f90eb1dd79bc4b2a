package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mwh/kdly/ir"
)

type SlotKind int

const (
	ArgumentSlot SlotKind = iota
	PropertySlot
	ChildSlot
	ChildrenSlot
	OtherArgsSlot
	OtherPropsSlot
	OtherChildrenSlot
)

// KDLNamer overrides the node name a struct binds to; the default is the
// lower-cased struct type name.
type KDLNamer interface {
	KDLName() string
}

// Slot maps one struct field onto a piece of a node.
type Slot struct {
	Kind     SlotKind
	Field    int
	Key      string // property key, PropertySlot only
	Optional bool

	// Class is the bound child class for ChildSlot and for a
	// single-class ChildrenSlot; Union lists registered node names for
	// a ChildrenSlot over []any.
	Class *Class
	Union []string
}

// Class is the binding descriptor of a struct type, derived from its kdl
// field tags once and cached.
type Class struct {
	Name string
	Type reflect.Type

	Args     []*Slot
	Props    []*Slot
	Children []*Slot

	OtherArgs     *Slot
	OtherProps    *Slot
	OtherChildren *Slot
}

var (
	namerType     = reflect.TypeOf((*KDLNamer)(nil)).Elem()
	nodeSliceType = reflect.TypeOf([]*ir.Node(nil))
	valueSlice    = reflect.TypeOf([]*ir.Value(nil))
	propsType     = reflect.TypeOf((*ir.Props)(nil))
)

func nameOf(t reflect.Type) string {
	if reflect.PointerTo(t).Implements(namerType) {
		return reflect.New(t).Interface().(KDLNamer).KDLName()
	}
	return strings.ToLower(t.Name())
}

func splitTag(tag string) (kind string, opts map[string]string) {
	parts := strings.Split(tag, ",")
	opts = map[string]string{}
	for _, p := range parts[1:] {
		if k, v, ok := strings.Cut(p, "="); ok {
			opts[k] = v
		} else {
			opts[p] = "true"
		}
	}
	return parts[0], opts
}

// fill derives c's slots from its struct fields. The caller holds the
// registry lock; recursion through child classes goes via r.classOf.
func (r *Registry) fill(c *Class) error {
	t := c.Type
	sawOptionalArg := false
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("kdl")
		if !ok || tag == "-" || f.PkgPath != "" {
			continue
		}
		kind, opts := splitTag(tag)
		slot := &Slot{Field: i}
		switch kind {
		case "arg":
			slot.Kind = ArgumentSlot
			slot.Optional = opts["optional"] == "true" || f.Type.Kind() == reflect.Pointer
			if !slot.Optional && sawOptionalArg {
				return fmt.Errorf("schema: %s.%s: required argument after optional one", t, f.Name)
			}
			sawOptionalArg = sawOptionalArg || slot.Optional
			c.Args = append(c.Args, slot)
		case "prop":
			slot.Kind = PropertySlot
			slot.Key = opts["name"]
			if slot.Key == "" {
				slot.Key = strings.ToLower(f.Name)
			}
			slot.Optional = opts["optional"] == "true" || f.Type.Kind() == reflect.Pointer
			c.Props = append(c.Props, slot)
		case "child":
			if f.Type.Kind() != reflect.Pointer || f.Type.Elem().Kind() != reflect.Struct {
				return fmt.Errorf("schema: %s.%s: child field must be a struct pointer", t, f.Name)
			}
			sub, err := r.classOf(f.Type.Elem())
			if err != nil {
				return err
			}
			slot.Kind = ChildSlot
			slot.Class = sub
			slot.Optional = opts["optional"] == "true"
			c.Children = append(c.Children, slot)
		case "children":
			if opts["rest"] == "true" {
				if f.Type != nodeSliceType {
					return fmt.Errorf("schema: %s.%s: children,rest field must be []*ir.Node", t, f.Name)
				}
				if c.OtherChildren != nil {
					return fmt.Errorf("schema: %s: more than one children,rest field", t)
				}
				slot.Kind = OtherChildrenSlot
				c.OtherChildren = slot
				continue
			}
			slot.Kind = ChildrenSlot
			if union := opts["class"]; union != "" {
				if f.Type.Kind() != reflect.Slice || f.Type.Elem().Kind() != reflect.Interface {
					return fmt.Errorf("schema: %s.%s: a class union needs a []any field", t, f.Name)
				}
				slot.Union = strings.Split(union, "|")
				c.Children = append(c.Children, slot)
				continue
			}
			if f.Type.Kind() != reflect.Slice || f.Type.Elem().Kind() != reflect.Pointer ||
				f.Type.Elem().Elem().Kind() != reflect.Struct {
				return fmt.Errorf("schema: %s.%s: children field must be a []*T of structs", t, f.Name)
			}
			sub, err := r.classOf(f.Type.Elem().Elem())
			if err != nil {
				return err
			}
			slot.Class = sub
			c.Children = append(c.Children, slot)
		case "args":
			if f.Type != valueSlice {
				return fmt.Errorf("schema: %s.%s: args field must be []*ir.Value", t, f.Name)
			}
			if c.OtherArgs != nil {
				return fmt.Errorf("schema: %s: more than one args field", t)
			}
			slot.Kind = OtherArgsSlot
			c.OtherArgs = slot
		case "props":
			if f.Type != propsType {
				return fmt.Errorf("schema: %s.%s: props field must be *ir.Props", t, f.Name)
			}
			if c.OtherProps != nil {
				return fmt.Errorf("schema: %s: more than one props field", t)
			}
			slot.Kind = OtherPropsSlot
			c.OtherProps = slot
		default:
			return fmt.Errorf("schema: %s.%s: unknown slot kind %q", t, f.Name, kind)
		}
	}
	return nil
}

// accepts resolves a child node name against the class's child slots,
// returning the slot and the class the child binds to.
func (c *Class) accepts(r *Registry, name string) (*Slot, *Class, error) {
	for _, slot := range c.Children {
		switch {
		case slot.Class != nil && slot.Class.Name == name:
			return slot, slot.Class, nil
		case slot.Union != nil:
			for _, u := range slot.Union {
				if u != name {
					continue
				}
				sub := r.lookup(name)
				if sub == nil {
					return nil, nil, fmt.Errorf("schema: union class %q is not registered", name)
				}
				return slot, sub, nil
			}
		}
	}
	return nil, nil, nil
}
