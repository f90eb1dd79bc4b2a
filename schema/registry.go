package schema

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry resolves node names to classes for children unions and caches
// derived descriptors. The zero-configuration path goes through the
// package-level functions, which share a default registry.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	types   map[reflect.Type]*Class
}

func NewRegistry() *Registry {
	return &Registry{
		classes: map[string]*Class{},
		types:   map[reflect.Type]*Class{},
	}
}

var defaultRegistry = NewRegistry()

// Register derives the classes of the given prototype structs (values or
// pointers) and makes them resolvable by node name in children unions.
func (r *Registry) Register(prototypes ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range prototypes {
		t := reflect.TypeOf(p)
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil {
			return fmt.Errorf("schema: cannot register %T", p)
		}
		c, err := r.classOf(t)
		if err != nil {
			return err
		}
		r.classes[c.Name] = c
	}
	return nil
}

func Register(prototypes ...any) error {
	return defaultRegistry.Register(prototypes...)
}

// ClassOf returns the cached descriptor for a struct type, deriving it on
// first use.
func (r *Registry) ClassOf(t reflect.Type) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.classOf(t)
}

func ClassOf(t reflect.Type) (*Class, error) {
	return defaultRegistry.ClassOf(t)
}

// classOf derives under the held lock, inserting the descriptor before
// filling it so recursive structures terminate.
func (r *Registry) classOf(t reflect.Type) (*Class, error) {
	if c, ok := r.types[t]; ok {
		return c, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct", t)
	}
	c := &Class{Type: t, Name: nameOf(t)}
	r.types[t] = c
	if err := r.fill(c); err != nil {
		delete(r.types, t)
		return nil, err
	}
	return c, nil
}

func (r *Registry) lookup(name string) *Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classes[name]
}
