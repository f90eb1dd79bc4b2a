package ir

// Props is the ordered property set of a node. Iteration follows insertion
// order; setting an existing key replaces its value and moves the key to
// the end, matching the rule that the last occurrence of a repeated
// property wins.
type Props struct {
	keys []string
	vals map[string]*Value
}

func NewProps() *Props {
	return &Props{vals: map[string]*Value{}}
}

func (p *Props) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property names in order. The slice is shared, not a
// copy.
func (p *Props) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

func (p *Props) Get(key string) (*Value, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.vals[key]
	return v, ok
}

func (p *Props) Set(key string, v *Value) {
	if _, ok := p.vals[key]; ok {
		for i, k := range p.keys {
			if k == key {
				p.keys = append(p.keys[:i], p.keys[i+1:]...)
				break
			}
		}
	}
	p.keys = append(p.keys, key)
	p.vals[key] = v
}

func (p *Props) Delete(key string) {
	if p == nil {
		return
	}
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			return
		}
	}
}

func (p *Props) Equal(o *Props) bool {
	if p.Len() != o.Len() {
		return false
	}
	for i, k := range p.Keys() {
		if o.keys[i] != k {
			return false
		}
		pv, _ := p.Get(k)
		ov, _ := o.Get(k)
		if !pv.Equal(ov) {
			return false
		}
	}
	return true
}
