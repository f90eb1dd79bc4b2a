package ir

import (
	"math"
	"math/big"
	"strconv"

	"github.com/mwh/kdly/token"
)

// Kind discriminates the payload of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntegerKind
	FloatKind
	StringKind
)

// Kinds lists every value kind.
func Kinds() []Kind {
	return []Kind{NullKind, BoolKind, IntegerKind, FloatKind, StringKind}
}

func (k Kind) String() string {
	return map[Kind]string{
		NullKind:    "null",
		BoolKind:    "bool",
		IntegerKind: "integer",
		FloatKind:   "float",
		StringKind:  "string",
	}[k]
}

// Value is a single KDL value, appearing as a node argument or a property
// value. Exactly one payload field is meaningful, selected by Kind; an
// integer too large for int64 is carried in Big instead of Int64.
type Value struct {
	Kind Kind
	Tag  string // type annotation, "" when absent

	Bool    bool
	Int64   int64
	Big     *big.Int
	Float64 float64
	Str     string

	// Custom holds the result of a value transformer registered for this
	// value's tag. The decoded payload above is kept alongside it.
	Custom any

	Pos *token.Pos
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BoolKind, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{Kind: IntegerKind, Int64: v}
}

func FromBig(v *big.Int) *Value {
	return &Value{Kind: IntegerKind, Big: v}
}

func FromFloat(v float64) *Value {
	return &Value{Kind: FloatKind, Float64: v}
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, Str: v}
}

// FromNumber builds a Value from a decoded number token.
func FromNumber(n *token.Number) *Value {
	switch {
	case n.IsFloat:
		return FromFloat(n.Float64)
	case n.Big != nil:
		return FromBig(n.Big)
	default:
		return FromInt(n.Int64)
	}
}

func (v *Value) WithTag(tag string) *Value {
	v.Tag = tag
	return v
}

// Interface returns the payload as a plain Go value: nil, bool, int64,
// *big.Int, float64, or string. A transformer result takes precedence.
func (v *Value) Interface() any {
	if v.Custom != nil {
		return v.Custom
	}
	switch v.Kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.Bool
	case IntegerKind:
		if v.Big != nil {
			return v.Big
		}
		return v.Int64
	case FloatKind:
		return v.Float64
	default:
		return v.Str
	}
}

// String renders the payload for debugging, without tag or quoting rules.
func (v *Value) String() string {
	switch v.Kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(v.Bool)
	case IntegerKind:
		if v.Big != nil {
			return v.Big.String()
		}
		return strconv.FormatInt(v.Int64, 10)
	case FloatKind:
		return strconv.FormatFloat(v.Float64, 'g', -1, 64)
	default:
		return v.Str
	}
}

// Equal compares kind, tag and payload. Positions and transformer results
// are not part of value identity.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.Kind != o.Kind || v.Tag != o.Tag {
		return false
	}
	switch v.Kind {
	case NullKind:
		return true
	case BoolKind:
		return v.Bool == o.Bool
	case IntegerKind:
		if (v.Big != nil) != (o.Big != nil) {
			if v.Big != nil {
				return v.Big.IsInt64() && v.Big.Int64() == o.Int64
			}
			return o.Big.IsInt64() && o.Big.Int64() == v.Int64
		}
		if v.Big != nil {
			return v.Big.Cmp(o.Big) == 0
		}
		return v.Int64 == o.Int64
	case FloatKind:
		if math.IsNaN(v.Float64) && math.IsNaN(o.Float64) {
			return true
		}
		return v.Float64 == o.Float64
	default:
		return v.Str == o.Str
	}
}
