package schema

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/mwh/kdly/ir"
)

var (
	valueType           = reflect.TypeOf((*ir.Value)(nil))
	bigIntType          = reflect.TypeOf((*big.Int)(nil))
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func mismatch(v *ir.Value, t reflect.Type) error {
	return fmt.Errorf("%w: cannot store %s value in %s", ErrTypeMismatch, v.Kind, t)
}

// coerce stores a value into a struct field. Exact kind matches come
// first, then the documented widenings: integer into a float field, and a
// string into time.Time or any TextUnmarshaler.
func coerce(v *ir.Value, dst reflect.Value) error {
	t := dst.Type()
	if t == valueType {
		dst.Set(reflect.ValueOf(v))
		return nil
	}
	if t == bigIntType {
		if v.Kind != ir.IntegerKind {
			return mismatch(v, t)
		}
		if v.Big != nil {
			dst.Set(reflect.ValueOf(new(big.Int).Set(v.Big)))
		} else {
			dst.Set(reflect.ValueOf(big.NewInt(v.Int64)))
		}
		return nil
	}
	if v.Custom != nil && reflect.TypeOf(v.Custom).AssignableTo(t) {
		dst.Set(reflect.ValueOf(v.Custom))
		return nil
	}
	if t.Kind() == reflect.Pointer {
		nv := reflect.New(t.Elem())
		if err := coerce(v, nv.Elem()); err != nil {
			return err
		}
		dst.Set(nv)
		return nil
	}
	if t == timeType {
		if v.Kind != ir.StringKind {
			return mismatch(v, t)
		}
		ts, err := time.Parse(time.RFC3339, v.Str)
		if err != nil {
			ts, err = time.Parse("2006-01-02", v.Str)
		}
		if err != nil {
			return fmt.Errorf("%w: %q is not a timestamp or date", ErrTypeMismatch, v.Str)
		}
		dst.Set(reflect.ValueOf(ts))
		return nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		if v.Kind != ir.StringKind {
			return mismatch(v, t)
		}
		um := dst.Addr().Interface().(encoding.TextUnmarshaler)
		if err := um.UnmarshalText([]byte(v.Str)); err != nil {
			return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return nil
	}
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			iv := v.Interface()
			if iv == nil {
				dst.Set(reflect.Zero(t))
			} else {
				dst.Set(reflect.ValueOf(iv))
			}
			return nil
		}
	case reflect.Bool:
		if v.Kind == ir.BoolKind {
			dst.SetBool(v.Bool)
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Kind == ir.IntegerKind && v.Big == nil && !dst.OverflowInt(v.Int64) {
			dst.SetInt(v.Int64)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Kind == ir.IntegerKind && v.Big == nil && v.Int64 >= 0 && !dst.OverflowUint(uint64(v.Int64)) {
			dst.SetUint(uint64(v.Int64))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		switch {
		case v.Kind == ir.FloatKind:
			dst.SetFloat(v.Float64)
			return nil
		case v.Kind == ir.IntegerKind && v.Big == nil:
			dst.SetFloat(float64(v.Int64))
			return nil
		}
	case reflect.String:
		if v.Kind == ir.StringKind {
			dst.SetString(v.Str)
			return nil
		}
	}
	return mismatch(v, t)
}

// uncoerce renders a struct field back into a value, inverting coerce.
func uncoerce(fv reflect.Value) (*ir.Value, error) {
	t := fv.Type()
	if t == valueType {
		if fv.IsNil() {
			return ir.Null(), nil
		}
		return fv.Interface().(*ir.Value), nil
	}
	if t == bigIntType {
		if fv.IsNil() {
			return ir.Null(), nil
		}
		return ir.FromBig(fv.Interface().(*big.Int)), nil
	}
	if t.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return ir.Null(), nil
		}
		return uncoerce(fv.Elem())
	}
	if t == timeType {
		return ir.FromString(fv.Interface().(time.Time).Format(time.RFC3339)), nil
	}
	if t.Implements(textMarshalerType) {
		b, err := fv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return ir.FromString(string(b)), nil
	}
	switch t.Kind() {
	case reflect.Interface:
		if fv.IsNil() {
			return ir.Null(), nil
		}
		return uncoerce(fv.Elem())
	case reflect.Bool:
		return ir.FromBool(fv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(fv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return ir.FromInt(int64(fv.Uint())), nil
	case reflect.Uint64:
		u := fv.Uint()
		if u > 1<<63-1 {
			return ir.FromBig(new(big.Int).SetUint64(u)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(fv.Float()), nil
	case reflect.String:
		return ir.FromString(fv.String()), nil
	}
	return nil, fmt.Errorf("%w: cannot render %s as a value", ErrTypeMismatch, t)
}
