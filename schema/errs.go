package schema

import (
	"errors"
	"fmt"

	"github.com/mwh/kdly/token"
)

var (
	ErrUnknownNode     = errors.New("unknown node")
	ErrMissingArgument = errors.New("missing argument")
	ErrExtraArgument   = errors.New("extra argument")
	ErrMissingProperty = errors.New("missing property")
	ErrExtraProperty   = errors.New("extra property")
	ErrMissingChild    = errors.New("missing child")
	ErrDuplicateChild  = errors.New("duplicate child")
	ErrUnexpectedChild = errors.New("unexpected child")
	ErrTypeMismatch    = errors.New("type mismatch")
)

// BindErr couples a binding error kind with the source span of the node
// or value that caused it.
type BindErr struct {
	Err error
	Pos token.Pos
}

func newBindErr(e error, p *token.Pos) *BindErr {
	be := &BindErr{Err: e}
	if p != nil {
		be.Pos = *p
	}
	return be
}

func (b *BindErr) Unwrap() error {
	return b.Err
}

func (b *BindErr) Error() string {
	if b.Pos.D == nil {
		return b.Err.Error()
	}
	return fmt.Sprintf("%v %s", b.Err, b.Pos.String())
}
