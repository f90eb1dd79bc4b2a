package parse

import (
	"errors"
	"fmt"

	"github.com/mwh/kdly/token"
)

var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrBadPropertyKey    = errors.New("property key must be a plain string")
	ErrKeywordIdentifier = errors.New("keyword cannot be used as a name")
	ErrDanglingSlashdash = errors.New("slashdash comments out nothing")
)

// ParseErr couples a structural error kind with the offending source span.
type ParseErr struct {
	Err error
	Pos token.Pos
}

func newParseErr(e error, p *token.Pos) *ParseErr {
	return &ParseErr{Err: e, Pos: *p}
}

func (p *ParseErr) Unwrap() error {
	return p.Err
}

func (p *ParseErr) Error() string {
	return fmt.Sprintf("%v %s", p.Err, p.Pos.String())
}

// TransformErr wraps an error raised by a user transformer with the span
// of the value or node it was applied to.
type TransformErr struct {
	Err error
	Pos token.Pos
}

func (t *TransformErr) Unwrap() error {
	return t.Err
}

func (t *TransformErr) Error() string {
	return fmt.Sprintf("transform: %v %s", t.Err, t.Pos.String())
}
