package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedString   = errors.New("unterminated string")
	ErrUnterminatedComment  = errors.New("unterminated comment")
	ErrInvalidEscape        = errors.New("invalid string escape")
	ErrInvalidHexScalar     = errors.New("invalid unicode escape")
	ErrDisallowedChar       = errors.New("disallowed character")
	ErrMalformedNumber      = errors.New("malformed number")
	ErrBadBlockStringIndent = errors.New("bad multi-line string indentation")
	ErrReservedIdentifier   = errors.New("reserved identifier")
	ErrUnexpectedChar       = errors.New("unexpected character")
)

// TokenizeErr couples a lexical error kind with its source position.
type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func (t *TokenizeErr) Error() string {
	return fmt.Sprintf("%v %s", t.Err, t.Pos.String())
}
