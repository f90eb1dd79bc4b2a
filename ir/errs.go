package ir

import "errors"

var (
	ErrNotFound  = errors.New("no node matches path")
	ErrAmbiguous = errors.New("multiple nodes match path")
)
