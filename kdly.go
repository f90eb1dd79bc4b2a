// Package kdly reads and writes the KDL document language.
//
// The top-level functions cover the common paths: Parse text into a
// document tree, Emit a tree back as text, and Unmarshal/Marshal to move
// between documents and tagged Go structs. The underlying packages offer
// finer control.
//
// # Related Packages
//
//   - [github.com/mwh/kdly/token] lexing and source positions
//   - [github.com/mwh/kdly/parse] documents from text
//   - [github.com/mwh/kdly/ir] the document tree
//   - [github.com/mwh/kdly/encode] text from documents
//   - [github.com/mwh/kdly/schema] typed struct binding
package kdly

import (
	"io"

	"github.com/mwh/kdly/encode"
	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/parse"
	"github.com/mwh/kdly/schema"
)

// Parse reads a KDL document from d.
func Parse(d []byte, opts ...parse.Option) (*ir.Document, error) {
	return parse.Parse(d, opts...)
}

// ParseString reads a KDL document from s.
func ParseString(s string, opts ...parse.Option) (*ir.Document, error) {
	return parse.ParseString(s, opts...)
}

// Emit writes d to w in canonical form.
func Emit(d *ir.Document, w io.Writer, opts ...encode.EncodeOption) error {
	return encode.Encode(d, w, opts...)
}

// EmitString renders d in canonical form.
func EmitString(d *ir.Document, opts ...encode.EncodeOption) (string, error) {
	return encode.String(d, opts...)
}

// Unmarshal parses KDL text and binds it onto the struct out points to.
func Unmarshal(d []byte, out any, opts ...parse.Option) error {
	return schema.Parse(d, out, opts...)
}

// Marshal renders a schema struct as KDL text.
func Marshal(in any, opts ...encode.EncodeOption) ([]byte, error) {
	d, err := schema.Marshal(in)
	if err != nil {
		return nil, err
	}
	s, err := encode.String(d, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
