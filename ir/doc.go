// Package ir defines the document tree produced by parsing KDL text: a
// Document of Nodes, each carrying arguments, ordered properties, and an
// optional child Document. Values keep their decoded payloads, their type
// annotation, and the source position they came from.
//
// # Related Packages
//
//   - [github.com/mwh/kdly/parse] builds these trees from source text.
//   - [github.com/mwh/kdly/encode] renders them back to KDL text.
//   - [github.com/mwh/kdly/schema] binds them to Go structs.
package ir
