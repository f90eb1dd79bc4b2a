// Package parse turns KDL source text into ir document trees. Parsing is
// strict: the first lexical or structural error aborts the parse and is
// returned with its source span.
//
// Registered transformers run during the parse: a TypeMap converts values
// and nodes by type annotation, a NodeMap converts nodes by name.
//
// # Related Packages
//
//   - [github.com/mwh/kdly/token] performs the lexical scan.
//   - [github.com/mwh/kdly/ir] defines the resulting tree.
//   - [github.com/mwh/kdly/encode] renders trees back to text.
package parse
