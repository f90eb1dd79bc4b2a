// Package token tokenizes KDL 2.0 source text.
//
// Tokenize scans a complete UTF-8 document into a flat token slice with
// byte-offset positions. String escapes, raw-string bodies, multi-line
// dedenting and number decoding are all resolved here, so the parser only
// sees decoded payloads.
//
// # Related Packages
//
//   - github.com/mwh/kdly/ir - document tree representation
//   - github.com/mwh/kdly/parse - token stream to ir.Document
//   - github.com/mwh/kdly/encode - ir.Document to canonical text
package token
