// Package encode renders ir document trees as KDL text. Output is
// canonical: bare identifiers where the grammar allows them, raw or
// multi-line string forms where they read better, two-space indentation
// by default.
//
// # Related Packages
//
//   - [github.com/mwh/kdly/ir] defines the trees being rendered.
//   - [github.com/mwh/kdly/parse] performs the reverse transformation.
package encode
