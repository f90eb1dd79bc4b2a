// Package schema binds parsed KDL documents to Go structs and back. A
// struct declares its binding with `kdl` field tags:
//
//	type Server struct {
//		Name    string       `kdl:"arg"`
//		Port    int          `kdl:"prop"`
//		Comment *string      `kdl:"prop,name=note"`
//		TLS     *TLS         `kdl:"child"`
//		Routes  []*Route     `kdl:"children"`
//		Extra   []*ir.Node   `kdl:"children,rest"`
//	}
//
// Arguments bind positionally in field order, properties by lower-cased
// field name unless renamed, child and children slots by the node name of
// their struct type. Pointer fields and `,optional` mark a slot optional.
// A struct binds nodes named after its lower-cased type name; implement
// KDLName to override.
//
// Descriptors are derived once per type and cached; Bind and Marshal may
// run concurrently.
//
// # Related Packages
//
//   - [github.com/mwh/kdly/parse] produces the documents being bound.
//   - [github.com/mwh/kdly/ir] is the tree form both directions share.
package schema
