// Package syntax defines the read-only syntax tree consumed by the checker.
//
// A front end (internal/frontend/golang, or the JSON interchange decoder in
// this package) builds a tree of *Node values and hands it to NewTree, which
// numbers every node in depth-first pre-order. After that the tree is
// immutable: the checker and the driver only read it, and a tree never
// outlives the analysis pass that produced it.
//
// # Kinds
//
// The set of kinds is closed. Each kind uses a fixed subset of Node fields:
//
//   - KindIdentifier: Name.
//   - KindMethodInvocation: Callee (member access or bare name).
//   - KindMethodDecl, KindVariableDecl: Name.
//   - KindClassDecl: Name (simple name) and Text (rendered declaration).
//   - KindIfStmt: CondText, HasElse.
//   - KindWhileLoop: CondText.
//   - KindReturnStmt: Text.
//   - KindSwitchStmt: CaseCount.
//   - KindOther: nothing; structural glue only.
//
// Text always holds the front end's rendering of the whole construct and is
// what diagnostics quote.
package syntax
