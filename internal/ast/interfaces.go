// Package ast defines the tagged node types that make up a parsed COOL
// program. Nodes are produced by an external parser (out of scope here)
// and consumed read-only by every semantic pass: an AUTO_TYPE slot's
// raw Type string is never rewritten in place. Instead, the inference
// pass binds each such slot to an inference variable, keyed by the
// slot's own pointer identity in a side table threaded through the
// later passes (and the Executor), which resolve through it to get
// the concrete type inference pinned.
package ast

import "strconv"

// Position marks the source location of a node, used in diagnostics.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "?"
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Feature is implemented by class members: AttrDecl and MethodDecl.
type Feature interface {
	Node
	featureNode()
}

// AUTOTYPE is the placeholder type name requesting inference.
const AUTOTYPE = "AUTO_TYPE"

// SELFTYPE is the symbolic type name meaning "the class this occurs in".
const SELFTYPE = "SELF_TYPE"
