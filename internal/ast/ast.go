package ast

// Program is the root node: an ordered list of class declarations.
// TopologicalOrdering (internal/sema.OrderPass) reorders Classes in
// place so that every class appears after its parent.
type Program struct {
	Classes  []*ClassDecl
	Position Position
}

func (p *Program) Pos() Position { return p.Position }

// ClassDecl declares a COOL class. Parent is the empty string when the
// class inherits implicitly from Object.
type ClassDecl struct {
	Name     string
	Parent   string
	Features []Feature
	Position Position
}

func (c *ClassDecl) Pos() Position { return c.Position }
