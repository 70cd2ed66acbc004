package sema

import "github.com/cwbudde/coolc/internal/ast"

// OrderPass is TopologicalOrdering: it reorders
// prog.Classes so that every class appears after its parent, or
// reports a cycle diagnostic for every class involved. Classes whose
// parent could not be resolved were already pinned to Object by
// BuildPass, so they are roots here regardless of what the source
// text said.
//
// Downstream passes may assume: for any class visited, its non-builtin
// parent has already been visited.
type OrderPass struct{}

func (OrderPass) Name() string { return "TopologicalOrdering" }

func (OrderPass) Run(prog *ast.Program, ctx *PassContext) {
	byName := make(map[string]*ast.ClassDecl, len(prog.Classes))
	for _, c := range prog.Classes {
		byName[c.Name] = c
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(prog.Classes))
	var ordered []*ast.ClassDecl
	var cyclic []*ast.ClassDecl

	// visit returns the name of the class at which a cycle closed on
	// this path, or "" when the path is acyclic.
	var visit func(name string) string
	visit = func(name string) string {
		class, ok := byName[name]
		if !ok {
			return "" // built-in or unresolved parent: not part of this graph
		}
		switch color[name] {
		case black:
			return ""
		case gray:
			return name
		}
		color[name] = gray

		parent := class.Parent
		start := ""
		if parent != "" {
			if _, isUser := byName[parent]; isUser {
				start = visit(parent)
			}
		}
		color[name] = black
		if start != "" {
			cyclic = append(cyclic, class)
			if start == name {
				return "" // the cycle closes here; descendants are not part of it
			}
			return start
		}

		ordered = append(ordered, class)
		return ""
	}

	for _, c := range prog.Classes {
		if color[c.Name] == white {
			visit(c.Name)
		}
	}

	if len(cyclic) > 0 {
		for _, c := range cyclic {
			ctx.Diagnostics.InheritanceCycle(c.Pos(), c.Name)
			// BuildPass ran before cycles were known and may have
			// chained ClassType.Parent pointers into a loop; break it
			// here so every later pass (conformance, depth, attribute
			// collection) can safely walk the parent chain to Object.
			if ct, ok := ctx.Registry.Get(c.Name); ok {
				ct.Parent = ctx.ObjectType
			}
		}
		// Still produce a deterministic order so later passes can run:
		// cyclic classes are appended after every acyclic one, each
		// treated as a root (their Parent was reset to Object just
		// above; this guarantees termination, not a "correct" parent).
		seen := make(map[string]bool, len(ordered))
		for _, c := range ordered {
			seen[c.Name] = true
		}
		for _, c := range prog.Classes {
			if !seen[c.Name] {
				ordered = append(ordered, c)
				seen[c.Name] = true
			}
		}
	}

	prog.Classes = ordered
}
