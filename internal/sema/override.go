package sema

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// OverridePass is the OverrideChecker: for every method
// a class declares that also exists on a strict ancestor, it requires
// an identical signature (arity, parameter types, return type).
// Attributes may not be redefined in a subclass at all.
type OverridePass struct{}

func (OverridePass) Name() string { return "OverrideChecker" }

func (OverridePass) Run(prog *ast.Program, ctx *PassContext) {
	for _, class := range prog.Classes {
		ct, ok := ctx.Registry.Get(class.Name)
		if !ok || ct.Parent == nil {
			continue
		}
		checkOverrides(ct, ctx)
	}
}

func checkOverrides(ct *types.ClassType, ctx *PassContext) {
	for _, m := range ct.Methods {
		ancestor, ok := ct.Parent.FindMethod(m.Name)
		if !ok {
			continue
		}
		if !m.SameSignature(ancestor) {
			ctx.Diagnostics.WrongSignature(m.Pos, m.Name, ct.Name)
		}
	}
	for _, a := range ct.Attrs {
		if _, ok := ct.Parent.FindAttr(a.Name); ok {
			ctx.Diagnostics.Generic(a.Pos,
				"Attribute \""+a.Name+"\" cannot be redefined in \""+ct.Name+"\".")
		}
	}
}
