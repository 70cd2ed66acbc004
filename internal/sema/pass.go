package sema

import "github.com/cwbudde/coolc/internal/ast"

// Pass is a single stage of the semantic pipeline. A pass reads and writes the shared Context, appends to
// its diagnostics, and never halts the pipeline on its own — failing
// a pass does not stop downstream passes from running,
// though engine.CompileAndRun skips the Executor entirely when any diagnostics
// were produced.
type Pass interface {
	Name() string
	Run(prog *ast.Program, ctx *PassContext)
}

// PassManager runs passes in the order they were added.
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) RunAll(prog *ast.Program, ctx *PassContext) {
	for _, p := range pm.passes {
		p.Run(prog, ctx)
	}
}
