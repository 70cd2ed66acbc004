package sema

import "github.com/cwbudde/coolc/internal/ast"

// Analyze runs the full semantic pipeline over prog into a fresh
// PassContext with default settings. Callers that need to
// tune the context first (e.g. MaxInferenceIters) should build their
// own PassContext and call RunPipeline directly.
func Analyze(prog *ast.Program) *PassContext {
	ctx := NewPassContext()
	RunPipeline(prog, ctx)
	return ctx
}

// RunPipeline runs the fixed pass order (TypeCollector, TypeBuilder,
// TopologicalOrdering, OverrideChecker, InferenceChecker, TypeChecker)
// over prog into ctx, then checks for the Main.main entry point the
// Executor needs.
// Diagnostics accumulate into ctx.Diagnostics regardless of whether
// any errors were found.
func RunPipeline(prog *ast.Program, ctx *PassContext) {
	pm := NewPassManager(
		CollectPass{},
		BuildPass{},
		OrderPass{},
		OverridePass{},
		InferPass{},
		CheckPass{},
	)
	pm.RunAll(prog, ctx)
	checkEntryPoint(prog, ctx)
}

func checkEntryPoint(prog *ast.Program, ctx *PassContext) {
	main, ok := ctx.Registry.Get("Main")
	if !ok {
		ctx.Diagnostics.Generic(prog.Pos(), `Class "Main" is not defined.`)
		return
	}
	method, ok := main.OwnMethod("main")
	if !ok {
		ctx.Diagnostics.Generic(prog.Pos(), `Method "main" is not defined in class "Main".`)
		return
	}
	if method.Arity() != 0 {
		ctx.Diagnostics.Generic(method.Pos, `Method "main" in class "Main" must take no arguments.`)
	}
}
