// Package engine is the single compile_and_run entry point: static
// analysis followed by execution, with no surface a caller (CLI,
// test, embedder) needs beyond this one call.
package engine

import (
	"io"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/diag"
	"github.com/cwbudde/coolc/internal/interp"
	"github.com/cwbudde/coolc/internal/sema"
)

// Result bundles everything a caller of CompileAndRun needs: the
// static diagnostics produced by the semantic pipeline (always
// present, possibly empty), and, only when analysis found no errors,
// the value main() returned or the RuntimeError that aborted it.
type Result struct {
	Diagnostics []sema.Diagnostic
	Value       interp.Value
	RuntimeErr  *interp.RuntimeError
}

// Ran reports whether the program was executed at all. A program with
// static diagnostics is never run.
func (r *Result) Ran() bool { return r.RuntimeErr != nil || r.Value != nil }

// Options configures a single CompileAndRun invocation.
type Options struct {
	Out               io.Writer
	In                io.Reader
	MaxInferenceIters int // 0 uses sema's default
}

// CompileAndRun runs prog through the full semantic pipeline
// and, if it produced no diagnostics, executes Main.main
// with IO wired to opts.Out/opts.In.
func CompileAndRun(prog *ast.Program, opts Options) *Result {
	ctx := sema.NewPassContext()
	if opts.MaxInferenceIters > 0 {
		ctx.MaxInferenceIters = opts.MaxInferenceIters
	}
	sema.RunPipeline(prog, ctx)

	result := &Result{Diagnostics: ctx.Diagnostics.All()}
	if ctx.HasErrors() {
		return result
	}

	ex := interp.NewExecutor(ctx.Registry, ctx.ObjectType, ctx.IOType, ctx.IntType, ctx.BoolType, ctx.StringType, ctx.AutoVars, opts.Out, opts.In)
	val, rerr := ex.Run()
	result.Value = val
	result.RuntimeErr = rerr
	return result
}

// Report renders the diagnostics in r using src for source-line
// context, the same formatting the CLI's `check` subcommand prints.
func Report(r *Result, src string, useColor bool) string {
	likes := make([]diag.DiagnosticLike, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		likes[i] = d
	}
	return diag.NewReport(likes, src).FormatAll(useColor)
}
