// Package diag formats compiler diagnostics with source context and a
// caret pointing at the offending column, carrying a per-run
// correlation id instead of a source file path, since coolc compiles a
// single in-memory program rather than a file tree.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/cwbudde/coolc/internal/ast"
)

// CompilerError is a single reported problem: a message, the position
// it occurred at, and (optionally) the source text it occurred in, so
// Format can render a caret line.
type CompilerError struct {
	Message string
	Pos     ast.Position
	Source  string
}

func NewCompilerError(pos ast.Position, message, source string) *CompilerError {
	return &CompilerError{Message: message, Pos: pos, Source: source}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error as a "line | source" row followed by a
// caret under the reported column, then the message. With color
// enabled, the caret is bold red and the message is bold, using
// github.com/fatih/color rather than hand-rolled ANSI escapes.
func (e *CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		caret := "^"
		if useColor {
			caret = color.New(color.FgRed, color.Bold).Sprint(caret)
		}
		sb.WriteString(caret)
		sb.WriteString("\n")
	}

	msg := e.Message
	if useColor {
		msg = color.New(color.Bold).Sprint(msg)
	}
	sb.WriteString(msg)
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Report is the outcome of one compiler invocation: every diagnostic
// produced plus a correlation id (google/uuid) in RunID. FormatAll
// does not include RunID in its output, and the coolc CLI does not
// print it.
type Report struct {
	RunID  string
	Errors []*CompilerError
	Source string
}

// NewReport wraps diagnostics into a Report, one CompilerError per
// entry, each carrying its own message and position (the shape
// internal/sema.Diagnostics.All() produces, once its entries are
// viewed as DiagnosticLike values).
func NewReport(diags []DiagnosticLike, source string) *Report {
	errs := make([]*CompilerError, len(diags))
	for i, d := range diags {
		errs[i] = NewCompilerError(d.Position(), d.Text(), source)
	}
	return &Report{RunID: uuid.NewString(), Errors: errs, Source: source}
}

// DiagnosticLike is satisfied by internal/sema.Diagnostic, decoupling
// this package from internal/sema so the dependency runs one way
// (cmd/internal/engine -> diag, not diag -> sema).
type DiagnosticLike interface {
	Position() ast.Position
	Text() string
}

// FormatAll renders every error in the report, numbered when there is
// more than one.
func (r *Report) FormatAll(useColor bool) string {
	if len(r.Errors) == 0 {
		return ""
	}
	if len(r.Errors) == 1 {
		return r.Errors[0].Format(useColor)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(r.Errors))
	for i, e := range r.Errors {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(r.Errors))
		sb.WriteString(e.Format(useColor))
		if i < len(r.Errors)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
