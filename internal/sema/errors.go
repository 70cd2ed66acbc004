package sema

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/ast"
)

// Diagnostic message templates, matching the WRONG_SIGNATURE,
// SELF_IS_READONLY, LOCAL_ALREADY_DEFINED, INCOMPATIBLE_TYPES,
// VARIABLE_NOT_DEFINED, INVALID_BINARY_OPERATION and
// INVALID_UNARY_OPERATION messages a COOL compiler's semantic checker
// is expected to produce.
const (
	tmplLocalAlreadyDefined = `Variable "%s" is already defined in method "%s".`
	tmplIncompatibleTypes   = `Cannot convert "%s" into "%s".`
	tmplVariableNotDefined  = `Variable "%s" is not defined in "%s".`
	tmplInvalidBinaryOp     = `Operation "%s" is not defined between "%s" and "%s".`
	tmplInvalidUnaryOp      = `Operation "%s" is not defined for "%s".`
	tmplWrongSignature      = `Method "%s" already defined in "%s" with a different signature.`
	tmplSelfReadOnly        = `Variable "self" is read-only.`
	tmplSelfAttrInvalid     = `"self" is an invalid attribute identifier.`
	tmplCannotInherit       = `Cannot inherit from type "%s".`
	tmplInheritanceCycle    = `Class "%s" is involved in an inheritance cycle.`
)

// Diagnostic is one entry of the append-only diagnostics sequence
//. Pos is carried for tooling even though the template
// strings themselves carry no location.
type Diagnostic struct {
	Message string
	Pos     ast.Position
}

// Position and Text satisfy internal/diag.DiagnosticLike, letting the
// CLI render diagnostics with source context without internal/diag
// importing this package.
func (d Diagnostic) Position() ast.Position { return d.Pos }
func (d Diagnostic) Text() string           { return d.Message }

// Diagnostics accumulates diagnostics across every pass. Passes never
// abort on a diagnostic; they substitute types.ErrorType
// and continue.
type Diagnostics struct {
	entries []Diagnostic
}

func (d *Diagnostics) add(pos ast.Position, msg string) {
	d.entries = append(d.entries, Diagnostic{Message: msg, Pos: pos})
}

func (d *Diagnostics) Len() int { return len(d.entries) }

// All returns every diagnostic message in emission order.
func (d *Diagnostics) All() []Diagnostic { return d.entries }

// Strings returns the plain message text of every diagnostic, the
// shape external callers and the CLI consume.
func (d *Diagnostics) Strings() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Message
	}
	return out
}

func (d *Diagnostics) LocalAlreadyDefined(pos ast.Position, name, method string) {
	d.add(pos, fmt.Sprintf(tmplLocalAlreadyDefined, name, method))
}

func (d *Diagnostics) IncompatibleTypes(pos ast.Position, got, expected string) {
	d.add(pos, fmt.Sprintf(tmplIncompatibleTypes, got, expected))
}

func (d *Diagnostics) VariableNotDefined(pos ast.Position, name, method string) {
	d.add(pos, fmt.Sprintf(tmplVariableNotDefined, name, method))
}

func (d *Diagnostics) InvalidBinaryOp(pos ast.Position, op, left, right string) {
	d.add(pos, fmt.Sprintf(tmplInvalidBinaryOp, op, left, right))
}

func (d *Diagnostics) InvalidUnaryOp(pos ast.Position, op, operand string) {
	d.add(pos, fmt.Sprintf(tmplInvalidUnaryOp, op, operand))
}

func (d *Diagnostics) WrongSignature(pos ast.Position, method, class string) {
	d.add(pos, fmt.Sprintf(tmplWrongSignature, method, class))
}

func (d *Diagnostics) SelfReadOnly(pos ast.Position) {
	d.add(pos, tmplSelfReadOnly)
}

func (d *Diagnostics) SelfAttrInvalid(pos ast.Position) {
	d.add(pos, tmplSelfAttrInvalid)
}

func (d *Diagnostics) CannotInherit(pos ast.Position, typeName string) {
	d.add(pos, fmt.Sprintf(tmplCannotInherit, typeName))
}

func (d *Diagnostics) InheritanceCycle(pos ast.Position, className string) {
	d.add(pos, fmt.Sprintf(tmplInheritanceCycle, className))
}

// Generic appends an arbitrary pre-formatted message, used sparingly
// for diagnostics with no fixed template (e.g. duplicate class /
// duplicate attribute / duplicate branch type).
func (d *Diagnostics) Generic(pos ast.Position, msg string) {
	d.add(pos, msg)
}
