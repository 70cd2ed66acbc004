package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/astio"
	"github.com/cwbudde/coolc/internal/sema"
)

// decodeProgram decodes a JSON-encoded AST description, one of the two
// formats (JSON and YAML) internal/astio accepts.
func decodeProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := astio.DecodeJSON([]byte(src))
	require.NoError(t, err)
	return prog
}

func analyze(t *testing.T, src string) *sema.PassContext {
	t.Helper()
	return sema.Analyze(decodeProgram(t, src))
}

func TestAnalyzeWellTypedProgram(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "call", "receiver": {"kind": "var", "name": "self"},
					 "method": "out_string", "args": [{"kind": "string", "str_value": "hi"}]}
				}
			]}
		]
	}`)
	assert.Equal(t, 0, ctx.Diagnostics.Len(), ctx.Diagnostics.Strings())
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body": {"kind": "var", "name": "x"}}
			]}
		]
	}`)
	require.Equal(t, 1, ctx.Diagnostics.Len())
	assert.Contains(t, ctx.Diagnostics.Strings()[0], `Variable "x" is not defined`)
}

func TestAnalyzeIncompatibleAssign(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "let", "bindings": [
						{"name": "x", "type": "Int", "init": {"kind": "int", "int_value": 0}}
					], "body": {"kind": "assign", "name": "x",
						"value": {"kind": "string", "str_value": "oops"}}}
				}
			]}
		]
	}`)
	require.Equal(t, 1, ctx.Diagnostics.Len())
	assert.Contains(t, ctx.Diagnostics.Strings()[0], `Cannot convert "String" into "Int"`)
}

func TestAnalyzeSelfIsReadOnly(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "assign", "name": "self", "value": {"kind": "int", "int_value": 1}}
				}
			]}
		]
	}`)
	require.Equal(t, 1, ctx.Diagnostics.Len())
	assert.Equal(t, `Variable "self" is read-only.`, ctx.Diagnostics.Strings()[0])
}

func TestAnalyzeMissingMainIsDiagnosed(t *testing.T) {
	ctx := analyze(t, `{"classes": [{"name": "Helper", "parent": "Object"}]}`)
	require.Equal(t, 1, ctx.Diagnostics.Len())
	assert.Equal(t, `Class "Main" is not defined.`, ctx.Diagnostics.Strings()[0])
}

func TestAnalyzeDuplicateClassIsDiagnosed(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "A", "parent": "Object"},
			{"name": "A", "parent": "Object"},
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body": {"kind": "int", "int_value": 0}}
			]}
		]
	}`)
	assert.Contains(t, ctx.Diagnostics.Strings(), `Class "A" is already defined.`)
}

func TestAnalyzeAutoTypeInfersFromInitializer(t *testing.T) {
	ctx := analyze(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "AUTO_TYPE", "body":
					{"kind": "plus",
					 "left": {"kind": "int", "int_value": 1},
					 "right": {"kind": "int", "int_value": 2}}
				}
			]}
		]
	}`)
	assert.Equal(t, 0, ctx.Diagnostics.Len(), ctx.Diagnostics.Strings())
	main, ok := ctx.Registry.Get("Main")
	require.True(t, ok)
	method, ok := main.OwnMethod("main")
	require.True(t, ok)
	assert.Equal(t, "Int", method.ReturnType.TypeName())
}
