package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/coolc/internal/astio"
	"github.com/cwbudde/coolc/internal/engine"
	"github.com/cwbudde/coolc/internal/interp"
)

func run(t *testing.T, src string) (*engine.Result, string) {
	t.Helper()
	prog, err := astio.DecodeJSON([]byte(src))
	require.NoError(t, err)

	var out bytes.Buffer
	result := engine.CompileAndRun(prog, engine.Options{Out: &out, In: strings.NewReader("")})
	return result, out.String()
}

func TestCompileAndRunPrintsOutput(t *testing.T) {
	result, out := run(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "call", "receiver": {"kind": "var", "name": "self"},
					 "method": "out_string", "args": [{"kind": "string", "str_value": "hello"}]}
				}
			]}
		]
	}`)
	require.Empty(t, result.Diagnostics)
	require.Nil(t, result.RuntimeErr)
	assert.Equal(t, "hello", out)
}

func TestCompileAndRunStopsAtDiagnostics(t *testing.T) {
	result, out := run(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body": {"kind": "var", "name": "nope"}}
			]}
		]
	}`)
	require.NotEmpty(t, result.Diagnostics)
	assert.Nil(t, result.RuntimeErr)
	assert.False(t, result.Ran())
	assert.Empty(t, out)
}

func TestCompileAndRunDivisionByZeroAborts(t *testing.T) {
	result, _ := run(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Int", "body":
					{"kind": "divide",
					 "left": {"kind": "int", "int_value": 1},
					 "right": {"kind": "int", "int_value": 0}}
				}
			]}
		]
	}`)
	require.Empty(t, result.Diagnostics)
	require.NotNil(t, result.RuntimeErr)
	assert.Equal(t, interp.DivisionByZero, result.RuntimeErr.Kind)
}

func TestCompileAndRunDispatchOnVoidAborts(t *testing.T) {
	result, _ := run(t, `{
		"classes": [
			{"name": "Helper", "parent": "Object"},
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "let", "bindings": [
						{"name": "h", "type": "Helper"}
					], "body":
						{"kind": "call", "receiver": {"kind": "var", "name": "h"}, "method": "copy", "args": []}
					}
				}
			]}
		]
	}`)
	require.Empty(t, result.Diagnostics)
	require.NotNil(t, result.RuntimeErr)
	assert.Equal(t, interp.DispatchOnVoid, result.RuntimeErr.Kind)
}

func TestCompileAndRunCaseSelectsMostSpecificBranch(t *testing.T) {
	result, out := run(t, `{
		"classes": [
			{"name": "A", "parent": "Object"},
			{"name": "B", "parent": "A"},
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "Object", "body":
					{"kind": "case",
					 "scrutinee": {"kind": "new", "type": "B"},
					 "branches": [
						{"name": "x", "type": "A", "body": {"kind": "string", "str_value": "A"}},
						{"name": "x", "type": "B", "body": {"kind": "string", "str_value": "B"}}
					 ]}
				}
			]}
		]
	}`)
	require.Empty(t, result.Diagnostics)
	require.Nil(t, result.RuntimeErr)
	assert.Equal(t, "B", result.Value.String())
	assert.Empty(t, out)
}

func TestCompileAndRunSubstrOutOfRangeAborts(t *testing.T) {
	result, _ := run(t, `{
		"classes": [
			{"name": "Main", "parent": "IO", "methods": [
				{"name": "main", "return_type": "String", "body":
					{"kind": "call", "receiver": {"kind": "string", "str_value": "hi"},
					 "method": "substr",
					 "args": [{"kind": "int", "int_value": 0}, {"kind": "int", "int_value": 5}]}
				}
			]}
		]
	}`)
	require.Empty(t, result.Diagnostics)
	require.NotNil(t, result.RuntimeErr)
	assert.Equal(t, interp.SubstrOutOfRange, result.RuntimeErr.Kind)
}
