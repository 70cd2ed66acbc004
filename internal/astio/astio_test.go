package astio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/astio"
)

const sampleJSON = `{
	"classes": [
		{"name": "Main", "parent": "IO", "line": 1, "column": 1,
		 "attributes": [
			{"name": "count", "type": "Int", "init": {"kind": "int", "int_value": 0}, "line": 2, "column": 3}
		 ],
		 "methods": [
			{"name": "main", "params": [{"name": "n", "type": "Int"}], "return_type": "SELF_TYPE",
			 "body": {"kind": "if",
				"cond": {"kind": "lt", "left": {"kind": "var", "name": "n"}, "right": {"kind": "int", "int_value": 10}},
				"then": {"kind": "var", "name": "self"},
				"else": {"kind": "var", "name": "self"}},
			 "line": 3, "column": 3}
		 ]}
	]
}`

func TestDecodeJSONBuildsMatchingAST(t *testing.T) {
	prog, err := astio.DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)
	require.Len(t, prog.Classes, 1)

	class := prog.Classes[0]
	assert.Equal(t, "Main", class.Name)
	assert.Equal(t, "IO", class.Parent)
	require.Len(t, class.Features, 2)

	attr, ok := class.Features[0].(*ast.AttrDecl)
	require.True(t, ok)
	assert.Equal(t, "count", attr.Name)
	assert.Equal(t, "Int", attr.Type)
	require.NotNil(t, attr.Init)
	intLit, ok := attr.Init.(*ast.IntegerLit)
	require.True(t, ok)
	assert.EqualValues(t, 0, intLit.Value)

	method, ok := class.Features[1].(*ast.MethodDecl)
	require.True(t, ok)
	assert.Equal(t, "main", method.Name)
	assert.Equal(t, "SELF_TYPE", method.ReturnType)
	require.Len(t, method.Params, 1)
	assert.Equal(t, ast.Param{Name: "n", Type: "Int"}, method.Params[0])

	cond, ok := method.Body.(*ast.Conditional)
	require.True(t, ok)
	_, ok = cond.Cond.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestDecodeYAMLMatchesJSONDecoding(t *testing.T) {
	yamlSrc := `
classes:
  - name: Main
    parent: IO
    methods:
      - name: main
        return_type: Object
        body: {kind: int, int_value: 42}
`
	prog, err := astio.DecodeYAML([]byte(yamlSrc))
	require.NoError(t, err)
	require.Len(t, prog.Classes, 1)

	method, ok := prog.Classes[0].Features[0].(*ast.MethodDecl)
	require.True(t, ok)
	lit, ok := method.Body.(*ast.IntegerLit)
	require.True(t, ok)
	assert.EqualValues(t, 42, lit.Value)
}

func TestDecodeJSONRejectsMalformedInput(t *testing.T) {
	_, err := astio.DecodeJSON([]byte(`{not valid json`))
	assert.Error(t, err)
}
