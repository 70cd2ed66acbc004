package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

func newTestExecutor(out *bytes.Buffer, in string) (*Executor, *types.ClassType) {
	object := types.NewClassType("Object")
	ioType := types.NewClassType("IO")
	intType := types.NewClassType("Int")
	boolType := types.NewClassType("Bool")
	stringType := types.NewClassType("String")
	ioType.Parent = object
	intType.Parent = object
	boolType.Parent = object
	stringType.Parent = object

	object.DefineMethod(&types.MethodInfo{Name: "abort", ParamNames: []string{"self"}, ReturnType: object, DeclClass: object})
	object.DefineMethod(&types.MethodInfo{Name: "type_name", ParamNames: []string{"self"}, ReturnType: stringType, DeclClass: object})
	object.DefineMethod(&types.MethodInfo{Name: "copy", ParamNames: []string{"self"}, ReturnType: &types.SelfType{Class: object}, DeclClass: object})
	ioType.DefineMethod(&types.MethodInfo{Name: "out_string", ParamNames: []string{"self", "x"}, ReturnType: &types.SelfType{Class: ioType}, DeclClass: ioType})
	stringType.DefineMethod(&types.MethodInfo{Name: "substr", ParamNames: []string{"self", "i", "l"}, ReturnType: stringType, DeclClass: stringType})

	reg := types.NewContext()
	reg.Register(object)
	reg.Register(ioType)
	reg.Register(intType)
	reg.Register(boolType)
	reg.Register(stringType)

	ex := NewExecutor(reg, object, ioType, intType, boolType, stringType, nil, out, strings.NewReader(in))
	return ex, object
}

func TestInvokeNativeOutString(t *testing.T) {
	var out bytes.Buffer
	ex, object := newTestExecutor(&out, "")
	self := NewInstance(ex.IOType)
	method, _ := ex.IOType.FindMethod("out_string")
	result, rerr := ex.invoke(method, self, []Value{&StringValue{Value: "hi"}})
	require.Nil(t, rerr)
	assert.Same(t, Value(self), result)
	assert.Equal(t, "hi", out.String())
	_ = object
}

func TestInvokeNativeTypeNameReportsDynamicClass(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	widget := types.NewClassType("Widget")
	widget.Parent = ex.ObjectType
	inst := NewInstance(widget)
	method, _ := ex.ObjectType.FindMethod("type_name")
	result, rerr := ex.invoke(method, inst, nil)
	require.Nil(t, rerr)
	assert.Equal(t, "Widget", result.(*StringValue).Value)
}

func TestInvokeNativeAbortRaisesRuntimeError(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	self := NewInstance(ex.ObjectType)
	method, _ := ex.ObjectType.FindMethod("abort")
	_, rerr := ex.invoke(method, self, nil)
	require.NotNil(t, rerr)
	assert.Equal(t, AbortCalled, rerr.Kind)
}

func TestInvokeNativeCopyIsAShallowClone(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	widget := types.NewClassType("Widget")
	widget.Parent = ex.ObjectType
	widget.DefineAttr(&types.AttrInfo{Name: "n", Type: ex.IntType})
	inst := NewInstance(widget)
	inst.Attrs["n"] = &IntValue{Value: 7}

	method, _ := ex.ObjectType.FindMethod("copy")
	result, rerr := ex.invoke(method, inst, nil)
	require.Nil(t, rerr)
	copied := result.(*Instance)
	assert.NotSame(t, inst, copied)
	assert.Equal(t, &IntValue{Value: 7}, copied.Attrs["n"])
}

func TestSubstrOutOfRangeOnNegativeIndex(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	method, _ := ex.StringType.FindMethod("substr")
	_, rerr := ex.invoke(method, &StringValue{Value: "abc"}, []Value{&IntValue{Value: -1}, &IntValue{Value: 1}})
	require.NotNil(t, rerr)
	assert.Equal(t, SubstrOutOfRange, rerr.Kind)
}

func TestSubstrWithinRange(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	method, _ := ex.StringType.FindMethod("substr")
	result, rerr := ex.invoke(method, &StringValue{Value: "hello"}, []Value{&IntValue{Value: 1}, &IntValue{Value: 3}})
	require.Nil(t, rerr)
	assert.Equal(t, "ell", result.(*StringValue).Value)
}

func TestZeroValueForBindingResolvesAutoTypeThroughAutoVars(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	binding := &ast.LetBinding{Name: "x", Type: ast.AUTOTYPE}
	autoVar := types.NewAutoVar()
	autoVar.Pin(ex.IntType)
	ex.AutoVars = map[any]*types.AutoVar{binding: autoVar}

	assert.Equal(t, &IntValue{Value: 0}, ex.zeroValueForBinding(binding))
}

func TestZeroValueForBindingFallsBackToVoidWhenAutoVarMissing(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	binding := &ast.LetBinding{Name: "x", Type: ast.AUTOTYPE}

	assert.Same(t, Void, ex.zeroValueForBinding(binding))
}

func TestZeroValueForBindingResolvesConcreteTypeName(t *testing.T) {
	var out bytes.Buffer
	ex, _ := newTestExecutor(&out, "")
	binding := &ast.LetBinding{Name: "x", Type: "String"}

	assert.Equal(t, &StringValue{Value: ""}, ex.zeroValueForBinding(binding))
}
