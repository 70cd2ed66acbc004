package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/coolc/internal/types"
)

func TestZeroValueByDeclaredType(t *testing.T) {
	intType := types.NewClassType("Int")
	boolType := types.NewClassType("Bool")
	stringType := types.NewClassType("String")
	other := types.NewClassType("Helper")

	assert.Equal(t, &IntValue{Value: 0}, ZeroValue(intType))
	assert.Equal(t, &BoolValue{Value: false}, ZeroValue(boolType))
	assert.Equal(t, &StringValue{Value: ""}, ZeroValue(stringType))
	assert.Same(t, Void, ZeroValue(other))
}

func TestNewInstanceInitializesInheritedAttrsToZeroValue(t *testing.T) {
	object := types.NewClassType("Object")
	intType := types.NewClassType("Int")
	a := types.NewClassType("A")
	a.Parent = object
	a.DefineAttr(&types.AttrInfo{Name: "x", Type: intType})
	b := types.NewClassType("B")
	b.Parent = a
	b.DefineAttr(&types.AttrInfo{Name: "y", Type: intType})

	inst := NewInstance(b)
	assert.Equal(t, &IntValue{Value: 0}, inst.Attrs["x"])
	assert.Equal(t, &IntValue{Value: 0}, inst.Attrs["y"])
	assert.Equal(t, "B", inst.TypeName())
}

func TestEqualValuesComparesPrimitivesByValueAndObjectsByIdentity(t *testing.T) {
	assert.True(t, equalValues(&IntValue{Value: 3}, &IntValue{Value: 3}))
	assert.False(t, equalValues(&IntValue{Value: 3}, &IntValue{Value: 4}))
	assert.True(t, equalValues(&StringValue{Value: "hi"}, &StringValue{Value: "hi"}))
	assert.True(t, equalValues(Void, Void))

	ct := types.NewClassType("Widget")
	inst1 := NewInstance(ct)
	inst2 := NewInstance(ct)
	assert.False(t, equalValues(inst1, inst2), "distinct instances are not equal")
	assert.True(t, equalValues(inst1, inst1))
}

func TestIsVoid(t *testing.T) {
	assert.True(t, IsVoid(nil))
	assert.True(t, IsVoid(Void))
	assert.False(t, IsVoid(&IntValue{Value: 0}))
}
