package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/coolc/internal/types"
)

func buildHierarchy() (object, a, b, c *types.ClassType) {
	object = types.NewClassType("Object")
	a = types.NewClassType("A")
	b = types.NewClassType("B")
	c = types.NewClassType("C")
	a.Parent = object
	b.Parent = a
	c.Parent = a
	return
}

func TestConformsReflexiveAndTransitive(t *testing.T) {
	object, a, b, _ := buildHierarchy()
	assert.True(t, types.Conforms(b, b))
	assert.True(t, types.Conforms(b, a))
	assert.True(t, types.Conforms(b, object))
	assert.False(t, types.Conforms(a, b))
}

func TestConformsErrorTypeIsUniversal(t *testing.T) {
	_, a, _, _ := buildHierarchy()
	assert.True(t, types.Conforms(types.ErrorType, a))
	assert.True(t, types.Conforms(a, types.ErrorType))
}

func TestConformsSelfType(t *testing.T) {
	_, a, b, _ := buildHierarchy()
	selfA := &types.SelfType{Class: a}
	assert.True(t, types.Conforms(selfA, selfA))
	assert.True(t, types.Conforms(selfA, a))
	assert.False(t, types.Conforms(b, selfA), "a concrete type only conforms to SELF_TYPE[C] when it equals C")
}

func TestJoinFindsLeastCommonAncestor(t *testing.T) {
	object, a, b, c := buildHierarchy()
	assert.Equal(t, a, types.Join(b, c))
	assert.Equal(t, object, types.Join(object, b))
	assert.Equal(t, b, types.Join(b, b))
}

func TestJoinErrorTypeYieldsOtherOperand(t *testing.T) {
	_, a, _, _ := buildHierarchy()
	assert.Equal(t, a, types.Join(types.ErrorType, a))
	assert.Equal(t, a, types.Join(a, types.ErrorType))
}

func TestMultiJoinOfEmptySetIsObject(t *testing.T) {
	object, _, _, _ := buildHierarchy()
	assert.Equal(t, types.Type(object), types.MultiJoin(object, nil))
}

func TestMultiJoinFoldsAcrossAncestors(t *testing.T) {
	object, a, b, c := buildHierarchy()
	got := types.MultiJoin(object, []types.Type{b, c, object})
	assert.Equal(t, object, got)
	got = types.MultiJoin(object, []types.Type{b, c})
	assert.Equal(t, a, got)
}

func TestAutoVarPinAndUnion(t *testing.T) {
	_, a, b, c := buildHierarchy()

	v := types.NewAutoVar()
	assert.Equal(t, types.ErrorType, v.Resolved(), "unconstrained AutoVar resolves to ErrorType")

	changed := v.Pin(b)
	assert.True(t, changed)
	assert.Equal(t, b, v.Resolved())

	changed = v.Pin(b)
	assert.False(t, changed, "pinning the same bound again reports no change")

	changed = v.Pin(c)
	assert.True(t, changed)
	assert.Equal(t, a, v.Resolved(), "pinning a sibling joins up to the common ancestor")

	w := types.NewAutoVar()
	w.Pin(c)
	assert.True(t, types.Union(v, w))
	assert.Same(t, v.Find(), w.Find())
}
