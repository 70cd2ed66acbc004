// Package interp is the Executor: a tree-walking
// evaluator that runs over an AST already accepted by internal/sema's
// pipeline, using its Registry for method/attribute lookup.
package interp

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/coolc/internal/types"
)

// Value is implemented by every runtime value the Executor produces:
// Int, Bool, String, an object Instance, or Void.
type Value interface {
	// TypeName is the value's dynamic class name ("Void" for Void).
	// The Executor's type_name and dynamic dispatch resolve the class
	// through its registry (classOf) rather than through this name.
	TypeName() string
	String() string
}

// IntValue is a boxed COOL Int.
type IntValue struct{ Value int64 }

func (v *IntValue) TypeName() string { return "Int" }
func (v *IntValue) String() string   { return strconv.FormatInt(v.Value, 10) }

// BoolValue is a boxed COOL Bool.
type BoolValue struct{ Value bool }

func (v *BoolValue) TypeName() string { return "Bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// StringValue is a boxed COOL String. Strings are immutable once
// created; every operation that "changes" one (concat, substr)
// allocates a new StringValue.
type StringValue struct{ Value string }

func (v *StringValue) TypeName() string { return "String" }
func (v *StringValue) String() string  { return v.Value }

// VoidValue is the sentinel result of isvoid-testable emptiness: the
// default value of every non-primitive attribute before it is
// assigned, and the value of a While loop.
type VoidValue struct{}

func (v *VoidValue) TypeName() string { return "Void" }
func (v *VoidValue) String() string   { return "void" }

// Void is the single shared VoidValue instance.
var Void Value = &VoidValue{}

// IsVoid reports whether v is the Void sentinel (nil also counts,
// since an uninitialized Go variable of type Value is nil, never a
// valid state once NewInstance has run, but defensive all the same).
func IsVoid(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(*VoidValue)
	return ok
}

// Instance is a runtime object: a pointer to its dynamic class plus
// one boxed value per visible attribute.
type Instance struct {
	Class *types.ClassType
	Attrs map[string]Value
}

func (o *Instance) TypeName() string { return o.Class.Name }
func (o *Instance) String() string   { return fmt.Sprintf("%s instance", o.Class.Name) }

// NewInstance allocates an Instance of class ct with every attribute
// (including inherited ones) set to the zero value of its declared
// type, root ancestor first.
func NewInstance(ct *types.ClassType) *Instance {
	inst := &Instance{Class: ct, Attrs: make(map[string]Value)}
	for _, a := range ct.AllAttrsRootFirst() {
		inst.Attrs[a.Name] = ZeroValue(a.Type)
	}
	return inst
}

// ZeroValue returns the default value COOL assigns to a declared type
// before any initializer runs: 0 for Int, false for Bool, "" for
// String, Void for everything else.
func ZeroValue(t types.Type) Value {
	switch t.TypeName() {
	case "Int":
		return &IntValue{Value: 0}
	case "Bool":
		return &BoolValue{Value: false}
	case "String":
		return &StringValue{Value: ""}
	default:
		return Void
	}
}
