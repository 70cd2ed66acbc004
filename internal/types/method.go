package types

import "github.com/cwbudde/coolc/internal/ast"

// AttrInfo describes a class attribute: its declared type and
// (optional) initializer expression, plus the class that declared it.
type AttrInfo struct {
	Name      string
	Type      Type
	Init      ast.Expr
	DeclClass *ClassType
	Pos       ast.Position
}

// MethodInfo describes a method signature and body. ParamNames[0] is
// always "self" and ParamTypes[0] is always the declaring class
// == len(types) >= 1).
type MethodInfo struct {
	Name       string
	ParamNames []string
	ParamTypes []Type
	ReturnType Type
	Body       ast.Expr
	DeclClass  *ClassType
	Pos        ast.Position
}

// Arity returns the number of explicit (non-self) parameters.
func (m *MethodInfo) Arity() int {
	return len(m.ParamNames) - 1
}

// SameSignature reports whether m and other have identical arity,
// parameter types (excluding self) and return type — the invariance
// rule enforced by internal/sema.OverridePass.
func (m *MethodInfo) SameSignature(other *MethodInfo) bool {
	if m.Arity() != other.Arity() {
		return false
	}
	for i := 1; i < len(m.ParamTypes); i++ {
		if !sameType(m.ParamTypes[i], other.ParamTypes[i]) {
			return false
		}
	}
	return sameType(m.ReturnType, other.ReturnType)
}

func sameType(a, b Type) bool {
	if IsError(a) || IsError(b) {
		return true
	}
	ca, sa := classOrSelf(a)
	cb, sb := classOrSelf(b)
	if sa != sb {
		return false
	}
	return ca == cb
}

func classOrSelf(t Type) (*ClassType, bool) {
	switch v := t.(type) {
	case *SelfType:
		return v.Class, true
	case *ClassType:
		return v, false
	default:
		return AsClass(t), false
	}
}
