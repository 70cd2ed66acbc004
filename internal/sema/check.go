package sema

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// CheckPass is the TypeChecker, the last static pass.
// It runs after InferPass has resolved every AUTO_TYPE slot to a
// concrete lower bound, so every Type it sees is either a *ClassType,
// a *SelfType, or an AutoVar that already resolves through Find() —
// CheckPass itself never pins or merges anything, only reports.
type CheckPass struct{}

func (CheckPass) Name() string { return "TypeChecker" }

func (CheckPass) Run(prog *ast.Program, ctx *PassContext) {
	for _, class := range prog.Classes {
		ct, ok := ctx.Registry.Get(class.Name)
		if !ok {
			continue
		}
		checkClass(ct, ctx)
	}
}

func checkClass(ct *types.ClassType, ctx *PassContext) {
	ctx.CurrentClass = ct
	ctx.CurrentMethod = nil

	attrScope := NewScope()
	for _, a := range ct.AllAttrsRootFirst() {
		attrScope.Define(a.Name, a.Type, KindAttribute)
	}

	for _, a := range ct.Attrs {
		if a.Init == nil {
			continue
		}
		initType := checkExpr(a.Init, attrScope, ctx)
		if !types.Conforms(initType, a.Type) {
			ctx.Diagnostics.IncompatibleTypes(a.Init.Pos(), initType.TypeName(), a.Type.TypeName())
		}
	}

	for _, m := range ct.Methods {
		if m.Body == nil || m.DeclClass != ct {
			continue
		}
		ctx.CurrentMethod = m
		methodScope := attrScope.CreateChild()
		for i := 1; i < len(m.ParamNames); i++ {
			methodScope.Define(m.ParamNames[i], m.ParamTypes[i], KindParameter)
		}
		bodyType := checkExpr(m.Body, methodScope, ctx)
		expected := m.ReturnType
		if self, ok := expected.(*types.SelfType); ok {
			if !types.Conforms(bodyType, self) && !types.Conforms(bodyType, self.Class) {
				ctx.Diagnostics.IncompatibleTypes(m.Body.Pos(), bodyType.TypeName(), "SELF_TYPE")
			}
		} else if !types.Conforms(bodyType, expected) {
			ctx.Diagnostics.IncompatibleTypes(m.Body.Pos(), bodyType.TypeName(), expected.TypeName())
		}
		ctx.CurrentMethod = nil
	}
}

// contextName is the second %s of VARIABLE_NOT_DEFINED / LOCAL_ALREADY_DEFINED:
// the enclosing method name, or the class name for attribute initializers.
func contextName(ctx *PassContext) string {
	if ctx.CurrentMethod != nil {
		return ctx.CurrentMethod.Name
	}
	if ctx.CurrentClass != nil {
		return ctx.CurrentClass.Name
	}
	return ""
}

func checkExpr(expr ast.Expr, scope *Scope, ctx *PassContext) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return ctx.IntType
	case *ast.StringLit:
		return ctx.StringType
	case *ast.BooleanLit:
		return ctx.BoolType

	case *ast.Variable:
		if e.Name == "self" {
			return &types.SelfType{Class: ctx.CurrentClass}
		}
		if v, ok := scope.Find(e.Name); ok {
			return v.Type
		}
		ctx.Diagnostics.VariableNotDefined(e.Pos(), e.Name, contextName(ctx))
		return types.ErrorType

	case *ast.Assign:
		rhs := checkExpr(e.Value, scope, ctx)
		if e.Name == "self" {
			ctx.Diagnostics.SelfReadOnly(e.Pos())
			return rhs
		}
		v, ok := scope.Find(e.Name)
		if !ok {
			ctx.Diagnostics.VariableNotDefined(e.Pos(), e.Name, contextName(ctx))
			return rhs
		}
		if !types.Conforms(rhs, v.Type) {
			ctx.Diagnostics.IncompatibleTypes(e.Pos(), rhs.TypeName(), v.Type.TypeName())
		}
		return v.Type

	case *ast.Block:
		var last types.Type = ctx.ObjectType
		for _, sub := range e.Exprs {
			last = checkExpr(sub, scope, ctx)
		}
		return last

	case *ast.Let:
		child := scope
		for i := range e.Bindings {
			b := &e.Bindings[i]
			declared := resolveTypeName(b.Type, ctx.CurrentClass, ctx, b, b.Position)
			if b.Init != nil {
				initType := checkExpr(b.Init, child, ctx)
				if !types.Conforms(initType, declared) {
					ctx.Diagnostics.IncompatibleTypes(b.Init.Pos(), initType.TypeName(), declared.TypeName())
				}
			}
			child = child.CreateChild()
			child.Define(b.Name, declared, KindLet)
		}
		return checkExpr(e.Body, child, ctx)

	case *ast.Conditional:
		condType := checkExpr(e.Cond, scope, ctx)
		if !types.Conforms(condType, ctx.BoolType) {
			ctx.Diagnostics.IncompatibleTypes(e.Cond.Pos(), condType.TypeName(), "Bool")
		}
		thenType := checkExpr(e.Then, scope, ctx)
		elseType := checkExpr(e.Else, scope, ctx)
		return types.Join(thenType, elseType)

	case *ast.While:
		condType := checkExpr(e.Cond, scope, ctx)
		if !types.Conforms(condType, ctx.BoolType) {
			ctx.Diagnostics.IncompatibleTypes(e.Cond.Pos(), condType.TypeName(), "Bool")
		}
		checkExpr(e.Body, scope, ctx)
		return ctx.ObjectType

	case *ast.SwitchCase:
		checkExpr(e.Scrutinee, scope, ctx)
		var branchTypes []types.Type
		seen := map[string]bool{}
		for i := range e.Branches {
			b := &e.Branches[i]
			if seen[b.Type] {
				ctx.Diagnostics.Generic(b.Position,
					fmt.Sprintf(`Duplicate branch type %q in case expression.`, b.Type))
			}
			seen[b.Type] = true
			declared := resolveTypeName(b.Type, ctx.CurrentClass, ctx, b, b.Position)
			child := scope.CreateChild()
			child.Define(b.Name, declared, KindCase)
			branchTypes = append(branchTypes, checkExpr(b.Body, child, ctx))
		}
		return types.MultiJoin(ctx.ObjectType, branchTypes)

	case *ast.MethodCall:
		return checkMethodCall(e, scope, ctx)

	case *ast.Instantiate:
		if e.Type == ast.SELFTYPE {
			return &types.SelfType{Class: ctx.CurrentClass}
		}
		if ct, ok := ctx.Registry.Get(e.Type); ok {
			return ct
		}
		ctx.Diagnostics.Generic(e.Pos(), `Undefined type "`+e.Type+`".`)
		return types.ErrorType

	case *ast.UnaryExpr:
		operand := checkExpr(e.Operand, scope, ctx)
		switch e.Op {
		case ast.OpNegation:
			if !types.Conforms(operand, ctx.BoolType) {
				ctx.Diagnostics.InvalidUnaryOp(e.Pos(), "not", operand.TypeName())
			}
			return ctx.BoolType
		case ast.OpComplement:
			if !types.Conforms(operand, ctx.IntType) {
				ctx.Diagnostics.InvalidUnaryOp(e.Pos(), "~", operand.TypeName())
			}
			return ctx.IntType
		case ast.OpIsVoid:
			return ctx.BoolType
		}
		return types.ErrorType

	case *ast.BinaryExpr:
		left := checkExpr(e.Left, scope, ctx)
		right := checkExpr(e.Right, scope, ctx)
		switch e.Op {
		case ast.OpPlus, ast.OpMinus, ast.OpStar, ast.OpDiv:
			if !types.Conforms(left, ctx.IntType) || !types.Conforms(right, ctx.IntType) {
				ctx.Diagnostics.InvalidBinaryOp(e.Pos(), e.Op.String(), left.TypeName(), right.TypeName())
			}
			return ctx.IntType
		case ast.OpLessEqual, ast.OpLessThan:
			if !types.Conforms(left, ctx.IntType) || !types.Conforms(right, ctx.IntType) {
				ctx.Diagnostics.InvalidBinaryOp(e.Pos(), e.Op.String(), left.TypeName(), right.TypeName())
			}
			return ctx.BoolType
		case ast.OpEqual:
			if isPrimitive(left, ctx) || isPrimitive(right, ctx) {
				if left.TypeName() != right.TypeName() {
					ctx.Diagnostics.InvalidBinaryOp(e.Pos(), "=", left.TypeName(), right.TypeName())
				}
			}
			return ctx.BoolType
		}
		return types.ErrorType
	}
	return types.ErrorType
}

func isPrimitive(t types.Type, ctx *PassContext) bool {
	c := types.AsClass(t)
	return c == ctx.IntType || c == ctx.BoolType || c == ctx.StringType
}

func checkMethodCall(e *ast.MethodCall, scope *Scope, ctx *PassContext) types.Type {
	receiverType := checkExpr(e.Receiver, scope, ctx)

	dispatchClass := types.AsClass(receiverType)
	if e.StaticClass != "" {
		staticClass, ok := ctx.Registry.Get(e.StaticClass)
		if !ok {
			ctx.Diagnostics.Generic(e.Pos(), `Undefined type "`+e.StaticClass+`".`)
			return types.ErrorType
		}
		if !types.Conforms(receiverType, staticClass) {
			ctx.Diagnostics.Generic(e.Pos(),
				fmt.Sprintf(`Static dispatch type %q is not an ancestor of %q.`, e.StaticClass, receiverType.TypeName()))
		}
		dispatchClass = staticClass
	}
	if dispatchClass == nil {
		return types.ErrorType
	}

	method, ok := dispatchClass.FindMethod(e.Method)
	if !ok {
		ctx.Diagnostics.Generic(e.Pos(),
			fmt.Sprintf(`Undefined method %q in class %q.`, e.Method, dispatchClass.Name))
		for _, arg := range e.Args {
			checkExpr(arg, scope, ctx)
		}
		return types.ErrorType
	}

	if method.Arity() != len(e.Args) {
		ctx.Diagnostics.Generic(e.Pos(),
			fmt.Sprintf(`Method %q expects %d argument(s) but %d were given.`, e.Method, method.Arity(), len(e.Args)))
	}
	for i, arg := range e.Args {
		argType := checkExpr(arg, scope, ctx)
		if i+1 < len(method.ParamTypes) {
			paramType := method.ParamTypes[i+1]
			if !types.Conforms(argType, paramType) {
				ctx.Diagnostics.IncompatibleTypes(arg.Pos(), argType.TypeName(), paramType.TypeName())
			}
		}
	}

	if self, isSelf := method.ReturnType.(*types.SelfType); isSelf {
		target := types.AsClass(receiverType)
		if target == nil {
			target = self.Class
		}
		return &types.SelfType{Class: target}
	}
	return method.ReturnType
}
