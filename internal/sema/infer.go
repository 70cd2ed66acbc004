package sema

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// InferPass is the InferenceChecker: it replaces every
// AUTO_TYPE occurrence with a concrete type inferred from use. Each
// AUTO_TYPE site was already bound to a *types.AutoVar by BuildPass
// (for attribute/parameter/return-type slots) or is bound lazily here
// (for let/case local-variable slots, via ctx.AutoVarFor keyed by the
// AST slot's own pointer identity).
//
// The pass repeats a structural traversal of every method body and
// attribute initializer, pinning or merging inference variables at
// each site that would demand conformance, until a full traversal
// produces no change (a fixed point) or MaxInferenceIters is reached.
// It never reports conformance errors itself — only CheckPass, which runs afterward over the same
// AutoVar-resolved types, does that.
type InferPass struct{}

func (InferPass) Name() string { return "InferenceChecker" }

func (InferPass) Run(prog *ast.Program, ctx *PassContext) {
	for iter := 0; iter < ctx.MaxInferenceIters; iter++ {
		changed := false
		for _, class := range prog.Classes {
			ct, ok := ctx.Registry.Get(class.Name)
			if !ok {
				continue
			}
			if inferClass(ct, ctx) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	finalizeAutoVars(ctx)
}

// finalizeAutoVars resolves every still-unconstrained inference
// variable to Object,
// satisfying P5 (no AUTO_TYPE slot survives inference).
func finalizeAutoVars(ctx *PassContext) {
	for _, v := range ctx.AutoVars {
		root := v.Find()
		if root.Resolved() == types.ErrorType {
			root.Pin(ctx.ObjectType)
		}
	}
}

func inferClass(ct *types.ClassType, ctx *PassContext) bool {
	changed := false
	ctx.CurrentClass = ct

	attrScope := NewScope()
	for _, a := range ct.AllAttrsRootFirst() {
		attrScope.Define(a.Name, a.Type, KindAttribute)
	}

	for _, a := range ct.Attrs {
		if a.Init == nil {
			continue
		}
		initType := inferExpr(a.Init, attrScope, ctx)
		if constrain(a.Type, initType) {
			changed = true
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
		bodyType := inferExpr(m.Body, methodScope, ctx)
		if constrain(m.ReturnType, bodyType) {
			changed = true
		}
	}

	return changed
}

// constrain pins or merges target against source, the two primitive
// actions inference performs, and reports whether anything changed.
func constrain(target, source types.Type) bool {
	tVar, tIsVar := target.(*types.AutoVar)
	sVar, sIsVar := source.(*types.AutoVar)
	switch {
	case tIsVar && sIsVar:
		return types.Union(tVar, sVar)
	case tIsVar:
		return tVar.Pin(source)
	case sIsVar:
		return sVar.Pin(target)
	default:
		return false
	}
}

// inferExpr structurally propagates witnesses through expr and
// returns its currently-inferred type (which may itself be an
// unresolved *types.AutoVar, transparently resolved by types.Conforms
// / types.Join via Find()).
func inferExpr(expr ast.Expr, scope *Scope, ctx *PassContext) types.Type {
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
		return types.ErrorType

	case *ast.Assign:
		rhs := inferExpr(e.Value, scope, ctx)
		if e.Name == "self" {
			return rhs
		}
		if v, ok := scope.Find(e.Name); ok {
			constrain(v.Type, rhs)
			return v.Type
		}
		return rhs

	case *ast.Block:
		var last types.Type = ctx.ObjectType
		for _, sub := range e.Exprs {
			last = inferExpr(sub, scope, ctx)
		}
		return last

	case *ast.Let:
		child := scope
		for i := range e.Bindings {
			b := &e.Bindings[i]
			declared := resolveTypeName(b.Type, ctx.CurrentClass, ctx, b, b.Position)
			if b.Init != nil {
				initType := inferExpr(b.Init, child, ctx)
				constrain(declared, initType)
			}
			child = child.CreateChild()
			child.Define(b.Name, declared, KindLet)
		}
		return inferExpr(e.Body, child, ctx)

	case *ast.Conditional:
		inferExpr(e.Cond, scope, ctx)
		thenType := inferExpr(e.Then, scope, ctx)
		elseType := inferExpr(e.Else, scope, ctx)
		return types.Join(thenType, elseType)

	case *ast.While:
		inferExpr(e.Cond, scope, ctx)
		inferExpr(e.Body, scope, ctx)
		return ctx.ObjectType

	case *ast.SwitchCase:
		inferExpr(e.Scrutinee, scope, ctx)
		var branchTypes []types.Type
		for i := range e.Branches {
			b := &e.Branches[i]
			declared := resolveTypeName(b.Type, ctx.CurrentClass, ctx, b, b.Position)
			child := scope.CreateChild()
			child.Define(b.Name, declared, KindCase)
			branchTypes = append(branchTypes, inferExpr(b.Body, child, ctx))
		}
		return types.MultiJoin(ctx.ObjectType, branchTypes)

	case *ast.MethodCall:
		return inferMethodCall(e, scope, ctx)

	case *ast.Instantiate:
		if e.Type == ast.SELFTYPE {
			return &types.SelfType{Class: ctx.CurrentClass}
		}
		if ct, ok := ctx.Registry.Get(e.Type); ok {
			return ct
		}
		return types.ErrorType

	case *ast.UnaryExpr:
		operand := inferExpr(e.Operand, scope, ctx)
		switch e.Op {
		case ast.OpNegation:
			constrain(operand, ctx.BoolType)
			return ctx.BoolType
		case ast.OpComplement:
			constrain(operand, ctx.IntType)
			return ctx.IntType
		case ast.OpIsVoid:
			return ctx.BoolType
		}
		return types.ErrorType

	case *ast.BinaryExpr:
		left := inferExpr(e.Left, scope, ctx)
		right := inferExpr(e.Right, scope, ctx)
		switch e.Op {
		case ast.OpPlus, ast.OpMinus, ast.OpStar, ast.OpDiv:
			constrain(left, ctx.IntType)
			constrain(right, ctx.IntType)
			return ctx.IntType
		case ast.OpLessEqual, ast.OpLessThan:
			constrain(left, ctx.IntType)
			constrain(right, ctx.IntType)
			return ctx.BoolType
		case ast.OpEqual:
			return ctx.BoolType
		}
		return types.ErrorType
	}
	return types.ErrorType
}

func inferMethodCall(e *ast.MethodCall, scope *Scope, ctx *PassContext) types.Type {
	receiverType := inferExpr(e.Receiver, scope, ctx)

	var dispatchClass *types.ClassType
	if e.StaticClass != "" {
		dispatchClass, _ = ctx.Registry.Get(e.StaticClass)
	} else {
		dispatchClass = types.AsClass(receiverType)
	}
	if dispatchClass == nil {
		dispatchClass = ctx.ObjectType
	}

	method, ok := dispatchClass.FindMethod(e.Method)
	for i, arg := range e.Args {
		argType := inferExpr(arg, scope, ctx)
		if ok && i+1 < len(method.ParamTypes) {
			constrain(method.ParamTypes[i+1], argType)
		}
	}
	if !ok {
		return types.ErrorType
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
