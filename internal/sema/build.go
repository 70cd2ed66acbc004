package sema

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// BuildPass is the TypeBuilder: resolves each class's
// parent (defaulting to Object), rejects inheriting from a sealed
// primitive, and records attributes and method signatures. A missing
// or sealed parent is diagnosed and replaced by Object; a missing
// attribute/parameter/return type is diagnosed and the slot is filled
// with types.ErrorType so downstream passes don't cascade.
type BuildPass struct{}

func (BuildPass) Name() string { return "TypeBuilder" }

func (BuildPass) Run(prog *ast.Program, ctx *PassContext) {
	// A name CollectPass rejected still resolves to the class registered
	// first (a built-in or an earlier declaration); only that class is built.
	built := map[*types.ClassType]bool{
		ctx.ObjectType: true, ctx.IOType: true, ctx.IntType: true, ctx.BoolType: true, ctx.StringType: true,
	}
	for _, class := range prog.Classes {
		ct, ok := ctx.Registry.Get(class.Name)
		if !ok || built[ct] {
			// Duplicate class name already diagnosed by CollectPass.
			continue
		}
		built[ct] = true
		buildClass(class, ct, ctx)
	}
}

func buildClass(class *ast.ClassDecl, ct *types.ClassType, ctx *PassContext) {
	resolveParent(class, ct, ctx)

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.AttrDecl:
			buildAttr(f, ct, ctx)
		case *ast.MethodDecl:
			buildMethod(f, ct, ctx)
		}
	}
}

func resolveParent(class *ast.ClassDecl, ct *types.ClassType, ctx *PassContext) {
	parentName := class.Parent
	if parentName == "" {
		ct.Parent = ctx.ObjectType
		return
	}

	parent, ok := ctx.Registry.Get(parentName)
	if !ok {
		ctx.Diagnostics.Generic(class.Pos(), "Undefined parent class \""+parentName+"\".")
		ct.Parent = ctx.ObjectType
		return
	}
	if parent.Sealed {
		ctx.Diagnostics.CannotInherit(class.Pos(), parentName)
		ct.Parent = ctx.ObjectType
		return
	}
	ct.Parent = parent
}

func buildAttr(node *ast.AttrDecl, ct *types.ClassType, ctx *PassContext) {
	if node.Name == "self" {
		ctx.Diagnostics.SelfAttrInvalid(node.Pos())
		return
	}

	attrType := resolveTypeName(node.Type, ct, ctx, node, node.Pos())
	info := &types.AttrInfo{Name: node.Name, Type: attrType, Init: node.Init, DeclClass: ct, Pos: node.Pos()}
	if !ct.DefineAttr(info) {
		ctx.Diagnostics.Generic(node.Pos(),
			"Attribute \""+node.Name+"\" is already defined in \""+ct.Name+"\".")
	}
}

func buildMethod(node *ast.MethodDecl, ct *types.ClassType, ctx *PassContext) {
	paramNames := []string{"self"}
	paramTypes := []types.Type{ct}
	seen := map[string]bool{}

	for i := range node.Params {
		p := &node.Params[i]
		if p.Name == "self" {
			ctx.Diagnostics.SelfAttrInvalid(node.Pos())
			continue
		}
		if seen[p.Name] {
			ctx.Diagnostics.LocalAlreadyDefined(node.Pos(), p.Name, node.Name)
			continue
		}
		seen[p.Name] = true
		paramNames = append(paramNames, p.Name)
		paramTypes = append(paramTypes, resolveTypeName(p.Type, ct, ctx, p, node.Pos()))
	}

	returnType := resolveTypeName(node.ReturnType, ct, ctx, node, node.Pos())
	info := &types.MethodInfo{
		Name: node.Name, ParamNames: paramNames, ParamTypes: paramTypes,
		ReturnType: returnType, Body: node.Body, DeclClass: ct, Pos: node.Pos(),
	}
	if !ct.DefineMethod(info) {
		ctx.Diagnostics.Generic(node.Pos(),
			"Method \""+node.Name+"\" is already defined in \""+ct.Name+"\".")
	}
}

// resolveTypeName turns a type annotation string into a types.Type:
// SELF_TYPE becomes a SelfType bound to the occurrence class, AUTO_TYPE
// becomes a fresh inference variable bound to site, and any other name
// is looked up in the registry (ErrorType on failure).
func resolveTypeName(name string, occurrence *types.ClassType, ctx *PassContext, site any, pos ast.Position) types.Type {
	switch name {
	case ast.SELFTYPE:
		return &types.SelfType{Class: occurrence}
	case ast.AUTOTYPE, "":
		return ctx.AutoVarFor(site)
	default:
		ct, ok := ctx.Registry.Get(name)
		if !ok {
			ctx.Diagnostics.Generic(pos, "Undefined type \""+name+"\".")
			return types.ErrorType
		}
		return ct
	}
}
