package sema

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// CollectPass is the TypeCollector: it installs the
// built-in classes and their required methods, then registers every
// user class name. Duplicate class names, or collisions with a
// built-in name, are diagnosed and otherwise ignored (the class is
// simply not (re-)registered).
type CollectPass struct{}

func (CollectPass) Name() string { return "TypeCollector" }

func (CollectPass) Run(prog *ast.Program, ctx *PassContext) {
	installBuiltins(ctx)

	for _, class := range prog.Classes {
		if _, ok := ctx.Registry.Get(class.Name); ok {
			ctx.Diagnostics.Generic(class.Pos(),
				"Class \""+class.Name+"\" is already defined.")
			continue
		}
		ctx.Registry.Declare(class.Name)
	}
}

// installBuiltins registers Object, IO, Int, Bool, String with their
// required methods. AUTO_TYPE and SELF_TYPE are not
// Context entries — they are handled structurally by the Type model
// (types.AutoVar, types.SelfType) instead of as named classes.
func installBuiltins(ctx *PassContext) {
	object := types.NewClassType("Object")
	io := types.NewClassType("IO")
	intType := types.NewClassType("Int")
	boolType := types.NewClassType("Bool")
	stringType := types.NewClassType("String")

	io.Parent = object
	intType.Parent = object
	boolType.Parent = object
	stringType.Parent = object

	intType.Sealed = true
	boolType.Sealed = true
	stringType.Sealed = true

	selfOfObject := &types.SelfType{Class: object}
	selfOfIO := &types.SelfType{Class: io}

	object.DefineMethod(&types.MethodInfo{
		Name: "abort", ParamNames: []string{"self"},
		ParamTypes: []types.Type{object}, ReturnType: object, DeclClass: object,
	})
	object.DefineMethod(&types.MethodInfo{
		Name: "type_name", ParamNames: []string{"self"},
		ParamTypes: []types.Type{object}, ReturnType: stringType, DeclClass: object,
	})
	object.DefineMethod(&types.MethodInfo{
		Name: "copy", ParamNames: []string{"self"},
		ParamTypes: []types.Type{object}, ReturnType: selfOfObject, DeclClass: object,
	})

	io.DefineMethod(&types.MethodInfo{
		Name: "out_string", ParamNames: []string{"self", "x"},
		ParamTypes: []types.Type{io, stringType}, ReturnType: selfOfIO, DeclClass: io,
	})
	io.DefineMethod(&types.MethodInfo{
		Name: "out_int", ParamNames: []string{"self", "x"},
		ParamTypes: []types.Type{io, intType}, ReturnType: selfOfIO, DeclClass: io,
	})
	io.DefineMethod(&types.MethodInfo{
		Name: "in_string", ParamNames: []string{"self"},
		ParamTypes: []types.Type{io}, ReturnType: stringType, DeclClass: io,
	})
	io.DefineMethod(&types.MethodInfo{
		Name: "in_int", ParamNames: []string{"self"},
		ParamTypes: []types.Type{io}, ReturnType: intType, DeclClass: io,
	})

	stringType.DefineMethod(&types.MethodInfo{
		Name: "length", ParamNames: []string{"self"},
		ParamTypes: []types.Type{stringType}, ReturnType: intType, DeclClass: stringType,
	})
	stringType.DefineMethod(&types.MethodInfo{
		Name: "concat", ParamNames: []string{"self", "s"},
		ParamTypes: []types.Type{stringType, stringType}, ReturnType: stringType, DeclClass: stringType,
	})
	stringType.DefineMethod(&types.MethodInfo{
		Name: "substr", ParamNames: []string{"self", "i", "l"},
		ParamTypes: []types.Type{stringType, intType, intType}, ReturnType: stringType, DeclClass: stringType,
	})

	ctx.Registry.Register(object)
	ctx.Registry.Register(io)
	ctx.Registry.Register(intType)
	ctx.Registry.Register(boolType)
	ctx.Registry.Register(stringType)

	ctx.ObjectType = object
	ctx.IOType = io
	ctx.IntType = intType
	ctx.BoolType = boolType
	ctx.StringType = stringType
}
