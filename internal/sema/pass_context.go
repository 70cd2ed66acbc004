package sema

import "github.com/cwbudde/coolc/internal/types"

// PassContext is the shared state threaded through every pass: the
// type Context registry, the accumulated Diagnostics, the current
// class/method bookmarks carried during traversal, and the inference
// pass's AUTO_TYPE -> AutoVar bindings.
type PassContext struct {
	Registry    *types.Context
	Diagnostics Diagnostics

	CurrentClass  *types.ClassType
	CurrentMethod *types.MethodInfo

	// AutoVars maps each distinct AUTO_TYPE occurrence (identified by
	// the AST node it annotates: *ast.AttrDecl, *ast.Param,
	// *ast.MethodDecl, *ast.LetBinding or *ast.CaseBranch) to its
	// inference variable. Populated through AutoVarFor by BuildPass,
	// InferPass and CheckPass, and read by the Executor for let
	// bindings; keyed by the node's pointer identity so repeated visits
	// of the same site reuse one variable.
	AutoVars map[any]*types.AutoVar

	ObjectType *types.ClassType
	IntType    *types.ClassType
	BoolType   *types.ClassType
	StringType *types.ClassType
	IOType     *types.ClassType

	MaxInferenceIters int
}

// NewPassContext creates an empty PassContext. CollectPass is
// responsible for installing built-ins into Registry and the
// ObjectType/IntType/... bookmarks.
func NewPassContext() *PassContext {
	return &PassContext{
		Registry:          types.NewContext(),
		AutoVars:          make(map[any]*types.AutoVar),
		MaxInferenceIters: 100,
	}
}

// AutoVarFor returns the inference variable bound to site, creating
// one on first use.
func (ctx *PassContext) AutoVarFor(site any) *types.AutoVar {
	if v, ok := ctx.AutoVars[site]; ok {
		return v
	}
	v := types.NewAutoVar()
	ctx.AutoVars[site] = v
	return v
}

// HasErrors reports whether any diagnostic has been recorded so far.
func (ctx *PassContext) HasErrors() bool {
	return ctx.Diagnostics.Len() > 0
}
