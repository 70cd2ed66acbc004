package interp

import (
	"bufio"
	"io"
	"strconv"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// Executor runs a program that has already passed internal/sema's
// pipeline: it trusts every static invariant the Checker enforced
// (arities match, conformance holds, names resolve) and only has to
// handle the conditions that are inherently dynamic:
// dispatch on a void receiver, an unmatched case, a substring out of
// range, division by zero, and explicit abort.
type Executor struct {
	Registry *types.Context

	ObjectType *types.ClassType
	IOType     *types.ClassType
	IntType    *types.ClassType
	BoolType   *types.ClassType
	StringType *types.ClassType

	// AutoVars resolves a let-binding site (the *ast.LetBinding the
	// inference pass keyed it by) to the AutoVar its declared type was
	// inferred as. The same map InferPass built, threaded through
	// unchanged: a let binding's AUTO_TYPE is never rewritten in the
	// AST itself (see internal/sema.InferPass), only resolved behind
	// its AutoVar.
	AutoVars map[any]*types.AutoVar

	Out io.Writer
	In  *bufio.Reader
}

// NewExecutor builds an Executor over an already-resolved registry,
// writing IO.out_* to out and reading IO.in_* from in. autoVars is
// the PassContext's AutoVars map, needed to recover the inferred type
// of an AUTO_TYPE let binding that is read before its first
// assignment (attributes don't need this: their AttrInfo.Type already
// holds the AutoVar directly).
func NewExecutor(reg *types.Context, object, io_, intT, boolT, stringT *types.ClassType, autoVars map[any]*types.AutoVar, out io.Writer, in io.Reader) *Executor {
	return &Executor{
		Registry: reg, ObjectType: object, IOType: io_, IntType: intT, BoolType: boolT, StringType: stringT,
		AutoVars: autoVars,
		Out:      out, In: bufio.NewReader(in),
	}
}

// Run constructs a fresh Main instance and evaluates Main.main()
//, returning its result or the first
// RuntimeError raised.
func (ex *Executor) Run() (Value, *RuntimeError) {
	mainClass, ok := ex.Registry.Get("Main")
	if !ok {
		return nil, newRuntimeError(AbortCalled, `class "Main" is not defined`)
	}
	mainInst, rerr := ex.newInstance(mainClass)
	if rerr != nil {
		return nil, rerr
	}
	method, ok := mainClass.FindMethod("main")
	if !ok {
		return nil, newRuntimeError(AbortCalled, `method "main" is not defined in class "Main"`)
	}
	return ex.invoke(method, mainInst, nil)
}

// classOf returns the dynamic class of any runtime value.
func (ex *Executor) classOf(v Value) *types.ClassType {
	switch t := v.(type) {
	case *Instance:
		return t.Class
	case *IntValue:
		return ex.IntType
	case *BoolValue:
		return ex.BoolType
	case *StringValue:
		return ex.StringType
	default:
		return ex.ObjectType
	}
}

// newInstance allocates an instance of ct and runs every attribute
// initializer root-ancestor first, in the new instance's own scope
//.
func (ex *Executor) newInstance(ct *types.ClassType) (*Instance, *RuntimeError) {
	inst := NewInstance(ct)
	for _, a := range ct.AllAttrsRootFirst() {
		if a.Init == nil {
			continue
		}
		val, rerr := ex.eval(a.Init, NewEnvironment(), inst)
		if rerr != nil {
			return nil, rerr
		}
		inst.Attrs[a.Name] = val
	}
	return inst, nil
}

// invoke runs a user-defined method's body in a fresh frame binding
// its parameters, or dispatches to the matching native implementation
// when the method has no body.
func (ex *Executor) invoke(method *types.MethodInfo, self Value, args []Value) (Value, *RuntimeError) {
	if method.Body == nil {
		return ex.invokeNative(method, self, args)
	}
	env := NewEnvironment()
	for i, name := range method.ParamNames {
		if i == 0 {
			continue // self, bound separately
		}
		env.Define(name, args[i-1])
	}
	return ex.eval(method.Body, env, self)
}

func (ex *Executor) eval(expr ast.Expr, env *Environment, self Value) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return &IntValue{Value: e.Value}, nil
	case *ast.StringLit:
		return &StringValue{Value: e.Value}, nil
	case *ast.BooleanLit:
		return &BoolValue{Value: e.Value}, nil

	case *ast.Variable:
		if e.Name == "self" {
			return self, nil
		}
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		if inst, ok := self.(*Instance); ok {
			if v, ok := inst.Attrs[e.Name]; ok {
				return v, nil
			}
		}
		return Void, nil

	case *ast.Assign:
		val, rerr := ex.eval(e.Value, env, self)
		if rerr != nil {
			return nil, rerr
		}
		if env.Set(e.Name, val) {
			return val, nil
		}
		if inst, ok := self.(*Instance); ok {
			inst.Attrs[e.Name] = val
		}
		return val, nil

	case *ast.Block:
		var result Value = Void
		for _, sub := range e.Exprs {
			v, rerr := ex.eval(sub, env, self)
			if rerr != nil {
				return nil, rerr
			}
			result = v
		}
		return result, nil

	case *ast.Let:
		child := env
		for i := range e.Bindings {
			b := &e.Bindings[i]
			var val Value
			if b.Init != nil {
				v, rerr := ex.eval(b.Init, child, self)
				if rerr != nil {
					return nil, rerr
				}
				val = v
			} else {
				val = ex.zeroValueForBinding(b)
			}
			child = NewEnclosedEnvironment(child)
			child.Define(b.Name, val)
		}
		return ex.eval(e.Body, child, self)

	case *ast.Conditional:
		cond, rerr := ex.eval(e.Cond, env, self)
		if rerr != nil {
			return nil, rerr
		}
		if cond.(*BoolValue).Value {
			return ex.eval(e.Then, env, self)
		}
		return ex.eval(e.Else, env, self)

	case *ast.While:
		for {
			cond, rerr := ex.eval(e.Cond, env, self)
			if rerr != nil {
				return nil, rerr
			}
			if !cond.(*BoolValue).Value {
				break
			}
			if _, rerr := ex.eval(e.Body, env, self); rerr != nil {
				return nil, rerr
			}
		}
		return Void, nil

	case *ast.SwitchCase:
		return ex.evalCase(e, env, self)

	case *ast.MethodCall:
		return ex.evalCall(e, env, self)

	case *ast.Instantiate:
		var target *types.ClassType
		if e.Type == ast.SELFTYPE {
			target = ex.classOf(self)
		} else {
			target, _ = ex.Registry.Get(e.Type)
		}
		return ex.newInstance(target)

	case *ast.UnaryExpr:
		operand, rerr := ex.eval(e.Operand, env, self)
		if rerr != nil {
			return nil, rerr
		}
		switch e.Op {
		case ast.OpNegation:
			return &BoolValue{Value: !operand.(*BoolValue).Value}, nil
		case ast.OpComplement:
			return &IntValue{Value: -operand.(*IntValue).Value}, nil
		case ast.OpIsVoid:
			return &BoolValue{Value: IsVoid(operand)}, nil
		}
		return Void, nil

	case *ast.BinaryExpr:
		return ex.evalBinary(e, env, self)
	}
	return Void, nil
}

// zeroValueForBinding resolves the zero value of an uninitialized let
// binding. For a declared AUTO_TYPE (or omitted) binding this consults
// the AutoVar InferPass bound to b, the same lookup key
// resolveTypeName used during inference; any other name resolves
// directly against the registry, as a concrete declared type would.
func (ex *Executor) zeroValueForBinding(b *ast.LetBinding) Value {
	if b.Type == ast.AUTOTYPE || b.Type == "" {
		if v, ok := ex.AutoVars[b]; ok {
			return ZeroValue(v)
		}
		return Void
	}
	ct, ok := ex.Registry.Get(b.Type)
	if !ok {
		return Void
	}
	return ZeroValue(ct)
}

func (ex *Executor) evalBinary(e *ast.BinaryExpr, env *Environment, self Value) (Value, *RuntimeError) {
	left, rerr := ex.eval(e.Left, env, self)
	if rerr != nil {
		return nil, rerr
	}
	right, rerr := ex.eval(e.Right, env, self)
	if rerr != nil {
		return nil, rerr
	}

	switch e.Op {
	case ast.OpPlus:
		return &IntValue{Value: left.(*IntValue).Value + right.(*IntValue).Value}, nil
	case ast.OpMinus:
		return &IntValue{Value: left.(*IntValue).Value - right.(*IntValue).Value}, nil
	case ast.OpStar:
		return &IntValue{Value: left.(*IntValue).Value * right.(*IntValue).Value}, nil
	case ast.OpDiv:
		r := right.(*IntValue).Value
		if r == 0 {
			return nil, newRuntimeError(DivisionByZero, "division by zero")
		}
		return &IntValue{Value: left.(*IntValue).Value / r}, nil
	case ast.OpLessEqual:
		return &BoolValue{Value: left.(*IntValue).Value <= right.(*IntValue).Value}, nil
	case ast.OpLessThan:
		return &BoolValue{Value: left.(*IntValue).Value < right.(*IntValue).Value}, nil
	case ast.OpEqual:
		return &BoolValue{Value: equalValues(left, right)}, nil
	}
	return Void, nil
}

// equalValues implements COOL's "=" operator: Int/Bool/String compare
// by value, Void equals only Void, everything else compares by
// reference identity).
func equalValues(a, b Value) bool {
	switch av := a.(type) {
	case *IntValue:
		bv, ok := b.(*IntValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *VoidValue:
		return IsVoid(b)
	default:
		return a == b
	}
}

func (ex *Executor) evalCase(e *ast.SwitchCase, env *Environment, self Value) (Value, *RuntimeError) {
	scrutinee, rerr := ex.eval(e.Scrutinee, env, self)
	if rerr != nil {
		return nil, rerr
	}
	if IsVoid(scrutinee) {
		return nil, newRuntimeError(CaseOnVoid, "case on void")
	}
	dynClass := ex.classOf(scrutinee)

	var best *ast.CaseBranch
	var bestClass *types.ClassType
	for i := range e.Branches {
		b := &e.Branches[i]
		branchClass, ok := ex.Registry.Get(b.Type)
		if !ok || !dynClass.IsDescendantOf(branchClass) {
			continue
		}
		if best == nil || branchClass.Depth() > bestClass.Depth() {
			best, bestClass = b, branchClass
		}
	}
	if best == nil {
		return nil, newRuntimeError(CaseNoMatch, "no matching branch for dynamic type %q", dynClass.Name)
	}
	child := NewEnclosedEnvironment(env)
	child.Define(best.Name, scrutinee)
	return ex.eval(best.Body, child, self)
}

func (ex *Executor) evalCall(e *ast.MethodCall, env *Environment, self Value) (Value, *RuntimeError) {
	receiver, rerr := ex.eval(e.Receiver, env, self)
	if rerr != nil {
		return nil, rerr
	}
	if IsVoid(receiver) {
		return nil, newRuntimeError(DispatchOnVoid, "dispatch on void (method %q)", e.Method)
	}

	var dispatchClass *types.ClassType
	if e.StaticClass != "" {
		dispatchClass, _ = ex.Registry.Get(e.StaticClass)
	} else {
		dispatchClass = ex.classOf(receiver)
	}

	method, ok := dispatchClass.FindMethod(e.Method)
	if !ok {
		return nil, newRuntimeError(AbortCalled, "undefined method %q on %q", e.Method, dispatchClass.Name)
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, rerr := ex.eval(a, env, self)
		if rerr != nil {
			return nil, rerr
		}
		args[i] = v
	}
	return ex.invoke(method, receiver, args)
}

// invokeNative dispatches to the Go implementation of one of the
// built-in methods installed by internal/sema.CollectPass.
func (ex *Executor) invokeNative(method *types.MethodInfo, self Value, args []Value) (Value, *RuntimeError) {
	switch method.DeclClass {
	case ex.ObjectType:
		switch method.Name {
		case "abort":
			return nil, newRuntimeError(AbortCalled, "abort() called")
		case "type_name":
			return &StringValue{Value: ex.classOf(self).Name}, nil
		case "copy":
			return ex.copyValue(self), nil
		}
	case ex.IOType:
		switch method.Name {
		case "out_string":
			io.WriteString(ex.Out, args[0].(*StringValue).Value)
			return self, nil
		case "out_int":
			io.WriteString(ex.Out, strconv.FormatInt(args[0].(*IntValue).Value, 10))
			return self, nil
		case "in_string":
			line, _ := ex.In.ReadString('\n')
			return &StringValue{Value: trimNewline(line)}, nil
		case "in_int":
			line, _ := ex.In.ReadString('\n')
			n, err := strconv.ParseInt(trimNewline(line), 10, 64)
			if err != nil {
				n = 0
			}
			return &IntValue{Value: n}, nil
		}
	case ex.StringType:
		str := self.(*StringValue).Value
		switch method.Name {
		case "length":
			return &IntValue{Value: int64(len([]rune(str)))}, nil
		case "concat":
			return &StringValue{Value: str + args[0].(*StringValue).Value}, nil
		case "substr":
			return ex.substr(str, args[0].(*IntValue).Value, args[1].(*IntValue).Value)
		}
	}
	return Void, nil
}

// substr implements String.substr(i, l): the substring of length l
// starting at index i (0-based). A negative i or l, or a range
// reaching past the end of the string, raises SUBSTR_OUT_OF_RANGE
//: negative indices are always an
// error, never wrapped or clamped).
func (ex *Executor) substr(s string, i, l int64) (Value, *RuntimeError) {
	runes := []rune(s)
	if i < 0 || l < 0 || i+l > int64(len(runes)) {
		return nil, newRuntimeError(SubstrOutOfRange, "substr(%d, %d) out of range for string of length %d", i, l, len(runes))
	}
	return &StringValue{Value: string(runes[i : i+l])}, nil
}

func (ex *Executor) copyValue(v Value) Value {
	inst, ok := v.(*Instance)
	if !ok {
		return v // primitives are immutable; copy is a no-op
	}
	copied := &Instance{Class: inst.Class, Attrs: make(map[string]Value, len(inst.Attrs))}
	for k, val := range inst.Attrs {
		copied.Attrs[k] = val
	}
	return copied
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
