// Package astio decodes an external, already-parsed AST description
// into internal/ast.Program, so coolc can run its semantic pipeline
// and interpreter over ASTs produced by a separate front end. Both a
// JSON and a YAML encoding are accepted.
package astio

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/coolc/internal/ast"
)

// wireProgram, wireClass, ... mirror internal/ast's node shapes but
// use plain strings/maps so both encoding/json and gopkg.in/yaml.v3
// can decode them without custom UnmarshalJSON/UnmarshalYAML methods
// on the AST types themselves.
type wireProgram struct {
	Classes []wireClass `json:"classes" yaml:"classes"`
}

type wireClass struct {
	Name     string        `json:"name" yaml:"name"`
	Parent   string        `json:"parent" yaml:"parent"`
	Line     int           `json:"line" yaml:"line"`
	Column   int           `json:"column" yaml:"column"`
	Attrs    []wireAttr    `json:"attributes" yaml:"attributes"`
	Methods  []wireMethod  `json:"methods" yaml:"methods"`
}

type wireAttr struct {
	Name   string    `json:"name" yaml:"name"`
	Type   string    `json:"type" yaml:"type"`
	Init   *wireExpr `json:"init" yaml:"init"`
	Line   int       `json:"line" yaml:"line"`
	Column int       `json:"column" yaml:"column"`
}

type wireParam struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type wireMethod struct {
	Name       string      `json:"name" yaml:"name"`
	Params     []wireParam `json:"params" yaml:"params"`
	ReturnType string      `json:"return_type" yaml:"return_type"`
	Body       *wireExpr   `json:"body" yaml:"body"`
	Line       int         `json:"line" yaml:"line"`
	Column     int         `json:"column" yaml:"column"`
}

// wireExpr is a tagged union over every expression kind, decoded with
// "kind" selecting which other fields apply. Using one flat struct
// keeps the format simple to hand-author in test fixtures, at the
// cost of unused fields per kind — an acceptable trade for a format
// nothing but this compiler's own test suite writes.
type wireExpr struct {
	Kind   string `json:"kind" yaml:"kind"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`

	IntValue  int64  `json:"int_value,omitempty" yaml:"int_value,omitempty"`
	StrValue  string `json:"str_value,omitempty" yaml:"str_value,omitempty"`
	BoolValue bool   `json:"bool_value,omitempty" yaml:"bool_value,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`

	Op          string      `json:"op,omitempty" yaml:"op,omitempty"`
	Left        *wireExpr   `json:"left,omitempty" yaml:"left,omitempty"`
	Right       *wireExpr   `json:"right,omitempty" yaml:"right,omitempty"`
	Operand     *wireExpr   `json:"operand,omitempty" yaml:"operand,omitempty"`
	Value       *wireExpr   `json:"value,omitempty" yaml:"value,omitempty"`
	Cond        *wireExpr   `json:"cond,omitempty" yaml:"cond,omitempty"`
	Then        *wireExpr   `json:"then,omitempty" yaml:"then,omitempty"`
	Else        *wireExpr   `json:"else,omitempty" yaml:"else,omitempty"`
	Body        *wireExpr   `json:"body,omitempty" yaml:"body,omitempty"`
	Exprs       []*wireExpr `json:"exprs,omitempty" yaml:"exprs,omitempty"`
	Bindings    []wireLet   `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Scrutinee   *wireExpr   `json:"scrutinee,omitempty" yaml:"scrutinee,omitempty"`
	Branches    []wireCase  `json:"branches,omitempty" yaml:"branches,omitempty"`
	Receiver    *wireExpr   `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	StaticClass string      `json:"static_class,omitempty" yaml:"static_class,omitempty"`
	Method      string      `json:"method,omitempty" yaml:"method,omitempty"`
	Args        []*wireExpr `json:"args,omitempty" yaml:"args,omitempty"`
}

type wireLet struct {
	Name   string    `json:"name" yaml:"name"`
	Type   string    `json:"type" yaml:"type"`
	Init   *wireExpr `json:"init" yaml:"init"`
	Line   int       `json:"line" yaml:"line"`
	Column int       `json:"column" yaml:"column"`
}

type wireCase struct {
	Name   string    `json:"name" yaml:"name"`
	Type   string    `json:"type" yaml:"type"`
	Body   *wireExpr `json:"body" yaml:"body"`
	Line   int       `json:"line" yaml:"line"`
	Column int       `json:"column" yaml:"column"`
}

// DecodeJSON parses a JSON-encoded program description.
func DecodeJSON(data []byte) (*ast.Program, error) {
	var wp wireProgram
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("astio: decoding JSON: %w", err)
	}
	return wp.toAST(), nil
}

// DecodeYAML parses a YAML-encoded program description.
func DecodeYAML(data []byte) (*ast.Program, error) {
	var wp wireProgram
	if err := yaml.Unmarshal(data, &wp); err != nil {
		return nil, fmt.Errorf("astio: decoding YAML: %w", err)
	}
	return wp.toAST(), nil
}

func pos(line, column int) ast.Position { return ast.Position{Line: line, Column: column} }

func (wp wireProgram) toAST() *ast.Program {
	prog := &ast.Program{}
	for _, wc := range wp.Classes {
		class := &ast.ClassDecl{
			Name:     wc.Name,
			Parent:   wc.Parent,
			Position: pos(wc.Line, wc.Column),
		}
		for _, wa := range wc.Attrs {
			class.Features = append(class.Features, &ast.AttrDecl{
				Name: wa.Name, Type: wa.Type, Init: wa.Init.toAST(),
				Position: pos(wa.Line, wa.Column),
			})
		}
		for _, wm := range wc.Methods {
			params := make([]ast.Param, len(wm.Params))
			for i, wp := range wm.Params {
				params[i] = ast.Param{Name: wp.Name, Type: wp.Type}
			}
			class.Features = append(class.Features, &ast.MethodDecl{
				Name: wm.Name, Params: params, ReturnType: wm.ReturnType,
				Body: wm.Body.toAST(), Position: pos(wm.Line, wm.Column),
			})
		}
		prog.Classes = append(prog.Classes, class)
	}
	return prog
}

func (we *wireExpr) toAST() ast.Expr {
	if we == nil {
		return nil
	}
	p := pos(we.Line, we.Column)
	switch we.Kind {
	case "int":
		return &ast.IntegerLit{Value: we.IntValue, Position: p}
	case "string":
		return &ast.StringLit{Value: we.StrValue, Position: p}
	case "bool":
		return &ast.BooleanLit{Value: we.BoolValue, Position: p}
	case "var":
		return &ast.Variable{Name: we.Name, Position: p}
	case "new":
		return &ast.Instantiate{Type: we.Type, Position: p}
	case "assign":
		return &ast.Assign{Name: we.Name, Value: we.Value.toAST(), Position: p}
	case "block":
		exprs := make([]ast.Expr, len(we.Exprs))
		for i, sub := range we.Exprs {
			exprs[i] = sub.toAST()
		}
		return &ast.Block{Exprs: exprs, Position: p}
	case "let":
		bindings := make([]ast.LetBinding, len(we.Bindings))
		for i, b := range we.Bindings {
			bindings[i] = ast.LetBinding{
				Name: b.Name, Type: b.Type, Init: b.Init.toAST(),
				Position: pos(b.Line, b.Column),
			}
		}
		return &ast.Let{Bindings: bindings, Body: we.Body.toAST(), Position: p}
	case "if":
		return &ast.Conditional{Cond: we.Cond.toAST(), Then: we.Then.toAST(), Else: we.Else.toAST(), Position: p}
	case "while":
		return &ast.While{Cond: we.Cond.toAST(), Body: we.Body.toAST(), Position: p}
	case "case":
		branches := make([]ast.CaseBranch, len(we.Branches))
		for i, b := range we.Branches {
			branches[i] = ast.CaseBranch{
				Name: b.Name, Type: b.Type, Body: b.Body.toAST(),
				Position: pos(b.Line, b.Column),
			}
		}
		return &ast.SwitchCase{Scrutinee: we.Scrutinee.toAST(), Branches: branches, Position: p}
	case "call":
		args := make([]ast.Expr, len(we.Args))
		for i, a := range we.Args {
			args[i] = a.toAST()
		}
		return &ast.MethodCall{
			Receiver: we.Receiver.toAST(), StaticClass: we.StaticClass,
			Method: we.Method, Args: args, Position: p,
		}
	case "not":
		return &ast.UnaryExpr{Op: ast.OpNegation, Operand: we.Operand.toAST(), Position: p}
	case "neg":
		return &ast.UnaryExpr{Op: ast.OpComplement, Operand: we.Operand.toAST(), Position: p}
	case "isvoid":
		return &ast.UnaryExpr{Op: ast.OpIsVoid, Operand: we.Operand.toAST(), Position: p}
	case "plus", "minus", "times", "divide", "le", "lt", "eq":
		return &ast.BinaryExpr{Op: binOpOf(we.Kind), Left: we.Left.toAST(), Right: we.Right.toAST(), Position: p}
	default:
		return nil
	}
}

func binOpOf(kind string) ast.BinaryOp {
	switch kind {
	case "plus":
		return ast.OpPlus
	case "minus":
		return ast.OpMinus
	case "times":
		return ast.OpStar
	case "divide":
		return ast.OpDiv
	case "le":
		return ast.OpLessEqual
	case "lt":
		return ast.OpLessThan
	default:
		return ast.OpEqual
	}
}
