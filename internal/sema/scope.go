// Package sema implements the COOL semantic pipeline: TypeCollector,
// TypeBuilder, TopologicalOrdering, OverrideChecker, InferenceChecker
// and TypeChecker, run in that order by RunPipeline.
package sema

import "github.com/cwbudde/coolc/internal/types"

// VarKind classifies how a name entered scope.
type VarKind int

const (
	KindAttribute VarKind = iota
	KindParameter
	KindLet
	KindCase
)

// VariableInfo is what a Scope maps an identifier to: its static type
// and the reason it's in scope.
type VariableInfo struct {
	Name string
	Type types.Type
	Kind VarKind
}

// Scope is a stack-linked lexical environment. A fresh Scope is pushed
// per class, per method, per let, and per case branch.
type Scope struct {
	vars   map[string]*VariableInfo
	parent *Scope
}

// NewScope creates a root scope (no parent).
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*VariableInfo)}
}

// CreateChild pushes a new scope whose lookups fall back to s.
func (s *Scope) CreateChild() *Scope {
	return &Scope{vars: make(map[string]*VariableInfo), parent: s}
}

// Define adds name to this scope, shadowing any enclosing binding.
func (s *Scope) Define(name string, typ types.Type, kind VarKind) {
	s.vars[name] = &VariableInfo{Name: name, Type: typ, Kind: kind}
}

// IsLocal reports whether name is defined in this scope frame only.
func (s *Scope) IsLocal(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Find walks outward through parents and returns the nearest binding
// for name, or (nil, false) if none exists.
func (s *Scope) Find(name string) (*VariableInfo, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
