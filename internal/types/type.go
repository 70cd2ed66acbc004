// Package types implements the COOL type model: class descriptors,
// the inheritance lattice, SELF_TYPE, ErrorType, and AUTO_TYPE
// inference variables, plus the Context registry that owns them
//.
package types

// Type is implemented by every value that can appear in a typing
// position: a concrete class, SELF_TYPE[C], ErrorType, or (only
// during internal/sema.InferPass) an unresolved AutoVar.
type Type interface {
	// TypeName returns the type's display name, as used in
	// diagnostics. For an AutoVar this resolves through Find().
	TypeName() string
}

// ClassType represents a COOL class: Object, IO, Int, Bool, String, or
// a user-declared class. Built with internal/sema.CollectPass and
// internal/sema.BuildPass.
type ClassType struct {
	Name    string
	Parent  *ClassType // nil only for Object
	Sealed  bool        // Int, Bool, String: may not be inherited from
	Attrs   []*AttrInfo
	Methods []*MethodInfo

	attrIndex   map[string]int
	methodIndex map[string]int
}

func NewClassType(name string) *ClassType {
	return &ClassType{
		Name:        name,
		attrIndex:   make(map[string]int),
		methodIndex: make(map[string]int),
	}
}

func (c *ClassType) TypeName() string { return c.Name }

// DefineAttr registers an attribute declared directly on c. Returns
// false if an attribute with that name is already defined on c.
func (c *ClassType) DefineAttr(a *AttrInfo) bool {
	if _, exists := c.attrIndex[a.Name]; exists {
		return false
	}
	c.attrIndex[a.Name] = len(c.Attrs)
	c.Attrs = append(c.Attrs, a)
	return true
}

// OwnAttr returns the attribute declared directly on c (not inherited).
func (c *ClassType) OwnAttr(name string) (*AttrInfo, bool) {
	i, ok := c.attrIndex[name]
	if !ok {
		return nil, false
	}
	return c.Attrs[i], true
}

// DefineMethod registers a method declared directly on c. Returns
// false if a method with that name is already defined on c.
func (c *ClassType) DefineMethod(m *MethodInfo) bool {
	if _, exists := c.methodIndex[m.Name]; exists {
		return false
	}
	c.methodIndex[m.Name] = len(c.Methods)
	c.Methods = append(c.Methods, m)
	return true
}

// OwnMethod returns the method declared directly on c (not inherited).
func (c *ClassType) OwnMethod(name string) (*MethodInfo, bool) {
	i, ok := c.methodIndex[name]
	if !ok {
		return nil, false
	}
	return c.Methods[i], true
}

// FindMethod looks up name on c or the nearest ancestor that declares
// it (the method table used by both static dispatch resolution and
// dynamic dispatch at runtime).
func (c *ClassType) FindMethod(name string) (*MethodInfo, bool) {
	for t := c; t != nil; t = t.Parent {
		if m, ok := t.OwnMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

// FindAttr looks up name on c or the nearest ancestor that declares it.
func (c *ClassType) FindAttr(name string) (*AttrInfo, bool) {
	for t := c; t != nil; t = t.Parent {
		if a, ok := t.OwnAttr(name); ok {
			return a, true
		}
	}
	return nil, false
}

// AllAttrsRootFirst returns every attribute visible on c, ordered from
// the root ancestor (Object) down to c itself in declaration order
// within each class. Used to initialize a fresh instance.
func (c *ClassType) AllAttrsRootFirst() []*AttrInfo {
	var chain []*ClassType
	for t := c; t != nil; t = t.Parent {
		chain = append(chain, t)
	}
	var attrs []*AttrInfo
	for i := len(chain) - 1; i >= 0; i-- {
		attrs = append(attrs, chain[i].Attrs...)
	}
	return attrs
}

// IsDescendantOf reports whether c is b or inherits from b (directly
// or indirectly).
func (c *ClassType) IsDescendantOf(b *ClassType) bool {
	for t := c; t != nil; t = t.Parent {
		if t == b {
			return true
		}
	}
	return false
}

// Depth returns the distance from c to the Object root (0 for Object).
func (c *ClassType) Depth() int {
	depth := 0
	for t := c.Parent; t != nil; t = t.Parent {
		depth++
	}
	return depth
}

// SelfType is SELF_TYPE as it occurs inside the body of Class: it
// conforms to SELF_TYPE of the same class and to any ancestor of
// Class, and only a value statically known to be exactly Class
// conforms to it in return.
type SelfType struct {
	Class *ClassType
}

func (s *SelfType) TypeName() string { return "SELF_TYPE" }

// errorType is the ErrorType sentinel: conforms to and is conformed to
// by everything, suppressing diagnostic cascades.
type errorType struct{}

func (errorType) TypeName() string { return "ErrorType" }

// ErrorType is the single shared ErrorType instance.
var ErrorType Type = errorType{}

// IsError reports whether t is the ErrorType sentinel.
func IsError(t Type) bool {
	_, ok := t.(errorType)
	return ok
}

// AsClass returns the underlying *ClassType for t, resolving SELF_TYPE
// to its occurrence class and AutoVar to its resolved lower bound.
// Returns nil for ErrorType or an unresolved/empty AutoVar.
func AsClass(t Type) *ClassType {
	switch v := t.(type) {
	case *ClassType:
		return v
	case *SelfType:
		return v.Class
	case *AutoVar:
		return AsClass(v.Find().Resolved())
	default:
		return nil
	}
}
