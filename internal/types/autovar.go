package types

// AutoVar is a union-find node tracking one AUTO_TYPE occurrence
// during internal/sema.InferPass. Variables are
// partitioned into equivalence classes; each class root carries a
// lower-bound type, the join of every type the inferer has witnessed
// at any site belonging to the class. Path compression and
// union-by-rank keep Find cheap even for long merge chains.
type AutoVar struct {
	parent *AutoVar // self if this node is a root
	rank   int
	bound  Type // meaningful only at the root; nil means unconstrained
}

// NewAutoVar creates a fresh, unconstrained inference variable.
func NewAutoVar() *AutoVar {
	v := &AutoVar{}
	v.parent = v
	return v
}

// Find returns the representative root of v's equivalence class,
// compressing the path as it walks.
func (v *AutoVar) Find() *AutoVar {
	if v.parent != v {
		v.parent = v.parent.Find()
	}
	return v.parent
}

// Resolved returns the root's current lower-bound type, or ErrorType
// if nothing has constrained it yet (the caller substitutes Object
// once inference terminates).
func (v *AutoVar) Resolved() Type {
	root := v.Find()
	if root.bound == nil {
		return ErrorType
	}
	return root.bound
}

func (v *AutoVar) TypeName() string { return v.Resolved().TypeName() }

// Pin raises v's lower bound to join(current, t). Returns true if the
// bound actually changed (used to detect fixed-point convergence).
func (v *AutoVar) Pin(t Type) bool {
	root := v.Find()
	var newBound Type
	if root.bound == nil {
		newBound = t
	} else {
		newBound = Join(root.bound, t)
	}
	if root.bound != nil && sameType(root.bound, newBound) {
		return false
	}
	root.bound = newBound
	return true
}

// Union merges a's and b's equivalence classes by rank, combining
// their lower bounds via Join. Returns true if anything changed.
func Union(a, b *AutoVar) bool {
	ra, rb := a.Find(), b.Find()
	if ra == rb {
		return false
	}

	changed := false
	var merged Type
	switch {
	case ra.bound == nil && rb.bound == nil:
		merged = nil
	case ra.bound == nil:
		merged = rb.bound
		changed = true
	case rb.bound == nil:
		merged = ra.bound
		changed = true
	default:
		merged = Join(ra.bound, rb.bound)
		changed = !sameType(ra.bound, merged) || !sameType(rb.bound, merged)
	}

	if ra.rank < rb.rank {
		ra, rb = rb, ra
	}
	rb.parent = ra
	if ra.rank == rb.rank {
		ra.rank++
	}
	ra.bound = merged
	return changed
}
