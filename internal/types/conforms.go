package types

// classify reduces any Type to (class, isSelf, isError) for use by
// Conforms and Join.
func classify(t Type) (class *ClassType, isSelf, isError bool) {
	switch v := t.(type) {
	case errorType:
		return nil, false, true
	case *SelfType:
		return v.Class, true, false
	case *ClassType:
		return v, false, false
	case *AutoVar:
		return classify(v.Find().Resolved())
	default:
		return nil, false, false
	}
}

// Conforms implements the reflexive-transitive conformance relation:
// ErrorType conforms to and from everything; SELF_TYPE[C] conforms to
// SELF_TYPE[C] and to any ancestor of C; a concrete type conforms to
// SELF_TYPE[C] only when it equals C.
func Conforms(a, b Type) bool {
	ca, aSelf, aErr := classify(a)
	cb, bSelf, bErr := classify(b)
	if aErr || bErr {
		return true
	}
	if ca == nil || cb == nil {
		return false
	}
	if bSelf {
		if aSelf {
			return ca == cb
		}
		return ca == cb
	}
	return ca.IsDescendantOf(cb)
}

// Join computes the least common ancestor of a and b in the
// inheritance tree. A join with ErrorType returns the
// other operand. Joining two identical SELF_TYPE[C] values yields
// SELF_TYPE[C]; any other combination yields the join of the
// underlying classes.
func Join(a, b Type) Type {
	ca, aSelf, aErr := classify(a)
	cb, bSelf, bErr := classify(b)
	if aErr {
		return b
	}
	if bErr {
		return a
	}
	if ca == nil {
		return b
	}
	if cb == nil {
		return a
	}
	if aSelf && bSelf && ca == cb {
		return &SelfType{Class: ca}
	}
	return joinClasses(ca, cb)
}

func joinClasses(a, b *ClassType) *ClassType {
	if a == b {
		return a
	}
	ancestors := make(map[*ClassType]bool)
	for t := a; t != nil; t = t.Parent {
		ancestors[t] = true
	}
	for t := b; t != nil; t = t.Parent {
		if ancestors[t] {
			return t
		}
	}
	// Unreachable once every class chains up to Object, but fall back
	// to a if the hierarchy is malformed (e.g. mid-cycle-repair).
	return a
}

// MultiJoin folds Join over types, in order. The join of an empty set
// is Object (the caller supplies objectType since Type has no notion
// of a default).
func MultiJoin(objectType Type, types []Type) Type {
	if len(types) == 0 {
		return objectType
	}
	result := types[0]
	for _, t := range types[1:] {
		result = Join(result, t)
	}
	return result
}
