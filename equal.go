package bottomup

// Equaler may be implemented by types which want to decide equality with other
// values themselves. Equal will respect it for either of its arguments.
type Equaler interface {
	Equals(other interface{}) bool
}

// Equal is a structural equality test for rules, parse trees, states and primitive
// values. It is intended for tests, comparing trees produced by the parser with
// expected trees. Sequences are compared element-wise and order-sensitive.
//
// Node values are equal if their symbols are equal and their children are
// pairwise equal. A nil children slice and an empty one are considered equal, as both
// denote a leaf. Untyped nil equals nil pointers to Node and Rule.
func Equal(a, b interface{}) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equals(b)
	}
	if e, ok := b.(Equaler); ok {
		return e.Equals(a)
	}
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Node:
		switch y := b.(type) {
		case *Node:
			return equalNodes(x, y)
		case Node:
			return equalNodes(x, &y)
		}
		return false
	case Node:
		switch y := b.(type) {
		case *Node:
			return equalNodes(&x, y)
		case Node:
			return equalNodes(&x, &y)
		}
		return false
	case Rule:
		y, ok := b.(Rule)
		return ok && equalRules(x, y)
	case *Rule:
		y, ok := b.(*Rule)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return equalRules(*x, *y)
	case []Rule:
		y, ok := b.([]Rule)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalRules(x[i], y[i]) {
				return false
			}
		}
		return true
	case State:
		y, ok := asNodeSlice(b)
		return ok && equalNodeSlices(x, y)
	case []*Node:
		y, ok := asNodeSlice(b)
		return ok && equalNodeSlices(x, y)
	case []string:
		y, ok := b.([]string)
		return ok && equalStrings(x, y)
	case []interface{}:
		y, ok := b.([]interface{})
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return equalPrimitives(a, b)
}

func isNil(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *Node:
		return x == nil
	case *Rule:
		return x == nil
	}
	return false
}

func equalNodes(x, y *Node) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	if x.Symbol != y.Symbol || len(x.Children) != len(y.Children) {
		return false
	}
	for i := range x.Children {
		if !equalNodes(x.Children[i], y.Children[i]) {
			return false
		}
	}
	return true
}

func equalRules(x, y Rule) bool {
	return x.LHS == y.LHS && equalStrings(x.RHS, y.RHS)
}

func equalStrings(x, y []string) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// asNodeSlice accepts both State and []*Node, which are interchangeable for equality.
func asNodeSlice(v interface{}) ([]*Node, bool) {
	switch s := v.(type) {
	case State:
		return s, true
	case []*Node:
		return s, true
	}
	return nil, false
}

func equalNodeSlices(x, y []*Node) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !equalNodes(x[i], y[i]) {
			return false
		}
	}
	return true
}

// equalPrimitives compares values of comparable dynamic type. Values of
// incomparable types (maps, funcs, unknown slices) are never equal.
func equalPrimitives(a, b interface{}) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			eq = false
		}
	}()
	return a == b
}
