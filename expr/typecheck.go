// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

import "fmt"

// TypeError is an incompatible operator or function
// usage found by InferTypes.
type TypeError struct {
	// At is the id of the operator or call whose
	// operands are incompatible.
	At  ID
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

// RefError is an attribute reference that does not
// resolve against the catalog. It is reported by
// InferTypes alongside type errors, never thrown.
type RefError struct {
	At ID
	// Attr is the unresolved catalog id.
	Attr string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("attribute %q is not in the catalog", e.Attr)
}

// TypeInfo is the result of InferTypes.
type TypeInfo struct {
	// Types holds the inferred type of every node.
	Types map[ID]TypeSet
	// Result is the type of the root expression
	// sequence as a whole.
	Result TypeSet
	// Errs lists every type and reference error,
	// from all nesting levels, in one flat list.
	Errs []error
}

// InferTypes infers a type for every node in the store,
// bottom-up, and flags type-incompatible operator and
// function usage. It does not evaluate anything.
//
// Inference is best-effort: a node involved in a type
// error still receives a result type, and inference over
// a structurally invalid store proceeds as far as the
// shape allows (run Validate for the structural errors).
// Like Validate, InferTypes is read-only and total.
//
// Operator sequences are folded strictly left to right;
// there is no arithmetic precedence. This matches the
// flat grammar the parser accepts.
func InferTypes(s *Store, cat Catalog) *TypeInfo {
	c := &checker{
		s:     s,
		cat:   cat,
		types: make(map[ID]TypeSet, s.Len()),
		busy:  make(map[ID]bool),
	}
	result := c.seq(s.Roots())
	// nodes detached from the root expression
	// (mid-edit orphans) still get types
	for _, n := range s.Nodes() {
		c.typeof(n)
	}
	return &TypeInfo{Types: c.types, Result: result, Errs: c.errs}
}

type checker struct {
	s     *Store
	cat   Catalog
	types map[ID]TypeSet
	busy  map[ID]bool
	errs  []error
}

func (c *checker) errf(at ID, f string, args ...interface{}) {
	c.errs = append(c.errs, &TypeError{At: at, Msg: fmt.Sprintf(f, args...)})
}

// typeof returns the memoized type of n, computing it
// on first use.
func (c *checker) typeof(n Node) TypeSet {
	if t, ok := c.types[n.ID()]; ok {
		return t
	}
	if c.busy[n.ID()] {
		// parent cycle; Validate reports it
		return AnyType
	}
	c.busy[n.ID()] = true
	t := c.compute(n)
	delete(c.busy, n.ID())
	c.types[n.ID()] = t
	return t
}

func (c *checker) compute(n Node) TypeSet {
	switch n := n.(type) {
	case *Value:
		return NumberType
	case *Attribute:
		if c.cat != nil {
			if info, ok := c.cat.Lookup(n.Attr); ok {
				return DeclaredType(info.Type)
			}
		}
		c.errs = append(c.errs, &RefError{At: n.ID(), Attr: n.Attr})
		return AnyType
	case *Operator:
		return n.Op.result()
	case *Group:
		return c.seq(c.s.ChildrenOf(n.ID()))
	case *Call:
		return c.call(n)
	}
	return AnyType
}

// seq folds a sibling sequence left to right through
// the operator typing rule and returns the type of the
// sequence as a whole. Structurally odd sequences (two
// adjacent operands, a trailing operator) still produce
// a best-effort type.
func (c *checker) seq(nodes []Node) TypeSet {
	cur := AnyType
	have := false
	for i := 0; i < len(nodes); i++ {
		op, ok := nodes[i].(*Operator)
		if !ok {
			cur = c.typeof(nodes[i])
			have = true
			continue
		}
		left := AnyType
		if have {
			left = cur
		}
		right := AnyType
		if i+1 < len(nodes) && operand(nodes[i+1]) {
			right = c.typeof(nodes[i+1])
			i++
		}
		cur = c.apply(op, left, right)
		have = true
	}
	if !have {
		return AnyType
	}
	return cur
}

// apply checks one infix application of op and returns
// its result type.
func (c *checker) apply(op *Operator, left, right TypeSet) TypeSet {
	o := op.Op
	switch {
	case o.Arithmetic():
		if !left.AnyOf(NumberType) {
			c.errf(op.ID(), "operator %s requires NUMBER operands, but the left-hand side is %s", o, left)
		}
		if !right.AnyOf(NumberType) {
			c.errf(op.ID(), "operator %s requires NUMBER operands, but the right-hand side is %s", o, right)
		}
	case o.Equality():
		if !left.AnyOf(right) {
			c.errf(op.ID(), "operator %s compares %s against %s", o, left, right)
		}
	case o.Relational():
		ok := true
		if !left.AnyOf(NumberType | StringType) {
			c.errf(op.ID(), "operator %s requires NUMBER or STRING operands, but the left-hand side is %s", o, left)
			ok = false
		}
		if !right.AnyOf(NumberType | StringType) {
			c.errf(op.ID(), "operator %s requires NUMBER or STRING operands, but the right-hand side is %s", o, right)
			ok = false
		}
		if ok && !left.AnyOf(right) {
			c.errf(op.ID(), "operator %s compares %s against %s", o, left, right)
		}
	case o == OpAnd, o == OpOr:
		if !left.AnyOf(BoolType) {
			c.errf(op.ID(), "operator %s requires BOOLEAN operands, but the left-hand side is %s", o, left)
		}
		if !right.AnyOf(BoolType) {
			c.errf(op.ID(), "operator %s requires BOOLEAN operands, but the right-hand side is %s", o, right)
		}
	case o == OpNot:
		// NOT only consumes the operand to its right
		if !right.AnyOf(BoolType) {
			c.errf(op.ID(), "operator %s requires a BOOLEAN operand, but found %s", o, right)
		}
	}
	return o.result()
}

func (c *checker) call(n *Call) TypeSet {
	groups := argGroups(c.s, n)
	args := make([]TypeSet, len(groups))
	for i := range groups {
		args[i] = c.typeof(groups[i])
	}
	if n.Fn == If {
		return c.ifcall(n, groups, args)
	}
	fi := n.Fn.info()
	if fi == nil {
		return AnyType
	}
	if fi.args != AnyType {
		for i := range groups {
			if !args[i].AnyOf(fi.args) {
				c.errf(n.ID(), "%s argument %d must be %s, but found %s",
					n.Fn, groups[i].Arg+1, fi.args, args[i])
			}
		}
	}
	return fi.ret
}

// ifcall types IF(condition, then, else): the condition
// must be boolean and the branches must share a type;
// the shared branch type is the result.
func (c *checker) ifcall(n *Call, groups []*Group, args []TypeSet) TypeSet {
	cond, then, els := AnyType, AnyType, AnyType
	for i := range groups {
		switch groups[i].Arg {
		case 0:
			cond = args[i]
		case 1:
			then = args[i]
		case 2:
			els = args[i]
		}
	}
	if !cond.AnyOf(BoolType) {
		c.errf(n.ID(), "IF condition must be BOOLEAN, but found %s", cond)
	}
	if !then.AnyOf(els) {
		c.errf(n.ID(), "IF branches have mismatched types %s and %s", then, els)
		return AnyType
	}
	return then & els
}
