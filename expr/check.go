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

// StructError is a structural defect found by Validate:
// broken connectivity, a missing operand, a bad argument
// count, or a violated store invariant.
type StructError struct {
	// At is the id of the offending node, when the
	// defect is attributable to a single node.
	At  ID
	Msg string
}

func (e *StructError) Error() string { return e.Msg }

func errstructf(at ID, f string, args ...interface{}) *StructError {
	return &StructError{At: at, Msg: fmt.Sprintf(f, args...)}
}

// Connection is an ordered pair of adjacent root nodes
// that lack a connecting operator. Callers use these
// pairs to offer operator insertion as a quick fix.
type Connection struct {
	Before, After ID
}

// Validation is the result of Validate.
type Validation struct {
	// Errs lists every structural defect found;
	// an empty list means the store is valid.
	Errs []error
	// Broken lists the adjacent operand pairs from
	// the root-level connectivity check, in order.
	Broken []Connection
}

// Valid returns whether no defects were found.
func (v *Validation) Valid() bool { return len(v.Errs) == 0 }

// Validate checks the shape of the expression in the
// store without inferring types. It is read-only and
// total: all defects are returned, never thrown, so a
// caller can re-validate after every edit without
// exception-driven control flow. A store holding a
// partial expression mid-edit is the expected steady
// state, not an exceptional one.
//
// The checks are, in order: store invariants (unique
// ids, resolvable parents, leaves without children,
// well-formed argument indices), root-level operand
// connectivity, root-level operator operands, and
// function arity at every level.
func Validate(s *Store) *Validation {
	v := &Validation{}
	v.invariants(s)
	roots := s.Roots()
	v.connectivity(roots)
	v.arity(s)
	return v
}

func (v *Validation) errf(at ID, f string, args ...interface{}) {
	v.Errs = append(v.Errs, errstructf(at, f, args...))
}

// invariants checks the store-level rules that hold
// regardless of expression shape.
func (v *Validation) invariants(s *Store) {
	nodes := s.Nodes()
	seen := make(map[ID]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID()] {
			v.errf(n.ID(), "duplicate node id %s", n.ID())
			continue
		}
		seen[n.ID()] = true
	}
	for _, n := range nodes {
		p := n.Parent()
		if p == None {
			continue
		}
		parent := s.Lookup(p)
		if parent == nil {
			v.errf(n.ID(), "orphaned node: parent %s does not exist", p)
			continue
		}
		if Leaf(parent) {
			v.errf(n.ID(), "node attached to leaf parent %s", p)
		}
	}
	// parent references must not form cycles; a cycle
	// is unreachable from any root, so the tree walks
	// would silently skip it
	for _, n := range nodes {
		if v.cyclic(s, n) {
			v.errf(n.ID(), "cycle in parent references at node %s", n.ID())
			break
		}
	}
	for _, n := range nodes {
		c, ok := n.(*Call)
		if !ok {
			continue
		}
		argseen := make(map[int]bool)
		for _, child := range s.ChildrenOf(c.ID()) {
			g, ok := child.(*Group)
			if !ok || g.Arg == NoArg {
				continue
			}
			if g.Arg < 0 {
				v.errf(g.ID(), "%s has an argument group with negative index %d", c.Fn, g.Arg)
				continue
			}
			if argseen[g.Arg] {
				v.errf(g.ID(), "%s has duplicate argument groups for slot %d", c.Fn, g.Arg)
			}
			argseen[g.Arg] = true
			if n := c.Fn.Arity(); n != Variadic && g.Arg >= n {
				v.errf(g.ID(), "%s has an argument group for slot %d, but takes only %d", c.Fn, g.Arg, n)
			}
		}
	}
}

func (v *Validation) cyclic(s *Store, n Node) bool {
	// no tree at the expected scale is deeper than
	// the store is long, so walking up more than
	// Len() parents implies a cycle
	steps := 0
	for n != nil && n.Parent() != None {
		if steps++; steps > s.Len() {
			return true
		}
		n = s.Lookup(n.Parent())
	}
	return false
}

// connectivity performs the root-level checks: adjacent
// operands with no operator between them, and operators
// missing an operand on either side.
func (v *Validation) connectivity(roots []Node) {
	operands := 0
	operators := 0
	for _, n := range roots {
		if operand(n) {
			operands++
		} else if _, ok := n.(*Operator); ok {
			operators++
		}
	}
	if operators > 0 && operands == 0 {
		// one summary error instead of a missing-operand
		// error per operator
		v.errf(None, "expression has operators but no operands")
		return
	}
	for i := range roots {
		if i > 0 && operand(roots[i-1]) && operand(roots[i]) {
			v.Broken = append(v.Broken, Connection{
				Before: roots[i-1].ID(),
				After:  roots[i].ID(),
			})
			v.errf(roots[i].ID(), "missing operator between operands")
		}
		op, ok := roots[i].(*Operator)
		if !ok {
			continue
		}
		if op.Op == OpNone {
			v.errf(op.ID(), "operator node has no operator symbol")
			continue
		}
		if i == 0 || !operand(roots[i-1]) {
			v.errf(op.ID(), "operator %s is missing its left operand", op.Op)
		}
		if i == len(roots)-1 || !operand(roots[i+1]) {
			v.errf(op.ID(), "operator %s is missing its right operand", op.Op)
		}
	}
}

// arity checks every Call in the store, at any depth,
// against its signature. Variadic functions accept any
// argument count and are never flagged.
func (v *Validation) arity(s *Store) {
	for _, n := range s.Nodes() {
		c, ok := n.(*Call)
		if !ok {
			continue
		}
		want := c.Fn.Arity()
		if want == Variadic {
			continue
		}
		got := 0
		seen := make(map[int]bool)
		for _, child := range s.ChildrenOf(c.ID()) {
			if g, ok := child.(*Group); ok && g.Arg != NoArg && !seen[g.Arg] {
				seen[g.Arg] = true
				got++
			}
		}
		if got != want {
			v.errf(c.ID(), "%s expects %d argument(s), but found %d", c.Fn, want, got)
		}
	}
}
