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

import (
	"strings"

	"github.com/google/uuid"
)

// ID is the opaque identifier of a node.
// An ID is assigned when the node is created
// and is stable for the lifetime of the node;
// IDs are never reused.
type ID string

// None is the zero ID. A node whose parent
// is None is a root node.
const None ID = ""

func newID() ID {
	return ID(uuid.New().String())
}

// AttrInfo is the catalog metadata for one attribute.
type AttrInfo struct {
	// Name is the display name of the attribute
	// as it appears in formula text (inside braces).
	Name string
	// Type is the declared type string from the
	// catalog, e.g. "number" or "boolean".
	// See DeclaredType for how it is interpreted.
	Type string
}

// Catalog is the read-only registry of attributes
// that formulas refer to. It is supplied by the
// caller; the engine never mutates it.
type Catalog interface {
	// Lookup returns the metadata for the attribute
	// with the given id, or ok=false if the id is
	// not in the catalog.
	Lookup(id string) (AttrInfo, bool)
	// ResolveName maps a display name (the text
	// inside braces) back to an attribute id.
	// The parser uses this to resolve {Name} tokens.
	ResolveName(name string) (string, bool)
}

// Node is one element of an expression tree.
//
// The concrete node kinds are *Attribute, *Operator,
// *Call, *Value and *Group; the set is closed, so
// switching over these five types is exhaustive.
type Node interface {
	// ID returns the node's unique identifier.
	ID() ID
	// Parent returns the ID of the node's parent,
	// or None if the node is a root.
	Parent() ID
	// SetParent re-parents the node. The engine
	// never calls SetParent itself; it exists for
	// callers that edit trees in place.
	SetParent(ID)

	// text writes the canonical representation of
	// this node; container nodes look up their
	// children through the store.
	text(dst *strings.Builder, s *Store, cat Catalog)
}

// header is the state common to all node kinds.
type header struct {
	id     ID
	parent ID
}

func (h *header) ID() ID         { return h.id }
func (h *header) Parent() ID     { return h.parent }
func (h *header) SetParent(p ID) { h.parent = p }

// Attribute is a reference to a catalog attribute.
// Attribute nodes are leaves.
type Attribute struct {
	header
	// Attr is the catalog id of the referenced
	// attribute. It may fail to resolve against
	// the current catalog; that does not corrupt
	// the tree, but InferTypes reports it.
	Attr string
}

// NewAttribute constructs a root Attribute node
// referencing the given catalog id.
func NewAttribute(attr string) *Attribute {
	return &Attribute{header: header{id: newID()}, Attr: attr}
}

// Operator is a positional infix operator marker.
// Operator nodes are leaves; their operands are
// their siblings, not their children.
type Operator struct {
	header
	Op Op
}

// NewOperator constructs a root Operator node.
func NewOperator(op Op) *Operator {
	return &Operator{header: header{id: newID()}, Op: op}
}

// Value is a numeric literal. Value nodes are leaves.
type Value struct {
	header
	Num float64
}

// NewValue constructs a root Value node.
func NewValue(num float64) *Value {
	return &Value{header: header{id: newID()}, Num: num}
}

// Call is a function call. Its arguments are Group
// children carrying argument indices; see NewArgGroup.
type Call struct {
	header
	Fn Function
}

// NewCall constructs a root Call node with no arguments.
func NewCall(fn Function) *Call {
	return &Call{header: header{id: newID()}, Fn: fn}
}

// NoArg marks a Group as a plain parenthesization
// rather than a function argument.
const NoArg = -1

// Group is either a plain parenthesized sub-expression
// (Arg == NoArg) or, when Arg >= 0, the Arg-th argument
// of its parent Call.
type Group struct {
	header
	Arg int
}

// NewGroup constructs a root plain Group node.
func NewGroup() *Group {
	return &Group{header: header{id: newID()}, Arg: NoArg}
}

// NewArgGroup constructs a root Group node marked
// as argument slot i of its (future) parent Call.
func NewArgGroup(i int) *Group {
	return &Group{header: header{id: newID()}, Arg: i}
}

// Leaf returns whether the node kind never has children.
// Attribute, Operator and Value nodes are leaves of the
// expression grammar.
func Leaf(n Node) bool {
	switch n.(type) {
	case *Attribute, *Operator, *Value:
		return true
	}
	return false
}

// operand returns whether n can serve as an operand
// in an infix sequence.
func operand(n Node) bool {
	switch n.(type) {
	case *Attribute, *Value, *Call, *Group:
		return true
	}
	return false
}

// Store is a flat, order-preserving collection of nodes.
//
// The relative position of nodes sharing a parent is
// their sibling order, which is the left-to-right reading
// order of the expression; every Store operation and
// every parse/serialize round trip preserves it.
//
// A Store is owned and mutated by the caller between
// engine calls; Validate, InferTypes and ToString never
// modify it. Mutations are not validated eagerly: the
// caller is expected to re-run Validate (and InferTypes)
// after editing.
type Store struct {
	nodes []Node
}

// NewStore constructs a Store containing the given
// nodes in order.
func NewStore(nodes ...Node) *Store {
	return &Store{nodes: nodes}
}

// Len returns the number of nodes in the store.
func (s *Store) Len() int { return len(s.nodes) }

// Nodes returns the store's nodes in insertion order.
// The returned slice is the store's backing storage;
// callers must not reorder it directly.
func (s *Store) Nodes() []Node { return s.nodes }

// Add appends a node to the store.
func (s *Store) Add(n Node) {
	s.nodes = append(s.nodes, n)
}

// Lookup returns the node with the given id,
// or nil if no such node exists.
func (s *Store) Lookup(id ID) Node {
	for i := range s.nodes {
		if s.nodes[i].ID() == id {
			return s.nodes[i]
		}
	}
	return nil
}

// Contains returns whether a node with the given id exists.
func (s *Store) Contains(id ID) bool {
	return s.Lookup(id) != nil
}

// Delete removes the node with the given id and reports
// whether it was present. Children of the deleted node
// are not removed; they become orphans, which Validate
// detects rather than silently repairs.
func (s *Store) Delete(id ID) bool {
	for i := range s.nodes {
		if s.nodes[i].ID() == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns the nodes with no parent, in order.
func (s *Store) Roots() []Node {
	var out []Node
	for i := range s.nodes {
		if s.nodes[i].Parent() == None {
			out = append(out, s.nodes[i])
		}
	}
	return out
}

// ChildrenOf returns the nodes whose parent is id, in order.
func (s *Store) ChildrenOf(id ID) []Node {
	var out []Node
	for i := range s.nodes {
		if s.nodes[i].Parent() == id {
			out = append(out, s.nodes[i])
		}
	}
	return out
}
