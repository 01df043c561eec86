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
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// ToString returns the canonical text of the expression
// in the store: root nodes in order, joined by single
// spaces. ToString is pure and total; it produces output
// for malformed stores as well (validation is Validate's
// job, not the serializer's).
//
// Parsing the result of ToString with the same catalog
// reproduces a store with the same canonical text, as
// long as the store is structurally valid. Byte-identity
// with the originally parsed text is not guaranteed:
// spacing and argument formatting are normalized, and
// attribute names are the catalog's current ones.
func ToString(s *Store, cat Catalog) string {
	var dst strings.Builder
	writeSeq(&dst, s, cat, s.Roots())
	return dst.String()
}

// writeSeq serializes a sibling sequence joined by spaces.
func writeSeq(dst *strings.Builder, s *Store, cat Catalog, nodes []Node) {
	for i := range nodes {
		if i > 0 {
			dst.WriteByte(' ')
		}
		nodes[i].text(dst, s, cat)
	}
}

func (a *Attribute) text(dst *strings.Builder, s *Store, cat Catalog) {
	dst.WriteByte('{')
	if cat != nil {
		if info, ok := cat.Lookup(a.Attr); ok {
			dst.WriteString(info.Name)
			dst.WriteByte('}')
			return
		}
	}
	// unresolved attributes render as a fixed placeholder
	dst.WriteByte('?')
	dst.WriteByte('}')
}

func (o *Operator) text(dst *strings.Builder, s *Store, cat Catalog) {
	dst.WriteString(o.Op.String())
}

func (v *Value) text(dst *strings.Builder, s *Store, cat Catalog) {
	num := v.Num
	if math.Signbit(num) {
		// a leading '-' scans as an operator, not as a
		// sign, so render the sign the way parsed text
		// carries it: an operator followed by the
		// magnitude
		dst.WriteString("- ")
		num = -num
	}
	// 'f' rather than 'g': exponent notation would not
	// scan back as a single number
	dst.WriteString(strconv.FormatFloat(num, 'f', -1, 64))
}

func (c *Call) text(dst *strings.Builder, s *Store, cat Catalog) {
	dst.WriteString(c.Fn.Name())
	dst.WriteByte('(')
	groups := argGroups(s, c)
	if n := c.Fn.Arity(); n != Variadic {
		// fixed arity: emit exactly n slots, with
		// absent argument groups left empty
		for i := 0; i < n; i++ {
			if i > 0 {
				dst.WriteString(", ")
			}
			for _, g := range groups {
				if g.Arg == i {
					writeSeq(dst, s, cat, s.ChildrenOf(g.ID()))
					break
				}
			}
		}
	} else {
		for i, g := range groups {
			if i > 0 {
				dst.WriteString(", ")
			}
			writeSeq(dst, s, cat, s.ChildrenOf(g.ID()))
		}
	}
	dst.WriteByte(')')
}

func (g *Group) text(dst *strings.Builder, s *Store, cat Catalog) {
	// argument groups are serialized by their owning
	// Call; a Group only reaches here when it is plain
	// parenthesization (or detached from any Call)
	dst.WriteByte('(')
	writeSeq(dst, s, cat, s.ChildrenOf(g.ID()))
	dst.WriteByte(')')
}

// argGroups returns the argument groups of c in
// ascending argument order. Non-group children and
// plain groups are not arguments and are excluded.
func argGroups(s *Store, c *Call) []*Group {
	var out []*Group
	for _, n := range s.ChildrenOf(c.ID()) {
		if g, ok := n.(*Group); ok && g.Arg != NoArg {
			out = append(out, g)
		}
	}
	slices.SortStableFunc(out, func(a, b *Group) bool {
		return a.Arg < b.Arg
	})
	return out
}
