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
	"fmt"
	"testing"
)

func TestToString(t *testing.T) {
	testcases := []struct {
		build func() *Store
		want  string
	}{
		{
			// {Price} * {Quantity}
			build: func() *Store {
				return NewStore(NewAttribute("price"), NewOperator(OpMul), NewAttribute("qty"))
			},
			want: "{Price} * {Quantity}",
		},
		{
			// zero-valued literal serializes as "0"
			build: func() *Store {
				return NewStore(NewValue(0))
			},
			want: "0",
		},
		{
			build: func() *Store {
				return NewStore(NewValue(0.5), NewOperator(OpPow), NewValue(100))
			},
			want: "0.5 ** 100",
		},
		{
			// a negative literal renders as the operator
			// and the magnitude, the same shape the
			// scanner produces for "- 5"
			build: func() *Store {
				return NewStore(NewValue(-5))
			},
			want: "- 5",
		},
		{
			// unresolved attribute renders as a placeholder
			build: func() *Store {
				return NewStore(NewAttribute("ghost"))
			},
			want: "{?}",
		},
		{
			// sqrt({Price})
			build: func() *Store {
				c := NewCall(Sqrt)
				g := NewArgGroup(0)
				s := NewStore(c, adopt(g, c), adopt(NewAttribute("price"), g))
				return s
			},
			want: "sqrt({Price})",
		},
		{
			// argument groups serialize in index order even
			// when stored out of order
			build: func() *Store {
				c := NewCall(Pow)
				g1 := NewArgGroup(1)
				g0 := NewArgGroup(0)
				return NewStore(c,
					adopt(g1, c), adopt(NewValue(2), g1),
					adopt(g0, c), adopt(NewAttribute("price"), g0))
			},
			want: "pow({Price}, 2)",
		},
		{
			// a missing argument slot is left empty
			build: func() *Store {
				c := NewCall(Pow)
				g1 := NewArgGroup(1)
				return NewStore(c, adopt(g1, c), adopt(NewValue(2), g1))
			},
			want: "pow(, 2)",
		},
		{
			// variadic call
			build: func() *Store {
				c := NewCall(LogicalAnd)
				g0 := NewArgGroup(0)
				g1 := NewArgGroup(1)
				return NewStore(c,
					adopt(g0, c), adopt(NewAttribute("vip"), g0),
					adopt(g1, c), adopt(NewAttribute("active"), g1))
			},
			want: "AND({VIP}, {Active})",
		},
		{
			// variadic call with no arguments
			build: func() *Store {
				return NewStore(NewCall(LogicalOr))
			},
			want: "OR()",
		},
		{
			// ({Price} + 1) * 2
			build: func() *Store {
				g := NewGroup()
				return NewStore(g,
					adopt(NewAttribute("price"), g),
					adopt(NewOperator(OpAdd), g),
					adopt(NewValue(1), g),
					NewOperator(OpMul), NewValue(2))
			},
			want: "({Price} + 1) * 2",
		},
		{
			// IF({VIP}, {Price}, 0)
			build: func() *Store {
				c := NewCall(If)
				g0, g1, g2 := NewArgGroup(0), NewArgGroup(1), NewArgGroup(2)
				return NewStore(c,
					adopt(g0, c), adopt(NewAttribute("vip"), g0),
					adopt(g1, c), adopt(NewAttribute("price"), g1),
					adopt(g2, c), adopt(NewValue(0), g2))
			},
			want: "IF({VIP}, {Price}, 0)",
		},
	}
	for i := range testcases {
		tc := &testcases[i]
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := tc.build()
			if got := ToString(s, testcat); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			// serialization must not mutate the store
			if again := ToString(s, testcat); again != tc.want {
				t.Errorf("second call got %q, want %q", again, tc.want)
			}
		})
	}
}

func TestOpStrings(t *testing.T) {
	for o := OpAdd; o < maxOp; o++ {
		sym := o.String()
		if sym == "none" {
			t.Fatalf("op %d has no symbol", o)
		}
		got, ok := LookupOp(sym)
		if !ok || got != o {
			t.Errorf("LookupOp(%q) = %v, %v", sym, got, ok)
		}
	}
	if _, ok := LookupOp("&&"); ok {
		t.Error("LookupOp accepted an unknown symbol")
	}
}

func TestFunctionTable(t *testing.T) {
	for f := Function(0); f < maxFunction; f++ {
		if f.Name() == "unknown" {
			t.Fatalf("function %d has no name", f)
		}
		got, ok := LookupFunction(f.Name())
		if !ok || got != f {
			t.Errorf("LookupFunction(%q) = %v, %v", f.Name(), got, ok)
		}
		if n := f.Arity(); n != Variadic {
			for i := 0; i < n; i++ {
				if f.ArgLabel(i) == "" {
					t.Errorf("%s argument %d has no label", f, i)
				}
			}
		}
	}
	if _, ok := LookupFunction("SQRT"); ok {
		t.Error("function lookup should be exact-case")
	}
}
