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

// Op is one of the infix operator symbols.
type Op int

const (
	// OpNone is the zero Op; it does not correspond
	// to any operator and is rejected by validation.
	OpNone Op = iota

	// arithmetic operators
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod

	// boolean connectives
	OpAnd
	OpOr
	OpNot

	// equality operators
	OpEquals
	OpNotEquals

	// relational operators
	OpGreater
	OpLess
	OpGreaterEquals
	OpLessEquals

	maxOp
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	case OpMod:
		return "%"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpNot:
		return "NOT"
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEquals:
		return ">="
	case OpLessEquals:
		return "<="
	default:
		return "none"
	}
}

// Arithmetic returns whether o is one of + - * / ** %.
func (o Op) Arithmetic() bool {
	return o >= OpAdd && o <= OpMod
}

// Equality returns whether o is == or !=.
func (o Op) Equality() bool {
	return o == OpEquals || o == OpNotEquals
}

// Relational returns whether o is one of > < >= <=.
func (o Op) Relational() bool {
	return o >= OpGreater && o <= OpLessEquals
}

// Boolean returns whether o is AND, OR or NOT.
func (o Op) Boolean() bool {
	return o == OpAnd || o == OpOr || o == OpNot
}

// result is the type an infix application of o produces.
func (o Op) result() TypeSet {
	if o.Arithmetic() {
		return NumberType
	}
	if o == OpNone {
		return AnyType
	}
	return BoolType
}

// LookupOp maps operator text (a symbol such as ">="
// or a word such as "AND") to its Op. It returns
// (OpNone, false) when the text is not an operator.
func LookupOp(text string) (Op, bool) {
	for o := OpAdd; o < maxOp; o++ {
		if o.String() == text {
			return o, true
		}
	}
	return OpNone, false
}
