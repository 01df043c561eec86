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

// Function is one of the built-in function names.
type Function int

const (
	// arithmetic functions; the lower-case
	// constant-to-name mapping is direct
	Abs Function = iota
	Sin
	Cos
	Tan
	Sqrt
	Log
	Exp
	Floor
	Ceil
	Round
	Pow
	Min
	Max
	Atan2

	// logical functions; spelled upper-case
	// in formula text
	If
	LogicalAnd // AND
	LogicalOr  // OR
	LogicalNot // NOT
	IsNull
	IsNotNull

	maxFunction
)

// Variadic is the arity of functions that accept
// any number of arguments.
const Variadic = -1

// finfo describes the fixed signature of a built-in:
// its spelling, arity, per-slot argument labels, the
// type every argument must satisfy, and the result type.
// The If result type is computed from the branch types
// rather than taken from the table.
type finfo struct {
	name   string
	arity  int
	labels []string
	args   TypeSet
	ret    TypeSet
}

var funcInfo = [maxFunction]finfo{
	Abs:   {name: "abs", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Sin:   {name: "sin", arity: 1, labels: []string{"radians"}, args: NumberType, ret: NumberType},
	Cos:   {name: "cos", arity: 1, labels: []string{"radians"}, args: NumberType, ret: NumberType},
	Tan:   {name: "tan", arity: 1, labels: []string{"radians"}, args: NumberType, ret: NumberType},
	Sqrt:  {name: "sqrt", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Log:   {name: "log", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Exp:   {name: "exp", arity: 1, labels: []string{"exponent"}, args: NumberType, ret: NumberType},
	Floor: {name: "floor", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Ceil:  {name: "ceil", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Round: {name: "round", arity: 1, labels: []string{"value"}, args: NumberType, ret: NumberType},
	Pow:   {name: "pow", arity: 2, labels: []string{"base", "exponent"}, args: NumberType, ret: NumberType},
	Min:   {name: "min", arity: 2, labels: []string{"first", "second"}, args: NumberType, ret: NumberType},
	Max:   {name: "max", arity: 2, labels: []string{"first", "second"}, args: NumberType, ret: NumberType},
	Atan2: {name: "atan2", arity: 2, labels: []string{"y", "x"}, args: NumberType, ret: NumberType},

	If:         {name: "IF", arity: 3, labels: []string{"condition", "then", "else"}, args: AnyType, ret: AnyType},
	LogicalAnd: {name: "AND", arity: Variadic, args: BoolType, ret: BoolType},
	LogicalOr:  {name: "OR", arity: Variadic, args: BoolType, ret: BoolType},
	LogicalNot: {name: "NOT", arity: 1, labels: []string{"condition"}, args: BoolType, ret: BoolType},
	IsNull:     {name: "ISNULL", arity: 1, labels: []string{"value"}, args: AnyType, ret: BoolType},
	IsNotNull:  {name: "ISNOTNULL", arity: 1, labels: []string{"value"}, args: AnyType, ret: BoolType},
}

func (f Function) info() *finfo {
	if f >= 0 && f < maxFunction {
		return &funcInfo[f]
	}
	return nil
}

// Name returns the spelling of f in formula text.
func (f Function) Name() string {
	if fi := f.info(); fi != nil {
		return fi.name
	}
	return "unknown"
}

func (f Function) String() string { return f.Name() }

// Arity returns the number of arguments f requires,
// or Variadic if f accepts any number.
func (f Function) Arity() int {
	if fi := f.info(); fi != nil {
		return fi.arity
	}
	return 0
}

// ArgLabel returns the display label of argument slot i,
// or "" if f is variadic or i is out of range. Callers
// building argument-entry UIs use these labels.
func (f Function) ArgLabel(i int) string {
	fi := f.info()
	if fi == nil || i < 0 || i >= len(fi.labels) {
		return ""
	}
	return fi.labels[i]
}

// LookupFunction maps a function spelling to its
// Function. The match is exact: arithmetic functions
// are lower-case and logical functions upper-case,
// matching the spellings in formula text.
func LookupFunction(name string) (Function, bool) {
	for f := Function(0); f < maxFunction; f++ {
		if funcInfo[f].name == name {
			return f, true
		}
	}
	return 0, false
}
