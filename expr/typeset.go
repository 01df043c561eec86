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

import "strings"

// TypeSet is a set of semantic types.
//
// Nodes produce their TypeSet during type inference
// (see InferTypes), which lets the checker flag
// operator and function usage whose operand types
// are incompatible. A set with more than one member
// means the type is not known statically; such sets
// are permissive in every check.
type TypeSet uint8

const (
	// NumberType is the type of numeric values.
	NumberType TypeSet = 1 << iota
	// BoolType is the type of boolean values.
	BoolType
	// StringType is the type of string values.
	StringType

	// AnyType contains all types. It stands in for
	// an unknown type: catalog misses, unrecognized
	// declared-type strings and empty groups all
	// produce AnyType, and every check treats it
	// as compatible.
	AnyType TypeSet = NumberType | BoolType | StringType
)

// Only returns whether t contains only the types in set.
func (t TypeSet) Only(set TypeSet) bool {
	return (t &^ set) == 0
}

// AnyOf returns whether t and set share at least one type.
func (t TypeSet) AnyOf(set TypeSet) bool {
	return (t & set) != 0
}

// Known returns whether t is a single concrete type.
func (t TypeSet) Known() bool {
	return t != 0 && t&(t-1) == 0
}

func (t TypeSet) String() string {
	switch t {
	case 0:
		return "NONE"
	case AnyType:
		return "UNKNOWN"
	}
	var str strings.Builder
	first := true
	put := func(name string) {
		if !first {
			str.WriteByte('|')
		}
		str.WriteString(name)
		first = false
	}
	if t&NumberType != 0 {
		put("NUMBER")
	}
	if t&BoolType != 0 {
		put("BOOLEAN")
	}
	if t&StringType != 0 {
		put("STRING")
	}
	return str.String()
}

// DeclaredType maps a catalog declared-type string
// into a TypeSet. Unrecognized strings map to AnyType
// so that attributes with exotic declared types do not
// produce spurious type errors.
func DeclaredType(s string) TypeSet {
	switch strings.ToLower(s) {
	case "number", "numeric", "int", "integer", "float", "double":
		return NumberType
	case "bool", "boolean":
		return BoolType
	case "string", "text":
		return StringType
	default:
		return AnyType
	}
}
