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

// Package expr implements the node-tree representation
// of attribute formulas.
//
// Unlike a conventional AST, nodes live in a flat,
// parent-indexed Store: each node carries a stable id
// and an optional parent id, and sibling order is the
// left-to-right reading order of the expression. This
// lets an editing caller address, reorder and mutate
// individual nodes without re-keying a nested structure.
//
// The critical entry points for this package are
// ToString, Validate, and InferTypes. Those routines
// allow a caller to serialize the tree and collect
// structural and type diagnostics; none of them mutates
// the store, and none of them fails on malformed input,
// since a partially edited expression is the expected
// steady state. Parsing text into a Store lives in the
// parse subpackage.
package expr
