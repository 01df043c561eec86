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

// Package parse turns formula text into an expr.Store.
//
// The grammar is deliberately flat:
//
//	expr  := term (op term)*
//	term  := attribute | value | funcCall | group
//	funcCall := FUNCNAME '(' argList? ')'
//	argList  := expr (',' expr)*
//	group := '(' expr ')'
//	attribute := '{' NAME '}'
//
// Parsing is lenient by design: malformed calls,
// unbalanced parentheses and unknown words never fail
// the parse; they produce under-populated nodes (left
// for expr.Validate to flag) or dropped spans (recorded
// on the Parser). The only parse failure is exceeding
// the nesting depth limit.
package parse

import (
	"fmt"
	"strconv"

	"github.com/SnellerInc/formula/expr"
)

// DefaultMaxDepth is the parenthesis nesting limit
// applied when Parser.MaxDepth is zero. It bounds the
// parser's recursion on adversarial input.
const DefaultMaxDepth = 64

// ParseError is returned when the parser cannot accept
// the input at all. With the lenient grammar this only
// happens when nesting exceeds the depth limit.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Pos, e.Msg)
}

// Parser parses formula text against a catalog.
// The zero Parser is usable; without a Catalog every
// attribute reference is unresolved and dropped.
type Parser struct {
	// Catalog resolves {Name} references to
	// attribute ids.
	Catalog expr.Catalog
	// MaxDepth caps parenthesis nesting;
	// zero means DefaultMaxDepth.
	MaxDepth int
	// Dropped accumulates the input regions discarded
	// during the most recent Parse calls: unknown
	// words, unresolved attribute names, stray ')'
	// and ','. Callers that want to warn about
	// silently ignored input read it after Parse.
	Dropped []Span
}

// Parse is shorthand for parsing with a default Parser.
func Parse(text string, cat expr.Catalog) (*expr.Store, error) {
	p := &Parser{Catalog: cat}
	return p.Parse(text)
}

// Parse builds a new Store from formula text. The
// store's roots are the top-level nodes in source
// order. Parse does not fail on structurally odd
// input; run expr.Validate on the result.
func (p *Parser) Parse(text string) (*expr.Store, error) {
	sc := &scanner{from: []byte(text)}
	toks := sc.scan()
	p.Dropped = append(p.Dropped, sc.dropped...)
	st := expr.NewStore()
	if err := p.seq(st, toks, expr.None, 0); err != nil {
		return nil, err
	}
	return st, nil
}

func (p *Parser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return DefaultMaxDepth
}

// seq parses one sibling sequence into the store under
// the given parent, recursing for groups and function
// arguments.
func (p *Parser) seq(st *expr.Store, toks []token, parent expr.ID, depth int) error {
	if depth > p.maxDepth() {
		pos := 0
		if len(toks) > 0 {
			pos = toks[0].pos
		}
		return &ParseError{Pos: pos, Msg: fmt.Sprintf("nesting deeper than %d levels", p.maxDepth())}
	}
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokValue:
			num, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				// a digit/dot run that is not a number,
				// e.g. "1.2.3"
				p.Dropped = append(p.Dropped, Span{Pos: t.pos, Text: t.text})
				continue
			}
			st.Add(childOf(expr.NewValue(num), parent))
		case tokAttr:
			if p.Catalog != nil {
				if id, ok := p.Catalog.ResolveName(t.text); ok {
					st.Add(childOf(expr.NewAttribute(id), parent))
					continue
				}
			}
			p.Dropped = append(p.Dropped, Span{Pos: t.pos, Text: "{" + t.text + "}"})
		case tokOp:
			st.Add(childOf(expr.NewOperator(t.op), parent))
		case tokFunc:
			if i+1 >= len(toks) || toks[i+1].kind != tokLparen {
				// malformed call with no parenthesis;
				// emit the bare Call and let the arity
				// check flag it
				st.Add(childOf(expr.NewCall(t.fn), parent))
				continue
			}
			call := childOf(expr.NewCall(t.fn), parent)
			st.Add(call)
			end := matchParen(toks, i+1)
			for j, seg := range splitArgs(toks[i+2 : end]) {
				g := childOf(expr.NewArgGroup(j), call.ID())
				st.Add(g)
				if err := p.seq(st, seg, g.ID(), depth+1); err != nil {
					return err
				}
			}
			i = end
		case tokLparen:
			g := childOf(expr.NewGroup(), parent)
			st.Add(g)
			end := matchParen(toks, i)
			inner := toks[i+1 : end]
			if err := p.seq(st, inner, g.ID(), depth+1); err != nil {
				return err
			}
			i = end
		case tokRparen, tokComma:
			// stray; recover by skipping
			p.Dropped = append(p.Dropped, Span{Pos: t.pos, Text: t.text})
		}
	}
	return nil
}

func childOf(n expr.Node, parent expr.ID) expr.Node {
	n.SetParent(parent)
	return n
}

// matchParen returns the index of the ')' matching the
// '(' at open, or len(toks) when the input is unbalanced
// (the region then extends to the end, leaving the node
// under-populated for validation to notice).
func matchParen(toks []token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].kind {
		case tokLparen:
			depth++
		case tokRparen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(toks)
}

// splitArgs splits an argument region at the commas
// that sit directly inside the call's parentheses;
// commas nested in inner parentheses belong to the
// nested expressions. An empty region has no segments.
func splitArgs(toks []token) [][]token {
	if len(toks) == 0 {
		return nil
	}
	var out [][]token
	depth, start := 0, 0
	for i := range toks {
		switch toks[i].kind {
		case tokLparen:
			depth++
		case tokRparen:
			depth--
		case tokComma:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(out, toks[start:])
}
