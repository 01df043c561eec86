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

package parse

import "github.com/SnellerInc/formula/expr"

type tokenKind int

const (
	tokNone tokenKind = iota
	tokFunc
	tokOp
	tokAttr
	tokValue
	tokLparen
	tokRparen
	tokComma
)

// token is one element of the scanned token stream.
// text is the literal source text, except for tokAttr,
// where it is the attribute name with braces stripped.
type token struct {
	kind tokenKind
	text string
	pos  int
	op   expr.Op
	fn   expr.Function
}

// Span is a region of input that was scanned but not
// turned into a token or node: an unrecognized word or
// symbol, an attribute name missing from the catalog, a
// stray ')' or ','. Spans are diagnostics, not errors;
// scanning and parsing proceed past them.
type Span struct {
	Pos  int
	Text string
}

// scanner is a byte cursor over formula text. It cannot
// fail: anything it does not recognize is recorded as a
// dropped Span and skipped, one token (or byte) at a
// time, so the scan always makes progress.
type scanner struct {
	from    []byte
	pos     int
	dropped []Span
}

func isdigit(x byte) bool {
	return x >= '0' && x <= '9'
}

func isalpha(x byte) bool {
	return (x >= 'a' && x <= 'z') || (x >= 'A' && x <= 'Z')
}

func isident(x byte) bool {
	return isalpha(x) || isdigit(x) || x == '_'
}

func isnum(x byte) bool {
	return isdigit(x) || x == '.'
}

func isspace(x byte) bool {
	return x == ' ' || x == '\n' || x == '\t' || x == '\r' || x == '\f' || x == '\v'
}

func (s *scanner) chompws() {
	for s.pos < len(s.from) && isspace(s.from[s.pos]) {
		s.pos++
	}
}

func (s *scanner) drop(pos int, text string) {
	s.dropped = append(s.dropped, Span{Pos: pos, Text: text})
}

// scan tokenizes the whole input.
func (s *scanner) scan() []token {
	var out []token
	for {
		t, ok := s.next()
		if !ok {
			if s.pos >= len(s.from) {
				return out
			}
			continue
		}
		out = append(out, t)
	}
}

// next produces the next token, or ok=false when the
// scanner skipped something or hit the end of input.
func (s *scanner) next() (token, bool) {
	s.chompws()
	if s.pos >= len(s.from) {
		return token{}, false
	}
	pos := s.pos
	b := s.from[s.pos]
	switch {
	case b == '(':
		s.pos++
		return token{kind: tokLparen, text: "(", pos: pos}, true
	case b == ')':
		s.pos++
		return token{kind: tokRparen, text: ")", pos: pos}, true
	case b == ',':
		s.pos++
		return token{kind: tokComma, text: ",", pos: pos}, true
	case b == '{':
		return s.lexAttr()
	case isnum(b):
		return s.lexNumber()
	case isident(b):
		return s.lexWord()
	default:
		return s.lexSymbol()
	}
}

// lexAttr scans a {Name} attribute reference. The name
// is not resolved here; the parser resolves it against
// the catalog. An unterminated '{' swallows the rest of
// the input as the name.
func (s *scanner) lexAttr() (token, bool) {
	pos := s.pos
	s.pos++ // skip '{'
	start := s.pos
	for s.pos < len(s.from) && s.from[s.pos] != '}' {
		s.pos++
	}
	name := string(s.from[start:s.pos])
	if s.pos < len(s.from) {
		s.pos++ // skip '}'
	}
	return token{kind: tokAttr, text: name, pos: pos}, true
}

// lexNumber scans a maximal run of digits and dots.
// There is no exponent syntax and no leading sign; a
// leading '-' is scanned as an operator instead.
func (s *scanner) lexNumber() (token, bool) {
	pos := s.pos
	for s.pos < len(s.from) && isnum(s.from[s.pos]) {
		s.pos++
	}
	return token{kind: tokValue, text: string(s.from[pos:s.pos]), pos: pos}, true
}

// lexWord scans a maximal identifier run and looks it
// up as a function name first, then as a word operator
// (AND, OR, NOT). Unrecognized words are dropped.
func (s *scanner) lexWord() (token, bool) {
	pos := s.pos
	for s.pos < len(s.from) && isident(s.from[s.pos]) {
		s.pos++
	}
	word := string(s.from[pos:s.pos])
	if fn, ok := expr.LookupFunction(word); ok {
		return token{kind: tokFunc, text: word, pos: pos, fn: fn}, true
	}
	if op, ok := expr.LookupOp(word); ok {
		return token{kind: tokOp, text: word, pos: pos, op: op}, true
	}
	s.drop(pos, word)
	return token{}, false
}

// lexSymbol scans an operator symbol, longest match
// first ('**' before '*', '>=' before '>'). A byte that
// starts no operator is dropped.
func (s *scanner) lexSymbol() (token, bool) {
	pos := s.pos
	if s.pos+1 < len(s.from) {
		two := string(s.from[s.pos : s.pos+2])
		if op, ok := expr.LookupOp(two); ok {
			s.pos += 2
			return token{kind: tokOp, text: two, pos: pos, op: op}, true
		}
	}
	one := string(s.from[s.pos : s.pos+1])
	s.pos++
	if op, ok := expr.LookupOp(one); ok {
		return token{kind: tokOp, text: one, pos: pos, op: op}, true
	}
	s.drop(pos, one)
	return token{}, false
}
