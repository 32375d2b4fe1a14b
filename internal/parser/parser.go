// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"errors"
	"iter"
	"strings"

	"github.com/arma3tools/armaconfig/internal/scanner"
)

// ErrUnbalancedBrackets is returned when an array or class body is missing
// its closing delimiter at end-of-input.
var ErrUnbalancedBrackets = errors.New("armaconfig: unbalanced brackets")

var scalarStopSet = map[byte]bool{',': true, ';': true, '}': true}

var (
	identKind  = scanner.Identifier
	symbolKind = scanner.Symbol
)

// Parser drives the grammar of spec.md §4.4 over a scanner. All token
// consumption goes through peek/discard so a token examined by one
// production (e.g. to decide which alternative to take) is never silently
// dropped by another.
type Parser struct {
	sc        *scanner.Scanner
	lookahead *scanner.Token
	atEOF     bool
}

// New wraps sc.
func New(sc *scanner.Scanner) *Parser {
	return &Parser{sc: sc}
}

// Parse returns the lazy top-level node sequence (the root class's body).
func (p *Parser) Parse() iter.Seq2[Node, error] {
	return p.body()
}

// peek returns the next token, with whitespace UNSPECIFIED tokens skipped
// when skipWS is true, without consuming it.
func (p *Parser) peek(skipWS bool) (scanner.Token, bool, error) {
	for {
		if p.lookahead != nil {
			tok := *p.lookahead
			if skipWS && tok.Kind == scanner.Unspecified && isSpace(tok.Lexeme) {
				p.lookahead = nil
				continue
			}
			return tok, true, nil
		}
		if p.atEOF {
			return scanner.Token{}, false, nil
		}
		tok, ok, err := p.sc.Next()
		if err != nil {
			return scanner.Token{}, false, err
		}
		if !ok {
			p.atEOF = true
			return scanner.Token{}, false, nil
		}
		p.lookahead = &tok
	}
}

func (p *Parser) discard() {
	p.lookahead = nil
}

// expect peeks (skipping whitespace) and, if it matches kind/values,
// consumes and returns it; otherwise returns a *scanner.TokenError.
func (p *Parser) expect(kind scanner.Kind, values ...string) (scanner.Token, error) {
	tok, ok, err := p.peek(true)
	if err != nil {
		return scanner.Token{}, err
	}
	if !ok {
		return scanner.Token{}, ErrUnbalancedBrackets
	}
	if tok.Kind != kind {
		return tok, &scanner.TokenError{Token: tok, Err: scanner.ErrUnexpectedTokenKind}
	}
	if len(values) > 0 && !containsStr(values, tok.Lexeme) {
		return tok, &scanner.TokenError{Token: tok, Err: scanner.ErrUnexpectedTokenValue}
	}
	p.discard()
	return tok, nil
}

func containsStr(vals []string, v string) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// body implements `body := (stmt)*`, stopping cleanly at end-of-input (the
// caller is the root) or leaving a `}` unconsumed for the caller to check
// (a nested class body).
func (p *Parser) body() iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		for {
			tok, ok, err := p.peek(true)
			if err != nil {
				yield(Node{}, err)
				return
			}
			if !ok || (tok.Kind == scanner.Symbol && tok.Lexeme == "}") {
				return
			}
			if tok.Kind == scanner.Symbol && tok.Lexeme == ";" {
				p.discard()
				continue
			}
			node, err := p.statement()
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// statement implements `stmt := class_decl | property` (the `;` no-op case
// is handled by body()).
func (p *Parser) statement() (Node, error) {
	nameTok, err := p.expect(identKind)
	if err != nil {
		return Node{}, err
	}
	if nameTok.Lexeme == "class" {
		return p.classDecl(nameTok)
	}
	return p.property(nameTok)
}

// classDecl implements `class_decl := 'class' IDENT (':' IDENT)? '{' body '}' ';'`.
func (p *Parser) classDecl(classTok scanner.Token) (Node, error) {
	nameTok, err := p.expect(identKind)
	if err != nil {
		return Node{}, err
	}

	inherits := ""
	tok, ok, err := p.peek(true)
	if err != nil {
		return Node{}, err
	}
	if !ok {
		return Node{}, ErrUnbalancedBrackets
	}
	switch {
	case tok.Kind == scanner.Symbol && tok.Lexeme == ":":
		p.discard()
		baseTok, err := p.expect(identKind)
		if err != nil {
			return Node{}, err
		}
		inherits = baseTok.Lexeme
		if _, err := p.expect(symbolKind, "{"); err != nil {
			return Node{}, err
		}
	case tok.Kind == scanner.Symbol && tok.Lexeme == "{":
		p.discard()
	default:
		return Node{}, &scanner.TokenError{Token: tok, Err: scanner.ErrUnexpectedTokenValue}
	}

	node := Node{Kind: ClassNode, Name: nameTok.Lexeme, Pos: classTok, Inherits: inherits, Body: p.classBody()}
	return node, nil
}

// classBody yields the nested body, then consumes the closing "}" and
// trailing ";" once the body sequence is fully drained.
func (p *Parser) classBody() iter.Seq2[Node, error] {
	inner := p.body()
	return func(yield func(Node, error) bool) {
		cont := true
		for node, err := range inner {
			if !cont {
				return
			}
			cont = yield(node, err)
			if err != nil {
				return
			}
		}
		if !cont {
			return
		}
		if _, err := p.expect(symbolKind, "}"); err != nil {
			yield(Node{}, err)
			return
		}
		if _, err := p.expect(symbolKind, ";"); err != nil {
			yield(Node{}, err)
			return
		}
	}
}

// property implements `property := IDENT ( '[' ']' )? '=' value ';'`.
func (p *Parser) property(nameTok scanner.Token) (Node, error) {
	isArray := false
	tok, ok, err := p.peek(true)
	if err != nil {
		return Node{}, err
	}
	if !ok {
		return Node{}, ErrUnbalancedBrackets
	}
	switch {
	case tok.Kind == scanner.Symbol && tok.Lexeme == "[":
		p.discard()
		if _, err := p.expect(symbolKind, "]"); err != nil {
			return Node{}, err
		}
		isArray = true
		if _, err := p.expect(symbolKind, "="); err != nil {
			return Node{}, err
		}
	case tok.Kind == scanner.Symbol && tok.Lexeme == "=":
		p.discard()
	default:
		return Node{}, &scanner.TokenError{Token: tok, Err: scanner.ErrUnexpectedTokenValue}
	}

	node := Node{Kind: PropertyNode, Name: nameTok.Lexeme, Pos: nameTok, IsArray: isArray}
	if isArray {
		arr, err := p.array()
		if err != nil {
			return Node{}, err
		}
		node.Array = arr
	} else {
		raw, err := p.scalarUntil(scalarStopSet)
		if err != nil {
			return Node{}, err
		}
		node.RawValue = raw
	}
	if _, err := p.expect(symbolKind, ";"); err != nil {
		return Node{}, err
	}
	return node, nil
}

// array implements `array := '{' ( element ( (',' | ';') element )* )? '}'`.
func (p *Parser) array() (*ArrayValue, error) {
	if _, err := p.expect(symbolKind, "{"); err != nil {
		return nil, err
	}
	arr := &ArrayValue{}
	for {
		tok, ok, err := p.peek(true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnbalancedBrackets
		}
		if tok.Kind == scanner.Symbol && tok.Lexeme == "}" {
			p.discard()
			return arr, nil
		}
		el, err := p.element()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)

		tok, ok, err = p.peek(true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnbalancedBrackets
		}
		switch {
		case tok.Kind == scanner.Symbol && tok.Lexeme == "}":
			p.discard()
			return arr, nil
		case tok.Lexeme == "," || (tok.Kind == scanner.Symbol && tok.Lexeme == ";"):
			p.discard()
		default:
			return nil, &scanner.TokenError{Token: tok, Err: scanner.ErrUnexpectedTokenValue}
		}
	}
}

// element implements `element := array | scalar_until({',', ';', '}'})`.
func (p *Parser) element() (ArrayElement, error) {
	tok, ok, err := p.peek(true)
	if err != nil {
		return ArrayElement{}, err
	}
	if ok && tok.Kind == scanner.Symbol && tok.Lexeme == "{" {
		nested, err := p.array()
		if err != nil {
			return ArrayElement{}, err
		}
		return ArrayElement{IsArray: true, Nested: nested}, nil
	}
	raw, err := p.scalarUntil(scalarStopSet)
	if err != nil {
		return ArrayElement{}, err
	}
	return ArrayElement{Scalar: raw}, nil
}

// scalarUntil reads a whitespace-preserving character run up to, but not
// including, the first byte in stop (spec.md §4.4's scalar_until). Unlike
// the rest of the grammar it does not skip whitespace: whitespace between
// tokens is part of the scalar.
func (p *Parser) scalarUntil(stop map[byte]bool) (string, error) {
	var out strings.Builder
	for {
		tok, ok, err := p.peek(false)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrUnbalancedBrackets
		}
		if len(tok.Lexeme) == 1 && stop[tok.Lexeme[0]] {
			return strings.TrimSpace(out.String()), nil
		}
		p.discard()
		out.WriteString(tok.Lexeme)
	}
}

func isSpace(s string) bool {
	switch s {
	case " ", "\t", "\n", "\r", "\v", "\f":
		return true
	default:
		return false
	}
}
