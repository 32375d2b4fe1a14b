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

package scanner

import (
	"errors"
	"fmt"

	"github.com/arma3tools/armaconfig/internal/preprocessor"
	"github.com/arma3tools/armaconfig/internal/stream"
)

// ErrUnexpectedTokenKind is returned when a token's kind does not match the
// set an expectation named.
var ErrUnexpectedTokenKind = errors.New("armaconfig: unexpected token kind")

// ErrUnexpectedTokenValue is returned when a token's kind matched but its
// lexeme did not match the expected set of values.
var ErrUnexpectedTokenValue = errors.New("armaconfig: unexpected token value")

// TokenError reports a scanning or grammar expectation failure at a specific
// token, so callers can report position and offending lexeme uniformly
// (spec.md §7: "errors ... are wrapped with the offending token").
type TokenError struct {
	Token Token
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %v (got %s)", e.Token.Pos, e.Err, e.Token)
}

func (e *TokenError) Unwrap() error { return e.Err }

// Scanner turns a preprocessor's character stream into tokens. It keeps a
// single-byte pushback buffer since identifier extension requires peeking
// one character past the run without losing it if it doesn't belong.
type Scanner struct {
	pp        *preprocessor.Preprocessor
	buffered  byte
	bufPos    stream.Position
	hasBuffer bool
}

// New wraps pp.
func New(pp *preprocessor.Preprocessor) *Scanner {
	return &Scanner{pp: pp}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// nextByte returns the next post-preprocessing byte, its position, and
// whether one was available, preferring any pushed-back byte first.
func (s *Scanner) nextByte() (byte, stream.Position, bool, error) {
	if s.hasBuffer {
		s.hasBuffer = false
		return s.buffered, s.bufPos, true, nil
	}
	pos := s.pp.Pos()
	ch, ok, err := s.pp.Next()
	if err != nil || !ok {
		return 0, pos, false, err
	}
	return ch, pos, true, nil
}

func (s *Scanner) pushback(b byte, pos stream.Position) {
	s.buffered = b
	s.bufPos = pos
	s.hasBuffer = true
}

// Next returns the next token, or ok=false at end-of-input.
func (s *Scanner) Next() (Token, bool, error) {
	ch, pos, ok, err := s.nextByte()
	if err != nil {
		return Token{}, false, err
	}
	if !ok {
		return Token{}, false, nil
	}

	if isIdentStart(ch) {
		lexeme := []byte{ch}
		for {
			next, nextPos, more, err := s.nextByte()
			if err != nil {
				return Token{}, false, err
			}
			if !more {
				break
			}
			if !isIdentCont(next) {
				s.pushback(next, nextPos)
				break
			}
			lexeme = append(lexeme, next)
		}
		return Token{Kind: Identifier, Lexeme: string(lexeme), Pos: pos}, true, nil
	}

	if IsSymbolByte(ch) {
		return Token{Kind: Symbol, Lexeme: string(ch), Pos: pos}, true, nil
	}

	return Token{Kind: Unspecified, Lexeme: string(ch), Pos: pos}, true, nil
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// NextToken wraps Next: if skipWS and the resulting token is whitespace
// UNSPECIFIED, it is discarded and the call retries. If expectKind is
// non-nil and doesn't match, or expectValues is non-empty and the lexeme
// isn't among them, a *TokenError is returned.
func (s *Scanner) NextToken(skipWS bool, expectKind *Kind, expectValues ...string) (Token, error) {
	for {
		tok, ok, err := s.Next()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{}, preprocessor.ErrEndOfInput
		}
		if skipWS && tok.Kind == Unspecified && isWhitespace(tok.Lexeme[0]) {
			continue
		}
		if expectKind != nil && tok.Kind != *expectKind {
			return tok, &TokenError{Token: tok, Err: ErrUnexpectedTokenKind}
		}
		if len(expectValues) > 0 && !contains(expectValues, tok.Lexeme) {
			return tok, &TokenError{Token: tok, Err: ErrUnexpectedTokenValue}
		}
		return tok, nil
	}
}

// Sequence reads n tokens via NextToken(skipWS, ...), applying the i-th
// element of kinds/values (if present) as that call's expectation.
func (s *Scanner) Sequence(n int, skipWS bool, kinds []Kind, values [][]string) ([]Token, error) {
	out := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		var kindPtr *Kind
		if i < len(kinds) {
			k := kinds[i]
			kindPtr = &k
		}
		var vals []string
		if i < len(values) {
			vals = values[i]
		}
		tok, err := s.NextToken(skipWS, kindPtr, vals...)
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func contains(vals []string, v string) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
