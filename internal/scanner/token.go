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

// Package scanner turns a preprocessed character stream into a lazy
// sequence of tokens classified as IDENTIFIER, SYMBOL, or UNSPECIFIED.
package scanner

import (
	"fmt"

	"github.com/arma3tools/armaconfig/internal/stream"
)

// Kind classifies a Token.
type Kind int

const (
	// Identifier is a letter-or-underscore run followed by alnum/underscore.
	Identifier Kind = iota
	// Symbol is one of "= ; { } [ ] :".
	Symbol
	// Unspecified is a single character that is neither of the above,
	// including whitespace and stray punctuation.
	Unspecified
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "IDENTIFIER"
	case Symbol:
		return "SYMBOL"
	case Unspecified:
		return "UNSPECIFIED"
	default:
		return "UNKNOWN"
	}
}

// symbolSet is the fixed set of single-character symbols recognized by the
// grammar (spec.md §3 "Token").
var symbolSet = map[byte]bool{
	'=': true, ';': true, '{': true, '}': true, '[': true, ']': true, ':': true,
}

// IsSymbolByte reports whether b is one of the grammar's symbol characters.
func IsSymbolByte(b byte) bool { return symbolSet[b] }

// Token is a single lexical unit with its originating position.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    stream.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}
