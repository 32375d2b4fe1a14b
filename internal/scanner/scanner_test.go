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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma3tools/armaconfig/internal/preprocessor"
	"github.com/arma3tools/armaconfig/internal/stream"
)

func newScanner(t *testing.T, src string) *Scanner {
	t.Helper()
	s := stream.NewStack(nil)
	s.Push(stream.AnonymousUnit, strings.NewReader(src), "", nil)
	pp := preprocessor.New(s, nil, preprocessor.DefaultOptions())
	return New(pp)
}

func allTokens(t *testing.T, sc *Scanner) []Token {
	t.Helper()
	var out []Token
	for {
		tok, ok, err := sc.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestScannerClassifiesIdentifierSymbolUnspecified(t *testing.T) {
	sc := newScanner(t, "foo = 1;")
	toks := allTokens(t, sc)

	want := []struct {
		kind   Kind
		lexeme string
	}{
		{Identifier, "foo"},
		{Unspecified, " "},
		{Symbol, "="},
		{Unspecified, " "},
		{Unspecified, "1"},
		{Symbol, ";"},
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, toks[i].Kind, "token %d", i)
		assert.Equal(t, w.lexeme, toks[i].Lexeme, "token %d", i)
	}
}

func TestScannerIdentifierRunDoesNotSwallowFollowingSymbol(t *testing.T) {
	sc := newScanner(t, "abc123{")
	toks := allTokens(t, sc)
	require.Len(t, toks, 2)
	assert.Equal(t, Token{Kind: Identifier, Lexeme: "abc123"}, stripPos(toks[0]))
	assert.Equal(t, Token{Kind: Symbol, Lexeme: "{"}, stripPos(toks[1]))
}

func stripPos(t Token) Token {
	t.Pos = stream.Position{}
	return t
}

func TestNextTokenSkipsWhitespace(t *testing.T) {
	sc := newScanner(t, "   foo")
	kind := Identifier
	tok, err := sc.NextToken(true, &kind)
	require.NoError(t, err)
	assert.Equal(t, "foo", tok.Lexeme)
}

func TestNextTokenExpectKindMismatch(t *testing.T) {
	sc := newScanner(t, "{")
	kind := Identifier
	_, err := sc.NextToken(true, &kind)
	assert.ErrorIs(t, err, ErrUnexpectedTokenKind)
}

func TestNextTokenExpectValueMismatch(t *testing.T) {
	sc := newScanner(t, "}")
	kind := Symbol
	_, err := sc.NextToken(true, &kind, "{")
	assert.ErrorIs(t, err, ErrUnexpectedTokenValue)
}

func TestSequenceReadsMultipleTokens(t *testing.T) {
	sc := newScanner(t, "class foo {")
	toks, err := sc.Sequence(3, true,
		[]Kind{Identifier, Identifier, Symbol},
		[][]string{{"class"}, nil, {"{"}},
	)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "class", toks[0].Lexeme)
	assert.Equal(t, "foo", toks[1].Lexeme)
	assert.Equal(t, "{", toks[2].Lexeme)
}
