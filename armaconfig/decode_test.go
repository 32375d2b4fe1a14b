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

package armaconfig

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma3tools/armaconfig/internal/scanner"
)

func load(t *testing.T, src string) *Class {
	t.Helper()
	c, err := Load(strings.NewReader(src), AnonymousUnit, DefaultOptions())
	require.NoError(t, err)
	return c
}

// Scenario 1: inline #define.
func TestScenarioInlineDefine(t *testing.T) {
	c := load(t, "#define X 3\nproperty = X;")
	v, ok := c.Get("property")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int)
}

// Scenario 2: line-continuation inside a #define body.
func TestScenarioLineContinuation(t *testing.T) {
	c := load(t, "#define X \\\n    3\n\nval = X;")
	v, ok := c.Get("val")
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Int)
}

// Scenario 3: #ifdef/#else with X undefined at entry.
func TestScenarioIfdefElse(t *testing.T) {
	src := "#ifdef X\n#define Y 3\n#else\n#define Y 2\n#endif\n" +
		"#ifdef Y\n#define Z 1\n#else\n#define Z 2\n#endif\n" +
		"arr[] = {Y, Z};"
	c := load(t, src)
	v, ok := c.Get("arr")
	require.True(t, ok)
	require.Equal(t, ListValue, v.Kind)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(2), v.List[0].Int)
	assert.Equal(t, int64(1), v.List[1].Int)
}

// Scenario 4: X-macro expansion via ## token-pasting.
func TestScenarioXMacro(t *testing.T) {
	src := "#define LIST X(1) X(2) X(3)\n#define X(num) value_##num = num;\nLIST\n#undef X"
	c := load(t, src)

	for i, want := range []int64{1, 2, 3} {
		name := []string{"value_1", "value_2", "value_3"}[i]
		v, ok := c.Get(name)
		require.True(t, ok, "expected key %s", name)
		assert.Equal(t, want, v.Int)
	}
}

// Scenario 5: recursive array nesting, including an empty nested array,
// with a multi-word bareword scalar preserved.
func TestScenarioMultiDimArray(t *testing.T) {
	c := load(t, `multi[] = {1, {2, 3}, {{4, 5, 6 seven, {}}}};`)
	v, ok := c.Get("multi")
	require.True(t, ok)
	require.Equal(t, ListValue, v.Kind)
	require.Len(t, v.List, 3)

	assert.Equal(t, int64(1), v.List[0].Int)

	require.Equal(t, ListValue, v.List[1].Kind)
	assert.Equal(t, []int64{2, 3}, []int64{v.List[1].List[0].Int, v.List[1].List[1].Int})

	inner := v.List[2]
	require.Equal(t, ListValue, inner.Kind)
	require.Len(t, inner.List, 1)
	innermost := inner.List[0]
	require.Equal(t, ListValue, innermost.Kind)
	require.Len(t, innermost.List, 4)
	assert.Equal(t, int64(4), innermost.List[0].Int)
	assert.Equal(t, int64(5), innermost.List[1].Int)
	assert.Equal(t, "6 seven", innermost.List[2].Str)
	require.Equal(t, ListValue, innermost.List[3].Kind)
	assert.Empty(t, innermost.List[3].List)
}

// Scenario 6: inheritance resolves base_property and iteration lists
// inherited keys before own keys.
func TestScenarioInheritance(t *testing.T) {
	src := `class _class { base_property[] = {"an array","with two elements"}; };
class inherited : _class { new_property = "this is a new property"; };`
	c := load(t, src)

	inherited, ok := c.GetClass("inherited")
	require.True(t, ok)

	v, ok := inherited.Get("base_property")
	require.True(t, ok)
	require.Len(t, v.List, 2)
	assert.Equal(t, "an array", v.List[0].Str)
	assert.Equal(t, "with two elements", v.List[1].Str)

	var names []string
	for e := range inherited.All() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"base_property", "new_property"}, names)
}

// Scenario 7: the four documented parse errors.
func TestScenarioErrors(t *testing.T) {
	t.Run("property missing = or []", func(t *testing.T) {
		_, err := Load(strings.NewReader(`prop };`), AnonymousUnit, DefaultOptions())
		require.Error(t, err)
		var tokErr *scanner.TokenError
		require.True(t, errors.As(err, &tokErr) || asSyntaxTokenErr(err, &tokErr))
		assert.ErrorIs(t, tokErr.Err, scanner.ErrUnexpectedTokenValue)
	})

	t.Run("class missing : or {", func(t *testing.T) {
		_, err := Load(strings.NewReader(`class test [property = 3;};`), AnonymousUnit, DefaultOptions())
		require.Error(t, err)
		var tokErr *scanner.TokenError
		require.True(t, asSyntaxTokenErr(err, &tokErr))
		assert.ErrorIs(t, tokErr.Err, scanner.ErrUnexpectedTokenValue)
	})

	t.Run("mismatched closing bracket", func(t *testing.T) {
		_, err := Load(strings.NewReader(`class test {property = 3;];`), AnonymousUnit, DefaultOptions())
		require.Error(t, err)
		var tokErr *scanner.TokenError
		require.True(t, asSyntaxTokenErr(err, &tokErr))
		assert.ErrorIs(t, tokErr.Err, scanner.ErrUnexpectedTokenKind)
	})

	t.Run("array value without braces", func(t *testing.T) {
		_, err := Load(strings.NewReader(`array[] = 1;`), AnonymousUnit, DefaultOptions())
		require.Error(t, err)
		var tokErr *scanner.TokenError
		require.True(t, asSyntaxTokenErr(err, &tokErr))
	})
}

// asSyntaxTokenErr rebuilds a *scanner.TokenError from a token-anchored
// *SyntaxError (wrapSyntaxError folds the TokenError's Token and Err into
// it), falling back to errors.As for any other error chain.
func asSyntaxTokenErr(err error, out **scanner.TokenError) bool {
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		if synErr.Token != nil {
			*out = &scanner.TokenError{Token: *synErr.Token, Err: synErr.Err}
			return true
		}
	}
	return errors.As(err, out)
}

// Scenario 8: doubled inner quotes decode to a single literal quote.
func TestScenarioStringEscapes(t *testing.T) {
	c := load(t, `escaped = "this ""string"" is ""escaped"".";`)
	v, ok := c.Get("escaped")
	require.True(t, ok)
	assert.Equal(t, `this "string" is "escaped".`, v.Str)
}

func TestBoundaryLoneSemicolonIsNoOp(t *testing.T) {
	c := load(t, `;`)
	assert.Equal(t, 0, c.Len())
}

func TestBoundaryEmptyClassBody(t *testing.T) {
	c := load(t, `class X {};`)
	child, ok := c.GetClass("X")
	require.True(t, ok)
	assert.Equal(t, 0, child.Len())
}

func TestBoundaryEmptyArray(t *testing.T) {
	c := load(t, `x[] = {};`)
	v, ok := c.Get("x")
	require.True(t, ok)
	require.Equal(t, ListValue, v.Kind)
	assert.Empty(t, v.List)
}

func TestBoundaryTrailingSeparatorInArray(t *testing.T) {
	c := load(t, `x[] = {1, 2,};`)
	v, ok := c.Get("x")
	require.True(t, ok)
	require.Len(t, v.List, 2)
	assert.Equal(t, int64(1), v.List[0].Int)
	assert.Equal(t, int64(2), v.List[1].Int)
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, err := Load(strings.NewReader(`a = 1; a = 2;`), AnonymousUnit, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUnresolvedInheritanceRejected(t *testing.T) {
	_, err := Load(strings.NewReader(`class X : NoSuchBase {};`), AnonymousUnit, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedInheritance)
}

func TestCoerceScalarTypes(t *testing.T) {
	c := load(t, "s = true;\nf = false;\ni = 42;\nfl = 1.5;\nwhole = 2.0;\nbare = hello world;\n")

	v, _ := c.Get("s")
	assert.Equal(t, true, v.Bool)
	v, _ = c.Get("f")
	assert.Equal(t, false, v.Bool)
	v, _ = c.Get("i")
	assert.Equal(t, int64(42), v.Int)
	v, _ = c.Get("fl")
	assert.Equal(t, 1.5, v.Flt)
	v, _ = c.Get("whole")
	assert.Equal(t, IntValue, v.Kind, "an integer-representable float coerces to Int")
	assert.Equal(t, int64(2), v.Int)
	v, _ = c.Get("bare")
	assert.Equal(t, "hello world", v.Str)
}

func TestPreprocessDisabledSkipsMacroExpansion(t *testing.T) {
	opts := DefaultOptions()
	opts.Preprocess = false
	opts.Macros = map[string]string{"X": "3"}
	c, err := Load(strings.NewReader("property = X;"), AnonymousUnit, opts)
	require.NoError(t, err)
	v, ok := c.Get("property")
	require.True(t, ok)
	assert.Equal(t, "X", v.Str, "with preprocessing disabled, X is scanned verbatim, never expanded")
}

func TestSeedMacro(t *testing.T) {
	opts := DefaultOptions()
	opts.Macros = map[string]string{"SCOPE": "2"}
	c := loadWithOpts(t, "scope = SCOPE;", opts)
	v, ok := c.Get("scope")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.Int)
}

func loadWithOpts(t *testing.T, src string, opts Options) *Class {
	t.Helper()
	c, err := Load(strings.NewReader(src), AnonymousUnit, opts)
	require.NoError(t, err)
	return c
}
