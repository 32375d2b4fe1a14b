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

package preprocessor

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma3tools/armaconfig/internal/stream"
)

func drain(t *testing.T, p *Preprocessor) string {
	t.Helper()
	var out strings.Builder
	for {
		ch, ok, err := p.Next()
		require.NoError(t, err)
		if !ok {
			return out.String()
		}
		out.WriteByte(ch)
	}
}

func newPreprocessor(src string) *Preprocessor {
	s := stream.NewStack(nil)
	s.Push(stream.AnonymousUnit, strings.NewReader(src), "", nil)
	return New(s, nil, DefaultOptions())
}

func TestObjectLikeMacroExpansion(t *testing.T) {
	p := newPreprocessor("#define FOO 42\nvalue = FOO;")
	assert.Equal(t, "value = 42;", drain(t, p))
}

func TestFunctionLikeMacroExpansion(t *testing.T) {
	p := newPreprocessor("#define ADD(a,b) a+b\nx = ADD(1,2);")
	assert.Equal(t, "x = 1+2;", drain(t, p))
}

func TestFunctionLikeMacroWithoutCallIsVerbatim(t *testing.T) {
	p := newPreprocessor("#define ADD(a,b) a+b\nx = ADD;")
	assert.Equal(t, "x = ADD;", drain(t, p))
}

func TestMacroArityMismatch(t *testing.T) {
	p := newPreprocessor("#define ADD(a,b) a+b\nx = ADD(1);")
	_, err := drainErr(p)
	assert.ErrorIs(t, err, ErrMacroArity)
}

func drainErr(p *Preprocessor) (string, error) {
	var out strings.Builder
	for {
		ch, ok, err := p.Next()
		if err != nil {
			return out.String(), err
		}
		if !ok {
			return out.String(), nil
		}
		out.WriteByte(ch)
	}
}

func TestTokenPastingJoinsIdentifiers(t *testing.T) {
	p := newPreprocessor("#define CAT(a,b) a##b\nx = CAT(foo,bar);")
	assert.Equal(t, "x = foobar;", drain(t, p))
}

func TestTripleHashIsLiteralHashThenPaste(t *testing.T) {
	p := newPreprocessor("#define CAT(a,b) a###b\nx = CAT(foo,bar);")
	assert.Equal(t, "x = foo#bar;", drain(t, p))
}

func TestStringizing(t *testing.T) {
	p := newPreprocessor("#define STR(a) #a\nx = STR(hello);")
	assert.Equal(t, `x = "hello";`, drain(t, p))
}

func TestRecursiveMacroExpansionOfSubstitutedText(t *testing.T) {
	p := newPreprocessor("#define BAR 7\n#define FOO BAR\nx = FOO;")
	assert.Equal(t, "x = 7;", drain(t, p))
}

func TestUndef(t *testing.T) {
	p := newPreprocessor("#define FOO 1\n#undef FOO\nx = FOO;")
	assert.Equal(t, "x = FOO;", drain(t, p))
}

func TestIfdefTakenBranch(t *testing.T) {
	p := newPreprocessor("#define FOO\n#ifdef FOO\nyes\n#else\nno\n#endif\n")
	assert.Equal(t, "yes\n", drain(t, p))
}

func TestIfdefElseBranch(t *testing.T) {
	p := newPreprocessor("#ifdef FOO\nyes\n#else\nno\n#endif\n")
	assert.Equal(t, "no\n", drain(t, p))
}

func TestIfndef(t *testing.T) {
	p := newPreprocessor("#ifndef FOO\nno foo\n#endif\n")
	assert.Equal(t, "no foo\n", drain(t, p))
}

func TestNestedConditionalIsFatal(t *testing.T) {
	p := newPreprocessor("#ifdef FOO\n#ifdef BAR\nx\n#endif\n#endif\n")
	_, err := drainErr(p)
	assert.ErrorIs(t, err, ErrNestedConditional)
}

func TestLineCommentElided(t *testing.T) {
	p := newPreprocessor("a // comment\nb")
	assert.Equal(t, "a b", drain(t, p))
}

func TestLineCommentPreservedAsSpace(t *testing.T) {
	s := stream.NewStack(nil)
	s.Push(stream.AnonymousUnit, strings.NewReader("a // comment\nb"), "", nil)
	p := New(s, nil, Options{IncludeComments: true})
	assert.Equal(t, "a  b", drain(t, p))
}

func TestBlockCommentElided(t *testing.T) {
	p := newPreprocessor("a /* comment\nspanning lines */ b")
	assert.Equal(t, "a  b", drain(t, p))
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	p := newPreprocessor("a /* never closed")
	_, err := drainErr(p)
	assert.ErrorIs(t, err, ErrUnterminatedComment)
}

func TestIncludeSplicesChildUnit(t *testing.T) {
	s := stream.NewStack(func(path string) (io.ReadCloser, error) {
		if path == "child.hpp" {
			return io.NopCloser(strings.NewReader("child\n")), nil
		}
		return nil, fmt.Errorf("unexpected #include path %q", path)
	})
	s.Push(stream.AnonymousUnit, strings.NewReader(`#include "child.hpp"`+"\ntail"), "", nil)
	p := New(s, nil, DefaultOptions())
	assert.Equal(t, "child\ntail", drain(t, p))
}
