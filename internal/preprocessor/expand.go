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
	"errors"
	"strings"
)

// ErrMacroArity is returned when a function-like macro is invoked with a
// different number of arguments than it declares.
var ErrMacroArity = errors.New("armaconfig: macro argument count mismatch")

// source is the minimal pull interface macro expansion needs. Both
// stream.Stack and the in-memory stringCursor used to walk a macro's own
// replacement text satisfy it, so the same argument-gathering and
// identifier-expansion logic works whether a function-like macro is invoked
// from raw source or from inside another macro's body.
type source interface {
	Peek(n int) string
	Get(n int) string
	AtEnd() bool
}

// stringCursor adapts a plain string to the source interface, used to walk
// a macro's stored replacement text.
type stringCursor struct {
	s   string
	pos int
}

func newStringCursor(s string) *stringCursor { return &stringCursor{s: s} }

func (c *stringCursor) Peek(n int) string {
	end := c.pos + n
	if end > len(c.s) {
		end = len(c.s)
	}
	if c.pos >= len(c.s) {
		return ""
	}
	return c.s[c.pos:end]
}

func (c *stringCursor) Get(n int) string {
	out := c.Peek(n)
	c.pos += len(out)
	return out
}

func (c *stringCursor) AtEnd() bool { return c.pos >= len(c.s) }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func readIdentifier(src source) string {
	var out strings.Builder
	for {
		next := src.Peek(1)
		if len(next) == 0 || !isIdentCont(next[0]) {
			return out.String()
		}
		out.WriteString(src.Get(1))
	}
}

// expandSource drives identifier expansion over src until it is exhausted,
// writing the result to out: identifiers that name macros are expanded via
// expandIdentifier, everything else is copied verbatim, and ## and # are not
// interpreted. gatherArgs and expandBody run their own loops instead.
func (p *Preprocessor) expandSource(src source, out *strings.Builder) error {
	for !src.AtEnd() {
		next := src.Peek(1)
		c := next[0]
		if isIdentStart(c) {
			ident := readIdentifier(src)
			expanded, err := p.expandIdentifier(ident, src)
			if err != nil {
				return err
			}
			out.WriteString(expanded)
			continue
		}
		out.WriteString(src.Get(1))
	}
	return nil
}

// expandIdentifier resolves a single identifier already read from src: if it
// names a macro, consumes any following call arguments from src (for
// function-like macros) and returns the fully expanded replacement;
// otherwise returns the identifier unchanged.
func (p *Preprocessor) expandIdentifier(ident string, src source) (string, error) {
	m, ok := p.macros.Lookup(ident)
	if !ok {
		return ident, nil
	}
	if !m.IsFunctionLike {
		return p.expandBody(m, nil)
	}
	if src.Peek(1) != "(" {
		// A function-like macro name not followed by '(' is left verbatim.
		return ident, nil
	}
	src.Get(1) // consume '('
	args, err := p.gatherArgs(src)
	if err != nil {
		return "", err
	}
	if len(args) != len(m.Params) {
		return "", ErrMacroArity
	}
	return p.expandBody(m, args)
}

// gatherArgs reads comma-separated, paren-balanced argument text up to and
// including the matching ')', expanding any macro invocations found inside
// each argument before it is substituted (spec.md §4.2: "identifiers inside
// arguments are expanded before substitution").
func (p *Preprocessor) gatherArgs(src source) ([]string, error) {
	var args []string
	var cur strings.Builder
	depth := 0
	for {
		if src.AtEnd() {
			return nil, ErrEndOfInputDuringMacroCall
		}
		next := src.Peek(1)
		c := next[0]
		switch {
		case c == '(':
			depth++
			cur.WriteString(src.Get(1))
		case c == ')':
			if depth == 0 {
				src.Get(1)
				args = append(args, cur.String())
				return args, nil
			}
			depth--
			cur.WriteString(src.Get(1))
		case c == ',' && depth == 0:
			src.Get(1)
			args = append(args, cur.String())
			cur.Reset()
		case isIdentStart(c):
			ident := readIdentifier(src)
			expanded, err := p.expandIdentifier(ident, src)
			if err != nil {
				return nil, err
			}
			cur.WriteString(expanded)
		default:
			cur.WriteString(src.Get(1))
		}
	}
}

// expandBody substitutes args for m's parameters within m's replacement
// text, handling ## pasting and # stringizing, then returns the fully
// expanded text (recursively expanding any macro invocations it produces,
// mirroring original_source/armaconfig/preprocessor.py's Define.__call__).
func (p *Preprocessor) expandBody(m *Macro, args []string) (string, error) {
	param := func(name string) (string, bool) {
		for i, p := range m.Params {
			if p == name {
				return args[i], true
			}
		}
		return "", false
	}

	cur := newStringCursor(m.Body)
	var out strings.Builder
	for !cur.AtEnd() {
		next := cur.Peek(1)
		c := next[0]
		switch {
		case isIdentStart(c):
			text, joined, err := p.readPastedIdentifier(cur, param)
			if err != nil {
				return "", err
			}
			if joined {
				out.WriteString(text)
				continue
			}
			expanded, err := p.expandIdentifier(text, cur)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
		case c == '#' && cur.Peek(2) != "##":
			cur.Get(1)
			fragment := readStringizeFragment(cur, param)
			out.WriteByte('"')
			out.WriteString(strings.ReplaceAll(fragment, `"`, `""`))
			out.WriteByte('"')
		default:
			out.WriteString(cur.Get(1))
		}
	}
	return out.String(), nil
}

// readPastedIdentifier reads one identifier (substituting a parameter
// reference with its argument text) and then repeatedly extends it across
// any "##" token-pasting operators, per spec.md §4.2 and §9 (pasting means
// "paste next identifier across whitespace-free boundary"). A "###" is a
// literal '#' followed by pasting. joined reports whether any pasting
// occurred, in which case the result is emitted verbatim without a
// macro-table lookup.
func (p *Preprocessor) readPastedIdentifier(cur *stringCursor, param func(string) (string, bool)) (text string, joined bool, err error) {
	ident := readIdentifier(cur)
	if v, ok := param(ident); ok {
		text = v
	} else {
		text = ident
	}

	for {
		if cur.Peek(2) != "##" {
			return text, joined, nil
		}
		cur.Get(2)
		joined = true
		if cur.Peek(1) == "#" {
			cur.Get(1)
			text += "#"
		}
		if cur.AtEnd() || !isIdentStart(cur.Peek(1)[0]) {
			return text, joined, nil
		}
		next := readIdentifier(cur)
		if v, ok := param(next); ok {
			text += v
		} else {
			text += next
		}
	}
}

// readStringizeFragment reads the single following identifier-or-parameter
// reference for # stringizing (spec.md §4.2: "wrap the fragment as a quoted
// string"). Non-identifier characters immediately after # are stringized
// verbatim, one at a time, to stay defined even outside strict C grammar.
func readStringizeFragment(cur *stringCursor, param func(string) (string, bool)) string {
	if cur.AtEnd() {
		return ""
	}
	if !isIdentStart(cur.Peek(1)[0]) {
		return cur.Get(1)
	}
	ident := readIdentifier(cur)
	if v, ok := param(ident); ok {
		return v
	}
	return ident
}
