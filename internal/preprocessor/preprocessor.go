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
	"fmt"
	"strings"

	"github.com/arma3tools/armaconfig/internal/stream"
)

var (
	// ErrEndOfInput mirrors stream.ErrEndOfInput at the preprocessor layer.
	ErrEndOfInput = stream.ErrEndOfInput
	// ErrEndOfInputDuringMacroCall is end-of-input reached while still
	// collecting a function-like macro's argument list.
	ErrEndOfInputDuringMacroCall = errors.New("armaconfig: end of input inside macro argument list")
	// ErrUnterminatedString is end-of-input reached inside a string literal.
	ErrUnterminatedString = errors.New("armaconfig: unterminated string literal")
	// ErrUnterminatedComment is end-of-input reached inside a block comment.
	ErrUnterminatedComment = errors.New("armaconfig: unterminated block comment")
	// ErrUnexpectedDirective is an unknown or misplaced preprocessor directive.
	ErrUnexpectedDirective = errors.New("armaconfig: unexpected preprocessor directive")
	// ErrNestedConditional is a #ifdef/#ifndef inside another (unsupported,
	// spec.md §3 "Conditional state").
	ErrNestedConditional = errors.New("armaconfig: nested #ifdef/#ifndef is not supported")
)

// Options configures the preprocessor, grounded on cppConfig in
// language/cpp/config.go: a small mutable options struct with a default
// constructor.
type Options struct {
	// IncludeComments, when true, preserves comments in the output stream
	// as a single space rather than eliding them entirely.
	IncludeComments bool
	// Disabled bypasses directive/macro interpretation entirely: every
	// character is emitted verbatim, including '#' and comment markers
	// (spec.md §6 Load's preprocess=false).
	Disabled bool
}

// DefaultOptions returns the preprocessor's zero-value defaults (spec.md §6:
// include_comments defaults to false).
func DefaultOptions() Options {
	return Options{}
}

// conditional tracks the single level of #ifdef/#ifndef state the dialect
// supports (spec.md §3).
type conditional struct {
	suppress      bool
	inConditional bool
	tookBranch    bool // true once the #ifdef or its #else has been entered
}

// Preprocessor consumes a stream.Stack and exposes a transformed character
// stream to the scanner: directives are interpreted, macros substituted,
// comments elided (or blanked to a single space).
type Preprocessor struct {
	stack   *stream.Stack
	macros  *Table
	opts    Options
	cond    conditional
	pending []byte // characters from a macro expansion not yet drained
}

// New constructs a Preprocessor reading from stack with the given macro
// table (nil creates an empty one) and options.
func New(stack *stream.Stack, macros *Table, opts Options) *Preprocessor {
	if macros == nil {
		macros = NewTable()
	}
	return &Preprocessor{stack: stack, macros: macros, opts: opts}
}

// Macros returns the live macro table, so callers can seed definitions
// before the first Next call.
func (p *Preprocessor) Macros() *Table {
	return p.macros
}

// Pos returns the current position in the underlying stream stack.
func (p *Preprocessor) Pos() stream.Position {
	return p.stack.Pos()
}

// Next returns the next post-preprocessing character, or ok=false at
// end-of-input. It mirrors spec.md §4.2's next_char(): directives are
// absorbed and yield nothing; everything else is emitted verbatim or after
// macro expansion.
func (p *Preprocessor) Next() (ch byte, ok bool, err error) {
	for {
		if len(p.pending) > 0 {
			ch = p.pending[0]
			p.pending = p.pending[1:]
			return ch, true, nil
		}
		out, err := p.step()
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return 0, false, nil
			}
			return 0, false, err
		}
		if out == "" {
			continue
		}
		p.pending = []byte(out)
	}
}

// step consumes exactly one "unit" of input (one raw character, one comment,
// one directive, or one identifier's worth of macro expansion) and returns
// the text it produces. An empty string with a nil error means "produced no
// output, try again" (a directive, or a suppressed line).
func (p *Preprocessor) step() (string, error) {
	if p.stack.AtEnd() {
		return "", ErrEndOfInput
	}
	c := p.stack.Peek(1)[0]

	if p.opts.Disabled {
		p.stack.Get(1)
		return c2s(c), nil
	}

	switch {
	case c == '/' && p.stack.Peek(2) == "//":
		return p.readLineComment()
	case c == '/' && p.stack.Peek(2) == "/*":
		return p.readBlockComment()
	case c == '#':
		if err := p.handleDirective(); err != nil {
			return "", err
		}
		return "", nil
	case isIdentStart(c):
		p.stack.Get(1)
		ident := c2s(c) + p.stack.FindWhile(isIdentByte)
		if p.cond.suppress {
			return "", nil
		}
		expanded, err := p.expandIdentifier(ident, p.stack)
		if err != nil {
			return "", err
		}
		return expanded, nil
	default:
		p.stack.Get(1)
		if p.cond.suppress {
			return "", nil
		}
		return c2s(c), nil
	}
}

func isIdentByte(b byte) bool { return isIdentCont(b) }

func c2s(c byte) string { return string([]byte{c}) }

// readLineComment consumes a "//" comment up to and including the
// terminating newline (spec.md §4.2: "to \n, inclusive"), so the newline is
// never re-emitted by a later step() call.
func (p *Preprocessor) readLineComment() (string, error) {
	p.stack.Get(2) // consume "//"
	p.stack.FindWhile(func(b byte) bool { return b != '\n' })
	if !p.stack.AtEnd() {
		p.stack.Get(1) // consume the newline itself
	}
	if p.cond.suppress {
		return "", nil
	}
	if p.opts.IncludeComments {
		return " ", nil
	}
	return "", nil
}

func (p *Preprocessor) readBlockComment() (string, error) {
	p.stack.Get(2) // consume "/*"
	_, err := p.stack.FindDelim("*/", true)
	if err != nil {
		return "", ErrUnterminatedComment
	}
	if p.cond.suppress {
		return "", nil
	}
	if p.opts.IncludeComments {
		return " ", nil
	}
	return "", nil
}

// readStringLiteral reads a double-quoted string starting at the opening
// quote (already consumed by the caller) up to the next unescaped quote.
// The Arma escape for an embedded quote is a doubled "" (spec.md §4.2),
// which is retained doubled in the returned text; callers that need the
// decoded value un-double it themselves (spec.md §4.5 coercion / §4.6
// encoding keep the doubling symmetric).
func (p *Preprocessor) readStringLiteral() (string, error) {
	var out strings.Builder
	out.WriteByte('"')
	for {
		if p.stack.AtEnd() {
			return "", ErrUnterminatedString
		}
		next := p.stack.Peek(1)
		if next == "\"" {
			p.stack.Get(1)
			if p.stack.Peek(1) == "\"" {
				p.stack.Get(1)
				out.WriteString(`""`)
				continue
			}
			out.WriteByte('"')
			return out.String(), nil
		}
		out.WriteString(p.stack.Get(1))
	}
}

// wrapDirectiveError attaches the current position to a directive-handling
// error for diagnostics (spec.md §7: errors carry the offending token and
// position; directive errors carry position since there's no single token).
func (p *Preprocessor) wrapDirectiveError(err error) error {
	return fmt.Errorf("%s: %w", p.stack.Pos(), err)
}
