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
	"strings"

	"github.com/arma3tools/armaconfig/internal/stream"
)

// handleDirective consumes a '#' already peeked at the top of the stack,
// dispatches on the directive keyword, and mutates preprocessor state. It
// never produces output directly (spec.md §4.2: "After handling, yield
// nothing").
func (p *Preprocessor) handleDirective() error {
	p.stack.Get(1) // consume '#'
	p.skipInlineWhitespace()
	keyword := readIdentifier(p.stack)

	// #else / #endif are recognized even while suppressed, so a false
	// branch can re-enable output (spec.md §4.2).
	switch keyword {
	case "else":
		if !p.cond.inConditional {
			return p.wrapDirectiveError(ErrUnexpectedDirective)
		}
		p.cond.suppress = !p.cond.suppress
		p.consumeRestOfLine()
		return nil
	case "endif":
		if !p.cond.inConditional {
			return p.wrapDirectiveError(ErrUnexpectedDirective)
		}
		p.cond.suppress = false
		p.cond.inConditional = false
		p.consumeRestOfLine()
		return nil
	}

	if p.cond.suppress {
		// A #define, #undef or #include inside a suppressed branch is
		// consumed but otherwise ignored, including its own recursive
		// effects; a nested #ifdef/#ifndef or an unknown directive is still
		// an error (see skipSuppressedDirective).
		return p.skipSuppressedDirective(keyword)
	}

	switch keyword {
	case "define":
		return p.handleDefine() // consumes its own trailing newline
	case "undef":
		err := p.handleUndef()
		p.consumeRestOfLine()
		return err
	case "include":
		return p.handleInclude()
	case "ifdef", "ifndef":
		err := p.handleConditional(keyword)
		p.consumeRestOfLine()
		return err
	default:
		return p.wrapDirectiveError(ErrUnexpectedDirective)
	}
}

// consumeRestOfLine discards any trailing characters up to and including the
// next newline, so a directive's own line contributes no output regardless
// of which branch handled it.
func (p *Preprocessor) consumeRestOfLine() {
	p.stack.FindWhile(func(b byte) bool { return b != '\n' })
	if !p.stack.AtEnd() {
		p.stack.Get(1)
	}
}

// skipSuppressedDirective consumes the rest of a known directive's syntax
// without acting on it, so the stream stays aligned for the next directive.
func (p *Preprocessor) skipSuppressedDirective(keyword string) error {
	switch keyword {
	case "ifdef", "ifndef":
		return p.wrapDirectiveError(ErrNestedConditional)
	case "define", "undef", "include":
		p.consumeRestOfLine()
		return nil
	default:
		return p.wrapDirectiveError(ErrUnexpectedDirective)
	}
}

func (p *Preprocessor) skipInlineWhitespace() {
	p.stack.FindWhile(func(b byte) bool {
		return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r'
	})
}

// handleDefine implements spec.md §4.2's `define NAME [(p1,...,pk)]
// REPLACEMENT`.
func (p *Preprocessor) handleDefine() error {
	p.skipInlineWhitespace()
	name := readIdentifier(p.stack)

	isFunctionLike := false
	var params []string
	if p.stack.Peek(1) == "(" {
		isFunctionLike = true
		p.stack.Get(1)
	params:
		for {
			p.skipInlineWhitespace()
			if p.stack.Peek(1) == ")" {
				p.stack.Get(1)
				break
			}
			param := readIdentifier(p.stack)
			params = append(params, param)
			p.skipInlineWhitespace()
			switch p.stack.Peek(1) {
			case ",":
				p.stack.Get(1)
			case ")":
				p.stack.Get(1)
				break params
			default:
				return p.wrapDirectiveError(ErrUnexpectedDirective)
			}
		}
	}

	p.skipInlineWhitespace()
	body, err := p.readReplacementText()
	if err != nil {
		return err
	}

	p.macros.Define(&Macro{Name: name, Params: params, IsFunctionLike: isFunctionLike, Body: body})
	return nil
}

// readReplacementText reads characters up to end of logical line, folding
// "\\" + whitespace + "\n" continuations to nothing (spec.md §3 "Macro
// definition").
func (p *Preprocessor) readReplacementText() (string, error) {
	var out strings.Builder
	for {
		if p.stack.AtEnd() {
			return out.String(), nil
		}
		next := p.stack.Peek(1)
		switch next {
		case "\n":
			p.stack.Get(1)
			return out.String(), nil
		case "\\":
			rest := p.stack.Peek(64)
			trimmed := strings.TrimLeft(rest[1:], " \t\v\f\r")
			if strings.HasPrefix(trimmed, "\n") {
				p.stack.Advance(len(rest) - len(trimmed) + 1)
				continue
			}
			out.WriteString(p.stack.Get(1))
		default:
			out.WriteString(p.stack.Get(1))
		}
	}
}

func (p *Preprocessor) handleUndef() error {
	p.skipInlineWhitespace()
	name := readIdentifier(p.stack)
	p.macros.Undef(name)
	return nil
}

// handleInclude implements spec.md §4.2's `include PATH`.
func (p *Preprocessor) handleInclude() error {
	p.skipInlineWhitespace()
	raw, err := p.readIncludePath()
	if err != nil {
		return err
	}
	// The rest of the #include line must be consumed from the including
	// file before pushing the new frame, or it would be read from the
	// included file's content instead.
	p.consumeRestOfLine()
	resolved := stream.ResolveIncludePath(p.stack.CurrentDir(), raw)
	if err := p.stack.PushPath(resolved); err != nil {
		return p.wrapDirectiveError(err)
	}
	return nil
}

// readIncludePath reads a quoted ("...") or angle-bracket (<...>) include
// path and returns it with delimiters stripped.
func (p *Preprocessor) readIncludePath() (string, error) {
	open := p.stack.Peek(1)
	switch open {
	case `"`:
		p.stack.Get(1)
		quoted, err := p.readStringLiteral()
		if err != nil {
			return "", err
		}
		// quoted is `"`-delimited with any "" escapes doubled; #include
		// paths don't use the escape, so just strip the outer quotes.
		return strings.TrimSuffix(strings.TrimPrefix(quoted, `"`), `"`), nil
	case "<":
		p.stack.Get(1)
		path, err := untilByte(p.stack, '>')
		if err != nil {
			return "", err
		}
		p.stack.Get(1) // consume '>'
		return path, nil
	default:
		return "", p.wrapDirectiveError(ErrUnexpectedDirective)
	}
}

func untilByte(s source, delim byte) (string, error) {
	var out strings.Builder
	for {
		if s.AtEnd() {
			return "", ErrEndOfInput
		}
		next := s.Peek(1)
		if next[0] == delim {
			return out.String(), nil
		}
		out.WriteString(s.Get(1))
	}
}

// handleConditional implements spec.md §4.2's `ifdef NAME` / `ifndef NAME`.
func (p *Preprocessor) handleConditional(keyword string) error {
	if p.cond.inConditional {
		return p.wrapDirectiveError(ErrNestedConditional)
	}
	p.skipInlineWhitespace()
	name := readIdentifier(p.stack)
	defined := p.macros.IsDefined(name)
	if keyword == "ifndef" {
		defined = !defined
	}
	p.cond.suppress = !defined
	p.cond.inConditional = true
	return nil
}
