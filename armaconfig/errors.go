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
	"fmt"

	"github.com/arma3tools/armaconfig/internal/scanner"
	"github.com/arma3tools/armaconfig/internal/stream"
)

// SyntaxError wraps an error from the preprocessor, scanner, parser, or
// decoder with the position at which it was detected, per spec.md §7:
// "errors ... are wrapped with the offending token (position, unit,
// lexeme) and propagated to the caller."
type SyntaxError struct {
	Pos   stream.Position
	Token *scanner.Token // nil if the error wasn't token-anchored (e.g. a directive error)
	Err   error
}

func (e *SyntaxError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%s: %v (got %s)", e.Pos, e.Err, e.Token.Lexeme)
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// wrapSyntaxError attaches pos to err, unless err is already a *TokenError
// (from the scanner/parser) carrying its own more precise position.
func wrapSyntaxError(pos scanner.Token, err error) error {
	if tokErr, ok := err.(*scanner.TokenError); ok {
		tok := tokErr.Token
		return &SyntaxError{Pos: tok.Pos, Token: &tok, Err: tokErr.Err}
	}
	return &SyntaxError{Pos: pos.Pos, Err: err}
}
