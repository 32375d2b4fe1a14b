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

// Package preprocessor implements the C-style macro preprocessor described
// in spec.md §4.2: object-like and function-like macros, token-pasting,
// stringizing, #include, #ifdef/#ifndef/#else/#endif, #undef, and comment
// elision. It consumes an internal/stream.Stack and exposes a transformed
// character stream to the scanner.
package preprocessor

// Macro is a single #define'd name. IsFunctionLike distinguishes an
// object-like macro (no parameter list, even an empty one) from a
// function-like macro declared with parentheses immediately after the name,
// per spec.md §3 "Macro definition".
type Macro struct {
	Name           string
	Params         []string
	IsFunctionLike bool
	Body           string // raw replacement characters, continuations already folded
}

// Table is the preprocessor's macro namespace. Redefinition overwrites
// silently; #undef of an unknown name is a no-op (spec.md §3).
type Table struct {
	macros map[string]*Macro
}

// NewTable returns an empty macro table.
func NewTable() *Table {
	return &Table{macros: make(map[string]*Macro)}
}

// Define installs or overwrites a macro definition.
func (t *Table) Define(m *Macro) {
	t.macros[m.Name] = m
}

// Undef removes a macro if present; a no-op otherwise.
func (t *Table) Undef(name string) {
	delete(t.macros, name)
}

// Lookup returns the macro named name, if defined.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// IsDefined reports whether name is currently #define'd.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.macros[name]
	return ok
}
