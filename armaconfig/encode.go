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
	"slices"
	"strconv"
	"strings"

	"github.com/arma3tools/armaconfig/internal/collections"
)

// DumpOptions configures Dump (spec.md §6 "Dump").
type DumpOptions struct {
	// Indent, when positive, pretty-prints with Indent spaces per depth
	// level; zero means no whitespace between items.
	Indent int
	// IncludeSelf, when true and the input is a *Class, emits the root
	// class itself (`class NAME { ... };`) rather than just its body.
	IncludeSelf bool
}

// DefaultDumpOptions returns DumpOptions's zero-value defaults.
func DefaultDumpOptions() DumpOptions {
	return DumpOptions{}
}

// Dump encodes v — a *Class or a plain map[string]any — as Arma config text
// (spec.md §4.6 / §6).
func Dump(v any, opts DumpOptions) (string, error) {
	var root *Class
	switch x := v.(type) {
	case *Class:
		root = x
	case map[string]any:
		r, err := FromMap(AnonymousUnit, x)
		if err != nil {
			return "", err
		}
		root = r
	default:
		return "", ErrUnsupportedType
	}

	var out strings.Builder
	e := &encoder{opts: opts, out: &out}
	if opts.IncludeSelf {
		e.writeClassHeader(root)
		out.WriteByte('{')
		e.writeBody(root)
		e.newlineIndent()
		out.WriteString("};")
	} else {
		e.writeBody(root)
	}
	return out.String(), nil
}

type encoder struct {
	opts  DumpOptions
	out   *strings.Builder
	depth int
}

func (e *encoder) newlineIndent() {
	if e.opts.Indent <= 0 {
		return
	}
	e.out.WriteByte('\n')
	e.out.WriteString(strings.Repeat(" ", e.opts.Indent*e.depth))
}

func (e *encoder) writeClassHeader(c *Class) {
	e.out.WriteString("class ")
	e.out.WriteString(c.Name)
	if c.Inherits != nil {
		e.out.WriteString(" : ")
		e.out.WriteString(c.Inherits.Name)
	}
	e.out.WriteByte(' ')
}

// writeBody walks c's OWN entries in insertion order (not the
// inheritance-aware All — dump re-emits only what a class itself declares,
// matching the source text that produced it), using each member's original
// display name rather than its normalized storage key.
func (e *encoder) writeBody(c *Class) {
	e.depth++
	for _, m := range c.entries.All() {
		e.newlineIndent()
		if m.isClass {
			e.writeClassHeader(m.class)
			e.out.WriteByte('{')
			e.writeBody(m.class)
			e.newlineIndent()
			e.out.WriteString("};")
		} else {
			e.out.WriteString(m.displayName)
			if m.value.Kind == ListValue {
				e.out.WriteString("[]")
			}
			e.out.WriteString(" = ")
			e.writeValue(m.value)
			e.out.WriteByte(';')
		}
	}
	e.depth--
}

func (e *encoder) writeValue(v Value) {
	switch v.Kind {
	case StringValue:
		e.out.WriteByte('"')
		e.out.WriteString(strings.ReplaceAll(v.Str, `"`, `""`))
		e.out.WriteByte('"')
	case IntValue:
		e.out.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatValue:
		e.out.WriteString(strconv.FormatFloat(v.Flt, 'g', -1, 64))
	case BoolValue:
		// Asymmetric by design (spec.md §9): the decoder only recognizes
		// the words true/false, but the encoder always emits 1/0.
		if v.Bool {
			e.out.WriteByte('1')
		} else {
			e.out.WriteByte('0')
		}
	case ListValue:
		e.out.WriteByte('{')
		e.depth++
		for isLast, el := range collections.TagLast(slices.Values(v.List)) {
			e.newlineIndent()
			e.writeValue(el)
			if !isLast {
				e.out.WriteByte(',')
			}
		}
		e.depth--
		e.newlineIndent()
		e.out.WriteByte('}')
	}
}
