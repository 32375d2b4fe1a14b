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
	"iter"
	"strconv"
	"strings"

	"github.com/arma3tools/armaconfig/internal/parser"
)

// decodeBody drives nodes (a class body's node stream) into top, pushing a
// new Class onto the ancestor chain for each CLASS node and resolving its
// inheritance reference against that chain (spec.md §4.5).
func decodeBody(top *Class, nodes iter.Seq2[parser.Node, error]) error {
	seenKeys := map[string]bool{}
	for node, err := range nodes {
		if err != nil {
			return wrapSyntaxError(node.Pos, err)
		}
		norm := strings.ToLower(node.Name)
		if seenKeys[norm] {
			return wrapSyntaxError(node.Pos, ErrDuplicateKey)
		}
		seenKeys[norm] = true

		switch node.Kind {
		case parser.ClassNode:
			var inherits *Class
			if node.Inherits != "" {
				ref, ok := resolveInheritsRef(top, node.Inherits)
				if !ok {
					return wrapSyntaxError(node.Pos, ErrUnresolvedInheritance)
				}
				inherits = ref
			}
			child := NewClass(node.Name, top, inherits)
			top.SetClass(node.Name, child)
			if err := decodeBody(child, node.Body); err != nil {
				return err
			}
		case parser.PropertyNode:
			var v Value
			if node.IsArray {
				v = decodeArray(node.Array)
			} else {
				v = coerceScalar(node.RawValue)
			}
			top.SetValue(node.Name, v)
		}
	}
	return nil
}

// decodeArray converts a parsed array into a Value, recursing into nested
// arrays and dropping elements whose stringified form is whitespace-only
// (spec.md §4.5 "Value coercion").
func decodeArray(arr *parser.ArrayValue) Value {
	if arr == nil {
		return List(nil)
	}
	out := make([]Value, 0, len(arr.Elements))
	for _, el := range arr.Elements {
		if el.IsArray {
			out = append(out, decodeArray(el.Nested))
			continue
		}
		if strings.TrimSpace(el.Scalar) == "" {
			continue
		}
		out = append(out, coerceScalar(el.Scalar))
	}
	return List(out)
}

// coerceScalar implements spec.md §4.5's scalar coercion rule, applied in
// order: trim, true/false word, quoted string, number, else string.
func coerceScalar(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		inner := trimmed[1 : len(trimmed)-1]
		return String(strings.ReplaceAll(inner, `""`, `"`))
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if i := int64(f); float64(i) == f {
			return Int(i)
		}
		return Float(f)
	}
	return String(trimmed)
}
