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

// Package armaconfig loads and dumps configuration documents in the Arma 3
// config dialect: a C-like declarative language with a C-style
// preprocessor, case-insensitive ordered classes, and class inheritance.
package armaconfig

// ValueKind discriminates the Value sum type.
type ValueKind int

const (
	StringValue ValueKind = iota
	IntValue
	FloatValue
	BoolValue
	ListValue
)

// Value is a coerced scalar or a heterogeneous list of the same (spec.md §3
// "Value node"). Exactly one field is meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Flt  float64
	Bool bool
	List []Value
}

// String returns a Value holding s.
func String(s string) Value { return Value{Kind: StringValue, Str: s} }

// Int returns a Value holding i.
func Int(i int64) Value { return Value{Kind: IntValue, Int: i} }

// Float returns a Value holding f.
func Float(f float64) Value { return Value{Kind: FloatValue, Flt: f} }

// Bool returns a Value holding b.
func Bool(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// List returns a Value holding a list of vs.
func List(vs []Value) Value { return Value{Kind: ListValue, List: vs} }

// Any unwraps v into a plain Go value: string, int64, float64, bool, or
// []any for a list — the shape produced by (*Class).ToMap.
func (v Value) Any() any {
	switch v.Kind {
	case StringValue:
		return v.Str
	case IntValue:
		return v.Int
	case FloatValue:
		return v.Flt
	case BoolValue:
		return v.Bool
	case ListValue:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = e.Any()
		}
		return out
	default:
		return nil
	}
}

// ValueFromAny coerces a plain Go value into a Value, for Dump's mapping
// input and FromMap. ErrUnsupportedType is returned for anything
// outside string/int/float/bool/bool/list-of-same (spec.md §4.6: "unknown
// types are a fatal type error").
func ValueFromAny(v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case []any:
		out := make([]Value, len(x))
		for i, e := range x {
			ev, err := ValueFromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = ev
		}
		return List(out), nil
	case []Value:
		return List(x), nil
	default:
		return Value{}, ErrUnsupportedType
	}
}
