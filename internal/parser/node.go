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

// Package parser implements the recursive-descent grammar described in
// spec.md §4.4: class declarations with bodies and property assignments
// (scalar or array-valued), produced as a lazy sequence of nodes.
package parser

import (
	"iter"

	"github.com/arma3tools/armaconfig/internal/scanner"
)

// NodeKind discriminates the Node sum type.
type NodeKind int

const (
	// ClassNode declares a (possibly inheriting) nested class with a body.
	ClassNode NodeKind = iota
	// PropertyNode assigns a scalar or array value to a name.
	PropertyNode
)

// Node is a single parsed statement. For ClassNode, Body yields the class's
// own statements lazily; for PropertyNode, RawValue and IsArray describe
// the unparsed value (coercion happens in the decoder, spec.md §4.5).
type Node struct {
	Kind     NodeKind
	Name     string
	Pos      scanner.Token // token the node started at, for error reporting
	Inherits string               // ClassNode only; "" if no ": BASE" clause
	Body     iter.Seq2[Node, error] // ClassNode only

	IsArray  bool        // PropertyNode only
	RawValue string      // PropertyNode only, scalar form (IsArray == false)
	Array    *ArrayValue // PropertyNode only, array form (IsArray == true)
}

// ArrayValue is a parsed `{ ... }` array: each element is either a nested
// array or a raw scalar run, matching the grammar's recursive `element`
// production.
type ArrayValue struct {
	Elements []ArrayElement
}

// ArrayElement is one element of an ArrayValue: exactly one of Scalar or
// Nested is meaningful, selected by IsArray.
type ArrayElement struct {
	IsArray bool
	Scalar  string
	Nested  *ArrayValue
}
