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

// Package stream implements the pushdown character-source stack that sits
// at the bottom of the armaconfig pipeline: a stack of named readers, each
// tracking its own line/column position, that yields characters until the
// root source is exhausted.
package stream

import "fmt"

// Position is a 1-based line/column location within a named unit.
type Position struct {
	Line, Column int
	Unit         string
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Unit, p.Line, p.Column)
}

// advancedBy returns the position after consuming c, which must be a single
// character already read from the unit this position belongs to.
func (p Position) advancedBy(c byte) Position {
	if c == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// AnonymousUnit is the display name used for sources with no inherent name,
// e.g. an in-memory string or io.Reader (see original_source's
// DEFAULT_STREAM_NAME).
const AnonymousUnit = "anonymous"
