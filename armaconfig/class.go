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
	"errors"
	"iter"

	"github.com/arma3tools/armaconfig/internal/collections"
	"github.com/arma3tools/armaconfig/internal/stream"
)

// AnonymousUnit is the display name a root class takes when loaded from an
// unnamed source (re-exported from internal/stream for callers comparing
// against it).
const AnonymousUnit = stream.AnonymousUnit

// ErrUnresolvedInheritance is returned when a class's ": BASE" clause names
// a class not found in any ancestor's own entries.
var ErrUnresolvedInheritance = errors.New("armaconfig: unresolved inheritance reference")

// ErrDuplicateKey is returned when the same key is declared twice in one
// class body.
var ErrDuplicateKey = errors.New("armaconfig: duplicate key in class body")

// ErrUnsupportedType is returned by ValueFromAny/FromMap for a Go value
// outside string/int/float/bool/list-of-same.
var ErrUnsupportedType = errors.New("armaconfig: unsupported value type")

// member is one child of a Class: either a nested Class or a Value, with
// its original-case display name preserved alongside the case-insensitive
// storage key (spec.md §9: "preserve original casing ... as display names").
type member struct {
	displayName string
	isClass     bool
	class       *Class
	value       Value
}

// Class is a named, ordered, case-insensitive mapping of keys to children,
// with optional inheritance and a non-owning parent back-reference
// (spec.md §3 "Config node").
type Class struct {
	Name     string
	Inherits *Class
	Parent   *Class
	entries  *collections.OrderedMap[*member]
}

// NewClass returns an empty class named name with the given parent and
// inherits links (either may be nil).
func NewClass(name string, parent, inherits *Class) *Class {
	return &Class{Name: name, Parent: parent, Inherits: inherits, entries: collections.NewOrderedMap[*member]()}
}

// SetValue attaches a scalar/list value under name, case-insensitively.
// Overwrites a prior entry under the same key.
func (c *Class) SetValue(name string, v Value) {
	c.entries.Set(name, &member{displayName: name, value: v})
}

// SetClass attaches a nested class under name, case-insensitively.
func (c *Class) SetClass(name string, child *Class) {
	c.entries.Set(name, &member{displayName: name, isClass: true, class: child})
}

// Has reports whether key is present as an OWN entry (not checking
// inheritance), case-insensitively.
func (c *Class) Has(key string) bool {
	return c.entries.Has(key)
}

// Delete removes key if present as an own entry (spec.md §13: supplements
// the original's Config.Pop, dropped from the public round-trip semantics
// but kept as explicit mutation support).
func (c *Class) Delete(key string) {
	c.entries.Delete(key)
}

// Len returns the number of own entries (not counting inherited keys).
func (c *Class) Len() int {
	return c.entries.Len()
}

// ownClass looks up key among c's own entries only, returning the nested
// class if key is a class-typed entry.
func (c *Class) ownClass(key string) (*Class, bool) {
	m, ok := c.entries.Get(key)
	if !ok || !m.isClass {
		return nil, false
	}
	return m.class, true
}

// resolveInheritsRef implements spec.md §4.5's inheritance resolution: walk
// ancestor classes from parent upward, searching each class's OWN entries
// (not via their inheritance chains) for a class named name.
func resolveInheritsRef(parent *Class, name string) (*Class, bool) {
	for anc := parent; anc != nil; anc = anc.Parent {
		if cls, ok := anc.ownClass(name); ok {
			return cls, true
		}
	}
	return nil, false
}

// Get looks up key, walking the Inherits chain then the Parent chain, per
// spec.md §3: "Value lookup (get) walks inherits then parent chains in that
// order." ok is false if key is found nowhere, or found but class-typed
// (use GetClass for that case).
func (c *Class) Get(key string) (Value, bool) {
	m, ok := c.lookupMember(key)
	if !ok || m.isClass {
		return Value{}, false
	}
	return m.value, true
}

// GetClass looks up key the same way Get does, returning the nested class
// if the found entry is class-typed.
func (c *Class) GetClass(key string) (*Class, bool) {
	m, ok := c.lookupMember(key)
	if !ok || !m.isClass {
		return nil, false
	}
	return m.class, true
}

func (c *Class) lookupMember(key string) (*member, bool) {
	if m, ok := c.entries.Get(key); ok {
		return m, true
	}
	if c.Inherits != nil {
		if m, ok := c.Inherits.lookupMember(key); ok {
			return m, true
		}
	}
	if c.Parent != nil {
		if m, ok := c.Parent.lookupMember(key); ok {
			return m, true
		}
	}
	return nil, false
}

// entryView is one key yielded by All: exactly one of Value/Class is
// meaningful, selected by IsClass.
type entryView struct {
	Name    string
	IsClass bool
	Value   Value
	Class   *Class
}

// All iterates c's visible entries: inherited keys (recursively, from the
// Inherits chain) first, then own keys, each in insertion order, with later
// (more-derived) entries shadowing earlier ones under the same key
// (spec.md §3: "Iteration order ... yields inherited keys first
// (recursively), then own keys in insertion order").
func (c *Class) All() iter.Seq[entryView] {
	return func(yield func(entryView) bool) {
		seen := collections.SetOf[string]()
		var walkInherited func(cls *Class) bool
		walkInherited = func(cls *Class) bool {
			if cls == nil {
				return true
			}
			if !walkInherited(cls.Inherits) {
				return false
			}
			for name, m := range cls.entries.All() {
				if seen.Contains(name) {
					continue
				}
				seen.Add(name)
				// Yield the most-derived entry under this key.
				if shadow, ok := c.lookupMember(name); ok {
					m = shadow
				}
				if !yield(toEntryView(m)) {
					return false
				}
			}
			return true
		}
		if !walkInherited(c.Inherits) {
			return
		}
		for name, m := range c.entries.All() {
			if seen.Contains(name) {
				continue
			}
			seen.Add(name)
			if !yield(toEntryView(m)) {
				return
			}
		}
	}
}

func toEntryView(m *member) entryView {
	if m.isClass {
		return entryView{Name: m.displayName, IsClass: true, Class: m.class}
	}
	return entryView{Name: m.displayName, Value: m.value}
}

// ToMap converts c into a plain nested map[string]any, following Get's
// inheritance-aware iteration (spec.md §6 "to_dict").
func (c *Class) ToMap() map[string]any {
	out := make(map[string]any, c.entries.Len())
	for e := range c.All() {
		if e.IsClass {
			out[e.Name] = e.Class.ToMap()
		} else {
			out[e.Name] = e.Value.Any()
		}
	}
	return out
}

// FromMap builds a root class named name from a plain nested mapping
// (spec.md §6 "from_dict"): each value is either a nested map (recursively
// converted to a class) or a string/number/bool/list leaf.
func FromMap(name string, m map[string]any) (*Class, error) {
	root := NewClass(name, nil, nil)
	if err := populateFromMap(root, m); err != nil {
		return nil, err
	}
	return root, nil
}

func populateFromMap(c *Class, m map[string]any) error {
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			child := NewClass(k, c, nil)
			if err := populateFromMap(child, nested); err != nil {
				return err
			}
			c.SetClass(k, child)
			continue
		}
		val, err := ValueFromAny(v)
		if err != nil {
			return err
		}
		c.SetValue(k, val)
	}
	return nil
}
