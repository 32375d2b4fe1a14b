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
	"io"

	"github.com/arma3tools/armaconfig/internal/parser"
	"github.com/arma3tools/armaconfig/internal/preprocessor"
	"github.com/arma3tools/armaconfig/internal/scanner"
	"github.com/arma3tools/armaconfig/internal/stream"
)

// FileOpener resolves a #include path to a readable file, defaulting to
// OSFileOpener (spec.md §4.1's "file-opening callback supplied by the
// host").
type FileOpener = stream.FileOpener

// OSFileOpener is the default FileOpener, backed by os.Open.
var OSFileOpener = stream.OSFileOpener

// Options configures Load (spec.md §6).
type Options struct {
	// IncludeComments, when true, preserves comments as a single space
	// rather than eliding them entirely.
	IncludeComments bool
	// Preprocess, when false, bypasses macro/directive handling entirely
	// and scans the source verbatim. Defaults to true.
	Preprocess bool
	// Opener resolves #include paths; nil uses OSFileOpener.
	Opener FileOpener
	// Macros seeds the macro table before parsing begins (e.g. from
	// ParseDefines or a YAML manifest), indistinguishable from a #define'd
	// macro once loaded (spec.md §13 "Seed macro").
	Macros map[string]string
}

// DefaultOptions returns Load's defaults: preprocessing enabled, comments
// elided, OS-backed #include resolution, no seed macros.
func DefaultOptions() Options {
	return Options{Preprocess: true}
}

// Load reads and decodes an Arma config document from r, naming it unit for
// diagnostics (use AnonymousUnit if the source has no inherent name).
func Load(r io.Reader, unit string, opts Options) (*Class, error) {
	s := stream.NewStack(opts.Opener)
	s.Push(unit, r, "", nil)
	return decode(unit, s, opts)
}

// LoadFile opens path and decodes it, using its own directory to resolve
// relative #include paths found inside it.
func LoadFile(path string, opts Options) (*Class, error) {
	opener := opts.Opener
	if opener == nil {
		opener = OSFileOpener
	}
	s := stream.NewStack(opener)
	if err := s.PushPath(path); err != nil {
		return nil, err
	}
	return decode(path, s, opts)
}

func decode(unit string, s *stream.Stack, opts Options) (*Class, error) {
	macros := preprocessor.NewTable()
	for name, body := range opts.Macros {
		macros.Define(&preprocessor.Macro{Name: name, Body: body})
	}
	pp := preprocessor.New(s, macros, preprocessor.Options{
		IncludeComments: opts.IncludeComments,
		Disabled:        !opts.Preprocess,
	})
	p := parser.New(scanner.New(pp))
	root := NewClass(unit, nil, nil)
	if err := decodeBody(root, p.Parse()); err != nil {
		return nil, err
	}
	return root, nil
}

// WriteDump encodes v (a *Class or a map[string]any) to w, returning the
// number of bytes written, grounded on how the teacher's cmd/*/main.go
// tools write generated output through a single io.Writer.
func WriteDump(w io.Writer, v any, opts DumpOptions) (int, error) {
	text, err := Dump(v, opts)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, text)
}
