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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadDefinesManifest reads a flat "name: value" YAML document of seed
// macros. gopkg.in/yaml.v3 is only an indirect dependency in the teacher's
// go.mod (pulled in transitively, never imported directly); this is that
// promoted to direct use for the one place this tool accepts a structured
// config file instead of flags.
func loadDefinesManifest(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defines manifest %s: %w", path, err)
	}
	var manifest map[string]string
	if err := yaml.Unmarshal(b, &manifest); err != nil {
		return nil, fmt.Errorf("parsing defines manifest %s: %w", path, err)
	}
	return manifest, nil
}
