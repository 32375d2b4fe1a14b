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
	"fmt"
	"regexp"
	"strings"
)

// macroIdentifierRegex mirrors cc.MacroIdentifierRegex: a macro name must
// start with a letter or underscore and continue with letters, digits, or
// underscores.
var macroIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseDefine parses a single "-D"-style seed definition, tolerating a
// leading "-D" the way cc.ParseMacro does. A bare name with no "=" seeds an
// empty-bodied object-like macro (its definedness is what #ifdef tests);
// unlike the teacher's integer-only macro values, the seeded value here is
// raw replacement text, since #ifdef/#ifndef only test definedness.
func ParseDefine(definition string) (name, value string, err error) {
	definition = strings.TrimPrefix(definition, "-D")
	name, value = definition, ""
	if eqIdx := strings.Index(definition, "="); eqIdx >= 0 {
		name, value = definition[:eqIdx], definition[eqIdx+1:]
	}
	if !macroIdentifierRegex.MatchString(name) {
		return "", "", fmt.Errorf("armaconfig: invalid macro name %q", name)
	}
	return name, value, nil
}

// ParseDefines converts a batch of "-D NAME[=VALUE]" strings into the
// map[string]string consumed by Options.Macros, aggregating all failures
// with errors.Join the way cc.ParseMacros does rather than failing on the
// first bad entry.
func ParseDefines(definitions []string) (map[string]string, error) {
	out := make(map[string]string, len(definitions))
	var errs []error
	for _, d := range definitions {
		name, value, err := ParseDefine(d)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to parse %q: %w", d, err))
			continue
		}
		out[name] = value
	}
	return out, errors.Join(errs...)
}
