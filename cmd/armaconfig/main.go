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

// Command armaconfig loads Arma 3 config documents and dumps them back out,
// optionally pretty-printed, as a debugging/inspection tool for the
// armaconfig pipeline.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arma3tools/armaconfig/armaconfig"
)

type defineList []string

func (d *defineList) String() string { return strings.Join(*d, ",") }
func (d *defineList) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var defines defineList
	flag.Var(&defines, "D", "seed macro definition NAME[=VALUE]; may be repeated")
	definesFile := flag.String("defines-file", "", "YAML manifest of name: value seed macros")
	input := flag.String("input", "", "input path or doublestar glob, e.g. 'configs/**/*.hpp'")
	output := flag.String("output", "", "output path (single-input mode only); defaults to stdout")
	indent := flag.Int("indent", 0, "pretty-print indentation width; 0 for compact output")
	includeComments := flag.Bool("include-comments", false, "preserve comments as blank spaces instead of eliding them")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		log.Fatalf("-input is required")
	}

	macros, err := loadMacros(defines, *definesFile)
	if err != nil {
		log.Fatalf("failed to load seed macros: %v", err)
	}

	loadOpts := armaconfig.Options{
		Preprocess:      true,
		IncludeComments: *includeComments,
		Macros:          macros,
	}
	dumpOpts := armaconfig.DumpOptions{Indent: *indent, IncludeSelf: false}

	matches, err := doublestar.FilepathGlob(*input)
	if err != nil {
		log.Fatalf("invalid -input glob %q: %v", *input, err)
	}
	if len(matches) == 0 {
		log.Fatalf("no files matched -input %q", *input)
	}

	if len(matches) == 1 {
		dumpOne(matches[0], *output, loadOpts, dumpOpts)
		return
	}

	if *output != "" {
		log.Printf("-output is ignored in batch mode (%d files matched); writing .dump.txt next to each input", len(matches))
	}
	for _, path := range matches {
		dumpOne(path, path+".dump.txt", loadOpts, dumpOpts)
	}
}

func dumpOne(inputPath, outputPath string, loadOpts armaconfig.Options, dumpOpts armaconfig.DumpOptions) {
	class, err := armaconfig.LoadFile(inputPath, loadOpts)
	if err != nil {
		log.Printf("failed to load %s: %v", inputPath, err)
		return
	}

	if outputPath == "" {
		if _, err := armaconfig.WriteDump(os.Stdout, class, dumpOpts); err != nil {
			log.Printf("failed to dump %s: %v", inputPath, err)
		}
		return
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Printf("failed to create %s: %v", outputPath, err)
		return
	}
	defer f.Close()
	if _, err := armaconfig.WriteDump(f, class, dumpOpts); err != nil {
		log.Printf("failed to dump %s to %s: %v", inputPath, outputPath, err)
	}
}

// loadMacros merges -D flags and a -defines-file YAML manifest (flat name:
// value pairs) into the seed-macro map passed to armaconfig.Load, matching
// cc.ParseMacros's pattern of aggregating and warning rather than aborting
// on an individually bad entry.
func loadMacros(defines defineList, definesFile string) (map[string]string, error) {
	macros, err := armaconfig.ParseDefines(defines)
	if err != nil {
		log.Printf("some -D definitions were skipped: %v", err)
	}

	if definesFile == "" {
		return macros, nil
	}
	fromFile, err := loadDefinesManifest(definesFile)
	if err != nil {
		return nil, err
	}
	for name, value := range fromFile {
		macros[name] = value
	}
	return macros, nil
}
