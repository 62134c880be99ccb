// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-jiewo/pkg/cmd/config"
	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/parser"
	"github.com/consensys/go-jiewo/pkg/util"
	"github.com/consensys/go-jiewo/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Expansion captures the outcome of expanding a single source file.
type Expansion struct {
	// Source file being expanded.
	Source *source.File
	// Source map for the parsed file.
	SourceMap *source.Map[ast.Node]
	// Parsed file (nil if parsing failed).
	Parsed *ast.SourceFile
	// Expanded file (nil if expansion failed).
	Expanded *ast.SourceFile
	// Syntax errors arising from parsing.
	SyntaxErrors []source.SyntaxError
	// Error arising from expansion.
	Error error
}

// Failed determines whether the file could not be expanded.
func (p *Expansion) Failed() bool {
	return len(p.SyntaxErrors) > 0 || p.Error != nil
}

// Parse and expand all files concurrently.  Since each file is expanded with
// its own transformer, files are entirely independent.
func expandAll(program *macro.Program, files []source.File, jobs uint) []Expansion {
	expand := macro.NewTransformerFactory(program)
	//
	return util.ParMap(files, jobs, func(srcfile source.File) Expansion {
		var (
			stats  = util.NewPerfStats()
			result = Expansion{Source: &srcfile}
		)
		//
		result.Parsed, result.SourceMap, result.SyntaxErrors = parser.Parse(&srcfile)
		//
		if len(result.SyntaxErrors) == 0 {
			result.Expanded, result.Error = expand(result.Parsed)
		}
		//
		stats.Log(fmt.Sprintf("Expanding %s", srcfile.Filename()))
		//
		return result
	})
}

// Report any failures, returning the exit code which should be used (or 0 if
// none failed).  Syntax errors take precedence over expansion errors.
func reportFailures(results []Expansion, colour bool) int {
	var code int
	//
	for _, result := range results {
		for i := range result.SyntaxErrors {
			printSyntaxError(&result.SyntaxErrors[i], colour)
		}
		//
		if len(result.SyntaxErrors) > 0 {
			code = EXIT_SYNTAX
		} else if result.Error != nil {
			printExpansionError(result.Source, result.SourceMap, result.Error, colour)
			//
			if code == 0 {
				code = EXIT_EXPANSION
			}
		}
	}
	//
	return code
}

// Determine the file to which the expansion of a given source file is written.
func outputPath(filename string, output config.Output) (string, error) {
	var (
		ext  = filepath.Ext(filename)
		name = strings.TrimSuffix(filename, ext) + output.Suffix
	)
	//
	if output.Dir != "" {
		name = filepath.Join(output.Dir, filepath.Base(name))
	}
	//
	if filepath.Clean(name) == filepath.Clean(filename) {
		return "", fmt.Errorf("%s: output would overwrite source (check suffix)", filename)
	}
	//
	return name, nil
}

// Write expanded contents to its output file, creating the output directory as
// necessary.
func writeOutput(filename string, contents string, output config.Output) error {
	if output.Stdout {
		fmt.Print(contents)
		return nil
	}
	//
	target, err := outputPath(filename, output)
	if err != nil {
		return err
	}
	//
	if dir := filepath.Dir(target); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	//
	log.Debugf("writing %s", target)
	//
	return os.WriteFile(target, []byte(contents), 0644)
}
