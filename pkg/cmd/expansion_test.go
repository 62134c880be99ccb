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
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-jiewo/pkg/cmd/config"
	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/macro/builtin"
	"github.com/consensys/go-jiewo/pkg/ts/printer"
	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

func Test_OutputPath_01(t *testing.T) {
	path, err := outputPath("src/a.ts", config.Output{Suffix: ".js"})
	assert.NoError(t, err)
	assert.Equal(t, "src/a.js", path)
	//
	path, err = outputPath("src/a.ts", config.Output{Dir: "out", Suffix: ".mjs"})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "a.mjs"), path)
	//
	_, err = outputPath("src/a.ts", config.Output{Suffix: ".ts"})
	assert.ErrorContains(t, err, "overwrite")
}

func Test_WriteOutput_01(t *testing.T) {
	var (
		dir    = t.TempDir()
		output = config.Output{Dir: filepath.Join(dir, "out"), Suffix: ".js"}
	)
	//
	assert.NoError(t, writeOutput("a.ts", "x;\n", output))
	//
	bytes, err := os.ReadFile(filepath.Join(dir, "out", "a.js"))
	assert.NoError(t, err)
	assert.Equal(t, "x;\n", string(bytes))
}

func Test_ExpandAll_01(t *testing.T) {
	var (
		program = macro.NewProgram(builtin.NewRegistry(), macro.Options{MaxRounds: 8})
		files   = []source.File{
			*source.NewSourceFile("a.ts", []byte("const a = borrow!(x);")),
			*source.NewSourceFile("b.ts", []byte("const b = ;")),
			*source.NewSourceFile("c.ts", []byte("stack!();")),
			*source.NewSourceFile("d.ts", []byte("const d = other!(1);")),
		}
		results = expandAll(program, files, 2)
	)
	//
	assert.Equal(t, 4, len(results))
	// Results are in order
	assert.Equal(t, "a.ts", results[0].Source.Filename())
	assert.False(t, results[0].Failed())
	assert.Equal(t, "const a = x;\n", printer.Print(results[0].Expanded))
	assert.True(t, len(results[1].SyntaxErrors) > 0)
	assert.ErrorContains(t, results[2].Error, "expected a prototype")
	// Syntax errors take precedence
	assert.Equal(t, EXIT_SYNTAX, reportFailures(results[:3], false))
	assert.Equal(t, EXIT_EXPANSION, reportFailures(results[2:3], false))
	assert.Equal(t, 0, reportFailures(results[:1], false))
	// Unknown macros are reported by check
	problems := checkExpansion(program, results[3])
	assert.Equal(t, []string{"unexpanded macro call other! (line 1)"}, problems)
	assert.Equal(t, 0, len(checkExpansion(program, results[0])))
}

func Test_NewProgram_01(t *testing.T) {
	cfg := config.Default()
	cfg.Macros.Disable = []string{"stack"}
	//
	program, err := newProgram(cfg)
	assert.NoError(t, err)
	assert.False(t, program.Registry.Has("stack"))
	//
	cfg.Macros.Disable = []string{"unknown"}
	_, err = newProgram(cfg)
	assert.ErrorContains(t, err, "unknown macro unknown!")
}
