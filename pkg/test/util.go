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
package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/macro/builtin"
	"github.com/consensys/go-jiewo/pkg/ts/parser"
	"github.com/consensys/go-jiewo/pkg/ts/printer"
	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
	"golang.org/x/tools/txtar"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the golden archives (txtar) are found.
const TestDir = "../../testdata"

// MAX_ROUNDS bounds the expansion of every test file, such that a looping
// expansion fails rather than hangs.
const MAX_ROUNDS uint = 32

// Sections of a golden archive.
const (
	INPUT  = "input.ts"
	OUTPUT = "output.js"
	ERROR  = "error"
)

// Check that a given test archive expands as expected.  Each archive holds an
// "input.ts" section, along with either the expected "output.js" or the
// expected "error" (a substring of the reported error).
func Check(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/%s.txtar", TestDir, test)
		sections = readArchive(t, filename)
		program  = macro.NewProgram(builtin.NewRegistry(), macro.Options{MaxRounds: MAX_ROUNDS})
		expand   = macro.NewTransformerFactory(program)
	)
	// Enable testing each archive in parallel
	t.Parallel()
	//
	input, ok := sections[INPUT]
	if !ok {
		t.Fatalf("missing %s in %s", INPUT, filename)
	}
	//
	file, _, errs := parser.Parse(source.NewSourceFile(test+".ts", []byte(input)))
	//
	for _, err := range errs {
		t.Errorf("%s: %s", filename, err.Message())
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	expanded, err := expand(file)
	//
	if expected, ok := sections[ERROR]; ok {
		if err == nil {
			t.Fatalf("%s: expected error %q", filename, expected)
		}
		//
		assert.ErrorContains(t, err, strings.TrimSpace(expected), filename)
	} else if expected, ok := sections[OUTPUT]; ok {
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", filename, err)
		}
		//
		assert.Equal(t, expected, printer.Print(expanded), filename)
	} else {
		panic(fmt.Sprintf("missing %s or %s in %s", OUTPUT, ERROR, filename))
	}
}

func readArchive(t *testing.T, filename string) map[string]string {
	archive, err := txtar.ParseFile(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	sections := make(map[string]string)
	//
	for _, f := range archive.Files {
		sections[f.Name] = string(f.Data)
	}
	//
	return sections
}
