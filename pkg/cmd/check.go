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

	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] file.ts...",
	Short: "Check that one or more files expand cleanly.",
	Long: `Check that one or more files expand cleanly.  That is, every file
	expands without error, no macro calls remain after expansion (e.g. calls to
	unknown macros) and expanding the result again changes nothing.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := readConfig(cmd)
		//
		program, err := newProgram(cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(EXIT_CONFIG)
		}
		//
		var (
			colour   = useColour(cmd)
			files    = readSourceFiles(args)
			results  = expandAll(program, files, GetUint(cmd, "jobs"))
			code     = reportFailures(results, colour)
			problems uint
		)
		//
		for _, result := range results {
			if result.Failed() {
				problems++
				continue
			}
			//
			for _, msg := range checkExpansion(program, result) {
				fmt.Printf("%s: %s\n", result.Source.Filename(), msg)
				problems++
			}
		}
		//
		fmt.Printf("checked %d file(s), found %d problem(s)\n", len(results), problems)
		//
		if code == 0 && problems > 0 {
			code = EXIT_EXPANSION
		}
		//
		if code != 0 {
			os.Exit(code)
		}
	},
}

// Check a successfully expanded file, returning a description of each problem
// found.
func checkExpansion(program *macro.Program, result Expansion) []string {
	var problems []string
	// Look for residual macro calls
	ast.Inspect(result.Expanded, func(node ast.Node) bool {
		if name, ok := macro.NameOf(node); ok {
			msg := fmt.Sprintf("unexpanded macro call %s!", name)
			//
			if span, ok := result.SourceMap.Lookup(node); ok {
				line := result.Source.FindFirstEnclosingLine(span)
				msg = fmt.Sprintf("%s (line %d)", msg, line.Number())
			}
			//
			problems = append(problems, msg)
		}
		//
		return true
	})
	// Check expansion has reached a fixed point
	again, err := macro.NewTransformer(program, result.Expanded).Run()
	//
	if err != nil {
		problems = append(problems, fmt.Sprintf("re-expansion failed: %s", err))
	} else if again != result.Expanded {
		problems = append(problems, "expansion is not idempotent")
	}
	//
	return problems
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().UintP("jobs", "j", 0, "number of files checked concurrently (0 is one per CPU)")
}
