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

	"github.com/consensys/go-jiewo/pkg/ts/printer"
	"github.com/spf13/cobra"
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand [flags] file.ts...",
	Short: "Expand all macro calls in one or more files.",
	Long: `Expand all macro calls in one or more files, writing the resulting
	JavaScript alongside each source file (or into the output directory).`,
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
			colour  = useColour(cmd)
			files   = readSourceFiles(args)
			results = expandAll(program, files, GetUint(cmd, "jobs"))
			code    = reportFailures(results, colour)
		)
		// Write out whatever succeeded
		for _, result := range results {
			if result.Failed() {
				continue
			}
			//
			contents := printer.Print(result.Expanded)
			//
			if err := writeOutput(result.Source.Filename(), contents, cfg.Output); err != nil {
				fmt.Println(err)
				os.Exit(EXIT_IO)
			}
		}
		//
		if code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().StringP("outdir", "o", "", "directory into which expanded files are written")
	expandCmd.Flags().String("suffix", ".js", "extension given to expanded files")
	expandCmd.Flags().Bool("stdout", false, "write expanded files to stdout")
	expandCmd.Flags().UintP("jobs", "j", 0, "number of files expanded concurrently (0 is one per CPU)")
}
