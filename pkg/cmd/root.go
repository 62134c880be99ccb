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
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// Exit codes
const (
	// EXIT_IO indicates a file could not be read or written.
	EXIT_IO = 2
	// EXIT_CONFIG indicates an invalid configuration.
	EXIT_CONFIG = 3
	// EXIT_SYNTAX indicates a source file could not be parsed.
	EXIT_SYNTAX = 4
	// EXIT_EXPANSION indicates a macro failed to expand.
	EXIT_EXPANSION = 5
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jiewo",
	Short: "A macro expander for TypeScript.",
	Long: `A macro expander for TypeScript.
	Expands calls of the form name!(...) and obj.name!(...) into plain
	JavaScript, hoisting any supporting declarations.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !GetFlag(cmd, "version") {
			fmt.Println(cmd.UsageString())
			return
		}
		//
		fmt.Print("jiewo ")
		//
		if Version != "" {
			// Built via "make"
			fmt.Printf("%s", Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			// Built via "go install"
			fmt.Printf("%s", info.Main.Version)
		} else {
			// Unknown, perhaps "go run"
			fmt.Printf("(unknown version)")
		}
		//
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "configuration file (default \"jiewo.ini\", when present)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto, always or never)")
	rootCmd.PersistentFlags().StringSlice("disable", nil, "macros which are not expanded")
	rootCmd.PersistentFlags().Uint("max-rounds", 0, "bound the number of expansion rounds per file (0 is unbounded)")
}
