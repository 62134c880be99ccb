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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-jiewo/pkg/cmd/config"
	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/macro/builtin"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/parser"
	"github.com/consensys/go-jiewo/pkg/util/source"
	"github.com/consensys/go-jiewo/pkg/util/termio"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return r
}

// GetStringSlice gets an expected list of strings, or exits if an error arises.
func GetStringSlice(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return r
}

// Read the configuration file and apply any overriding flags.  An explicitly
// given configuration file must exist, whilst the default one is optional.
func readConfig(cmd *cobra.Command) config.Config {
	var (
		filename = GetString(cmd, "config")
		optional = filename == ""
	)
	//
	if optional {
		filename = config.DEFAULT_FILENAME
	}
	//
	cfg, err := config.ReadFile(filename, optional)
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return applyFlags(cmd, cfg)
}

// Override the configuration with those flags explicitly given.
func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	//
	if flags.Changed("max-rounds") {
		cfg.Engine.MaxRounds = GetUint(cmd, "max-rounds")
	}
	//
	if flags.Changed("disable") {
		for _, name := range GetStringSlice(cmd, "disable") {
			cfg.Macros.Disable = append(cfg.Macros.Disable, strings.TrimSuffix(name, "!"))
		}
	}
	//
	if flags.Lookup("outdir") != nil && flags.Changed("outdir") {
		cfg.Output.Dir = GetString(cmd, "outdir")
	}
	//
	if flags.Lookup("suffix") != nil && flags.Changed("suffix") {
		cfg.Output.Suffix = GetString(cmd, "suffix")
	}
	//
	if flags.Lookup("stdout") != nil && flags.Changed("stdout") {
		cfg.Output.Stdout = GetFlag(cmd, "stdout")
	}
	//
	return cfg
}

// Construct the program used to expand all files, consisting of the builtin
// macros less any which are disabled.
func newProgram(cfg config.Config) (*macro.Program, error) {
	registry, err := builtin.NewRegistry().Without(cfg.Macros.Disable...)
	//
	if err != nil {
		return nil, err
	}
	//
	return macro.NewProgram(registry, macro.Options{MaxRounds: cfg.Engine.MaxRounds}), nil
}

// Determine whether diagnostics should be coloured.
func useColour(cmd *cobra.Command) bool {
	colour, err := termio.UseColour(GetString(cmd, "color"), os.Stdout)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}
	//
	return colour
}

// Read the given source files, or exit if any cannot be read.
func readSourceFiles(filenames []string) []source.File {
	files, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_IO)
	}
	//
	return files
}

// Parse a source file, reporting any syntax errors.
func parseSourceFile(srcfile *source.File, colour bool) (*ast.SourceFile, *source.Map[ast.Node], bool) {
	file, srcmap, errs := parser.Parse(srcfile)
	//
	for i := range errs {
		printSyntaxError(&errs[i], colour)
	}
	//
	return file, srcmap, len(errs) == 0
}

// Report the failure to expand a given file, highlighting the offending call
// where its position is known.
func printExpansionError(srcfile *source.File, srcmap *source.Map[ast.Node], err error, colour bool) {
	var merr *macro.MacroError
	//
	if errors.As(err, &merr) {
		if serr, ok := merr.SyntaxError(srcmap); ok {
			printSyntaxError(serr, colour)
			return
		}
	}
	//
	fmt.Printf("%s: %s\n", srcfile.Filename(), err)
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError, colour bool) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	highlight := strings.Repeat("^", length)
	message := err.Message()
	//
	if colour {
		highlight = termio.NewAnsiEscape().Bold().FgColour(termio.TERM_RED).Wrap(highlight)
		message = termio.NewAnsiEscape().Bold().Wrap(message)
	}
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, message)
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(highlight)
}
