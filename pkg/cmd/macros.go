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

	"github.com/consensys/go-jiewo/pkg/macro/builtin"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// macrosCmd represents the macros command
var macrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "List the available macros.",
	Long:  `List the available macros, in the order they are matched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(cmd)
		//
		for _, name := range builtin.NewRegistry().Names() {
			if slices.Contains(cfg.Macros.Disable, name) {
				fmt.Printf("%s! (disabled)\n", name)
			} else {
				fmt.Printf("%s!\n", name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(macrosCmd)
}
