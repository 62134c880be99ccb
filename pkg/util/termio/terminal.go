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
package termio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Colour modes accepted on the command line.
const (
	COLOUR_AUTO   = "auto"
	COLOUR_ALWAYS = "always"
	COLOUR_NEVER  = "never"
)

// IsTerminal determines whether a given file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// UseColour determines whether output written to a given file should be
// coloured under a given mode.
func UseColour(mode string, file *os.File) (bool, error) {
	switch mode {
	case COLOUR_ALWAYS:
		return true, nil
	case COLOUR_NEVER:
		return false, nil
	case COLOUR_AUTO, "":
		return IsTerminal(file) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown colour mode \"%s\"", mode)
	}
}
