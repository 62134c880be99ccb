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
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// DEFAULT_FILENAME is the configuration file read when none is given
// explicitly.
const DEFAULT_FILENAME = "jiewo.ini"

// DEFAULT_SUFFIX is the extension given to expanded files.
const DEFAULT_SUFFIX = ".js"

// Config holds the settings read from a configuration file.  Command-line
// flags take precedence over these.
type Config struct {
	Output Output
	Macros Macros
	Engine Engine
}

// Output determines where expanded files are written.
type Output struct {
	// Directory into which expanded files are written.  When empty, each file
	// is written alongside its source.
	Dir string
	// Suffix replacing the extension of each source file.
	Suffix string
	// Stdout indicates expanded files are written to stdout instead.
	Stdout bool
}

// Macros determines which of the builtin macros are available.
type Macros struct {
	// Names of macros which are not expanded.
	Disable []string
}

// Engine configures the expansion engine.
type Engine struct {
	// Maximum number of rounds per file (0 is unbounded).
	MaxRounds uint
}

// Default returns the configuration used in the absence of any file.
func Default() Config {
	return Config{Output: Output{Suffix: DEFAULT_SUFFIX}}
}

// ReadFile reads the configuration from a given file.  When optional holds, a
// missing file gives the default configuration rather than an error.
func ReadFile(filename string, optional bool) (Config, error) {
	if _, err := os.Stat(filename); optional && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	//
	return Load(filename)
}

// Load parses a configuration from a given source, which is either a filename
// or the raw contents (as a []byte).
func Load(source any) (Config, error) {
	var (
		config = Default()
		err    error
	)
	//
	file, err := ini.Load(source)
	if err != nil {
		return config, err
	}
	// [output]
	output := file.Section("output")
	config.Output.Dir = output.Key("dir").String()
	config.Output.Suffix = output.Key("suffix").MustString(DEFAULT_SUFFIX)
	//
	if output.HasKey("stdout") {
		if config.Output.Stdout, err = output.Key("stdout").Bool(); err != nil {
			return config, fmt.Errorf("invalid [output] stdout: %w", err)
		}
	}
	// [macros]
	for _, name := range file.Section("macros").Key("disable").Strings(",") {
		if name = strings.TrimSuffix(name, "!"); name != "" {
			config.Macros.Disable = append(config.Macros.Disable, name)
		}
	}
	// [engine]
	engine := file.Section("engine")
	//
	if engine.HasKey("max_rounds") {
		if config.Engine.MaxRounds, err = engine.Key("max_rounds").Uint(); err != nil {
			return config, fmt.Errorf("invalid [engine] max_rounds: %w", err)
		}
	}
	//
	return config, nil
}
