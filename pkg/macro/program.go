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
package macro

import (
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Options control the expansion engine.
type Options struct {
	// MaxRounds bounds the number of expansion rounds per file, such that a
	// macro which never reaches a fixed point is reported as an error rather
	// than looping forever.  Zero means there is no bound.
	MaxRounds uint
}

// Program is the context shared by the expansion of all files in a
// compilation.  A program is only ever read during expansion.
type Program struct {
	// Registry of available macros.
	Registry *Registry
	// Options for the engine.
	Options Options
}

// Transform expands all macro calls in a single file.
type Transform func(file *ast.SourceFile) (*ast.SourceFile, error)

// NewProgram constructs a program for a given set of macros.
func NewProgram(registry *Registry, options Options) *Program {
	return &Program{registry, options}
}

// NewTransformerFactory returns a per-file transform for a given program.
// Each invocation of the transform uses a fresh transformer, hence files can
// be expanded concurrently.
func NewTransformerFactory(program *Program) Transform {
	return func(file *ast.SourceFile) (*ast.SourceFile, error) {
		return NewTransformer(program, file).Run()
	}
}
