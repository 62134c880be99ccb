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
	"errors"
	"fmt"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// ErrTooManyRounds is reported when expansion has not reached a fixed point
// within the configured round limit.
var ErrTooManyRounds = errors.New("expansion did not terminate")

// MacroError reports the failure of a macro whilst expanding a given call.
// Macro errors are fatal: the file being expanded is abandoned.
type MacroError struct {
	// Name of the failing macro.
	Macro string
	// Node is the original identity of the call being expanded, which can be
	// used to recover its position in the source file.
	Node ast.Node
	// Err is the underlying failure.
	Err error
}

func (e *MacroError) Error() string {
	return fmt.Sprintf("%s!: %s", e.Macro, e.Err.Error())
}

func (e *MacroError) Unwrap() error {
	return e.Err
}

// SyntaxError converts this error into a syntax error highlighting the
// offending call, provided the given source map knows of it.
func (e *MacroError) SyntaxError(srcmap *source.Map[ast.Node]) (*source.SyntaxError, bool) {
	if srcmap == nil || !srcmap.Has(e.Node) {
		return nil, false
	}
	//
	return srcmap.SyntaxError(e.Node, e.Error()), true
}

