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
// Package builtin provides the standard set of macros: the ownership checking
// macros (whose checks happen purely at the type level, and hence are runtime
// identities), the stack! macro for statically allocated objects and the
// result macros.
package builtin

import (
	"fmt"

	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Names of the builtin macros, in registration order.
var Names = []string{"borrow", "$", "borrowMutable", "$$", "stack", "move", "local", "err", "ok", "return"}

var macros = map[string]macro.Macro{
	"borrow":        Identity,
	"$":             Identity,
	"borrowMutable": Identity,
	"$$":            Identity,
	"stack":         Stack,
	"move":          Identity,
	"local":         Identity,
	"err":           Err,
	"ok":            Ok,
	"return":        Return,
}

// Register all builtin macros with a given registry.
func Register(registry *macro.Registry) error {
	for _, name := range Names {
		if err := registry.Register(name, macros[name]); err != nil {
			return err
		}
	}
	//
	return nil
}

// NewRegistry constructs a registry holding exactly the builtin macros.
func NewRegistry() *macro.Registry {
	registry := macro.NewRegistry()
	//
	if err := Register(registry); err != nil {
		// Cannot happen for an empty registry
		panic(err)
	}
	//
	return registry
}

// Identity expands a call into its first argument, with any type assertions
// removed.  This is used for macros whose only purpose is to drive type
// checking, such as "borrow!(x)" or "move!(x, eat)".
func Identity(call *ast.CallExpression, _ macro.Context) (macro.Expansion, error) {
	if len(call.Arguments) == 0 {
		return macro.Delete(), fmt.Errorf("expected an argument")
	}
	//
	return macro.Replace(macro.ActualExpression(call.Arguments[0])), nil
}
