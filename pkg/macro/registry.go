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
	"fmt"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"golang.org/x/exp/slices"
)

// Macro is a rewrite function invoked on a macro call, after the arguments of
// that call have been fully expanded.  Its only permitted side effect is to
// register hoisted statements through the context.
type Macro func(call *ast.CallExpression, ctx Context) (Expansion, error)

// Registry maps macro names to their rewrite functions.  Entries are kept in
// registration order, which determines the order in which they are matched.
type Registry struct {
	entries []entry
}

type entry struct {
	name  string
	macro Macro
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register a rewrite function for a given name.  It is an error to register
// the same name twice.
func (p *Registry) Register(name string, macro Macro) error {
	if name == "" {
		return fmt.Errorf("macro name cannot be empty")
	} else if p.Has(name) {
		return fmt.Errorf("macro %s! already registered", name)
	}
	//
	p.entries = append(p.entries, entry{name, macro})
	//
	return nil
}

// Has checks whether a macro with the given name is registered.
func (p *Registry) Has(name string) bool {
	return slices.IndexFunc(p.entries, func(e entry) bool { return e.name == name }) >= 0
}

// Lookup determines which registered macro (if any) a node invokes.  Entries
// are matched in registration order, checking both function-style and
// method-style calls.
func (p *Registry) Lookup(node ast.Node) (string, Macro, bool) {
	for _, e := range p.entries {
		if IsFunctionMacroCall(node, e.name) || IsMethodMacroCall(node, e.name) {
			return e.name, e.macro, true
		}
	}
	//
	return "", nil, false
}

// Names returns the names of all registered macros, in registration order.
func (p *Registry) Names() []string {
	names := make([]string, len(p.entries))
	//
	for i, e := range p.entries {
		names[i] = e.name
	}
	//
	return names
}

// Len returns the number of registered macros.
func (p *Registry) Len() int {
	return len(p.entries)
}

// Without returns a copy of this registry from which the given macros have
// been removed.  Names which are not registered are reported as an error.
func (p *Registry) Without(names ...string) (*Registry, error) {
	for _, name := range names {
		if !p.Has(name) {
			return nil, fmt.Errorf("unknown macro %s!", name)
		}
	}
	//
	entries := slices.Clone(p.entries)
	entries = slices.DeleteFunc(entries, func(e entry) bool { return slices.Contains(names, e.name) })
	//
	return &Registry{entries}, nil
}
