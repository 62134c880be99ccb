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

// Context is the view of the expansion engine given to a macro.  A context is
// scoped to the expansion of a single file, and must not be retained beyond
// the call to the macro.
type Context interface {
	// Hoist registers a statement to be inserted into the statement list of a
	// hoistable destination (a file, module block, block or function-like
	// declaration).  The statement is placed immediately before the statement
	// of the destination which encloses the origin or, failing that, at the
	// front of the destination.  Hoists are materialised once the current
	// round of expansion is complete.
	Hoist(origin ast.Node, destination ast.Node, stmt ast.Statement)
	// File returns the file being expanded, as it was originally parsed.  This
	// is the destination for hoisting to file scope.
	File() *ast.SourceFile
	// Visit expands any macro calls within a given node immediately, rather
	// than waiting for the next round.
	Visit(node ast.Node) ([]ast.Node, error)
	// Ancestors returns the ancestors of a node, nearest first.  This works
	// for nodes which have been rewritten by resolving them through their
	// original identity.
	Ancestors(node ast.Node) []ast.Node
	// Original returns the identity a node had when first observed.
	Original(node ast.Node) ast.Node
	// UniqueName returns a fresh identifier "base_N" which clashes neither
	// with any identifier in the file nor with any other generated name.
	UniqueName(base string) *ast.Identifier
	// ResultIdentifier returns the result carrier shared by all result
	// producing macros in the function enclosing a node.  The carrier is
	// hoisted to file scope on first use.  This returns false when the node
	// is not enclosed by any function.
	ResultIdentifier(node ast.Node) (*ast.Identifier, bool)
}

// FindAncestor returns the nearest ancestor of a node satisfying a given
// predicate.
func FindAncestor(ctx Context, node ast.Node, pred func(ast.Node) bool) (ast.Node, bool) {
	for _, ancestor := range ctx.Ancestors(node) {
		if pred(ancestor) {
			return ancestor, true
		}
	}
	//
	return nil, false
}

// ClosestFunction returns the function-like declaration which is, or most
// closely encloses, a given node.
func ClosestFunction(ctx Context, node ast.Node) (ast.FunctionLike, bool) {
	if fn, ok := node.(ast.FunctionLike); ok {
		return fn, true
	} else if ancestor, ok := FindAncestor(ctx, node, ast.IsFunctionLike); ok {
		return ancestor.(ast.FunctionLike), true
	}
	//
	return nil, false
}
