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
// Package ast defines the syntax tree for the TypeScript subset understood by
// the macro expander.  Nodes are treated as immutable values: a rewrite always
// produces a new node, sharing any unchanged subtrees with its input.
package ast

import (
	"slices"
)

// Node is implemented by every syntax tree node.
type Node interface {
	node()
}

// Expression is implemented by nodes which can appear in expression position.
type Expression interface {
	Node
	expression()
}

// Statement is implemented by nodes which can appear in a statement list.
type Statement interface {
	Node
	statement()
}

// BindingName is implemented by nodes which can bind a name in a declaration,
// i.e. identifiers and (object or array) binding patterns.
type BindingName interface {
	Node
	bindingName()
}

// PropertyName is implemented by nodes which can name a property in an object
// literal or a class, i.e. identifiers, string or numeric literals and
// computed property names.
type PropertyName interface {
	Node
	propertyName()
}

// ObjectMember is implemented by nodes which can appear in an object literal.
type ObjectMember interface {
	Node
	objectMember()
}

// ClassMember is implemented by nodes which can appear in a class body.
type ClassMember interface {
	Node
	classMember()
}

// FunctionLike is implemented by every node which has parameters and a body,
// i.e. function declarations and expressions, arrow functions, methods,
// constructors and accessors.
type FunctionLike interface {
	Node
	// Params returns the declared parameters.
	Params() []*Parameter
	// FunctionBody returns the body, which is either a *Block or (for arrow
	// functions only) an expression.  This can be nil for overload signatures.
	FunctionBody() Node
	// FunctionName returns the declared name, or "" if there is none.
	FunctionName() string
}

// Modifiers is a set of declaration modifiers, such as "export" or "async",
// stored in source order.
type Modifiers []string

// Has checks whether a given modifier is present.
func (p Modifiers) Has(modifier string) bool {
	return slices.Contains(p, modifier)
}

// SourceFile is the root of a syntax tree.
type SourceFile struct {
	Filename   string
	Statements []Statement
}

func (*SourceFile) node() {}

// ModuleBlock is the body of a namespace (or module) declaration.
type ModuleBlock struct {
	Statements []Statement
}

func (*ModuleBlock) node() {}

// TypeNode is an opaque type annotation.  Types carry no runtime semantics, so
// only their text is retained (which is erased when printing).
type TypeNode struct {
	Text string
}

func (*TypeNode) node() {}
