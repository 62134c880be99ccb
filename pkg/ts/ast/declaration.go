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
package ast

// Parameter is a single function parameter, such as "x", "x?: number",
// "...rest" or "{ a, b } = defaults".
type Parameter struct {
	DotDotDot   bool
	Name        BindingName
	Optional    bool
	Type        *TypeNode
	Initializer Expression
}

// ObjectBindingPattern is a "{ a, b: c }" destructuring pattern.
type ObjectBindingPattern struct {
	Elements []*BindingElement
}

// ArrayBindingPattern is a "[a, , b]" destructuring pattern, whose elements
// are either *BindingElement or *OmittedExpression.
type ArrayBindingPattern struct {
	Elements []Node
}

// BindingElement is a single element of a binding pattern.  PropertyName is
// only present for "name: binding" elements of object patterns.
type BindingElement struct {
	DotDotDot    bool
	PropertyName PropertyName
	Name         BindingName
	Initializer  Expression
}

// FunctionDeclaration is a "function name(x) { ... }" declaration.  The body
// is nil for overload signatures.
type FunctionDeclaration struct {
	Modifiers  Modifiers
	Asterisk   bool
	Name       *Identifier
	Parameters []*Parameter
	Type       *TypeNode
	Body       *Block
}

// ClassDeclaration is a "class Name extends Base { ... }" declaration.
type ClassDeclaration struct {
	Modifiers Modifiers
	Name      *Identifier
	Extends   Expression
	Members   []ClassMember
}

// PropertyDeclaration is a field of a class.
type PropertyDeclaration struct {
	Modifiers   Modifiers
	Name        PropertyName
	Type        *TypeNode
	Initializer Expression
}

// MethodDeclaration is a method of a class or object literal.  The body is
// nil for overload signatures and abstract methods.
type MethodDeclaration struct {
	Modifiers  Modifiers
	Asterisk   bool
	Name       PropertyName
	Parameters []*Parameter
	Type       *TypeNode
	Body       *Block
}

// Constructor is the constructor of a class.
type Constructor struct {
	Modifiers  Modifiers
	Parameters []*Parameter
	Body       *Block
}

// Accessor is a "get name() { }" or "set name(v) { }" member of a class or
// object literal.
type Accessor struct {
	Modifiers  Modifiers
	Setter     bool
	Name       PropertyName
	Parameters []*Parameter
	Type       *TypeNode
	Body       *Block
}

// ModuleDeclaration is a "namespace Name { ... }" declaration.
type ModuleDeclaration struct {
	Modifiers Modifiers
	// Keyword is either "namespace" or "module".
	Keyword string
	Name    *Identifier
	Body    *ModuleBlock
}

func (*Parameter) node()            {}
func (*ObjectBindingPattern) node() {}
func (*ArrayBindingPattern) node()  {}
func (*BindingElement) node()       {}
func (*FunctionDeclaration) node()  {}
func (*ClassDeclaration) node()     {}
func (*PropertyDeclaration) node()  {}
func (*MethodDeclaration) node()    {}
func (*Constructor) node()          {}
func (*Accessor) node()             {}
func (*ModuleDeclaration) node()    {}

func (*ObjectBindingPattern) bindingName() {}
func (*ArrayBindingPattern) bindingName()  {}

func (*FunctionDeclaration) statement() {}
func (*ClassDeclaration) statement()    {}
func (*ModuleDeclaration) statement()   {}

func (*PropertyDeclaration) classMember() {}
func (*MethodDeclaration) classMember()   {}
func (*Constructor) classMember()         {}
func (*Accessor) classMember()            {}

func (*MethodDeclaration) objectMember() {}
func (*Accessor) objectMember()          {}

// Params implementation for the FunctionLike interface.
func (p *FunctionDeclaration) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *FunctionDeclaration) FunctionBody() Node { return blockOrNil(p.Body) }

// FunctionName implementation for the FunctionLike interface.
func (p *FunctionDeclaration) FunctionName() string { return identifierText(p.Name) }

// Params implementation for the FunctionLike interface.
func (p *MethodDeclaration) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *MethodDeclaration) FunctionBody() Node { return blockOrNil(p.Body) }

// FunctionName implementation for the FunctionLike interface.
func (p *MethodDeclaration) FunctionName() string { return PropertyNameText(p.Name) }

// Params implementation for the FunctionLike interface.
func (p *Constructor) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *Constructor) FunctionBody() Node { return blockOrNil(p.Body) }

// FunctionName implementation for the FunctionLike interface.
func (p *Constructor) FunctionName() string { return "" }

// Params implementation for the FunctionLike interface.
func (p *Accessor) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *Accessor) FunctionBody() Node { return blockOrNil(p.Body) }

// FunctionName implementation for the FunctionLike interface.
func (p *Accessor) FunctionName() string { return PropertyNameText(p.Name) }

// PropertyNameText returns the text of a property name, or "" for computed
// property names.
func PropertyNameText(name PropertyName) string {
	switch n := name.(type) {
	case *Identifier:
		return n.Name
	case *StringLiteral:
		return n.Value
	case *NumericLiteral:
		return n.Text
	default:
		return ""
	}
}

// avoids wrapping a nil *Block into a non-nil interface
func blockOrNil(block *Block) Node {
	if block == nil {
		return nil
	}
	//
	return block
}

func identifierText(id *Identifier) string {
	if id == nil {
		return ""
	}
	//
	return id.Name
}
