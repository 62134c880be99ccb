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

// Identifier is a name, such as "foo".
type Identifier struct {
	Name string
}

// NumericLiteral is a number, such as "42" or "0xff".  The source text is
// retained as is.
type NumericLiteral struct {
	Text string
}

// StringLiteral is a quoted string.  Raw holds the literal exactly as written
// (including quotes), whilst Value holds the unescaped contents.
type StringLiteral struct {
	Raw   string
	Value string
}

// Keyword is one of the keyword expressions "true", "false", "null", "this"
// or "super".
type Keyword struct {
	Text string
}

// ObjectLiteral is an object literal, such as "{ a: 1, ...b }".
type ObjectLiteral struct {
	Properties []ObjectMember
	// Multiline records whether the literal spanned several lines.
	Multiline bool
	// TrailingComma records whether the last property was followed by ",".
	TrailingComma bool
}

// PropertyAssignment is a "name: value" member of an object literal.
type PropertyAssignment struct {
	Name        PropertyName
	Initializer Expression
}

// ShorthandPropertyAssignment is a "name" member of an object literal.
type ShorthandPropertyAssignment struct {
	Name *Identifier
}

// SpreadAssignment is a "...value" member of an object literal.
type SpreadAssignment struct {
	Expression Expression
}

// ComputedPropertyName is a "[expr]" property name.
type ComputedPropertyName struct {
	Expression Expression
}

// ArrayLiteral is an array literal, such as "[1, 2, ...rest]".
type ArrayLiteral struct {
	Elements []Expression
	// Multiline records whether the literal spanned several lines.
	Multiline bool
	// TrailingComma records whether the last element was followed by ",".
	TrailingComma bool
}

// SpreadElement is a "...value" element of an array literal or argument list.
type SpreadElement struct {
	Expression Expression
}

// OmittedExpression is a hole in an array literal or array binding pattern.
type OmittedExpression struct {
	// non-zero size keeps distinct holes distinct
	_ byte
}

// PropertyAccess is an "x.name" or "x?.name" expression.
type PropertyAccess struct {
	Expression  Expression
	QuestionDot bool
	Name        *Identifier
}

// ElementAccess is an "x[arg]" or "x?.[arg]" expression.
type ElementAccess struct {
	Expression  Expression
	QuestionDot bool
	Argument    Expression
}

// CallExpression is a call "f(args)" or "f?.(args)".  Macro calls are calls
// whose callee is a NonNullExpression.
type CallExpression struct {
	Expression    Expression
	QuestionDot   bool
	TypeArguments []*TypeNode
	Arguments     []Expression
}

// NewExpression is a "new F(args)" expression.
type NewExpression struct {
	Expression    Expression
	TypeArguments []*TypeNode
	Arguments     []Expression
}

// NonNullExpression is a non-null assertion "x!".
type NonNullExpression struct {
	Expression Expression
}

// ParenthesizedExpression is a "(x)" expression.
type ParenthesizedExpression struct {
	Expression Expression
}

// AsExpression is an "x as T" type assertion.
type AsExpression struct {
	Expression Expression
	Type       *TypeNode
}

// SatisfiesExpression is an "x satisfies T" expression.
type SatisfiesExpression struct {
	Expression Expression
	Type       *TypeNode
}

// TypeAssertion is a legacy "<T>x" type assertion.
type TypeAssertion struct {
	Type       *TypeNode
	Expression Expression
}

// PrefixUnary is a prefix operator applied to an operand, such as "!x",
// "typeof x", "await x" or "++x".
type PrefixUnary struct {
	Operator string
	Operand  Expression
}

// PostfixUnary is a postfix "x++" or "x--".
type PostfixUnary struct {
	Operand  Expression
	Operator string
}

// Binary is a binary operator applied to two operands.  This includes
// assignments (e.g. "x = 1", "x += 1") and the comma operator.
type Binary struct {
	Left     Expression
	Operator string
	Right    Expression
}

// Conditional is a "c ? x : y" expression.
type Conditional struct {
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

// CommaList is a synthesised sequence of expressions evaluated left to right,
// yielding the last.  Unlike a comma Binary it is flat and never appears in
// parsed input.
type CommaList struct {
	Elements []Expression
}

// ArrowFunction is an "(x) => body" function, where the body is either a
// *Block or an expression.
type ArrowFunction struct {
	Modifiers  Modifiers
	Parameters []*Parameter
	Type       *TypeNode
	Body       Node
}

// FunctionExpression is a "function name(x) { ... }" expression.
type FunctionExpression struct {
	Modifiers  Modifiers
	Asterisk   bool
	Name       *Identifier
	Parameters []*Parameter
	Type       *TypeNode
	Body       *Block
}

// Verbatim is an expression whose text is emitted as is, such as a template
// literal or a regular expression.
type Verbatim struct {
	Text string
}

func (*Identifier) node()                  {}
func (*NumericLiteral) node()              {}
func (*StringLiteral) node()               {}
func (*Keyword) node()                     {}
func (*ObjectLiteral) node()               {}
func (*PropertyAssignment) node()          {}
func (*ShorthandPropertyAssignment) node() {}
func (*SpreadAssignment) node()            {}
func (*ComputedPropertyName) node()        {}
func (*ArrayLiteral) node()                {}
func (*SpreadElement) node()               {}
func (*OmittedExpression) node()           {}
func (*PropertyAccess) node()              {}
func (*ElementAccess) node()               {}
func (*CallExpression) node()              {}
func (*NewExpression) node()               {}
func (*NonNullExpression) node()           {}
func (*ParenthesizedExpression) node()     {}
func (*AsExpression) node()                {}
func (*SatisfiesExpression) node()         {}
func (*TypeAssertion) node()               {}
func (*PrefixUnary) node()                 {}
func (*PostfixUnary) node()                {}
func (*Binary) node()                      {}
func (*Conditional) node()                 {}
func (*CommaList) node()                   {}
func (*ArrowFunction) node()               {}
func (*FunctionExpression) node()          {}
func (*Verbatim) node()                    {}

func (*Identifier) expression()              {}
func (*NumericLiteral) expression()          {}
func (*StringLiteral) expression()           {}
func (*Keyword) expression()                 {}
func (*ObjectLiteral) expression()           {}
func (*ArrayLiteral) expression()            {}
func (*SpreadElement) expression()           {}
func (*OmittedExpression) expression()       {}
func (*PropertyAccess) expression()          {}
func (*ElementAccess) expression()           {}
func (*CallExpression) expression()          {}
func (*NewExpression) expression()           {}
func (*NonNullExpression) expression()       {}
func (*ParenthesizedExpression) expression() {}
func (*AsExpression) expression()            {}
func (*SatisfiesExpression) expression()     {}
func (*TypeAssertion) expression()           {}
func (*PrefixUnary) expression()             {}
func (*PostfixUnary) expression()            {}
func (*Binary) expression()                  {}
func (*Conditional) expression()             {}
func (*CommaList) expression()               {}
func (*ArrowFunction) expression()           {}
func (*FunctionExpression) expression()      {}
func (*Verbatim) expression()                {}

func (*Identifier) bindingName() {}

func (*Identifier) propertyName()           {}
func (*StringLiteral) propertyName()        {}
func (*NumericLiteral) propertyName()       {}
func (*ComputedPropertyName) propertyName() {}

func (*PropertyAssignment) objectMember()          {}
func (*ShorthandPropertyAssignment) objectMember() {}
func (*SpreadAssignment) objectMember()            {}

// Params implementation for the FunctionLike interface.
func (p *ArrowFunction) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *ArrowFunction) FunctionBody() Node { return p.Body }

// FunctionName implementation for the FunctionLike interface.
func (p *ArrowFunction) FunctionName() string { return "" }

// Params implementation for the FunctionLike interface.
func (p *FunctionExpression) Params() []*Parameter { return p.Parameters }

// FunctionBody implementation for the FunctionLike interface.
func (p *FunctionExpression) FunctionBody() Node { return blockOrNil(p.Body) }

// FunctionName implementation for the FunctionLike interface.
func (p *FunctionExpression) FunctionName() string { return identifierText(p.Name) }
