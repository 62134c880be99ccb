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

import (
	"fmt"
	"strings"
)

// NewIdentifier constructs an identifier with a given name.
func NewIdentifier(name string) *Identifier {
	return &Identifier{name}
}

// NewUndefined constructs the identifier "undefined".
func NewUndefined() *Identifier {
	return &Identifier{"undefined"}
}

// NewNumericLiteral constructs a numeric literal for a given integer.
func NewNumericLiteral(value int) *NumericLiteral {
	return &NumericLiteral{fmt.Sprintf("%d", value)}
}

// NewStringLiteral constructs a double-quoted string literal holding a given
// value.
func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{QuoteString(value), value}
}

// NewKeyword constructs a keyword expression, such as "true" or "this".
func NewKeyword(text string) *Keyword {
	return &Keyword{text}
}

// NewPropertyAccess constructs "expr.name".
func NewPropertyAccess(expr Expression, name string) *PropertyAccess {
	return &PropertyAccess{expr, false, &Identifier{name}}
}

// NewElementAccess constructs "expr[arg]".
func NewElementAccess(expr Expression, arg Expression) *ElementAccess {
	return &ElementAccess{expr, false, arg}
}

// NewCall constructs "callee(args...)".
func NewCall(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{callee, false, nil, args}
}

// NewBinary constructs "lhs op rhs".
func NewBinary(lhs Expression, operator string, rhs Expression) *Binary {
	return &Binary{lhs, operator, rhs}
}

// NewAssignment constructs "lhs = rhs".
func NewAssignment(lhs Expression, rhs Expression) *Binary {
	return &Binary{lhs, "=", rhs}
}

// NewCommaList constructs a comma list "(e1, e2, ..., en)".
func NewCommaList(elements ...Expression) *CommaList {
	return &CommaList{elements}
}

// NewParenthesized constructs "(expr)".
func NewParenthesized(expr Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{expr}
}

// NewObjectLiteral constructs an object literal from a given set of members.
func NewObjectLiteral(multiline bool, members ...ObjectMember) *ObjectLiteral {
	return &ObjectLiteral{members, multiline, false}
}

// NewPropertyAssignment constructs the object member "name: init".
func NewPropertyAssignment(name string, init Expression) *PropertyAssignment {
	return &PropertyAssignment{&Identifier{name}, init}
}

// NewArrayLiteral constructs "[elements...]".
func NewArrayLiteral(elements ...Expression) *ArrayLiteral {
	return &ArrayLiteral{elements, false, false}
}

// NewExpressionStatement constructs "expr;".
func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{expr}
}

// NewReturn constructs "return expr;", or "return;" if expr is nil.
func NewReturn(expr Expression) *ReturnStatement {
	return &ReturnStatement{expr}
}

// NewIf constructs "if (cond) then else otherwise", where otherwise may be nil.
func NewIf(cond Expression, then Statement, otherwise Statement) *IfStatement {
	return &IfStatement{cond, then, otherwise}
}

// NewBlock constructs "{ stmts... }".
func NewBlock(multiline bool, stmts ...Statement) *Block {
	return &Block{stmts, multiline}
}

// NewVariableStatement constructs a statement declaring a single variable,
// such as "const name = init;".  The initialiser may be nil.
func NewVariableStatement(keyword string, name string, init Expression) *VariableStatement {
	decl := &VariableDeclaration{&Identifier{name}, nil, init}
	return &VariableStatement{nil, &VariableDeclarationList{keyword, []*VariableDeclaration{decl}}}
}

// NewParameter constructs a plain parameter with a given name.
func NewParameter(name string) *Parameter {
	return &Parameter{false, &Identifier{name}, false, nil, nil}
}

// NewFunctionDeclaration constructs "function name(params...) { stmts... }".
func NewFunctionDeclaration(name string, params []*Parameter, stmts ...Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nil, false, &Identifier{name}, params, nil, &Block{stmts, true}}
}

// QuoteString returns a double-quoted string literal for a given value.
func QuoteString(value string) string {
	var builder strings.Builder
	//
	builder.WriteByte('"')
	//
	for _, c := range value {
		switch c {
		case '"':
			builder.WriteString("\\\"")
		case '\\':
			builder.WriteString("\\\\")
		case '\n':
			builder.WriteString("\\n")
		case '\r':
			builder.WriteString("\\r")
		case '\t':
			builder.WriteString("\\t")
		default:
			if c < 0x20 || c == 0x2028 || c == 0x2029 {
				fmt.Fprintf(&builder, "\\u%04x", c)
			} else {
				builder.WriteRune(c)
			}
		}
	}
	//
	builder.WriteByte('"')
	//
	return builder.String()
}
