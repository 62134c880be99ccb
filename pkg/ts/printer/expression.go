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
package printer

import (
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

//nolint:gocyclo
func (p *emitter) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Name)
	case *ast.NumericLiteral:
		p.write(e.Text)
	case *ast.StringLiteral:
		if e.Raw != "" {
			p.write(e.Raw)
		} else {
			p.write(ast.QuoteString(e.Value))
		}
	case *ast.Keyword:
		p.write(e.Text)
	case *ast.Verbatim:
		p.write(e.Text)
	case *ast.OmittedExpression:
		// Array hole
	case *ast.ObjectLiteral:
		p.objectLiteral(e)
	case *ast.ArrayLiteral:
		p.arrayLiteral(e)
	case *ast.SpreadElement:
		p.write("...")
		p.operand(e.Expression)
	case *ast.PropertyAccess:
		p.receiver(e.Expression)
		//
		if e.QuestionDot {
			p.write("?.")
		} else {
			p.write(".")
		}
		//
		p.write(e.Name.Name)
	case *ast.ElementAccess:
		p.receiver(e.Expression)
		//
		if e.QuestionDot {
			p.write("?.")
		}
		//
		p.write("[")
		p.expression(e.Argument)
		p.write("]")
	case *ast.CallExpression:
		p.receiver(e.Expression)
		//
		if e.QuestionDot {
			p.write("?.")
		}
		//
		p.arguments(e.Arguments)
	case *ast.NewExpression:
		p.write("new ")
		p.receiver(e.Expression)
		p.arguments(e.Arguments)
	case *ast.NonNullExpression:
		p.expression(e.Expression)
	case *ast.AsExpression:
		p.expression(e.Expression)
	case *ast.SatisfiesExpression:
		p.expression(e.Expression)
	case *ast.TypeAssertion:
		p.expression(e.Expression)
	case *ast.ParenthesizedExpression:
		p.write("(")
		p.expression(e.Expression)
		p.write(")")
	case *ast.PrefixUnary:
		p.prefixUnary(e)
	case *ast.PostfixUnary:
		p.unaryOperand(e.Operand)
		p.write(e.Operator)
	case *ast.Binary:
		p.binary(e)
	case *ast.Conditional:
		p.operand(e.Condition)
		p.write(" ? ")
		p.operand(e.WhenTrue)
		p.write(" : ")
		p.operand(e.WhenFalse)
	case *ast.CommaList:
		for i, element := range e.Elements {
			if i > 0 {
				p.write(", ")
			}
			//
			p.operand(element)
		}
	case *ast.ArrowFunction:
		p.arrowFunction(e)
	case *ast.FunctionExpression:
		p.modifiers(e.Modifiers)
		p.write("function")
		//
		if e.Asterisk {
			p.write("*")
		}
		//
		if e.Name != nil {
			p.write(" ", e.Name.Name)
		} else {
			p.write(" ")
		}
		//
		p.parameters(e.Parameters)
		p.write(" ")
		p.block(e.Body)
	default:
		panic("unknown expression " + ast.KindOf(expr))
	}
}

// Write an expression in a position requiring an assignment expression, where
// comma expressions must be parenthesised.
func (p *emitter) operand(expr ast.Expression) {
	if isComma(expr) {
		p.write("(")
		p.expression(expr)
		p.write(")")
	} else {
		p.expression(expr)
	}
}

// Write the object of a member access or call, which must be parenthesised
// unless it binds at least as tightly.
func (p *emitter) receiver(expr ast.Expression) {
	switch erase(expr).(type) {
	case *ast.Binary, *ast.Conditional, *ast.CommaList, *ast.ArrowFunction, *ast.FunctionExpression,
		*ast.PrefixUnary, *ast.PostfixUnary:
		p.write("(")
		p.expression(expr)
		p.write(")")
	default:
		p.expression(expr)
	}
}

func (p *emitter) unaryOperand(expr ast.Expression) {
	switch erase(expr).(type) {
	case *ast.Binary, *ast.Conditional, *ast.CommaList, *ast.ArrowFunction:
		p.write("(")
		p.expression(expr)
		p.write(")")
	default:
		p.expression(expr)
	}
}

func (p *emitter) prefixUnary(expr *ast.PrefixUnary) {
	p.write(expr.Operator)
	//
	switch expr.Operator {
	case "typeof", "void", "delete", "await", "yield", "yield*":
		p.write(" ")
	case "+", "-":
		// Avoid "- -x" becoming "--x"
		if operand, ok := erase(expr.Operand).(*ast.PrefixUnary); ok && operand.Operator[0] == expr.Operator[0] {
			p.write(" ")
		}
	}
	//
	p.unaryOperand(expr.Operand)
}

func (p *emitter) binary(expr *ast.Binary) {
	var (
		operator = precedenceOf(expr.Operator)
		right    = operator == ASSIGNMENT || expr.Operator == "**"
	)
	//
	p.binaryOperand(expr.Left, expr.Operator, operator, !right)
	//
	if expr.Operator == "," {
		p.write(", ")
	} else {
		p.write(" ", expr.Operator, " ")
	}
	//
	p.binaryOperand(expr.Right, expr.Operator, operator, right)
}

// Write the operand of a binary expression, parenthesising it when it binds
// less tightly than the operator.  An operand of equal precedence needs no
// parentheses on the side the operator associates towards.
func (p *emitter) binaryOperand(expr ast.Expression, operator string, precedence int, associative bool) {
	var wrap bool
	//
	switch e := erase(expr).(type) {
	case *ast.Binary:
		inner := precedenceOf(e.Operator)
		wrap = inner < precedence || (inner == precedence && !associative) || mixesNullish(operator, e.Operator)
	case *ast.CommaList:
		wrap = precedence > COMMA
	case *ast.Conditional:
		wrap = precedence > CONDITIONAL || (precedence == CONDITIONAL && !associative)
	case *ast.ArrowFunction:
		wrap = precedence > ASSIGNMENT
	case *ast.PrefixUnary:
		wrap = e.Operator == "yield" || e.Operator == "yield*"
		wrap = (wrap && precedence > ASSIGNMENT) || (operator == "**" && !associative)
	}
	//
	if wrap {
		p.write("(")
		p.expression(expr)
		p.write(")")
	} else {
		p.expression(expr)
	}
}

// Binding strength of binary operators, where higher binds more tightly.
const (
	COMMA       = 0
	ASSIGNMENT  = 1
	CONDITIONAL = 2
)

var precedence = map[string]int{
	",": COMMA,
	"??": 3, "||": 4, "&&": 5, "|": 6, "^": 7, "&": 8,
	"==": 9, "!=": 9, "===": 9, "!==": 9,
	"<": 10, ">": 10, "<=": 10, ">=": 10, "instanceof": 10, "in": 10,
	"<<": 11, ">>": 11, ">>>": 11,
	"+": 12, "-": 12,
	"*": 13, "/": 13, "%": 13,
	"**": 14,
}

func precedenceOf(operator string) int {
	if prec, ok := precedence[operator]; ok {
		return prec
	}
	// Compound assignments
	return ASSIGNMENT
}

// "??" cannot be mixed with "||" or "&&" without parentheses.
func mixesNullish(outer string, inner string) bool {
	logical := func(op string) bool { return op == "??" || op == "||" || op == "&&" }
	//
	return logical(outer) && logical(inner) && (outer == "??") != (inner == "??")
}

func (p *emitter) arguments(args []ast.Expression) {
	p.write("(")
	//
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		//
		p.operand(arg)
	}
	//
	p.write(")")
}

func (p *emitter) objectLiteral(obj *ast.ObjectLiteral) {
	if len(obj.Properties) == 0 {
		p.write("{}")
		return
	}
	//
	multiline := obj.Multiline && p.inline == 0
	//
	if multiline {
		p.write("{")
	} else {
		p.write("{ ")
	}
	//
	p.list(len(obj.Properties), multiline, obj.TrailingComma, func(i int) {
		p.objectMember(obj.Properties[i])
	})
	//
	if multiline {
		p.write("}")
	} else {
		p.write(" }")
	}
}

func (p *emitter) objectMember(member ast.ObjectMember) {
	switch m := member.(type) {
	case *ast.PropertyAssignment:
		p.propertyName(m.Name)
		p.write(": ")
		p.operand(m.Initializer)
	case *ast.ShorthandPropertyAssignment:
		p.write(m.Name.Name)
	case *ast.SpreadAssignment:
		p.write("...")
		p.operand(m.Expression)
	case *ast.MethodDeclaration:
		p.method(m)
	case *ast.Accessor:
		p.accessor(m)
	default:
		panic("unknown object member " + ast.KindOf(member))
	}
}

func (p *emitter) arrayLiteral(arr *ast.ArrayLiteral) {
	n := len(arr.Elements)
	// A hole at the end needs its own comma
	trailing := arr.TrailingComma || (n > 0 && ast.KindOf(arr.Elements[n-1]) == "OmittedExpression")
	//
	p.write("[")
	p.list(n, arr.Multiline, trailing, func(i int) {
		p.operand(arr.Elements[i])
	})
	p.write("]")
}

func (p *emitter) propertyName(name ast.PropertyName) {
	switch n := name.(type) {
	case *ast.ComputedPropertyName:
		p.write("[")
		p.operand(n.Expression)
		p.write("]")
	case ast.Expression:
		p.expression(n)
	default:
		panic("unknown property name " + ast.KindOf(name))
	}
}

func (p *emitter) method(method *ast.MethodDeclaration) {
	p.modifiers(method.Modifiers)
	//
	if method.Asterisk {
		p.write("*")
	}
	//
	p.propertyName(method.Name)
	p.parameters(method.Parameters)
	p.write(" ")
	p.block(method.Body)
}

func (p *emitter) accessor(accessor *ast.Accessor) {
	p.modifiers(accessor.Modifiers)
	//
	if accessor.Setter {
		p.write("set ")
	} else {
		p.write("get ")
	}
	//
	p.propertyName(accessor.Name)
	p.parameters(accessor.Parameters)
	p.write(" ")
	p.block(accessor.Body)
}

func (p *emitter) arrowFunction(fn *ast.ArrowFunction) {
	p.modifiers(fn.Modifiers)
	p.parameters(fn.Parameters)
	p.write(" => ")
	//
	switch body := fn.Body.(type) {
	case *ast.Block:
		p.block(body)
	case ast.Expression:
		if _, ok := erase(body).(*ast.ObjectLiteral); ok || isComma(body) {
			p.write("(")
			p.expression(body)
			p.write(")")
		} else {
			p.expression(body)
		}
	}
}

func (p *emitter) parameters(params []*ast.Parameter) {
	p.write("(")
	//
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		//
		p.parameter(param)
	}
	//
	p.write(")")
}

func (p *emitter) parameter(param *ast.Parameter) {
	if param.DotDotDot {
		p.write("...")
	}
	//
	p.bindingName(param.Name)
	//
	if param.Initializer != nil {
		p.write(" = ")
		p.operand(param.Initializer)
	}
}

func (p *emitter) bindingName(name ast.BindingName) {
	switch n := name.(type) {
	case *ast.Identifier:
		p.write(n.Name)
	case *ast.ObjectBindingPattern:
		if len(n.Elements) == 0 {
			p.write("{}")
			return
		}
		//
		p.write("{ ")
		//
		for i, element := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			//
			p.bindingElement(element)
		}
		//
		p.write(" }")
	case *ast.ArrayBindingPattern:
		p.write("[")
		//
		for i, element := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			//
			if e, ok := element.(*ast.BindingElement); ok {
				p.bindingElement(e)
			}
		}
		//
		if count := len(n.Elements); count > 0 && ast.KindOf(n.Elements[count-1]) == "OmittedExpression" {
			p.write(",")
		}
		//
		p.write("]")
	default:
		panic("unknown binding name " + ast.KindOf(name))
	}
}

func (p *emitter) bindingElement(element *ast.BindingElement) {
	if element.DotDotDot {
		p.write("...")
	}
	//
	if element.PropertyName != nil {
		p.propertyName(element.PropertyName)
		p.write(": ")
	}
	//
	p.bindingName(element.Name)
	//
	if element.Initializer != nil {
		p.write(" = ")
		p.operand(element.Initializer)
	}
}

// Strip those wrappers which are erased when printing.
func erase(expr ast.Expression) ast.Expression {
	for {
		switch e := expr.(type) {
		case *ast.NonNullExpression:
			expr = e.Expression
		case *ast.AsExpression:
			expr = e.Expression
		case *ast.SatisfiesExpression:
			expr = e.Expression
		case *ast.TypeAssertion:
			expr = e.Expression
		default:
			return expr
		}
	}
}

func isComma(expr ast.Expression) bool {
	switch e := erase(expr).(type) {
	case *ast.CommaList:
		return true
	case *ast.Binary:
		return e.Operator == ","
	default:
		return false
	}
}
