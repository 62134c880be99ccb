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
package parser

import (
	"strings"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/lexer"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// Precedence of binary operators, where higher binds tighter.  Observe that
// ">", ">=", ">>" and ">>>" are handled separately, as they are recombined
// from adjacent ">" tokens.
var precedence = map[uint]int{
	lexer.NULLISH:              1,
	lexer.OR:                   2,
	lexer.AND:                  3,
	lexer.BITWISE_OR:           4,
	lexer.BITWISE_XOR:          5,
	lexer.BITWISE_AND:          6,
	lexer.EQUALS_EQUALS:        7,
	lexer.NOT_EQUALS:           7,
	lexer.EQUALS_EQUALS_EQUALS: 7,
	lexer.NOT_EQUALS_EQUALS:    7,
	lexer.LESS_THAN:            RELATIONAL,
	lexer.LESS_THAN_EQUALS:     RELATIONAL,
	lexer.KEYWORD_INSTANCEOF:   RELATIONAL,
	lexer.KEYWORD_IN:           RELATIONAL,
	lexer.SHIFT_LEFT:           SHIFT,
	lexer.ADD:                  10,
	lexer.SUB:                  10,
	lexer.MUL:                  11,
	lexer.DIV:                  11,
	lexer.REM:                  11,
	lexer.EXP:                  EXPONENT,
}

// RELATIONAL is the precedence of relational operators (including "as" and
// "satisfies").
const RELATIONAL = 8

// SHIFT is the precedence of shift operators.
const SHIFT = 9

// EXPONENT is the precedence of "**", which is right associative.
const EXPONENT = 12

// Parse an expression, including the comma operator.
func (p *Parser) parseExpression() (ast.Expression, []source.SyntaxError) {
	start := p.index
	expr, errs := p.parseAssignment()
	//
	for len(errs) == 0 && p.match(lexer.COMMA) {
		var rhs ast.Expression
		//
		if rhs, errs = p.parseAssignment(); len(errs) == 0 {
			expr = mark(p, &ast.Binary{Left: expr, Operator: ",", Right: rhs}, start)
		}
	}
	//
	return expr, errs
}

// Parse an assignment expression, which includes arrow functions and
// conditional expressions.
func (p *Parser) parseAssignment() (ast.Expression, []source.SyntaxError) {
	if p.mayStartArrowFunction() {
		start := p.index
		fn, committed, errs := p.parseArrowFunction()
		//
		if committed || len(errs) == 0 {
			return fn, errs
		}
		// Not an arrow function after all
		p.index = start
	}
	//
	start := p.index
	//
	if p.isContextual("yield") {
		if next := p.peek(1); next.Kind == lexer.MUL || (startsExpression(next) && !next.NewlineBefore) {
			return p.parseYield()
		}
	}
	//
	lhs, errs := p.parseConditional()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if op, width := p.assignmentOperator(); width > 0 {
		p.index += width
		//
		rhs, errs := p.parseAssignment()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.Binary{Left: lhs, Operator: op, Right: rhs}, start), nil
	}
	//
	return lhs, nil
}

// Parse "yield expr" or "yield* expr".
func (p *Parser) parseYield() (ast.Expression, []source.SyntaxError) {
	var (
		start    = p.index
		operator = p.text(p.advance())
	)
	//
	if p.match(lexer.MUL) {
		operator = "yield*"
	}
	//
	operand, errs := p.parseAssignment()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.PrefixUnary{Operator: operator, Operand: operand}, start), nil
}

func (p *Parser) assignmentOperator() (string, int) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case lexer.EQUALS, lexer.COMPOUND_ASSIGN:
		return p.text(lookahead), 1
	case lexer.GREATER_THAN:
		if op, width := p.scanGreater(); op == ">>=" || op == ">>>=" {
			return op, width
		}
	}
	//
	return "", 0
}

// Recombine adjacent ">" tokens into a single operator, returning that
// operator and the number of tokens it spans.
func (p *Parser) scanGreater() (string, int) {
	n := 1
	//
	for n < 3 && p.peek(n).Kind == lexer.GREATER_THAN && p.adjacent(p.index+n-1) {
		n++
	}
	//
	op := strings.Repeat(">", n)
	//
	if p.peek(n).Kind == lexer.EQUALS && p.adjacent(p.index+n-1) {
		return op + "=", n + 1
	}
	//
	return op, n
}

func (p *Parser) parseConditional() (ast.Expression, []source.SyntaxError) {
	start := p.index
	cond, errs := p.parseBinary(1)
	//
	if len(errs) > 0 || !p.match(lexer.QUESTION) {
		return cond, errs
	}
	// Allow "in" within the true branch
	noIn := p.noIn
	p.noIn = false
	whenTrue, errs := p.parseAssignment()
	p.noIn = noIn
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs := p.expect(lexer.COLON, "':'"); len(errs) > 0 {
		return nil, errs
	}
	//
	whenFalse, errs := p.parseAssignment()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.Conditional{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}, start), nil
}

// Parse a binary expression whose operators have at least a given precedence.
func (p *Parser) parseBinary(minimum int) (ast.Expression, []source.SyntaxError) {
	start := p.index
	lhs, errs := p.parseUnary()
	//
	for len(errs) == 0 {
		op, prec, width := p.binaryOperator()
		//
		if prec == 0 || prec < minimum {
			break
		}
		//
		p.index += width
		//
		if op == "as" || op == "satisfies" {
			var typ *ast.TypeNode
			//
			if typ, errs = p.parseType(); len(errs) > 0 {
				break
			} else if op == "as" {
				lhs = mark(p, &ast.AsExpression{Expression: lhs, Type: typ}, start)
			} else {
				lhs = mark(p, &ast.SatisfiesExpression{Expression: lhs, Type: typ}, start)
			}
			//
			continue
		}
		// All binary operators are left associative, except exponentiation.
		var rhs ast.Expression
		//
		if prec == EXPONENT {
			rhs, errs = p.parseBinary(prec)
		} else {
			rhs, errs = p.parseBinary(prec + 1)
		}
		//
		if len(errs) == 0 {
			lhs = mark(p, &ast.Binary{Left: lhs, Operator: op, Right: rhs}, start)
		}
	}
	//
	return lhs, errs
}

// Determine the binary operator at the lookahead, returning its text,
// precedence and the number of tokens it spans.  A precedence of zero
// indicates no binary operator.
func (p *Parser) binaryOperator() (string, int, int) {
	lookahead := p.lookahead()
	//
	switch {
	case lookahead.Kind == lexer.GREATER_THAN:
		switch op, width := p.scanGreater(); op {
		case ">", ">=":
			return op, RELATIONAL, width
		case ">>", ">>>":
			return op, SHIFT, width
		}
		// Must be an assignment
		return "", 0, 0
	case lookahead.Kind == lexer.KEYWORD_IN && p.noIn:
		return "", 0, 0
	case lookahead.Kind == lexer.IDENTIFIER && !lookahead.NewlineBefore:
		if text := p.text(lookahead); text == "as" || text == "satisfies" {
			return text, RELATIONAL, 1
		}
	}
	//
	if prec, ok := precedence[lookahead.Kind]; ok {
		return p.text(lookahead), prec, 1
	}
	//
	return "", 0, 0
}

func (p *Parser) parseUnary() (ast.Expression, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
	)
	//
	switch lookahead.Kind {
	case lexer.NOT, lexer.TILDE, lexer.ADD, lexer.SUB, lexer.INCREMENT, lexer.DECREMENT,
		lexer.KEYWORD_TYPEOF, lexer.KEYWORD_VOID, lexer.KEYWORD_DELETE:
		return p.parsePrefixUnary(start, p.text(p.advance()))
	case lexer.LESS_THAN:
		// Legacy type assertion "<T>x"
		p.advance()
		//
		typ, errs := p.parseType()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs := p.expect(lexer.GREATER_THAN, "'>'"); len(errs) > 0 {
			return nil, errs
		}
		//
		expr, errs := p.parseUnary()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.TypeAssertion{Type: typ, Expression: expr}, start), nil
	case lexer.IDENTIFIER:
		if next := p.peek(1); p.text(lookahead) == "await" && startsExpression(next) && !next.NewlineBefore {
			return p.parsePrefixUnary(start, p.text(p.advance()))
		}
	}
	//
	return p.parsePostfixUnary()
}

func (p *Parser) parsePrefixUnary(start int, operator string) (ast.Expression, []source.SyntaxError) {
	operand, errs := p.parseUnary()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.PrefixUnary{Operator: operator, Operand: operand}, start), nil
}

func (p *Parser) parsePostfixUnary() (ast.Expression, []source.SyntaxError) {
	start := p.index
	expr, errs := p.parseLeftHandSide()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if lookahead := p.lookahead(); !lookahead.NewlineBefore &&
		(lookahead.Kind == lexer.INCREMENT || lookahead.Kind == lexer.DECREMENT) {
		p.advance()
		return mark(p, &ast.PostfixUnary{Operand: expr, Operator: p.text(lookahead)}, start), nil
	}
	//
	return expr, nil
}

// Parse a member access or call expression, including "new" expressions.
func (p *Parser) parseLeftHandSide() (ast.Expression, []source.SyntaxError) {
	var (
		start = p.index
		expr  ast.Expression
		errs  []source.SyntaxError
	)
	//
	if p.is(lexer.KEYWORD_NEW) {
		expr, errs = p.parseNew()
	} else {
		expr, errs = p.parsePrimary()
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return p.parseCallTail(expr, start, true)
}

// Parse any number of member accesses, non-null assertions and (if permitted)
// calls following an expression.  Observe that "x!(...)" is the shape of a
// macro call.
//
//nolint:gocyclo
func (p *Parser) parseCallTail(expr ast.Expression, start int, calls bool) (ast.Expression, []source.SyntaxError) {
	for {
		var (
			lookahead = p.lookahead()
			errs      []source.SyntaxError
		)
		//
		switch lookahead.Kind {
		case lexer.DOT:
			p.advance()
			//
			var name *ast.Identifier
			if name, errs = p.parseIdentifierName(); len(errs) == 0 {
				expr = mark(p, &ast.PropertyAccess{Expression: expr, Name: name}, start)
			}
		case lexer.QUESTION_DOT:
			p.advance()
			//
			switch p.lookahead().Kind {
			case lexer.LBRACE:
				var args []ast.Expression
				if args, errs = p.parseArguments(); len(errs) == 0 {
					expr = mark(p, &ast.CallExpression{Expression: expr, QuestionDot: true, Arguments: args}, start)
				}
			case lexer.LSQUARE:
				var arg ast.Expression
				if arg, errs = p.parseIndex(); len(errs) == 0 {
					expr = mark(p, &ast.ElementAccess{Expression: expr, QuestionDot: true, Argument: arg}, start)
				}
			default:
				var name *ast.Identifier
				if name, errs = p.parseIdentifierName(); len(errs) == 0 {
					expr = mark(p, &ast.PropertyAccess{Expression: expr, QuestionDot: true, Name: name}, start)
				}
			}
		case lexer.LSQUARE:
			var arg ast.Expression
			if arg, errs = p.parseIndex(); len(errs) == 0 {
				expr = mark(p, &ast.ElementAccess{Expression: expr, Argument: arg}, start)
			}
		case lexer.NOT:
			if lookahead.NewlineBefore {
				return expr, nil
			}
			//
			p.advance()
			expr = mark(p, &ast.NonNullExpression{Expression: expr}, start)
		case lexer.LBRACE:
			if !calls {
				return expr, nil
			}
			//
			var args []ast.Expression
			if args, errs = p.parseArguments(); len(errs) == 0 {
				expr = mark(p, &ast.CallExpression{Expression: expr, Arguments: args}, start)
			}
		case lexer.LESS_THAN:
			if !calls {
				return expr, nil
			}
			//
			targs, ok := p.tryTypeArguments()
			if !ok {
				return expr, nil
			}
			//
			var args []ast.Expression
			if args, errs = p.parseArguments(); len(errs) == 0 {
				expr = mark(p, &ast.CallExpression{Expression: expr, TypeArguments: targs, Arguments: args}, start)
			}
		case lexer.TEMPLATE:
			if lookahead.NewlineBefore {
				return expr, nil
			}
			//
			return nil, p.syntaxErrors(lookahead, "tagged templates are not supported")
		default:
			return expr, nil
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
	}
}

// Parse "[expr]" following an expression.
func (p *Parser) parseIndex() (ast.Expression, []source.SyntaxError) {
	p.advance()
	//
	noIn := p.noIn
	p.noIn = false
	arg, errs := p.parseExpression()
	p.noIn = noIn
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs := p.expect(lexer.RSQUARE, "']'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return arg, nil
}

func (p *Parser) parseNew() (ast.Expression, []source.SyntaxError) {
	var (
		start  = p.index
		callee ast.Expression
		errs   []source.SyntaxError
	)
	// Advance past "new"
	p.advance()
	//
	if p.is(lexer.DOT) {
		return nil, p.syntaxErrors(p.lookahead(), "new.target is not supported")
	} else if p.is(lexer.KEYWORD_NEW) {
		callee, errs = p.parseNew()
	} else {
		callee, errs = p.parsePrimary()
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	// Member accesses only, since any arguments belong to the "new"
	if callee, errs = p.parseCallTail(callee, start+1, false); len(errs) > 0 {
		return nil, errs
	}
	//
	var (
		targs []*ast.TypeNode
		args  []ast.Expression
	)
	//
	if p.is(lexer.LESS_THAN) {
		targs, _ = p.tryTypeArguments()
	}
	//
	if p.is(lexer.LBRACE) {
		if args, errs = p.parseArguments(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return mark(p, &ast.NewExpression{Expression: callee, TypeArguments: targs, Arguments: args}, start), nil
}

// Parse an argument list "(a, ...b)".
func (p *Parser) parseArguments() ([]ast.Expression, []source.SyntaxError) {
	var args []ast.Expression
	//
	if _, errs := p.expect(lexer.LBRACE, "'('"); len(errs) > 0 {
		return nil, errs
	}
	//
	noIn := p.noIn
	p.noIn = false
	//
	defer func() { p.noIn = noIn }()
	//
	for !p.is(lexer.RBRACE) {
		arg, errs := p.parseSpreadOrAssignment()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	if _, errs := p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return args, nil
}

func (p *Parser) parseSpreadOrAssignment() (ast.Expression, []source.SyntaxError) {
	start := p.index
	//
	if !p.match(lexer.ELLIPSIS) {
		return p.parseAssignment()
	}
	//
	expr, errs := p.parseAssignment()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.SpreadElement{Expression: expr}, start), nil
}

//nolint:gocyclo
func (p *Parser) parsePrimary() (ast.Expression, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		text      = p.text(lookahead)
	)
	//
	switch lookahead.Kind {
	case lexer.IDENTIFIER:
		if next := p.peek(1); text == "async" && next.Kind == lexer.KEYWORD_FUNCTION && !next.NewlineBefore {
			return p.parseFunctionExpression()
		}
		//
		p.advance()
		//
		return mark(p, &ast.Identifier{Name: text}, start), nil
	case lexer.NUMBER:
		p.advance()
		return mark(p, &ast.NumericLiteral{Text: text}, start), nil
	case lexer.STRING:
		p.advance()
		return mark(p, &ast.StringLiteral{Raw: text, Value: unquote(text)}, start), nil
	case lexer.TEMPLATE:
		p.advance()
		return mark(p, &ast.Verbatim{Text: text}, start), nil
	case lexer.KEYWORD_TRUE, lexer.KEYWORD_FALSE, lexer.KEYWORD_NULL, lexer.KEYWORD_THIS, lexer.KEYWORD_SUPER:
		p.advance()
		return mark(p, &ast.Keyword{Text: text}, start), nil
	case lexer.KEYWORD_IMPORT:
		// Dynamic import "import(...)" or "import.meta"
		if next := p.peek(1).Kind; next == lexer.LBRACE || next == lexer.DOT {
			p.advance()
			return mark(p, &ast.Identifier{Name: text}, start), nil
		}
	case lexer.LBRACE:
		return p.parseParenthesized()
	case lexer.LSQUARE:
		return p.parseArrayLiteral()
	case lexer.LCURLY:
		return p.parseObjectLiteral()
	case lexer.KEYWORD_FUNCTION:
		return p.parseFunctionExpression()
	case lexer.KEYWORD_CLASS:
		return nil, p.syntaxErrors(lookahead, "class expressions are not supported")
	case lexer.DIV:
		return nil, p.syntaxErrors(lookahead, "regular expression literals are not supported")
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected expression")
}

func (p *Parser) parseParenthesized() (ast.Expression, []source.SyntaxError) {
	start := p.index
	// Advance past "("
	p.advance()
	//
	noIn := p.noIn
	p.noIn = false
	expr, errs := p.parseExpression()
	p.noIn = noIn
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs := p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.ParenthesizedExpression{Expression: expr}, start), nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, []source.SyntaxError) {
	var (
		start    = p.index
		elements []ast.Expression
		trailing bool
	)
	// Advance past "["
	p.advance()
	//
	multiline := p.lookahead().NewlineBefore
	//
	for !p.is(lexer.RSQUARE) {
		if p.is(lexer.COMMA) {
			hole := p.index
			p.advance()
			elements = append(elements, mark(p, &ast.OmittedExpression{}, hole))
			//
			continue
		}
		//
		element, errs := p.parseSpreadOrAssignment()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, element)
		//
		if !p.match(lexer.COMMA) {
			break
		}
		//
		trailing = p.is(lexer.RSQUARE)
	}
	//
	if _, errs := p.expect(lexer.RSQUARE, "']'"); len(errs) > 0 {
		return nil, errs
	}
	//
	literal := &ast.ArrayLiteral{Elements: elements, Multiline: multiline, TrailingComma: trailing}
	//
	return mark(p, literal, start), nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, []source.SyntaxError) {
	var (
		start    = p.index
		members  []ast.ObjectMember
		trailing bool
	)
	// Advance past "{"
	p.advance()
	//
	multiline := p.lookahead().NewlineBefore
	//
	for !p.is(lexer.RCURLY) {
		member, errs := p.parseObjectMember()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		members = append(members, member)
		//
		if !p.match(lexer.COMMA) {
			break
		}
		//
		trailing = p.is(lexer.RCURLY)
	}
	//
	if _, errs := p.expect(lexer.RCURLY, "'}'"); len(errs) > 0 {
		return nil, errs
	}
	//
	literal := &ast.ObjectLiteral{Properties: members, Multiline: multiline, TrailingComma: trailing}
	//
	return mark(p, literal, start), nil
}

func (p *Parser) parseObjectMember() (ast.ObjectMember, []source.SyntaxError) {
	var (
		start = p.index
		mods  ast.Modifiers
	)
	//
	if p.match(lexer.ELLIPSIS) {
		expr, errs := p.parseAssignment()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.SpreadAssignment{Expression: expr}, start), nil
	} else if (p.isContextual("get") || p.isContextual("set")) && startsPropertyName(p.peek(1)) {
		accessor, errs := p.parseAccessor(start, nil)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return accessor, nil
	} else if next := p.peek(1); p.isContextual("async") && startsPropertyName(next) && !next.NewlineBefore {
		p.advance()
		//
		mods = ast.Modifiers{"async"}
	}
	//
	asterisk := p.match(lexer.MUL)
	//
	name, errs := p.parsePropertyName()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	switch {
	case p.is(lexer.LBRACE) || p.is(lexer.LESS_THAN):
		method, errs := p.parseMethod(start, mods, asterisk, name)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return method, nil
	case p.match(lexer.COLON):
		init, errs := p.parseAssignment()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.PropertyAssignment{Name: name, Initializer: init}, start), nil
	case p.is(lexer.COMMA) || p.is(lexer.RCURLY):
		if id, ok := name.(*ast.Identifier); ok && mods == nil && !asterisk {
			return mark(p, &ast.ShorthandPropertyAssignment{Name: id}, start), nil
		}
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "expected ':'")
}

// Parse a property name, which is an identifier (including reserved words), a
// string or numeric literal, or a computed name "[expr]".
func (p *Parser) parsePropertyName() (ast.PropertyName, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		text      = p.text(lookahead)
	)
	//
	switch {
	case lexer.IsIdentifierName(lookahead.Kind):
		p.advance()
		return mark(p, &ast.Identifier{Name: text}, start), nil
	case lookahead.Kind == lexer.STRING:
		p.advance()
		return mark(p, &ast.StringLiteral{Raw: text, Value: unquote(text)}, start), nil
	case lookahead.Kind == lexer.NUMBER:
		p.advance()
		return mark(p, &ast.NumericLiteral{Text: text}, start), nil
	case lookahead.Kind == lexer.LSQUARE:
		expr, errs := p.parseIndex()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.ComputedPropertyName{Expression: expr}, start), nil
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected property name")
}

// Parse an identifier (or reserved word) following ".".
func (p *Parser) parseIdentifierName() (*ast.Identifier, []source.SyntaxError) {
	start, lookahead := p.index, p.lookahead()
	//
	if !lexer.IsIdentifierName(lookahead.Kind) {
		return nil, p.syntaxErrors(lookahead, "expected identifier")
	}
	//
	p.advance()
	//
	return mark(p, &ast.Identifier{Name: p.text(lookahead)}, start), nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, []source.SyntaxError) {
	start, lookahead := p.index, p.lookahead()
	//
	if lookahead.Kind != lexer.IDENTIFIER {
		return nil, p.syntaxErrors(lookahead, "expected identifier")
	}
	//
	p.advance()
	//
	return mark(p, &ast.Identifier{Name: p.text(lookahead)}, start), nil
}

// ============================================================================
// Functions
// ============================================================================

// Check whether the lookahead might start an arrow function.  This is only a
// quick check, since distinguishing "(x) => x" from "(x)" requires
// backtracking.
func (p *Parser) mayStartArrowFunction() bool {
	var (
		lookahead = p.lookahead()
		next      = p.peek(1)
	)
	//
	switch lookahead.Kind {
	case lexer.LBRACE, lexer.LESS_THAN:
		return true
	case lexer.IDENTIFIER:
		if next.Kind == lexer.RIGHTARROW {
			return true
		} else if p.text(lookahead) == "async" && !next.NewlineBefore {
			return next.Kind == lexer.LBRACE || next.Kind == lexer.LESS_THAN ||
				(next.Kind == lexer.IDENTIFIER && p.peek(2).Kind == lexer.RIGHTARROW)
		}
	}
	//
	return false
}

// Parse an arrow function.  This additionally indicates whether or not the
// parser committed to an arrow function (i.e. passed "=>"), since errors
// before that point simply mean this is not an arrow function.
func (p *Parser) parseArrowFunction() (ast.Expression, bool, []source.SyntaxError) {
	var (
		start  = p.index
		mods   ast.Modifiers
		params []*ast.Parameter
		typ    *ast.TypeNode
		body   ast.Node
		errs   []source.SyntaxError
	)
	//
	if p.isContextual("async") && p.peek(1).Kind != lexer.RIGHTARROW {
		p.advance()
		//
		mods = ast.Modifiers{"async"}
	}
	//
	if p.is(lexer.IDENTIFIER) {
		var name *ast.Identifier
		//
		pstart := p.index
		name, _ = p.parseIdentifier()
		params = []*ast.Parameter{mark(p, &ast.Parameter{Name: name}, pstart)}
	} else if params, typ, errs = p.parseSignature(); len(errs) > 0 {
		return nil, false, errs
	}
	//
	if _, errs := p.expect(lexer.RIGHTARROW, "'=>'"); len(errs) > 0 {
		return nil, false, errs
	}
	// Committed
	if p.is(lexer.LCURLY) {
		body, errs = p.parseBlock()
	} else {
		noIn := p.noIn
		p.noIn = false
		body, errs = p.parseAssignment()
		p.noIn = noIn
	}
	//
	if len(errs) > 0 {
		return nil, true, errs
	}
	//
	fn := &ast.ArrowFunction{Modifiers: mods, Parameters: params, Type: typ, Body: body}
	//
	return mark(p, fn, start), true, nil
}

func (p *Parser) parseFunctionExpression() (ast.Expression, []source.SyntaxError) {
	var (
		start = p.index
		mods  ast.Modifiers
		name  *ast.Identifier
		errs  []source.SyntaxError
	)
	//
	if p.isContextual("async") {
		p.advance()
		//
		mods = ast.Modifiers{"async"}
	}
	//
	if _, errs = p.expect(lexer.KEYWORD_FUNCTION, "'function'"); len(errs) > 0 {
		return nil, errs
	}
	//
	asterisk := p.match(lexer.MUL)
	//
	if p.is(lexer.IDENTIFIER) {
		name, _ = p.parseIdentifier()
	}
	//
	params, typ, errs := p.parseSignature()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	body, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	fn := &ast.FunctionExpression{Modifiers: mods, Asterisk: asterisk, Name: name, Parameters: params,
		Type: typ, Body: body}
	//
	return mark(p, fn, start), nil
}

// Parse the signature of a function, i.e. "<T>(params): type" where the type
// parameters and return type are optional.
func (p *Parser) parseSignature() ([]*ast.Parameter, *ast.TypeNode, []source.SyntaxError) {
	var typ *ast.TypeNode
	//
	if p.is(lexer.LESS_THAN) {
		if errs := p.skipAngles(); len(errs) > 0 {
			return nil, nil, errs
		}
	}
	//
	params, errs := p.parseParameters()
	if len(errs) > 0 {
		return nil, nil, errs
	}
	//
	if p.match(lexer.COLON) {
		if typ, errs = p.parseType(); len(errs) > 0 {
			return nil, nil, errs
		}
	}
	//
	return params, typ, nil
}

// Parse a parameter list "(a, b?: T, ...rest)".
func (p *Parser) parseParameters() ([]*ast.Parameter, []source.SyntaxError) {
	var params []*ast.Parameter
	//
	if _, errs := p.expect(lexer.LBRACE, "'('"); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.is(lexer.RBRACE) {
		param, errs := p.parseParameter()
		if len(errs) > 0 {
			return nil, errs
		} else if param != nil {
			params = append(params, param)
		}
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	if _, errs := p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return params, nil
}

// Parse a single parameter.  A "this" parameter only has a type, and hence no
// parameter is returned for it.
func (p *Parser) parseParameter() (*ast.Parameter, []source.SyntaxError) {
	var (
		start = p.index
		param ast.Parameter
		errs  []source.SyntaxError
	)
	//
	switch lookahead := p.lookahead(); {
	case lookahead.Kind == lexer.AT:
		return nil, p.syntaxErrors(lookahead, "decorators are not supported")
	case lookahead.Kind == lexer.KEYWORD_THIS && p.peek(1).Kind == lexer.COLON:
		p.advance()
		p.advance()
		_, errs = p.parseType()
		//
		return nil, errs
	case isParameterModifier(p.text(lookahead)) && lookahead.Kind == lexer.IDENTIFIER && startsBindingName(p.peek(1)):
		return nil, p.syntaxErrors(lookahead, "parameter properties are not supported")
	}
	//
	param.DotDotDot = p.match(lexer.ELLIPSIS)
	//
	if param.Name, errs = p.parseBindingName(); len(errs) > 0 {
		return nil, errs
	}
	//
	param.Optional = p.match(lexer.QUESTION)
	//
	if p.match(lexer.COLON) {
		if param.Type, errs = p.parseType(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.match(lexer.EQUALS) {
		if param.Initializer, errs = p.parseAssignment(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return mark(p, &param, start), nil
}

// ============================================================================
// Binding patterns
// ============================================================================

func (p *Parser) parseBindingName() (ast.BindingName, []source.SyntaxError) {
	switch p.lookahead().Kind {
	case lexer.LCURLY:
		return p.parseObjectBindingPattern()
	case lexer.LSQUARE:
		return p.parseArrayBindingPattern()
	case lexer.IDENTIFIER:
		id, errs := p.parseIdentifier()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return id, nil
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "expected binding name")
}

func (p *Parser) parseObjectBindingPattern() (ast.BindingName, []source.SyntaxError) {
	var (
		start    = p.index
		elements []*ast.BindingElement
	)
	// Advance past "{"
	p.advance()
	//
	for !p.is(lexer.RCURLY) {
		var (
			estart  = p.index
			element ast.BindingElement
			errs    []source.SyntaxError
		)
		//
		if p.match(lexer.ELLIPSIS) {
			element.DotDotDot = true
			element.Name, errs = p.parseBindingName()
		} else if element.PropertyName, errs = p.parsePropertyName(); len(errs) == 0 {
			if p.match(lexer.COLON) {
				element.Name, errs = p.parseBindingName()
			} else if id, ok := element.PropertyName.(*ast.Identifier); ok {
				element.Name, element.PropertyName = id, nil
			} else {
				errs = p.syntaxErrors(p.lookahead(), "expected ':'")
			}
		}
		//
		if len(errs) == 0 && p.match(lexer.EQUALS) {
			element.Initializer, errs = p.parseAssignment()
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, mark(p, &element, estart))
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	if _, errs := p.expect(lexer.RCURLY, "'}'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.ObjectBindingPattern{Elements: elements}, start), nil
}

func (p *Parser) parseArrayBindingPattern() (ast.BindingName, []source.SyntaxError) {
	var (
		start    = p.index
		elements []ast.Node
	)
	// Advance past "["
	p.advance()
	//
	for !p.is(lexer.RSQUARE) {
		var (
			estart  = p.index
			element ast.BindingElement
			errs    []source.SyntaxError
		)
		//
		if p.match(lexer.COMMA) {
			elements = append(elements, mark(p, &ast.OmittedExpression{}, estart))
			continue
		}
		//
		element.DotDotDot = p.match(lexer.ELLIPSIS)
		//
		if element.Name, errs = p.parseBindingName(); len(errs) == 0 && p.match(lexer.EQUALS) {
			element.Initializer, errs = p.parseAssignment()
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, mark(p, &element, estart))
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	if _, errs := p.expect(lexer.RSQUARE, "']'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.ArrayBindingPattern{Elements: elements}, start), nil
}

// ============================================================================
// Classification
// ============================================================================

func startsExpression(token lexer.Token) bool {
	switch token.Kind {
	case lexer.IDENTIFIER, lexer.NUMBER, lexer.STRING, lexer.TEMPLATE, lexer.LBRACE, lexer.LSQUARE,
		lexer.LCURLY, lexer.NOT, lexer.TILDE, lexer.ADD, lexer.SUB, lexer.INCREMENT, lexer.DECREMENT,
		lexer.LESS_THAN, lexer.KEYWORD_FUNCTION, lexer.KEYWORD_NEW, lexer.KEYWORD_THIS, lexer.KEYWORD_SUPER,
		lexer.KEYWORD_TRUE, lexer.KEYWORD_FALSE, lexer.KEYWORD_NULL, lexer.KEYWORD_TYPEOF, lexer.KEYWORD_VOID,
		lexer.KEYWORD_DELETE, lexer.KEYWORD_IMPORT:
		return true
	default:
		return false
	}
}

func startsPropertyName(token lexer.Token) bool {
	switch token.Kind {
	case lexer.STRING, lexer.NUMBER, lexer.LSQUARE, lexer.MUL:
		return true
	default:
		return lexer.IsIdentifierName(token.Kind)
	}
}

func startsBindingName(token lexer.Token) bool {
	return token.Kind == lexer.IDENTIFIER || token.Kind == lexer.LCURLY || token.Kind == lexer.LSQUARE
}

func isParameterModifier(text string) bool {
	switch text {
	case "public", "private", "protected", "readonly", "override":
		return true
	default:
		return false
	}
}
