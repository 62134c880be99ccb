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
	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/lexer"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// Type annotations carry no runtime semantics.  Hence, they are only parsed
// far enough to know where they end, and their text is retained as an opaque
// node.

// Parse a type annotation.
func (p *Parser) parseType() (*ast.TypeNode, []source.SyntaxError) {
	start := p.index
	//
	if errs := p.skipType(); len(errs) > 0 {
		return nil, errs
	}
	//
	var (
		first = p.tokens[start]
		last  = p.previous()
		span  = source.NewSpan(first.Span.Start(), last.Span.End())
	)
	//
	return mark(p, &ast.TypeNode{Text: p.srcfile.Text(span)}, start), nil
}

func (p *Parser) skipType() []source.SyntaxError {
	if errs := p.skipUnionType(); len(errs) > 0 {
		return errs
	}
	// Conditional type "A extends B ? C : D"
	if p.match(lexer.KEYWORD_EXTENDS) {
		if errs := p.skipUnionType(); len(errs) > 0 {
			return errs
		} else if _, errs := p.expect(lexer.QUESTION, "'?'"); len(errs) > 0 {
			return errs
		} else if errs := p.skipType(); len(errs) > 0 {
			return errs
		} else if _, errs := p.expect(lexer.COLON, "':'"); len(errs) > 0 {
			return errs
		}
		//
		return p.skipType()
	}
	//
	return nil
}

// Union and intersection types, including a leading "|" or "&".
func (p *Parser) skipUnionType() []source.SyntaxError {
	if !p.match(lexer.BITWISE_OR) {
		p.match(lexer.BITWISE_AND)
	}
	//
	for {
		if errs := p.skipPostfixType(); len(errs) > 0 {
			return errs
		} else if !p.match(lexer.BITWISE_OR) && !p.match(lexer.BITWISE_AND) {
			return nil
		}
	}
}

// Array types "T[]" and indexed access types "T[K]".
func (p *Parser) skipPostfixType() []source.SyntaxError {
	if errs := p.skipPrimaryType(); len(errs) > 0 {
		return errs
	}
	//
	for p.is(lexer.LSQUARE) && !p.lookahead().NewlineBefore {
		if errs := p.skipBalanced(lexer.LSQUARE, lexer.RSQUARE); len(errs) > 0 {
			return errs
		}
	}
	//
	return nil
}

//nolint:gocyclo
func (p *Parser) skipPrimaryType() []source.SyntaxError {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case lexer.LBRACE:
		// Parenthesised or function type
		if errs := p.skipBalanced(lexer.LBRACE, lexer.RBRACE); len(errs) > 0 {
			return errs
		} else if p.match(lexer.RIGHTARROW) {
			return p.skipType()
		}
		//
		return nil
	case lexer.LESS_THAN, lexer.KEYWORD_NEW:
		// Generic function type, or constructor type
		p.match(lexer.KEYWORD_NEW)
		//
		if p.is(lexer.LESS_THAN) {
			if errs := p.skipAngles(); len(errs) > 0 {
				return errs
			}
		}
		//
		if errs := p.skipBalanced(lexer.LBRACE, lexer.RBRACE); len(errs) > 0 {
			return errs
		} else if _, errs := p.expect(lexer.RIGHTARROW, "'=>'"); len(errs) > 0 {
			return errs
		}
		//
		return p.skipType()
	case lexer.LCURLY:
		return p.skipBalanced(lexer.LCURLY, lexer.RCURLY)
	case lexer.LSQUARE:
		return p.skipBalanced(lexer.LSQUARE, lexer.RSQUARE)
	case lexer.KEYWORD_TYPEOF:
		p.advance()
		return p.skipTypeReference()
	case lexer.STRING, lexer.NUMBER, lexer.TEMPLATE, lexer.KEYWORD_TRUE, lexer.KEYWORD_FALSE,
		lexer.KEYWORD_NULL, lexer.KEYWORD_VOID, lexer.KEYWORD_THIS:
		p.advance()
		return nil
	case lexer.SUB:
		p.advance()
		_, errs := p.expect(lexer.NUMBER, "number")
		//
		return errs
	case lexer.IDENTIFIER:
		switch p.text(lookahead) {
		case "keyof", "readonly", "unique":
			if p.startsType(p.peek(1)) {
				p.advance()
				return p.skipPostfixType()
			}
		case "infer", "asserts":
			if next := p.peek(1); lexer.IsIdentifierName(next.Kind) && !next.NewlineBefore {
				p.advance()
				return p.skipPrimaryType()
			}
		}
		//
		return p.skipTypeReference()
	}
	//
	return p.syntaxErrors(lookahead, "expected type")
}

// Type references, such as "T", "ns.T" or "Map<K, V>", along with type
// predicates "x is T".
func (p *Parser) skipTypeReference() []source.SyntaxError {
	if !lexer.IsIdentifierName(p.lookahead().Kind) {
		return p.syntaxErrors(p.lookahead(), "expected type")
	}
	//
	p.advance()
	//
	for p.is(lexer.DOT) {
		p.advance()
		//
		if !lexer.IsIdentifierName(p.lookahead().Kind) {
			return p.syntaxErrors(p.lookahead(), "expected identifier")
		}
		//
		p.advance()
	}
	//
	if p.is(lexer.LESS_THAN) && !p.lookahead().NewlineBefore {
		if errs := p.skipAngles(); len(errs) > 0 {
			return errs
		}
	}
	//
	if p.isContextual("is") && !p.lookahead().NewlineBefore {
		p.advance()
		return p.skipType()
	}
	//
	return nil
}

func (p *Parser) startsType(token lexer.Token) bool {
	switch token.Kind {
	case lexer.LBRACE, lexer.LESS_THAN, lexer.LCURLY, lexer.LSQUARE, lexer.STRING, lexer.NUMBER,
		lexer.TEMPLATE, lexer.SUB, lexer.KEYWORD_NEW, lexer.KEYWORD_TYPEOF:
		return true
	default:
		return lexer.IsIdentifierName(token.Kind)
	}
}

// Skip a type argument or type parameter list "<...>".
func (p *Parser) skipAngles() []source.SyntaxError {
	return p.skipBalanced(lexer.LESS_THAN, lexer.GREATER_THAN)
}

// Skip a balanced region, starting from the opening token at the lookahead
// and finishing after the matching closing token.
func (p *Parser) skipBalanced(open uint, close uint) []source.SyntaxError {
	var (
		start = p.lookahead()
		depth = 0
	)
	//
	if _, errs := p.expect(open, "opening bracket"); len(errs) > 0 {
		return errs
	}
	//
	for depth >= 0 {
		switch p.lookahead().Kind {
		case lexer.END_OF:
			return p.syntaxErrors(start, "unbalanced brackets")
		case open:
			depth++
		case close:
			depth--
		}
		//
		p.advance()
	}
	//
	return nil
}

// Attempt to parse a list of type arguments "<T, U>" for a call, restoring
// the parser position when this is not possible.  Type arguments are only
// accepted if they are followed by an argument list.
func (p *Parser) tryTypeArguments() ([]*ast.TypeNode, bool) {
	var (
		start = p.index
		args  []*ast.TypeNode
	)
	//
	if !p.match(lexer.LESS_THAN) {
		return nil, false
	}
	//
	for {
		arg, errs := p.parseType()
		//
		if len(errs) > 0 {
			p.index = start
			return nil, false
		}
		//
		args = append(args, arg)
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	if !p.match(lexer.GREATER_THAN) || !p.is(lexer.LBRACE) {
		p.index = start
		return nil, false
	}
	//
	return args, true
}
