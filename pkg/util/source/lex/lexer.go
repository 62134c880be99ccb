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
package lex

import (
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// Token is a lexed token, identifying its kind and the items it covers.  The
// trivia of a token is the (possibly empty) region of skipped items which
// immediately precedes it, such as whitespace and comments.
type Token struct {
	Kind   uint
	Span   source.Span
	Trivia source.Span
}

// Rule associates the items matched by a scanner with a given token kind.
type Rule[T any] struct {
	Scanner Scanner[T]
	Kind    uint
}

// NewRule constructs a new lexing rule which maps matching items to a given
// token kind.
func NewRule[T any](scanner Scanner[T], kind uint) Rule[T] {
	return Rule[T]{scanner, kind}
}

// Lexer splits a sequence of items into tokens using an ordered set of rules,
// where the first matching rule wins.  Tokens whose kind is marked as trivia
// are dropped, though the region they covered is retained by the token which
// follows.
type Lexer[T any] struct {
	rules  []Rule[T]
	trivia map[uint]bool
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](rules ...Rule[T]) *Lexer[T] {
	return &Lexer[T]{rules, make(map[uint]bool)}
}

// Skip marks one or more token kinds as trivia.
func (p *Lexer[T]) Skip(kinds ...uint) *Lexer[T] {
	for _, kind := range kinds {
		p.trivia[kind] = true
	}
	//
	return p
}

// Lex tokenises a given input.  This returns the tokens matched, along with the
// index at which lexing stopped.  Lexing stops either at the end of the input
// or at the first item for which no rule matches, hence the entire input was
// lexed only when the returned index equals its length.  A rule matching the
// end of the input (see Eof) produces an empty token at its end.
func (p *Lexer[T]) Lex(input []T) ([]Token, uint) {
	var (
		tokens []Token
		index  = 0
		trivia = 0
	)
	//
	for index <= len(input) {
		kind, n, ok := p.match(input[index:])
		//
		if !ok {
			break
		}
		//
		end := min(len(input), index+int(n))
		//
		if !p.trivia[kind] {
			tokens = append(tokens, Token{kind, source.NewSpan(index, end), source.NewSpan(trivia, index)})
			trivia = end
		}
		//
		if index == len(input) {
			// end of input
			break
		}
		//
		index = end
	}
	//
	return tokens, uint(min(index, len(input)))
}

// Find the first rule matching at the start of some items.
func (p *Lexer[T]) match(items []T) (uint, uint, bool) {
	for _, rule := range p.rules {
		if n := rule.Scanner(items); n > 0 {
			return rule.Kind, n, true
		}
	}
	//
	return 0, 0, false
}
