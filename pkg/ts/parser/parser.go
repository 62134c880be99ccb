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
// Package parser turns TypeScript source files into syntax trees.
package parser

import (
	"fmt"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/lexer"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// Parse accepts a given source file and parses it into a syntax tree, along
// with a source map recording the span of every parsed node.  Only the first
// syntax error encountered is reported.
func Parse(srcfile *source.File) (*ast.SourceFile, *source.Map[ast.Node], []source.SyntaxError) {
	parser := NewParser(srcfile)
	file, errs := parser.Parse()
	//
	return file, parser.srcmap, errs
}

// Parser is a recursive-descent parser for the subset of TypeScript understood
// by the macro expander.
type Parser struct {
	srcfile *source.File
	tokens  []lexer.Token
	// Source mapping
	srcmap *source.Map[ast.Node]
	// Position within the tokens
	index int
	// Indicates "in" cannot be used as a binary operator (i.e. whilst parsing
	// a for loop initialiser).
	noIn bool
	// Depth of nested ambient ("declare") declarations
	ambient int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[ast.Node](srcfile)
	//
	return &Parser{srcfile, nil, srcmap, 0, false, 0}
}

// SourceMap returns the source map populated by this parser.
func (p *Parser) SourceMap() *source.Map[ast.Node] {
	return p.srcmap
}

// Parse the given source file into a syntax tree, or produce some number of
// syntax errors.
func (p *Parser) Parse() (*ast.SourceFile, []source.SyntaxError) {
	var errors []source.SyntaxError
	// Convert source file into tokens
	if p.tokens, errors = lexer.Lex(p.srcfile); len(errors) > 0 {
		return nil, errors
	}
	//
	stmts, errors := p.parseStatements(lexer.END_OF)
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	file := &ast.SourceFile{Filename: p.srcfile.Filename(), Statements: stmts}
	//
	return mark(p, file, 0), nil
}

// ============================================================================
// Helpers
// ============================================================================

// Record the span of a node, starting from a given token and finishing with
// the last token consumed.
func mark[T ast.Node](p *Parser, node T, start int) T {
	from := p.tokens[start].Span.Start()
	to := from
	//
	if p.index > start {
		to = p.tokens[p.index-1].Span.End()
	}
	//
	if !p.srcmap.Has(node) {
		p.srcmap.Put(node, source.NewSpan(from, to))
	}
	//
	return node
}

func (p *Parser) lookahead() lexer.Token {
	return p.tokens[p.index]
}

// Peek at the token n positions ahead (where 0 is the lookahead), stopping at
// the end of file.
func (p *Parser) peek(n int) lexer.Token {
	return p.tokens[min(p.index+n, len(p.tokens)-1)]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[max(0, p.index-1)]
}

// Advance past the lookahead, returning it.  The end of file is never passed.
func (p *Parser) advance() lexer.Token {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != lexer.END_OF {
		p.index++
	}
	//
	return lookahead
}

func (p *Parser) is(kind uint) bool {
	return p.lookahead().Kind == kind
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) expect(kind uint, what string) (lexer.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.syntaxErrors(lookahead, fmt.Sprintf("expected %s", what))
	}
	//
	p.index++
	//
	return lookahead, nil
}

func (p *Parser) text(token lexer.Token) string {
	return p.srcfile.Text(token.Span)
}

// Check whether the lookahead is a given contextual keyword, such as "type"
// or "async".  Contextual keywords are lexed as identifiers.
func (p *Parser) isContextual(word string) bool {
	return p.isContextualAt(0, word)
}

func (p *Parser) isContextualAt(n int, word string) bool {
	token := p.peek(n)
	return token.Kind == lexer.IDENTIFIER && p.text(token) == word
}

// Check whether two consecutive tokens (starting at a given index) touch, i.e.
// have no whitespace between them.
func (p *Parser) adjacent(index int) bool {
	if index+1 >= len(p.tokens) {
		return false
	}
	//
	return p.tokens[index].Span.End() == p.tokens[index+1].Span.Start()
}

// Check whether a semicolon could be inserted before the lookahead, following
// the rules for automatic semicolon insertion.
func (p *Parser) canInsertSemicolon() bool {
	lookahead := p.lookahead()
	//
	return lookahead.Kind == lexer.RCURLY || lookahead.Kind == lexer.END_OF || lookahead.NewlineBefore
}

// Consume the semicolon terminating a statement, which may be omitted at the
// end of a line, before a "}" or at the end of the file.
func (p *Parser) consumeSemicolon() []source.SyntaxError {
	if p.match(lexer.SEMICOLON) || p.canInsertSemicolon() {
		return nil
	}
	//
	return p.syntaxErrors(p.lookahead(), "expected ';'")
}

func (p *Parser) syntaxErrors(token lexer.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
