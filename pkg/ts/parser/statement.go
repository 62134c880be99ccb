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

// Parse statements up to (but not including) a given terminator.
func (p *Parser) parseStatements(terminator uint) ([]ast.Statement, []source.SyntaxError) {
	var stmts []ast.Statement
	//
	for !p.is(terminator) {
		if p.is(lexer.END_OF) {
			return nil, p.syntaxErrors(p.lookahead(), "unexpected end of file")
		}
		//
		stmt, errs := p.parseStatement()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, stmt)
	}
	//
	return stmts, nil
}

func (p *Parser) parseBlock() (*ast.Block, []source.SyntaxError) {
	start := p.index
	//
	if _, errs := p.expect(lexer.LCURLY, "'{'"); len(errs) > 0 {
		return nil, errs
	}
	//
	multiline := p.lookahead().NewlineBefore
	noIn := p.noIn
	p.noIn = false
	stmts, errs := p.parseStatements(lexer.RCURLY)
	p.noIn = noIn
	//
	if len(errs) > 0 {
		return nil, errs
	}
	// Advance past "}"
	p.advance()
	//
	return mark(p, &ast.Block{Statements: stmts, Multiline: multiline}, start), nil
}

//nolint:gocyclo
func (p *Parser) parseStatement() (ast.Statement, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
	)
	//
	switch lookahead.Kind {
	case lexer.LCURLY:
		return wrap[ast.Statement](p.parseBlock())
	case lexer.SEMICOLON:
		p.advance()
		return mark(p, &ast.EmptyStatement{}, start), nil
	case lexer.KEYWORD_VAR:
		return p.parseVariableStatement(start, nil)
	case lexer.KEYWORD_CONST:
		if p.peek(1).Kind == lexer.KEYWORD_ENUM {
			return nil, p.syntaxErrors(lookahead, "enums are not supported")
		}
		//
		return p.parseVariableStatement(start, nil)
	case lexer.KEYWORD_FUNCTION, lexer.KEYWORD_CLASS, lexer.KEYWORD_ENUM:
		return p.parseDeclaration(start, nil)
	case lexer.KEYWORD_IF:
		return p.parseIf()
	case lexer.KEYWORD_FOR:
		return p.parseFor()
	case lexer.KEYWORD_WHILE:
		return p.parseWhile()
	case lexer.KEYWORD_DO:
		return p.parseDo()
	case lexer.KEYWORD_RETURN:
		return p.parseReturn()
	case lexer.KEYWORD_THROW:
		return p.parseThrow()
	case lexer.KEYWORD_TRY:
		return p.parseTry()
	case lexer.KEYWORD_SWITCH:
		return p.parseSwitch()
	case lexer.KEYWORD_BREAK, lexer.KEYWORD_CONTINUE:
		return p.parseJump()
	case lexer.KEYWORD_DEBUGGER:
		p.advance()
		//
		if errs := p.consumeSemicolon(); len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.Directive{Text: "debugger"}, start), nil
	case lexer.KEYWORD_IMPORT:
		if next := p.peek(1).Kind; next != lexer.LBRACE && next != lexer.DOT {
			return p.parseImport()
		}
	case lexer.KEYWORD_EXPORT:
		return p.parseExport()
	case lexer.KEYWORD_WITH:
		return nil, p.syntaxErrors(lookahead, "with statements are not supported")
	case lexer.AT:
		return nil, p.syntaxErrors(lookahead, "decorators are not supported")
	case lexer.IDENTIFIER:
		switch next := p.peek(1); {
		case next.Kind == lexer.COLON:
			return p.parseLabeled()
		case p.isContextual("let") && startsBindingName(next):
			return p.parseVariableStatement(start, nil)
		case p.startsDeclaration():
			return p.parseDeclaration(start, nil)
		}
	}
	//
	return p.parseExpressionStatement()
}

// Check whether the lookahead is a contextual keyword starting a declaration,
// such as "type", "interface" or "declare".
func (p *Parser) startsDeclaration() bool {
	var (
		next = p.peek(1)
		// A contextual keyword must be followed on the same line
		sameLine = !next.NewlineBefore
	)
	//
	switch p.text(p.lookahead()) {
	case "type", "interface":
		return next.Kind == lexer.IDENTIFIER && sameLine
	case "namespace", "module":
		return (next.Kind == lexer.IDENTIFIER || next.Kind == lexer.STRING) && sameLine
	case "declare":
		return lexer.IsIdentifierName(next.Kind) && sameLine
	case "abstract":
		return next.Kind == lexer.KEYWORD_CLASS && sameLine
	case "async":
		return next.Kind == lexer.KEYWORD_FUNCTION && sameLine
	case "global":
		return next.Kind == lexer.LCURLY && sameLine
	}
	//
	return false
}

// ============================================================================
// Declarations
// ============================================================================

// Parse a declaration, given any modifiers already consumed (e.g. "export").
// Declarations marked "declare" have no runtime semantics and are returned as
// erased type declarations.
//
//nolint:gocyclo
func (p *Parser) parseDeclaration(start int, mods ast.Modifiers) (ast.Statement, []source.SyntaxError) {
	var (
		decl ast.Statement
		errs []source.SyntaxError
	)
	// Modifiers
	for {
		if p.isContextual("declare") && lexer.IsIdentifierName(p.peek(1).Kind) {
			mods = append(mods, p.text(p.advance()))
		} else if p.isContextual("abstract") && p.peek(1).Kind == lexer.KEYWORD_CLASS {
			mods = append(mods, p.text(p.advance()))
		} else {
			break
		}
	}
	//
	// Everything within an ambient declaration is itself ambient
	if mods.Has("declare") {
		p.ambient++
		//
		defer func() { p.ambient-- }()
	}
	//
	switch lookahead := p.lookahead(); {
	case lookahead.Kind == lexer.KEYWORD_VAR || lookahead.Kind == lexer.KEYWORD_CONST ||
		p.isContextual("let"):
		//
		if p.peek(1).Kind == lexer.KEYWORD_ENUM {
			return nil, p.syntaxErrors(lookahead, "enums are not supported")
		}
		//
		decl, errs = p.parseVariableStatement(start, mods)
	case lookahead.Kind == lexer.KEYWORD_FUNCTION || p.isContextual("async"):
		decl, errs = p.parseFunctionDeclaration(start, mods)
	case lookahead.Kind == lexer.KEYWORD_CLASS:
		decl, errs = p.parseClass(start, mods)
	case lookahead.Kind == lexer.KEYWORD_ENUM:
		return nil, p.syntaxErrors(lookahead, "enums are not supported")
	case p.isContextual("type"):
		decl, errs = p.parseTypeAlias(start)
	case p.isContextual("interface"):
		decl, errs = p.parseInterface(start)
	case p.isContextual("namespace") || p.isContextual("module") || p.isContextual("global"):
		decl, errs = p.parseModule(start, mods)
	default:
		return nil, p.syntaxErrors(lookahead, "expected declaration")
	}
	//
	if len(errs) > 0 {
		return nil, errs
	} else if mods.Has("declare") {
		// Erase ambient declarations
		return mark(p, &ast.TypeDeclaration{Text: p.textFrom(start)}, start), nil
	}
	//
	return decl, nil
}

func (p *Parser) parseVariableStatement(start int, mods ast.Modifiers) (ast.Statement, []source.SyntaxError) {
	list, errs := p.parseVariableDeclarationList()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.VariableStatement{Modifiers: mods, List: list}, start), nil
}

// Parse "var x = 1, y", where the keyword is one of "var", "let" or "const".
func (p *Parser) parseVariableDeclarationList() (*ast.VariableDeclarationList, []source.SyntaxError) {
	var (
		start   = p.index
		keyword = p.text(p.advance())
		decls   []*ast.VariableDeclaration
	)
	//
	for {
		var (
			dstart = p.index
			decl   ast.VariableDeclaration
			errs   []source.SyntaxError
		)
		//
		if decl.Name, errs = p.parseBindingName(); len(errs) > 0 {
			return nil, errs
		}
		// Definite assignment assertion
		p.match(lexer.NOT)
		//
		if p.match(lexer.COLON) {
			if decl.Type, errs = p.parseType(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if p.match(lexer.EQUALS) {
			if decl.Initializer, errs = p.parseAssignment(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		decls = append(decls, mark(p, &decl, dstart))
		//
		if !p.match(lexer.COMMA) {
			break
		}
	}
	//
	return mark(p, &ast.VariableDeclarationList{Keyword: keyword, Declarations: decls}, start), nil
}

func (p *Parser) parseFunctionDeclaration(start int, mods ast.Modifiers) (ast.Statement, []source.SyntaxError) {
	var (
		fn   ast.FunctionDeclaration
		errs []source.SyntaxError
	)
	//
	if p.isContextual("async") {
		mods = append(mods, p.text(p.advance()))
	}
	//
	if _, errs = p.expect(lexer.KEYWORD_FUNCTION, "'function'"); len(errs) > 0 {
		return nil, errs
	}
	//
	fn.Modifiers = mods
	fn.Asterisk = p.match(lexer.MUL)
	// Name is optional for "export default function () { }"
	if p.is(lexer.IDENTIFIER) || !mods.Has("default") {
		if fn.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if fn.Parameters, fn.Type, errs = p.parseSignature(); len(errs) > 0 {
		return nil, errs
	}
	// Overload signatures have no body
	if p.is(lexer.LCURLY) {
		fn.Body, errs = p.parseBlock()
	} else {
		errs = p.consumeSemicolon()
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &fn, start), nil
}

// Parse "type Name<T> = ...", which is erased.
func (p *Parser) parseTypeAlias(start int) (ast.Statement, []source.SyntaxError) {
	// Advance past "type"
	p.advance()
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if p.is(lexer.LESS_THAN) {
		if errs = p.skipAngles(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(lexer.EQUALS, "'='"); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.parseType(); len(errs) > 0 {
		return nil, errs
	} else if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return p.typeDeclaration(name, start), nil
}

// Parse "interface Name<T> extends A, B { ... }", which is erased.
func (p *Parser) parseInterface(start int) (ast.Statement, []source.SyntaxError) {
	// Advance past "interface"
	p.advance()
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if p.is(lexer.LESS_THAN) {
		if errs = p.skipAngles(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.match(lexer.KEYWORD_EXTENDS) {
		if errs = p.skipTypeList(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if errs = p.skipBalanced(lexer.LCURLY, lexer.RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	return p.typeDeclaration(name, start), nil
}

func (p *Parser) typeDeclaration(name *ast.Identifier, start int) *ast.TypeDeclaration {
	return mark(p, &ast.TypeDeclaration{Name: name, Text: p.textFrom(start)}, start)
}

// Determine the source text from a given token up to the last token consumed,
// excluding any terminating semicolon.
func (p *Parser) textFrom(start int) string {
	end := p.index - 1
	//
	if end > start && p.tokens[end].Kind == lexer.SEMICOLON {
		end--
	}
	//
	return p.srcfile.Text(source.NewSpan(p.tokens[start].Span.Start(), p.tokens[end].Span.End()))
}

// Skip a comma-separated list of types, as found after "implements".
func (p *Parser) skipTypeList() []source.SyntaxError {
	for {
		if errs := p.skipType(); len(errs) > 0 {
			return errs
		} else if !p.match(lexer.COMMA) {
			return nil
		}
	}
}

// Parse "namespace Name { ... }".  Only ambient modules may be named by a
// string or be the "global" scope.
func (p *Parser) parseModule(start int, mods ast.Modifiers) (ast.Statement, []source.SyntaxError) {
	var (
		name    *ast.Identifier
		keyword = p.text(p.lookahead())
		errs    []source.SyntaxError
	)
	//
	if keyword != "global" {
		p.advance()
	}
	//
	switch lookahead := p.lookahead(); {
	case keyword == "global" || lookahead.Kind == lexer.STRING:
		if p.ambient == 0 {
			return nil, p.syntaxErrors(lookahead, "only ambient modules can have quoted names")
		}
		//
		p.advance()
	default:
		if name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if p.is(lexer.DOT) {
			return nil, p.syntaxErrors(p.lookahead(), "dotted namespace names are not supported")
		}
	}
	//
	bstart := p.index
	//
	if _, errs = p.expect(lexer.LCURLY, "'{'"); len(errs) > 0 {
		return nil, errs
	}
	//
	stmts, errs := p.parseStatements(lexer.RCURLY)
	if len(errs) > 0 {
		return nil, errs
	}
	// Advance past "}"
	p.advance()
	//
	body := mark(p, &ast.ModuleBlock{Statements: stmts}, bstart)
	//
	return mark(p, &ast.ModuleDeclaration{Modifiers: mods, Keyword: keyword, Name: name, Body: body}, start), nil
}

// ============================================================================
// Classes
// ============================================================================

func (p *Parser) parseClass(start int, mods ast.Modifiers) (ast.Statement, []source.SyntaxError) {
	var (
		class ast.ClassDeclaration
		errs  []source.SyntaxError
	)
	// Advance past "class"
	p.advance()
	//
	class.Modifiers = mods
	//
	if p.is(lexer.IDENTIFIER) && !p.isContextual("implements") {
		class.Name, _ = p.parseIdentifier()
	} else if !mods.Has("default") {
		return nil, p.syntaxErrors(p.lookahead(), "expected identifier")
	}
	//
	if p.is(lexer.LESS_THAN) {
		if errs = p.skipAngles(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.match(lexer.KEYWORD_EXTENDS) {
		if class.Extends, errs = p.parseLeftHandSide(); len(errs) > 0 {
			return nil, errs
		}
		// Type arguments of the base class
		if p.is(lexer.LESS_THAN) {
			if errs = p.skipAngles(); len(errs) > 0 {
				return nil, errs
			}
		}
	}
	//
	if p.isContextual("implements") {
		p.advance()
		//
		if errs = p.skipTypeList(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(lexer.LCURLY, "'{'"); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.is(lexer.RCURLY) {
		if p.match(lexer.SEMICOLON) {
			continue
		}
		//
		member, errs := p.parseClassMember()
		if len(errs) > 0 {
			return nil, errs
		} else if member != nil {
			class.Members = append(class.Members, member)
		}
	}
	// Advance past "}"
	p.advance()
	//
	return mark(p, &class, start), nil
}

// Parse a member of a class.  Index signatures are skipped, and no member is
// returned for them.
//
//nolint:gocyclo
func (p *Parser) parseClassMember() (ast.ClassMember, []source.SyntaxError) {
	var (
		start = p.index
		mods  ast.Modifiers
	)
	//
	if p.is(lexer.AT) {
		return nil, p.syntaxErrors(p.lookahead(), "decorators are not supported")
	} else if p.is(lexer.END_OF) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '}'")
	}
	// Modifiers
	for isMemberModifier(p.text(p.lookahead())) && p.is(lexer.IDENTIFIER) {
		next := p.peek(1)
		//
		if p.isContextual("static") && next.Kind == lexer.LCURLY {
			return nil, p.syntaxErrors(p.lookahead(), "static blocks are not supported")
		} else if !startsPropertyName(next) || next.NewlineBefore {
			break
		}
		//
		mods = append(mods, p.text(p.advance()))
	}
	//
	switch next := p.peek(1); {
	case p.is(lexer.LSQUARE) && next.Kind == lexer.IDENTIFIER && p.peek(2).Kind == lexer.COLON:
		// Index signature
		if errs := p.skipBalanced(lexer.LSQUARE, lexer.RSQUARE); len(errs) > 0 {
			return nil, errs
		} else if _, errs := p.expect(lexer.COLON, "':'"); len(errs) > 0 {
			return nil, errs
		} else if _, errs := p.parseType(); len(errs) > 0 {
			return nil, errs
		}
		//
		return nil, p.consumeSemicolon()
	case (p.isContextual("get") || p.isContextual("set")) && startsPropertyName(next) && next.Kind != lexer.MUL:
		return wrap[ast.ClassMember](p.parseAccessor(start, mods))
	case p.isContextual("constructor") && next.Kind == lexer.LBRACE:
		return p.parseConstructor(start, mods)
	}
	//
	asterisk := p.match(lexer.MUL)
	//
	name, errs := p.parsePropertyName()
	if len(errs) > 0 {
		return nil, errs
	}
	// Optional members
	p.match(lexer.QUESTION)
	//
	if p.is(lexer.LBRACE) || p.is(lexer.LESS_THAN) {
		return wrap[ast.ClassMember](p.parseMethod(start, mods, asterisk, name))
	}
	//
	property := ast.PropertyDeclaration{Modifiers: mods, Name: name}
	// Definite assignment assertion
	p.match(lexer.NOT)
	//
	if p.match(lexer.COLON) {
		if property.Type, errs = p.parseType(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.match(lexer.EQUALS) {
		if property.Initializer, errs = p.parseAssignment(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &property, start), nil
}

func (p *Parser) parseConstructor(start int, mods ast.Modifiers) (ast.ClassMember, []source.SyntaxError) {
	var (
		ctor = ast.Constructor{Modifiers: mods}
		errs []source.SyntaxError
	)
	// Advance past "constructor"
	p.advance()
	//
	if ctor.Parameters, _, errs = p.parseSignature(); len(errs) > 0 {
		return nil, errs
	}
	//
	if ctor.Body, errs = p.parseOptionalBody(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ctor, start), nil
}

// Parse the remainder of a method, following its name.
func (p *Parser) parseMethod(start int, mods ast.Modifiers, asterisk bool,
	name ast.PropertyName) (*ast.MethodDeclaration, []source.SyntaxError) {
	var (
		method = ast.MethodDeclaration{Modifiers: mods, Asterisk: asterisk, Name: name}
		errs   []source.SyntaxError
	)
	//
	if method.Parameters, method.Type, errs = p.parseSignature(); len(errs) > 0 {
		return nil, errs
	}
	//
	if method.Body, errs = p.parseOptionalBody(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &method, start), nil
}

// Parse "get name() { }" or "set name(v) { }".
func (p *Parser) parseAccessor(start int, mods ast.Modifiers) (*ast.Accessor, []source.SyntaxError) {
	var (
		accessor = ast.Accessor{Modifiers: mods, Setter: p.text(p.advance()) == "set"}
		errs     []source.SyntaxError
	)
	//
	if accessor.Name, errs = p.parsePropertyName(); len(errs) > 0 {
		return nil, errs
	}
	//
	if accessor.Parameters, accessor.Type, errs = p.parseSignature(); len(errs) > 0 {
		return nil, errs
	}
	//
	if accessor.Body, errs = p.parseOptionalBody(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &accessor, start), nil
}

// Parse a block body, or nothing for signatures (e.g. abstract methods).
func (p *Parser) parseOptionalBody() (*ast.Block, []source.SyntaxError) {
	if p.is(lexer.LCURLY) {
		return p.parseBlock()
	}
	//
	return nil, p.consumeSemicolon()
}

func isMemberModifier(text string) bool {
	switch text {
	case "public", "private", "protected", "static", "readonly", "abstract", "override", "declare",
		"accessor", "async":
		return true
	default:
		return false
	}
}

// ============================================================================
// Imports & Exports
// ============================================================================

// Parse an import declaration, which is emitted verbatim.  Type-only imports
// are erased.
func (p *Parser) parseImport() (ast.Statement, []source.SyntaxError) {
	start := p.index
	typeOnly := p.isContextualAt(1, "type") && !p.isContextualAt(2, "from") && p.peek(2).Kind != lexer.COMMA
	//
	text, errs := p.parseDirectiveText()
	if len(errs) > 0 {
		return nil, errs
	} else if typeOnly {
		return mark(p, &ast.TypeDeclaration{Text: text}, start), nil
	}
	//
	return mark(p, &ast.Directive{Text: text}, start), nil
}

//nolint:gocyclo
func (p *Parser) parseExport() (ast.Statement, []source.SyntaxError) {
	start := p.index
	// Advance past "export"
	p.advance()
	//
	switch lookahead := p.lookahead(); {
	case lookahead.Kind == lexer.KEYWORD_DEFAULT:
		p.advance()
		//
		mods := ast.Modifiers{"export", "default"}
		//
		switch {
		case p.is(lexer.KEYWORD_FUNCTION), p.is(lexer.KEYWORD_CLASS),
			p.isContextual("async") && p.peek(1).Kind == lexer.KEYWORD_FUNCTION,
			p.isContextual("abstract") && p.peek(1).Kind == lexer.KEYWORD_CLASS:
			return p.parseDeclaration(start, mods)
		case p.isContextual("interface") && p.peek(1).Kind == lexer.IDENTIFIER:
			return p.parseInterface(start)
		}
		//
		expr, errs := p.parseAssignment()
		if len(errs) > 0 {
			return nil, errs
		} else if errs = p.consumeSemicolon(); len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.ExportAssignment{Expression: expr}, start), nil
	case lookahead.Kind == lexer.LCURLY || lookahead.Kind == lexer.MUL || lookahead.Kind == lexer.EQUALS:
		p.index = start
		//
		text, errs := p.parseDirectiveText()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.Directive{Text: text}, start), nil
	case p.isContextual("type") && (p.peek(1).Kind == lexer.LCURLY || p.peek(1).Kind == lexer.MUL):
		p.index = start
		//
		text, errs := p.parseDirectiveText()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.TypeDeclaration{Text: text}, start), nil
	case p.isContextual("as") && p.isContextualAt(1, "namespace"):
		p.index = start
		//
		text, errs := p.parseDirectiveText()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return mark(p, &ast.TypeDeclaration{Text: text}, start), nil
	}
	//
	return p.parseDeclaration(start, ast.Modifiers{"export"})
}

// Consume the tokens of an import or export declaration, returning its text
// (excluding any terminating semicolon).  The declaration finishes at a
// semicolon outside any brackets or, failing that, at the end of the line.
func (p *Parser) parseDirectiveText() (string, []source.SyntaxError) {
	var (
		first = p.advance()
		last  = first
		depth = 0
	)
	//
	for {
		lookahead := p.lookahead()
		//
		switch {
		case lookahead.Kind == lexer.END_OF:
			if depth > 0 {
				return "", p.syntaxErrors(lookahead, "unexpected end of file")
			}
		case depth == 0 && lookahead.Kind == lexer.SEMICOLON:
			p.advance()
		case depth == 0 && lookahead.Kind == lexer.RCURLY:
		case depth == 0 && lookahead.NewlineBefore && last.Kind != lexer.COMMA &&
			!p.isContextual("from") && !p.isContextual("as"):
		default:
			switch lookahead.Kind {
			case lexer.LCURLY, lexer.LBRACE, lexer.LSQUARE:
				depth++
			case lexer.RCURLY, lexer.RBRACE, lexer.RSQUARE:
				depth--
			}
			//
			last = p.advance()
			//
			continue
		}
		//
		return p.srcfile.Text(source.NewSpan(first.Span.Start(), last.Span.End())), nil
	}
}

// ============================================================================
// Control Flow
// ============================================================================

func (p *Parser) parseIf() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.IfStatement
		errs  []source.SyntaxError
	)
	// Advance past "if"
	p.advance()
	//
	if stmt.Condition, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	} else if stmt.Then, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.match(lexer.KEYWORD_ELSE) {
		if stmt.Else, errs = p.parseStatement(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return mark(p, &stmt, start), nil
}

// Parse a parenthesised condition, as found in if and while statements.
func (p *Parser) parseCondition() (ast.Expression, []source.SyntaxError) {
	if _, errs := p.expect(lexer.LBRACE, "'('"); len(errs) > 0 {
		return nil, errs
	}
	//
	cond, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs := p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	}
	//
	return cond, nil
}

//nolint:gocyclo
func (p *Parser) parseFor() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		init  ast.Node
		errs  []source.SyntaxError
	)
	// Advance past "for"
	p.advance()
	//
	if p.isContextual("await") {
		return nil, p.syntaxErrors(p.lookahead(), "for await loops are not supported")
	} else if _, errs = p.expect(lexer.LBRACE, "'('"); len(errs) > 0 {
		return nil, errs
	}
	// Initialiser, within which "in" is not a binary operator
	p.noIn = true
	//
	switch {
	case p.is(lexer.SEMICOLON):
	case p.is(lexer.KEYWORD_VAR) || p.is(lexer.KEYWORD_CONST) ||
		(p.isContextual("let") && startsBindingName(p.peek(1))):
		var list *ast.VariableDeclarationList
		//
		if list, errs = p.parseVariableDeclarationList(); len(errs) == 0 {
			init = list
		}
	default:
		var expr ast.Expression
		//
		if expr, errs = p.parseExpression(); len(errs) == 0 {
			init = expr
		}
	}
	//
	p.noIn = false
	//
	if len(errs) > 0 {
		return nil, errs
	} else if init != nil && (p.is(lexer.KEYWORD_IN) || p.isContextual("of")) {
		return p.parseForInOf(start, init)
	}
	//
	var stmt = ast.ForStatement{Initializer: init}
	//
	if _, errs = p.expect(lexer.SEMICOLON, "';'"); len(errs) > 0 {
		return nil, errs
	}
	//
	if !p.is(lexer.SEMICOLON) {
		if stmt.Condition, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(lexer.SEMICOLON, "';'"); len(errs) > 0 {
		return nil, errs
	}
	//
	if !p.is(lexer.RBRACE) {
		if stmt.Incrementor, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	} else if stmt.Body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseForInOf(start int, init ast.Node) (ast.Statement, []source.SyntaxError) {
	var (
		stmt = ast.ForInOfStatement{Of: p.text(p.advance()) == "of", Initializer: init}
		errs []source.SyntaxError
	)
	//
	if stmt.Of {
		stmt.Expression, errs = p.parseAssignment()
	} else {
		stmt.Expression, errs = p.parseExpression()
	}
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
		return nil, errs
	} else if stmt.Body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseWhile() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.WhileStatement
		errs  []source.SyntaxError
	)
	// Advance past "while"
	p.advance()
	//
	if stmt.Condition, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	} else if stmt.Body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseDo() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.DoStatement
		errs  []source.SyntaxError
	)
	// Advance past "do"
	p.advance()
	//
	if stmt.Body, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.KEYWORD_WHILE, "'while'"); len(errs) > 0 {
		return nil, errs
	} else if stmt.Condition, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	}
	// A semicolon can always be inserted after a do-while loop
	p.match(lexer.SEMICOLON)
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseReturn() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.ReturnStatement
		errs  []source.SyntaxError
	)
	// Advance past "return"
	p.advance()
	//
	if !p.is(lexer.SEMICOLON) && !p.canInsertSemicolon() {
		if stmt.Expression, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseThrow() (ast.Statement, []source.SyntaxError) {
	start := p.index
	// Advance past "throw"
	p.advance()
	//
	if p.lookahead().NewlineBefore {
		return nil, p.syntaxErrors(p.lookahead(), "line break not permitted after throw")
	}
	//
	expr, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	} else if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.ThrowStatement{Expression: expr}, start), nil
}

func (p *Parser) parseTry() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.TryStatement
		errs  []source.SyntaxError
	)
	// Advance past "try"
	p.advance()
	//
	if stmt.Try, errs = p.parseBlock(); len(errs) > 0 {
		return nil, errs
	}
	//
	if cstart := p.index; p.match(lexer.KEYWORD_CATCH) {
		var clause ast.CatchClause
		//
		if p.match(lexer.LBRACE) {
			if clause.Variable, errs = p.parseBindingName(); len(errs) > 0 {
				return nil, errs
			} else if p.match(lexer.COLON) {
				if _, errs = p.parseType(); len(errs) > 0 {
					return nil, errs
				}
			}
			//
			if _, errs = p.expect(lexer.RBRACE, "')'"); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if clause.Block, errs = p.parseBlock(); len(errs) > 0 {
			return nil, errs
		}
		//
		stmt.Catch = mark(p, &clause, cstart)
	}
	//
	if p.match(lexer.KEYWORD_FINALLY) {
		if stmt.Finally, errs = p.parseBlock(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if stmt.Catch == nil && stmt.Finally == nil {
		return nil, p.syntaxErrors(p.lookahead(), "expected 'catch' or 'finally'")
	}
	//
	return mark(p, &stmt, start), nil
}

func (p *Parser) parseSwitch() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.SwitchStatement
		errs  []source.SyntaxError
	)
	// Advance past "switch"
	p.advance()
	//
	if stmt.Expression, errs = p.parseCondition(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LCURLY, "'{'"); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(lexer.RCURLY) {
		var (
			cstart = p.index
			clause ast.CaseClause
		)
		//
		if p.match(lexer.KEYWORD_CASE) {
			if clause.Expression, errs = p.parseExpression(); len(errs) > 0 {
				return nil, errs
			}
		} else if _, errs = p.expect(lexer.KEYWORD_DEFAULT, "'case' or 'default'"); len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(lexer.COLON, "':'"); len(errs) > 0 {
			return nil, errs
		}
		//
		for !p.is(lexer.KEYWORD_CASE) && !p.is(lexer.KEYWORD_DEFAULT) && !p.is(lexer.RCURLY) {
			if p.is(lexer.END_OF) {
				return nil, p.syntaxErrors(p.lookahead(), "unexpected end of file")
			}
			//
			var s ast.Statement
			//
			if s, errs = p.parseStatement(); len(errs) > 0 {
				return nil, errs
			}
			//
			clause.Statements = append(clause.Statements, s)
		}
		//
		stmt.Clauses = append(stmt.Clauses, mark(p, &clause, cstart))
	}
	//
	return mark(p, &stmt, start), nil
}

// Parse a "break" or "continue" statement, with an optional label.
func (p *Parser) parseJump() (ast.Statement, []source.SyntaxError) {
	var (
		start   = p.index
		keyword = p.advance()
		label   *ast.Identifier
	)
	//
	if p.is(lexer.IDENTIFIER) && !p.lookahead().NewlineBefore {
		label, _ = p.parseIdentifier()
	}
	//
	if errs := p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	} else if keyword.Kind == lexer.KEYWORD_BREAK {
		return mark(p, &ast.BreakStatement{Label: label}, start), nil
	}
	//
	return mark(p, &ast.ContinueStatement{Label: label}, start), nil
}

func (p *Parser) parseLabeled() (ast.Statement, []source.SyntaxError) {
	start := p.index
	label, _ := p.parseIdentifier()
	// Advance past ":"
	p.advance()
	//
	stmt, errs := p.parseStatement()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.LabeledStatement{Label: label, Statement: stmt}, start), nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, []source.SyntaxError) {
	start := p.index
	//
	expr, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	} else if errs = p.consumeSemicolon(); len(errs) > 0 {
		return nil, errs
	}
	//
	return mark(p, &ast.ExpressionStatement{Expression: expr}, start), nil
}

// Convert a concretely typed parse result into one of an interface type,
// taking care that an error never yields a non-nil interface.
func wrap[S any, T ast.Node](node T, errs []source.SyntaxError) (S, []source.SyntaxError) {
	var empty S
	//
	if len(errs) > 0 {
		return empty, errs
	}
	//
	return any(node).(S), nil
}
