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

// Check whether a statement has no runtime semantics, and is therefore not
// printed.
func isErased(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.TypeDeclaration:
		return true
	case *ast.FunctionDeclaration:
		// Overload signature
		return s.Body == nil
	case *ast.ModuleDeclaration:
		// Namespaces declaring only types are not instantiated
		for _, stmt := range s.Body.Statements {
			if !isErased(stmt) {
				return false
			}
		}
		//
		return true
	default:
		return false
	}
}

//nolint:gocyclo
func (p *emitter) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		p.block(s)
	case *ast.ExpressionStatement:
		if startsAmbiguously(s.Expression) {
			p.write("(")
			p.expression(s.Expression)
			p.write(");")
		} else {
			p.expression(s.Expression)
			p.write(";")
		}
	case *ast.VariableStatement:
		p.modifiers(s.Modifiers)
		p.variables(s.List)
		p.write(";")
		p.exports(s.Modifiers, bindingNames(s.List)...)
	case *ast.FunctionDeclaration:
		p.functionDeclaration(s)
	case *ast.ClassDeclaration:
		p.class(s)
	case *ast.ModuleDeclaration:
		p.module(s)
	case *ast.ReturnStatement:
		p.write("return")
		//
		if s.Expression != nil {
			p.write(" ")
			p.expression(s.Expression)
		}
		//
		p.write(";")
	case *ast.IfStatement:
		p.ifStatement(s)
	case *ast.ForStatement:
		p.write("for (")
		//
		switch init := s.Initializer.(type) {
		case *ast.VariableDeclarationList:
			p.variables(init)
		case ast.Expression:
			p.expression(init)
		}
		//
		p.write(";")
		p.optional(" ", s.Condition)
		p.write(";")
		p.optional(" ", s.Incrementor)
		p.write(")")
		p.embedded(s.Body)
	case *ast.ForInOfStatement:
		p.write("for (")
		//
		switch init := s.Initializer.(type) {
		case *ast.VariableDeclarationList:
			p.variables(init)
		case ast.Expression:
			p.expression(init)
		}
		//
		if s.Of {
			p.write(" of ")
		} else {
			p.write(" in ")
		}
		//
		p.expression(s.Expression)
		p.write(")")
		p.embedded(s.Body)
	case *ast.WhileStatement:
		p.write("while (")
		p.expression(s.Condition)
		p.write(")")
		p.embedded(s.Body)
	case *ast.DoStatement:
		p.write("do")
		p.embedded(s.Body)
		//
		if _, ok := s.Body.(*ast.Block); ok {
			p.write(" while (")
		} else {
			p.newline()
			p.write("while (")
		}
		//
		p.expression(s.Condition)
		p.write(");")
	case *ast.ThrowStatement:
		p.write("throw ")
		p.expression(s.Expression)
		p.write(";")
	case *ast.TryStatement:
		p.tryStatement(s)
	case *ast.SwitchStatement:
		p.switchStatement(s)
	case *ast.BreakStatement:
		p.jump("break", s.Label)
	case *ast.ContinueStatement:
		p.jump("continue", s.Label)
	case *ast.LabeledStatement:
		p.write(s.Label.Name, ": ")
		p.statement(s.Statement)
	case *ast.EmptyStatement, *ast.TypeDeclaration:
		p.write(";")
	case *ast.ExportAssignment:
		p.write("export default ")
		p.operand(s.Expression)
		p.write(";")
	case *ast.Directive:
		p.write(s.Text, ";")
	default:
		panic("unknown statement " + ast.KindOf(stmt))
	}
}

// Write a block, respecting whether it was written on one line or not.
func (p *emitter) block(block *ast.Block) {
	if block.Multiline && p.inline == 0 {
		p.write("{")
		p.level++
		p.statements(block.Statements)
		p.level--
		p.newline()
		p.write("}")
		//
		return
	}
	//
	p.write("{")
	p.inline++
	p.statements(block.Statements)
	p.inline--
	p.write(" }")
}

// Write a statement list, each statement on its own line.
func (p *emitter) statements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		if !isErased(stmt) {
			p.newline()
			p.statement(stmt)
		}
	}
}

// Write the body of a compound statement (e.g. a loop), which shares the line
// when it is a block and otherwise is indented on the next line.
func (p *emitter) embedded(stmt ast.Statement) {
	if block, ok := stmt.(*ast.Block); ok {
		p.write(" ")
		p.block(block)
		//
		return
	}
	//
	p.level++
	p.newline()
	p.statement(stmt)
	p.level--
}

func (p *emitter) optional(prefix string, expr ast.Expression) {
	if expr != nil {
		p.write(prefix)
		p.expression(expr)
	}
}

func (p *emitter) jump(keyword string, label *ast.Identifier) {
	p.write(keyword)
	//
	if label != nil {
		p.write(" ", label.Name)
	}
	//
	p.write(";")
}

func (p *emitter) variables(list *ast.VariableDeclarationList) {
	p.write(list.Keyword, " ")
	//
	for i, decl := range list.Declarations {
		if i > 0 {
			p.write(", ")
		}
		//
		p.bindingName(decl.Name)
		//
		if decl.Initializer != nil {
			p.write(" = ")
			p.operand(decl.Initializer)
		}
	}
}

func (p *emitter) ifStatement(stmt *ast.IfStatement) {
	p.write("if (")
	p.expression(stmt.Condition)
	p.write(")")
	p.embedded(stmt.Then)
	//
	if stmt.Else == nil {
		return
	} else if _, ok := stmt.Then.(*ast.Block); ok {
		p.write(" else")
	} else {
		p.newline()
		p.write("else")
	}
	//
	if elif, ok := stmt.Else.(*ast.IfStatement); ok {
		p.write(" ")
		p.ifStatement(elif)
	} else {
		p.embedded(stmt.Else)
	}
}

func (p *emitter) tryStatement(stmt *ast.TryStatement) {
	p.write("try ")
	p.block(stmt.Try)
	//
	if stmt.Catch != nil {
		p.newline()
		p.write("catch ")
		//
		if stmt.Catch.Variable != nil {
			p.write("(")
			p.bindingName(stmt.Catch.Variable)
			p.write(") ")
		}
		//
		p.block(stmt.Catch.Block)
	}
	//
	if stmt.Finally != nil {
		p.newline()
		p.write("finally ")
		p.block(stmt.Finally)
	}
}

func (p *emitter) switchStatement(stmt *ast.SwitchStatement) {
	p.write("switch (")
	p.expression(stmt.Expression)
	p.write(") {")
	p.level++
	//
	for _, clause := range stmt.Clauses {
		p.newline()
		//
		if clause.Expression != nil {
			p.write("case ")
			p.expression(clause.Expression)
			p.write(":")
		} else {
			p.write("default:")
		}
		//
		p.level++
		p.statements(clause.Statements)
		p.level--
	}
	//
	p.level--
	p.newline()
	p.write("}")
}

func (p *emitter) functionDeclaration(fn *ast.FunctionDeclaration) {
	p.modifiers(fn.Modifiers)
	p.write("function")
	//
	if fn.Asterisk {
		p.write("*")
	}
	//
	if fn.Name != nil {
		p.write(" ", fn.Name.Name)
	} else {
		p.write(" ")
	}
	//
	p.parameters(fn.Parameters)
	p.write(" ")
	p.block(fn.Body)
	//
	if fn.Name != nil {
		p.exports(fn.Modifiers, fn.Name.Name)
	}
}

func (p *emitter) class(class *ast.ClassDeclaration) {
	p.modifiers(class.Modifiers)
	p.write("class")
	//
	if class.Name != nil {
		p.write(" ", class.Name.Name)
	}
	//
	if class.Extends != nil {
		p.write(" extends ")
		p.receiver(class.Extends)
	}
	//
	p.write(" {")
	p.level++
	//
	for _, member := range class.Members {
		if !isErasedMember(member) {
			p.newline()
			p.classMember(member)
		}
	}
	//
	p.level--
	p.newline()
	p.write("}")
	//
	if class.Name != nil {
		p.exports(class.Modifiers, class.Name.Name)
	}
}

// Check whether a class member has no runtime semantics.
func isErasedMember(member ast.ClassMember) bool {
	switch m := member.(type) {
	case *ast.PropertyDeclaration:
		return m.Modifiers.Has("abstract") || m.Modifiers.Has("declare")
	case *ast.MethodDeclaration:
		return m.Body == nil
	case *ast.Accessor:
		return m.Body == nil
	case *ast.Constructor:
		return m.Body == nil
	default:
		return false
	}
}

func (p *emitter) classMember(member ast.ClassMember) {
	switch m := member.(type) {
	case *ast.PropertyDeclaration:
		p.modifiers(m.Modifiers)
		p.propertyName(m.Name)
		//
		if m.Initializer != nil {
			p.write(" = ")
			p.operand(m.Initializer)
		}
		//
		p.write(";")
	case *ast.MethodDeclaration:
		p.method(m)
	case *ast.Accessor:
		p.accessor(m)
	case *ast.Constructor:
		p.modifiers(m.Modifiers)
		p.write("constructor")
		p.parameters(m.Parameters)
		p.write(" ")
		p.block(m.Body)
	default:
		panic("unknown class member " + ast.KindOf(member))
	}
}

// Write a namespace as a function which populates an object.
func (p *emitter) module(module *ast.ModuleDeclaration) {
	var (
		name      = module.Name.Name
		namespace = p.namespace
	)
	//
	p.modifiers(module.Modifiers)
	p.write("var ", name, ";")
	p.newline()
	p.write("(function (", name, ") {")
	p.level++
	p.namespace = name
	p.statements(module.Body.Statements)
	p.namespace = namespace
	p.level--
	p.newline()
	p.write("})(", name, " || (", name, " = {}));")
	p.exports(module.Modifiers, name)
}

// Assign names declared by an exported statement into the enclosing namespace
// (if there is one).
func (p *emitter) exports(mods ast.Modifiers, names ...string) {
	if p.namespace == "" || !mods.Has("export") {
		return
	}
	//
	for _, name := range names {
		p.newline()
		p.write(p.namespace, ".", name, " = ", name, ";")
	}
}

// Determine the names bound by a variable declaration list.
func bindingNames(list *ast.VariableDeclarationList) []string {
	var names []string
	//
	for _, decl := range list.Declarations {
		names = boundNames(decl.Name, names)
	}
	//
	return names
}

func boundNames(name ast.Node, names []string) []string {
	switch n := name.(type) {
	case *ast.Identifier:
		return append(names, n.Name)
	case *ast.ObjectBindingPattern:
		for _, element := range n.Elements {
			names = boundNames(element.Name, names)
		}
	case *ast.ArrayBindingPattern:
		for _, element := range n.Elements {
			if e, ok := element.(*ast.BindingElement); ok {
				names = boundNames(e.Name, names)
			}
		}
	}
	//
	return names
}

// Check whether an expression in statement position starts with a token which
// would instead be read as the start of a block, function or class.
func startsAmbiguously(expr ast.Expression) bool {
	for {
		switch e := expr.(type) {
		case *ast.ObjectLiteral, *ast.FunctionExpression:
			return true
		case *ast.Binary:
			expr = e.Left
		case *ast.Conditional:
			expr = e.Condition
		case *ast.CallExpression:
			expr = e.Expression
		case *ast.PropertyAccess:
			expr = e.Expression
		case *ast.ElementAccess:
			expr = e.Expression
		case *ast.PostfixUnary:
			expr = e.Operand
		case *ast.NonNullExpression:
			expr = e.Expression
		case *ast.AsExpression:
			expr = e.Expression
		case *ast.SatisfiesExpression:
			expr = e.Expression
		case *ast.CommaList:
			if len(e.Elements) == 0 {
				return false
			}
			//
			expr = e.Elements[0]
		default:
			return false
		}
	}
}
