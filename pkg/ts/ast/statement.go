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

// Block is a "{ ... }" statement list.
type Block struct {
	Statements []Statement
	// Multiline records whether the block spanned several lines.
	Multiline bool
}

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	Expression Expression
}

// VariableStatement is a statement declaring one or more variables.
type VariableStatement struct {
	Modifiers Modifiers
	List      *VariableDeclarationList
}

// Declaration keywords for variable declaration lists.
const (
	VAR   = "var"
	LET   = "let"
	CONST = "const"
)

// VariableDeclarationList is a "const x = 1, y = 2" list, which appears in
// variable statements and for loop initialisers.
type VariableDeclarationList struct {
	// Keyword is one of VAR, LET or CONST.
	Keyword      string
	Declarations []*VariableDeclaration
}

// VariableDeclaration declares a single variable (or binding pattern),
// optionally with a type and initialiser.
type VariableDeclaration struct {
	Name        BindingName
	Type        *TypeNode
	Initializer Expression
}

// ReturnStatement is a "return" or "return expr" statement.
type ReturnStatement struct {
	Expression Expression
}

// IfStatement is an "if (c) then else otherwise" statement.
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement
}

// ForStatement is a "for (init; cond; incr) body" statement.  The initialiser
// is either a *VariableDeclarationList or an Expression.
type ForStatement struct {
	Initializer Node
	Condition   Expression
	Incrementor Expression
	Body        Statement
}

// ForInOfStatement is a "for (x of e) body" or "for (x in e) body" statement.
// The initialiser is either a *VariableDeclarationList or an Expression.
type ForInOfStatement struct {
	// Of distinguishes "for ... of" from "for ... in".
	Of          bool
	Initializer Node
	Expression  Expression
	Body        Statement
}

// WhileStatement is a "while (c) body" statement.
type WhileStatement struct {
	Condition Expression
	Body      Statement
}

// DoStatement is a "do body while (c)" statement.
type DoStatement struct {
	Body      Statement
	Condition Expression
}

// ThrowStatement is a "throw expr" statement.
type ThrowStatement struct {
	Expression Expression
}

// TryStatement is a "try { } catch (e) { } finally { }" statement, where
// either the catch clause or the finally block can be omitted.
type TryStatement struct {
	Try     *Block
	Catch   *CatchClause
	Finally *Block
}

// CatchClause is the "catch (e) { }" part of a try statement, where the
// variable may be omitted.
type CatchClause struct {
	Variable BindingName
	Block    *Block
}

// SwitchStatement is a "switch (e) { case ...: }" statement.
type SwitchStatement struct {
	Expression Expression
	Clauses    []*CaseClause
}

// CaseClause is a "case e:" clause within a switch, or the "default:" clause
// when Expression is nil.
type CaseClause struct {
	Expression Expression
	Statements []Statement
}

// BreakStatement is a "break" or "break label" statement.
type BreakStatement struct {
	Label *Identifier
}

// ContinueStatement is a "continue" or "continue label" statement.
type ContinueStatement struct {
	Label *Identifier
}

// LabeledStatement is a "label: statement" statement.
type LabeledStatement struct {
	Label     *Identifier
	Statement Statement
}

// EmptyStatement is a lone ";".
type EmptyStatement struct {
	// non-zero size keeps distinct statements distinct
	_ byte
}

// TypeDeclaration is a type alias or interface declaration.  Such
// declarations have no runtime semantics and are erased when printing.
type TypeDeclaration struct {
	Name *Identifier
	Text string
}

// ExportAssignment is an "export default expr;" statement.
type ExportAssignment struct {
	Expression Expression
}

// Directive is a statement whose text is emitted verbatim, such as an import
// or re-export declaration.
type Directive struct {
	Text string
}

func (*Block) node()                   {}
func (*ExpressionStatement) node()     {}
func (*VariableStatement) node()       {}
func (*VariableDeclarationList) node() {}
func (*VariableDeclaration) node()     {}
func (*ReturnStatement) node()         {}
func (*IfStatement) node()             {}
func (*ForStatement) node()            {}
func (*ForInOfStatement) node()        {}
func (*WhileStatement) node()          {}
func (*DoStatement) node()             {}
func (*ThrowStatement) node()          {}
func (*TryStatement) node()            {}
func (*CatchClause) node()             {}
func (*SwitchStatement) node()         {}
func (*CaseClause) node()              {}
func (*BreakStatement) node()          {}
func (*ContinueStatement) node()       {}
func (*LabeledStatement) node()        {}
func (*EmptyStatement) node()          {}
func (*TypeDeclaration) node()         {}
func (*ExportAssignment) node()        {}
func (*Directive) node()               {}

func (*Block) statement()               {}
func (*ExpressionStatement) statement() {}
func (*VariableStatement) statement()   {}
func (*ReturnStatement) statement()     {}
func (*IfStatement) statement()         {}
func (*ForStatement) statement()        {}
func (*ForInOfStatement) statement()    {}
func (*WhileStatement) statement()      {}
func (*DoStatement) statement()         {}
func (*ThrowStatement) statement()      {}
func (*TryStatement) statement()        {}
func (*SwitchStatement) statement()     {}
func (*BreakStatement) statement()      {}
func (*ContinueStatement) statement()   {}
func (*LabeledStatement) statement()    {}
func (*EmptyStatement) statement()      {}
func (*TypeDeclaration) statement()     {}
func (*ExportAssignment) statement()    {}
func (*Directive) statement()           {}
