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
	"errors"
	"fmt"
	"reflect"
)

// ErrEmptySlot is reported when a visitor removes a node from a position where
// one is required (e.g. the operand of a binary expression).
var ErrEmptySlot = errors.New("no node produced where one is required")

// Visitor rewrites a single node into zero or more replacement nodes.
// Returning the node itself as the only element leaves it unchanged.
type Visitor func(Node) ([]Node, error)

// Rewriter applies visitors to the children of nodes, rebuilding a node only
// when one of its children actually changed.  Every rebuilt node is recorded
// in the origins table (when one is given) against the node it replaced.
type Rewriter struct {
	origins *Origins
}

// NewRewriter constructs a rewriter which records into a given origins table.
// The table may be nil.
func NewRewriter(origins *Origins) *Rewriter {
	return &Rewriter{origins}
}

// Origins returns the origins table of this rewriter.
func (p *Rewriter) Origins() *Origins {
	return p.origins
}

// VisitEachChild applies a visitor to each immediate child of a node, in
// source order, and returns the (possibly rebuilt) node.  Results are placed as
// follows: in a list position all results are spliced in place; in a single
// position, several statements are lifted into a block and several
// expressions into a comma list.  An expression statement whose expression
// vanished yields nil (i.e. the statement itself vanishes), whilst any other
// required position left empty is an error.
func (p *Rewriter) VisitEachChild(node Node, visit Visitor) (Node, error) {
	v := childVisitor{visit: visit}
	result := v.rewrite(node)
	//
	if v.err != nil {
		return nil, v.err
	} else if result != nil && result != node {
		p.origins.Record(result, node)
	}
	//
	return result, nil
}

// Inspect traverses the tree rooted at a given node in depth-first order.  It
// calls f for each node and, if f returns true, continues into its children.
func Inspect(node Node, f func(Node) bool) {
	var (
		rewriter Rewriter
		visit    Visitor
	)
	//
	visit = func(n Node) ([]Node, error) {
		if f(n) {
			// Identity visitors never fail.
			_, _ = rewriter.VisitEachChild(n, visit)
		}
		//
		return []Node{n}, nil
	}
	//
	_, _ = visit(node)
}

type childVisitor struct {
	visit   Visitor
	changed bool
	err     error
}

func (p *childVisitor) apply(node Node) []Node {
	if p.err != nil {
		return []Node{node}
	}
	//
	nodes, err := p.visit(node)
	//
	if err != nil {
		p.err = err
		return []Node{node}
	} else if len(nodes) != 1 || nodes[0] != node {
		p.changed = true
	}
	//
	return nodes
}

func (p *childVisitor) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Visit an optional expression position.
func (p *childVisitor) optExpr(expr Expression) Expression {
	if expr == nil {
		return nil
	}
	//
	return p.toExpression(p.apply(expr), expr)
}

// Visit a required expression position.
func (p *childVisitor) expr(expr Expression) Expression {
	result := p.toExpression(p.apply(expr), expr)
	//
	if result == nil {
		p.fail(fmt.Errorf("%w (in place of %s)", ErrEmptySlot, KindOf(expr)))
		return expr
	}
	//
	return result
}

func (p *childVisitor) toExpression(nodes []Node, original Expression) Expression {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		if e, ok := nodes[0].(Expression); ok {
			return e
		}
		//
		p.fail(misplaced(nodes[0], "expression"))
		//
		return original
	default:
		elements := make([]Expression, 0, len(nodes))
		//
		for _, n := range nodes {
			e, ok := n.(Expression)
			if !ok {
				p.fail(misplaced(n, "expression"))
				return original
			}
			//
			elements = append(elements, e)
		}
		//
		return &CommaList{elements}
	}
}

// Visit a statement position, where required positions left empty are filled
// with an empty statement.
func (p *childVisitor) stmt(stmt Statement, required bool) Statement {
	if stmt == nil {
		return nil
	}
	//
	nodes := p.apply(stmt)
	//
	switch len(nodes) {
	case 0:
		if required {
			return &EmptyStatement{}
		}
		//
		return nil
	case 1:
		if s, ok := nodes[0].(Statement); ok {
			return s
		}
		//
		p.fail(misplaced(nodes[0], "statement"))
		//
		return stmt
	default:
		stmts := make([]Statement, 0, len(nodes))
		//
		for _, n := range nodes {
			s, ok := n.(Statement)
			if !ok {
				p.fail(misplaced(n, "statement"))
				return stmt
			}
			//
			stmts = append(stmts, s)
		}
		//
		return &Block{stmts, true}
	}
}

// Visit a for loop initialiser, which is a declaration list or an expression.
func (p *childVisitor) initializer(init Node, required bool) Node {
	switch n := init.(type) {
	case nil:
		return nil
	case Expression:
		if required {
			return p.expr(n)
		} else if e := p.optExpr(n); e != nil {
			return e
		}
		//
		return nil
	default:
		return visitOne(p, init, required)
	}
}

// Visit a single position holding a node of a specific type.
func visitOne[T Node](p *childVisitor, node T, required bool) T {
	var zero T
	//
	if isNil(node) {
		return node
	}
	//
	nodes := p.apply(node)
	//
	switch {
	case len(nodes) == 1:
		if r, ok := nodes[0].(T); ok {
			return r
		}
		//
		p.fail(misplaced(nodes[0], KindOf(node)))
	case len(nodes) == 0 && !required:
		return zero
	case len(nodes) == 0:
		p.fail(fmt.Errorf("%w (in place of %s)", ErrEmptySlot, KindOf(node)))
	default:
		p.fail(fmt.Errorf("%d nodes produced in place of %s", len(nodes), KindOf(node)))
	}
	//
	return node
}

// Visit a list position, splicing all results in place.  The original list is
// returned when nothing changed.
func visitList[T Node](p *childVisitor, list []T) []T {
	var items []T
	//
	for i, item := range list {
		nodes := p.apply(item)
		//
		if items == nil {
			if len(nodes) == 1 && nodes[0] == Node(item) {
				continue
			}
			// First change, so copy over everything before it.
			items = make([]T, i, len(list)+len(nodes))
			copy(items, list[:i])
		}
		//
		for _, n := range nodes {
			if r, ok := n.(T); ok {
				items = append(items, r)
			} else {
				p.fail(misplaced(n, KindOf(item)))
				return list
			}
		}
	}
	//
	if items == nil {
		return list
	}
	//
	return items
}

func isNil(node Node) bool {
	if node == nil {
		return true
	}
	//
	v := reflect.ValueOf(node)
	//
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func misplaced(node Node, expected string) error {
	return fmt.Errorf("cannot place %s where %s is expected", KindOf(node), expected)
}

// KindOf returns a human-readable name for the kind of a given node, such as
// "CallExpression".
func KindOf(node Node) string {
	if isNil(node) {
		return "nothing"
	}
	//
	return reflect.TypeOf(node).Elem().Name()
}

//nolint:gocyclo
func (p *childVisitor) rewrite(node Node) Node {
	switch n := node.(type) {
	// ========================================================================
	// Containers
	// ========================================================================
	case *SourceFile:
		stmts := visitList(p, n.Statements)
		if p.changed {
			return &SourceFile{n.Filename, stmts}
		}
	case *ModuleBlock:
		stmts := visitList(p, n.Statements)
		if p.changed {
			return &ModuleBlock{stmts}
		}
	case *Block:
		stmts := visitList(p, n.Statements)
		if p.changed {
			return &Block{stmts, n.Multiline}
		}
	// ========================================================================
	// Leaves
	// ========================================================================
	case *Identifier, *NumericLiteral, *StringLiteral, *Keyword, *OmittedExpression,
		*Verbatim, *TypeNode, *EmptyStatement, *TypeDeclaration, *Directive,
		*BreakStatement, *ContinueStatement:
		return node
	// ========================================================================
	// Expressions
	// ========================================================================
	case *ObjectLiteral:
		props := visitList(p, n.Properties)
		if p.changed {
			return &ObjectLiteral{props, n.Multiline, n.TrailingComma}
		}
	case *PropertyAssignment:
		name := visitOne(p, n.Name, true)
		init := p.expr(n.Initializer)
		//
		if p.changed {
			return &PropertyAssignment{name, init}
		}
	case *ShorthandPropertyAssignment:
		name := visitOne(p, n.Name, true)
		if p.changed {
			return &ShorthandPropertyAssignment{name}
		}
	case *SpreadAssignment:
		expr := p.expr(n.Expression)
		if p.changed {
			return &SpreadAssignment{expr}
		}
	case *ComputedPropertyName:
		expr := p.expr(n.Expression)
		if p.changed {
			return &ComputedPropertyName{expr}
		}
	case *ArrayLiteral:
		elements := visitList(p, n.Elements)
		if p.changed {
			return &ArrayLiteral{elements, n.Multiline, n.TrailingComma}
		}
	case *SpreadElement:
		expr := p.expr(n.Expression)
		if p.changed {
			return &SpreadElement{expr}
		}
	case *PropertyAccess:
		expr := p.expr(n.Expression)
		name := visitOne(p, n.Name, true)
		//
		if p.changed {
			return &PropertyAccess{expr, n.QuestionDot, name}
		}
	case *ElementAccess:
		expr := p.expr(n.Expression)
		arg := p.expr(n.Argument)
		//
		if p.changed {
			return &ElementAccess{expr, n.QuestionDot, arg}
		}
	case *CallExpression:
		callee := p.expr(n.Expression)
		args := visitList(p, n.Arguments)
		//
		if p.changed {
			return &CallExpression{callee, n.QuestionDot, n.TypeArguments, args}
		}
	case *NewExpression:
		callee := p.expr(n.Expression)
		args := visitList(p, n.Arguments)
		//
		if p.changed {
			return &NewExpression{callee, n.TypeArguments, args}
		}
	case *NonNullExpression:
		expr := p.expr(n.Expression)
		if p.changed {
			return &NonNullExpression{expr}
		}
	case *ParenthesizedExpression:
		expr := p.expr(n.Expression)
		if p.changed {
			return &ParenthesizedExpression{expr}
		}
	case *AsExpression:
		expr := p.expr(n.Expression)
		if p.changed {
			return &AsExpression{expr, n.Type}
		}
	case *SatisfiesExpression:
		expr := p.expr(n.Expression)
		if p.changed {
			return &SatisfiesExpression{expr, n.Type}
		}
	case *TypeAssertion:
		expr := p.expr(n.Expression)
		if p.changed {
			return &TypeAssertion{n.Type, expr}
		}
	case *PrefixUnary:
		operand := p.expr(n.Operand)
		if p.changed {
			return &PrefixUnary{n.Operator, operand}
		}
	case *PostfixUnary:
		operand := p.expr(n.Operand)
		if p.changed {
			return &PostfixUnary{operand, n.Operator}
		}
	case *Binary:
		lhs := p.expr(n.Left)
		rhs := p.expr(n.Right)
		//
		if p.changed {
			return &Binary{lhs, n.Operator, rhs}
		}
	case *Conditional:
		cond := p.expr(n.Condition)
		tt := p.expr(n.WhenTrue)
		ff := p.expr(n.WhenFalse)
		//
		if p.changed {
			return &Conditional{cond, tt, ff}
		}
	case *CommaList:
		elements := visitList(p, n.Elements)
		//
		if !p.changed {
			return node
		} else if len(elements) == 0 {
			return nil
		}
		//
		return &CommaList{elements}
	case *ArrowFunction:
		params := visitList(p, n.Parameters)
		//
		var body Node
		//
		if block, ok := n.Body.(*Block); ok {
			body = visitOne(p, block, true)
		} else {
			body = p.expr(n.Body.(Expression))
		}
		//
		if p.changed {
			return &ArrowFunction{n.Modifiers, params, n.Type, body}
		}
	case *FunctionExpression:
		name := visitOne(p, n.Name, false)
		params := visitList(p, n.Parameters)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &FunctionExpression{n.Modifiers, n.Asterisk, name, params, n.Type, body}
		}
	// ========================================================================
	// Statements
	// ========================================================================
	case *ExpressionStatement:
		nodes := p.apply(n.Expression)
		//
		if len(nodes) == 0 {
			// Nothing left to evaluate
			return nil
		}
		//
		expr := p.toExpression(nodes, n.Expression)
		//
		if p.changed {
			return &ExpressionStatement{expr}
		}
	case *VariableStatement:
		list := visitOne(p, n.List, true)
		if p.changed {
			return &VariableStatement{n.Modifiers, list}
		}
	case *VariableDeclarationList:
		decls := visitList(p, n.Declarations)
		if p.changed {
			return &VariableDeclarationList{n.Keyword, decls}
		}
	case *VariableDeclaration:
		name := visitOne(p, n.Name, true)
		init := p.optExpr(n.Initializer)
		//
		if p.changed {
			return &VariableDeclaration{name, n.Type, init}
		}
	case *ExportAssignment:
		expr := p.expr(n.Expression)
		if p.changed {
			return &ExportAssignment{expr}
		}
	case *ReturnStatement:
		expr := p.optExpr(n.Expression)
		if p.changed {
			return &ReturnStatement{expr}
		}
	case *IfStatement:
		cond := p.expr(n.Condition)
		then := p.stmt(n.Then, true)
		otherwise := p.stmt(n.Else, false)
		//
		if p.changed {
			return &IfStatement{cond, then, otherwise}
		}
	case *ForStatement:
		init := p.initializer(n.Initializer, false)
		cond := p.optExpr(n.Condition)
		incr := p.optExpr(n.Incrementor)
		body := p.stmt(n.Body, true)
		//
		if p.changed {
			return &ForStatement{init, cond, incr, body}
		}
	case *ForInOfStatement:
		init := p.initializer(n.Initializer, true)
		expr := p.expr(n.Expression)
		body := p.stmt(n.Body, true)
		//
		if p.changed {
			return &ForInOfStatement{n.Of, init, expr, body}
		}
	case *WhileStatement:
		cond := p.expr(n.Condition)
		body := p.stmt(n.Body, true)
		//
		if p.changed {
			return &WhileStatement{cond, body}
		}
	case *DoStatement:
		body := p.stmt(n.Body, true)
		cond := p.expr(n.Condition)
		//
		if p.changed {
			return &DoStatement{body, cond}
		}
	case *ThrowStatement:
		expr := p.expr(n.Expression)
		if p.changed {
			return &ThrowStatement{expr}
		}
	case *TryStatement:
		try := visitOne(p, n.Try, true)
		catch := visitOne(p, n.Catch, false)
		finally := visitOne(p, n.Finally, false)
		//
		if p.changed {
			return &TryStatement{try, catch, finally}
		}
	case *CatchClause:
		variable := visitOne(p, n.Variable, false)
		block := visitOne(p, n.Block, true)
		//
		if p.changed {
			return &CatchClause{variable, block}
		}
	case *SwitchStatement:
		expr := p.expr(n.Expression)
		clauses := visitList(p, n.Clauses)
		//
		if p.changed {
			return &SwitchStatement{expr, clauses}
		}
	case *CaseClause:
		expr := p.optExpr(n.Expression)
		stmts := visitList(p, n.Statements)
		//
		if p.changed {
			return &CaseClause{expr, stmts}
		}
	case *LabeledStatement:
		stmt := p.stmt(n.Statement, true)
		if p.changed {
			return &LabeledStatement{n.Label, stmt}
		}
	// ========================================================================
	// Declarations
	// ========================================================================
	case *Parameter:
		name := visitOne(p, n.Name, true)
		init := p.optExpr(n.Initializer)
		//
		if p.changed {
			return &Parameter{n.DotDotDot, name, n.Optional, n.Type, init}
		}
	case *ObjectBindingPattern:
		elements := visitList(p, n.Elements)
		if p.changed {
			return &ObjectBindingPattern{elements}
		}
	case *ArrayBindingPattern:
		elements := visitList(p, n.Elements)
		if p.changed {
			return &ArrayBindingPattern{elements}
		}
	case *BindingElement:
		prop := visitOne(p, n.PropertyName, false)
		name := visitOne(p, n.Name, true)
		init := p.optExpr(n.Initializer)
		//
		if p.changed {
			return &BindingElement{n.DotDotDot, prop, name, init}
		}
	case *FunctionDeclaration:
		name := visitOne(p, n.Name, false)
		params := visitList(p, n.Parameters)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &FunctionDeclaration{n.Modifiers, n.Asterisk, name, params, n.Type, body}
		}
	case *ClassDeclaration:
		name := visitOne(p, n.Name, false)
		extends := p.optExpr(n.Extends)
		members := visitList(p, n.Members)
		//
		if p.changed {
			return &ClassDeclaration{n.Modifiers, name, extends, members}
		}
	case *PropertyDeclaration:
		name := visitOne(p, n.Name, true)
		init := p.optExpr(n.Initializer)
		//
		if p.changed {
			return &PropertyDeclaration{n.Modifiers, name, n.Type, init}
		}
	case *MethodDeclaration:
		name := visitOne(p, n.Name, true)
		params := visitList(p, n.Parameters)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &MethodDeclaration{n.Modifiers, n.Asterisk, name, params, n.Type, body}
		}
	case *Constructor:
		params := visitList(p, n.Parameters)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &Constructor{n.Modifiers, params, body}
		}
	case *Accessor:
		name := visitOne(p, n.Name, true)
		params := visitList(p, n.Parameters)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &Accessor{n.Modifiers, n.Setter, name, params, n.Type, body}
		}
	case *ModuleDeclaration:
		name := visitOne(p, n.Name, true)
		body := visitOne(p, n.Body, false)
		//
		if p.changed {
			return &ModuleDeclaration{n.Modifiers, n.Keyword, name, body}
		}
	default:
		panic(fmt.Sprintf("unknown node %s", KindOf(node)))
	}
	//
	return node
}
