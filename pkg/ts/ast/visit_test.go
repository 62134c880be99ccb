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
	"testing"

	"github.com/consensys/go-jiewo/pkg/util/assert"
)

func Test_Visit_Unchanged(t *testing.T) {
	stmt := NewExpressionStatement(NewBinary(NewIdentifier("a"), "+", NewIdentifier("b")))
	file := &SourceFile{"test.ts", []Statement{stmt}}
	origins := NewOrigins()
	//
	result, err := NewRewriter(origins).VisitEachChild(file, identity)
	//
	assert.NoError(t, err)
	assert.True(t, result == Node(file))
	assert.Equal(t, 0, origins.Len())
}

func Test_Visit_Sharing(t *testing.T) {
	var (
		a    = NewIdentifier("a")
		b    = NewIdentifier("b")
		lhs  = NewCall(a)
		rhs  = NewCall(b)
		expr = NewBinary(lhs, "+", rhs)
	)
	// Replace "b" only
	visit := func(node Node) ([]Node, error) {
		if node == Node(rhs) {
			return []Node{NewNumericLiteral(1)}, nil
		}
		//
		return []Node{node}, nil
	}
	//
	origins := NewOrigins()
	result, err := NewRewriter(origins).VisitEachChild(expr, visit)
	//
	assert.NoError(t, err)
	//
	bin := result.(*Binary)
	assert.True(t, bin != expr)
	assert.True(t, bin.Left == Expression(lhs))
	assert.Equal(t, "1", bin.Right.(*NumericLiteral).Text)
	assert.True(t, origins.Source(bin) == Node(expr))
}

func Test_Visit_Splice(t *testing.T) {
	var (
		first  = NewExpressionStatement(NewIdentifier("a"))
		second = NewExpressionStatement(NewIdentifier("b"))
		block  = NewBlock(true, first, second)
	)
	//
	visit := func(node Node) ([]Node, error) {
		if node == Node(first) {
			return []Node{NewReturn(nil), node, NewReturn(nil)}, nil
		} else if node == Node(second) {
			return nil, nil
		}
		//
		return []Node{node}, nil
	}
	//
	result, err := NewRewriter(nil).VisitEachChild(block, visit)
	//
	assert.NoError(t, err)
	assert.Equal(t, 3, len(result.(*Block).Statements))
	assert.True(t, result.(*Block).Statements[1] == Statement(first))
	// Original left untouched
	assert.Equal(t, 2, len(block.Statements))
}

func Test_Visit_LiftStatements(t *testing.T) {
	var (
		then = NewExpressionStatement(NewIdentifier("a"))
		stmt = NewIf(NewIdentifier("c"), then, nil)
	)
	//
	visit := func(node Node) ([]Node, error) {
		if node == Node(then) {
			return []Node{node, node}, nil
		}
		//
		return []Node{node}, nil
	}
	//
	result, err := NewRewriter(nil).VisitEachChild(stmt, visit)
	//
	assert.NoError(t, err)
	//
	block := result.(*IfStatement).Then.(*Block)
	assert.Equal(t, 2, len(block.Statements))
	assert.True(t, block.Multiline)
}

func Test_Visit_LiftExpressions(t *testing.T) {
	var (
		arg  = NewIdentifier("x")
		call = NewCall(NewIdentifier("f"), arg)
		stmt = NewReturn(call)
	)
	//
	visit := func(node Node) ([]Node, error) {
		if node == Node(call) {
			return []Node{NewIdentifier("a"), NewIdentifier("b")}, nil
		}
		//
		return []Node{node}, nil
	}
	//
	result, err := NewRewriter(nil).VisitEachChild(stmt, visit)
	//
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result.(*ReturnStatement).Expression.(*CommaList).Elements))
}

func Test_Visit_ElideStatement(t *testing.T) {
	stmt := NewExpressionStatement(NewIdentifier("a"))
	//
	result, err := NewRewriter(nil).VisitEachChild(stmt, remove)
	//
	assert.NoError(t, err)
	assert.True(t, result == nil)
}

func Test_Visit_EmptySlot(t *testing.T) {
	expr := NewBinary(NewIdentifier("a"), "+", NewIdentifier("b"))
	//
	_, err := NewRewriter(nil).VisitEachChild(expr, remove)
	//
	assert.True(t, errors.Is(err, ErrEmptySlot))
}

func Test_Visit_Misplaced(t *testing.T) {
	expr := NewBinary(NewIdentifier("a"), "+", NewIdentifier("b"))
	//
	visit := func(node Node) ([]Node, error) {
		return []Node{NewReturn(nil)}, nil
	}
	//
	_, err := NewRewriter(nil).VisitEachChild(expr, visit)
	//
	assert.ErrorContains(t, err, "cannot place ReturnStatement")
}

func Test_Visit_Error(t *testing.T) {
	expr := NewCall(NewIdentifier("f"), NewIdentifier("a"), NewIdentifier("b"))
	failure := errors.New("failure")
	count := 0
	//
	visit := func(node Node) ([]Node, error) {
		count++
		return nil, failure
	}
	//
	_, err := NewRewriter(nil).VisitEachChild(expr, visit)
	//
	assert.True(t, errors.Is(err, failure))
	// Visiting stops at the first error
	assert.Equal(t, 1, count)
}

func Test_Inspect(t *testing.T) {
	var (
		kinds []string
		body  = NewBlock(true, NewReturn(NewIdentifier("x")))
		fn    = &ArrowFunction{nil, []*Parameter{NewParameter("x")}, nil, body}
		stmt  = NewExpressionStatement(NewCall(NewIdentifier("f"), fn))
	)
	//
	Inspect(stmt, func(node Node) bool {
		kinds = append(kinds, KindOf(node))
		// Don't enter functions
		return !IsFunctionLike(node)
	})
	//
	assert.Equal(t, []string{"ExpressionStatement", "CallExpression", "Identifier", "ArrowFunction"}, kinds)
}

func Test_WithStatements_01(t *testing.T) {
	var (
		origins = NewOrigins()
		fn      = &ArrowFunction{nil, nil, nil, NewIdentifier("x")}
		decl    = NewVariableStatement(CONST, "y", NewNumericLiteral(1))
	)
	//
	result := NewRewriter(origins).WithStatements(fn, []Statement{decl}).(*ArrowFunction)
	body := result.Body.(*Block)
	//
	assert.Equal(t, 2, len(body.Statements))
	assert.True(t, body.Statements[0] == Statement(decl))
	assert.Equal(t, "x", body.Statements[1].(*ReturnStatement).Expression.(*Identifier).Name)
	assert.True(t, origins.Original(result) == Node(fn))
}

func Test_WithStatements_02(t *testing.T) {
	var (
		origins = NewOrigins()
		body    = NewBlock(false)
		fn      = NewFunctionDeclaration("f", nil)
	)
	//
	fn.Body = body
	//
	result := NewRewriter(origins).WithStatements(fn, []Statement{NewReturn(nil)}).(*FunctionDeclaration)
	//
	assert.True(t, result.Body != body)
	assert.True(t, origins.Original(result.Body) == Node(body))
	assert.True(t, origins.SameOriginal(result, fn))
}

func Test_StatementsOf(t *testing.T) {
	stmts, ok := StatementsOf(&ArrowFunction{nil, nil, nil, NewIdentifier("x")})
	//
	assert.False(t, ok)
	assert.Equal(t, 0, len(stmts))
	//
	stmts, ok = StatementsOf(NewFunctionDeclaration("f", nil, NewReturn(nil)))
	//
	assert.True(t, ok)
	assert.Equal(t, 1, len(stmts))
}

func Test_Origins_Chain(t *testing.T) {
	var (
		origins = NewOrigins()
		a       = NewIdentifier("a")
		b       = NewIdentifier("b")
		c       = NewIdentifier("c")
	)
	//
	origins.Record(b, a)
	origins.Record(c, b)
	// First recording wins, and cycles are refused
	origins.Record(c, NewIdentifier("d"))
	origins.Record(a, c)
	//
	assert.True(t, origins.Original(c) == Node(a))
	assert.True(t, origins.Source(c) == Node(b))
	assert.True(t, origins.Original(a) == Node(a))
	assert.Equal(t, 2, origins.Len())
}

func identity(node Node) ([]Node, error) {
	return []Node{node}, nil
}

func remove(node Node) ([]Node, error) {
	return nil, nil
}
