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

// IsStatement checks whether a node can appear in a statement list.
func IsStatement(node Node) bool {
	_, ok := node.(Statement)
	return ok
}

// IsFunctionLike checks whether a node is a function-like declaration, i.e. a
// function declaration or expression, arrow function, method, constructor or
// accessor.
func IsFunctionLike(node Node) bool {
	_, ok := node.(FunctionLike)
	return ok
}

// IsHoistableDestination checks whether statements can be hoisted into a
// node.  That is, whether it is a source file, a module block, a plain block
// or a function-like declaration.
func IsHoistableDestination(node Node) bool {
	switch node.(type) {
	case *SourceFile, *ModuleBlock, *Block:
		return true
	default:
		return IsFunctionLike(node)
	}
}

// StatementsOf returns the statement list of a hoistable destination.  For a
// function-like destination this is the statement list of its body.  The
// second result is false when the destination has no statement list, such as
// an arrow function whose body is an expression.
func StatementsOf(node Node) ([]Statement, bool) {
	switch n := node.(type) {
	case *SourceFile:
		return n.Statements, true
	case *ModuleBlock:
		return n.Statements, true
	case *Block:
		return n.Statements, true
	case FunctionLike:
		if body, ok := n.FunctionBody().(*Block); ok {
			return body.Statements, true
		}
	}
	//
	return nil, false
}

// WithStatements returns a copy of a hoistable destination whose statement
// list is replaced by the given statements.  An arrow function with an
// expression body is given a block body.  The destination (and any rebuilt
// body) is recorded in the origins table.
func (p *Rewriter) WithStatements(node Node, stmts []Statement) Node {
	var result Node
	//
	switch n := node.(type) {
	case *SourceFile:
		result = &SourceFile{n.Filename, stmts}
	case *ModuleBlock:
		result = &ModuleBlock{stmts}
	case *Block:
		result = &Block{stmts, n.Multiline}
	case *ArrowFunction:
		result = &ArrowFunction{n.Modifiers, n.Parameters, n.Type, p.withBody(n.Body, stmts)}
	case *FunctionDeclaration:
		result = &FunctionDeclaration{n.Modifiers, n.Asterisk, n.Name, n.Parameters, n.Type, p.withBody(n.Body, stmts)}
	case *FunctionExpression:
		result = &FunctionExpression{n.Modifiers, n.Asterisk, n.Name, n.Parameters, n.Type, p.withBody(n.Body, stmts)}
	case *MethodDeclaration:
		result = &MethodDeclaration{n.Modifiers, n.Asterisk, n.Name, n.Parameters, n.Type, p.withBody(n.Body, stmts)}
	case *Constructor:
		result = &Constructor{n.Modifiers, n.Parameters, p.withBody(n.Body, stmts)}
	case *Accessor:
		result = &Accessor{n.Modifiers, n.Setter, n.Name, n.Parameters, n.Type, p.withBody(n.Body, stmts)}
	default:
		panic("not a hoistable destination: " + KindOf(node))
	}
	//
	p.origins.Record(result, node)
	//
	return result
}

// WithBlockBody converts an arrow function whose body is an expression into
// one whose body is a block returning that expression.  Arrow functions which
// already have a block body are returned as is.
func (p *Rewriter) WithBlockBody(fn *ArrowFunction) *ArrowFunction {
	expr, ok := fn.Body.(Expression)
	//
	if !ok {
		return fn
	}
	//
	result := &ArrowFunction{fn.Modifiers, fn.Parameters, fn.Type, NewBlock(true, NewReturn(expr))}
	p.origins.Record(result, fn)
	//
	return result
}

// Construct the block body for a function-like destination, reusing the
// identity and layout of the original body (when there is one).
func (p *Rewriter) withBody(body Node, stmts []Statement) *Block {
	block := &Block{stmts, true}
	//
	switch b := body.(type) {
	case *Block:
		if b != nil {
			block.Multiline = b.Multiline
			p.origins.Record(block, b)
		}
	case Expression:
		// Expression body, hence keep its value as the final return.
		block.Statements = append(stmts[:len(stmts):len(stmts)], NewReturn(b))
	}
	//
	return block
}
