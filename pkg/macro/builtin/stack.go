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
package builtin

import (
	"fmt"
	"strings"

	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Stack expands "stack!(proto, source, reset)", which allocates an object once
// (at file scope) and resets it on every evaluation, rather than allocating a
// fresh object each time.  The prototype is hoisted into a file-level
// variable, and each invalidator into a file-level reset function.  An
// invalidator is either a function which resets its argument, or an object
// (or array) literal whose leaves are assigned in turn.  Thus, for example,
// "stack!({ a: 1 })" evaluates to "(reset_1(v_1), v_1)" where "v_1" holds
// "{ a: 1 }" and "reset_1(it)" assigns "it.a = 1".  A prototype without any
// invalidator (e.g. a primitive) is returned as is.
func Stack(call *ast.CallExpression, ctx macro.Context) (macro.Expansion, error) {
	var (
		args        = normalise(call.Arguments)
		id          = instanceName(call, ctx)
		invalidator []reset
	)
	//
	if len(args) == 0 {
		return macro.Delete(), fmt.Errorf("expected a prototype")
	} else if len(args) > 3 {
		return macro.Delete(), fmt.Errorf("too many arguments (%d)", len(args))
	}
	//
	for i, arg := range args {
		switch a := arg.(type) {
		case *ast.ObjectLiteral, *ast.ArrayLiteral:
			if i > 1 {
				return macro.Delete(), fmt.Errorf("reset must be a function")
			}
			//
			it := ctx.UniqueName(id + "__it")
			stmts, err := assignments(a, it.Name)
			//
			if err != nil {
				return macro.Delete(), err
			}
			//
			invalidator = append(invalidator, reset{[]*ast.Parameter{ast.NewParameter(it.Name)}, stmts})
		case *ast.ArrowFunction:
			if i > 0 {
				invalidator = append(invalidator, reset{a.Parameters, bodyOf(a.Body)})
			}
		case *ast.FunctionExpression:
			if i > 0 {
				invalidator = append(invalidator, reset{a.Parameters, bodyOf(a.Body)})
			}
		}
	}
	//
	if len(invalidator) == 0 {
		return macro.Replace(args[0]), nil
	}
	//
	var (
		instance = ctx.UniqueName(id)
		elements []ast.Expression
	)
	//
	ctx.Hoist(call, ctx.File(), ast.NewVariableStatement(ast.VAR, instance.Name, args[0]))
	//
	for _, r := range invalidator {
		name := ctx.UniqueName(id + "__reset")
		//
		ctx.Hoist(call, ctx.File(), ast.NewFunctionDeclaration(name.Name, r.params, r.body...))
		elements = append(elements, ast.NewCall(name, ast.NewIdentifier(instance.Name)))
	}
	//
	return macro.Replace(ast.NewCommaList(append(elements, instance)...)), nil
}

// Reset function to be hoisted.
type reset struct {
	params []*ast.Parameter
	body   []ast.Statement
}

func normalise(args []ast.Expression) []ast.Expression {
	normalised := make([]ast.Expression, len(args))
	//
	for i, arg := range args {
		normalised[i] = macro.ActualExpression(arg)
	}
	//
	return normalised
}

func bodyOf(body ast.Node) []ast.Statement {
	switch b := body.(type) {
	case *ast.Block:
		return b.Statements
	case ast.Expression:
		return []ast.Statement{ast.NewReturn(b)}
	default:
		return nil
	}
}

// Determine the name of the instance allocated by a call to stack!, which is
// formed from the names of the declarations enclosing the call.  For example,
// "function foo() { const a = stack!(...) }" gives "foo__a".
func instanceName(call ast.Node, ctx macro.Context) string {
	var names []string
	//
	for _, ancestor := range ctx.Ancestors(call) {
		var name string
		//
		switch a := ancestor.(type) {
		case *ast.VariableDeclaration:
			if id, ok := a.Name.(*ast.Identifier); ok {
				name = id.Name
			}
		case *ast.PropertyAssignment:
			if id, ok := a.Name.(*ast.Identifier); ok {
				name = id.Name
			}
		case *ast.FunctionDeclaration:
			name = a.FunctionName()
		case *ast.Binary:
			if id, ok := a.Left.(*ast.Identifier); ok && a.Operator == "=" {
				name = id.Name
			}
		}
		//
		if name != "" {
			names = append(names, name)
		}
	}
	//
	if len(names) == 0 {
		return "anonymous"
	}
	// Outermost first
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	//
	return strings.Join(names, "__")
}

// ============================================================================
// Literal invalidators
// ============================================================================

// Construct the statements assigning every leaf of an object or array literal
// to the corresponding location within a given variable.
func assignments(literal ast.Expression, base string) ([]ast.Statement, error) {
	builder := assigner{base: base}
	//
	builder.container(literal, nil)
	//
	return builder.stmts, builder.err
}

type assigner struct {
	stmts []ast.Statement
	err   error
	base  string
}

func (p *assigner) container(literal ast.Expression, path []ast.Node) {
	switch l := literal.(type) {
	case *ast.ObjectLiteral:
		for _, member := range l.Properties {
			p.member(member, path)
		}
	case *ast.ArrayLiteral:
		for i, element := range l.Elements {
			p.element(i, element, path)
		}
	}
}

func (p *assigner) member(member ast.ObjectMember, path []ast.Node) {
	switch m := member.(type) {
	case *ast.PropertyAssignment:
		p.leaf(m.Initializer, extend(path, m.Name))
	case *ast.ShorthandPropertyAssignment:
		p.assign(extend(path, m.Name), ast.NewIdentifier(m.Name.Name))
	case *ast.SpreadAssignment:
		// { ...a } becomes Object.assign(it, a)
		assign := ast.NewPropertyAccess(ast.NewIdentifier("Object"), "assign")
		p.stmts = append(p.stmts, ast.NewExpressionStatement(ast.NewCall(assign, p.access(path), m.Expression)))
	default:
		// methods and accessors are left alone
	}
}

func (p *assigner) element(index int, element ast.Expression, path []ast.Node) {
	switch element.(type) {
	case *ast.OmittedExpression:
		// holes are left alone
	case *ast.SpreadElement:
		p.fail(fmt.Errorf("spread elements cannot be reset"))
	default:
		p.leaf(element, extend(path, ast.NewNumericLiteral(index)))
	}
}

// Assign a value to a location, or descend into it when it is itself a literal
// container.
func (p *assigner) leaf(value ast.Expression, path []ast.Node) {
	switch inner := macro.ActualExpression(value).(type) {
	case *ast.ObjectLiteral, *ast.ArrayLiteral:
		p.container(inner, path)
	default:
		p.assign(path, value)
	}
}

func (p *assigner) assign(path []ast.Node, value ast.Expression) {
	p.stmts = append(p.stmts, ast.NewExpressionStatement(ast.NewAssignment(p.access(path), value)))
}

// Construct the access chain for a given path from the base variable, e.g.
// "it.b.d[1]".
func (p *assigner) access(path []ast.Node) ast.Expression {
	var expr ast.Expression = ast.NewIdentifier(p.base)
	//
	for _, name := range path {
		switch n := name.(type) {
		case *ast.Identifier:
			expr = ast.NewPropertyAccess(expr, n.Name)
		case *ast.ComputedPropertyName:
			expr = ast.NewElementAccess(expr, n.Expression)
		case ast.Expression:
			expr = ast.NewElementAccess(expr, n)
		default:
			panic("unknown property name " + ast.KindOf(name))
		}
	}
	//
	return expr
}

func (p *assigner) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func extend(path []ast.Node, name ast.Node) []ast.Node {
	return append(path[:len(path):len(path)], name)
}
