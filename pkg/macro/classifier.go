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
package macro

import (
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// IsBaseMacroCall checks whether a node has the shape of a macro call.  That
// is, a call whose callee is a non-null assertion and which has no optional
// chaining token (e.g. "f!(x)" but not "f!?.(x)").  The asserted expression
// is returned when this holds.
func IsBaseMacroCall(node ast.Node) (ast.Expression, bool) {
	call, ok := node.(*ast.CallExpression)
	//
	if !ok || call.QuestionDot {
		return nil, false
	}
	//
	if nonnull, ok := call.Expression.(*ast.NonNullExpression); ok {
		return nonnull.Expression, true
	}
	//
	return nil, false
}

// IsFunctionMacroCall checks whether a node is a function-style macro call,
// such as "name!(x)".  When name is non-empty, the macro name must also match.
func IsFunctionMacroCall(node ast.Node, name string) bool {
	callee, ok := IsBaseMacroCall(node)
	//
	if !ok {
		return false
	} else if id, ok := callee.(*ast.Identifier); ok {
		return name == "" || id.Name == name
	}
	//
	return false
}

// IsMethodMacroCall checks whether a node is a method-style macro call, such
// as "obj.name!(x)".  When name is non-empty, the macro name must also match.
// Optionally chained accesses (e.g. "a?.b!(x)") are not macro calls.
func IsMethodMacroCall(node ast.Node, name string) bool {
	callee, ok := IsBaseMacroCall(node)
	//
	if !ok {
		return false
	} else if access, ok := callee.(*ast.PropertyAccess); ok && !access.QuestionDot {
		return name == "" || access.Name.Name == name
	}
	//
	return false
}

// IsMacroCall checks whether a node is a function-style or method-style macro
// call, optionally with a given name.
func IsMacroCall(node ast.Node, name string) bool {
	return IsFunctionMacroCall(node, name) || IsMethodMacroCall(node, name)
}

// NameOf returns the name of the macro targeted by a macro call, or false if
// the node is not a macro call.
func NameOf(node ast.Node) (string, bool) {
	callee, ok := IsBaseMacroCall(node)
	//
	if !ok {
		return "", false
	}
	//
	switch c := callee.(type) {
	case *ast.Identifier:
		return c.Name, true
	case *ast.PropertyAccess:
		if !c.QuestionDot {
			return c.Name.Name, true
		}
	}
	//
	return "", false
}

// ReceiverOf returns the object a method-style macro is applied to (e.g. "r"
// in "r.return!()"), or false if the node is not a method-style macro call.
func ReceiverOf(node ast.Node) (ast.Expression, bool) {
	if !IsMethodMacroCall(node, "") {
		return nil, false
	}
	//
	callee, _ := IsBaseMacroCall(node)
	//
	return callee.(*ast.PropertyAccess).Expression, true
}

// ActualExpression strips any parentheses, "as" and "satisfies" expressions
// and legacy "<T>x" assertions wrapping an expression, to reach the
// expression which actually determines its value.
func ActualExpression(expr ast.Expression) ast.Expression {
	for {
		switch e := expr.(type) {
		case *ast.ParenthesizedExpression:
			expr = e.Expression
		case *ast.AsExpression:
			expr = e.Expression
		case *ast.SatisfiesExpression:
			expr = e.Expression
		case *ast.TypeAssertion:
			expr = e.Expression
		default:
			return expr
		}
	}
}
