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

	"github.com/consensys/go-jiewo/pkg/macro"
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Ok expands "ok!(v)" into an assignment of the result carrier of the
// enclosing function, such that "v" is its value and it has no error.  Outside
// of any function this is simply the literal "{ value: v, error: undefined }".
func Ok(call *ast.CallExpression, ctx macro.Context) (macro.Expansion, error) {
	return result(call, ctx, optionalArgument(call), ast.NewUndefined())
}

// Err expands "err!(e)" into an assignment of the result carrier of the
// enclosing function, such that it has no value and its error is "e".
func Err(call *ast.CallExpression, ctx macro.Context) (macro.Expansion, error) {
	return result(call, ctx, ast.NewUndefined(), optionalArgument(call))
}

func result(call *ast.CallExpression, ctx macro.Context, value ast.Expression,
	err ast.Expression) (macro.Expansion, error) {
	//
	id, ok := ctx.ResultIdentifier(call)
	//
	if !ok {
		return macro.Replace(ast.NewObjectLiteral(false,
			ast.NewPropertyAssignment("value", value),
			ast.NewPropertyAssignment("error", err))), nil
	}
	//
	return macro.Replace(ast.NewCommaList(
		ast.NewAssignment(ast.NewPropertyAccess(id, "value"), value),
		ast.NewAssignment(ast.NewPropertyAccess(ast.NewIdentifier(id.Name), "error"), err),
		ast.NewIdentifier(id.Name))), nil
}

// Return expands "r.return!()" by checking the result "r" immediately before
// the statement containing the call, returning early from the enclosing
// function if it is an error.  Otherwise, the call evaluates to the value of
// the result.
func Return(call *ast.CallExpression, ctx macro.Context) (macro.Expansion, error) {
	receiver, ok := macro.ReceiverOf(call)
	//
	if !ok {
		return macro.Delete(), fmt.Errorf("expected a result receiver (e.g. r.return!())")
	}
	//
	fn, ok := macro.ClosestFunction(ctx, call)
	//
	if !ok {
		return macro.Delete(), fmt.Errorf("cannot return outside of a function")
	}
	//
	tmp := ctx.UniqueName("tmp")
	check := ast.NewBinary(ast.NewPropertyAccess(ast.NewIdentifier(tmp.Name), "error"), "!==", ast.NewUndefined())
	//
	ctx.Hoist(call, fn, ast.NewVariableStatement(ast.CONST, tmp.Name, receiver))
	ctx.Hoist(call, fn, ast.NewIf(check, ast.NewReturn(ast.NewIdentifier(tmp.Name)), nil))
	//
	return macro.Replace(ast.NewPropertyAccess(tmp, "value")), nil
}

func optionalArgument(call *ast.CallExpression) ast.Expression {
	if len(call.Arguments) > 0 {
		return call.Arguments[0]
	}
	//
	return ast.NewUndefined()
}
