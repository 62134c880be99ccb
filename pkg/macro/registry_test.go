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
	"testing"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/util/assert"
)

func Test_Registry_01(t *testing.T) {
	registry := NewRegistry()
	//
	assert.NoError(t, registry.Register("a", identity))
	assert.NoError(t, registry.Register("b", identity))
	assert.ErrorContains(t, registry.Register("a", identity), "already registered")
	assert.ErrorContains(t, registry.Register("", identity), "cannot be empty")
	assert.Equal(t, []string{"a", "b"}, registry.Names())
	assert.Equal(t, 2, registry.Len())
}

func Test_Registry_02(t *testing.T) {
	registry := NewRegistry()
	//
	assert.NoError(t, registry.Register("return", identity))
	//
	name, _, ok := registry.Lookup(parseExpr(t, "r.return!()"))
	assert.True(t, ok)
	assert.Equal(t, "return", name)
	//
	_, _, ok = registry.Lookup(parseExpr(t, "other!()"))
	assert.False(t, ok)
	//
	_, _, ok = registry.Lookup(parseExpr(t, "r.return()"))
	assert.False(t, ok)
}

func Test_Registry_03(t *testing.T) {
	registry := NewRegistry()
	//
	assert.NoError(t, registry.Register("a", identity))
	assert.NoError(t, registry.Register("b", identity))
	assert.NoError(t, registry.Register("c", identity))
	//
	subset, err := registry.Without("b")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, subset.Names())
	// Original is unaffected
	assert.Equal(t, []string{"a", "b", "c"}, registry.Names())
	//
	_, err = registry.Without("d")
	assert.ErrorContains(t, err, "unknown macro d!")
}

func Test_Ledger_01(t *testing.T) {
	var (
		ledger = NewLedger()
		file   = &ast.SourceFile{}
		block  = ast.NewBlock(true)
		x      = ast.NewIdentifier("x")
		y      = ast.NewIdentifier("y")
		s1     = ast.NewVariableStatement(ast.VAR, "s1", nil)
		s2     = ast.NewVariableStatement(ast.VAR, "s2", nil)
		s3     = ast.NewVariableStatement(ast.VAR, "s3", nil)
		s4     = ast.NewVariableStatement(ast.VAR, "s4", nil)
	)
	//
	assert.True(t, ledger.IsEmpty())
	ledger.Add(y, file, s1)
	ledger.Add(x, block, s2)
	ledger.Add(x, file, s3)
	ledger.Add(y, file, s4)
	//
	assert.Equal(t, 4, ledger.Len())
	assert.Equal(t, []ast.Node{file, block}, ledger.Destinations())
	//
	groups := ledger.Groups(file)
	assert.Equal(t, 2, len(groups))
	assert.True(t, groups[0].Origin == y)
	assert.Equal(t, []ast.Statement{s1, s4}, groups[0].Statements)
	assert.True(t, groups[1].Origin == x)
	assert.Equal(t, []ast.Statement{s3}, groups[1].Statements)
	//
	ledger.Clear()
	assert.True(t, ledger.IsEmpty())
	assert.Equal(t, 0, len(ledger.Groups(file)))
}

func Test_Names_01(t *testing.T) {
	file := &ast.SourceFile{Statements: []ast.Statement{
		ast.NewExpressionStatement(ast.NewCall(ast.NewIdentifier("x_1"), ast.NewIdentifier("y_2"))),
	}}
	names := NewNames(file)
	//
	assert.Equal(t, "x_2", names.Fresh("x"))
	assert.Equal(t, "x_3", names.Fresh("x"))
	assert.Equal(t, "y_1", names.Fresh("y"))
	assert.Equal(t, "y_3", names.Fresh("y"))
	assert.Equal(t, "x_1_1", names.Fresh("x_1"))
}

func identity(call *ast.CallExpression, _ Context) (Expansion, error) {
	return Replace(call.Arguments[0]), nil
}
