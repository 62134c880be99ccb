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
	"testing"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

func Test_Parse_MacroCall(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "stack!(42);")
	call := stmt.Expression.(*ast.CallExpression)
	callee := call.Expression.(*ast.NonNullExpression)
	//
	assert.Equal(t, "stack", callee.Expression.(*ast.Identifier).Name)
	assert.Equal(t, 1, len(call.Arguments))
	assert.Equal(t, "42", call.Arguments[0].(*ast.NumericLiteral).Text)
}

func Test_Parse_MethodMacroCall(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "r.return!()")
	call := stmt.Expression.(*ast.CallExpression)
	access := call.Expression.(*ast.NonNullExpression).Expression.(*ast.PropertyAccess)
	//
	assert.Equal(t, "return", access.Name.Name)
	assert.Equal(t, 0, len(call.Arguments))
}

func Test_Parse_NonNullNewline(t *testing.T) {
	file := parseOk(t, "a\n!b")
	//
	assert.Equal(t, 2, len(file.Statements))
}

func Test_Parse_Precedence_01(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a + b * c")
	bin := stmt.Expression.(*ast.Binary)
	//
	assert.Equal(t, "+", bin.Operator)
	assert.Equal(t, "*", bin.Right.(*ast.Binary).Operator)
}

func Test_Parse_Precedence_02(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a ** b ** c")
	bin := stmt.Expression.(*ast.Binary)
	//
	assert.Equal(t, "**", bin.Right.(*ast.Binary).Operator)
	assert.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
}

func Test_Parse_Precedence_03(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "x = a >> b >>> c >= d")
	assign := stmt.Expression.(*ast.Binary)
	cmp := assign.Right.(*ast.Binary)
	//
	assert.Equal(t, "=", assign.Operator)
	assert.Equal(t, ">=", cmp.Operator)
	assert.Equal(t, ">>>", cmp.Left.(*ast.Binary).Operator)
}

func Test_Parse_Assignment(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a >>>= b ??= c")
	assign := stmt.Expression.(*ast.Binary)
	//
	assert.Equal(t, ">>>=", assign.Operator)
	assert.Equal(t, "??=", assign.Right.(*ast.Binary).Operator)
}

func Test_Parse_Conditional(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a ? (x) : y")
	cond := stmt.Expression.(*ast.Conditional)
	//
	assert.Equal(t, "x", cond.WhenTrue.(*ast.ParenthesizedExpression).Expression.(*ast.Identifier).Name)
	assert.Equal(t, "y", cond.WhenFalse.(*ast.Identifier).Name)
}

func Test_Parse_Arrow_01(t *testing.T) {
	stmt := parseOne[*ast.VariableStatement](t, "const f = (x: number, y = 1): number => x + y;")
	fn := stmt.List.Declarations[0].Initializer.(*ast.ArrowFunction)
	//
	assert.Equal(t, 2, len(fn.Parameters))
	assert.Equal(t, "number", fn.Parameters[0].Type.Text)
	assert.Equal(t, "number", fn.Type.Text)
	assert.Equal(t, "+", fn.Body.(*ast.Binary).Operator)
}

func Test_Parse_Arrow_02(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "async x => { await x; }")
	fn := stmt.Expression.(*ast.ArrowFunction)
	//
	assert.True(t, fn.Modifiers.Has("async"))
	assert.Equal(t, 1, len(fn.Body.(*ast.Block).Statements))
}

func Test_Parse_Arrow_03(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "<T>(x: T) => x")
	fn := stmt.Expression.(*ast.ArrowFunction)
	//
	assert.Equal(t, "T", fn.Parameters[0].Type.Text)
}

func Test_Parse_TypeArguments(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "f<Array<string>>(x); a < b")
	call := stmt.Expression.(*ast.CallExpression)
	//
	assert.Equal(t, 1, len(call.TypeArguments))
	assert.Equal(t, "Array<string>", call.TypeArguments[0].Text)
}

func Test_Parse_Comparison(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a < b && c > d")
	bin := stmt.Expression.(*ast.Binary)
	//
	assert.Equal(t, "&&", bin.Operator)
	assert.Equal(t, "<", bin.Left.(*ast.Binary).Operator)
}

func Test_Parse_As(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "x as unknown as string[]")
	outer := stmt.Expression.(*ast.AsExpression)
	//
	assert.Equal(t, "string[]", outer.Type.Text)
	assert.Equal(t, "unknown", outer.Expression.(*ast.AsExpression).Type.Text)
}

func Test_Parse_OptionalChain(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "a?.b?.[0]?.(1)")
	call := stmt.Expression.(*ast.CallExpression)
	elem := call.Expression.(*ast.ElementAccess)
	//
	assert.True(t, call.QuestionDot)
	assert.True(t, elem.QuestionDot)
	assert.True(t, elem.Expression.(*ast.PropertyAccess).QuestionDot)
}

func Test_Parse_ObjectLiteral(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "({ a, b: 1, ...c, [d]: 2, get e() { return 1; }, m() {}, })")
	obj := stmt.Expression.(*ast.ParenthesizedExpression).Expression.(*ast.ObjectLiteral)
	//
	assert.Equal(t, 6, len(obj.Properties))
	assert.True(t, obj.TrailingComma)
	assert.False(t, obj.Multiline)
	assert.Equal(t, "a", obj.Properties[0].(*ast.ShorthandPropertyAssignment).Name.Name)
	assert.Equal(t, "d", obj.Properties[3].(*ast.PropertyAssignment).Name.(*ast.ComputedPropertyName).
		Expression.(*ast.Identifier).Name)
	assert.False(t, obj.Properties[4].(*ast.Accessor).Setter)
	assert.Equal(t, "m", ast.PropertyNameText(obj.Properties[5].(*ast.MethodDeclaration).Name))
}

func Test_Parse_ArrayLiteral(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "[\n1, , ...xs,\n]")
	arr := stmt.Expression.(*ast.ArrayLiteral)
	//
	assert.Equal(t, 3, len(arr.Elements))
	assert.True(t, arr.Multiline)
	assert.True(t, arr.TrailingComma)
	assert.Equal(t, "OmittedExpression", ast.KindOf(arr.Elements[1]))
}

func Test_Parse_Strings(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, `'a\'b\n\x41B\u{43}'`)
	str := stmt.Expression.(*ast.StringLiteral)
	//
	assert.Equal(t, `'a\'b\n\x41B\u{43}'`, str.Raw)
	assert.Equal(t, "a'b\nABC", str.Value)
}

func Test_Parse_Template(t *testing.T) {
	stmt := parseOne[*ast.ExpressionStatement](t, "`a${b}c`")
	//
	assert.Equal(t, "`a${b}c`", stmt.Expression.(*ast.Verbatim).Text)
}

func Test_Parse_Variables(t *testing.T) {
	stmt := parseOne[*ast.VariableStatement](t, "let { a, b: [c, , d = 1], ...e }: T = f, g!: number")
	//
	assert.Equal(t, ast.LET, stmt.List.Keyword)
	assert.Equal(t, 2, len(stmt.List.Declarations))
	//
	pattern := stmt.List.Declarations[0].Name.(*ast.ObjectBindingPattern)
	assert.Equal(t, 3, len(pattern.Elements))
	assert.True(t, pattern.Elements[2].DotDotDot)
	assert.Equal(t, 3, len(pattern.Elements[1].Name.(*ast.ArrayBindingPattern).Elements))
	assert.Equal(t, "number", stmt.List.Declarations[1].Type.Text)
}

func Test_Parse_Function(t *testing.T) {
	stmt := parseOne[*ast.FunctionDeclaration](t, "export async function* f<T>(this: Foo, x?: T, ...ys: T[]): void {}")
	//
	assert.True(t, stmt.Modifiers.Has("export"))
	assert.True(t, stmt.Modifiers.Has("async"))
	assert.True(t, stmt.Asterisk)
	assert.Equal(t, 2, len(stmt.Parameters))
	assert.True(t, stmt.Parameters[0].Optional)
	assert.True(t, stmt.Parameters[1].DotDotDot)
	assert.False(t, stmt.Body.Multiline)
}

func Test_Parse_Overload(t *testing.T) {
	file := parseOk(t, "function f(x: string): void;\nfunction f(x: any) {\n}")
	//
	assert.True(t, file.Statements[0].(*ast.FunctionDeclaration).Body == nil)
	assert.True(t, file.Statements[1].(*ast.FunctionDeclaration).Body.Multiline)
}

func Test_Parse_Class(t *testing.T) {
	input := `export abstract class A<T> extends B<T> implements C, D {
	[key: string]: any;
	private x?: number = 1;
	static readonly y!: string;
	constructor(z) { super(z); }
	get v(): number { return 0; }
	set v(value) {}
	abstract m(): void;
	async *n() {}
}`
	class := parseOne[*ast.ClassDeclaration](t, input)
	//
	assert.Equal(t, "A", class.Name.Name)
	assert.Equal(t, "B", class.Extends.(*ast.Identifier).Name)
	assert.True(t, class.Modifiers.Has("abstract"))
	assert.Equal(t, 7, len(class.Members))
	assert.True(t, class.Members[0].(*ast.PropertyDeclaration).Modifiers.Has("private"))
	assert.Equal(t, "Constructor", ast.KindOf(class.Members[2]))
	assert.True(t, class.Members[4].(*ast.Accessor).Setter)
	assert.True(t, class.Members[5].(*ast.MethodDeclaration).Body == nil)
	assert.True(t, class.Members[6].(*ast.MethodDeclaration).Asterisk)
}

func Test_Parse_Types(t *testing.T) {
	file := parseOk(t, `type A<T> = { a: T } | [string, number?];
interface B extends C<D> { x(): void; }
declare const c: number;
declare global { interface Window { foo: string } }
import type { E } from "./e";
export type { F } from "./f";`)
	//
	assert.Equal(t, 6, len(file.Statements))
	//
	for _, stmt := range file.Statements {
		assert.Equal(t, "TypeDeclaration", ast.KindOf(stmt))
	}
	//
	assert.Equal(t, "A", file.Statements[0].(*ast.TypeDeclaration).Name.Name)
	assert.Equal(t, "declare const c: number", file.Statements[2].(*ast.TypeDeclaration).Text)
}

func Test_Parse_Imports(t *testing.T) {
	file := parseOk(t, "import x, {\n  a,\n  b as c\n} from 'y'\nimport * as z from \"z\";\nexport { a };\nfoo()")
	//
	assert.Equal(t, 4, len(file.Statements))
	assert.Equal(t, "import x, {\n  a,\n  b as c\n} from 'y'", file.Statements[0].(*ast.Directive).Text)
	assert.Equal(t, "import * as z from \"z\"", file.Statements[1].(*ast.Directive).Text)
	assert.Equal(t, "export { a }", file.Statements[2].(*ast.Directive).Text)
}

func Test_Parse_ExportDefault(t *testing.T) {
	stmt := parseOne[*ast.ExportAssignment](t, "export default { a: 1 };")
	//
	assert.Equal(t, "ObjectLiteral", ast.KindOf(stmt.Expression))
}

func Test_Parse_Namespace(t *testing.T) {
	stmt := parseOne[*ast.ModuleDeclaration](t, "namespace N { export const x = 1; }")
	//
	assert.Equal(t, "N", stmt.Name.Name)
	assert.Equal(t, 1, len(stmt.Body.Statements))
}

func Test_Parse_Statements(t *testing.T) {
	file := parseOk(t, `
for (let i = 0; i < n; i++) { continue; }
for (const k in o) {}
for (x of xs) ;
while (a) b()
do { c() } while (d)
outer: for (;;) break outer
switch (e) { case 1: f(); default: }
try { g() } catch { } finally { h() }
if (i) j(); else { k() }
throw new Error("l")
`)
	//
	kinds := []string{"ForStatement", "ForInOfStatement", "ForInOfStatement", "WhileStatement", "DoStatement",
		"LabeledStatement", "SwitchStatement", "TryStatement", "IfStatement", "ThrowStatement"}
	//
	assert.Equal(t, len(kinds), len(file.Statements))
	//
	for i, stmt := range file.Statements {
		assert.Equal(t, kinds[i], ast.KindOf(stmt))
	}
	//
	assert.False(t, file.Statements[1].(*ast.ForInOfStatement).Of)
	assert.True(t, file.Statements[2].(*ast.ForInOfStatement).Of)
	assert.Equal(t, 2, len(file.Statements[6].(*ast.SwitchStatement).Clauses))
}

func Test_Parse_ForIn(t *testing.T) {
	stmt := parseOne[*ast.ForStatement](t, "for (var i = (a in b) ? 1 : 2; ;) {}")
	//
	assert.Equal(t, "VariableDeclarationList", ast.KindOf(stmt.Initializer))
}

func Test_Parse_Return(t *testing.T) {
	fn := parseOne[*ast.FunctionDeclaration](t, "function f() { return\nx }")
	//
	assert.Equal(t, 2, len(fn.Body.Statements))
	assert.True(t, fn.Body.Statements[0].(*ast.ReturnStatement).Expression == nil)
}

func Test_Parse_SourceMap(t *testing.T) {
	srcfile := source.NewSourceFile("test.ts", []byte("let x = stack!(1);"))
	file, srcmap, errs := Parse(srcfile)
	//
	assert.Equal(t, 0, len(errs))
	//
	stmt := file.Statements[0].(*ast.VariableStatement)
	call := stmt.List.Declarations[0].Initializer
	span := srcmap.Get(call)
	//
	assert.Equal(t, "stack!(1)", srcfile.Text(span))
	assert.Equal(t, "let x = stack!(1);", srcfile.Text(srcmap.Get(stmt)))
}

func Test_Parse_Invalid_01(t *testing.T) {
	checkError(t, "let x = ;", "expected expression")
}

func Test_Parse_Invalid_02(t *testing.T) {
	checkError(t, "enum E { A }", "enums are not supported")
}

func Test_Parse_Invalid_03(t *testing.T) {
	checkError(t, "let r = /ab+c/;", "regular expression literals are not supported")
}

func Test_Parse_Invalid_04(t *testing.T) {
	checkError(t, "class A { constructor(private x) {} }", "parameter properties are not supported")
}

func Test_Parse_Invalid_05(t *testing.T) {
	checkError(t, "function f() {", "unexpected end of file")
}

func Test_Parse_Invalid_06(t *testing.T) {
	checkError(t, "a b", "expected ';'")
}

func Test_Parse_Invalid_07(t *testing.T) {
	checkError(t, "namespace A.B { }", "dotted namespace names are not supported")
}

// ============================================================================
// Helpers
// ============================================================================

func parseOk(t *testing.T, input string) *ast.SourceFile {
	t.Helper()
	//
	file, _, errs := Parse(source.NewSourceFile("test.ts", []byte(input)))
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Error())
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	return file
}

func parseOne[T ast.Statement](t *testing.T, input string) T {
	t.Helper()
	//
	file := parseOk(t, input)
	//
	assert.True(t, len(file.Statements) > 0)
	stmt, ok := file.Statements[0].(T)
	assert.True(t, ok, "unexpected statement %s", ast.KindOf(file.Statements[0]))
	//
	return stmt
}

func checkError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	_, _, errs := Parse(source.NewSourceFile("test.ts", []byte(input)))
	//
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, msg, errs[0].Message())
}
