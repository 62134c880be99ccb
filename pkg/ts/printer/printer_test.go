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
	"testing"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/parser"
	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

func Test_Print_Basic(t *testing.T) {
	checkPrint(t, "const a = 42;", "const a = 42;\n")
	checkPrint(t, "let a = 'x', b\nvar c = \"y\"", "let a = 'x', b;\nvar c = \"y\";\n")
}

func Test_Print_Erasure(t *testing.T) {
	input := `type A = number;
interface B { x: number }
declare const c: number;
function f(x: number, y?: string): void;
function f(x: number, y?: string): void {
    return;
}
let z = <any>f as unknown satisfies B;
let w = z!.q!;`
	expected := `function f(x, y) {
    return;
}
let z = f;
let w = z.q;
`
	checkPrint(t, input, expected)
}

func Test_Print_Blocks(t *testing.T) {
	checkPrint(t, "function f() { a(); b(); }", "function f() { a(); b(); }\n")
	checkPrint(t, "function g() {}", "function g() { }\n")
	checkPrint(t, "function h() {\n}", "function h() {\n}\n")
	checkPrint(t, "{ if (a) b(); }", "{ if (a) b(); }\n")
}

func Test_Print_Literals(t *testing.T) {
	input := "const o = {\n  a: 1,\n  b: [\n    2,\n  ],\n  c: { d: [3, 4] }\n};"
	expected := "const o = {\n    a: 1,\n    b: [\n        2,\n    ],\n    c: { d: [3, 4] }\n};\n"
	checkPrint(t, input, expected)
	checkPrint(t, "let y = [...xs, ,];", "let y = [...xs, ,];\n")
	checkPrint(t, "let e = {};", "let e = {};\n")
}

func Test_Print_ObjectMembers(t *testing.T) {
	checkPrint(t,
		"const o = { m() { return 1; }, get g() { return 2; }, async *h() {}, [k]: 1, 'q': 2, ...r, s };",
		"const o = { m() { return 1; }, get g() { return 2; }, async *h() { }, [k]: 1, 'q': 2, ...r, s };\n")
}

func Test_Print_Control(t *testing.T) {
	input := `if (a) b();
else if (c) { d(); }
else {
  e();
}
for (let i = 0; i < 10; i++) {
  continue;
}
for (;;) break;
for (const k of ks) {
}
while (x) y();
do { z(); } while (w);
try {
  f();
} catch (err) {
  g(err);
} finally {
  h();
}
switch (k) {
  case 1:
    l();
    break;
  default:
    m();
}
outer: while (true) break outer;
throw new Error("n");`
	expected := `if (a)
    b();
else if (c) { d(); } else {
    e();
}
for (let i = 0; i < 10; i++) {
    continue;
}
for (;;)
    break;
for (const k of ks) {
}
while (x)
    y();
do { z(); } while (w);
try {
    f();
}
catch (err) {
    g(err);
}
finally {
    h();
}
switch (k) {
    case 1:
        l();
        break;
    default:
        m();
}
outer: while (true)
    break outer;
throw new Error("n");
`
	checkPrint(t, input, expected)
}

func Test_Print_Namespace(t *testing.T) {
	input := `namespace N {
  export const x = 1, { y } = o;
  function f() {}
  export function g() {}
  export interface I {}
}
namespace T { export type U = number; }`
	expected := `var N;
(function (N) {
    const x = 1, { y } = o;
    N.x = x;
    N.y = y;
    function f() { }
    function g() { }
    N.g = g;
})(N || (N = {}));
`
	checkPrint(t, input, expected)
}

func Test_Print_Class(t *testing.T) {
	input := `export class A extends B {
  private x: number = 1;
  y;
  abstract z: string;
  static s = 2;
  constructor(a: number) { super(a); }
  get v(): number { return this.x; }
  m(): void;
  m(a?: any) {}
}`
	expected := `export class A extends B {
    x = 1;
    y;
    static s = 2;
    constructor(a) { super(a); }
    get v() { return this.x; }
    m(a) { }
}
`
	checkPrint(t, input, expected)
}

func Test_Print_Expressions(t *testing.T) {
	checkPrint(t, "x = a?.b ?? -(-c) + typeof d;", "x = a?.b ?? -(-c) + typeof d;\n")
	checkPrint(t, "new Foo<T>(1); f<string>(x?.[0]);", "new Foo(1);\nf(x?.[0]);\n")
	checkPrint(t, "let t = `a${b}`;", "let t = `a${b}`;\n")
	checkPrint(t, "x = c ? (a, b) : d++;", "x = c ? (a, b) : d++;\n")
	checkPrint(t, "(function () {})();", "(function () { })();\n")
	checkPrint(t, "({ a } = b);", "({ a } = b);\n")
}

func Test_Print_Precedence(t *testing.T) {
	checkPrint(t, "a, b, c;", "a, b, c;\n")
	checkPrint(t, "x = (a + b) * c - d / (e - f);", "x = (a + b) * c - d / (e - f);\n")
	checkPrint(t, "x = a = b ** c ** d;", "x = a = b ** c ** d;\n")
	checkPrint(t, "x = (-a) ** (b ** c) + ((a ?? b) || c);", "x = (-a) ** (b ** c) + ((a ?? b) || c);\n")
	checkPrint(t, "y = (c ? a : b) + 1;", "y = (c ? a : b) + 1;\n")
}

func Test_Print_Functions(t *testing.T) {
	checkPrint(t, "const f = async ({ a, b: [c] = [] }, ...rest) => a;",
		"const f = async ({ a, b: [c] = [] }, ...rest) => a;\n")
	checkPrint(t, "const g = x => ({ x });", "const g = (x) => ({ x });\n")
	checkPrint(t, "export default function* () { yield 1; }", "export default function* () { yield 1; }\n")
}

func Test_Print_Directives(t *testing.T) {
	checkPrint(t, "import { a } from './a';\nimport type { B } from './b';\nexport * from \"./c\";\nexport default a;",
		"import { a } from './a';\nexport * from \"./c\";\nexport default a;\n")
}

func Test_Print_Synthetic_01(t *testing.T) {
	v := ast.NewIdentifier("v")
	stmt := ast.NewVariableStatement(ast.VAR, "a", ast.NewCommaList(ast.NewCall(ast.NewIdentifier("f"), v), v))
	//
	assert.Equal(t, "var a = (f(v), v);", PrintNode(stmt))
}

func Test_Print_Synthetic_02(t *testing.T) {
	r := ast.NewIdentifier("r")
	value := ast.NewAssignment(ast.NewPropertyAccess(r, "value"), ast.NewNumericLiteral(1))
	stmt := ast.NewReturn(ast.NewCommaList(value, r))
	//
	assert.Equal(t, "return r.value = 1, r;", PrintNode(stmt))
	assert.Equal(t, "f((r.value = 1, r))", PrintNode(ast.NewCall(ast.NewIdentifier("f"), ast.NewCommaList(value, r))))
}

func Test_Print_Synthetic_03(t *testing.T) {
	fn := &ast.ArrowFunction{Body: ast.NewObjectLiteral(false, ast.NewPropertyAssignment("a", ast.NewNumericLiteral(1)))}
	//
	assert.Equal(t, "() => ({ a: 1 })", PrintNode(fn))
	assert.Equal(t, "({});", PrintNode(ast.NewExpressionStatement(ast.NewObjectLiteral(false))))
}

func Test_Print_Synthetic_04(t *testing.T) {
	body := ast.NewExpressionStatement(ast.NewAssignment(ast.NewPropertyAccess(ast.NewIdentifier("it"), "a"),
		ast.NewStringLiteral("b")))
	fn := ast.NewFunctionDeclaration("reset", []*ast.Parameter{ast.NewParameter("it")}, body)
	//
	assert.Equal(t, "function reset(it) {\n  it.a = \"b\";\n}", NewPrinter().Indent(2).PrintNode(fn))
}

func Test_Print_Synthetic_05(t *testing.T) {
	a, b, c := ast.NewIdentifier("a"), ast.NewIdentifier("b"), ast.NewIdentifier("c")
	//
	assert.Equal(t, "(a + b) * c", PrintNode(ast.NewBinary(ast.NewBinary(a, "+", b), "*", c)))
	assert.Equal(t, "a - (b - c)", PrintNode(ast.NewBinary(a, "-", ast.NewBinary(b, "-", c))))
	assert.Equal(t, "a !== (b, c)", PrintNode(ast.NewBinary(a, "!==", ast.NewCommaList(b, c))))
}

func checkPrint(t *testing.T, input string, expected string) {
	t.Helper()
	//
	file, _, errs := parser.Parse(source.NewSourceFile("test.ts", []byte(input)))
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Error())
	}
	//
	if len(errs) > 0 {
		t.FailNow()
	}
	//
	assert.Equal(t, expected, Print(file))
}
