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
	"errors"
	"testing"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/ts/parser"
	"github.com/consensys/go-jiewo/pkg/ts/printer"
	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

// ============================================================================
// Expansion
// ============================================================================

func Test_Expand_Identity(t *testing.T) {
	checkExpand(t, "const a = id!(1);", "const a = 1;\n")
	checkExpand(t, "const a = id!(id!((b)));", "const a = (b);\n")
	checkExpand(t, "f(id!(1), id!(2));", "f(1, 2);\n")
}

func Test_Expand_Unregistered(t *testing.T) {
	checkExpand(t, "const a = other!(id!(1));", "const a = other(1);\n")
}

func Test_Expand_BottomUp(t *testing.T) {
	// Arguments are fully expanded before a macro sees them
	checkExpand(t, "const a = check!(id!(1), [id!(2)]);", "const a = 1;\n")
}

func Test_Expand_Delete(t *testing.T) {
	checkExpand(t, "a();\nnone!();\nb();", "a();\nb();\n")
	checkExpand(t, "a();\nnothing!();\nb();", "a();\nb();\n")
}

func Test_Expand_Sequence(t *testing.T) {
	checkExpand(t, "pair!(x, y);", "x, y;\n")
	checkExpand(t, "f(pair!(x, id!(y)));", "f(x, y);\n")
}

func Test_Expand_Recursive(t *testing.T) {
	// The wrapped call is only expanded in the next round.
	output, transformer := expand(t, "const a = wrap!(1);")
	//
	assert.Equal(t, "const a = 1;\n", output)
	assert.Equal(t, uint(3), transformer.Round())
}

func Test_Expand_Eager(t *testing.T) {
	output, transformer := expand(t, "const a = eager!(1);")
	//
	assert.Equal(t, "const a = 1;\n", output)
	assert.Equal(t, uint(2), transformer.Round())
}

func Test_Expand_Idempotent(t *testing.T) {
	var (
		program = NewProgram(testRegistry(t), Options{})
		file    = parseFile(t, "function f() { g(); file!(); }\nconst a = id!(1);")
	)
	//
	expanded, err := NewTransformer(program, file).Run()
	assert.NoError(t, err)
	//
	transformer := NewTransformer(program, expanded)
	again, err := transformer.Run()
	//
	assert.NoError(t, err)
	assert.True(t, again == expanded)
	assert.Equal(t, uint(1), transformer.Round())
}

func Test_Expand_Unchanged(t *testing.T) {
	var (
		program = NewProgram(testRegistry(t), Options{})
		file    = parseFile(t, "const a = b!(c);")
	)
	//
	result, err := NewTransformerFactory(program)(file)
	//
	assert.NoError(t, err)
	assert.True(t, result == file)
}

// ============================================================================
// Hoisting
// ============================================================================

func Test_Hoist_Order(t *testing.T) {
	checkExpand(t, "x!();\ny!();", "var x;\nvar y;\n")
	checkExpand(t, "a();\nx!();\nb();\ny!();\nc();", "a();\nvar x;\nb();\nvar y;\nc();\n")
	checkExpand(t, "f(x!(), y!());", "var x;\nvar y;\nf();\n")
}

func Test_Hoist_Group(t *testing.T) {
	// Statements of one origin remain together, in registration order.
	checkExpand(t, "a();\nf(many!(), x!());", "a();\nvar m1;\nvar m2;\nvar x;\nf();\n")
}

func Test_Hoist_FileScope(t *testing.T) {
	checkExpand(t, "g();\nfunction f() { file!(); }", "g();\nvar file;\nfunction f() { }\n")
	checkExpand(t, "g();\nfunction f() {\n  h(() => file!());\n}",
		"g();\nvar file;\nfunction f() {\n    h(() => undefined);\n}\n")
}

func Test_Hoist_FunctionScope(t *testing.T) {
	checkExpand(t, "function f() { g(); fn!(); h(); }", "function f() { g(); var fn; h(); }\n")
	checkExpand(t, "function f() { g(); if (a) { fn!(); } }", "function f() { g(); var fn; if (a) { } }\n")
	checkExpand(t, "class C { m() { return fn!(); } }", "class C {\n    m() { var fn; return undefined; }\n}\n")
}

func Test_Hoist_BlockScope(t *testing.T) {
	checkExpand(t, "function f() { g(); { a(); blk!(); } }", "function f() { g(); { a(); var blk; } }\n")
}

func Test_Hoist_ModuleScope(t *testing.T) {
	checkExpand(t, "namespace N {\n  a();\n  mod!();\n}",
		"var N;\n(function (N) {\n    a();\n    var mod;\n})(N || (N = {}));\n")
}

func Test_Hoist_ArrowBody(t *testing.T) {
	checkExpand(t, "const f = () => fn!();", "const f = () => {\n    var fn;\n    return undefined;\n};\n")
}

func Test_Hoist_Fallback(t *testing.T) {
	// No anchor can be determined for this origin, hence front of file
	checkExpand(t, "a();\nfront!();", "var front;\na();\n")
}

func Test_Hoist_Nested(t *testing.T) {
	// Hoisted statements containing macro calls are expanded in the following
	// round.
	checkExpand(t, "function f() { g(); nest!(); }", "var file;\nfunction f() { g(); var nested = 1; }\n")
}

func Test_Hoist_Result(t *testing.T) {
	checkExpand(t, "function foo() { a = res!(); b = res!(); }\nfunction bar() { c = res!(); }",
		"const foo__result_1 = { value: undefined, error: undefined };\nfunction foo() { a = foo__result_1; b = foo__result_1; }\n"+
			"const bar__result_1 = { value: undefined, error: undefined };\nfunction bar() { c = bar__result_1; }\n")
	checkExpand(t, "const x = () => res!();\nconst result_1 = 0;",
		"const result_2 = { value: undefined, error: undefined };\nconst x = () => result_2;\nconst result_1 = 0;\n")
}

// ============================================================================
// Errors
// ============================================================================

func Test_Error_Macro(t *testing.T) {
	var (
		program = NewProgram(testRegistry(t), Options{})
		input   = "a();\nconst x = res!();"
	)
	//
	srcfile := source.NewSourceFile("test.ts", []byte(input))
	file, srcmap, errs := parser.Parse(srcfile)
	assert.Equal(t, 0, len(errs))
	//
	_, err := NewTransformerFactory(program)(file)
	//
	var merr *MacroError
	//
	assert.True(t, errors.As(err, &merr))
	assert.Equal(t, "res", merr.Macro)
	assert.ErrorContains(t, err, "res!: not inside a function")
	//
	serr, ok := merr.SyntaxError(srcmap)
	assert.True(t, ok)
	assert.Equal(t, "res!()", srcfile.Text(serr.Span()))
}

func Test_Error_Nested(t *testing.T) {
	_, err := NewTransformerFactory(NewProgram(testRegistry(t), Options{}))(parseFile(t, "eager!(fail!());"))
	//
	assert.ErrorContains(t, err, "fail!: failed")
}

func Test_Error_Rounds(t *testing.T) {
	var (
		program = NewProgram(testRegistry(t), Options{MaxRounds: 5})
		file    = parseFile(t, "loop!();")
	)
	//
	transformer := NewTransformer(program, file)
	_, err := transformer.Run()
	//
	assert.True(t, errors.Is(err, ErrTooManyRounds))
	assert.Equal(t, uint(5), transformer.Round())
}

func Test_Error_EmptySlot(t *testing.T) {
	_, err := NewTransformerFactory(NewProgram(testRegistry(t), Options{}))(parseFile(t, "a = none!();"))
	//
	assert.True(t, errors.Is(err, ast.ErrEmptySlot))
}

// ============================================================================
// Helpers
// ============================================================================

func checkExpand(t *testing.T, input string, expected string) {
	t.Helper()
	//
	output, _ := expand(t, input)
	//
	assert.Equal(t, expected, output)
}

func expand(t *testing.T, input string) (string, *Transformer) {
	t.Helper()
	//
	transformer := NewTransformer(NewProgram(testRegistry(t), Options{MaxRounds: 10}), parseFile(t, input))
	file, err := transformer.Run()
	//
	assert.NoError(t, err)
	//
	return printer.Print(file), transformer
}

func parseFile(t *testing.T, input string) *ast.SourceFile {
	t.Helper()
	//
	file, _, errs := parser.Parse(source.NewSourceFile("test.ts", []byte(input)))
	//
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err.Message())
	}
	//
	return file
}

// Construct a registry of macros exercising the various parts of the engine.
func testRegistry(t *testing.T) *Registry {
	registry := NewRegistry()
	macros := map[string]Macro{
		"id":      identity,
		"check":   checkExpanded,
		"none":    func(*ast.CallExpression, Context) (Expansion, error) { return Delete(), nil },
		"nothing": func(*ast.CallExpression, Context) (Expansion, error) { return Sequence(), nil },
		"pair":    pair,
		"wrap":    wrap,
		"eager":   eager,
		"x":       hoistTo("x", fileScope),
		"y":       hoistTo("y", fileScope),
		"file":    hoistTo("file", fileScope),
		"fn":      hoistTo("fn", functionScope),
		"blk":     hoistTo("blk", blockScope),
		"mod":     hoistTo("mod", moduleScope),
		"many":    many,
		"front":   front,
		"nest":    nest,
		"res":     result,
		"fail":    func(*ast.CallExpression, Context) (Expansion, error) { return Delete(), errors.New("failed") },
		"loop":    loop,
	}
	// Register in a fixed order
	for _, name := range []string{"id", "check", "none", "nothing", "pair", "wrap", "eager", "x", "y", "file",
		"fn", "blk", "mod", "many", "front", "nest", "res", "fail", "loop"} {
		assert.NoError(t, registry.Register(name, macros[name]))
	}
	//
	return registry
}

// Fails unless no macro calls remain within the arguments.
func checkExpanded(call *ast.CallExpression, _ Context) (Expansion, error) {
	var found bool
	//
	for _, arg := range call.Arguments {
		ast.Inspect(arg, func(n ast.Node) bool {
			found = found || IsMacroCall(n, "")
			return true
		})
	}
	//
	if found {
		return Delete(), errors.New("unexpanded argument")
	}
	//
	return Replace(call.Arguments[0]), nil
}

func pair(call *ast.CallExpression, _ Context) (Expansion, error) {
	return Sequence(call.Arguments[0], call.Arguments[1]), nil
}

// Replaces "wrap!(x)" with "id!(id!(x))", whose expansion is deferred.
func wrap(call *ast.CallExpression, _ Context) (Expansion, error) {
	return Replace(macroCall("id", macroCall("id", call.Arguments[0]))), nil
}

// Replaces "eager!(x)" with the immediate expansion of "id!(x)".
func eager(call *ast.CallExpression, ctx Context) (Expansion, error) {
	nodes, err := ctx.Visit(macroCall("id", call.Arguments[0]))
	//
	if err != nil {
		return Delete(), err
	}
	//
	return Replace(nodes[0]), nil
}

func fileScope(_ ast.Node, ctx Context) ast.Node {
	return ctx.File()
}

func functionScope(call ast.Node, ctx Context) ast.Node {
	fn, _ := ClosestFunction(ctx, call)
	return fn
}

func blockScope(call ast.Node, ctx Context) ast.Node {
	block, _ := FindAncestor(ctx, call, func(n ast.Node) bool { _, ok := n.(*ast.Block); return ok })
	return block
}

func moduleScope(call ast.Node, ctx Context) ast.Node {
	block, _ := FindAncestor(ctx, call, func(n ast.Node) bool { _, ok := n.(*ast.ModuleBlock); return ok })
	return block
}

// Hoists "var name;" to some destination, and is replaced by undefined.
func hoistTo(name string, scope func(ast.Node, Context) ast.Node) Macro {
	return func(call *ast.CallExpression, ctx Context) (Expansion, error) {
		ctx.Hoist(call, scope(call, ctx), ast.NewVariableStatement(ast.VAR, name, nil))
		//
		if _, ok := ctx.Ancestors(call)[0].(*ast.ExpressionStatement); ok {
			return Sequence(), nil
		} else if _, ok := ctx.Ancestors(call)[0].(*ast.CallExpression); ok {
			return Sequence(), nil
		}
		//
		return Replace(ast.NewUndefined()), nil
	}
}

func many(call *ast.CallExpression, ctx Context) (Expansion, error) {
	ctx.Hoist(call, ctx.File(), ast.NewVariableStatement(ast.VAR, "m1", nil))
	ctx.Hoist(call, ctx.File(), ast.NewVariableStatement(ast.VAR, "m2", nil))
	//
	return Sequence(), nil
}

func front(call *ast.CallExpression, ctx Context) (Expansion, error) {
	ctx.Hoist(ast.NewIdentifier("detached"), ctx.File(), ast.NewVariableStatement(ast.VAR, "front", nil))
	//
	return Sequence(), nil
}

// Hoists "var nested = id!(1);" and "file!();" into the enclosing function.
func nest(call *ast.CallExpression, ctx Context) (Expansion, error) {
	fn, _ := ClosestFunction(ctx, call)
	ctx.Hoist(call, fn, ast.NewVariableStatement(ast.VAR, "nested", macroCall("id", ast.NewNumericLiteral(1))))
	ctx.Hoist(call, fn, ast.NewExpressionStatement(macroCall("file")))
	//
	return Sequence(), nil
}

func result(call *ast.CallExpression, ctx Context) (Expansion, error) {
	id, ok := ctx.ResultIdentifier(call)
	//
	if !ok {
		return Delete(), errors.New("not inside a function")
	}
	//
	return Replace(id), nil
}

// Always expands into a fresh copy of itself.
func loop(call *ast.CallExpression, _ Context) (Expansion, error) {
	return Replace(macroCall("loop")), nil
}

func macroCall(name string, args ...ast.Expression) *ast.CallExpression {
	return ast.NewCall(&ast.NonNullExpression{Expression: ast.NewIdentifier(name)}, args...)
}
