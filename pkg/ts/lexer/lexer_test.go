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
package lexer

import (
	"testing"

	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

func Test_Lexer_Keywords(t *testing.T) {
	checkKinds(t, "const constant", KEYWORD_CONST, IDENTIFIER, END_OF)
	checkKinds(t, "x.default", IDENTIFIER, DOT, KEYWORD_DEFAULT, END_OF)
}

func Test_Lexer_MacroCall(t *testing.T) {
	checkKinds(t, "stack!(42)", IDENTIFIER, NOT, LBRACE, NUMBER, RBRACE, END_OF)
	checkKinds(t, "r.return!()", IDENTIFIER, DOT, KEYWORD_RETURN, NOT, LBRACE, RBRACE, END_OF)
	checkKinds(t, "$$!(x)", IDENTIFIER, NOT, LBRACE, IDENTIFIER, RBRACE, END_OF)
}

func Test_Lexer_OptionalChain(t *testing.T) {
	checkKinds(t, "a?.b", IDENTIFIER, QUESTION_DOT, IDENTIFIER, END_OF)
	checkKinds(t, "a?.5:b", IDENTIFIER, QUESTION, NUMBER, COLON, IDENTIFIER, END_OF)
	checkKinds(t, "a??b", IDENTIFIER, NULLISH, IDENTIFIER, END_OF)
}

func Test_Lexer_Operators(t *testing.T) {
	checkKinds(t, "a>>=b", IDENTIFIER, GREATER_THAN, GREATER_THAN, EQUALS, IDENTIFIER, END_OF)
	checkKinds(t, "a!==b", IDENTIFIER, NOT_EQUALS_EQUALS, IDENTIFIER, END_OF)
	checkKinds(t, "a**=b", IDENTIFIER, COMPOUND_ASSIGN, IDENTIFIER, END_OF)
	checkKinds(t, "(x)=>x", LBRACE, IDENTIFIER, RBRACE, RIGHTARROW, IDENTIFIER, END_OF)
	checkKinds(t, "...xs", ELLIPSIS, IDENTIFIER, END_OF)
}

func Test_Lexer_Numbers(t *testing.T) {
	checkKinds(t, "0xff 0b101 0o17 1_000 1.5 .5 1e10 2.5e-3 10n", NUMBER, NUMBER, NUMBER, NUMBER,
		NUMBER, NUMBER, NUMBER, NUMBER, NUMBER, END_OF)
	checkKinds(t, "1.toString", NUMBER, IDENTIFIER, END_OF)
}

func Test_Lexer_Strings(t *testing.T) {
	checkKinds(t, `'it\'s' "a\"b" "" ''`, STRING, STRING, STRING, STRING, END_OF)
	checkKinds(t, "`a ${b}\nc`", TEMPLATE, END_OF)
}

func Test_Lexer_Comments(t *testing.T) {
	checkKinds(t, "a // b\nc", IDENTIFIER, IDENTIFIER, END_OF)
	checkKinds(t, "a /* b */ c /**/", IDENTIFIER, IDENTIFIER, END_OF)
}

func Test_Lexer_Newlines(t *testing.T) {
	tokens := lexOk(t, "a b\nc /*\n*/ d // e\nf")
	//
	assert.Equal(t, 6, len(tokens))
	assert.False(t, tokens[0].NewlineBefore)
	assert.False(t, tokens[1].NewlineBefore)
	assert.True(t, tokens[2].NewlineBefore)
	assert.True(t, tokens[3].NewlineBefore)
	assert.True(t, tokens[4].NewlineBefore)
	assert.False(t, tokens[5].NewlineBefore)
}

func Test_Lexer_Invalid_01(t *testing.T) {
	checkError(t, "a # b", 2)
}

func Test_Lexer_Invalid_02(t *testing.T) {
	checkError(t, "'unterminated", 0)
}

func Test_Lexer_Invalid_03(t *testing.T) {
	checkError(t, "\"a\nb\"", 0)
}

// ============================================================================
// Helpers
// ============================================================================

func checkKinds(t *testing.T, input string, expected ...uint) {
	t.Helper()
	//
	tokens := lexOk(t, input)
	kinds := make([]uint, len(tokens))
	//
	for i, token := range tokens {
		kinds[i] = token.Kind
	}
	//
	assert.Equal(t, expected, kinds)
}

func lexOk(t *testing.T, input string) []Token {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test.ts", []byte(input))
	tokens, errs := Lex(srcfile)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return tokens
}

func checkError(t *testing.T, input string, position int) {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test.ts", []byte(input))
	_, errs := Lex(srcfile)
	//
	assert.Equal(t, 1, len(errs))
	span := errs[0].Span()
	assert.Equal(t, position, span.Start())
}
