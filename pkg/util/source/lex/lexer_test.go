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
package lex

import (
	"slices"
	"testing"

	"github.com/consensys/go-jiewo/pkg/util/assert"
	"github.com/consensys/go-jiewo/pkg/util/source"
)

func TestLexer_00(t *testing.T) {
	checkLexer(t, "", 0, token(END_OF, 0, 0, 0))
}

func TestLexer_01(t *testing.T) {
	checkLexer(t, "(", 1, token(LBRACE, 0, 1, 0), token(END_OF, 1, 1, 1))
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "()", 2, token(LBRACE, 0, 1, 0), token(RBRACE, 1, 2, 1), token(END_OF, 2, 2, 2))
}

func TestLexer_03(t *testing.T) {
	checkLexer(t, "x", 0)
	checkLexer(t, "(x", 1, token(LBRACE, 0, 1, 0))
}

func TestLexer_04(t *testing.T) {
	// Whitespace is trivia
	checkLexer(t, "(  )", 4, token(LBRACE, 0, 1, 0), token(RBRACE, 3, 4, 1), token(END_OF, 4, 4, 4))
}

func TestLexer_05(t *testing.T) {
	checkLexer(t, "(90) ", 5, token(LBRACE, 0, 1, 0), token(NUMBER, 1, 3, 1), token(RBRACE, 3, 4, 3),
		token(END_OF, 5, 5, 4))
}

func TestLexer_06(t *testing.T) {
	// Adjacent trivia accumulates
	checkLexer(t, " /*x*/ 1", 8, token(NUMBER, 7, 8, 0), token(END_OF, 8, 8, 8))
}

func TestScanner_Sequence(t *testing.T) {
	rule := Sequence(Unit('a'), Unit('b'), Unit('c'))
	//
	assert.Equal(t, 0, rule([]rune{'a', 'c', 'c'}))
	assert.Equal(t, 0, rule([]rune{'a', 'b'}))
	assert.Equal(t, 3, rule([]rune{'a', 'b', 'c', 'd'}))
}

func TestScanner_SequenceNullableLast(t *testing.T) {
	rule := SequenceNullableLast(Unit('a'), Many(Unit('b')))
	//
	assert.Equal(t, 1, rule([]rune{'a'}))
	assert.Equal(t, 3, rule([]rune{'a', 'b', 'b', 'c'}))
	assert.Equal(t, 0, rule([]rune{'b'}))
}

func TestScanner_UntilAfter(t *testing.T) {
	rule := UntilAfter('*', '/')
	//
	assert.Equal(t, 4, rule([]rune("ab*/cd")))
	assert.Equal(t, 0, rule([]rune("ab*")))
}

func TestScanner_NotOneOf(t *testing.T) {
	assert.Equal(t, 1, Not('"')([]rune("a")))
	assert.Equal(t, 0, Not('"')([]rune("\"")))
	assert.Equal(t, 1, OneOf('x', 'y')([]rune("y")))
	assert.Equal(t, 0, OneOf('x', 'y')([]rune("z")))
}

func TestScanner_Accept(t *testing.T) {
	lower := Accept(func(r rune) bool { return r >= 'a' && r <= 'z' })
	//
	assert.Equal(t, 1, lower([]rune("ab")))
	assert.Equal(t, 0, lower([]rune("A")))
	assert.Equal(t, 0, lower(nil))
	assert.Equal(t, 2, Many(lower)([]rune("ab1")))
}

func TestScanner_SequenceNullableLast_Digits(t *testing.T) {
	rule := SequenceNullableLast(Unit('0'), Many(Within('0', '9')))
	//
	assert.Equal(t, 1, rule([]rune("0")))
	assert.Equal(t, 3, rule([]rune("012x")))
	assert.Equal(t, 0, Sequence(Unit('0'), Many(Within('0', '9')))([]rune("0")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const LBRACE uint = 2
const RBRACE uint = 3
const NUMBER uint = 4
const COMMENT uint = 5

// Rule for describing whitespace
var whitespace Scanner[rune] = Many(Or(Unit(' '), Unit('\t')))

// Rule for describing numbers
var number Scanner[rune] = Many(Within('0', '9'))

// Rule for describing block comments
var comment Scanner[rune] = Sequence(String("/*"), UntilAfter('*', '/'))

// lexing rules
var lexer = NewLexer(
	NewRule(comment, COMMENT),
	NewRule(Unit('('), LBRACE),
	NewRule(Unit(')'), RBRACE),
	NewRule(whitespace, WSPACE),
	NewRule(number, NUMBER),
	NewRule(Eof[rune](), END_OF),
).Skip(WSPACE, COMMENT)

// Construct a token spanning [start,end) whose trivia begins at a given index.
func token(kind uint, start int, end int, trivia int) Token {
	return Token{kind, source.NewSpan(start, end), source.NewSpan(trivia, start)}
}

func checkLexer(t *testing.T, input string, index uint, expected ...Token) {
	t.Helper()
	//
	tokens, n := lexer.Lex([]rune(input))
	//
	if !slices.Equal(tokens, expected) {
		t.Errorf("got %v, expected %v", tokens, expected)
	}
	//
	assert.Equal(t, index, n, "lexing stopped at wrong index")
}
