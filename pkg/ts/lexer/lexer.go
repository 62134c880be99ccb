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
// Package lexer turns TypeScript source text into tokens.
package lexer

import (
	"slices"
	"unicode"

	"github.com/consensys/go-jiewo/pkg/util/source"
	"github.com/consensys/go-jiewo/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (including newlines)
const WHITESPACE uint = 1

// COMMENT signals "// ... \n" or "/* ... */"
const COMMENT uint = 2

// IDENTIFIER signals a name which is not a reserved word
const IDENTIFIER uint = 3

// NUMBER signals a numeric literal
const NUMBER uint = 4

// STRING signals a single- or double-quoted string
const STRING uint = 5

// TEMPLATE signals a template literal "`...`"
const TEMPLATE uint = 6

// LBRACE signals "("
const LBRACE uint = 10

// RBRACE signals ")"
const RBRACE uint = 11

// LCURLY signals "{"
const LCURLY uint = 12

// RCURLY signals "}"
const RCURLY uint = 13

// LSQUARE signals "["
const LSQUARE uint = 14

// RSQUARE signals "]"
const RSQUARE uint = 15

// COMMA signals ","
const COMMA uint = 16

// COLON signals ":"
const COLON uint = 17

// SEMICOLON signals ";"
const SEMICOLON uint = 18

// DOT signals "."
const DOT uint = 19

// ELLIPSIS signals "..."
const ELLIPSIS uint = 20

// QUESTION signals "?"
const QUESTION uint = 21

// QUESTION_DOT signals "?."
const QUESTION_DOT uint = 22

// RIGHTARROW signals "=>"
const RIGHTARROW uint = 23

// AT signals "@"
const AT uint = 24

// EQUALS signals "="
const EQUALS uint = 30

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 31

// EQUALS_EQUALS_EQUALS signals "==="
const EQUALS_EQUALS_EQUALS uint = 32

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 33

// NOT_EQUALS_EQUALS signals "!=="
const NOT_EQUALS_EQUALS uint = 34

// LESS_THAN signals "<"
const LESS_THAN uint = 35

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 36

// GREATER_THAN signals ">".  Observe that ">=", ">>" and friends are never
// produced by the lexer, since they are ambiguous with nested type arguments
// (e.g. "Array<Array<number>>").  Instead, the parser recombines adjacent ">"
// tokens as necessary.
const GREATER_THAN uint = 37

// SHIFT_LEFT signals "<<"
const SHIFT_LEFT uint = 38

// ADD signals "+"
const ADD uint = 40

// SUB signals "-"
const SUB uint = 41

// MUL signals "*"
const MUL uint = 42

// DIV signals "/"
const DIV uint = 43

// REM signals "%"
const REM uint = 44

// EXP signals "**"
const EXP uint = 45

// INCREMENT signals "++"
const INCREMENT uint = 46

// DECREMENT signals "--"
const DECREMENT uint = 47

// NOT signals "!"
const NOT uint = 48

// TILDE signals "~"
const TILDE uint = 49

// AND signals "&&"
const AND uint = 50

// OR signals "||"
const OR uint = 51

// NULLISH signals "??"
const NULLISH uint = 52

// BITWISE_AND signals "&"
const BITWISE_AND uint = 53

// BITWISE_OR signals "|"
const BITWISE_OR uint = 54

// BITWISE_XOR signals "^"
const BITWISE_XOR uint = 55

// COMPOUND_ASSIGN signals one of "+=", "-=", "*=", "/=", "%=", "**=", "<<=",
// "&=", "|=", "^=", "&&=", "||=" or "??="
const COMPOUND_ASSIGN uint = 56

// KEYWORD_BREAK signals "break"
const KEYWORD_BREAK uint = 100

// KEYWORD_CASE signals "case"
const KEYWORD_CASE uint = 101

// KEYWORD_CATCH signals "catch"
const KEYWORD_CATCH uint = 102

// KEYWORD_CLASS signals "class"
const KEYWORD_CLASS uint = 103

// KEYWORD_CONST signals "const"
const KEYWORD_CONST uint = 104

// KEYWORD_CONTINUE signals "continue"
const KEYWORD_CONTINUE uint = 105

// KEYWORD_DEBUGGER signals "debugger"
const KEYWORD_DEBUGGER uint = 106

// KEYWORD_DEFAULT signals "default"
const KEYWORD_DEFAULT uint = 107

// KEYWORD_DELETE signals "delete"
const KEYWORD_DELETE uint = 108

// KEYWORD_DO signals "do"
const KEYWORD_DO uint = 109

// KEYWORD_ELSE signals "else"
const KEYWORD_ELSE uint = 110

// KEYWORD_ENUM signals "enum"
const KEYWORD_ENUM uint = 111

// KEYWORD_EXPORT signals "export"
const KEYWORD_EXPORT uint = 112

// KEYWORD_EXTENDS signals "extends"
const KEYWORD_EXTENDS uint = 113

// KEYWORD_FALSE signals "false"
const KEYWORD_FALSE uint = 114

// KEYWORD_FINALLY signals "finally"
const KEYWORD_FINALLY uint = 115

// KEYWORD_FOR signals "for"
const KEYWORD_FOR uint = 116

// KEYWORD_FUNCTION signals "function"
const KEYWORD_FUNCTION uint = 117

// KEYWORD_IF signals "if"
const KEYWORD_IF uint = 118

// KEYWORD_IMPORT signals "import"
const KEYWORD_IMPORT uint = 119

// KEYWORD_IN signals "in"
const KEYWORD_IN uint = 120

// KEYWORD_INSTANCEOF signals "instanceof"
const KEYWORD_INSTANCEOF uint = 121

// KEYWORD_NEW signals "new"
const KEYWORD_NEW uint = 122

// KEYWORD_NULL signals "null"
const KEYWORD_NULL uint = 123

// KEYWORD_RETURN signals "return"
const KEYWORD_RETURN uint = 124

// KEYWORD_SUPER signals "super"
const KEYWORD_SUPER uint = 125

// KEYWORD_SWITCH signals "switch"
const KEYWORD_SWITCH uint = 126

// KEYWORD_THIS signals "this"
const KEYWORD_THIS uint = 127

// KEYWORD_THROW signals "throw"
const KEYWORD_THROW uint = 128

// KEYWORD_TRUE signals "true"
const KEYWORD_TRUE uint = 129

// KEYWORD_TRY signals "try"
const KEYWORD_TRY uint = 130

// KEYWORD_TYPEOF signals "typeof"
const KEYWORD_TYPEOF uint = 131

// KEYWORD_VAR signals "var"
const KEYWORD_VAR uint = 132

// KEYWORD_VOID signals "void"
const KEYWORD_VOID uint = 133

// KEYWORD_WHILE signals "while"
const KEYWORD_WHILE uint = 134

// KEYWORD_WITH signals "with"
const KEYWORD_WITH uint = 135

// Reserved words, which cannot be used as identifiers.
var keywords = map[string]uint{
	"break":      KEYWORD_BREAK,
	"case":       KEYWORD_CASE,
	"catch":      KEYWORD_CATCH,
	"class":      KEYWORD_CLASS,
	"const":      KEYWORD_CONST,
	"continue":   KEYWORD_CONTINUE,
	"debugger":   KEYWORD_DEBUGGER,
	"default":    KEYWORD_DEFAULT,
	"delete":     KEYWORD_DELETE,
	"do":         KEYWORD_DO,
	"else":       KEYWORD_ELSE,
	"enum":       KEYWORD_ENUM,
	"export":     KEYWORD_EXPORT,
	"extends":    KEYWORD_EXTENDS,
	"false":      KEYWORD_FALSE,
	"finally":    KEYWORD_FINALLY,
	"for":        KEYWORD_FOR,
	"function":   KEYWORD_FUNCTION,
	"if":         KEYWORD_IF,
	"import":     KEYWORD_IMPORT,
	"in":         KEYWORD_IN,
	"instanceof": KEYWORD_INSTANCEOF,
	"new":        KEYWORD_NEW,
	"null":       KEYWORD_NULL,
	"return":     KEYWORD_RETURN,
	"super":      KEYWORD_SUPER,
	"switch":     KEYWORD_SWITCH,
	"this":       KEYWORD_THIS,
	"throw":      KEYWORD_THROW,
	"true":       KEYWORD_TRUE,
	"try":        KEYWORD_TRY,
	"typeof":     KEYWORD_TYPEOF,
	"var":        KEYWORD_VAR,
	"void":       KEYWORD_VOID,
	"while":      KEYWORD_WHILE,
	"with":       KEYWORD_WITH,
}

// IsKeyword checks whether a given token kind is a reserved word.  Reserved
// words are still permitted as property names (e.g. "x.default").
func IsKeyword(kind uint) bool {
	return kind >= KEYWORD_BREAK && kind <= KEYWORD_WITH
}

// IsIdentifierName checks whether a given token kind can be used as a
// property name, i.e. whether it is an identifier or a reserved word.
func IsIdentifierName(kind uint) bool {
	return kind == IDENTIFIER || IsKeyword(kind)
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.OneOf(' ', '\t', '\n', '\r', '\f', '\v', '\u00a0', '\ufeff'))

// Rule for describing numbers.  A number is either a hexadecimal, octal,
// binary or decimal one, allowing '_' separators and a trailing 'n' (bigint).
var (
	binaryStart = lex.Sequence(lex.Or(lex.String("0b"), lex.String("0B")), lex.Within('0', '1'))
	binaryRest  = lex.Or(lex.Within('0', '1'), lex.Unit('_'))

	octalStart = lex.Sequence(lex.Or(lex.String("0o"), lex.String("0O")), lex.Within('0', '7'))
	octalRest  = lex.Or(lex.Within('0', '7'), lex.Unit('_'))

	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.Or(lex.String("0x"), lex.String("0X")), hexDigit)
	hexRest  = lex.Or(hexDigit, lex.Unit('_'))

	number = lex.Or(
		bigint(lex.SequenceNullableLast(binaryStart, lex.Many(binaryRest))),
		bigint(lex.SequenceNullableLast(octalStart, lex.Many(octalRest))),
		bigint(lex.SequenceNullableLast(hexStart, lex.Many(hexRest))),
		bigint(decimal),
	)
)

// Rule for describing identifiers
var identifier lex.Scanner[rune] = func(items []rune) uint {
	if len(items) == 0 || !isIdentifierStart(items[0]) {
		return 0
	}
	//
	n := uint(1)
	//
	for n < uint(len(items)) && isIdentifierPart(items[n]) {
		n++
	}
	//
	return n
}

// Line comments continue until a newline or EOF, whilst block comments
// continue until "*/".
var comment lex.Scanner[rune] = lex.Or(
	lex.And(lex.String("//"), lex.Until('\n')),
	lex.Sequence(lex.String("/*"), lex.UntilAfter('*', '/')),
)

// lexing rules, where longer punctuators must come first.
var lexer = lex.NewLexer(
	lex.NewRule(comment, COMMENT),
	lex.NewRule(whitespace, WHITESPACE),
	lex.NewRule(number, NUMBER),
	lex.NewRule(lex.Or(quoted('"'), quoted('\'')), STRING),
	lex.NewRule(quoted('`'), TEMPLATE),
	lex.NewRule(identifier, IDENTIFIER),
	lex.NewRule(lex.String("..."), ELLIPSIS),
	lex.NewRule(lex.String("==="), EQUALS_EQUALS_EQUALS),
	lex.NewRule(lex.String("!=="), NOT_EQUALS_EQUALS),
	lex.NewRule(lex.Or(lex.String("**="), lex.String("<<="), lex.String("&&="), lex.String("||="),
		lex.String("??=")), COMPOUND_ASSIGN),
	lex.NewRule(lex.Or(lex.String("+="), lex.String("-="), lex.String("*="), lex.String("/="),
		lex.String("%="), lex.String("&="), lex.String("|="), lex.String("^=")), COMPOUND_ASSIGN),
	lex.NewRule(lex.String("=="), EQUALS_EQUALS),
	lex.NewRule(lex.String("!="), NOT_EQUALS),
	lex.NewRule(lex.String("=>"), RIGHTARROW),
	lex.NewRule(lex.String("<="), LESS_THAN_EQUALS),
	lex.NewRule(lex.String("<<"), SHIFT_LEFT),
	lex.NewRule(lex.String("**"), EXP),
	lex.NewRule(lex.String("++"), INCREMENT),
	lex.NewRule(lex.String("--"), DECREMENT),
	lex.NewRule(lex.String("&&"), AND),
	lex.NewRule(lex.String("||"), OR),
	lex.NewRule(lex.String("??"), NULLISH),
	lex.NewRule(lex.Scanner[rune](optionalChain), QUESTION_DOT),
	lex.NewRule(lex.Unit('('), LBRACE),
	lex.NewRule(lex.Unit(')'), RBRACE),
	lex.NewRule(lex.Unit('{'), LCURLY),
	lex.NewRule(lex.Unit('}'), RCURLY),
	lex.NewRule(lex.Unit('['), LSQUARE),
	lex.NewRule(lex.Unit(']'), RSQUARE),
	lex.NewRule(lex.Unit(','), COMMA),
	lex.NewRule(lex.Unit(':'), COLON),
	lex.NewRule(lex.Unit(';'), SEMICOLON),
	lex.NewRule(lex.Unit('.'), DOT),
	lex.NewRule(lex.Unit('?'), QUESTION),
	lex.NewRule(lex.Unit('@'), AT),
	lex.NewRule(lex.Unit('='), EQUALS),
	lex.NewRule(lex.Unit('<'), LESS_THAN),
	lex.NewRule(lex.Unit('>'), GREATER_THAN),
	lex.NewRule(lex.Unit('+'), ADD),
	lex.NewRule(lex.Unit('-'), SUB),
	lex.NewRule(lex.Unit('*'), MUL),
	lex.NewRule(lex.Unit('/'), DIV),
	lex.NewRule(lex.Unit('%'), REM),
	lex.NewRule(lex.Unit('!'), NOT),
	lex.NewRule(lex.Unit('~'), TILDE),
	lex.NewRule(lex.Unit('&'), BITWISE_AND),
	lex.NewRule(lex.Unit('|'), BITWISE_OR),
	lex.NewRule(lex.Unit('^'), BITWISE_XOR),
	lex.NewRule(lex.Eof[rune](), END_OF),
).Skip(WHITESPACE, COMMENT)

// Token is a lexed token, along with whether or not a line break preceded it.
type Token struct {
	lex.Token
	// NewlineBefore indicates a line break between this token and the previous
	// one (including any within comments).
	NewlineBefore bool
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are removed, and the
// final token is always END_OF.
func Lex(srcfile *source.File) ([]Token, []source.SyntaxError) {
	var (
		contents      = srcfile.Contents()
		tokens, index = lexer.Lex(contents)
		result        = make([]Token, len(tokens))
	)
	// Check whether anything was left (if so this is an error)
	if int(index) < len(contents) {
		// Highlight just the offending character
		err := srcfile.SyntaxError(source.NewSpan(int(index), int(index)+1), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	//
	for i, t := range tokens {
		trivia := contents[t.Trivia.Start():t.Trivia.End()]
		//
		if t.Kind == IDENTIFIER {
			if kind, ok := keywords[string(contents[t.Span.Start():t.Span.End()])]; ok {
				t.Kind = kind
			}
		}
		//
		result[i] = Token{t, slices.Contains(trivia, '\n')}
	}
	// Done
	return result, nil
}

// Decimal numbers, such as "1", "1.5", ".5", "1e10" or "1_000".
func decimal(items []rune) uint {
	var (
		n      = digits(items)
		length = uint(len(items))
	)
	// Fractional part
	if n < length && items[n] == '.' {
		if m := digits(items[n+1:]); m > 0 || n > 0 {
			n += 1 + m
		}
	}
	//
	if n == 0 {
		return 0
	}
	// Exponent part
	if n < length && (items[n] == 'e' || items[n] == 'E') {
		m := n + 1
		//
		if m < length && (items[m] == '+' || items[m] == '-') {
			m++
		}
		//
		if d := digits(items[m:]); d > 0 {
			n = m + d
		}
	}
	//
	return n
}

func digits(items []rune) uint {
	n := uint(0)
	//
	for n < uint(len(items)) && (unicode.IsDigit(items[n]) || (n > 0 && items[n] == '_')) {
		n++
	}
	//
	return n
}

// Permit an optional bigint suffix after a number.
func bigint(scanner lex.Scanner[rune]) lex.Scanner[rune] {
	return func(items []rune) uint {
		n := scanner(items)
		//
		if n > 0 && n < uint(len(items)) && items[n] == 'n' {
			return n + 1
		}
		//
		return n
	}
}

// Rule for "?.", which must not be followed by a digit (e.g. "x?.5:y").
func optionalChain(items []rune) uint {
	if len(items) >= 2 && items[0] == '?' && items[1] == '.' {
		if len(items) == 2 || !unicode.IsDigit(items[2]) {
			return 2
		}
	}
	//
	return 0
}

// Rule for describing strings in a given quote.  Escapes (e.g. "\"") are
// permitted, whilst unescaped newlines are only permitted in templates.
func quoted(quote rune) lex.Scanner[rune] {
	return func(items []rune) uint {
		if len(items) == 0 || items[0] != quote {
			return 0
		}
		//
		for i := 1; i < len(items); i++ {
			switch items[i] {
			case '\\':
				i++
			case quote:
				return uint(i + 1)
			case '\n':
				if quote != '`' {
					return 0
				}
			}
		}
		// unterminated
		return 0
	}
}

func isIdentifierStart(c rune) bool {
	return c == '_' || c == '$' || unicode.IsLetter(c)
}

func isIdentifierPart(c rune) bool {
	return isIdentifierStart(c) || unicode.IsDigit(c) || c == '\u200c' || c == '\u200d'
}
