// Copyright 2026 The rnix-lsp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines constants representing the lexical tokens of the Nix
// expression language and basic operations on tokens (printing, predicates).
package token

import "strconv"

// Token is the set of lexical tokens of the Nix language.
type Token int

// The list of tokens.
const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	WHITESPACE
	COMMENT

	literalBeg
	// Identifiers and basic type literals
	// (these tokens stand for classes of literals)
	IDENT // foo
	INT   // 12345
	FLOAT // 123.45
	PATH  // ./a/b, /etc, ~/x
	SPATH // <nixpkgs>
	URI   // https://nixos.org

	// String parts. A string is STR_START (STR_CONTENT | INTERP_START ... INTERP_END)* STR_END.
	STR_START    // " or ''
	STR_CONTENT  // literal text inside a string
	STR_END      // " or ''
	INTERP_START // ${
	INTERP_END   // } closing an interpolation
	literalEnd

	operatorBeg
	// Operators and delimiters
	ADD      // +
	SUB      // -
	MUL      // *
	QUO      // /
	CONCAT   // ++
	UPDATE   // //
	EQL      // ==
	NEQ      // !=
	LSS      // <
	LEQ      // <=
	GTR      // >
	GEQ      // >=
	LAND     // &&
	LOR      // ||
	IMPL     // ->
	NOT      // !
	QUESTION // ?

	ASSIGN    // =
	PERIOD    // .
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	AT        // @
	ELLIPSIS  // ...

	LPAREN // (
	RPAREN // )
	LBRACK // [
	RBRACK // ]
	LBRACE // {
	RBRACE // }
	operatorEnd

	keywordBeg
	// Keywords
	ASSERT
	ELSE
	IF
	IN
	INHERIT
	LET
	OR
	REC
	THEN
	WITH
	keywordEnd
)

var tokens = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",

	IDENT: "IDENT",
	INT:   "INT",
	FLOAT: "FLOAT",
	PATH:  "PATH",
	SPATH: "SPATH",
	URI:   "URI",

	STR_START:    "STR_START",
	STR_CONTENT:  "STR_CONTENT",
	STR_END:      "STR_END",
	INTERP_START: "${",
	INTERP_END:   "INTERP_END",

	ADD:      "+",
	SUB:      "-",
	MUL:      "*",
	QUO:      "/",
	CONCAT:   "++",
	UPDATE:   "//",
	EQL:      "==",
	NEQ:      "!=",
	LSS:      "<",
	LEQ:      "<=",
	GTR:      ">",
	GEQ:      ">=",
	LAND:     "&&",
	LOR:      "||",
	IMPL:     "->",
	NOT:      "!",
	QUESTION: "?",

	ASSIGN:    "=",
	PERIOD:    ".",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	AT:        "@",
	ELLIPSIS:  "...",

	LPAREN: "(",
	RPAREN: ")",
	LBRACK: "[",
	RBRACK: "]",
	LBRACE: "{",
	RBRACE: "}",

	ASSERT:  "assert",
	ELSE:    "else",
	IF:      "if",
	IN:      "in",
	INHERIT: "inherit",
	LET:     "let",
	OR:      "or",
	REC:     "rec",
	THEN:    "then",
	WITH:    "with",
}

// String returns the string corresponding to the token tok.
// For operators, delimiters, and keywords the string is the actual
// token character sequence (e.g., for the token ADD, the string is
// "+"). For all other tokens the string corresponds to the token
// constant name (e.g. for the token IDENT, the string is "IDENT").
func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// A set of constants for precedence-based expression parsing.
// Non-operators have lowest precedence, followed by binary operators
// starting with precedence 1. The prefix and postfix operators that are
// not binary have fixed levels relative to them.
const (
	LowestPrec   = 0
	NotPrec      = 7  // ! binds looser than arithmetic
	HasAttrPrec  = 11 // e ? a.b
	NegationPrec = 12 // -e
)

// Precedence returns the operator precedence of the binary
// operator op. If op is not a binary operator, the result
// is LowestPrec.
//
// The levels follow the Nix manual, from loosest to tightest:
// -> || && (== !=) (< <= > >=) // ! (+ -) (* /) ++ ? -
func (tok Token) Precedence() int {
	switch tok {
	case IMPL:
		return 1
	case LOR:
		return 2
	case LAND:
		return 3
	case EQL, NEQ:
		return 4
	case LSS, LEQ, GTR, GEQ:
		return 5
	case UPDATE:
		return 6
	case ADD, SUB:
		return 8
	case MUL, QUO:
		return 9
	case CONCAT:
		return 10
	}
	return LowestPrec
}

// RightAssoc reports whether the binary operator tok groups to the right.
func (tok Token) RightAssoc() bool {
	switch tok {
	case IMPL, UPDATE, CONCAT:
		return true
	}
	return false
}

// NonAssoc reports whether chaining tok without parentheses is an error,
// as in a == b == c.
func (tok Token) NonAssoc() bool {
	switch tok {
	case EQL, NEQ, LSS, LEQ, GTR, GEQ:
		return true
	}
	return false
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keywordBeg + 1; i < keywordEnd; i++ {
		keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or IDENT (if not a keyword).
func Lookup(ident string) Token {
	if tok, isKeyword := keywords[ident]; isKeyword {
		return tok
	}
	return IDENT
}

// Predicates

// IsLiteral returns true for tokens corresponding to identifiers
// and basic type literals; it returns false otherwise.
func (tok Token) IsLiteral() bool { return literalBeg < tok && tok < literalEnd }

// IsOperator returns true for tokens corresponding to operators and
// delimiters; it returns false otherwise.
func (tok Token) IsOperator() bool { return operatorBeg < tok && tok < operatorEnd }

// IsKeyword returns true for tokens corresponding to keywords;
// it returns false otherwise.
func (tok Token) IsKeyword() bool { return keywordBeg < tok && tok < keywordEnd }

// IsTrivia reports whether tok carries no meaning for the grammar.
func (tok Token) IsTrivia() bool { return tok == WHITESPACE || tok == COMMENT }
