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

// Package scanner implements a lossless scanner for Nix source text. It
// takes a []byte as source which can then be tokenized through repeated
// calls to the Scan method. Whitespace and comments are returned as tokens
// so that the concatenation of all token literals reproduces the source.
package scanner

import (
	"fmt"
	"unicode/utf8"

	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/token"
)

// context records what the scanner is inside of. The zero state, an empty
// stack, is plain code.
type context uint8

const (
	inBrace     context = iota // { ... } in code
	inInterp                   // ${ ... }
	inString                   // "..."
	inIndString                // ''...''
)

// A Scanner holds the Scanner's internal state while processing
// a given text. It can be allocated as part of another data
// structure but must be initialized via Init before use.
type Scanner struct {
	// immutable state
	file *token.File    // source file handle
	src  []byte         // source
	err  errors.Handler // error reporting; or nil

	// scanning state
	ch       rune // current character
	offset   int  // character offset
	rdOffset int  // reading offset (position after current character)
	stack    []context
	eofSeen  bool

	// public state - ok to modify
	ErrorCount int // number of errors encountered
}

const bom = 0xFEFF // byte order mark, only permitted as very first character

// Read the next Unicode char into s.ch.
// s.ch < 0 means end-of-file.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.offset, "illegal character NUL")
		case r >= utf8.RuneSelf:
			// not ASCII
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			} else if r == bom && s.offset > 0 {
				s.error(s.offset, "illegal byte order mark")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = -1 // eof
	}
}

// peek returns the byte following the current character without advancing
// the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

// advanceTo moves the scanner forward until it reaches offset.
func (s *Scanner) advanceTo(offset int) {
	for s.ch >= 0 && s.offset < offset {
		s.next()
	}
}

// Init prepares the scanner s to tokenize the text src by setting the
// scanner at the beginning of src. The scanner uses file for position
// information and it adds line information for each line. Init causes a
// panic if the file size does not match the src size.
//
// Calls to Scan will invoke the error handler err if they encounter a
// syntax error and err is not nil. Also, for each error encountered,
// the Scanner field ErrorCount is incremented by one.
func (s *Scanner) Init(file *token.File, src []byte, err errors.Handler) {
	// Explicitly initialize all fields since a scanner may be reused.
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = err

	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.stack = s.stack[:0]
	s.eofSeen = false
	s.ErrorCount = 0

	s.next()
}

func (s *Scanner) error(offs int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(offs), msg)
	}
	s.ErrorCount++
}

func (s *Scanner) push(c context) {
	s.stack = append(s.stack, c)
}

func (s *Scanner) pop() (context, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	c := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return c, true
}

func (s *Scanner) top() (context, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	return s.stack[len(s.stack)-1], true
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isIdentChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '\'' || ch == '-'
}

func isPathChar(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9' ||
		b == '.' || b == '_' || b == '+' || b == '-'
}

func isURIChar(b byte) bool {
	if isPathChar(b) {
		return true
	}
	switch b {
	case '%', '/', '?', ':', '@', '&', '=', '$', ',', '!', '~', '*', '\'':
		return true
	}
	return false
}

// pathLen returns the length of the path literal starting at the current
// offset, or 0 if there is none. Paths are PATH_CHAR* ('/' PATH_CHAR+)+ or
// the same prefixed by '~'.
func (s *Scanner) pathLen() int {
	src, i := s.src, s.offset
	if i < len(src) && src[i] == '~' {
		i++
	} else {
		for i < len(src) && isPathChar(src[i]) {
			i++
		}
	}
	segments := 0
	for i+1 < len(src) && src[i] == '/' && isPathChar(src[i+1]) {
		i += 2
		for i < len(src) && isPathChar(src[i]) {
			i++
		}
		segments++
	}
	if segments == 0 {
		return 0
	}
	return i - s.offset
}

// searchPathLen returns the length of a <nixpkgs/lib> style literal at the
// current offset, or 0 if there is none.
func (s *Scanner) searchPathLen() int {
	src, i := s.src, s.offset+1
	start := i
	for i < len(src) && (isPathChar(src[i]) || src[i] == '/' && i > start && isPathChar(src[i-1])) {
		i++
	}
	if i == start || i >= len(src) || src[i] != '>' || src[i-1] == '/' {
		return 0
	}
	return i + 1 - s.offset
}

// uriLen returns the length of the URI literal starting at the current
// offset, or 0 if there is none.
func (s *Scanner) uriLen() int {
	src, i := s.src, s.offset
	if i >= len(src) || !isLetter(rune(src[i])) {
		return 0
	}
	i++
	for i < len(src) && (isLetter(rune(src[i])) || isDigit(rune(src[i])) ||
		src[i] == '+' || src[i] == '-' || src[i] == '.') {
		i++
	}
	if i >= len(src) || src[i] != ':' {
		return 0
	}
	i++
	j := i
	for j < len(src) && isURIChar(src[j]) {
		j++
	}
	if j == i {
		return 0
	}
	return j - s.offset
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isIdentChar(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.next()
	}
}

func (s *Scanner) scanNumber() token.Token {
	tok := token.INT
	s.scanDigits()
	if s.ch == '.' && isDigit(rune(s.peek())) {
		tok = token.FLOAT
		s.next()
		s.scanDigits()
	}
	if s.ch == 'e' || s.ch == 'E' {
		offs := s.offset
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDigit(s.ch) {
			s.error(offs, "exponent has no digits")
		}
		tok = token.FLOAT
		s.scanDigits()
	}
	return tok
}

func (s *Scanner) scanBlockComment() {
	// opening "/*" already consumed
	offs := s.offset - 2
	for s.ch >= 0 {
		ch := s.ch
		s.next()
		if ch == '*' && s.ch == '/' {
			s.next()
			return
		}
	}
	s.error(offs, "comment not terminated")
}

// Scan scans the next token and returns the token offset, the token,
// and its literal string. The source end is indicated by EOF.
//
// Every byte of the source belongs to exactly one returned token; the
// literal string is the exact source text of the token, including for
// WHITESPACE and COMMENT tokens.
//
// For more tolerant parsing, Scan will return a valid token if
// possible even if a syntax error was encountered. Thus, even
// if the resulting token sequence contains no illegal tokens,
// a client may not assume that no error occurred. Instead it
// must check the scanner's ErrorCount or the number of calls
// of the error handler, if there was one installed.
func (s *Scanner) Scan() (offset int, tok token.Token, lit string) {
	offset = s.offset
	if s.ch < 0 {
		if c, ok := s.top(); ok && (c == inString || c == inIndString) && !s.eofSeen {
			s.error(offset, "string literal not terminated")
		}
		s.eofSeen = true
		return offset, token.EOF, ""
	}

	switch c, _ := s.top(); {
	case len(s.stack) > 0 && c == inString:
		tok = s.scanStringPart()
	case len(s.stack) > 0 && c == inIndString:
		tok = s.scanIndStringPart()
	default:
		tok = s.scanCode()
	}
	lit = string(s.src[offset:s.offset])
	return offset, tok, lit
}

func (s *Scanner) scanCode() token.Token {
	ch := s.ch
	switch {
	case isSpace(ch) || ch == bom && s.offset == 0:
		s.next()
		for isSpace(s.ch) {
			s.next()
		}
		return token.WHITESPACE
	case ch == '#':
		for s.ch != '\n' && s.ch >= 0 {
			s.next()
		}
		return token.COMMENT
	case ch == '/' && s.peek() == '*':
		s.next()
		s.next()
		s.scanBlockComment()
		return token.COMMENT
	}

	if ch < utf8.RuneSelf && (isPathChar(byte(ch)) || ch == '~' || ch == '/') {
		if n := s.pathLen(); n > 0 {
			s.advanceTo(s.offset + n)
			return token.PATH
		}
	}
	if ch == '<' {
		if n := s.searchPathLen(); n > 0 {
			s.advanceTo(s.offset + n)
			return token.SPATH
		}
	}
	switch {
	case isLetter(ch) || ch == '_':
		if n := s.uriLen(); n > 0 {
			s.advanceTo(s.offset + n)
			return token.URI
		}
		return token.Lookup(s.scanIdentifier())
	case isDigit(ch):
		return s.scanNumber()
	}

	offs := s.offset
	s.next() // always make progress
	switch ch {
	case '+':
		if s.ch == '+' {
			s.next()
			return token.CONCAT
		}
		return token.ADD
	case '-':
		if s.ch == '>' {
			s.next()
			return token.IMPL
		}
		return token.SUB
	case '*':
		return token.MUL
	case '/':
		if s.ch == '/' {
			s.next()
			return token.UPDATE
		}
		return token.QUO
	case '=':
		return s.switch2(token.ASSIGN, token.EQL)
	case '!':
		return s.switch2(token.NOT, token.NEQ)
	case '<':
		return s.switch2(token.LSS, token.LEQ)
	case '>':
		return s.switch2(token.GTR, token.GEQ)
	case '&':
		if s.ch == '&' {
			s.next()
			return token.LAND
		}
	case '|':
		if s.ch == '|' {
			s.next()
			return token.LOR
		}
	case '?':
		return token.QUESTION
	case '.':
		if s.ch == '.' && s.peek() == '.' {
			s.next()
			s.next()
			return token.ELLIPSIS
		}
		return token.PERIOD
	case ',':
		return token.COMMA
	case ';':
		return token.SEMICOLON
	case ':':
		return token.COLON
	case '@':
		return token.AT
	case '(':
		return token.LPAREN
	case ')':
		return token.RPAREN
	case '[':
		return token.LBRACK
	case ']':
		return token.RBRACK
	case '{':
		s.push(inBrace)
		return token.LBRACE
	case '}':
		if c, ok := s.pop(); ok && c == inInterp {
			return token.INTERP_END
		}
		return token.RBRACE
	case '$':
		if s.ch == '{' {
			s.next()
			s.push(inInterp)
			return token.INTERP_START
		}
	case '"':
		s.push(inString)
		return token.STR_START
	case '\'':
		if s.ch == '\'' {
			s.next()
			s.push(inIndString)
			return token.STR_START
		}
	}
	s.error(offs, fmt.Sprintf("illegal character %#U", ch))
	return token.ILLEGAL
}

func (s *Scanner) switch2(tok0, tok1 token.Token) token.Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

func (s *Scanner) scanStringPart() token.Token {
	switch {
	case s.ch == '"':
		s.next()
		s.pop()
		return token.STR_END
	case s.ch == '$' && s.peek() == '{':
		s.next()
		s.next()
		s.push(inInterp)
		return token.INTERP_START
	}
	for s.ch >= 0 {
		switch s.ch {
		case '"':
			return token.STR_CONTENT
		case '\\':
			s.next()
			if s.ch >= 0 {
				s.next()
			}
		case '$':
			if s.peek() == '{' {
				return token.STR_CONTENT
			}
			if s.peek() == '$' {
				s.next()
			}
			s.next()
		default:
			s.next()
		}
	}
	return token.STR_CONTENT
}

// indQuote inspects a '' sequence at the current offset inside an indented
// string. It reports whether it closes the string and, if it does not, the
// length in bytes of the escape sequence it starts.
func (s *Scanner) indQuote() (closes bool, n int) {
	i := s.rdOffset + 1 // byte after ''
	if i < len(s.src) {
		switch s.src[i] {
		case '\'', '$':
			return false, 3
		case '\\':
			if i+1 < len(s.src) {
				_, w := utf8.DecodeRune(s.src[i+1:])
				return false, 3 + w
			}
			return false, 3
		}
	}
	return true, 2
}

func (s *Scanner) scanIndStringPart() token.Token {
	if s.ch == '\'' && s.peek() == '\'' {
		if closes, _ := s.indQuote(); closes {
			s.next()
			s.next()
			s.pop()
			return token.STR_END
		}
	}
	if s.ch == '$' && s.peek() == '{' {
		s.next()
		s.next()
		s.push(inInterp)
		return token.INTERP_START
	}
	for s.ch >= 0 {
		switch {
		case s.ch == '\'' && s.peek() == '\'':
			closes, n := s.indQuote()
			if closes {
				return token.STR_CONTENT
			}
			s.advanceTo(s.offset + n)
		case s.ch == '$':
			if s.peek() == '{' {
				return token.STR_CONTENT
			}
			if s.peek() == '$' {
				s.next()
			}
			s.next()
		default:
			s.next()
		}
	}
	return token.STR_CONTENT
}
