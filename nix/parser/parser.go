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

// Package parser implements a parser for Nix source files. Input may be
// provided in a variety of forms (see ParseFile); the output is a lossless
// syntax tree (see package syntax) from which the source text can be
// reproduced byte for byte.
//
// The parser never gives up on a file. Fragments it cannot place are
// wrapped in NODE_ERROR nodes and parsing resumes at the next token the
// enclosing construct can use.
package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/scanner"
	"github.com/selaux/rnix-lsp/nix/syntax"
	"github.com/selaux/rnix-lsp/nix/token"
)

type lexeme struct {
	offset int
	tok    token.Token
	lit    string
}

// The parser structure holds the parser's internal state.
type parser struct {
	file   *token.File
	errors errors.List
	cfg    Config

	// Tracing/debugging
	trace  bool      // == (cfg.Mode & Trace != 0)
	out    io.Writer // trace output
	indent int       // indentation used for tracing output

	// Tokens
	toks []lexeme // all tokens of the file, trivia included
	pos  int      // index of the next token to add to the tree
	eof  int      // offset of the end of the file

	b *syntax.Builder
}

func (p *parser) init(filename string, src []byte, opts []Option) {
	p.cfg = NewConfig(opts...)
	p.trace = p.cfg.Mode&Trace != 0
	p.out = p.cfg.TraceOutput
	if p.out == nil {
		p.out = os.Stdout
	}
	p.file = token.NewFile(filename, len(src))

	eh := func(pos token.Position, msg string) { p.errors.AddNewf(pos, "%s", msg) }
	var s scanner.Scanner
	s.Init(p.file, src, eh)
	for {
		offset, tok, lit := s.Scan()
		if tok == token.EOF {
			p.eof = offset
			break
		}
		p.toks = append(p.toks, lexeme{offset, tok, lit})
	}
	p.b = syntax.NewBuilder()
}

// ----------------------------------------------------------------------------
// Parsing support

func (p *parser) printTrace(a ...interface{}) {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	const n = len(dots)
	pos := p.file.Position(p.offset())
	fmt.Fprintf(p.out, "%5d:%3d: ", pos.Line, pos.Column)
	i := 2 * p.indent
	for i > n {
		fmt.Fprint(p.out, dots)
		i -= n
	}
	// i <= n
	fmt.Fprint(p.out, dots[0:i])
	fmt.Fprintln(p.out, a...)
}

func trace(p *parser, msg string) *parser {
	p.printTrace(msg, "(")
	p.indent++
	return p
}

// Usage pattern: defer un(trace(p, "..."))
func un(p *parser) {
	p.indent--
	p.printTrace(")")
}

// sig returns the index of the n-th significant token ahead, 0 being the
// next one, or -1 if the file ends first.
func (p *parser) sig(n int) int {
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].tok.IsTrivia() {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

// peekAt returns the kind of the n-th significant token ahead.
func (p *parser) peekAt(n int) token.Token {
	if i := p.sig(n); i >= 0 {
		return p.toks[i].tok
	}
	return token.EOF
}

// peek returns the kind of the next significant token.
func (p *parser) peek() token.Token { return p.peekAt(0) }

// offset returns the source offset of the next significant token.
func (p *parser) offset() int {
	if i := p.sig(0); i >= 0 {
		return p.toks[i].offset
	}
	return p.eof
}

func (p *parser) emit() {
	l := p.toks[p.pos]
	p.b.Token(l.tok, l.lit)
	p.pos++
}

// trivia adds pending whitespace and comments to the open node.
func (p *parser) trivia() {
	for p.pos < len(p.toks) && p.toks[p.pos].tok.IsTrivia() {
		p.emit()
	}
}

// next adds the next significant token, and the trivia preceding it, to
// the open node.
func (p *parser) next() {
	p.trivia()
	if p.pos >= len(p.toks) {
		return
	}
	if p.trace {
		l := p.toks[p.pos]
		switch {
		case l.tok.IsLiteral():
			p.printTrace(l.tok.String(), l.lit)
		case l.tok.IsOperator(), l.tok.IsKeyword():
			p.printTrace("\"" + l.lit + "\"")
		default:
			p.printTrace(l.tok.String())
		}
	}
	p.emit()
}

// start opens a node. Pending trivia stays with the enclosing node so
// that every node starts with a significant token.
func (p *parser) start(k syntax.Kind) {
	p.trivia()
	p.b.StartNode(k)
}

func (p *parser) checkpoint() syntax.Checkpoint {
	p.trivia()
	return p.b.Checkpoint()
}

func (p *parser) startAt(cp syntax.Checkpoint, k syntax.Kind) {
	p.b.StartNodeAt(cp, k)
}

func (p *parser) finish() {
	p.b.FinishNode()
}

func (p *parser) errf(offset int, msg string, args ...interface{}) {
	p.errors.AddNewf(p.file.Position(offset), msg, args...)
}

// found describes the next significant token for error messages.
func (p *parser) found() string {
	i := p.sig(0)
	if i < 0 {
		return "EOF"
	}
	switch l := p.toks[i]; l.tok {
	case token.STR_CONTENT:
		return "string content"
	case token.INTERP_END:
		return "'}'"
	default:
		return "'" + l.lit + "'"
	}
}

func (p *parser) errorExpected(what string) {
	p.errf(p.offset(), "expected %s, found %s", what, p.found())
}

// expect consumes the next token if it is tok. Otherwise it reports an
// error and leaves the token for the enclosing construct.
func (p *parser) expect(tok token.Token) bool {
	if p.peek() != tok {
		p.errorExpected("'" + tok.String() + "'")
		return false
	}
	p.next()
	return true
}

// skip wraps the next token in an error node.
func (p *parser) skip() {
	p.start(syntax.KindError)
	p.next()
	p.finish()
}

// stops reports whether tok closes some enclosing construct. Error
// recovery does not consume such tokens.
func stops(tok token.Token) bool {
	switch tok {
	case token.EOF, token.RPAREN, token.RBRACK, token.RBRACE, token.INTERP_END,
		token.STR_END, token.SEMICOLON, token.IN, token.THEN, token.ELSE:
		return true
	}
	return false
}

// startsOperand reports whether tok can start an argument of a function
// application or an element of a list.
func startsOperand(tok token.Token) bool {
	switch tok {
	case token.IDENT, token.INT, token.FLOAT, token.PATH, token.SPATH, token.URI,
		token.STR_START, token.LPAREN, token.LBRACK, token.LBRACE, token.REC:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Expressions

func (p *parser) parseFile() *syntax.Node {
	if p.trace {
		defer un(trace(p, "File"))
	}

	p.parseExpr()
	if p.peek() != token.EOF {
		p.errf(p.offset(), "unexpected %s after expression", p.found())
		p.start(syntax.KindError)
		for p.peek() != token.EOF {
			p.next()
		}
		p.finish()
	}
	p.trivia()
	return p.b.Finish()
}

func (p *parser) parseExpr() {
	if p.trace {
		defer un(trace(p, "Expr"))
	}

	switch p.peek() {
	case token.LET:
		if p.peekAt(1) != token.LBRACE {
			p.parseLetIn()
			return
		}
	case token.WITH:
		p.parseKeywordExpr(syntax.KindWith)
		return
	case token.ASSERT:
		p.parseKeywordExpr(syntax.KindAssert)
		return
	case token.IF:
		p.parseIfElse()
		return
	case token.IDENT:
		if t := p.peekAt(1); t == token.COLON || t == token.AT {
			p.parseLambda()
			return
		}
	case token.LBRACE:
		if p.isPattern() {
			p.parseLambda()
			return
		}
	}
	p.parseBinaryExpr(token.LowestPrec + 1)
}

// isPattern reports whether the { at the current position opens a
// function parameter pattern rather than an attribute set.
func (p *parser) isPattern() bool {
	switch p.peekAt(1) {
	case token.RBRACE:
		t := p.peekAt(2)
		return t == token.COLON || t == token.AT
	case token.ELLIPSIS:
		return true
	case token.IDENT:
		switch p.peekAt(2) {
		case token.COMMA, token.QUESTION:
			return true
		case token.RBRACE:
			t := p.peekAt(3)
			return t == token.COLON || t == token.AT
		}
	}
	return false
}

// parseKeywordExpr parses with e; e and assert e; e.
func (p *parser) parseKeywordExpr(k syntax.Kind) {
	if p.trace {
		defer un(trace(p, k.String()))
	}

	p.start(k)
	p.next()
	p.parseExpr()
	p.expect(token.SEMICOLON)
	p.parseExpr()
	p.finish()
}

func (p *parser) parseIfElse() {
	if p.trace {
		defer un(trace(p, "IfElse"))
	}

	p.start(syntax.KindIfElse)
	p.next()
	p.parseExpr()
	p.expect(token.THEN)
	p.parseExpr()
	p.expect(token.ELSE)
	p.parseExpr()
	p.finish()
}

func (p *parser) parseLetIn() {
	if p.trace {
		defer un(trace(p, "LetIn"))
	}

	p.start(syntax.KindLetIn)
	p.next()
	p.parseBindings(token.IN)
	p.expect(token.IN)
	p.parseExpr()
	p.finish()
}

func (p *parser) parseLegacyLet() {
	if p.trace {
		defer un(trace(p, "LegacyLet"))
	}

	p.start(syntax.KindLegacyLet)
	p.next()
	p.expect(token.LBRACE)
	p.parseBindings(token.RBRACE)
	p.expect(token.RBRACE)
	p.finish()
}

func (p *parser) parseLambda() {
	if p.trace {
		defer un(trace(p, "Lambda"))
	}

	p.start(syntax.KindLambda)
	if p.peek() == token.IDENT && p.peekAt(1) == token.COLON {
		p.parseIdent()
	} else {
		p.parsePattern()
	}
	p.expect(token.COLON)
	p.parseExpr()
	p.finish()
}

func (p *parser) parsePattern() {
	if p.trace {
		defer un(trace(p, "Pattern"))
	}

	p.start(syntax.KindPattern)
	if p.peek() == token.IDENT {
		p.start(syntax.KindPatBind)
		p.parseIdent()
		p.expect(token.AT)
		p.finish()
	}
	if p.expect(token.LBRACE) {
		p.parsePatEntries()
		p.expect(token.RBRACE)
	}
	if p.peek() == token.AT {
		p.start(syntax.KindPatBind)
		p.next()
		p.parseIdent()
		p.finish()
	}
	p.finish()
}

func (p *parser) parsePatEntries() {
	for {
		switch tok := p.peek(); tok {
		case token.RBRACE, token.EOF:
			return
		case token.ELLIPSIS:
			p.next()
		case token.IDENT:
			p.start(syntax.KindPatEntry)
			p.parseIdent()
			if p.peek() == token.QUESTION {
				p.next()
				p.parseExpr()
			}
			p.finish()
		default:
			p.errorExpected("pattern field")
			if stops(tok) {
				return
			}
			p.skip()
			continue
		}

		switch tok := p.peek(); tok {
		case token.COMMA:
			p.next()
		case token.RBRACE:
		default:
			p.errorExpected("',' or '}'")
			if stops(tok) {
				return
			}
		}
	}
}

// parseBinaryExpr parses operators binding at least as tight as prec1 by
// precedence climbing. Operands are unary expressions.
func (p *parser) parseBinaryExpr(prec1 int) {
	if p.trace {
		defer un(trace(p, "BinaryExpr"))
	}

	cp := p.checkpoint()
	p.parseUnaryExpr()
	for {
		op := p.peek()
		if op == token.QUESTION {
			if token.HasAttrPrec < prec1 {
				return
			}
			p.startAt(cp, syntax.KindHasAttr)
			p.next()
			p.parseAttrPath()
			p.finish()
			continue
		}

		prec := op.Precedence()
		if prec < prec1 {
			return
		}
		p.startAt(cp, syntax.KindBinOp)
		p.next()
		next := prec + 1
		if op.RightAssoc() {
			next = prec
		}
		p.parseBinaryExpr(next)
		p.finish()

		if op.NonAssoc() && p.peek().Precedence() == prec {
			p.errf(p.offset(), "operator %s is not associative", p.peek())
		}
	}
}

func (p *parser) parseUnaryExpr() {
	if p.trace {
		defer un(trace(p, "UnaryExpr"))
	}

	switch p.peek() {
	case token.NOT:
		p.start(syntax.KindUnaryOp)
		p.next()
		p.parseBinaryExpr(token.NotPrec + 1)
		p.finish()
	case token.SUB:
		p.start(syntax.KindUnaryOp)
		p.next()
		p.parseUnaryExpr()
		p.finish()
	default:
		p.parseApply()
	}
}

func (p *parser) parseApply() {
	if p.trace {
		defer un(trace(p, "Apply"))
	}

	cp := p.checkpoint()
	p.parseSelectExpr()
	for startsOperand(p.peek()) {
		p.startAt(cp, syntax.KindApply)
		p.parseSelectExpr()
		p.finish()
	}
}

// parseSelectExpr parses a.b.c as nested selections, the innermost
// selecting from a, followed by an optional or default.
func (p *parser) parseSelectExpr() {
	if p.trace {
		defer un(trace(p, "SelectExpr"))
	}

	cp := p.checkpoint()
	p.parseSimpleExpr()
	if p.peek() != token.PERIOD {
		return
	}
	for p.peek() == token.PERIOD {
		p.startAt(cp, syntax.KindSelect)
		p.next()
		p.parseAttr()
		p.finish()
	}
	if p.peek() == token.OR {
		p.startAt(cp, syntax.KindOrDefault)
		p.next()
		p.parseSelectExpr()
		p.finish()
	}
}

func (p *parser) parseSimpleExpr() {
	if p.trace {
		defer un(trace(p, "SimpleExpr"))
	}

	switch tok := p.peek(); tok {
	case token.IDENT:
		p.parseIdent()
	case token.INT, token.FLOAT, token.PATH, token.SPATH, token.URI:
		p.start(syntax.KindLiteral)
		p.next()
		p.finish()
	case token.STR_START:
		p.parseString()
	case token.LPAREN:
		p.start(syntax.KindParen)
		p.next()
		p.parseExpr()
		p.expect(token.RPAREN)
		p.finish()
	case token.LBRACK:
		p.parseList()
	case token.LBRACE, token.REC:
		p.parseAttrSet()
	case token.LET:
		if p.peekAt(1) == token.LBRACE {
			p.parseLegacyLet()
			return
		}
		fallthrough
	case token.IF, token.WITH, token.ASSERT:
		p.errf(p.offset(), "%s expression must be parenthesized here", tok)
		p.parseExpr()
	default:
		p.errorExpected("expression")
		if !stops(tok) {
			p.skip()
		}
	}
}

func (p *parser) parseIdent() {
	if p.peek() != token.IDENT {
		p.errorExpected("identifier")
		return
	}
	p.start(syntax.KindIdent)
	p.next()
	p.finish()
}

func (p *parser) parseList() {
	if p.trace {
		defer un(trace(p, "List"))
	}

	p.start(syntax.KindList)
	p.next()
	for {
		tok := p.peek()
		if tok == token.RBRACK || tok == token.EOF {
			break
		}
		if startsOperand(tok) {
			p.parseSelectExpr()
			continue
		}
		p.errorExpected("list element")
		if stops(tok) {
			break
		}
		p.skip()
	}
	p.expect(token.RBRACK)
	p.finish()
}

func (p *parser) parseAttrSet() {
	if p.trace {
		defer un(trace(p, "AttrSet"))
	}

	p.start(syntax.KindAttrSet)
	if p.peek() == token.REC {
		p.next()
	}
	p.expect(token.LBRACE)
	p.parseBindings(token.RBRACE)
	p.expect(token.RBRACE)
	p.finish()
}

// parseBindings parses the entries and inherits of a set or let up to,
// but not including, end.
func (p *parser) parseBindings(end token.Token) {
	if p.trace {
		defer un(trace(p, "Bindings"))
	}

	for {
		switch tok := p.peek(); tok {
		case end, token.EOF:
			return
		case token.INHERIT:
			p.parseInherit()
		case token.IDENT, token.OR, token.STR_START, token.INTERP_START:
			p.parseKeyValue()
		default:
			p.errorExpected("binding")
			if tok != token.SEMICOLON && stops(tok) {
				return
			}
			p.skip()
		}
	}
}

func (p *parser) parseKeyValue() {
	if p.trace {
		defer un(trace(p, "KeyValue"))
	}

	p.start(syntax.KindKeyValue)
	p.parseAttrPath()
	p.expect(token.ASSIGN)
	p.parseExpr()
	p.expect(token.SEMICOLON)
	p.finish()
}

func (p *parser) parseAttrPath() {
	p.start(syntax.KindKey)
	p.parseAttr()
	for p.peek() == token.PERIOD {
		p.next()
		p.parseAttr()
	}
	p.finish()
}

// parseAttr parses one attribute name. The keyword or is accepted as a
// plain name here.
func (p *parser) parseAttr() {
	switch p.peek() {
	case token.IDENT, token.OR:
		p.start(syntax.KindIdent)
		p.next()
		p.finish()
	case token.STR_START:
		p.parseString()
	case token.INTERP_START:
		p.start(syntax.KindDynamic)
		p.next()
		p.parseInterp()
		p.finish()
	default:
		p.errorExpected("attribute name")
	}
}

func (p *parser) parseInherit() {
	if p.trace {
		defer un(trace(p, "Inherit"))
	}

	p.start(syntax.KindInherit)
	p.next()
	if p.peek() == token.LPAREN {
		p.start(syntax.KindInheritFrom)
		p.next()
		p.parseExpr()
		p.expect(token.RPAREN)
		p.finish()
	}
loop:
	for {
		switch p.peek() {
		case token.IDENT, token.OR, token.STR_START, token.INTERP_START:
			p.parseAttr()
		default:
			break loop
		}
	}
	p.expect(token.SEMICOLON)
	p.finish()
}

func (p *parser) parseString() {
	if p.trace {
		defer un(trace(p, "String"))
	}

	p.start(syntax.KindString)
	p.next()
	for {
		switch p.peek() {
		case token.STR_CONTENT:
			p.next()
		case token.INTERP_START:
			p.start(syntax.KindStrInterpol)
			p.next()
			p.parseInterp()
			p.finish()
		case token.STR_END:
			p.next()
			p.finish()
			return
		default:
			// The scanner reports strings left open at the end of the file.
			p.finish()
			return
		}
	}
}

// parseInterp parses the expression and closing brace of ${ ... }. The
// scanner pairs braces, so anything left before the closing brace can be
// discarded as an error.
func (p *parser) parseInterp() {
	p.parseExpr()
	if t := p.peek(); t != token.INTERP_END && t != token.EOF {
		p.errorExpected("'}'")
		for t != token.INTERP_END && t != token.EOF {
			p.skip()
			t = p.peek()
		}
	}
	if p.peek() == token.INTERP_END {
		p.next()
	} else {
		p.errorExpected("'}'")
	}
}
