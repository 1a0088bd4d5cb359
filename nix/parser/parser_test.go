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

package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/syntax"
)

// debugStr renders a tree compactly: each node as KIND(children) with
// significant tokens as their text and trivia left out.
func debugStr(n *syntax.Node) string {
	var sb strings.Builder
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		sb.WriteString(strings.TrimPrefix(n.Kind().String(), "NODE_"))
		sb.WriteString("(")
		sep := ""
		for _, e := range n.Elements() {
			switch e := e.(type) {
			case *syntax.Node:
				sb.WriteString(sep)
				walk(e)
			case *syntax.Token:
				if e.Kind().IsTrivia() {
					continue
				}
				sb.WriteString(sep)
				sb.WriteString(e.Text())
			}
			sep = " "
		}
		sb.WriteString(")")
	}
	walk(n)
	return sb.String()
}

func TestParse(t *testing.T) {
	testCases := []struct {
		desc    string
		in, out string
	}{{
		desc: "precedence",
		in:   "a + b * c",
		out:  "ROOT(BIN_OP(IDENT(a) + BIN_OP(IDENT(b) * IDENT(c))))",
	}, {
		desc: "left associative",
		in:   "a - b - c",
		out:  "ROOT(BIN_OP(BIN_OP(IDENT(a) - IDENT(b)) - IDENT(c)))",
	}, {
		desc: "right associative",
		in:   "a ++ b ++ c",
		out:  "ROOT(BIN_OP(IDENT(a) ++ BIN_OP(IDENT(b) ++ IDENT(c))))",
	}, {
		desc: "update and implication",
		in:   "a // b -> c",
		out:  "ROOT(BIN_OP(BIN_OP(IDENT(a) // IDENT(b)) -> IDENT(c)))",
	}, {
		desc: "not",
		in:   "!a && b",
		out:  "ROOT(BIN_OP(UNARY_OP(! IDENT(a)) && IDENT(b)))",
	}, {
		desc: "not binds looser than addition",
		in:   "!a + b",
		out:  "ROOT(UNARY_OP(! BIN_OP(IDENT(a) + IDENT(b))))",
	}, {
		desc: "negation",
		in:   "-f x",
		out:  "ROOT(UNARY_OP(- APPLY(IDENT(f) IDENT(x))))",
	}, {
		desc: "application",
		in:   "f x y",
		out:  "ROOT(APPLY(APPLY(IDENT(f) IDENT(x)) IDENT(y)))",
	}, {
		desc: "select with default",
		in:   "a.b.c or d",
		out:  "ROOT(OR_DEFAULT(SELECT(SELECT(IDENT(a) . IDENT(b)) . IDENT(c)) or IDENT(d)))",
	}, {
		desc: "has attribute",
		in:   "a ? b.c",
		out:  "ROOT(HAS_ATTR(IDENT(a) ? KEY(IDENT(b) . IDENT(c))))",
	}, {
		desc: "let in",
		in:   "let a = 1; in a",
		out:  "ROOT(LET_IN(let KEY_VALUE(KEY(IDENT(a)) = LITERAL(1) ;) in IDENT(a)))",
	}, {
		desc: "legacy let",
		in:   "let { body = 1; }",
		out:  "ROOT(LEGACY_LET(let { KEY_VALUE(KEY(IDENT(body)) = LITERAL(1) ;) }))",
	}, {
		desc: "recursive set",
		in:   "rec { a.b = 1; inherit (x) c; }",
		out:  "ROOT(ATTR_SET(rec { KEY_VALUE(KEY(IDENT(a) . IDENT(b)) = LITERAL(1) ;) INHERIT(inherit INHERIT_FROM(( IDENT(x) )) IDENT(c) ;) }))",
	}, {
		desc: "dynamic and string keys",
		in:   `{ ${a} = 1; "b" = 2; }`,
		out:  `ROOT(ATTR_SET({ KEY_VALUE(KEY(DYNAMIC(${ IDENT(a) })) = LITERAL(1) ;) KEY_VALUE(KEY(STRING(" b ")) = LITERAL(2) ;) }))`,
	}, {
		desc: "lambda",
		in:   "x: y: x",
		out:  "ROOT(LAMBDA(IDENT(x) : LAMBDA(IDENT(y) : IDENT(x))))",
	}, {
		desc: "pattern with trailing bind",
		in:   "{ a, b ? 1, ... }@args: a",
		out:  "ROOT(LAMBDA(PATTERN({ PAT_ENTRY(IDENT(a)) , PAT_ENTRY(IDENT(b) ? LITERAL(1)) , ... } PAT_BIND(@ IDENT(args))) : IDENT(a)))",
	}, {
		desc: "pattern with leading bind",
		in:   "args@{ a }: a",
		out:  "ROOT(LAMBDA(PATTERN(PAT_BIND(IDENT(args) @) { PAT_ENTRY(IDENT(a)) }) : IDENT(a)))",
	}, {
		desc: "empty pattern",
		in:   "{ }: 1",
		out:  "ROOT(LAMBDA(PATTERN({ }) : LITERAL(1)))",
	}, {
		desc: "empty set",
		in:   "{ }",
		out:  "ROOT(ATTR_SET({ }))",
	}, {
		desc: "string interpolation",
		in:   `"a${b}c"`,
		out:  `ROOT(STRING(" a STR_INTERPOL(${ IDENT(b) }) c "))`,
	}, {
		desc: "indented string escapes",
		in:   "''a ''${b}''",
		out:  "ROOT(STRING('' a ''${b} ''))",
	}, {
		desc: "if then else",
		in:   "if a then b else c",
		out:  "ROOT(IF_ELSE(if IDENT(a) then IDENT(b) else IDENT(c)))",
	}, {
		desc: "with and assert",
		in:   "with a; assert b; c",
		out:  "ROOT(WITH(with IDENT(a) ; ASSERT(assert IDENT(b) ; IDENT(c))))",
	}, {
		desc: "list of literals",
		in:   "[ 1 ./a.nix <nixpkgs> f.x ]",
		out:  "ROOT(LIST([ LITERAL(1) LITERAL(./a.nix) LITERAL(<nixpkgs>) SELECT(IDENT(f) . IDENT(x)) ]))",
	}, {
		desc: "parentheses",
		in:   "(a)",
		out:  "ROOT(PAREN(( IDENT(a) )))",
	}, {
		desc: "comments",
		in:   "# c\na /* x */ + b\n",
		out:  "ROOT(BIN_OP(IDENT(a) + IDENT(b)))",
	}}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			root, err := ParseFile("input", tc.in, AllErrors)
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.Equals(debugStr(root), tc.out))
			qt.Check(t, qt.Equals(root.Text(), tc.in))
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		desc    string
		in, out string
		err     string
	}{{
		desc: "missing value",
		in:   "{ a = ; }",
		out:  "ROOT(ATTR_SET({ KEY_VALUE(KEY(IDENT(a)) = ;) }))",
		err:  "input:1:7: expected expression, found ';'",
	}, {
		desc: "missing body",
		in:   "let a = 1; in",
		out:  "ROOT(LET_IN(let KEY_VALUE(KEY(IDENT(a)) = LITERAL(1) ;) in))",
		err:  "input:1:14: expected expression, found EOF",
	}, {
		desc: "trailing tokens",
		in:   "a ) b",
		out:  "ROOT(IDENT(a) ERROR() b))",
		err:  "input:1:3: unexpected ')' after expression",
	}, {
		desc: "unterminated string",
		in:   `"abc`,
		out:  `ROOT(STRING(" abc))`,
		err:  "input:1:5: string literal not terminated",
	}, {
		desc: "non associative",
		in:   "a == b == c",
		out:  "ROOT(BIN_OP(BIN_OP(IDENT(a) == IDENT(b)) == IDENT(c)))",
		err:  "input:1:8: operator == is not associative",
	}, {
		desc: "stray token in set",
		in:   "{ , a = 1; }",
		out:  "ROOT(ATTR_SET({ ERROR(,) KEY_VALUE(KEY(IDENT(a)) = LITERAL(1) ;) }))",
		err:  "input:1:3: expected binding, found ','",
	}, {
		desc: "unbalanced interpolation",
		in:   `"${a b c"`,
		out:  `ROOT(STRING(" STR_INTERPOL(${ APPLY(APPLY(APPLY(IDENT(a) IDENT(b)) IDENT(c)) STRING(")))))`,
		err:  "input:1:10: expected '}', found EOF",
	}}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			root, err := ParseFile("input", tc.in)
			qt.Assert(t, qt.IsNotNil(err))
			var buf bytes.Buffer
			errors.Print(&buf, err)
			qt.Check(t, qt.StringContains(buf.String(), tc.err))
			qt.Check(t, qt.Equals(debugStr(root), tc.out))
			qt.Check(t, qt.Equals(root.Text(), tc.in))
		})
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseFile("input", "f x", TraceTo(&buf))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.StringContains(buf.String(), "Apply ("))
	qt.Check(t, qt.StringContains(buf.String(), "IDENT f"))
}

func TestReadSource(t *testing.T) {
	_, err := ParseFile("input", 42)
	qt.Check(t, qt.ErrorMatches(err, "invalid source type int"))

	root, err := ParseFile("input", strings.NewReader("a"))
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(root.Text(), "a"))
}

func FuzzParseFile(f *testing.F) {
	f.Add([]byte(`let a = 1; in a`))
	f.Add([]byte(`{ a, b ? 2, ... }@args: a + b`))
	f.Add([]byte(`rec { a.b."c" = ${d}; inherit (e) f; }`))
	f.Add([]byte(`"x${y}z" + ''i ''${j}''`))
	f.Add([]byte(`[ ./a <b> https://c.d 1 2.5 ]`))
	f.Add([]byte(`if a then b else c`))
	f.Add([]byte(`{ a = ; } )`))
	f.Fuzz(func(t *testing.T, b []byte) {
		root, _ := ParseFile("fuzz.nix", b)
		if got := root.Text(); got != string(b) {
			t.Fatalf("tree text %q does not match input %q", got, b)
		}
	})
}
