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

package syntax

import "strconv"

// Kind identifies the syntactic construct a Node represents.
type Kind uint8

const (
	KindRoot        Kind = iota // the whole file
	KindError                   // tokens the parser could not place
	KindIdent                   // foo
	KindLiteral                 // 1, 1.5, ./path, <nixpkgs>, https://x
	KindString                  // "a${b}c" or ''a''
	KindStrInterpol             // ${b} inside a string
	KindDynamic                 // ${b} as an attribute name
	KindParen                   // (e)
	KindList                    // [ a b ]
	KindAttrSet                 // { a = 1; } or rec { a = 1; }
	KindKey                     // a.b."c" on the left of =
	KindKeyValue                // a.b = e;
	KindInherit                 // inherit (e) a b;
	KindInheritFrom             // (e) in an inherit
	KindLetIn                   // let a = 1; in e
	KindLegacyLet               // let { a = 1; body = e; }
	KindLambda                  // x: e or { a, b }: e
	KindPattern                 // { a, b ? 1, ... } @ x
	KindPatEntry                // b ? 1
	KindPatBind                 // @ x
	KindApply                   // f x
	KindSelect                  // a.b
	KindOrDefault               // a.b or c
	KindHasAttr                 // a ? b.c
	KindBinOp                   // a + b
	KindUnaryOp                 // -a, !a
	KindIfElse                  // if c then a else b
	KindWith                    // with e; e
	KindAssert                  // assert c; e
	numKinds
)

var kindNames = [...]string{
	KindRoot:        "NODE_ROOT",
	KindError:       "NODE_ERROR",
	KindIdent:       "NODE_IDENT",
	KindLiteral:     "NODE_LITERAL",
	KindString:      "NODE_STRING",
	KindStrInterpol: "NODE_STRING_INTERPOL",
	KindDynamic:     "NODE_DYNAMIC",
	KindParen:       "NODE_PAREN",
	KindList:        "NODE_LIST",
	KindAttrSet:     "NODE_ATTR_SET",
	KindKey:         "NODE_KEY",
	KindKeyValue:    "NODE_KEY_VALUE",
	KindInherit:     "NODE_INHERIT",
	KindInheritFrom: "NODE_INHERIT_FROM",
	KindLetIn:       "NODE_LET_IN",
	KindLegacyLet:   "NODE_LEGACY_LET",
	KindLambda:      "NODE_LAMBDA",
	KindPattern:     "NODE_PATTERN",
	KindPatEntry:    "NODE_PAT_ENTRY",
	KindPatBind:     "NODE_PAT_BIND",
	KindApply:       "NODE_APPLY",
	KindSelect:      "NODE_SELECT",
	KindOrDefault:   "NODE_OR_DEFAULT",
	KindHasAttr:     "NODE_HAS_ATTR",
	KindBinOp:       "NODE_BIN_OP",
	KindUnaryOp:     "NODE_UNARY_OP",
	KindIfElse:      "NODE_IF_ELSE",
	KindWith:        "NODE_WITH",
	KindAssert:      "NODE_ASSERT",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
