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

import "github.com/selaux/rnix-lsp/nix/token"

// Typed is a view of a Node as the construct its Kind names. Each view
// type is a thin wrapper around the node and offers accessors for the
// parts of the construct. Accessors report false when a part is missing,
// which happens for trees recovered from syntax errors.
type Typed interface {
	Node() *Node
	typed()
}

// Cast returns the typed view of n. Every Kind has a view; Cast returns
// nil only for a nil node.
func Cast(n *Node) Typed {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindRoot:
		return Root{n}
	case KindError:
		return Error{n}
	case KindIdent:
		return Ident{n}
	case KindLiteral:
		return Literal{n}
	case KindString:
		return Str{n}
	case KindStrInterpol:
		return StrInterpol{n}
	case KindDynamic:
		return Dynamic{n}
	case KindParen:
		return Paren{n}
	case KindList:
		return List{n}
	case KindAttrSet:
		return AttrSet{n}
	case KindKey:
		return Key{n}
	case KindKeyValue:
		return KeyValue{n}
	case KindInherit:
		return Inherit{n}
	case KindInheritFrom:
		return InheritFrom{n}
	case KindLetIn:
		return LetIn{n}
	case KindLegacyLet:
		return LegacyLet{n}
	case KindLambda:
		return Lambda{n}
	case KindPattern:
		return Pattern{n}
	case KindPatEntry:
		return PatEntry{n}
	case KindPatBind:
		return PatBind{n}
	case KindApply:
		return Apply{n}
	case KindSelect:
		return Select{n}
	case KindOrDefault:
		return OrDefault{n}
	case KindHasAttr:
		return HasAttr{n}
	case KindBinOp:
		return BinOp{n}
	case KindUnaryOp:
		return UnaryOp{n}
	case KindIfElse:
		return IfElse{n}
	case KindWith:
		return With{n}
	case KindAssert:
		return Assert{n}
	}
	panic("syntax: unknown node kind " + n.kind.String())
}

// As returns the view of n as T if n has the corresponding kind.
func As[T Typed](n *Node) (T, bool) {
	t, ok := Cast(n).(T)
	return t, ok
}

type (
	Root        struct{ node *Node }
	Error       struct{ node *Node }
	Ident       struct{ node *Node }
	Literal     struct{ node *Node }
	Str         struct{ node *Node }
	StrInterpol struct{ node *Node }
	Dynamic     struct{ node *Node }
	Paren       struct{ node *Node }
	List        struct{ node *Node }
	AttrSet     struct{ node *Node }
	Key         struct{ node *Node }
	KeyValue    struct{ node *Node }
	Inherit     struct{ node *Node }
	InheritFrom struct{ node *Node }
	LetIn       struct{ node *Node }
	LegacyLet   struct{ node *Node }
	Lambda      struct{ node *Node }
	Pattern     struct{ node *Node }
	PatEntry    struct{ node *Node }
	PatBind     struct{ node *Node }
	Apply       struct{ node *Node }
	Select      struct{ node *Node }
	OrDefault   struct{ node *Node }
	HasAttr     struct{ node *Node }
	BinOp       struct{ node *Node }
	UnaryOp     struct{ node *Node }
	IfElse      struct{ node *Node }
	With        struct{ node *Node }
	Assert      struct{ node *Node }
)

func (x Root) Node() *Node        { return x.node }
func (x Error) Node() *Node       { return x.node }
func (x Ident) Node() *Node       { return x.node }
func (x Literal) Node() *Node     { return x.node }
func (x Str) Node() *Node         { return x.node }
func (x StrInterpol) Node() *Node { return x.node }
func (x Dynamic) Node() *Node     { return x.node }
func (x Paren) Node() *Node       { return x.node }
func (x List) Node() *Node        { return x.node }
func (x AttrSet) Node() *Node     { return x.node }
func (x Key) Node() *Node         { return x.node }
func (x KeyValue) Node() *Node    { return x.node }
func (x Inherit) Node() *Node     { return x.node }
func (x InheritFrom) Node() *Node { return x.node }
func (x LetIn) Node() *Node       { return x.node }
func (x LegacyLet) Node() *Node   { return x.node }
func (x Lambda) Node() *Node      { return x.node }
func (x Pattern) Node() *Node     { return x.node }
func (x PatEntry) Node() *Node    { return x.node }
func (x PatBind) Node() *Node     { return x.node }
func (x Apply) Node() *Node       { return x.node }
func (x Select) Node() *Node      { return x.node }
func (x OrDefault) Node() *Node   { return x.node }
func (x HasAttr) Node() *Node     { return x.node }
func (x BinOp) Node() *Node       { return x.node }
func (x UnaryOp) Node() *Node     { return x.node }
func (x IfElse) Node() *Node      { return x.node }
func (x With) Node() *Node        { return x.node }
func (x Assert) Node() *Node      { return x.node }

func (Root) typed()        {}
func (Error) typed()       {}
func (Ident) typed()       {}
func (Literal) typed()     {}
func (Str) typed()         {}
func (StrInterpol) typed() {}
func (Dynamic) typed()     {}
func (Paren) typed()       {}
func (List) typed()        {}
func (AttrSet) typed()     {}
func (Key) typed()         {}
func (KeyValue) typed()    {}
func (Inherit) typed()     {}
func (InheritFrom) typed() {}
func (LetIn) typed()       {}
func (LegacyLet) typed()   {}
func (Lambda) typed()      {}
func (Pattern) typed()     {}
func (PatEntry) typed()    {}
func (PatBind) typed()     {}
func (Apply) typed()       {}
func (Select) typed()      {}
func (OrDefault) typed()   {}
func (HasAttr) typed()     {}
func (BinOp) typed()       {}
func (UnaryOp) typed()     {}
func (IfElse) typed()      {}
func (With) typed()        {}
func (Assert) typed()      {}

// Expr returns the expression the file consists of.
func (x Root) Expr() (*Node, bool) { return x.node.FirstChild() }

// Name returns the identifier text.
func (x Ident) Name() string {
	if t, ok := x.node.FirstToken(); ok {
		return t.text
	}
	return ""
}

// Token returns the literal token.
func (x Literal) Token() (*Token, bool) { return x.node.FirstToken() }

// Parts returns the interpolations of the string in source order.
func (x Str) Parts() []StrInterpol {
	return childrenOf[StrInterpol](x.node)
}

// Expr returns the interpolated expression.
func (x StrInterpol) Expr() (*Node, bool) { return x.node.FirstChild() }

// Expr returns the expression computing the attribute name.
func (x Dynamic) Expr() (*Node, bool) { return x.node.FirstChild() }

// Inner returns the parenthesized expression.
func (x Paren) Inner() (*Node, bool) { return x.node.FirstChild() }

// Items returns the list elements.
func (x List) Items() []*Node { return x.node.Children() }

// An EntryHolder is a construct holding attribute entries: attribute sets
// and both forms of let.
type EntryHolder interface {
	Typed
	Entries() []KeyValue
	Inherits() []Inherit
}

var (
	_ EntryHolder = AttrSet{}
	_ EntryHolder = LetIn{}
	_ EntryHolder = LegacyLet{}
)

// Recursive reports whether the set is marked rec.
func (x AttrSet) Recursive() bool {
	_, ok := x.node.ChildToken(token.REC)
	return ok
}

func (x AttrSet) Entries() []KeyValue   { return childrenOf[KeyValue](x.node) }
func (x AttrSet) Inherits() []Inherit   { return childrenOf[Inherit](x.node) }
func (x LetIn) Entries() []KeyValue     { return childrenOf[KeyValue](x.node) }
func (x LetIn) Inherits() []Inherit     { return childrenOf[Inherit](x.node) }
func (x LegacyLet) Entries() []KeyValue { return childrenOf[KeyValue](x.node) }
func (x LegacyLet) Inherits() []Inherit { return childrenOf[Inherit](x.node) }

// Body returns the expression following in.
func (x LetIn) Body() (*Node, bool) { return x.node.childAfter(token.IN) }

// Path returns the segments of the key: Ident, Str or Dynamic nodes.
func (x Key) Path() []*Node { return x.node.Children() }

// Key returns the attribute path being assigned.
func (x KeyValue) Key() (Key, bool) {
	n, ok := x.node.FirstChild()
	if !ok {
		return Key{}, false
	}
	return As[Key](n)
}

// Value returns the expression following =.
func (x KeyValue) Value() (*Node, bool) { return x.node.childAfter(token.ASSIGN) }

// From returns the (e) part of inherit (e) a b;
func (x Inherit) From() (InheritFrom, bool) {
	n, ok := x.node.FirstChild()
	if !ok {
		return InheritFrom{}, false
	}
	return As[InheritFrom](n)
}

// Idents returns the inherited names.
func (x Inherit) Idents() []Ident { return childrenOf[Ident](x.node) }

// Expr returns the expression names are inherited from.
func (x InheritFrom) Expr() (*Node, bool) { return x.node.FirstChild() }

// Arg returns the parameter: an Ident or a Pattern node.
func (x Lambda) Arg() (*Node, bool) { return x.node.childBefore(token.COLON) }

// Body returns the function body.
func (x Lambda) Body() (*Node, bool) { return x.node.childAfter(token.COLON) }

// Entries returns the named fields of the pattern.
func (x Pattern) Entries() []PatEntry { return childrenOf[PatEntry](x.node) }

// Bind returns the alias bound with @, on either side of the pattern.
func (x Pattern) Bind() (PatBind, bool) {
	b := childrenOf[PatBind](x.node)
	if len(b) == 0 {
		return PatBind{}, false
	}
	return b[0], true
}

// Ellipsis reports whether the pattern accepts extra attributes.
func (x Pattern) Ellipsis() bool {
	_, ok := x.node.ChildToken(token.ELLIPSIS)
	return ok
}

// Name returns the field name.
func (x PatEntry) Name() (Ident, bool) {
	n, ok := x.node.FirstChild()
	if !ok {
		return Ident{}, false
	}
	return As[Ident](n)
}

// Default returns the expression following ?.
func (x PatEntry) Default() (*Node, bool) { return x.node.childAfter(token.QUESTION) }

// Name returns the alias.
func (x PatBind) Name() (Ident, bool) {
	n, ok := x.node.FirstChild()
	if !ok {
		return Ident{}, false
	}
	return As[Ident](n)
}

// Lambda returns the applied function.
func (x Apply) Lambda() (*Node, bool) { return nthChild(x.node, 0) }

// Value returns the argument.
func (x Apply) Value() (*Node, bool) { return nthChild(x.node, 1) }

// Set returns the expression being selected from.
func (x Select) Set() (*Node, bool) { return x.node.childBefore(token.PERIOD) }

// Index returns the selected attribute name: an Ident, Str or Dynamic node.
func (x Select) Index() (*Node, bool) { return x.node.childAfter(token.PERIOD) }

// Index returns the selection the default applies to.
func (x OrDefault) Index() (Select, bool) {
	n, ok := x.node.FirstChild()
	if !ok {
		return Select{}, false
	}
	return As[Select](n)
}

// Default returns the expression following or.
func (x OrDefault) Default() (*Node, bool) { return x.node.childAfter(token.OR) }

// Value returns the expression being tested.
func (x HasAttr) Value() (*Node, bool) { return x.node.childBefore(token.QUESTION) }

// Key returns the attribute path tested for.
func (x HasAttr) Key() (Key, bool) {
	n, ok := x.node.childAfter(token.QUESTION)
	if !ok {
		return Key{}, false
	}
	return As[Key](n)
}

// Operator returns the operator token kind.
func (x BinOp) Operator() token.Token { return operator(x.node) }

// Lhs returns the left operand.
func (x BinOp) Lhs() (*Node, bool) { return nthChild(x.node, 0) }

// Rhs returns the right operand.
func (x BinOp) Rhs() (*Node, bool) { return nthChild(x.node, 1) }

// Operator returns the operator token kind.
func (x UnaryOp) Operator() token.Token { return operator(x.node) }

// Value returns the operand.
func (x UnaryOp) Value() (*Node, bool) { return x.node.FirstChild() }

func (x IfElse) Condition() (*Node, bool) { return x.node.childAfter(token.IF) }
func (x IfElse) Body() (*Node, bool)      { return x.node.childAfter(token.THEN) }
func (x IfElse) ElseBody() (*Node, bool)  { return x.node.childAfter(token.ELSE) }

func (x With) Namespace() (*Node, bool) { return x.node.childAfter(token.WITH) }
func (x With) Body() (*Node, bool)      { return x.node.childAfter(token.SEMICOLON) }

func (x Assert) Condition() (*Node, bool) { return x.node.childAfter(token.ASSERT) }
func (x Assert) Body() (*Node, bool)      { return x.node.childAfter(token.SEMICOLON) }

func childrenOf[T Typed](n *Node) []T {
	var out []T
	for _, c := range n.children {
		if c, ok := c.(*Node); ok {
			if t, ok := As[T](c); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

func nthChild(n *Node, i int) (*Node, bool) {
	children := n.Children()
	if i >= len(children) {
		return nil, false
	}
	return children[i], true
}

func operator(n *Node) token.Token {
	for _, c := range n.children {
		if t, ok := c.(*Token); ok && t.kind.IsOperator() {
			return t.kind
		}
	}
	return token.ILLEGAL
}
