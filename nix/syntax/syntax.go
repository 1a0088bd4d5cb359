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

// Package syntax declares the concrete syntax tree for Nix source files.
//
// The tree is lossless: every byte of the source, including whitespace and
// comments, is held by exactly one Token, and Tokens are the leaves of a
// tree of Nodes. Trees are immutable once built and may be shared between
// goroutines. A Node is a handle: copying the pointer is cheap and all
// handles to the same node compare equal.
package syntax

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/selaux/rnix-lsp/nix/token"
)

// TextRange is a half-open byte range [Start, End) into the source.
type TextRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset lies within [Start, End).
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsInclusive reports whether offset lies within [Start, End].
func (r TextRange) ContainsInclusive(offset int) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange reports whether other lies entirely within r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// An Element is either a *Node or a *Token.
type Element interface {
	TextRange() TextRange
	Parent() *Node
	element()
}

func (*Node) element()  {}
func (*Token) element() {}

// A Token is a leaf of the tree holding the exact source text of one
// lexical unit.
type Token struct {
	kind   token.Token
	text   string
	offset int
	parent *Node
}

// Kind returns the lexical kind of t.
func (t *Token) Kind() token.Token { return t.kind }

// Text returns the source text of t.
func (t *Token) Text() string { return t.text }

// TextRange returns the byte range of t in the source.
func (t *Token) TextRange() TextRange {
	return TextRange{t.offset, t.offset + len(t.text)}
}

// Parent returns the node directly containing t.
func (t *Token) Parent() *Node { return t.parent }

func (t *Token) String() string {
	return fmt.Sprintf("%v@%v %q", t.kind, t.TextRange(), t.text)
}

// A Node is an interior node of the tree.
type Node struct {
	kind     Kind
	rng      TextRange
	parent   *Node
	children []Element
}

// Kind returns the syntactic kind of n.
func (n *Node) Kind() Kind { return n.kind }

// TextRange returns the byte range of n in the source.
func (n *Node) TextRange() TextRange { return n.rng }

// Parent returns the node containing n, or nil if n is the root.
func (n *Node) Parent() *Node { return n.parent }

// Ancestors returns a sequence of n, its parent, its grandparent and so on
// up to and including the root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for p := n; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// Elements returns the direct children of n, nodes and tokens, in source
// order.
func (n *Node) Elements() []Element {
	return slices.Clone(n.children)
}

// Children returns the direct child nodes of n in source order.
func (n *Node) Children() []*Node {
	var nodes []*Node
	for _, c := range n.children {
		if c, ok := c.(*Node); ok {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// FirstChild returns the first direct child node of n, if any.
func (n *Node) FirstChild() (*Node, bool) {
	for _, c := range n.children {
		if c, ok := c.(*Node); ok {
			return c, true
		}
	}
	return nil, false
}

// ChildToken returns the first direct child token of n of the given kind.
func (n *Node) ChildToken(kind token.Token) (*Token, bool) {
	for _, c := range n.children {
		if t, ok := c.(*Token); ok && t.kind == kind {
			return t, true
		}
	}
	return nil, false
}

// childAfter returns the first child node following the first direct child
// token of the given kind.
func (n *Node) childAfter(kind token.Token) (*Node, bool) {
	seen := false
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			if c.kind == kind {
				seen = true
			}
		case *Node:
			if seen {
				return c, true
			}
		}
	}
	return nil, false
}

// childBefore returns the last child node preceding the first direct child
// token of the given kind.
func (n *Node) childBefore(kind token.Token) (*Node, bool) {
	var last *Node
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			if c.kind == kind {
				return last, last != nil
			}
		case *Node:
			last = c
		}
	}
	return nil, false
}

// FirstToken returns the first significant (non-trivia) token of n.
func (n *Node) FirstToken() (*Token, bool) {
	for t := range n.Tokens() {
		if !t.kind.IsTrivia() {
			return t, true
		}
	}
	return nil, false
}

// Tokens returns all tokens below n in source order, trivia included.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for _, c := range n.children {
		switch c := c.(type) {
		case *Token:
			if !yield(c) {
				return false
			}
		case *Node:
			if !c.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// Text returns the source text covered by n.
func (n *Node) Text() string {
	var sb strings.Builder
	for t := range n.Tokens() {
		sb.WriteString(t.text)
	}
	return sb.String()
}

func (n *Node) String() string {
	return fmt.Sprintf("%v@%v", n.kind, n.rng)
}

// TokenAtOffset describes the tokens touching a byte offset: none, a single
// token, or the two tokens either side of a token boundary.
type TokenAtOffset struct {
	left, right *Token
}

// None reports whether no token touches the offset.
func (t TokenAtOffset) None() bool { return t.left == nil }

// Single returns the token touching the offset when there is exactly one.
func (t TokenAtOffset) Single() (*Token, bool) {
	return t.left, t.left != nil && t.right == nil
}

// Between returns the tokens ending and starting at the offset when it sits
// on a boundary between two tokens.
func (t TokenAtOffset) Between() (left, right *Token, ok bool) {
	return t.left, t.right, t.right != nil
}

// LeftBiased returns the token touching the offset, preferring the one to
// the left on a boundary. It returns nil if there is none.
func (t TokenAtOffset) LeftBiased() *Token { return t.left }

// RightBiased returns the token touching the offset, preferring the one to
// the right on a boundary. It returns nil if there is none.
func (t TokenAtOffset) RightBiased() *Token {
	if t.right != nil {
		return t.right
	}
	return t.left
}

// TokenAtOffset finds the tokens below n whose range touches offset,
// counting both ends of a token as touching.
func (n *Node) TokenAtOffset(offset int) TokenAtOffset {
	if !n.rng.ContainsInclusive(offset) {
		return TokenAtOffset{}
	}
	toks := n.tokensAt(offset, make([]*Token, 0, 2))
	switch len(toks) {
	case 0:
		return TokenAtOffset{}
	case 1:
		return TokenAtOffset{left: toks[0]}
	}
	return TokenAtOffset{left: toks[0], right: toks[len(toks)-1]}
}

func (n *Node) tokensAt(offset int, out []*Token) []*Token {
	for _, c := range n.children {
		r := c.TextRange()
		if r.Start > offset {
			break
		}
		if r.End < offset {
			continue
		}
		switch c := c.(type) {
		case *Token:
			out = append(out, c)
		case *Node:
			out = c.tokensAt(offset, out)
		}
	}
	return out
}

// CoveringNode returns the innermost node whose range contains r.
func (n *Node) CoveringNode(r TextRange) *Node {
	cur := n
	for {
		next := (*Node)(nil)
		for _, c := range cur.children {
			if c, ok := c.(*Node); ok && c.rng.ContainsRange(r) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// Fprint writes an indented dump of the tree rooted at n to w, one element
// per line.
func Fprint(w io.Writer, n *Node) error {
	return fprint(w, n, 0)
}

func fprint(w io.Writer, n *Node, depth int) error {
	if _, err := fmt.Fprintf(w, "%*s%v\n", 2*depth, "", n); err != nil {
		return err
	}
	for _, c := range n.children {
		switch c := c.(type) {
		case *Node:
			if err := fprint(w, c, depth+1); err != nil {
				return err
			}
		case *Token:
			if _, err := fmt.Fprintf(w, "%*s%v\n", 2*depth+2, "", c); err != nil {
				return err
			}
		}
	}
	return nil
}
