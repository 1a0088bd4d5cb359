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

// A Builder assembles a tree bottom-up from a stream of tokens. Nodes are
// opened with StartNode and closed with FinishNode; StartNodeAt wraps
// elements added since a Checkpoint, which lets a parser decide the kind
// of a node (such as a binary operation) after its first operand was
// built.
type Builder struct {
	offset int
	stack  []frame
}

type frame struct {
	kind     Kind
	children []Element
}

// A Checkpoint marks a position in the children of the currently open node.
type Checkpoint struct {
	depth int
	index int
}

// NewBuilder returns a Builder with the root node open.
func NewBuilder() *Builder {
	return &Builder{stack: []frame{{kind: KindRoot}}}
}

// Token appends a token with the given kind and source text to the open
// node. Tokens must be added in source order.
func (b *Builder) Token(kind token.Token, text string) {
	t := &Token{kind: kind, text: text, offset: b.offset}
	b.offset += len(text)
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, t)
}

// StartNode opens a new node of the given kind as a child of the open node.
func (b *Builder) StartNode(kind Kind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// Checkpoint returns a marker for the current end of the open node.
func (b *Builder) Checkpoint() Checkpoint {
	top := b.stack[len(b.stack)-1]
	return Checkpoint{depth: len(b.stack), index: len(top.children)}
}

// StartNodeAt opens a new node of the given kind that adopts all children
// added to the open node since cp was taken.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	if cp.depth != len(b.stack) {
		panic("syntax: checkpoint used at a different depth")
	}
	top := &b.stack[len(b.stack)-1]
	adopted := append([]Element(nil), top.children[cp.index:]...)
	top.children = top.children[:cp.index]
	b.stack = append(b.stack, frame{kind: kind, children: adopted})
}

// FinishNode closes the open node. A node without any tokens is dropped.
func (b *Builder) FinishNode() {
	if len(b.stack) < 2 {
		panic("syntax: FinishNode without matching StartNode")
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n, ok := newNode(f)
	if !ok {
		return
	}
	top := &b.stack[len(b.stack)-1]
	top.children = append(top.children, n)
}

// Finish closes the root node and returns it. The Builder must not be
// used afterwards.
func (b *Builder) Finish() *Node {
	if len(b.stack) != 1 {
		panic("syntax: Finish with unclosed nodes")
	}
	root, ok := newNode(b.stack[0])
	if !ok {
		root = &Node{kind: KindRoot}
	}
	b.stack = nil
	return root
}

func newNode(f frame) (*Node, bool) {
	if len(f.children) == 0 {
		return nil, false
	}
	n := &Node{
		kind:     f.kind,
		children: f.children,
		rng: TextRange{
			Start: f.children[0].TextRange().Start,
			End:   f.children[len(f.children)-1].TextRange().End,
		},
	}
	for _, c := range n.children {
		switch c := c.(type) {
		case *Node:
			c.parent = n
		case *Token:
			c.parent = n
		}
	}
	return n, true
}
