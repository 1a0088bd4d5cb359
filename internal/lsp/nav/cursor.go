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

// Package nav answers the navigation questions an editor asks about a
// Nix file: which identifier is under the cursor and through which
// attribute path it is reached, which bindings are visible at a node, and
// which ranges enclose a position.
//
// All functions are pure functions of an immutable syntax tree and hold no
// state between calls, so they may be called concurrently on one tree.
// Absence is reported with a false result and never as an error.
package nav

import (
	"slices"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

// CursorInfo describes the identifier under the cursor.
type CursorInfo struct {
	// Path holds the names leading to Ident, outermost first. For a.b.c
	// with the cursor on c it is [a b]. Ident itself is never part of
	// Path, and Path is empty for a plain reference.
	Path []string

	Ident syntax.Ident
}

// IdentifierAt returns the identifier at the byte offset in the tree
// rooted at root, together with the attribute path or selection chain
// leading to it. When the offset sits between two tokens the left one is
// preferred if it belongs to an identifier.
func IdentifierAt(root *syntax.Node, offset int) (CursorInfo, bool) {
	ident, ok := identAt(root, offset)
	if !ok {
		return CursorInfo{}, false
	}
	parent := ident.Node().Parent()
	if parent == nil {
		return CursorInfo{Ident: ident}, true
	}

	switch p := syntax.Cast(parent).(type) {
	case syntax.Key:
		var path []string
		for _, seg := range p.Path() {
			if seg == ident.Node() {
				return CursorInfo{Path: path, Ident: ident}, true
			}
			name, ok := syntax.As[syntax.Ident](seg)
			if !ok {
				return CursorInfo{}, false
			}
			path = append(path, name.Name())
		}
		panic("nav: identifier at cursor is not a segment of its key")

	case syntax.Select:
		path, ok := selectPath(p, ident)
		if !ok {
			return CursorInfo{}, false
		}
		return CursorInfo{Path: path, Ident: ident}, true
	}
	return CursorInfo{Ident: ident}, true
}

func identAt(root *syntax.Node, offset int) (syntax.Ident, bool) {
	at := root.TokenAtOffset(offset)
	if at.None() {
		return syntax.Ident{}, false
	}
	if left, right, ok := at.Between(); ok {
		if ident, ok := syntax.As[syntax.Ident](left.Parent()); ok {
			return ident, true
		}
		return syntax.As[syntax.Ident](right.Parent())
	}
	tok, _ := at.Single()
	return syntax.As[syntax.Ident](tok.Parent())
}

// selectPath walks from the selection directly holding ident down its
// chain of nested selections to the base expression. Only identifier
// names qualify; any other segment makes the whole path unresolvable.
func selectPath(sel syntax.Select, ident syntax.Ident) ([]string, bool) {
	var rev []string // innermost first
	for {
		set, ok := sel.Set()
		if !ok {
			return nil, false
		}
		inner, ok := syntax.As[syntax.Select](set)
		if !ok {
			break
		}
		index, ok := inner.Index()
		if !ok {
			return nil, false
		}
		name, ok := syntax.As[syntax.Ident](index)
		if !ok {
			return nil, false
		}
		rev = append(rev, name.Name())
		sel = inner
	}

	set, _ := sel.Set()
	if set != ident.Node() {
		// In a.b with the cursor on a, a is the base and not a segment.
		base, ok := syntax.As[syntax.Ident](set)
		if !ok {
			return nil, false
		}
		rev = append(rev, base.Name())
	}
	slices.Reverse(rev)
	return rev, true
}
