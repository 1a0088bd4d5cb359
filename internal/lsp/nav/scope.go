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

package nav

import (
	"go.lsp.dev/uri"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

// A Var is the site where a name is bound.
type Var struct {
	// File identifies the file holding the binding. All Vars of one
	// ScopeAt call share the same value.
	File uri.URI

	// Set is the node introducing the scope: a let, a recursive
	// attribute set, or a lambda.
	Set *syntax.Node

	// Key is the identifier node of the bound name.
	Key *syntax.Node

	// Value is the bound expression. It is nil for function parameters,
	// and only for those.
	Value *syntax.Node
}

// Scope maps each visible name to the binding that is in effect.
type Scope map[string]*Var

// ScopeAt returns the names visible at node. It walks from node up to the
// root; the first binding found for a name wins, so inner bindings shadow
// outer ones. Entries that are too malformed to bind a name are skipped.
func ScopeAt(file uri.URI, node *syntax.Node) Scope {
	scope := make(Scope)
	for n := range node.Ancestors() {
		switch x := syntax.Cast(n).(type) {
		case syntax.LetIn:
			scope.populate(file, x)
		case syntax.LegacyLet:
			scope.populate(file, x)
		case syntax.AttrSet:
			if x.Recursive() {
				scope.populate(file, x)
			}
		case syntax.Lambda:
			scope.addParams(file, x)
		}
	}
	return scope
}

// populate binds the first segment of each entry's key to the entry's
// value. Inherited names are not bound as they carry no value node.
func (s Scope) populate(file uri.URI, set syntax.EntryHolder) {
	for _, entry := range set.Entries() {
		key, ok := entry.Key()
		if !ok {
			continue
		}
		path := key.Path()
		if len(path) == 0 {
			continue
		}
		ident, ok := syntax.As[syntax.Ident](path[0])
		if !ok {
			continue
		}
		if _, ok := s[ident.Name()]; ok {
			continue
		}
		value, ok := entry.Value()
		if !ok {
			continue
		}
		s[ident.Name()] = &Var{
			File:  file,
			Set:   set.Node(),
			Key:   ident.Node(),
			Value: value,
		}
	}
}

func (s Scope) addParams(file uri.URI, lambda syntax.Lambda) {
	arg, ok := lambda.Arg()
	if !ok {
		return
	}
	switch x := syntax.Cast(arg).(type) {
	case syntax.Ident:
		s.addParam(file, lambda, x)
	case syntax.Pattern:
		for _, entry := range x.Entries() {
			if name, ok := entry.Name(); ok {
				s.addParam(file, lambda, name)
			}
		}
		if bind, ok := x.Bind(); ok {
			if name, ok := bind.Name(); ok {
				s.addParam(file, lambda, name)
			}
		}
	}
}

func (s Scope) addParam(file uri.URI, lambda syntax.Lambda, ident syntax.Ident) {
	if _, ok := s[ident.Name()]; ok {
		return
	}
	s[ident.Name()] = &Var{
		File: file,
		Set:  lambda.Node(),
		Key:  ident.Node(),
	}
}
