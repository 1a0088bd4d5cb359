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
	"slices"
	"strings"

	"go.lsp.dev/uri"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

// Definition returns the binding of the identifier at offset.
//
// A plain reference is looked up in the scope at the identifier. For an
// identifier reached through a path, as b in a.b or in a.b = e, each
// element of the path is looked up in turn and must be bound to an
// attribute set literal, whose entries then form the scope for the next
// element.
func Definition(file uri.URI, root *syntax.Node, offset int) (*Var, bool) {
	info, ok := IdentifierAt(root, offset)
	if !ok {
		return nil, false
	}
	scope, ok := scopeFor(file, info)
	if !ok {
		return nil, false
	}
	v, ok := scope[info.Ident.Name()]
	return v, ok
}

// Complete returns the sorted names, visible where Definition would look
// up the identifier at offset, that start with that identifier's name.
func Complete(file uri.URI, root *syntax.Node, offset int) ([]string, bool) {
	info, ok := IdentifierAt(root, offset)
	if !ok {
		return nil, false
	}
	scope, ok := scopeFor(file, info)
	if !ok {
		return nil, false
	}
	prefix := info.Ident.Name()
	var names []string
	for name := range scope {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, true
}

func scopeFor(file uri.URI, info CursorInfo) (Scope, bool) {
	scope := ScopeAt(file, info.Ident.Node())
	for _, name := range info.Path {
		v, ok := scope[name]
		if !ok || v.Value == nil {
			return nil, false
		}
		set, ok := syntax.As[syntax.AttrSet](v.Value)
		if !ok {
			return nil, false
		}
		scope = make(Scope)
		scope.populate(file, set)
	}
	return scope, true
}
