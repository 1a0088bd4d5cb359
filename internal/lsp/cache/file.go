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

package cache

import (
	"net/url"
	"path/filepath"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/selaux/rnix-lsp/internal/lsp/nav"
	"github.com/selaux/rnix-lsp/internal/lsp/textpos"
	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/parser"
	"github.com/selaux/rnix-lsp/nix/syntax"
)

// File models a single parsed Nix document. A File is never modified
// after it is created; a new version of the document is a new File.
type File struct {
	uri     uri.URI
	content string
	syntax  *syntax.Node
	err     error

	symbols func() []protocol.DocumentSymbol
}

func newFile(u uri.URI, content []byte, opts ...parser.Option) *File {
	name := string(u)
	if path, ok := URIPath(u); ok {
		name = path
	}
	root, err := parser.ParseFile(name, content, opts...)
	f := &File{
		uri:     u,
		content: string(content),
		syntax:  root,
		err:     err,
	}
	f.symbols = sync.OnceValue(f.documentSymbols)
	return f
}

// URI returns the identity of the document.
func (f *File) URI() uri.URI { return f.uri }

// Content returns the source text the File was parsed from.
func (f *File) Content() string { return f.content }

// Syntax returns the root of the syntax tree. It is never nil.
func (f *File) Syntax() *syntax.Node { return f.syntax }

// Err returns the syntax errors of the document as an [errors.List], or
// nil if it parsed cleanly.
func (f *File) Err() error { return f.err }

// Offset converts a protocol position into a byte offset.
func (f *File) Offset(pos protocol.Position) (int, bool) {
	return textpos.PositionToOffset(f.content, pos)
}

// Position converts a byte offset into a protocol position. The offset
// must not lie past the end of the content.
func (f *File) Position(offset int) protocol.Position {
	return textpos.OffsetToPosition(f.content, offset)
}

// Range converts a span of the syntax tree into a protocol range.
func (f *File) Range(r syntax.TextRange) protocol.Range {
	return textpos.ToRange(f.content, r)
}

// IdentifierAt returns the identifier under the cursor at pos.
func (f *File) IdentifierAt(pos protocol.Position) (nav.CursorInfo, bool) {
	offset, ok := f.Offset(pos)
	if !ok {
		return nav.CursorInfo{}, false
	}
	return nav.IdentifierAt(f.syntax, offset)
}

// ScopeAt returns the bindings visible at pos. On a token boundary the
// token to the left of pos decides.
func (f *File) ScopeAt(pos protocol.Position) (nav.Scope, bool) {
	offset, ok := f.Offset(pos)
	if !ok {
		return nil, false
	}
	tok := f.syntax.TokenAtOffset(offset).LeftBiased()
	if tok == nil {
		return nil, false
	}
	return nav.ScopeAt(f.uri, tok.Parent()), true
}

// SelectionRanges implements the LSP SelectionRange functionality. The
// result holds one entry per position; a position without any enclosing
// range yields an empty range at that position.
func (f *File) SelectionRanges(positions []protocol.Position) []protocol.SelectionRange {
	ranges := make([]protocol.SelectionRange, len(positions))
	for i, pos := range positions {
		if sr, ok := nav.SelectionRangesAt(f.syntax, f.content, pos); ok {
			ranges[i] = *sr
		} else {
			ranges[i] = protocol.SelectionRange{Range: protocol.Range{Start: pos, End: pos}}
		}
	}
	return ranges
}

// Definition implements the LSP Definition functionality: the location of
// the name that binds the identifier at pos.
func (f *File) Definition(pos protocol.Position) (protocol.Location, bool) {
	offset, ok := f.Offset(pos)
	if !ok {
		return protocol.Location{}, false
	}
	v, ok := nav.Definition(f.uri, f.syntax, offset)
	if !ok {
		return protocol.Location{}, false
	}
	return protocol.Location{
		URI:   protocol.DocumentURI(v.File),
		Range: f.Range(v.Key.TextRange()),
	}, true
}

// Completion implements the LSP Completion functionality for names: every
// binding visible at the identifier at pos that extends it.
func (f *File) Completion(pos protocol.Position) []protocol.CompletionItem {
	offset, ok := f.Offset(pos)
	if !ok {
		return nil
	}
	names, ok := nav.Complete(f.uri, f.syntax, offset)
	if !ok {
		return nil
	}
	items := make([]protocol.CompletionItem, len(names))
	for i, name := range names {
		items[i] = protocol.CompletionItem{
			Label: name,
			Kind:  protocol.CompletionItemKindVariable,
		}
	}
	return items
}

// DocumentSymbols implements the LSP DocumentSymbols functionality. The
// symbols are calculated on first use.
func (f *File) DocumentSymbols() []protocol.DocumentSymbol {
	return f.symbols()
}

// documentSymbols builds the hierarchy of bindings: every entry of an
// attribute set or let block, nested as the blocks are nested.
func (f *File) documentSymbols() []protocol.DocumentSymbol {
	var walk func(n *syntax.Node) []protocol.DocumentSymbol
	walk = func(n *syntax.Node) []protocol.DocumentSymbol {
		var syms []protocol.DocumentSymbol
		for _, child := range n.Children() {
			entry, ok := syntax.As[syntax.KeyValue](child)
			if !ok {
				syms = append(syms, walk(child)...)
				continue
			}
			key, ok := entry.Key()
			if !ok {
				continue
			}
			kind := protocol.SymbolKindField
			if n.Kind() != syntax.KindAttrSet {
				kind = protocol.SymbolKindVariable
			}
			keyNode := key.Node()
			syms = append(syms, protocol.DocumentSymbol{
				Name:           keyNode.Text(),
				Kind:           kind,
				Range:          f.Range(child.TextRange()),
				SelectionRange: f.Range(keyNode.TextRange()),
				Children:       walk(child),
			})
		}
		return syms
	}
	return walk(f.syntax)
}

// tokenRange returns the range of the token at offset, or the range of
// the whole file when no token touches offset. Positions of syntax errors
// are mapped through it so that a diagnostic covers the offending token.
func (f *File) tokenRange(offset int) syntax.TextRange {
	if tok := f.syntax.TokenAtOffset(offset).RightBiased(); tok != nil {
		return tok.TextRange()
	}
	return f.syntax.TextRange()
}

// Diagnostics converts the syntax errors of the document into protocol
// diagnostics. It never returns nil.
func (f *File) Diagnostics() []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	for _, e := range errors.Errors(f.err) {
		errPos := e.Position()
		if !errPos.IsValid() {
			continue
		}
		diags = append(diags, protocol.Diagnostic{
			Range:    f.Range(f.tokenRange(errPos.Offset)),
			Severity: protocol.DiagnosticSeverityError,
			Source:   "nix",
			Message:  e.Error(),
		})
	}
	return diags
}

// URIPath returns the file system path of a file URI. Only URIs with the
// file scheme and no host have a path.
func URIPath(u uri.URI) (string, bool) {
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Scheme != uri.FileScheme || parsed.Host != "" {
		return "", false
	}
	return filepath.FromSlash(parsed.Path), true
}
