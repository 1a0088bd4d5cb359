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

// Package cache holds the parsed documents a protocol layer works on and
// answers navigation requests against them in protocol coordinates.
package cache

import (
	"sync"

	"go.lsp.dev/uri"

	"github.com/selaux/rnix-lsp/nix/parser"
)

// A Cache holds the open documents, keyed by URI. It is safe for
// concurrent use; the Files it returns are immutable.
type Cache struct {
	opts []parser.Option

	filesMutex sync.Mutex
	files      map[uri.URI]*File
}

// New creates an empty cache. The options are used for every parse.
func New(opts ...parser.Option) *Cache {
	return &Cache{
		opts:  opts,
		files: make(map[uri.URI]*File),
	}
}

// Open parses content and records it as the current version of the
// document at u, replacing any earlier version. Syntax errors do not
// prevent the File from being created; they are available through
// [File.Err].
func (c *Cache) Open(u uri.URI, content []byte) *File {
	f := newFile(u, content, c.opts...)
	c.filesMutex.Lock()
	c.files[u] = f
	c.filesMutex.Unlock()
	return f
}

// File returns the current version of the document at u.
func (c *Cache) File(u uri.URI) (*File, bool) {
	c.filesMutex.Lock()
	defer c.filesMutex.Unlock()
	f, ok := c.files[u]
	return f, ok
}

// Close forgets the document at u. If no such document exists, it is a
// noop.
func (c *Cache) Close(u uri.URI) {
	c.filesMutex.Lock()
	delete(c.files, u)
	c.filesMutex.Unlock()
}
