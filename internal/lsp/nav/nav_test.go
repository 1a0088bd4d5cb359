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

package nav_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/rogpeppe/go-internal/txtar"
	"go.lsp.dev/uri"

	"github.com/selaux/rnix-lsp/nix/parser"
	"github.com/selaux/rnix-lsp/nix/syntax"
)

// testFile is a parsed file from a test archive.
type testFile struct {
	uri     uri.URI
	content string
	root    *syntax.Node
}

// parseArchive parses the single file of a txtar archive. Syntax errors
// are allowed; the tree always covers the whole file.
func parseArchive(t *testing.T, archive string) testFile {
	t.Helper()
	ar := txtar.Parse([]byte(archive))
	qt.Assert(t, qt.HasLen(ar.Files, 1))
	fh := ar.Files[0]
	root, _ := parser.ParseFile(fh.Name, fh.Data)
	qt.Assert(t, qt.IsNotNil(root))
	return testFile{
		uri:     uri.File("/test/" + fh.Name),
		content: string(fh.Data),
		root:    root,
	}
}

type position struct {
	line   int
	n      int
	str    string
	offset int
}

// Convenience constructor to make a new [position] with the given
// line number (1-based), for the n-th (1-based) occurrence of str.
func ln(i, n int, str string) *position {
	return &position{
		line: i,
		n:    n,
		str:  str,
	}
}

func (p *position) determineOffset(content string) {
	lines := strings.SplitAfter(content, "\n")
	start := 0
	for _, l := range lines[:p.line-1] {
		start += len(l)
	}
	line := lines[p.line-1]
	n := p.n
	for i := range line {
		if strings.HasPrefix(line[i:], p.str) {
			n--
			if n == 0 {
				p.offset = start + i
				return
			}
		}
	}
	panic("Failed to determine offset")
}
