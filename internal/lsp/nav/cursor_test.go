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
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/selaux/rnix-lsp/internal/lsp/nav"
)

func TestIdentifierAt(t *testing.T) {
	type want struct {
		name string
		path []string
	}
	testCases := []struct {
		name         string
		archive      string
		expectations map[*position]*want
	}{
		{
			name: "Selection_Chain",
			archive: `-- a.nix --
a.b.c
`,
			expectations: map[*position]*want{
				ln(1, 1, "a"): {"a", nil},
				ln(1, 1, "b"): {"b", []string{"a"}},
				ln(1, 1, "c"): {"c", []string{"a", "b"}},
			},
		},
		{
			name: "Selection_With_Default",
			archive: `-- a.nix --
x.y or z
`,
			expectations: map[*position]*want{
				ln(1, 1, "y"): {"y", []string{"x"}},
				ln(1, 1, "z"): {"z", nil},
			},
		},
		{
			name: "Key_Path",
			archive: `-- a.nix --
{ a.b.c = 1; }
`,
			expectations: map[*position]*want{
				ln(1, 1, "a"): {"a", nil},
				ln(1, 1, "b"): {"b", []string{"a"}},
				ln(1, 1, "c"): {"c", []string{"a", "b"}},
			},
		},
		{
			name: "Key_Path_Non_Ident_Segment",
			archive: `-- a.nix --
{ a."b".c = 1; }
`,
			expectations: map[*position]*want{
				ln(1, 1, "a"): {"a", nil},
				ln(1, 1, "c"): nil,
			},
		},
		{
			name: "Selection_Non_Ident_Segment",
			archive: `-- a.nix --
x.${y}.z
`,
			expectations: map[*position]*want{
				ln(1, 1, "x"): {"x", nil},
				ln(1, 1, "y"): {"y", nil},
				ln(1, 1, "z"): nil,
			},
		},
		{
			name: "Selection_Non_Ident_Base",
			archive: `-- a.nix --
(x).y
`,
			expectations: map[*position]*want{
				ln(1, 1, "x"): {"x", nil},
				ln(1, 1, "y"): nil,
			},
		},
		{
			name: "Plain_References",
			archive: `-- a.nix --
f  a
`,
			expectations: map[*position]*want{
				ln(1, 1, "f"):  {"f", nil},
				ln(1, 1, "a"):  {"a", nil},
				ln(1, 1, "  "): {"f", nil},
				ln(1, 2, " "):  nil,
			},
		},
		{
			name: "Token_Boundaries",
			archive: `-- a.nix --
a+b
`,
			expectations: map[*position]*want{
				ln(1, 1, "+"): {"a", nil},
				ln(1, 1, "b"): {"b", nil},
			},
		},
		{
			name: "Not_An_Identifier",
			archive: `-- a.nix --
[ 1 ]
`,
			expectations: map[*position]*want{
				ln(1, 1, "1"): nil,
				ln(1, 1, "["): nil,
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := parseArchive(t, tc.archive)
			for pos, want := range tc.expectations {
				pos.determineOffset(f.content)
				info, ok := nav.IdentifierAt(f.root, pos.offset)
				if want == nil {
					qt.Check(t, qt.IsFalse(ok), qt.Commentf("offset %d", pos.offset))
					continue
				}
				qt.Assert(t, qt.IsTrue(ok), qt.Commentf("offset %d", pos.offset))
				qt.Check(t, qt.Equals(info.Ident.Name(), want.name))
				qt.Check(t, qt.CmpEquals(info.Path, want.path, cmpopts.EquateEmpty()))
			}
		})
	}
}

func TestIdentifierAtOutsideTree(t *testing.T) {
	f := parseArchive(t, `-- a.nix --
a
`)
	_, ok := nav.IdentifierAt(f.root, len(f.content)+1)
	qt.Check(t, qt.IsFalse(ok))
	_, ok = nav.IdentifierAt(f.root, -1)
	qt.Check(t, qt.IsFalse(ok))
}
