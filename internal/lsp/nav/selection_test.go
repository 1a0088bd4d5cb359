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
	"go.lsp.dev/protocol"

	"github.com/selaux/rnix-lsp/internal/lsp/nav"
	"github.com/selaux/rnix-lsp/nix/parser"
)

func rng(sl, sc, el, ec uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: sl, Character: sc},
		End:   protocol.Position{Line: el, Character: ec},
	}
}

// chain flattens a selection range into its ranges, innermost first.
func chain(sr *protocol.SelectionRange) []protocol.Range {
	var out []protocol.Range
	for ; sr != nil; sr = sr.Parent {
		out = append(out, sr.Range)
	}
	return out
}

func TestSelectionRangesAt(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		pos  protocol.Position
		want []protocol.Range
	}{{
		name: "Inside_Literal",
		src:  "{ x = 10; }",
		pos:  protocol.Position{Line: 0, Character: 7},
		want: []protocol.Range{
			rng(0, 6, 0, 8),  // 10
			rng(0, 2, 0, 9),  // x = 10;
			rng(0, 0, 0, 11), // the set, and the root with the same span
		},
	}, {
		name: "Left_Biased",
		src:  "{ x = 10; }",
		pos:  protocol.Position{Line: 0, Character: 6},
		want: []protocol.Range{
			rng(0, 2, 0, 9),
			rng(0, 0, 0, 11),
		},
	}, {
		name: "Root_Trivia",
		src:  "a\n",
		pos:  protocol.Position{Line: 0, Character: 0},
		want: []protocol.Range{
			rng(0, 0, 0, 1),
			rng(0, 0, 1, 0),
		},
	}, {
		name: "Multi_Line",
		src:  "let\n  a = [ 1 ];\nin a",
		pos:  protocol.Position{Line: 1, Character: 9},
		want: []protocol.Range{
			rng(1, 8, 1, 9),  // 1
			rng(1, 6, 1, 11), // [ 1 ]
			rng(1, 2, 1, 12), // a = [ 1 ];
			rng(0, 0, 2, 4),
		},
	}, {
		name: "Wide_Characters",
		src:  `{ s = "😀"; }`,
		pos:  protocol.Position{Line: 0, Character: 8},
		want: []protocol.Range{
			rng(0, 6, 0, 10),
			rng(0, 2, 0, 11),
			rng(0, 0, 0, 13),
		},
	}}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := parser.ParseFile("input", tc.src)
			qt.Assert(t, qt.IsNil(err))
			sr, ok := nav.SelectionRangesAt(root, tc.src, tc.pos)
			qt.Assert(t, qt.IsTrue(ok))
			qt.Check(t, qt.DeepEquals(chain(sr), tc.want))
		})
	}
}

func TestSelectionRangesAtNests(t *testing.T) {
	src := "let f = { a, b ? a.c or 1 }: f { a = b; }; in f"
	root, err := parser.ParseFile("input", src)
	qt.Assert(t, qt.IsNil(err))
	for i := range len(src) + 1 {
		pos := protocol.Position{Line: 0, Character: uint32(i)}
		sr, ok := nav.SelectionRangesAt(root, src, pos)
		qt.Assert(t, qt.IsTrue(ok))
		ranges := chain(sr)
		qt.Check(t, qt.Equals(ranges[len(ranges)-1], rng(0, 0, 0, uint32(len(src)))))
		for j := 1; j < len(ranges); j++ {
			inner, outer := ranges[j-1], ranges[j]
			qt.Check(t, qt.Not(qt.Equals(inner, outer)))
			qt.Check(t, qt.IsTrue(outer.Start.Character <= inner.Start.Character))
			qt.Check(t, qt.IsTrue(outer.End.Character >= inner.End.Character))
		}
	}
}

func TestSelectionRangesAtAbsent(t *testing.T) {
	src := "{ x = 1; }"
	root, err := parser.ParseFile("input", src)
	qt.Assert(t, qt.IsNil(err))
	for _, pos := range []protocol.Position{
		{Line: 1, Character: 0},
		{Line: 0, Character: 11},
	} {
		sr, ok := nav.SelectionRangesAt(root, src, pos)
		qt.Check(t, qt.IsFalse(ok))
		qt.Check(t, qt.IsNil(sr))
	}

	// An empty file is a syntax error but still yields a tree.
	empty, _ := parser.ParseFile("input", "")
	_, ok := nav.SelectionRangesAt(empty, "", protocol.Position{})
	qt.Check(t, qt.IsFalse(ok))
}
