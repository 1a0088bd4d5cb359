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

package textpos

import (
	"testing"
	"unicode/utf8"

	"github.com/go-quicktest/qt"
	"go.lsp.dev/protocol"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestPositionToOffset(t *testing.T) {
	const text = "let\n  😀 = \"é\";\nin x\n"
	testCases := []struct {
		desc   string
		pos    protocol.Position
		offset int
		ok     bool
	}{
		{"start", pos(0, 0), 0, true},
		{"end of first line", pos(0, 3), 3, true},
		{"past end of first line", pos(0, 4), 0, false},
		{"second line", pos(1, 2), 6, true},
		{"after surrogate pair", pos(1, 4), 10, true},
		{"inside surrogate pair", pos(1, 3), 10, true},
		{"after two byte rune", pos(1, 9), 16, true},
		{"end of second line", pos(1, 11), 18, true},
		{"third line", pos(2, 3), 22, true},
		{"empty last line", pos(3, 0), 24, true},
		{"no such line", pos(4, 0), 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			offset, ok := PositionToOffset(text, tc.pos)
			qt.Assert(t, qt.Equals(ok, tc.ok))
			qt.Check(t, qt.Equals(offset, tc.offset))
		})
	}
}

func TestOffsetToPosition(t *testing.T) {
	const text = "a\n😀b\r\nc"
	testCases := []struct {
		offset int
		want   protocol.Position
	}{
		{0, pos(0, 0)},
		{1, pos(0, 1)},
		{2, pos(1, 0)},
		{6, pos(1, 2)},
		{7, pos(1, 3)},
		{8, pos(1, 4)},
		{9, pos(2, 0)},
		{10, pos(2, 1)},
	}
	for _, tc := range testCases {
		qt.Check(t, qt.Equals(OffsetToPosition(text, tc.offset), tc.want), qt.Commentf("offset %d", tc.offset))
	}
}

func TestOffsetToPositionOutOfRange(t *testing.T) {
	qt.Check(t, qt.PanicMatches(func() {
		OffsetToPosition("abc", 4)
	}, ".*out of range.*"))
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"x",
		"{ a = 1; }\n",
		"let\n\tß = ''\n  𝄞 ${x}\n'';\nin ß\n\n",
		"\r\n\r\n",
	}
	for _, text := range texts {
		for offset := 0; offset <= len(text); offset++ {
			if offset < len(text) && !utf8.RuneStart(text[offset]) {
				continue
			}
			p := OffsetToPosition(text, offset)
			got, ok := PositionToOffset(text, p)
			qt.Assert(t, qt.IsTrue(ok), qt.Commentf("text %q offset %d position %v", text, offset, p))
			qt.Check(t, qt.Equals(got, offset), qt.Commentf("text %q position %v", text, p))
		}
	}
}

func TestToRange(t *testing.T) {
	const text = "a\n😀 b"
	got := ToRange(text, syntax.TextRange{Start: 2, End: 7})
	qt.Check(t, qt.Equals(got, protocol.Range{Start: pos(1, 0), End: pos(1, 3)}))
}
