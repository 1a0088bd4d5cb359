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

// Package textpos converts between LSP positions and byte offsets.
//
// A protocol.Position counts lines split on '\n' and characters in UTF-16
// code units, while syntax trees address the UTF-8 source by byte offset.
// This package is the only place the two meet.
package textpos

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

// PositionToOffset returns the byte offset of pos in text. It reports
// false if text has no line pos.Line or that line holds fewer than
// pos.Character UTF-16 units. A character that pos.Character would split
// in half, such as the second unit of a surrogate pair, is consumed whole.
func PositionToOffset(text string, pos protocol.Position) (int, bool) {
	start := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return 0, false
		}
		start += i + 1
	}
	line := text[start:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	off := 0
	for units := uint32(0); units < pos.Character; {
		if off >= len(line) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(line[off:])
		units += uint32(utf16.RuneLen(r))
		off += size
	}
	return start + off, true
}

// OffsetToPosition returns the position of the byte offset in text.
//
// The offset is not checked: it must lie within [0, len(text)], and
// OffsetToPosition panics otherwise. An offset inside a multi-byte
// character yields a column that matches no real position.
func OffsetToPosition(text string, offset int) protocol.Position {
	prefix := text[:offset]
	start := strings.LastIndexByte(prefix, '\n') + 1
	return protocol.Position{
		Line:      uint32(strings.Count(prefix[:start], "\n")),
		Character: uint32(utf16Len(prefix[start:])),
	}
}

// ToRange converts a byte range of text to a protocol range.
func ToRange(text string, r syntax.TextRange) protocol.Range {
	return protocol.Range{
		Start: OffsetToPosition(text, r.Start),
		End:   OffsetToPosition(text, r.End),
	}
}

// utf16Len returns the number of UTF-16 units needed to encode s. Invalid
// UTF-8 bytes count as one unit each, as they decode to U+FFFD.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
