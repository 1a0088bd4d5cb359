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
	"go.lsp.dev/protocol"

	"github.com/selaux/rnix-lsp/internal/lsp/textpos"
	"github.com/selaux/rnix-lsp/nix/syntax"
)

// SelectionRangesAt returns the ranges of the nodes enclosing pos,
// innermost first and linked through Parent. Nodes spanning the same
// range as the previous one are skipped. On a token boundary the token to
// the left of pos is used.
func SelectionRangesAt(root *syntax.Node, text string, pos protocol.Position) (*protocol.SelectionRange, bool) {
	offset, ok := textpos.PositionToOffset(text, pos)
	if !ok {
		return nil, false
	}
	tok := root.TokenAtOffset(offset).LeftBiased()
	if tok == nil {
		return nil, false
	}

	var first *protocol.SelectionRange
	link := &first
	var last syntax.TextRange
	for n := range tok.Parent().Ancestors() {
		r := n.TextRange()
		if first != nil && r == last {
			continue
		}
		sr := &protocol.SelectionRange{Range: textpos.ToRange(text, r)}
		*link = sr
		link = &sr.Parent
		last = r
	}
	return first, first != nil
}
