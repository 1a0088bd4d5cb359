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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
)

func newSelectionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection FILE LINE:CHAR",
		Short: "list the ranges enclosing a position",
		Long: `Selection prints the ranges of the syntax nodes enclosing LINE:CHAR,
innermost first, as an editor uses them to expand a selection step by
step. Nodes spanning the same range are listed once.

With --format=json or yaml the result is an LSP SelectionRange.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runSelection),
	}
	return cmd
}

func runSelection(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	sr := f.SelectionRanges([]protocol.Position{pos})[0]
	return cmd.emit(sr, func(w io.Writer) error {
		for r := &sr; r != nil; r = r.Parent {
			if _, err := fmt.Fprintln(w, formatRange(r.Range)); err != nil {
				return err
			}
		}
		return nil
	})
}
