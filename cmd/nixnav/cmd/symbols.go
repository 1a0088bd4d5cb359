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
	"strings"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
)

func newSymbolsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols FILE",
		Short: "list the bindings of a file as a tree",
		Long: `Symbols prints the entries of every let block and attribute set in
FILE, nested as the blocks are nested.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runSymbols),
	}
	return cmd
}

func runSymbols(cmd *Command, args []string) error {
	f, err := cmd.loadFile(args[0])
	if err != nil {
		return err
	}
	syms := f.DocumentSymbols()
	if syms == nil {
		syms = []protocol.DocumentSymbol{}
	}
	return cmd.emit(syms, func(w io.Writer) error {
		return printSymbols(w, syms, 0)
	})
}

func printSymbols(w io.Writer, syms []protocol.DocumentSymbol, depth int) error {
	for _, s := range syms {
		_, err := fmt.Fprintf(w, "%s%s %s %s\n", strings.Repeat("  ", depth), s.Name, s.Kind, formatRange(s.Range))
		if err != nil {
			return err
		}
		if err := printSymbols(w, s.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}
