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
	"os"

	"github.com/spf13/cobra"

	"github.com/selaux/rnix-lsp/internal/navdebug"
	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/parser"
	"github.com/selaux/rnix-lsp/nix/syntax"
)

func newParseCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "print the syntax tree of a file",
		Long: `Parse prints the lossless syntax tree of FILE, one node or token per
line. Syntax errors are reported on stderr and make the command fail;
the tree is printed regardless and covers the whole file.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runParse),
	}
	return cmd
}

// treeNode is the JSON and YAML form of a syntax tree element.
type treeNode struct {
	Kind     string      `json:"kind"`
	Start    int         `json:"start"`
	End      int         `json:"end"`
	Text     string      `json:"text,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

func newTreeNode(n *syntax.Node) *treeNode {
	r := n.TextRange()
	t := &treeNode{Kind: n.Kind().String(), Start: r.Start, End: r.End}
	for _, e := range n.Elements() {
		switch e := e.(type) {
		case *syntax.Node:
			t.Children = append(t.Children, newTreeNode(e))
		case *syntax.Token:
			r := e.TextRange()
			t.Children = append(t.Children, &treeNode{
				Kind:  e.Kind().String(),
				Start: r.Start,
				End:   r.End,
				Text:  e.Text(),
			})
		}
	}
	return t
}

func runParse(cmd *Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	opts := navdebug.Flags.ParserOptions()
	if flagAllErrors.Bool(cmd) {
		opts = append(opts, parser.AllErrors)
	}
	root, perr := parser.ParseFile(args[0], data, opts...)
	if root == nil {
		return perr
	}
	cmd.logger.Debug("parsed file", "file", args[0], "bytes", len(data))

	err = cmd.emit(newTreeNode(root), func(w io.Writer) error {
		return syntax.Fprint(w, root)
	})
	if err != nil {
		return err
	}
	errors.Print(cmd.Stderr(), perr)
	return nil
}

func newDiagnosticsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostics FILE",
		Short: "report the syntax errors of a file as LSP diagnostics",
		Long: `Diagnostics prints the syntax errors of FILE with the range of the
offending token, as an editor would show them. Unlike parse, it succeeds
when errors are found.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runDiagnostics),
	}
	return cmd
}

func runDiagnostics(cmd *Command, args []string) error {
	f, err := cmd.loadFile(args[0])
	if err != nil {
		return err
	}
	diags := f.Diagnostics()
	return cmd.emit(diags, func(w io.Writer) error {
		for _, d := range diags {
			if _, err := fmt.Fprintf(w, "%s: %s\n", formatRange(d.Range), d.Message); err != nil {
				return err
			}
		}
		return nil
	})
}
