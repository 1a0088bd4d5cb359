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

func newDefinitionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "definition FILE LINE:CHAR",
		Short: "find where the identifier under the cursor is bound",
		Long: `Definition prints the range of the name binding the identifier at
LINE:CHAR.

For an identifier reached through a path, as b in s.b, each element of
the path must be bound to an attribute set literal and the identifier is
looked up among its entries.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runDefinition),
	}
	return cmd
}

func runDefinition(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	loc, ok := f.Definition(pos)
	if !ok {
		return fmt.Errorf("no definition found at %s", formatPosition(pos))
	}
	return cmd.emit(loc, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatRange(loc.Range))
		return err
	})
}

func newCompleteCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete FILE LINE:CHAR",
		Short: "list the names completing the identifier under the cursor",
		Long: `Complete prints, sorted, the visible names that start with the
identifier at LINE:CHAR. Names of a path are completed from the
attribute set the path leads to.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runComplete),
	}
	return cmd
}

func runComplete(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	items := f.Completion(pos)
	if items == nil {
		items = []protocol.CompletionItem{}
	}
	cmd.logger.Debug("completion", "candidates", len(items))
	return cmd.emit(items, func(w io.Writer) error {
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item.Label); err != nil {
				return err
			}
		}
		return nil
	})
}
