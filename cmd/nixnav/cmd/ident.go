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

func newIdentCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ident FILE LINE:CHAR",
		Short: "show the identifier under the cursor",
		Long: `Ident prints the identifier at LINE:CHAR together with the attribute
path or selection chain leading to it. For the cursor on c in a.b.c the
path is a.b.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runIdent),
	}
	return cmd
}

type identResult struct {
	Name  string         `json:"name"`
	Path  []string       `json:"path"`
	Range protocol.Range `json:"range"`
}

func runIdent(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	info, ok := f.IdentifierAt(pos)
	if !ok {
		return fmt.Errorf("no identifier at %s", formatPosition(pos))
	}
	res := identResult{
		Name:  info.Ident.Name(),
		Path:  info.Path,
		Range: f.Range(info.Ident.Node().TextRange()),
	}
	if res.Path == nil {
		res.Path = []string{}
	}
	cmd.logger.Debug("identifier", "name", res.Name, "depth", len(res.Path))
	return cmd.emit(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s path=%s\n", res.Name, formatRange(res.Range), strings.Join(res.Path, "."))
		return err
	})
}
