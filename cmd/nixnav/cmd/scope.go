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
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
)

func newScopeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope FILE LINE:CHAR",
		Short: "list the names visible at a position",
		Long: `Scope prints every name visible at LINE:CHAR, sorted, with the range of
the name that binds it and whether it is bound to a value or is a
function parameter. Inner bindings shadow outer ones.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runScope),
	}
	return cmd
}

type binding struct {
	Name  string         `json:"name"`
	Range protocol.Range `json:"range"`
	Kind  string         `json:"kind"`
	Value string         `json:"value,omitempty"`
}

func runScope(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	scope, ok := f.ScopeAt(pos)
	if !ok {
		return fmt.Errorf("position %s out of range", formatPosition(pos))
	}
	bindings := []binding{}
	for _, name := range slices.Sorted(maps.Keys(scope)) {
		v := scope[name]
		b := binding{
			Name:  name,
			Range: f.Range(v.Key.TextRange()),
			Kind:  "parameter",
		}
		if v.Value != nil {
			b.Kind = "value"
			b.Value = v.Value.Text()
		}
		bindings = append(bindings, b)
	}
	cmd.logger.Debug("scope", "names", len(bindings))
	return cmd.emit(bindings, func(w io.Writer) error {
		for _, b := range bindings {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", b.Name, formatRange(b.Range), b.Kind); err != nil {
				return err
			}
		}
		return nil
	})
}
