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
	"strconv"

	"github.com/spf13/cobra"
)

func newOffsetCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offset FILE LINE:CHAR",
		Short: "convert a position into a byte offset",
		Long: `Offset prints the byte offset in FILE of the position LINE:CHAR.

It fails if the line does not exist or is shorter than CHAR UTF-16 code
units.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runOffset),
	}
	return cmd
}

func runOffset(cmd *Command, args []string) error {
	f, pos, err := cmd.loadAt(args)
	if err != nil {
		return err
	}
	offset, ok := f.Offset(pos)
	if !ok {
		return fmt.Errorf("position %s out of range", formatPosition(pos))
	}
	return cmd.emit(offset, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, offset)
		return err
	})
}

func newPositionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position FILE OFFSET",
		Short: "convert a byte offset into a position",
		Long: `Position prints the position LINE:CHAR of the byte OFFSET in FILE.
`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runPosition),
	}
	return cmd
}

func runPosition(cmd *Command, args []string) error {
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[1], err)
	}
	f, err := cmd.loadFile(args[0])
	if err != nil {
		return err
	}
	if offset < 0 || offset > len(f.Content()) {
		return fmt.Errorf("offset %d out of range", offset)
	}
	pos := f.Position(offset)
	return cmd.emit(pos, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, formatPosition(pos))
		return err
	})
}
