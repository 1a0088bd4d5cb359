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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"gopkg.in/yaml.v3"

	"github.com/selaux/rnix-lsp/internal/lsp/cache"
	"github.com/selaux/rnix-lsp/internal/navdebug"
	"github.com/selaux/rnix-lsp/nix/errors"
	"github.com/selaux/rnix-lsp/nix/parser"
)

// loadFile reads and parses filename. Syntax errors are logged and the
// partial tree is used, unless strict checking is enabled.
func (c *Command) loadFile(filename string) (*cache.File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	opts := navdebug.Flags.ParserOptions()
	if flagAllErrors.Bool(c) {
		opts = append(opts, parser.AllErrors)
	}
	f := cache.New(opts...).Open(uri.File(abs), data)

	errs := errors.Errors(f.Err())
	c.logger.Debug("parsed file", "file", filename, "bytes", len(data), "errors", len(errs))
	if len(errs) == 0 {
		return f, nil
	}
	if flagStrict.Bool(c) || navdebug.Flags.Strict {
		errors.Print(c.Stderr(), f.Err())
		return nil, ErrPrintedError
	}
	c.logger.Warn("file has syntax errors", "file", filename, "errors", len(errs))
	for _, e := range errs {
		c.logger.Debug("syntax error", "pos", e.Position().String(), "msg", e.Error())
	}
	return f, nil
}

// parsePosition parses a LINE:CHAR argument.
func parsePosition(arg string) (protocol.Position, error) {
	line, char, ok := strings.Cut(arg, ":")
	if !ok {
		return protocol.Position{}, fmt.Errorf("invalid position %q: want LINE:CHAR", arg)
	}
	l, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("invalid line in position %q: %w", arg, err)
	}
	ch, err := strconv.ParseUint(char, 10, 32)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("invalid character in position %q: %w", arg, err)
	}
	return protocol.Position{Line: uint32(l), Character: uint32(ch)}, nil
}

// loadAt loads the file and position named by the arguments FILE LINE:CHAR.
func (c *Command) loadAt(args []string) (*cache.File, protocol.Position, error) {
	pos, err := parsePosition(args[1])
	if err != nil {
		return nil, pos, err
	}
	f, err := c.loadFile(args[0])
	return f, pos, err
}

func formatPosition(p protocol.Position) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

func formatRange(r protocol.Range) string {
	return formatPosition(r.Start) + "-" + formatPosition(r.End)
}

// emit writes v in the format selected by --format. The text function
// renders the text format.
func (c *Command) emit(v any, text func(w io.Writer) error) error {
	w := c.OutOrStdout()
	switch format := flagFormat.String(c); format {
	case "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return encodeYAML(w, v)
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}
}

// encodeYAML writes v as YAML, using the same field names and order as
// its JSON encoding.
func encodeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	clearStyle(&doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// clearStyle resets the flow and quoting styles taken over from JSON.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
