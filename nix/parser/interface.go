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

// This file contains the exported entry points for invoking the parser.

package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/selaux/rnix-lsp/nix/syntax"
)

// Option specifies a parse option.
type Option interface {
	apply(cfg *Config)
}

// Config represents the end result of applying a set of options.
type Config struct {
	// Mode holds a bitmask of boolean parser options.
	Mode Mode

	// TraceOutput receives the production trace when Mode has Trace set.
	// A nil writer means os.Stdout.
	TraceOutput io.Writer
}

// NewConfig returns the configuration containing all default values
// with the given options applied.
func NewConfig(opts ...Option) Config {
	return Config{}.Apply(opts...)
}

// Apply applies all the given options to cfg and
// returns the resulting configuration.
func (cfg Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}

// optionFunc implements [Option] for a function.
type optionFunc func(cfg *Config)

func (f optionFunc) apply(cfg *Config) {
	f(cfg)
}

// A Mode value is a set of flags (or 0).
// It controls optional parser functionality.
//
// Mode implements [Option] by or-ing all its bits
// with [Config.Mode].
type Mode uint

const (
	// Trace causes parsing to print a trace of parsed productions.
	Trace Mode = 1 << iota

	// AllErrors causes all errors to be reported (not just the first
	// on each line).
	AllErrors
)

// apply implements [Option].
func (m Mode) apply(c *Config) {
	c.Mode |= m
}

// TraceTo enables tracing and sends the trace to w.
func TraceTo(w io.Writer) Option {
	return optionFunc(func(c *Config) {
		c.Mode |= Trace
		c.TraceOutput = w
	})
}

// ParseFile parses the source code of a single Nix file and returns the
// root of its syntax tree. The source code may be provided via the
// filename of the source file, or via the src parameter.
//
// If src != nil, ParseFile parses the source from src and the filename is
// only used when recording position information. The type of the argument
// for the src parameter must be string, []byte, or io.Reader.
// If src == nil, ParseFile parses the file specified by filename.
//
// If the source couldn't be read, the returned tree is nil and the error
// indicates the specific failure. Otherwise the tree always covers the
// whole source text, with NODE_ERROR nodes around fragments that could
// not be parsed. Syntax errors are returned as an errors.List sorted by
// file position.
func ParseFile(filename string, src interface{}, opts ...Option) (*syntax.Node, error) {
	text, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	var p parser
	p.init(filename, text, opts)
	root := p.parseFile()

	if p.cfg.Mode&AllErrors == 0 {
		p.errors.RemoveMultiples()
	} else {
		p.errors.Sort()
	}
	return root, p.errors.Err()
}

// readSource loads the source bytes for the given arguments.
func readSource(filename string, src interface{}) ([]byte, error) {
	if src != nil {
		switch src := src.(type) {
		case string:
			return []byte(src), nil
		case []byte:
			return src, nil
		case *bytes.Buffer:
			return src.Bytes(), nil
		case io.Reader:
			return io.ReadAll(src)
		}
		return nil, fmt.Errorf("invalid source type %T", src)
	}
	return os.ReadFile(filename)
}
