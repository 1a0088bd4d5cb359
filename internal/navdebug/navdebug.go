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

// Package navdebug holds the debug settings read from NIXNAV_DEBUG.
package navdebug

import (
	"log/slog"
	"sync"

	"github.com/selaux/rnix-lsp/internal/envflag"
	"github.com/selaux/rnix-lsp/nix/parser"
)

// EnvVar is the environment variable holding the debug settings.
const EnvVar = "NIXNAV_DEBUG"

// Flags holds the global NIXNAV_DEBUG settings. It is initialized by Init.
var Flags Config

// Config holds the set of known NIXNAV_DEBUG settings.
//
// When adding, deleting, or modifying entries below,
// update the help text of the nixnav root command as well.
type Config struct {
	// Log is the minimum level of log records written to stderr.
	Log slog.Level `envflag:"default:info"`

	// ParseTrace makes the parser print the productions it enters.
	ParseTrace bool

	// Strict makes commands fail on files with syntax errors instead
	// of working on the partial tree.
	Strict bool
}

// Init initializes Flags. It is not an init function so that a bad
// setting is reported as an error by the command that needs it.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, EnvVar)
})

// ParserOptions returns the parser options implied by c.
func (c Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.ParseTrace {
		opts = append(opts, parser.Trace)
	}
	return opts
}
