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

package envflag

import (
	"log/slog"
	"testing"

	"github.com/go-quicktest/qt"
)

type testFlags struct {
	Foo    bool
	BarBaz bool

	DefaultFalse bool `envflag:"default:false"`
	DefaultTrue  bool `envflag:"default:true"`
}

type testTypes struct {
	StringDefaultFoo string     `envflag:"default:foo"`
	IntDefault5      int        `envflag:"default:5"`
	Level            slog.Level `envflag:"name:log,default:warn"`
}

type badTag struct {
	Foo bool `envflag:"deprecated"`
}

type duplicateName struct {
	Foo bool
	Bar bool `envflag:"name:foo"`
}

func success[T comparable](want T) func(t *testing.T) {
	return func(t *testing.T) {
		var x T
		err := Init(&x, "TEST_VAR")
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(x, want))
	}
}

func failure[T comparable](want T, wantError string) func(t *testing.T) {
	return func(t *testing.T) {
		var x T
		err := Init(&x, "TEST_VAR")
		qt.Assert(t, qt.ErrorMatches(err, wantError))
		qt.Assert(t, qt.Equals(x, want))
	}
}

func invalid[T comparable](want T) func(t *testing.T) {
	return func(t *testing.T) {
		var x T
		err := Init(&x, "TEST_VAR")
		qt.Assert(t, qt.ErrorIs(err, ErrInvalid))
		qt.Assert(t, qt.Equals(x, want))
	}
}

var defaultTypes = testTypes{
	StringDefaultFoo: "foo",
	IntDefault5:      5,
	Level:            slog.LevelWarn,
}

var tests = []struct {
	testName string
	envVal   string
	test     func(t *testing.T)
}{{
	testName: "Empty",
	envVal:   "",
	test: success(testFlags{
		DefaultTrue: true,
	}),
}, {
	testName: "JustCommas",
	envVal:   ",,",
	test: success(testFlags{
		DefaultTrue: true,
	}),
}, {
	testName: "Unknown",
	envVal:   "ratchet",
	test: failure(testFlags{DefaultTrue: true},
		"cannot parse TEST_VAR: unknown flag \"ratchet\""),
}, {
	testName: "Set",
	envVal:   "foo",
	test: success(testFlags{
		Foo:         true,
		DefaultTrue: true,
	}),
}, {
	testName: "SetUpperCase",
	envVal:   "FOO,BarBaz",
	test: success(testFlags{
		Foo:         true,
		BarBaz:      true,
		DefaultTrue: true,
	}),
}, {
	testName: "SetTwice",
	envVal:   "foo,foo",
	test: success(testFlags{
		Foo:         true,
		DefaultTrue: true,
	}),
}, {
	testName: "SetWithUnknown",
	envVal:   "foo,other",
	test: failure(testFlags{
		Foo:         true,
		DefaultTrue: true,
	}, "cannot parse TEST_VAR: unknown flag \"other\""),
}, {
	testName: "ToggleDefaultFieldsNumeric",
	envVal:   "defaulttrue=0,defaultfalse=1",
	test: success(testFlags{
		DefaultFalse: true,
	}),
}, {
	testName: "MultipleUnknown",
	envVal:   "other1,other2,foo",
	test: failure(testFlags{
		Foo:         true,
		DefaultTrue: true,
	}, "cannot parse TEST_VAR: unknown flag \"other1\"\nunknown flag \"other2\""),
}, {
	testName: "InvalidIntForBool",
	envVal:   "foo=2",
	test:     invalid(testFlags{DefaultTrue: true}),
}, {
	testName: "Defaults",
	envVal:   "",
	test:     success(defaultTypes),
}, {
	testName: "StringValue",
	envVal:   "stringdefaultfoo=bar",
	test: success(testTypes{
		StringDefaultFoo: "bar",
		IntDefault5:      5,
		Level:            slog.LevelWarn,
	}),
}, {
	testName: "FailureStringAlone",
	envVal:   "stringdefaultfoo",
	test: failure(defaultTypes,
		"cannot parse TEST_VAR: value needed for flag \"stringdefaultfoo\""),
}, {
	testName: "IntEmpty",
	envVal:   "intdefault5=",
	test:     invalid(defaultTypes),
}, {
	testName: "RenamedTextValue",
	envVal:   "log=debug",
	test: success(testTypes{
		StringDefaultFoo: "foo",
		IntDefault5:      5,
		Level:            slog.LevelDebug,
	}),
}, {
	testName: "OriginalNameUnknown",
	envVal:   "level=debug",
	test: failure(defaultTypes,
		"cannot parse TEST_VAR: unknown flag \"level=debug\""),
}, {
	testName: "InvalidTextValue",
	envVal:   "log=loud",
	test:     invalid(defaultTypes),
}, {
	testName: "BadTag",
	envVal:   "",
	test: failure(badTag{},
		"cannot parse TEST_VAR: unknown envflag tag \"deprecated\""),
}, {
	testName: "DuplicateName",
	envVal:   "",
	test: failure(duplicateName{},
		"cannot parse TEST_VAR: duplicate flag name \"foo\""),
}}

func TestInit(t *testing.T) {
	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			t.Setenv("TEST_VAR", test.envVal)
			test.test(t)
		})
	}
}
