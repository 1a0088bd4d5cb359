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

package errors

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/selaux/rnix-lsp/nix/token"
)

func pos(line, col int) token.Position {
	return token.Position{Filename: "a.nix", Line: line, Column: col}
}

func TestList(t *testing.T) {
	var list List
	qt.Assert(t, qt.IsNil(list.Err()))

	list.AddNewf(pos(2, 1), "second line")
	list.AddNewf(pos(1, 5), "later on the first line")
	list.AddNewf(pos(1, 1), "first")
	list.Add(nil)
	qt.Assert(t, qt.HasLen(list, 3))
	qt.Check(t, qt.ErrorMatches(list.Err(), `second line \(and 2 more errors\)`))

	list.Sort()
	var buf bytes.Buffer
	Print(&buf, list)
	qt.Check(t, qt.Equals(buf.String(), `a.nix:1:1: first
a.nix:1:5: later on the first line
a.nix:2:1: second line
`))

	list.RemoveMultiples()
	qt.Assert(t, qt.HasLen(list, 2))
	qt.Check(t, qt.Equals(list[0].Error(), "first"))
	qt.Check(t, qt.Equals(list[1].Error(), "second line"))

	list.Reset()
	qt.Check(t, qt.HasLen(list, 0))
}

func TestErrors(t *testing.T) {
	qt.Check(t, qt.IsNil(Errors(nil)))

	plain := New("plain")
	errs := Errors(plain)
	qt.Assert(t, qt.HasLen(errs, 1))
	qt.Check(t, qt.Equals(errs[0].Error(), "plain"))
	plainPos := errs[0].Position()
	qt.Check(t, qt.IsFalse(plainPos.IsValid()))

	var list List
	list.AddNewf(pos(1, 1), "a")
	list.AddNewf(pos(1, 2), "b")
	wrapped := fmt.Errorf("parsing: %w", list.Err())
	qt.Check(t, qt.HasLen(Errors(wrapped), 2))
}

func TestWrapf(t *testing.T) {
	cause := New("cause")
	err := Wrapf(cause, pos(3, 4), "reading %s", "x")
	qt.Check(t, qt.Equals(err.Error(), "reading x: cause"))
	qt.Check(t, qt.IsTrue(Is(err, cause)))
	qt.Check(t, qt.Equals(err.Position(), pos(3, 4)))

	var buf bytes.Buffer
	Print(&buf, err)
	qt.Check(t, qt.Equals(buf.String(), "a.nix:3:4: reading x: cause\n"))

	buf.Reset()
	Print(&buf, New("no position"))
	qt.Check(t, qt.Equals(buf.String(), "no position\n"))
}
