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

// Package errors defines shared types for handling Nix syntax errors.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/selaux/rnix-lsp/nix/token"
)

// New is a convenience wrapper for errors.New in the core library.
func New(msg string) error {
	return errors.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// A Handler is a generic error handler used throughout the nix packages.
//
// The position points to the beginning of the offending token.
type Handler func(pos token.Position, msg string)

// Error is the common error message.
type Error interface {
	Position() token.Position

	// Error reports the error message without position information.
	Error() string
}

// In a List, an error is represented by a *posError.
// The position pos, if valid, points to the beginning of
// the offending token, and the error condition is described
// by msg.
type posError struct {
	pos token.Position
	msg string

	// The underlying error that triggered this one, if any.
	err error
}

// Newf creates an Error at the given position.
func Newf(pos token.Position, format string, args ...interface{}) Error {
	return &posError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// Wrapf creates an Error at the given position that wraps err.
func Wrapf(err error, pos token.Position, format string, args ...interface{}) Error {
	return &posError{pos: pos, msg: fmt.Sprintf(format, args...), err: err}
}

func (e *posError) Position() token.Position {
	return e.pos
}

// Error implements the error interface.
func (e *posError) Error() string {
	switch {
	case e.msg == "" && e.err != nil:
		return e.err.Error()
	case e.err != nil:
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *posError) Unwrap() error {
	return e.err
}

func toErr(err error) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return &posError{err: err}
}

// List is a list of Errors.
// The zero value for a List is an empty List ready to use.
type List []Error

func (p *List) add(err Error) {
	*p = append(*p, err)
}

// AddNewf adds an Error with given position and error message to a List.
func (p *List) AddNewf(pos token.Position, msg string, args ...interface{}) {
	p.add(Newf(pos, msg, args...))
}

// Add adds err to a List.
func (p *List) Add(err error) {
	if err == nil {
		return
	}
	p.add(toErr(err))
}

// Reset resets a List to no errors.
func (p *List) Reset() { *p = (*p)[0:0] }

// List implements the sort Interface.
func (p List) Len() int      { return len(p) }
func (p List) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p List) Less(i, j int) bool {
	e := p[i].Position()
	f := p[j].Position()
	if e.Filename != f.Filename {
		return e.Filename < f.Filename
	}
	if e.Line != f.Line {
		return e.Line < f.Line
	}
	if e.Column != f.Column {
		return e.Column < f.Column
	}
	return p[i].Error() < p[j].Error()
}

// Sort sorts a List. Errors are sorted by position, then by message.
func (p List) Sort() {
	sort.Sort(p)
}

// RemoveMultiples sorts a List and removes all but the first error per line.
func (p *List) RemoveMultiples() {
	sort.Sort(p)
	var last token.Position // initial last.Line is != any legal error line
	i := 0
	for _, e := range *p {
		pos := e.Position()
		if pos.Filename != last.Filename || pos.Line != last.Line {
			last = pos
			(*p)[i] = e
			i++
		}
	}
	(*p) = (*p)[0:i]
}

// A List implements the error interface.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Errors reports the individual errors of err: the elements of a List, or
// err itself. It returns nil for a nil error.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var list List
	if errors.As(err, &list) {
		return list
	}
	return []Error{toErr(err)}
}

// Print is a utility function that prints a list of errors to w,
// one error per line, if the err parameter is a List. Otherwise
// it prints the err string.
func Print(w io.Writer, err error) {
	var list List
	if errors.As(err, &list) {
		for _, e := range list {
			printError(w, e)
		}
	} else if err != nil {
		printError(w, toErr(err))
	}
}

func printError(w io.Writer, err Error) {
	if pos := err.Position(); pos.IsValid() || pos.Filename != "" {
		fmt.Fprintf(w, "%v: ", pos)
	}
	fmt.Fprintln(w, err.Error())
}
