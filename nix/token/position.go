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

package token

import (
	"fmt"
	"sort"
	"sync"
)

// Position describes an arbitrary source position within a file,
// including offset, line, and column location, which can be rendered
// in a human-friendly text form.
//
// A Position is valid if the line number is > 0.
type Position struct {
	Filename string // filename, if any
	Offset   int    // offset, starting at 0
	Line     int    // line number, starting at 1
	Column   int    // column number, starting at 1 (byte count)
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a human-readable form of a position in one of several forms:
//
//	file:line:column    valid position with file name
//	line:column         valid position without file name
//	file                invalid position with file name
//	-                   invalid position without file name
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// A File has a name, size, and line offset table. The scanner fills in
// the line table as it goes; after scanning a File is only read.
type File struct {
	mutex sync.RWMutex
	name  string
	size  int

	// lines contains the offset of the first character for each line
	// (the first entry is always 0)
	lines []int
}

// NewFile returns a new file with the given OS file name. The size provides
// the size of the whole file.
func NewFile(filename string, size int) *File {
	return &File{
		name:  filename,
		size:  size,
		lines: []int{0},
	}
}

// Name returns the file name of file f as passed to NewFile.
func (f *File) Name() string {
	return f.name
}

// Size returns the size of file f as passed to NewFile.
func (f *File) Size() int {
	return f.size
}

// LineCount returns the number of lines in file f.
func (f *File) LineCount() int {
	f.mutex.RLock()
	n := len(f.lines)
	f.mutex.RUnlock()
	return n
}

// AddLine adds the line offset for a new line.
// The line offset must be larger than the offset for the previous line
// and not larger than the file size; otherwise the line offset is ignored.
func (f *File) AddLine(offset int) {
	f.mutex.Lock()
	if i := len(f.lines); (i == 0 || f.lines[i-1] < offset) && offset <= f.size {
		f.lines = append(f.lines, offset)
	}
	f.mutex.Unlock()
}

// Position returns the Position value for the given file offset.
// Offsets outside the file are clamped to its bounds.
func (f *File) Position(offset int) (pos Position) {
	switch {
	case offset < 0:
		offset = 0
	case offset > f.size:
		offset = f.size
	}
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	pos.Filename = f.name
	pos.Offset = offset
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if i >= 0 {
		pos.Line, pos.Column = i+1, offset-f.lines[i]+1
	}
	return pos
}
