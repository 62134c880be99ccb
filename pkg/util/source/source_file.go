// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = *NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line identifies a single line within a source file, numbered from 1.
type Line struct {
	file   *File
	number int
}

// String returns the text of this line, excluding its terminating newline.
func (p *Line) String() string {
	return p.file.Text(p.span())
}

// Number gets the line number of this line, where the first line in a file
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original text.
func (p *Line) Start() int {
	return p.file.lines[p.number-1]
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	span := p.span()
	return span.Length()
}

func (p *Line) span() Span {
	var (
		start = p.Start()
		end   = len(p.file.contents)
	)
	//
	if p.number < len(p.file.lines) {
		// exclude the newline
		end = p.file.lines[p.number] - 1
	}
	//
	return Span{start, end}
}

// File represents a given source file (typically stored on disk).
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
	// Index at which each line starts.
	lines []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	var (
		contents = []rune(string(bytes))
		lines    = []int{0}
	)
	//
	for i, c := range contents {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	//
	return &File{filename, contents, lines}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Lines returns the number of lines in this source file.
func (s *File) Lines() int {
	return len(s.lines)
}

// Text returns the text covered by a given span of this file.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:span.end])
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// FindFirstEnclosingLine determines the line in this source file enclosing the
// start of a span.  A span starting beyond the end of the file gives the last
// line.  Observe that spans can cross multiple lines, hence the line returned
// may not enclose all of it.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	index, found := slices.BinarySearch(s.lines, span.start)
	//
	if !found {
		// Line starting before the span
		index--
	}
	//
	return Line{s, index + 1}
}

// SyntaxError is a structured error which retains the index into the original
// text where an error occurred, along with an error message.
type SyntaxError struct {
	srcfile *File
	// Index into text being parsed where error arose.
	span Span
	// Error message being reported
	msg string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	col := p.span.start - line.Start() + 1
	//
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.Filename(), line.Number(), col, p.msg)
}

// FirstEnclosingLine determines the first line in this source file to which
// this error is associated. Observe that, if the position is beyond the bounds
// of the source file then the last physical line is returned.  Also, the
// returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

// Errors bundles a set of syntax errors into a single error value, which is
// convenient when crossing an API that only returns one error.
type Errors []SyntaxError

// Error implements the error interface.
func (p Errors) Error() string {
	var builder strings.Builder
	//
	for i, e := range p {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(e.Error())
	}
	//
	return builder.String()
}
