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
)

// Map maps nodes from a syntax tree to slices of their originating text.  This
// is important for error handling when we wish to highlight exactly where, in
// the original source file, a given error has arisen.  Nodes which were
// synthesised after parsing (e.g. by macro expansion) are simply absent.
type Map[T comparable] struct {
	// Maps a given node to a span in the original text.
	mapping map[T]Span
	// Enclosing source file
	srcfile *File
}

// NewSourceMap constructs an initially empty source map for a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	mapping := make(map[T]Span)
	return &Map[T]{mapping, srcfile}
}

// Source returns the underlying source file on which this map operates.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put registers a new node with a given span.  Note, if the node exists
// already, then it will panic.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}
	// Assign it
	p.mapping[item] = span
}

// Has checks whether a given node is contained within this source map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given node extracted from the
// original text.  Note, if the node is not registered with this source map,
// then it will panic.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("invalid source map key: %v", any(item)))
}

// Lookup determines the span associated with a given node, if there is one.
func (p *Map[T]) Lookup(item T) (Span, bool) {
	s, ok := p.mapping[item]
	return s, ok
}

// Copy copies the source mapping for one node to the source mapping for
// another.  The main use of this is when an existing node is rewritten into
// some other node (e.g. during expansion), and errors reported against the new
// node should still highlight the original text.  Nothing happens if the
// source node has no mapping, or the target already has one.
func (p *Map[T]) Copy(from T, to T) {
	if span, ok := p.mapping[from]; ok {
		if _, ok := p.mapping[to]; !ok {
			p.mapping[to] = span
		}
	}
}

// SyntaxError constructs a syntax error for a given node contained within this
// source map.  If the node is not mapped, the error covers the empty span at
// the start of the file.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	span, ok := p.mapping[node]
	//
	if !ok {
		span = Span{0, 0}
	}
	//
	return p.srcfile.SyntaxError(span, msg)
}

// SyntaxErrors is really just a helper that construct a syntax error and then
// places it into an array of size one.  This is helpful for situations where
// sets of syntax errors are being passed around.
func (p *Map[T]) SyntaxErrors(node T, msg string) []SyntaxError {
	err := p.SyntaxError(node, msg)
	return []SyntaxError{*err}
}
