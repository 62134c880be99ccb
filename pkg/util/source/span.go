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

import "fmt"

// Span identifies a half-open range [start,end) of character offsets within a
// source file.  Offsets are retained, rather than the text itself, so that the
// enclosing line(s) can be recovered when reporting errors.
type Span struct {
	start int
	end   int
}

// NewSpan constructs the span [start,end).  This panics if start > end.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the offset of the first character covered by this span.
func (p *Span) Start() int {
	return p.start
}

// End returns the offset immediately following the last character covered.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered.
func (p *Span) Length() int {
	return p.end - p.start
}

// Join returns the smallest span enclosing both this span and the other.
func (p *Span) Join(other Span) Span {
	return Span{min(p.start, other.start), max(p.end, other.end)}
}
