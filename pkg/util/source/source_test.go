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
	"testing"

	"github.com/consensys/go-jiewo/pkg/util/assert"
)

func Test_Span_Join(t *testing.T) {
	lhs, rhs := NewSpan(3, 5), NewSpan(1, 4)
	span := lhs.Join(rhs)
	//
	assert.Equal(t, 1, span.Start())
	assert.Equal(t, 5, span.End())
	assert.Equal(t, 4, span.Length())
}

func Test_File_Text(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("const x = 1;"))
	//
	assert.Equal(t, "x = 1", srcfile.Text(NewSpan(6, 11)))
}

func Test_File_EnclosingLine(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("one\ntwo\nthree"))
	line := srcfile.FindFirstEnclosingLine(NewSpan(5, 6))
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "two", line.String())
	assert.Equal(t, 4, line.Start())
	// Beyond the end
	line = srcfile.FindFirstEnclosingLine(NewSpan(13, 13))
	assert.Equal(t, 3, line.Number())
	assert.Equal(t, "three", line.String())
	assert.Equal(t, 5, line.Length())
	assert.Equal(t, 3, srcfile.Lines())
}

func Test_File_EnclosingLine_Trailing(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("ab\n\ncd\n"))
	// Start of each line
	for i, start := range []int{0, 3, 4, 7} {
		line := srcfile.FindFirstEnclosingLine(NewSpan(start, start))
		assert.Equal(t, i+1, line.Number())
		assert.Equal(t, start, line.Start())
	}
	// Newlines belong to the line they end
	line := srcfile.FindFirstEnclosingLine(NewSpan(2, 3))
	assert.Equal(t, 1, line.Number())
	assert.Equal(t, "ab", line.String())
	// Empty lines
	line = srcfile.FindFirstEnclosingLine(NewSpan(3, 3))
	assert.Equal(t, "", line.String())
	assert.Equal(t, 0, line.Length())
}

func Test_SyntaxError_Error(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("one\n  two\n"))
	err := srcfile.SyntaxError(NewSpan(6, 9), "bad")
	//
	assert.Equal(t, "a.ts:2:3: bad", err.Error())
	//
	errs := Errors{*err, *srcfile.SyntaxError(NewSpan(0, 1), "worse")}
	assert.Equal(t, "a.ts:2:3: bad\na.ts:1:1: worse", errs.Error())
}

func Test_SourceMap_01(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("abc"))
	srcmap := NewSourceMap[*int](srcfile)
	x, y := new(int), new(int)
	//
	srcmap.Put(x, NewSpan(1, 2))
	assert.True(t, srcmap.Has(x))
	assert.False(t, srcmap.Has(y))
	// Copy to unmapped node
	srcmap.Copy(x, y)
	span, ok := srcmap.Lookup(y)
	assert.True(t, ok)
	assert.Equal(t, 1, span.Start())
}

func Test_SourceMap_02(t *testing.T) {
	srcfile := NewSourceFile("a.ts", []byte("abc"))
	srcmap := NewSourceMap[*int](srcfile)
	x, y := new(int), new(int)
	//
	srcmap.Put(x, NewSpan(1, 2))
	srcmap.Put(y, NewSpan(2, 3))
	// Copy never overwrites
	srcmap.Copy(x, y)
	span := srcmap.Get(y)
	assert.Equal(t, 2, span.Start())
	// Errors on unmapped nodes still point into the file
	err := srcmap.SyntaxError(new(int), "missing")
	assert.Equal(t, "a.ts:1:1: missing", err.Error())
}
