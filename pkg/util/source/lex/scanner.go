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
package lex

import (
	"cmp"
	"slices"
)

// Scanner is a function which accepts some prefix of the given items, returning
// the length of the accepted prefix (or 0 if nothing was accepted).
type Scanner[T any] func(items []T) uint

// ============================================================================
// Single items
// ============================================================================

// Accept constructs a scanner which matches exactly one item satisfying the
// given predicate.
func Accept[T any](predicate func(T) bool) Scanner[T] {
	return func(items []T) uint {
		if len(items) == 0 || !predicate(items[0]) {
			return 0
		}
		//
		return 1
	}
}

// OneOf accepts any single item from the given set.
func OneOf[T comparable](chars ...T) Scanner[T] {
	return Accept(func(item T) bool { return slices.Contains(chars, item) })
}

// Not accepts any single item other than those given.
func Not[T comparable](chars ...T) Scanner[T] {
	return Accept(func(item T) bool { return !slices.Contains(chars, item) })
}

// Within accepts any item in the closed range [lowest, highest].
func Within[T cmp.Ordered](lowest T, highest T) Scanner[T] {
	return Accept(func(item T) bool { return lowest <= item && item <= highest })
}

// Eof matches the end of the input stream.  A successful match reports a length
// of one, even though nothing remains to be consumed.
func Eof[T any]() Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 {
			return 0
		}
		//
		return 1
	}
}

// ============================================================================
// Fixed sequences
// ============================================================================

// Unit accepts a given sequence of items, all of which must appear in the given
// order.
func Unit[T comparable](chars ...T) Scanner[T] {
	return func(items []T) uint {
		if !slices.Equal(items[:min(len(chars), len(items))], chars) {
			return 0
		}
		//
		return uint(len(chars))
	}
}

// String expects a given string s.  It is equivalent to [Unit](s[0], s[1], ...)
func String(s string) Scanner[rune] {
	return Unit([]rune(s)...)
}

// Until matches everything before the first occurrence of a given item, or the
// whole input when it never occurs.  The item itself is not consumed.
func Until[T comparable](item T) Scanner[T] {
	return func(items []T) uint {
		if index := slices.Index(items, item); index >= 0 {
			return uint(index)
		}
		//
		return uint(len(items))
	}
}

// UntilAfter matches everything up to and including a given terminating
// sequence.  If the terminator never appears, nothing is matched.
func UntilAfter[T comparable](terminator ...T) Scanner[T] {
	end := Unit(terminator...)
	//
	return func(items []T) uint {
		for index := range items {
			if n := end(items[index:]); n > 0 {
				return uint(index) + n
			}
		}
		//
		return 0
	}
}

// ============================================================================
// Combinators
// ============================================================================

// And combines zero or more scanners such that the resulting scanner succeeds if
// all of them succeed at the same position, reporting the longest match.
// Scanners are evaluated left to right and evaluation stops at the first
// failure.
func And[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		longest := uint(0)
		//
		for _, scanner := range scanners {
			n := scanner(items)
			if n == 0 {
				return 0
			}
			//
			longest = max(longest, n)
		}
		//
		return longest
	}
}

// Or combines zero or more scanners such that the resulting scanner reports the
// first successful match, trying each scanner from left to right.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n != 0 {
				return n
			}
		}
		//
		return 0
	}
}

// Many matches zero or more of a given item, stopping as soon as the acceptor
// fails (or the input is exhausted).
func Many[T any](acceptor Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		var index uint
		//
		for n := uint(1); n != 0 && index < uint(len(items)); index += n {
			n = acceptor(items[index:])
		}
		//
		return index
	}
}

// Sequence matches all the scanners in order, each starting where the previous
// one ended.  Every scanner must consume something, and the input must not run
// out before the final scanner is reached.
func Sequence[T comparable](scanners ...Scanner[T]) Scanner[T] {
	return sequence(scanners, false)
}

// SequenceNullableLast is like [Sequence], except that the final scanner is
// permitted to match nothing (for example, an optional suffix).
func SequenceNullableLast[T comparable](scanners ...Scanner[T]) Scanner[T] {
	return sequence(scanners, true)
}

func sequence[T any](scanners []Scanner[T], nullableLast bool) Scanner[T] {
	return func(items []T) uint {
		var offset uint
		//
		for i, scanner := range scanners {
			last := i+1 == len(scanners)
			//
			if !nullableLast && offset == uint(len(items)) {
				return 0
			}
			//
			n := scanner(items[offset:])
			if n == 0 && !(nullableLast && last) {
				return 0
			}
			//
			offset += n
		}
		//
		return offset
	}
}
