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
package stack

// Stack is a LIFO stack backed by a slice.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack, optionally initialised with some items
// (the last of which is on top).
func NewStack[T any](items ...T) *Stack[T] {
	return &Stack[T]{items}
}

// IsEmpty checks whether or not there are still items on the stack
func (p *Stack[T]) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of items on the stack.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Top returns the item on top of the stack, if there is one.
func (p *Stack[T]) Top() (T, bool) {
	var empty T
	//
	if len(p.items) == 0 {
		return empty, false
	}
	//
	return p.items[len(p.items)-1], true
}

// Push a new item onto the stack
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// Pop the top item off the stack.
func (p *Stack[T]) Pop() T {
	item, ok := p.Top()
	//
	if !ok {
		panic("cannot pop from empty stack")
	}
	//
	var empty T
	// Clear the slot so the item can be collected
	p.items[len(p.items)-1] = empty
	p.items = p.items[:len(p.items)-1]
	//
	return item
}
