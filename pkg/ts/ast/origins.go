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
package ast

// Origins records, for every node produced by rewriting another, the node it
// was derived from.  This allows any node to be mapped back to the identity it
// had when first observed, regardless of how many rewrites have produced new
// nodes since.
type Origins struct {
	sources map[Node]Node
}

// NewOrigins constructs an empty origins table.
func NewOrigins() *Origins {
	return &Origins{make(map[Node]Node)}
}

// Record that a given node was derived from another.  This has no effect if
// the two are the same node, or if recording would create a cycle.
func (p *Origins) Record(derived Node, source Node) {
	if p == nil || derived == nil || source == nil || derived == source {
		return
	} else if _, ok := p.sources[derived]; ok {
		// first recording wins
		return
	} else if p.Original(source) == derived {
		return
	}
	//
	p.sources[derived] = source
}

// Source returns the node a given node was immediately derived from, or the
// node itself if it was not derived from anything.
func (p *Origins) Source(node Node) Node {
	if p != nil {
		if source, ok := p.sources[node]; ok {
			return source
		}
	}
	//
	return node
}

// Original follows the chain of derivations from a given node back to the
// node it ultimately originated from.
func (p *Origins) Original(node Node) Node {
	if p == nil {
		return node
	}
	//
	for {
		source, ok := p.sources[node]
		if !ok {
			return node
		}
		//
		node = source
	}
}

// SameOriginal checks whether two nodes originate from the same node.
func (p *Origins) SameOriginal(lhs Node, rhs Node) bool {
	return p.Original(lhs) == p.Original(rhs)
}

// Len returns the number of derivations recorded.
func (p *Origins) Len() int {
	if p == nil {
		return 0
	}
	//
	return len(p.sources)
}
