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
package macro

import (
	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Expansion is the result of applying a macro to a call.  This is either a
// single replacement node, a sequence of replacement nodes (each of which is
// visited again for nested macro calls) or nothing at all.
type Expansion struct {
	nodes []ast.Node
	// Indicates whether the nodes should be visited again.
	sequence bool
}

// Replace the call with a given node.  The replacement is not visited again
// within this round.
func Replace(node ast.Node) Expansion {
	return Expansion{[]ast.Node{node}, false}
}

// Sequence replaces the call with zero or more nodes.  Each node is visited
// again for nested macro calls, and the results are spliced in place of the
// call.  An empty sequence removes the call entirely (e.g. an expression
// statement consisting only of the call is dropped).
func Sequence(nodes ...ast.Node) Expansion {
	return Expansion{nodes, true}
}

// Delete removes the call entirely.
func Delete() Expansion {
	return Expansion{nil, false}
}

// Nodes returns the replacement nodes of this expansion.
func (p Expansion) Nodes() []ast.Node {
	return p.nodes
}

// IsSequence checks whether this expansion is a sequence.
func (p Expansion) IsSequence() bool {
	return p.sequence
}

// IsEmpty checks whether this expansion removes the call.
func (p Expansion) IsEmpty() bool {
	return len(p.nodes) == 0
}
