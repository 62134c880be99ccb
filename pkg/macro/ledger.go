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

// Ledger records statements awaiting insertion into hoistable destinations.
// Entries for a destination are grouped by the origin which registered them,
// and both destinations and origins are kept in registration order.
// Destinations are keyed by their original identity.
type Ledger struct {
	destinations []ast.Node
	groups       map[ast.Node]*groups
	count        int
}

// Group is a contiguous block of statements to be hoisted into a destination,
// registered by a single origin.
type Group struct {
	// Origin is the node whose expansion produced these statements.  This is
	// used only to determine where they are inserted.
	Origin ast.Node
	// Statements to be inserted, in registration order.
	Statements []ast.Statement
}

type groups struct {
	order []*Group
	index map[ast.Node]*Group
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{nil, make(map[ast.Node]*groups), 0}
}

// Add a statement to be hoisted into a given destination on behalf of a given
// origin.
func (p *Ledger) Add(origin ast.Node, destination ast.Node, stmt ast.Statement) {
	gs, ok := p.groups[destination]
	//
	if !ok {
		gs = &groups{nil, make(map[ast.Node]*Group)}
		p.groups[destination] = gs
		p.destinations = append(p.destinations, destination)
	}
	//
	group, ok := gs.index[origin]
	//
	if !ok {
		group = &Group{origin, nil}
		gs.index[origin] = group
		gs.order = append(gs.order, group)
	}
	//
	group.Statements = append(group.Statements, stmt)
	p.count++
}

// Destinations returns the destinations with pending entries, in the order
// they were first registered.
func (p *Ledger) Destinations() []ast.Node {
	return p.destinations
}

// Groups returns the pending groups for a given destination, in the order
// their origins were first registered.
func (p *Ledger) Groups(destination ast.Node) []*Group {
	if gs, ok := p.groups[destination]; ok {
		return gs.order
	}
	//
	return nil
}

// Len returns the total number of pending statements.
func (p *Ledger) Len() int {
	return p.count
}

// IsEmpty checks whether there are any pending statements.
func (p *Ledger) IsEmpty() bool {
	return p.count == 0
}

// Clear removes all pending entries.
func (p *Ledger) Clear() {
	p.destinations = nil
	p.groups = make(map[ast.Node]*groups)
	p.count = 0
}
