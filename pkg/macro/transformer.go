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
	"errors"
	"fmt"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
	"github.com/consensys/go-jiewo/pkg/util/collection/stack"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Transformer expands all macro calls within a single file.  A transformer
// holds all state used during expansion (the hoist ledger, the origins and
// parent tables, generated names and result carriers) and, hence, must not be
// shared between files.
type Transformer struct {
	program *Program
	// File as originally given.
	file *ast.SourceFile
	// Rewriter recording the original identity of every rebuilt node.
	rewriter *ast.Rewriter
	// Maps every observed node to its parent.
	parents map[ast.Node]ast.Node
	// Hoists pending for the current round.
	ledger *Ledger
	// Macro calls currently being expanded.
	calls *stack.Stack[*ast.CallExpression]
	// Generated names.
	names *Names
	// Result carriers, keyed by the original identity of their function.
	results map[ast.Node]string
	// Number of rounds executed.
	round uint
}

// NewTransformer constructs a transformer for a given file.
func NewTransformer(program *Program, file *ast.SourceFile) *Transformer {
	return &Transformer{
		program:  program,
		file:     file,
		rewriter: ast.NewRewriter(ast.NewOrigins()),
		parents:  make(map[ast.Node]ast.Node),
		ledger:   NewLedger(),
		calls:    stack.NewStack[*ast.CallExpression](),
		names:    NewNames(file),
		results:  make(map[ast.Node]string),
	}
}

// Round returns the number of rounds executed so far.
func (t *Transformer) Round() uint {
	return t.round
}

// Ledger returns the hoists pending for the current round.
func (t *Transformer) Ledger() *Ledger {
	return t.ledger
}

// Origins returns the table of original identities.
func (t *Transformer) Origins() *ast.Origins {
	return t.rewriter.Origins()
}

// Run alternates expansion and materialisation until a round leaves the file
// unchanged, and returns the fully expanded file.  This does not terminate
// for a macro which always expands into itself, unless a round limit is
// given.
func (t *Transformer) Run() (*ast.SourceFile, error) {
	var (
		file  = t.file
		limit = t.program.Options.MaxRounds
	)
	//
	for {
		prev := file
		//
		if limit > 0 && t.round >= limit {
			return nil, fmt.Errorf("%w after %d rounds (%s)", ErrTooManyRounds, limit, file.Filename)
		}
		//
		t.round++
		//
		expanded, err := t.Expand(file)
		if err != nil {
			return nil, err
		}
		//
		hoists := t.ledger.Len()
		//
		if file, err = t.Materialize(expanded); err != nil {
			return nil, err
		}
		//
		log.Debugf("round %d: %s expanded (%d statements hoisted, changed %t)", t.round, file.Filename, hoists,
			file != prev)
		//
		if file == prev {
			return file, nil
		}
	}
}

// ============================================================================
// Expansion
// ============================================================================

// Expand rewrites all macro calls in a file bottom-up, such that every macro
// receives fully expanded arguments.  Statements hoisted by macros are
// recorded in the ledger, but not inserted.
func (t *Transformer) Expand(file *ast.SourceFile) (*ast.SourceFile, error) {
	t.adopt(file, nil)
	//
	nodes, err := t.visit(file)
	//
	if err != nil {
		return nil, err
	} else if len(nodes) != 1 {
		panic("unreachable")
	}
	//
	return nodes[0].(*ast.SourceFile), nil
}

// Visit expands any macro calls within a node created by the macro currently
// being expanded.
func (t *Transformer) Visit(node ast.Node) ([]ast.Node, error) {
	if call, ok := t.calls.Top(); ok {
		t.adopt(node, t.parentOf(call))
	}
	//
	return t.visit(node)
}

func (t *Transformer) visit(node ast.Node) ([]ast.Node, error) {
	// Children first
	result, err := t.rewriter.VisitEachChild(node, t.visit)
	//
	if err != nil {
		return nil, err
	} else if result == nil {
		// Expression statement whose expression vanished
		return nil, nil
	}
	//
	name, macro, ok := t.program.Registry.Lookup(result)
	//
	if !ok {
		return []ast.Node{result}, nil
	}
	//
	call := result.(*ast.CallExpression)
	//
	expansion, err := t.invoke(name, macro, call)
	//
	if err != nil {
		return nil, err
	} else if !expansion.IsSequence() || expansion.IsEmpty() {
		return expansion.Nodes(), nil
	}
	// Visit each element of the sequence in turn.
	var (
		parent  = t.parentOf(call)
		results []ast.Node
	)
	//
	for _, n := range expansion.Nodes() {
		t.adopt(n, parent)
		//
		nodes, err := t.visit(n)
		if err != nil {
			return nil, err
		}
		//
		results = append(results, nodes...)
	}
	//
	return results, nil
}

// Apply a macro to a call, wrapping any failure as a macro error.
func (t *Transformer) invoke(name string, macro Macro, call *ast.CallExpression) (Expansion, error) {
	var merr *MacroError
	//
	t.calls.Push(call)
	defer t.calls.Pop()
	//
	expansion, err := macro(call, t)
	//
	if err != nil && errors.As(err, &merr) {
		// Error arising from a nested expansion
		return expansion, err
	} else if err != nil {
		return expansion, &MacroError{name, t.Original(call), err}
	}
	//
	log.Tracef("expanded %s! into %d node(s)", name, len(expansion.Nodes()))
	//
	return expansion, nil
}

// ============================================================================
// Materialisation
// ============================================================================

// Materialize inserts all pending hoists into their destinations within the
// given tree, then clears the ledger.
func (t *Transformer) Materialize(file *ast.SourceFile) (*ast.SourceFile, error) {
	if t.ledger.IsEmpty() {
		return file, nil
	}
	//
	defer t.ledger.Clear()
	//
	nodes, err := t.materialize(file)
	//
	if err != nil {
		return nil, err
	} else if len(nodes) != 1 {
		panic("unreachable")
	}
	//
	return nodes[0].(*ast.SourceFile), nil
}

// Placement of a group of hoisted statements within a destination.
type placement struct {
	// Index of the statement before which the group is inserted, or -1 if
	// this could not be determined.
	index int
	// Registration order of the group.
	order int
	group *Group
}

func (t *Transformer) materialize(node ast.Node) ([]ast.Node, error) {
	result, err := t.rewriter.VisitEachChild(node, t.materialize)
	//
	if err != nil {
		return nil, err
	} else if !ast.IsHoistableDestination(result) {
		return []ast.Node{result}, nil
	} else if fn, ok := result.(ast.FunctionLike); ok && fn.FunctionBody() == nil {
		// Overload signature
		return []ast.Node{result}, nil
	}
	//
	destination := t.Original(result)
	groups := t.ledger.Groups(destination)
	//
	if len(groups) == 0 {
		return []ast.Node{result}, nil
	}
	//
	live, _ := ast.StatementsOf(result)
	placements := make([]placement, len(groups))
	//
	for i, group := range groups {
		placements[i] = placement{t.anchor(group.Origin, destination, live), i, group}
	}
	// Apply higher indices first, so that lower indices remain valid.  Groups
	// sharing an index are applied latest first, so that they end up in
	// registration order.
	slices.SortFunc(placements, func(a, b placement) int {
		if a.index != b.index {
			return b.index - a.index
		}
		//
		return b.order - a.order
	})
	//
	stmts := slices.Clone(live)
	//
	for _, p := range placements {
		stmts = slices.Insert(stmts, max(p.index, 0), p.group.Statements...)
	}
	//
	log.Tracef("materialised %d group(s) into %s", len(groups), ast.KindOf(result))
	//
	return []ast.Node{t.rewriter.WithStatements(result, stmts)}, nil
}

// Determine the index within the live statements of a destination of the
// statement enclosing an origin.  This is found by climbing from the origin to
// the destination, and then locating the child of the destination on that
// path.  If either step fails, this returns -1.
func (t *Transformer) anchor(origin ast.Node, destination ast.Node, live []ast.Statement) int {
	path := append([]ast.Node{origin}, t.Ancestors(origin)...)
	//
	for i := 1; i < len(path); i++ {
		ancestor := path[i]
		//
		if !ast.IsHoistableDestination(ancestor) || t.Original(ancestor) != destination {
			continue
		}
		//
		child := path[i-1]
		// The statements of a function live in its body.
		if fn, ok := ancestor.(ast.FunctionLike); ok {
			if i < 2 || t.Original(child) != t.Original(fn.FunctionBody()) {
				return -1
			}
			//
			child = path[i-2]
		}
		//
		return t.indexOf(child, ancestor, live)
	}
	//
	return -1
}

// Locate a statement by original identity within the live statement list of a
// destination.  If the statement itself is no longer present (e.g. because it
// consisted only of a macro call), then the index of the first statement
// following it in the statement list the destination had when observed that is
// still present is used instead.
func (t *Transformer) indexOf(stmt ast.Node, destination ast.Node, live []ast.Statement) int {
	var (
		target = t.Original(stmt)
		index  = make(map[ast.Node]int, len(live))
	)
	//
	for i, s := range live {
		index[t.Original(s)] = i
	}
	//
	if i, ok := index[target]; ok {
		return i
	}
	//
	stmts, _ := ast.StatementsOf(destination)
	//
	for i, s := range stmts {
		if t.Original(s) != target {
			continue
		}
		// Find first surviving successor
		for _, next := range stmts[i+1:] {
			if j, ok := index[t.Original(next)]; ok {
				return j
			}
		}
		//
		return len(live)
	}
	//
	return -1
}

// ============================================================================
// Context
// ============================================================================

// Hoist implementation for the Context interface.
func (t *Transformer) Hoist(origin ast.Node, destination ast.Node, stmt ast.Statement) {
	original := t.Original(destination)
	//
	log.Tracef("hoisting %s into %s", ast.KindOf(stmt), ast.KindOf(original))
	//
	t.ledger.Add(origin, original, stmt)
}

// File implementation for the Context interface.
func (t *Transformer) File() *ast.SourceFile {
	return t.file
}

// Original implementation for the Context interface.
func (t *Transformer) Original(node ast.Node) ast.Node {
	return t.rewriter.Origins().Original(node)
}

// Ancestors implementation for the Context interface.
func (t *Transformer) Ancestors(node ast.Node) []ast.Node {
	var (
		ancestors []ast.Node
		origins   = t.rewriter.Origins()
		seen      = make(map[ast.Node]bool)
	)
	//
	for n := node; n != nil && !seen[n]; {
		seen[n] = true
		//
		if parent, ok := t.parents[n]; ok {
			ancestors = append(ancestors, parent)
			n = parent
		} else if source := origins.Source(n); source != n {
			n = source
		} else {
			break
		}
	}
	//
	return ancestors
}

// UniqueName implementation for the Context interface.
func (t *Transformer) UniqueName(base string) *ast.Identifier {
	return ast.NewIdentifier(t.names.Fresh(base))
}

// ResultIdentifier implementation for the Context interface.
func (t *Transformer) ResultIdentifier(node ast.Node) (*ast.Identifier, bool) {
	fn, ok := ClosestFunction(t, node)
	//
	if !ok {
		return nil, false
	}
	//
	key := t.Original(fn)
	//
	if name, ok := t.results[key]; ok {
		return ast.NewIdentifier(name), true
	}
	//
	base := "result"
	//
	if name := fn.FunctionName(); name != "" {
		base = name + "__result"
	}
	//
	id := t.UniqueName(base)
	carrier := ast.NewObjectLiteral(false,
		ast.NewPropertyAssignment("value", ast.NewUndefined()),
		ast.NewPropertyAssignment("error", ast.NewUndefined()))
	//
	t.Hoist(node, t.file, ast.NewVariableStatement(ast.CONST, id.Name, carrier))
	t.results[key] = id.Name
	//
	return id, true
}

// Record the parent of a node, and of every node beneath it.  Nodes which were
// previously observed elsewhere are moved.
func (t *Transformer) adopt(node ast.Node, parent ast.Node) {
	var (
		rewriter = ast.NewRewriter(nil)
		visit    func(ast.Node, ast.Node)
	)
	//
	visit = func(n ast.Node, parent ast.Node) {
		if parent != nil {
			t.parents[n] = parent
		}
		// Identity visitors never fail.
		_, _ = rewriter.VisitEachChild(n, func(child ast.Node) ([]ast.Node, error) {
			visit(child, n)
			return []ast.Node{child}, nil
		})
	}
	//
	visit(node, parent)
}

func (t *Transformer) parentOf(node ast.Node) ast.Node {
	if ancestors := t.Ancestors(node); len(ancestors) > 0 {
		return ancestors[0]
	}
	//
	return nil
}
