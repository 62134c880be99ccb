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
// Package printer emits JavaScript for TypeScript syntax trees.  Type
// annotations, type declarations, type assertions and other constructs without
// runtime semantics are erased.
package printer

import (
	"strings"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Printer encapsulates the configuration options used when printing syntax
// trees.
type Printer struct {
	// Text used for one level of indentation
	indent string
}

// NewPrinter constructs a default printer, which indents using four spaces.
func NewPrinter() *Printer {
	return &Printer{"    "}
}

// Indent configures the number of spaces used for each level of indentation.
func (p *Printer) Indent(width uint) *Printer {
	p.indent = strings.Repeat(" ", int(width))
	return p
}

// Print a source file, with each top-level statement on its own line.
func (p *Printer) Print(file *ast.SourceFile) string {
	e := emitter{indent: p.indent}
	//
	for _, stmt := range file.Statements {
		if !isErased(stmt) {
			e.statement(stmt)
			e.newline()
		}
	}
	//
	return e.out.String()
}

// PrintNode prints an arbitrary node, such as an expression or a statement.
// This is useful for debugging and for reporting errors.
func (p *Printer) PrintNode(node ast.Node) string {
	e := emitter{indent: p.indent}
	//
	switch n := node.(type) {
	case *ast.SourceFile:
		return p.Print(n)
	case ast.Statement:
		e.statement(n)
	case ast.Expression:
		e.expression(n)
	case ast.ClassMember:
		e.classMember(n)
	case *ast.Parameter:
		e.parameter(n)
	default:
		e.write("<", ast.KindOf(node), ">")
	}
	//
	return e.out.String()
}

// Print a file using the default printer.
func Print(file *ast.SourceFile) string {
	return NewPrinter().Print(file)
}

// PrintNode prints a node using the default printer.
func PrintNode(node ast.Node) string {
	return NewPrinter().PrintNode(node)
}

// emitter accumulates the output of a single print.
type emitter struct {
	out    strings.Builder
	indent string
	// Current indentation level
	level int
	// Nesting depth of single-line blocks, within which line breaks are
	// printed as spaces.
	inline int
	// Name of the enclosing namespace (if any), which receives the exported
	// declarations of its body.
	namespace string
}

func (p *emitter) write(strs ...string) {
	for _, s := range strs {
		p.out.WriteString(s)
	}
}

func (p *emitter) newline() {
	if p.inline > 0 {
		p.out.WriteByte(' ')
		return
	}
	//
	p.out.WriteByte('\n')
	//
	for range p.level {
		p.out.WriteString(p.indent)
	}
}

// Write a comma-separated list, either on one line or with each item on its
// own line.
func (p *emitter) list(n int, multiline bool, trailing bool, item func(int)) {
	multiline = multiline && p.inline == 0
	//
	if multiline {
		p.level++
	}
	//
	for i := range n {
		if multiline {
			p.newline()
		} else if i > 0 {
			p.write(" ")
		}
		//
		item(i)
		//
		if i+1 < n || trailing {
			p.write(",")
		}
	}
	//
	if multiline {
		p.level--
		p.newline()
	}
}

// Write those modifiers which carry runtime semantics, each followed by a
// space.  Within a namespace, exports are assigned to the namespace instead.
func (p *emitter) modifiers(mods ast.Modifiers) {
	for _, mod := range mods {
		switch mod {
		case "export", "default":
			if p.namespace == "" {
				p.write(mod, " ")
			}
		case "async", "static":
			p.write(mod, " ")
		}
	}
}
