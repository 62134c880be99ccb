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
	"fmt"

	"github.com/consensys/go-jiewo/pkg/ts/ast"
)

// Names generates identifiers which are unique within a given file, in the
// form "base_N" where N counts from 1 for each base.
type Names struct {
	used     map[string]bool
	counters map[string]uint
}

// NewNames constructs a name generator which avoids every identifier already
// used in the given tree.
func NewNames(root ast.Node) *Names {
	used := make(map[string]bool)
	//
	ast.Inspect(root, func(node ast.Node) bool {
		if id, ok := node.(*ast.Identifier); ok {
			used[id.Name] = true
		}
		//
		return true
	})
	//
	return &Names{used, make(map[string]uint)}
}

// Fresh returns the next unused name for a given base.
func (p *Names) Fresh(base string) string {
	for i := p.counters[base] + 1; ; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		//
		if !p.used[name] {
			p.used[name] = true
			p.counters[base] = i
			//
			return name
		}
	}
}
