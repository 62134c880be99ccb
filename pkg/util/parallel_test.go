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
package util

import (
	"sync/atomic"
	"testing"

	"github.com/consensys/go-jiewo/pkg/util/assert"
)

func Test_ParMap_01(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	//
	for _, workers := range []uint{0, 1, 2, 16} {
		squares := ParMap(items, workers, func(i int) int { return i * i })
		//
		assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64, 81}, squares)
	}
}

func Test_ParMap_02(t *testing.T) {
	var count atomic.Int32
	//
	results := ParMap([]string{}, 4, func(s string) int {
		count.Add(1)
		return len(s)
	})
	//
	assert.Equal(t, 0, len(results))
	assert.Equal(t, int32(0), count.Load())
}
