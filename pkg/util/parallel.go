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
	"runtime"
	"sync"
)

// ParMap applies a function to every item of a worklist using a bounded number
// of go-routines, returning the results in worklist order.  A bound of zero
// uses one go-routine per available CPU.
func ParMap[T any, R any](worklist []T, workers uint, fn func(T) R) []R {
	var (
		results = make([]R, len(worklist))
		jobs    = make(chan int)
		wg      sync.WaitGroup
	)
	//
	if workers == 0 {
		workers = uint(runtime.NumCPU())
	}
	// No point spinning up more workers than jobs
	workers = max(1, min(workers, uint(len(worklist))))
	//
	for range workers {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			//
			for i := range jobs {
				results[i] = fn(worklist[i])
			}
		}()
	}
	// Distribute jobs
	for i := range worklist {
		jobs <- i
	}
	//
	close(jobs)
	wg.Wait()
	//
	return results
}
