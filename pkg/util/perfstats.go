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
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time and memory consumed by some unit of work, such
// as the expansion of a single file.
type PerfStats struct {
	// Time at which the work started
	startTime time.Time
	// Total bytes allocated when the work started
	startMem uint64
	// Number of gc cycles when the work started
	startGc uint32
}

// NewPerfStats takes a snapshot of the current time and memory usage.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Log reports (at debug level) the work done since the snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	var (
		alloc    = float64(m.TotalAlloc-p.startMem) / MEGABYTE
		gcs      = m.NumGC - p.startGc
		exectime = time.Since(p.startTime).Seconds()
	)
	//
	log.Debugf("%s took %0.3fs using %0.1f Mb (%d GC events)", prefix, exectime, alloc, gcs)
}

// MEGABYTE is the number of bytes in a megabyte.
const MEGABYTE = 1024 * 1024
