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

// BatchJob represents an atomic unit of work within one batch.  All jobs in a
// batch are mutually independent and, hence, can be executed concurrently.
// The batch as a whole completes only when every job in it has completed (a
// join barrier), at which point results are consumed in job order.
type BatchJob[R any] func() R

// RunBatch executes all jobs of one batch across at most nWorkers goroutines,
// returning their results in job order.  Result order is therefore
// deterministic regardless of the actual execution interleaving.  If nWorkers
// is zero then runtime.NumCPU() workers are used; a single worker degrades to
// plain sequential execution without spawning any goroutine.
func RunBatch[R any](nWorkers uint, jobs []BatchJob[R]) []R {
	results := make([]R, len(jobs))
	//
	if nWorkers == 0 {
		nWorkers = uint(runtime.NumCPU())
	}
	// Avoid goroutine overhead for trivial batches.
	if nWorkers == 1 || len(jobs) == 1 {
		for i, job := range jobs {
			results[i] = job()
		}
		//
		return results
	}
	//
	var wg sync.WaitGroup
	// Jobs are handed out through a channel, such that a slow job does not
	// stall unrelated workers.
	work := make(chan int, len(jobs))
	//
	for i := range jobs {
		work <- i
	}
	//
	close(work)
	//
	for w := uint(0); w < min(nWorkers, uint(len(jobs))); w++ {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			//
			for i := range work {
				results[i] = jobs[i]()
			}
		}()
	}
	// Join barrier: no result is observed until every job completed.
	wg.Wait()
	//
	return results
}
