// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

type consumerResult bool

const (
	consumeContinue consumerResult = true
	consumeAbort    consumerResult = false
)

// forEachCase runs the given operation for every case index in [0, numCases)
// on numJobs parallel workers. Progress is reported periodically through the
// print function. Once an operation requests an abort, the remaining cases
// are skipped.
func forEachCase(
	numCases int,
	opFunction func(index int) consumerResult,
	printProgress func(relativeTime time.Duration, rate float64, current int64),
	numJobs int,
) {
	// Cases are distributed through a channel to a team of workers. A separate
	// goroutine reports progress until all workers are done.

	var caseCounter atomic.Int64
	var abort atomic.Bool

	done := make(chan bool)
	printerDone := make(chan bool)
	go func() {
		defer close(printerDone)
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		startTime := time.Now()
		lastTime := startTime
		lastCounter := int64(0)
		for {
			select {
			case <-done:
				return
			case curTime := <-ticker.C:
				cur := caseCounter.Load()

				diffCounter := cur - lastCounter
				diffTime := curTime.Sub(lastTime)

				lastTime = curTime
				lastCounter = cur

				rate := float64(diffCounter) / diffTime.Seconds()
				printProgress(curTime.Sub(startTime), rate, cur)
			}
		}
	}()

	var workers sync.WaitGroup
	workers.Add(numJobs)
	cases := make(chan int, 10*numJobs)
	for i := 0; i < numJobs; i++ {
		go func() {
			defer workers.Done()
			for index := range cases {
				if abort.Load() {
					continue // < drain the channel
				}
				caseCounter.Add(1)
				if opFunction(index) == consumeAbort {
					abort.Store(true)
				}
			}
		}()
	}

	for i := 0; i < numCases && !abort.Load(); i++ {
		cases <- i
	}
	close(cases)
	workers.Wait()

	close(done)
	<-printerDone
}
