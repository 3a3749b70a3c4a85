// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tessera-hpc/tessera/async"
)

// TestSchedulerSafety reproduces spec §8 invariant 4: no two tasks with
// overlapping non-In regions execute concurrently. Each task holds a
// per-region "occupied" flag for a short sleep; a second task touching the
// same region concurrently would observe it already held.
func TestSchedulerSafety(t *testing.T) {
	pool := NewPool(8)
	defer pool.Close()
	seq := async.NewSequence()

	tile := make([]float64, 16)
	var occupied int32
	var violations int32

	const n = 40
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		pool.Submit(seq, []Dependency{Dep(tile, InOut)}, func(workerID int) {
			defer wg.Done()
			if !atomic.CompareAndSwapInt32(&occupied, 0, 1) {
				atomic.AddInt32(&violations, 1)
				return
			}
			time.Sleep(time.Millisecond)
			atomic.StoreInt32(&occupied, 0)
		})
	}
	pool.Wait()
	wg.Wait()
	if violations != 0 {
		t.Fatalf("%d overlapping InOut tasks ran concurrently", violations)
	}
}

// TestReadersRunConcurrently checks that In-only accesses to the same
// region do not serialize each other.
func TestReadersRunConcurrently(t *testing.T) {
	pool := NewPool(8)
	defer pool.Close()
	seq := async.NewSequence()

	tile := make([]float64, 16)
	var concurrent int32
	var maxConcurrent int32

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		pool.Submit(seq, []Dependency{Dep(tile, In)}, func(workerID int) {
			defer wg.Done()
			c := atomic.AddInt32(&concurrent, 1)
			for {
				old := atomic.LoadInt32(&maxConcurrent)
				if c <= old || atomic.CompareAndSwapInt32(&maxConcurrent, old, c) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&concurrent, -1)
		})
	}
	pool.Wait()
	wg.Wait()
	if maxConcurrent < 2 {
		t.Errorf("readers serialized: max concurrency = %d, want >= 2", maxConcurrent)
	}
}

// TestSequenceCancellationNoOps reproduces spec §8 invariant 5: once a
// sequence fails, task bodies submitted afterward perform no writes.
func TestSequenceCancellationNoOps(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()
	seq := async.NewSequence()
	req := async.NewRequest(seq)

	tile := make([]float64, 4)
	req.Fail(async.InternalBlasFailure, 0, 0)

	ran := false
	pool.Submit(seq, []Dependency{Dep(tile, InOut)}, func(workerID int) {
		ran = true
		tile[0] = 99
	})
	pool.Wait()

	if ran {
		t.Error("task body ran after sequence failed")
	}
	if tile[0] == 99 {
		t.Error("task wrote to its region after sequence failed")
	}
}
