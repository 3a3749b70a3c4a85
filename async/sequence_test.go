// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package async

import (
	"sync"
	"testing"
)

func TestSequenceFirstErrorWins(t *testing.T) {
	seq := NewSequence()
	req1 := NewRequest(seq)
	req2 := NewRequest(seq)

	req1.Fail(NotPositiveDefinite, 0, 3)
	req2.Fail(IllegalValue, 2, 0)

	err, ok := seq.Status().(*Error)
	if !ok {
		t.Fatalf("sequence has no error after two failures")
	}
	if err.Kind != NotPositiveDefinite || err.Info != 3 {
		t.Errorf("sequence recorded %+v, want the first failure (NotPositiveDefinite, info=3)", err)
	}

	// Each request keeps its own status regardless of which error the
	// sequence absorbed first.
	req2err, ok := req2.Status().(*Error)
	if !ok || req2err.Kind != IllegalValue {
		t.Errorf("req2.Status() = %v, want IllegalValue", req2.Status())
	}
}

func TestSequenceMonotonicUnderConcurrency(t *testing.T) {
	seq := NewSequence()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := NewRequest(seq)
			req.Fail(InternalBlasFailure, 0, i)
		}(i)
	}
	wg.Wait()
	if seq.OK() {
		t.Fatal("sequence should have failed")
	}
	// Status must not change on further reads.
	first := seq.Status()
	for i := 0; i < 10; i++ {
		if seq.Status().(*Error).Info != first.(*Error).Info {
			t.Fatal("sequence status changed after first failure")
		}
	}
}

func TestWorkspacePerWorkerIsolation(t *testing.T) {
	ws := NewWorkspace[float64](4, 16)
	for i := 0; i < 4; i++ {
		buf := ws.Buffer(i)
		if len(buf) != 16 {
			t.Fatalf("worker %d buffer length = %d, want 16", i, len(buf))
		}
		buf[0] = float64(i)
	}
	for i := 0; i < 4; i++ {
		if ws.Buffer(i)[0] != float64(i) {
			t.Errorf("worker %d buffer was clobbered", i)
		}
	}
}
