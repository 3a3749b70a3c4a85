// Copyright ©2024 The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package async

// Workspace is a per-worker collection of scratch buffers, each of length
// lwork, used by panel kernels (spec §3.3). It is allocated before a
// parallel region opens and freed after the region joins; no locking is
// needed since a given worker id is never driven by two goroutines at
// once (spec §5 "Shared resources").
type Workspace[T any] struct {
	spaces [][]T
}

// NewWorkspace allocates one buffer of length lwork for each of numWorkers
// workers.
func NewWorkspace[T any](numWorkers, lwork int) *Workspace[T] {
	w := &Workspace[T]{spaces: make([][]T, numWorkers)}
	for i := range w.spaces {
		w.spaces[i] = make([]T, lwork)
	}
	return w
}

// Buffer returns the scratch buffer for worker id.
func (w *Workspace[T]) Buffer(workerID int) []T {
	return w.spaces[workerID]
}

// Free releases every worker's buffer. As with Sequence.Destroy, this
// exists for lifecycle symmetry with the originating plasma_workspace API;
// the garbage collector does the actual reclamation.
func (w *Workspace[T]) Free() {
	w.spaces = nil
}
