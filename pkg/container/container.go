// Package container provides the two generic keyed collections the rest of
// hexgraph is built on: a map keyed by cell id and a map keyed by edge id.
// Plain Go maps underneath — the teacher never reaches for a concurrent-map
// library for this, and neither do we.
package container

import (
	"sync"

	"github.com/azybler/hexgraph/pkg/grid"
)

// CellMap is a map keyed by grid.CellID.
type CellMap[V any] struct {
	m map[grid.CellID]V
}

// NewCellMap returns an empty CellMap.
func NewCellMap[V any]() *CellMap[V] {
	return &CellMap[V]{m: make(map[grid.CellID]V)}
}

// NewCellMapWithCapacity preallocates for n entries.
func NewCellMapWithCapacity[V any](n int) *CellMap[V] {
	return &CellMap[V]{m: make(map[grid.CellID]V, n)}
}

func (cm *CellMap[V]) Get(cell grid.CellID) (V, bool) {
	v, ok := cm.m[cell]
	return v, ok
}

func (cm *CellMap[V]) Set(cell grid.CellID, v V) {
	cm.m[cell] = v
}

func (cm *CellMap[V]) Delete(cell grid.CellID) {
	delete(cm.m, cell)
}

func (cm *CellMap[V]) Len() int {
	return len(cm.m)
}

// Entry applies update to the existing value for cell (or the zero value,
// if absent) and stores the result. Mirrors the teacher's merge-on-insert
// pattern (pkg/graph/builder.go's counting-sort accumulation) generalized
// to an arbitrary value type.
func (cm *CellMap[V]) Entry(cell grid.CellID, update func(existing V, had bool) V) {
	existing, had := cm.m[cell]
	cm.m[cell] = update(existing, had)
}

// Range calls fn for every entry in unspecified order. Stops early if fn
// returns false.
func (cm *CellMap[V]) Range(fn func(cell grid.CellID, v V) bool) {
	for k, v := range cm.m {
		if !fn(k, v) {
			return
		}
	}
}

// Drain calls fn once for every entry, removing each entry as it is visited,
// and leaves the map empty. Mirrors the original's paths_before.drain() used
// while folding a before-map into a diff.
func (cm *CellMap[V]) Drain(fn func(cell grid.CellID, v V)) {
	for k, v := range cm.m {
		delete(cm.m, k)
		fn(k, v)
	}
}

// Cells returns the map's keys in unspecified order.
func (cm *CellMap[V]) Cells() []grid.CellID {
	out := make([]grid.CellID, 0, len(cm.m))
	for k := range cm.m {
		out = append(out, k)
	}
	return out
}

// ParallelRange calls fn once per entry, fanned out across goroutines, and
// waits for every call to finish before returning. Used by the orchestrator
// for per-origin work where the teacher would use per-query goroutines
// feeding into a sync.WaitGroup barrier.
func (cm *CellMap[V]) ParallelRange(fn func(cell grid.CellID, v V)) {
	var wg sync.WaitGroup
	wg.Add(len(cm.m))
	for k, v := range cm.m {
		go func(cell grid.CellID, val V) {
			defer wg.Done()
			fn(cell, val)
		}(k, v)
	}
	wg.Wait()
}

// EdgeMap is a map keyed by grid.EdgeID.
type EdgeMap[V any] struct {
	m map[grid.EdgeID]V
}

// NewEdgeMap returns an empty EdgeMap.
func NewEdgeMap[V any]() *EdgeMap[V] {
	return &EdgeMap[V]{m: make(map[grid.EdgeID]V)}
}

func (em *EdgeMap[V]) Get(edge grid.EdgeID) (V, bool) {
	v, ok := em.m[edge]
	return v, ok
}

func (em *EdgeMap[V]) Set(edge grid.EdgeID, v V) {
	em.m[edge] = v
}

func (em *EdgeMap[V]) Delete(edge grid.EdgeID) {
	delete(em.m, edge)
}

func (em *EdgeMap[V]) Len() int {
	return len(em.m)
}

func (em *EdgeMap[V]) Range(fn func(edge grid.EdgeID, v V) bool) {
	for k, v := range em.m {
		if !fn(k, v) {
			return
		}
	}
}

func (em *EdgeMap[V]) Edges() []grid.EdgeID {
	out := make([]grid.EdgeID, 0, len(em.m))
	for k := range em.m {
		out = append(out, k)
	}
	return out
}

// Drain calls fn once for every entry, removing each entry as it is visited,
// and leaves the map empty.
func (em *EdgeMap[V]) Drain(fn func(edge grid.EdgeID, v V)) {
	for k, v := range em.m {
		delete(em.m, k)
		fn(k, v)
	}
}

// ParallelRange calls fn once per entry, fanned out across goroutines, and
// waits for every call to finish before returning.
func (em *EdgeMap[V]) ParallelRange(fn func(edge grid.EdgeID, v V)) {
	var wg sync.WaitGroup
	wg.Add(len(em.m))
	for k, v := range em.m {
		go func(edge grid.EdgeID, val V) {
			defer wg.Done()
			fn(edge, val)
		}(k, v)
	}
	wg.Wait()
}
