package container

import (
	"sync"
	"testing"

	"github.com/azybler/hexgraph/pkg/grid"
)

func TestCellMapGetSetDelete(t *testing.T) {
	m := NewCellMap[int]()
	if _, ok := m.Get(grid.CellID(1)); ok {
		t.Fatalf("empty map should not have cell 1")
	}
	m.Set(grid.CellID(1), 42)
	if v, ok := m.Get(grid.CellID(1)); !ok || v != 42 {
		t.Errorf("Get(1) = (%d, %v), want (42, true)", v, ok)
	}
	m.Delete(grid.CellID(1))
	if _, ok := m.Get(grid.CellID(1)); ok {
		t.Errorf("cell 1 should be gone after Delete")
	}
}

func TestCellMapEntryMergeOnInsert(t *testing.T) {
	m := NewCellMap[[]int]()
	accumulate := func(existing []int, had bool) []int {
		return append(existing, 1)
	}
	m.Entry(grid.CellID(1), accumulate)
	m.Entry(grid.CellID(1), accumulate)
	m.Entry(grid.CellID(1), accumulate)

	got, _ := m.Get(grid.CellID(1))
	if len(got) != 3 {
		t.Errorf("Entry should accumulate across repeated calls, got %v", got)
	}
}

func TestCellMapRangeStopsEarly(t *testing.T) {
	m := NewCellMap[int]()
	for i := 0; i < 10; i++ {
		m.Set(grid.CellID(i), i)
	}
	seen := 0
	m.Range(func(cell grid.CellID, v int) bool {
		seen++
		return seen < 3
	})
	if seen != 3 {
		t.Errorf("Range should have stopped after 3 calls, saw %d", seen)
	}
}

func TestCellMapParallelRangeVisitsEveryEntry(t *testing.T) {
	m := NewCellMap[int]()
	const n = 50
	for i := 0; i < n; i++ {
		m.Set(grid.CellID(i), i)
	}

	var mu sync.Mutex
	visited := make(map[grid.CellID]bool, n)
	m.ParallelRange(func(cell grid.CellID, v int) {
		mu.Lock()
		visited[cell] = true
		mu.Unlock()
	})

	if len(visited) != n {
		t.Errorf("ParallelRange visited %d cells, want %d", len(visited), n)
	}
}

func TestCellMapDrainEmptiesTheMap(t *testing.T) {
	m := NewCellMap[int]()
	for i := 0; i < 5; i++ {
		m.Set(grid.CellID(i), i*10)
	}
	drained := make(map[grid.CellID]int, 5)
	m.Drain(func(cell grid.CellID, v int) {
		drained[cell] = v
	})
	if len(drained) != 5 {
		t.Errorf("Drain visited %d entries, want 5", len(drained))
	}
	if m.Len() != 0 {
		t.Errorf("map should be empty after Drain, has %d entries", m.Len())
	}
}

func TestCellMapCells(t *testing.T) {
	m := NewCellMap[int]()
	m.Set(grid.CellID(1), 1)
	m.Set(grid.CellID(2), 2)
	cells := m.Cells()
	if len(cells) != 2 {
		t.Errorf("Cells() len = %d, want 2", len(cells))
	}
}

func TestEdgeMapGetSetDeleteLen(t *testing.T) {
	m := NewEdgeMap[string]()
	m.Set(grid.EdgeID(1), "a")
	m.Set(grid.EdgeID(2), "b")
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if v, ok := m.Get(grid.EdgeID(1)); !ok || v != "a" {
		t.Errorf("Get(1) = (%q, %v), want (a, true)", v, ok)
	}
	m.Delete(grid.EdgeID(1))
	if m.Len() != 1 {
		t.Errorf("Len after delete = %d, want 1", m.Len())
	}
}

func TestEdgeMapEdges(t *testing.T) {
	m := NewEdgeMap[int]()
	m.Set(grid.EdgeID(10), 1)
	m.Set(grid.EdgeID(20), 2)
	edges := m.Edges()
	if len(edges) != 2 {
		t.Errorf("Edges() len = %d, want 2", len(edges))
	}
}

func TestEdgeMapParallelRangeVisitsEveryEntry(t *testing.T) {
	m := NewEdgeMap[int]()
	const n = 50
	for i := 0; i < n; i++ {
		m.Set(grid.EdgeID(i), i)
	}

	var mu sync.Mutex
	visited := make(map[grid.EdgeID]bool, n)
	m.ParallelRange(func(edge grid.EdgeID, v int) {
		mu.Lock()
		visited[edge] = true
		mu.Unlock()
	})

	if len(visited) != n {
		t.Errorf("ParallelRange visited %d edges, want %d", len(visited), n)
	}
}

func TestEdgeMapDrainEmptiesTheMap(t *testing.T) {
	m := NewEdgeMap[string]()
	m.Set(grid.EdgeID(1), "a")
	m.Set(grid.EdgeID(2), "b")
	drained := make(map[grid.EdgeID]string, 2)
	m.Drain(func(edge grid.EdgeID, v string) {
		drained[edge] = v
	})
	if len(drained) != 2 {
		t.Errorf("Drain visited %d entries, want 2", len(drained))
	}
	if m.Len() != 0 {
		t.Errorf("map should be empty after Drain, has %d entries", m.Len())
	}
}
