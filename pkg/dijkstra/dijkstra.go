// Package dijkstra implements the single-origin shortest-path core: a
// concrete-typed binary heap (no container/heap interface boxing, the same
// performance tradeoff the teacher makes for its own query engine),
// shortcut expansion, destination-count early termination, and a
// weight-threshold flood-fill variant.
package dijkstra

import (
	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/edgepath"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/shortcut"
	"github.com/azybler/hexgraph/pkg/weight"
)

// heapItem is a priority-queue entry: a tentative cost to reach cell, and
// the edge that produced it, used only to break cost ties deterministically
// (smaller EdgeId wins, which in turn means smaller destination CellId).
type heapItem[W weight.Value[W]] struct {
	cost W
	cell grid.CellID
	via  grid.EdgeID
}

func less[W weight.Value[W]](a, b heapItem[W]) bool {
	if a.cost != b.cost {
		return a.cost.Less(b.cost)
	}
	return a.via < b.via
}

// minHeap is a concrete-typed min-heap, avoiding the interface boxing
// container/heap would impose on a generic cost type.
type minHeap[W weight.Value[W]] struct {
	items []heapItem[W]
}

func (h *minHeap[W]) Len() int { return len(h.items) }

func (h *minHeap[W]) Push(item heapItem[W]) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap[W]) Pop() heapItem[W] {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap[W]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap[W]) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// hop records how a cell was first reached: either a single plain edge, or
// a shortcut whose full chain must be spliced into the reconstructed path.
type hop[W weight.Value[W]] struct {
	fromCell grid.CellID
	viaEdge  grid.EdgeID
	viaChain *shortcut.Shortcut[W]
}

// ShortestPaths runs single-origin Dijkstra over g, reporting a Path for
// every cell in destinations it reaches, in the destination-discovery
// order capped by maxDestinations (maxDestinations <= 0 means unlimited —
// explore until every destination is reported or the queue drains).
// Shortcuts are used as a virtual single hop when the relaxation would
// otherwise need to walk every interior edge, but only when the shortcut's
// destination is itself graph-relevant (a destination cell, or a cell with
// its own outgoing edges); the returned EdgePath always lists every
// underlying edge, expanding the shortcut at reconstruction time.
func ShortestPaths[W weight.Value[W]](
	g preparedgraph.ReadGraph[W],
	origin grid.CellID,
	destinations *cellbitmap.CellBitmap,
	maxDestinations int,
) ([]edgepath.Path[W], error) {
	var zero W

	bestCost := container.NewCellMap[W]()
	preds := container.NewCellMap[hop[W]]()
	reported := cellbitmap.New()

	bestCost.Set(origin, zero)
	heap := &minHeap[W]{}
	heap.Push(heapItem[W]{cost: zero, cell: origin})

	wanted := destinations.Len()
	if maxDestinations > 0 && maxDestinations < wanted {
		wanted = maxDestinations
	}

	var results []grid.CellID

	for heap.Len() > 0 && len(results) < wanted {
		item := heap.Pop()
		known, _ := bestCost.Get(item.cell)
		if item.cost != known {
			continue // stale entry, a cheaper path already settled this cell
		}

		if destinations.Contains(item.cell) && !reported.Contains(item.cell) {
			reported.Insert(item.cell)
			results = append(results, item.cell)
			if len(results) >= wanted {
				break
			}
		}

		outgoing := g.EdgesOriginatingFrom(item.cell)
		for _, oe := range outgoing {
			destination := oe.Edge.Destination()

			useShortcut := false
			if oe.Entry.Shortcut != nil {
				scDest := oe.Entry.Shortcut.DestinationCell()
				if destinations.Contains(scDest) {
					useShortcut = true
				} else if _, isNode := g.CellNode(scDest); isNode {
					if len(g.EdgesOriginatingFrom(scDest)) > 0 {
						useShortcut = true
					}
				}
			}

			if useShortcut {
				scDest := oe.Entry.Shortcut.DestinationCell()
				newCost := item.cost.Add(oe.Entry.Shortcut.AggregatedWeight())
				relax(bestCost, preds, heap, item.cell, scDest, newCost, oe.Edge, oe.Entry.Shortcut)
				continue
			}

			newCost := item.cost.Add(oe.Entry.Weight)
			relax(bestCost, preds, heap, item.cell, destination, newCost, oe.Edge, nil)
		}
	}

	paths := make([]edgepath.Path[W], 0, len(results))
	for _, dest := range results {
		cost, _ := bestCost.Get(dest)
		ep := reconstruct(preds, origin, dest)
		paths = append(paths, edgepath.Path[W]{
			Origin:      origin,
			Destination: dest,
			Cost:        cost,
			EdgePath:    ep,
		})
	}
	edgepath.SortPaths(paths)
	return paths, nil
}

func relax[W weight.Value[W]](
	bestCost *container.CellMap[W],
	preds *container.CellMap[hop[W]],
	heap *minHeap[W],
	from, to grid.CellID,
	newCost W,
	viaEdge grid.EdgeID,
	viaChain *shortcut.Shortcut[W],
) {
	if existing, ok := bestCost.Get(to); ok && !newCost.Less(existing) {
		return
	}
	bestCost.Set(to, newCost)
	preds.Set(to, hop[W]{fromCell: from, viaEdge: viaEdge, viaChain: viaChain})
	heap.Push(heapItem[W]{cost: newCost, cell: to, via: viaEdge})
}

func reconstruct[W weight.Value[W]](preds *container.CellMap[hop[W]], origin, dest grid.CellID) edgepath.EdgePath {
	if origin == dest {
		return edgepath.SingleCell(origin)
	}
	var edges []grid.EdgeID
	cur := dest
	for cur != origin {
		h, ok := preds.Get(cur)
		if !ok {
			break
		}
		if h.viaChain != nil {
			chain := h.viaChain.Edges()
			edges = append(append([]grid.EdgeID{}, chain...), edges...)
		} else {
			edges = append([]grid.EdgeID{h.viaEdge}, edges...)
		}
		cur = h.fromCell
	}
	return edgepath.Sequence(edges)
}

// WithinWeightThreshold explores every cell reachable from origin whose
// accumulated cost stays at or below threshold, with no destination set
// and no priority cap, returning a CellMap of best cost per reached cell.
func WithinWeightThreshold[W weight.Value[W]](
	g preparedgraph.ReadGraph[W],
	origin grid.CellID,
	threshold W,
) *container.CellMap[W] {
	var zero W

	bestCost := container.NewCellMap[W]()
	bestCost.Set(origin, zero)

	heap := &minHeap[W]{}
	heap.Push(heapItem[W]{cost: zero, cell: origin})

	for heap.Len() > 0 {
		item := heap.Pop()
		known, _ := bestCost.Get(item.cell)
		if item.cost != known {
			continue
		}
		if threshold.Less(item.cost) {
			continue
		}

		outgoing := g.EdgesOriginatingFrom(item.cell)
		for _, oe := range outgoing {
			if oe.Entry.Shortcut != nil {
				scDest := oe.Entry.Shortcut.DestinationCell()
				newCost := item.cost.Add(oe.Entry.Shortcut.AggregatedWeight())
				if !threshold.Less(newCost) {
					if existing, ok := bestCost.Get(scDest); !ok || newCost.Less(existing) {
						bestCost.Set(scDest, newCost)
						heap.Push(heapItem[W]{cost: newCost, cell: scDest, via: oe.Edge})
					}
				}
				// The plain edge is relaxed as well, so the cells inside the
				// shortcut's chain are reached too.
			}

			destination := oe.Edge.Destination()
			newCost := item.cost.Add(oe.Entry.Weight)
			if !threshold.Less(newCost) {
				if existing, ok := bestCost.Get(destination); !ok || newCost.Less(existing) {
					bestCost.Set(destination, newCost)
					heap.Push(heapItem[W]{cost: newCost, cell: destination, via: oe.Edge})
				}
			}
		}
	}

	return bestCost
}
