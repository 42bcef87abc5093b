// Package preparedgraph builds and serves the immutable, query-time graph
// representation: every base-graph edge plus, where a non-forking chain of
// at least L edges was found starting at it, a derived Shortcut.
package preparedgraph

import (
	"sort"

	"github.com/azybler/hexgraph/pkg/basegraph"
	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/noderole"
	"github.com/azybler/hexgraph/pkg/shortcut"
	"github.com/azybler/hexgraph/pkg/weight"
)

// MinShortcutLength is the 3-edge floor below which a caller-requested
// minimum shortcut length is rejected.
const MinShortcutLength = 3

// DefaultMinShortcutLength is used when a caller has no particular
// preference.
const DefaultMinShortcutLength = 4

// EdgeEntry is one outgoing edge's query-time payload: its own weight,
// plus, only on shortcut head edges, the Shortcut it heads.
type EdgeEntry[W weight.Value[W]] struct {
	Weight   W
	Shortcut *shortcut.Shortcut[W]
}

// PreparedGraph is the immutable, shareable-across-threads graph every
// query family reads from. Construct once from a BaseGraph; it is never
// mutated afterward.
type PreparedGraph[W weight.Value[W]] struct {
	resolution int
	nodeRoles  *container.CellMap[noderole.NodeRole]
	outgoing   *container.CellMap[[]OutEdge[W]]
}

// OutEdge pairs an edge id with its query-time payload, the unit stored in
// a PreparedGraph's per-cell outgoing list.
type OutEdge[W weight.Value[W]] struct {
	Edge  grid.EdgeID
	Entry EdgeEntry[W]
}

// ReadGraph is the capability set Dijkstra and the orchestrator consume:
// satisfied directly by *PreparedGraph and, filtered, by *overlay.ExclusionOverlay.
// Read operations are specified as a capability set rather than tied to one
// concrete type so the overlay can substitute for the graph it wraps
// without the query layer knowing the difference.
type ReadGraph[W weight.Value[W]] interface {
	Resolution() int
	CellNode(cell grid.CellID) (noderole.NodeRole, bool)
	EdgesOriginatingFrom(cell grid.CellID) []OutEdge[W]
}

// Stats summarizes a graph for logging and introspection, mirroring the
// GetStats capability the original routing core exposes to its CLI/service
// layer.
type Stats struct {
	Resolution int
	NumNodes   int
	NumEdges   int
}

// Resolution returns the grid resolution of every cell and edge in g.
func (g *PreparedGraph[W]) Resolution() int {
	return g.resolution
}

// CellNode returns the NodeRole recorded for cell, if any.
func (g *PreparedGraph[W]) CellNode(cell grid.CellID) (noderole.NodeRole, bool) {
	return g.nodeRoles.Get(cell)
}

// EdgesOriginatingFrom returns the immutable, EdgeId-sorted slice of
// outgoing edges for cell.
func (g *PreparedGraph[W]) EdgesOriginatingFrom(cell grid.CellID) []OutEdge[W] {
	entries, _ := g.outgoing.Get(cell)
	return entries
}

// CountEdges returns (numEdges, numShortcuts).
func (g *PreparedGraph[W]) CountEdges() (numEdges, numShortcuts int) {
	g.outgoing.Range(func(_ grid.CellID, entries []OutEdge[W]) bool {
		numEdges += len(entries)
		for _, e := range entries {
			if e.Entry.Shortcut != nil {
				numShortcuts++
			}
		}
		return true
	})
	return numEdges, numShortcuts
}

// Stats reports resolution, node and edge counts.
func (g *PreparedGraph[W]) Stats() Stats {
	numEdges, _ := g.CountEdges()
	return Stats{
		Resolution: g.resolution,
		NumNodes:   g.nodeRoles.Len(),
		NumEdges:   numEdges,
	}
}

// IterEdges calls fn once per (edge, entry) pair across the whole graph.
func (g *PreparedGraph[W]) IterEdges(fn func(grid.EdgeID, EdgeEntry[W])) {
	g.outgoing.Range(func(_ grid.CellID, entries []OutEdge[W]) bool {
		for _, e := range entries {
			fn(e.Edge, e.Entry)
		}
		return true
	})
}

// IterEdgesNonOverlapping calls fn once per edge that is not covered by
// any shortcut: shortcut head edges and ordinary edges are yielded, while
// every other edge of a shortcut's chain, including its last edge, is
// skipped.
func (g *PreparedGraph[W]) IterEdgesNonOverlapping(fn func(grid.EdgeID, EdgeEntry[W])) {
	covered := make(map[grid.EdgeID]struct{})
	g.outgoing.Range(func(_ grid.CellID, entries []OutEdge[W]) bool {
		for _, e := range entries {
			if e.Entry.Shortcut == nil {
				continue
			}
			for _, inner := range e.Entry.Shortcut.Edges() {
				covered[inner] = struct{}{}
			}
		}
		return true
	})
	g.outgoing.Range(func(_ grid.CellID, entries []OutEdge[W]) bool {
		for _, e := range entries {
			if e.Entry.Shortcut == nil {
				if _, isCovered := covered[e.Edge]; isCovered {
					continue
				}
			}
			fn(e.Edge, e.Entry)
		}
		return true
	})
}

// ToBaseGraph flattens the prepared graph back into a BaseGraph of plain
// (edge, weight) pairs, discarding every derived shortcut. Round-trips the
// set of edges a BaseGraph → PreparedGraph → BaseGraph conversion started
// with.
func (g *PreparedGraph[W]) ToBaseGraph() *basegraph.BaseGraph[W] {
	out := basegraph.New[W](g.resolution)
	g.IterEdges(func(edge grid.EdgeID, entry EdgeEntry[W]) {
		out.AddEdge(edge, entry.Weight)
	})
	return out
}

// FromBaseGraph constructs a PreparedGraph from bg, deriving shortcuts for
// every non-forking chain of at least minShortcutLength edges. Fails with
// a ShortcutTooShortError if minShortcutLength is below the 3-edge floor.
func FromBaseGraph[W weight.Value[W]](bg *basegraph.BaseGraph[W], minShortcutLength int) (*PreparedGraph[W], error) {
	if minShortcutLength < MinShortcutLength {
		return nil, hexerr.NewShortcutTooShort(minShortcutLength)
	}

	weights := collectWeights(bg)

	byCell := container.NewCellMap[[]OutEdge[W]]()
	for edge, w := range weights {
		origin, entry := assembleEdgeWithShortcut(weights, minShortcutLength, edge, w)
		byCell.Entry(origin, func(existing []OutEdge[W], had bool) []OutEdge[W] {
			return append(existing, OutEdge[W]{Edge: edge, Entry: entry})
		})
	}

	// Sort each per-cell list by EdgeId and dedup, keeping the first after
	// sort — duplicates are not expected under normal ingest since bg.edges
	// is already a map keyed by EdgeId.
	byCell.Range(func(cell grid.CellID, entries []OutEdge[W]) bool {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Edge < entries[j].Edge })
		deduped := entries[:0]
		var lastEdge grid.EdgeID
		for i, e := range entries {
			if i > 0 && e.Edge == lastEdge {
				continue
			}
			deduped = append(deduped, e)
			lastEdge = e.Edge
		}
		byCell.Set(cell, deduped)
		return true
	})

	return &PreparedGraph[W]{
		resolution: bg.Resolution(),
		nodeRoles:  bg.Nodes(),
		outgoing:   byCell,
	}, nil
}

func collectWeights[W weight.Value[W]](bg *basegraph.BaseGraph[W]) map[grid.EdgeID]W {
	out := make(map[grid.EdgeID]W, bg.NumEdges())
	bg.RangeEdges(func(edge grid.EdgeID, w W) bool {
		out[edge] = w
		return true
	})
	return out
}

// assembleEdgeWithShortcut implements spec §4.6 step 1-4 for a single edge:
// it always returns an entry carrying edge's own weight, and additionally
// attaches a Shortcut when edge heads a non-forking chain of at least
// minShortcutLength edges.
func assembleEdgeWithShortcut[W weight.Value[W]](
	weights map[grid.EdgeID]W,
	minShortcutLength int,
	edge grid.EdgeID,
	w W,
) (grid.CellID, EdgeEntry[W]) {
	entry := EdgeEntry[W]{Weight: w}
	origin := edge.Origin()

	// "True predecessors": other edges out of origin whose reverse exists
	// in the graph, i.e. neighbors with an edge leading into origin.
	outFromOrigin, err := origin.EdgesOut()
	numPredecessors := 0
	if err == nil {
		for _, candidate := range outFromOrigin {
			if candidate == edge {
				continue
			}
			rev, err := candidate.Reverse()
			if err != nil {
				continue
			}
			if _, ok := weights[rev]; ok {
				numPredecessors++
			}
		}
	}

	if numPredecessors == 1 {
		// Interior to a chain headed earlier; no shortcut attached here.
		return origin, entry
	}

	chain := []grid.EdgeID{edge}
	chainSet := map[grid.EdgeID]bool{edge: true}
	last := edge
	for {
		lastReverse, err := last.Reverse()
		if err != nil {
			lastReverse = last // never matches a real continuation
		}
		following, err := last.Destination().EdgesOut()
		if err != nil {
			break
		}
		var next grid.EdgeID
		count := 0
		for _, candidate := range following {
			if candidate == lastReverse {
				continue
			}
			if _, ok := weights[candidate]; !ok {
				continue
			}
			next = candidate
			count++
		}
		if count != 1 {
			break
		}
		if chainSet[next] {
			break
		}
		chain = append(chain, next)
		chainSet[next] = true
		last = next
	}

	if len(chain) >= minShortcutLength {
		sc, err := shortcut.New(chain, func(e grid.EdgeID) W { return weights[e] })
		if err == nil {
			entry.Shortcut = sc
		}
	}

	return origin, entry
}
