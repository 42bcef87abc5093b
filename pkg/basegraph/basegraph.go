// Package basegraph holds the mutable edge-weight map ingest builds up,
// one resolution at a time, before it is consumed once into a
// PreparedGraph.
package basegraph

import (
	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/noderole"
	"github.com/azybler/hexgraph/pkg/weight"
)

// BaseGraph is a mutable edge→weight map at a single resolution. Insertion
// policy: the lower weight wins when an edge is inserted more than once.
// No implicit reverse edge is ever added.
type BaseGraph[W weight.Value[W]] struct {
	resolution int
	edges      *container.EdgeMap[W]
}

// New returns an empty BaseGraph at the given resolution.
func New[W weight.Value[W]](resolution int) *BaseGraph[W] {
	return &BaseGraph[W]{
		resolution: resolution,
		edges:      container.NewEdgeMap[W](),
	}
}

// Resolution returns the grid resolution every edge in this graph shares.
func (g *BaseGraph[W]) Resolution() int {
	return g.resolution
}

// NumEdges returns the number of distinct edges currently in the graph.
func (g *BaseGraph[W]) NumEdges() int {
	return g.edges.Len()
}

// AddEdge inserts edge with weight w, or, if the edge already exists,
// keeps whichever of the two weights is lower.
func (g *BaseGraph[W]) AddEdge(edge grid.EdgeID, w W) {
	if existing, ok := g.edges.Get(edge); ok {
		if w.Less(existing) {
			g.edges.Set(edge, w)
		}
		return
	}
	g.edges.Set(edge, w)
}

// Weight returns the weight currently stored for edge, if present.
func (g *BaseGraph[W]) Weight(edge grid.EdgeID) (W, bool) {
	return g.edges.Get(edge)
}

// Merge inserts every edge of other into g via AddEdge. Fails with a
// MixedResolutionsError if the two graphs are not at the same resolution.
func (g *BaseGraph[W]) Merge(other *BaseGraph[W]) error {
	if other.resolution != g.resolution {
		return hexerr.NewMixedResolutions(g.resolution, other.resolution)
	}
	other.edges.Range(func(edge grid.EdgeID, w W) bool {
		g.AddEdge(edge, w)
		return true
	})
	return nil
}

// RangeEdges calls fn once per (edge, weight) pair in the graph, in
// unspecified order. Used by PreparedGraph construction, which needs the
// full edge set rather than one cell's outgoing edges at a time.
func (g *BaseGraph[W]) RangeEdges(fn func(edge grid.EdgeID, w W) bool) {
	g.edges.Range(fn)
}

// EdgesFrom iterates over the outgoing edges of cell that exist in the
// graph, calling fn(edge, weight) for each.
func (g *BaseGraph[W]) EdgesFrom(cell grid.CellID, fn func(grid.EdgeID, W)) error {
	out, err := cell.EdgesOut()
	if err != nil {
		return err
	}
	for _, e := range out {
		if w, ok := g.edges.Get(e); ok {
			fn(e, w)
		}
	}
	return nil
}

// Nodes derives the full NodeRole map by scanning every edge: an edge's
// origin accumulates Origin, its destination accumulates Destination, and
// a cell seen as both accumulates OriginAndDestination. Expensive —
// callers should not invoke this on the query hot path.
func (g *BaseGraph[W]) Nodes() *container.CellMap[noderole.NodeRole] {
	roles := container.NewCellMap[noderole.NodeRole]()
	g.edges.Range(func(edge grid.EdgeID, _ W) bool {
		origin, destination := edge.Origin(), edge.Destination()
		roles.Entry(origin, func(existing noderole.NodeRole, had bool) noderole.NodeRole {
			if !had {
				return noderole.Origin
			}
			return noderole.Union(existing, noderole.Origin)
		})
		roles.Entry(destination, func(existing noderole.NodeRole, had bool) noderole.NodeRole {
			if !had {
				return noderole.Destination
			}
			return noderole.Union(existing, noderole.Destination)
		})
		return true
	})
	return roles
}

// Downsample produces a new BaseGraph at a strictly coarser resolution:
// each fine edge's endpoints are mapped to their ancestors at
// targetResolution; when the ancestors differ, a coarse edge connects
// them. When multiple fine edges collapse onto the same coarse edge,
// selector(existing, candidate) chooses which weight is kept. Fails with
// ResolutionNotLowerError if targetResolution >= g.resolution.
func (g *BaseGraph[W]) Downsample(targetResolution int, selector func(existing, candidate W) W) (*BaseGraph[W], error) {
	if targetResolution >= g.resolution {
		return nil, hexerr.NewResolutionNotLower(targetResolution)
	}
	out := New[W](targetResolution)
	var rangeErr error
	g.edges.Range(func(edge grid.EdgeID, w W) bool {
		origin, destination, err := edge.Endpoints()
		if err != nil {
			rangeErr = err
			return false
		}
		coarseOrigin, err := origin.Parent(targetResolution)
		if err != nil {
			rangeErr = err
			return false
		}
		coarseDestination, err := destination.Parent(targetResolution)
		if err != nil {
			rangeErr = err
			return false
		}
		if coarseOrigin == coarseDestination {
			return true
		}
		coarseEdges, err := coarseOrigin.EdgesOut()
		if err != nil {
			rangeErr = err
			return false
		}
		for _, ce := range coarseEdges {
			if ce.Destination() != coarseDestination {
				continue
			}
			if existing, ok := out.edges.Get(ce); ok {
				out.edges.Set(ce, selector(existing, w))
			} else {
				out.edges.Set(ce, w)
			}
			break
		}
		return true
	})
	if rangeErr != nil {
		return nil, rangeErr
	}
	return out, nil
}
