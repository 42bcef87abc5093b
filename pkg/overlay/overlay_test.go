package overlay

import (
	"testing"

	"github.com/azybler/hexgraph/pkg/basegraph"
	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/weight"
)

func walkChain(t *testing.T, lat, lng float64, resolution, n int) []grid.EdgeID {
	t.Helper()
	cell, err := grid.FromLatLng(lat, lng, resolution)
	if err != nil {
		t.Fatalf("FromLatLng: %v", err)
	}
	edges := make([]grid.EdgeID, 0, n)
	for i := 0; i < n; i++ {
		out, err := cell.EdgesOut()
		if err != nil || len(out) == 0 {
			t.Fatalf("EdgesOut: %v", err)
		}
		edges = append(edges, out[0])
		cell = out[0].Destination()
	}
	return edges
}

func buildPrepared(t *testing.T, edges []grid.EdgeID) *preparedgraph.PreparedGraph[weight.Millimeters] {
	t.Helper()
	bg := basegraph.New[weight.Millimeters](9)
	for _, e := range edges {
		bg.AddEdge(e, 10)
	}
	pg, err := preparedgraph.FromBaseGraph(bg, preparedgraph.DefaultMinShortcutLength)
	if err != nil {
		t.Fatalf("FromBaseGraph: %v", err)
	}
	return pg
}

func TestEdgesOriginatingFromExcludedCellIsEmpty(t *testing.T) {
	edges := walkChain(t, 1.3, 103.8, 9, 6)
	pg := buildPrepared(t, edges)

	origin := edges[0].Origin()
	exclude := cellbitmap.FromSlice([]grid.CellID{origin})
	o := New(pg, exclude)

	if out := o.EdgesOriginatingFrom(origin); out != nil {
		t.Errorf("EdgesOriginatingFrom(excluded cell) = %v, want nil", out)
	}
	if _, ok := o.CellNode(origin); ok {
		t.Errorf("CellNode(excluded cell) should report not-found")
	}
}

func TestEdgesOriginatingFromDropsEdgesIntoExcludedDestination(t *testing.T) {
	edges := walkChain(t, 1.3, 103.8, 9, 2)
	pg := buildPrepared(t, edges)

	origin := edges[0].Origin()
	excludedDest := edges[0].Destination()
	exclude := cellbitmap.FromSlice([]grid.CellID{excludedDest})
	o := New(pg, exclude)

	out := o.EdgesOriginatingFrom(origin)
	for _, e := range out {
		if e.Edge.Destination() == excludedDest {
			t.Errorf("an edge into an excluded cell should have been dropped")
		}
	}
}

func TestShortcutIsNulledWhenAnInteriorCellIsExcluded(t *testing.T) {
	edges := walkChain(t, 1.3, 103.8, 9, 6)
	pg := buildPrepared(t, edges)

	origin := edges[0].Origin()
	direct := pg.EdgesOriginatingFrom(origin)
	if len(direct) != 1 || direct[0].Entry.Shortcut == nil {
		t.Fatalf("expected a shortcut headed at the chain start before any exclusion")
	}

	interior := edges[2].Destination()
	if interior == edges[0].Destination() {
		t.Fatalf("test setup needs interior to differ from the head edge's immediate destination")
	}
	exclude := cellbitmap.FromSlice([]grid.CellID{interior})
	o := New(pg, exclude)

	out := o.EdgesOriginatingFrom(origin)
	if len(out) != 1 {
		t.Fatalf("excluding an interior shortcut cell should not remove the head edge itself, got %d edges", len(out))
	}
	if out[0].Entry.Shortcut != nil {
		t.Errorf("a shortcut touching an excluded interior cell should be nulled, not passed through")
	}
}

func TestResolutionDelegatesToWrappedGraph(t *testing.T) {
	edges := walkChain(t, 1.3, 103.8, 9, 2)
	pg := buildPrepared(t, edges)
	o := New(pg, cellbitmap.New())
	if o.Resolution() != pg.Resolution() {
		t.Errorf("Resolution() = %d, want %d", o.Resolution(), pg.Resolution())
	}
}
