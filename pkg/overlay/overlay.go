// Package overlay implements the read-only exclusion wrapper: a view over
// a PreparedGraph that hides a set of cells without mutating or copying
// the graph it wraps.
package overlay

import (
	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/noderole"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/weight"
)

// ExclusionOverlay wraps a PreparedGraph G and a CellBitmap X, presenting
// the same read interface as G with every cell in X hidden. Stateless and
// zero-copy beyond the filtered slice each EdgesOriginatingFrom call
// returns; it never mutates G or X.
type ExclusionOverlay[W weight.Value[W]] struct {
	graph   *preparedgraph.PreparedGraph[W]
	exclude *cellbitmap.CellBitmap
}

// New wraps graph, hiding every cell in exclude.
func New[W weight.Value[W]](graph *preparedgraph.PreparedGraph[W], exclude *cellbitmap.CellBitmap) *ExclusionOverlay[W] {
	return &ExclusionOverlay[W]{graph: graph, exclude: exclude}
}

// Resolution delegates to the wrapped graph.
func (o *ExclusionOverlay[W]) Resolution() int {
	return o.graph.Resolution()
}

// CellNode returns None (via the second, false return) if cell is
// excluded, otherwise delegates to the wrapped graph.
func (o *ExclusionOverlay[W]) CellNode(cell grid.CellID) (noderole.NodeRole, bool) {
	if o.exclude.Contains(cell) {
		return 0, false
	}
	return o.graph.CellNode(cell)
}

// EdgesOriginatingFrom returns an empty slice if cell is excluded;
// otherwise filters the wrapped graph's list, dropping any edge whose
// destination is excluded and nulling the shortcut field on any edge whose
// shortcut is not disjoint from the exclusion set.
func (o *ExclusionOverlay[W]) EdgesOriginatingFrom(cell grid.CellID) []preparedgraph.OutEdge[W] {
	if o.exclude.Contains(cell) {
		return nil
	}
	underlying := o.graph.EdgesOriginatingFrom(cell)
	out := make([]preparedgraph.OutEdge[W], 0, len(underlying))
	for _, e := range underlying {
		if o.exclude.Contains(e.Edge.Destination()) {
			continue
		}
		entry := e.Entry
		if entry.Shortcut != nil && !entry.Shortcut.IsDisjoint(o.exclude) {
			entry.Shortcut = nil
		}
		out = append(out, preparedgraph.OutEdge[W]{Edge: e.Edge, Entry: entry})
	}
	return out
}
