// Package edgepath implements the route-shaped types shared by every query
// family: a sequence of directed edges (or a trivial single-cell path), and
// the cost-annotated Path wrapping it.
package edgepath

import (
	"sort"

	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/weight"
)

// EdgePath is either a trivial single-cell path (origin == destination) or
// a contiguous, non-empty sequence of directed edges where each edge's
// destination is the next edge's origin.
type EdgePath struct {
	single   grid.CellID
	isSingle bool
	edges    []grid.EdgeID
}

// SingleCell builds a trivial path that starts and ends at c without
// traversing any edge.
func SingleCell(c grid.CellID) EdgePath {
	return EdgePath{single: c, isSingle: true}
}

// Sequence builds a path from a contiguous, non-empty chain of edges. The
// chain is not validated for contiguity here — callers that assemble
// chains themselves (Dijkstra reconstruction, shortcut expansion) already
// guarantee it by construction; ValidateContiguous is available for
// chains arriving from less trusted sources.
func Sequence(edges []grid.EdgeID) EdgePath {
	return EdgePath{edges: edges}
}

// ValidateContiguous checks edges[i].destination == edges[i+1].origin for
// every adjacent pair, returning ErrSegmentedPath on the first break.
func ValidateContiguous(edges []grid.EdgeID) error {
	for i := 0; i+1 < len(edges); i++ {
		if edges[i].Destination() != edges[i+1].Origin() {
			return hexerr.ErrSegmentedPath
		}
	}
	return nil
}

// IsEmpty reports whether the path traverses no edges (true only for
// SingleCell paths).
func (p EdgePath) IsEmpty() bool {
	return p.isSingle
}

// Len returns the number of edges (0 for a SingleCell path).
func (p EdgePath) Len() int {
	return len(p.edges)
}

// Edges returns the underlying edge sequence, nil for a SingleCell path.
func (p EdgePath) Edges() []grid.EdgeID {
	return p.edges
}

// OriginCell returns the path's first cell.
func (p EdgePath) OriginCell() (grid.CellID, error) {
	if p.isSingle {
		return p.single, nil
	}
	if len(p.edges) == 0 {
		return 0, hexerr.ErrEmptyPath
	}
	return p.edges[0].Origin(), nil
}

// DestinationCell returns the path's last cell.
func (p EdgePath) DestinationCell() (grid.CellID, error) {
	if p.isSingle {
		return p.single, nil
	}
	if len(p.edges) == 0 {
		return 0, hexerr.ErrEmptyPath
	}
	return p.edges[len(p.edges)-1].Destination(), nil
}

// Cells returns every cell the path touches, deduplicating the trivial
// repeat between one edge's destination and the next edge's origin.
func (p EdgePath) Cells() []grid.CellID {
	if p.isSingle {
		return []grid.CellID{p.single}
	}
	if len(p.edges) == 0 {
		return nil
	}
	cells := make([]grid.CellID, 0, len(p.edges)+1)
	cells = append(cells, p.edges[0].Origin())
	for _, e := range p.edges {
		cells = append(cells, e.Destination())
	}
	return cells
}

// LengthMeters sums per-edge length, which the grid library exposes as a
// pure function of resolution (grid.AvgEdgeLength).
func (p EdgePath) LengthMeters() float64 {
	if p.isSingle || len(p.edges) == 0 {
		return 0
	}
	origin, err := p.OriginCell()
	if err != nil {
		return 0
	}
	perEdge := grid.AvgEdgeLength(origin.Resolution())
	return perEdge * float64(len(p.edges))
}

// Point is a geographic coordinate, the minimal geometry type the core
// needs to round-trip a path into a line — the core does no projection or
// rendering beyond this (the grid library supplies the underlying
// lat/lng for each cell).
type Point struct {
	Lat, Lng float64
}

// ToLineString produces a single continuous line through every cell
// center the path visits. Fails with ErrInsufficientEdges if the path is
// empty and has no origin to anchor on, or ErrSegmentedPath if the edge
// sequence is not contiguous.
func (p EdgePath) ToLineString() ([]Point, error) {
	if p.isSingle {
		lat, lng, err := p.single.LatLng()
		if err != nil {
			return nil, err
		}
		return []Point{{Lat: lat, Lng: lng}}, nil
	}
	if len(p.edges) == 0 {
		return nil, hexerr.ErrInsufficientEdges
	}
	if err := ValidateContiguous(p.edges); err != nil {
		return nil, err
	}
	cells := p.Cells()
	line := make([]Point, len(cells))
	for i, c := range cells {
		lat, lng, err := c.LatLng()
		if err != nil {
			return nil, err
		}
		line[i] = Point{Lat: lat, Lng: lng}
	}
	return line, nil
}

// Path is a cost-annotated route between a query origin and destination.
// origin/destination may differ from edge_path's first/last cell when the
// query cells were snapped onto graph-attached neighbors.
type Path[W weight.Value[W]] struct {
	Origin      grid.CellID
	Destination grid.CellID
	Cost        W
	EdgePath    EdgePath
}

// tieBreakCells returns the graph-level origin/destination baked into the
// path's edge_path, which is what Less ties on. Falls back to the query-level
// Origin/Destination fields only for a malformed zero-edge, non-single
// EdgePath, which OriginCell/DestinationCell reject with ErrEmptyPath.
func (p Path[W]) tieBreakCells() (grid.CellID, grid.CellID) {
	origin, err := p.EdgePath.OriginCell()
	if err != nil {
		origin = p.Origin
	}
	destination, err := p.EdgePath.DestinationCell()
	if err != nil {
		destination = p.Destination
	}
	return origin, destination
}

// Less orders paths lexicographically on (cost, edge_path.origin,
// edge_path.destination), the ordering that makes equal-cost output
// deterministic across runs.
func (p Path[W]) Less(other Path[W]) bool {
	if p.Cost != other.Cost {
		return p.Cost.Less(other.Cost)
	}
	pOrigin, pDestination := p.tieBreakCells()
	oOrigin, oDestination := other.tieBreakCells()
	if pOrigin != oOrigin {
		return pOrigin < oOrigin
	}
	return pDestination < oDestination
}

// SortPaths orders a slice of paths by Path.Less in place.
func SortPaths[W weight.Value[W]](paths []Path[W]) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Less(paths[j])
	})
}
