// Package grid is the single adapter between hexgraph's own cell/edge
// vocabulary and the concrete hex-grid library. No other package imports
// h3-go directly, the same way pkg/osm is the only package in the teacher
// that imports paulmach/osm.
package grid

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// CellID identifies a single hexagonal (or, at the 12 icosahedron
// vertices, pentagonal) cell in the grid hierarchy.
type CellID uint64

// EdgeID identifies one of a cell's up-to-six directed edges to an
// immediate neighbor.
type EdgeID uint64

// FromLatLng resolves the cell containing (lat, lng) at the given
// resolution.
func FromLatLng(lat, lng float64, resolution int) (CellID, error) {
	c, err := h3.LatLngToCell(h3.NewLatLng(lat, lng), resolution)
	if err != nil {
		return 0, fmt.Errorf("resolve cell: %w", err)
	}
	return CellID(c), nil
}

// IsValid reports whether the id names a real cell.
func (c CellID) IsValid() bool {
	return h3.Cell(c).IsValid()
}

// Resolution returns the cell's resolution (0 is coarsest).
func (c CellID) Resolution() int {
	return h3.Cell(c).Resolution()
}

// LatLng returns the cell's center point.
func (c CellID) LatLng() (lat, lng float64, err error) {
	ll, err := h3.Cell(c).LatLng()
	if err != nil {
		return 0, 0, fmt.Errorf("cell latlng: %w", err)
	}
	return ll.Lat, ll.Lng, nil
}

// Parent returns the ancestor cell at a coarser (numerically lower)
// resolution.
func (c CellID) Parent(resolution int) (CellID, error) {
	p, err := h3.Cell(c).Parent(resolution)
	if err != nil {
		return 0, fmt.Errorf("parent: %w", err)
	}
	return CellID(p), nil
}

// Children returns the descendant cells at a finer (numerically higher)
// resolution.
func (c CellID) Children(resolution int) ([]CellID, error) {
	children, err := h3.Cell(c).Children(resolution)
	if err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}
	out := make([]CellID, len(children))
	for i, ch := range children {
		out[i] = CellID(ch)
	}
	return out, nil
}

// EdgesOut returns the directed edges originating from the cell, up to
// six for a hexagon and five for one of the twelve pentagons.
func (c CellID) EdgesOut() ([]EdgeID, error) {
	edges, err := h3.Cell(c).DirectedEdges()
	if err != nil {
		return nil, fmt.Errorf("edges out: %w", err)
	}
	out := make([]EdgeID, len(edges))
	for i, e := range edges {
		out[i] = EdgeID(e)
	}
	return out, nil
}

// Neighbors returns the cells immediately adjacent to c.
func (c CellID) Neighbors() ([]CellID, error) {
	edges, err := c.EdgesOut()
	if err != nil {
		return nil, err
	}
	out := make([]CellID, len(edges))
	for i, e := range edges {
		out[i] = e.Destination()
	}
	return out, nil
}

// RingDistance is one cell at a known grid distance from the ring's
// center, as returned by CellID.RingWithDistances.
type RingDistance struct {
	Cell     CellID
	Distance int
}

// RingWithDistances returns every cell within k grid steps of c, each
// tagged with its exact distance. Used by pkg/nearest to walk outward ring
// by ring without re-requesting each ring individually.
func (c CellID) RingWithDistances(k int) ([]RingDistance, error) {
	rings, err := h3.Cell(c).GridDiskDistances(k)
	if err != nil {
		return nil, fmt.Errorf("grid disk distances: %w", err)
	}
	var out []RingDistance
	for distance, cells := range rings {
		for _, cell := range cells {
			out = append(out, RingDistance{Cell: CellID(cell), Distance: distance})
		}
	}
	return out, nil
}

// EdgeBetween returns the directed edge from origin to destination, failing
// if the two cells are not grid neighbors.
func EdgeBetween(origin, destination CellID) (EdgeID, error) {
	e, err := h3.Cell(origin).DirectedEdgeTo(h3.Cell(destination))
	if err != nil {
		return 0, fmt.Errorf("edge between: %w", err)
	}
	return EdgeID(e), nil
}

// GridPath returns the shortest unbroken chain of cells from origin to
// destination, inclusive of both endpoints, following grid adjacency. Used
// to bridge the gap when two consecutive points along an imported geometry
// fall into non-adjacent cells.
func GridPath(origin, destination CellID) ([]CellID, error) {
	path, err := h3.Cell(origin).GridPathCells(h3.Cell(destination))
	if err != nil {
		return nil, fmt.Errorf("grid path: %w", err)
	}
	out := make([]CellID, len(path))
	for i, c := range path {
		out[i] = CellID(c)
	}
	return out, nil
}

// Origin returns the edge's source cell.
func (e EdgeID) Origin() CellID {
	cells, err := h3.DirectedEdge(e).Cells()
	if err != nil {
		return 0
	}
	return CellID(cells[0])
}

// Destination returns the edge's target cell.
func (e EdgeID) Destination() CellID {
	cells, err := h3.DirectedEdge(e).Cells()
	if err != nil {
		return 0
	}
	return CellID(cells[1])
}

// Endpoints returns Origin and Destination in one grid call.
func (e EdgeID) Endpoints() (origin, destination CellID, err error) {
	cells, err := h3.DirectedEdge(e).Cells()
	if err != nil {
		return 0, 0, fmt.Errorf("edge endpoints: %w", err)
	}
	return CellID(cells[0]), CellID(cells[1]), nil
}

// Reverse returns the edge running the opposite direction between the same
// two cells, if the grid library can produce it directly.
func (e EdgeID) Reverse() (EdgeID, error) {
	origin, destination, err := e.Endpoints()
	if err != nil {
		return 0, err
	}
	rev, err := h3.Cell(destination).DirectedEdgeTo(h3.Cell(origin))
	if err != nil {
		return 0, fmt.Errorf("reverse edge: %w", err)
	}
	return EdgeID(rev), nil
}

// IsValid reports whether the id names a real directed edge.
func (e EdgeID) IsValid() bool {
	return h3.DirectedEdge(e).IsValid()
}

// avgEdgeLengthMeters is H3's published average hexagon-edge length per
// resolution (res 0 is coarsest, res 15 is finest). A pure function of
// resolution, per spec: distance is never read off exact edge geometry.
var avgEdgeLengthMeters = [16]float64{
	1107712.591000, 418676.005500, 158244.655800, 59810.857940,
	22606.379400, 8544.408276, 3229.482772, 1220.629759,
	461.354684, 174.375668, 65.907807, 24.910561,
	9.415526, 3.559893, 1.348575, 0.509713,
}

// AvgEdgeLength returns the average edge length in meters at the given
// resolution, used by the differential-routing downsampling heuristic to
// pick a ring radius covering a target real-world distance.
func AvgEdgeLength(resolution int) float64 {
	if resolution < 0 {
		resolution = 0
	}
	if resolution > 15 {
		resolution = 15
	}
	return avgEdgeLengthMeters[resolution]
}
