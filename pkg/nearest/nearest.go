// Package nearest enumerates graph-attached cells around a query cell in
// non-decreasing ring distance, stopping as soon as the smallest observed
// distance's tied neighbors have all been emitted.
package nearest

import (
	"sort"

	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/noderole"
)

// Node is one result: a graph-present cell, its role, and its ring
// distance from the query cell.
type Node struct {
	Cell     grid.CellID
	Role     noderole.NodeRole
	Distance int
}

// CellNodeLookup is the minimal capability Nearest needs from a graph: a
// way to test whether a cell is present and fetch its role.
type CellNodeLookup func(cell grid.CellID) (noderole.NodeRole, bool)

// Nearest enumerates the graph-present cells around q within kMax ring
// steps, in non-decreasing distance order, stopping as soon as it has
// emitted every cell tied at the smallest distance any graph node was
// found at. Returns nil if no graph node lies within kMax.
func Nearest(q grid.CellID, kMax int, lookup CellNodeLookup) ([]Node, error) {
	ring, err := q.RingWithDistances(kMax)
	if err != nil {
		return nil, err
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i].Distance < ring[j].Distance })

	var out []Node
	foundAtDistance := -1
	for _, rd := range ring {
		if foundAtDistance >= 0 && rd.Distance > foundAtDistance {
			break
		}
		role, ok := lookup(rd.Cell)
		if !ok {
			continue
		}
		if foundAtDistance < 0 {
			foundAtDistance = rd.Distance
		}
		out = append(out, Node{Cell: rd.Cell, Role: role, Distance: rd.Distance})
	}
	return out, nil
}
