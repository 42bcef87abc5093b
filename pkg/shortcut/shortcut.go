// Package shortcut implements the "FastForward": a precomputed continuous
// chain of edges treated as a single logical hop during traversal but
// expandable back into its constituent edges on demand.
package shortcut

import (
	"encoding/binary"

	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/edgepath"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/weight"
)

// Shortcut is a precomputed chain of ≥2 distinct, contiguous edges. The
// chain is kept compressed (compressedEdges) and only expanded on demand
// via Edges, so that a Dijkstra relaxation that never lands on the
// shortcut's destination never pays the expansion cost.
type Shortcut[W weight.Value[W]] struct {
	inEdge           grid.EdgeID
	outEdge          grid.EdgeID
	compressedEdges  []byte
	edgeCount        int
	memberCells      *cellbitmap.CellBitmap
	aggregatedWeight W
}

// New builds a Shortcut from a chain of edges and a function giving each
// edge's individual weight. Consecutive duplicate edges are dropped first;
// the remaining chain must contain at least two distinct edges.
func New[W weight.Value[W]](edges []grid.EdgeID, weightOf func(grid.EdgeID) W) (*Shortcut[W], error) {
	deduped := dedupConsecutive(edges)
	if len(deduped) < 2 {
		return nil, hexerr.ErrInsufficientEdges
	}
	if err := edgepath.ValidateContiguous(deduped); err != nil {
		return nil, err
	}

	var zero, sum W
	sum = zero
	for _, e := range deduped {
		sum = sum.Add(weightOf(e))
	}

	cells := make([]grid.CellID, 0, len(deduped)+1)
	cells = append(cells, deduped[0].Origin())
	for _, e := range deduped {
		cells = append(cells, e.Destination())
	}

	return &Shortcut[W]{
		inEdge:           deduped[0],
		outEdge:          deduped[len(deduped)-1],
		compressedEdges:  compress(deduped),
		edgeCount:        len(deduped),
		memberCells:      cellbitmap.FromSlice(cells),
		aggregatedWeight: sum,
	}, nil
}

// OriginCell is the head edge's origin, where traversal must start to use
// this shortcut.
func (s *Shortcut[W]) OriginCell() grid.CellID {
	return s.inEdge.Origin()
}

// DestinationCell is the tail edge's destination.
func (s *Shortcut[W]) DestinationCell() grid.CellID {
	return s.outEdge.Destination()
}

// EdgeCount returns the number of edges the chain compresses.
func (s *Shortcut[W]) EdgeCount() int {
	return s.edgeCount
}

// AggregatedWeight is the pre-summed weight of the whole chain.
func (s *Shortcut[W]) AggregatedWeight() W {
	return s.aggregatedWeight
}

// MemberCells is the set of cells the chain traverses, used for fast
// disjointness testing against an exclusion set.
func (s *Shortcut[W]) MemberCells() *cellbitmap.CellBitmap {
	return s.memberCells
}

// IsDisjoint reports whether none of the shortcut's member cells are in x.
func (s *Shortcut[W]) IsDisjoint(x *cellbitmap.CellBitmap) bool {
	return s.memberCells.IsDisjoint(x)
}

// Edges lazily decompresses the chain back into its constituent edges.
func (s *Shortcut[W]) Edges() []grid.EdgeID {
	return decompress(s.compressedEdges, s.edgeCount)
}

// ToLineString decompresses the chain and renders it as a continuous line.
func (s *Shortcut[W]) ToLineString() ([]edgepath.Point, error) {
	return edgepath.Sequence(s.Edges()).ToLineString()
}

func dedupConsecutive(edges []grid.EdgeID) []grid.EdgeID {
	if len(edges) == 0 {
		return nil
	}
	out := make([]grid.EdgeID, 0, len(edges))
	out = append(out, edges[0])
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// compress encodes the edge chain as the first edge id followed by
// zig-zag delta varints against the previous id. Edge ids are opaque
// 64-bit values, not necessarily monotone, so the delta is signed.
func compress(edges []grid.EdgeID) []byte {
	buf := make([]byte, 0, (len(edges)+1)*binary.MaxVarintLen64)
	scratch := make([]byte, binary.MaxVarintLen64)

	n := binary.PutUvarint(scratch, uint64(edges[0]))
	buf = append(buf, scratch[:n]...)

	prev := int64(edges[0])
	for _, e := range edges[1:] {
		cur := int64(e)
		delta := cur - prev
		n := binary.PutVarint(scratch, delta)
		buf = append(buf, scratch[:n]...)
		prev = cur
	}
	return buf
}

func decompress(blob []byte, count int) []grid.EdgeID {
	if count == 0 {
		return nil
	}
	out := make([]grid.EdgeID, 0, count)
	first, n := binary.Uvarint(blob)
	out = append(out, grid.EdgeID(first))
	pos := n
	prev := int64(first)
	for i := 1; i < count; i++ {
		delta, n := binary.Varint(blob[pos:])
		pos += n
		prev += delta
		out = append(out, grid.EdgeID(prev))
	}
	return out
}
