// Package cellbitmap holds a compressed, ordered set of cell ids.
package cellbitmap

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/azybler/hexgraph/pkg/grid"
)

// CellBitmap is a compressed, sorted set of CellIDs, backed by a 64-bit
// roaring bitmap. Used wherever the core needs fast set algebra over large
// cell collections — exclusion sets, a shortcut's member-cell coverage,
// overlap tests between a shortcut and an exclusion set.
type CellBitmap struct {
	bitmap *roaring64.Bitmap
}

// New returns an empty CellBitmap.
func New() *CellBitmap {
	return &CellBitmap{bitmap: roaring64.New()}
}

// FromSorted builds a CellBitmap from cells already in strictly increasing
// order, adding them one by one in the order given.
func FromSorted(cells []grid.CellID) *CellBitmap {
	b := roaring64.New()
	for _, c := range cells {
		b.Add(uint64(c))
	}
	return &CellBitmap{bitmap: b}
}

// FromSlice builds a CellBitmap from cells in any order, deduplicating.
func FromSlice(cells []grid.CellID) *CellBitmap {
	b := roaring64.New()
	for _, c := range cells {
		b.Add(uint64(c))
	}
	return &CellBitmap{bitmap: b}
}

// Insert adds a single cell.
func (cb *CellBitmap) Insert(c grid.CellID) {
	cb.bitmap.Add(uint64(c))
}

// Push appends c only if it is strictly greater than the current maximum
// member (or the set is empty), the cheap incremental path for building a
// set while walking a shortcut chain cell-by-cell in increasing order.
// Callers that can't guarantee increasing order should use Insert instead.
func (cb *CellBitmap) Push(c grid.CellID) {
	if cb.bitmap.IsEmpty() || uint64(c) > cb.bitmap.Maximum() {
		cb.bitmap.Add(uint64(c))
	}
}

// Contains reports whether c is a member.
func (cb *CellBitmap) Contains(c grid.CellID) bool {
	return cb.bitmap.Contains(uint64(c))
}

// Len returns the number of member cells.
func (cb *CellBitmap) Len() int {
	return int(cb.bitmap.GetCardinality())
}

// IsEmpty reports whether the set has no members.
func (cb *CellBitmap) IsEmpty() bool {
	return cb.bitmap.IsEmpty()
}

// IsDisjoint reports whether cb and other share no member cells. Used by
// Shortcut.IsDisjoint to decide whether an exclusion set invalidates a
// precomputed shortcut.
func (cb *CellBitmap) IsDisjoint(other *CellBitmap) bool {
	return !cb.bitmap.Intersects(other.bitmap)
}

// IsSubset reports whether every member of cb is also a member of other.
func (cb *CellBitmap) IsSubset(other *CellBitmap) bool {
	return cb.bitmap.IsSubset(other.bitmap)
}

// IsSuperset reports whether every member of other is also a member of cb.
func (cb *CellBitmap) IsSuperset(other *CellBitmap) bool {
	return other.bitmap.IsSubset(cb.bitmap)
}

// Cells returns the member cells in ascending order.
func (cb *CellBitmap) Cells() []grid.CellID {
	vals := cb.bitmap.ToArray()
	out := make([]grid.CellID, len(vals))
	for i, v := range vals {
		out[i] = grid.CellID(v)
	}
	return out
}

// Clone returns an independent copy.
func (cb *CellBitmap) Clone() *CellBitmap {
	return &CellBitmap{bitmap: cb.bitmap.Clone()}
}
