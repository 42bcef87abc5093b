package routing

import (
	"math"

	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/edgepath"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/overlay"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/weight"
)

// ExclusionDiff pairs the routes found before and after a set of cells was
// excluded from the graph, for a single origin.
type ExclusionDiff[W weight.Value[W]] struct {
	Before []edgepath.Path[W]
	After  []edgepath.Path[W]
}

// Downsample carries a coarser-resolution copy of the same graph, used
// only to prune origins the full-resolution differential pass doesn't
// need to revisit.
type Downsample[W weight.Value[W]] struct {
	Graph preparedgraph.ReadGraph[W]
}

// DifferentialShortestPath runs ShortestPath twice — once over g, once
// over g with exclude hidden — and returns a before/after pair per origin.
// Fails with ErrEmptyExclusion if exclude has no members. If ds is
// non-nil, a cheap downsampled pass first prunes origins whose downsampled
// neighbourhood shows no cost change; this is a heuristic, so a pruned
// origin's full-resolution result is not guaranteed to be unchanged.
func DifferentialShortestPath[W weight.Value[W]](
	g *preparedgraph.PreparedGraph[W],
	queryOrigins []grid.CellID,
	queryDestinations []grid.CellID,
	exclude *cellbitmap.CellBitmap,
	opts Options,
	ds *Downsample[W],
) (*container.CellMap[ExclusionDiff[W]], error) {
	if exclude.IsEmpty() {
		return nil, hexerr.ErrEmptyExclusion
	}

	origins, err := coerceAndDedup(queryOrigins, g.Resolution())
	if err != nil {
		return nil, err
	}
	origins = dropExcluded(origins, exclude)

	destinations, err := coerceAndDedup(queryDestinations, g.Resolution())
	if err != nil {
		return nil, err
	}

	if ds != nil {
		origins, err = pruneByDownsample(g, ds, origins, destinations, exclude, opts)
		if err != nil {
			return nil, err
		}
	}

	return diffOverGraph(g, origins, destinations, exclude, opts)
}

func dropExcluded(cells []grid.CellID, exclude *cellbitmap.CellBitmap) []grid.CellID {
	out := cells[:0:0]
	for _, c := range cells {
		if !exclude.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// diffOverGraph runs steps 4-6 of §4.11 over the full-resolution graph for
// the given (already coerced/pruned) origins and destinations.
func diffOverGraph[W weight.Value[W]](
	g preparedgraph.ReadGraph[W],
	origins []grid.CellID,
	destinations []grid.CellID,
	exclude *cellbitmap.CellBitmap,
	opts Options,
) (*container.CellMap[ExclusionDiff[W]], error) {
	before, err := ShortestPathManyToManyMap(g, origins, destinations, opts, IdentityTransform[W]())
	if err != nil {
		return nil, err
	}
	after, err := ShortestPathManyToManyMap(overlay.New(asPreparedGraph(g), exclude), origins, destinations, opts, IdentityTransform[W]())
	if err != nil {
		return nil, err
	}

	out := container.NewCellMap[ExclusionDiff[W]]()
	before.Drain(func(origin grid.CellID, beforePaths []edgepath.Path[W]) {
		afterPaths, _ := after.Get(origin)
		out.Set(origin, ExclusionDiff[W]{Before: beforePaths, After: afterPaths})
	})
	return out, nil
}

// asPreparedGraph narrows a ReadGraph back to the concrete *PreparedGraph
// the overlay constructor expects. DifferentialShortestPath passes its own
// *PreparedGraph here; pruneByDownsample passes ds.Graph, so a Downsample
// whose Graph is any other ReadGraph implementation panics here.
func asPreparedGraph[W weight.Value[W]](g preparedgraph.ReadGraph[W]) *preparedgraph.PreparedGraph[W] {
	return g.(*preparedgraph.PreparedGraph[W])
}

// affectedRadius returns the ring radius used to spread "affectedness"
// from a changed downsampled cell to its neighbors, per §4.11: at least 1
// ring step, enough to cover roughly 1500m at the downsampled resolution.
func affectedRadius(resolution int) int {
	avg := grid.AvgEdgeLength(resolution)
	if avg <= 0 {
		return 1
	}
	k := int(math.Ceil(1500.0 / avg))
	if k < 1 {
		k = 1
	}
	return k
}

// pruneByDownsample runs a cheap differential pass on the downsampled
// graph and retains only the full-resolution origins whose downsampled
// parent is affected by the exclusion, or whose parent itself lies in the
// downsampled exclusion set.
func pruneByDownsample[W weight.Value[W]](
	g *preparedgraph.PreparedGraph[W],
	ds *Downsample[W],
	origins []grid.CellID,
	destinations []grid.CellID,
	exclude *cellbitmap.CellBitmap,
	opts Options,
) ([]grid.CellID, error) {
	dsResolution := ds.Graph.Resolution()

	downOrigins, err := coerceAndDedup(origins, dsResolution)
	if err != nil {
		return nil, err
	}
	downDestinations, err := coerceAndDedup(destinations, dsResolution)
	if err != nil {
		return nil, err
	}
	downExclude := cellbitmap.New()
	for _, c := range exclude.Cells() {
		parent, err := c.Parent(dsResolution)
		if err != nil {
			continue
		}
		downExclude.Insert(parent)
	}
	if downExclude.IsEmpty() {
		// Nothing to prune against at this resolution; keep every origin.
		return origins, nil
	}

	downDiffs, err := diffOverGraph(ds.Graph, downOrigins, downDestinations, downExclude, opts)
	if err != nil {
		return nil, err
	}

	changed := make(map[grid.CellID]bool, downDiffs.Len())
	downDiffs.Range(func(origin grid.CellID, diff ExclusionDiff[W]) bool {
		if costsDiffer(diff.Before, diff.After) {
			changed[origin] = true
		}
		return true
	})

	k := affectedRadius(dsResolution)
	affected := make(map[grid.CellID]bool, len(changed))
	for _, downOrigin := range downOrigins {
		ring, err := downOrigin.RingWithDistances(k)
		if err != nil {
			affected[downOrigin] = true // can't evaluate the ring; be conservative
			continue
		}
		for _, rd := range ring {
			if changed[rd.Cell] {
				affected[downOrigin] = true
				break
			}
		}
	}

	retained := make([]grid.CellID, 0, len(origins))
	for _, origin := range origins {
		parent, err := origin.Parent(dsResolution)
		if err != nil {
			retained = append(retained, origin) // can't downsample this one; keep it
			continue
		}
		if affected[parent] || downExclude.Contains(parent) {
			retained = append(retained, origin)
		}
	}
	return retained, nil
}

func costsDiffer[W weight.Value[W]](before, after []edgepath.Path[W]) bool {
	beforeCost := make(map[grid.CellID]W, len(before))
	for _, p := range before {
		beforeCost[p.Destination] = p.Cost
	}
	afterCost := make(map[grid.CellID]W, len(after))
	for _, p := range after {
		afterCost[p.Destination] = p.Cost
	}
	for dest, cost := range beforeCost {
		ac, ok := afterCost[dest]
		if !ok || ac != cost {
			return true
		}
	}
	for dest := range afterCost {
		if _, ok := beforeCost[dest]; !ok {
			return true
		}
	}
	return false
}
