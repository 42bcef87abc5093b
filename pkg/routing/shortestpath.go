// Package routing is the orchestration layer: resolution coercion, origin
// and destination substitution (nearest-graph-node snapping), many-to-many
// parallel fan-out, differential routing, and many-origin weight-threshold
// reachability. Everything here is goroutines + sync.WaitGroup fan-out —
// the teacher has no rayon/errgroup equivalent, and neither do we.
package routing

import (
	"sort"
	"sync"

	"github.com/azybler/hexgraph/pkg/cellbitmap"
	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/dijkstra"
	"github.com/azybler/hexgraph/pkg/edgepath"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/hexerr"
	"github.com/azybler/hexgraph/pkg/nearest"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/weight"
)

// Options configures a many-to-many routing call.
type Options struct {
	// MaxDistanceToGraph bounds how many ring steps origin/destination
	// substitution is allowed to search before giving up on a query cell.
	MaxDistanceToGraph int
	// NumDestinationsToReach caps how many destinations a single Dijkstra
	// run reports before stopping early. <= 0 means unlimited.
	NumDestinationsToReach int
}

// coerceResolution transforms cell to the graph's resolution, walking up
// via Parent or down via the first Children result depending on direction.
func coerceResolution(cell grid.CellID, graphResolution int) (grid.CellID, error) {
	res := cell.Resolution()
	if res == graphResolution {
		return cell, nil
	}
	if res > graphResolution {
		return cell.Parent(graphResolution)
	}
	children, err := cell.Children(graphResolution)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return 0, hexerr.NewMixedResolutions(graphResolution, res)
	}
	return children[0], nil
}

func coerceAndDedup(cells []grid.CellID, graphResolution int) ([]grid.CellID, error) {
	seen := make(map[grid.CellID]bool, len(cells))
	out := make([]grid.CellID, 0, len(cells))
	for _, c := range cells {
		coerced, err := coerceResolution(c, graphResolution)
		if err != nil {
			return nil, err
		}
		if seen[coerced] {
			continue
		}
		seen[coerced] = true
		out = append(out, coerced)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// originSubstitution maps a graph-attached cell to the query origins that
// snapped onto it.
type originSubstitution struct {
	GraphCell   grid.CellID
	QueryOrigins []grid.CellID
}

func substituteOrigins[W weight.Value[W]](g preparedgraph.ReadGraph[W], origins []grid.CellID, maxDistance int) ([]originSubstitution, error) {
	byGraphCell := make(map[grid.CellID][]grid.CellID)
	var order []grid.CellID
	for _, origin := range origins {
		found, err := nearest.Nearest(origin, maxDistance, g.CellNode)
		if err != nil {
			return nil, err
		}
		var snapped grid.CellID
		ok := false
		for _, n := range found {
			if n.Role.IsOrigin() {
				snapped = n.Cell
				ok = true
				break
			}
		}
		if !ok {
			continue // dropped: no origin-capable cell within the bound
		}
		if _, seen := byGraphCell[snapped]; !seen {
			order = append(order, snapped)
		}
		byGraphCell[snapped] = append(byGraphCell[snapped], origin)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]originSubstitution, 0, len(order))
	for _, cell := range order {
		out = append(out, originSubstitution{GraphCell: cell, QueryOrigins: byGraphCell[cell]})
	}
	return out, nil
}

func substituteDestinations[W weight.Value[W]](g preparedgraph.ReadGraph[W], destinations []grid.CellID, maxDistance int) (*container.CellMap[[]grid.CellID], error) {
	out := container.NewCellMap[[]grid.CellID]()
	any := false
	for _, dest := range destinations {
		found, err := nearest.Nearest(dest, maxDistance, g.CellNode)
		if err != nil {
			return nil, err
		}
		var snapped grid.CellID
		ok := false
		for _, n := range found {
			if n.Role.IsDestination() || n.Role.IsOrigin() {
				snapped = n.Cell
				ok = true
				break
			}
		}
		if !ok {
			continue
		}
		any = true
		out.Entry(snapped, func(existing []grid.CellID, had bool) []grid.CellID {
			return append(existing, dest)
		})
	}
	if !any {
		return nil, hexerr.ErrDestinationsNotInGraph
	}
	return out, nil
}

// PathTransform maps a graph-level Path to a caller-chosen result type O,
// failing with a caller-defined error. Applied under ManyToMany's parallel
// fold; a transform error surfaces unchanged as the fold's overall error,
// same as a Dijkstra error would.
type PathTransform[W weight.Value[W], O any] func(edgepath.Path[W]) (O, error)

// IdentityTransform is the no-op PathTransform used by callers that want
// the raw Path results ManyToMany would have returned before transforms
// existed.
func IdentityTransform[W weight.Value[W]]() PathTransform[W, edgepath.Path[W]] {
	return func(p edgepath.Path[W]) (edgepath.Path[W], error) { return p, nil }
}

// ManyToMany runs substituted origins against a substituted destination
// map in parallel, one goroutine per graph origin, cross-producting every
// resulting graph-level Path over the query cells it was substituted from,
// then applying transform to each path before aggregating. Returns a
// CellMap keyed by query origin. A transform error aborts the fold and is
// returned unchanged, exactly like a Dijkstra error.
func ManyToMany[W weight.Value[W], O any](
	g preparedgraph.ReadGraph[W],
	origins []originSubstitution,
	destinations *container.CellMap[[]grid.CellID],
	opts Options,
	transform PathTransform[W, O],
) (*container.CellMap[[]O], error) {
	destBitmap := cellbitmap.New()
	destinations.Range(func(cell grid.CellID, _ []grid.CellID) bool {
		destBitmap.Insert(cell)
		return true
	})

	results := container.NewCellMap[[]O]()
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup
	wg.Add(len(origins))

	for _, sub := range origins {
		go func(sub originSubstitution) {
			defer wg.Done()
			paths, err := dijkstra.ShortestPaths(g, sub.GraphCell, destBitmap, opts.NumDestinationsToReach)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, queryOrigin := range sub.QueryOrigins {
				var raw []edgepath.Path[W]
				for _, p := range paths {
					queryDests, _ := destinations.Get(p.Destination)
					for _, queryDest := range queryDests {
						raw = append(raw, edgepath.Path[W]{
							Origin:      queryOrigin,
							Destination: queryDest,
							Cost:        p.Cost,
							EdgePath:    p.EdgePath,
						})
					}
				}
				edgepath.SortPaths(raw)
				out := make([]O, 0, len(raw))
				for _, p := range raw {
					transformed, err := transform(p)
					if err != nil {
						if firstErr == nil {
							firstErr = err
						}
						return
					}
					out = append(out, transformed)
				}
				existing, _ := results.Get(queryOrigin)
				results.Set(queryOrigin, append(existing, out...))
			}
		}(sub)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// ShortestPathManyToManyMap is the full orchestrator entry: coerces query
// cells to the graph's resolution, substitutes origins and destinations,
// and runs the many-to-many parallel routing, applying transform to every
// resulting Path under the fold.
func ShortestPathManyToManyMap[W weight.Value[W], O any](
	g preparedgraph.ReadGraph[W],
	queryOrigins []grid.CellID,
	queryDestinations []grid.CellID,
	opts Options,
	transform PathTransform[W, O],
) (*container.CellMap[[]O], error) {
	origins, err := coerceAndDedup(queryOrigins, g.Resolution())
	if err != nil {
		return nil, err
	}
	destinations, err := coerceAndDedup(queryDestinations, g.Resolution())
	if err != nil {
		return nil, err
	}

	subOrigins, err := substituteOrigins(g, origins, opts.MaxDistanceToGraph)
	if err != nil {
		return nil, err
	}
	subDestinations, err := substituteDestinations(g, destinations, opts.MaxDistanceToGraph)
	if err != nil {
		return nil, err
	}

	return ManyToMany(g, subOrigins, subDestinations, opts, transform)
}
