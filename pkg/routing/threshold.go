package routing

import (
	"sync"

	"github.com/azybler/hexgraph/pkg/container"
	"github.com/azybler/hexgraph/pkg/dijkstra"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/weight"
)

// Aggregator combines two costs reached for the same cell from different
// origins, e.g. min for "closest any origin can get you" or Add for a
// cumulative demand figure.
type Aggregator[W weight.Value[W]] func(a, b W) W

// WithinThreshold runs WithinWeightThreshold from every origin in parallel
// and folds the per-origin reachability maps into one CellMap, combining
// costs for cells reached from more than one origin with agg. The smaller
// map is always folded into the larger one, to keep the merge itself cheap
// relative to however many origins were requested.
func WithinThreshold[W weight.Value[W]](
	g preparedgraph.ReadGraph[W],
	queryOrigins []grid.CellID,
	threshold W,
	agg Aggregator[W],
) (*container.CellMap[W], error) {
	origins, err := coerceAndDedup(queryOrigins, g.Resolution())
	if err != nil {
		return nil, err
	}

	perOrigin := make([]*container.CellMap[W], len(origins))
	var wg sync.WaitGroup
	wg.Add(len(origins))
	for i, origin := range origins {
		go func(i int, origin grid.CellID) {
			defer wg.Done()
			perOrigin[i] = dijkstra.WithinWeightThreshold(g, origin, threshold)
		}(i, origin)
	}
	wg.Wait()

	result := container.NewCellMap[W]()
	for _, m := range perOrigin {
		result = foldInto(result, m, agg)
	}
	return result, nil
}

func foldInto[W weight.Value[W]](a, b *container.CellMap[W], agg Aggregator[W]) *container.CellMap[W] {
	target, source := a, b
	if source.Len() > target.Len() {
		target, source = source, target
	}
	source.Range(func(cell grid.CellID, cost W) bool {
		target.Entry(cell, func(existing W, had bool) W {
			if !had {
				return cost
			}
			return agg(existing, cost)
		})
		return true
	})
	return target
}
