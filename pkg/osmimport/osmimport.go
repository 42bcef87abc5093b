// Package osmimport is the out-of-core collaborator that turns an OSM PBF
// extract into a BaseGraph[weight.Millimeters]: the only place in this
// module that imports paulmach/osm, mirroring how the teacher confines
// github.com/paulmach/osm to its own pkg/osm.
package osmimport

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/azybler/hexgraph/pkg/basegraph"
	"github.com/azybler/hexgraph/pkg/geo"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/weight"
)

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

func isCarAccessible(tags osm.Tags) bool {
	hw := tags.Find("highway")
	if !carHighways[hw] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false
	}
	return true
}

func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward = true
	backward = true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward = true
		backward = false
	case "-1", "reverse":
		forward = false
		backward = true
	case "no":
		forward = true
		backward = true
	case "reversible":
		forward = false
		backward = false
	}

	return forward, backward
}

type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
}

// Options configures the import.
type Options struct {
	// Resolution is the grid resolution every imported edge is snapped to.
	Resolution int
}

// Stats reports what an import pass did, for CLI logging.
type Stats struct {
	Ways          int
	ReferencedNodes int
	SkippedWays   int
	Edges         int
}

// FromPBF reads an OSM PBF extract and snaps its car-accessible ways onto
// the hex grid at opts.Resolution, producing a BaseGraph of Millimeters
// edges. rs is read twice (ways, then nodes), so it must support seeking.
func FromPBF(ctx context.Context, rs io.ReadSeeker, opts Options) (*basegraph.BaseGraph[weight.Millimeters], Stats, error) {
	var stats Stats

	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !isCarAccessible(w.Tags) || len(w.Nodes) < 2 {
			stats.SkippedWays++
			continue
		}
		fwd, bwd := directionFlags(w.Tags)
		if !fwd && !bwd {
			stats.SkippedWays++
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{NodeIDs: nodeIDs, Forward: fwd, Backward: bwd})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, stats, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()
	stats.Ways = len(ways)
	stats.ReferencedNodes = len(referencedNodes)
	log.Printf("osmimport: pass 1 complete: %d ways, %d referenced nodes", stats.Ways, stats.ReferencedNodes)

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, stats, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodeLat := make(map[osm.NodeID]float64, len(referencedNodes))
	nodeLon := make(map[osm.NodeID]float64, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeLat[n.ID] = n.Lat
		nodeLon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, stats, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()
	log.Printf("osmimport: pass 2 complete: %d node coordinates collected", len(nodeLat))

	bg := basegraph.New[weight.Millimeters](opts.Resolution)

	for _, w := range ways {
		cells, err := wayCells(w.NodeIDs, nodeLat, nodeLon, opts.Resolution)
		if err != nil || len(cells) < 2 {
			continue
		}
		for i := 0; i+1 < len(cells); i++ {
			from, to := cells[i], cells[i+1]
			edge, err := grid.EdgeBetween(from, to)
			if err != nil {
				continue // not grid neighbors even after path-filling; skip this hop
			}
			w8 := edgeWeight(from, to)
			if w.Forward {
				bg.AddEdge(edge, w8)
				stats.Edges++
			}
			if w.Backward {
				rev, err := edge.Reverse()
				if err == nil {
					bg.AddEdge(rev, w8)
					stats.Edges++
				}
			}
		}
	}

	log.Printf("osmimport: built %d directed edges", stats.Edges)
	return bg, stats, nil
}

// wayCells resolves a way's node sequence to a continuous chain of grid
// cells at resolution, bridging any gap between two consecutive nodes that
// fall in non-adjacent cells with grid.GridPath, and collapsing consecutive
// duplicates.
func wayCells(nodeIDs []osm.NodeID, nodeLat, nodeLon map[osm.NodeID]float64, resolution int) ([]grid.CellID, error) {
	var out []grid.CellID
	var last grid.CellID
	haveLast := false

	for _, id := range nodeIDs {
		lat, okLat := nodeLat[id]
		lon, okLon := nodeLon[id]
		if !okLat || !okLon {
			continue
		}
		cell, err := grid.FromLatLng(lat, lon, resolution)
		if err != nil {
			continue
		}

		if !haveLast {
			out = append(out, cell)
			last = cell
			haveLast = true
			continue
		}
		if cell == last {
			continue
		}

		if _, err := grid.EdgeBetween(last, cell); err == nil {
			out = append(out, cell)
		} else if path, err := grid.GridPath(last, cell); err == nil && len(path) >= 2 {
			out = append(out, path[1:]...)
		} else {
			out = append(out, cell) // gap couldn't be bridged; the hop above will be skipped
		}
		last = cell
	}
	return out, nil
}

// edgeWeight is the great-circle distance between two cell centers, in
// millimeters, matching the teacher's weightMM convention.
func edgeWeight(from, to grid.CellID) weight.Millimeters {
	fromLat, fromLng, err1 := from.LatLng()
	toLat, toLng, err2 := to.LatLng()
	if err1 != nil || err2 != nil {
		return weight.Millimeters(1)
	}
	meters := geo.Haversine(fromLat, fromLng, toLat, toLng)
	mm := uint64(math.Round(meters * 1000))
	if mm == 0 {
		mm = 1
	}
	return weight.Millimeters(mm)
}
