package osmimport

import (
	"testing"

	"github.com/paulmach/osm"

	"github.com/azybler/hexgraph/pkg/grid"
)

func tags(pairs ...string) osm.Tags {
	t := make(osm.Tags, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		t = append(t, osm.Tag{Key: pairs[i], Value: pairs[i+1]})
	}
	return t
}

func TestIsCarAccessible(t *testing.T) {
	cases := []struct {
		name string
		tags osm.Tags
		want bool
	}{
		{"residential road", tags("highway", "residential"), true},
		{"footway is not a car highway", tags("highway", "footway"), false},
		{"no highway tag at all", tags(), false},
		{"private access blocks an otherwise valid road", tags("highway", "primary", "access", "private"), false},
		{"explicit no-access blocks it", tags("highway", "secondary", "access", "no"), false},
		{"area=yes excludes a pedestrian plaza mapped as a road polygon", tags("highway", "residential", "area", "yes"), false},
		{"motor_vehicle=no blocks it even with a car highway tag", tags("highway", "tertiary", "motor_vehicle", "no"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isCarAccessible(c.tags); got != c.want {
				t.Errorf("isCarAccessible(%v) = %v, want %v", c.tags, got, c.want)
			}
		})
	}
}

func TestDirectionFlags(t *testing.T) {
	cases := []struct {
		name             string
		tags             osm.Tags
		forward, backward bool
	}{
		{"plain two-way road", tags("highway", "residential"), true, true},
		{"oneway=yes", tags("highway", "primary", "oneway", "yes"), true, false},
		{"oneway=-1 reverses direction", tags("highway", "primary", "oneway", "-1"), false, true},
		{"oneway=reversible carries neither direction", tags("highway", "primary", "oneway", "reversible"), false, false},
		{"motorway is one-way by default", tags("highway", "motorway"), true, false},
		{"a roundabout junction is one-way by default", tags("highway", "residential", "junction", "roundabout"), true, false},
		{"oneway=no overrides the motorway default", tags("highway", "motorway", "oneway", "no"), true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fwd, bwd := directionFlags(c.tags)
			if fwd != c.forward || bwd != c.backward {
				t.Errorf("directionFlags(%v) = (%v, %v), want (%v, %v)", c.tags, fwd, bwd, c.forward, c.backward)
			}
		})
	}
}

func TestWayCellsCollapsesConsecutiveDuplicates(t *testing.T) {
	nodeLat := map[osm.NodeID]float64{1: 1.30, 2: 1.30}
	nodeLon := map[osm.NodeID]float64{1: 103.80, 2: 103.80}
	cells, err := wayCells([]osm.NodeID{1, 2}, nodeLat, nodeLon, 9)
	if err != nil {
		t.Fatalf("wayCells: %v", err)
	}
	if len(cells) != 1 {
		t.Errorf("two nodes resolving to the same cell should collapse to 1 cell, got %d", len(cells))
	}
}

func TestWayCellsBridgesAGapWithGridPath(t *testing.T) {
	nodeLat := map[osm.NodeID]float64{1: 1.30, 2: 1.33}
	nodeLon := map[osm.NodeID]float64{1: 103.80, 2: 103.83}
	cells, err := wayCells([]osm.NodeID{1, 2}, nodeLat, nodeLon, 9)
	if err != nil {
		t.Fatalf("wayCells: %v", err)
	}
	if len(cells) < 3 {
		t.Fatalf("expected the gap between two far nodes to be bridged into several intermediate cells, got %d", len(cells))
	}
	for i := 0; i+1 < len(cells); i++ {
		if _, err := grid.EdgeBetween(cells[i], cells[i+1]); err != nil {
			t.Errorf("bridged cell %d -> %d should be grid-adjacent: %v", cells[i], cells[i+1], err)
		}
	}
}

func TestWayCellsSkipsNodesMissingCoordinates(t *testing.T) {
	nodeLat := map[osm.NodeID]float64{1: 1.30}
	nodeLon := map[osm.NodeID]float64{1: 103.80}
	cells, err := wayCells([]osm.NodeID{1, 2, 3}, nodeLat, nodeLon, 9)
	if err != nil {
		t.Fatalf("wayCells: %v", err)
	}
	if len(cells) != 1 {
		t.Errorf("nodes without known coordinates should be skipped, got %d cells", len(cells))
	}
}

func TestEdgeWeightIsPositiveAndGrowsWithDistance(t *testing.T) {
	near, err := grid.FromLatLng(1.30, 103.80, 9)
	if err != nil {
		t.Fatalf("FromLatLng: %v", err)
	}
	out, err := near.EdgesOut()
	if err != nil || len(out) == 0 {
		t.Fatalf("EdgesOut: %v", err)
	}
	neighbor := out[0].Destination()

	w := edgeWeight(near, neighbor)
	if w == 0 {
		t.Errorf("edgeWeight between distinct adjacent cells should be positive")
	}

	far, err := grid.FromLatLng(1.40, 103.90, 9)
	if err != nil {
		t.Fatalf("FromLatLng: %v", err)
	}
	wFar := edgeWeight(near, far)
	if wFar <= w {
		t.Errorf("edgeWeight(near, far) = %d, want it to exceed the adjacent-cell weight %d", wFar, w)
	}
}
