package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/azybler/hexgraph/pkg/edgepath"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/graphio"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
	"github.com/azybler/hexgraph/pkg/routing"
	"github.com/azybler/hexgraph/pkg/weight"
)

func main() {
	graphPath := flag.String("graph", "", "Path to a BaseGraph binary written by hexgraph-prepare")
	from := flag.String("from", "", "Origin point as lat,lng")
	to := flag.String("to", "", "Destination point as lat,lng")
	maxDistance := flag.Int("max-distance", 3, "Ring steps to search for a graph-attached cell when snapping a query point")
	flag.Parse()

	if *graphPath == "" || *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: hexgraph-route --graph graph.bin --from lat,lng --to lat,lng")
		os.Exit(1)
	}

	log.Printf("Loading graph from %s...", *graphPath)
	bg, err := graphio.ReadBaseGraph(*graphPath)
	if err != nil {
		log.Fatalf("Failed to read graph: %v", err)
	}

	pg, err := preparedgraph.FromBaseGraph(bg, preparedgraph.DefaultMinShortcutLength)
	if err != nil {
		log.Fatalf("Failed to prepare graph: %v", err)
	}
	ps := pg.Stats()
	log.Printf("Graph ready: resolution=%d nodes=%d edges=%d", ps.Resolution, ps.NumNodes, ps.NumEdges)

	origin, err := parseLatLng(*from, ps.Resolution)
	if err != nil {
		log.Fatalf("Invalid --from: %v", err)
	}
	destination, err := parseLatLng(*to, ps.Resolution)
	if err != nil {
		log.Fatalf("Invalid --to: %v", err)
	}

	opts := routing.Options{MaxDistanceToGraph: *maxDistance, NumDestinationsToReach: 1}
	results, err := routing.ShortestPathManyToManyMap[weight.Millimeters](pg, []grid.CellID{origin}, []grid.CellID{destination}, opts, routing.IdentityTransform[weight.Millimeters]())
	if err != nil {
		log.Fatalf("Routing failed: %v", err)
	}

	paths, _ := results.Get(origin)
	if len(paths) == 0 {
		fmt.Println("No route found.")
		return
	}
	printPath(paths[0])
}

func parseLatLng(s string, resolution int) (grid.CellID, error) {
	var lat, lng float64
	if _, err := fmt.Sscanf(s, "%f,%f", &lat, &lng); err != nil {
		return 0, fmt.Errorf("expected lat,lng: %w", err)
	}
	return grid.FromLatLng(lat, lng, resolution)
}

func printPath(p edgepath.Path[weight.Millimeters]) {
	fmt.Printf("cost: %.1f m\n", float64(p.Cost)/1000)
	fmt.Printf("edges: %d\n", p.EdgePath.Len())
	fmt.Printf("length: %.1f m\n", p.EdgePath.LengthMeters())
}
