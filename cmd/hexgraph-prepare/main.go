package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/hexgraph/pkg/graphio"
	"github.com/azybler/hexgraph/pkg/osmimport"
	"github.com/azybler/hexgraph/pkg/preparedgraph"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "graph.bin", "Output BaseGraph binary file path")
	resolution := flag.Int("resolution", 9, "H3 resolution cells are snapped to")
	minShortcutLength := flag.Int("min-shortcut-length", preparedgraph.DefaultMinShortcutLength, "Minimum chain length to compress into a shortcut")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: hexgraph-prepare --input <file.osm.pbf> [--output graph.bin] [--resolution 9]")
		os.Exit(1)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Importing OSM data onto the hex grid...")
	bg, stats, err := osmimport.FromPBF(context.Background(), f, osmimport.Options{Resolution: *resolution})
	if err != nil {
		log.Fatalf("Failed to import OSM data: %v", err)
	}
	log.Printf("Imported %d ways, %d edges", stats.Ways, stats.Edges)

	log.Println("Validating shortcut derivation...")
	pg, err := preparedgraph.FromBaseGraph(bg, *minShortcutLength)
	if err != nil {
		log.Fatalf("Failed to prepare graph: %v", err)
	}
	ps := pg.Stats()
	log.Printf("Prepared graph: resolution=%d nodes=%d edges=%d", ps.Resolution, ps.NumNodes, ps.NumEdges)

	log.Printf("Writing binary to %s...", *output)
	if err := graphio.WriteBaseGraph(*output, bg); err != nil {
		log.Fatalf("Failed to write binary: %v", err)
	}

	info, _ := os.Stat(*output)
	elapsed := time.Since(start)
	log.Printf("Done in %s. Output: %s (%.1f MB)", elapsed.Round(time.Second), *output, float64(info.Size())/(1024*1024))
}
