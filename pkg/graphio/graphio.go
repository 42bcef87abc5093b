// Package graphio is the CLI's own binary persistence format for a
// BaseGraph. The core (pkg/basegraph, pkg/preparedgraph) never reads or
// writes a file — hexgraph-prepare writes this format, hexgraph-route
// reads it and rebuilds the PreparedGraph (with its shortcuts) via
// preparedgraph.FromBaseGraph, the same way the teacher confines its own
// CRC32-checked binary format to pkg/graph/binary.go rather than the
// routing core.
package graphio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/azybler/hexgraph/pkg/basegraph"
	"github.com/azybler/hexgraph/pkg/grid"
	"github.com/azybler/hexgraph/pkg/weight"
)

const (
	magicBytes = "HEXGRAPH"
	version    = uint32(1)
)

type fileHeader struct {
	Magic      [8]byte
	Version    uint32
	Resolution uint32
	NumEdges   uint64
}

// WriteBaseGraph serializes bg to path as (header, edge records, CRC32
// trailer), writing to a temp file and renaming atomically into place.
func WriteBaseGraph(path string, bg *basegraph.BaseGraph[weight.Millimeters]) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version:    version,
		Resolution: uint32(bg.Resolution()),
		NumEdges:   uint64(bg.NumEdges()),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var writeErr error
	bg.RangeEdges(func(edge grid.EdgeID, w weight.Millimeters) bool {
		if err := binary.Write(cw, binary.LittleEndian, uint64(edge)); err != nil {
			writeErr = err
			return false
		}
		if err := binary.Write(cw, binary.LittleEndian, uint64(w)); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return fmt.Errorf("write edges: %w", writeErr)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBaseGraph deserializes a BaseGraph previously written by
// WriteBaseGraph, verifying its CRC32 trailer.
func ReadBaseGraph(path string) (*basegraph.BaseGraph[weight.Millimeters], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return nil, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}

	bg := basegraph.New[weight.Millimeters](int(hdr.Resolution))
	for i := uint64(0); i < hdr.NumEdges; i++ {
		var edge, w uint64
		if err := binary.Read(cr, binary.LittleEndian, &edge); err != nil {
			return nil, fmt.Errorf("read edge %d: %w", i, err)
		}
		if err := binary.Read(cr, binary.LittleEndian, &w); err != nil {
			return nil, fmt.Errorf("read weight %d: %w", i, err)
		}
		bg.AddEdge(grid.EdgeID(edge), weight.Millimeters(w))
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	return bg, nil
}

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
