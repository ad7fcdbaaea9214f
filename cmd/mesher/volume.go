package main

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/Caspianlake/SandboxGame/internal/mesher/config"
	"github.com/Caspianlake/SandboxGame/internal/mesher/gen"
	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// meshVolume extracts a mesh from a raw little-endian float32 volume
// file (see cmd/volfetch for obtaining sample volumes). Samples are
// expected in the grid's native order: Y fastest, then Z, then X.
func meshVolume(log *slog.Logger, cfg *config.Config, path, dimsSpec, outPath string) error {
	dims, err := parseDims(dimsSpec)
	if err != nil {
		return err
	}

	grid, err := loadVolume(path, dims)
	if err != nil {
		return err
	}

	extractor, opts, _ := extraction(cfg)
	// A standalone volume has no neighboring chunk to produce its
	// boundary faces.
	opts.SkipMinBoundary = false

	m := extractor.Generate(grid, opts)
	log.Info("volume meshed",
		"path", path,
		"dims", dims,
		"vertices", m.VertexCount(),
		"triangles", m.TriangleCount(),
	)

	if outPath != "" && !m.IsEmpty() {
		meshes := map[gen.ChunkKey]*mesh.Mesh{{}: m}
		if err := writeOBJ(outPath, meshes, 0, 0); err != nil {
			return err
		}
		log.Info("mesh written", "path", outPath)
	}
	return nil
}

// parseDims parses "X,Y,Z" sample counts.
func parseDims(spec string) (field.Dims, error) {
	var d field.Dims
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return d, fmt.Errorf("volume-dims must be X,Y,Z, got %q", spec)
	}
	if _, err := fmt.Sscanf(spec, "%d,%d,%d", &d.X, &d.Y, &d.Z); err != nil {
		return d, fmt.Errorf("parse volume-dims %q: %w", spec, err)
	}
	return d, nil
}

// loadVolume reads the raw sample buffer and wraps it in a Grid.
func loadVolume(path string, dims field.Dims) (*field.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read volume %s: %w", path, err)
	}
	if got, want := len(data), 4*dims.Len(); got != want {
		return nil, fmt.Errorf("volume %s is %d bytes, want %d for dims %v", path, got, want, dims)
	}

	values := make([]float32, dims.Len())
	for i := range values {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		values[i] = math.Float32frombits(bits)
	}
	return field.New(dims, values)
}
