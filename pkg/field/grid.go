// Package field holds the scalar-field data model shared by the grid
// producers and the isosurface extractors: a flat signed-distance sample
// array with a fixed 3D indexing convention.
package field

import "fmt"

// Dims holds the number of grid samples along each axis.
// These are vertex counts, not cell counts: a grid with Dims{4,4,4}
// contains 3×3×3 cells.
type Dims struct {
	X, Y, Z int
}

// Cells returns the cell counts, one less than the sample counts per axis.
func (d Dims) Cells() Dims {
	return Dims{X: d.X - 1, Y: d.Y - 1, Z: d.Z - 1}
}

// Len returns the total number of samples.
func (d Dims) Len() int {
	return d.X * d.Y * d.Z
}

// Grid is an immutable scalar field sampled on a regular 3D lattice.
// Values are flattened Y-fastest, X-slowest:
//
//	index(x,y,z) = x*Y*Z + z*Y + y
//
// The sign of a value classifies the sample against the iso-level:
// value < iso means inside the surface.
type Grid struct {
	Dims   Dims
	Values []float32
}

// New wraps values in a Grid, validating the buffer length against dims.
func New(dims Dims, values []float32) (*Grid, error) {
	if got, want := len(values), dims.Len(); got != want {
		return nil, fmt.Errorf("grid values length %d does not match dims %v (want %d)", got, dims, want)
	}
	return &Grid{Dims: dims, Values: values}, nil
}

// Degenerate reports whether the grid is too small to contain any cell.
// A degenerate grid produces no surface.
func (g *Grid) Degenerate() bool {
	return g.Dims.X < 2 || g.Dims.Y < 2 || g.Dims.Z < 2
}

// Index returns the flat index of the sample at (x, y, z).
func (g *Grid) Index(x, y, z int) int {
	return x*g.Dims.Y*g.Dims.Z + z*g.Dims.Y + y
}

// At returns the sample at (x, y, z). Coordinates must be in range.
func (g *Grid) At(x, y, z int) float32 {
	return g.Values[g.Index(x, y, z)]
}

// AtClamped returns the sample at (x, y, z) with each coordinate clamped
// into the valid sample range. Used by gradient estimation near the
// grid boundary.
func (g *Grid) AtClamped(x, y, z int) float32 {
	return g.At(clampInt(x, 0, g.Dims.X-1), clampInt(y, 0, g.Dims.Y-1), clampInt(z, 0, g.Dims.Z-1))
}

// CellIndex returns the flat index of the cell whose minimum corner is
// (x, y, z), or -1 when the coordinate is outside the cell range.
// Both extractors use this single bounds-checked accessor instead of
// ad-hoc neighbor index math.
func (g *Grid) CellIndex(x, y, z int) int {
	c := g.Dims.Cells()
	if x < 0 || y < 0 || z < 0 || x >= c.X || y >= c.Y || z >= c.Z {
		return -1
	}
	return x*c.Y*c.Z + z*c.Y + y
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
