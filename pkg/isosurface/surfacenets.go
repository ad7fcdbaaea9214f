package isosurface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// SurfaceNets is a two-pass extractor that places a single vertex inside
// every surface-crossing cell (the mean of the cell's edge crossings)
// and then connects the vertices of the four cells around each crossing
// grid edge into a quad.
type SurfaceNets struct{}

// NewSurfaceNets returns a SurfaceNets extractor.
func NewSurfaceNets() *SurfaceNets {
	return &SurfaceNets{}
}

// Generate runs both passes over the grid. See Extractor.
func (sn *SurfaceNets) Generate(g *field.Grid, opts Options) *mesh.Mesh {
	m := &mesh.Mesh{}
	if g == nil || g.Degenerate() {
		return m
	}

	cells := g.Dims.Cells()

	// Vertex cache: flat cell index -> mesh vertex, -1 when the cell
	// produced no vertex. Built in pass 1, read in pass 2.
	cache := make([]int32, cells.Len())
	for i := range cache {
		cache[i] = -1
	}

	start := 0
	if opts.SkipMinBoundary {
		start = 1
	}

	sn.placeVertices(g, opts, start, cache, m)
	sn.connectFaces(g, opts, cache, m)
	return m
}

// placeVertices is pass 1: one vertex per active cell, cached by cell
// coordinate.
func (sn *SurfaceNets) placeVertices(g *field.Grid, opts Options, start int, cache []int32, m *mesh.Mesh) {
	cells := g.Dims.Cells()
	iso := opts.IsoLevel

	var vals [8]float32
	for x := start; x < cells.X; x++ {
		for y := start; y < cells.Y; y++ {
			for z := start; z < cells.Z; z++ {
				mask := cellCorners(g, x, y, z, iso, &vals)
				if mask == 0 || mask == 0xFF {
					continue
				}

				var sum mgl32.Vec3
				crossings := 0
				for e := range cubeEdges {
					c0, c1 := cubeEdges[e][0], cubeEdges[e][1]
					if (mask>>c0)&1 == (mask>>c1)&1 {
						continue
					}
					sum = sum.Add(edgePoint(e, &vals, iso))
					crossings++
				}

				pos := sum.Mul(1 / float32(crossings)).
					Add(mgl32.Vec3{float32(x), float32(y), float32(z)})
				idx := m.AddVertex(pos, Normal(g, pos, opts.Normals))
				cache[g.CellIndex(x, y, z)] = int32(idx)
			}
		}
	}
}

// connectFaces is pass 2: for every grid edge whose endpoints straddle
// the iso-level, emit a quad between the vertices of the four cells
// sharing that edge. A missing cached vertex drops the quad silently;
// at chunk seams the neighboring chunk produces it instead.
func (sn *SurfaceNets) connectFaces(g *field.Grid, opts Options, cache []int32, m *mesh.Mesh) {
	cells := g.Dims.Cells()
	iso := opts.IsoLevel

	// Under the seam policy each chunk owns the edge layers of its
	// logical cells only: the minimum layers are dropped through the
	// skipped vertex cache, and the maximum layer along the edge axis
	// is left to the next chunk, which meshes it as its first logical
	// layer.
	maxX, maxY, maxZ := cells.X, cells.Y, cells.Z
	if opts.SkipMinBoundary {
		maxX--
		maxY--
		maxZ--
	}

	// Edges parallel to X: shared by four cells in the YZ plane.
	for x := 0; x < maxX; x++ {
		for y := 1; y < cells.Y; y++ {
			for z := 1; z < cells.Z; z++ {
				in0 := g.At(x, y, z) < iso
				in1 := g.At(x+1, y, z) < iso
				if in0 == in1 {
					continue
				}
				sn.emitQuad(g, cache, m, in0,
					[4][3]int{{x, y - 1, z - 1}, {x, y, z - 1}, {x, y, z}, {x, y - 1, z}})
			}
		}
	}

	// Edges parallel to Y: shared by four cells in the ZX plane.
	for x := 1; x < cells.X; x++ {
		for y := 0; y < cells.Y; y++ {
			for z := 1; z < cells.Z; z++ {
				in0 := g.At(x, y, z) < iso
				in1 := g.At(x, y+1, z) < iso
				if in0 == in1 {
					continue
				}
				sn.emitQuad(g, cache, m, in0,
					[4][3]int{{x - 1, y, z - 1}, {x - 1, y, z}, {x, y, z}, {x, y, z - 1}})
			}
		}
	}

	// Edges parallel to Z: shared by four cells in the XY plane.
	for x := 1; x < cells.X; x++ {
		for y := 1; y < cells.Y; y++ {
			for z := 0; z < cells.Z; z++ {
				in0 := g.At(x, y, z) < iso
				in1 := g.At(x, y, z+1) < iso
				if in0 == in1 {
					continue
				}
				sn.emitQuad(g, cache, m, in0,
					[4][3]int{{x - 1, y - 1, z}, {x, y - 1, z}, {x, y, z}, {x - 1, y, z}})
			}
		}
	}
}

// emitQuad looks up the cached vertices of the four cells around a
// crossing edge (listed counter-clockwise seen from the positive axis
// direction) and emits two triangles. Winding follows which endpoint is
// inside so triangles face outward.
func (sn *SurfaceNets) emitQuad(g *field.Grid, cache []int32, m *mesh.Mesh, minInside bool, quad [4][3]int) {
	var v [4]uint32
	for i, c := range quad {
		ci := g.CellIndex(c[0], c[1], c[2])
		if ci < 0 || cache[ci] < 0 {
			return
		}
		v[i] = uint32(cache[ci])
	}

	if minInside {
		m.AddTriangle(v[0], v[1], v[2])
		m.AddTriangle(v[0], v[2], v[3])
	} else {
		m.AddTriangle(v[0], v[2], v[1])
		m.AddTriangle(v[0], v[3], v[2])
	}
}
