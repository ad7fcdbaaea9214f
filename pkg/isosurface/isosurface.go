// Package isosurface extracts triangle meshes from signed distance
// fields sampled on regular grids. Two extractors share the same grid
// representation and cube topology tables: SurfaceNets places one vertex
// per surface-crossing cell and stitches quads between neighbors;
// MarchingCubes triangulates each cell independently from a 256-case
// table. Both are deterministic: the same grid and options always yield
// identical vertex and index sequences.
package isosurface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// minEdgeDelta guards the interpolation denominator: edges whose corner
// values differ by less than this fall back to the lower corner.
const minEdgeDelta = 1e-5

// Options selects the iso-level, seam policy, and normal strategy for
// one extraction call.
type Options struct {
	// IsoLevel is the scalar threshold defining the surface.
	IsoLevel float32

	// SkipMinBoundary excludes the minimum-boundary cells on every
	// axis, so a neighboring chunk meshing the same physical boundary
	// from its own padded grid copy is the sole producer of that
	// geometry.
	SkipMinBoundary bool

	// Normals picks the gradient estimation strategy. One strategy is
	// used for the whole mesh, never mixed.
	Normals NormalStrategy
}

// Extractor turns a grid into a mesh. A degenerate grid (any dimension
// below 2) or a field with no iso-level crossing yields an empty mesh,
// never an error.
type Extractor interface {
	Generate(g *field.Grid, opts Options) *mesh.Mesh
}

// cellCorners fetches the 8 corner values of the cell at (x, y, z) and
// returns the inside/outside mask (bit i set when corner i is inside,
// i.e. value < iso).
func cellCorners(g *field.Grid, x, y, z int, iso float32, vals *[8]float32) uint8 {
	var mask uint8
	for i, c := range cubeCorners {
		v := g.At(x+c[0], y+c[1], z+c[2])
		vals[i] = v
		if v < iso {
			mask |= 1 << i
		}
	}
	return mask
}

// edgePoint interpolates the surface crossing on edge e of a unit cell,
// given the corner values. The crossing parameter is clamped to the
// lower corner when the value difference is too small to divide by.
func edgePoint(e int, vals *[8]float32, iso float32) mgl32.Vec3 {
	c0, c1 := cubeEdges[e][0], cubeEdges[e][1]
	v0, v1 := vals[c0], vals[c1]

	var t float32
	if d := v1 - v0; d > minEdgeDelta || d < -minEdgeDelta {
		t = (iso - v0) / d
	}

	p0 := cubeCorners[c0]
	p1 := cubeCorners[c1]
	return mgl32.Vec3{
		float32(p0[0]) + t*float32(p1[0]-p0[0]),
		float32(p0[1]) + t*float32(p1[1]-p0[1]),
		float32(p0[2]) + t*float32(p1[2]-p0[2]),
	}
}
