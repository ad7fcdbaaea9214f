package isosurface

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// MarchingCubes triangulates each surface-crossing cell independently
// using the 256-case table. Vertices are deduplicated only within a
// cell (crossings on shared edges of one cell are computed once), never
// across cells.
type MarchingCubes struct{}

// NewMarchingCubes returns a MarchingCubes extractor.
func NewMarchingCubes() *MarchingCubes {
	return &MarchingCubes{}
}

// Generate walks every cell once and emits the table-driven triangles.
// See Extractor.
func (mc *MarchingCubes) Generate(g *field.Grid, opts Options) *mesh.Mesh {
	m := &mesh.Mesh{}
	if g == nil || g.Degenerate() {
		return m
	}

	cells := g.Dims.Cells()
	iso := opts.IsoLevel

	start := 0
	if opts.SkipMinBoundary {
		start = 1
	}

	var vals [8]float32
	// Per-cell scratch cache: edge id -> vertex index, reset each cell.
	var edgeVerts [12]int32

	for x := start; x < cells.X; x++ {
		for y := start; y < cells.Y; y++ {
			for z := start; z < cells.Z; z++ {
				mask := cellCorners(g, x, y, z, iso, &vals)
				row := triTable[mask]
				if len(row) == 0 {
					continue
				}

				for i := range edgeVerts {
					edgeVerts[i] = -1
				}
				origin := mgl32.Vec3{float32(x), float32(y), float32(z)}

				// Table order winds clockwise seen from outside;
				// reversing each triple makes front faces outward.
				for i := 0; i < len(row); i += 3 {
					a := mc.edgeVertex(g, opts, m, &vals, &edgeVerts, origin, int(row[i]))
					b := mc.edgeVertex(g, opts, m, &vals, &edgeVerts, origin, int(row[i+1]))
					c := mc.edgeVertex(g, opts, m, &vals, &edgeVerts, origin, int(row[i+2]))
					m.AddTriangle(a, c, b)
				}
			}
		}
	}
	return m
}

// edgeVertex returns the mesh vertex for edge e of the current cell,
// interpolating and appending it on first use.
func (mc *MarchingCubes) edgeVertex(g *field.Grid, opts Options, m *mesh.Mesh, vals *[8]float32, edgeVerts *[12]int32, origin mgl32.Vec3, e int) uint32 {
	if edgeVerts[e] >= 0 {
		return uint32(edgeVerts[e])
	}
	pos := origin.Add(edgePoint(e, vals, opts.IsoLevel))
	idx := m.AddVertex(pos, Normal(g, pos, opts.Normals))
	edgeVerts[e] = int32(idx)
	return idx
}
