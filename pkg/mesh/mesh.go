// Package mesh defines the triangle mesh produced by isosurface
// extraction: parallel position/normal arrays plus a triangle index list,
// laid out for direct upload to a GPU vertex buffer.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Mesh holds extracted surface geometry. Positions and Normals are
// parallel (one normal per vertex); Indices references them in groups of
// three, one group per triangle.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh contains no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// AddVertex appends a position/normal pair and returns its index.
func (m *Mesh) AddVertex(pos, normal mgl32.Vec3) uint32 {
	idx := uint32(len(m.Positions))
	m.Positions = append(m.Positions, pos)
	m.Normals = append(m.Normals, normal)
	return idx
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}
