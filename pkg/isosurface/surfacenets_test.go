package isosurface

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// gridFrom builds a grid by evaluating f at every lattice point.
func gridFrom(dims field.Dims, f func(x, y, z int) float32) *field.Grid {
	values := make([]float32, dims.Len())
	g := &field.Grid{Dims: dims, Values: values}
	for x := 0; x < dims.X; x++ {
		for y := 0; y < dims.Y; y++ {
			for z := 0; z < dims.Z; z++ {
				values[g.Index(x, y, z)] = f(x, y, z)
			}
		}
	}
	return g
}

func sphereGrid(dims field.Dims, cx, cy, cz, r float32) *field.Grid {
	return gridFrom(dims, func(x, y, z int) float32 {
		dx := float32(x) - cx
		dy := float32(y) - cy
		dz := float32(z) - cz
		return float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz))) - r
	})
}

func checkIndices(t *testing.T, m *mesh.Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Positions) != len(m.Normals) {
		t.Fatalf("positions %d and normals %d are not parallel", len(m.Positions), len(m.Normals))
	}
	for i, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d at %d out of range (%d vertices)", idx, i, m.VertexCount())
		}
	}
}

func TestSurfaceNetsFlatPlane(t *testing.T) {
	// value = y - 2: a single horizontal surface at y=2, solid below.
	g := gridFrom(field.Dims{X: 4, Y: 4, Z: 4}, func(x, y, z int) float32 {
		return float32(y) - 2
	})

	m := NewSurfaceNets().Generate(g, Options{})
	checkIndices(t, m)

	if m.VertexCount() != 9 {
		t.Errorf("vertices = %d, want 9", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Errorf("triangles = %d, want 8", m.TriangleCount())
	}

	for i, p := range m.Positions {
		if math.Abs(float64(p.Y())-2) > 1e-5 {
			t.Errorf("vertex %d at y=%f, want 2", i, p.Y())
		}
	}

	// Solid is below, so every face must point up: both the stored
	// normals and the geometric triangle winding.
	for i, n := range m.Normals {
		if n != (mgl32.Vec3{0, 1, 0}) {
			t.Errorf("normal %d = %v, want (0,1,0)", i, n)
		}
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Positions[m.Indices[i]]
		b := m.Positions[m.Indices[i+1]]
		c := m.Positions[m.Indices[i+2]]
		if cr := b.Sub(a).Cross(c.Sub(a)); cr.Y() <= 0 {
			t.Errorf("triangle %d winds downward, cross = %v", i/3, cr)
		}
	}
}

func TestSurfaceNetsDeterministic(t *testing.T) {
	g := sphereGrid(field.Dims{X: 12, Y: 12, Z: 12}, 5.5, 5.5, 5.5, 4)
	opts := Options{Normals: NormalCentral}

	sn := NewSurfaceNets()
	m1 := sn.Generate(g, opts)
	m2 := sn.Generate(g, opts)

	if !reflect.DeepEqual(m1, m2) {
		t.Error("two extractions of the same grid differ")
	}
	if m1.IsEmpty() {
		t.Error("sphere produced no geometry")
	}
}

func TestSurfaceNetsDegenerateGrid(t *testing.T) {
	for _, dims := range []field.Dims{{X: 1, Y: 5, Z: 5}, {X: 5, Y: 1, Z: 5}, {X: 5, Y: 5, Z: 1}} {
		g := &field.Grid{Dims: dims, Values: make([]float32, dims.Len())}
		m := NewSurfaceNets().Generate(g, Options{})
		if !m.IsEmpty() || m.VertexCount() != 0 {
			t.Errorf("degenerate grid %v produced geometry", dims)
		}
	}
}

func TestSurfaceNetsUniformField(t *testing.T) {
	for _, v := range []float32{-5, 5} {
		g := gridFrom(field.Dims{X: 6, Y: 6, Z: 6}, func(x, y, z int) float32 { return v })
		m := NewSurfaceNets().Generate(g, Options{})
		if !m.IsEmpty() {
			t.Errorf("uniform field %f produced geometry", v)
		}
	}
}

func TestSurfaceNetsVerticesInsideGrid(t *testing.T) {
	dims := field.Dims{X: 10, Y: 10, Z: 10}
	g := sphereGrid(dims, 4.5, 4.5, 4.5, 3)

	m := NewSurfaceNets().Generate(g, Options{})
	checkIndices(t, m)

	for i, p := range m.Positions {
		for axis, v := range [3]float32{p.X(), p.Y(), p.Z()} {
			if v < 0 || v > 9 {
				t.Fatalf("vertex %d axis %d at %f, outside grid", i, axis, v)
			}
		}
	}
}
