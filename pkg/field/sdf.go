package field

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is a signed distance field over 3D space. Evaluate returns a
// negative value inside the surface, positive outside, and approximately
// the distance to the surface in either case.
type SDF3 interface {
	Evaluate(p r3.Vec) float64
}

// Sphere is the SDF of a sphere.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

func (s Sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, s.Center)) - s.Radius
}

// Box is the SDF of an axis-aligned box with half-extents Half.
type Box struct {
	Center r3.Vec
	Half   r3.Vec
}

func (b Box) Evaluate(p r3.Vec) float64 {
	d := r3.Sub(p, b.Center)
	q := r3.Vec{
		X: math.Abs(d.X) - b.Half.X,
		Y: math.Abs(d.Y) - b.Half.Y,
		Z: math.Abs(d.Z) - b.Half.Z,
	}
	outside := r3.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)}
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return r3.Norm(outside) + inside
}

// Plane is the SDF of a half-space: negative below the plane
// dot(Normal, p) = Offset. Normal should be unit length.
type Plane struct {
	Normal r3.Vec
	Offset float64
}

func (pl Plane) Evaluate(p r3.Vec) float64 {
	return r3.Dot(pl.Normal, p) - pl.Offset
}

// Sample evaluates s at every lattice point of a dims-sized grid whose
// sample (0,0,0) sits at origin, with unit spacing, and returns the
// resulting Grid.
func Sample(s SDF3, origin r3.Vec, dims Dims) *Grid {
	values := make([]float32, dims.Len())
	i := 0
	for x := 0; x < dims.X; x++ {
		for z := 0; z < dims.Z; z++ {
			for y := 0; y < dims.Y; y++ {
				p := r3.Vec{
					X: origin.X + float64(x),
					Y: origin.Y + float64(y),
					Z: origin.Z + float64(z),
				}
				values[i] = float32(s.Evaluate(p))
				i++
			}
		}
	}
	return &Grid{Dims: dims, Values: values}
}
