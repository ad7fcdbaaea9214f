package isosurface

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
)

// NormalStrategy selects how surface normals are derived from the field
// gradient.
type NormalStrategy uint8

const (
	// NormalTrilinear evaluates the exact gradient of the trilinear
	// interpolant of the containing cell. Continuous across cell
	// boundaries and never samples outside the grid. The default.
	NormalTrilinear NormalStrategy = iota

	// NormalCentral takes central differences at the nearest integer
	// sample. Cheaper, but discontinuous at cell boundaries.
	NormalCentral
)

// minGradientSq is the squared gradient magnitude below which the
// estimator gives up and returns fallbackNormal instead of normalizing
// a near-zero vector.
const minGradientSq = 1e-4

// fallbackNormal is returned wherever the field gradient vanishes.
var fallbackNormal = mgl32.Vec3{0, 1, 0}

// Normal estimates the unit surface normal at a continuous grid
// position. It never fails: a vanishing gradient yields a fixed up
// vector.
func Normal(g *field.Grid, pos mgl32.Vec3, strategy NormalStrategy) mgl32.Vec3 {
	var grad mgl32.Vec3
	switch strategy {
	case NormalCentral:
		grad = centralGradient(g, pos)
	default:
		grad = trilinearGradient(g, pos)
	}
	if grad.LenSqr() < minGradientSq {
		return fallbackNormal
	}
	return grad.Normalize()
}

// trilinearGradient computes the closed-form partial derivatives of the
// trilinear interpolant of the cell containing pos. The position is
// clamped into the valid cell range so boundary vertices reuse the
// outermost cell.
func trilinearGradient(g *field.Grid, pos mgl32.Vec3) mgl32.Vec3 {
	d := g.Dims

	px := clampF(pos.X(), 0, float32(d.X-2))
	py := clampF(pos.Y(), 0, float32(d.Y-2))
	pz := clampF(pos.Z(), 0, float32(d.Z-2))

	ix := int(math.Floor(float64(px)))
	iy := int(math.Floor(float64(py)))
	iz := int(math.Floor(float64(pz)))

	fx := px - float32(ix)
	fy := py - float32(iy)
	fz := pz - float32(iz)

	c000 := g.At(ix, iy, iz)
	c100 := g.At(ix+1, iy, iz)
	c010 := g.At(ix, iy+1, iz)
	c110 := g.At(ix+1, iy+1, iz)
	c001 := g.At(ix, iy, iz+1)
	c101 := g.At(ix+1, iy, iz+1)
	c011 := g.At(ix, iy+1, iz+1)
	c111 := g.At(ix+1, iy+1, iz+1)

	gx := (c100-c000)*(1-fy)*(1-fz) +
		(c110-c010)*fy*(1-fz) +
		(c101-c001)*(1-fy)*fz +
		(c111-c011)*fy*fz
	gy := (c010-c000)*(1-fx)*(1-fz) +
		(c110-c100)*fx*(1-fz) +
		(c011-c001)*(1-fx)*fz +
		(c111-c101)*fx*fz
	gz := (c001-c000)*(1-fx)*(1-fy) +
		(c101-c100)*fx*(1-fy) +
		(c011-c010)*(1-fx)*fy +
		(c111-c110)*fx*fy

	return mgl32.Vec3{gx, gy, gz}
}

// centralGradient takes central differences at the integer sample
// nearest to pos, clamping the neighbor lookups at the grid boundary.
func centralGradient(g *field.Grid, pos mgl32.Vec3) mgl32.Vec3 {
	x := int(math.Round(float64(pos.X())))
	y := int(math.Round(float64(pos.Y())))
	z := int(math.Round(float64(pos.Z())))

	gx := (g.AtClamped(x+1, y, z) - g.AtClamped(x-1, y, z)) * 0.5
	gy := (g.AtClamped(x, y+1, z) - g.AtClamped(x, y-1, z)) * 0.5
	gz := (g.AtClamped(x, y, z+1) - g.AtClamped(x, y, z-1)) * 0.5

	return mgl32.Vec3{gx, gy, gz}
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
