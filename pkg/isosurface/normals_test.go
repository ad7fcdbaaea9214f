package isosurface

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Caspianlake/SandboxGame/pkg/field"
)

func TestNormalUnitLength(t *testing.T) {
	g := sphereGrid(field.Dims{X: 10, Y: 10, Z: 10}, 4.5, 4.5, 4.5, 3)

	positions := []mgl32.Vec3{
		{4.5, 1.6, 4.5},
		{2.1, 4.5, 4.5},
		{6.9, 6.2, 3.3},
		{4.5, 4.5, 7.4},
	}
	for _, strategy := range []NormalStrategy{NormalTrilinear, NormalCentral} {
		for _, pos := range positions {
			n := Normal(g, pos, strategy)
			if d := math.Abs(float64(n.Len()) - 1); d > 1e-4 {
				t.Errorf("strategy %d at %v: |normal| off by %g", strategy, pos, d)
			}
		}
	}
}

func TestNormalFlatFieldFallback(t *testing.T) {
	g := gridFrom(field.Dims{X: 5, Y: 5, Z: 5}, func(x, y, z int) float32 { return 3 })

	want := mgl32.Vec3{0, 1, 0}
	for _, strategy := range []NormalStrategy{NormalTrilinear, NormalCentral} {
		if got := Normal(g, mgl32.Vec3{2.5, 2.5, 2.5}, strategy); got != want {
			t.Errorf("strategy %d on flat field = %v, want %v", strategy, got, want)
		}
	}
}

func TestNormalFollowsFieldGradient(t *testing.T) {
	tests := []struct {
		name string
		f    func(x, y, z int) float32
		want mgl32.Vec3
	}{
		{"up", func(x, y, z int) float32 { return float32(y) - 2 }, mgl32.Vec3{0, 1, 0}},
		{"x", func(x, y, z int) float32 { return float32(x) - 2 }, mgl32.Vec3{1, 0, 0}},
		{"z", func(x, y, z int) float32 { return float32(z) - 2 }, mgl32.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		g := gridFrom(field.Dims{X: 5, Y: 5, Z: 5}, tt.f)
		for _, strategy := range []NormalStrategy{NormalTrilinear, NormalCentral} {
			got := Normal(g, mgl32.Vec3{2.25, 2.25, 2.25}, strategy)
			if got.Sub(tt.want).Len() > 1e-5 {
				t.Errorf("%s strategy %d = %v, want %v", tt.name, strategy, got, tt.want)
			}
		}
	}
}

func TestNormalAtGridBoundary(t *testing.T) {
	g := sphereGrid(field.Dims{X: 6, Y: 6, Z: 6}, 2.5, 2.5, 2.5, 2)

	// Clamping must keep boundary lookups in range for both strategies.
	corners := []mgl32.Vec3{
		{0, 0, 0},
		{5, 5, 5},
		{0, 5, 0},
		{5, 0, 5},
	}
	for _, strategy := range []NormalStrategy{NormalTrilinear, NormalCentral} {
		for _, pos := range corners {
			n := Normal(g, pos, strategy)
			if l := n.Len(); math.Abs(float64(l)-1) > 1e-4 {
				t.Errorf("strategy %d at %v: |normal| = %f", strategy, pos, l)
			}
		}
	}
}
