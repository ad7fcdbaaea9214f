package gen

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Caspianlake/SandboxGame/pkg/field"
)

func TestGridDims(t *testing.T) {
	tests := []struct {
		size, pad int
		want      int
	}{
		{16, 1, 19},
		{16, 0, 17},
		{8, 1, 11},
		{1, 0, 2},
	}
	for _, tt := range tests {
		got := gridDims(tt.size, tt.pad)
		if got.X != tt.want || got.Y != tt.want || got.Z != tt.want {
			t.Errorf("gridDims(%d, %d) = %v, want %d per axis", tt.size, tt.pad, got, tt.want)
		}
	}
}

func TestGridOrigin(t *testing.T) {
	tests := []struct {
		key  ChunkKey
		size int
		pad  int
		want [3]int
	}{
		{ChunkKey{}, 16, 1, [3]int{-1, -1, -1}},
		{ChunkKey{X: 1}, 16, 1, [3]int{15, -1, -1}},
		{ChunkKey{X: 2, Y: -1, Z: 3}, 8, 0, [3]int{16, -8, 24}},
	}
	for _, tt := range tests {
		if got := GridOrigin(tt.key, tt.size, tt.pad); got != tt.want {
			t.Errorf("GridOrigin(%v, %d, %d) = %v, want %v", tt.key, tt.size, tt.pad, got, tt.want)
		}
	}
}

func TestTerrainProducerDeterministic(t *testing.T) {
	key := ChunkKey{X: 3, Y: 0, Z: -2}
	g1 := NewTerrainProducer(777, 8, 1).Produce(key)
	g2 := NewTerrainProducer(777, 8, 1).Produce(key)

	if !reflect.DeepEqual(g1, g2) {
		t.Error("same seed and key produced different grids")
	}

	g3 := NewTerrainProducer(778, 8, 1).Produce(key)
	if reflect.DeepEqual(g1.Values, g3.Values) {
		t.Error("different seeds produced identical grids")
	}
}

func TestTerrainProducerGridShape(t *testing.T) {
	g := NewTerrainProducer(1, 16, 1).Produce(ChunkKey{})
	want := field.Dims{X: 19, Y: 19, Z: 19}
	if g.Dims != want {
		t.Errorf("dims = %v, want %v", g.Dims, want)
	}
	if len(g.Values) != want.Len() {
		t.Errorf("values = %d, want %d", len(g.Values), want.Len())
	}
}

// Overlapping samples of neighboring chunks cover the same world
// positions and must agree exactly, or seams would never line up.
func TestNeighborChunksShareBoundarySamples(t *testing.T) {
	const (
		size = 8
		pad  = 1
	)
	p := NewTerrainProducer(4242, size, pad)
	a := p.Produce(ChunkKey{X: 0, Y: 0, Z: 0})
	b := p.Produce(ChunkKey{X: 1, Y: 0, Z: 0})

	// World x in [size-pad, size+pad] exists in both grids.
	for wx := size - pad; wx <= size+pad; wx++ {
		lxa := wx + pad
		lxb := wx - size + pad
		for y := 0; y < a.Dims.Y; y++ {
			for z := 0; z < a.Dims.Z; z++ {
				va := a.At(lxa, y, z)
				vb := b.At(lxb, y, z)
				if va != vb {
					t.Fatalf("world x=%d y=%d z=%d: chunk A has %f, chunk B has %f", wx, y, z, va, vb)
				}
			}
		}
	}
}

func TestTerrainHasSurface(t *testing.T) {
	// The heightfield sits around y=16, so a chunk at the origin with
	// size 32 must contain both solid and air samples.
	g := NewTerrainProducer(9, 32, 1).Produce(ChunkKey{})

	solid, air := false, false
	for _, v := range g.Values {
		if v < 0 {
			solid = true
		} else {
			air = true
		}
	}
	if !solid || !air {
		t.Errorf("terrain chunk lacks a surface: solid=%v air=%v", solid, air)
	}
}

func TestFieldProducerMatchesSample(t *testing.T) {
	sdf := field.Sphere{Center: r3.Vec{X: 10, Y: 10, Z: 10}, Radius: 5}
	key := ChunkKey{X: 1, Y: 0, Z: 2}

	got := NewFieldProducer(sdf, 8, 1).Produce(key)
	want := field.Sample(sdf, r3.Vec{X: 7, Y: -1, Z: 15}, gridDims(8, 1))

	if !reflect.DeepEqual(got, want) {
		t.Error("FieldProducer disagrees with direct sampling")
	}
}
