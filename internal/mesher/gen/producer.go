package gen

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Caspianlake/SandboxGame/pkg/field"
)

// ChunkKey identifies a chunk by its integer coordinates in chunk space.
type ChunkKey struct {
	X, Y, Z int
}

// Producer supplies the SDF grid for a chunk. The grid covers the
// chunk's logical voxel span plus Pad extra samples below the minimum
// corner on each axis (and symmetrically above), so neighboring chunks
// can stitch seams and estimate gradients without sampling each other.
//
// Ownership of the returned buffer passes to the caller; the producer
// must not retain it.
type Producer interface {
	Produce(key ChunkKey) *field.Grid
}

// gridDims returns the padded sample counts for a chunk of size cells
// per axis.
func gridDims(size, pad int) field.Dims {
	n := size + 1 + 2*pad
	return field.Dims{X: n, Y: n, Z: n}
}

// TerrainProducer samples a heightfield-plus-caves density as a signed
// distance field: negative below the terrain surface, positive above.
type TerrainProducer struct {
	terrain *NoiseGenerator
	detail  *NoiseGenerator
	caves   *NoiseGenerator

	size int
	pad  int
}

// NewTerrainProducer creates a terrain producer for chunks of size cells
// per axis, padded by pad samples on each side.
func NewTerrainProducer(seed int64, size, pad int) *TerrainProducer {
	return &TerrainProducer{
		terrain: NewNoiseGenerator(seed),
		detail:  NewNoiseGenerator(seed + 1),
		caves:   NewNoiseGenerator(seed + 2),
		size:    size,
		pad:     pad,
	}
}

// Produce fills the chunk's padded grid. Deterministic: the same seed
// and key always yield the same values.
func (p *TerrainProducer) Produce(key ChunkKey) *field.Grid {
	dims := gridDims(p.size, p.pad)
	values := make([]float32, dims.Len())

	i := 0
	for x := 0; x < dims.X; x++ {
		wx := key.X*p.size + x - p.pad
		for z := 0; z < dims.Z; z++ {
			wz := key.Z*p.size + z - p.pad
			h := p.height(wx, wz)
			for y := 0; y < dims.Y; y++ {
				wy := key.Y*p.size + y - p.pad
				values[i] = float32(p.density(wx, wy, wz, h))
				i++
			}
		}
	}
	return &field.Grid{Dims: dims, Values: values}
}

// height returns the terrain surface height at a world column.
func (p *TerrainProducer) height(wx, wz int) float64 {
	base := p.terrain.OctaveNoise2D(float64(wx)/128.0, float64(wz)/128.0, 6, 0.5)
	detail := p.detail.OctaveNoise2D(float64(wx)/32.0, float64(wz)/32.0, 3, 0.5)
	return 16.0 + base*24.0 + detail*4.0
}

// density is the SDF value at a world sample: distance above the
// heightfield, with 3D noise carving overhangs and caves into it.
func (p *TerrainProducer) density(wx, wy, wz int, h float64) float64 {
	carve := p.caves.OctaveNoise3D(float64(wx)/48.0, float64(wy)/48.0, float64(wz)/48.0, 4, 0.5)
	return float64(wy) - h + carve*6.0
}

// FieldProducer samples an analytic SDF scene over each chunk's padded
// grid, with the same world-space layout as TerrainProducer.
type FieldProducer struct {
	sdf  field.SDF3
	size int
	pad  int
}

// NewFieldProducer wraps an analytic SDF as a chunk grid producer.
func NewFieldProducer(sdf field.SDF3, size, pad int) *FieldProducer {
	return &FieldProducer{sdf: sdf, size: size, pad: pad}
}

func (p *FieldProducer) Produce(key ChunkKey) *field.Grid {
	origin := r3.Vec{
		X: float64(key.X*p.size - p.pad),
		Y: float64(key.Y*p.size - p.pad),
		Z: float64(key.Z*p.size - p.pad),
	}
	return field.Sample(p.sdf, origin, gridDims(p.size, p.pad))
}

// GridOrigin returns the world-space position of sample (0,0,0) of the
// grid produced for key, used to place the finished mesh.
func GridOrigin(key ChunkKey, size, pad int) [3]int {
	return [3]int{key.X*size - pad, key.Y*size - pad, key.Z*size - pad}
}
