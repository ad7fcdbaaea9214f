// Command mesher generates signed distance fields for a region of
// chunks and extracts triangle meshes from them on a worker pool,
// optionally writing the combined result as a Wavefront OBJ file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Caspianlake/SandboxGame/internal/mesher/config"
	"github.com/Caspianlake/SandboxGame/internal/mesher/gen"
	"github.com/Caspianlake/SandboxGame/internal/mesher/pipeline"
	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/isosurface"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
	"github.com/Caspianlake/SandboxGame/pkg/taskpool"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configPath = flag.String("config", "mesher.json", "JSON config file path")
		outPath    = flag.String("o", "", "write the combined mesh to this OBJ file")
		volumePath = flag.String("volume", "", "mesh a raw float32 volume file instead of a generated scene")
		volumeDims = flag.String("volume-dims", "", "sample counts of the raw volume, e.g. 64,64,64")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "voxel cells per chunk axis")
	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "chunks meshed per axis")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker threads (0 = cores minus two)")
	flag.Float64Var(&cfg.IsoLevel, "iso", cfg.IsoLevel, "iso-level threshold")
	flag.StringVar(&cfg.Algorithm, "algo", cfg.Algorithm, "extraction algorithm: surfacenets or marchingcubes")
	flag.StringVar(&cfg.Normals, "normals", cfg.Normals, "normal strategy: trilinear or central")
	flag.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene to generate: terrain, sphere or box")
	flag.Parse()

	explicitFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicitFlags[f.Name] = true })

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	fromFile := config.DefaultConfig()
	if err := config.Load(*configPath, fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicitFlags)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *volumePath != "" {
		if err := meshVolume(log, cfg, *volumePath, *volumeDims, *outPath); err != nil {
			log.Error("mesh volume", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, log, cfg, *outPath); err != nil {
		log.Error("mesher error", "error", err)
		os.Exit(1)
	}
}

// run drives the chunk pipeline over a cubic region of chunks.
func run(ctx context.Context, log *slog.Logger, cfg *config.Config, outPath string) error {
	extractor, opts, pad := extraction(cfg)
	producer := sceneProducer(cfg, pad)

	keys := make([]gen.ChunkKey, 0, cfg.Radius*cfg.Radius*cfg.Radius)
	for x := 0; x < cfg.Radius; x++ {
		for y := 0; y < cfg.Radius; y++ {
			for z := 0; z < cfg.Radius; z++ {
				keys = append(keys, gen.ChunkKey{X: x, Y: y, Z: z})
			}
		}
	}

	pool := taskpool.New(cfg.Workers, log)
	defer pool.Shutdown()

	log.Info("meshing started",
		"chunks", len(keys),
		"chunkSize", cfg.ChunkSize,
		"workers", pool.Workers(),
		"algorithm", cfg.Algorithm,
		"scene", cfg.Scene,
		"seed", cfg.Seed,
	)

	meshes := make(map[gen.ChunkKey]*mesh.Mesh)
	coord := pipeline.New(pool, producer, extractor, opts, log)
	err := coord.Run(ctx, keys, func(key gen.ChunkKey, m *mesh.Mesh) {
		meshes[key] = m
		log.Debug("chunk meshed", "chunk", key,
			"vertices", m.VertexCount(), "triangles", m.TriangleCount())
	})
	if err != nil {
		return err
	}

	var vertices, triangles int
	for _, m := range meshes {
		vertices += m.VertexCount()
		triangles += m.TriangleCount()
	}
	log.Info("meshing finished",
		"meshedChunks", len(meshes),
		"vertices", vertices,
		"triangles", triangles,
	)

	if outPath != "" {
		if err := writeOBJ(outPath, meshes, cfg.ChunkSize, pad); err != nil {
			return err
		}
		log.Info("mesh written", "path", outPath)
	}
	return nil
}

// extraction maps config to an extractor, its options, and the grid
// padding the producers must apply. Surface nets needs one sample of
// padding on every side plus the skip-min-boundary seam policy so each
// boundary face has exactly one producer; marching cubes keeps its
// triangles inside each cell, so an exact partition needs no padding.
func extraction(cfg *config.Config) (isosurface.Extractor, isosurface.Options, int) {
	opts := isosurface.Options{IsoLevel: float32(cfg.IsoLevel)}
	if cfg.Normals == "central" {
		opts.Normals = isosurface.NormalCentral
	}

	if cfg.Algorithm == "marchingcubes" {
		return isosurface.NewMarchingCubes(), opts, 0
	}
	opts.SkipMinBoundary = true
	return isosurface.NewSurfaceNets(), opts, 1
}

// sceneProducer builds the grid producer for the configured scene.
func sceneProducer(cfg *config.Config, pad int) gen.Producer {
	world := float64(cfg.ChunkSize * cfg.Radius)
	center := r3.Vec{X: world / 2, Y: world / 2, Z: world / 2}

	switch cfg.Scene {
	case "sphere":
		s := field.Sphere{Center: center, Radius: world * 0.4}
		return gen.NewFieldProducer(s, cfg.ChunkSize, pad)
	case "box":
		half := world * 0.3
		b := field.Box{Center: center, Half: r3.Vec{X: half, Y: half, Z: half}}
		return gen.NewFieldProducer(b, cfg.ChunkSize, pad)
	default:
		return gen.NewTerrainProducer(cfg.Seed, cfg.ChunkSize, pad)
	}
}

// sortedKeys returns the mesh map keys in deterministic order for
// output writing.
func sortedKeys(meshes map[gen.ChunkKey]*mesh.Mesh) []gen.ChunkKey {
	keys := make([]gen.ChunkKey, 0, len(meshes))
	for k := range meshes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return keys
}
