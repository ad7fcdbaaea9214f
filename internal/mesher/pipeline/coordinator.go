// Package pipeline drives SDF generation and meshing across many chunks
// on a shared task pool, delivering finished meshes back on a single
// coordinating goroutine.
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/Caspianlake/SandboxGame/internal/mesher/gen"
	"github.com/Caspianlake/SandboxGame/pkg/field"
	"github.com/Caspianlake/SandboxGame/pkg/isosurface"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
	"github.com/Caspianlake/SandboxGame/pkg/taskpool"
)

// eventKind tags a completion notification.
type eventKind uint8

const (
	evGenerated eventKind = iota
	evMeshed
)

// event is a typed completion notification delivered from a worker to
// the coordinator. A nil grid or mesh payload signals failure-to-produce
// (degenerate or empty result), not a crash.
type event struct {
	kind eventKind
	key  gen.ChunkKey
	grid *field.Grid
	mesh *mesh.Mesh
}

// Coordinator issues one SDF-generation task per chunk, chains a meshing
// task on each completed grid, and counts outstanding tasks to detect
// overall completion. All bookkeeping and the OnMesh callback run on the
// goroutine that calls Run, so callers may touch non-thread-safe state
// (a scene graph, a render queue) from the callback.
type Coordinator struct {
	log       *slog.Logger
	pool      *taskpool.Pool
	producer  gen.Producer
	extractor isosurface.Extractor
	opts      isosurface.Options

	events chan event
}

// New creates a Coordinator. The pool is shared and not owned: Run never
// shuts it down.
func New(pool *taskpool.Pool, producer gen.Producer, extractor isosurface.Extractor, opts isosurface.Options, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{
		log:       log,
		pool:      pool,
		producer:  producer,
		extractor: extractor,
		opts:      opts,
	}
}

// Run generates and meshes every chunk in keys, invoking onMesh once per
// chunk that produced geometry. It returns once the outstanding-task
// count is back to zero, or when ctx is cancelled (in-flight tasks then
// finish into a buffered channel and are discarded).
func (c *Coordinator) Run(ctx context.Context, keys []gen.ChunkKey, onMesh func(gen.ChunkKey, *mesh.Mesh)) error {
	if len(keys) == 0 {
		return nil
	}

	// Two events per chunk at most; full buffering keeps workers from
	// ever blocking on a coordinator that has already returned.
	c.events = make(chan event, 2*len(keys))

	outstanding := 0
	for _, key := range keys {
		c.submitGenerate(key)
		outstanding++
	}

	for outstanding > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			outstanding--
			switch ev.kind {
			case evGenerated:
				if ev.grid == nil {
					c.log.Warn("chunk produced no grid", "chunk", ev.key)
					continue
				}
				c.submitMesh(ev.key, ev.grid)
				outstanding++
			case evMeshed:
				if ev.mesh == nil {
					c.log.Debug("chunk produced no geometry", "chunk", ev.key)
					continue
				}
				if onMesh != nil {
					onMesh(ev.key, ev.mesh)
				}
			}
		}
	}
	return nil
}

// submitGenerate queues the SDF-generation task for a chunk. The
// completion event is published in a deferred block so a panicking
// producer still decrements the outstanding count instead of stalling
// the barrier forever.
func (c *Coordinator) submitGenerate(key gen.ChunkKey) {
	c.pool.Submit(func() {
		var g *field.Grid
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("grid generation panicked", "chunk", key, "panic", r)
				g = nil
			}
			c.events <- event{kind: evGenerated, key: key, grid: g}
		}()
		g = c.producer.Produce(key)
	})
}

// submitMesh queues the meshing task for a produced grid. The grid is
// exclusively owned by this task and discarded afterwards.
func (c *Coordinator) submitMesh(key gen.ChunkKey, g *field.Grid) {
	c.pool.Submit(func() {
		var m *mesh.Mesh
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("meshing panicked", "chunk", key, "panic", r)
				m = nil
			}
			c.events <- event{kind: evMeshed, key: key, mesh: m}
		}()
		m = c.extractor.Generate(g, c.opts)
		if m.IsEmpty() {
			m = nil
		}
	})
}
