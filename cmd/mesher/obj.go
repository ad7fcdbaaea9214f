package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Caspianlake/SandboxGame/internal/mesher/gen"
	"github.com/Caspianlake/SandboxGame/pkg/mesh"
)

// writeOBJ writes every chunk mesh into one Wavefront OBJ file, offset
// by the chunk's world-space grid origin. OBJ indices are global and
// 1-based, so each chunk's faces are shifted by the vertices written
// before it.
func writeOBJ(path string, meshes map[gen.ChunkKey]*mesh.Mesh, chunkSize, pad int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# generated by mesher")

	base := 1
	for _, key := range sortedKeys(meshes) {
		m := meshes[key]
		origin := gen.GridOrigin(key, chunkSize, pad)

		fmt.Fprintf(w, "o chunk_%d_%d_%d\n", key.X, key.Y, key.Z)
		for _, p := range m.Positions {
			fmt.Fprintf(w, "v %g %g %g\n",
				p.X()+float32(origin[0]),
				p.Y()+float32(origin[1]),
				p.Z()+float32(origin[2]))
		}
		for _, n := range m.Normals {
			fmt.Fprintf(w, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
		}
		for i := 0; i < len(m.Indices); i += 3 {
			a := base + int(m.Indices[i])
			b := base + int(m.Indices[i+1])
			c := base + int(m.Indices[i+2])
			fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
		base += m.VertexCount()
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
