package assets

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
)

// RawMeshData is the CPU side of a mesh as produced by an importer, ready to be uploaded.
// Indices describe a triangle list.
type RawMeshData struct {
	Positions []gglm.Vec3
	UVs       []gglm.Vec2
	Normals   []gglm.Vec3
	Indices   []uint16
}

func (m *RawMeshData) VertexCount() int {
	return len(m.Positions)
}

// Validate checks that all attribute arrays have the same length, that indices form
// complete triangles, and that no index points past the last vertex.
func (m *RawMeshData) Validate() error {

	if len(m.UVs) != len(m.Positions) || len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: attribute lengths differ (positions=%d; uvs=%d; normals=%d)", ErrImport, len(m.Positions), len(m.UVs), len(m.Normals))
	}

	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrImport, len(m.Indices))
	}

	vertCount := len(m.Positions)
	for i := 0; i < len(m.Indices); i++ {
		if int(m.Indices[i]) >= vertCount {
			return fmt.Errorf("%w: index %d at position %d is out of range for %d vertices", ErrImport, m.Indices[i], i, vertCount)
		}
	}

	return nil
}

// CentroidXZ returns the arithmetic mean of the X and Z coordinates of all vertices.
// Returns zeros for an empty mesh.
func (m *RawMeshData) CentroidXZ() (x, z float32) {

	if len(m.Positions) == 0 {
		return 0, 0
	}

	var sumX, sumZ float64
	for i := 0; i < len(m.Positions); i++ {
		sumX += float64(m.Positions[i].X())
		sumZ += float64(m.Positions[i].Z())
	}

	n := float64(len(m.Positions))
	return float32(sumX / n), float32(sumZ / n)
}

// CenterXZ moves the mesh so that its horizontal centroid sits on the origin. Y is untouched.
func (m *RawMeshData) CenterXZ() {

	cx, cz := m.CentroidXZ()
	if cx == 0 && cz == 0 {
		return
	}

	for i := 0; i < len(m.Positions); i++ {
		p := &m.Positions[i]
		p.Data[0] -= cx
		p.Data[2] -= cz
	}
}
