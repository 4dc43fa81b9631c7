package assets

import (
	"fmt"
	"math"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
)

// MeshImporter reads geometry from a model file. With no sub-mesh indices every mesh in the
// file is returned, otherwise exactly the requested ones in the order given.
type MeshImporter interface {
	Import(path string, subMeshIndices ...int) ([]RawMeshData, error)
}

var _ MeshImporter = &AssimpImporter{}

type AssimpImporter struct {
	// Extra flags on top of triangulation, which is always applied
	PostProcessFlags asig.PostProcess
}

func (ai *AssimpImporter) Import(path string, subMeshIndices ...int) ([]RawMeshData, error) {

	scene, release, err := asig.ImportFile(path, asig.PostProcessTriangulate|ai.PostProcessFlags)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load model '%s'. Err: %v", ErrImport, path, err)
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, fmt.Errorf("%w: no meshes found in file '%s'", ErrImport, path)
	}

	if len(subMeshIndices) == 0 {
		subMeshIndices = make([]int, len(scene.Meshes))
		for i := range subMeshIndices {
			subMeshIndices[i] = i
		}
	}

	out := make([]RawMeshData, 0, len(subMeshIndices))
	for _, idx := range subMeshIndices {

		if idx < 0 || idx >= len(scene.Meshes) {
			return nil, fmt.Errorf("%w: sub-mesh index %d is out of range for '%s' which has %d meshes", ErrImport, idx, path, len(scene.Meshes))
		}

		raw, err := RawMeshFromAsig(scene.Meshes[idx])
		if err != nil {
			return nil, fmt.Errorf("sub-mesh %d of '%s': %w", idx, path, err)
		}

		out = append(out, raw)
	}

	return out, nil
}

// RawMeshFromAsig converts an imported mesh. Missing UVs and normals are zero filled.
func RawMeshFromAsig(m *asig.Mesh) (RawMeshData, error) {

	vertCount := len(m.Vertices)
	if vertCount == 0 {
		return RawMeshData{}, fmt.Errorf("%w: mesh has no vertices", ErrImport)
	}

	if vertCount > math.MaxUint16+1 {
		return RawMeshData{}, fmt.Errorf("%w: mesh has %d vertices but 16-bit indices can only address %d", ErrImport, vertCount, math.MaxUint16+1)
	}

	raw := RawMeshData{
		Positions: make([]gglm.Vec3, vertCount),
		UVs:       make([]gglm.Vec2, vertCount),
		Normals:   make([]gglm.Vec3, vertCount),
		Indices:   make([]uint16, 0, len(m.Faces)*3),
	}

	copy(raw.Positions, m.Vertices)

	if len(m.Normals) == vertCount {
		copy(raw.Normals, m.Normals)
	}

	if len(m.TexCoords[0]) == vertCount {
		for i := 0; i < vertCount; i++ {
			raw.UVs[i] = gglm.Vec2{Data: [2]float32{m.TexCoords[0][i].X(), m.TexCoords[0][i].Y()}}
		}
	}

	for i := 0; i < len(m.Faces); i++ {

		face := &m.Faces[i]
		if len(face.Indices) != 3 {
			return RawMeshData{}, fmt.Errorf("%w: face %d has %d indices but only triangles are supported", ErrImport, i, len(face.Indices))
		}

		raw.Indices = append(raw.Indices, uint16(face.Indices[0]), uint16(face.Indices[1]), uint16(face.Indices[2]))
	}

	if err := raw.Validate(); err != nil {
		return RawMeshData{}, err
	}

	return raw, nil
}
