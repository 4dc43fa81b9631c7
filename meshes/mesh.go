package meshes

import (
	"fmt"

	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/buffers"
)

type Mesh struct {
	Name string
	/*
		Vao has the following shader attribute layout, one buffer per attribute:
			- Loc0: Pos
			- Loc1: UV0
			- Loc2: Normal
	*/
	Vao buffers.VertexArray
}

// IndexCount is the number of indices drawn for the mesh. Zero for meshes that hold no GPU data.
func (m *Mesh) IndexCount() int32 {
	return m.Vao.IndexBuffer.IndexBufCount
}

func (m *Mesh) IsValid() bool {
	return m.Vao.Id != 0 && m.Vao.IndexBuffer.Id != 0
}

// Delete releases all GPU buffers of the mesh. Repeated calls are no-ops.
func (m *Mesh) Delete() {
	m.Vao.Delete()
}

// NewMesh uploads validated mesh data to the GPU. Buffers are static and are never updated afterwards.
// A current GL context is required.
func NewMesh(name string, raw *assets.RawMeshData) (Mesh, error) {

	if err := raw.Validate(); err != nil {
		return Mesh{}, fmt.Errorf("mesh '%s': %w", name, err)
	}

	mesh := Mesh{
		Name: name,
		Vao:  buffers.NewVertexArray(),
	}

	if mesh.Vao.Id == 0 {
		return Mesh{}, fmt.Errorf("%w: failed to create vertex array for mesh '%s'", assets.ErrGPUResource, name)
	}

	posVbo := buffers.NewVertexBuffer()
	posVbo.SetVec3Data(raw.Positions, buffers.BufUsage_Static_Draw)

	uvVbo := buffers.NewVertexBuffer()
	uvVbo.SetVec2Data(raw.UVs, buffers.BufUsage_Static_Draw)

	normalVbo := buffers.NewVertexBuffer()
	normalVbo.SetVec3Data(raw.Normals, buffers.BufUsage_Static_Draw)

	ibo := buffers.NewIndexBuffer()
	ibo.SetData(raw.Indices, buffers.BufUsage_Static_Draw)

	// Order defines the attribute locations
	mesh.Vao.AddVertexBuffer(posVbo)
	mesh.Vao.AddVertexBuffer(uvVbo)
	mesh.Vao.AddVertexBuffer(normalVbo)
	mesh.Vao.SetIndexBuffer(ibo)

	// This is needed so that if you load meshes one after the other the
	// following mesh doesn't attach its vbo/ibo to this vao
	mesh.Vao.UnBind()

	if posVbo.Id == 0 || uvVbo.Id == 0 || normalVbo.Id == 0 || ibo.Id == 0 {
		mesh.Delete()
		return Mesh{}, fmt.Errorf("%w: failed to create buffers for mesh '%s'", assets.ErrGPUResource, name)
	}

	return mesh, nil
}
