package renderer

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/meshes"
)

// Render is the only way scene code touches the GPU. Uploads return handles that the caller owns
// and must hand back to the matching Delete call exactly once.
type Render interface {
	UploadMesh(name string, raw *assets.RawMeshData) (meshes.Mesh, error)
	DeleteMesh(mesh *meshes.Mesh)

	UploadTexture(raw *assets.RawTextureData) (assets.Texture, error)
	DeleteTexture(tex *assets.Texture)

	// DrawMesh issues one indexed draw of the mesh with tex bound on the diffuse slot
	DrawMesh(mesh *meshes.Mesh, tex *assets.Texture, modelMat *gglm.TrMat, viewMat, projViewMat *gglm.Mat4, mat *materials.Material)
	FrameEnd()
}
