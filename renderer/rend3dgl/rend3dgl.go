package rend3dgl

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/meshes"
	"github.com/bloeys/nchess/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

type Rend3DGL struct {
	BoundMeshVaoId uint32
	BoundMatId     uint32
	BoundTexId     uint32

	contextCurrent bool
	mvpMat         gglm.Mat4
}

// MarkContextCurrent must be called once the GL context is created and current on the calling
// thread. Uploads fail with assets.ErrGPUResource before that.
func (r *Rend3DGL) MarkContextCurrent() {
	r.contextCurrent = true
}

func (r *Rend3DGL) UploadMesh(name string, raw *assets.RawMeshData) (meshes.Mesh, error) {

	if !r.contextCurrent {
		return meshes.Mesh{}, fmt.Errorf("%w: can't upload mesh '%s'", assets.ErrGPUResource, name)
	}

	return meshes.NewMesh(name, raw)
}

func (r *Rend3DGL) DeleteMesh(mesh *meshes.Mesh) {

	if mesh.Vao.Id == r.BoundMeshVaoId {
		r.BoundMeshVaoId = 0
	}

	mesh.Delete()
}

func (r *Rend3DGL) UploadTexture(raw *assets.RawTextureData) (assets.Texture, error) {

	if !r.contextCurrent {
		return assets.Texture{}, fmt.Errorf("%w: can't upload texture", assets.ErrGPUResource)
	}

	if !raw.IsValid() {
		return assets.Texture{}, fmt.Errorf("%w: texture data of %dx%d has %d bytes", assets.ErrDecode, raw.Width, raw.Height, len(raw.Data))
	}

	tex := assets.Texture{
		Width:  int32(raw.Width),
		Height: int32(raw.Height),
	}

	gl.GenTextures(1, &tex.TexID)
	if tex.TexID == 0 {
		return assets.Texture{}, fmt.Errorf("%w: failed to create OpenGL texture", assets.ErrGPUResource)
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)

	// Rows are tightly packed, which breaks the default 4 byte alignment for odd widths
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, tex.Width, tex.Height, 0, gl.BGR, gl.UNSIGNED_BYTE, gl.Ptr(&raw.Data[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.BoundTexId = 0

	return tex, nil
}

func (r *Rend3DGL) DeleteTexture(tex *assets.Texture) {

	if tex.TexID == 0 {
		return
	}

	if tex.TexID == r.BoundTexId {
		r.BoundTexId = 0
	}

	gl.DeleteTextures(1, &tex.TexID)
	*tex = assets.Texture{}
}

func (r *Rend3DGL) DrawMesh(mesh *meshes.Mesh, tex *assets.Texture, modelMat *gglm.TrMat, viewMat, projViewMat *gglm.Mat4, mat *materials.Material) {

	if !mesh.IsValid() {
		logging.WarnLog.Printf("Skipping draw of invalid mesh '%s'\n", mesh.Name)
		return
	}

	if mesh.Vao.Id != r.BoundMeshVaoId {
		mesh.Vao.Bind()
		r.BoundMeshVaoId = mesh.Vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
		r.BoundTexId = mat.DiffuseTex
	}

	if tex.TexID != r.BoundTexId {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + materials.TextureSlot_Diffuse))
		gl.BindTexture(gl.TEXTURE_2D, tex.TexID)
		r.BoundTexId = tex.TexID
	}

	r.mvpMat = *projViewMat
	r.mvpMat.Mul(&modelMat.Mat4)

	mat.SetUnifMat4(materials.UnifModelMat, &modelMat.Mat4)
	mat.SetUnifMat4(materials.UnifViewMat, viewMat)
	mat.SetUnifMat4(materials.UnifMvpMat, &r.mvpMat)
	mat.SetUnifVec3(materials.UnifLightPos, &mat.LightPos)

	gl.DrawElementsWithOffset(gl.TRIANGLES, mesh.IndexCount(), gl.UNSIGNED_SHORT, 0)
}

func (r3d *Rend3DGL) FrameEnd() {
	r3d.BoundMeshVaoId = 0
	r3d.BoundMatId = 0
	r3d.BoundTexId = 0
}

func NewRend3DGL() *Rend3DGL {
	return &Rend3DGL{}
}
