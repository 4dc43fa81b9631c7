package scene

import (
	"fmt"
	"slices"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/buffers"
	"github.com/bloeys/nchess/config"
	"github.com/bloeys/nchess/materials"
	"github.com/bloeys/nchess/meshes"
)

type drawCall struct {
	Mesh  string
	TexID uint32
	Model gglm.TrMat
}

// fakeRender hands out fake GPU ids and records everything it is asked to do
type fakeRender struct {
	nextId uint32

	meshUploads   map[string]assets.RawMeshData
	texUploads    int
	deletedMeshes []string
	deletedTexs   []uint32
	draws         []drawCall
}

func (f *fakeRender) UploadMesh(name string, raw *assets.RawMeshData) (meshes.Mesh, error) {

	if err := raw.Validate(); err != nil {
		return meshes.Mesh{}, err
	}

	f.nextId++
	f.meshUploads[name] = assets.RawMeshData{
		Positions: slices.Clone(raw.Positions),
		UVs:       slices.Clone(raw.UVs),
		Normals:   slices.Clone(raw.Normals),
		Indices:   slices.Clone(raw.Indices),
	}

	return meshes.Mesh{
		Name: name,
		Vao: buffers.VertexArray{
			Id:          f.nextId,
			IndexBuffer: buffers.IndexBuffer{Id: f.nextId, IndexBufCount: int32(len(raw.Indices))},
		},
	}, nil
}

func (f *fakeRender) DeleteMesh(mesh *meshes.Mesh) {
	f.deletedMeshes = append(f.deletedMeshes, mesh.Name)
	*mesh = meshes.Mesh{}
}

func (f *fakeRender) UploadTexture(raw *assets.RawTextureData) (assets.Texture, error) {

	if !raw.IsValid() {
		return assets.Texture{}, fmt.Errorf("%w: bad texture data", assets.ErrDecode)
	}

	f.nextId++
	f.texUploads++
	return assets.Texture{TexID: f.nextId, Width: int32(raw.Width), Height: int32(raw.Height)}, nil
}

func (f *fakeRender) DeleteTexture(tex *assets.Texture) {
	f.deletedTexs = append(f.deletedTexs, tex.TexID)
	*tex = assets.Texture{}
}

func (f *fakeRender) DrawMesh(mesh *meshes.Mesh, tex *assets.Texture, modelMat *gglm.TrMat, viewMat, projViewMat *gglm.Mat4, mat *materials.Material) {
	f.draws = append(f.draws, drawCall{Mesh: mesh.Name, TexID: tex.TexID, Model: *modelMat})
}

func (f *fakeRender) FrameEnd() {
}

func newFakeRender() *fakeRender {
	return &fakeRender{
		meshUploads: make(map[string]assets.RawMeshData),
	}
}

// fakeImporter serves sub-meshes from memory, keyed by file path
type fakeImporter struct {
	files map[string][]assets.RawMeshData
	calls int
}

func (fi *fakeImporter) Import(path string, subMeshIndices ...int) ([]assets.RawMeshData, error) {

	fi.calls++

	all, ok := fi.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: no file '%s'", assets.ErrImport, path)
	}

	if len(subMeshIndices) == 0 {
		subMeshIndices = make([]int, len(all))
		for i := range all {
			subMeshIndices[i] = i
		}
	}

	out := make([]assets.RawMeshData, 0, len(subMeshIndices))
	for _, idx := range subMeshIndices {

		if idx < 0 || idx >= len(all) {
			return nil, fmt.Errorf("%w: sub-mesh %d out of range", assets.ErrImport, idx)
		}

		m := all[idx]
		out = append(out, assets.RawMeshData{
			Positions: slices.Clone(m.Positions),
			UVs:       slices.Clone(m.UVs),
			Normals:   slices.Clone(m.Normals),
			Indices:   slices.Clone(m.Indices),
		})
	}

	return out, nil
}

type fixedViewer struct {
	view     gglm.Mat4
	projView gglm.Mat4
}

func (v *fixedViewer) ViewMat() *gglm.Mat4 {
	return &v.view
}

func (v *fixedViewer) ProjViewMat() gglm.Mat4 {
	return v.projView
}

func newFixedViewer() *fixedViewer {
	return &fixedViewer{
		view:     gglm.NewTrMatId().Mat4,
		projView: gglm.NewTrMatId().Mat4,
	}
}

// quadAt is a flat two triangle quad centered on (cx, y, cz)
func quadAt(cx, y, cz float32) assets.RawMeshData {
	return assets.RawMeshData{
		Positions: []gglm.Vec3{
			gglm.NewVec3(cx-1, y, cz-1),
			gglm.NewVec3(cx+1, y, cz-1),
			gglm.NewVec3(cx+1, y, cz+1),
			gglm.NewVec3(cx-1, y, cz+1),
		},
		UVs: []gglm.Vec2{
			gglm.NewVec2(0, 0),
			gglm.NewVec2(1, 0),
			gglm.NewVec2(1, 1),
			gglm.NewVec2(0, 1),
		},
		Normals: []gglm.Vec3{
			gglm.NewVec3(0, 1, 0),
			gglm.NewVec3(0, 1, 0),
			gglm.NewVec3(0, 1, 0),
			gglm.NewVec3(0, 1, 0),
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// fakeAssets returns an importer holding the board file plus a pieces file with 12 sub-meshes,
// enough for every index of the default config.
func fakeAssets(cfg *config.Config) *fakeImporter {

	pieces := make([]assets.RawMeshData, 12)
	for i := range pieces {
		pieces[i] = quadAt(float32(i), 0.5, float32(-i))
	}

	return &fakeImporter{
		files: map[string][]assets.RawMeshData{
			cfg.Assets.BoardMeshPath:  {quadAt(10, 0, 10)},
			cfg.Assets.PiecesMeshPath: pieces,
		},
	}
}

// fakeDecode decodes every path into a 1x1 texture, except the ones listed in failing
func fakeDecode(failing ...string) func(map[assets.TextureKey]string, int) (map[assets.TextureKey]assets.RawTextureData, map[assets.TextureKey]error) {

	return func(jobs map[assets.TextureKey]string, maxWorkers int) (map[assets.TextureKey]assets.RawTextureData, map[assets.TextureKey]error) {

		texs := make(map[assets.TextureKey]assets.RawTextureData, len(jobs))
		errs := make(map[assets.TextureKey]error)
		for k, p := range jobs {

			if slices.Contains(failing, p) {
				errs[k] = fmt.Errorf("%w: can't read '%s'", assets.ErrDecode, p)
				continue
			}

			texs[k] = assets.RawTextureData{Width: 1, Height: 1, Data: []byte{1, 2, 3}}
		}

		return texs, errs
	}
}

func newTestScene(cfg *config.Config, importer assets.MeshImporter, failingTextures ...string) (*Scene, *fakeRender) {

	rend := newFakeRender()
	s := New(cfg, rend, importer)
	s.Textures.decodeAll = fakeDecode(failingTextures...)

	return s, rend
}
