package scene

import (
	"fmt"
	"slices"

	"github.com/bloeys/nchess/assets"
	"github.com/bloeys/nchess/logging"
	"github.com/bloeys/nchess/meshes"
	"github.com/bloeys/nchess/renderer"
)

// BufferRegistry is the only owner of mesh GPU buffers. Everything else holds read-only copies
// of the handles it returns, and only ReleaseAll frees them.
type BufferRegistry struct {
	rend   renderer.Render
	meshes map[assets.MeshKey]meshes.Mesh
}

// Create uploads the mesh and registers it under key. Keys are write-once.
func (br *BufferRegistry) Create(key assets.MeshKey, raw *assets.RawMeshData) (meshes.Mesh, error) {

	if _, ok := br.meshes[key]; ok {
		return meshes.Mesh{}, fmt.Errorf("mesh '%s' is already registered", key)
	}

	mesh, err := br.rend.UploadMesh(key.String(), raw)
	if err != nil {
		return meshes.Mesh{}, err
	}

	br.meshes[key] = mesh
	return mesh, nil
}

func (br *BufferRegistry) Get(key assets.MeshKey) (meshes.Mesh, error) {

	mesh, ok := br.meshes[key]
	if !ok {
		return meshes.Mesh{}, fmt.Errorf("%w: no mesh for '%s'", assets.ErrLookup, key)
	}

	return mesh, nil
}

func (br *BufferRegistry) Len() int {
	return len(br.meshes)
}

// ReleaseAll deletes every registered mesh. Calling it again is a no-op.
func (br *BufferRegistry) ReleaseAll() {

	for k, mesh := range br.meshes {
		br.rend.DeleteMesh(&mesh)
		delete(br.meshes, k)
	}
}

func NewBufferRegistry(rend renderer.Render) *BufferRegistry {
	return &BufferRegistry{
		rend:   rend,
		meshes: make(map[assets.MeshKey]meshes.Mesh),
	}
}

// TextureRegistry is the only owner of GPU textures, with the same rules as BufferRegistry.
type TextureRegistry struct {
	rend renderer.Render
	texs map[assets.TextureKey]assets.Texture

	decodeAll func(jobs map[assets.TextureKey]string, maxWorkers int) (map[assets.TextureKey]assets.RawTextureData, map[assets.TextureKey]error)
}

func (tr *TextureRegistry) Upload(key assets.TextureKey, raw *assets.RawTextureData) (assets.Texture, error) {

	if _, ok := tr.texs[key]; ok {
		return assets.Texture{}, fmt.Errorf("texture '%s' is already registered", key)
	}

	tex, err := tr.rend.UploadTexture(raw)
	if err != nil {
		return assets.Texture{}, err
	}

	tr.texs[key] = tex
	return tex, nil
}

// LoadAll decodes all files in parallel then uploads them one by one on the calling goroutine,
// which must own the GL context. Returns the error of every key that didn't make it.
func (tr *TextureRegistry) LoadAll(paths map[assets.TextureKey]string, maxWorkers int) map[assets.TextureKey]error {

	decoded, errs := tr.decodeAll(paths, maxWorkers)
	if errs == nil {
		errs = make(map[assets.TextureKey]error)
	}

	keys := make([]assets.TextureKey, 0, len(decoded))
	for k := range decoded {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {

		raw := decoded[k]
		if _, err := tr.Upload(k, &raw); err != nil {
			errs[k] = err
		}
	}

	for k, err := range errs {
		logging.ErrLog.Printf("Failed to load texture '%s' from '%s'. Err: %v\n", k, paths[k], err)
	}

	return errs
}

func (tr *TextureRegistry) Get(key assets.TextureKey) (assets.Texture, error) {

	tex, ok := tr.texs[key]
	if !ok {
		return assets.Texture{}, fmt.Errorf("%w: no texture for '%s'", assets.ErrLookup, key)
	}

	return tex, nil
}

func (tr *TextureRegistry) Len() int {
	return len(tr.texs)
}

func (tr *TextureRegistry) ReleaseAll() {

	for k, tex := range tr.texs {
		tr.rend.DeleteTexture(&tex)
		delete(tr.texs, k)
	}
}

func NewTextureRegistry(rend renderer.Render) *TextureRegistry {
	return &TextureRegistry{
		rend:      rend,
		texs:      make(map[assets.TextureKey]assets.Texture),
		decodeAll: assets.DecodeTextures,
	}
}
