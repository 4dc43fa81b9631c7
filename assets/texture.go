package assets

// Texture is a handle to an uploaded 2D texture. The zero value is the invalid handle.
//
// Copies of a texture are read-only views, only the registry that created it may delete it.
type Texture struct {
	TexID  uint32
	Width  int32
	Height int32
}

func (t *Texture) IsValid() bool {
	return t.TexID != 0
}
