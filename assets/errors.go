package assets

import "errors"

var (
	// ErrImport is returned when a mesh file can't be read or has data we can't use
	ErrImport = errors.New("mesh import failed")

	// ErrDecode is returned when a texture file can't be read or isn't in a supported format
	ErrDecode = errors.New("texture decode failed")

	// ErrGPUResource is returned when GPU resources are requested without a current context
	ErrGPUResource = errors.New("gpu context is not current")

	// ErrLookup is returned when no asset is registered for a key
	ErrLookup = errors.New("asset not registered")
)
