package shaders

import (
	"bytes"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderType int32

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
	ShaderType_Geometry
)

// Stage names as written after '//shader:' in combined sources
var shaderTypeNames = [...]string{
	ShaderType_Vertex:   "vertex",
	ShaderType_Fragment: "fragment",
	ShaderType_Geometry: "geometry",
}

func (s ShaderType) String() string {

	if s <= ShaderType_Unknown || int(s) >= len(shaderTypeNames) {
		return fmt.Sprintf("ShaderType(%d)", s)
	}

	return shaderTypeNames[s]
}

// ToGl returns zero for unknown types
func (s ShaderType) ToGl() uint32 {

	switch s {
	case ShaderType_Vertex:
		return gl.VERTEX_SHADER
	case ShaderType_Fragment:
		return gl.FRAGMENT_SHADER
	case ShaderType_Geometry:
		return gl.GEOMETRY_SHADER
	default:
		return 0
	}
}

// cutStageName splits the stage name off the start of src
func cutStageName(src []byte) (ShaderType, []byte) {

	for t := ShaderType_Vertex; int(t) < len(shaderTypeNames); t++ {
		if rest, ok := bytes.CutPrefix(src, []byte(shaderTypeNames[t])); ok {
			return t, rest
		}
	}

	return ShaderType_Unknown, src
}
