package shaders

import (
	"errors"
	"strings"

	"github.com/bloeys/nchess/assert"
	"github.com/bloeys/nchess/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	gl.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		assert.T(false, "Unknown shader type '%s' for shader id '%d'", shader.Type, shader.Id)
	}
}

// Link links the program and frees the attached shader objects, which are no longer needed either way
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)
	defer sp.deleteShaders()

	var linkedSuccessfully int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetProgramInfoLog(sp.Id, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Linking of shader program with id ", sp.Id, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}

func (sp *ShaderProgram) deleteShaders() {

	if sp.VertShaderId != 0 {
		gl.DeleteShader(sp.VertShaderId)
	}

	if sp.FragShaderId != 0 {
		gl.DeleteShader(sp.FragShaderId)
	}

	if sp.GeomShaderId != 0 {
		gl.DeleteShader(sp.GeomShaderId)
	}
}

func (s *ShaderProgram) Delete() {

	if s.Id == 0 {
		return
	}

	gl.DeleteProgram(s.Id)
	s.Id = 0
}

func (s *ShaderProgram) Bind() {
	gl.UseProgram(s.Id)
}

func (s *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}
