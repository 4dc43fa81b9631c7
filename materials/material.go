package materials

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/assert"
	"github.com/bloeys/nchess/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	lastMatId uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse TextureSlot = 0
)

// Uniform names every scene shader must declare
const (
	UnifModelMat = "modelMat"
	UnifViewMat  = "viewMat"
	UnifMvpMat   = "mvpMat"
	UnifDiffTex  = "diffTex"
	UnifLightPos = "lightPosWorld"
)

type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram

	UnifLocs map[string]int32

	// Texture bound to TextureSlot_Diffuse on Bind. Usually overridden per draw
	DiffuseTex uint32

	// World space position of the single point light
	LightPos gglm.Vec3
}

func (m *Material) Bind() {

	m.ShaderProg.Bind()

	gl.ActiveTexture(uint32(gl.TEXTURE0 + TextureSlot_Diffuse))
	gl.BindTexture(gl.TEXTURE_2D, m.DiffuseTex)
}

func (m *Material) UnBind() {
	gl.UseProgram(0)
}

func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(m.ShaderProg.Id, name)
	assert.T(loc != -1, "Uniform '"+uniformName+"' doesn't exist on material "+m.Name)
	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	gl.ProgramUniform3fv(m.ShaderProg.Id, m.GetUnifLoc(uniformName), 1, &vec3.Data[0])
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(m.ShaderProg.Id, m.GetUnifLoc(uniformName), 1, false, &mat4.Data[0][0])
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

func NewMaterial(matName, shaderPath string) (Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShader(shaderPath)
	if err != nil {
		return Material{}, fmt.Errorf("failed to create new material '%s'. Err: %w", matName, err)
	}

	return newMaterialFromProg(matName, shdrProg), nil
}

func newMaterialFromProg(matName string, shdrProg shaders.ShaderProgram) Material {

	m := Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
		UnifLocs:   make(map[string]int32),
	}

	// The diffuse sampler never changes slot
	m.SetUnifInt32(UnifDiffTex, int32(TextureSlot_Diffuse))
	return m
}
