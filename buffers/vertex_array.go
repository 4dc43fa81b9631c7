package buffers

import (
	"github.com/bloeys/nchess/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexArray owns one vertex buffer per attribute plus an index buffer. Attribute locations
// follow the order buffers are added in, so adding position, uv then normal gives loc0, loc1, loc2.
type VertexArray struct {
	Id          uint32
	Vbos        []VertexBuffer
	IndexBuffer IndexBuffer
}

func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.Id)
}

func (va *VertexArray) UnBind() {
	gl.BindVertexArray(0)
}

func (va *VertexArray) AddVertexBuffer(vbo VertexBuffer) {

	// NOTE: VBOs are only bound at 'VertexAttribPointer' (and related) calls

	va.Bind()
	vbo.Bind()

	loc := uint32(len(va.Vbos))
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, vbo.ElementType.CompCount(), vbo.ElementType.GLType(), false, 0, 0)

	va.Vbos = append(va.Vbos, vbo)
}

func (va *VertexArray) SetIndexBuffer(ib IndexBuffer) {
	va.Bind()
	ib.Bind()
	va.IndexBuffer = ib
}

// Delete frees the array and every buffer it owns. Calling it again is a no-op.
func (va *VertexArray) Delete() {

	for i := 0; i < len(va.Vbos); i++ {
		va.Vbos[i].Delete()
	}
	va.Vbos = nil

	va.IndexBuffer.Delete()

	if va.Id != 0 {
		gl.DeleteVertexArrays(1, &va.Id)
		va.Id = 0
	}
}

func NewVertexArray() VertexArray {

	vao := VertexArray{}

	gl.GenVertexArrays(1, &vao.Id)
	if vao.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL vertex array object")
	}

	return vao
}
