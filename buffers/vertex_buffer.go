package buffers

import (
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nchess/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer holds exactly one tightly packed vertex attribute
type VertexBuffer struct {
	Id          uint32
	ElementType ElementType
	// Count is the number of elements (not floats) in the buffer. Updated on SetData
	Count int32
}

func (vb *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.Id)
}

func (vb *VertexBuffer) UnBind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (vb *VertexBuffer) SetVec3Data(values []gglm.Vec3, usage BufUsage) {

	vb.ElementType = DataTypeVec3
	if len(values) == 0 {
		vb.setData(nil, 0, usage)
		return
	}

	vb.setData(gl.Ptr(&values[0].Data[0]), len(values), usage)
}

func (vb *VertexBuffer) SetVec2Data(values []gglm.Vec2, usage BufUsage) {

	vb.ElementType = DataTypeVec2
	if len(values) == 0 {
		vb.setData(nil, 0, usage)
		return
	}

	vb.setData(gl.Ptr(&values[0].Data[0]), len(values), usage)
}

func (vb *VertexBuffer) setData(ptr unsafe.Pointer, count int, usage BufUsage) {

	vb.Bind()
	vb.Count = int32(count)

	if count == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, gl.Ptr(nil), usage.ToGL())
		return
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*int(vb.ElementType.Size()), ptr, usage.ToGL())
}

func (vb *VertexBuffer) Delete() {

	if vb.Id == 0 {
		return
	}

	gl.DeleteBuffers(1, &vb.Id)
	vb.Id = 0
	vb.Count = 0
}

func NewVertexBuffer() VertexBuffer {

	vb := VertexBuffer{}

	gl.GenBuffers(1, &vb.Id)
	if vb.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	return vb
}
