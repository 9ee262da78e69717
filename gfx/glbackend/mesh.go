package glbackend

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

const (
	attribPosition = 0
	attribColor    = 1
	attribUV       = 2
	attribNormal   = 3
)

func (d *Device) CreateMeshBuffers(vertices []gfx.Vertex, elements []uint32) (gfx.MeshBuffers, error) {
	if len(vertices) == 0 || len(elements) == 0 {
		return gfx.MeshBuffers{}, errors.New("empty mesh")
	}
	var vertex gfx.Vertex
	stride := int(unsafe.Sizeof(vertex))
	var vao, vbo, ebo uint32

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*stride, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.Position))
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribColor, 4, gl.UNSIGNED_BYTE, true, int32(stride), unsafe.Offsetof(vertex.Color))
	gl.EnableVertexAttribArray(attribColor)
	gl.VertexAttribPointerWithOffset(attribUV, 2, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.TexCoord))
	gl.EnableVertexAttribArray(attribUV)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.Normal))
	gl.EnableVertexAttribArray(attribNormal)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(elements), gl.Ptr(elements), gl.STATIC_DRAW)

	runtime.KeepAlive(vertices)
	runtime.KeepAlive(elements)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return gfx.MeshBuffers{
		VertexArray:   gfx.Handle(vao),
		VertexBuffer:  gfx.Handle(vbo),
		ElementBuffer: gfx.Handle(ebo),
		ElementCount:  int32(len(elements)),
	}, nil
}

func (d *Device) DeleteMeshBuffers(b gfx.MeshBuffers) {
	vao, vbo, ebo := uint32(b.VertexArray), uint32(b.VertexBuffer), uint32(b.ElementBuffer)
	gl.DeleteVertexArrays(1, &vao)
	gl.DeleteBuffers(1, &vbo)
	gl.DeleteBuffers(1, &ebo)
}

func (d *Device) DrawMesh(b gfx.MeshBuffers) {
	gl.BindVertexArray(uint32(b.VertexArray))
	gl.DrawElements(gl.TRIANGLES, b.ElementCount, gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindVertexArray(0)
}

func primitive(p gfx.Primitive) uint32 {
	switch p {
	case gfx.PrimitiveLines:
		return gl.LINES
	case gfx.PrimitivePoints:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}
