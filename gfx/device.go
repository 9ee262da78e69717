// Package gfx is the thin GPU layer the forward renderer draws through.
// A Device is a GL-style immediate state machine; the concrete OpenGL
// implementation lives in gfx/glbackend and a recording double in gfx/gfxtest.
package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Handle names a device object. Zero is never a valid object and, for
// framebuffers, means the default target.
type Handle uint32

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

type ShaderSource struct {
	Stage ShaderStage
	Name  string // for diagnostics only
	Code  string
}

type TextureFormat uint32

const (
	FormatRGBA8 TextureFormat = iota
	FormatDepth24
)

type Filter uint32

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterLinearMipmapLinear
)

type Wrap uint32

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

type Primitive uint32

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
	PrimitivePoints
)

type TextureDesc struct {
	Width   int
	Height  int
	Format  TextureFormat
	Pixels  []byte // nil allocates storage only
	Mipmaps bool
}

type SamplerDesc struct {
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
}

// Vertex is the single interleaved layout every mesh uses:
// location 0 position, 1 color (normalized bytes), 2 uv, 3 normal.
type Vertex struct {
	Position mgl32.Vec3
	Color    [4]uint8
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

type MeshBuffers struct {
	VertexArray   Handle
	VertexBuffer  Handle
	ElementBuffer Handle
	ElementCount  int32
}

type Device interface {
	CreateProgram(sources ...ShaderSource) (Handle, error)
	DeleteProgram(program Handle)
	UseProgram(program Handle)
	SetUniformInt(program Handle, name string, v int32)
	SetUniformFloat(program Handle, name string, v float32)
	SetUniformVec2(program Handle, name string, v mgl32.Vec2)
	SetUniformVec3(program Handle, name string, v mgl32.Vec3)
	SetUniformVec4(program Handle, name string, v mgl32.Vec4)
	SetUniformMat4(program Handle, name string, v mgl32.Mat4)

	CreateTexture(desc TextureDesc) (Handle, error)
	DeleteTexture(texture Handle)
	BindTexture(unit uint32, texture Handle)
	CreateSampler(desc SamplerDesc) (Handle, error)
	DeleteSampler(sampler Handle)
	BindSampler(unit uint32, sampler Handle)

	CreateFramebuffer(color, depth Handle) (Handle, error)
	DeleteFramebuffer(framebuffer Handle)
	BindFramebuffer(framebuffer Handle)

	CreateVertexArray() (Handle, error)
	DeleteVertexArray(vertexArray Handle)
	BindVertexArray(vertexArray Handle)

	CreateMeshBuffers(vertices []Vertex, elements []uint32) (MeshBuffers, error)
	DeleteMeshBuffers(buffers MeshBuffers)
	DrawMesh(buffers MeshBuffers)
	DrawArrays(mode Primitive, first, count int32)

	ApplyPipelineState(state PipelineState)
	Viewport(x, y, width, height int32)
	ClearColor(color mgl32.Vec4)
	ClearDepth(depth float32)
	Clear(color, depth bool)
	ColorMask(r, g, b, a bool)
	DepthMask(enabled bool)
}
