// Package glbackend implements gfx.Device on OpenGL 4.3 core. Every method
// must be called on the thread that owns the current GL context.
package glbackend

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

type Device struct {
	uniforms map[uint32]map[string]int32
}

var _ gfx.Device = (*Device)(nil)

// New loads GL entry points. A context has to be current.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL")
	}
	return &Device{uniforms: make(map[uint32]map[string]int32)}, nil
}

func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateFramebuffer(color, depth gfx.Handle) (gfx.Handle, error) {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	if color != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(color), 0)
	}
	if depth != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, uint32(depth), 0)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fb)
		return 0, errors.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return gfx.Handle(fb), nil
}

func (d *Device) DeleteFramebuffer(framebuffer gfx.Handle) {
	fb := uint32(framebuffer)
	gl.DeleteFramebuffers(1, &fb)
}

func (d *Device) BindFramebuffer(framebuffer gfx.Handle) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(framebuffer))
}

func (d *Device) CreateVertexArray() (gfx.Handle, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, errors.New("glGenVertexArrays returned 0")
	}
	return gfx.Handle(vao), nil
}

func (d *Device) DeleteVertexArray(vertexArray gfx.Handle) {
	vao := uint32(vertexArray)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) BindVertexArray(vertexArray gfx.Handle) {
	gl.BindVertexArray(uint32(vertexArray))
}

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) ClearColor(c mgl32.Vec4) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *Device) ClearDepth(depth float32) { gl.ClearDepth(float64(depth)) }

func (d *Device) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

func (d *Device) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }

func (d *Device) DepthMask(enabled bool) { gl.DepthMask(enabled) }
