package gfx

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Program is a linked shader program.
type Program struct {
	dev    Device
	handle Handle
}

func NewProgram(dev Device, sources ...ShaderSource) (*Program, error) {
	if len(sources) == 0 {
		return nil, errors.New("gfx: program needs at least one shader stage")
	}
	h, err := dev.CreateProgram(sources...)
	if err != nil {
		return nil, errors.Wrap(err, "gfx: create program")
	}
	return &Program{dev: dev, handle: h}, nil
}

func (p *Program) Handle() Handle { return p.handle }

func (p *Program) Use() { p.dev.UseProgram(p.handle) }

func (p *Program) SetInt(name string, v int32) { p.dev.SetUniformInt(p.handle, name, v) }
func (p *Program) SetFloat(name string, v float32) { p.dev.SetUniformFloat(p.handle, name, v) }
func (p *Program) SetVec2(name string, v mgl32.Vec2) { p.dev.SetUniformVec2(p.handle, name, v) }
func (p *Program) SetVec3(name string, v mgl32.Vec3) { p.dev.SetUniformVec3(p.handle, name, v) }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.dev.SetUniformVec4(p.handle, name, v) }
func (p *Program) SetMat4(name string, v mgl32.Mat4) { p.dev.SetUniformMat4(p.handle, name, v) }

func (p *Program) Destroy() {
	if p == nil || p.handle == 0 {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.handle = 0
}

type Texture struct {
	dev    Device
	handle Handle
	Width  int
	Height int
	Format TextureFormat
}

func NewTexture(dev Device, desc TextureDesc) (*Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, errors.Errorf("gfx: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	h, err := dev.CreateTexture(desc)
	if err != nil {
		return nil, errors.Wrap(err, "gfx: create texture")
	}
	return &Texture{dev: dev, handle: h, Width: desc.Width, Height: desc.Height, Format: desc.Format}, nil
}

// NewEmptyTexture allocates storage without uploading texels, e.g. for render targets.
func NewEmptyTexture(dev Device, format TextureFormat, size image.Point) (*Texture, error) {
	return NewTexture(dev, TextureDesc{Width: size.X, Height: size.Y, Format: format})
}

func (t *Texture) Handle() Handle { return t.handle }

func (t *Texture) Bind(unit uint32) { t.dev.BindTexture(unit, t.handle) }

func (t *Texture) Destroy() {
	if t == nil || t.handle == 0 {
		return
	}
	t.dev.DeleteTexture(t.handle)
	t.handle = 0
}

type Sampler struct {
	dev    Device
	handle Handle
	Desc   SamplerDesc
}

func NewSampler(dev Device, desc SamplerDesc) (*Sampler, error) {
	h, err := dev.CreateSampler(desc)
	if err != nil {
		return nil, errors.Wrap(err, "gfx: create sampler")
	}
	return &Sampler{dev: dev, handle: h, Desc: desc}, nil
}

func (s *Sampler) Handle() Handle { return s.handle }

func (s *Sampler) Bind(unit uint32) { s.dev.BindSampler(unit, s.handle) }

func (s *Sampler) Destroy() {
	if s == nil || s.handle == 0 {
		return
	}
	s.dev.DeleteSampler(s.handle)
	s.handle = 0
}

// Framebuffer owns its color and depth attachments and releases them with itself.
type Framebuffer struct {
	dev    Device
	handle Handle
	Color  *Texture
	Depth  *Texture
}

// NewFramebuffer creates an RGBA8 color + Depth24 target of the given size.
// On failure nothing is left allocated.
func NewFramebuffer(dev Device, size image.Point) (*Framebuffer, error) {
	color, err := NewEmptyTexture(dev, FormatRGBA8, size)
	if err != nil {
		return nil, errors.Wrap(err, "gfx: framebuffer color attachment")
	}
	depth, err := NewEmptyTexture(dev, FormatDepth24, size)
	if err != nil {
		color.Destroy()
		return nil, errors.Wrap(err, "gfx: framebuffer depth attachment")
	}
	h, err := dev.CreateFramebuffer(color.Handle(), depth.Handle())
	if err != nil {
		color.Destroy()
		depth.Destroy()
		return nil, errors.Wrap(err, "gfx: create framebuffer")
	}
	return &Framebuffer{dev: dev, handle: h, Color: color, Depth: depth}, nil
}

func (f *Framebuffer) Handle() Handle { return f.handle }

func (f *Framebuffer) Bind() { f.dev.BindFramebuffer(f.handle) }

func (f *Framebuffer) Destroy() {
	if f == nil || f.handle == 0 {
		return
	}
	f.dev.DeleteFramebuffer(f.handle)
	f.handle = 0
	f.Color.Destroy()
	f.Depth.Destroy()
}

// VertexArray is an empty array object, enough for attribute-less fullscreen draws.
type VertexArray struct {
	dev    Device
	handle Handle
}

func NewVertexArray(dev Device) (*VertexArray, error) {
	h, err := dev.CreateVertexArray()
	if err != nil {
		return nil, errors.Wrap(err, "gfx: create vertex array")
	}
	return &VertexArray{dev: dev, handle: h}, nil
}

func (v *VertexArray) Handle() Handle { return v.handle }

func (v *VertexArray) Bind() { v.dev.BindVertexArray(v.handle) }

func (v *VertexArray) Destroy() {
	if v == nil || v.handle == 0 {
		return
	}
	v.dev.DeleteVertexArray(v.handle)
	v.handle = 0
}
