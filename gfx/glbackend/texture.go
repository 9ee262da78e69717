package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

func textureFormat(f gfx.TextureFormat) (internal int32, format, xtype uint32) {
	if f == gfx.FormatDepth24 {
		return gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT
	}
	return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
}

func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.Handle, error) {
	internal, format, xtype := textureFormat(desc.Format)
	if desc.Pixels != nil && desc.Format == gfx.FormatRGBA8 && len(desc.Pixels) < desc.Width*desc.Height*4 {
		return 0, errors.Errorf("texture data too short: %d bytes for %dx%d", len(desc.Pixels), desc.Width, desc.Height)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	var pixels unsafe.Pointer
	if len(desc.Pixels) != 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, xtype, pixels)
	if desc.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, errors.Errorf("glTexImage2D failed: 0x%x", errCode)
	}
	return gfx.Handle(tex), nil
}

func (d *Device) DeleteTexture(texture gfx.Handle) {
	tex := uint32(texture)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) BindTexture(unit uint32, texture gfx.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
}

func filter(f gfx.Filter) int32 {
	switch f {
	case gfx.FilterNearest:
		return gl.NEAREST
	case gfx.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return gl.LINEAR
}

func wrap(w gfx.Wrap) int32 {
	switch w {
	case gfx.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gfx.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

func (d *Device) CreateSampler(desc gfx.SamplerDesc) (gfx.Handle, error) {
	var s uint32
	gl.GenSamplers(1, &s)
	if s == 0 {
		return 0, errors.New("glGenSamplers returned 0")
	}
	gl.SamplerParameteri(s, gl.TEXTURE_MIN_FILTER, filter(desc.MinFilter))
	gl.SamplerParameteri(s, gl.TEXTURE_MAG_FILTER, filter(desc.MagFilter))
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_S, wrap(desc.WrapS))
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_T, wrap(desc.WrapT))
	return gfx.Handle(s), nil
}

func (d *Device) DeleteSampler(sampler gfx.Handle) {
	s := uint32(sampler)
	gl.DeleteSamplers(1, &s)
}

func (d *Device) BindSampler(unit uint32, sampler gfx.Handle) {
	gl.BindSampler(unit, uint32(sampler))
}
