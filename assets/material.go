package assets

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

var materialKinds = map[string]gfx.MaterialKind{
	"tinted":       gfx.MaterialTinted,
	"textured":     gfx.MaterialTextured,
	"lit":          gfx.MaterialLit,
	"lit_textured": gfx.MaterialLitTextured,
}

func (c *Cache) buildMaterial(mc config.MaterialConfig) (*gfx.Material, error) {
	kind, ok := materialKinds[mc.Type]
	if !ok {
		return nil, errors.Errorf("unknown material type %q", mc.Type)
	}
	program, err := c.Program(mc.Shader)
	if err != nil {
		return nil, err
	}
	pipeline, err := PipelineState(mc.Pipeline)
	if err != nil {
		return nil, err
	}

	m := &gfx.Material{
		Kind:           kind,
		Program:        program,
		Pipeline:       pipeline,
		Tint:           mgl32.Vec4{1, 1, 1, 1},
		AlphaThreshold: mc.AlphaThreshold,
		Transparent:    mc.Transparent,
	}
	copy(m.Tint[:], mc.Tint)

	bindings := mc.Textures
	if mc.Texture != "" {
		uniform := "tex"
		if kind == gfx.MaterialLitTextured {
			uniform = "albedo"
		}
		bindings = append([]config.TextureBindingConfig{{Uniform: uniform, Texture: mc.Texture, Sampler: mc.Sampler}}, bindings...)
	}
	if (kind == gfx.MaterialTextured || kind == gfx.MaterialLitTextured) && len(bindings) == 0 {
		return nil, errors.Errorf("%s material needs a texture", mc.Type)
	}
	for _, b := range bindings {
		tb := gfx.TextureBinding{Uniform: b.Uniform}
		if tb.Texture, err = c.Texture(b.Texture); err != nil {
			return nil, err
		}
		if b.Sampler != "" {
			if tb.Sampler, err = c.Sampler(b.Sampler); err != nil {
				return nil, err
			}
		}
		m.Textures = append(m.Textures, tb)
	}
	return m, nil
}

// PipelineState starts from gfx.DefaultPipelineState and applies the
// sections present in pc.
func PipelineState(pc config.PipelineConfig) (gfx.PipelineState, error) {
	ps := gfx.DefaultPipelineState()
	var err error

	if fc := pc.FaceCulling; fc != nil {
		ps.FaceCulling.Enabled = fc.Enabled
		if fc.CulledFace != "" {
			if ps.FaceCulling.CulledFace, err = gfx.ParseFace(fc.CulledFace); err != nil {
				return ps, err
			}
		}
		if fc.FrontFace != "" {
			if ps.FaceCulling.FrontFace, err = gfx.ParseWinding(fc.FrontFace); err != nil {
				return ps, err
			}
		}
	}
	if dt := pc.DepthTesting; dt != nil {
		ps.DepthTesting.Enabled = dt.Enabled
		if dt.Function != "" {
			if ps.DepthTesting.Function, err = gfx.ParseCompareFunc(dt.Function); err != nil {
				return ps, err
			}
		}
	}
	if bl := pc.Blending; bl != nil {
		ps.Blending.Enabled = bl.Enabled
		if bl.Equation != "" {
			if ps.Blending.Equation, err = gfx.ParseBlendEquation(bl.Equation); err != nil {
				return ps, err
			}
		}
		if bl.SourceFactor != "" {
			if ps.Blending.SourceFactor, err = gfx.ParseBlendFactor(bl.SourceFactor); err != nil {
				return ps, err
			}
		}
		if bl.DestinationFactor != "" {
			if ps.Blending.DestinationFactor, err = gfx.ParseBlendFactor(bl.DestinationFactor); err != nil {
				return ps, err
			}
		}
		copy(ps.Blending.ConstantColor[:], bl.ConstantColor)
	}
	copy(ps.ColorMask[:], pc.ColorMask)
	if pc.DepthMask != nil {
		ps.DepthMask = *pc.DepthMask
	}
	return ps, nil
}

var filters = map[string]gfx.Filter{
	"":                     gfx.FilterLinear,
	"nearest":              gfx.FilterNearest,
	"linear":               gfx.FilterLinear,
	"linear_mipmap_linear": gfx.FilterLinearMipmapLinear,
}

var wraps = map[string]gfx.Wrap{
	"":                gfx.WrapRepeat,
	"repeat":          gfx.WrapRepeat,
	"clamp_to_edge":   gfx.WrapClampToEdge,
	"mirrored_repeat": gfx.WrapMirroredRepeat,
}

func samplerDesc(sc config.SamplerConfig) (gfx.SamplerDesc, error) {
	var d gfx.SamplerDesc
	var ok bool
	if d.MinFilter, ok = filters[sc.MinFilter]; !ok {
		return d, errors.Errorf("unknown filter %q", sc.MinFilter)
	}
	if d.MagFilter, ok = filters[sc.MagFilter]; !ok {
		return d, errors.Errorf("unknown filter %q", sc.MagFilter)
	}
	if d.WrapS, ok = wraps[sc.WrapS]; !ok {
		return d, errors.Errorf("unknown wrap mode %q", sc.WrapS)
	}
	if d.WrapT, ok = wraps[sc.WrapT]; !ok {
		return d, errors.Errorf("unknown wrap mode %q", sc.WrapT)
	}
	return d, nil
}
