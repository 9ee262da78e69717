package glbackend

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/gekko3d/gekko-forward/gfx"
)

var faces = map[gfx.Face]uint32{
	gfx.FaceBack:         gl.BACK,
	gfx.FaceFront:        gl.FRONT,
	gfx.FaceFrontAndBack: gl.FRONT_AND_BACK,
}

var compareFuncs = map[gfx.CompareFunc]uint32{
	gfx.CompareNever:        gl.NEVER,
	gfx.CompareLess:         gl.LESS,
	gfx.CompareEqual:        gl.EQUAL,
	gfx.CompareLessEqual:    gl.LEQUAL,
	gfx.CompareGreater:      gl.GREATER,
	gfx.CompareNotEqual:     gl.NOTEQUAL,
	gfx.CompareGreaterEqual: gl.GEQUAL,
	gfx.CompareAlways:       gl.ALWAYS,
}

var blendEquations = map[gfx.BlendEquation]uint32{
	gfx.BlendAdd:             gl.FUNC_ADD,
	gfx.BlendSubtract:        gl.FUNC_SUBTRACT,
	gfx.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	gfx.BlendMin:             gl.MIN,
	gfx.BlendMax:             gl.MAX,
}

var blendFactors = map[gfx.BlendFactor]uint32{
	gfx.FactorZero:                  gl.ZERO,
	gfx.FactorOne:                   gl.ONE,
	gfx.FactorSrcColor:              gl.SRC_COLOR,
	gfx.FactorOneMinusSrcColor:      gl.ONE_MINUS_SRC_COLOR,
	gfx.FactorDstColor:              gl.DST_COLOR,
	gfx.FactorOneMinusDstColor:      gl.ONE_MINUS_DST_COLOR,
	gfx.FactorSrcAlpha:              gl.SRC_ALPHA,
	gfx.FactorOneMinusSrcAlpha:      gl.ONE_MINUS_SRC_ALPHA,
	gfx.FactorDstAlpha:              gl.DST_ALPHA,
	gfx.FactorOneMinusDstAlpha:      gl.ONE_MINUS_DST_ALPHA,
	gfx.FactorConstantColor:         gl.CONSTANT_COLOR,
	gfx.FactorOneMinusConstantColor: gl.ONE_MINUS_CONSTANT_COLOR,
	gfx.FactorConstantAlpha:         gl.CONSTANT_ALPHA,
	gfx.FactorOneMinusConstantAlpha: gl.ONE_MINUS_CONSTANT_ALPHA,
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func (d *Device) ApplyPipelineState(s gfx.PipelineState) {
	enable(gl.CULL_FACE, s.FaceCulling.Enabled)
	if s.FaceCulling.Enabled {
		gl.CullFace(faces[s.FaceCulling.CulledFace])
		if s.FaceCulling.FrontFace == gfx.WindingCW {
			gl.FrontFace(gl.CW)
		} else {
			gl.FrontFace(gl.CCW)
		}
	}

	enable(gl.DEPTH_TEST, s.DepthTesting.Enabled)
	if s.DepthTesting.Enabled {
		gl.DepthFunc(compareFuncs[s.DepthTesting.Function])
	}

	enable(gl.BLEND, s.Blending.Enabled)
	if s.Blending.Enabled {
		gl.BlendEquation(blendEquations[s.Blending.Equation])
		gl.BlendFunc(blendFactors[s.Blending.SourceFactor], blendFactors[s.Blending.DestinationFactor])
		c := s.Blending.ConstantColor
		gl.BlendColor(c[0], c[1], c[2], c[3])
	}

	gl.ColorMask(s.ColorMask[0], s.ColorMask[1], s.ColorMask[2], s.ColorMask[3])
	gl.DepthMask(s.DepthMask)
}
