package gfx

import "github.com/go-gl/mathgl/mgl32"

type Face uint32

const (
	FaceBack Face = iota
	FaceFront
	FaceFrontAndBack
)

type Winding uint32

const (
	WindingCCW Winding = iota
	WindingCW
)

type CompareFunc uint32

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

type BlendEquation uint32

const (
	BlendAdd BlendEquation = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

type BlendFactor uint32

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorConstantColor
	FactorOneMinusConstantColor
	FactorConstantAlpha
	FactorOneMinusConstantAlpha
)

type FaceCulling struct {
	Enabled    bool
	CulledFace Face
	FrontFace  Winding
}

type DepthTesting struct {
	Enabled  bool
	Function CompareFunc
}

type Blending struct {
	Enabled           bool
	Equation          BlendEquation
	SourceFactor      BlendFactor
	DestinationFactor BlendFactor
	ConstantColor     mgl32.Vec4
}

// PipelineState is the fixed-function state a material binds before drawing.
type PipelineState struct {
	FaceCulling  FaceCulling
	DepthTesting DepthTesting
	Blending     Blending
	ColorMask    [4]bool
	DepthMask    bool
}

// DefaultPipelineState has every test disabled and all writes enabled.
func DefaultPipelineState() PipelineState {
	return PipelineState{
		FaceCulling: FaceCulling{
			CulledFace: FaceBack,
			FrontFace:  WindingCCW,
		},
		DepthTesting: DepthTesting{
			Function: CompareLess,
		},
		Blending: Blending{
			Equation:          BlendAdd,
			SourceFactor:      FactorSrcAlpha,
			DestinationFactor: FactorOneMinusSrcAlpha,
		},
		ColorMask: [4]bool{true, true, true, true},
		DepthMask: true,
	}
}

func (ps PipelineState) Setup(dev Device) {
	dev.ApplyPipelineState(ps)
}
