package gfx

import (
	"strings"

	"github.com/pkg/errors"
)

var compareFuncNames = map[string]CompareFunc{
	"never":         CompareNever,
	"less":          CompareLess,
	"equal":         CompareEqual,
	"less_equal":    CompareLessEqual,
	"greater":       CompareGreater,
	"not_equal":     CompareNotEqual,
	"greater_equal": CompareGreaterEqual,
	"always":        CompareAlways,
}

var faceNames = map[string]Face{
	"back":           FaceBack,
	"front":          FaceFront,
	"front_and_back": FaceFrontAndBack,
}

var windingNames = map[string]Winding{
	"ccw": WindingCCW,
	"cw":  WindingCW,
}

var blendEquationNames = map[string]BlendEquation{
	"add":              BlendAdd,
	"subtract":         BlendSubtract,
	"reverse_subtract": BlendReverseSubtract,
	"min":              BlendMin,
	"max":              BlendMax,
}

var blendFactorNames = map[string]BlendFactor{
	"zero":                     FactorZero,
	"one":                      FactorOne,
	"src_color":                FactorSrcColor,
	"one_minus_src_color":      FactorOneMinusSrcColor,
	"dst_color":                FactorDstColor,
	"one_minus_dst_color":      FactorOneMinusDstColor,
	"src_alpha":                FactorSrcAlpha,
	"one_minus_src_alpha":      FactorOneMinusSrcAlpha,
	"dst_alpha":                FactorDstAlpha,
	"one_minus_dst_alpha":      FactorOneMinusDstAlpha,
	"constant_color":           FactorConstantColor,
	"one_minus_constant_color": FactorOneMinusConstantColor,
	"constant_alpha":           FactorConstantAlpha,
	"one_minus_constant_alpha": FactorOneMinusConstantAlpha,
}

func lookup[T any](table map[string]T, what, name string) (T, error) {
	v, ok := table[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		var zero T
		return zero, errors.Errorf("gfx: unknown %s %q", what, name)
	}
	return v, nil
}

func ParseCompareFunc(name string) (CompareFunc, error) {
	return lookup(compareFuncNames, "compare function", name)
}

func ParseFace(name string) (Face, error) { return lookup(faceNames, "face", name) }

func ParseWinding(name string) (Winding, error) { return lookup(windingNames, "winding", name) }

func ParseBlendEquation(name string) (BlendEquation, error) {
	return lookup(blendEquationNames, "blend equation", name)
}

func ParseBlendFactor(name string) (BlendFactor, error) {
	return lookup(blendFactorNames, "blend factor", name)
}
