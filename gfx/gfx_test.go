package gfx_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-forward/gfx"
	"github.com/gekko3d/gekko-forward/gfx/gfxtest"
)

func vertexShader() gfx.ShaderSource {
	return gfx.ShaderSource{Stage: gfx.StageVertex, Name: "test.vert", Code: "void main(){}"}
}

func TestProgramDestroyReleasesOnce(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := gfx.NewProgram(dev, vertexShader())
	require.NoError(t, err)
	h := p.Handle()

	p.Destroy()
	p.Destroy()

	assert.Equal(t, 1, dev.ReleaseCount(h))
	assert.Empty(t, dev.DoubleReleases)
	assert.Equal(t, 0, dev.Live())
}

func TestNewProgramRequiresSources(t *testing.T) {
	_, err := gfx.NewProgram(gfxtest.NewDevice())
	assert.Error(t, err)
}

func TestFramebufferOwnsAttachments(t *testing.T) {
	dev := gfxtest.NewDevice()
	fb, err := gfx.NewFramebuffer(dev, image.Pt(64, 32))
	require.NoError(t, err)
	assert.Equal(t, 2, dev.Live(gfxtest.KindTexture))
	assert.Equal(t, 1, dev.Live(gfxtest.KindFramebuffer))
	assert.Equal(t, 64, fb.Color.Width)
	assert.Equal(t, gfx.FormatDepth24, fb.Depth.Format)

	fb.Destroy()
	fb.Destroy()
	assert.Equal(t, 0, dev.Live())
	assert.Empty(t, dev.DoubleReleases)
}

func TestFramebufferFailureLeavesNothing(t *testing.T) {
	dev := gfxtest.NewDevice()
	dev.FailNth("CreateFramebuffer", 1)

	_, err := gfx.NewFramebuffer(dev, image.Pt(8, 8))
	require.ErrorIs(t, err, gfxtest.ErrInjected)
	assert.Equal(t, 0, dev.Live())

	dev.FailNth("CreateTexture", 2)
	_, err = gfx.NewFramebuffer(dev, image.Pt(8, 8))
	require.Error(t, err)
	assert.Equal(t, 0, dev.Live())
}

func TestTextureRejectsEmptySize(t *testing.T) {
	_, err := gfx.NewEmptyTexture(gfxtest.NewDevice(), gfx.FormatRGBA8, image.Pt(0, 4))
	assert.Error(t, err)
}

func TestSphereGeometry(t *testing.T) {
	vertices, elements := gfx.SphereGeometry(image.Pt(16, 16))
	assert.Len(t, vertices, 17*17)
	assert.Len(t, elements, 16*16*6)
	for _, v := range vertices {
		assert.InDelta(t, 1.0, v.Position.Len(), 1e-5)
	}
	for _, e := range elements {
		assert.Less(t, int(e), len(vertices))
	}
}

func TestSphereMeshRejectsDegenerateSegments(t *testing.T) {
	_, err := gfx.NewSphereMesh(gfxtest.NewDevice(), image.Pt(2, 1))
	assert.Error(t, err)
}

func TestCubeGeometryNormalsPointOutward(t *testing.T) {
	vertices, elements := gfx.CubeGeometry()
	require.Len(t, vertices, 24)
	assert.Len(t, elements, 36)
	for _, v := range vertices {
		assert.Greater(t, v.Position.Dot(v.Normal), float32(0))
	}
}

func TestMeshDestroyReleasesBuffers(t *testing.T) {
	dev := gfxtest.NewDevice()
	m, err := gfx.NewPlaneMesh(dev)
	require.NoError(t, err)
	assert.Equal(t, int32(6), m.ElementCount())
	assert.Equal(t, 3, dev.Live())

	m.Draw()
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(6), dev.Draws[0].Count)

	m.Destroy()
	m.Destroy()
	assert.Equal(t, 0, dev.Live())
	assert.Empty(t, dev.DoubleReleases)
}

func TestMaterialSetupBindsTextures(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := gfx.NewProgram(dev, vertexShader())
	require.NoError(t, err)
	tex, err := gfx.NewTexture(dev, gfx.TextureDesc{Width: 1, Height: 1, Pixels: []byte{255, 0, 0, 255}})
	require.NoError(t, err)
	s, err := gfx.NewSampler(dev, gfx.SamplerDesc{})
	require.NoError(t, err)

	m := gfx.NewTexturedMaterial(p, tex, s)
	m.Tint = mgl32.Vec4{1, 0.5, 0.25, 1}
	m.AlphaThreshold = 0.5
	m.Pipeline.DepthTesting.Enabled = true
	m.Setup()

	assert.False(t, m.Lit())
	assert.Equal(t, p.Handle(), dev.Program)
	assert.True(t, dev.State.DepthTesting.Enabled)
	assert.Equal(t, tex.Handle(), dev.Textures[0])
	assert.Equal(t, s.Handle(), dev.Samplers[0])
	tint, _ := dev.Uniform(p.Handle(), "tint")
	assert.Equal(t, m.Tint, tint)
	unit, _ := dev.Uniform(p.Handle(), "tex")
	assert.Equal(t, int32(0), unit)
	threshold, _ := dev.Uniform(p.Handle(), "alphaThreshold")
	assert.Equal(t, float32(0.5), threshold)
}

func TestLitMaterialKinds(t *testing.T) {
	p := &gfx.Program{}
	assert.True(t, gfx.NewLitMaterial(p).Lit())
	assert.True(t, gfx.NewLitTexturedMaterial(p).Lit())
	assert.False(t, gfx.NewTintedMaterial(p).Lit())
	assert.Equal(t, "lit_textured", gfx.MaterialLitTextured.String())
}

func TestParsePipelineNames(t *testing.T) {
	f, err := gfx.ParseCompareFunc("LESS_EQUAL")
	require.NoError(t, err)
	assert.Equal(t, gfx.CompareLessEqual, f)

	bf, err := gfx.ParseBlendFactor("one_minus_src_alpha")
	require.NoError(t, err)
	assert.Equal(t, gfx.FactorOneMinusSrcAlpha, bf)

	_, err = gfx.ParseFace("sideways")
	assert.Error(t, err)
}
