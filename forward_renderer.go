package gekko

import (
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

// FramePhase is one step of a frame. Phases only move forward.
type FramePhase uint8

const (
	PhaseSetup FramePhase = iota
	PhaseOffscreen
	PhaseSpecial
	PhaseOpaque
	PhaseSky
	PhaseTransparent
	PhaseComposite
)

func (p FramePhase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseOffscreen:
		return "offscreen"
	case PhaseSpecial:
		return "special"
	case PhaseOpaque:
		return "opaque"
	case PhaseSky:
		return "sky"
	case PhaseTransparent:
		return "transparent"
	case PhaseComposite:
		return "composite"
	}
	return "unknown"
}

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Skipped     bool // no camera
	Phases      []FramePhase
	Draws       int
	Special     int
	Opaque      int
	Transparent int
	Lights      int
}

// alwaysBehind copies clip w into z so the sky lands on the far plane.
var alwaysBehind = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 0,
	0, 0, 1, 1,
}

type skyPass struct {
	mesh     *gfx.Mesh
	program  *gfx.Program
	texture  *gfx.Texture
	sampler  *gfx.Sampler
	material *gfx.Material
}

func (s *skyPass) destroy() {
	s.mesh.Destroy()
	s.program.Destroy()
	s.texture.Destroy()
	s.sampler.Destroy()
}

type postPass struct {
	framebuffer *gfx.Framebuffer
	vertexArray *gfx.VertexArray
	program     *gfx.Program
	sampler     *gfx.Sampler
	// material samples framebuffer.Color; it does not own it.
	material *gfx.Material
}

func (p *postPass) destroy() {
	p.framebuffer.Destroy()
	p.vertexArray.Destroy()
	p.sampler.Destroy()
	p.program.Destroy()
}

// ForwardRenderer draws a World in a fixed sequence of passes. Meshes and
// materials referenced by mesh renderers are read, never released.
type ForwardRenderer struct {
	dev    gfx.Device
	loader ResourceLoader
	logger Logger

	viewport    image.Point
	clearColor  mgl32.Vec4
	initialized bool
	start       time.Time
	now         func() time.Time

	sky  *skyPass
	post *postPass

	frame  FrameCommands
	lights []lightState
	stats  FrameStats
}

func NewForwardRenderer(dev gfx.Device, loader ResourceLoader, logger Logger) *ForwardRenderer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &ForwardRenderer{
		dev:    dev,
		loader: loader,
		logger: logger,
		now:    time.Now,
	}
}

// Initialize creates the sky and post-process resources cfg asks for. Any
// failure releases whatever was already created.
func (r *ForwardRenderer) Initialize(viewport image.Point, cfg config.RendererConfig) error {
	if r.initialized {
		return ErrAlreadyInitialized
	}
	cfg = cfg.WithDefaults()
	r.viewport = viewport
	r.clearColor = mgl32.Vec4{0, 0, 0, 1}
	copy(r.clearColor[:], cfg.ClearColor)
	r.start = r.now()

	if cfg.Sky != nil {
		sky, err := r.createSky(cfg.Sky)
		if err != nil {
			return errors.Wrap(err, "renderer: sky")
		}
		r.sky = sky
	}
	if cfg.Postprocess != nil {
		post, err := r.createPostprocess(cfg.Postprocess)
		if err != nil {
			r.releaseOwned()
			return errors.Wrap(err, "renderer: postprocess")
		}
		r.post = post
	}
	r.initialized = true
	r.logger.Infof("forward renderer ready: %dx%d sky=%t postprocess=%t",
		viewport.X, viewport.Y, r.sky != nil, r.post != nil)
	return nil
}

func (r *ForwardRenderer) createSky(cfg *config.SkyConfig) (sky *skyPass, err error) {
	if cfg.Texture == "" {
		return nil, errors.Wrap(ErrMissingResource, "sky texture path is empty")
	}
	sky = &skyPass{}
	defer func() {
		if err != nil {
			sky.destroy()
			sky = nil
		}
	}()

	segments := image.Pt(cfg.Segments, cfg.Segments)
	if sky.mesh, err = gfx.NewSphereMesh(r.dev, segments); err != nil {
		return
	}
	if sky.program, err = r.loader.LoadProgram(cfg.Vertex, cfg.Fragment); err != nil {
		return
	}
	if sky.texture, err = r.loader.LoadTexture(cfg.Texture, false); err != nil {
		return
	}
	sky.sampler, err = gfx.NewSampler(r.dev, gfx.SamplerDesc{
		MinFilter: gfx.FilterLinear,
		MagFilter: gfx.FilterLinear,
		WrapS:     gfx.WrapRepeat,
		WrapT:     gfx.WrapClampToEdge,
	})
	if err != nil {
		return
	}

	m := gfx.NewTexturedMaterial(sky.program, sky.texture, sky.sampler)
	m.Pipeline.FaceCulling.Enabled = true
	m.Pipeline.FaceCulling.CulledFace = gfx.FaceFront
	m.Pipeline.DepthTesting.Enabled = true
	m.Pipeline.DepthTesting.Function = gfx.CompareLessEqual
	m.AlphaThreshold = 1
	sky.material = m
	return sky, nil
}

func (r *ForwardRenderer) createPostprocess(cfg *config.PostprocessConfig) (post *postPass, err error) {
	if cfg.Fragment == "" {
		return nil, errors.Wrap(ErrMissingResource, "postprocess fragment path is empty")
	}
	post = &postPass{}
	defer func() {
		if err != nil {
			post.destroy()
			post = nil
		}
	}()

	if post.framebuffer, err = gfx.NewFramebuffer(r.dev, r.viewport); err != nil {
		return
	}
	if post.vertexArray, err = gfx.NewVertexArray(r.dev); err != nil {
		return
	}
	post.sampler, err = gfx.NewSampler(r.dev, gfx.SamplerDesc{
		MinFilter: gfx.FilterLinear,
		MagFilter: gfx.FilterLinear,
		WrapS:     gfx.WrapClampToEdge,
		WrapT:     gfx.WrapClampToEdge,
	})
	if err != nil {
		return
	}
	if post.program, err = r.loader.LoadProgram(cfg.Vertex, cfg.Fragment); err != nil {
		return
	}

	m := gfx.NewTexturedMaterial(post.program, post.framebuffer.Color, post.sampler)
	m.Pipeline.DepthMask = false
	post.material = m
	return post, nil
}

// Resize recreates the offscreen target for a new viewport size. Empty sizes,
// as reported for a minimized window, are ignored. On failure the previous
// viewport and target stay in use.
func (r *ForwardRenderer) Resize(viewport image.Point) error {
	if viewport == r.viewport || viewport.X <= 0 || viewport.Y <= 0 {
		return nil
	}
	if r.post == nil {
		r.viewport = viewport
		return nil
	}
	fb, err := gfx.NewFramebuffer(r.dev, viewport)
	if err != nil {
		return errors.Wrap(err, "renderer: resize postprocess target")
	}
	r.viewport = viewport
	r.post.framebuffer.Destroy()
	r.post.framebuffer = fb
	r.post.material.Textures[0].Texture = fb.Color
	return nil
}

// Destroy releases every resource the renderer created. Initialize may be
// called again afterwards.
func (r *ForwardRenderer) Destroy() {
	if !r.initialized {
		return
	}
	r.releaseOwned()
	r.initialized = false
}

func (r *ForwardRenderer) releaseOwned() {
	if r.sky != nil {
		r.sky.destroy()
		r.sky = nil
	}
	if r.post != nil {
		r.post.destroy()
		r.post = nil
	}
}

func (r *ForwardRenderer) Viewport() image.Point { return r.viewport }

// LastFrame returns statistics of the most recent Render call.
func (r *ForwardRenderer) LastFrame() FrameStats { return r.stats }

func (r *ForwardRenderer) enter(p FramePhase) {
	if n := len(r.stats.Phases); n > 0 && r.stats.Phases[n-1] >= p {
		panic("renderer: frame phase " + p.String() + " after " + r.stats.Phases[n-1].String())
	}
	r.stats.Phases = append(r.stats.Phases, p)
}

// Render draws world. A world without a camera, or a renderer that is not
// initialized, is skipped before any device call.
func (r *ForwardRenderer) Render(world *World) {
	r.stats = FrameStats{Phases: make([]FramePhase, 0, int(PhaseComposite)+1)}
	r.frame.collect(world, r.logger)
	cam := r.frame.Camera
	if cam == nil || !r.initialized {
		r.stats.Skipped = true
		return
	}

	SortBackToFront(r.frame.Transparent, cam.Forward())
	r.lights = resolveLights(r.lights, r.frame.Lights, r.logger)
	r.stats.Special = len(r.frame.Special)
	r.stats.Opaque = len(r.frame.Opaque)
	r.stats.Transparent = len(r.frame.Transparent)
	r.stats.Lights = len(r.lights)

	eye := cam.Eye()
	viewProjection := cam.ProjectionMatrix(r.viewport).Mul4(cam.ViewMatrix())

	r.enter(PhaseSetup)
	r.dev.Viewport(0, 0, int32(r.viewport.X), int32(r.viewport.Y))
	r.dev.ClearColor(r.clearColor)
	r.dev.ClearDepth(1)
	r.dev.ColorMask(true, true, true, true)
	r.dev.DepthMask(true)

	if r.post != nil {
		r.enter(PhaseOffscreen)
		r.post.framebuffer.Bind()
		r.post.program.Use()
		elapsed := float32(r.now().Sub(r.start).Milliseconds()) / 25
		r.post.program.SetFloat("time", elapsed)
	}

	r.dev.Clear(true, true)

	r.enter(PhaseSpecial)
	for i := range r.frame.Special {
		cmd := &r.frame.Special[i]
		m := cmd.Material
		m.Setup()
		r.setLitUniforms(m, &cmd.RenderCommand, viewProjection, eye)
		m.SetVec3("axis", cmd.Axis)
		m.SetFloat("angle", cmd.Angle)
		r.draw(cmd.Mesh)
	}

	r.enter(PhaseOpaque)
	r.drawCommands(r.frame.Opaque, viewProjection, eye)

	if r.sky != nil {
		r.enter(PhaseSky)
		m := r.sky.material
		m.Setup()
		model := mgl32.Translate3D(eye.X(), eye.Y(), eye.Z())
		m.SetMat4("transform", alwaysBehind.Mul4(viewProjection).Mul4(model))
		r.draw(r.sky.mesh)
	}

	r.enter(PhaseTransparent)
	r.drawCommands(r.frame.Transparent, viewProjection, eye)

	if r.post != nil {
		r.enter(PhaseComposite)
		r.dev.BindFramebuffer(0)
		r.post.material.Setup()
		r.post.vertexArray.Bind()
		r.dev.DrawArrays(gfx.PrimitiveTriangles, 0, 3)
		r.stats.Draws++
	}
}

func (r *ForwardRenderer) drawCommands(cmds []RenderCommand, viewProjection mgl32.Mat4, eye mgl32.Vec3) {
	for i := range cmds {
		cmd := &cmds[i]
		m := cmd.Material
		m.Setup()
		if m.Lit() {
			r.setLitUniforms(m, cmd, viewProjection, eye)
		} else {
			m.SetMat4("transform", viewProjection.Mul4(cmd.LocalToWorld))
		}
		r.draw(cmd.Mesh)
	}
}

func (r *ForwardRenderer) setLitUniforms(m *gfx.Material, cmd *RenderCommand, viewProjection mgl32.Mat4, eye mgl32.Vec3) {
	m.SetMat4("transform", viewProjection.Mul4(cmd.LocalToWorld))
	m.SetMat4("M", cmd.LocalToWorld)
	m.SetMat4("M_IT", cmd.LocalToWorld.Inv().Transpose())
	m.SetVec3("cameraPos", eye)
	uploadLights(m, r.lights)
}

func (r *ForwardRenderer) draw(mesh *gfx.Mesh) {
	mesh.Draw()
	r.stats.Draws++
}
