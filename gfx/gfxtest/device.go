// Package gfxtest provides a recording gfx.Device for tests. It allocates
// handles, tracks which are live and how often each was released, and logs
// draws together with the uniforms bound at the time.
package gfxtest

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

type Kind string

const (
	KindProgram     Kind = "program"
	KindTexture     Kind = "texture"
	KindSampler     Kind = "sampler"
	KindFramebuffer Kind = "framebuffer"
	KindVertexArray Kind = "vertex_array"
	KindBuffer      Kind = "buffer"
)

// ErrInjected is returned by calls armed with FailNth.
var ErrInjected = errors.New("gfxtest: injected failure")

// Draw is one recorded draw call.
type Draw struct {
	Program     gfx.Handle
	Framebuffer gfx.Handle
	VertexArray gfx.Handle
	Mode        gfx.Primitive
	Count       int32
	State       gfx.PipelineState
	Uniforms    map[string]any
}

// Mat4 returns the named matrix uniform captured with the draw.
func (d Draw) Mat4(name string) (mgl32.Mat4, bool) {
	m, ok := d.Uniforms[name].(mgl32.Mat4)
	return m, ok
}

type Device struct {
	mu sync.Mutex

	next     gfx.Handle
	live     map[gfx.Handle]Kind
	kinds    map[gfx.Handle]Kind
	released map[gfx.Handle]int
	calls    map[string]int
	fail     map[string]int

	DoubleReleases []gfx.Handle
	UnknownRelease []gfx.Handle
	Ops            []string
	Draws          []Draw

	Framebuffer gfx.Handle
	Program     gfx.Handle
	VertexArray gfx.Handle
	State       gfx.PipelineState
	ViewportRec [4]int32
	Uniforms    map[gfx.Handle]map[string]any
	Textures    map[uint32]gfx.Handle
	Samplers    map[uint32]gfx.Handle
	Sources     map[gfx.Handle][]gfx.ShaderSource
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		live:     make(map[gfx.Handle]Kind),
		kinds:    make(map[gfx.Handle]Kind),
		released: make(map[gfx.Handle]int),
		calls:    make(map[string]int),
		fail:     make(map[string]int),
		Uniforms: make(map[gfx.Handle]map[string]any),
		Textures: make(map[uint32]gfx.Handle),
		Samplers: make(map[uint32]gfx.Handle),
		Sources:  make(map[gfx.Handle][]gfx.ShaderSource),
		State:    gfx.DefaultPipelineState(),
	}
}

// FailNth makes the n-th (1-based, counted from now) call of op fail.
func (d *Device) FailNth(op string, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[op] = d.calls[op] + n
}

// Live returns the number of live objects, optionally filtered by kind.
func (d *Device) Live(kinds ...Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(kinds) == 0 {
		return len(d.live)
	}
	n := 0
	for _, k := range d.live {
		for _, want := range kinds {
			if k == want {
				n++
			}
		}
	}
	return n
}

func (d *Device) IsLive(h gfx.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.live[h]
	return ok
}

func (d *Device) ReleaseCount(h gfx.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released[h]
}

// Created returns the number of objects of kind ever allocated.
func (d *Device) Created(kind Kind) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, k := range d.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func (d *Device) Calls(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

// ResetFrame clears the op and draw logs but keeps object state.
func (d *Device) ResetFrame() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Ops = nil
	d.Draws = nil
}

func (d *Device) record(op string, format string, args ...any) error {
	d.calls[op]++
	if format != "" {
		op = op + " " + fmt.Sprintf(format, args...)
	}
	d.Ops = append(d.Ops, op)
	name := op
	if i := indexSpace(op); i >= 0 {
		name = op[:i]
	}
	if at, ok := d.fail[name]; ok && d.calls[name] == at {
		delete(d.fail, name)
		return errors.Wrap(ErrInjected, name)
	}
	return nil
}

func indexSpace(s string) int {
	for i := range s {
		if s[i] == ' ' {
			return i
		}
	}
	return -1
}

func (d *Device) alloc(kind Kind) gfx.Handle {
	d.next++
	d.live[d.next] = kind
	d.kinds[d.next] = kind
	return d.next
}

func (d *Device) release(h gfx.Handle, kind Kind) {
	if h == 0 {
		return
	}
	if k, ok := d.kinds[h]; !ok || k != kind {
		d.UnknownRelease = append(d.UnknownRelease, h)
		return
	}
	d.released[h]++
	if d.released[h] > 1 {
		d.DoubleReleases = append(d.DoubleReleases, h)
	}
	delete(d.live, h)
}

func (d *Device) CreateProgram(sources ...gfx.ShaderSource) (gfx.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateProgram", ""); err != nil {
		return 0, err
	}
	h := d.alloc(KindProgram)
	d.Sources[h] = append([]gfx.ShaderSource(nil), sources...)
	d.Uniforms[h] = make(map[string]any)
	return h, nil
}

func (d *Device) DeleteProgram(program gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteProgram", "%d", program)
	d.release(program, KindProgram)
}

func (d *Device) UseProgram(program gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("UseProgram", "%d", program)
	d.Program = program
}

func (d *Device) setUniform(program gfx.Handle, name string, v any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["SetUniform"]++
	u, ok := d.Uniforms[program]
	if !ok {
		u = make(map[string]any)
		d.Uniforms[program] = u
	}
	u[name] = v
}

func (d *Device) SetUniformInt(p gfx.Handle, name string, v int32)       { d.setUniform(p, name, v) }
func (d *Device) SetUniformFloat(p gfx.Handle, name string, v float32)   { d.setUniform(p, name, v) }
func (d *Device) SetUniformVec2(p gfx.Handle, name string, v mgl32.Vec2) { d.setUniform(p, name, v) }
func (d *Device) SetUniformVec3(p gfx.Handle, name string, v mgl32.Vec3) { d.setUniform(p, name, v) }
func (d *Device) SetUniformVec4(p gfx.Handle, name string, v mgl32.Vec4) { d.setUniform(p, name, v) }
func (d *Device) SetUniformMat4(p gfx.Handle, name string, v mgl32.Mat4) { d.setUniform(p, name, v) }

// Uniform returns the last value set for name on program.
func (d *Device) Uniform(program gfx.Handle, name string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.Uniforms[program][name]
	return v, ok
}

func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateTexture", "%dx%d", desc.Width, desc.Height); err != nil {
		return 0, err
	}
	return d.alloc(KindTexture), nil
}

func (d *Device) DeleteTexture(texture gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteTexture", "%d", texture)
	d.release(texture, KindTexture)
}

func (d *Device) BindTexture(unit uint32, texture gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("BindTexture", "%d %d", unit, texture)
	d.Textures[unit] = texture
}

func (d *Device) CreateSampler(desc gfx.SamplerDesc) (gfx.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateSampler", ""); err != nil {
		return 0, err
	}
	return d.alloc(KindSampler), nil
}

func (d *Device) DeleteSampler(sampler gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteSampler", "%d", sampler)
	d.release(sampler, KindSampler)
}

func (d *Device) BindSampler(unit uint32, sampler gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("BindSampler", "%d %d", unit, sampler)
	d.Samplers[unit] = sampler
}

func (d *Device) CreateFramebuffer(color, depth gfx.Handle) (gfx.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateFramebuffer", "%d %d", color, depth); err != nil {
		return 0, err
	}
	return d.alloc(KindFramebuffer), nil
}

func (d *Device) DeleteFramebuffer(framebuffer gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteFramebuffer", "%d", framebuffer)
	d.release(framebuffer, KindFramebuffer)
}

func (d *Device) BindFramebuffer(framebuffer gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("BindFramebuffer", "%d", framebuffer)
	d.Framebuffer = framebuffer
}

func (d *Device) CreateVertexArray() (gfx.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateVertexArray", ""); err != nil {
		return 0, err
	}
	return d.alloc(KindVertexArray), nil
}

func (d *Device) DeleteVertexArray(vertexArray gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteVertexArray", "%d", vertexArray)
	d.release(vertexArray, KindVertexArray)
}

func (d *Device) BindVertexArray(vertexArray gfx.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("BindVertexArray", "%d", vertexArray)
	d.VertexArray = vertexArray
}

func (d *Device) CreateMeshBuffers(vertices []gfx.Vertex, elements []uint32) (gfx.MeshBuffers, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateMeshBuffers", "%d %d", len(vertices), len(elements)); err != nil {
		return gfx.MeshBuffers{}, err
	}
	return gfx.MeshBuffers{
		VertexArray:   d.alloc(KindVertexArray),
		VertexBuffer:  d.alloc(KindBuffer),
		ElementBuffer: d.alloc(KindBuffer),
		ElementCount:  int32(len(elements)),
	}, nil
}

func (d *Device) DeleteMeshBuffers(b gfx.MeshBuffers) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DeleteMeshBuffers", "%d", b.VertexArray)
	d.release(b.VertexArray, KindVertexArray)
	d.release(b.VertexBuffer, KindBuffer)
	d.release(b.ElementBuffer, KindBuffer)
}

func (d *Device) draw(vao gfx.Handle, mode gfx.Primitive, count int32) {
	u := make(map[string]any, len(d.Uniforms[d.Program]))
	for k, v := range d.Uniforms[d.Program] {
		u[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.Program,
		Framebuffer: d.Framebuffer,
		VertexArray: vao,
		Mode:        mode,
		Count:       count,
		State:       d.State,
		Uniforms:    u,
	})
}

func (d *Device) DrawMesh(b gfx.MeshBuffers) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DrawMesh", "%d", b.VertexArray)
	d.draw(b.VertexArray, gfx.PrimitiveTriangles, b.ElementCount)
}

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DrawArrays", "%d %d", first, count)
	d.draw(d.VertexArray, mode, count)
}

func (d *Device) ApplyPipelineState(state gfx.PipelineState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("ApplyPipelineState", "")
	d.State = state
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("Viewport", "%d %d", width, height)
	d.ViewportRec = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(color mgl32.Vec4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("ClearColor", "")
}

func (d *Device) ClearDepth(depth float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("ClearDepth", "")
}

func (d *Device) Clear(color, depth bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("Clear", "%d %t %t", d.Framebuffer, color, depth)
}

func (d *Device) ColorMask(r, g, b, a bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("ColorMask", "")
	d.State.ColorMask = [4]bool{r, g, b, a}
}

func (d *Device) DepthMask(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.record("DepthMask", "%t", enabled)
	d.State.DepthMask = enabled
}
