package gfx

import "github.com/go-gl/mathgl/mgl32"

// MaterialKind is fixed when a material is built. The renderer keys the lit
// uniform contract off it instead of inspecting concrete types per draw.
type MaterialKind uint8

const (
	MaterialTinted MaterialKind = iota
	MaterialTextured
	MaterialLit
	MaterialLitTextured
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialTinted:
		return "tinted"
	case MaterialTextured:
		return "textured"
	case MaterialLit:
		return "lit"
	case MaterialLitTextured:
		return "lit_textured"
	}
	return "unknown"
}

type TextureBinding struct {
	Uniform string
	Texture *Texture
	Sampler *Sampler // nil unbinds the unit's sampler
}

// Material pairs a program with its pipeline state and inputs. It never owns
// the program, textures or samplers it references.
type Material struct {
	Kind           MaterialKind
	Program        *Program
	Pipeline       PipelineState
	Tint           mgl32.Vec4
	AlphaThreshold float32
	Transparent    bool
	Textures       []TextureBinding
}

func NewTintedMaterial(program *Program) *Material {
	return &Material{
		Kind:     MaterialTinted,
		Program:  program,
		Pipeline: DefaultPipelineState(),
		Tint:     mgl32.Vec4{1, 1, 1, 1},
	}
}

func NewTexturedMaterial(program *Program, texture *Texture, sampler *Sampler) *Material {
	m := NewTintedMaterial(program)
	m.Kind = MaterialTextured
	m.Textures = []TextureBinding{{Uniform: "tex", Texture: texture, Sampler: sampler}}
	return m
}

func NewLitMaterial(program *Program) *Material {
	m := NewTintedMaterial(program)
	m.Kind = MaterialLit
	return m
}

func NewLitTexturedMaterial(program *Program, textures ...TextureBinding) *Material {
	m := NewTintedMaterial(program)
	m.Kind = MaterialLitTextured
	m.Textures = textures
	return m
}

// Lit reports whether the material takes model/normal matrices, camera
// position and the light array.
func (m *Material) Lit() bool {
	return m.Kind == MaterialLit || m.Kind == MaterialLitTextured
}

func (m *Material) textured() bool {
	return m.Kind == MaterialTextured || m.Kind == MaterialLitTextured
}

// Setup binds pipeline state, program, tint and textures.
func (m *Material) Setup() {
	m.Pipeline.Setup(m.Program.dev)
	m.Program.Use()
	m.Program.SetVec4("tint", m.Tint)
	if !m.textured() {
		return
	}
	m.Program.SetFloat("alphaThreshold", m.AlphaThreshold)
	for i, tb := range m.Textures {
		unit := uint32(i)
		if tb.Texture != nil {
			tb.Texture.Bind(unit)
		}
		if tb.Sampler != nil {
			tb.Sampler.Bind(unit)
		} else {
			m.Program.dev.BindSampler(unit, 0)
		}
		m.Program.SetInt(tb.Uniform, int32(i))
	}
}

func (m *Material) SetInt(name string, v int32)       { m.Program.SetInt(name, v) }
func (m *Material) SetFloat(name string, v float32)   { m.Program.SetFloat(name, v) }
func (m *Material) SetVec2(name string, v mgl32.Vec2) { m.Program.SetVec2(name, v) }
func (m *Material) SetVec3(name string, v mgl32.Vec3) { m.Program.SetVec3(name, v) }
func (m *Material) SetVec4(name string, v mgl32.Vec4) { m.Program.SetVec4(name, v) }
func (m *Material) SetMat4(name string, v mgl32.Mat4) { m.Program.SetMat4(name, v) }
