package config

type AssetsConfig struct {
	Shaders   map[string]ShaderConfig   `json:"shaders" yaml:"shaders"`
	Textures  map[string]TextureConfig  `json:"textures" yaml:"textures"`
	Samplers  map[string]SamplerConfig  `json:"samplers" yaml:"samplers"`
	Meshes    map[string]MeshConfig     `json:"meshes" yaml:"meshes"`
	Materials map[string]MaterialConfig `json:"materials" yaml:"materials"`
}

type ShaderConfig struct {
	Vertex   string `json:"vertex" yaml:"vertex"`
	Fragment string `json:"fragment" yaml:"fragment"`
}

type TextureConfig struct {
	Path    string `json:"path" yaml:"path"`
	Mipmaps bool   `json:"mipmaps" yaml:"mipmaps"`
}

type SamplerConfig struct {
	MinFilter string `json:"minFilter" yaml:"minFilter"`
	MagFilter string `json:"magFilter" yaml:"magFilter"`
	WrapS     string `json:"wrapS" yaml:"wrapS"`
	WrapT     string `json:"wrapT" yaml:"wrapT"`
}

// MeshConfig describes a procedural mesh: "sphere", "cube" or "plane".
type MeshConfig struct {
	Kind     string `json:"kind" yaml:"kind"`
	Segments []int  `json:"segments,omitempty" yaml:"segments,omitempty"`
}

type TextureBindingConfig struct {
	Uniform string `json:"uniform" yaml:"uniform"`
	Texture string `json:"texture" yaml:"texture"`
	Sampler string `json:"sampler,omitempty" yaml:"sampler,omitempty"`
}

type MaterialConfig struct {
	// Type is one of "tinted", "textured", "lit", "lit_textured".
	Type           string                 `json:"type" yaml:"type"`
	Shader         string                 `json:"shader" yaml:"shader"`
	Tint           []float32              `json:"tint,omitempty" yaml:"tint,omitempty"`
	Texture        string                 `json:"texture,omitempty" yaml:"texture,omitempty"`
	Sampler        string                 `json:"sampler,omitempty" yaml:"sampler,omitempty"`
	Textures       []TextureBindingConfig `json:"textures,omitempty" yaml:"textures,omitempty"`
	AlphaThreshold float32                `json:"alphaThreshold" yaml:"alphaThreshold"`
	Transparent    bool                   `json:"transparent" yaml:"transparent"`
	Pipeline       PipelineConfig         `json:"pipeline" yaml:"pipeline"`
}

type PipelineConfig struct {
	FaceCulling  *FaceCullingConfig  `json:"faceCulling,omitempty" yaml:"faceCulling,omitempty"`
	DepthTesting *DepthTestingConfig `json:"depthTesting,omitempty" yaml:"depthTesting,omitempty"`
	Blending     *BlendingConfig     `json:"blending,omitempty" yaml:"blending,omitempty"`
	ColorMask    []bool              `json:"colorMask,omitempty" yaml:"colorMask,omitempty"`
	DepthMask    *bool               `json:"depthMask,omitempty" yaml:"depthMask,omitempty"`
}

type FaceCullingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	CulledFace string `json:"culledFace,omitempty" yaml:"culledFace,omitempty"`
	FrontFace  string `json:"frontFace,omitempty" yaml:"frontFace,omitempty"`
}

type DepthTestingConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
}

type BlendingConfig struct {
	Enabled           bool      `json:"enabled" yaml:"enabled"`
	Equation          string    `json:"equation,omitempty" yaml:"equation,omitempty"`
	SourceFactor      string    `json:"sourceFactor,omitempty" yaml:"sourceFactor,omitempty"`
	DestinationFactor string    `json:"destinationFactor,omitempty" yaml:"destinationFactor,omitempty"`
	ConstantColor     []float32 `json:"constantColor,omitempty" yaml:"constantColor,omitempty"`
}
