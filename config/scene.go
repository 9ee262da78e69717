package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SceneConfig is one scene file: what to load, how to render and what to spawn.
type SceneConfig struct {
	Assets   AssetsConfig   `json:"assets" yaml:"assets"`
	Renderer RendererConfig `json:"renderer" yaml:"renderer"`
	World    []Fields       `json:"world" yaml:"world"`
	// Strict turns unknown component kinds into load errors instead of warnings.
	Strict bool `json:"strict" yaml:"strict"`
}

type RendererConfig struct {
	Sky         *SkyConfig         `json:"sky,omitempty" yaml:"sky,omitempty"`
	Postprocess *PostprocessConfig `json:"postprocess,omitempty" yaml:"postprocess,omitempty"`
	ClearColor  []float32          `json:"clearColor,omitempty" yaml:"clearColor,omitempty"`
}

type SkyConfig struct {
	Texture  string `json:"texture" yaml:"texture"`
	Vertex   string `json:"vertex,omitempty" yaml:"vertex,omitempty"`
	Fragment string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Segments int    `json:"segments,omitempty" yaml:"segments,omitempty"`
}

type PostprocessConfig struct {
	Vertex   string `json:"vertex,omitempty" yaml:"vertex,omitempty"`
	Fragment string `json:"fragment" yaml:"fragment"`
}

const (
	DefaultTexturedVertex   = "shaders/textured.vert"
	DefaultTexturedFragment = "shaders/textured.frag"
	DefaultFullscreenVertex = "shaders/fullscreen.vert"
	DefaultSkySegments      = 16
)

// WithDefaults fills empty shader paths and sizes.
func (c RendererConfig) WithDefaults() RendererConfig {
	if c.Sky != nil {
		sky := *c.Sky
		if sky.Vertex == "" {
			sky.Vertex = DefaultTexturedVertex
		}
		if sky.Fragment == "" {
			sky.Fragment = DefaultTexturedFragment
		}
		if sky.Segments <= 0 {
			sky.Segments = DefaultSkySegments
		}
		c.Sky = &sky
	}
	if c.Postprocess != nil {
		pp := *c.Postprocess
		if pp.Vertex == "" {
			pp.Vertex = DefaultFullscreenVertex
		}
		c.Postprocess = &pp
	}
	return c
}

// Load decodes a scene file from fsys, choosing JSON or YAML by extension.
func Load(fsys fs.FS, name string) (*SceneConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", name)
	}
	var sc SceneConfig
	if err := Decode(data, path.Ext(name), &sc); err != nil {
		return nil, errors.Wrapf(err, "decode scene %s", name)
	}
	return &sc, nil
}

// Decode unmarshals data into v using the codec for ext (".json", ".yaml", ".yml").
func Decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	}
	return errors.Errorf("unsupported config format %q", ext)
}
