// Package assets is the explicit, per-scene asset cache: shaders, textures,
// samplers, procedural meshes and materials addressed by name.
package assets

import (
	"io/fs"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

var ErrNotFound = errors.New("asset not found")

// Logger is the subset of the engine logger the cache reports through.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type Kind string

const (
	KindShader   Kind = "shader"
	KindTexture  Kind = "texture"
	KindSampler  Kind = "sampler"
	KindMesh     Kind = "mesh"
	KindMaterial Kind = "material"
)

// Cache owns every GPU object it loads until Unload. Resources handed out by
// LoadProgram and LoadTexture are not cached and belong to the caller.
type Cache struct {
	dev    gfx.Device
	fsys   fs.FS
	logger Logger

	names     map[Kind]map[string]AssetId
	programs  map[AssetId]*gfx.Program
	textures  map[AssetId]*gfx.Texture
	samplers  map[AssetId]*gfx.Sampler
	meshes    map[AssetId]*gfx.Mesh
	materials map[AssetId]*gfx.Material
}

// NewCache reads files from fsys. Shader paths missing from fsys fall back to
// the built-in shader set.
func NewCache(dev gfx.Device, fsys fs.FS, logger Logger) *Cache {
	c := &Cache{dev: dev, fsys: fsys, logger: logger}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.names = map[Kind]map[string]AssetId{
		KindShader:   {},
		KindTexture:  {},
		KindSampler:  {},
		KindMesh:     {},
		KindMaterial: {},
	}
	c.programs = make(map[AssetId]*gfx.Program)
	c.textures = make(map[AssetId]*gfx.Texture)
	c.samplers = make(map[AssetId]*gfx.Sampler)
	c.meshes = make(map[AssetId]*gfx.Mesh)
	c.materials = make(map[AssetId]*gfx.Material)
}

func (c *Cache) register(kind Kind, name string) AssetId {
	id := makeAssetId()
	c.names[kind][name] = id
	return id
}

// Id returns the asset id bound to name.
func (c *Cache) Id(kind Kind, name string) (AssetId, bool) {
	id, ok := c.names[kind][name]
	return id, ok
}

// Len reports how many assets of kind are loaded.
func (c *Cache) Len(kind Kind) int { return len(c.names[kind]) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load creates everything cfg describes. Dependencies resolve in the order
// shaders, textures, samplers, meshes, materials. On error every asset loaded
// by this call and earlier ones is released.
func (c *Cache) Load(cfg config.AssetsConfig) error {
	if err := c.load(cfg); err != nil {
		c.Unload()
		return err
	}
	return nil
}

func (c *Cache) load(cfg config.AssetsConfig) error {
	for _, name := range sortedKeys(cfg.Shaders) {
		sc := cfg.Shaders[name]
		p, err := c.LoadProgram(sc.Vertex, sc.Fragment)
		if err != nil {
			return errors.Wrapf(err, "shader %q", name)
		}
		c.programs[c.register(KindShader, name)] = p
	}
	for _, name := range sortedKeys(cfg.Textures) {
		tc := cfg.Textures[name]
		t, err := c.LoadTexture(tc.Path, tc.Mipmaps)
		if err != nil {
			return errors.Wrapf(err, "texture %q", name)
		}
		c.textures[c.register(KindTexture, name)] = t
	}
	for _, name := range sortedKeys(cfg.Samplers) {
		desc, err := samplerDesc(cfg.Samplers[name])
		if err != nil {
			return errors.Wrapf(err, "sampler %q", name)
		}
		s, err := gfx.NewSampler(c.dev, desc)
		if err != nil {
			return errors.Wrapf(err, "sampler %q", name)
		}
		c.samplers[c.register(KindSampler, name)] = s
	}
	for _, name := range sortedKeys(cfg.Meshes) {
		m, err := c.buildMesh(cfg.Meshes[name])
		if err != nil {
			return errors.Wrapf(err, "mesh %q", name)
		}
		c.meshes[c.register(KindMesh, name)] = m
	}
	for _, name := range sortedKeys(cfg.Materials) {
		m, err := c.buildMaterial(cfg.Materials[name])
		if err != nil {
			return errors.Wrapf(err, "material %q", name)
		}
		c.materials[c.register(KindMaterial, name)] = m
	}
	if c.logger != nil {
		c.logger.Debugf("assets: %d shaders, %d textures, %d samplers, %d meshes, %d materials",
			len(c.programs), len(c.textures), len(c.samplers), len(c.meshes), len(c.materials))
	}
	return nil
}

// Unload releases every cached GPU object. Materials only reference other
// assets and are simply dropped.
func (c *Cache) Unload() {
	for _, m := range c.meshes {
		m.Destroy()
	}
	for _, t := range c.textures {
		t.Destroy()
	}
	for _, s := range c.samplers {
		s.Destroy()
	}
	for _, p := range c.programs {
		p.Destroy()
	}
	c.reset()
}

func lookup[T any](c *Cache, kind Kind, m map[AssetId]T, name string) (T, error) {
	id, ok := c.names[kind][name]
	if !ok {
		var zero T
		return zero, errors.Wrapf(ErrNotFound, "%s %q", kind, name)
	}
	return m[id], nil
}

func (c *Cache) Program(name string) (*gfx.Program, error) {
	return lookup(c, KindShader, c.programs, name)
}

func (c *Cache) Texture(name string) (*gfx.Texture, error) {
	return lookup(c, KindTexture, c.textures, name)
}

func (c *Cache) Sampler(name string) (*gfx.Sampler, error) {
	return lookup(c, KindSampler, c.samplers, name)
}

func (c *Cache) Mesh(name string) (*gfx.Mesh, error) {
	return lookup(c, KindMesh, c.meshes, name)
}

func (c *Cache) Material(name string) (*gfx.Material, error) {
	return lookup(c, KindMaterial, c.materials, name)
}
