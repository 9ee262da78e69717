package assets

import (
	"embed"
	"io/fs"
	"path"

	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

//go:embed shaders
var builtinShaders embed.FS

// BuiltinShaders exposes the shader set shipped with the engine, rooted so
// that paths read "shaders/lit.frag".
func BuiltinShaders() fs.FS { return builtinShaders }

func stageFor(name string) (gfx.ShaderStage, error) {
	switch path.Ext(name) {
	case ".vert", ".vs":
		return gfx.StageVertex, nil
	case ".frag", ".fs":
		return gfx.StageFragment, nil
	}
	return 0, errors.Errorf("cannot infer shader stage of %q", name)
}

func (c *Cache) readFile(name string) ([]byte, error) {
	if c.fsys != nil {
		data, err := fs.ReadFile(c.fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "read %s", name)
		}
	}
	data, err := fs.ReadFile(builtinShaders, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}

func (c *Cache) shaderSource(name string) (gfx.ShaderSource, error) {
	stage, err := stageFor(name)
	if err != nil {
		return gfx.ShaderSource{}, err
	}
	code, err := c.readFile(name)
	if err != nil {
		return gfx.ShaderSource{}, err
	}
	return gfx.ShaderSource{Stage: stage, Name: name, Code: string(code)}, nil
}

// LoadProgram compiles and links a program from two shader files. The
// returned program is owned by the caller.
func (c *Cache) LoadProgram(vertexPath, fragmentPath string) (*gfx.Program, error) {
	vs, err := c.shaderSource(vertexPath)
	if err != nil {
		return nil, err
	}
	fsrc, err := c.shaderSource(fragmentPath)
	if err != nil {
		return nil, err
	}
	p, err := gfx.NewProgram(c.dev, vs, fsrc)
	if err != nil {
		return nil, errors.Wrapf(err, "link %s + %s", vertexPath, fragmentPath)
	}
	return p, nil
}
