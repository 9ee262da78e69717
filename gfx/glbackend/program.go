package glbackend

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/gfx"
)

func shaderType(stage gfx.ShaderStage) uint32 {
	if stage == gfx.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func compileShader(src gfx.ShaderSource) (uint32, error) {
	shader := gl.CreateShader(shaderType(src.Stage))
	csource, free := gl.Strs(src.Code + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile %s shader %q: %s", src.Stage, src.Name, string(buf[:logSize]))
	}
	return shader, nil
}

func (d *Device) CreateProgram(sources ...gfx.ShaderSource) (gfx.Handle, error) {
	shaders := make([]uint32, 0, len(sources))
	release := func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}
	for _, src := range sources {
		s, err := compileShader(src)
		if err != nil {
			release()
			return 0, err
		}
		shaders = append(shaders, s)
	}

	p := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(p, s)
	}
	gl.LinkProgram(p)
	for _, s := range shaders {
		gl.DetachShader(p, s)
	}
	release()

	var isLinked int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p, int32(len(buf)), &logSize, &buf[0])
		gl.DeleteProgram(p)
		return 0, errors.Errorf("failed to link program: %s", string(buf[:logSize]))
	}
	d.uniforms[p] = make(map[string]int32)
	return gfx.Handle(p), nil
}

func (d *Device) DeleteProgram(program gfx.Handle) {
	delete(d.uniforms, uint32(program))
	gl.DeleteProgram(uint32(program))
}

func (d *Device) UseProgram(program gfx.Handle) { gl.UseProgram(uint32(program)) }

// location caches lookups per program. Unknown names resolve to -1, which
// GL silently ignores.
func (d *Device) location(program gfx.Handle, name string) int32 {
	p := uint32(program)
	cache, ok := d.uniforms[p]
	if !ok {
		cache = make(map[string]int32)
		d.uniforms[p] = cache
	}
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p, gl.Str(name+"\x00"))
	cache[name] = loc
	return loc
}

func (d *Device) SetUniformInt(p gfx.Handle, name string, v int32) {
	gl.ProgramUniform1i(uint32(p), d.location(p, name), v)
}

func (d *Device) SetUniformFloat(p gfx.Handle, name string, v float32) {
	gl.ProgramUniform1f(uint32(p), d.location(p, name), v)
}

func (d *Device) SetUniformVec2(p gfx.Handle, name string, v mgl32.Vec2) {
	gl.ProgramUniform2fv(uint32(p), d.location(p, name), 1, &v[0])
}

func (d *Device) SetUniformVec3(p gfx.Handle, name string, v mgl32.Vec3) {
	gl.ProgramUniform3fv(uint32(p), d.location(p, name), 1, &v[0])
}

func (d *Device) SetUniformVec4(p gfx.Handle, name string, v mgl32.Vec4) {
	gl.ProgramUniform4fv(uint32(p), d.location(p, name), 1, &v[0])
}

func (d *Device) SetUniformMat4(p gfx.Handle, name string, v mgl32.Mat4) {
	gl.ProgramUniformMatrix4fv(uint32(p), d.location(p, name), 1, false, &v[0])
}
