package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"temple-viewer/internal/gpu"
	"temple-viewer/internal/logger"
)

// NewProgram compiles and links a vertex/fragment pair. Sources must be
// NUL-terminated.
func (d *Device) NewProgram(vertSrc, fragSrc string) (gpu.Program, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	p := gpu.Program(prog)
	d.locations[p] = make(map[string]int32)
	return p, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		logger.Log.Error("Failed to compile", zap.Uint32("type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

func (d *Device) UseProgram(p gpu.Program) {
	d.program = p
	gl.UseProgram(uint32(p))
}

// location looks up a uniform of the current program, caching the result.
// Unknown names resolve to -1, which GL silently ignores.
func (d *Device) location(name string) int32 {
	cache := d.locations[d.program]
	if cache == nil {
		cache = make(map[string]int32)
		d.locations[d.program] = cache
	}
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(d.program), gl.Str(name+"\x00"))
	cache[name] = loc
	return loc
}

func (d *Device) SetInt(name string, v int32) { gl.Uniform1i(d.location(name), v) }

func (d *Device) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(d.location(name), i)
}

func (d *Device) SetFloat(name string, v float32) { gl.Uniform1f(d.location(name), v) }

func (d *Device) SetVec2(name string, v mgl32.Vec2) { gl.Uniform2f(d.location(name), v[0], v[1]) }

func (d *Device) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(d.location(name), v[0], v[1], v[2])
}

func (d *Device) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.location(name), 1, false, &m[0])
}
