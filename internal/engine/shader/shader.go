// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/textscene/pkg/math"
)

// Program is a linked shader program.
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
}

// New compiles and links a program. name identifies it in errors.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	return &Program{ID: id, name: name, uniforms: make(map[string]int32)}, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", stage, strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the location of a uniform, -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// SetMat3 uploads a column-major 3x3 matrix.
func (p *Program) SetMat3(name string, m [9]float32) {
	gl.UniformMatrix3fv(p.Uniform(name), 1, false, &m[0])
}

// SetVec3 uploads a vec3.
func (p *Program) SetVec3(name string, v [3]float32) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

// SetInt uploads an int or sampler unit.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
