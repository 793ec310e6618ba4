package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexShaderSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const fragmentShaderSrc = `
#version 410 core
out vec4 FragColor;
uniform vec4 objectColor;
void main() {
    FragColor = objectColor;
}
` + "\x00"

// Program is the single flat-color pipeline with its uniform locations
// cached at link time.
type Program struct {
	id         uint32
	model      int32
	view       int32
	projection int32
	color      int32
}

// NewProgram compiles and links the flat-color pipeline. The error carries
// the backend's diagnostic log; callers treat any failure as fatal.
func NewProgram() (*Program, error) {
	vert, err := compileShader(vertexShaderSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frag, err := compileShader(fragmentShaderSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		logBuf := make([]byte, logLen+1)
		gl.GetProgramInfoLog(id, logLen, nil, &logBuf[0])
		return nil, fmt.Errorf("linking program: %s", logBuf)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	return &Program{
		id:         id,
		model:      gl.GetUniformLocation(id, gl.Str("model\x00")),
		view:       gl.GetUniformLocation(id, gl.Str("view\x00")),
		projection: gl.GetUniformLocation(id, gl.Str("projection\x00")),
		color:      gl.GetUniformLocation(id, gl.Str("objectColor\x00")),
	}, nil
}

func (p *Program) Use() { gl.UseProgram(p.id) }

func (p *Program) SetModel(m mgl32.Mat4) { gl.UniformMatrix4fv(p.model, 1, false, &m[0]) }

func (p *Program) SetView(m mgl32.Mat4) { gl.UniformMatrix4fv(p.view, 1, false, &m[0]) }

func (p *Program) SetProjection(m mgl32.Mat4) { gl.UniformMatrix4fv(p.projection, 1, false, &m[0]) }

func (p *Program) SetColor(c mgl32.Vec4) { gl.Uniform4f(p.color, c.X(), c.Y(), c.Z(), c.W()) }

func (p *Program) Release() { gl.DeleteProgram(p.id) }

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		logBuf := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &logBuf[0])
		return 0, fmt.Errorf("compiling shader: %s", logBuf)
	}
	return shader, nil
}
