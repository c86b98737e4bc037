// Package shader builds GLSL programs from a vertex and a fragment stage and sets their uniforms.
package shader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Stage identifies a shader stage.
type Stage uint32

const (
	Vertex   Stage = gl.VERTEX_SHADER
	Fragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	}
	return fmt.Sprintf("Stage(%#x)", uint32(s))
}

// CompileError holds the driver's info log for a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to compile %v shader %s: %s", strings.ToLower(e.Stage.String()), e.Path, e.Log)
	}
	return fmt.Sprintf("failed to compile %v shader: %s", strings.ToLower(e.Stage.String()), e.Log)
}

// LinkError holds the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "failed to link shader program: " + e.Log
}

// Shader is a linked vertex+fragment program.
type Shader struct {
	ID uint32

	vertexPath, fragmentPath string
	locations                map[string]int32
}

// New reads the two stages from disk and builds a program from them.
func New(vertexPath, fragmentPath string) (*Shader, error) {
	s := &Shader{vertexPath: vertexPath, fragmentPath: fragmentPath}
	id, err := s.build()
	if err != nil {
		return nil, err
	}
	s.ID = id
	s.locations = make(map[string]int32)
	return s, nil
}

// FromSource builds a program from in-memory sources. Such a shader cannot be reloaded.
func FromSource(vertexSource, fragmentSource string) (*Shader, error) {
	id, err := link(
		stageSource{Vertex, "", vertexSource},
		stageSource{Fragment, "", fragmentSource},
	)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: id, locations: make(map[string]int32)}, nil
}

// Reload rebuilds the program from its files. On failure the current program is kept
// and the error is returned.
func (s *Shader) Reload() error {
	if s.vertexPath == "" {
		return fmt.Errorf("shader %d was not loaded from files", s.ID)
	}
	id, err := s.build()
	if err != nil {
		return err
	}
	gl.DeleteProgram(s.ID)
	s.ID = id
	clear(s.locations)
	return nil
}

func (s *Shader) build() (uint32, error) {
	vertexSource, err := ReadSource(s.vertexPath)
	if err != nil {
		return 0, err
	}
	fragmentSource, err := ReadSource(s.fragmentPath)
	if err != nil {
		return 0, err
	}
	return link(
		stageSource{Vertex, s.vertexPath, vertexSource},
		stageSource{Fragment, s.fragmentPath, fragmentSource},
	)
}

// ReadSource reads a GLSL file.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader file: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("shader file %s is empty", path)
	}
	return string(data), nil
}

type stageSource struct {
	stage  Stage
	path   string
	source string
}

func link(stages ...stageSource) (uint32, error) {
	shaders := make([]uint32, 0, len(stages))
	// Shader objects are only needed until the program is linked.
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()
	for _, st := range stages {
		sh, err := compile(st)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, sh)
	}

	// Link all shaders together to form a shader program, which is used during rendering.
	program := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)

	var success int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &success)
	if success == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		gl.DeleteProgram(program)
		err := &LinkError{Log: trimLog(infoLog)}
		log.Printf("ERROR::SHADER::PROGRAM::LINKING_FAILED\n%s", err.Log)
		return 0, err
	}
	return program, nil
}

func compile(st stageSource) (uint32, error) {
	sh := gl.CreateShader(uint32(st.stage))
	// The source must be a null-terminated string in C flavor.
	sourceString, free := gl.Strs(st.source + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, sourceString, nil)
	gl.CompileShader(sh)

	var success int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetShaderInfoLog(sh, logLength, nil, &infoLog[0])
		gl.DeleteShader(sh)
		err := &CompileError{Stage: st.stage, Path: st.path, Log: trimLog(infoLog)}
		log.Printf("ERROR::SHADER::%v::COMPILATION_FAILED\n%s", st.stage, err.Log)
		return 0, err
	}
	return sh, nil
}

// trimLog turns a C info log buffer into a Go string.
func trimLog(infoLog []uint8) string {
	return strings.TrimSpace(strings.TrimRight(string(infoLog), "\x00"))
}

// Use activates the program.
func (s *Shader) Use() *Shader {
	gl.UseProgram(s.ID)
	return s
}

// Delete releases the program.
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
	s.ID = 0
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

func (s *Shader) SetBool(name string, value bool) {
	var v0 int32
	if value {
		v0 = 1
	}
	gl.Uniform1i(s.location(name), v0)
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

func (s *Shader) Set3f(name string, v1, v2, v3 float32) {
	gl.Uniform3f(s.location(name), v1, v2, v3)
}

func (s *Shader) SetVec3(name string, value mgl32.Vec3) {
	gl.Uniform3fv(s.location(name), 1, &value[0])
}

func (s *Shader) SetVec4(name string, value mgl32.Vec4) {
	gl.Uniform4fv(s.location(name), 1, &value[0])
}

func (s *Shader) SetMat4(name string, value mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &value[0])
}
