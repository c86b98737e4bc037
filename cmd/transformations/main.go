// Command transformations draws a textured quad twice: scaled down in the middle, and
// rocking in the top left corner.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/workingdodo/opengl-tests/internal/assets"
	"github.com/workingdodo/opengl-tests/internal/config"
	"github.com/workingdodo/opengl-tests/internal/mesh"
	"github.com/workingdodo/opengl-tests/internal/scene"
	"github.com/workingdodo/opengl-tests/internal/shader"
	"github.com/workingdodo/opengl-tests/internal/texture"
	"github.com/workingdodo/opengl-tests/internal/window"
)

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	flag.Parse()

	defaults := config.Defaults()
	defaults.Window.Title = "Transformations"
	defaults.Shaders.Vertex = "shaders/transformShader.vs"
	defaults.Shaders.Fragment = "shaders/mixValue.fs"
	settings, err := config.Load(*configPath, defaults)
	if err != nil {
		log.Fatal(err)
	}

	win, err := window.New(settings.Window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	defer win.Close()

	res := assets.NewManager()
	defer res.Close()
	// A shader that fails to build at startup is fatal; only hot reloads fall back
	// to the previous program.
	program, err := res.LoadShader("transform", settings.Shaders.Vertex, settings.Shaders.Fragment)
	if err != nil {
		log.Fatal(err)
	}
	container, err := res.LoadTexture("container", settings.Textures.Container, texture.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	face, err := res.LoadTexture("face", settings.Textures.Face, texture.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	if settings.Shaders.Watch {
		if err := res.Watch(); err != nil {
			log.Fatal(err)
		}
	}

	// positions, colors, texture coords
	quad := mesh.New(scene.Quad, scene.QuadIndices, mesh.Layout{3, 3, 2})
	defer quad.Delete()

	mix := scene.NewMix()
	// Tell OpenGL which texture unit each sampler belongs to. This only has to be done once
	// per program.
	setup := func(s *shader.Shader) {
		s.Use()
		s.SetInt("texture1", 0)
		s.SetInt("texture2", 1)
		s.SetFloat("mixValue", mix.Value)
	}
	setup(program)

	if settings.Scene.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	var background scene.ColorCycle = &scene.SineCycle{}
	for !win.ShouldClose() {
		win.ProcessInput()
		if len(res.Poll()) > 0 {
			setup(program)
		}
		if mix.Step(win.GetKey(glfw.KeyUp) == glfw.Press, win.GetKey(glfw.KeyDown) == glfw.Press) {
			program.Use().SetFloat("mixValue", mix.Value)
		}

		r, g, b := background.Next()
		gl.ClearColor(r, g, b, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		container.Bind(0)
		face.Bind(1)

		program.Use()
		program.SetMat4("transform", scene.ScaledQuad())
		quad.Draw()

		program.SetMat4("transform", scene.SwingingQuad(float32(window.Time())))
		quad.Draw()

		win.EndFrame()
	}
}
