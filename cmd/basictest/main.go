// Command basictest opens a window and draws one triangle over a cycling clear color.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/workingdodo/opengl-tests/internal/assets"
	"github.com/workingdodo/opengl-tests/internal/config"
	"github.com/workingdodo/opengl-tests/internal/mesh"
	"github.com/workingdodo/opengl-tests/internal/scene"
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
	defaults.Window.Title = "Basic Test"
	defaults.Shaders.Vertex = "shaders/vertex_shader.glsl"
	defaults.Shaders.Fragment = "shaders/fragment_shader.glsl"
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
	program, err := res.LoadShader("basic", settings.Shaders.Vertex, settings.Shaders.Fragment)
	if err != nil {
		log.Fatal(err)
	}
	if settings.Shaders.Watch {
		if err := res.Watch(); err != nil {
			log.Fatal(err)
		}
	}

	triangle := mesh.New(scene.Triangle, scene.TriangleIndices, mesh.Layout{3})
	defer triangle.Delete()

	if settings.Scene.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	var background scene.ColorCycle = &scene.ByteCycle{}
	for !win.ShouldClose() {
		win.ProcessInput()
		res.Poll()

		r, g, b := background.Next()
		gl.ClearColor(r, g, b, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		program.Use()
		triangle.Draw()

		win.EndFrame()
	}
}
