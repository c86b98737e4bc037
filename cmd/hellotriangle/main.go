// Command hellotriangle draws two triangles from separate vertex arrays, each with its
// own fragment shader.
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

const yellowFragmentPath = "shaders/fragment_yellow.glsl"

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	flag.Parse()

	defaults := config.Defaults()
	defaults.Window.Title = "Hello Triangle"
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

	// Both programs share the vertex stage and differ in the color they output.
	res := assets.NewManager()
	defer res.Close()
	// A shader that fails to build at startup is fatal; only hot reloads fall back
	// to the previous program.
	orange, err := res.LoadShader("orange", settings.Shaders.Vertex, settings.Shaders.Fragment)
	if err != nil {
		log.Fatal(err)
	}
	yellow, err := res.LoadShader("yellow", settings.Shaders.Vertex, yellowFragmentPath)
	if err != nil {
		log.Fatal(err)
	}
	if settings.Shaders.Watch {
		if err := res.Watch(); err != nil {
			log.Fatal(err)
		}
	}

	left := mesh.New(scene.LeftTriangle, nil, mesh.Layout{3})
	defer left.Delete()
	right := mesh.New(scene.RightTriangle, nil, mesh.Layout{3})
	defer right.Delete()

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

		orange.Use()
		left.Draw()
		yellow.Use()
		right.Draw()

		win.EndFrame()
	}
}
