// Command camera flies a first-person camera through ten spinning textured cubes.
//
// W/S/A/D move, Q/E sink and rise, the mouse looks around and the scroll wheel zooms.
// Up and Down blend between the two textures. Escape quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/workingdodo/opengl-tests/internal/assets"
	"github.com/workingdodo/opengl-tests/internal/audio"
	"github.com/workingdodo/opengl-tests/internal/camera"
	"github.com/workingdodo/opengl-tests/internal/config"
	"github.com/workingdodo/opengl-tests/internal/mesh"
	"github.com/workingdodo/opengl-tests/internal/scene"
	"github.com/workingdodo/opengl-tests/internal/shader"
	"github.com/workingdodo/opengl-tests/internal/text"
	"github.com/workingdodo/opengl-tests/internal/texture"
	"github.com/workingdodo/opengl-tests/internal/window"
)

const (
	hudFontSize = 18
	hudLine     = 22
	hudMargin   = 10
)

var hudColor = mgl32.Vec3{0.9, 0.9, 0.9}

func init() {
	// This is needed to arrange that main() runs on main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	watch := flag.Bool("watch", false, "rebuild shaders when their files change")
	modelPath := flag.String("model", "", "draw this OBJ file instead of the cube")
	musicPath := flag.String("music", "", "QOA file to play on a loop")
	hud := flag.Bool("hud", false, "show frame time and camera pose")
	flag.Parse()

	defaults := config.Defaults()
	defaults.Window.Title = "Camera"
	defaults.Shaders.Vertex = "shaders/basicShader.vs"
	defaults.Shaders.Fragment = "shaders/mixValue.fs"
	settings, err := config.Load(*configPath, defaults)
	if err != nil {
		log.Fatal(err)
	}
	// Flags win over the settings file.
	settings.Shaders.Watch = settings.Shaders.Watch || *watch
	settings.Scene.HUD = settings.Scene.HUD || *hud
	if *modelPath != "" {
		settings.Scene.Model = *modelPath
	}
	if *musicPath != "" {
		settings.Scene.Music = *musicPath
	}

	win, err := window.New(settings.Window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
	defer win.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if settings.Scene.Music != "" {
		playMusic(ctx, settings.Scene.Music)
	}

	/*
	 * Camera and mouse
	 */
	cam := camera.New()
	cam.Speed = settings.Camera.Speed
	cam.Sensitivity = settings.Camera.Sensitivity
	cam.SetFOV(settings.Camera.FOV)
	cam.SetClip(settings.Camera.Near, settings.Camera.Far)
	cam.SetAspect(win.Aspect())
	// Start out looking at the origin until the first update.
	cam.SetView(camera.LookAt(cam.Position(), cam.Target(), cam.Up()))

	// Hide the cursor and keep it in the window.
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		cam.MouseMoved(xpos, ypos)
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, yOffset float64) {
		cam.Scrolled(yOffset)
	})
	win.OnResize(func(_, _ int) {
		cam.SetAspect(win.Aspect())
	})

	/*
	 * Shaders, textures and geometry
	 */
	res := assets.NewManager()
	defer res.Close()
	// A shader that fails to build at startup is fatal; only hot reloads fall back
	// to the previous program.
	program, err := res.LoadShader("cube", settings.Shaders.Vertex, settings.Shaders.Fragment)
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

	model, err := loadModel(settings.Scene.Model)
	if err != nil {
		log.Fatal(err)
	}
	defer model.Delete()

	var overlay *text.Renderer
	if settings.Scene.HUD {
		width, height := win.Size()
		overlay, err = text.NewRenderer(width, height)
		if err != nil {
			log.Fatal(err)
		}
		defer overlay.Delete()
		if err := overlay.Load(nil, hudFontSize); err != nil {
			log.Fatal(err)
		}
		win.OnResize(overlay.Resize)
	}

	mix := scene.NewMix()
	setup := func(s *shader.Shader) {
		s.Use()
		s.SetInt("texture1", 0)
		s.SetInt("texture2", 1)
		s.SetFloat("mixValue", mix.Value)
	}
	setup(program)

	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(settings.Scene.Wireframe))
	gl.Enable(gl.DEPTH_TEST)

	/*
	 * Render loop
	 */
	var (
		clock      window.Clock
		background scene.ColorCycle = &scene.SineCycle{}
	)
	for !win.ShouldClose() {
		now := window.Time()
		deltaTime := clock.Tick(now)

		win.ProcessInput()
		cam.Update(win, deltaTime)
		if len(res.Poll()) > 0 {
			setup(program)
		}
		if mix.Step(win.GetKey(glfw.KeyUp) == glfw.Press, win.GetKey(glfw.KeyDown) == glfw.Press) {
			program.Use().SetFloat("mixValue", mix.Value)
		}

		r, g, b := background.Next()
		gl.ClearColor(r, g, b, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		container.Bind(0)
		face.Bind(1)

		program.Use()
		program.SetMat4("view", cam.View())
		program.SetMat4("projection", cam.Projection())
		model.Bind()
		for i := range scene.CubePositions {
			cam.SetModel(scene.CubeModel(i, float32(now)))
			program.SetMat4("model", cam.Model())
			model.Draw()
		}

		if overlay != nil {
			width, _ := win.Size()
			drawHUD(overlay, cam, deltaTime, width, settings.Scene.Wireframe)
		}

		win.EndFrame()
	}
}

// loadModel reads the OBJ file at path, or returns the built-in cube when path is empty.
func loadModel(path string) (*mesh.Mesh, error) {
	if path == "" {
		return mesh.New(scene.Cube, nil, mesh.Layout{3, 2}), nil
	}
	data, err := mesh.LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %s: %d vertices, %d indices", path, len(data.Vertices)/5, len(data.Indices))
	return mesh.New(data.Vertices, data.Indices, data.Layout), nil
}

// playMusic starts the background music. Missing audio is not fatal.
func playMusic(ctx context.Context, path string) {
	player, err := audio.NewPlayer()
	if err != nil {
		log.Printf("no music: %v", err)
		return
	}
	if err := player.Loop(ctx, path); err != nil {
		log.Printf("no music: %v", err)
	}
}

// polygonMode is the fill mode for the scene.
func polygonMode(wireframe bool) uint32 {
	if wireframe {
		return gl.LINE
	}
	return gl.FILL
}

// hudText formats the camera pose lines and the frame time.
func hudText(cam *camera.Camera, deltaTime float32) (lines []string, frameTime string) {
	pos := cam.Position()
	lines = []string{
		fmt.Sprintf("pos %.2f %.2f %.2f", pos.X(), pos.Y(), pos.Z()),
		fmt.Sprintf("yaw %.1f pitch %.1f fov %.0f", cam.Yaw(), cam.Pitch(), cam.FOV()),
	}
	return lines, fmt.Sprintf("%.2f ms", deltaTime*1000)
}

// rightAligned is the x at which text of textWidth ends at the right margin.
func rightAligned(screenWidth int, textWidth float32) float32 {
	return float32(screenWidth-hudMargin) - textWidth
}

// drawHUD shows the camera pose on the left and the frame time in the top right corner.
// Glyph quads are always filled, even in wireframe mode.
func drawHUD(overlay *text.Renderer, cam *camera.Camera, deltaTime float32, width int, wireframe bool) {
	lines, frameTime := hudText(cam, deltaTime)

	// Text goes on top of the scene and blends with it.
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	for i, line := range lines {
		overlay.RenderText(line, hudMargin, float32(hudMargin+hudLine*(i+1)), 1.0, hudColor)
	}
	x := rightAligned(width, overlay.Width(frameTime, 1.0))
	overlay.RenderText(frameTime, x, float32(hudMargin+hudLine), 1.0, hudColor)
	gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(wireframe))
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}
