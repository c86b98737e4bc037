// Package window bootstraps a GLFW window with a current OpenGL context.
package window

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	initialWindowWidth  = 800
	initialWindowHeight = 600
)

// Config holds the window and context options.
type Config struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	GLMajor   int    `toml:"gl_major"`
	GLMinor   int    `toml:"gl_minor"`
	Resizable bool   `toml:"resizable"`
	// VSync sets the swap interval to 1 when true.
	VSync bool `toml:"vsync"`
}

func DefaultConfig() Config {
	return Config{
		Width:     initialWindowWidth,
		Height:    initialWindowHeight,
		Title:     "OpenGL",
		GLMajor:   3,
		GLMinor:   3,
		Resizable: true,
		VSync:     true,
	}
}

// Window wraps the GLFW window and tracks the framebuffer size.
type Window struct {
	*glfw.Window
	width, height int
	onResize      []func(width, height int)
}

// New initializes GLFW, creates the window, makes its context current and loads the
// OpenGL function pointers. GLFW is terminated again if any step fails.
func New(cfg Config) (*Window, error) {
	// Initialize GLFW, which is used to manage windows, user input, opengl contexts, and related
	// events.
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	// Using hints, set various options for the window we're about to create.
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	// Required on macOS for a core profile context.
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	// A context can only be current on one thread, and a thread can only have one current context.
	win.MakeContextCurrent()

	// Load OS-specific OpenGL function pointers
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	w := &Window{Window: win}
	// The framebuffer can be larger than the window on HiDPI displays.
	w.width, w.height = win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	return w, nil
}

// framebufferSizeCallback is called when the gl viewport is resized.
func (w *Window) framebufferSizeCallback(_ *glfw.Window, width int, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	w.width, w.height = width, height
	for _, f := range w.onResize {
		f(width, height)
	}
}

// OnResize registers f to run after the viewport follows a framebuffer resize.
func (w *Window) OnResize(f func(width, height int)) {
	w.onResize = append(w.onResize, f)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Aspect returns the framebuffer aspect ratio.
func (w *Window) Aspect() float32 {
	return aspect(w.width, w.height)
}

func aspect(width, height int) float32 {
	// A minimized window reports a zero height.
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// ProcessInput closes the window when Escape is pressed.
func (w *Window) ProcessInput() {
	if w.GetKey(glfw.KeyEscape) == glfw.Press {
		w.SetShouldClose(true)
	}
}

// EndFrame swaps the buffers and polls for events.
func (w *Window) EndFrame() {
	// Swap the color buffer that was rendered to during this iteration and show it on screen.
	w.SwapBuffers()
	// Check if events are triggered, update window state, and invoke any registered callbacks.
	glfw.PollEvents()
}

// Close destroys the window and frees the resources used by GLFW.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}

// Time returns the seconds since GLFW was initialized.
func Time() float64 {
	return glfw.GetTime()
}
