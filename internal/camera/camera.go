// Package camera provides a fly camera to navigate a scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultSpeed       = 10.0
	defaultSensitivity = 0.05
	defaultFOV         = 45.0
	minFOV             = 1.0
	maxPitch           = 89.0
	defaultNear        = 0.01
	defaultFar         = 100.0
)

// KeyReader reports the state of a key. *glfw.Window implements it.
type KeyReader interface {
	GetKey(key glfw.Key) glfw.Action
}

type Camera struct {
	model      mgl32.Mat4
	view       mgl32.Mat4
	projection mgl32.Mat4

	// camera attributes
	pos     mgl32.Vec3
	target  mgl32.Vec3
	front   mgl32.Vec3
	up      mgl32.Vec3
	right   mgl32.Vec3
	worldUp mgl32.Vec3
	// euler angles in degrees
	yaw, pitch float32

	// mouse input
	firstMouse   bool
	lastX, lastY float32

	// camera options
	Speed       float32
	Sensitivity float32
	fov         float32
	near, far   float32
	aspect      float32
}

// New returns a camera at (0, 1, 3) looking down -Z.
func New() *Camera {
	c := &Camera{
		model:       mgl32.Ident4(),
		view:        mgl32.Ident4(),
		projection:  mgl32.Ident4(),
		pos:         mgl32.Vec3{0.0, 1.0, 3.0},
		target:      mgl32.Vec3{0.0, 0.0, 0.0},
		worldUp:     mgl32.Vec3{0.0, 1.0, 0.0},
		yaw:         -90.0,
		pitch:       0.0,
		firstMouse:  true,
		Speed:       defaultSpeed,
		Sensitivity: defaultSensitivity,
		fov:         defaultFOV,
		near:        defaultNear,
		far:         defaultFar,
		aspect:      800.0 / 600.0,
	}
	c.updateVectors()
	return c
}

func (c *Camera) SetModel(m mgl32.Mat4)      { c.model = m }
func (c *Camera) SetView(m mgl32.Mat4)       { c.view = m }
func (c *Camera) SetProjection(m mgl32.Mat4) { c.projection = m }

func (c *Camera) Model() mgl32.Mat4      { return c.model }
func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

func (c *Camera) Position() mgl32.Vec3 { return c.pos }
func (c *Camera) Front() mgl32.Vec3    { return c.front }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Target() mgl32.Vec3   { return c.target }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }
func (c *Camera) FOV() float32         { return c.fov }

// SetAspect sets the projection aspect ratio, usually after a framebuffer resize.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// SetFOV sets the vertical field of view in degrees, clamped to [1, 45].
func (c *Camera) SetFOV(fov float32) {
	c.fov = mgl32.Clamp(fov, minFOV, defaultFOV)
}

// SetClip sets the near and far clip planes.
func (c *Camera) SetClip(near, far float32) {
	c.near, c.far = near, far
}

// Update moves the camera from the held keys and recomputes the view and projection.
// W/S move along the view direction, A/D strafe, Q/E move straight down and up.
func (c *Camera) Update(keys KeyReader, deltaTime float32) {
	velocity := c.Speed * deltaTime
	if keys.GetKey(glfw.KeyW) == glfw.Press {
		c.pos = c.pos.Add(c.front.Mul(velocity))
	}
	if keys.GetKey(glfw.KeyS) == glfw.Press {
		c.pos = c.pos.Sub(c.front.Mul(velocity))
	}
	if keys.GetKey(glfw.KeyA) == glfw.Press {
		c.pos = c.pos.Sub(c.right.Mul(velocity))
	}
	if keys.GetKey(glfw.KeyD) == glfw.Press {
		c.pos = c.pos.Add(c.right.Mul(velocity))
	}
	// Q/E stay vertical whatever the pitch.
	if keys.GetKey(glfw.KeyQ) == glfw.Press {
		c.pos = c.pos.Sub(c.worldUp.Mul(velocity))
	}
	if keys.GetKey(glfw.KeyE) == glfw.Press {
		c.pos = c.pos.Add(c.worldUp.Mul(velocity))
	}

	c.view = c.ViewMatrix()
	c.projection = c.ProjectionMatrix()
}

// MouseMoved turns the camera by the cursor movement since the previous call.
// The first call only records the cursor position.
func (c *Camera) MouseMoved(xpos, ypos float64) {
	x, y := float32(xpos), float32(ypos)
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	// reversed since y-coordinates go from bottom to top
	xOffset := (x - c.lastX) * c.Sensitivity
	yOffset := (c.lastY - y) * c.Sensitivity
	c.lastX, c.lastY = x, y

	c.yaw += xOffset
	c.pitch = mgl32.Clamp(c.pitch+yOffset, -maxPitch, maxPitch)

	c.updateVectors()
}

// Scrolled zooms by changing the field of view.
func (c *Camera) Scrolled(yOffset float64) {
	c.SetFOV(c.fov - float32(yOffset))
}

// ViewMatrix looks from the camera position along its front vector.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return LookAt(c.pos, c.pos.Add(c.front), c.up)
}

// ProjectionMatrix is the perspective projection for the current zoom.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func (c *Camera) updateVectors() {
	yaw, pitch := mgl32.DegToRad(c.yaw), mgl32.DegToRad(c.pitch)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()
	// normalize the vectors, because their length gets closer to 0 the more you look up or down which results in slower movement.
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// LookAt builds a view matrix that looks from eye towards center.
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up.Normalize()).Normalize()
	newUp := right.Cross(forward)
	rotation := mgl32.Mat4{
		right.X(), newUp.X(), -forward.X(), 0,
		right.Y(), newUp.Y(), -forward.Y(), 0,
		right.Z(), newUp.Z(), -forward.Z(), 0,
		0, 0, 0, 1,
	}
	translation := mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z())

	return rotation.Mul4(translation)
}
