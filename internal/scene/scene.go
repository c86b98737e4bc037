package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ColorCycle produces a new clear color every frame.
type ColorCycle interface {
	Next() (r, g, b float32)
}

// ByteCycle steps an integer counter. Each channel wraps at a different rate.
type ByteCycle struct {
	n int
}

func (c *ByteCycle) Next() (r, g, b float32) {
	c.n++
	return float32((c.n/2)%255) / 255, float32((c.n/3)%255) / 255, float32((c.n/4)%255) / 255
}

// SineCycle advances by 0.01 per frame and fades each channel on a sine.
type SineCycle struct {
	t float32
}

func (c *SineCycle) Next() (r, g, b float32) {
	c.t += 0.01
	return math32.Sin(c.t / 2), math32.Sin(c.t / 3), math32.Sin(c.t / 4)
}

const (
	defaultMix = 0.2
	mixStep    = 0.01
)

// Mix is the blend factor between the two textures of the textured exercises.
type Mix struct {
	Value float32
}

func NewMix() *Mix {
	return &Mix{Value: defaultMix}
}

// Step raises the value while up is held, or lowers it while down is held, and
// reports whether it changed. The value stays within [0, 1].
func (m *Mix) Step(up, down bool) bool {
	old := m.Value
	switch {
	case up:
		m.Value += mixStep
	case down:
		m.Value -= mixStep
	}
	m.Value = mgl32.Clamp(m.Value, 0, 1)
	return m.Value != old
}

// Offset moves the shaders exercise triangle around over time.
func Offset(t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Sin(t) * 0.5,
		math32.Sin(t/1.3) * 0.5,
		math32.Sin(t*1.3) * 0.5,
	}
}

// ScaledQuad halves the quad.
func ScaledQuad() mgl32.Mat4 {
	return mgl32.Ident4().Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
}

// SwingingQuad moves the quad to the top left and rocks it about Z by sin(t) radians.
func SwingingQuad(t float32) mgl32.Mat4 {
	trans := mgl32.Ident4()
	trans = trans.Mul4(mgl32.Translate3D(-0.5, 0.5, 0.0))
	trans = trans.Mul4(mgl32.HomogRotate3DZ(math32.Sin(t)))
	return trans
}

var cubeAxis = mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()

// CubeModel places cube i and spins it by 20*i + 50*t degrees.
func CubeModel(i int, t float32) mgl32.Mat4 {
	angle := 20.0*float32(i) + t*50.0
	model := mgl32.Translate3D(CubePositions[i].X(), CubePositions[i].Y(), CubePositions[i].Z())
	return model.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), cubeAxis))
}
