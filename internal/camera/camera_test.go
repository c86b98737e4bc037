package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

type heldKeys map[glfw.Key]bool

func (h heldKeys) GetKey(key glfw.Key) glfw.Action {
	if h[key] {
		return glfw.Press
	}
	return glfw.Release
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, tol), "want %v, got %v", want, got)
}

func TestNew(t *testing.T) {
	c := New()
	assertVec(t, mgl32.Vec3{0, 1, 3}, c.Position())
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, mgl32.Ident4(), c.Model())
	assert.Equal(t, mgl32.Ident4(), c.View())
	assert.Equal(t, mgl32.Ident4(), c.Projection())
	assert.Equal(t, float32(45), c.FOV())
}

func TestModelKeptAcrossUpdate(t *testing.T) {
	c := New()
	m := mgl32.Translate3D(2, 5, -15)
	c.SetModel(m)
	c.Update(heldKeys{glfw.KeyW: true}, 0.1)
	assert.Equal(t, m, c.Model())
}

func TestUpdateMoves(t *testing.T) {
	tests := []struct {
		name string
		key  glfw.Key
		want mgl32.Vec3
	}{
		{"forward", glfw.KeyW, mgl32.Vec3{0, 1, 2}},
		{"backward", glfw.KeyS, mgl32.Vec3{0, 1, 4}},
		{"left", glfw.KeyA, mgl32.Vec3{-1, 1, 3}},
		{"right", glfw.KeyD, mgl32.Vec3{1, 1, 3}},
		{"down", glfw.KeyQ, mgl32.Vec3{0, 0, 3}},
		{"up", glfw.KeyE, mgl32.Vec3{0, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			// speed 10 for a tenth of a second is one unit
			c.Update(heldKeys{tt.key: true}, 0.1)
			assertVec(t, tt.want, c.Position())
		})
	}
}

func TestUpdateVerticalIgnoresPitch(t *testing.T) {
	tests := []struct {
		name string
		key  glfw.Key
		want mgl32.Vec3
	}{
		{"up", glfw.KeyE, mgl32.Vec3{0, 2, 3}},
		{"down", glfw.KeyQ, mgl32.Vec3{0, 0, 3}},
		// forward still follows the view direction
		{"forward", glfw.KeyW, mgl32.Vec3{0, 1 + math32.Sqrt2/2, 3 - math32.Sqrt2/2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			// 900 px up at 0.05 degrees per pixel looks 45 degrees up.
			c.MouseMoved(0, 0)
			c.MouseMoved(0, -900)
			assert.InDelta(t, 45, c.Pitch(), tol)

			c.Update(heldKeys{tt.key: true}, 0.1)
			assertVec(t, tt.want, c.Position())
		})
	}
}

func TestUpdateNoKeysKeepsPosition(t *testing.T) {
	c := New()
	c.Update(heldKeys{}, 1)
	assertVec(t, mgl32.Vec3{0, 1, 3}, c.Position())
}

func TestUpdateSetsMatrices(t *testing.T) {
	c := New()
	c.SetAspect(2)
	c.Update(heldKeys{}, 0.016)

	want := mgl32.LookAtV(c.Position(), c.Position().Add(c.Front()), c.Up())
	assert.True(t, want.ApproxEqualThreshold(c.View(), tol))
	proj := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.01, 100)
	assert.True(t, proj.ApproxEqualThreshold(c.Projection(), tol))
}

func TestLookAtMatchesMathgl(t *testing.T) {
	eye := mgl32.Vec3{0, 1, 3}
	center := mgl32.Vec3{0.5, 0, -2}
	up := mgl32.Vec3{0, 1, 0}
	want := mgl32.LookAtV(eye, center, up)
	assert.True(t, want.ApproxEqualThreshold(LookAt(eye, center, up), tol))
}

func TestMouseFirstMoveOnlyRecords(t *testing.T) {
	c := New()
	c.MouseMoved(400, 300)
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front())
}

func TestMouseTurns(t *testing.T) {
	c := New()
	c.MouseMoved(400, 300)
	// 0.05 degrees per pixel: 1800 px right is 90 degrees of yaw.
	c.MouseMoved(2200, 300)
	assert.InDelta(t, 0, c.Yaw(), tol)
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Front())

	// Moving the cursor up looks up.
	c.MouseMoved(2200, 100)
	assert.InDelta(t, 10, c.Pitch(), tol)
	assert.Greater(t, c.Front().Y(), float32(0))
}

func TestPitchClamped(t *testing.T) {
	c := New()
	c.MouseMoved(0, 0)
	c.MouseMoved(0, -100000)
	assert.Equal(t, float32(89), c.Pitch())
	c.MouseMoved(0, 100000)
	assert.Equal(t, float32(-89), c.Pitch())
}

func TestVectorsStayUnit(t *testing.T) {
	c := New()
	c.MouseMoved(0, 0)
	for i, p := range [][2]float64{{123, -456}, {-789, 1011}, {5000, -5000}, {3, 4}} {
		c.MouseMoved(p[0], p[1])
		assert.InDelta(t, 1, c.Front().Len(), tol, "front %d", i)
		assert.InDelta(t, 1, c.Up().Len(), tol, "up %d", i)
		assert.InDelta(t, 0, c.Front().Dot(c.Up()), tol, "orthogonal %d", i)
	}
}

func TestScrollZoomClamped(t *testing.T) {
	c := New()
	c.Scrolled(10)
	assert.Equal(t, float32(35), c.FOV())
	c.Scrolled(100)
	assert.Equal(t, float32(1), c.FOV())
	c.Scrolled(-100)
	assert.Equal(t, float32(45), c.FOV())
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := New()
	c.SetAspect(0)
	c.Update(heldKeys{}, 0)
	proj := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.01, 100)
	assert.True(t, proj.ApproxEqualThreshold(c.Projection(), tol))
}
