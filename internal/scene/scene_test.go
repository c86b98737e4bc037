package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestGeometrySizes(t *testing.T) {
	assert.Len(t, Triangle, 9)
	assert.Len(t, LeftTriangle, 9)
	assert.Len(t, RightTriangle, 9)
	assert.Len(t, Quad, 4*8)
	assert.Len(t, QuadIndices, 6)
	assert.Len(t, Cube, 36*5)
	assert.Len(t, CubePositions, 10)
	for _, i := range QuadIndices {
		assert.Less(t, int(i), 4)
	}
}

func TestByteCycle(t *testing.T) {
	var c ByteCycle
	r, g, b := c.Next()
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{r, g, b})
	for i := 0; i < 11; i++ {
		r, g, b = c.Next()
	}
	// n = 12
	assert.InDelta(t, 6.0/255, r, tol)
	assert.InDelta(t, 4.0/255, g, tol)
	assert.InDelta(t, 3.0/255, b, tol)
}

func TestByteCycleWraps(t *testing.T) {
	c := ByteCycle{n: 2*255 - 1}
	r, _, _ := c.Next()
	assert.Equal(t, float32(0), r)
}

func TestSineCycle(t *testing.T) {
	var c SineCycle
	r, g, b := c.Next()
	assert.InDelta(t, math32.Sin(0.005), r, tol)
	assert.InDelta(t, math32.Sin(0.01/3), g, tol)
	assert.InDelta(t, math32.Sin(0.0025), b, tol)
}

func TestMixStep(t *testing.T) {
	m := NewMix()
	assert.Equal(t, float32(0.2), m.Value)

	assert.True(t, m.Step(true, false))
	assert.InDelta(t, 0.21, m.Value, tol)
	assert.True(t, m.Step(false, true))
	assert.InDelta(t, 0.2, m.Value, tol)
	// up wins when both are held
	assert.True(t, m.Step(true, true))
	assert.InDelta(t, 0.21, m.Value, tol)
	assert.False(t, m.Step(false, false))
}

func TestMixClamped(t *testing.T) {
	m := &Mix{Value: 0.995}
	m.Step(true, false)
	assert.Equal(t, float32(1), m.Value)
	assert.False(t, m.Step(true, false))

	m.Value = 0.005
	m.Step(false, true)
	assert.Equal(t, float32(0), m.Value)
	assert.False(t, m.Step(false, true))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, Offset(0))
	o := Offset(1.3)
	assert.InDelta(t, math32.Sin(1.3)*0.5, o.X(), tol)
	assert.InDelta(t, math32.Sin(1)*0.5, o.Y(), tol)
	assert.InDelta(t, math32.Sin(1.69)*0.5, o.Z(), tol)
}

func TestScaledQuad(t *testing.T) {
	p := ScaledQuad().Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1})
	assert.True(t, mgl32.Vec4{0.25, 0.25, 0, 1}.ApproxEqualThreshold(p, tol))
}

func TestSwingingQuad(t *testing.T) {
	// At t=0 there is no rotation, only the move to the top left.
	p := SwingingQuad(0).Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1})
	assert.True(t, mgl32.Vec4{0, 1, 0, 1}.ApproxEqualThreshold(p, tol))

	// The centre stays at the translated origin whatever the angle.
	c := SwingingQuad(2.5).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, mgl32.Vec4{-0.5, 0.5, 0, 1}.ApproxEqualThreshold(c, tol))
}

func TestCubeModel(t *testing.T) {
	assert.True(t, mgl32.Ident4().ApproxEqualThreshold(CubeModel(0, 0), tol))

	// Every cube's centre ends up at its position.
	for i, pos := range CubePositions {
		c := CubeModel(i, 1.7).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		assert.True(t, pos.Vec4(1).ApproxEqualThreshold(c, tol), "cube %d", i)
	}

	// Points on the rotation axis do not move.
	axis := CubeModel(0, 3).Mul4x1(cubeAxis.Vec4(1))
	assert.True(t, cubeAxis.Vec4(1).ApproxEqualThreshold(axis, tol))
}

func TestCyclesAnimate(t *testing.T) {
	for name, c := range map[string]ColorCycle{"byte": &ByteCycle{}, "sine": &SineCycle{}} {
		t.Run(name, func(t *testing.T) {
			r0, g0, b0 := c.Next()
			var r, g, b float32
			for i := 0; i < 60; i++ {
				r, g, b = c.Next()
			}
			assert.NotEqual(t, [3]float32{r0, g0, b0}, [3]float32{r, g, b})
		})
	}
}
