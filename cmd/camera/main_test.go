package main

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"

	"github.com/workingdodo/opengl-tests/internal/camera"
)

func TestPolygonMode(t *testing.T) {
	assert.Equal(t, uint32(gl.LINE), polygonMode(true))
	assert.Equal(t, uint32(gl.FILL), polygonMode(false))
}

func TestHUDText(t *testing.T) {
	lines, frameTime := hudText(camera.New(), 0.016)
	assert.Equal(t, []string{
		"pos 0.00 1.00 3.00",
		"yaw -90.0 pitch 0.0 fov 45",
	}, lines)
	assert.Equal(t, "16.00 ms", frameTime)
}

func TestRightAligned(t *testing.T) {
	assert.Equal(t, float32(800-hudMargin-60), rightAligned(800, 60))
}
