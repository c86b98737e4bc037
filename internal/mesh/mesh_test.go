package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		stride  int32
		offsets []int
	}{
		{"position", Layout{3}, 12, []int{0}},
		{"position texture", Layout{3, 2}, 20, []int{0, 12}},
		{"position color texture", Layout{3, 3, 2}, 32, []int{0, 12, 24}},
		{"empty", Layout{}, 0, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stride, tt.layout.Stride())
			assert.Equal(t, tt.offsets, tt.layout.Offsets())
		})
	}
}

func TestVertexCount(t *testing.T) {
	assert.Equal(t, int32(3), Layout{3}.VertexCount(9))
	assert.Equal(t, int32(36), Layout{3, 2}.VertexCount(180))
	// A trailing partial vertex is not drawn.
	assert.Equal(t, int32(1), Layout{3, 2}.VertexCount(7))
	assert.Equal(t, int32(0), Layout{}.VertexCount(9))
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.obj")
	obj := "v -0.5 -0.5 0.0\nv 0.5 -0.5 0.0\nv 0.0 0.5 0.0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(path, []byte(obj), 0o644))

	d, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, Layout{3, 2}, d.Layout)
	require.Len(t, d.Indices, 3)
	require.Len(t, d.Vertices, 3*5)

	// Every index points at a vertex with the position from the file.
	want := map[[3]float32]bool{
		{-0.5, -0.5, 0}: true,
		{0.5, -0.5, 0}:  true,
		{0, 0.5, 0}:     true,
	}
	for _, index := range d.Indices {
		v := d.Vertices[index*5 : index*5+5]
		assert.True(t, want[[3]float32{v[0], v[1], v[2]}], "unexpected position %v", v[:3])
		assert.Equal(t, []float32{0, 0}, v[3:5])
	}
}

func TestLoadOBJMissing(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestLoadOBJTextureCoords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	obj := `v -0.5 -0.5 0.0
v 0.5 -0.5 0.0
v 0.5 0.5 0.0
v -0.5 0.5 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 1.0 1.0
vt 0.0 1.0
f 1/1 2/2 3/3
f 1/1 3/3 4/4
`
	require.NoError(t, os.WriteFile(path, []byte(obj), 0o644))

	d, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, d.Indices, 6)

	// Each corner keeps the texture coordinate it was paired with in the faces.
	want := map[[3]float32][2]float32{
		{-0.5, -0.5, 0}: {0, 0},
		{0.5, -0.5, 0}:  {1, 0},
		{0.5, 0.5, 0}:   {1, 1},
		{-0.5, 0.5, 0}:  {0, 1},
	}
	for _, index := range d.Indices {
		v := d.Vertices[index*5 : index*5+5]
		tex, ok := want[[3]float32{v[0], v[1], v[2]}]
		require.True(t, ok, "unexpected position %v", v[:3])
		assert.Equal(t, tex[:], v[3:5], "texture coordinate of %v", v[:3])
	}
}
