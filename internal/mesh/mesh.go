// Package mesh uploads interleaved vertex data to vertex array and buffer objects.
package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const floatSize = int32(unsafe.Sizeof(float32(0)))

// Layout lists the number of floats of each vertex attribute, in location order.
// Layout{3, 2} is a position followed by texture coordinates.
type Layout []int32

// Stride is the size of one vertex in bytes.
func (l Layout) Stride() int32 {
	var n int32
	for _, size := range l {
		n += size
	}
	return n * floatSize
}

// Offsets returns the byte offset of each attribute within a vertex.
func (l Layout) Offsets() []int {
	offsets := make([]int, len(l))
	var offset int32
	for i, size := range l {
		offsets[i] = int(offset * floatSize)
		offset += size
	}
	return offsets
}

// VertexCount is the number of whole vertices in floats.
func (l Layout) VertexCount(floats int) int32 {
	stride := l.Stride() / floatSize
	if stride == 0 {
		return 0
	}
	return int32(floats) / stride
}

// Mesh owns a VAO, its VBO and an optional EBO.
type Mesh struct {
	VAO, VBO, EBO uint32
	count         int32
	indexed       bool
}

// New uploads vertices, and indices when given, and configures the attribute pointers.
func New(vertices []float32, indices []uint32, layout Layout) *Mesh {
	m := &Mesh{}
	// Get a unique ID for buffers.
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)

	// Bind VAO first, then bind VBO(s) and attribute pointers
	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	// STATIC_DRAW: the data is set only once and used many times.
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(floatSize), gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*int(unsafe.Sizeof(indices[0])), gl.Ptr(indices), gl.STATIC_DRAW)
		m.indexed = true
		m.count = int32(len(indices))
	} else {
		m.count = layout.VertexCount(len(vertices))
	}

	// Describe how OpenGL should interpret the vertex data by setting attributes.
	stride := layout.Stride()
	for i, offset := range layout.Offsets() {
		gl.VertexAttribPointerWithOffset(uint32(i), layout[i], gl.FLOAT, false, stride, uintptr(offset))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindVertexArray(0)
	return m
}

// Count is the number of indices, or vertices for a mesh without an EBO.
func (m *Mesh) Count() int32 {
	return m.count
}

// Bind makes the mesh's VAO current.
func (m *Mesh) Bind() {
	gl.BindVertexArray(m.VAO)
}

// Draw renders the mesh as triangles.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.VAO)
	gl.DeleteBuffers(1, &m.VBO)
	if m.indexed {
		gl.DeleteBuffers(1, &m.EBO)
	}
}
