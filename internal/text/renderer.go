// Package text draws strings in screen space, one textured quad per glyph.
package text

import (
	_ "embed"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/workingdodo/opengl-tests/internal/shader"
)

var (
	//go:embed shaders/text.vs
	vertexSource string
	//go:embed shaders/text.fs
	fragmentSource string
)

type character struct {
	Glyph
	textureID uint32
}

// Renderer holds one font's glyphs as textures.
type Renderer struct {
	characters map[rune]character
	glyphs     map[rune]Glyph
	shader     *shader.Shader
	VAO, VBO   uint32
}

// NewRenderer compiles the text shader for a width x height screen with y pointing down.
func NewRenderer(width, height int) (*Renderer, error) {
	s, err := shader.FromSource(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	tr := &Renderer{shader: s}
	tr.Resize(width, height)
	tr.shader.SetInt("text", 0)

	// configure VAO/VBO for texture quads
	gl.GenVertexArrays(1, &tr.VAO)
	gl.GenBuffers(1, &tr.VBO)
	gl.BindVertexArray(tr.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, int(unsafe.Sizeof(float32(0)))*6*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, 4*int32(unsafe.Sizeof(float32(0))), 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return tr, nil
}

// Resize updates the projection after the framebuffer size changed.
func (tr *Renderer) Resize(width, height int) {
	tr.shader.Use()
	tr.shader.SetMat4("projection", mgl32.Ortho2D(0.0, float32(width), float32(height), 0.0))
}

// Load rasterizes the printable ASCII range of a font. A nil ttf selects Go Regular.
func (tr *Renderer) Load(ttf []byte, size float64) error {
	face, err := NewFace(ttf, size)
	if err != nil {
		return err
	}
	defer face.Close()

	tr.release()
	tr.characters = make(map[rune]character)
	tr.glyphs = make(map[rune]Glyph)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for c := rune(32); c < 127; c++ {
		g, ok := rasterize(face, c)
		if !ok {
			continue
		}
		ch := character{Glyph: g}
		if g.Mask != nil {
			b := g.Mask.Bounds()
			gl.GenTextures(1, &ch.textureID)
			gl.BindTexture(gl.TEXTURE_2D, ch.textureID)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(g.Mask.Pix))
			// Set texture parameters to ensure proper glyph rendering
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		}
		tr.characters[c] = ch
		tr.glyphs[c] = g
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Width measures s at the given scale.
func (tr *Renderer) Width(s string, scale float32) float32 {
	return Width(tr.glyphs, s) * scale
}

// RenderText draws s with its baseline starting at (x, y).
func (tr *Renderer) RenderText(s string, x, y, scale float32, color mgl32.Vec3) {
	// activate corresponding render state
	tr.shader.Use()
	tr.shader.SetVec3("textColor", color)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(tr.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.VBO)

	for _, r := range s {
		ch, ok := tr.characters[r]
		if !ok {
			continue
		}
		if ch.Mask != nil {
			b := ch.Mask.Bounds()
			xpos := x + float32(ch.BearingX)*scale
			ypos := y + float32(ch.BearingY)*scale
			w := float32(b.Dx()) * scale
			h := float32(b.Dy()) * scale

			vertices := []float32{
				xpos, ypos + h, 0.0, 1.0,
				xpos + w, ypos, 1.0, 0.0,
				xpos, ypos, 0.0, 0.0,

				xpos, ypos + h, 0.0, 1.0,
				xpos + w, ypos + h, 1.0, 1.0,
				xpos + w, ypos, 1.0, 0.0,
			}
			// Render glyph texture over quad
			gl.BindTexture(gl.TEXTURE_2D, ch.textureID)
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*int(unsafe.Sizeof(vertices[0])), gl.Ptr(vertices))
			gl.DrawArrays(gl.TRIANGLES, 0, 6)
		}
		// Now advance cursors for next glyph
		x += ch.Advance * scale
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (tr *Renderer) release() {
	for _, ch := range tr.characters {
		if ch.textureID != 0 {
			gl.DeleteTextures(1, &ch.textureID)
		}
	}
}

// Delete frees the glyph textures, buffers and shader.
func (tr *Renderer) Delete() {
	tr.release()
	gl.DeleteVertexArrays(1, &tr.VAO)
	gl.DeleteBuffers(1, &tr.VBO)
	tr.shader.Delete()
}
