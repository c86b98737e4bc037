// Package texture loads image files into OpenGL 2D textures.
package texture

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Options configure how a texture is sampled.
type Options struct {
	// wrapping mode on S and T axis
	WrapS, WrapT int32
	// filtering mode if texture pixels < screen pixels
	FilterMin int32
	// filtering mode if texture pixels > screen pixels
	FilterMag int32
	Mipmap    bool
	// Flip stores the bottom row first.
	Flip bool
}

// DefaultOptions repeat the texture, filter linearly and build mipmaps.
func DefaultOptions() Options {
	return Options{
		WrapS:     gl.REPEAT,
		WrapT:     gl.REPEAT,
		FilterMin: gl.LINEAR_MIPMAP_LINEAR,
		FilterMag: gl.LINEAR,
		Mipmap:    true,
		Flip:      true,
	}
}

type Texture2D struct {
	// holds the ID of the texture object, used for all texture operations to reference to this particular texture
	ID uint32
	// width and height of loaded image in pixels
	Width, Height int32
	// format of texture object
	InternalFormat int32
	// format of loaded image
	ImageFormat uint32
	Options     Options
}

// Load reads an image file and uploads it to a new texture.
func Load(path string, opts Options) (*Texture2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer f.Close()

	pixels, err := Decode(f, opts.Flip)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	tex := New(opts)
	tex.Generate(pixels)
	return tex, nil
}

// New creates an empty texture object.
func New(opts Options) *Texture2D {
	t := Texture2D{Options: opts}
	gl.GenTextures(1, &t.ID)
	return &t
}

// Generate uploads pixels and applies the wrap and filter modes.
func (tex *Texture2D) Generate(p *Pixels) {
	tex.Width = int32(p.Width)
	tex.Height = int32(p.Height)
	tex.ImageFormat = imageFormat(p.Channels)
	tex.InternalFormat = internalFormat(p)

	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	// Rows of RGB and single channel images are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if p.HDR() {
		gl.TexImage2D(gl.TEXTURE_2D, 0, tex.InternalFormat, tex.Width, tex.Height, 0, tex.ImageFormat, gl.FLOAT, gl.Ptr(p.Float))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, tex.InternalFormat, tex.Width, tex.Height, 0, tex.ImageFormat, gl.UNSIGNED_BYTE, gl.Ptr(p.Data))
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	// Generate mipmap, handling various resolutions of the texture at different distances.
	if tex.Options.Mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, tex.Options.WrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, tex.Options.WrapT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, tex.Options.FilterMin)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, tex.Options.FilterMag)
	// unbind texture
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind activates texture unit unit and binds the texture to it.
func (tex *Texture2D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
}

func (tex *Texture2D) Delete() {
	gl.DeleteTextures(1, &tex.ID)
	tex.ID = 0
}

func imageFormat(channels int) uint32 {
	switch channels {
	case 1:
		return gl.RED
	case 4:
		return gl.RGBA
	}
	return gl.RGB
}

func internalFormat(p *Pixels) int32 {
	if p.HDR() {
		return gl.RGB16F
	}
	return int32(imageFormat(p.Channels))
}
