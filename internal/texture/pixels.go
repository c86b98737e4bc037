package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/h2non/filetype"
	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for data that is not in a known image format.
var ErrNotImage = errors.New("not an image")

// Radiance RGBE files start with one of these.
var radianceMagic = [][]byte{[]byte("#?RADIANCE"), []byte("#?RGBE"), []byte("#?AUTOPANO")}

// Pixels is decoded image data laid out for glTexImage2D.
type Pixels struct {
	Width, Height int
	// Channels is 1 (red), 3 (RGB) or 4 (RGBA).
	Channels int
	// Data is set for 8-bit images, Float for HDR images.
	Data  []byte
	Float []float32
}

// HDR reports whether the pixels are floating point.
func (p *Pixels) HDR() bool {
	return p.Float != nil
}

// Decode reads an image. When flip is set the rows are emitted bottom to top, which
// is what OpenGL expects for texture coordinates starting at the bottom left.
func Decode(r io.Reader, flip bool) (*Pixels, error) {
	br := bufio.NewReader(r)
	// filetype needs at most 262 bytes to match.
	head, err := br.Peek(262)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}
	if !isRadiance(head) && !filetype.IsImage(head) {
		return nil, ErrNotImage
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if h, ok := img.(hdr.Image); ok {
		return hdrPixels(h, flip), nil
	}
	p := FromImage(img, flip)
	if p == nil {
		return nil, fmt.Errorf("empty %s image", format)
	}
	return p, nil
}

func isRadiance(head []byte) bool {
	for _, magic := range radianceMagic {
		if bytes.HasPrefix(head, magic) {
			return true
		}
	}
	return false
}

// FromImage converts img to tightly packed pixel data, or nil for an empty image.
func FromImage(img image.Image, flip bool) *Pixels {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	p := &Pixels{Width: width, Height: height, Channels: channels(img)}
	p.Data = make([]byte, width*height*p.Channels)

	index := 0
	for row := 0; row < height; row++ {
		y := bounds.Min.Y + row
		if flip {
			y = bounds.Max.Y - 1 - row
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray, ok := img.(*image.Gray); ok {
				p.Data[index] = gray.GrayAt(x, y).Y
				index++
				continue
			}
			if p.Channels == 4 {
				// Store straight alpha, the blending equations expect it.
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				p.Data[index] = c.R
				p.Data[index+1] = c.G
				p.Data[index+2] = c.B
				p.Data[index+3] = c.A
			} else {
				r, g, b, _ := img.At(x, y).RGBA()
				p.Data[index] = byte(r >> 8)
				p.Data[index+1] = byte(g >> 8)
				p.Data[index+2] = byte(b >> 8)
			}
			index += p.Channels
		}
	}
	return p
}

// channels picks the texture format for img.
func channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray:
		return 1
	case *image.NRGBA, *image.NRGBA64:
		return 4
	case *image.RGBA:
		// Check if the alpha channel is used
		for i := 3; i < len(m.Pix); i += 4 {
			if m.Pix[i] != 0xff {
				return 4
			}
		}
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 3
}

func hdrPixels(img hdr.Image, flip bool) *Pixels {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	p := &Pixels{Width: width, Height: height, Channels: 3, Float: make([]float32, width*height*3)}
	index := 0
	for row := 0; row < height; row++ {
		y := bounds.Min.Y + row
		if flip {
			y = bounds.Max.Y - 1 - row
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.HDRAt(x, y).HDRRGBA()
			p.Float[index] = float32(r)
			p.Float[index+1] = float32(g)
			p.Float[index+2] = float32(b)
			index += 3
		}
	}
	return p
}
