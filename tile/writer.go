package tile

import (
	"image"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m image.Image, tiles image.Point) error {
	b := m.Bounds()

	// Padding pixels outside the image are left black
	buf := make([]byte, tiles.X*tiles.Y*tilePixels*bytesPerPixel)
	for i := bytesPerPixel - 1; i < len(buf); i += bytesPerPixel {
		buf[i] = 0xff
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := m.At(b.Min.X+x, b.Min.Y+y).RGBA()

			i := Index(x, y, tiles.X) * bytesPerPixel
			buf[i+0] = uint8(bl >> 8)
			buf[i+1] = uint8(g >> 8)
			buf[i+2] = uint8(r >> 8)
		}
	}

	_, err := e.w.Write(buf)
	return err
}

// Encode writes the Image m to w as a stream of swizzled tiles that
// DecodeDirect reads back, using the smallest grid of tiles that covers the
// image.
func Encode(w io.Writer, m image.Image) error {
	e := encoder{w: w}

	return e.encode(m, Tiles(m.Bounds().Size()))
}
