package tile

import (
	"image"

	"github.com/bodgit/fbdecode/pixel"
	"github.com/bodgit/fbdecode/rgb"
)

// cursor reads pixels from the stream strictly in order.
type cursor struct {
	b []byte
	i int
}

func (c *cursor) next() rgb.Color {
	p := pixel.FromBGR(c.b[c.i : c.i+bytesPerPixel])
	c.i += bytesPerPixel
	return p.RGB()
}

// wordCursor reads groups of words from the stream strictly in order.
type wordCursor struct {
	b []uint32
	i int
}

func (c *wordCursor) average() rgb.Color {
	var a pixel.Average
	for _, v := range c.b[c.i : c.i+pixel.AverageSamples] {
		a.Add(v)
	}
	c.i += pixel.AverageSamples
	return a.RGB()
}

func copyBlock(m *rgb.Image, c *cursor, o image.Point) {
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			m.SetRGB(o.X+x, o.Y+y, c.next())
		}
	}
}

func copyQuadrant(m *rgb.Image, c *cursor, o image.Point) {
	for y := 0; y < quadrantSize; y += blockSize {
		for x := 0; x < quadrantSize; x += blockSize {
			copyBlock(m, c, o.Add(image.Pt(x, y)))
		}
	}
}

func averageQuadrant(m *rgb.Image, c *wordCursor, o image.Point) {
	for y := 0; y < averagedQuadrant; y++ {
		for x := 0; x < averagedQuadrant; x++ {
			m.SetRGB(o.X+x, o.Y+y, c.average())
		}
	}
}

func crop(m *rgb.Image, size image.Point) *rgb.Image {
	if m.Rect.Size() == size {
		return m
	}
	return m.Crop(image.Rectangle{Max: size})
}

// DecodeDirect decodes a stream of 32-bit pixels, stored as blue, green, red
// and an unused byte, laid out as a tiles.X by tiles.Y grid of tiles and
// returns the top-left size pixels. tileSize must be Size.
func DecodeDirect(b []byte, tileSize int, tiles, size image.Point) (*rgb.Image, error) {
	if err := checkGeometry(tileSize, tiles, size); err != nil {
		return nil, err
	}
	if err := checkLength(len(b), tiles.X*tiles.Y*tilePixels*bytesPerPixel); err != nil {
		return nil, err
	}

	m := rgb.New(image.Rect(0, 0, tiles.X*tileSize, tiles.Y*tileSize))
	c := &cursor{b: b}
	for _, q := range quadrants(tiles) {
		copyQuadrant(m, c, q.Mul(quadrantSize))
	}

	return crop(m, size), nil
}

// DecodeAveraged decodes a stream of packed XRGB8888 words laid out as a
// tiles.X by tiles.Y grid of tiles, reducing each 4 by 4 block of pixels to
// its mean. size is given in source pixels and the result is the top-left
// size/Scale pixels. tileSize must be Size.
func DecodeAveraged(b []uint32, tileSize int, tiles, size image.Point) (*rgb.Image, error) {
	if err := checkGeometry(tileSize, tiles, size); err != nil {
		return nil, err
	}
	if err := checkLength(len(b), tiles.X*tiles.Y*tilePixels); err != nil {
		return nil, err
	}

	m := rgb.New(image.Rect(0, 0, tiles.X*tileSize/Scale, tiles.Y*tileSize/Scale))
	c := &wordCursor{b: b}
	for _, q := range quadrants(tiles) {
		averageQuadrant(m, c, q.Mul(averagedQuadrant))
	}

	return crop(m, size.Div(Scale)), nil
}
