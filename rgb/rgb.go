/*
Package rgb implements an in-memory raster of 8-bit RGB triples.

It is the output of every decoder in this module. Pixels are stored row major
with three bytes per pixel and no alpha channel; every pixel is opaque.
*/
package rgb

import (
	"image"
	"image/color"
)

const bytesPerPixel = 3

// Color is an opaque 24-bit color.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 0xffff
	return
}

// Model converts any color.Color to a Color, discarding alpha.
var Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Image is an in-memory image whose At method returns Color values.
type Image struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at (x, y)
	// starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// New returns a new Image with the given bounds.
func New(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]uint8, bytesPerPixel*r.Dx()*r.Dy()),
		Stride: bytesPerPixel * r.Dx(),
		Rect:   r,
	}
}

func (p *Image) Bounds() image.Rectangle { return p.Rect }
func (p *Image) ColorModel() color.Model { return Model }

// Opaque always reports true as there is no alpha channel.
func (p *Image) Opaque() bool { return true }

func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

// RGBAt returns the Color at (x, y) or the zero Color if the point is
// outside the image.
func (p *Image) RGBAt(x, y int) Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return Color{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return Color{s[0], s[1], s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*bytesPerPixel
}

func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, Model.Convert(c).(Color))
}

// SetRGB sets the pixel at (x, y). Points outside the image are ignored.
func (p *Image) SetRGB(x, y int, c Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Crop copies the portion of the image p visible through r into a new
// image with its origin at (0, 0). The result does not share pixels with p.
func (p *Image) Crop(r image.Rectangle) *Image {
	r = r.Intersect(p.Rect)
	dst := New(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		i := p.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], p.Pix[i:i+dst.Stride])
	}
	return dst
}
