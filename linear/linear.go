/*
Package linear implements decoders for framebuffer dumps stored in row-major
order.

Every decoder walks the destination image row by row, computes the offset of
the source sample(s) for each coordinate from the pitch, converts them with
the pixel package and writes the result into a newly allocated rgb.Image.
Pitches are always given in bytes, the distance between the start of two
consecutive source rows.

The geometry is validated once before decoding starts; a buffer too short
for the given size and pitch is reported as ErrBufferTooSmall rather than
read out of bounds.
*/
package linear

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/fbdecode/pixel"
	"github.com/bodgit/fbdecode/rgb"
)

var (
	// ErrBufferTooSmall is returned when a source buffer does not hold
	// every sample the geometry addresses.
	ErrBufferTooSmall = errors.New("linear: buffer too small")
	// ErrInvalidGeometry is returned for negative sizes or a pitch that
	// is narrower than a row.
	ErrInvalidGeometry = errors.New("linear: invalid geometry")
)

// Plane indices for multichannel sources
const (
	PlaneY = iota
	PlaneU
	PlaneV
	numPlanes
)

const maxInt = int(^uint(0) >> 1)

// span returns the number of samples covered by h rows of w samples where
// each row starts stride samples after the previous one. stride must be at
// least w when h > 1.
func span(w, h, stride int) (int, error) {
	if w == 0 || h == 0 {
		return 0, nil
	}
	if h > 1 && h-1 > (maxInt-w)/stride {
		return 0, fmt.Errorf("%w: %d rows of stride %d overflow", ErrInvalidGeometry, h, stride)
	}
	return (h-1)*stride + w, nil
}

func checkSize(size image.Point) error {
	if size.X < 0 || size.Y < 0 {
		return fmt.Errorf("%w: size %v", ErrInvalidGeometry, size)
	}
	return nil
}

func checkStride(w, h, stride int) error {
	if w > 0 && h > 1 && stride < w {
		return fmt.Errorf("%w: stride %d narrower than row of %d", ErrInvalidGeometry, stride, w)
	}
	return nil
}

// checkLength checks that have samples cover h rows of w samples spaced
// stride samples apart.
func checkLength(name string, have, w, h, stride int) error {
	need, err := span(w, h, stride)
	if err != nil {
		return err
	}
	if have < need {
		return fmt.Errorf("%w: %s length (%d) less than expected (%d)", ErrBufferTooSmall, name, have, need)
	}
	return nil
}

// DecodePacked decodes a buffer of little-endian 32-bit words, one per pixel,
// with red, green and blue in bytes 2, 1 and 0 of each word.
func DecodePacked(b []byte, pitch int, size image.Point) (*rgb.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	stride := pitch / 4
	if err := checkStride(size.X, size.Y, stride); err != nil {
		return nil, err
	}
	if err := checkLength("buffer", len(b)/4, size.X, size.Y, stride); err != nil {
		return nil, err
	}

	m := rgb.New(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			offset := (y*stride + x) * 4
			m.SetRGB(x, y, pixel.XRGB8888(binary.LittleEndian.Uint32(b[offset:])).RGB())
		}
	}

	return m, nil
}

// DecodeRGB565 decodes a buffer of 16-bit RGB565 pixels.
func DecodeRGB565(b []uint16, pitch int, size image.Point) (*rgb.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	stride := pitch / 2
	if err := checkStride(size.X, size.Y, stride); err != nil {
		return nil, err
	}
	if err := checkLength("buffer", len(b), size.X, size.Y, stride); err != nil {
		return nil, err
	}

	m := rgb.New(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			m.SetRGB(x, y, pixel.RGB565(b[y*stride+x]).RGB())
		}
	}

	return m, nil
}

func checkPlanes(planes [numPlanes][]byte, pitches [numPlanes]int, luma, chroma image.Point) error {
	if err := checkStride(luma.X, luma.Y, pitches[PlaneY]); err != nil {
		return err
	}
	if err := checkLength("luma plane", len(planes[PlaneY]), luma.X, luma.Y, pitches[PlaneY]); err != nil {
		return err
	}
	for i := PlaneU; i < numPlanes; i++ {
		if err := checkStride(chroma.X, chroma.Y, pitches[i]); err != nil {
			return err
		}
		if err := checkLength("chroma plane", len(planes[i]), chroma.X, chroma.Y, pitches[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeYUV420 decodes a three plane YUV 4:2:0 buffer at full resolution.
// Each chroma sample is shared by a 2x2 block of luma samples.
func DecodeYUV420(planes [3][]byte, pitches [3]int, size image.Point) (*rgb.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	chroma := image.Pt((size.X+1)/2, (size.Y+1)/2)
	if err := checkPlanes(planes, pitches, size, chroma); err != nil {
		return nil, err
	}

	m := rgb.New(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			m.SetRGB(x, y, pixel.YUV{
				Y: planes[PlaneY][y*pitches[PlaneY]+x],
				U: planes[PlaneU][(y/2)*pitches[PlaneU]+x/2],
				V: planes[PlaneV][(y/2)*pitches[PlaneV]+x/2],
			}.RGB())
		}
	}

	return m, nil
}

// DecodeYUV420Half decodes a three plane YUV 4:2:0 buffer at half the width
// and height of size. Each output pixel uses the truncated mean of the 2x2
// luma block it covers and the chroma sample for that block.
func DecodeYUV420Half(planes [3][]byte, pitches [3]int, size image.Point) (*rgb.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	half := size.Div(2)
	if err := checkPlanes(planes, pitches, half.Mul(2), half); err != nil {
		return nil, err
	}

	luma := planes[PlaneY]
	pitch := pitches[PlaneY]

	m := rgb.New(image.Rect(0, 0, half.X, half.Y))
	for y := 0; y < half.Y; y++ {
		for x := 0; x < half.X; x++ {
			offset := 2*y*pitch + 2*x
			sum := int(luma[offset]) + int(luma[offset+1]) + int(luma[offset+pitch]) + int(luma[offset+pitch+1])
			m.SetRGB(x, y, pixel.YUV{
				Y: uint8(sum / 4),
				U: planes[PlaneU][y*pitches[PlaneU]+x],
				V: planes[PlaneV][y*pitches[PlaneV]+x],
			}.RGB())
		}
	}

	return m, nil
}
