/*
Package tile implements a decoder and encoder for framebuffers stored as a
grid of swizzled 32 by 32 pixel tiles.

Each pixel is a 32-bit word. A tile is streamed as four 16 by 16 quadrants;
on even tile rows the quadrants are visited top-left, bottom-left,
bottom-right, top-right and on odd tile rows bottom-right, top-right,
top-left, bottom-left. Tile columns are visited left to right on even tile
rows and right to left on odd tile rows, so the stream snakes through the
image. Within a quadrant the pixels are streamed as four 16 by 4 strips from
top to bottom, each strip as four 4 by 4 blocks from left to right and each
block row by row.

The full canvas of tiles is always decoded and the requested size is then
cropped from its top-left corner, as the last row and column of tiles usually
extend past the visible image.
*/
package tile

import (
	"errors"
	"fmt"
	"image"
)

const (
	// Size is the width and height of a tile in pixels.
	Size = 32

	quadrantSize   = Size / 2
	blockSize      = 4
	numQuadrants   = 4
	tilePixels     = Size * Size
	quadrantPixels = quadrantSize * quadrantSize
	blockPixels    = blockSize * blockSize
	stripPixels    = quadrantSize * blockSize
	bytesPerPixel  = 4

	// Scale is the factor by which DecodeAveraged reduces each axis.
	Scale = 4

	averagedSize     = Size / Scale
	averagedQuadrant = averagedSize / 2

	maxInt = int(^uint(0) >> 1)
)

var (
	// ErrBufferTooSmall is returned when the buffer is shorter than the
	// tile grid requires.
	ErrBufferTooSmall = errors.New("tile: buffer too small")
	// ErrInvalidGeometry is returned for an unsupported tile size, a
	// negative grid or a crop larger than the grid.
	ErrInvalidGeometry = errors.New("tile: invalid geometry")
)

// Quadrant origins, in units of half a tile, in the order they are streamed.
var quadrantOrder = [2][numQuadrants]image.Point{
	{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	{{1, 1}, {1, 0}, {0, 0}, {0, 1}},
}

// Tiles returns the size of the smallest grid of tiles covering size.
func Tiles(size image.Point) image.Point {
	return image.Pt((size.X+Size-1)/Size, (size.Y+Size-1)/Size)
}

// column returns the position in the stream of tile column tx on tile row
// ty.
func column(tx, ty, tilesX int) int {
	if ty%2 == 1 {
		return tilesX - 1 - tx
	}
	return tx
}

// quadrants returns the origin of every quadrant in the grid, in units of
// half a tile, in stream order.
func quadrants(tiles image.Point) []image.Point {
	qs := make([]image.Point, 0, tiles.X*tiles.Y*numQuadrants)
	for ty := 0; ty < tiles.Y; ty++ {
		for i := 0; i < tiles.X; i++ {
			tx := column(i, ty, tiles.X)
			for _, q := range quadrantOrder[ty%2] {
				qs = append(qs, image.Pt(2*tx+q.X, 2*ty+q.Y))
			}
		}
	}
	return qs
}

func quadrantIndex(q image.Point, ty int) int {
	for i, o := range quadrantOrder[ty%2] {
		if o == q {
			return i
		}
	}
	panic("unreachable")
}

// Index returns the position in the stream, counted in pixels, of the pixel
// at (x, y) on a canvas tilesX tiles wide. It returns -1 for a negative
// coordinate or an x past the last tile column.
func Index(x, y, tilesX int) int {
	if x < 0 || y < 0 || x/Size >= tilesX {
		return -1
	}
	tx, ty := x/Size, y/Size
	lx, ly := x%Size, y%Size
	sx, sy := lx%quadrantSize, ly%quadrantSize

	i := (ty*tilesX + column(tx, ty, tilesX)) * tilePixels
	i += quadrantIndex(image.Pt(lx/quadrantSize, ly/quadrantSize), ty) * quadrantPixels
	i += sy / blockSize * stripPixels
	i += sx / blockSize * blockPixels
	i += sy%blockSize*blockSize + sx%blockSize
	return i
}

func checkGeometry(tileSize int, tiles, size image.Point) error {
	if tileSize != Size {
		return fmt.Errorf("%w: tile size %d, only %d is supported", ErrInvalidGeometry, tileSize, Size)
	}
	if tiles.X < 0 || tiles.Y < 0 {
		return fmt.Errorf("%w: tiles %v", ErrInvalidGeometry, tiles)
	}
	// The grid must be addressable in bytes
	if tiles.Y > 0 && tiles.X > maxInt/(tilePixels*bytesPerPixel)/tiles.Y {
		return fmt.Errorf("%w: %v tiles is too many", ErrInvalidGeometry, tiles)
	}
	if size.X < 0 || size.Y < 0 || size.X > tiles.X*Size || size.Y > tiles.Y*Size {
		return fmt.Errorf("%w: size %v outside %v tiles", ErrInvalidGeometry, size, tiles)
	}
	return nil
}

func checkLength(have, need int) error {
	if have < need {
		return fmt.Errorf("%w: length (%d) less than expected (%d)", ErrBufferTooSmall, have, need)
	}
	return nil
}
