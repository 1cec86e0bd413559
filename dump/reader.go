package dump

import (
	"encoding/binary"
	"image"
	"io"

	"github.com/bodgit/fbdecode/crc32"
	"github.com/bodgit/fbdecode/linear"
	"github.com/bodgit/fbdecode/rgb"
	"github.com/bodgit/fbdecode/tile"
)

func init() {
	image.RegisterFormat("fbdump", magic, Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Dump is a header and the planes it describes.
type Dump struct {
	Header
	Planes [maxPlanes][]byte
}

func uint16s(b []byte) []uint16 {
	s := make([]uint16, len(b)/2)
	for i := range s {
		s[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return s
}

func uint32s(b []byte) []uint32 {
	s := make([]uint32, len(b)/4)
	for i := range s {
		s[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return s
}

// Image decodes the planes according to the header.
func (d *Dump) Image() (*rgb.Image, error) {
	h := d.Header
	switch h.Format {
	case Packed:
		return linear.DecodePacked(d.Planes[0], h.Pitch[0], h.Size)
	case RGB565:
		return linear.DecodeRGB565(uint16s(d.Planes[0]), h.Pitch[0], h.Size)
	case YUV420:
		return linear.DecodeYUV420(d.Planes, h.Pitch, h.Size)
	case YUV420Half:
		return linear.DecodeYUV420Half(d.Planes, h.Pitch, h.Size)
	case TiledAveraged:
		return tile.DecodeAveraged(uint32s(d.Planes[0]), h.TileSize, h.Tiles, h.Size)
	case TiledDirect:
		return tile.DecodeDirect(d.Planes[0], h.TileSize, h.Tiles, h.Size)
	}
	return nil, errBadFormat
}

type decoder struct {
	r io.Reader

	dump Dump

	tmp [headerSize]byte
}

func (d *decoder) readHeader() error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return err
	}
	return d.dump.Header.UnmarshalBinary(d.tmp[:])
}

func (d *decoder) readPlanes() error {
	h := crc32.New()
	for i, n := range d.dump.Length {
		d.dump.Planes[i] = make([]byte, n)
		if err := readFull(d.r, d.dump.Planes[i]); err != nil {
			return err
		}
		_, _ = h.Write(d.dump.Planes[i])
	}
	if h.Sum32() != d.dump.Checksum {
		return errChecksum
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	if err := d.readPlanes(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if n, err := r.Read(d.tmp[:1]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil {
			return err
		}
		return errTooMuch
	}

	return nil
}

// Read reads a complete dump from r and verifies its checksum.
func Read(r io.Reader) (*Dump, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &d.dump, nil
}

// Decode reads a dump from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	d, err := Read(r)
	if err != nil {
		return nil, err
	}
	m, err := d.Image()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeConfig returns the color model and dimensions of a dump without
// reading its planes.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	b := d.dump.Bounds()
	return image.Config{
		ColorModel: rgb.Model,
		Width:      b.Dx(),
		Height:     b.Dy(),
	}, nil
}
