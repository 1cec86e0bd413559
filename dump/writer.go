package dump

import (
	"bytes"
	"image"
	"io"

	"github.com/bodgit/fbdecode/crc32"
	"github.com/bodgit/fbdecode/tile"
)

// Encode writes d to w. The plane lengths and checksum in the header are
// computed from the planes.
func Encode(w io.Writer, d *Dump) error {
	h := d.Header
	c := crc32.New()
	for i, p := range d.Planes {
		h.Length[i] = len(p)
		_, _ = c.Write(p)
	}
	h.Checksum = c.Sum32()

	b, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}

	for _, p := range d.Planes {
		if _, err := w.Write(p); err != nil {
			return err
		}
	}

	return nil
}

// FromImage returns a TiledDirect dump holding m.
func FromImage(m image.Image) (*Dump, error) {
	b := new(bytes.Buffer)
	if err := tile.Encode(b, m); err != nil {
		return nil, err
	}

	return &Dump{
		Header: Header{
			Format:   TiledDirect,
			Size:     m.Bounds().Size(),
			TileSize: tile.Size,
			Tiles:    tile.Tiles(m.Bounds().Size()),
		},
		Planes: [maxPlanes][]byte{b.Bytes()},
	}, nil
}
