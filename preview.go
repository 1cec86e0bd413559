package fbdecode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/ericpauley/go-quantize/quantize"
)

// Preview thumbnail limits
const (
	previewWidth  = 64
	previewHeight = 40
	previewColors = 16
)

// fit scales w by h down to fit within the preview area, keeping the aspect
// ratio. Images that already fit are not scaled up.
func fit(w, h int) (int, int) {
	if w <= previewWidth && h <= previewHeight {
		return w, h
	}
	if w*previewHeight > h*previewWidth {
		h = h * previewWidth / w
		w = previewWidth
	} else {
		w = w * previewHeight / h
		h = previewHeight
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Preview returns a small 16 color PNG of m for the catalog.
func Preview(m image.Image) ([]byte, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, errors.New("fbdecode: empty image")
	}

	w, h := fit(b.Dx(), b.Dy())
	small := transform.Resize(m, w, h, transform.Linear)

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(small.Bounds(), q.Quantize(make(color.Palette, 0, previewColors), small))
	draw.Draw(pm, pm.Bounds(), small, small.Bounds().Min, draw.Src)

	buf := new(bytes.Buffer)
	if err := imgio.PNGEncoder()(buf, pm); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
