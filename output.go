package fbdecode

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

// OutputFormat selects the image file format written by a Converter.
type OutputFormat int

// Supported output formats
const (
	PNG OutputFormat = iota
	JPEG
	BMP
	GIF
)

const jpegQuality = 95

var outputFormats = []struct {
	name string
	ext  string
}{
	PNG:  {"png", ".png"},
	JPEG: {"jpeg", ".jpg"},
	BMP:  {"bmp", ".bmp"},
	GIF:  {"gif", ".gif"},
}

// ParseOutputFormat returns the OutputFormat with the given name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for i, f := range outputFormats {
		if strings.EqualFold(s, f.name) || strings.EqualFold(s, f.ext[1:]) {
			return OutputFormat(i), nil
		}
	}
	return 0, fmt.Errorf("fbdecode: unknown output format %q", s)
}

func (f OutputFormat) String() string {
	return outputFormats[f].name
}

// Ext returns the file extension, including the leading dot.
func (f OutputFormat) Ext() string {
	return outputFormats[f].ext
}

func encodeGIF(w io.Writer, m image.Image) error {
	return gif.Encode(w, m, &gif.Options{
		NumColors: 256,
		Quantizer: &quantize.MedianCutQuantizer{},
		Drawer:    draw.FloydSteinberg,
	})
}

func (f OutputFormat) encoder() imgio.Encoder {
	switch f {
	case JPEG:
		return imgio.JPEGEncoder(jpegQuality)
	case BMP:
		return bmp.Encode
	case GIF:
		return encodeGIF
	default:
		return imgio.PNGEncoder()
	}
}

// Encode writes m to w.
func (f OutputFormat) Encode(w io.Writer, m image.Image) error {
	return f.encoder()(w, m)
}

// Save writes m to file.
func (f OutputFormat) Save(file string, m image.Image) error {
	return imgio.Save(file, m, f.encoder())
}
