package fbdecode

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/bodgit/fbdecode/rgb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{64, 40, 64, 40},
		{10, 10, 10, 10},
		{320, 200, 64, 40},
		{320, 240, 53, 40},
		{640, 100, 64, 10},
		{1000, 1, 64, 1},
		{1, 1000, 1, 40},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h)
		assert.Equal(t, [2]int{tt.wantW, tt.wantH}, [2]int{w, h}, "%dx%d", tt.w, tt.h)
	}
}

func TestPreview(t *testing.T) {
	b, err := Preview(testImage(320, 240))
	require.NoError(t, err)

	m, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 53, 40), m.Bounds())

	pm, ok := m.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pm.Palette), previewColors)

	_, err = Preview(rgb.New(image.Rectangle{}))
	assert.Error(t, err)
}
