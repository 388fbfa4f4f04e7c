package core

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		wantErr string
	}{
		{"nil", nil, "missing"},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 10)), "empty"},
		{"too wide", image.NewGray(image.Rect(0, 0, maxDimension+1, 1)), "too large"},
		{"ok", image.NewRGBA(image.Rect(0, 0, 4, 3)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.img)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewImagePair(t *testing.T) {
	first := image.NewRGBA(image.Rect(0, 0, 40, 30))
	second := image.NewRGBA(image.Rect(0, 0, 20, 20))

	pair, err := NewImagePair(first, second,
		ImageMetadata{Path: "/photos/Before.JPG", Size: 1234},
		ImageMetadata{})
	require.NoError(t, err)

	assert.Same(t, first, pair.First())
	assert.Same(t, second, pair.Second())
	assert.False(t, pair.SameDimensions())

	meta := pair.FirstMetadata()
	assert.Equal(t, 40, meta.Width)
	assert.Equal(t, 30, meta.Height)
	assert.Equal(t, "jpg", meta.Format)
	assert.Equal(t, "Before.JPG", meta.Name())
	assert.Equal(t, int64(1234), meta.Size)

	assert.Equal(t, "untitled", pair.SecondMetadata().Name())
	assert.Equal(t, "unknown", pair.SecondMetadata().Format)
}

func TestNewImagePairRejectsInvalidImages(t *testing.T) {
	ok := image.NewRGBA(image.Rect(0, 0, 4, 4))

	_, err := NewImagePair(nil, ok, ImageMetadata{}, ImageMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first image")

	_, err = NewImagePair(ok, image.NewRGBA(image.Rectangle{}), ImageMetadata{}, ImageMetadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second image")
}
