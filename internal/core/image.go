// Core image pair structure shared by the loader, viewer and renderer
package core

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// maxDimension guards against bitmaps too large to scale interactively
const maxDimension = 16384

// ImageMetadata contains image information
type ImageMetadata struct {
	Path   string
	Width  int
	Height int
	Format string
	Size   int64 // File size in bytes, 0 when decoded from memory
}

// Name returns the base file name, or "untitled" for in-memory images.
func (m ImageMetadata) Name() string {
	if m.Path == "" {
		return "untitled"
	}
	return filepath.Base(m.Path)
}

// ImagePair holds the two images being compared. It is immutable: picking new
// files replaces the whole pair.
type ImagePair struct {
	first      image.Image
	second     image.Image
	firstMeta  ImageMetadata
	secondMeta ImageMetadata
}

// NewImagePair validates both images and builds a pair. Metadata dimensions
// are filled in from the images themselves.
func NewImagePair(first, second image.Image, firstMeta, secondMeta ImageMetadata) (*ImagePair, error) {
	if err := ValidateImage(first); err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}
	if err := ValidateImage(second); err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}

	return &ImagePair{
		first:      first,
		second:     second,
		firstMeta:  withBounds(firstMeta, first),
		secondMeta: withBounds(secondMeta, second),
	}, nil
}

func (p *ImagePair) First() image.Image  { return p.first }
func (p *ImagePair) Second() image.Image { return p.second }

func (p *ImagePair) FirstMetadata() ImageMetadata  { return p.firstMeta }
func (p *ImagePair) SecondMetadata() ImageMetadata { return p.secondMeta }

// SameDimensions reports whether both images have identical pixel sizes.
func (p *ImagePair) SameDimensions() bool {
	return p.first.Bounds().Size() == p.second.Bounds().Size()
}

func withBounds(meta ImageMetadata, img image.Image) ImageMetadata {
	b := img.Bounds()
	meta.Width = b.Dx()
	meta.Height = b.Dy()
	if meta.Format == "" {
		meta.Format = FormatFromPath(meta.Path)
	}
	return meta
}

// FormatFromPath extracts the lower-case extension without the dot.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// ValidateImage checks a decoded image for basic requirements
func ValidateImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("image is missing")
	}

	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("image is empty")
	}

	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", b.Dx(), b.Dy(), maxDimension)
	}

	return nil
}
