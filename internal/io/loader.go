// Image loading and saving for the compare view
package io

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"photo-compare/internal/core"
)

var supportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff", ".tif", ".webp"}

// ErrUnsupportedFormat is returned for files whose extension is not an image type
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SupportedExtensions lists the accepted file extensions, lower case with dot.
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage reads and decodes one image file. OpenCV does the decoding;
// formats it cannot read (GIF on most builds) go through the Go decoders.
func (il *ImageLoader) LoadImage(path string) (image.Image, core.ImageMetadata, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if err := ValidateImageFile(path); err != nil {
		return nil, core.ImageMetadata{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, core.ImageMetadata{}, fmt.Errorf("stat %s: %w", path, err)
	}

	img, err := il.readWithOpenCV(path)
	if err != nil {
		il.logger.WithError(err).WithField("filepath", path).Debug("OpenCV decode failed, trying Go decoders")

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, core.ImageMetadata{}, fmt.Errorf("failed to read image %s: %w", path, readErr)
		}
		img, err = decodeStd(data)
		if err != nil {
			return nil, core.ImageMetadata{}, fmt.Errorf("failed to load image %s: %w", path, err)
		}
	}

	meta := core.ImageMetadata{
		Path:   path,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Format: core.FormatFromPath(path),
		Size:   info.Size(),
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    meta.Width,
		"height":   meta.Height,
		"bytes":    meta.Size,
	}).Info("Image loaded successfully")

	return img, meta, nil
}

// DecodeImage decodes an in-memory image, e.g. one read through a file dialog.
// name is only used for metadata and may be empty.
func (il *ImageLoader) DecodeImage(data []byte, name string) (image.Image, core.ImageMetadata, error) {
	if len(data) == 0 {
		return nil, core.ImageMetadata{}, fmt.Errorf("empty image data")
	}

	var img image.Image
	if mat, err := gocv.IMDecode(data, gocv.IMReadColor); err == nil {
		if !mat.Empty() {
			img, _ = mat.ToImage()
		}
		mat.Close()
	}
	if img == nil {
		var err error
		if img, err = decodeStd(data); err != nil {
			return nil, core.ImageMetadata{}, fmt.Errorf("failed to decode %s: %w", displayName(name), err)
		}
	}

	meta := core.ImageMetadata{
		Path:   name,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Format: core.FormatFromPath(name),
		Size:   int64(len(data)),
	}

	il.logger.WithFields(logrus.Fields{
		"name":   displayName(name),
		"width":  meta.Width,
		"height": meta.Height,
	}).Info("Image decoded successfully")

	return img, meta, nil
}

// LoadPair loads both files and builds a validated pair.
func (il *ImageLoader) LoadPair(firstPath, secondPath string) (*core.ImagePair, error) {
	first, firstMeta, err := il.LoadImage(firstPath)
	if err != nil {
		return nil, fmt.Errorf("first image: %w", err)
	}
	second, secondMeta, err := il.LoadImage(secondPath)
	if err != nil {
		return nil, fmt.Errorf("second image: %w", err)
	}
	return core.NewImagePair(first, second, firstMeta, secondMeta)
}

// SaveImage writes img to path, picking the encoder from the extension.
func (il *ImageLoader) SaveImage(img image.Image, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if err := core.ValidateImage(img); err != nil {
		return fmt.Errorf("cannot save image: %w", err)
	}
	if !IsSupportedImageFormat(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	mat, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
	}).Info("Image saved successfully")

	return nil
}

// ValidateImageFile checks that path names an existing regular file with a
// supported extension. It does not decode the file.
func ValidateImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	if !IsSupportedImageFormat(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

func (il *ImageLoader) readWithOpenCV(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("opencv could not read %s", path)
	}
	return mat.ToImage()
}

func decodeStd(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func displayName(name string) string {
	if name == "" {
		return "image"
	}
	return filepath.Base(name)
}
