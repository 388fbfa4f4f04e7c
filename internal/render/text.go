package render

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	parseOnce   sync.Once
	regularFont *opentype.Font
	parseErr    error
)

func parsedRegular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		regularFont, parseErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, parseErr
}

// faceCache hands out Go Regular faces per point size, falling back to the
// fixed 7x13 face when the font cannot be loaded.
type faceCache struct {
	faces map[int]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[int]font.Face)}
}

// face returns a face for size points, rounded to a quarter point.
func (c *faceCache) face(size float64) font.Face {
	key := int(math.Round(size * 4))
	if f, ok := c.faces[key]; ok {
		return f
	}

	f := font.Face(basicfont.Face7x13)
	if parsed, err := parsedRegular(); err == nil {
		if face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    float64(key) / 4,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			f = face
		}
	}
	c.faces[key] = f
	return f
}
