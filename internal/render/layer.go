package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const maxCachedLayers = 4

// layerKey identifies one scaled placement of a source image on the canvas
type layerKey struct {
	src    image.Image
	x, y   float64
	w, h   float64
	canvas image.Point
}

// layerCache keeps canvas-sized bitmaps of recently drawn placements so that
// dissolve frames and boundary moves reuse the scaled pixels.
type layerCache struct {
	entries []layerEntry
	hits    int
	misses  int
}

type layerEntry struct {
	key   layerKey
	layer *image.RGBA
}

func newLayerCache() *layerCache {
	return &layerCache{}
}

// layer returns a transparent canvas with src smoothly scaled into the
// rectangle (x, y, w, h). Only the visible part is ever rasterised, so deep
// zoom levels never allocate the full zoomed bitmap.
func (c *layerCache) layer(src image.Image, x, y, w, h float64, canvas image.Point) *image.RGBA {
	key := layerKey{src: src, x: x, y: y, w: w, h: h, canvas: canvas}
	for i, e := range c.entries {
		if e.key == key {
			c.hits++
			if i > 0 {
				copy(c.entries[1:i+1], c.entries[:i])
				c.entries[0] = e
			}
			return e.layer
		}
	}

	c.misses++
	layer := scaleInto(src, x, y, w, h, canvas)
	c.entries = append([]layerEntry{{key: key, layer: layer}}, c.entries...)
	if len(c.entries) > maxCachedLayers {
		c.entries = c.entries[:maxCachedLayers]
	}
	return layer
}

func (c *layerCache) reset() {
	c.entries = nil
}

func scaleInto(src image.Image, x, y, w, h float64, canvas image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: canvas})
	sr := src.Bounds()
	if sr.Empty() || w <= 0 || h <= 0 {
		return dst
	}

	visible := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(dst.Bounds())
	if visible.Empty() {
		return dst
	}

	sx := w / float64(sr.Dx())
	sy := h / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, x - sx*float64(sr.Min.X),
		0, sy, y - sy*float64(sr.Min.Y),
	}
	xdraw.BiLinear.Transform(dst.SubImage(visible).(*image.RGBA), s2d, src, sr, xdraw.Src, nil)
	return dst
}
