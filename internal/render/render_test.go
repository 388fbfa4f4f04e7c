package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-compare/internal/compare"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testFrame(mode compare.Mode) compare.Frame {
	viewport := compare.Size{W: 200, H: 100}
	first := solid(200, 100, red)
	second := solid(200, 100, blue)
	firstLayout := compare.ComputeLayout(viewport, compare.ImageSize(first), 1, compare.Vec{})

	return compare.Frame{
		Viewport:     viewport,
		HasImages:    true,
		First:        first,
		Second:       second,
		FirstLayout:  firstLayout,
		SecondLayout: compare.ComputeCompanionLayout(firstLayout, compare.ImageSize(second), compare.Vec{}),
		Mode:         mode,
		Direction:    compare.LeftToRight,
		Zoom:         1,
	}
}

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestRenderPlaceholder(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := compare.Frame{Viewport: compare.Size{W: 200, H: 100}, Zoom: 1}

	img := r.Render(f, 200, 100)
	require.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	bg := color.RGBAModel.Convert(DefaultPalette().Background).(color.RGBA)
	assert.Equal(t, bg, rgba(img, 0, 0))
	assert.Equal(t, bg, rgba(img, 199, 99))
}

func TestRenderWipe(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Wipe)

	img := r.Render(f, 200, 100)
	assert.Equal(t, red, rgba(img, 20, 50))
	assert.Equal(t, red, rgba(img, 150, 50))

	f.Reveal = 0.25
	img = r.Render(f, 200, 100)
	assert.Equal(t, blue, rgba(img, 20, 50))
	assert.Equal(t, red, rgba(img, 150, 50))

	// Boundary line is drawn in translucent white at the clip edge.
	edge := rgba(img, 50, 50)
	assert.Greater(t, edge.G, uint8(100))
}

func TestRenderWipeDirections(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Wipe)
	f.Reveal = 0.5

	f.Direction = compare.RightToLeft
	img := r.Render(f, 200, 100)
	assert.Equal(t, red, rgba(img, 20, 50))
	assert.Equal(t, blue, rgba(img, 180, 50))

	f.Direction = compare.BottomToTop
	img = r.Render(f, 200, 100)
	assert.Equal(t, red, rgba(img, 100, 10))
	assert.Equal(t, blue, rgba(img, 100, 90))
}

func TestRenderScalesToPixelCanvas(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Wipe)
	f.Reveal = 0.25

	img := r.Render(f, 400, 200)
	require.Equal(t, image.Rect(0, 0, 400, 200), img.Bounds())
	assert.Equal(t, blue, rgba(img, 40, 100))
	assert.Equal(t, red, rgba(img, 300, 100))
}

func TestRenderDissolve(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Dissolve)
	f.Reveal = 0.5

	img := r.Render(f, 200, 100)
	assert.Equal(t, red, rgba(img, 20, 50), "reveal is ignored in dissolve mode")

	f.Opacity = 0.5
	img = r.Render(f, 200, 100)
	c := rgba(img, 150, 80)
	assert.InDelta(t, 127, int(c.R), 2)
	assert.InDelta(t, 128, int(c.B), 2)

	f.Opacity = 1
	img = r.Render(f, 200, 100)
	assert.Equal(t, blue, rgba(img, 150, 80))
}

func TestRenderZoomBadge(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Wipe)

	img := r.Render(f, 200, 100)
	assert.Equal(t, red, rgba(img, 12, 22))

	f.Zoom = 1.2
	img = r.Render(f, 200, 100)
	c := rgba(img, 12, 22)
	assert.Less(t, c.R, uint8(200), "badge darkens the image")
	assert.Greater(t, c.R, uint8(100))
}

func TestRenderDissolvingBadge(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Dissolve)
	f.Dissolving = true

	img := r.Render(f, 200, 100)
	c := rgba(img, 12, 52)
	assert.Less(t, c.R, uint8(200))
	assert.Equal(t, red, rgba(img, 12, 22), "no zoom badge at 100%")
}

func TestRenderReusesScaledLayers(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	f := testFrame(compare.Dissolve)
	f.Opacity = 0.3

	r.Render(f, 200, 100)
	f.Opacity = 0.6
	r.Render(f, 200, 100)

	s := r.Stats()
	assert.Equal(t, 2, s.Frames)
	assert.Equal(t, 2, s.Misses)
	assert.Equal(t, 2, s.Hits)

	r.Invalidate()
	r.Render(f, 200, 100)
	assert.Equal(t, 4, r.Stats().Misses)
}

func TestRenderEmptyCanvas(t *testing.T) {
	r := NewRenderer(DefaultPalette(), nil)
	img := r.Render(testFrame(compare.Wipe), 0, 0)
	assert.Equal(t, 1, img.Bounds().Dx())
}
