// Frame rasterisation for the compare view
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"photo-compare/internal/compare"
)

const (
	PlaceholderText     = "Select two images to compare\nUse mouse wheel to zoom, drag to pan"
	PlaceholderDissolve = "\nDissolve mode: images will fade between each other"
	DissolvingText      = "Dissolving..."

	textSize        = 12.0
	boundaryWidth   = 2.0
	badgeRadius     = 5.0
	badgeLineWidth  = 1.0
	placeholderWrap = 0.9
)

var (
	zoomBadge     = compare.RectAt(compare.Vec{X: 10, Y: 10}, compare.Size{W: 80, H: 25})
	dissolveBadge = compare.RectAt(compare.Vec{X: 10, Y: 40}, compare.Size{W: 100, H: 25})
)

// Palette holds the theme colours used around the images
type Palette struct {
	Background color.Color
	Text       color.Color
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
		Text:       color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
	}
}

// Stats reports layer cache effectiveness
type Stats struct {
	Frames int
	Hits   int
	Misses int
}

// Renderer turns compare Frames into pixels. It is safe for concurrent use;
// the scaled-layer cache and font faces are shared between calls.
type Renderer struct {
	mu      sync.Mutex
	palette Palette
	layers  *layerCache
	faces   *faceCache
	frames  int
	logger  *logrus.Logger
}

func NewRenderer(palette Palette, logger *logrus.Logger) *Renderer {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Renderer{
		palette: palette,
		layers:  newLayerCache(),
		faces:   newFaceCache(),
		logger:  logger,
	}
}

func (r *Renderer) SetPalette(p Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.palette = p
}

// Invalidate drops every cached layer, e.g. after new images were loaded.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.WithField("layers", len(r.layers.entries)).Debug("Scaled layer cache cleared")
	r.layers.reset()
}

func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Frames: r.frames, Hits: r.layers.hits, Misses: r.layers.misses}
}

// Render draws f onto a w x h pixel canvas. The frame is in viewport units;
// the canvas may be larger on high density displays.
func (r *Renderer) Render(f compare.Frame, w, h int) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	r.frames++

	scale := 1.0
	if f.Viewport.W > 0 {
		scale = float64(w) / f.Viewport.W
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.palette.Background)
	dc.Clear()

	if !f.HasImages || !f.FirstLayout.Valid() {
		r.drawPlaceholder(dc, f.Mode, scale)
		return dc.Image().(*image.RGBA)
	}

	canvas := image.Pt(w, h)
	dc.DrawImage(r.layerFor(f.First, f.FirstLayout, scale, canvas), 0, 0)

	switch f.Mode {
	case compare.Dissolve:
		if f.Opacity > 0 && f.SecondLayout.Valid() {
			second := r.layerFor(f.Second, f.SecondLayout, scale, canvas)
			blend(dc.Image().(*image.RGBA), second, f.Opacity)
		}
	default:
		if f.Reveal > 0 && f.SecondLayout.Valid() {
			r.drawWipe(dc, f, scale, canvas)
		}
	}

	if compare.ZoomPercent(f.Zoom) != 100 {
		r.drawBadge(dc, zoomBadge, fmt.Sprintf("Zoom: %d%%", compare.ZoomPercent(f.Zoom)), scale)
	}
	if f.Mode == compare.Dissolve && f.Dissolving {
		r.drawBadge(dc, dissolveBadge, DissolvingText, scale)
	}

	return dc.Image().(*image.RGBA)
}

func (r *Renderer) layerFor(src image.Image, l compare.Layout, scale float64, canvas image.Point) *image.RGBA {
	return r.layers.layer(src,
		l.Origin.X*scale, l.Origin.Y*scale,
		l.Zoomed.W*scale, l.Zoomed.H*scale,
		canvas)
}

func (r *Renderer) drawWipe(dc *gg.Context, f compare.Frame, scale float64, canvas image.Point) {
	// Clip and boundary follow the second image's own rectangle.
	rect := f.SecondLayout.Rect()
	clip := compare.RevealClip(rect, f.Direction, f.Reveal)
	if clip.Empty() {
		return
	}

	dc.DrawRectangle(clip.Min.X*scale, clip.Min.Y*scale, clip.Dx()*scale, clip.Dy()*scale)
	dc.Clip()
	dc.DrawImage(r.layerFor(f.Second, f.SecondLayout, scale, canvas), 0, 0)
	dc.ResetClip()

	a, b := compare.RevealBoundary(rect, f.Direction, f.Reveal)
	dc.SetRGBA255(255, 255, 255, 180)
	dc.SetLineWidth(boundaryWidth * scale)
	dc.DrawLine(a.X*scale, a.Y*scale, b.X*scale, b.Y*scale)
	dc.Stroke()
}

func (r *Renderer) drawBadge(dc *gg.Context, box compare.Rect, text string, scale float64) {
	x, y := box.Min.X*scale, box.Min.Y*scale
	w, h := box.Dx()*scale, box.Dy()*scale

	dc.DrawRoundedRectangle(x, y, w, h, badgeRadius*scale)
	dc.SetRGBA255(0, 0, 0, 100)
	dc.FillPreserve()
	dc.SetRGBA255(255, 255, 255, 200)
	dc.SetLineWidth(badgeLineWidth * scale)
	dc.Stroke()

	dc.SetFontFace(r.faces.face(textSize * scale))
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(text, x+w/2, y+h/2, 0.5, 0.35)
}

func (r *Renderer) drawPlaceholder(dc *gg.Context, mode compare.Mode, scale float64) {
	text := PlaceholderText
	if mode == compare.Dissolve {
		text += PlaceholderDissolve
	}

	w, h := float64(dc.Width()), float64(dc.Height())
	dc.SetFontFace(r.faces.face(textSize * scale))
	dc.SetColor(r.palette.Text)
	dc.DrawStringWrapped(text, w/2, h/2, 0.5, 0.5, w*placeholderWrap, 1.5, gg.AlignCenter)
}

// blend composites layer over dst with a global alpha in [0,1].
func blend(dst, layer *image.RGBA, opacity float64) {
	if opacity >= 1 {
		xdraw.Draw(dst, dst.Bounds(), layer, image.Point{}, xdraw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	xdraw.DrawMask(dst, dst.Bounds(), layer, image.Point{}, mask, image.Point{}, xdraw.Over)
}
