// Geometry for fitting, zooming and clipping the compared images
package compare

import (
	"image"
	"math"
)

// snap truncates to whole units the way the toolkit sizes a scaled bitmap.
// The epsilon keeps 199.9999999 from collapsing to 199.
func snap(v float64) float64 {
	return math.Floor(v + 1e-9)
}

// ImageSize returns the pixel size of img, or an empty size for nil images.
func ImageSize(img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// FitSize scales src to the largest size that fits in bounds while
// preserving its aspect ratio.
func FitSize(src, bounds Size) Size {
	if src.Empty() || bounds.Empty() {
		return Size{}
	}

	scale := math.Min(bounds.W/src.W, bounds.H/src.H)
	fitted := Size{W: snap(src.W * scale), H: snap(src.H * scale)}
	if fitted.W < 1 {
		fitted.W = 1
	}
	if fitted.H < 1 {
		fitted.H = 1
	}
	return fitted
}

// Layout is the placement of one image inside the viewport
type Layout struct {
	Viewport Size
	Fitted   Size // aspect-preserving fit, before zoom
	Zoomed   Size // Fitted multiplied by the zoom factor
	Origin   Vec  // top-left corner in viewport units, pan included
}

// Valid reports whether the layout places a visible image.
func (l Layout) Valid() bool {
	return !l.Zoomed.Empty()
}

// Rect is the zoomed, panned image rectangle in viewport units.
func (l Layout) Rect() Rect {
	return RectAt(l.Origin, l.Zoomed)
}

// ToImage maps a viewport point into the coordinate space of the zoomed image.
func (l Layout) ToImage(p Vec) Vec {
	if !l.Valid() {
		return Vec{}
	}
	return p.Sub(l.Origin)
}

// ComputeLayout fits source into viewport, applies zoom and centers the
// result, offset by pan. An empty source or viewport yields an invalid layout.
func ComputeLayout(viewport, source Size, zoom float64, pan Vec) Layout {
	fitted := FitSize(source, viewport)
	if fitted.Empty() {
		return Layout{Viewport: viewport}
	}

	zoomed := Size{W: snap(fitted.W * zoom), H: snap(fitted.H * zoom)}
	return Layout{
		Viewport: viewport,
		Fitted:   fitted,
		Zoomed:   zoomed,
		Origin:   centered(viewport, zoomed, pan),
	}
}

// ComputeCompanionLayout places the second image of a pair. It is fitted into
// the viewport on its own, then fitted again into the zoomed box of the
// reference layout so both images share one on-screen footprint.
func ComputeCompanionLayout(reference Layout, source Size, pan Vec) Layout {
	if !reference.Valid() {
		return Layout{Viewport: reference.Viewport}
	}

	fitted := FitSize(source, reference.Viewport)
	zoomed := FitSize(fitted, reference.Zoomed)
	if zoomed.Empty() {
		return Layout{Viewport: reference.Viewport}
	}
	return Layout{
		Viewport: reference.Viewport,
		Fitted:   fitted,
		Zoomed:   zoomed,
		Origin:   centered(reference.Viewport, zoomed, pan),
	}
}

func centered(viewport, size Size, pan Vec) Vec {
	return Vec{
		X: (viewport.W-size.W)/2 + pan.X,
		Y: (viewport.H-size.H)/2 + pan.Y,
	}
}

// revealExtent is the revealed length along the wipe axis, in whole units.
func revealExtent(extent, fraction float64) float64 {
	return snap(extent * clamp(fraction, 0, 1))
}

// RevealClip returns the part of r in which the second image is visible for
// the given direction and reveal fraction.
func RevealClip(r Rect, dir Direction, fraction float64) Rect {
	switch dir {
	case RightToLeft:
		w := revealExtent(r.Dx(), fraction)
		return Rect{Min: Vec{r.Max.X - w, r.Min.Y}, Max: r.Max}
	case TopToBottom:
		h := revealExtent(r.Dy(), fraction)
		return Rect{Min: r.Min, Max: Vec{r.Max.X, r.Min.Y + h}}
	case BottomToTop:
		h := revealExtent(r.Dy(), fraction)
		return Rect{Min: Vec{r.Min.X, r.Max.Y - h}, Max: r.Max}
	default:
		w := revealExtent(r.Dx(), fraction)
		return Rect{Min: r.Min, Max: Vec{r.Min.X + w, r.Max.Y}}
	}
}

// RevealBoundary returns the endpoints of the line drawn at the moving edge
// of the reveal clip.
func RevealBoundary(r Rect, dir Direction, fraction float64) (Vec, Vec) {
	clip := RevealClip(r, dir, fraction)
	switch dir {
	case RightToLeft:
		return Vec{clip.Min.X, r.Min.Y}, Vec{clip.Min.X, r.Max.Y}
	case TopToBottom:
		return Vec{r.Min.X, clip.Max.Y}, Vec{r.Max.X, clip.Max.Y}
	case BottomToTop:
		return Vec{r.Min.X, clip.Min.Y}, Vec{r.Max.X, clip.Min.Y}
	default:
		return Vec{clip.Max.X, r.Min.Y}, Vec{clip.Max.X, r.Max.Y}
	}
}
