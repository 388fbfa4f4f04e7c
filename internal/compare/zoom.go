package compare

import "math"

const (
	DefaultMinZoom  = 0.1
	DefaultMaxZoom  = 10.0
	DefaultZoomStep = 1.2
)

// ZoomLimits bounds the zoom factor and sets the multiplicative step
type ZoomLimits struct {
	Min  float64
	Max  float64
	Step float64
}

func DefaultZoomLimits() ZoomLimits {
	return ZoomLimits{Min: DefaultMinZoom, Max: DefaultMaxZoom, Step: DefaultZoomStep}
}

// Normalize replaces unusable limits with the defaults instead of failing.
func (l ZoomLimits) Normalize() ZoomLimits {
	def := DefaultZoomLimits()
	if l.Min <= 0 {
		l.Min = def.Min
	}
	if l.Max <= 0 {
		l.Max = def.Max
	}
	if l.Min > 1 {
		l.Min = 1
	}
	if l.Max < 1 {
		l.Max = 1
	}
	if l.Step <= 1 {
		l.Step = def.Step
	}
	return l
}

// ZoomPercent rounds a zoom factor to the whole percentage shown to users.
func ZoomPercent(factor float64) int {
	return int(math.Round(factor * 100))
}

// ZoomPanController owns the zoom factor and pan offset, and the drag gesture
// that moves the pan.
type ZoomPanController struct {
	limits ZoomLimits
	factor float64
	pan    Vec

	dragging bool
	lastDrag Vec
}

func NewZoomPanController(limits ZoomLimits) *ZoomPanController {
	return &ZoomPanController{
		limits: limits.Normalize(),
		factor: 1.0,
	}
}

func (z *ZoomPanController) Factor() float64    { return z.factor }
func (z *ZoomPanController) Pan() Vec           { return z.pan }
func (z *ZoomPanController) Limits() ZoomLimits { return z.limits }

// ZoomIn multiplies the zoom by one step. Steps that would leave the allowed
// range are ignored.
func (z *ZoomPanController) ZoomIn() bool {
	next := z.factor * z.limits.Step
	if next > z.limits.Max {
		return false
	}
	z.factor = next
	return true
}

// ZoomOut divides the zoom by one step, ignoring steps below the minimum.
func (z *ZoomPanController) ZoomOut() bool {
	next := z.factor / z.limits.Step
	if next < z.limits.Min {
		return false
	}
	z.factor = next
	return true
}

// Reset restores 100% zoom and centers the image.
func (z *ZoomPanController) Reset() {
	z.factor = 1.0
	z.pan = Vec{}
}

// Wheel zooms one step in (up) or out around the pointer so that the image
// point under p stays under p. The new factor is clamped into range.
func (z *ZoomPanController) Wheel(viewport Size, p Vec, up bool) bool {
	next := z.factor / z.limits.Step
	if up {
		next = z.factor * z.limits.Step
	}
	next = clamp(next, z.limits.Min, z.limits.Max)
	if next == z.factor {
		return false
	}

	adjusted := p.Sub(viewport.Center()).Sub(z.pan)
	ratio := next / z.factor
	z.factor = next
	z.pan = z.pan.Add(adjusted.Sub(adjusted.Scale(ratio)))
	return true
}

// BeginDrag starts a pan gesture at p.
func (z *ZoomPanController) BeginDrag(p Vec) {
	z.dragging = true
	z.lastDrag = p
}

// DragTo pans by the distance moved since the previous drag position.
// Delivering the same position twice pans only once.
func (z *ZoomPanController) DragTo(p Vec) bool {
	if !z.dragging {
		return false
	}
	delta := p.Sub(z.lastDrag)
	z.lastDrag = p
	if delta == (Vec{}) {
		return false
	}
	z.pan = z.pan.Add(delta)
	return true
}

func (z *ZoomPanController) EndDrag() {
	z.dragging = false
}

func (z *ZoomPanController) Dragging() bool { return z.dragging }
