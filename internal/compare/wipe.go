package compare

// WipeController tracks how much of the second image the pointer reveals
type WipeController struct {
	direction Direction
	fraction  float64
}

func NewWipeController(direction Direction) *WipeController {
	return &WipeController{direction: direction}
}

func (w *WipeController) Direction() Direction { return w.direction }

// Fraction is 0 when only the first image shows and 1 when the second image
// covers it completely.
func (w *WipeController) Fraction() float64 { return w.fraction }

// SetDirection changes the wipe direction and hides the second image again.
func (w *WipeController) SetDirection(d Direction) {
	w.direction = d
	w.fraction = 0
}

func (w *WipeController) Reset() {
	w.fraction = 0
}

// Update derives the reveal fraction from the pointer position relative to
// the image rectangle. Pointers outside the rectangle reveal nothing.
func (w *WipeController) Update(r Rect, p Vec) float64 {
	if r.Empty() || !r.Contains(p) {
		w.fraction = 0
		return w.fraction
	}

	var rel float64
	switch w.direction {
	case LeftToRight:
		rel = (p.X - r.Min.X) / r.Dx()
	case RightToLeft:
		rel = (r.Max.X - p.X) / r.Dx()
	case TopToBottom:
		rel = (p.Y - r.Min.Y) / r.Dy()
	case BottomToTop:
		rel = (r.Max.Y - p.Y) / r.Dy()
	}

	w.fraction = clamp(rel, 0, 1)
	return w.fraction
}
