package compare

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name   string
		src    Size
		bounds Size
		want   Size
	}{
		{"wide into landscape", Size{200, 100}, Size{800, 600}, Size{800, 400}},
		{"tall into landscape", Size{100, 200}, Size{800, 600}, Size{300, 600}},
		{"same aspect", Size{400, 300}, Size{800, 600}, Size{800, 600}},
		{"downscale", Size{4000, 3000}, Size{800, 600}, Size{800, 600}},
		{"tiny result keeps one unit", Size{10000, 1}, Size{100, 100}, Size{100, 1}},
		{"empty source", Size{}, Size{800, 600}, Size{}},
		{"empty bounds", Size{200, 100}, Size{0, 600}, Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitSize(tt.src, tt.bounds))
		})
	}
}

func TestComputeLayout(t *testing.T) {
	viewport := Size{800, 600}

	l := ComputeLayout(viewport, Size{200, 100}, 1, Vec{})
	assert.True(t, l.Valid())
	assert.Equal(t, Size{800, 400}, l.Zoomed)
	assert.Equal(t, Vec{0, 100}, l.Origin)

	l = ComputeLayout(viewport, Size{200, 100}, 1.5, Vec{})
	assert.Equal(t, Size{1200, 600}, l.Zoomed)
	assert.Equal(t, Vec{-200, 0}, l.Origin)

	l = ComputeLayout(viewport, Size{200, 100}, 1, Vec{30, -10})
	assert.Equal(t, Vec{30, 90}, l.Origin)
	assert.Equal(t, Vec{70, 20}, l.ToImage(Vec{100, 110}))

	assert.False(t, ComputeLayout(Size{}, Size{200, 100}, 1, Vec{}).Valid())
	assert.False(t, ComputeLayout(viewport, Size{}, 1, Vec{}).Valid())
}

func TestComputeCompanionLayout(t *testing.T) {
	first := ComputeLayout(Size{800, 600}, Size{200, 100}, 1, Vec{})

	second := ComputeCompanionLayout(first, Size{100, 100}, Vec{})
	assert.Equal(t, Size{400, 400}, second.Zoomed)
	assert.Equal(t, Vec{200, 100}, second.Origin)

	// Same aspect ratio shares the exact footprint.
	second = ComputeCompanionLayout(first, Size{400, 200}, Vec{})
	assert.Equal(t, first.Rect(), second.Rect())

	assert.False(t, ComputeCompanionLayout(Layout{}, Size{100, 100}, Vec{}).Valid())
}

func TestRevealClip(t *testing.T) {
	r := Rect{Min: Vec{0, 100}, Max: Vec{800, 500}}

	tests := []struct {
		dir      Direction
		fraction float64
		want     Rect
	}{
		{LeftToRight, 0.25, Rect{Vec{0, 100}, Vec{200, 500}}},
		{RightToLeft, 0.25, Rect{Vec{600, 100}, Vec{800, 500}}},
		{TopToBottom, 0.5, Rect{Vec{0, 100}, Vec{800, 300}}},
		{BottomToTop, 0.5, Rect{Vec{0, 300}, Vec{800, 500}}},
		{LeftToRight, 0, Rect{Vec{0, 100}, Vec{0, 500}}},
		{LeftToRight, 1, r},
		{LeftToRight, 2, r},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, RevealClip(r, tt.dir, tt.fraction))
		})
	}
}

func TestRevealBoundary(t *testing.T) {
	r := Rect{Min: Vec{0, 100}, Max: Vec{800, 500}}

	a, b := RevealBoundary(r, LeftToRight, 0.25)
	assert.Equal(t, Vec{200, 100}, a)
	assert.Equal(t, Vec{200, 500}, b)

	a, b = RevealBoundary(r, BottomToTop, 0.5)
	assert.Equal(t, Vec{0, 300}, a)
	assert.Equal(t, Vec{800, 300}, b)
}

func TestImageSize(t *testing.T) {
	assert.Equal(t, Size{}, ImageSize(nil))
	assert.Equal(t, Size{30, 20}, ImageSize(image.NewRGBA(image.Rect(5, 5, 35, 25))))
}
