package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeUpdate(t *testing.T) {
	r := RectAt(Vec{}, Size{400, 300})

	tests := []struct {
		name string
		dir  Direction
		p    Vec
		want float64
	}{
		{"left to right quarter", LeftToRight, Vec{100, 150}, 0.25},
		{"right to left quarter", RightToLeft, Vec{100, 150}, 0.75},
		{"top to bottom quarter", TopToBottom, Vec{200, 75}, 0.25},
		{"bottom to top quarter", BottomToTop, Vec{200, 75}, 0.75},
		{"leading edge", LeftToRight, Vec{0, 150}, 0},
		{"outside left", LeftToRight, Vec{-1, 150}, 0},
		{"outside below", TopToBottom, Vec{200, 301}, 0},
		{"trailing edge is outside", LeftToRight, Vec{400, 150}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWipeController(tt.dir)
			assert.InDelta(t, tt.want, w.Update(r, tt.p), 1e-9)
			assert.InDelta(t, tt.want, w.Fraction(), 1e-9)
		})
	}
}

func TestWipeLeavingRectHidesSecondImage(t *testing.T) {
	r := RectAt(Vec{}, Size{400, 300})
	w := NewWipeController(LeftToRight)

	assert.InDelta(t, 0.25, w.Update(r, Vec{100, 100}), 1e-9)
	assert.Equal(t, 0.0, w.Update(r, Vec{500, 100}))
}

func TestWipeSetDirectionResets(t *testing.T) {
	r := RectAt(Vec{}, Size{400, 300})
	w := NewWipeController(LeftToRight)
	w.Update(r, Vec{300, 100})

	w.SetDirection(TopToBottom)
	assert.Equal(t, TopToBottom, w.Direction())
	assert.Equal(t, 0.0, w.Fraction())
}

func TestWipeEmptyRect(t *testing.T) {
	w := NewWipeController(LeftToRight)
	assert.Equal(t, 0.0, w.Update(Rect{}, Vec{}))
}
