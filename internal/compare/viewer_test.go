package compare

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-compare/internal/core"
)

func newPair(t *testing.T, w1, h1, w2, h2 int) *core.ImagePair {
	t.Helper()
	pair, err := core.NewImagePair(
		image.NewRGBA(image.Rect(0, 0, w1, h1)),
		image.NewRGBA(image.Rect(0, 0, w2, h2)),
		core.ImageMetadata{Path: "before.png"},
		core.ImageMetadata{Path: "after.png"},
	)
	require.NoError(t, err)
	return pair
}

func newTestViewer(t *testing.T, opts Options) *Viewer {
	t.Helper()
	v := NewViewer(opts)
	v.Resize(Size{800, 600})
	return v
}

func TestViewerIgnoresInputWithoutImages(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())

	assert.False(t, v.PointerMoved(Vec{100, 100}))
	assert.False(t, v.Wheel(Vec{100, 100}, 1))
	assert.False(t, v.ZoomIn())
	assert.False(t, v.ResetZoom())
	assert.False(t, v.KeyRune('+'))
	assert.False(t, v.StartDissolve(time.Now()))

	v.PointerPressed(Vec{10, 10}, true)
	assert.False(t, v.Dragging())

	f := v.Frame()
	assert.False(t, f.HasImages)
	assert.Equal(t, 1.0, f.Zoom)
	assert.Equal(t, Vec{}, v.MapToImage(Vec{10, 10}))
}

func TestViewerWipeReveal(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	assert.True(t, v.PointerMoved(Vec{200, 300}))
	assert.InDelta(t, 0.25, v.Frame().Reveal, 1e-9)

	// Same position, same fraction.
	assert.False(t, v.PointerMoved(Vec{200, 300}))

	assert.True(t, v.PointerLeft())
	assert.Equal(t, 0.0, v.Frame().Reveal)
}

func TestViewerDirectionChangeResetsReveal(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))
	v.PointerMoved(Vec{400, 300})

	v.SetDirection(BottomToTop)
	f := v.Frame()
	assert.Equal(t, BottomToTop, f.Direction)
	assert.Equal(t, 0.0, f.Reveal)

	v.PointerMoved(Vec{400, 450})
	assert.InDelta(t, 0.25, v.Frame().Reveal, 1e-9)
}

func TestViewerModeSwitch(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	var notified []Mode
	v.OnModeChanged(func(m Mode) { notified = append(notified, m) })

	v.PointerMoved(Vec{400, 300})
	assert.True(t, v.SetCompareMode(Dissolve))
	assert.False(t, v.SetCompareMode(Dissolve))
	assert.Equal(t, []Mode{Dissolve}, notified)
	assert.Equal(t, 0.0, v.Frame().Reveal)

	// The wipe does not track the pointer in dissolve mode.
	assert.False(t, v.PointerMoved(Vec{600, 300}))
	assert.Equal(t, 0.0, v.Frame().Reveal)
}

func TestViewerDissolve(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	assert.False(t, v.StartDissolve(t0), "wipe mode cannot dissolve")

	v.SetCompareMode(Dissolve)
	v.SetDissolveSettings(1, 0.5)
	require.True(t, v.StartDissolve(t0))
	assert.True(t, v.Dissolving())

	assert.True(t, v.Tick(at(t0, 1.25)))
	f := v.Frame()
	assert.True(t, f.Dissolving)
	assert.InDelta(t, 0.5, f.Opacity, 1e-6)
	assert.Equal(t, TransitioningToSecond, v.DissolvePhase())

	v.SetCompareMode(Wipe)
	f = v.Frame()
	assert.False(t, f.Dissolving)
	assert.Equal(t, 0.0, f.Opacity)
}

func TestViewerClearingImagesStopsDissolve(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))
	v.SetCompareMode(Dissolve)
	v.StartDissolve(t0)

	v.SetImages(nil)
	assert.False(t, v.Dissolving())
	assert.False(t, v.Tick(at(t0, 5)))
}

func TestViewerDragPansInsteadOfRevealing(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	v.PointerPressed(Vec{100, 100}, true)
	assert.True(t, v.Dragging())
	assert.True(t, v.PointerMoved(Vec{150, 120}))
	assert.Equal(t, Vec{50, 20}, v.Pan())
	assert.Equal(t, 0.0, v.Frame().Reveal)

	v.PointerReleased()
	assert.False(t, v.Dragging())

	v.PointerMoved(Vec{250, 300})
	assert.InDelta(t, 0.25, v.Frame().Reveal, 1e-9)
	assert.Equal(t, Vec{200, 280}, v.MapToImage(Vec{250, 300}))
}

func TestViewerSecondaryButtonDoesNotDrag(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	v.PointerPressed(Vec{100, 100}, false)
	assert.False(t, v.Dragging())
}

func TestViewerKeyboardZoom(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 800, 600))

	assert.True(t, v.KeyRune('='))
	assert.InDelta(t, 1.2, v.ZoomFactor(), 1e-9)
	assert.True(t, v.KeyRune('+'))
	assert.InDelta(t, 1.44, v.ZoomFactor(), 1e-9)
	assert.True(t, v.KeyRune('-'))
	assert.InDelta(t, 1.2, v.ZoomFactor(), 1e-9)

	v.Wheel(Vec{700, 500}, 1)
	assert.NotEqual(t, Vec{}, v.Pan())

	assert.True(t, v.KeyRune('0'))
	assert.Equal(t, 1.0, v.ZoomFactor())
	assert.Equal(t, Vec{}, v.Pan())

	assert.False(t, v.KeyRune('x'))
}

func TestViewerBasicCapabilities(t *testing.T) {
	opts := DefaultOptions()
	opts.Capabilities = BasicCapabilities()
	opts.Mode = Dissolve
	v := newTestViewer(t, opts)
	v.SetImages(newPair(t, 800, 600, 800, 600))

	assert.Equal(t, Wipe, v.Mode())
	assert.False(t, v.SetCompareMode(Dissolve))
	assert.False(t, v.Wheel(Vec{400, 300}, 1))
	assert.False(t, v.KeyRune('+'))
	assert.Equal(t, 1.0, v.ZoomFactor())

	v.PointerPressed(Vec{100, 100}, true)
	assert.False(t, v.Dragging())
	assert.True(t, v.PointerMoved(Vec{400, 300}))
	assert.InDelta(t, 0.5, v.Frame().Reveal, 1e-9)
}

func TestViewerFrameLayouts(t *testing.T) {
	v := newTestViewer(t, DefaultOptions())
	v.SetImages(newPair(t, 800, 600, 400, 400))

	f := v.Frame()
	require.True(t, f.HasImages)
	assert.Equal(t, Size{800, 600}, f.Viewport)
	assert.Equal(t, Size{800, 600}, f.FirstLayout.Zoomed)
	assert.Equal(t, Size{600, 600}, f.SecondLayout.Zoomed)
	assert.Equal(t, Vec{100, 0}, f.SecondLayout.Origin)
	assert.NotNil(t, f.First)
	assert.NotNil(t, f.Second)
}
