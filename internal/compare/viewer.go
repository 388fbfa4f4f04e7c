// Viewer: the single reactor that owns all comparison state
package compare

import (
	"image"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"photo-compare/internal/core"
)

// Capabilities switches the optional behaviour of a viewer. The basic
// viewer only wipes; the full viewer adds zoom, pan and dissolve.
type Capabilities struct {
	Zoom     bool
	Pan      bool
	Dissolve bool
}

func FullCapabilities() Capabilities {
	return Capabilities{Zoom: true, Pan: true, Dissolve: true}
}

func BasicCapabilities() Capabilities {
	return Capabilities{}
}

// Options configures a new Viewer
type Options struct {
	Capabilities Capabilities
	Direction    Direction
	Mode         Mode
	Timing       DissolveTiming
	Zoom         ZoomLimits
	Logger       *logrus.Logger
}

// DefaultOptions returns a fully featured wipe viewer with default timings.
func DefaultOptions() Options {
	return Options{
		Capabilities: FullCapabilities(),
		Direction:    LeftToRight,
		Mode:         Wipe,
		Timing:       DefaultDissolveTiming(),
		Zoom:         DefaultZoomLimits(),
	}
}

// Frame is an immutable snapshot of everything the renderer needs
type Frame struct {
	Viewport     Size
	HasImages    bool
	First        image.Image
	Second       image.Image
	FirstLayout  Layout
	SecondLayout Layout
	Mode         Mode
	Direction    Direction
	Reveal       float64
	Opacity      float64
	Zoom         float64
	Dissolving   bool
}

// Viewer receives input events and clock ticks, mutates the wipe, zoom/pan
// and dissolve controllers, and hands out Frames for rendering. Every method
// is atomic with respect to Frame; callers are expected to deliver events
// from a single UI goroutine.
type Viewer struct {
	mu     sync.Mutex
	logger *logrus.Logger
	caps   Capabilities

	pair     *core.ImagePair
	mode     Mode
	viewport Size

	wipe     *WipeController
	zoom     *ZoomPanController
	dissolve *DissolveController

	modeListeners []func(Mode)
}

func NewViewer(opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	mode := opts.Mode
	if mode == Dissolve && !opts.Capabilities.Dissolve {
		mode = Wipe
	}

	return &Viewer{
		logger:   logger,
		caps:     opts.Capabilities,
		mode:     mode,
		wipe:     NewWipeController(opts.Direction),
		zoom:     NewZoomPanController(opts.Zoom),
		dissolve: NewDissolveController(opts.Timing),
	}
}

func (v *Viewer) Capabilities() Capabilities {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.caps
}

// OnModeChanged registers fn to be called after every compare-mode change.
func (v *Viewer) OnModeChanged(fn func(Mode)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modeListeners = append(v.modeListeners, fn)
}

// SetImages replaces the image pair. A nil pair puts the viewer into the
// "no images" state in which every interaction is ignored.
func (v *Viewer) SetImages(pair *core.ImagePair) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pair = pair
	v.wipe.Reset()
	v.zoom.EndDrag()
	if pair == nil {
		v.dissolve.Stop()
		v.logger.Debug("Viewer cleared, no images")
		return
	}

	v.logger.WithFields(logrus.Fields{
		"first":  pair.FirstMetadata().Name(),
		"second": pair.SecondMetadata().Name(),
	}).Debug("Viewer images replaced")
}

func (v *Viewer) HasImages() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pair != nil
}

// Images returns the current pair, or nil.
func (v *Viewer) Images() *core.ImagePair {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pair
}

// Resize records the viewport size used for layout and pointer mapping.
func (v *Viewer) Resize(s Size) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport = s
}

func (v *Viewer) Viewport() Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

func (v *Viewer) SetDirection(d Direction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.wipe.SetDirection(d)
	v.logger.WithField("direction", d.String()).Debug("Wipe direction changed")
}

func (v *Viewer) Direction() Direction {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.wipe.Direction()
}

// SetCompareMode switches between wipe and dissolve. Any mode switch resets
// the reveal fraction and the opacity and halts a running dissolve.
func (v *Viewer) SetCompareMode(m Mode) bool {
	v.mu.Lock()
	if m == Dissolve && !v.caps.Dissolve {
		v.mu.Unlock()
		return false
	}
	if v.mode == m {
		v.mu.Unlock()
		return false
	}

	v.mode = m
	v.dissolve.Stop()
	v.wipe.Reset()
	listeners := append([]func(Mode){}, v.modeListeners...)
	v.logger.WithField("mode", m.String()).Info("Compare mode changed")
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(m)
	}
	return true
}

func (v *Viewer) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// SetDissolveSettings takes hold and transition lengths in seconds. Values
// below the minimum are raised silently; a running cycle picks them up at the
// next phase boundary.
func (v *Viewer) SetDissolveSettings(hold, transition float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dissolve.SetTiming(TimingFromSeconds(hold, transition))
	t := v.dissolve.Timing()
	v.logger.WithFields(logrus.Fields{
		"hold":       t.Hold.String(),
		"transition": t.Transition.String(),
	}).Debug("Dissolve settings changed")
}

func (v *Viewer) DissolveTiming() DissolveTiming {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dissolve.Timing()
}

// StartDissolve begins the dissolve cycle. It requires images and Dissolve
// mode and reports whether the cycle started.
func (v *Viewer) StartDissolve(now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || v.mode != Dissolve {
		return false
	}
	v.dissolve.Start(now)
	v.logger.Info("Dissolve started")
	return true
}

// StopDissolve halts the cycle from any phase. Safe to call when idle.
func (v *Viewer) StopDissolve() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dissolve.Running() {
		v.logger.Info("Dissolve stopped")
	}
	v.dissolve.Stop()
}

func (v *Viewer) Dissolving() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dissolve.Running()
}

func (v *Viewer) DissolvePhase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dissolve.Phase()
}

// Tick advances the dissolve clock and reports whether a redraw is needed.
func (v *Viewer) Tick(now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil {
		return false
	}
	return v.dissolve.Advance(now)
}

// PointerMoved either continues a pan drag or updates the wipe reveal.
func (v *Viewer) PointerMoved(p Vec) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil {
		return false
	}
	if v.zoom.Dragging() {
		return v.zoom.DragTo(p)
	}
	if v.mode != Wipe {
		return false
	}

	before := v.wipe.Fraction()
	first, _ := v.layouts()
	return v.wipe.Update(first.Rect(), p) != before
}

// PointerPressed starts a pan drag when the primary button goes down.
func (v *Viewer) PointerPressed(p Vec, primary bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || !primary || !v.caps.Pan {
		return
	}
	v.zoom.BeginDrag(p)
}

// PointerReleased ends a pan drag.
func (v *Viewer) PointerReleased() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom.EndDrag()
}

// PointerLeft hides the second image and abandons any drag.
func (v *Viewer) PointerLeft() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	changed := v.wipe.Fraction() != 0 || v.zoom.Dragging()
	v.wipe.Reset()
	v.zoom.EndDrag()
	return changed
}

// Dragging reports whether a pan gesture is in progress.
func (v *Viewer) Dragging() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom.Dragging()
}

// Wheel zooms around p; positive dy zooms in, negative zooms out.
func (v *Viewer) Wheel(p Vec, dy float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || !v.caps.Zoom || dy == 0 {
		return false
	}
	return v.zoom.Wheel(v.viewport, p, dy > 0)
}

func (v *Viewer) ZoomIn() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || !v.caps.Zoom {
		return false
	}
	return v.zoom.ZoomIn()
}

func (v *Viewer) ZoomOut() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || !v.caps.Zoom {
		return false
	}
	return v.zoom.ZoomOut()
}

func (v *Viewer) ResetZoom() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil || !v.caps.Zoom {
		return false
	}
	v.zoom.Reset()
	return true
}

func (v *Viewer) ZoomFactor() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom.Factor()
}

func (v *Viewer) Pan() Vec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom.Pan()
}

// KeyRune maps the zoom keyboard shortcuts: + or = zooms in, - zooms out and
// 0 resets. It reports whether the rune was handled.
func (v *Viewer) KeyRune(r rune) bool {
	switch r {
	case '+', '=':
		v.ZoomIn()
	case '-':
		v.ZoomOut()
	case '0':
		v.ResetZoom()
	default:
		return false
	}
	return v.HasImages() && v.Capabilities().Zoom
}

// MapToImage converts a viewport point into first-image space.
func (v *Viewer) MapToImage(p Vec) Vec {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.pair == nil {
		return Vec{}
	}
	first, _ := v.layouts()
	return first.ToImage(p)
}

// Frame snapshots the state for one render.
func (v *Viewer) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := Frame{
		Viewport:   v.viewport,
		Mode:       v.mode,
		Direction:  v.wipe.Direction(),
		Reveal:     v.wipe.Fraction(),
		Opacity:    v.dissolve.Opacity(),
		Zoom:       v.zoom.Factor(),
		Dissolving: v.dissolve.Running(),
	}
	if v.pair == nil {
		return f
	}

	f.HasImages = true
	f.First = v.pair.First()
	f.Second = v.pair.Second()
	f.FirstLayout, f.SecondLayout = v.layouts()
	return f
}

// layouts must be called with mu held.
func (v *Viewer) layouts() (Layout, Layout) {
	if v.pair == nil {
		return Layout{Viewport: v.viewport}, Layout{Viewport: v.viewport}
	}
	pan := v.zoom.Pan()
	first := ComputeLayout(v.viewport, ImageSize(v.pair.First()), v.zoom.Factor(), pan)
	second := ComputeCompanionLayout(first, ImageSize(v.pair.Second()), pan)
	return first, second
}
