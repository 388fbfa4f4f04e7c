// Interactive compare widget: wipe, dissolve, zoom and pan
package gui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/compare"
	"photo-compare/internal/core"
	"photo-compare/internal/render"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// CompareWidget shows two images on top of each other and forwards pointer,
// wheel, keyboard and animation events to a compare.Viewer
type CompareWidget struct {
	widget.BaseWidget

	viewer   *compare.Viewer
	renderer *render.Renderer
	logger   *logrus.Logger

	raster *canvas.Raster
	ticker *fyne.Animation
	now    func() time.Time

	onZoomChanged     func(float64)
	onDissolveChanged func(bool)
}

func NewCompareWidget(viewer *compare.Viewer, renderer *render.Renderer, logger *logrus.Logger) *CompareWidget {
	cw := &CompareWidget{
		viewer:   viewer,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
	cw.raster = canvas.NewRaster(cw.draw)

	viewer.OnModeChanged(func(compare.Mode) {
		cw.stopTicker()
		cw.raster.Refresh()
	})

	cw.ExtendBaseWidget(cw)
	return cw
}

func (cw *CompareWidget) CreateRenderer() fyne.WidgetRenderer {
	return &compareWidgetRenderer{widget: cw, raster: cw.raster}
}

func (cw *CompareWidget) Viewer() *compare.Viewer { return cw.viewer }

// SetImages shows a new pair; nil returns to the placeholder.
func (cw *CompareWidget) SetImages(pair *core.ImagePair) {
	cw.viewer.SetImages(pair)
	cw.renderer.Invalidate()
	if pair == nil {
		cw.stopTicker()
	}
	cw.notifyZoom()
	cw.raster.Refresh()
}

func (cw *CompareWidget) SetDirection(d compare.Direction) {
	cw.viewer.SetDirection(d)
	cw.raster.Refresh()
}

func (cw *CompareWidget) SetCompareMode(m compare.Mode) {
	cw.viewer.SetCompareMode(m)
	cw.raster.Refresh()
}

func (cw *CompareWidget) SetDissolveSettings(hold, transition float64) {
	cw.viewer.SetDissolveSettings(hold, transition)
}

// StartDissolve begins the dissolve cycle and reports whether it started.
func (cw *CompareWidget) StartDissolve() bool {
	if !cw.viewer.StartDissolve(cw.now()) {
		return false
	}

	cw.stopTicker()
	cw.ticker = fyne.NewAnimation(time.Second, func(float32) { cw.tick() })
	cw.ticker.Curve = fyne.AnimationLinear
	cw.ticker.RepeatCount = fyne.AnimationRepeatForever
	cw.ticker.Start()

	cw.notifyDissolve(true)
	cw.raster.Refresh()
	return true
}

func (cw *CompareWidget) StopDissolve() {
	cw.viewer.StopDissolve()
	cw.stopTicker()
	cw.raster.Refresh()
}

func (cw *CompareWidget) ZoomIn() {
	if cw.viewer.ZoomIn() {
		cw.zoomChanged()
	}
}

func (cw *CompareWidget) ZoomOut() {
	if cw.viewer.ZoomOut() {
		cw.zoomChanged()
	}
}

func (cw *CompareWidget) ResetZoom() {
	if cw.viewer.ResetZoom() {
		cw.zoomChanged()
	}
}

// Snapshot renders the current view at the widget's size.
func (cw *CompareWidget) Snapshot() *image.RGBA {
	size := cw.Size()
	return cw.renderer.Render(cw.viewer.Frame(), int(size.Width), int(size.Height))
}

// OnZoomChanged registers a callback for zoom factor changes.
func (cw *CompareWidget) OnZoomChanged(fn func(float64)) {
	cw.onZoomChanged = fn
}

// OnDissolveChanged registers a callback for dissolve start and stop.
func (cw *CompareWidget) OnDissolveChanged(fn func(bool)) {
	cw.onDissolveChanged = fn
}

// Mouse event handlers
func (cw *CompareWidget) MouseIn(*desktop.MouseEvent) {}

func (cw *CompareWidget) MouseMoved(event *desktop.MouseEvent) {
	if cw.viewer.PointerMoved(toVec(event.Position)) {
		cw.raster.Refresh()
	}
}

func (cw *CompareWidget) MouseOut() {
	if cw.viewer.PointerLeft() {
		cw.raster.Refresh()
	}
}

func (cw *CompareWidget) MouseDown(event *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(cw); c != nil {
		c.Focus(cw)
	}
	cw.viewer.PointerPressed(toVec(event.Position), event.Button == desktop.MouseButtonPrimary)
}

func (cw *CompareWidget) MouseUp(*desktop.MouseEvent) {
	cw.viewer.PointerReleased()
}

func (cw *CompareWidget) Dragged(event *fyne.DragEvent) {
	if cw.viewer.PointerMoved(toVec(event.Position)) {
		cw.raster.Refresh()
	}
}

func (cw *CompareWidget) DragEnd() {
	cw.viewer.PointerReleased()
}

func (cw *CompareWidget) Scrolled(event *fyne.ScrollEvent) {
	if cw.viewer.Wheel(toVec(event.Position), float64(event.Scrolled.DY)) {
		cw.zoomChanged()
	}
}

// Cursor shows a hand while panning and a crosshair over loaded images.
func (cw *CompareWidget) Cursor() desktop.Cursor {
	switch {
	case cw.viewer.Dragging():
		return desktop.PointerCursor
	case cw.viewer.HasImages():
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

// Keyboard handlers
func (cw *CompareWidget) FocusGained() {}
func (cw *CompareWidget) FocusLost()   {}

func (cw *CompareWidget) TypedRune(r rune) {
	if cw.viewer.KeyRune(r) {
		cw.zoomChanged()
	}
}

func (cw *CompareWidget) TypedKey(*fyne.KeyEvent) {}

func (cw *CompareWidget) tick() {
	changed := cw.viewer.Tick(cw.now())
	if !cw.viewer.Dissolving() {
		cw.stopTicker()
	}
	if changed {
		cw.raster.Refresh()
	}
}

func (cw *CompareWidget) stopTicker() {
	if cw.ticker == nil {
		return
	}
	cw.ticker.Stop()
	cw.ticker = nil
	cw.notifyDissolve(false)
}

func (cw *CompareWidget) zoomChanged() {
	cw.notifyZoom()
	cw.raster.Refresh()
}

func (cw *CompareWidget) notifyZoom() {
	if cw.onZoomChanged != nil {
		cw.onZoomChanged(cw.viewer.ZoomFactor())
	}
}

func (cw *CompareWidget) notifyDissolve(running bool) {
	if cw.onDissolveChanged != nil {
		cw.onDissolveChanged(running)
	}
}

func (cw *CompareWidget) draw(w, h int) image.Image {
	cw.renderer.SetPalette(themePalette())
	return cw.renderer.Render(cw.viewer.Frame(), w, h)
}

func themePalette() render.Palette {
	return render.Palette{
		Background: theme.Color(theme.ColorNameBackground),
		Text:       theme.Color(theme.ColorNameForeground),
	}
}

func toVec(p fyne.Position) compare.Vec {
	return compare.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// compareWidgetRenderer is the renderer for the compare widget
type compareWidgetRenderer struct {
	widget *CompareWidget
	raster *canvas.Raster
}

func (r *compareWidgetRenderer) Layout(size fyne.Size) {
	r.widget.viewer.Resize(compare.Size{W: float64(size.Width), H: float64(size.Height)})
	r.raster.Resize(size)
}

func (r *compareWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(DefaultWidth, DefaultHeight)
}

func (r *compareWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *compareWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *compareWidgetRenderer) Destroy() {
	r.widget.stopTicker()
}
