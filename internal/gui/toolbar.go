// Top toolbar with zoom controls and the live zoom level
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photo-compare/internal/compare"
)

type Toolbar struct {
	container *fyne.Container

	zoomInBtn      *widget.Button
	zoomOutBtn     *widget.Button
	zoomResetBtn   *widget.Button
	zoomPercentage *widget.Label
	modeLabel      *widget.Label

	onZoomIn    func()
	onZoomOut   func()
	onZoomReset func()
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.initializeUI()
	return toolbar
}

func (tb *Toolbar) initializeUI() {
	tb.zoomOutBtn = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() {
		if tb.onZoomOut != nil {
			tb.onZoomOut()
		}
	})
	tb.zoomInBtn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() {
		if tb.onZoomIn != nil {
			tb.onZoomIn()
		}
	})
	tb.zoomResetBtn = widget.NewButtonWithIcon("", theme.ZoomFitIcon(), func() {
		if tb.onZoomReset != nil {
			tb.onZoomReset()
		}
	})
	tb.zoomPercentage = widget.NewLabel("100%")

	tb.modeLabel = widget.NewLabelWithStyle(compare.Wipe.String(), fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})

	zoomSection := container.NewHBox(
		widget.NewLabel("Zoom:"),
		tb.zoomOutBtn,
		tb.zoomPercentage,
		tb.zoomInBtn,
		tb.zoomResetBtn,
	)

	tb.container = container.NewBorder(
		nil, nil,
		zoomSection,  // left
		tb.modeLabel, // right
	)

	tb.SetEnabled(false)
}

// SetZoom updates the percentage label.
func (tb *Toolbar) SetZoom(factor float64) {
	tb.zoomPercentage.SetText(fmt.Sprintf("%d%%", compare.ZoomPercent(factor)))
}

func (tb *Toolbar) SetMode(m compare.Mode) {
	tb.modeLabel.SetText(m.String())
}

// SetEnabled toggles the zoom buttons, which only work with images loaded.
func (tb *Toolbar) SetEnabled(enabled bool) {
	for _, b := range []*widget.Button{tb.zoomInBtn, tb.zoomOutBtn, tb.zoomResetBtn} {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return tb.container
}

func (tb *Toolbar) SetCallbacks(onZoomIn, onZoomOut, onZoomReset func()) {
	tb.onZoomIn = onZoomIn
	tb.onZoomOut = onZoomOut
	tb.onZoomReset = onZoomReset
}
