// Main application window wiring the compare widget to its panels
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/compare"
	"photo-compare/internal/config"
	"photo-compare/internal/core"
	"photo-compare/internal/io"
	"photo-compare/internal/render"
)

const (
	AppName    = "Photo Compare"
	AppID      = "com.photocompare.viewer"
	AppVersion = "1.0.0"
)

// Application represents the main window and everything behind it
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	cfg    *config.Config

	// Core components
	viewer   *compare.Viewer
	renderer *render.Renderer
	loader   *io.ImageLoader

	// GUI components
	compareWidget *CompareWidget
	controlPanel  *ControlPanel
	toolbar       *Toolbar
	menuHandler   *MenuHandler
	statusLabel   *widget.Label

	mainContent *container.Split

	firstPath  string
	secondPath string
}

func NewApplication(app fyne.App, cfg *config.Config, logger *logrus.Logger) *Application {
	if cfg == nil {
		cfg = config.Default()
	}

	window := app.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.viewer = compare.NewViewer(a.cfg.ViewerOptions(a.logger))
	a.renderer = render.NewRenderer(render.DefaultPalette(), a.logger)
	a.loader = io.NewImageLoader(a.logger)
}

func (a *Application) initializeGUI() {
	a.compareWidget = NewCompareWidget(a.viewer, a.renderer, a.logger)
	a.controlPanel = NewControlPanel(a.logger)
	a.toolbar = NewToolbar()
	a.menuHandler = NewMenuHandler(a.window, a.loader, a.logger)
	a.statusLabel = widget.NewLabel("Select two images to compare")
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis

	basic := !a.viewer.Capabilities().Dissolve
	a.controlPanel.SetBasic(basic)
	a.controlPanel.SetMode(a.viewer.Mode())
	a.controlPanel.SetDirection(a.viewer.Direction())
	a.controlPanel.SetTiming(a.viewer.DissolveTiming())
	a.toolbar.SetMode(a.viewer.Mode())
}

func (a *Application) setupLayout() {
	center := container.NewBorder(
		container.NewVBox(a.toolbar.GetContainer(), widget.NewSeparator()), // top
		a.statusLabel, // bottom
		nil,           // left
		nil,           // right
		a.compareWidget,
	)

	a.mainContent = container.NewHSplit(a.controlPanel.GetContainer(), center)
	a.mainContent.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.menuHandler.SetMode(a.viewer.Mode())
	a.menuHandler.SetBasic(!a.viewer.Capabilities().Dissolve)
	a.menuHandler.RegisterShortcuts()
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.controlPanel.SetCallbacks(
		// onPickFirst
		func() {
			a.menuHandler.openImage("Select First Image", a.loadFirstFromDialog)
		},
		// onPickSecond
		func() {
			a.menuHandler.openImage("Select Second Image", a.loadSecondFromDialog)
		},
		// onModeChanged
		func(m compare.Mode) {
			a.compareWidget.SetCompareMode(m)
		},
		// onDirectionChange
		func(d compare.Direction) {
			a.compareWidget.SetDirection(d)
			a.updateStatusMessage(fmt.Sprintf("Wipe direction: %s", d))
		},
		// onTimingChanged
		func(hold, transition float64) {
			a.compareWidget.SetDissolveSettings(hold, transition)
		},
		// onDissolveToggle
		func(start bool) {
			if start {
				if !a.compareWidget.StartDissolve() {
					a.updateStatusMessage("Dissolve needs two images in dissolve mode")
				}
				return
			}
			a.compareWidget.StopDissolve()
		},
	)

	a.toolbar.SetCallbacks(a.compareWidget.ZoomIn, a.compareWidget.ZoomOut, a.compareWidget.ResetZoom)

	a.menuHandler.SetCallbacks(
		a.loadFirstFromDialog,
		a.loadSecondFromDialog,
		a.compareWidget.ZoomIn,
		a.compareWidget.ZoomOut,
		a.compareWidget.ResetZoom,
		a.compareWidget.SetCompareMode,
	)
	a.menuHandler.SetExportHandler(a.exportView)

	a.compareWidget.OnZoomChanged(func(factor float64) {
		a.toolbar.SetZoom(factor)
	})
	a.compareWidget.OnDissolveChanged(func(running bool) {
		a.controlPanel.SetDissolveRunning(running)
		if running {
			a.updateStatusMessage("Dissolving")
		}
	})

	// Every route into a mode change (panel, menu, config reload) ends up here.
	a.viewer.OnModeChanged(func(m compare.Mode) {
		a.logger.WithField("mode", m.String()).Info("Compare mode changed")
		a.controlPanel.SetMode(m)
		a.toolbar.SetMode(m)
		a.menuHandler.SetMode(m)
		a.updateStatusMessage(fmt.Sprintf("Mode: %s", m))
	})
}

func (a *Application) loadFirstFromDialog(path string) {
	if err := a.LoadFirstImage(path); err != nil {
		a.showError("Failed to Load Image", err)
	}
}

func (a *Application) loadSecondFromDialog(path string) {
	if err := a.LoadSecondImage(path); err != nil {
		a.showError("Failed to Load Image", err)
	}
}

// LoadFirstImage selects the first file and reloads the pair once both are
// known.
func (a *Application) LoadFirstImage(path string) error {
	if err := io.ValidateImageFile(path); err != nil {
		return err
	}
	a.firstPath = path
	a.controlPanel.SetFirstName(core.ImageMetadata{Path: path}.Name())
	return a.updateCompareWidget()
}

// LoadSecondImage is LoadFirstImage for the second slot.
func (a *Application) LoadSecondImage(path string) error {
	if err := io.ValidateImageFile(path); err != nil {
		return err
	}
	a.secondPath = path
	a.controlPanel.SetSecondName(core.ImageMetadata{Path: path}.Name())
	return a.updateCompareWidget()
}

// LoadImages sets both files at once, as given on the command line.
func (a *Application) LoadImages(firstPath, secondPath string) error {
	for _, p := range []string{firstPath, secondPath} {
		if err := io.ValidateImageFile(p); err != nil {
			return err
		}
	}
	a.firstPath, a.secondPath = firstPath, secondPath
	a.controlPanel.SetFirstName(core.ImageMetadata{Path: firstPath}.Name())
	a.controlPanel.SetSecondName(core.ImageMetadata{Path: secondPath}.Name())
	return a.updateCompareWidget()
}

func (a *Application) updateCompareWidget() error {
	if a.firstPath == "" || a.secondPath == "" {
		a.updateStatusMessage("Select the other image to start comparing")
		return nil
	}

	pair, err := a.loader.LoadPair(a.firstPath, a.secondPath)
	if err != nil {
		a.compareWidget.SetImages(nil)
		a.setHasImages(false)
		return err
	}

	a.compareWidget.SetImages(pair)
	a.compareWidget.SetDirection(a.controlPanel.Direction())
	a.setHasImages(true)

	first, second := pair.FirstMetadata(), pair.SecondMetadata()
	msg := fmt.Sprintf("%s (%dx%d)  |  %s (%dx%d)",
		first.Name(), first.Width, first.Height,
		second.Name(), second.Width, second.Height)
	if !pair.SameDimensions() {
		msg += "  |  sizes differ"
	}
	a.updateStatusMessage(msg)

	a.logger.WithFields(logrus.Fields{
		"first":  a.firstPath,
		"second": a.secondPath,
	}).Info("Image pair loaded")
	return nil
}

func (a *Application) setHasImages(has bool) {
	a.controlPanel.SetHasImages(has)
	a.toolbar.SetEnabled(has && a.viewer.Capabilities().Zoom)
}

// ApplyConfig pushes reloaded settings into the running window. Capabilities
// and zoom limits are fixed when the viewer is built and need a restart.
func (a *Application) ApplyConfig(cfg *config.Config) {
	a.cfg = cfg

	timing := cfg.Timing()
	a.compareWidget.SetDissolveSettings(timing.Hold.Seconds(), timing.Transition.Seconds())
	a.controlPanel.SetTiming(a.viewer.DissolveTiming())

	a.compareWidget.SetDirection(cfg.Direction())
	a.controlPanel.SetDirection(cfg.Direction())

	a.compareWidget.SetCompareMode(cfg.Mode())

	a.logger.Info("Settings applied")
	a.updateStatusMessage("Settings reloaded")
}

func (a *Application) exportView(path string) error {
	if !a.viewer.HasImages() {
		return fmt.Errorf("nothing to export: select two images first")
	}
	if err := a.loader.SaveImage(a.compareWidget.Snapshot(), path); err != nil {
		return err
	}
	a.updateStatusMessage(fmt.Sprintf("Exported: %s", path))
	return nil
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("%s: %v", title, err))
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.compareWidget.StopDissolve()
}
