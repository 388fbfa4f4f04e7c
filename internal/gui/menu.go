// Menu handler for application actions
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/compare"
	"photo-compare/internal/io"
)

// MenuHandler builds the main menu and the file dialogs behind it
type MenuHandler struct {
	window fyne.Window
	loader *io.ImageLoader
	logger *logrus.Logger

	mainMenu     *fyne.MainMenu
	wipeItem     *fyne.MenuItem
	dissolveItem *fyne.MenuItem

	onOpenFirst  func(string)
	onOpenSecond func(string)
	onZoomIn     func()
	onZoomOut    func()
	onZoomReset  func()
	onMode       func(compare.Mode)
	onExport     func(string) error
}

func NewMenuHandler(window fyne.Window, loader *io.ImageLoader, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		loader: loader,
		logger: logger,
	}
}

var (
	zoomInShortcut    = &desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierShortcutDefault}
	zoomOutShortcut   = &desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierShortcutDefault}
	zoomResetShortcut = &desktop.CustomShortcut{KeyName: fyne.Key0, Modifier: fyne.KeyModifierShortcutDefault}
)

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	if mh.mainMenu != nil {
		return mh.mainMenu
	}

	quitItem := fyne.NewMenuItem("Quit", func() {
		mh.window.Close()
	})
	quitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open First Image...", func() { mh.openImage("Select First Image", mh.onOpenFirst) }),
		fyne.NewMenuItem("Open Second Image...", func() { mh.openImage("Select Second Image", mh.onOpenSecond) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export View...", mh.exportView),
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	zoomIn := fyne.NewMenuItem("Zoom In", func() { call(mh.onZoomIn) })
	zoomIn.Shortcut = zoomInShortcut
	zoomOut := fyne.NewMenuItem("Zoom Out", func() { call(mh.onZoomOut) })
	zoomOut.Shortcut = zoomOutShortcut
	zoomReset := fyne.NewMenuItem("Reset Zoom", func() { call(mh.onZoomReset) })
	zoomReset.Shortcut = zoomResetShortcut

	mh.wipeItem = fyne.NewMenuItem("Wipe Mode", func() { mh.selectMode(compare.Wipe) })
	mh.wipeItem.Checked = true
	mh.dissolveItem = fyne.NewMenuItem("Dissolve Mode", func() { mh.selectMode(compare.Dissolve) })

	viewMenu := fyne.NewMenu("View",
		zoomIn, zoomOut, zoomReset,
		fyne.NewMenuItemSeparator(),
		mh.wipeItem, mh.dissolveItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	mh.mainMenu = fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
	return mh.mainMenu
}

// RegisterShortcuts binds the zoom shortcuts on the window canvas as well, so
// they work on platforms without a native menu bar.
func (mh *MenuHandler) RegisterShortcuts() {
	c := mh.window.Canvas()
	c.AddShortcut(zoomInShortcut, func(fyne.Shortcut) { call(mh.onZoomIn) })
	c.AddShortcut(zoomOutShortcut, func(fyne.Shortcut) { call(mh.onZoomOut) })
	c.AddShortcut(zoomResetShortcut, func(fyne.Shortcut) { call(mh.onZoomReset) })
}

// SetMode updates the check marks of the mode items.
func (mh *MenuHandler) SetMode(m compare.Mode) {
	if mh.wipeItem == nil {
		return
	}
	mh.wipeItem.Checked = m == compare.Wipe
	mh.dissolveItem.Checked = m == compare.Dissolve
	mh.mainMenu.Refresh()
}

// SetBasic disables the menu entries a wipe-only viewer cannot use.
func (mh *MenuHandler) SetBasic(basic bool) {
	if mh.dissolveItem == nil {
		return
	}
	mh.dissolveItem.Disabled = basic
	mh.mainMenu.Refresh()
}

func (mh *MenuHandler) selectMode(m compare.Mode) {
	if mh.onMode != nil {
		mh.onMode(m)
	}
}

func (mh *MenuHandler) openImage(title string, onChosen func(string)) {
	mh.logger.WithField("title", title).Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := io.ValidateImageFile(path); err != nil {
			mh.showError("Invalid Image", err)
			return
		}

		mh.logger.WithField("filepath", path).Info("Image selected")
		if onChosen != nil {
			onChosen(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(io.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) exportView() {
	if mh.onExport == nil {
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		mh.logger.WithField("filepath", path).Info("Exporting view")
		if err := mh.onExport(path); err != nil {
			mh.showError("Failed to Export View", err)
		}
	}, mh.window)

	fileDialog.SetFileName("comparison.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabelWithStyle(fmt.Sprintf("Photo Compare %s", AppVersion), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewLabel("Compare two photos with a mouse-driven wipe"),
		widget.NewLabel("or a timed dissolve, with zoom and pan."),
		widget.NewSeparator(),
		widget.NewLabel("Mouse wheel or +/- to zoom, 0 to reset, drag to pan."),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 250))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(
	onOpenFirst, onOpenSecond func(string),
	onZoomIn, onZoomOut, onZoomReset func(),
	onMode func(compare.Mode),
) {
	mh.onOpenFirst = onOpenFirst
	mh.onOpenSecond = onOpenSecond
	mh.onZoomIn = onZoomIn
	mh.onZoomOut = onZoomOut
	mh.onZoomReset = onZoomReset
	mh.onMode = onMode
}

// SetExportHandler sets the function that writes the current view to a file.
func (mh *MenuHandler) SetExportHandler(fn func(path string) error) {
	mh.onExport = fn
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
