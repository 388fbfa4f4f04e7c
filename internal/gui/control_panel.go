// Left-hand control panel: image pickers, compare mode and dissolve timing
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/compare"
)

const (
	noImageText     = "No image selected"
	minPhaseSeconds = 0.1
	maxPhaseSeconds = 10.0
)

var modeOptions = []string{compare.Wipe.String(), compare.Dissolve.String()}

type ControlPanel struct {
	logger *logrus.Logger

	container *fyne.Container

	// Image pickers
	firstBtn    *widget.Button
	secondBtn   *widget.Button
	firstLabel  *widget.Label
	secondLabel *widget.Label

	// Compare controls
	modeRadio       *widget.RadioGroup
	directionSelect *widget.Select

	// Dissolve controls
	holdSlider       *widget.Slider
	holdValue        *widget.Label
	transitionSlider *widget.Slider
	transitionValue  *widget.Label
	dissolveBtn      *widget.Button
	dissolveCard     *widget.Card

	hasImages bool
	mode      compare.Mode
	running   bool

	// Callbacks
	onPickFirst       func()
	onPickSecond      func()
	onModeChanged     func(compare.Mode)
	onDirectionChange func(compare.Direction)
	onTimingChanged   func(hold, transition float64)
	onDissolveToggle  func(start bool)
}

func NewControlPanel(logger *logrus.Logger) *ControlPanel {
	panel := &ControlPanel{logger: logger}
	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.firstBtn = widget.NewButtonWithIcon("Select First Image", theme.FolderOpenIcon(), func() {
		if cp.onPickFirst != nil {
			cp.onPickFirst()
		}
	})
	cp.secondBtn = widget.NewButtonWithIcon("Select Second Image", theme.FolderOpenIcon(), func() {
		if cp.onPickSecond != nil {
			cp.onPickSecond()
		}
	})
	cp.firstLabel = widget.NewLabel(noImageText)
	cp.firstLabel.Truncation = fyne.TextTruncateEllipsis
	cp.secondLabel = widget.NewLabel(noImageText)
	cp.secondLabel.Truncation = fyne.TextTruncateEllipsis

	imagesCard := widget.NewCard("Images", "", container.NewVBox(
		cp.firstBtn, cp.firstLabel,
		widget.NewSeparator(),
		cp.secondBtn, cp.secondLabel,
	))

	cp.modeRadio = widget.NewRadioGroup(modeOptions, nil)
	cp.modeRadio.Horizontal = true
	cp.modeRadio.Required = true

	directionNames := make([]string, 0, len(compare.Directions()))
	for _, d := range compare.Directions() {
		directionNames = append(directionNames, d.String())
	}
	cp.directionSelect = widget.NewSelect(directionNames, nil)

	compareCard := widget.NewCard("Compare", "", container.NewVBox(
		widget.NewLabel("Mode:"),
		cp.modeRadio,
		widget.NewLabel("Wipe direction:"),
		cp.directionSelect,
	))

	cp.holdSlider, cp.holdValue = newSecondsSlider(compare.DefaultHoldDuration.Seconds())
	cp.transitionSlider, cp.transitionValue = newSecondsSlider(compare.DefaultTransitionDuration.Seconds())

	cp.dissolveBtn = widget.NewButtonWithIcon("Start Dissolve", theme.MediaPlayIcon(), func() {
		if cp.onDissolveToggle != nil {
			cp.onDissolveToggle(!cp.running)
		}
	})
	cp.dissolveBtn.Importance = widget.HighImportance

	cp.dissolveCard = widget.NewCard("Dissolve", "", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Hold:"), cp.holdValue, cp.holdSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Transition:"), cp.transitionValue, cp.transitionSlider),
		cp.dissolveBtn,
	))

	content := container.NewVBox(
		imagesCard,
		compareCard,
		cp.dissolveCard,
	)
	cp.container = container.NewBorder(nil, nil, nil, nil, container.NewVScroll(content))

	// Initial selection, before any callback is attached.
	cp.modeRadio.SetSelected(compare.Wipe.String())
	cp.directionSelect.SetSelected(compare.LeftToRight.String())

	cp.modeRadio.OnChanged = func(value string) {
		m, err := compare.ParseMode(value)
		if err != nil {
			return
		}
		cp.mode = m
		cp.updateDissolveState()
		if cp.onModeChanged != nil {
			cp.onModeChanged(m)
		}
	}
	cp.directionSelect.OnChanged = func(value string) {
		d, err := compare.ParseDirection(value)
		if err != nil {
			return
		}
		if cp.onDirectionChange != nil {
			cp.onDirectionChange(d)
		}
	}
	cp.holdSlider.OnChanged = func(v float64) {
		cp.holdValue.SetText(formatSeconds(v))
		cp.timingChanged()
	}
	cp.transitionSlider.OnChanged = func(v float64) {
		cp.transitionValue.SetText(formatSeconds(v))
		cp.timingChanged()
	}

	cp.updateDissolveState()
}

func newSecondsSlider(value float64) (*widget.Slider, *widget.Label) {
	slider := widget.NewSlider(minPhaseSeconds, maxPhaseSeconds)
	slider.Step = 0.1
	slider.SetValue(value)
	return slider, widget.NewLabel(formatSeconds(value))
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.1f s", v)
}

func (cp *ControlPanel) timingChanged() {
	cp.logger.WithFields(logrus.Fields{
		"hold":       cp.holdSlider.Value,
		"transition": cp.transitionSlider.Value,
	}).Debug("Dissolve timing edited")
	if cp.onTimingChanged != nil {
		cp.onTimingChanged(cp.holdSlider.Value, cp.transitionSlider.Value)
	}
}

// updateDissolveState enables the start/stop button only in dissolve mode
// with both images loaded.
func (cp *ControlPanel) updateDissolveState() {
	if cp.mode == compare.Dissolve && cp.hasImages {
		cp.dissolveBtn.Enable()
	} else {
		cp.dissolveBtn.Disable()
	}

	if cp.running {
		cp.dissolveBtn.SetText("Stop Dissolve")
		cp.dissolveBtn.SetIcon(theme.MediaStopIcon())
	} else {
		cp.dissolveBtn.SetText("Start Dissolve")
		cp.dissolveBtn.SetIcon(theme.MediaPlayIcon())
	}
}

func (cp *ControlPanel) SetFirstName(name string) {
	cp.firstLabel.SetText(orNoImage(name))
}

func (cp *ControlPanel) SetSecondName(name string) {
	cp.secondLabel.SetText(orNoImage(name))
}

func orNoImage(name string) string {
	if name == "" {
		return noImageText
	}
	return name
}

func (cp *ControlPanel) SetHasImages(has bool) {
	cp.hasImages = has
	cp.updateDissolveState()
}

// SetMode selects m without firing the mode callback.
func (cp *ControlPanel) SetMode(m compare.Mode) {
	cp.mode = m
	onChanged := cp.modeRadio.OnChanged
	cp.modeRadio.OnChanged = nil
	cp.modeRadio.SetSelected(m.String())
	cp.modeRadio.OnChanged = onChanged
	cp.updateDissolveState()
}

// SetDirection selects d without firing the direction callback.
func (cp *ControlPanel) SetDirection(d compare.Direction) {
	onChanged := cp.directionSelect.OnChanged
	cp.directionSelect.OnChanged = nil
	cp.directionSelect.SetSelected(d.String())
	cp.directionSelect.OnChanged = onChanged
}

// SetTiming moves both sliders without firing the timing callback.
func (cp *ControlPanel) SetTiming(t compare.DissolveTiming) {
	hold, transition := cp.holdSlider.OnChanged, cp.transitionSlider.OnChanged
	cp.holdSlider.OnChanged, cp.transitionSlider.OnChanged = nil, nil
	cp.holdSlider.SetValue(t.Hold.Seconds())
	cp.transitionSlider.SetValue(t.Transition.Seconds())
	cp.holdSlider.OnChanged, cp.transitionSlider.OnChanged = hold, transition

	cp.holdValue.SetText(formatSeconds(cp.holdSlider.Value))
	cp.transitionValue.SetText(formatSeconds(cp.transitionSlider.Value))
}

// SetDissolveRunning flips the start/stop button.
func (cp *ControlPanel) SetDissolveRunning(running bool) {
	cp.running = running
	cp.updateDissolveState()
}

// SetBasic hides everything a wipe-only viewer cannot use.
func (cp *ControlPanel) SetBasic(basic bool) {
	if basic {
		cp.modeRadio.Disable()
		cp.dissolveCard.Hide()
	} else {
		cp.modeRadio.Enable()
		cp.dissolveCard.Show()
	}
}

func (cp *ControlPanel) Direction() compare.Direction {
	d, _ := compare.ParseDirection(cp.directionSelect.Selected)
	return d
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetCallbacks(
	onPickFirst func(),
	onPickSecond func(),
	onModeChanged func(compare.Mode),
	onDirectionChange func(compare.Direction),
	onTimingChanged func(hold, transition float64),
	onDissolveToggle func(start bool),
) {
	cp.onPickFirst = onPickFirst
	cp.onPickSecond = onPickSecond
	cp.onModeChanged = onModeChanged
	cp.onDirectionChange = onDirectionChange
	cp.onTimingChanged = onTimingChanged
	cp.onDissolveToggle = onDissolveToggle
}
