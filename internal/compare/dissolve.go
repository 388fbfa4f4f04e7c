package compare

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
)

const (
	MinPhaseDuration          = 100 * time.Millisecond
	DefaultHoldDuration       = 2 * time.Second
	DefaultTransitionDuration = time.Second
)

// DissolveTiming holds the user-configurable phase lengths of the dissolve
// cycle
type DissolveTiming struct {
	Hold       time.Duration
	Transition time.Duration
}

func DefaultDissolveTiming() DissolveTiming {
	return DissolveTiming{Hold: DefaultHoldDuration, Transition: DefaultTransitionDuration}
}

// TimingFromSeconds converts spin-box style second values into a timing.
func TimingFromSeconds(hold, transition float64) DissolveTiming {
	return DissolveTiming{
		Hold:       time.Duration(hold * float64(time.Second)),
		Transition: time.Duration(transition * float64(time.Second)),
	}.Normalize()
}

// Normalize raises both durations to MinPhaseDuration.
func (t DissolveTiming) Normalize() DissolveTiming {
	if t.Hold < MinPhaseDuration {
		t.Hold = MinPhaseDuration
	}
	if t.Transition < MinPhaseDuration {
		t.Transition = MinPhaseDuration
	}
	return t
}

// Phase is a state of the dissolve cycle
type Phase int

const (
	Idle Phase = iota
	HoldingFirst
	TransitioningToSecond
	HoldingSecond
	TransitioningToFirst
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case HoldingFirst:
		return "holding-first"
	case TransitioningToSecond:
		return "transitioning-to-second"
	case HoldingSecond:
		return "holding-second"
	case TransitioningToFirst:
		return "transitioning-to-first"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Transitioning reports whether the opacity is moving in this phase.
func (p Phase) Transitioning() bool {
	return p == TransitioningToSecond || p == TransitioningToFirst
}

// EasedProgress maps elapsed time within a transition of the given length to
// an ease-in-out progress value in [0,1].
func EasedProgress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	t := clamp(float64(elapsed)/float64(total), 0, 1)
	return float64(fyne.AnimationEaseInOut(float32(t)))
}

// DissolveController is the hold/transition state machine behind the dissolve
// mode. It owns no timers: callers feed it the current time through Advance,
// so stopping it can never leave a callback behind.
type DissolveController struct {
	timing DissolveTiming

	phase       Phase
	phaseStart  time.Time
	phaseLength time.Duration

	opacity       float64
	showingSecond bool
}

func NewDissolveController(timing DissolveTiming) *DissolveController {
	return &DissolveController{timing: timing.Normalize()}
}

func (d *DissolveController) Timing() DissolveTiming { return d.timing }
func (d *DissolveController) Phase() Phase           { return d.phase }
func (d *DissolveController) Running() bool          { return d.phase != Idle }
func (d *DissolveController) Opacity() float64       { return d.opacity }

// ShowingSecond reports which image the current or upcoming hold shows.
func (d *DissolveController) ShowingSecond() bool { return d.showingSecond }

// SetTiming stores new durations. A phase already in progress keeps its
// length; the new values take effect from the next phase.
func (d *DissolveController) SetTiming(t DissolveTiming) {
	d.timing = t.Normalize()
}

// Start begins a cycle at now, holding on the first image.
func (d *DissolveController) Start(now time.Time) {
	d.showingSecond = false
	d.opacity = 0
	d.enter(HoldingFirst, now)
}

// Stop returns to Idle from any phase with the second image hidden.
func (d *DissolveController) Stop() {
	d.phase = Idle
	d.phaseStart = time.Time{}
	d.phaseLength = 0
	d.opacity = 0
	d.showingSecond = false
}

// Advance moves the machine to now, crossing as many phase boundaries as the
// elapsed time covers, and reports whether the opacity or phase changed.
func (d *DissolveController) Advance(now time.Time) bool {
	if d.phase == Idle {
		return false
	}

	before, beforeOpacity := d.phase, d.opacity
	for {
		end := d.phaseStart.Add(d.phaseLength)
		if now.Before(end) {
			break
		}
		d.completePhase(end)
	}

	if d.phase.Transitioning() {
		progress := EasedProgress(now.Sub(d.phaseStart), d.phaseLength)
		if d.phase == TransitioningToSecond {
			d.opacity = progress
		} else {
			d.opacity = 1 - progress
		}
	}

	return d.phase != before || d.opacity != beforeOpacity
}

func (d *DissolveController) completePhase(at time.Time) {
	switch d.phase {
	case HoldingFirst:
		d.showingSecond = true
		d.enter(TransitioningToSecond, at)
	case TransitioningToSecond:
		d.opacity = 1
		d.enter(HoldingSecond, at)
	case HoldingSecond:
		d.showingSecond = false
		d.enter(TransitioningToFirst, at)
	case TransitioningToFirst:
		d.opacity = 0
		d.enter(HoldingFirst, at)
	}
}

func (d *DissolveController) enter(p Phase, at time.Time) {
	d.phase = p
	d.phaseStart = at
	if p.Transitioning() {
		d.phaseLength = d.timing.Transition
	} else {
		d.phaseLength = d.timing.Hold
	}
}
