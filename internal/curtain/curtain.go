// Package curtain implements the scroll-pinned reveal effect: stacked
// full-viewport panels translate upward one after another while the
// container is pinned, then control returns to native scrolling.
package curtain

import "math"

// State of the manual-control variant.
type State int

const (
	NotEngaged State = iota
	Engaged
)

// ScrollLock suspends and restores document scrolling while the
// controller owns the wheel. Injected so the state machine never
// touches the DOM directly.
type ScrollLock interface {
	Lock()
	Unlock()
}

// NopLock is a ScrollLock for contexts without a document to lock.
type NopLock struct{}

func (NopLock) Lock()   {}
func (NopLock) Unlock() {}

// Config for one curtain section.
type Config struct {
	// Panels is the number of stacked panels the section expects.
	Panels int
	// Sensitivity converts wheel delta pixels into progress units.
	Sensitivity float64
	// EngageThreshold is the container-top position (viewport px) at
	// which the section takes over the wheel.
	EngageThreshold float64
}

// DefaultSensitivity advances one full panel per ~600px of wheel delta.
const DefaultSensitivity = 1.0 / 600.0

// Controller drives panel reveal from an injected viewport position
// stream and wheel deltas. progress stays in [0, Panels-1]; each
// panel's reveal fraction is clamp(progress-index, 0, 1).
type Controller struct {
	cfg      Config
	lock     ScrollLock
	state    State
	progress float64
	attached int
	locked   bool
}

// New applies defaults and starts NotEngaged.
func New(cfg Config, lock ScrollLock) *Controller {
	if cfg.Sensitivity <= 0 {
		cfg.Sensitivity = DefaultSensitivity
	}
	if lock == nil {
		lock = NopLock{}
	}
	return &Controller{cfg: cfg, lock: lock}
}

// AttachPanels records how many panel nodes actually rendered.
// Conditional rendering can produce fewer nodes than configured; the
// whole effect no-ops in that case rather than indexing out of bounds.
func (c *Controller) AttachPanels(n int) {
	c.attached = n
}

func (c *Controller) ready() bool {
	return c.cfg.Panels > 1 && c.attached >= c.cfg.Panels
}

// MaxProgress is the progress value at which the last panel is fully
// revealed.
func (c *Controller) MaxProgress() float64 {
	if c.cfg.Panels < 1 {
		return 0
	}
	return float64(c.cfg.Panels - 1)
}

// State reports the current engagement state.
func (c *Controller) State() State { return c.state }

// Progress reports the current reveal scalar.
func (c *Controller) Progress() float64 { return c.progress }

// UpdateViewport feeds the container's top edge position (px from the
// viewport top). Crossing the threshold while the sequence is not yet
// exhausted engages the section and locks document scroll, so a fast
// wheel can't skip the whole thing.
func (c *Controller) UpdateViewport(containerTop float64) {
	if !c.ready() {
		return
	}
	if c.state == NotEngaged && containerTop <= c.cfg.EngageThreshold && c.progress < c.MaxProgress() {
		c.engage()
	}
}

// HandleWheel consumes a wheel delta (positive = scroll down). The
// return value tells the caller whether to preventDefault. At either
// boundary the event passes through and the controller disengages,
// restoring native scrolling.
func (c *Controller) HandleWheel(delta float64) bool {
	if c.state != Engaged || !c.ready() {
		return false
	}

	max := c.MaxProgress()
	if (c.progress <= 0 && delta < 0) || (c.progress >= max && delta > 0) {
		c.disengage()
		return false
	}

	c.progress = clamp(c.progress+delta*c.cfg.Sensitivity, 0, max)
	return true
}

// RevealFraction is how far panel i has been revealed, in [0, 1].
func (c *Controller) RevealFraction(panelIndex int) float64 {
	if panelIndex < 0 || panelIndex >= c.cfg.Panels {
		return 0
	}
	return clamp(c.progress-float64(panelIndex), 0, 1)
}

// TranslateYPercent is panel i's transform: 0 at rest, -100 fully
// revealed.
func (c *Controller) TranslateYPercent(panelIndex int) float64 {
	return -100 * c.RevealFraction(panelIndex)
}

// Close releases everything the controller holds. Always restores the
// scroll lock, even when torn down mid-Engaged.
func (c *Controller) Close() {
	c.state = NotEngaged
	if c.locked {
		c.lock.Unlock()
		c.locked = false
	}
}

func (c *Controller) engage() {
	c.state = Engaged
	if !c.locked {
		c.lock.Lock()
		c.locked = true
	}
}

func (c *Controller) disengage() {
	c.state = NotEngaged
	if c.locked {
		c.lock.Unlock()
		c.locked = false
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
