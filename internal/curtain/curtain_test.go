package curtain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingLock struct {
	locks   int
	unlocks int
}

func (l *countingLock) Lock()   { l.locks++ }
func (l *countingLock) Unlock() { l.unlocks++ }

func newEngaged(t *testing.T, panels int, lock ScrollLock) *Controller {
	t.Helper()
	c := New(Config{Panels: panels}, lock)
	c.AttachPanels(panels)
	c.UpdateViewport(0)
	assert.Equal(t, Engaged, c.State())
	return c
}

func TestEngagesAtThreshold(t *testing.T) {
	lock := &countingLock{}
	c := New(Config{Panels: 3, EngageThreshold: 10}, lock)
	c.AttachPanels(3)

	c.UpdateViewport(200)
	assert.Equal(t, NotEngaged, c.State())
	assert.Equal(t, 0, lock.locks)

	c.UpdateViewport(5)
	assert.Equal(t, Engaged, c.State())
	assert.Equal(t, 1, lock.locks)
}

func TestDoesNotReengageWhenExhausted(t *testing.T) {
	lock := &countingLock{}
	c := newEngaged(t, 2, lock)

	// drive to the end and release at the bottom boundary
	c.HandleWheel(600)
	assert.Equal(t, c.MaxProgress(), c.Progress())
	c.HandleWheel(100)
	assert.Equal(t, NotEngaged, c.State())

	// still at max progress, so scrolling past again must not re-pin
	c.UpdateViewport(0)
	assert.Equal(t, NotEngaged, c.State())
}

func TestWheelAdvancesProgress(t *testing.T) {
	c := newEngaged(t, 3, nil)

	consumed := c.HandleWheel(300)
	assert.True(t, consumed)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)

	c.HandleWheel(300)
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)

	// progress never exceeds panels-1 regardless of delta size
	c.HandleWheel(100000)
	assert.Equal(t, 2.0, c.Progress())
}

func TestWheelBackwardReducesProgress(t *testing.T) {
	c := newEngaged(t, 3, nil)

	c.HandleWheel(600)
	c.HandleWheel(-300)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)
}

func TestBoundaryPassesThroughAndDisengages(t *testing.T) {
	lock := &countingLock{}
	c := newEngaged(t, 3, lock)

	// scrolling up at progress 0 releases the wheel to the page
	consumed := c.HandleWheel(-120)
	assert.False(t, consumed)
	assert.Equal(t, NotEngaged, c.State())
	assert.Equal(t, 1, lock.unlocks)
}

func TestBottomBoundaryDisengages(t *testing.T) {
	lock := &countingLock{}
	c := newEngaged(t, 2, lock)

	c.HandleWheel(600)
	assert.Equal(t, 1.0, c.Progress())

	consumed := c.HandleWheel(120)
	assert.False(t, consumed)
	assert.Equal(t, NotEngaged, c.State())
	assert.Equal(t, 1, lock.unlocks)
}

func TestWheelIgnoredWhenNotEngaged(t *testing.T) {
	c := New(Config{Panels: 3}, nil)
	c.AttachPanels(3)

	assert.False(t, c.HandleWheel(300))
	assert.Equal(t, 0.0, c.Progress())
}

func TestRevealFractionPerPanel(t *testing.T) {
	c := newEngaged(t, 3, nil)
	c.HandleWheel(900) // progress 1.5

	assert.Equal(t, 1.0, c.RevealFraction(0))
	assert.InDelta(t, 0.5, c.RevealFraction(1), 1e-9)
	assert.Equal(t, 0.0, c.RevealFraction(2))

	assert.Equal(t, -100.0, c.TranslateYPercent(0))
	assert.InDelta(t, -50.0, c.TranslateYPercent(1), 1e-9)
	assert.Equal(t, 0.0, c.TranslateYPercent(2))

	// out-of-range panels stay at rest
	assert.Equal(t, 0.0, c.TranslateYPercent(-1))
	assert.Equal(t, 0.0, c.TranslateYPercent(7))
}

func TestFewerAttachedPanelsNoOps(t *testing.T) {
	lock := &countingLock{}
	c := New(Config{Panels: 3}, lock)
	c.AttachPanels(2)

	c.UpdateViewport(0)
	assert.Equal(t, NotEngaged, c.State())
	assert.False(t, c.HandleWheel(300))
	assert.Equal(t, 0, lock.locks)
}

func TestSinglePanelNoOps(t *testing.T) {
	c := New(Config{Panels: 1}, nil)
	c.AttachPanels(1)

	c.UpdateViewport(0)
	assert.Equal(t, NotEngaged, c.State())
	assert.Equal(t, 0.0, c.MaxProgress())
}

func TestCloseAlwaysUnlocks(t *testing.T) {
	lock := &countingLock{}
	c := newEngaged(t, 3, lock)

	c.Close()
	assert.Equal(t, NotEngaged, c.State())
	assert.Equal(t, 1, lock.unlocks)

	// closing again must not unlock twice
	c.Close()
	assert.Equal(t, 1, lock.unlocks)
}

func TestCustomSensitivity(t *testing.T) {
	c := New(Config{Panels: 2, Sensitivity: 1.0 / 100.0}, nil)
	c.AttachPanels(2)
	c.UpdateViewport(0)

	c.HandleWheel(50)
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)
}
