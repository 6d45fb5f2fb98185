package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives time by hand and records every schedule so tests can
// fire ticks deterministically.
type fakeClock struct {
	now       time.Time
	schedules []*fakeSchedule
}

type fakeSchedule struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) ScheduleRepeating(interval time.Duration, fn func()) func() {
	s := &fakeSchedule{interval: interval, fn: fn}
	c.schedules = append(c.schedules, s)
	return func() { s.stopped = true }
}

// advance moves the clock then fires every live schedule once.
func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
	for _, s := range c.schedules {
		if !s.stopped {
			s.fn()
		}
	}
}

type fakeSurface struct {
	scrollLeft float64
	maxScroll  float64
	viewport   float64
	cards      []CardRect
}

func (s *fakeSurface) ScrollLeft() float64       { return s.scrollLeft }
func (s *fakeSurface) SetScrollLeft(pos float64) { s.scrollLeft = pos }
func (s *fakeSurface) MaxScroll() float64        { return s.maxScroll }
func (s *fakeSurface) ViewportWidth() float64    { return s.viewport }
func (s *fakeSurface) CardRects() []CardRect     { return s.cards }

func newController(surface *fakeSurface) (*Controller, *fakeClock) {
	clock := newFakeClock()
	c := New(Config{EnableAutoScroll: true}, clock, surface)
	return c, clock
}

func TestAutoScrollAdvancesByElapsedTime(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	// one second of 16ms frames at the default 40 px/s lands close to
	// 40px regardless of tick count
	for i := 0; i < 62; i++ {
		clock.advance(16 * time.Millisecond)
	}
	assert.InDelta(t, 40, surface.scrollLeft, 1.0)
}

func TestTickConsumesElapsedOnce(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	// both the frame and fallback schedules fire on every advance; the
	// second fire sees zero elapsed time and must not advance again
	clock.advance(100 * time.Millisecond)
	assert.InDelta(t, 4, surface.scrollLeft, 0.01)
}

func TestAutoScrollDisabledIsNoOp(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500}
	clock := newFakeClock()
	c := New(Config{EnableAutoScroll: false}, clock, surface)
	c.Start()

	assert.Empty(t, clock.schedules)
	clock.advance(time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)
	c.Stop()
}

func TestWrapsToStartAtEnd(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300, scrollLeft: 499.5}
	c, clock := newController(surface)
	c.Start()

	clock.advance(100 * time.Millisecond)
	assert.Equal(t, 0.0, surface.scrollLeft)
}

func TestHoverPausesAndResumeIsImmediate(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	c.PointerEnter()
	clock.advance(time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)

	// leaving lifts the gate with no cooldown
	c.PointerLeave()
	clock.advance(100 * time.Millisecond)
	assert.Greater(t, surface.scrollLeft, 0.0)
}

func TestInteractionPausesUntilResumeDelay(t *testing.T) {
	surface := &fakeSurface{maxScroll: 5000, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	c.Wheel()
	clock.advance(4 * time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)

	// past the 5s resume delay scrolling picks back up
	clock.advance(2 * time.Second)
	clock.advance(100 * time.Millisecond)
	assert.Greater(t, surface.scrollLeft, 0.0)
}

func TestNewInteractionResetsCooldown(t *testing.T) {
	surface := &fakeSurface{maxScroll: 5000, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	c.Wheel()
	clock.advance(4 * time.Second)
	// a second interaction 4s in restarts the quiet period instead of
	// letting the first one expire
	c.Wheel()
	clock.advance(4 * time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)

	clock.advance(2 * time.Second)
	clock.advance(100 * time.Millisecond)
	assert.Greater(t, surface.scrollLeft, 0.0)
}

func TestPointerUpResumesWithoutDelay(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	c.PointerDown()
	clock.advance(time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)

	c.PointerUp()
	clock.advance(100 * time.Millisecond)
	assert.Greater(t, surface.scrollLeft, 0.0)
}

func TestTouchEndKeepsShortCooldown(t *testing.T) {
	surface := &fakeSurface{maxScroll: 5000, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	c.TouchStart()
	c.TouchEnd()

	clock.advance(time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)

	// the 1.2s touch cooldown is much shorter than the resume delay
	clock.advance(300 * time.Millisecond)
	clock.advance(100 * time.Millisecond)
	assert.Greater(t, surface.scrollLeft, 0.0)
}

func TestStopTearsDownSchedules(t *testing.T) {
	surface := &fakeSurface{maxScroll: 500, viewport: 300}
	c, clock := newController(surface)
	c.Start()
	require.Len(t, clock.schedules, 2)

	c.Stop()
	for _, s := range clock.schedules {
		assert.True(t, s.stopped)
	}

	pos := surface.scrollLeft
	clock.advance(time.Second)
	assert.Equal(t, pos, surface.scrollLeft)
}

func TestNoScrollWhenContentFits(t *testing.T) {
	surface := &fakeSurface{maxScroll: 0, viewport: 300}
	c, clock := newController(surface)
	c.Start()

	clock.advance(time.Second)
	assert.Equal(t, 0.0, surface.scrollLeft)
}

func TestUpdateFocusPicksCenteredCard(t *testing.T) {
	surface := &fakeSurface{
		viewport:  300,
		maxScroll: 600,
		cards: []CardRect{
			{Left: 0, Width: 250},
			{Left: 260, Width: 250},
			{Left: 520, Width: 250},
		},
	}
	c, _ := newController(surface)

	c.UpdateFocus()
	assert.Equal(t, 0, c.Focused())

	surface.scrollLeft = 240
	c.UpdateFocus()
	assert.Equal(t, 1, c.Focused())
}

func TestCenterDefaultCard(t *testing.T) {
	surface := &fakeSurface{
		viewport:  300,
		maxScroll: 600,
		cards: []CardRect{
			{Left: 0, Width: 250},
			{Left: 260, Width: 250},
			{Left: 520, Width: 250},
		},
	}
	clock := newFakeClock()
	c := New(Config{EnableAutoScroll: true, DefaultCard: 1}, clock, surface)

	c.CenterDefaultCard()
	// card 1 center is 385, viewport half is 150
	assert.InDelta(t, 235, surface.scrollLeft, 0.01)
	assert.Equal(t, 1, c.Focused())
}

func TestCenterDefaultCardUnattachedIsNoOp(t *testing.T) {
	surface := &fakeSurface{viewport: 300, maxScroll: 600}
	clock := newFakeClock()
	c := New(Config{EnableAutoScroll: true, DefaultCard: 2}, clock, surface)

	c.CenterDefaultCard()
	assert.Equal(t, 0.0, surface.scrollLeft)
}

func TestCenterDefaultCardClampsToRange(t *testing.T) {
	surface := &fakeSurface{
		viewport:  300,
		maxScroll: 100,
		cards: []CardRect{
			{Left: 0, Width: 200},
			{Left: 210, Width: 200},
		},
	}
	clock := newFakeClock()
	c := New(Config{EnableAutoScroll: true, DefaultCard: 1}, clock, surface)

	c.CenterDefaultCard()
	assert.Equal(t, 100.0, surface.scrollLeft)
}
