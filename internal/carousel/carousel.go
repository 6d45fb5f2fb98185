package carousel

import (
	"math"
	"sync"
	"time"
)

// CardRect is a card's horizontal geometry in track (content)
// coordinates.
type CardRect struct {
	Left  float64
	Width float64
}

// Surface is the scrollable track the controller drives. Injected so
// the scrolling logic runs without a layout engine.
type Surface interface {
	ScrollLeft() float64
	SetScrollLeft(pos float64)
	// MaxScroll is the content width minus the viewport width.
	MaxScroll() float64
	ViewportWidth() float64
	CardRects() []CardRect
}

// Config tunes one controller instance.
type Config struct {
	// Speed is the auto-scroll rate in px per second.
	Speed float64
	// FrameInterval is the main tick cadence. The fallback interval
	// keeps scrolling alive when the frame path is throttled.
	FrameInterval    time.Duration
	FallbackInterval time.Duration
	// ResumeDelay clears the user-interacted flag after a quiet period.
	ResumeDelay time.Duration
	// TouchCooldown keeps auto-scroll paused after touch end while
	// momentum scrolling settles.
	TouchCooldown time.Duration
	// WrapEpsilon is how close to the end counts as the end.
	WrapEpsilon float64
	// DefaultCard is centered on mount for narrow viewports.
	DefaultCard      int
	EnableAutoScroll bool
}

// Defaults matching the product behavior.
const (
	DefaultSpeed            = 40.0
	DefaultFrameInterval    = 16 * time.Millisecond
	DefaultFallbackInterval = 80 * time.Millisecond
	DefaultResumeDelay      = 5000 * time.Millisecond
	DefaultTouchCooldown    = 1200 * time.Millisecond
	DefaultWrapEpsilon      = 1.0
)

// Controller continuously scrolls a horizontally overflowing card
// track, pausing during user interaction and resuming after a quiet
// period. Lifecycle follows Start/Stop; Stop tears down every schedule
// so nothing keeps mutating a detached surface.
type Controller struct {
	cfg     Config
	clock   Clock
	surface Surface

	mu             sync.Mutex
	running        bool
	hovering       bool
	userInteracted bool
	lastTick       time.Time
	resumeAt       time.Time
	focused        int
	stopFrame      func()
	stopFallback   func()
}

// New applies defaults for any zero config field.
func New(cfg Config, clock Clock, surface Surface) *Controller {
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.FallbackInterval <= 0 {
		cfg.FallbackInterval = DefaultFallbackInterval
	}
	if cfg.ResumeDelay <= 0 {
		cfg.ResumeDelay = DefaultResumeDelay
	}
	if cfg.TouchCooldown <= 0 {
		cfg.TouchCooldown = DefaultTouchCooldown
	}
	if cfg.WrapEpsilon <= 0 {
		cfg.WrapEpsilon = DefaultWrapEpsilon
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Controller{cfg: cfg, clock: clock, surface: surface}
}

// Start begins the two tick schedules. No-op when auto-scroll is
// disabled or already running.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || !c.cfg.EnableAutoScroll {
		return
	}
	c.running = true
	c.lastTick = c.clock.Now()
	c.stopFrame = c.clock.ScheduleRepeating(c.cfg.FrameInterval, c.Tick)
	c.stopFallback = c.clock.ScheduleRepeating(c.cfg.FallbackInterval, c.Tick)
}

// Stop tears down both schedules deterministically.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	if c.stopFrame != nil {
		c.stopFrame()
		c.stopFrame = nil
	}
	if c.stopFallback != nil {
		c.stopFallback()
		c.stopFallback = nil
	}
}

// SetEnabled toggles auto-scroll at runtime.
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.cfg.EnableAutoScroll = enabled
	running := c.running
	c.mu.Unlock()

	if enabled && !running {
		c.Start()
	} else if !enabled && running {
		c.Stop()
	}
}

// Tick advances the scroll position by elapsed real time. Both the
// frame schedule and the fallback schedule land here; whichever fires
// first consumes the elapsed interval, so the two never double-advance.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	now := c.clock.Now()
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if dt <= 0 {
		return
	}

	// Quiet period over: clear the interaction flag, but only once the
	// pointer has also left the track.
	if c.userInteracted && !c.resumeAt.IsZero() && !now.Before(c.resumeAt) && !c.hovering {
		c.userInteracted = false
		c.resumeAt = time.Time{}
	}

	if c.hovering || c.userInteracted {
		return
	}

	max := c.surface.MaxScroll()
	if max <= 0 {
		return
	}

	pos := c.surface.ScrollLeft() + c.cfg.Speed*dt
	if pos >= max-c.cfg.WrapEpsilon {
		pos = 0 // loop, not bounce
	}
	c.surface.SetScrollLeft(pos)
}

// PointerEnter suppresses auto-advance while the pointer is over the
// track.
func (c *Controller) PointerEnter() {
	c.mu.Lock()
	c.hovering = true
	c.mu.Unlock()
}

// PointerLeave lifts the hover gate.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	c.hovering = false
	c.mu.Unlock()
}

// PointerDown marks active interaction and arms the resume timer.
// Starting a new interaction while a cooldown is pending resets the
// cooldown instead of stacking another one.
func (c *Controller) PointerDown() {
	c.interact(c.cfg.ResumeDelay)
}

// PointerUp clears the interaction flag immediately.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	c.userInteracted = false
	c.resumeAt = time.Time{}
	c.mu.Unlock()
}

// TouchStart marks active interaction.
func (c *Controller) TouchStart() {
	c.interact(c.cfg.ResumeDelay)
}

// TouchEnd keeps the pause alive for the touch cooldown so momentum
// scrolling can finish.
func (c *Controller) TouchEnd() {
	c.interact(c.cfg.TouchCooldown)
}

// Wheel counts as interaction too.
func (c *Controller) Wheel() {
	c.interact(c.cfg.ResumeDelay)
}

func (c *Controller) interact(cooldown time.Duration) {
	c.mu.Lock()
	c.userInteracted = true
	c.resumeAt = c.clock.Now().Add(cooldown)
	c.mu.Unlock()
}

// UpdateFocus recomputes which card sits closest to the viewport
// center. Called on scroll and resize; independent of the auto-scroll
// loop.
func (c *Controller) UpdateFocus() {
	rects := c.surface.CardRects()
	if len(rects) == 0 {
		return
	}
	center := c.surface.ScrollLeft() + c.surface.ViewportWidth()/2

	best := 0
	bestDist := math.MaxFloat64
	for i, r := range rects {
		d := math.Abs(r.Left + r.Width/2 - center)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	c.mu.Lock()
	c.focused = best
	c.mu.Unlock()
}

// Focused is the index of the card driving the enlargement state.
func (c *Controller) Focused() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// CenterDefaultCard scrolls the configured default card to the viewport
// center. Runs after layout on mount; a card that is not attached yet
// makes it a no-op.
func (c *Controller) CenterDefaultCard() {
	rects := c.surface.CardRects()
	if c.cfg.DefaultCard < 0 || c.cfg.DefaultCard >= len(rects) {
		return
	}
	r := rects[c.cfg.DefaultCard]
	target := r.Left + r.Width/2 - c.surface.ViewportWidth()/2
	if target < 0 {
		target = 0
	}
	if max := c.surface.MaxScroll(); max > 0 && target > max {
		target = max
	}
	c.surface.SetScrollLeft(target)
	c.UpdateFocus()
}
