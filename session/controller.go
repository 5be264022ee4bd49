package session

import (
	"time"

	"github.com/bensonlsp/reiki-timer/position"
)

// Options configures a Controller.
type Options struct {
	Bell    BellSignal
	Display DisplaySink
	Clock   Clock
	Logger  Logger
	// TickPeriod defaults to DefaultTickPeriod.
	TickPeriod time.Duration
	// OnEnd is called when a started session completes, or is aborted or
	// replaced before completing.
	OnEnd func(Summary)
	Now   func() time.Time
}

// Controller sequences positions and drives the countdown.
//
// A Controller is not safe for concurrent use. All calls, including the
// ticks delivered by its Clock, must happen on one goroutine; Loop provides
// that guarantee.
type Controller struct {
	bell    BellSignal
	display DisplaySink
	clock   Clock
	logger  Logger
	period  time.Duration
	onEnd   func(Summary)
	now     func() time.Time

	cfg        Config
	configured bool

	status    Status
	index     int
	remaining int
	advances  int
	startedAt time.Time
	stopTick  func()
}

// NewController returns an idle, unconfigured controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		bell:    opts.Bell,
		display: opts.Display,
		clock:   opts.Clock,
		logger:  opts.Logger,
		period:  opts.TickPeriod,
		onEnd:   opts.OnEnd,
		now:     opts.Now,
		status:  StatusIdle,
	}
	if c.bell == nil {
		c.bell = NoopBell{}
	}
	if c.display == nil {
		c.display = noopDisplay{}
	}
	if c.clock == nil {
		c.clock = manualClock{}
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}
	if c.period <= 0 {
		c.period = DefaultTickPeriod
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Configure sets the sequence and per-position duration. On error the
// previous state is left unchanged. On success any session in progress is
// abandoned and the controller is idle at the first position.
func (c *Controller) Configure(seq position.Sequence, seconds int) error {
	if seq.Len() == 0 {
		return ErrEmptySequence
	}
	if seconds < MinPositionSeconds {
		return &InvalidDurationError{Seconds: seconds, Minimum: MinPositionSeconds}
	}

	c.cancelTick()
	c.endActive()
	c.cfg = Config{Sequence: seq, PositionSeconds: seconds}
	c.configured = true
	c.rewind()
	c.setStatus(StatusIdle)
	return nil
}

// Config returns the current configuration and whether one is set.
func (c *Controller) Config() (Config, bool) {
	return c.cfg, c.configured
}

// Start begins a session at the first position. Any previous schedule is
// cancelled first, so at most one tick schedule is ever live.
func (c *Controller) Start() error {
	if !c.configured {
		return ErrNotConfigured
	}

	c.cancelTick()
	c.endActive()
	c.rewind()
	c.startedAt = c.now()
	c.bell.Unlock()
	c.setStatus(StatusRunning)
	c.render()
	c.scheduleTick()
	return nil
}

// Tick advances the countdown by one second. It does nothing unless the
// session is running.
func (c *Controller) Tick() {
	if c.status != StatusRunning {
		return
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.advance(false)
		return
	}
	c.render()
}

// Skip finishes the current position immediately.
func (c *Controller) Skip() error {
	if !c.status.Active() {
		return ErrNotActive
	}
	c.advance(true)
	return nil
}

// Pause holds the countdown. Pausing a paused session is a no-op.
func (c *Controller) Pause() error {
	switch c.status {
	case StatusPaused:
		return nil
	case StatusRunning:
		c.setStatus(StatusPaused)
		c.render()
		return nil
	}
	return ErrNotActive
}

// Resume continues a paused countdown. Resuming a running session is a no-op.
func (c *Controller) Resume() error {
	switch c.status {
	case StatusRunning:
		return nil
	case StatusPaused:
		c.setStatus(StatusRunning)
		c.render()
		return nil
	}
	return ErrNotActive
}

// TogglePause switches between running and paused.
func (c *Controller) TogglePause() error {
	if c.status == StatusPaused {
		return c.Resume()
	}
	return c.Pause()
}

// Reset restarts the session from the first position with the same
// configuration and leaves it running. A session in progress is ended as
// unfinished first, so the restart is a new session.
func (c *Controller) Reset() error {
	if !c.configured {
		return ErrNotConfigured
	}

	c.cancelTick()
	c.endActive()
	c.rewind()
	c.startedAt = c.now()
	c.setStatus(StatusRunning)
	c.render()
	c.scheduleTick()
	return nil
}

// Abort stops the session and returns to the idle state. The
// configuration is kept.
func (c *Controller) Abort() {
	c.cancelTick()
	c.endActive()
	if c.configured {
		c.rewind()
	}
	c.setStatus(StatusIdle)
}

// Status returns the current status.
func (c *Controller) Status() Status {
	return c.status
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Status:    c.status,
		Sequence:  c.cfg.Sequence.Name(),
		Index:     c.index,
		Positions: c.cfg.Sequence.Len(),
		Remaining: c.remaining,
		Duration:  c.cfg.PositionSeconds,
		Paused:    c.status == StatusPaused,
		Advances:  c.advances,
		Overall:   OverallProgress(c.index, c.remaining, c.cfg.PositionSeconds, c.cfg.Sequence.Len()),
		Position:  PositionProgress(c.remaining, c.cfg.PositionSeconds),
	}
}

// Frame returns the display frame for the current state.
func (c *Controller) Frame() Frame {
	total := c.cfg.Sequence.Len()
	frame := Frame{
		Status:        c.status,
		Index:         c.index,
		Positions:     total,
		Remaining:     c.remaining,
		RemainingText: FormatRemaining(c.remaining),
		Overall:       OverallProgress(c.index, c.remaining, c.cfg.PositionSeconds, total),
		Position:      PositionProgress(c.remaining, c.cfg.PositionSeconds),
	}
	if total > 0 {
		frame.IndexLabel = FormatIndex(c.index, total)
	}
	if p, ok := c.cfg.Sequence.At(c.index); ok {
		frame.PositionLabel = p.Label
	}
	return frame
}

func (c *Controller) advance(skipped bool) {
	c.bell.Play()

	label := ""
	if p, ok := c.cfg.Sequence.At(c.index); ok {
		label = p.Label
	}
	c.logger.Advance(AdvanceLog{Index: c.index, Label: label, Skipped: skipped})
	c.advances++

	if c.index+1 >= c.cfg.Sequence.Len() {
		c.remaining = 0
		c.cancelTick()
		c.setStatus(StatusCompleted)
		c.render()
		c.notifyEnd(true)
		return
	}

	c.index++
	c.remaining = c.cfg.PositionSeconds
	c.render()
}

func (c *Controller) rewind() {
	c.index = 0
	c.remaining = c.cfg.PositionSeconds
	c.advances = 0
}

func (c *Controller) endActive() {
	if c.status.Active() {
		c.notifyEnd(false)
	}
}

func (c *Controller) notifyEnd(finished bool) {
	if c.onEnd == nil {
		return
	}
	c.onEnd(Summary{
		Sequence:        c.cfg.Sequence.Name(),
		PositionSeconds: c.cfg.PositionSeconds,
		Positions:       c.cfg.Sequence.Len(),
		Completed:       c.advances,
		Finished:        finished,
		StartedAt:       c.startedAt,
		EndedAt:         c.now(),
	})
}

func (c *Controller) scheduleTick() {
	c.stopTick = c.clock.Every(c.period, c.Tick)
}

func (c *Controller) cancelTick() {
	if c.stopTick == nil {
		return
	}
	stop := c.stopTick
	c.stopTick = nil
	stop()
}

func (c *Controller) setStatus(next Status) {
	if c.status == next {
		return
	}
	prev := c.status
	c.status = next
	c.logger.Transition(TransitionLog{From: prev, To: next})
}

func (c *Controller) render() {
	c.display.Render(c.Frame())
}

// manualClock never fires; ticks are delivered by calling Tick directly.
type manualClock struct{}

func (manualClock) Every(time.Duration, func()) func() {
	return func() {}
}
