package session

import "github.com/bensonlsp/reiki-timer/position"

// Driver runs Controller operations on a Loop. Its methods may be called
// from any goroutine other than the loop's own.
type Driver struct {
	loop       *Loop
	controller *Controller
}

// NewDriver binds a controller to the loop that owns it.
func NewDriver(loop *Loop, controller *Controller) *Driver {
	return &Driver{loop: loop, controller: controller}
}

// Configure sets the sequence and per-position duration.
func (d *Driver) Configure(seq position.Sequence, seconds int) error {
	return d.call(func() error { return d.controller.Configure(seq, seconds) })
}

// Start begins a configured session.
func (d *Driver) Start() error {
	return d.call(d.controller.Start)
}

// TogglePause pauses a running session or resumes a paused one.
func (d *Driver) TogglePause() error {
	return d.call(d.controller.TogglePause)
}

// Skip advances to the next position.
func (d *Driver) Skip() error {
	return d.call(d.controller.Skip)
}

// Reset restarts the session from the first position.
func (d *Driver) Reset() error {
	return d.call(d.controller.Reset)
}

// Abort discards the session and returns to idle.
func (d *Driver) Abort() error {
	return d.call(func() error {
		d.controller.Abort()
		return nil
	})
}

// Snapshot returns the controller state.
func (d *Driver) Snapshot() (Snapshot, error) {
	var snap Snapshot
	err := d.call(func() error {
		snap = d.controller.Snapshot()
		return nil
	})
	return snap, err
}

func (d *Driver) call(fn func() error) error {
	var err error
	if !d.loop.Call(func() { err = fn() }) {
		return ErrLoopStopped
	}
	return err
}
