package session

import "time"

// BellSignal plays the transition cue. Implementations handle all errors
// internally: Play and Unlock never fail from the caller's point of view.
type BellSignal interface {
	// Play fires the audible cue and the visual feedback fallback.
	Play()
	// Unlock prepares playback. It is called once per session start and
	// must be idempotent.
	Unlock()
}

// DisplaySink renders progress. The controller never reads from it.
type DisplaySink interface {
	Render(Frame)
}

// Clock schedules the periodic tick. The returned stop function cancels the
// schedule and must be safe to call more than once.
type Clock interface {
	Every(period time.Duration, fn func()) (stop func())
}

// NoopBell is a BellSignal that does nothing.
type NoopBell struct{}

// Play does nothing.
func (NoopBell) Play() {}

// Unlock does nothing.
func (NoopBell) Unlock() {}

// DisplayFunc adapts a function to a DisplaySink.
type DisplayFunc func(Frame)

// Render calls f.
func (f DisplayFunc) Render(frame Frame) {
	f(frame)
}

type noopDisplay struct{}

func (noopDisplay) Render(Frame) {}
