package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/bensonlsp/reiki-timer/internal/ui"
	"github.com/bensonlsp/reiki-timer/session"
	"github.com/muesli/reflow/wordwrap"
)

// plainRenderer prints one line per position. On a terminal it also keeps a
// countdown line that is redrawn in place on every tick.
type plainRenderer struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	live     bool
	liveLine bool
	shown    bool
	last     session.Frame
}

var _ session.DisplaySink = (*plainRenderer)(nil)

func newPlainRenderer(out io.Writer, width int, live bool) *plainRenderer {
	if width < 20 {
		width = 20
	}
	return &plainRenderer{out: out, width: width, live: live}
}

func (r *plainRenderer) Render(frame session.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restarted := r.last.Status == session.StatusCompleted && frame.Status.Active()
	positionChanged := !r.shown || frame.Index != r.last.Index || restarted
	statusChanged := r.shown && frame.Status != r.last.Status
	if positionChanged || statusChanged {
		r.clearLive()
	}

	switch {
	case frame.Status == session.StatusCompleted:
		if statusChanged || !r.shown {
			r.println("Session complete.")
		}
	case positionChanged:
		r.println(wordwrap.String(fmt.Sprintf("[%s] %s", frame.IndexLabel, frame.PositionLabel), r.width))
	case statusChanged && frame.Status == session.StatusPaused:
		r.println("Paused.")
	case statusChanged && frame.Status == session.StatusRunning:
		r.println("Resumed.")
	}

	if r.live && frame.Status.Active() {
		fmt.Fprintf(r.out, "\r\x1b[K  %s  %3.0f%%", frame.RemainingText, frame.Overall*100)
		r.liveLine = true
	}

	r.last = frame
	r.shown = true
}

// Summary prints how the session ended.
func (r *plainRenderer) Summary(summary session.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLive()
	elapsed := ui.FormatDurationShort(summary.EndedAt.Sub(summary.StartedAt))
	if summary.Finished {
		r.println(fmt.Sprintf("Completed %d of %d positions in %s.", summary.Completed, summary.Positions, elapsed))
		return
	}
	r.println(fmt.Sprintf("Aborted after %d of %d positions (%s).", summary.Completed, summary.Positions, elapsed))
}

func (r *plainRenderer) clearLive() {
	if !r.liveLine {
		return
	}
	fmt.Fprint(r.out, "\r\x1b[K")
	r.liveLine = false
}

func (r *plainRenderer) println(line string) {
	fmt.Fprintln(r.out, line)
}
