package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop serializes tick events and user commands onto a single goroutine.
// It implements Clock so a Controller can schedule its ticks through it.
type Loop struct {
	events  chan func()
	done    chan struct{}
	stopped sync.Once
	active  atomic.Int32
}

// NewLoop returns a loop that is ready to Run.
func NewLoop() *Loop {
	return &Loop{
		events: make(chan func()),
		done:   make(chan struct{}),
	}
}

// Run executes posted events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer l.stopped.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine. It blocks until the loop
// accepts the event and reports false once the loop has stopped. Post must
// not be called from the loop goroutine itself.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Every starts a ticker whose ticks run fn on the loop goroutine. The
// returned stop function cancels the ticker; a tick already queued when stop
// is called is dropped.
func (l *Loop) Every(period time.Duration, fn func()) func() {
	var cancelled atomic.Bool
	quit := make(chan struct{})
	var once sync.Once

	l.active.Add(1)
	stop := func() {
		once.Do(func() {
			cancelled.Store(true)
			close(quit)
			l.active.Add(-1)
		})
	}

	tick := func() {
		if cancelled.Load() {
			return
		}
		fn()
	}

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case l.events <- tick:
				case <-quit:
					return
				case <-l.done:
					return
				}
			case <-quit:
				return
			case <-l.done:
				return
			}
		}
	}()

	return stop
}

// Active returns the number of tickers that have not been stopped.
func (l *Loop) Active() int {
	return int(l.active.Load())
}
