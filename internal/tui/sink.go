package tui

import (
	"sync"

	"github.com/bensonlsp/reiki-timer/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Sink forwards controller frames and bell feedback into the running
// program. Messages sent while no program is attached are dropped.
type Sink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

var _ session.DisplaySink = (*Sink)(nil)

// NewSink returns a detached sink.
func NewSink() *Sink {
	return &Sink{}
}

// Render implements session.DisplaySink.
func (s *Sink) Render(frame session.Frame) {
	s.post(frameMsg(frame))
}

// Flash briefly highlights the timer. It is the bell's feedback hook.
func (s *Sink) Flash() {
	s.post(flashMsg{})
}

func (s *Sink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	s.send = send
	s.mu.Unlock()
}

func (s *Sink) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}
