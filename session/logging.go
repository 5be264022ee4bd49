package session

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Logger captures structured session log entries.
type Logger interface {
	Transition(TransitionLog)
	Advance(AdvanceLog)
	Failure(FailureLog)
}

// TransitionLog records a status change.
type TransitionLog struct {
	From Status
	To   Status
}

// AdvanceLog records a finished position.
type AdvanceLog struct {
	Index   int
	Label   string
	Skipped bool
}

// FailureLog records a non-fatal failure in a collaborator.
type FailureLog struct {
	Component string
	Action    string
	Err       error
}

type noopLogger struct{}

func (noopLogger) Transition(TransitionLog) {}
func (noopLogger) Advance(AdvanceLog)       {}
func (noopLogger) Failure(FailureLog)       {}

// NoopLogger returns a logger that drops every entry.
func NoopLogger() Logger {
	return noopLogger{}
}

// ConsoleLogger writes formatted log lines. It is safe for concurrent use.
type ConsoleLogger struct {
	mu         sync.Mutex
	writer     io.Writer
	now        func() time.Time
	labelStyle lipgloss.Style
	errorStyle lipgloss.Style
	mutedStyle lipgloss.Style
}

// NewConsoleLogger builds a styled logger for interactive output.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:     writer,
		now:        time.Now,
		labelStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		errorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		mutedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Transition logs a status change.
func (logger *ConsoleLogger) Transition(entry TransitionLog) {
	if logger == nil {
		return
	}
	logger.writeLine("session", fmt.Sprintf("%s -> %s", entry.From, entry.To), false)
}

// Advance logs a finished position.
func (logger *ConsoleLogger) Advance(entry AdvanceLog) {
	if logger == nil {
		return
	}
	verb := "completed"
	if entry.Skipped {
		verb = "skipped"
	}
	label := strings.TrimSpace(entry.Label)
	if label == "" {
		label = "-"
	}
	logger.writeLine("position", fmt.Sprintf("%d %s %s", entry.Index+1, verb, label), false)
}

// Failure logs a non-fatal collaborator failure.
func (logger *ConsoleLogger) Failure(entry FailureLog) {
	if logger == nil {
		return
	}
	msg := entry.Action
	if entry.Err != nil {
		msg = fmt.Sprintf("%s: %v", entry.Action, entry.Err)
	}
	logger.writeLine(entry.Component, msg, true)
}

func (logger *ConsoleLogger) writeLine(component, message string, failure bool) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	stamp := logger.mutedStyle.Render(logger.now().Format("15:04:05"))
	label := logger.labelStyle.Render(component + ":")
	if failure {
		message = logger.errorStyle.Render(message)
	}
	fmt.Fprintf(logger.writer, "%s %s %s\n", stamp, label, message)
}
