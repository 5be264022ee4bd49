// Package tui is the interactive terminal front end for a session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bensonlsp/reiki-timer/position"
	"github.com/bensonlsp/reiki-timer/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long the timer panel stays highlighted after a bell.
const flashDuration = 600 * time.Millisecond

const (
	maxMinutes  = 10
	maxSeconds  = 50
	secondsStep = 10
)

// Session is the set of controller operations the UI drives.
type Session interface {
	Configure(seq position.Sequence, seconds int) error
	Start() error
	TogglePause() error
	Skip() error
	Reset() error
	Abort() error
}

// Toggle is a feature the setup view can switch on and off.
type Toggle interface {
	SetEnabled(enabled bool)
	Enabled() bool
}

// Music is background audio started with each session.
type Music interface {
	Toggle
	Start(ctx context.Context)
	Stop()
}

// Setup holds the initial picker values.
type Setup struct {
	Sequence position.Name
	Minutes  int
	Seconds  int
}

// Options configures the UI.
type Options struct {
	Session Session
	// Sink receives frames from the controller; Run attaches it to the program.
	Sink  *Sink
	Setup Setup
	Bell  Toggle
	Music Music
}

type screen int

const (
	screenSetup screen = iota
	screenRunning
	screenComplete
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalReset
	modalAbort
)

type action int

const (
	actionStart action = iota
	actionPause
	actionSkip
	actionReset
	actionAbort
	actionAgain
)

type frameMsg session.Frame

type flashMsg struct{}

type flashDoneMsg struct {
	id int
}

type commandMsg struct {
	action action
	err    error
}

type model struct {
	ctx         context.Context
	session     Session
	bell        Toggle
	music       Music
	keys        keyMap
	help        help.Model
	positionBar progress.Model
	overallBar  progress.Model
	width       int
	height      int
	screen      screen
	sequences   []position.Sequence
	sequence    int
	minutes     int
	seconds     int
	frame       session.Frame
	flashing    bool
	flashID     int
	modal       confirmModal
	status      string
	statusLevel statusLevel
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

// Run shows the setup view and drives sessions until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("session is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Sink != nil {
		opts.Sink.attach(program.Send)
		defer opts.Sink.attach(nil)
	}
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(ctx context.Context, opts Options) model {
	sequences := []position.Sequence{position.Full, position.Chakra}
	selected := 0
	for i, seq := range sequences {
		if seq.Name() == opts.Setup.Sequence {
			selected = i
		}
	}

	m := model{
		ctx:         ctx,
		session:     opts.Session,
		bell:        opts.Bell,
		music:       opts.Music,
		keys:        defaultKeyMap(),
		help:        help.New(),
		positionBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		overallBar:  progress.New(progress.WithDefaultGradient()),
		screen:      screenSetup,
		sequences:   sequences,
		sequence:    selected,
		minutes:     clamp(opts.Setup.Minutes, 0, maxMinutes),
		seconds:     clamp(opts.Setup.Seconds, 0, maxSeconds) / secondsStep * secondsStep,
		modal:       confirmModal{kind: modalNone},
	}
	m.resize()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case frameMsg:
		return m.handleFrame(session.Frame(msg))
	case flashMsg:
		m.flashID++
		m.flashing = true
		id := m.flashID
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{id: id} })
	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flashing = false
		}
		return m, nil
	case commandMsg:
		return m.handleCommand(msg)
	case tea.KeyMsg:
		if m.modal.kind != modalNone {
			return m.updateModal(msg)
		}
		switch m.screen {
		case screenRunning:
			return m.handleRunningKey(msg)
		case screenComplete:
			return m.handleCompleteKey(msg)
		default:
			return m.handleSetupKey(msg)
		}
	}
	return m, nil
}

func (m model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.MinutesUp):
		m.adjustMinutes(1)
	case key.Matches(msg, m.keys.MinutesDown):
		m.adjustMinutes(-1)
	case key.Matches(msg, m.keys.SecondsUp):
		m.adjustSeconds(secondsStep)
	case key.Matches(msg, m.keys.SecondsDown):
		m.adjustSeconds(-secondsStep)
	case key.Matches(msg, m.keys.Sequence):
		m.sequence = (m.sequence + 1) % len(m.sequences)
	case key.Matches(msg, m.keys.Bell):
		if m.bell != nil {
			m.bell.SetEnabled(!m.bell.Enabled())
		}
	case key.Matches(msg, m.keys.Music):
		if m.music != nil {
			m.music.SetEnabled(!m.music.Enabled())
		}
	case key.Matches(msg, m.keys.Start):
		m.setStatus("", statusNone)
		return m, m.startCmd()
	}
	return m, nil
}

func (m model) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		return m, m.sessionCmd(actionPause, m.session.TogglePause)
	case key.Matches(msg, m.keys.Skip):
		return m, m.sessionCmd(actionSkip, m.session.Skip)
	case key.Matches(msg, m.keys.Reset):
		m.modal = confirmModal{
			kind:        modalReset,
			message:     "Restart from the first position?",
			confirmText: "Reset",
			cancelText:  "Cancel",
		}
	case key.Matches(msg, m.keys.Abort):
		m.modal = confirmModal{
			kind:        modalAbort,
			message:     "End this session and return to setup?",
			confirmText: "Abort",
			cancelText:  "Continue",
		}
	}
	return m, nil
}

func (m model) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = screenSetup
		m.setStatus("", statusNone)
	case key.Matches(msg, m.keys.Again):
		return m, m.againCmd()
	}
	return m, nil
}

func (m model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "left", "right", "tab", "shift+tab":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "y":
		return m.resolveModal(true)
	case "n", "esc":
		return m.resolveModal(false)
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	switch kind {
	case modalReset:
		return m, m.sessionCmd(actionReset, m.session.Reset)
	case modalAbort:
		return m, m.abortCmd()
	default:
		return m, nil
	}
}

func (m model) handleFrame(frame session.Frame) (tea.Model, tea.Cmd) {
	m.frame = frame
	switch frame.Status {
	case session.StatusRunning, session.StatusPaused:
		m.screen = screenRunning
	case session.StatusCompleted:
		if m.screen != screenComplete {
			m.screen = screenComplete
			m.modal = confirmModal{kind: modalNone}
			m.setStatus("Session complete", statusInfo)
			return m, m.stopMusicCmd()
		}
	}
	return m, nil
}

func (m model) handleCommand(msg commandMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(msg.err.Error(), statusError)
		return m, nil
	}
	switch msg.action {
	case actionStart:
		if m.screen == screenSetup {
			m.screen = screenRunning
		}
		m.setStatus("", statusNone)
	case actionAgain:
		m.screen = screenRunning
		m.setStatus("", statusNone)
	case actionReset:
		m.setStatus("Restarted from the first position", statusInfo)
	case actionAbort:
		m.screen = screenSetup
		m.setStatus("Session aborted", statusInfo)
	}
	return m, nil
}

func (m model) startCmd() tea.Cmd {
	seq := m.currentSequence()
	seconds := m.positionSeconds()
	return func() tea.Msg {
		if err := m.session.Configure(seq, seconds); err != nil {
			return commandMsg{action: actionStart, err: err}
		}
		if err := m.session.Start(); err != nil {
			return commandMsg{action: actionStart, err: err}
		}
		if m.music != nil {
			m.music.Start(m.ctx)
		}
		return commandMsg{action: actionStart}
	}
}

func (m model) againCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Reset(); err != nil {
			return commandMsg{action: actionAgain, err: err}
		}
		if m.music != nil {
			m.music.Start(m.ctx)
		}
		return commandMsg{action: actionAgain}
	}
}

func (m model) abortCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.Abort()
		if m.music != nil {
			m.music.Stop()
		}
		return commandMsg{action: actionAbort, err: err}
	}
}

func (m model) stopMusicCmd() tea.Cmd {
	if m.music == nil {
		return nil
	}
	return func() tea.Msg {
		m.music.Stop()
		return nil
	}
}

func (m model) sessionCmd(act action, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return commandMsg{action: act, err: fn()}
	}
}

// adjustMinutes keeps minutes in [0, maxMinutes].
func (m *model) adjustMinutes(delta int) {
	m.minutes = clamp(m.minutes+delta, 0, maxMinutes)
	m.ensureMinimum()
}

// adjustSeconds steps seconds and wraps between 50 and 0.
func (m *model) adjustSeconds(delta int) {
	m.seconds += delta
	if m.seconds > maxSeconds {
		m.seconds = 0
	} else if m.seconds < 0 {
		m.seconds = maxSeconds
	}
	m.ensureMinimum()
}

// ensureMinimum bumps a zero total to the shortest allowed hold.
func (m *model) ensureMinimum() {
	if m.minutes*60+m.seconds == 0 {
		m.seconds = session.MinPositionSeconds
	}
}

func (m model) positionSeconds() int {
	return m.minutes*60 + m.seconds
}

func (m model) currentSequence() position.Sequence {
	return m.sequences[m.sequence]
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m *model) resize() {
	barWidth := 40
	if m.width > 0 && m.width-12 < barWidth {
		barWidth = m.width - 12
	}
	if barWidth < 10 {
		barWidth = 10
	}
	m.positionBar.Width = barWidth
	m.overallBar.Width = barWidth
	m.help.Width = m.width
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
