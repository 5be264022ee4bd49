package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/bensonlsp/reiki-timer/session"
)

// maxConcurrentBells caps overlapping bell playback.
const maxConcurrentBells = 2

const bellComponent = "bell"

// BellOptions configures a Bell.
type BellOptions struct {
	// Enabled turns the audible cue on. Feedback fires either way.
	Enabled bool
	// Volume is 0-100.
	Volume int
	// File overrides the embedded bell sound.
	File string
	// Feedback is the visual/haptic cue fired on every Play.
	Feedback func()
	// Terminal receives a BEL character when no audio player is usable.
	Terminal io.Writer
	Logger   session.Logger
	// Player overrides platform detection.
	Player *Player
}

// Bell is the production session.BellSignal.
type Bell struct {
	enabled  atomic.Bool
	volume   int
	file     string
	feedback func()
	terminal io.Writer
	logger   session.Logger
	player   Player
	detect   bool
	run      func(*exec.Cmd) error

	mu         sync.Mutex
	prepared   bool
	path       string
	tempPath   string
	playable   bool
	concurrent atomic.Int32
	wg         sync.WaitGroup
}

var _ session.BellSignal = (*Bell)(nil)

// NewBell builds a bell. Nothing touches the filesystem until Unlock.
func NewBell(opts BellOptions) *Bell {
	b := &Bell{
		volume:   clampVolume(opts.Volume),
		file:     opts.File,
		feedback: opts.Feedback,
		terminal: opts.Terminal,
		logger:   opts.Logger,
		detect:   opts.Player == nil,
		run:      (*exec.Cmd).Run,
	}
	b.enabled.Store(opts.Enabled)
	if opts.Player != nil {
		b.player = *opts.Player
	}
	if b.logger == nil {
		b.logger = session.NoopLogger()
	}
	if b.terminal == nil {
		b.terminal = io.Discard
	}
	return b
}

// Unlock locates the audio player and prepares the bell file. It does the
// work once, the first time it is called while the bell is enabled.
func (b *Bell) Unlock() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.prepared || !b.enabled.Load() {
		return
	}
	b.prepared = true
	b.prepare()
}

// SetEnabled turns the audible cue on or off between sessions.
func (b *Bell) SetEnabled(enabled bool) {
	b.enabled.Store(enabled)
}

// Enabled reports whether the audible cue is on.
func (b *Bell) Enabled() bool {
	return b.enabled.Load()
}

func (b *Bell) prepare() {
	if b.detect {
		player, ok := DetectPlayer()
		if !ok {
			b.logger.Failure(session.FailureLog{Component: bellComponent, Action: "no audio player found, using terminal bell"})
			return
		}
		b.player = player
	}
	if !b.player.Available() {
		return
	}

	path, err := b.resolveFile()
	if err != nil {
		b.logger.Failure(session.FailureLog{Component: bellComponent, Action: "prepare bell sound", Err: err})
		return
	}
	b.path = path
	b.playable = true
}

func (b *Bell) resolveFile() (string, error) {
	if b.file != "" {
		if _, err := os.Stat(b.file); err != nil {
			return "", fmt.Errorf("stat bell file: %w", err)
		}
		return b.file, nil
	}

	data, err := soundFiles.ReadFile(defaultBellFile)
	if err != nil {
		return "", fmt.Errorf("read embedded bell: %w", err)
	}
	tmpFile, err := os.CreateTemp("", "reiki-bell-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp bell file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return "", fmt.Errorf("write temp bell file: %w", err)
	}
	b.tempPath = name
	return name, nil
}

// Play fires the feedback hook and, when enabled, the audible cue. It never
// blocks on playback.
func (b *Bell) Play() {
	if b.feedback != nil {
		b.feedback()
	}
	if !b.enabled.Load() {
		return
	}

	b.Unlock()
	b.mu.Lock()
	playable := b.playable
	b.mu.Unlock()
	if !playable {
		if _, err := io.WriteString(b.terminal, "\a"); err != nil {
			b.logger.Failure(session.FailureLog{Component: bellComponent, Action: "write terminal bell", Err: err})
		}
		return
	}

	if b.concurrent.Add(1) > maxConcurrentBells {
		b.concurrent.Add(-1)
		b.logger.Failure(session.FailureLog{Component: bellComponent, Action: "concurrent bell limit reached"})
		return
	}

	b.wg.Add(1)
	go b.playAsync()
}

func (b *Bell) playAsync() {
	defer b.wg.Done()
	defer b.concurrent.Add(-1)

	cmd := b.player.CommandContext(context.Background(), b.path, b.volume)
	if err := b.run(cmd); err != nil {
		b.logger.Failure(session.FailureLog{Component: bellComponent, Action: "play bell", Err: err})
	}
}

// Close waits for playback in flight and removes the temporary bell file.
func (b *Bell) Close() error {
	b.wg.Wait()
	b.mu.Lock()
	tempPath := b.tempPath
	b.tempPath = ""
	b.mu.Unlock()
	if tempPath == "" {
		return nil
	}
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp bell file: %w", err)
	}
	return nil
}
