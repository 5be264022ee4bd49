package audio

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/bensonlsp/reiki-timer/session"
)

// DefaultPlaylistURL is the ambient playlist opened when no local files are set.
const DefaultPlaylistURL = "https://youtube.com/playlist?list=OLAK5uy_kpKl1SovncvbH7phc-RP2YTvCNrjpLXKA&shuffle=1"

const musicComponent = "music"

// errNothingPlayable stops the playlist when a full pass fails.
var errNothingPlayable = errors.New("no playable music files")

// MusicOptions configures background music.
type MusicOptions struct {
	Enabled bool
	// Files are played in order and looped. When empty, URL is opened instead.
	Files  []string
	URL    string
	Volume int
	Logger session.Logger
	// Player overrides platform detection.
	Player *Player
	// Open overrides the OS URL opener.
	Open func(url string) error
}

// Music plays ambient background audio alongside a session.
type Music struct {
	enabled atomic.Bool
	files   []string
	url     string
	volume  int
	logger  session.Logger
	player  *Player
	open    func(url string) error
	run     func(*exec.Cmd) error

	// control serializes Start and Stop so a restart never leaves a
	// playlist goroutine without its cancel func.
	control sync.Mutex
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMusic builds a music player.
func NewMusic(opts MusicOptions) *Music {
	m := &Music{
		files:  append([]string(nil), opts.Files...),
		url:    opts.URL,
		volume: clampVolume(opts.Volume),
		logger: opts.Logger,
		player: opts.Player,
		open:   opts.Open,
		run:    (*exec.Cmd).Run,
	}
	m.enabled.Store(opts.Enabled)
	if m.logger == nil {
		m.logger = session.NoopLogger()
	}
	if m.open == nil {
		m.open = OpenURL
	}
	if m.url == "" {
		m.url = DefaultPlaylistURL
	}
	return m
}

// Start begins playback. It returns immediately; playing a second time
// restarts the playlist.
func (m *Music) Start(ctx context.Context) {
	if !m.enabled.Load() {
		return
	}

	m.control.Lock()
	defer m.control.Unlock()
	m.stopPlayback()

	if len(m.files) == 0 {
		if err := m.open(m.url); err != nil {
			m.logger.Failure(session.FailureLog{Component: musicComponent, Action: "open playlist", Err: err})
		}
		return
	}

	player := m.player
	if player == nil {
		detected, ok := DetectPlayer()
		if !ok {
			m.logger.Failure(session.FailureLog{Component: musicComponent, Action: "no audio player found"})
			return
		}
		player = &detected
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.mu.Lock()
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		if err := m.loop(ctx, *player); err != nil {
			m.logger.Failure(session.FailureLog{Component: musicComponent, Action: "stop playlist", Err: err})
		}
	}()
}

// loop plays every file in order until ctx is done. A failing file is
// skipped; a pass in which every file fails ends playback.
func (m *Music) loop(ctx context.Context, player Player) error {
	for {
		played := false
		for _, file := range m.files {
			if ctx.Err() != nil {
				return nil
			}
			err := m.run(player.CommandContext(ctx, file, m.volume))
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				m.logger.Failure(session.FailureLog{Component: musicComponent, Action: "play " + file, Err: err})
				continue
			}
			played = true
		}
		if !played {
			return errNothingPlayable
		}
	}
}

// SetEnabled turns background music on or off for the next Start.
func (m *Music) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// Enabled reports whether Start plays anything.
func (m *Music) Enabled() bool {
	return m.enabled.Load()
}

// Stop ends playback and waits for the player to exit.
func (m *Music) Stop() {
	m.control.Lock()
	defer m.control.Unlock()
	m.stopPlayback()
}

func (m *Music) stopPlayback() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// OpenURL opens url with the platform's default handler.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // the opener detaches; its exit status is irrelevant
	return nil
}
