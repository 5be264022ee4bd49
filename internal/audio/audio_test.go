package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bensonlsp/reiki-timer/session"
)

type captureLogger struct {
	mu       sync.Mutex
	failures []session.FailureLog
}

func (logger *captureLogger) Transition(session.TransitionLog) {}
func (logger *captureLogger) Advance(session.AdvanceLog)       {}

func (logger *captureLogger) Failure(entry session.FailureLog) {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	logger.failures = append(logger.failures, entry)
}

func (logger *captureLogger) count() int {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	return len(logger.failures)
}

type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
	fail  func(args []string) error
}

func (runner *recordingRunner) run(cmd *exec.Cmd) error {
	runner.mu.Lock()
	runner.calls = append(runner.calls, append([]string(nil), cmd.Args...))
	fail := runner.fail
	runner.mu.Unlock()
	if fail != nil {
		return fail(cmd.Args)
	}
	return nil
}

func (runner *recordingRunner) count() int {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return len(runner.calls)
}

func writeFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBellFeedbackFiresWhenDisabled(t *testing.T) {
	flashes := 0
	runner := &recordingRunner{}
	bell := NewBell(BellOptions{
		Enabled:  false,
		Feedback: func() { flashes++ },
		Player:   &Player{Command: "/usr/bin/afplay"},
	})
	bell.run = runner.run

	bell.Unlock()
	bell.Play()
	bell.Play()
	if err := bell.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if flashes != 2 {
		t.Fatalf("expected 2 feedback calls, got %d", flashes)
	}
	if runner.count() != 0 {
		t.Fatalf("expected no playback, got %d", runner.count())
	}
}

func TestBellPlaysConfiguredFileAtVolume(t *testing.T) {
	file := writeFile(t, "bowl.wav")
	runner := &recordingRunner{}
	bell := NewBell(BellOptions{
		Enabled: true,
		Volume:  80,
		File:    file,
		Player:  &Player{Command: "/usr/bin/afplay"},
	})
	bell.run = runner.run

	bell.Unlock()
	bell.Play()
	if err := bell.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := [][]string{{"/usr/bin/afplay", "-v", "0.80", file}}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Fatalf("expected %v, got %v", want, runner.calls)
	}
}

func TestBellFailureIsSwallowedAndFeedbackStillFires(t *testing.T) {
	file := writeFile(t, "bowl.wav")
	logger := &captureLogger{}
	flashes := 0
	runner := &recordingRunner{fail: func([]string) error { return errors.New("device busy") }}
	bell := NewBell(BellOptions{
		Enabled:  true,
		File:     file,
		Feedback: func() { flashes++ },
		Logger:   logger,
		Player:   &Player{Command: "/usr/bin/paplay"},
	})
	bell.run = runner.run

	bell.Play()
	if err := bell.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if flashes != 1 {
		t.Fatalf("expected feedback despite failure, got %d", flashes)
	}
	if logger.count() != 1 {
		t.Fatalf("expected failure to be logged once, got %d", logger.count())
	}
}

func TestBellFallsBackToTerminalBell(t *testing.T) {
	var terminal bytes.Buffer
	logger := &captureLogger{}
	bell := NewBell(BellOptions{
		Enabled:  true,
		File:     filepath.Join(t.TempDir(), "missing.wav"),
		Terminal: &terminal,
		Logger:   logger,
		Player:   &Player{Command: "/usr/bin/aplay"},
	})

	bell.Play()
	bell.Play()

	if terminal.String() != "\a\a" {
		t.Fatalf("expected two BEL characters, got %q", terminal.String())
	}
	if logger.count() != 1 {
		t.Fatalf("expected the missing file to be logged once, got %d", logger.count())
	}
}

func TestBellUnlockIsIdempotentAndCloseRemovesTempFile(t *testing.T) {
	bell := NewBell(BellOptions{
		Enabled: true,
		Player:  &Player{Command: "/usr/bin/afplay"},
	})

	bell.Unlock()
	first := bell.tempPath
	bell.Unlock()
	if first == "" {
		t.Fatalf("expected embedded bell to be written to a temp file")
	}
	if bell.tempPath != first {
		t.Fatalf("expected unlock to run once, got %q then %q", first, bell.tempPath)
	}
	if _, err := os.Stat(first); err != nil {
		t.Fatalf("expected temp bell file: %v", err)
	}

	if err := bell.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatalf("expected temp bell file removed, got %v", err)
	}
}

func TestPlayerArgsPerCommand(t *testing.T) {
	cases := []struct {
		command string
		volume  int
		want    []string
	}{
		{command: "/usr/bin/afplay", volume: 50, want: []string{"-v", "0.50", "x.wav"}},
		{command: "/usr/bin/paplay", volume: 100, want: []string{"--volume=65536", "x.wav"}},
		{command: "/usr/bin/ffplay", volume: 150, want: []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", "100", "x.wav"}},
		{command: "/usr/bin/aplay", volume: 10, want: []string{"-q", "x.wav"}},
		{command: "/opt/custom", volume: 10, want: []string{"x.wav"}},
	}

	for _, tc := range cases {
		t.Run(filepath.Base(tc.command), func(t *testing.T) {
			cmd := Player{Command: tc.command}.CommandContext(context.Background(), "x.wav", tc.volume)
			if got := cmd.Args[1:]; !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMusicOpensURLWithoutFiles(t *testing.T) {
	var opened []string
	music := NewMusic(MusicOptions{
		Enabled: true,
		Open: func(url string) error {
			opened = append(opened, url)
			return nil
		},
	})

	music.Start(context.Background())
	music.Stop()

	if len(opened) != 1 || opened[0] != DefaultPlaylistURL {
		t.Fatalf("expected default playlist to open, got %v", opened)
	}
}

func TestMusicOpenFailureIsLogged(t *testing.T) {
	logger := &captureLogger{}
	music := NewMusic(MusicOptions{
		Enabled: true,
		URL:     "https://example.com/ambient",
		Logger:  logger,
		Open:    func(string) error { return errors.New("no browser") },
	})

	music.Start(context.Background())

	if logger.count() != 1 {
		t.Fatalf("expected one logged failure, got %d", logger.count())
	}
}

func TestMusicDisabledDoesNothing(t *testing.T) {
	music := NewMusic(MusicOptions{
		Enabled: false,
		Open: func(string) error {
			t.Fatalf("expected no open when disabled")
			return nil
		},
	})
	music.Start(context.Background())
	music.Stop()
}

func TestMusicSkipsFailingFiles(t *testing.T) {
	bad := "/music/broken.mp3"
	good := "/music/rain.mp3"
	logger := &captureLogger{}
	runner := &recordingRunner{fail: func(args []string) error {
		if args[len(args)-1] == bad {
			return errors.New("decode failed")
		}
		return nil
	}}
	music := NewMusic(MusicOptions{
		Enabled: true,
		Files:   []string{bad, good},
		Logger:  logger,
		Player:  &Player{Command: "/opt/play"},
	})
	music.run = runner.run

	music.Start(context.Background())
	deadline := time.Now().Add(5 * time.Second)
	for runner.count() < 6 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	music.Stop()

	if runner.count() < 6 {
		t.Fatalf("expected playlist to keep looping, got %d plays", runner.count())
	}
	if logger.count() == 0 {
		t.Fatalf("expected failing file to be logged")
	}
}

func TestMusicConcurrentStartsLeaveOnePlaylist(t *testing.T) {
	var plays atomic.Int64
	music := NewMusic(MusicOptions{
		Enabled: true,
		Files:   []string{"/music/rain.mp3"},
		Player:  &Player{Command: "/opt/play"},
	})
	music.run = func(*exec.Cmd) error {
		plays.Add(1)
		time.Sleep(time.Millisecond)
		return nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			music.Start(context.Background())
		}()
	}
	wg.Wait()
	music.Stop()

	stopped := plays.Load()
	time.Sleep(30 * time.Millisecond)
	if got := plays.Load(); got != stopped {
		t.Fatalf("expected no playback after stop, plays went from %d to %d", stopped, got)
	}
}

func TestMusicStopsWhenNothingPlays(t *testing.T) {
	logger := &captureLogger{}
	runner := &recordingRunner{fail: func([]string) error { return errors.New("no device") }}
	music := NewMusic(MusicOptions{
		Enabled: true,
		Files:   []string{"/music/a.mp3", "/music/b.mp3"},
		Logger:  logger,
		Player:  &Player{Command: "/opt/play"},
	})
	music.run = runner.run

	music.Start(context.Background())
	deadline := time.Now().Add(5 * time.Second)
	for logger.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	music.Stop()

	if runner.count() != 2 {
		t.Fatalf("expected a single pass over 2 files, got %d", runner.count())
	}
	logger.mu.Lock()
	last := logger.failures[len(logger.failures)-1]
	logger.mu.Unlock()
	if !errors.Is(last.Err, errNothingPlayable) {
		t.Fatalf("expected final failure to be errNothingPlayable, got %v", last.Err)
	}
}

func TestBellEnabledAfterDisabledUnlockStillPrepares(t *testing.T) {
	file := writeFile(t, "bowl.wav")
	runner := &recordingRunner{}
	bell := NewBell(BellOptions{
		Enabled: false,
		File:    file,
		Player:  &Player{Command: "/usr/bin/aplay"},
	})
	bell.run = runner.run

	bell.Unlock()
	bell.SetEnabled(true)
	bell.Unlock()
	bell.Play()
	if err := bell.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := [][]string{{"/usr/bin/aplay", "-q", file}}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Fatalf("expected %v, got %v", want, runner.calls)
	}
}

func TestMusicSetEnabled(t *testing.T) {
	opened := 0
	music := NewMusic(MusicOptions{Open: func(string) error {
		opened++
		return nil
	}})

	music.Start(context.Background())
	music.SetEnabled(true)
	if !music.Enabled() {
		t.Fatal("expected music to report enabled")
	}
	music.Start(context.Background())
	music.Stop()

	if opened != 1 {
		t.Fatalf("expected one open after enabling, got %d", opened)
	}
}
