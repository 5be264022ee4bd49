package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
)

// Player describes an OS audio command able to play a file.
type Player struct {
	Command string
	Args    []string
}

// DetectPlayer returns the audio command for the current platform.
func DetectPlayer() (Player, bool) {
	for _, name := range candidateCommands(runtime.GOOS) {
		if path, err := exec.LookPath(name); err == nil {
			return Player{Command: path}, true
		}
	}
	return Player{}, false
}

func candidateCommands(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"afplay"}
	case "linux":
		return []string{"paplay", "ffplay", "aplay"}
	case "windows":
		return []string{"powershell.exe"}
	}
	return nil
}

// Available reports whether a command is set.
func (p Player) Available() bool {
	return p.Command != ""
}

// CommandContext builds the command that plays path at volume (0-100).
func (p Player) CommandContext(ctx context.Context, path string, volume int) *exec.Cmd {
	args := make([]string, 0, len(p.Args)+6)
	args = append(args, p.Args...)
	args = append(args, p.buildArgs(path, clampVolume(volume))...)
	return exec.CommandContext(ctx, p.Command, args...) //nolint:gosec // command comes from DetectPlayer or config
}

// buildArgs maps the volume onto each player's own flag.
func (p Player) buildArgs(path string, volume int) []string {
	switch playerName(p.Command) {
	case "afplay":
		return []string{"-v", strconv.FormatFloat(float64(volume)/100, 'f', 2, 64), path}
	case "paplay":
		return []string{"--volume=" + strconv.Itoa(volume*65536/100), path}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(volume), path}
	case "aplay":
		return []string{"-q", path}
	case "powershell":
		return []string{"-c", fmt.Sprintf("(New-Object System.Media.SoundPlayer '%s').PlaySync()", path)}
	}
	return []string{path}
}

func playerName(command string) string {
	base := filepath.Base(command)
	return base[:len(base)-len(filepath.Ext(base))]
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
