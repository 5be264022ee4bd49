package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// ConfigData represents the values written into a new config file.
type ConfigData struct {
	Sequence     string
	Minutes      int
	Seconds      int
	BellEnabled  bool
	BellVolume   int
	MusicEnabled bool
	MusicVolume  int
}

var configTemplate = template.Must(template.New("config").Parse(`[session]
sequence = {{ printf "%q" .Sequence }} # full, chakra
minutes = {{ .Minutes }} # 0-10
seconds = {{ .Seconds }} # 0-50 in steps of 10, at least 10s per position in total

[bell]
enabled = {{ .BellEnabled }}
volume = {{ .BellVolume }} # 0-100
# file = "/path/to/bell.wav"

[music]
enabled = {{ .MusicEnabled }}
volume = {{ .MusicVolume }} # 0-100
# files = ["/path/to/track.mp3"]
`))

// RenderConfigTOML renders the config data as a commented TOML file.
func RenderConfigTOML(data ConfigData) (string, error) {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// EnsureConfigFile writes a rendered template to path unless a file is
// already there. It reports whether the file was created.
func EnsureConfigFile(path string, data ConfigData) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	content, err := RenderConfigTOML(data)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return true, nil
}
