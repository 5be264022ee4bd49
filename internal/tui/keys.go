package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	MinutesUp   key.Binding
	MinutesDown key.Binding
	SecondsUp   key.Binding
	SecondsDown key.Binding
	Sequence    key.Binding
	Bell        key.Binding
	Music       key.Binding
	Start       key.Binding

	Pause key.Binding
	Skip  key.Binding
	Reset key.Binding
	Abort key.Binding

	Back  key.Binding
	Again key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		MinutesUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "minutes")),
		MinutesDown: key.NewBinding(key.WithKeys("down", "j")),
		SecondsUp:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "seconds")),
		SecondsDown: key.NewBinding(key.WithKeys("left", "h")),
		Sequence:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "sequence")),
		Bell:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bell")),
		Music:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		Start:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),

		Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Skip:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Abort: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "abort")),

		Back:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "setup")),
		Again: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run again")),

		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// screenKeys adapts the bindings active on one screen to help.KeyMap.
type screenKeys []key.Binding

func (k screenKeys) ShortHelp() []key.Binding {
	return k
}

func (k screenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k}
}

func (k keyMap) forScreen(s screen) screenKeys {
	switch s {
	case screenRunning:
		return screenKeys{k.Pause, k.Skip, k.Reset, k.Abort, k.ForceQuit}
	case screenComplete:
		return screenKeys{k.Back, k.Again, k.Quit}
	default:
		return screenKeys{k.MinutesUp, k.SecondsUp, k.Sequence, k.Bell, k.Music, k.Start, k.Quit}
	}
}
