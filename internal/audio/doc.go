// Package audio plays the transition bell and the optional background music
// through OS-native audio commands. Every failure is logged and swallowed:
// nothing here can stop a running session.
package audio

import "embed"

// soundFiles holds the default bowl bell.
//
//go:embed sounds/*.wav
var soundFiles embed.FS

const defaultBellFile = "sounds/bell.wav"
