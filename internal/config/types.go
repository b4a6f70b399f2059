// Package config resolves, parses, validates, and defaults voice-ptt configuration.
package config

import "time"

// Config is the fully materialized runtime configuration. It is immutable after Load.
type Config struct {
	PTTKey         string `toml:"ptt_key"`
	TypingDelayMS  uint64 `toml:"typing_delay_ms"`
	InitialDelayMS uint64 `toml:"initial_delay_ms"`
	Model          string `toml:"model"`
	Language       string `toml:"language"`

	SoundEnabled        bool   `toml:"sound_enabled"`
	SoundStartPath      string `toml:"sound_start_path"`
	SoundEndPath        string `toml:"sound_end_path"`
	MacOSSoundStartPath string `toml:"macos_sound_start_path"`
	MacOSSoundEndPath   string `toml:"macos_sound_end_path"`
	LinuxSoundStartPath string `toml:"linux_sound_start_path"`
	LinuxSoundEndPath   string `toml:"linux_sound_end_path"`

	// PasteOverrides maps a window class (matched case-insensitively) to a paste shortcut.
	PasteOverrides map[string]string `toml:"paste_overrides"`
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

// TypingDelay is the per-character delay used by keystroke synthesis.
func (c Config) TypingDelay() time.Duration {
	return time.Duration(c.TypingDelayMS) * time.Millisecond
}

// InitialDelay is the grace period before any injection.
func (c Config) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMS) * time.Millisecond
}

// SoundPaths returns the start/end earcon paths for the given GOOS value.
func (c Config) SoundPaths(goos string) (string, string) {
	start, end := c.LinuxSoundStartPath, c.LinuxSoundEndPath
	if goos == "darwin" {
		start, end = c.MacOSSoundStartPath, c.MacOSSoundEndPath
	}
	if start == "" {
		start = c.SoundStartPath
	}
	if end == "" {
		end = c.SoundEndPath
	}
	return start, end
}
