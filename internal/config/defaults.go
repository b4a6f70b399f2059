package config

const (
	DefaultPTTKey = "RControl"
	DefaultModel  = "whisper-1"

	freedesktopStartSound = "/usr/share/sounds/freedesktop/stereo/audio-volume-change.oga"
	freedesktopEndSound   = "/usr/share/sounds/freedesktop/stereo/screen-capture.oga"
	macOSStartSound       = "/System/Library/Sounds/Tink.aiff"
	macOSEndSound         = "/System/Library/Sounds/Morse.aiff"
)

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	return Config{
		PTTKey:              DefaultPTTKey,
		TypingDelayMS:       50,
		InitialDelayMS:      150,
		Model:               DefaultModel,
		SoundEnabled:        true,
		SoundStartPath:      freedesktopStartSound,
		SoundEndPath:        freedesktopEndSound,
		MacOSSoundStartPath: macOSStartSound,
		MacOSSoundEndPath:   macOSEndSound,
		LinuxSoundStartPath: freedesktopStartSound,
		LinuxSoundEndPath:   freedesktopEndSound,
		PasteOverrides:      map[string]string{},
	}
}
