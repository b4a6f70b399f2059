package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePathPrefersExplicit(t *testing.T) {
	explicit := "/tmp/custom.toml"
	resolved, err := ResolvePath(explicit)
	require.NoError(t, err)
	require.Equal(t, explicit, resolved)
}

func TestResolvePathDefaultsNextToExecutable(t *testing.T) {
	dir, err := ExecutableDir()
	require.NoError(t, err)

	resolved, err := ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "config.toml"), resolved)
}

func TestLoadMissingConfigUsesDefaultsWithWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, loaded.Path)
	require.False(t, loaded.Exists)
	require.Equal(t, Default(), loaded.Config)
	require.NotEmpty(t, loaded.Warnings)
	require.Contains(t, loaded.Warnings[0].Message, "not found")
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	require.Equal(t, "RControl", cfg.PTTKey)
	require.Equal(t, uint64(50), cfg.TypingDelayMS)
	require.Equal(t, uint64(150), cfg.InitialDelayMS)
	require.Equal(t, "whisper-1", cfg.Model)
	require.Empty(t, cfg.Language)
	require.True(t, cfg.SoundEnabled)
	require.Empty(t, cfg.PasteOverrides)
}

func TestLoadExistingTOMLParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
ptt_key = "LAlt"
typing_delay_ms = 10
initial_delay_ms = 250
model = "gpt-4o-transcribe"
language = "de"
sound_enabled = false

[paste_overrides]
"Kitty" = "ctrl+shift+v"
"org.wezfurlong.wezterm" = "shift+Insert"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Exists)
	require.Empty(t, loaded.Warnings)

	cfg := loaded.Config
	require.Equal(t, "LAlt", cfg.PTTKey)
	require.Equal(t, uint64(10), cfg.TypingDelayMS)
	require.Equal(t, uint64(250), cfg.InitialDelayMS)
	require.Equal(t, "gpt-4o-transcribe", cfg.Model)
	require.Equal(t, "de", cfg.Language)
	require.False(t, cfg.SoundEnabled)
	require.Equal(t, map[string]string{
		"Kitty":                  "ctrl+shift+v",
		"org.wezfurlong.wezterm": "shift+Insert",
	}, cfg.PasteOverrides)
}

func TestLoadPartialTOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("language = \"en\"\n"), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Language = "en"
	require.Equal(t, want, loaded.Config)
}

func TestLoadUnknownKeyWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("ptt_kye = \"F9\"\n"), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Warnings, 1)
	require.Contains(t, loaded.Warnings[0].Message, `"ptt_kye"`)
}

func TestLoadParseErrorIncludesPathAndLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"whisper-1\"\nptt_key = RControl\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse config")
	require.Contains(t, err.Error(), path)
	require.Contains(t, err.Error(), "line 2")
}

func TestLoadRejectsEmptyModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"\"\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "model")
}

func TestSoundPathsPerOS(t *testing.T) {
	cfg := Default()

	start, end := cfg.SoundPaths("linux")
	require.Equal(t, "/usr/share/sounds/freedesktop/stereo/audio-volume-change.oga", start)
	require.Equal(t, "/usr/share/sounds/freedesktop/stereo/screen-capture.oga", end)

	start, end = cfg.SoundPaths("darwin")
	require.Equal(t, "/System/Library/Sounds/Tink.aiff", start)
	require.Equal(t, "/System/Library/Sounds/Morse.aiff", end)
}

func TestSoundPathsExplicitSharedPathWins(t *testing.T) {
	cfg, _, err := Parse(`
sound_start_path = "/opt/sounds/start.wav"
sound_end_path = "/opt/sounds/end.wav"
macos_sound_end_path = "/opt/sounds/mac-end.aiff"
`, Default())
	require.NoError(t, err)

	start, end := cfg.SoundPaths("linux")
	require.Equal(t, "/opt/sounds/start.wav", start)
	require.Equal(t, "/opt/sounds/end.wav", end)

	start, end = cfg.SoundPaths("darwin")
	require.Equal(t, "/opt/sounds/start.wav", start)
	require.Equal(t, "/opt/sounds/mac-end.aiff", end)
}
