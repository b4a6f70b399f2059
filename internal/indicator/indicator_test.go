package indicator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNotifierCuesPlayConfiguredFilesOnLinux(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "player-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "paplay", `printf 'paplay %s\n' "$*" >> "${STUB_ARGS_FILE}"`)

	start := writeCueFile(t, "start.oga")
	end := writeCueFile(t, "end.oga")

	cfg := config.Default()
	cfg.LinuxSoundStartPath = start
	cfg.LinuxSoundEndPath = end

	notifier := New(cfg, "linux", nil)
	notifier.CueStart()
	notifier.CueEnd()
	notifier.Wait()

	require.ElementsMatch(t, []string{"paplay " + start, "paplay " + end}, readLines(t, argsFile))
}

func TestNotifierCuesUseAfplayOnDarwin(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "player-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "afplay", `printf 'afplay %s\n' "$*" >> "${STUB_ARGS_FILE}"`)

	start := writeCueFile(t, "Tink.aiff")
	cfg := config.Default()
	cfg.MacOSSoundStartPath = start

	notifier := New(cfg, "darwin", nil)
	notifier.CueStart()
	notifier.Wait()

	require.Equal(t, []string{"afplay " + start}, readLines(t, argsFile))
}

func TestNotifierSoundDisabledPlaysNothing(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "player-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "paplay", `printf 'paplay %s\n' "$*" >> "${STUB_ARGS_FILE}"`)

	cfg := config.Default()
	cfg.SoundEnabled = false
	cfg.LinuxSoundStartPath = writeCueFile(t, "start.oga")

	notifier := New(cfg, "linux", nil)
	notifier.CueStart()
	notifier.CueEnd()
	notifier.Wait()

	_, err := os.Stat(argsFile)
	require.True(t, os.IsNotExist(err))
}

func TestNotifyUsesNotifySendOnLinux(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "notify-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "notify-send", `for arg in "$@"; do printf '%s\n' "$arg" >> "${STUB_ARGS_FILE}"; done`)

	notifier := New(config.Default(), "linux", nil)
	notifier.Notify(context.Background(), ErrorTitle, "OpenAI API error: invalid key")
	notifier.Wait()

	require.Equal(t, []string{"Voice PTT Error", "OpenAI API error: invalid key", "-t", "5000"}, readLines(t, argsFile))
}

func TestNotifyUsesAppleScriptOnDarwin(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "notify-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "osascript", `for arg in "$@"; do printf '%s\n' "$arg" >> "${STUB_ARGS_FILE}"; done`)

	notifier := New(config.Default(), "darwin", nil)
	notifier.Notify(context.Background(), ErrorTitle, `bad "key"`)
	notifier.Wait()

	require.Equal(t, []string{"-e", `display notification "bad \"key\"" with title "Voice PTT Error"`}, readLines(t, argsFile))
}

func TestNotifyDoesNotBlockCaller(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "notify-args.log")
	t.Setenv("STUB_ARGS_FILE", argsFile)
	installStub(t, "notify-send", `sleep 1; printf '%s\n' "$1" >> "${STUB_ARGS_FILE}"`)

	notifier := New(config.Default(), "linux", nil)
	ctx, cancel := context.WithCancel(context.Background())

	started := time.Now()
	notifier.Notify(ctx, ErrorTitle, "message")
	require.Less(t, time.Since(started), 500*time.Millisecond)
	cancel()

	notifier.Wait()
	require.Equal(t, []string{"Voice PTT Error"}, readLines(t, argsFile))
}

func TestNotifyFailureIsSwallowed(t *testing.T) {
	installStub(t, "notify-send", `echo "no bus" >&2; exit 1`)

	notifier := New(config.Default(), "linux", nil)
	require.NotPanics(t, func() {
		notifier.Notify(context.Background(), ErrorTitle, "message")
		notifier.Wait()
	})

	err := desktopNotify(context.Background(), "linux", ErrorTitle, "message")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no bus")
}

func installStub(t *testing.T, name, body string) {
	t.Helper()

	dir := t.TempDir()
	script := "#!/usr/bin/env bash\nset -euo pipefail\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}

func writeCueFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("cue"), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
