package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
	"github.com/stretchr/testify/require"
)

func TestReportOKIgnoresOptionalFailures(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "xdotool", Pass: true, Required: true, Message: "good"},
		{Name: "xclip", Pass: false, Message: "missing"},
	}}
	require.True(t, report.OK())

	text := report.String()
	require.Contains(t, text, "[OK] xdotool: good")
	require.Contains(t, text, "[WARN] xclip: missing")
}

func TestReportFailsOnRequiredCheck(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "xclip", Pass: false, Message: "missing"},
		{Name: "xdotool", Pass: false, Required: true, Message: "missing"},
	}}
	require.False(t, report.OK())
	require.Contains(t, report.String(), "[FAIL] xdotool: missing")

	failed := report.Failed()
	require.Len(t, failed, 2)
	require.Equal(t, "xdotool", failed[0].Name)
}

func TestRunLinuxRequiresXdotool(t *testing.T) {
	stubSource(t, audio.Source{Description: "Built-in Microphone"}, nil)
	t.Setenv("PATH", t.TempDir())

	report := Run("linux")
	require.False(t, report.OK())

	byName := checksByName(report)
	require.True(t, byName["xdotool"].Required)
	require.False(t, byName["xclip"].Required)
	require.False(t, byName["pw-record"].Required)
	require.True(t, byName["audio.source"].Pass)
	require.Contains(t, byName["audio.source"].Message, "Built-in Microphone")
}

func TestRunLinuxPassesWithOnlyXdotool(t *testing.T) {
	stubSource(t, audio.Source{}, errors.New("connect pulse server: no such file"))
	dir := t.TempDir()
	writeFakeBin(t, dir, "xdotool")
	t.Setenv("PATH", dir)

	report := Run("linux")
	require.True(t, report.OK())
	require.False(t, checksByName(report)["audio.source"].Pass)
}

func TestRunDarwinRequiresOsascript(t *testing.T) {
	dir := t.TempDir()
	writeFakeBin(t, dir, "osascript")
	t.Setenv("PATH", dir)

	report := Run("darwin")
	require.True(t, report.OK())

	byName := checksByName(report)
	require.True(t, byName["osascript"].Pass)
	require.False(t, byName["afplay"].Pass)
	require.Len(t, report.Checks, 2)
}

func TestCheckEnv(t *testing.T) {
	t.Setenv("TEST_DOCTOR_ENV", ":0")

	check := checkEnv("TEST_DOCTOR_ENV", func(v string) bool { return v != "" }, "looks good", "unexpected")
	require.True(t, check.Pass)
	require.Equal(t, "looks good", check.Message)
}

func TestCheckBinaryMissing(t *testing.T) {
	check := checkBinary("definitely-not-a-real-binary", "unused")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "binary not found")
}

func TestCheckAudioSourceReportsMuted(t *testing.T) {
	stubSource(t, audio.Source{Description: "USB Mic", Muted: true}, nil)

	check := checkAudioSource()
	require.True(t, check.Pass)
	require.Equal(t, `default source "USB Mic" (muted)`, check.Message)
}

func stubSource(t *testing.T, source audio.Source, err error) {
	t.Helper()
	original := defaultSource
	defaultSource = func(context.Context) (audio.Source, error) { return source, err }
	t.Cleanup(func() { defaultSource = original })
}

func writeFakeBin(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755))
}

func checksByName(report Report) map[string]Check {
	out := make(map[string]Check, len(report.Checks))
	for _, check := range report.Checks {
		out[check.Name] = check
	}
	return out
}
