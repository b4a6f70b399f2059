package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// FallbackSpec is the fixed layout requested from the recorder subprocess.
var FallbackSpec = WAVSpec{SampleRate: 16000, Channels: 1, BitsPerSample: 16}

const defaultRecorder = "pw-record"

// Fallback records through a pw-record child process writing a temp WAV file.
// A non-nil child means a recording is in progress.
type Fallback struct {
	logger *slog.Logger

	recorder    string
	dir         string
	now         func() time.Time
	stopTimeout time.Duration

	mu   sync.Mutex
	cmd  *exec.Cmd
	path string
}

// NewFallback returns an idle recorder-subprocess backend.
func NewFallback(logger *slog.Logger) *Fallback {
	return &Fallback{
		logger:      logger,
		recorder:    defaultRecorder,
		dir:         os.TempDir(),
		now:         time.Now,
		stopTimeout: 2 * time.Second,
	}
}

func (f *Fallback) Mode() Mode {
	return ModeFallback
}

func (f *Fallback) Recording() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmd != nil
}

// Start spawns the recorder writing to <tmp>/voice-ptt-<epoch-ms>.wav.
func (f *Fallback) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cmd != nil {
		return nil
	}

	path := filepath.Join(f.dir, fmt.Sprintf("voice-ptt-%d.wav", f.now().UnixMilli()))
	cmd := exec.Command(
		f.recorder,
		"--rate", fmt.Sprint(FallbackSpec.SampleRate),
		"--channels", fmt.Sprint(FallbackSpec.Channels),
		"--format", "s16",
		path,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s (install PipeWire tools and ensure PipeWire is running): %w", f.recorder, err)
	}

	f.cmd = cmd
	f.path = path
	if f.logger != nil {
		f.logger.Debug("recorder started", "pid", cmd.Process.Pid, "path", path)
	}
	return nil
}

// Stop signals the recorder, waits for it, and returns the WAV path when the
// file holds more than a bare header. Smaller files are removed.
func (f *Fallback) Stop(context.Context) (Artifact, error) {
	f.mu.Lock()
	cmd, path := f.cmd, f.path
	f.cmd, f.path = nil, ""
	f.mu.Unlock()

	if cmd == nil {
		return Artifact{}, ErrEmptyRecording
	}

	f.terminate(cmd)

	info, err := os.Stat(path)
	if err != nil || info.Size() <= WAVHeaderSize {
		_ = os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Artifact{}, fmt.Errorf("stat recording %q: %w", path, err)
		}
		return Artifact{}, ErrEmptyRecording
	}

	return Artifact{Path: path, Spec: FallbackSpec}, nil
}

// terminate interrupts the recorder so it can finalize the WAV header, and
// kills it if it has not exited within stopTimeout.
func (f *Fallback) terminate(cmd *exec.Cmd) {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}

	select {
	case <-done:
	case <-time.After(f.stopTimeout):
		_ = cmd.Process.Kill()
		<-done
		if f.logger != nil {
			f.logger.Warn("recorder did not exit on interrupt; killed", "pid", cmd.Process.Pid)
		}
	}
}

// Close stops any in-flight recording and discards its file.
func (f *Fallback) Close() error {
	art, err := f.Stop(context.Background())
	if err == nil && art.Path != "" {
		_ = os.Remove(art.Path)
	}
	return nil
}
