// Package indicator plays start/end earcons and raises desktop notifications.
package indicator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/config"
)

// ErrorTitle is the title of every failure notification.
const ErrorTitle = "Voice PTT Error"

// Notifier is the concrete earcon and notification sink used by the session.
type Notifier struct {
	goos         string
	soundEnabled bool
	startPath    string
	endPath      string
	logger       *slog.Logger

	soundMu sync.Mutex
	pending sync.WaitGroup
}

// New builds a notifier for goos from the sound settings in cfg.
func New(cfg config.Config, goos string, logger *slog.Logger) *Notifier {
	start, end := cfg.SoundPaths(goos)
	return &Notifier{
		goos:         goos,
		soundEnabled: cfg.SoundEnabled,
		startPath:    expandUserPath(start),
		endPath:      expandUserPath(end),
		logger:       logger,
	}
}

// CueStart plays the recording-start earcon without blocking.
func (n *Notifier) CueStart() {
	n.playCue(cueStart, n.startPath)
}

// CueEnd plays the recording-end earcon without blocking.
func (n *Notifier) CueEnd() {
	n.playCue(cueEnd, n.endPath)
}

// Notify shows a desktop notification without blocking the caller. Failures
// are logged, never returned.
func (n *Notifier) Notify(ctx context.Context, title, message string) {
	ctx = context.WithoutCancel(ctx)
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		n.run(ctx, func(ctx context.Context) error {
			return desktopNotify(ctx, n.goos, title, message)
		})
	}()
}

// Wait blocks until queued earcons and notifications have finished.
func (n *Notifier) Wait() {
	n.pending.Wait()
}

// run executes a notification with a bounded timeout.
func (n *Notifier) run(ctx context.Context, fn func(context.Context) error) {
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := fn(runCtx); err != nil {
		n.log("notification dispatch failed", err)
	}
}

// playCue serializes cue playback and emits audio asynchronously.
func (n *Notifier) playCue(kind cueKind, path string) {
	if !n.soundEnabled {
		return
	}
	n.pending.Add(1)
	go func() {
		defer n.pending.Done()
		n.soundMu.Lock()
		defer n.soundMu.Unlock()
		if err := emitCue(context.Background(), n.goos, kind, path); err != nil {
			n.log("earcon playback failed", err)
		}
	}()
}

// log emits debug-only indicator failures to the runtime logger.
func (n *Notifier) log(message string, err error) {
	if n.logger == nil || err == nil {
		return
	}
	n.logger.Debug(message, "error", err.Error())
}
