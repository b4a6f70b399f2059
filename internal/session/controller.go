// Package session runs the push-to-talk event loop: it polls the PTT key,
// drives the capture backend on press/release edges, and hands finished
// recordings to detached pipeline jobs.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
	"github.com/KonstantinSKY/voice-ptt/internal/fsm"
	"github.com/KonstantinSKY/voice-ptt/internal/indicator"
	"github.com/KonstantinSKY/voice-ptt/internal/keyboard"
	"github.com/KonstantinSKY/voice-ptt/internal/logging"
	"github.com/KonstantinSKY/voice-ptt/internal/pipeline"
)

// DefaultPollInterval is the key-state polling period.
const DefaultPollInterval = 20 * time.Millisecond

// KeyState reports whether a key is currently held.
type KeyState interface {
	IsPressed(keyboard.Key) bool
}

// Notifier is the earcon and notification surface used by the loop and its
// jobs. Implementations must not block the caller on helper I/O.
type Notifier interface {
	CueStart()
	CueEnd()
	Notify(ctx context.Context, title, message string)
}

// Options wires a Controller.
type Options struct {
	Key         keyboard.Key
	Keys        KeyState
	Backend     audio.Backend
	Transcriber pipeline.Transcriber
	Injector    pipeline.Injector
	Notifier    Notifier
	Logger      *slog.Logger
	Stdout      io.Writer
	Stderr      io.Writer
	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration
}

// Controller owns the loop state. Only the loop goroutine mutates it; State
// may be read from anywhere.
type Controller struct {
	opts   Options
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	mu    sync.RWMutex
	state fsm.State

	jobs sync.WaitGroup
}

// NewController constructs a controller in the idle state.
func NewController(opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		opts:   opts,
		stdout: newSyncWriter(opts.Stdout),
		stderr: newSyncWriter(opts.Stderr),
		logger: logger,
		state:  fsm.StateIdle,
	}
}

// State returns the current FSM state snapshot.
func (c *Controller) State() fsm.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// transition applies one FSM event to the controller state.
func (c *Controller) transition(event fsm.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fsm.Transition(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// ReadyLine is the prompt printed after each job.
func (c *Controller) ReadyLine() string {
	return fmt.Sprintf("Ready! Hold [%s] to speak.", c.opts.Key)
}

// Run polls the PTT key until ctx is done. It never blocks on a job.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		c.step(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until every spawned job has finished.
func (c *Controller) Wait() {
	c.jobs.Wait()
}

// WaitTimeout waits for in-flight jobs for at most d and reports whether they all finished.
func (c *Controller) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		c.jobs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

// step performs one poll: edge-detect the PTT key against the current state.
func (c *Controller) step(ctx context.Context) {
	pressed := c.opts.Keys.IsPressed(c.opts.Key)

	switch state := c.State(); {
	case pressed && state == fsm.StateIdle:
		c.press(ctx)
	case !pressed && state == fsm.StateRecording:
		c.release(ctx)
	case !pressed && state == fsm.StateError:
		_ = c.transition(fsm.EventReset)
	}
}

func (c *Controller) press(ctx context.Context) {
	if err := c.transition(fsm.EventPress); err != nil {
		c.logger.Error("press transition rejected", "error", err.Error())
		return
	}

	c.opts.Notifier.CueStart()
	fmt.Fprintln(c.stdout, "Recording...")

	if err := c.opts.Backend.Start(ctx); err != nil {
		_ = c.transition(fsm.EventFail)
		fmt.Fprintf(c.stderr, "error: recorder start: %v\n", err)
		c.logger.Error("capture start failed", "mode", c.opts.Backend.Mode(), "error", err.Error())
		c.opts.Notifier.Notify(ctx, indicator.ErrorTitle, err.Error())
	}
}

func (c *Controller) release(ctx context.Context) {
	if err := c.transition(fsm.EventRelease); err != nil {
		c.logger.Error("release transition rejected", "error", err.Error())
		return
	}

	artifact, err := c.opts.Backend.Stop(ctx)
	c.opts.Notifier.CueEnd()
	fmt.Fprintln(c.stdout, "Processing...")

	if err != nil {
		if errors.Is(err, audio.ErrEmptyRecording) {
			fmt.Fprintln(c.stderr, "warning: recorded audio is empty")
			c.logger.Warn("empty recording discarded", "mode", c.opts.Backend.Mode())
			return
		}
		fmt.Fprintf(c.stderr, "error: stop recording: %v\n", err)
		c.logger.Error("capture stop failed", "mode", c.opts.Backend.Mode(), "error", err.Error())
		c.opts.Notifier.Notify(ctx, indicator.ErrorTitle, err.Error())
		return
	}

	job := pipeline.Job{
		ID:          pipeline.NewID(),
		Mode:        c.opts.Backend.Mode(),
		Artifact:    artifact,
		Transcriber: c.opts.Transcriber,
		Injector:    c.opts.Injector,
		Notifier:    c.opts.Notifier,
		Logger:      c.logger,
		Out:         c.stdout,
		Err:         c.stderr,
		ReadyLine:   c.ReadyLine(),
	}
	c.logger.Debug("job spawned", "job_id", job.ID, "mode", job.Mode, "samples", len(artifact.Samples), "path", artifact.Path)

	// Jobs outlive loop cancellation so an in-flight dictation still lands.
	jobCtx := context.WithoutCancel(ctx)
	c.jobs.Add(1)
	go func() {
		defer c.jobs.Done()
		job.Run(jobCtx)
	}()
}
