// Package pipeline runs one detached transcribe-then-inject job per recording.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
	"github.com/KonstantinSKY/voice-ptt/internal/indicator"
	"github.com/google/uuid"
)

// Transcriber converts a recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []int16, spec audio.WAVSpec) (string, error)
	TranscribeWAVFile(ctx context.Context, path string) (string, error)
}

// Injector delivers text to the focused window.
type Injector interface {
	TypeText(ctx context.Context, text string) error
}

// Notifier raises user-visible failure notifications.
type Notifier interface {
	Notify(ctx context.Context, title, message string)
}

// Stage names where a job stopped.
type Stage string

const (
	StageTranscribe Stage = "transcribe"
	StageInject     Stage = "inject"
	StageDone       Stage = "done"
)

// Job owns one recording artifact. Jobs share no mutable state with each
// other or with the event loop.
type Job struct {
	ID       string
	Mode     audio.Mode
	Artifact audio.Artifact

	Transcriber Transcriber
	Injector    Injector
	Notifier    Notifier
	Logger      *slog.Logger

	// Out receives progress lines; Err receives failure lines.
	Out io.Writer
	Err io.Writer
	// ReadyLine is printed when the job finishes, success or not.
	ReadyLine string
}

// Result summarizes one job for structured logging.
type Result struct {
	ID         string
	Mode       audio.Mode
	Samples    int
	Path       string
	Transcript string
	Stage      Stage
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewID returns a fresh job identifier.
func NewID() string {
	return uuid.NewString()
}

// Run transcribes the artifact, injects the text, and removes any recording
// file. Failures are reported through Notifier and never returned.
func (j Job) Run(ctx context.Context) Result {
	result := Result{
		ID:        j.ID,
		Mode:      j.Mode,
		Samples:   len(j.Artifact.Samples),
		Path:      j.Artifact.Path,
		StartedAt: time.Now(),
	}
	defer func() {
		j.cleanup()
		result.FinishedAt = time.Now()
		logJobResult(j.Logger, result)
		if j.ReadyLine != "" {
			j.printf(j.Out, "\n%s\n", j.ReadyLine)
		}
	}()

	text, err := j.transcribe(ctx)
	if err != nil {
		result.Stage = StageTranscribe
		result.Err = err
		j.printf(j.Err, "API Error: %v\n", err)
		j.notify(ctx, err)
		return result
	}
	result.Transcript = text
	j.printf(j.Out, "Transcribed: '%s'\n", text)

	if err := j.Injector.TypeText(ctx, text); err != nil {
		result.Stage = StageInject
		result.Err = fmt.Errorf("inject text: %w", err)
		j.printf(j.Err, "Injection error: %v\n", err)
		j.notify(ctx, result.Err)
		return result
	}

	result.Stage = StageDone
	return result
}

func (j Job) transcribe(ctx context.Context) (string, error) {
	if j.Artifact.IsFile() {
		return j.Transcriber.TranscribeWAVFile(ctx, j.Artifact.Path)
	}
	return j.Transcriber.Transcribe(ctx, j.Artifact.Samples, j.Artifact.Spec)
}

func (j Job) cleanup() {
	if !j.Artifact.IsFile() {
		return
	}
	if err := os.Remove(j.Artifact.Path); err != nil && !os.IsNotExist(err) && j.Logger != nil {
		j.Logger.Warn("remove recording failed", "job_id", j.ID, "path", j.Artifact.Path, "error", err.Error())
	}
}

func (j Job) notify(ctx context.Context, err error) {
	if j.Notifier == nil {
		return
	}
	j.Notifier.Notify(ctx, indicator.ErrorTitle, err.Error())
}

func (j Job) printf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}

func logJobResult(logger *slog.Logger, result Result) {
	if logger == nil {
		return
	}
	fields := []any{
		"job_id", result.ID,
		"mode", result.Mode,
		"stage", result.Stage,
		"samples", result.Samples,
		"path", result.Path,
		"started_at", result.StartedAt.Format(time.RFC3339Nano),
		"finished_at", result.FinishedAt.Format(time.RFC3339Nano),
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
		"transcript_length", len(result.Transcript),
	}

	if result.Err != nil {
		logger.Error("job failed", append(fields, "error", result.Err.Error())...)
		return
	}
	logger.Info("job complete", fields...)
}
