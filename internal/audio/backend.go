// Package audio captures push-to-talk recordings through an in-process device
// callback (primary) or a spawned recorder subprocess (fallback).
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// WAVHeaderSize is the size of a canonical PCM WAV header. Files of this size
// or smaller hold no audio.
const WAVHeaderSize = 44

var (
	// ErrEmptyRecording indicates stop produced no usable audio.
	ErrEmptyRecording = errors.New("recorded audio is empty")
	// ErrUnsupportedFormat indicates the device sample format is neither f32 nor s16.
	ErrUnsupportedFormat = errors.New("unsupported sample format")
)

// Mode names the active capture variant.
type Mode string

const (
	ModePrimary  Mode = "primary"
	ModeFallback Mode = "fallback"
)

// WAVSpec describes the PCM layout of a recording.
type WAVSpec struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

func (s WAVSpec) String() string {
	return fmt.Sprintf("%dHz/%dch/s%d", s.SampleRate, s.Channels, s.BitsPerSample)
}

// Artifact is the product of one stop: either an in-memory sample snapshot or
// a path to a finished WAV file. Exactly one of Samples and Path is set.
type Artifact struct {
	Samples []int16
	Path    string
	Spec    WAVSpec
}

// IsFile reports whether the artifact refers to a WAV file on disk.
func (a Artifact) IsFile() bool {
	return a.Path != ""
}

// Backend is the capture contract driven by the event loop.
type Backend interface {
	Mode() Mode
	// Recording reports whether a capture is in progress.
	Recording() bool
	// Start begins accumulating audio. Calling it while recording is a no-op.
	Start(context.Context) error
	// Stop ends the capture and returns its artifact, or ErrEmptyRecording.
	Stop(context.Context) (Artifact, error)
	Close() error
}

// Open prefers the primary device capture and falls back to the recorder
// subprocess. When the fallback is returned, primaryErr explains why.
func Open(logger *slog.Logger) (backend Backend, primaryErr error) {
	primary, err := NewPrimary(logger)
	if err == nil {
		return primary, nil
	}
	return NewFallback(logger), err
}
