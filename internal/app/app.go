package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
	"github.com/KonstantinSKY/voice-ptt/internal/cli"
	"github.com/KonstantinSKY/voice-ptt/internal/config"
	"github.com/KonstantinSKY/voice-ptt/internal/doctor"
	"github.com/KonstantinSKY/voice-ptt/internal/indicator"
	"github.com/KonstantinSKY/voice-ptt/internal/keyboard"
	"github.com/KonstantinSKY/voice-ptt/internal/logging"
	"github.com/KonstantinSKY/voice-ptt/internal/output"
	"github.com/KonstantinSKY/voice-ptt/internal/session"
	"github.com/KonstantinSKY/voice-ptt/internal/transcribe"
	"github.com/KonstantinSKY/voice-ptt/internal/version"
)

const (
	binaryName      = "voice-ptt"
	shutdownJobWait = 5 * time.Second
)

// KeySource is a started keyboard state tracker.
type KeySource interface {
	session.KeyState
	Done() <-chan struct{}
}

// Runner executes the daemon. Zero-value seams use the real platform
// implementations.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	GOOS          string
	Doctor        func(goos string) doctor.Report
	ExecutableDir func() (string, error)
	OpenBackend   func(*slog.Logger) (audio.Backend, error)
	StartKeys     func(context.Context, *slog.Logger) KeySource
	Transcribe    transcribe.Option
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	if err := cli.Parse(args); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText(binaryName))
		return 2
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}
	r = r.withDefaults()

	logger.Info("startup", "version", version.String(), "goos", r.GOOS, "log", logRuntime.Path)

	report := r.Doctor(r.GOOS)
	if !report.OK() {
		fmt.Fprintln(r.Stderr, report.String())
		fmt.Fprintln(r.Stderr, "error: required tools are missing")
		logger.Error("doctor failed", "report", report.String())
		return 1
	}
	for _, check := range report.Failed() {
		fmt.Fprintf(r.Stderr, "warning: %s: %s\n", check.Name, check.Message)
		logger.Warn("optional check failed", "check", check.Name, "message", check.Message)
	}

	exeDir, err := r.ExecutableDir()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	apiKey, err := config.LoadAPIKey(exeDir)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load api key failed", "error", err.Error())
		return 1
	}

	cfgLoaded, err := config.Load(filepath.Join(exeDir, config.FileName))
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}
	cfg := cfgLoaded.Config

	key, ok := keyboard.Resolve(cfg.PTTKey)
	if !ok && strings.TrimSpace(cfg.PTTKey) != "" {
		fmt.Fprintf(r.Stderr, "warning: unknown ptt_key %q; using %s\n", cfg.PTTKey, key)
		logger.Warn("unknown ptt key", "ptt_key", cfg.PTTKey, "fallback", key.String(), "known", keyboard.Names())
	}

	fmt.Fprintln(r.Stdout, "Init audio...")
	backend, primaryErr := r.OpenBackend(logger)
	if backend == nil {
		fmt.Fprintf(r.Stderr, "error: audio capture: %v\n", primaryErr)
		return 1
	}
	defer func() { _ = backend.Close() }()
	if primaryErr != nil {
		fmt.Fprintf(r.Stderr, "warning: audio capture init failed: %v\n", primaryErr)
		fmt.Fprintln(r.Stderr, "warning: falling back to PipeWire recorder (pw-record)")
		logger.Warn("primary capture unavailable; using fallback", "error", primaryErr.Error())
	} else if named, ok := backend.(interface{ DeviceName() string }); ok {
		fmt.Fprintf(r.Stdout, "Using input device: %s\n", named.DeviceName())
	}

	logger.Info("config loaded",
		"config", cfgLoaded.Path,
		"config_exists", cfgLoaded.Exists,
		"ptt_key", key.String(),
		"model", cfg.Model,
		"language", cfg.Language,
		"capture_mode", backend.Mode(),
	)

	transcribeOpts := []transcribe.Option{transcribe.WithLogger(logger)}
	if r.Transcribe != nil {
		transcribeOpts = append(transcribeOpts, r.Transcribe)
	}
	client := transcribe.New(apiKey, cfg.Model, cfg.Language, transcribeOpts...)
	injector := output.NewInjector(cfg, logger)
	notifier := indicator.New(cfg, r.GOOS, logger)
	logger.Info("injector selected", "strategy", injector.Strategy().Name())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys := r.StartKeys(runCtx, logger)

	controller := session.NewController(session.Options{
		Key:         key,
		Keys:        keys,
		Backend:     backend,
		Transcriber: client,
		Injector:    injector,
		Notifier:    notifier,
		Logger:      logger,
		Stdout:      r.Stdout,
		Stderr:      r.Stderr,
	})

	fmt.Fprintf(r.Stdout, "Voice PTT %s is ready! Hold [%s] to speak.\n", version.Version, key)

	var hookStopped atomic.Bool
	go func() {
		select {
		case <-keys.Done():
			if runCtx.Err() == nil {
				hookStopped.Store(true)
				cancel()
			}
		case <-runCtx.Done():
		}
	}()

	controller.Run(runCtx)
	cancel()

	if !controller.WaitTimeout(shutdownJobWait) {
		logger.Warn("shutdown with jobs still in flight")
	}
	notifier.Wait()

	if hookStopped.Load() {
		fmt.Fprintln(r.Stderr, "error: keyboard hook stopped")
		logger.Error("keyboard hook stopped")
		return 1
	}
	logger.Info("shutdown")
	return 0
}

func (r Runner) withDefaults() Runner {
	if r.GOOS == "" {
		r.GOOS = runtime.GOOS
	}
	if r.Doctor == nil {
		r.Doctor = doctor.Run
	}
	if r.ExecutableDir == nil {
		r.ExecutableDir = config.ExecutableDir
	}
	if r.OpenBackend == nil {
		r.OpenBackend = audio.Open
	}
	if r.StartKeys == nil {
		r.StartKeys = func(ctx context.Context, logger *slog.Logger) KeySource {
			hook := keyboard.NewHook(logger)
			hook.Start(ctx)
			return hook
		}
	}
	return r
}
