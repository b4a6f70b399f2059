// Package output injects transcribed text into the focused application.
package output

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/config"
)

// Strategy delivers text to the focused window.
type Strategy interface {
	Name() string
	Inject(ctx context.Context, text string) error
}

// Injector waits the configured initial delay, then hands text to its strategy.
type Injector struct {
	strategy     Strategy
	initialDelay time.Duration
	logger       *slog.Logger
}

// NewInjector selects the strategy for the running platform.
func NewInjector(cfg config.Config, logger *slog.Logger) *Injector {
	return newInjector(cfg, logger, runtime.GOOS, exec.LookPath)
}

func newInjector(cfg config.Config, logger *slog.Logger, goos string, lookPath func(string) (string, error)) *Injector {
	return &Injector{
		strategy:     selectStrategy(cfg, goos, lookPath),
		initialDelay: cfg.InitialDelay(),
		logger:       logger,
	}
}

// NewInjectorWithStrategy builds an injector around an explicit strategy.
func NewInjectorWithStrategy(strategy Strategy, initialDelay time.Duration, logger *slog.Logger) *Injector {
	return &Injector{strategy: strategy, initialDelay: initialDelay, logger: logger}
}

func selectStrategy(cfg config.Config, goos string, lookPath func(string) (string, error)) Strategy {
	if goos == "darwin" {
		return AppleScriptPaste{}
	}
	if _, err := lookPath("xclip"); err == nil {
		return ClipboardPaste{Overrides: cfg.PasteOverrides}
	}
	return KeystrokeType{Delay: cfg.TypingDelay()}
}

// Strategy returns the selected injection strategy.
func (i *Injector) Strategy() Strategy {
	return i.strategy
}

// TypeText injects text. Empty text is a no-op and spawns nothing.
func (i *Injector) TypeText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	if i.initialDelay > 0 {
		timer := time.NewTimer(i.initialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if i.logger != nil {
		i.logger.Debug("injecting text", "strategy", i.strategy.Name(), "chars", len([]rune(text)))
	}
	return i.strategy.Inject(ctx, text)
}
