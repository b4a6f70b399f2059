package keyboard

import (
	"context"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// Hook mirrors the global pressed-key set from gohook events so the event
// loop can poll key state instead of registering callbacks.
type Hook struct {
	logger *slog.Logger

	mu      sync.RWMutex
	pressed map[uint16]bool

	done chan struct{}
}

// NewHook returns an empty key-state tracker. Call Start to attach it to the OS hook.
func NewHook(logger *slog.Logger) *Hook {
	return &Hook{
		logger:  logger,
		pressed: make(map[uint16]bool),
		done:    make(chan struct{}),
	}
}

// Start installs the global keyboard hook and consumes events until ctx is done.
func (h *Hook) Start(ctx context.Context) {
	events := hook.Start()
	go func() {
		defer close(h.done)
		for {
			select {
			case <-ctx.Done():
				hook.End()
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				h.observe(ev)
			}
		}
	}()
}

// Done is closed once the hook stops delivering events.
func (h *Hook) Done() <-chan struct{} {
	return h.done
}

// IsPressed reports whether key is currently held.
func (h *Hook) IsPressed(key Key) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pressed[key.Code]
}

// observe folds one hook event into the pressed-key set.
//
// gohook reports physical presses as KeyHold and releases as KeyUp; KeyDown
// is the synthesized "typed" event and only counts when it carries a keycode.
func (h *Hook) observe(ev hook.Event) {
	switch ev.Kind {
	case hook.KeyHold, hook.KeyDown:
		if ev.Keycode == 0 {
			return
		}
		h.mu.Lock()
		h.pressed[ev.Keycode] = true
		h.mu.Unlock()
	case hook.KeyUp:
		h.mu.Lock()
		delete(h.pressed, ev.Keycode)
		h.mu.Unlock()
	case hook.HookDisabled:
		h.mu.Lock()
		clear(h.pressed)
		h.mu.Unlock()
		if h.logger != nil {
			h.logger.Warn("keyboard hook disabled")
		}
	}
}
