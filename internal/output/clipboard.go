package output

import (
	"context"
	"fmt"
	"time"
)

const clipboardSettle = 50 * time.Millisecond

// ClipboardPaste sets the X11 clipboard with xclip and synthesizes the paste
// shortcut for the focused window class with xdotool.
type ClipboardPaste struct {
	Overrides map[string]string
}

func (ClipboardPaste) Name() string { return "clipboard-paste" }

func (c ClipboardPaste) Inject(ctx context.Context, text string) error {
	if err := runCommandWithInput(ctx, []string{"xclip", "-selection", "clipboard"}, text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(clipboardSettle):
	}

	class, err := runCommandOutput(ctx, helperTimeout, []string{"xdotool", "getactivewindow", "getwindowclassname"})
	if err != nil {
		return fmt.Errorf("query active window class: %w", err)
	}

	shortcut := ResolvePasteShortcut(c.Overrides, class)
	if _, err := runCommandOutput(ctx, helperTimeout, []string{"xdotool", "key", "--clearmodifiers", shortcut}); err != nil {
		return fmt.Errorf("send paste shortcut %s: %w", shortcut, err)
	}
	return nil
}
