package indicator

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const notifyTimeoutMS = "5000"

// desktopNotify raises a notification with notify-send, or AppleScript on macOS.
func desktopNotify(ctx context.Context, goos, title, message string) error {
	var cmd *exec.Cmd
	if goos == "darwin" {
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
		cmd = exec.CommandContext(ctx, "osascript", "-e", script)
	} else {
		cmd = exec.CommandContext(ctx, "notify-send", title, message, "-t", notifyTimeoutMS)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return fmt.Errorf("desktop notify failed: %w", err)
		}
		return fmt.Errorf("desktop notify failed: %w (%s)", err, trimmed)
	}
	return nil
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeAppleScript(text string) string {
	return appleScriptEscaper.Replace(text)
}
