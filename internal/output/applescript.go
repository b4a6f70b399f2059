package output

import (
	"context"
	"fmt"
	"strings"
)

// AppleScriptPaste pastes through the macOS clipboard and restores the
// previous clipboard contents afterwards.
type AppleScriptPaste struct{}

func (AppleScriptPaste) Name() string { return "applescript-paste" }

func (AppleScriptPaste) Inject(ctx context.Context, text string) error {
	if _, err := runCommandOutput(ctx, helperTimeout, appleScriptArgv(text)); err != nil {
		return fmt.Errorf("paste via osascript: %w", err)
	}
	return nil
}

func appleScriptArgv(text string) []string {
	lines := []string{
		`set savedClipboard to ""`,
		`try`,
		`set savedClipboard to the clipboard`,
		`end try`,
		`set the clipboard to "` + escapeAppleScript(text) + `"`,
		`tell application "System Events" to keystroke "v" using command down`,
		`delay 0.1`,
		`set the clipboard to savedClipboard`,
	}

	argv := make([]string, 0, 1+2*len(lines))
	argv = append(argv, "osascript")
	for _, line := range lines {
		argv = append(argv, "-e", line)
	}
	return argv
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeAppleScript(text string) string {
	return appleScriptEscaper.Replace(text)
}
