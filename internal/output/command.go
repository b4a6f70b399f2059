package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	helperTimeout   = 2 * time.Second
	helperWaitDelay = 250 * time.Millisecond
)

// runCommandWithInput executes argv and writes input to its stdin. Stdout and
// stderr stay unattached: xclip forks a selection owner that inherits any
// pipes and keeps them open until another client takes the clipboard.
func runCommandWithInput(ctx context.Context, argv []string, input string) error {
	if len(argv) == 0 {
		return fmt.Errorf("command argv cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, helperTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = helperWaitDelay
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}

// runCommandOutput executes argv under timeout and returns trimmed stdout.
// Failures include the helper's combined output.
func runCommandOutput(ctx context.Context, timeout time.Duration, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("command argv cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = helperWaitDelay

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start command %s: %w", argv[0], err)
	}

	// ErrWaitDelay means the helper exited cleanly but a child still holds its output.
	if err := cmd.Wait(); err != nil && !errors.Is(err, exec.ErrWaitDelay) {
		detail := strings.TrimSpace(stderr.String() + " " + stdout.String())
		if detail == "" {
			return "", fmt.Errorf("%s failed: %w", argv[0], err)
		}
		return "", fmt.Errorf("%s failed: %w (%s)", argv[0], err, detail)
	}
	return strings.TrimSpace(stdout.String()), nil
}
