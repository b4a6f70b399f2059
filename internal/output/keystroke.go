package output

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// KeystrokeType types text key by key with xdotool.
type KeystrokeType struct {
	Delay time.Duration
}

func (KeystrokeType) Name() string { return "keystroke-type" }

func (k KeystrokeType) Inject(ctx context.Context, text string) error {
	argv := []string{"xdotool", "type", "--clearmodifiers", "--delay", fmt.Sprint(k.Delay.Milliseconds()), text}
	if _, err := runCommandOutput(ctx, typingTimeout(text, k.Delay), argv); err != nil {
		return fmt.Errorf("type text: %w", err)
	}
	return nil
}

// typingTimeout covers one delay per character on top of the regular helper budget.
func typingTimeout(text string, delay time.Duration) time.Duration {
	if delay <= 0 {
		return helperTimeout
	}
	return helperTimeout + time.Duration(utf8.RuneCountInString(text))*delay
}
