// Package cli validates the command line. The daemon takes no arguments.
package cli

import (
	"fmt"
	"strings"
)

// Parse rejects any argument.
func Parse(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s

Hold the push-to-talk key to record, release it to transcribe and type the
text into the focused window. %[1]s takes no arguments.

Files (next to the executable):
  config.toml   ptt_key, delays, model, language, sounds, paste_overrides
  .env          OPENAI_API_KEY (falls back to .env in the working directory)

Environment:
  OPENAI_API_KEY        transcription API key (required)
  VOICE_PTT_LOG_LEVEL   debug|info|warn|error (default: info)
`, binaryName)
}
