// Package doctor checks that the helper tools and session environment the
// daemon shells out to are present before the event loop starts.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
)

// Check is one doctor assertion result. Only failing Required checks make
// the report fail.
type Check struct {
	Name     string
	Pass     bool
	Required bool
	Message  string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when every required check passes.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if check.Required && !check.Pass {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass, required first.
func (r Report) Failed() []Check {
	var required, optional []Check
	for _, check := range r.Checks {
		switch {
		case check.Pass:
		case check.Required:
			required = append(required, check)
		default:
			optional = append(optional, check)
		}
	}
	return append(required, optional...)
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		switch {
		case !check.Pass && check.Required:
			status = "FAIL"
		case !check.Pass:
			status = "WARN"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// defaultSource is swapped in tests.
var defaultSource = audio.DefaultSource

// Run executes the tool and environment checks for goos.
func Run(goos string) Report {
	if goos == "darwin" {
		return Report{Checks: []Check{
			required(checkBinary("osascript", "text injection and notifications")),
			checkBinary("afplay", "earcons"),
		}}
	}

	return Report{Checks: []Check{
		required(checkBinary("xdotool", "text injection")),
		checkBinary("xclip", "clipboard paste; typing fallback otherwise"),
		checkBinary("pw-record", "recorder fallback when the device cannot be opened"),
		checkBinary("paplay", "earcons; synthesized tone otherwise"),
		checkBinary("notify-send", "error notifications"),
		checkEnv("DISPLAY", func(v string) bool {
			return strings.TrimSpace(v) != ""
		}, "X11 display available", "DISPLAY is empty; X11 injection may fail"),
		checkAudioSource(),
	}}
}

func required(check Check) Check {
	check.Required = true
	return check
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, purpose string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s (needed for %s)", bin, purpose)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, purpose)}
}

// checkAudioSource asks the sound server for its default capture source.
func checkAudioSource() Check {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	source, err := defaultSource(ctx)
	if err != nil {
		return Check{Name: "audio.source", Pass: false, Message: err.Error()}
	}
	message := fmt.Sprintf("default source %q", source.Description)
	if source.Muted {
		message += " (muted)"
	}
	return Check{Name: "audio.source", Pass: true, Message: message}
}
