package version

import "runtime"

var (
	Version = "v0.1.2"
	Commit  = "none"
	Date    = "unknown"
)

// String is the full build description logged at startup.
func String() string {
	return "voice-ptt " + Version + " (commit=" + Commit + ", date=" + Date + ", go=" + runtime.Version() + ")"
}
