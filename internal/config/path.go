package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the config file expected next to the executable.
const FileName = "config.toml"

// ResolvePath returns explicit when set, otherwise config.toml in the executable directory.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	dir, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ExecutableDir resolves the directory holding the running binary, following symlinks.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
