package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	base := Default()
	content, err := os.ReadFile(resolvedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Loaded{
				Path:   resolvedPath,
				Config: base,
				Warnings: []Warning{{
					Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
				}},
				Exists: false,
			}, nil
		}
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	cfg, warnings, err := Parse(string(content), base)
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, err)
	}

	return Loaded{
		Path:     resolvedPath,
		Config:   cfg,
		Warnings: warnings,
		Exists:   true,
	}, nil
}

// Parse decodes TOML content on top of base. Keys absent from content keep their base value.
func Parse(content string, base Config) (Config, []Warning, error) {
	cfg := base
	cfg.PasteOverrides = make(map[string]string, len(base.PasteOverrides))
	for class, shortcut := range base.PasteOverrides {
		cfg.PasteOverrides[class] = shortcut
	}

	md, err := toml.Decode(content, &cfg)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return Config{}, nil, fmt.Errorf("line %d: %s", parseErr.Position.Line, parseErr.Message)
		}
		return Config{}, nil, err
	}

	// An explicit shared path wins over the built-in per-OS defaults.
	if md.IsDefined("sound_start_path") {
		if !md.IsDefined("macos_sound_start_path") {
			cfg.MacOSSoundStartPath = ""
		}
		if !md.IsDefined("linux_sound_start_path") {
			cfg.LinuxSoundStartPath = ""
		}
	}
	if md.IsDefined("sound_end_path") {
		if !md.IsDefined("macos_sound_end_path") {
			cfg.MacOSSoundEndPath = ""
		}
		if !md.IsDefined("linux_sound_end_path") {
			cfg.LinuxSoundEndPath = ""
		}
	}
	cfg.Language = strings.TrimSpace(cfg.Language)

	warnings := make([]Warning, 0)
	for _, key := range md.Undecoded() {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("unknown config key %q ignored", key.String())})
	}

	validated, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, append(warnings, validated...), nil
}
