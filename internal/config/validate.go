package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model must not be empty")
	}
	if strings.TrimSpace(cfg.PTTKey) == "" {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("ptt_key is empty; using %s", DefaultPTTKey)})
	}

	classes := make([]string, 0, len(cfg.PasteOverrides))
	for class := range cfg.PasteOverrides {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	seen := make(map[string]string, len(classes))
	for _, class := range classes {
		if strings.TrimSpace(class) == "" {
			return nil, fmt.Errorf("paste_overrides contains an empty window class")
		}
		if strings.TrimSpace(cfg.PasteOverrides[class]) == "" {
			return nil, fmt.Errorf("paste_overrides[%q] must not be empty", class)
		}
		folded := FoldWindowClass(class)
		if first, ok := seen[folded]; ok {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("paste_overrides keys %q and %q differ only by case; using %q", first, class, first)})
			continue
		}
		seen[folded] = class
	}

	return warnings, nil
}

// FoldWindowClass lowercases ASCII letters only, so "KİTTY" and "kitty" stay
// distinct the same way the paste override lookup treats them.
func FoldWindowClass(class string) string {
	b := []byte(class)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
