package output

import (
	"sort"
	"strings"

	"github.com/KonstantinSKY/voice-ptt/internal/config"
)

// DefaultPasteShortcut is the xdotool key spec used when no override matches.
const DefaultPasteShortcut = "ctrl+v"

// ResolvePasteShortcut returns the override whose key equals class under ASCII
// case folding. When several keys fold together the lexically first wins.
func ResolvePasteShortcut(overrides map[string]string, class string) string {
	class = strings.TrimSpace(class)
	if class == "" || len(overrides) == 0 {
		return DefaultPasteShortcut
	}

	folded := config.FoldWindowClass(class)
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if config.FoldWindowClass(key) == folded {
			if shortcut := strings.TrimSpace(overrides[key]); shortcut != "" {
				return shortcut
			}
		}
	}
	return DefaultPasteShortcut
}
