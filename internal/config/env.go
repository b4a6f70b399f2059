package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyEnv names the environment variable carrying the transcription API key.
const APIKeyEnv = "OPENAI_API_KEY"

// ErrMissingAPIKey indicates OPENAI_API_KEY is unset after .env loading.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " environment variable must be set")

// LoadAPIKey loads .env from dir (or the working directory when dir has none)
// without overriding existing variables, then reads OPENAI_API_KEY.
func LoadAPIKey(dir string) (string, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("load %s: %w", envPath, err)
		}
	} else {
		_ = godotenv.Load()
	}

	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}
