package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// resolveJWTSecret prefers the explicit value, then the secret file, and
// finally generates a 256-bit secret and persists it so tokens survive restarts.
func resolveJWTSecret(explicit, file string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if data, err := os.ReadFile(file); err == nil {
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	if err := saveSecret(file, secret); err != nil {
		// the secret still works for this process; tokens just won't survive a restart
		log.Printf("config: jwt secret not persisted path=%s error=%v", file, err)
	}
	return secret, nil
}

func saveSecret(file, secret string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return err
	}
	return os.WriteFile(file, []byte(secret), 0o600)
}
