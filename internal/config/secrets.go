package config

import (
	"fmt"
	"os"
	"strings"
)

// ReadSecret resolves a relay credential. A mounted secret named by
// <key>_FILE takes precedence over the <key> variable itself, so a stale
// plain variable cannot shadow a rotated Docker or Kubernetes secret.
//
// Only the trailing line break of a secret file is dropped. Leading and
// trailing spaces are part of the credential.
func ReadSecret(key string) (string, error) {
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return os.Getenv(key), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return "", fmt.Errorf("failed to read %s_FILE: %w", key, err)
	}

	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}
