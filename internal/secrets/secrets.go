// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Elsevier API credentials from a directory of plain-text
// files. Each file holds one secret: the filename is the key name and the
// trimmed file contents are the value.
package secrets

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Key names recognized by citation-cache.
const (
	ElsevierAPIKey    = "elsevier-api-key"
	ElsevierInstToken = "elsevier-insttoken"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Lookup returns override when it is non-empty, and the stored value for key
// otherwise. Flags and config values are passed as override so they win over
// files.
func (s Secrets) Lookup(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}

// Keys returns the names of the loaded secrets, sorted.
func (s Secrets) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Load reads every regular, non-hidden file in dir. A missing directory is not
// an error and yields an empty set. Unreadable files are reported through warn
// and skipped; warn may be nil.
func Load(dir string, warn func(name string, err error)) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if warn != nil {
				warn(name, err)
			}
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}
