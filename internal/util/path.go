// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces an uploaded filename to its base component so
// names like "../../etc/passwd" cannot point outside the media
// directory. An empty or directory-only name is an error.
func SanitizeFilename(filename string) (string, error) {
	base := filepath.Base(filename)
	if base == "." || base == ".." || base == "" || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return base, nil
}

// SafeJoinPath joins components under base and rejects any result that
// resolves outside it.
func SafeJoinPath(base string, components ...string) (string, error) {
	joined := filepath.Join(append([]string{base}, components...)...)

	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	// The trailing separator keeps /media-evil from passing for /media.
	if absJoined != absBase && !strings.HasPrefix(absJoined, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes %q", joined, base)
	}
	return joined, nil
}
