// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared across services: slug
// derivation and validation, upload path safety, and sql.Null adapters.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonSlug matches every run of characters that cannot appear in a slug.
var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// deaccent folds accented letters to their base form: NFD decomposition,
// combining marks removed, recomposed. "café" keeps its e.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug from a display name. Accents are folded to
// ASCII, the result is lowercased, and every run of other characters
// collapses into a single hyphen. Names with no usable characters yield
// the empty string.
func Slugify(name string) string {
	folded, _, err := transform.String(deaccent, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	return strings.Trim(nonSlug.ReplaceAllString(folded, "-"), "-")
}

// IsValidSlug reports whether s is already in canonical slug form:
// lowercase ASCII letters, digits, and single interior hyphens.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
