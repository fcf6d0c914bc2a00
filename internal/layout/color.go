// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package layout

import "regexp"

// CSS color patterns: 3- or 6-digit hex triplets, or rgb()/rgba() calls
// with 2-4 numeric components. Components are not range-checked.
var (
	hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbColorPattern = regexp.MustCompile(`(?i)^rgba?\(\s*\d+(\.\d+)?\s*(,\s*\d+(\.\d+)?\s*){1,3}\)$`)
)

// ValidateCSSColor checks that a value is a hex or rgb/rgba color string.
// Named colors ("blue") are deliberately not accepted.
func ValidateCSSColor(field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return typeError(field)
	}

	if !hexColorPattern.MatchString(s) && !rgbColorPattern.MatchString(s) {
		return syntaxError(field, s)
	}

	return nil
}
