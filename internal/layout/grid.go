// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package layout

import (
	"regexp"
	"strings"
)

// Grid template grammar, checked in two passes:
//
//  1. The whole string must be one or more of: a repeat(N, <list>) call,
//     a minmax(<list>) call, or a bare size token.
//  2. After stripping commas, every whitespace-separated token must be a
//     plain numeral, start with "repeat(" or "minmax(", or contain one of
//     the recognized CSS units below.
//
// The check is purely syntactic: repeat counts and unit consistency are
// not interpreted.
var (
	gridPattern = regexp.MustCompile(
		`^(\s*(repeat\(\s*\d+\s*,\s*[^()]+\)|minmax\(\s*[^()]+\)|[^\s,()]+)\s*,?)+\s*$`)
	numeralPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// gridUnits are the recognized CSS length/fraction units. A token
// containing any of these as a substring is accepted.
var gridUnits = []string{
	"px", "em", "%", "fr", "vh", "vw", "rem", "auto", "min-content", "max-content",
}

// ValidateGridTemplate checks a grid-template string (columns or rows)
// against the grammar above. field names the key being validated and is
// used in error messages only.
func ValidateGridTemplate(field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return typeError(field)
	}

	if !gridPattern.MatchString(s) {
		return syntaxError(field, s)
	}

	for _, token := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		if numeralPattern.MatchString(token) {
			continue
		}
		if strings.HasPrefix(token, "repeat(") || strings.HasPrefix(token, "minmax(") {
			continue
		}
		if containsGridUnit(token) {
			continue
		}
		return tokenError(field, token)
	}

	return nil
}

func containsGridUnit(token string) bool {
	for _, unit := range gridUnits {
		if strings.Contains(token, unit) {
			return true
		}
	}
	return false
}
