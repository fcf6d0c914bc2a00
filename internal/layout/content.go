// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package layout

import "encoding/json"

// Content item types.
const (
	ItemTypeImage = "image"
	ItemTypeText  = "text"
	ItemTypeLink  = "link"
)

// Enumerated values for optional text item fields.
var (
	textTags   = []string{"p", "h1", "h2", "span", "div"}
	textAligns = []string{"left", "center", "right"}
)

// validateImageItem checks an image content item. Only url is required;
// presentation extras (alt, objectFit, dimensions) pass through unchecked.
func validateImageItem(item map[string]any) error {
	if _, ok := item["url"]; !ok {
		return missingError("url")
	}
	return nil
}

// validateTextItem checks a text content item: text is required; color
// must be a valid CSS color when present; tag and textAlign must be in
// their enums when present.
func validateTextItem(item map[string]any) error {
	if _, ok := item["text"]; !ok {
		return missingError("text")
	}

	if color, ok := item["color"]; ok {
		if err := ValidateCSSColor("color", color); err != nil {
			return err
		}
	}

	if tag, ok := item["tag"]; ok {
		if !inEnum(tag, textTags) {
			return enumError("tag", stringify(tag))
		}
	}

	if align, ok := item["textAlign"]; ok {
		if !inEnum(align, textAligns) {
			return enumError("textAlign", stringify(align))
		}
	}

	return nil
}

// validateLinkItem checks a link content item: both url and text are
// required.
func validateLinkItem(item map[string]any) error {
	if _, ok := item["url"]; !ok {
		return missingError("url")
	}
	if _, ok := item["text"]; !ok {
		return missingError("text")
	}
	return nil
}

// validateItemByType dispatches to the per-variant validator.
func validateItemByType(itemType string, item map[string]any) error {
	switch itemType {
	case ItemTypeImage:
		return validateImageItem(item)
	case ItemTypeText:
		return validateTextItem(item)
	case ItemTypeLink:
		return validateLinkItem(item)
	default:
		return enumError("type", itemType)
	}
}

func inEnum(value any, allowed []string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// isJSONNumber reports whether a decoded JSON value is numeric. Numbers
// arrive as float64 from encoding/json, or json.Number when the decoder
// uses it; int variants cover hand-built test documents.
func isJSONNumber(v any) bool {
	switch v.(type) {
	case float64, int, int64, json.Number:
		return true
	}
	return false
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(b)
}
