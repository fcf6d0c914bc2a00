// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package layout

// ValidateContent walks a decoded page layout document and applies the
// grid, color, and content-item rules. It fails fast on the first
// violation, reporting the offending block and item ids, and never
// modifies the document. Any error rejects the whole page write.
//
// Block backgroundColor and borderColor are free-form strings; only the
// two grid template fields and the text item color field are validated
// as CSS values.
func ValidateContent(content any) error {
	blocks, ok := content.([]any)
	if !ok {
		return schemaError("content must be a list of blocks")
	}

	for i, rawBlock := range blocks {
		block, ok := rawBlock.(map[string]any)
		if !ok {
			return schemaError("block %d must be an object", i)
		}

		if _, ok := block["id"]; !ok {
			return locate(schemaError("block %d is missing required field \"id\"", i), "", "")
		}
		blockID := stringify(block["id"])

		rawItems, ok := block["content"]
		if !ok {
			return locate(missingError("content"), blockID, "")
		}

		for _, field := range []string{"gridTemplateColumns", "gridTemplateRows"} {
			value, ok := block[field]
			if !ok {
				return locate(missingError(field), blockID, "")
			}
			if err := ValidateGridTemplate(field, value); err != nil {
				return locate(err, blockID, "")
			}
		}

		items, ok := rawItems.([]any)
		if !ok {
			return locate(schemaError("content must be a list of items"), blockID, "")
		}

		for j, rawItem := range items {
			if err := validateItem(rawItem, j); err != nil {
				return locate(err, blockID, "")
			}
		}
	}

	return nil
}

// validateItem checks one content item: structural keys first, then the
// per-variant rules.
func validateItem(rawItem any, index int) error {
	item, ok := rawItem.(map[string]any)
	if !ok {
		return schemaError("item %d must be an object", index)
	}

	if _, ok := item["id"]; !ok {
		return missingError("id")
	}
	itemID := stringify(item["id"])

	rawType, ok := item["type"]
	if !ok {
		return locate(missingError("type"), "", itemID)
	}

	for _, field := range []string{"rowStart", "colStart"} {
		value, ok := item[field]
		if !ok {
			return locate(missingError(field), "", itemID)
		}
		if !isJSONNumber(value) {
			return locate(schemaError("%s must be a number", field), "", itemID)
		}
	}

	itemType, ok := rawType.(string)
	if !ok || (itemType != ItemTypeImage && itemType != ItemTypeText && itemType != ItemTypeLink) {
		return locate(enumError("type", stringify(rawType)), "", itemID)
	}

	return locate(validateItemByType(itemType, item), "", itemID)
}

