// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package layout validates page layout documents: CSS-grid template
// strings, CSS color strings, and the polymorphic image/text/link content
// items positioned inside grid blocks. Validation is a gate, not a
// transform: accepted documents pass through unchanged and are stored
// exactly as submitted.
package layout

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

// Validation failure kinds.
const (
	KindType    Kind = "type_mismatch"
	KindSyntax  Kind = "syntax"
	KindToken   Kind = "unrecognized_token"
	KindEnum    Kind = "invalid_enum"
	KindMissing Kind = "missing_field"
	KindSchema  Kind = "schema"
)

// Error is a positional validation error. BlockID and ItemID identify the
// offending element where available; Field names the failing key.
type Error struct {
	Kind    Kind
	BlockID string
	ItemID  string
	Field   string
	Value   string
	Reason  string
}

// Error implements the error interface with a descriptive positional
// message.
func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindType:
		fmt.Fprintf(&b, "%s must be a string", e.Field)
	case KindSyntax:
		fmt.Fprintf(&b, "%s has invalid syntax: %q", e.Field, e.Value)
	case KindToken:
		fmt.Fprintf(&b, "%s contains unrecognized token %q", e.Field, e.Value)
	case KindEnum:
		fmt.Fprintf(&b, "%s has invalid value %q", e.Field, e.Value)
	case KindMissing:
		fmt.Fprintf(&b, "missing required field %q", e.Field)
	default:
		b.WriteString(e.Reason)
	}
	if e.ItemID != "" {
		fmt.Fprintf(&b, " (item %q)", e.ItemID)
	}
	if e.BlockID != "" {
		fmt.Fprintf(&b, " (block %q)", e.BlockID)
	}
	return b.String()
}

func typeError(field string) *Error {
	return &Error{Kind: KindType, Field: field}
}

func syntaxError(field, value string) *Error {
	return &Error{Kind: KindSyntax, Field: field, Value: value}
}

func tokenError(field, token string) *Error {
	return &Error{Kind: KindToken, Field: field, Value: token}
}

func enumError(field, value string) *Error {
	return &Error{Kind: KindEnum, Field: field, Value: value}
}

func missingError(field string) *Error {
	return &Error{Kind: KindMissing, Field: field}
}

func schemaError(format string, args ...any) *Error {
	return &Error{Kind: KindSchema, Reason: fmt.Sprintf(format, args...)}
}

// locate attaches block/item position to a validation error bubbling up
// from a primitive check. Positions already set are kept.
func locate(err error, blockID, itemID string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	if e.BlockID == "" {
		e.BlockID = blockID
	}
	if e.ItemID == "" {
		e.ItemID = itemID
	}
	return e
}
