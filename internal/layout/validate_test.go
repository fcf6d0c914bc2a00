package layout

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decode parses a JSON layout document the way the HTTP layer does.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("test document does not parse: %v", err)
	}
	return v
}

const validDocument = `[
	{
		"id": "block-1",
		"gridTemplateColumns": "4fr 6fr",
		"gridTemplateRows": "auto auto",
		"backgroundColor": "transparent",
		"content": [
			{"id": "item-1", "type": "image", "rowStart": 1, "colStart": 1, "url": "/media/a.png"},
			{"id": "item-2", "type": "text", "rowStart": 1, "colStart": 2, "text": "Hello", "color": "#fff", "tag": "h1", "textAlign": "center"},
			{"id": "item-3", "type": "link", "rowStart": 2, "colStart": 1, "url": "https://example.com", "text": "See more"}
		]
	},
	{
		"id": "block-2",
		"gridTemplateColumns": "repeat(3, 1fr)",
		"gridTemplateRows": "auto",
		"content": []
	}
]`

func TestValidateContent_ValidDocument(t *testing.T) {
	if err := ValidateContent(decode(t, validDocument)); err != nil {
		t.Fatalf("ValidateContent returned %v, want nil", err)
	}
}

func TestValidateContent_NotAList(t *testing.T) {
	err := ValidateContent(decode(t, `{"id": "block-1"}`))
	if err == nil {
		t.Fatal("expected error for non-list document")
	}
	var vErr *Error
	if !errors.As(err, &vErr) || vErr.Kind != KindSchema {
		t.Errorf("expected KindSchema, got %v", err)
	}
}

func TestValidateContent_BlockMissingID(t *testing.T) {
	doc := `[{"gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": []}]`
	if err := ValidateContent(decode(t, doc)); err == nil {
		t.Fatal("expected error for block without id")
	}
}

func TestValidateContent_BlockMissingGridTemplate(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateRows": "auto", "content": []}]`
	err := ValidateContent(decode(t, doc))
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Kind != KindMissing || vErr.Field != "gridTemplateColumns" {
		t.Errorf("expected missing gridTemplateColumns, got %+v", vErr)
	}
	if vErr.BlockID != "b1" {
		t.Errorf("expected block id b1 attached, got %q", vErr.BlockID)
	}
}

func TestValidateContent_BadGridReportsBlock(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateColumns": "123xyz", "gridTemplateRows": "auto", "content": []}]`
	err := ValidateContent(decode(t, doc))
	if err == nil {
		t.Fatal("expected error for bad grid template")
	}
	if !strings.Contains(err.Error(), `block "b1"`) {
		t.Errorf("error message does not locate the block: %v", err)
	}
}

func TestValidateContent_ItemMissingPosition(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": [
		{"id": "i1", "type": "image", "colStart": 1, "url": "/x.png"}
	]}]`
	err := ValidateContent(decode(t, doc))
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Kind != KindMissing || vErr.Field != "rowStart" {
		t.Errorf("expected missing rowStart, got %+v", vErr)
	}
	if vErr.ItemID != "i1" || vErr.BlockID != "b1" {
		t.Errorf("expected item i1 in block b1, got item %q block %q", vErr.ItemID, vErr.BlockID)
	}
}

func TestValidateContent_ItemPositionNotNumber(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": [
		{"id": "i1", "type": "image", "rowStart": "1", "colStart": 1, "url": "/x.png"}
	]}]`
	if err := ValidateContent(decode(t, doc)); err == nil {
		t.Fatal("expected error for string rowStart")
	}
}

func TestValidateContent_UnknownItemType(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": [
		{"id": "i1", "type": "video", "rowStart": 1, "colStart": 1}
	]}]`
	err := ValidateContent(decode(t, doc))
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Kind != KindEnum || vErr.Field != "type" {
		t.Errorf("expected enum error on type, got %+v", vErr)
	}
}

func TestValidateContent_TextItemRules(t *testing.T) {
	cases := []struct {
		name string
		item string
	}{
		{"missing text", `{"id": "i1", "type": "text", "rowStart": 1, "colStart": 1}`},
		{"bad color", `{"id": "i1", "type": "text", "rowStart": 1, "colStart": 1, "text": "x", "color": "blue"}`},
		{"bad tag", `{"id": "i1", "type": "text", "rowStart": 1, "colStart": 1, "text": "x", "tag": "h3"}`},
		{"bad align", `{"id": "i1", "type": "text", "rowStart": 1, "colStart": 1, "text": "x", "textAlign": "justify"}`},
	}
	for _, tc := range cases {
		doc := `[{"id": "b1", "gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": [` + tc.item + `]}]`
		if err := ValidateContent(decode(t, doc)); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestValidateContent_LinkItemRequiresURLAndText(t *testing.T) {
	doc := `[{"id": "b1", "gridTemplateColumns": "1fr", "gridTemplateRows": "auto", "content": [
		{"id": "i1", "type": "link", "rowStart": 1, "colStart": 1, "url": "https://example.com"}
	]}]`
	err := ValidateContent(decode(t, doc))
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Kind != KindMissing || vErr.Field != "text" {
		t.Errorf("expected missing text, got %+v", vErr)
	}
}

func TestValidateContent_FailsFastOnFirstError(t *testing.T) {
	// Both blocks are invalid; the error must come from the first one.
	doc := `[
		{"id": "b1", "gridTemplateColumns": "bogus!!", "gridTemplateRows": "auto", "content": []},
		{"id": "b2", "gridTemplateRows": "auto", "content": []}
	]`
	err := ValidateContent(decode(t, doc))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `block "b1"`) {
		t.Errorf("expected error from first block, got: %v", err)
	}
}
