package layout

import (
	"errors"
	"testing"
)

func TestValidateCSSColor_Valid(t *testing.T) {
	valid := []string{
		"#fff",
		"#FFF",
		"#a1b2c3",
		"rgb(10, 20, 30)",
		"rgba(10, 20, 30, 0.5)",
		"RGB(1, 2, 3)",
		"rgb( 10 , 20 , 30 )",
		"rgba(255, 255, 255, 1)",
	}
	for _, s := range valid {
		if err := ValidateCSSColor("color", s); err != nil {
			t.Errorf("ValidateCSSColor(%q) = %v, want nil", s, err)
		}
	}
}

func TestValidateCSSColor_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"blue",
		"#ffff",
		"#gggggg",
		"rgb()",
		"rgb(10)",
		"rgb(a, b, c)",
		"hsl(120, 50%, 50%)",
	}
	for _, s := range invalid {
		if err := ValidateCSSColor("color", s); err == nil {
			t.Errorf("ValidateCSSColor(%q) = nil, want error", s)
		}
	}
}

func TestValidateCSSColor_NonString(t *testing.T) {
	err := ValidateCSSColor("color", map[string]any{"r": 1})
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if vErr.Kind != KindType {
		t.Errorf("expected KindType, got %s", vErr.Kind)
	}
}
