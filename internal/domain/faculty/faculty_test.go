package faculty

import (
	"strings"
	"testing"
)

// TestOptions_OrderAndCompleteness verifies every code appears once, in order.
func TestOptions_OrderAndCompleteness(t *testing.T) {
	opts := Options()
	if len(opts) != len(labels) {
		t.Fatalf("Options() returned %d entries, want %d", len(opts), len(labels))
	}
	if opts[0].Code != "AM" {
		t.Errorf("first option = %q, want AM", opts[0].Code)
	}
	if opts[len(opts)-1].Code != "Other" {
		t.Errorf("last option = %q, want Other", opts[len(opts)-1].Code)
	}
	seen := map[string]bool{}
	for _, o := range opts {
		if seen[o.Code] {
			t.Errorf("duplicate code %q", o.Code)
		}
		seen[o.Code] = true
		if o.Label == "" {
			t.Errorf("code %q has empty label", o.Code)
		}
	}
}

// TestCompose_KnownCode verifies the stored composite carries code and label.
func TestCompose_KnownCode(t *testing.T) {
	got := Compose("SC")
	if !strings.HasPrefix(got, "SC"+Separator) {
		t.Errorf("Compose(SC) = %q, want prefix %q", got, "SC"+Separator)
	}
	label, ok := Label("SC")
	if !ok {
		t.Fatal("Label(SC) not found")
	}
	if got != "SC"+Separator+label {
		t.Errorf("Compose(SC) = %q, want %q", got, "SC"+Separator+label)
	}
}

// TestCompose_UnknownCode verifies an unknown code is preserved raw.
func TestCompose_UnknownCode(t *testing.T) {
	if got := Compose("ZZ"); got != "ZZ" {
		t.Errorf("Compose(ZZ) = %q, want ZZ", got)
	}
}

// TestCompose_Empty verifies an empty code stays empty.
func TestCompose_Empty(t *testing.T) {
	if got := Compose(""); got != "" {
		t.Errorf("Compose(\"\") = %q, want empty", got)
	}
}

// TestCode_RoundTrip verifies Code(Compose(c)) == c for every known code.
func TestCode_RoundTrip(t *testing.T) {
	for _, o := range Options() {
		if got := Code(Compose(o.Code)); got != o.Code {
			t.Errorf("Code(Compose(%q)) = %q", o.Code, got)
		}
	}
}

// TestCode_NoSeparator verifies a value without a separator passes through.
func TestCode_NoSeparator(t *testing.T) {
	if got := Code("SC"); got != "SC" {
		t.Errorf("Code(SC) = %q, want SC", got)
	}
	if got := Code(""); got != "" {
		t.Errorf("Code(\"\") = %q, want empty", got)
	}
}
