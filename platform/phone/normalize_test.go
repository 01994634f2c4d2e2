package phone

import "testing"

func TestNormalizeE164_USNumber(t *testing.T) {
	got := NormalizeE164("(469) 555-0132")
	if got != "+14695550132" {
		t.Fatalf("expected +14695550132, got %q", got)
	}
}

func TestNormalizeE164_AlreadyE164(t *testing.T) {
	got := NormalizeE164("+14695550132")
	if got != "+14695550132" {
		t.Fatalf("expected +14695550132, got %q", got)
	}
}

func TestNormalizeE164_InvalidReturnsTrimmedInput(t *testing.T) {
	got := NormalizeE164("  not-a-number ")
	if got != "not-a-number" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestNormalizeE164_Empty(t *testing.T) {
	if got := NormalizeE164("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
