package invitecode

import "testing"

func TestNew_Length(t *testing.T) {
	code := New()
	if len(code) != 12 {
		t.Errorf("code length: got %d, want 12", len(code))
	}
}

func TestNew_HexOnly(t *testing.T) {
	code := New()
	for _, c := range code {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("unexpected character %q in code %q", c, code)
		}
	}
}

func TestNew_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := New()
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}
