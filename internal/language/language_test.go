package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ru", "ru"},
		{"RU", "ru"},
		{"rus", "ru"},
		{"fre", "fr"},
		{"fra", "fr"},
		{"German", "de"},
		{"Русский", "ru"},
		{"xx", "xx"},
		{"klingon", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ToISO2(tc.input); got != tc.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ukr"); got != "Ukrainian" {
		t.Fatalf("DisplayName(ukr) = %q", got)
	}
	if got := DisplayName(" xx "); got != "XX" {
		t.Fatalf("DisplayName(xx) = %q", got)
	}
}

func TestAcceptLanguage(t *testing.T) {
	got, err := AcceptLanguage(" Russian, eng,ru ,, en")
	if err != nil {
		t.Fatalf("AcceptLanguage: %v", err)
	}
	if got != "ru,en" {
		t.Fatalf("AcceptLanguage = %q, want ru,en", got)
	}

	if got, err := AcceptLanguage(""); err != nil || got != "" {
		t.Fatalf("empty list: %q, %v", got, err)
	}
	if _, err := AcceptLanguage("ru, klingon"); err == nil {
		t.Fatal("expected unknown language error")
	}
}
