package usecase

import (
	"strings"
	"testing"
)

func TestSanitizeSearchTerm(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty input", raw: "", want: ""},
		{name: "plain term unchanged", raw: "arroz integral", want: "arroz integral"},
		{name: "accented letters kept", raw: "pão de açúcar", want: "pão de açúcar"},
		{name: "symbols stripped", raw: "arroz'; DROP TABLE--", want: "arroz DROP TABLE"},
		{name: "punctuation stripped", raw: "leite (integral) 1l!", want: "leite integral 1l"},
		{name: "surrounding whitespace trimmed", raw: "  café  ", want: "café"},
		{name: "only symbols degrades to empty", raw: "!@#$%^&*()", want: ""},
		{name: "underscore is a word character", raw: "a_b", want: "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSearchTerm(tt.raw); got != tt.want {
				t.Errorf("SanitizeSearchTerm(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	t.Run("truncates to 100 characters", func(t *testing.T) {
		raw := strings.Repeat("a", 150)
		got := SanitizeSearchTerm(raw)
		if len([]rune(got)) != 100 {
			t.Errorf("len = %d, want 100", len([]rune(got)))
		}
	})

	t.Run("truncation counts runes, not bytes", func(t *testing.T) {
		raw := strings.Repeat("ç", 120)
		got := SanitizeSearchTerm(raw)
		if len([]rune(got)) != 100 {
			t.Errorf("rune len = %d, want 100", len([]rune(got)))
		}
	})
}
