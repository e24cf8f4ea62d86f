package utils

import (
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"morning shuttle", "Morning Shuttle"},
		{"ROUTE  2   express", "Route 2 Express"},
		{"", ""},
		{"a", "A"},
		{"école primaire", "École Primaire"},
		{"über express", "Über Express"},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Fatalf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRandomCodeUsesUnambiguousAlphabet(t *testing.T) {
	code, err := randomCode(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 64 {
		t.Fatalf("got length %d, want 64", len(code))
	}
	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Fatalf("character %q outside the code alphabet", c)
		}
	}
	for _, forbidden := range "01IO" {
		if strings.ContainsRune(code, forbidden) {
			t.Fatalf("ambiguous character %q present in code", forbidden)
		}
	}
}
