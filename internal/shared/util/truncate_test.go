package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"cut lands on rune boundary", "ééé", 4, "éé"},
		{"cut lands inside a rune", "ééé", 3, "é"},
		{"cut inside four-byte rune", "a\U0001F600", 3, "a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(tc.in, tc.limit)
			if got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("result is not valid UTF-8: %q", got)
			}
		})
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	s := strings.Repeat("€", 50)
	for limit := 0; limit <= len(s); limit++ {
		got := Truncate(s, limit)
		if len(got) > limit {
			t.Fatalf("limit %d: result has %d bytes", limit, len(got))
		}
		if !utf8.ValidString(got) {
			t.Fatalf("limit %d: invalid UTF-8", limit)
		}
	}
}
