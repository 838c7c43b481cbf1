package blog

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ title, want string }{
		{"My First Contract!!", "my-first-contract"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-a-slug", "already-a-slug"},
		{"Symbols!!!&&&Everywhere", "symbols-everywhere"},
		{"2026 Year in Review", "2026-year-in-review"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"My First Contract!!", "Hello, World!", "a--b__c", "MiXeD CaSe 123"}
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q -> %q", title, once, twice)
		}
	}
}

func TestSlugifyCharset(t *testing.T) {
	slug := Slugify("Weird 🎉 Títle -- with   runs!!")
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		t.Fatalf("slug has edge hyphens: %q", slug)
	}
	if strings.Contains(slug, "--") {
		t.Fatalf("slug has consecutive hyphens: %q", slug)
	}
	for _, r := range slug {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			t.Fatalf("slug contains %q: %q", r, slug)
		}
	}
}

func TestExcerptStripsMarkdownPunctuation(t *testing.T) {
	got := Excerpt("# Title with *bold* and `code` and _under_ and ~strike~")
	for _, forbidden := range []string{"#", "*", "`", "_", "~"} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("excerpt still contains %q: %q", forbidden, got)
		}
	}
}

func TestExcerptLength(t *testing.T) {
	long := strings.Repeat("abcde ", 100)
	got := Excerpt(long)
	if len(got) > 203 {
		t.Fatalf("excerpt length = %d, max 203", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated excerpt should end with ellipsis: %q", got)
	}

	short := "Short content."
	if got := Excerpt(short); got != short {
		t.Fatalf("short content should pass through, got %q", got)
	}
}

func TestExcerptTruncatesOnRuneBoundary(t *testing.T) {
	// Each euro sign is three bytes; 200 is not a multiple of three, so a
	// byte-index cut would split a rune.
	long := strings.Repeat("€", 150)
	got := Excerpt(long)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated excerpt should end with ellipsis: %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	for _, r := range body {
		if r != '€' {
			t.Fatalf("unexpected rune %q in excerpt", r)
		}
	}
}
