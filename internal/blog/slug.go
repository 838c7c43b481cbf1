package blog

import (
	"strings"

	"legalens-backend/internal/shared/util"
)

const excerptLimit = 200

// Slugify lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen, and trims leading/trailing hyphens.
// It is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Excerpt strips Markdown punctuation from the content and truncates to
// 200 characters, appending an ellipsis when truncated.
func Excerpt(content string) string {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '`', '_', '~':
			return -1
		}
		return r
	}, content)
	stripped = strings.TrimSpace(stripped)
	if len(stripped) > excerptLimit {
		return util.Truncate(stripped, excerptLimit) + "..."
	}
	return stripped
}
