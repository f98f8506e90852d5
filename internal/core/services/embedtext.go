package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/doclens-cli/internal/core/domain"
)

// embedContentLimit bounds the body prefix included in the embedded
// text, keeping requests well under provider token limits.
const embedContentLimit = 1024

var (
	markdownNoiseRe = regexp.MustCompile("(?m)" +
		`\[[^\]]*\]\([^)]*\)|\*\*|__|\*|_|#+|` + "`+" + `|^\s*[-+*]\s+|^>\s*|\|[^|\n]*-+[^|\n]*\|`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// EmbeddingText returns the text embedded for a record: the title plus
// the leading portion of the body, with markdown formatting stripped
// and whitespace collapsed to single spaces. The title is always
// included because it materially improves retrieval for short bodies;
// this choice is fixed, as changing it changes ranking results.
func EmbeddingText(rec domain.Record) string {
	text := rec.Title + ". " + truncate(rec.Content, embedContentLimit)
	text = markdownNoiseRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// truncate cuts s at the byte limit without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
