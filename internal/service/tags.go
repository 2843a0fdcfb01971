package service

import (
	"regexp"
	"strings"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

var tagStripRe = regexp.MustCompile(`[^\w\s-]`)
var tagSpaceRe = regexp.MustCompile(`\s+`)

// NormalizeTag canonicalizes a tag for storage: lowercase, underscores to
// spaces, punctuation stripped, whitespace collapsed.
func NormalizeTag(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = tagStripRe.ReplaceAllString(s, "")
	s = tagSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeTags normalizes, drops empties, dedupes preserving order and caps
// at the per-category maximum.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		nt := NormalizeTag(t)
		if nt == "" {
			continue
		}
		if _, dup := seen[nt]; dup {
			continue
		}
		seen[nt] = struct{}{}
		out = append(out, nt)
		if len(out) >= domain.MaxCategoryTags {
			break
		}
	}
	return out
}

var tagStopwords = map[string]struct{}{
	"and": {}, "the": {}, "of": {}, "in": {}, "for": {}, "with": {}, "a": {}, "an": {}, "to": {},
}

// FallbackTagsFromName derives up to n tags from the category name when no
// tags were supplied: tokenize, drop stopwords, normalize, dedupe.
func FallbackTagsFromName(name string, n int) []string {
	parts := strings.Fields(strings.ReplaceAll(strings.ToLower(name), "/", " "))
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for _, p := range parts {
		if _, stop := tagStopwords[p]; stop {
			continue
		}
		nt := NormalizeTag(p)
		if nt == "" {
			continue
		}
		if _, dup := seen[nt]; dup {
			continue
		}
		seen[nt] = struct{}{}
		out = append(out, nt)
		if len(out) >= n {
			break
		}
	}
	return out
}
