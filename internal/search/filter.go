package search

import (
	"strings"

	"docuscraper/internal/domain"
)

// Filter drops duplicate URLs and URLs whose suffix does not match one of
// the allowed extensions, preserving first-seen order. URL comparison is
// exact and case-sensitive; the extension check is case-insensitive. A URL
// with no recognizable extension is dropped here; defaulting to .pdf only
// happens at download time, for naming.
func Filter(candidates []domain.SearchResult, allowedExts []string) []domain.SearchResult {
	seen := make(map[string]struct{}, len(candidates))
	var unique []domain.SearchResult

	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		if _, dup := seen[c.URL]; dup {
			continue
		}
		seen[c.URL] = struct{}{}

		if hasAllowedSuffix(c.URL, allowedExts) {
			unique = append(unique, c)
		}
	}
	return unique
}

func hasAllowedSuffix(rawURL string, allowedExts []string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range allowedExts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
