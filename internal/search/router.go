package search

import (
	"regexp"
	"strings"
)

// Three letters followed by three digits, anywhere in the question.
// Trailing suffix characters ("MAT235Y1" -> "MAT235") fall outside the match.
var codePattern = regexp.MustCompile(`(?i)[a-z]{3}[0-9]{3}`)

// ExtractFilters scans a question for course-code shaped tokens and returns
// the normalized (uppercased, suffix-stripped) codes, deduplicated in
// first-seen order. An empty result is the common case and signals a
// corpus-wide query.
func ExtractFilters(question string) []string {
	matches := codePattern.FindAllString(question, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		code := strings.ToUpper(m)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
