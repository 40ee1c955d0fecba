package tokens

import (
	"strconv"
	"strings"
)

// Match reports whether a record matches a search term. The term is matched
// case-insensitively against the decimal ID and the token text; an empty
// term matches everything.
func Match(r Record, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strconv.Itoa(r.ID), term) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Text), term)
}

// Filter returns the indices of the records matching term, in order
func Filter(records []Record, term string) []int {
	out := make([]int, 0, len(records))
	for i, r := range records {
		if Match(r, term) {
			out = append(out, i)
		}
	}
	return out
}

// DisplayText shortens token text for tabular display
func DisplayText(text string, limit int) string {
	if text == "" {
		return "[Symbol]"
	}
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return text
}
