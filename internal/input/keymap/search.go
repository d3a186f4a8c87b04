package keymap

import (
	"sort"
	"strings"
	"unicode"
)

// SearchResult is a binding matched by Search.
type SearchResult struct {
	Binding Binding

	// Score ranks the match; higher is better.
	Score int

	// Text is the string the query was matched against.
	Text string

	// Matches holds the rune indices of matched characters in Text.
	Matches []int
}

// searchText is what Search matches a binding against.
func searchText(b Binding) string {
	return b.Chord.String() + " " + b.Action.String() + " " + b.Description
}

// Search fuzzy-matches query against each binding's chord, action and
// description, case-insensitively. Every query rune must appear in order.
// Results are sorted by score, then by chord. A limit of 0 means no limit.
// An empty query returns the bindings unchanged with zero scores.
func Search(bindings []Binding, query string, limit int) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	var results []SearchResult
	if query == "" {
		results = make([]SearchResult, 0, len(bindings))
		for _, b := range bindings {
			results = append(results, SearchResult{Binding: b, Text: searchText(b)})
		}
		return applyLimit(results, limit)
	}

	queryRunes := []rune(query)
	for _, b := range bindings {
		text := searchText(b)
		score, matches := scoreMatch(queryRunes, text)
		if score > 0 {
			results = append(results, SearchResult{Binding: b, Score: score, Text: text, Matches: matches})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Binding.Chord.String() < results[j].Binding.Chord.String()
	})
	return applyLimit(results, limit)
}

func applyLimit(results []SearchResult, limit int) []SearchResult {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// scoreMatch scans text greedily left to right for the query runes.
// Returns 0 if not every rune matched.
func scoreMatch(queryRunes []rune, text string) (int, []int) {
	original := []rune(text)
	lower := []rune(strings.ToLower(text))

	matches := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(lower) && qi < len(queryRunes); i++ {
		if lower[i] == queryRunes[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil
	}

	score := 100
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += 20
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			score += 15
		}
	}
	if matches[0] == 0 {
		score += 25
	}
	if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
		score -= gap * 2
	}
	score -= matches[0]

	if score < 1 {
		score = 1
	}
	return score, matches
}

// isWordBoundary reports whether the rune at idx starts a word. The '+'
// and ':' separators of chords and actions count as boundaries.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || unicode.IsSymbol(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
