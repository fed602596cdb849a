package library

import (
	"sort"
	"strings"

	"github.com/chenwei791129/gamehub/pkg/catalog"
)

// Filter returns the games matching category and searchText, sorted by title.
//
// An empty category or catalog.AllCategories disables the category predicate and
// a blank searchText disables the title predicate. Titles match when they contain
// searchText ignoring case. The result is ordered by lower-cased title; games with
// equal keys keep their library order. games is never modified.
func Filter(games []*Game, category, searchText string) []*Game {
	matchCategory := category != "" && category != catalog.AllCategories
	matchTitle := strings.TrimSpace(searchText) != ""
	searchLower := strings.ToLower(searchText)

	filtered := make([]*Game, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		if matchCategory && g.Category != category {
			continue
		}
		if matchTitle && !strings.Contains(strings.ToLower(g.Title), searchLower) {
			continue
		}
		filtered = append(filtered, g)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return compareTitles(filtered[i].Title, filtered[j].Title) < 0
	})

	return filtered
}

// compareTitles orders titles by their lower-cased bytes
func compareTitles(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
