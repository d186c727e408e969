// Package rank scores and orders palette candidates against a query.
package rank

import (
	"sort"
	"strings"
)

// MaxResults caps every result list the palette renders.
const MaxResults = 50

// Item is a single rankable candidate.
type Item struct {
	Title string
	URL   string
}

// Score rates how well an item matches the query. Matching is
// case-insensitive; an empty query scores zero.
func Score(query, title, url string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}
	t := strings.ToLower(title)
	u := strings.ToLower(url)

	score := 0
	if strings.HasPrefix(t, q) {
		score += 4
	}
	if strings.HasPrefix(u, q) {
		score += 3
	}
	if strings.Contains(t, q) {
		score += 2
	}
	if strings.Contains(u, q) {
		score += 1
	}
	return score
}

// Rank filters items against the query and orders them by descending score.
// Ties keep their input order, which for the palette means recency. An empty
// query returns the first MaxResults items untouched. Rank never mutates its
// input.
func Rank(items []Item, query string) []Item {
	q := strings.TrimSpace(query)
	if q == "" {
		out := make([]Item, 0, min(len(items), MaxResults))
		return append(out, items[:min(len(items), MaxResults)]...)
	}

	type scored struct {
		item  Item
		score int
	}
	matches := make([]scored, 0, len(items))
	for _, it := range items {
		if s := Score(q, it.Title, it.URL); s > 0 {
			matches = append(matches, scored{item: it, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]Item, 0, min(len(matches), MaxResults))
	for _, m := range matches[:min(len(matches), MaxResults)] {
		out = append(out, m.item)
	}
	return out
}
