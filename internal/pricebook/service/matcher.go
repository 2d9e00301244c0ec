// Package service implements reference price matching against the catalog.
package service

import (
	"sort"
	"strings"
	"unicode"

	"estimate_backend/internal/pricebook/repository"
)

const (
	maxEntriesPerCategory = 8
	maxTotalEntries       = 30
)

// CategoryGroup is a matched subset of catalog entries under one category.
type CategoryGroup struct {
	Category string
	Entries  []repository.Entry
}

// Matcher selects catalog entries relevant to a free-text work description.
// Matching is keyword-based and advisory: callers must treat an empty or
// failed match as "no reference section", never as a request failure.
type Matcher struct {
	repo *repository.Repo
}

// NewMatcher creates a matcher over the given catalog repository.
func NewMatcher(repo *repository.Repo) *Matcher {
	return &Matcher{repo: repo}
}

// Match returns catalog entries relevant to the description, grouped by
// category in catalog order. An empty result means no entry was relevant.
func (m *Matcher) Match(description string) ([]CategoryGroup, error) {
	categories, err := m.repo.Categories()
	if err != nil {
		return nil, err
	}

	tokens := tokenize(description)
	if len(tokens) == 0 {
		return nil, nil
	}

	var groups []CategoryGroup
	total := 0
	for _, cat := range categories {
		if total >= maxTotalEntries {
			break
		}
		// Mentioning the category itself pulls in all its entries.
		categoryHit := tokens[normalize(cat.Name)]

		type scored struct {
			entry repository.Entry
			score int
		}
		var matched []scored
		for _, entry := range cat.Entries {
			score := 0
			for _, kw := range entry.Keywords {
				if keywordMatch(kw, tokens) {
					score += 2
				}
			}
			for _, word := range strings.Fields(entry.Description) {
				if w := normalize(word); len(w) >= 4 && tokens[w] {
					score++
				}
			}
			if categoryHit {
				score++
			}
			if score > 0 {
				matched = append(matched, scored{entry: entry, score: score})
			}
		}
		if len(matched) == 0 {
			continue
		}

		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].score > matched[j].score
		})
		if len(matched) > maxEntriesPerCategory {
			matched = matched[:maxEntriesPerCategory]
		}

		group := CategoryGroup{Category: cat.Name}
		for _, s := range matched {
			if total >= maxTotalEntries {
				break
			}
			group.Entries = append(group.Entries, s.entry)
			total++
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// tokenize splits text into a set of lowercased words.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	var sb strings.Builder
	flush := func() {
		if sb.Len() >= 3 {
			tokens[sb.String()] = true
		}
		sb.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func normalize(word string) string {
	return strings.Trim(strings.ToLower(word), ",.;:()")
}

// keywordMatch reports whether a catalog keyword appears in the token set.
// Compound keywords ("wall-hung") match when any of their parts do.
func keywordMatch(keyword string, tokens map[string]bool) bool {
	for part := range tokenize(keyword) {
		if tokens[part] {
			return true
		}
	}
	return false
}
