package hardshiptypes

import (
	"sort"
	"strings"

	"github.com/goliatone/go-hardship/pkg/model"
)

// Search returns the categories whose label contains query, prefix matches
// first, then by identifier.
func Search(categories []model.Category, query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" && opts.EmptySearchMode != EmptySearchAll {
		return nil
	}

	matches := make([]match, 0, len(categories))
	for _, c := range categories {
		label := strings.ToLower(c.Label())
		if !strings.Contains(label, query) {
			continue
		}
		matches = append(matches, match{category: c, isPrefix: query != "" && strings.HasPrefix(label, query)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].category < matches[j].category
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, Option{Value: m.category.String(), Label: m.category.Label()})
	}
	return out
}

type match struct {
	category model.Category
	isPrefix bool
}
