package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// ErrEmptyName is returned when a lookup is attempted with a blank name.
var ErrEmptyName = errors.New("enter a category name")

// NotFoundError reports a lookup miss. Name is the text as typed.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Category %q not found.", e.Name)
}

// LookupCategory resolves a category name to its id using a
// case-insensitive exact match against the fetched categories.
func (v *View) LookupCategory(name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrEmptyName
	}
	for _, c := range v.categories {
		if strings.EqualFold(strings.TrimSpace(c.Name), trimmed) {
			return c.ID, nil
		}
	}
	return 0, &NotFoundError{Name: name, Suggestions: v.suggest(trimmed)}
}

func (v *View) suggest(query string) []string {
	names := make([]string, len(v.categories))
	for i, c := range v.categories {
		names[i] = c.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return nil
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
