package ranker

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// Deduplicate drops items with seen urls, then drops items whose lowercased title is similar
// to a title already accepted in this call. Input order is preserved, the first item wins.
// Each candidate is compared with every accepted title, there is no hashing shortcut.
func Deduplicate(items []domain.NewsItem, seen map[string]struct{}, threshold float64) []domain.NewsItem {
	res := make([]domain.NewsItem, 0, len(items))
	accepted := make([][]string, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.URL]; ok {
			continue
		}

		title := chars(item.Title)
		duplicate := false
		for _, prev := range accepted {
			if ratio(title, prev) > threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		res = append(res, item)
		accepted = append(accepted, title)
	}
	return res
}

// Similarity returns the similarity ratio of two titles, case-insensitive, in [0,1]
func Similarity(a, b string) float64 {
	return ratio(chars(a), chars(b))
}

func ratio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	return difflib.NewMatcher(a, b).Ratio()
}

// chars splits the lowercased title into characters, the matcher works on sequences
func chars(title string) []string {
	return strings.Split(strings.ToLower(title), "")
}
