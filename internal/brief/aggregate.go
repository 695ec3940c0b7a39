package brief

import "github.com/sells-group/account-brief/internal/model"

// Aggregate concatenates result lists in order and drops repeated URLs,
// keeping the first occurrence.
func Aggregate(lists ...[]model.SearchResult) []model.SearchResult {
	seen := make(map[string]struct{})
	out := []model.SearchResult{}
	for _, list := range lists {
		for _, r := range list {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
