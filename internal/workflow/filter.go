package workflow

import "strings"

const All = "all"

type Filter[S Status] struct {
	All    bool
	Status S
}

// ParseFilter accepts "all" (or an empty value) and any status of m.
func ParseFilter[S Status](m Machine[S], raw string) (Filter[S], error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == All {
		return Filter[S]{All: true}, nil
	}
	s, err := m.Parse(raw)
	if err != nil {
		return Filter[S]{}, err
	}
	return Filter[S]{Status: s}, nil
}

func (f Filter[S]) Match(s S) bool {
	return f.All || f.Status == s
}

// FilterByStatus returns a new slice with the records matching f, keeping
// their original order. records is never modified.
func FilterByStatus[R any, S Status](records []R, f Filter[S], status func(R) S) []R {
	filtered := make([]R, 0, len(records))
	for _, r := range records {
		if f.Match(status(r)) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GroupByStatus counts records per status of m, used for the board tabs.
func GroupByStatus[R any, S Status](m Machine[S], records []R, status func(R) S) map[S]int {
	counts := make(map[S]int, len(m.states))
	for _, s := range m.states {
		counts[s] = 0
	}
	for _, r := range records {
		counts[status(r)]++
	}
	return counts
}
