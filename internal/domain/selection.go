package domain

import "sort"

// FilterSelection is the set of active periods.
// It is immutable: a new selection replaces the old one as a whole.
type FilterSelection struct {
	periods map[Period]struct{}
}

// NewFilterSelection creates a selection from the given periods.
// Duplicates collapse; an empty call yields the empty selection.
func NewFilterSelection(periods ...Period) FilterSelection {
	set := make(map[Period]struct{}, len(periods))
	for _, p := range periods {
		set[p] = struct{}{}
	}
	return FilterSelection{periods: set}
}

// Contains reports whether the period is active
func (s FilterSelection) Contains(p Period) bool {
	_, ok := s.periods[p]
	return ok
}

// Len returns the number of active periods
func (s FilterSelection) Len() int {
	return len(s.periods)
}

// IsEmpty returns true if no period is active
func (s FilterSelection) IsEmpty() bool {
	return len(s.periods) == 0
}

// Periods returns the active periods in ascending order
func (s FilterSelection) Periods() []Period {
	out := make([]Period, 0, len(s.periods))
	for p := range s.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
