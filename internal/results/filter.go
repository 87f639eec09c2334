// Package results turns flat pages of cutoff records into filtered, grouped
// views and owns the filter/pagination state that drives upstream fetches.
package results

import "github.com/admitplan/kcetgo/internal/model"

// Sentinel values meaning "no constraint on this dimension". Every FilterState
// field is always present; there is no partial filter shape.
const (
	CourseAll  = "all"
	ChancesAll = "all"
	RoundAll   = 0
)

// FilterState is the complete filter. Search is applied client-side against
// the fetched page; the other dimensions are encoded into the upstream query.
type FilterState struct {
	Search   string
	Course   string
	Chances  string
	Round    int
	District string
}

// DefaultFilter returns the neutral filter: every field at its sentinel.
func DefaultFilter() FilterState {
	return FilterState{
		Search:   "",
		Course:   CourseAll,
		Chances:  ChancesAll,
		Round:    RoundAll,
		District: model.DistrictAll,
	}
}

// IsDefault reports whether every field is at its sentinel.
func (f FilterState) IsDefault() bool {
	return f == DefaultFilter()
}
