package results

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/admitplan/kcetgo/internal/coursecode"
	"github.com/admitplan/kcetgo/internal/model"
)

// Aggregate transforms one flat page of cutoff records into the grouped view:
// filter first (search substring, course code, exact round), then group by
// (college name, category), then by course name, with round entries newest
// first and groups ordered by college name. It is a pure function of its
// inputs: the same records and filter always produce the same output.
//
// Grouping is keyed by display name, not college id: two ids sharing a name
// merge into one group. The group keeps the first id seen for linking.
func Aggregate(records []model.CutoffRecord, filter FilterState) []model.CollegeCategoryGroup {
	filtered := applyPredicates(records, filter)

	type key struct {
		name, category string
	}
	groups := make(map[key]*model.CollegeCategoryGroup)
	var order []key
	// Exact duplicate rows (same name, category, course, round) collapse to
	// the first occurrence.
	type rowKey struct {
		name, category, course string
		round                  int
	}
	seen := make(map[rowKey]struct{})

	for _, r := range filtered {
		rk := rowKey{r.CollegeName, r.Category, r.Course, r.Round}
		if _, dup := seen[rk]; dup {
			continue
		}
		seen[rk] = struct{}{}

		k := key{r.CollegeName, r.Category}
		g, ok := groups[k]
		if !ok {
			g = &model.CollegeCategoryGroup{
				CollegeID:   r.CollegeID,
				CollegeName: r.CollegeName,
				Category:    r.Category,
			}
			groups[k] = g
			order = append(order, k)
		}

		var cg *model.CourseGroup
		for i := range g.Courses {
			if g.Courses[i].CourseName == r.Course {
				cg = &g.Courses[i]
				break
			}
		}
		if cg == nil {
			g.Courses = append(g.Courses, model.CourseGroup{CourseName: r.Course})
			cg = &g.Courses[len(g.Courses)-1]
		}
		cg.Entries = append(cg.Entries, model.RoundCutoff{Round: r.Round, CutoffRank: r.CutoffRank})
	}

	out := make([]model.CollegeCategoryGroup, 0, len(order))
	for _, k := range order {
		g := groups[k]
		for i := range g.Courses {
			entries := g.Courses[i].Entries
			sort.SliceStable(entries, func(a, b int) bool {
				return entries[a].Round > entries[b].Round
			})
		}
		out = append(out, *g)
	}

	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].CollegeName, out[j].CollegeName) < 0
	})
	return out
}

// SearchMatch applies only the client-side search predicate: a
// case-insensitive substring match on the college name.
func SearchMatch(records []model.CutoffRecord, search string) []model.CutoffRecord {
	if search == "" {
		return append([]model.CutoffRecord(nil), records...)
	}
	q := strings.ToLower(search)
	out := make([]model.CutoffRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.CollegeName), q) {
			out = append(out, r)
		}
	}
	return out
}

func applyPredicates(records []model.CutoffRecord, filter FilterState) []model.CutoffRecord {
	wantCode := ""
	if filter.Course != CourseAll {
		wantCode = coursecode.Derive(filter.Course)
	}

	out := make([]model.CutoffRecord, 0, len(records))
	q := strings.ToLower(filter.Search)
	for _, r := range records {
		if q != "" && !strings.Contains(strings.ToLower(r.CollegeName), q) {
			continue
		}
		if wantCode != "" && coursecode.Derive(r.Course) != wantCode {
			continue
		}
		if filter.Round != RoundAll && r.Round != filter.Round {
			continue
		}
		out = append(out, r)
	}
	return out
}
