// Package catalog caches the college list and the course list of the
// currently selected college, so the builder never issues duplicate fetches
// and never shows duplicate entries.
package catalog

import (
	"context"
	"sync"

	"github.com/admitplan/kcetgo/internal/model"
)

// Source supplies catalog data; implemented by the backend client.
type Source interface {
	Colleges(ctx context.Context) ([]model.College, error)
	Courses(ctx context.Context, collegeCode string) ([]model.Course, error)
}

// Cache memoizes the college list and tracks the current college/course
// selection. The mutex is released across fetches, so a course response that
// arrives after the selection moved on is discarded rather than applied.
type Cache struct {
	src Source

	mu             sync.Mutex
	colleges       []model.College
	loaded         bool
	selectedID     string
	selectedCourse *model.Course
	courses        []model.Course
	gen            uint64
}

func New(src Source) *Cache {
	return &Cache{src: src}
}

// Colleges returns the college list, fetching it on first use. The list is
// deduplicated by collegeID keeping the first occurrence, so catalog order is
// stable. A failed fetch returns the error and leaves the cache unloaded so a
// later call retries.
func (c *Cache) Colleges(ctx context.Context) ([]model.College, error) {
	c.mu.Lock()
	if c.loaded {
		defer c.mu.Unlock()
		return append([]model.College(nil), c.colleges...), nil
	}
	c.mu.Unlock()

	list, err := c.src.Colleges(ctx)
	if err != nil {
		return nil, err
	}

	unique := dedupeColleges(list)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		c.colleges = unique
		c.loaded = true
	}
	return append([]model.College(nil), c.colleges...), nil
}

func dedupeColleges(list []model.College) []model.College {
	seen := make(map[string]struct{}, len(list))
	unique := make([]model.College, 0, len(list))
	for _, college := range list {
		if _, ok := seen[college.CollegeID]; ok {
			continue
		}
		seen[college.CollegeID] = struct{}{}
		unique = append(unique, college)
	}
	return unique
}

// SelectCollege makes collegeCode the current selection, clears the previous
// course list and course selection, and fetches the new course list. A
// response for a selection that was superseded while the fetch was in flight
// is discarded: only the still-current college may populate the cache. A fetch
// failure leaves the course list empty; the caller may re-select to retry.
func (c *Cache) SelectCollege(ctx context.Context, collegeCode string) ([]model.Course, error) {
	c.mu.Lock()
	c.selectedID = collegeCode
	c.selectedCourse = nil
	c.courses = nil
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	list, err := c.src.Courses(ctx, collegeCode)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// Stale response for a superseded selection.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.courses = list
	return append([]model.Course(nil), c.courses...), nil
}

// SelectedCollege returns the id of the currently selected college, or "".
func (c *Cache) SelectedCollege() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// Courses returns the cached course list for the current selection.
func (c *Cache) Courses() []model.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Course(nil), c.courses...)
}

// SelectCourse records the chosen course. It is a no-op unless the course is
// in the current course list.
func (c *Cache) SelectCourse(courseCode string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.courses {
		if c.courses[i].CourseCode == courseCode {
			course := c.courses[i]
			c.selectedCourse = &course
			return true
		}
	}
	return false
}

// SelectedCourse returns the chosen course, or nil when none is selected.
func (c *Cache) SelectedCourse() *model.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedCourse == nil {
		return nil
	}
	course := *c.selectedCourse
	return &course
}
