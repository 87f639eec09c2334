package results

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/admitplan/kcetgo/internal/backend"
	"github.com/admitplan/kcetgo/internal/coursecode"
	"github.com/admitplan/kcetgo/internal/model"
)

// State is the controller's lifecycle phase. Any fetch re-enters Loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePopulated
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

const defaultLimit = 25

const genericFetchError = "Failed to fetch results"

// Fetcher supplies paginated cutoff records; implemented by the backend
// client.
type Fetcher interface {
	Cutoffs(ctx context.Context, query url.Values) (*backend.CutoffPage, error)
}

// Controller owns the filter and page cursor over the upstream cutoff source.
// Search filtering is local to the fetched page; every other filter change
// re-fetches with the filter encoded in query parameters and resets to page 1.
//
// Controller is single-owner mutable state: drive it from one goroutine.
type Controller struct {
	fetcher Fetcher
	base    url.Values // candidate params (rank, cat, flags) sent on every fetch
	limit   int

	state   State
	filter  FilterState
	page    int
	hasMore bool
	records []model.CutoffRecord
	errMsg  string
}

// NewController starts Idle on page 1 with the neutral filter. base carries
// the candidate query parameters repeated on every fetch; limit <= 0 uses the
// default page size.
func NewController(fetcher Fetcher, base url.Values, limit int) *Controller {
	if limit <= 0 {
		limit = defaultLimit
	}
	copied := url.Values{}
	for k, vs := range base {
		copied[k] = append([]string(nil), vs...)
	}
	return &Controller{
		fetcher: fetcher,
		base:    copied,
		limit:   limit,
		state:   StateIdle,
		filter:  DefaultFilter(),
		page:    1,
	}
}

// Refresh fetches the current page with the current filter.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// SetSearch updates the search text. Search is applied locally against the
// already-fetched page; no upstream fetch is issued.
func (c *Controller) SetSearch(search string) {
	c.filter.Search = search
}

// SetCourse changes the course filter, resets to page 1 and re-fetches.
func (c *Controller) SetCourse(ctx context.Context, course string) error {
	if course == "" {
		course = CourseAll
	}
	c.filter.Course = course
	c.page = 1
	return c.fetch(ctx)
}

// SetChances changes the chances band filter, resets to page 1 and re-fetches.
func (c *Controller) SetChances(ctx context.Context, chances string) error {
	if chances == "" {
		chances = ChancesAll
	}
	c.filter.Chances = chances
	c.page = 1
	return c.fetch(ctx)
}

// SetRound changes the round filter (RoundAll clears it), resets to page 1
// and re-fetches.
func (c *Controller) SetRound(ctx context.Context, round int) error {
	if round < 0 {
		round = RoundAll
	}
	c.filter.Round = round
	c.page = 1
	return c.fetch(ctx)
}

// SetDistrict changes the district filter, resets to page 1 and re-fetches.
func (c *Controller) SetDistrict(ctx context.Context, district string) error {
	if district == "" {
		district = model.DistrictAll
	}
	c.filter.District = district
	c.page = 1
	return c.fetch(ctx)
}

// ClearFilters resets every field to its neutral sentinel, returns to page 1
// and issues exactly one re-fetch.
func (c *Controller) ClearFilters(ctx context.Context) error {
	c.filter = DefaultFilter()
	c.page = 1
	return c.fetch(ctx)
}

// CanNext reports whether the upstream indicated further pages.
func (c *Controller) CanNext() bool {
	return c.hasMore
}

// CanPrev reports whether the cursor is above page 1.
func (c *Controller) CanPrev() bool {
	return c.page > 1
}

// NextPage advances one page when the upstream indicated more; otherwise it
// is a no-op.
func (c *Controller) NextPage(ctx context.Context) error {
	if !c.hasMore {
		return nil
	}
	c.page++
	return c.fetch(ctx)
}

// PrevPage moves back one page; no-op on page 1.
func (c *Controller) PrevPage(ctx context.Context) error {
	if c.page <= 1 {
		return nil
	}
	c.page--
	return c.fetch(ctx)
}

// Page returns the 1-indexed page cursor.
func (c *Controller) Page() int {
	return c.page
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// Filter returns the current filter state.
func (c *Controller) Filter() FilterState {
	return c.filter
}

// ErrorMessage returns the message for the Errored state, empty otherwise.
func (c *Controller) ErrorMessage() string {
	return c.errMsg
}

// Visible returns the fetched page narrowed by the local search predicate.
func (c *Controller) Visible() []model.CutoffRecord {
	return SearchMatch(c.records, c.filter.Search)
}

// MatchCount returns how many records the current filter leaves visible.
// Zero matches is a normal displayed state, not a failure.
func (c *Controller) MatchCount() int {
	return len(c.Visible())
}

// Groups returns the grouped view of the visible records.
func (c *Controller) Groups() []model.CollegeCategoryGroup {
	return Aggregate(c.records, c.filter)
}

func (c *Controller) fetch(ctx context.Context) error {
	c.state = StateLoading
	c.errMsg = ""

	page, err := c.fetcher.Cutoffs(ctx, c.query())
	if err != nil {
		c.state = StateErrored
		var berr *backend.Error
		if errors.As(err, &berr) && berr.Message != "" {
			c.errMsg = berr.Message
		} else {
			c.errMsg = genericFetchError
		}
		return err
	}

	c.records = page.Colleges
	c.hasMore = page.HasMore
	c.state = StatePopulated
	return nil
}

func (c *Controller) query() url.Values {
	q := url.Values{}
	for k, vs := range c.base {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("page", strconv.Itoa(c.page))
	q.Set("limit", strconv.Itoa(c.limit))

	if c.filter.Course != CourseAll {
		q.Set("course", coursecode.Derive(c.filter.Course))
	}
	if c.filter.Chances != ChancesAll {
		q.Set("chances", c.filter.Chances)
	}
	if c.filter.Round != RoundAll {
		q.Set("round", strconv.Itoa(c.filter.Round))
	}
	if c.filter.District != model.DistrictAll {
		q.Set("district", c.filter.District)
	}
	return q
}
