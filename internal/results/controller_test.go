package results

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admitplan/kcetgo/internal/backend"
	"github.com/admitplan/kcetgo/internal/model"
)

type fakeFetcher struct {
	calls   int
	queries []url.Values
	page    *backend.CutoffPage
	err     error
}

func (f *fakeFetcher) Cutoffs(ctx context.Context, query url.Values) (*backend.CutoffPage, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func somePage(hasMore bool) *backend.CutoffPage {
	return &backend.CutoffPage{
		Colleges: []model.CutoffRecord{
			{CollegeID: "E001", CollegeName: "UVCE", Category: "GM", Course: "CS", Round: 1, CutoffRank: 500},
			{CollegeID: "E002", CollegeName: "RVCE", Category: "GM", Course: "EC", Round: 1, CutoffRank: 300},
		},
		HasMore: hasMore,
	}
}

func TestControllerStartsIdleOnPageOne(t *testing.T) {
	c := NewController(&fakeFetcher{}, nil, 0)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 1, c.Page())
	assert.True(t, c.Filter().IsDefault())
	assert.False(t, c.CanPrev())
	assert.False(t, c.CanNext())
}

func TestRefreshPopulates(t *testing.T) {
	f := &fakeFetcher{page: somePage(true)}
	c := NewController(f, url.Values{"rank": {"5000"}, "cat": {"GM"}}, 0)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, StatePopulated, c.State())
	assert.Equal(t, 2, c.MatchCount())
	assert.True(t, c.CanNext())

	q := f.queries[0]
	assert.Equal(t, "5000", q.Get("rank"))
	assert.Equal(t, "GM", q.Get("cat"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Empty(t, q.Get("course"))
	assert.Empty(t, q.Get("round"))
	assert.Empty(t, q.Get("district"))
}

func TestSetSearchFiltersLocallyWithoutFetch(t *testing.T) {
	f := &fakeFetcher{page: somePage(false)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, 1, f.calls)

	c.SetSearch("uvce")
	assert.Equal(t, 1, f.calls, "search must not re-fetch")
	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "UVCE", visible[0].CollegeName)
	assert.Equal(t, 1, c.MatchCount())
}

func TestCourseFilterRefetchesWithDerivedCodeAndResetsPage(t *testing.T) {
	f := &fakeFetcher{page: somePage(true)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.NextPage(context.Background()))
	require.Equal(t, 2, c.Page())

	require.NoError(t, c.SetCourse(context.Background(), "Computer Science and Engineering"))
	assert.Equal(t, 1, c.Page())

	q := f.queries[len(f.queries)-1]
	assert.Equal(t, "CS", q.Get("course"))
	assert.Equal(t, "1", q.Get("page"))
}

func TestRoundChancesDistrictEncodedInQuery(t *testing.T) {
	f := &fakeFetcher{page: somePage(false)}
	c := NewController(f, nil, 0)

	require.NoError(t, c.SetChances(context.Background(), "high"))
	require.NoError(t, c.SetRound(context.Background(), 2))
	require.NoError(t, c.SetDistrict(context.Background(), "BLR"))

	q := f.queries[len(f.queries)-1]
	assert.Equal(t, "high", q.Get("chances"))
	assert.Equal(t, "2", q.Get("round"))
	assert.Equal(t, "BLR", q.Get("district"))
}

func TestPaginationBoundaries(t *testing.T) {
	f := &fakeFetcher{page: somePage(false)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.Refresh(context.Background()))

	// hasMore false: Next is disabled and a no-op.
	assert.False(t, c.CanNext())
	require.NoError(t, c.NextPage(context.Background()))
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 1, f.calls)

	// Page 1: Prev is disabled and a no-op.
	assert.False(t, c.CanPrev())
	require.NoError(t, c.PrevPage(context.Background()))
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 1, f.calls)
}

func TestNextAndPrevMoveCursor(t *testing.T) {
	f := &fakeFetcher{page: somePage(true)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.NextPage(context.Background()))
	assert.Equal(t, 2, c.Page())
	assert.True(t, c.CanPrev())
	assert.Equal(t, "2", f.queries[len(f.queries)-1].Get("page"))

	require.NoError(t, c.PrevPage(context.Background()))
	assert.Equal(t, 1, c.Page())
}

func TestClearFiltersResetsAndFetchesOnce(t *testing.T) {
	f := &fakeFetcher{page: somePage(true)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.SetCourse(context.Background(), "Mechanical"))
	require.NoError(t, c.SetRound(context.Background(), 3))
	c.SetSearch("uvce")
	require.NoError(t, c.NextPage(context.Background()))
	calls := f.calls

	require.NoError(t, c.ClearFilters(context.Background()))

	assert.Equal(t, calls+1, f.calls, "clear must issue exactly one re-fetch")
	assert.True(t, c.Filter().IsDefault())
	assert.Equal(t, 1, c.Page())
	q := f.queries[len(f.queries)-1]
	assert.Empty(t, q.Get("course"))
	assert.Empty(t, q.Get("round"))
	assert.Empty(t, q.Get("district"))
	assert.Empty(t, q.Get("chances"))
}

func TestFetchErrorEntersErroredWithUpstreamMessage(t *testing.T) {
	f := &fakeFetcher{err: &backend.Error{StatusCode: 502, Message: "upstream exploded"}}
	c := NewController(f, nil, 0)

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateErrored, c.State())
	assert.Equal(t, "upstream exploded", c.ErrorMessage())

	// The filter survives the failure so the user can simply retry.
	assert.True(t, c.Filter().IsDefault())
}

func TestFetchErrorWithoutMessageFallsBack(t *testing.T) {
	f := &fakeFetcher{err: context.DeadlineExceeded}
	c := NewController(f, nil, 0)

	require.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, StateErrored, c.State())
	assert.Equal(t, genericFetchError, c.ErrorMessage())
}

func TestEmptyResultIsPopulatedNotErrored(t *testing.T) {
	f := &fakeFetcher{page: &backend.CutoffPage{}}
	c := NewController(f, nil, 0)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, StatePopulated, c.State())
	assert.Zero(t, c.MatchCount())
	assert.Empty(t, c.Groups())
}

func TestGroupsReflectFilter(t *testing.T) {
	f := &fakeFetcher{page: somePage(false)}
	c := NewController(f, nil, 0)
	require.NoError(t, c.Refresh(context.Background()))

	c.SetSearch("rvce")
	groups := c.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "RVCE", groups[0].CollegeName)
}
