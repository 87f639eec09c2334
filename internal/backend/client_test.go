package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColleges(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/colleges/kcet", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"colleges":[{"collegeID":"E001","collegeName":"UVCE"},{"collegeID":"E002","collegeName":"RVCE"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	colleges, err := c.Colleges(context.Background())
	require.NoError(t, err)
	require.Len(t, colleges, 2)
	assert.Equal(t, "E001", colleges[0].CollegeID)
	assert.Equal(t, "RVCE", colleges[1].CollegeName)
}

func TestCoursesFirstEnvelopeElementOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/colleges/kcet/E001/courses", r.URL.Path)
		w.Write([]byte(`{"colleges":[
			{"collegeName":"UVCE","CourseList":[{"course_name":"Computer Science","course_code":"CS"}]},
			{"collegeName":"ignored","CourseList":[{"course_name":"Civil","course_code":"CV"}]}
		]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	courses, err := c.Courses(context.Background(), "E001")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS", courses[0].CourseCode)
}

func TestCutoffsEncodesQueryAndYear(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Equal(t, "CS", q.Get("course"))
		assert.Equal(t, "2024", q.Get("year"))
		w.Write([]byte(`{"colleges":[{"collegeID":"E001","collegeName":"UVCE","course":"Computer Science","category":"GM","round":1,"cutoffRank":500}],"hasMore":true}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	page, err := c.Cutoffs(context.Background(), map[string][]string{
		"page":   {"2"},
		"limit":  {"25"},
		"course": {"CS"},
	})
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	require.Len(t, page.Colleges, 1)
	assert.Equal(t, 500, page.Colleges[0].CutoffRank)
}

func TestSubmitPreferencesKeepsOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predictions/kcet/preferences", r.URL.Path)

		var payload PreferencePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 5000, payload.Rank)
		assert.Equal(t, "GM", payload.Cat)
		require.Len(t, payload.Preferences, 2)
		assert.Equal(t, "E001", payload.Preferences[0].CollegeCode)
		assert.Equal(t, "E002", payload.Preferences[1].CollegeCode)

		w.Write([]byte(`{"result":{"college_name":"UVCE","course":"CS","cutoff_rank":5400,"preference_no":1,"reason":"seat available in round 1"}}`))
	}))
	defer ts.Close()

	c := NewClient("http://unused.invalid", ts.URL)
	result, err := c.SubmitPreferences(context.Background(), PreferencePayload{
		Rank: 5000,
		Cat:  "GM",
		Preferences: []PreferenceChoice{
			{CollegeCode: "E001", CourseCode: "CS"},
			{CollegeCode: "E002", CourseCode: "EC"},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Allotted())
	assert.Equal(t, 1, result.PreferenceNo)
}

func TestNon2xxBecomesBackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream exploded","status":"error"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.Colleges(context.Background())
	require.Error(t, err)

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusBadGateway, berr.StatusCode)
	assert.Equal(t, "upstream exploded", berr.Message)
}

func TestNon2xxWithoutMessageGetsFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "")
	_, err := c.Colleges(context.Background())

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "backend API error", berr.Message)
}
