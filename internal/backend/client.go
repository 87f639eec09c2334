// Package backend is the typed HTTP client for the external prediction and
// allotment service. The core never computes cutoffs or allotments itself; it
// only calls these endpoints and interprets the envelopes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/admitplan/kcetgo/internal/model"
)

const defaultTimeout = 10 * time.Second

// Error is a transport-level failure: a non-2xx response from the backend.
// Message carries the upstream-provided message when the backend sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the prediction backend. The preference submission endpoint
// may live on a different host, mirroring the split the proxy layer had.
type Client struct {
	baseURL string
	prefURL string
	http    *http.Client
}

// NewClient builds a Client. prefURL falls back to baseURL when empty.
func NewClient(baseURL, prefURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	prefURL = strings.TrimRight(prefURL, "/")
	if prefURL == "" {
		prefURL = baseURL
	}
	return &Client{
		baseURL: baseURL,
		prefURL: prefURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type collegesEnvelope struct {
	Colleges []model.College `json:"colleges"`
}

// Colleges fetches the full college list.
func (c *Client) Colleges(ctx context.Context) ([]model.College, error) {
	var env collegesEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/api/colleges/kcet", &env); err != nil {
		return nil, err
	}
	return env.Colleges, nil
}

type coursesEnvelope struct {
	Colleges []struct {
		CollegeName string         `json:"collegeName"`
		CourseList  []model.Course `json:"CourseList"`
	} `json:"colleges"`
}

// Courses fetches the course list for one college. Only the first element of
// the response envelope is consulted, per the backend contract.
func (c *Client) Courses(ctx context.Context, collegeCode string) ([]model.Course, error) {
	if collegeCode == "" {
		return nil, fmt.Errorf("college code is required")
	}
	u := fmt.Sprintf("%s/api/colleges/kcet/%s/courses", c.baseURL, url.PathEscape(collegeCode))
	var env coursesEnvelope
	if err := c.getJSON(ctx, u, &env); err != nil {
		return nil, err
	}
	if len(env.Colleges) == 0 {
		return nil, nil
	}
	return env.Colleges[0].CourseList, nil
}

// CutoffPage is one page of flat cutoff records plus the has-more indicator
// that gates pagination.
type CutoffPage struct {
	Colleges []model.CutoffRecord `json:"colleges"`
	HasMore  bool                 `json:"hasMore"`
}

// Cutoffs fetches one page of cutoff records with the given query already
// encoding filters, page and limit. The backend pins the data year.
func (c *Client) Cutoffs(ctx context.Context, query url.Values) (*CutoffPage, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("year", "2024")

	var page CutoffPage
	if err := c.getJSON(ctx, c.baseURL+"/api/exams/kcet?"+q.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PreferenceChoice is one (college, course) pair in the submission payload.
type PreferenceChoice struct {
	CollegeCode string `json:"college_code"`
	CourseCode  string `json:"course_code"`
}

// PreferencePayload is the allotment simulation request. The Preferences
// array is order-significant: the backend evaluates it first to last.
type PreferencePayload struct {
	Rank        int                `json:"rank"`
	Cat         string             `json:"cat"`
	HK          bool               `json:"hk"`
	Rural       bool               `json:"rural"`
	Kannada     bool               `json:"kannada"`
	Preferences []PreferenceChoice `json:"preferences"`
}

type allotmentEnvelope struct {
	Result model.AllotmentResult `json:"result"`
}

// SubmitPreferences runs one allotment simulation.
func (c *Client) SubmitPreferences(ctx context.Context, payload PreferencePayload) (*model.AllotmentResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preference payload: %w", err)
	}

	u := c.prefURL + "/api/predictions/kcet/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preference submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var env allotmentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode allotment result: %w", err)
	}
	return &env.Result, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = "backend API error"
	}
	return &Error{StatusCode: resp.StatusCode, Message: body.Message}
}
