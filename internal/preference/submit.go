package preference

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/admitplan/kcetgo/internal/backend"
	"github.com/admitplan/kcetgo/internal/model"
)

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one has not resolved yet. At most one submission may be in flight.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationError is a local precondition failure that blocks submission
// before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Submitter runs the allotment simulation; implemented by the backend client.
type Submitter interface {
	SubmitPreferences(ctx context.Context, payload backend.PreferencePayload) (*model.AllotmentResult, error)
}

// Client validates a candidate profile plus preference set and submits them
// as one allotment request.
type Client struct {
	backend  Submitter
	inFlight atomic.Bool
}

func NewClient(b Submitter) *Client {
	return &Client{backend: b}
}

// Validate checks the local preconditions without touching the network.
func Validate(profile model.CandidateProfile, set *Set) error {
	if profile.Rank < 1 {
		return &ValidationError{Field: "rank", Message: "rank must be a positive integer"}
	}
	if !model.ValidCategory(profile.Category) {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("%q is not a KCET category", profile.Category)}
	}
	if set == nil || set.Len() == 0 {
		return &ValidationError{Field: "preferences", Message: "preference list is empty"}
	}
	return nil
}

// Submit sends the preference list in its current order. Validation failures
// and an in-flight submission are rejected locally. On transport failure the
// set is left untouched, so the candidate can retry without rebuilding it.
func (c *Client) Submit(ctx context.Context, profile model.CandidateProfile, set *Set) (*model.AllotmentResult, error) {
	if err := Validate(profile, set); err != nil {
		return nil, err
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	entries := set.Entries()
	choices := make([]backend.PreferenceChoice, len(entries))
	for i, e := range entries {
		choices[i] = backend.PreferenceChoice{
			CollegeCode: e.CollegeCode,
			CourseCode:  e.CourseCode,
		}
	}

	return c.backend.SubmitPreferences(ctx, backend.PreferencePayload{
		Rank:        profile.Rank,
		Cat:         profile.Category,
		HK:          profile.HK,
		Rural:       profile.Rural,
		Kannada:     profile.Kannada,
		Preferences: choices,
	})
}
