package model

// College is one institution from the KCET catalog. Immutable once fetched.
type College struct {
	CollegeID   string `json:"collegeID"`
	CollegeName string `json:"collegeName"`
}

// Course is offered by a specific college.
type Course struct {
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}

// PreferenceEntry is one (college, course) choice in a candidate's ordered
// preference list. ID is generated at insertion time and never reused, so
// reordering stays stable even when two entries look alike.
type PreferenceEntry struct {
	ID          string `json:"id"`
	CollegeCode string `json:"college_code"`
	CollegeName string `json:"college_name"`
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
}

// CandidateProfile carries the candidate details the allotment backend needs.
type CandidateProfile struct {
	Rank     int    `json:"rank"`
	Category string `json:"cat"`
	HK       bool   `json:"hk"`
	Rural    bool   `json:"rural"`
	Kannada  bool   `json:"kannada"`
}

// CutoffRecord is one flat row of historical cutoff data: one college, course,
// category and round. Read-only input to the aggregator.
type CutoffRecord struct {
	CollegeID   string `json:"collegeID"`
	CollegeName string `json:"collegeName"`
	Course      string `json:"course"`
	Category    string `json:"category"`
	Round       int    `json:"round"`
	CutoffRank  int    `json:"cutoffRank"`
	GMRank      int    `json:"gmRank,omitempty"`
	Chances     string `json:"chances,omitempty"`
}

// RoundCutoff is the cutoff rank observed in a single counselling round.
type RoundCutoff struct {
	Round      int `json:"round"`
	CutoffRank int `json:"cutoffRank"`
}

// CourseGroup collects all round cutoffs for one course within a college group,
// most recent round first.
type CourseGroup struct {
	CourseName string        `json:"course"`
	Entries    []RoundCutoff `json:"entries"`
}

// CollegeCategoryGroup is one (college name, category) bucket of the grouped
// view. Grouping is by display name, not id; CollegeID holds the first id seen
// so callers can still link to a college page.
type CollegeCategoryGroup struct {
	CollegeID   string        `json:"collegeID"`
	CollegeName string        `json:"collegeName"`
	Category    string        `json:"category"`
	Courses     []CourseGroup `json:"courses"`
}

// AllotmentResult is the outcome of one allotment simulation. A zero
// CollegeName with a non-empty Reason means no seat was allotted; both shapes
// are success states from the transport's point of view.
type AllotmentResult struct {
	CollegeName  string `json:"college_name,omitempty"`
	Course       string `json:"course,omitempty"`
	CutoffRank   int    `json:"cutoff_rank,omitempty"`
	PreferenceNo int    `json:"preference_no,omitempty"`
	Reason       string `json:"reason"`
}

// Allotted reports whether the simulation granted a seat.
func (r AllotmentResult) Allotted() bool {
	return r.CollegeName != ""
}
