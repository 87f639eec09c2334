// Package coursecode derives the short course code the backend filters on
// from a free-form course name. The derivation must stay deterministic: the
// same code is used both when encoding a course filter into a query and when
// displaying the code next to a result row.
package coursecode

import (
	"sort"
	"strings"
)

// nameToCode is the fixed course name to code table. Keys are the canonical
// names shown in the course filter dropdown.
var nameToCode = map[string]string{
	"Computer Science":           "CS",
	"Artificial Intelligence":    "AI",
	"Electrical":                 "EE",
	"Electronics":                "EC",
	"Aerospace":                  "AS",
	"Aeronautical":               "AN",
	"Mechanical":                 "ME",
	"Civil":                      "CV",
	"Data Science":               "DS",
	"Cyber Security":             "CY",
	"Information Science":        "IS",
	"Information Technology":     "IT",
	"Biotechnology":              "BT",
	"Biomedical":                 "BM",
	"Agricultural Engineering":   "AG",
	"Robotics Engineering":       "RO",
	"Automotive":                 "AMT",
	"Automobile":                 "AMB",
	"Chemical":                   "CH",
	"Environmental Engineering":  "EV",
	"Mechatronics":               "MT",
	"Textile Engineering":        "TXT",
	"Architecture":               "ANP",
	"Planning":                   "ANP",
	"Silk Technology":            "ST",
	"Polymer Technology":         "PT",
	"Petroleum Engineering":      "PTR",
	"Mining Engineering":         "MIN",
	"Pharmaceutical Engineering": "PM",
	"VLSI":                       "VI",
	"Design":                     "DSG",
	"Industrial Engineering":     "IND",
	"Industrial Production":      "IND",
	"Industrial Management":      "IND",
	"Ceramics Engineering":       "CR",
	"Marine Engineering":         "MN",
	"Mathematics and Computing":  "MC",
	"Internet of Things":         "IOT",
}

var codeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(nameToCode))
	for _, code := range nameToCode {
		m[code] = struct{}{}
	}
	return m
}()

// heuristics are checked in order against the lowercased name; the first match
// wins. The order is load-bearing: "data science" must be tried before
// "computer" so that combined programme names keep their specialization code.
var heuristics = []struct {
	keyword string
	code    string
}{
	{"data science", "DS"},
	{"artificial", "AI"},
	{"cyber", "CY"},
	{"computer", "CS"},
	{"electronics", "EC"},
	{"information", "IT"},
	{"mechanical", "ME"},
	{"electrical", "EE"},
	{"civil", "CV"},
	{"bio", "BT"},
}

// Derive returns the course code for courseName. Lookup order: the name is
// already a known code, exact table match, keyword heuristics, then the first
// two letters uppercased.
func Derive(courseName string) string {
	if courseName == "" {
		return ""
	}
	upper := strings.ToUpper(courseName)
	if _, ok := codeSet[upper]; ok {
		return upper
	}
	if code, ok := nameToCode[courseName]; ok {
		return code
	}

	lower := strings.ToLower(courseName)
	for _, h := range heuristics {
		if strings.Contains(lower, h.keyword) {
			return h.code
		}
	}

	r := []rune(courseName)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// Names returns the canonical course names in sorted order, for filter
// dropdowns.
func Names() []string {
	names := make([]string, 0, len(nameToCode))
	for name := range nameToCode {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
