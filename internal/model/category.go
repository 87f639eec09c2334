package model

// Categories is the closed set of KCET reservation categories the allotment
// backend accepts.
var Categories = []string{
	"GM",
	"1G",
	"2AG",
	"2BG",
	"3AG",
	"3BG",
	"SCG",
	"STG",
	"KKR",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// ValidCategory reports whether cat is one of the KCET categories.
func ValidCategory(cat string) bool {
	_, ok := categorySet[cat]
	return ok
}
