package model

// DistrictAll is the sentinel meaning "no district constraint".
const DistrictAll = "ALL"

// DistrictCodeToName maps the district codes the backend filters on to their
// display names.
var DistrictCodeToName = map[string]string{
	DistrictAll: "All Districts",
	"BLR":       "Bengaluru",
	"MYS":       "Mysuru",
	"MLR":       "Mangaluru",
	"HBL":       "Hubballi-Dharwad",
	"BGM":       "Belagavi",
	"KLB":       "Kalaburagi",
	"SMG":       "Shivamogga",
	"TMK":       "Tumakuru",
	"DVG":       "Davanagere",
	"UDP":       "Udupi",
	"BLY":       "Ballari",
	"HSN":       "Hassan",
}

// ValidDistrict reports whether code is a known district code or the ALL
// sentinel.
func ValidDistrict(code string) bool {
	_, ok := DistrictCodeToName[code]
	return ok
}
