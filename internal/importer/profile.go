package importer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Profile describes the header row of an item spreadsheet. Only the name and
// cost columns are required; the rest are read when present.
type Profile struct {
	Name        string
	NameCol     string
	CostCol     string
	PriorityCol string
	NotesCol    string
	LinkCol     string
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.CostCol}
}

// profiles is tried in order during detection.
var profiles = []Profile{
	{
		Name:        "en",
		NameCol:     "Name",
		CostCol:     "Estimated Cost",
		PriorityCol: "Priority",
		NotesCol:    "Notes",
		LinkCol:     "Vendor Link",
	},
	{
		Name:        "vi",
		NameCol:     "Tên",
		CostCol:     "Chi phí dự kiến",
		PriorityCol: "Ưu tiên",
		NotesCol:    "Ghi chú",
		LinkCol:     "Liên kết",
	},
}

// Profiles returns the names of the supported header layouts.
func Profiles() []string {
	return profileNames(profiles)
}

func findProfile(name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}

	return Profile{}, false
}

// headerKey folds a header cell so that "estimated cost" and a decomposed
// "Tên" written by macOS spreadsheets still match.
func headerKey(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
