package treeview

import (
	"sort"
	"strings"
	"time"
)

// datePrefixLayout matches the ISO-8601 date prefix convention the
// archive uses for meeting folders ("2024-03-01 Notes").
const datePrefixLayout = "2006-01-02"

// sortRecords imposes the engine's stable total order in place:
//
//  1. Folders before files.
//  2. Among folders, date-prefixed names sort by parsed date descending
//     (newest first); a dated folder sorts before an undated one.
//  3. Otherwise case-insensitive lexicographic by name, with the raw
//     name as the final tiebreak so the order is total.
//
// Files always follow all folders, ordered lexicographically.
func sortRecords(recs []*FileRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recordLess(recs[i], recs[j])
	})
}

// sortByName orders records lexicographically by name, ignoring kind.
// Used for the root-anchor scope, which contains only folders.
func sortByName(recs []*FileRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return nameLess(recs[i].Name, recs[j].Name)
	})
}

func recordLess(a, b *FileRecord) bool {
	aFolder, bFolder := a.IsFolder(), b.IsFolder()
	if aFolder != bFolder {
		return aFolder
	}

	if aFolder {
		aDate, aOK := datePrefix(a.Name)
		bDate, bOK := datePrefix(b.Name)
		switch {
		case aOK && bOK:
			if !aDate.Equal(bDate) {
				return aDate.After(bDate) // newest first
			}
		case aOK:
			return true
		case bOK:
			return false
		}
	}

	return nameLess(a.Name, b.Name)
}

// nameLess is the case-insensitive lexicographic comparison, with the raw
// string as tiebreak so equal-fold names still order deterministically.
func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// datePrefix parses a leading YYYY-MM-DD from a name. The date must be
// the first ten characters and actually parse; "2024-13-99 x" is not a
// date prefix.
func datePrefix(name string) (time.Time, bool) {
	if len(name) < len(datePrefixLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(datePrefixLayout, name[:len(datePrefixLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
