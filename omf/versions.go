package omf

import (
	"fmt"

	"github.com/mpxstore/mdckit/mdcver"
)

// Latest MDC content version understood by this binary.
// Also the version used when this binary writes MDC content.
const (
	verMajor uint16 = 1
	verMinor uint16 = 0
	verPatch uint16 = 0
	verDev   uint16 = 0
)

// versionInfo describes one historical MDC content version.
type versionInfo struct {
	// version of the MDC content. It is the version of the first binary
	// release that introduced that content semantic/format.
	version mdcver.Version
	// types legal when writing MDC content at this version
	types []RecordType
	// comment about the version, for diagnostics
	comment string
}

// versionTable lists the versions of MDC content, oldest first.
//
// Each time the MDC content semantic/format changes (making it incompatible
// with earlier binary releases) exactly one entry is appended here, with a
// version strictly higher than all existing entries. The last entry is the
// version placed in the version record when this binary writes MDC content,
// and the newest content this binary understands. Releases that do not
// change the content semantic/format add no entry.
//
// Example:
//   - Release 1.0.0.0 generates the first ever MDC content: one entry,
//     1.0.0.0.
//   - Release 1.0.0.1 changes the meaning of the media class enum: a second
//     entry, 1.0.0.1, is appended.
//   - Release 1.0.1.0 changes no content semantics: no entry is added, its
//     content is still readable by a 1.0.0.1 binary.
var versionTable = []versionInfo{
	{
		version: mdcver.New(verMajor, verMinor, verPatch, verDev),
		types: []RecordType{
			TypeObjectCreate, TypeObjectUpdate, TypeObjectDelete,
			TypeObjectIDCheckpoint, TypeObjectErase,
			TypeMediaClassConfig, TypeMediaClassSpare,
			TypeVersion, TypePoolConfig,
		},
		comment: "Initial MDC content",
	},
}

func init() {
	checkTable(versionTable)
}

// checkTable verifies the table invariants. An empty or unsorted table is a
// build defect, so it panics rather than hand out a sentinel version.
func checkTable(tab []versionInfo) {
	if len(tab) == 0 {
		panic("omf: empty MDC version table")
	}
	for i := 1; i < len(tab); i++ {
		a, b := tab[i-1].version, tab[i].version
		if !mdcver.Compare(a, mdcver.LT, b) {
			panic(fmt.Sprintf("omf: MDC version table not strictly increasing: %s before %s", a, b))
		}
	}
}

func currentVersion(tab []versionInfo) mdcver.Version {
	return tab[len(tab)-1].version
}

func lookupVersion(tab []versionInfo, v mdcver.Version) (versionInfo, bool) {
	for _, vi := range tab {
		if mdcver.Compare(v, mdcver.Eq, vi.version) {
			return vi, true
		}
	}
	return versionInfo{}, false
}

// CurrentVersion returns the newest MDC content version this binary
// understands, which is also the version it writes.
func CurrentVersion() mdcver.Version {
	return currentVersion(versionTable)
}

// VersionComment returns the comment associated with an exactly matching
// registered version. ok is false for a version unknown to this binary,
// which may well be a valid future version written by a newer release; the
// caller decides what to do about that.
func VersionComment(v mdcver.Version) (comment string, ok bool) {
	vi, ok := lookupVersion(versionTable, v)
	if !ok {
		return "", false
	}
	return vi.comment, true
}

// VersionTypes returns the record types that are legal in MDC content
// written at an exactly matching registered version. The returned slice is
// a copy. ok is false for an unknown version.
func VersionTypes(v mdcver.Version) (types []RecordType, ok bool) {
	vi, ok := lookupVersion(versionTable, v)
	if !ok {
		return nil, false
	}
	types = make([]RecordType, len(vi.types))
	copy(types, vi.types)
	return types, true
}
