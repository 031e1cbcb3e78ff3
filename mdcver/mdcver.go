// Package mdcver implements the version identifier for the on-media format
// of pool metadata container (MDC) content.
//
// A Version identifies the semantic format of the records written into an
// MDC. It is the version of the first binary release that introduced that
// format. Versions are ordered lexicographically by major, minor, patch and
// dev, in that order.
package mdcver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a four component MDC content format version.
// The zero value (0.0.0.0) is not a valid registered version, but it
// compares and formats like any other value.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
	Dev   uint16
}

// New is a convenience constructor for ad hoc comparisons.
func New(major, minor, patch, dev uint16) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Dev: dev}
}

// String renders the canonical textual form "<major>.<minor>.<patch>.<dev>".
// This exact form appears in diagnostics and on the status page, and must
// stay stable across releases so that log scrapers can rely on it.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Dev)
}

// Cmp returns the three-way ordering of v against other: -1 if v is older,
// 0 if equal, 1 if v is newer. The first differing component decides.
func (v Version) Cmp(other Version) int {
	a := [4]uint16{v.Major, v.Minor, v.Patch, v.Dev}
	b := [4]uint16{other.Major, other.Minor, other.Patch, other.Dev}
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Parse parses the canonical "<major>.<minor>.<patch>.<dev>" form produced
// by String. All four components must be present.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Version{}, errors.Errorf("version %q: need exactly 4 dot-separated components", s)
	}
	var c [4]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Version{}, errors.Wrapf(err, "version %q: component %d", s, i+1)
		}
		c[i] = uint16(n)
	}
	return Version{Major: c[0], Minor: c[1], Patch: c[2], Dev: c[3]}, nil
}
