package mdc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	timeFormat = "20060102-150405.000000000" // but need to s/./-/
	// Extension is the blob name extension of stored containers.
	Extension = ".omf.gz"
)

// Timestamp formats a container timestamp for use in a blob name.
func Timestamp(ts time.Time) string {
	return strings.Replace(ts.UTC().Format(timeFormat), ".", "-", 1)
}

// Name returns the blob name of a metadata container.
// Index 0 is MDC0, the root container holding the pool configuration.
func Name(pool string, index int, ts time.Time) string {
	return fmt.Sprintf("%s__mdc%d__%s%s", pool, index, Timestamp(ts), Extension)
}

// NameInfo holds the components parsed out of a container blob name.
type NameInfo struct {
	FullName  string
	Pool      string
	Index     int
	Timestamp time.Time
}

// ParseName parses a container blob name produced by Name.
func ParseName(name string) (NameInfo, error) {
	var ni NameInfo
	ni.FullName = name

	base, ok := strings.CutSuffix(name, Extension)
	if !ok {
		return ni, errors.Errorf("container name %q: missing %s extension", name, Extension)
	}
	parts := strings.Split(base, "__")
	if len(parts) != 3 {
		return ni, errors.Errorf("container name %q: expected 3 '__' separated parts", name)
	}
	ni.Pool = parts[0]
	if ni.Pool == "" {
		return ni, errors.Errorf("container name %q: empty pool name", name)
	}

	idx, ok := strings.CutPrefix(parts[1], "mdc")
	if !ok {
		return ni, errors.Errorf("container name %q: missing mdc index", name)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return ni, errors.Errorf("container name %q: invalid mdc index %q", name, idx)
	}
	ni.Index = n

	// Undo the '.' replacement in the nanoseconds part
	tsPart := parts[2]
	if len(tsPart) != len(timeFormat) {
		return ni, errors.Errorf("container name %q: invalid timestamp %q", name, tsPart)
	}
	tsPart = tsPart[:15] + "." + tsPart[16:]
	ts, err := time.ParseInLocation(timeFormat, tsPart, time.UTC)
	if err != nil {
		return ni, errors.Wrapf(err, "container name %q: invalid timestamp", name)
	}
	ni.Timestamp = ts

	return ni, nil
}
