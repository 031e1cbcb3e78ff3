package mdc

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/PowerDNS/simpleblob"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/mpxstore/mdckit/mdcver"
	"github.com/mpxstore/mdckit/omf"
)

// Compat classifies a container's version against what this binary
// understands.
type Compat int

const (
	// CompatExact means the container was written at the version this
	// binary writes.
	CompatExact Compat = iota
	// CompatOlder means the container was written at an older version
	// that is still registered, so this binary understands it.
	CompatOlder
	// CompatUnknown means the version is not in the registry, most likely
	// written by a newer release. Whether to refuse the pool or degrade
	// is the caller's decision.
	CompatUnknown
)

func (c Compat) String() string {
	switch c {
	case CompatExact:
		return "exact"
	case CompatOlder:
		return "older-known"
	case CompatUnknown:
		return "unknown"
	}
	return fmt.Sprintf("Compat(%d)", int(c))
}

// UnknownVersionError is returned when records of a container written at an
// unregistered content version are accessed.
type UnknownVersionError struct {
	Version mdcver.Version
}

func (e UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown MDC content version %s (newer binary?)", e.Version)
}

// Reader iterates over the records of a loaded metadata container.
type Reader struct {
	version mdcver.Version
	written omf.VersionRecord
	compat  Compat
	legal   map[omf.RecordType]bool
	rest    []byte
}

// Parse parses uncompressed container contents. It fails only on
// structural problems (bad magic, corrupt or absent version record); an
// unknown content version is not an error here, it is reported through
// Compat and surfaces as UnknownVersionError when records are accessed.
func Parse(data []byte) (*Reader, error) {
	if len(data) < MagicSize {
		return nil, ErrTooShort
	}
	if !bytes.Equal(data[:MagicSize], Magic) {
		return nil, ErrBadMagic
	}

	rec, rest, err := parseFrame(data[MagicSize:])
	if err != nil {
		return nil, errors.Wrap(err, "version record")
	}
	if rec.Type != omf.TypeVersion {
		return nil, ErrNoVersion
	}
	var vr omf.VersionRecord
	if err := vr.Unmarshal(rec.Payload); err != nil {
		return nil, errors.Wrap(err, "decode version record")
	}

	r := &Reader{
		version: vr.Version,
		written: vr,
		rest:    rest,
	}
	cur := omf.CurrentVersion()
	types, known := omf.VersionTypes(vr.Version)
	switch {
	case !known:
		r.compat = CompatUnknown
		metricVersionUnknown.Inc()
	case mdcver.Compare(vr.Version, mdcver.Eq, cur):
		r.compat = CompatExact
	default:
		r.compat = CompatOlder
	}
	if known {
		r.legal = make(map[omf.RecordType]bool, len(types))
		for _, rt := range types {
			r.legal[rt] = true
		}
	}
	return r, nil
}

// Load decompresses gzipped container data, as stored in blob storage, and
// parses it.
func Load(data []byte) (*Reader, error) {
	g, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decompress container")
	}
	raw, err := io.ReadAll(g)
	if err != nil {
		return nil, errors.Wrap(err, "decompress container")
	}
	if err := g.Close(); err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Fetch loads a container blob from storage and parses it.
func Fetch(ctx context.Context, st simpleblob.Interface, name string) (*Reader, error) {
	data, err := st.Load(ctx, name)
	if err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrapf(err, "load container %q", name)
	}
	r, err := Load(data)
	if err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrapf(err, "container %q", name)
	}
	metricContainersLoaded.Inc()
	return r, nil
}

// Version returns the MDC content version recorded in the container.
func (r *Reader) Version() mdcver.Version {
	return r.version
}

// WrittenBy returns the binary version string stored by the writer, which
// may be empty.
func (r *Reader) WrittenBy() string {
	return r.written.WrittenBy
}

// Compat classifies the container version against this binary.
func (r *Reader) Compat() Compat {
	return r.compat
}

// Comment returns the registry comment for the container's version.
// ok is false when the version is unknown to this binary.
func (r *Reader) Comment() (comment string, ok bool) {
	return omf.VersionComment(r.version)
}

// Next returns the next record, or io.EOF after the last one. Records of a
// container at an unknown content version cannot be interpreted safely, so
// Next fails with UnknownVersionError in that case; the version itself
// remains available through Version and Compat. Record types outside the
// legal set for the container version fail with ErrRecordType.
func (r *Reader) Next() (Record, error) {
	if r.compat == CompatUnknown {
		return Record{}, UnknownVersionError{Version: r.version}
	}
	if len(r.rest) == 0 {
		return Record{}, io.EOF
	}
	rec, rest, err := parseFrame(r.rest)
	if err != nil {
		return Record{}, err
	}
	if !r.legal[rec.Type] {
		return Record{}, errors.Wrapf(ErrRecordType, "type %d (%s) at version %s",
			uint8(rec.Type), rec.Type, r.version)
	}
	r.rest = rest
	return rec, nil
}
