package mdc

import (
	"bytes"
	"context"
	"io"

	"github.com/PowerDNS/simpleblob"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mpxstore/mdckit/mdcver"
	"github.com/mpxstore/mdckit/omf"
)

// Writer assembles a new metadata container. The first record is always the
// version record at the current MDC content version; every further record
// is checked against the set of types legal at that version before it is
// accepted.
type Writer struct {
	version  mdcver.Version
	legal    map[omf.RecordType]bool
	buf      []byte
	records  int
	finished bool
}

// NewWriter starts a container. writtenBy is the binary version string
// stored in the version record for diagnostics; it may be empty.
func NewWriter(writtenBy string) *Writer {
	cur := omf.CurrentVersion()
	types, ok := omf.VersionTypes(cur)
	if !ok {
		// The current version is by definition the last registry entry
		panic("mdc: current version missing from the version registry")
	}
	legal := make(map[omf.RecordType]bool, len(types))
	for _, rt := range types {
		legal[rt] = true
	}

	w := &Writer{
		version: cur,
		legal:   legal,
		buf:     append([]byte(nil), Magic...),
	}
	vr := omf.VersionRecord{Version: cur, WrittenBy: writtenBy}
	w.buf = appendFrame(w.buf, omf.TypeVersion, vr.Marshal())
	w.records = 1
	return w
}

// Version returns the MDC content version this writer stamps on the
// container, which is always omf.CurrentVersion().
func (w *Writer) Version() mdcver.Version {
	return w.version
}

// Records returns the number of records appended so far, including the
// leading version record.
func (w *Writer) Records() int {
	return w.records
}

// Append frames and appends one record payload. The record type must be
// legal at the container's version.
func (w *Writer) Append(rt omf.RecordType, payload []byte) error {
	if w.finished {
		return ErrWriterFinished
	}
	if !w.legal[rt] {
		return errors.Wrapf(ErrRecordType, "type %s at version %s", rt, w.version)
	}
	w.buf = appendFrame(w.buf, rt, payload)
	w.records++
	metricRecordsAppended.Inc()
	return nil
}

// Bytes finishes the container and returns its uncompressed contents.
// The writer cannot be appended to afterwards.
func (w *Writer) Bytes() []byte {
	w.finished = true
	return w.buf
}

// Dump finishes the container and writes its gzipped form to out.
func (w *Writer) Dump(out io.Writer) error {
	gw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		return err
	}
	if _, err := gw.Write(w.Bytes()); err != nil {
		return err
	}
	return gw.Close()
}

// Store finishes the container and stores its gzipped form in blob storage
// under name.
func (w *Writer) Store(ctx context.Context, st simpleblob.Interface, name string) error {
	var out bytes.Buffer
	if err := w.Dump(&out); err != nil {
		return errors.Wrap(err, "compress container")
	}
	if err := st.Store(ctx, name, out.Bytes()); err != nil {
		metricStoreFailed.Inc()
		return errors.Wrapf(err, "store container %q", name)
	}
	metricContainersStored.Inc()
	logrus.WithFields(logrus.Fields{
		"blob":    name,
		"records": w.records,
		"version": w.version,
	}).Debug("Stored metadata container")
	return nil
}
