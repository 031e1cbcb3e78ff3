// Package mdc reads and writes pool metadata containers (MDCs): append-only
// logs of OMF records stored as compressed blobs. It owns the record
// framing, checksumming and the version check performed when a container is
// opened. Compatibility policy for containers written at an unknown format
// version stays with the caller; this package only detects.
package mdc

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/mpxstore/mdckit/omf"
)

var (
	ErrTooShort       = errors.New("container data too short")
	ErrBadMagic       = errors.New("not a metadata container")
	ErrChecksum       = errors.New("record checksum mismatch")
	ErrRecordType     = errors.New("record type not legal at container version")
	ErrNoVersion      = errors.New("container does not start with a version record")
	ErrWriterFinished = errors.New("writer already finished")
)

// Magic starts every uncompressed container.
var Magic = []byte{'M', 'D', 'C', 0x01}

const (
	// MagicSize is the length of the container magic.
	MagicSize = 4
	// FrameHeaderSize is the fixed size of a record frame header.
	FrameHeaderSize = 16
)

// Frame header offsets, relative to the start of the frame
const (
	TypeOffset     = 0 // 1 byte record type, 3 bytes reserved
	LengthOffset   = 4 // uint32 payload length
	ChecksumOffset = 8 // uint64 xxhash64 of the payload
)

// Record is one framed OMF record.
type Record struct {
	Type    omf.RecordType
	Payload []byte
}

// appendFrame appends a framed record to b and returns the extended slice.
func appendFrame(b []byte, rt omf.RecordType, payload []byte) []byte {
	var hdr [FrameHeaderSize]byte
	hdr[TypeOffset] = byte(rt)
	binary.BigEndian.PutUint32(hdr[LengthOffset:], uint32(len(payload)))
	binary.BigEndian.PutUint64(hdr[ChecksumOffset:], xxhash.Sum64(payload))
	b = append(b, hdr[:]...)
	return append(b, payload...)
}

// parseFrame parses one frame at the start of data and returns the record
// and the remaining data. The payload slice aliases data.
func parseFrame(data []byte) (rec Record, rest []byte, err error) {
	if len(data) < FrameHeaderSize {
		return rec, nil, ErrTooShort
	}
	length := binary.BigEndian.Uint32(data[LengthOffset:])
	end := FrameHeaderSize + int(length)
	if len(data) < end {
		return rec, nil, ErrTooShort
	}
	payload := data[FrameHeaderSize:end]
	sum := binary.BigEndian.Uint64(data[ChecksumOffset:])
	if xxhash.Sum64(payload) != sum {
		return rec, nil, ErrChecksum
	}
	rec = Record{
		Type:    omf.RecordType(data[TypeOffset]),
		Payload: payload,
	}
	return rec, data[end:], nil
}
