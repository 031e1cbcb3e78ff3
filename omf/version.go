package omf

import (
	"github.com/CrowdStrike/csproto"

	"github.com/mpxstore/mdckit/mdcver"
)

// Protobuf field numbers of the version record
const (
	FieldVersionMajor     = 1
	FieldVersionMinor     = 2
	FieldVersionPatch     = 3
	FieldVersionDev       = 4
	FieldVersionWrittenBy = 5
)

// VersionRecord is the payload of the TypeVersion record, always the first
// record of a container. WrittenBy is the binary version string of the
// writer, for diagnostics only; compatibility decisions are made on Version
// alone.
type VersionRecord struct {
	Version   mdcver.Version
	WrittenBy string
}

func (r *VersionRecord) Marshal() []byte {
	// 4 varint components plus tag bytes fit well within this
	b := make([]byte, 50+len(r.WrittenBy))
	offset := 0

	components := []struct {
		tag int
		val uint16
	}{
		{FieldVersionMajor, r.Version.Major},
		{FieldVersionMinor, r.Version.Minor},
		{FieldVersionPatch, r.Version.Patch},
		{FieldVersionDev, r.Version.Dev},
	}
	for _, c := range components {
		if c.val == 0 {
			continue
		}
		offset += csproto.EncodeTag(b[offset:], c.tag, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], uint64(c.val))
	}
	if len(r.WrittenBy) > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldVersionWrittenBy, csproto.WireTypeLengthDelimited)
		offset += csproto.EncodeVarint(b[offset:], uint64(len(r.WrittenBy)))
		offset += copy(b[offset:], r.WrittenBy)
	}

	return b[:offset]
}

func (r *VersionRecord) Unmarshal(data []byte) error {
	d := csproto.NewDecoder(data)
	d.SetMode(csproto.DecoderModeFast)
	for d.More() {
		tag, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch tag {
		case FieldVersionMajor, FieldVersionMinor, FieldVersionPatch, FieldVersionDev:
			val, err := getUInt32(d, tag, wireType)
			if err != nil {
				return err
			}
			switch tag {
			case FieldVersionMajor:
				r.Version.Major = uint16(val)
			case FieldVersionMinor:
				r.Version.Minor = uint16(val)
			case FieldVersionPatch:
				r.Version.Patch = uint16(val)
			case FieldVersionDev:
				r.Version.Dev = uint16(val)
			}
		case FieldVersionWrittenBy:
			r.WrittenBy, err = getString(d, tag, wireType)
			if err != nil {
				return err
			}
		default:
			if _, err := d.Skip(tag, wireType); err != nil {
				return err
			}
		}
	}
	return nil
}
