package omf

import (
	"github.com/CrowdStrike/csproto"
)

// Protobuf field numbers of the media class record
const (
	FieldMediaClassClass   = 1
	FieldMediaClassSpare   = 2
	FieldMediaClassPercent = 3
)

// MediaClassRecord is the payload of the TypeMediaClassConfig and
// TypeMediaClassSpare records. For a spare record, Spare is true and
// Percent holds the spare percentage of the class.
type MediaClassRecord struct {
	Class   uint32
	Spare   bool
	Percent uint32
}

func (r *MediaClassRecord) Marshal() []byte {
	b := make([]byte, 30)
	offset := 0

	if r.Class > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldMediaClassClass, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], uint64(r.Class))
	}
	if r.Spare {
		offset += csproto.EncodeTag(b[offset:], FieldMediaClassSpare, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], 1)
	}
	if r.Percent > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldMediaClassPercent, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], uint64(r.Percent))
	}

	return b[:offset]
}

func (r *MediaClassRecord) Unmarshal(data []byte) error {
	d := csproto.NewDecoder(data)
	d.SetMode(csproto.DecoderModeFast)
	for d.More() {
		tag, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch tag {
		case FieldMediaClassClass:
			r.Class, err = getUInt32(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldMediaClassSpare:
			r.Spare, err = getBool(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldMediaClassPercent:
			r.Percent, err = getUInt32(d, tag, wireType)
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
