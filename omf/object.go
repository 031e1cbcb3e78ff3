package omf

import (
	"github.com/CrowdStrike/csproto"
)

// Protobuf field numbers of the object record
const (
	FieldObjectOID  = 1
	FieldObjectGen  = 2
	FieldObjectData = 3
)

// ObjectRecord is the payload of the TypeObjectCreate, TypeObjectUpdate,
// TypeObjectDelete and TypeObjectErase records. Delete and erase records
// carry no Data.
type ObjectRecord struct {
	OID  uint64
	Gen  uint32
	Data []byte
}

func (r *ObjectRecord) Marshal() []byte {
	b := make([]byte, 40+len(r.Data))
	offset := 0

	if r.OID > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldObjectOID, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], r.OID)
	}
	if r.Gen > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldObjectGen, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], uint64(r.Gen))
	}
	if len(r.Data) > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldObjectData, csproto.WireTypeLengthDelimited)
		offset += csproto.EncodeVarint(b[offset:], uint64(len(r.Data)))
		offset += copy(b[offset:], r.Data)
	}

	return b[:offset]
}

func (r *ObjectRecord) Unmarshal(data []byte) error {
	d := csproto.NewDecoder(data)
	d.SetMode(csproto.DecoderModeFast)
	for d.More() {
		tag, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch tag {
		case FieldObjectOID:
			r.OID, err = getUInt64(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldObjectGen:
			r.Gen, err = getUInt32(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldObjectData:
			r.Data, err = getBytes(d, tag, wireType)
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

// Protobuf field numbers of the object ID checkpoint record
const (
	FieldCheckpointMinOID = 1
)

// CheckpointRecord is the payload of the TypeObjectIDCheckpoint record.
// MinOID is the lowest object ID still live; records for lower IDs may be
// dropped during compaction.
type CheckpointRecord struct {
	MinOID uint64
}

func (r *CheckpointRecord) Marshal() []byte {
	b := make([]byte, 12)
	offset := 0
	if r.MinOID > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldCheckpointMinOID, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], r.MinOID)
	}
	return b[:offset]
}

func (r *CheckpointRecord) Unmarshal(data []byte) error {
	d := csproto.NewDecoder(data)
	d.SetMode(csproto.DecoderModeFast)
	for d.More() {
		tag, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch tag {
		case FieldCheckpointMinOID:
			r.MinOID, err = getUInt64(d, tag, wireType)
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
