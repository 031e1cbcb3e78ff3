package omf

import (
	"github.com/CrowdStrike/csproto"
	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Protobuf field numbers of the pool config record
const (
	FieldPoolConfigPoolID      = 1
	FieldPoolConfigName        = 2
	FieldPoolConfigLabel       = 3
	FieldPoolConfigMDCCapacity = 4
)

// PoolConfigRecord is the payload of the TypePoolConfig record, written
// once into MDC0 when a pool is created.
type PoolConfigRecord struct {
	PoolID      uuid.UUID
	Name        string
	Label       string
	MDCCapacity datasize.ByteSize
}

func (r *PoolConfigRecord) Marshal() []byte {
	b := make([]byte, 60+len(r.Name)+len(r.Label))
	offset := 0

	if r.PoolID != uuid.Nil {
		offset += csproto.EncodeTag(b[offset:], FieldPoolConfigPoolID, csproto.WireTypeLengthDelimited)
		offset += csproto.EncodeVarint(b[offset:], uint64(len(r.PoolID)))
		offset += copy(b[offset:], r.PoolID[:])
	}
	stringFields := []struct {
		tag int
		val string
	}{
		{FieldPoolConfigName, r.Name},
		{FieldPoolConfigLabel, r.Label},
	}
	for _, sf := range stringFields {
		if len(sf.val) > 0 {
			offset += csproto.EncodeTag(b[offset:], sf.tag, csproto.WireTypeLengthDelimited)
			offset += csproto.EncodeVarint(b[offset:], uint64(len(sf.val)))
			offset += copy(b[offset:], sf.val)
		}
	}
	if r.MDCCapacity > 0 {
		offset += csproto.EncodeTag(b[offset:], FieldPoolConfigMDCCapacity, csproto.WireTypeVarint)
		offset += csproto.EncodeVarint(b[offset:], uint64(r.MDCCapacity))
	}

	return b[:offset]
}

func (r *PoolConfigRecord) Unmarshal(data []byte) error {
	d := csproto.NewDecoder(data)
	d.SetMode(csproto.DecoderModeFast)
	for d.More() {
		tag, wireType, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch tag {
		case FieldPoolConfigPoolID:
			val, err := getBytes(d, tag, wireType)
			if err != nil {
				return err
			}
			if len(val) != 16 {
				return errors.Errorf("pool config: pool_id must be 16 bytes, got %d", len(val))
			}
			copy(r.PoolID[:], val)
		case FieldPoolConfigName:
			r.Name, err = getString(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldPoolConfigLabel:
			r.Label, err = getString(d, tag, wireType)
			if err != nil {
				return err
			}
		case FieldPoolConfigMDCCapacity:
			val, err := getUInt64(d, tag, wireType)
			if err != nil {
				return err
			}
			r.MDCCapacity = datasize.ByteSize(val)
		default:
			if _, err := d.Skip(tag, wireType); err != nil {
				return err
			}
		}
	}
	return nil
}
