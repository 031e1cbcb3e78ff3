package omf

import (
	"fmt"

	"github.com/CrowdStrike/csproto"
)

// ErrUnexpectedWireType is returned when a known field number carries the
// wrong protobuf wire type.
type ErrUnexpectedWireType struct {
	Tag         int
	WireType    csproto.WireType
	ExpWireType csproto.WireType
}

func (e ErrUnexpectedWireType) Error() string {
	return fmt.Sprintf("unexpected wiretype for tag %d: got %v, expected %v",
		e.Tag, e.WireType, e.ExpWireType)
}

func expectWT(tag int, got, exp csproto.WireType) error {
	if got != exp {
		return ErrUnexpectedWireType{
			Tag:         tag,
			WireType:    got,
			ExpWireType: exp,
		}
	}
	return nil
}

func getUInt32(d *csproto.Decoder, tag int, wireType csproto.WireType) (uint32, error) {
	if err := expectWT(tag, wireType, csproto.WireTypeVarint); err != nil {
		return 0, err
	}
	return d.DecodeUInt32()
}

func getUInt64(d *csproto.Decoder, tag int, wireType csproto.WireType) (uint64, error) {
	if err := expectWT(tag, wireType, csproto.WireTypeVarint); err != nil {
		return 0, err
	}
	return d.DecodeUInt64()
}

func getBool(d *csproto.Decoder, tag int, wireType csproto.WireType) (bool, error) {
	if err := expectWT(tag, wireType, csproto.WireTypeVarint); err != nil {
		return false, err
	}
	return d.DecodeBool()
}

func getBytes(d *csproto.Decoder, tag int, wireType csproto.WireType) ([]byte, error) {
	if err := expectWT(tag, wireType, csproto.WireTypeLengthDelimited); err != nil {
		return nil, err
	}
	val, err := d.DecodeBytes()
	if err != nil {
		return nil, err
	}
	n := len(val)
	return val[0:n:n], nil
}

func getString(d *csproto.Decoder, tag int, wireType csproto.WireType) (string, error) {
	if err := expectWT(tag, wireType, csproto.WireTypeLengthDelimited); err != nil {
		return "", err
	}
	return d.DecodeString()
}
