package omf

import (
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpxstore/mdckit/mdcver"
)

func TestVersionRecord(t *testing.T) {
	in := VersionRecord{
		Version:   mdcver.New(2, 10, 3, 1),
		WrittenBy: "mdckit-test",
	}
	data := in.Marshal()

	var out VersionRecord
	require.NoError(t, out.Unmarshal(data))
	assert.Equal(t, in, out)

	// Zero components are omitted on the wire and must decode as zero
	in = VersionRecord{Version: mdcver.New(1, 0, 0, 0)}
	out = VersionRecord{}
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, mdcver.New(1, 0, 0, 0), out.Version)
	assert.Empty(t, out.WrittenBy)
}

func TestVersionRecordGarbage(t *testing.T) {
	var out VersionRecord
	assert.Error(t, out.Unmarshal([]byte{0xff, 0xff, 0xff}))
}

func TestPoolConfigRecord(t *testing.T) {
	in := PoolConfigRecord{
		PoolID:      uuid.MustParse("e07708ae-9016-4468-9628-b46fd2f44a2d"),
		Name:        "pool1",
		Label:       "fast tier",
		MDCCapacity: 64 * datasize.MB,
	}
	var out PoolConfigRecord
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)
}

func TestPoolConfigRecordBadPoolID(t *testing.T) {
	// A truncated pool_id field must be rejected, not silently padded
	in := PoolConfigRecord{Name: "p"}
	data := in.Marshal()
	// tag 1, length-delimited, 3 bytes
	bad := append([]byte{0x0a, 0x03, 1, 2, 3}, data...)

	var out PoolConfigRecord
	assert.Error(t, out.Unmarshal(bad))
}

func TestMediaClassRecord(t *testing.T) {
	in := MediaClassRecord{Class: 2, Spare: true, Percent: 5}
	var out MediaClassRecord
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)
}

func TestObjectRecord(t *testing.T) {
	in := ObjectRecord{OID: 12345, Gen: 7, Data: []byte("object metadata")}
	var out ObjectRecord
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)

	// Delete records carry no data
	in = ObjectRecord{OID: 12345, Gen: 8}
	out = ObjectRecord{}
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)
}

func TestCheckpointRecord(t *testing.T) {
	in := CheckpointRecord{MinOID: 1 << 40}
	var out CheckpointRecord
	require.NoError(t, out.Unmarshal(in.Marshal()))
	assert.Equal(t, in, out)
}

func BenchmarkVersionRecordUnmarshal(b *testing.B) {
	data := (&VersionRecord{
		Version:   mdcver.New(1, 2, 3, 4),
		WrittenBy: "bench",
	}).Marshal()

	var r VersionRecord
	var err error
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r = VersionRecord{}
		err = r.Unmarshal(data)
	}
	b.StopTimer()
	assert.NoError(b, err)
	assert.Equal(b, mdcver.New(1, 2, 3, 4), r.Version)
}
