package pool

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/PowerDNS/simpleblob"
	"github.com/PowerDNS/simpleblob/backends/memory"
	"github.com/c2h5oh/datasize"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpxstore/mdckit/config"
	"github.com/mpxstore/mdckit/mdc"
	"github.com/mpxstore/mdckit/mdcver"
	"github.com/mpxstore/mdckit/omf"
)

func testPoolConfig(name string) omf.PoolConfigRecord {
	return omf.PoolConfigRecord{
		PoolID:      uuid.MustParse("11f8ab7a-42f8-483a-b93f-5d816bc1b224"),
		Name:        name,
		MDCCapacity: 64 * datasize.MB,
	}
}

func TestCreateOpen(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	p := New("pool1", st)

	blob, err := p.Create(ctx, testPoolConfig("pool1"), "test 1.2.3")
	require.NoError(t, err)
	assert.Contains(t, blob, "pool1__mdc0__")

	// Creating again must fail
	_, err = p.Create(ctx, testPoolConfig("pool1"), "test 1.2.3")
	assert.ErrorIs(t, err, ErrExists)

	info, err := p.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, blob, info.Blob)
	assert.Equal(t, omf.CurrentVersion(), info.Version)
	assert.Equal(t, mdc.CompatExact, info.Compat)
	assert.NotEmpty(t, info.Comment)
	assert.Equal(t, "test 1.2.3", info.WrittenBy)
	assert.Equal(t, testPoolConfig("pool1"), info.Config)
}

func TestOpenMissing(t *testing.T) {
	ctx := context.Background()
	p := New("nosuch", memory.New())
	_, err := p.Open(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotExist(err))
}

func TestScanSkipsForeignBlobs(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	p := New("pool1", st)

	_, err := p.Create(ctx, testPoolConfig("pool1"), "")
	require.NoError(t, err)
	require.NoError(t, st.Store(ctx, "pool1__garbage", []byte("x")))

	nis, err := p.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, nis, 1)
	assert.Equal(t, 0, nis[0].Index)
}

func TestListPools(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	for _, name := range []string{"b-pool", "a-pool"} {
		_, err := New(name, st).Create(ctx, testPoolConfig(name), "")
		require.NoError(t, err)
	}
	pools, err := ListPools(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-pool", "b-pool"}, pools)
}

// storeFutureMDC0 stores a hand-framed container written at a version this
// binary does not know, following the documented container layout.
func storeFutureMDC0(t *testing.T, st simpleblob.Interface, poolName string) {
	t.Helper()

	payload := (&omf.VersionRecord{
		Version:   mdcver.New(99, 0, 0, 0),
		WrittenBy: "future-release",
	}).Marshal()

	raw := append([]byte(nil), mdc.Magic...)
	var hdr [mdc.FrameHeaderSize]byte
	hdr[mdc.TypeOffset] = byte(omf.TypeVersion)
	binary.BigEndian.PutUint32(hdr[mdc.LengthOffset:], uint32(len(payload)))
	binary.BigEndian.PutUint64(hdr[mdc.ChecksumOffset:], xxhash.Sum64(payload))
	raw = append(raw, hdr[:]...)
	raw = append(raw, payload...)

	var out bytes.Buffer
	gw := gzip.NewWriter(&out)
	_, err := gw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	name := poolName + "__mdc0__20990101-000000-000000000.omf.gz"
	require.NoError(t, st.Store(context.Background(), name, out.Bytes()))
}

func TestOpenUnknownVersion(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	storeFutureMDC0(t, st, "newpool")

	info, err := New("newpool", st).Open(ctx)
	require.NoError(t, err) // detection, not policy
	assert.Equal(t, mdc.CompatUnknown, info.Compat)
	assert.Equal(t, mdcver.New(99, 0, 0, 0), info.Version)
	assert.Empty(t, info.Comment)
	assert.Equal(t, "future-release", info.WrittenBy)
	assert.Equal(t, omf.PoolConfigRecord{}, info.Config)
}

func TestVerifierSweep(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, err := New("pool1", st).Create(ctx, testPoolConfig("pool1"), "")
	require.NoError(t, err)
	storeFutureMDC0(t, st, "pool2")
	require.NoError(t, st.Store(ctx, "pool3__mdc0__20240101-000000-000000000.omf.gz", []byte("not gzip")))

	v := NewVerifier(st, config.Verifier{Interval: config.DefaultVerifierInterval})
	stats, err := v.Sweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Pools)
	assert.Equal(t, 2, stats.Containers)
	assert.Equal(t, 1, stats.Exact)
	assert.Equal(t, 0, stats.OlderKnown)
	assert.Equal(t, 1, stats.Unknown)
	assert.Equal(t, 1, stats.Corrupt)
	assert.False(t, v.LastSweep().IsZero())
}

func TestVerifierSweepRestricted(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, err := New("pool1", st).Create(ctx, testPoolConfig("pool1"), "")
	require.NoError(t, err)
	storeFutureMDC0(t, st, "pool2")

	v := NewVerifier(st, config.Verifier{
		Interval: config.DefaultVerifierInterval,
		Pools:    []string{"pool1"},
	})
	stats, err := v.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pools)
	assert.Equal(t, 0, stats.Unknown)
}
