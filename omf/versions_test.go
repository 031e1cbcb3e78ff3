package omf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpxstore/mdckit/mdcver"
)

func TestCurrentVersion(t *testing.T) {
	cur := CurrentVersion()
	assert.Equal(t, versionTable[len(versionTable)-1].version, cur)

	// The current version must always be registered with a comment
	comment, ok := VersionComment(cur)
	require.True(t, ok)
	assert.NotEmpty(t, comment)

	// Every registered version is older than or equal to current
	for _, vi := range versionTable {
		assert.True(t, mdcver.Compare(vi.version, mdcver.LE, cur), vi.version)
	}
}

func TestVersionComment(t *testing.T) {
	comment, ok := VersionComment(mdcver.New(1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "Initial MDC content", comment)

	// A future version unknown to this binary must fail gracefully
	_, ok = VersionComment(mdcver.New(99, 0, 0, 0))
	assert.False(t, ok)
	_, ok = VersionComment(mdcver.New(1, 0, 0, 1))
	assert.False(t, ok)
}

func TestVersionTypes(t *testing.T) {
	types, ok := VersionTypes(CurrentVersion())
	require.True(t, ok)
	assert.Contains(t, types, TypeVersion)
	assert.Contains(t, types, TypePoolConfig)
	for _, rt := range types {
		assert.True(t, rt.Valid(), rt)
	}

	// Returned slice is a copy, mutating it must not affect the table
	types[0] = TypeInvalid
	again, ok := VersionTypes(CurrentVersion())
	require.True(t, ok)
	assert.True(t, again[0].Valid())

	_, ok = VersionTypes(mdcver.New(99, 0, 0, 0))
	assert.False(t, ok)
}

func TestVersionTableSorted(t *testing.T) {
	require.NotEmpty(t, versionTable)
	for i := 1; i < len(versionTable); i++ {
		assert.True(t, mdcver.Compare(
			versionTable[i-1].version, mdcver.LT, versionTable[i].version))
	}
	assert.NotPanics(t, func() { checkTable(versionTable) })
}

func TestCheckTableDefects(t *testing.T) {
	assert.Panics(t, func() { checkTable(nil) })

	// Duplicate entry
	assert.Panics(t, func() {
		checkTable([]versionInfo{
			{version: mdcver.New(1, 0, 0, 0)},
			{version: mdcver.New(1, 0, 0, 0)},
		})
	})

	// Entry appended out of order
	assert.Panics(t, func() {
		checkTable([]versionInfo{
			{version: mdcver.New(1, 0, 0, 1)},
			{version: mdcver.New(1, 0, 0, 0)},
		})
	})
}

func TestTableAfterFormatChange(t *testing.T) {
	// A release that changes the content semantics appends exactly one
	// entry with a strictly higher version, which then becomes current.
	tab := []versionInfo{
		{version: mdcver.New(1, 0, 0, 0), comment: "Initial MDC content"},
		{version: mdcver.New(1, 0, 0, 1), comment: "Media class enum change"},
	}
	checkTable(tab)

	cur := currentVersion(tab)
	assert.Equal(t, mdcver.New(1, 0, 0, 1), cur)
	assert.True(t, mdcver.Compare(mdcver.New(1, 0, 0, 0), mdcver.LT, cur))

	vi, ok := lookupVersion(tab, mdcver.New(1, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "Initial MDC content", vi.comment)

	_, ok = lookupVersion(tab, mdcver.New(1, 0, 1, 0))
	assert.False(t, ok)
}

func TestRecordTypeNames(t *testing.T) {
	assert.Equal(t, "version", TypeVersion.String())
	assert.Equal(t, "pool-config", TypePoolConfig.String())
	assert.Equal(t, "unknown", RecordType(200).String())
	assert.False(t, RecordType(200).Valid())
	assert.False(t, TypeInvalid.Valid())
}
