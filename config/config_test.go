package config

import (
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Check())
}

func TestLoadYAML(t *testing.T) {
	c := Default()
	err := c.LoadYAML([]byte(`
storage:
  type: fs
  options:
    root_path: /tmp/mdc
verifier:
  interval: 30s
  pools: [pool1, pool2]
pool:
  mdc_capacity: 128MB
`), false)
	require.NoError(t, err)
	require.NoError(t, c.Check())

	assert.Equal(t, "fs", c.Storage.Type)
	assert.Equal(t, "/tmp/mdc", c.Storage.Options["root_path"])
	assert.Equal(t, 30*time.Second, c.Verifier.Interval)
	assert.Equal(t, []string{"pool1", "pool2"}, c.Verifier.Pools)
	assert.Equal(t, 128*datasize.MB, c.Pool.MDCCapacity)
}

func TestLoadYAMLStrict(t *testing.T) {
	c := Default()
	err := c.LoadYAML([]byte("no_such_key: true\n"), false)
	assert.Error(t, err)
}

func TestLoadYAMLExpandEnv(t *testing.T) {
	t.Setenv("TEST_MDC_STORAGE_TYPE", "memory")
	c := Default()
	err := c.LoadYAML([]byte("storage:\n  type: ${TEST_MDC_STORAGE_TYPE}\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Storage.Type)
}

func TestCheckErrors(t *testing.T) {
	c := Default()
	c.Storage.Type = ""
	assert.ErrorContains(t, c.Check(), "storage.type")

	c = Default()
	c.Verifier.Interval = time.Millisecond
	assert.ErrorContains(t, c.Check(), "verifier.interval")

	c = Default()
	c.Pool.MDCCapacity = datasize.KB
	assert.ErrorContains(t, c.Check(), "pool.mdc_capacity")

	c = Default()
	c.HTTP.Address = "no-port"
	assert.ErrorContains(t, c.Check(), "http.address")
}
