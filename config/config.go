// Package config implements the YAML config file parser
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/mpxstore/mdckit/config/logger"
)

// DefaultVerifierInterval is the default interval between verification
// sweeps over the pool containers in storage.
const DefaultVerifierInterval = time.Minute

// DefaultMDCCapacity is the default capacity reserved for a new metadata
// container.
const DefaultMDCCapacity = 64 * datasize.MB

// Config is the config root object
type Config struct {
	Storage  Storage       `yaml:"storage"`
	Pool     Pool          `yaml:"pool"`
	Verifier Verifier      `yaml:"verifier"`
	HTTP     HTTP          `yaml:"http"`
	Log      logger.Config `yaml:"log"`

	// Set to current version by main
	Version string `yaml:"-"`
}

// Storage selects and configures a simpleblob storage backend holding the
// pool metadata containers.
type Storage struct {
	Type    string                 `yaml:"type"`
	Options map[string]interface{} `yaml:"options"`
}

// Pool holds defaults applied when creating new pools.
type Pool struct {
	MDCCapacity datasize.ByteSize `yaml:"mdc_capacity"`
}

// Verifier configures the periodic compatibility sweep.
type Verifier struct {
	Interval time.Duration `yaml:"interval"`
	// Pools restricts the sweep to the listed pools. Empty means all pools
	// found in storage.
	Pools []string `yaml:"pools"`
}

// HTTP configures the HTTP server with Prometheus metrics and status page
type HTTP struct {
	Address string `yaml:"address"` // Address like ":8500"
}

// Check validates a Config instance
func (c Config) Check() error {
	if err := c.Log.Check(); err != nil {
		return err
	}
	if c.Storage.Type == "" {
		return fmt.Errorf("storage.type: no backend configured")
	}
	if c.Verifier.Interval < 100*time.Millisecond {
		return fmt.Errorf("verifier.interval: too short interval")
	}
	if c.Pool.MDCCapacity < datasize.MB {
		return fmt.Errorf("pool.mdc_capacity: must be at least 1MB")
	}
	if c.HTTP.Address != "" {
		if _, _, err := net.SplitHostPort(c.HTTP.Address); err != nil {
			return fmt.Errorf("http.address: %v", err)
		}
	}
	return nil
}

// String returns the config as a YAML string.
func (c Config) String() string {
	y, err := yaml.Marshal(c)
	if err != nil {
		logrus.Panicf("YAML marshal of config failed: %v", err) // Should never happen
	}
	return string(y)
}

// LoadYAML loads config from YAML. Any set value overwrites any existing
// value, but omitted keys are untouched.
func (c *Config) LoadYAML(yamlContents []byte, expandEnv bool) error {
	if expandEnv {
		yamlContents = []byte(os.ExpandEnv(string(yamlContents)))
	}
	return yaml.UnmarshalStrict(yamlContents, c)
}

// LoadYAMLFile loads config from a YAML file. Any set value overwrites any
// existing value, but omitted keys are untouched.
func (c *Config) LoadYAMLFile(fpath string, expandEnv bool) error {
	contents, err := os.ReadFile(fpath)
	if err != nil {
		return errors.Wrap(err, "open yaml file")
	}
	return c.LoadYAML(contents, expandEnv)
}

// Default returns a Config with default settings
func Default() Config {
	return Config{
		Storage: Storage{
			Type: "memory",
		},
		Pool: Pool{
			MDCCapacity: DefaultMDCCapacity,
		},
		Verifier: Verifier{
			Interval: DefaultVerifierInterval,
		},
		Log: logger.DefaultConfig,
	}
}
