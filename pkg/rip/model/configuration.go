package model

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ConfigDirName is the subdirectory created under a base dir by
// EnsureDefaultConfigAt.
const ConfigDirName = "nocairip"

// ConfigFileName is the YAML file written/read under ConfigDirName.
const ConfigFileName = "config.yml"

// Configuration carries default resolution values plus operational knobs
// (parallelism, debug dumps) that have no place on the Job itself. The
// pipeline reads ChannelParallelism and DebugDumpDir; DefaultXDPI and
// DefaultYDPI are stored and round-tripped through config.yml but are not
// applied to a Job by the pipeline or the CLI.
type Configuration struct {
	Path string `yaml:"-"`

	CreationDate string `yaml:"created"`
	Version      string `yaml:"version"`

	DefaultXDPI int `yaml:"defaultXDPI"`
	DefaultYDPI int `yaml:"defaultYDPI"`

	// ChannelParallelism bounds how many of the 4 channels run their
	// Halftone->Promote->Pack passes concurrently. 0 means "all 4".
	ChannelParallelism int `yaml:"channelParallelism"`

	// DebugDumpDir, when non-empty, makes the pipeline write TIFF
	// snapshots of channel planes, masks and dot maps here.
	DebugDumpDir string `yaml:"debugDumpDir"`

	// StatusAddr is a localhost job-status HTTP address (e.g.
	// "127.0.0.1:8099"). It is stored in config.yml only: the CLI starts
	// the endpoint from its -status-addr flag and does not read this field.
	StatusAddr string `yaml:"statusAddr"`
}

const nocairipVersion = "1.0"

// NewDefaultConfiguration returns the built-in defaults.
func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CreationDate:       time.Now().Format("2006-01-02 15:04:05 MST"),
		Version:            nocairipVersion,
		DefaultXDPI:        600,
		DefaultYDPI:        600,
		ChannelParallelism: 4,
	}
}

// EnsureDefaultConfigAt writes a default config.yml under
// <baseConfigDir>/nocairip/config.yml if one doesn't already exist.
// If overwrite is true an existing file is replaced.
func EnsureDefaultConfigAt(baseConfigDir string, overwrite bool) error {
	dir := filepath.Join(baseConfigDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "ensure config dir")
	}

	path := filepath.Join(dir, ConfigFileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	conf := NewDefaultConfiguration()
	conf.Path = path
	return conf.Save(path)
}

// LoadConfiguration reads and parses a YAML configuration file.
func LoadConfiguration(path string) (*Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}

	var conf Configuration
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return nil, errors.Wrap(err, "parse configuration")
	}
	conf.Path = path
	return &conf, nil
}

// Save writes the configuration out as YAML.
func (c *Configuration) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal configuration")
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrap(err, "write configuration")
	}
	return nil
}
