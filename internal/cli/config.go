package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not
// given.
const DefaultConfigFile = ".jscan.yaml"

// Config holds defaults for command flags. Flags given on the command line
// take precedence.
type Config struct {
	Mode          string `yaml:"mode"`
	Output        string `yaml:"output"`
	InputFormat   string `yaml:"inputFormat"`
	Lang          string `yaml:"lang"`
	DuplicateKeys string `yaml:"duplicateKeys"`
	MaxDepth      int    `yaml:"maxDepth"`
	MaxBytes      int64  `yaml:"maxBytes"`
	Concurrency   int    `yaml:"concurrency"`
	FailOnIssues  bool   `yaml:"failOnIssues"`
}

// LoadConfig reads path, or DefaultConfigFile when path is empty. A missing
// default file yields the zero Config; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
