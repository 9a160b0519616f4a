package cli

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config stores the options for generating one group.
type Config struct {
	// Group is the package pattern or directory of the group to
	// defunctionalize.
	Group string
	// Out is the output file path. The output package must differ from the
	// group package, since the dispatch operation calls into the group.
	Out string
	// Package is the output package name; derived from the output
	// directory when empty.
	Package string
	// Signature overrides the group's //defunc:signature directive.
	Signature string
	// Name overrides the union type name; used verbatim.
	Name string
	// DryRun prints the generated code instead of writing it.
	DryRun bool
}

// OutputFilename returns the destination file path for the generator layer.
func (c *Config) OutputFilename() string {
	return c.Out
}

// OutputPackage returns the output package name for the generator layer.
func (c *Config) OutputPackage() string {
	return c.Package
}

// normalize fills derived defaults and validates required options.
func (c *Config) normalize() error {
	if c.Group == "" {
		return errors.New("--group is required")
	}
	if c.Out == "" {
		return errors.New("--out is required")
	}
	if c.Package == "" {
		base := filepath.Base(filepath.Dir(c.Out))
		if base == "." || base == string(filepath.Separator) {
			return errors.Errorf("cannot derive the output package name from %q, use --package", c.Out)
		}
		c.Package = base
	}
	return nil
}

// FileConfig is the YAML batch file listing several groups to generate.
type FileConfig struct {
	Groups []GroupConfig `yaml:"groups"`
}

// GroupConfig mirrors the per-group flags in the batch file.
type GroupConfig struct {
	Group     string `yaml:"group"`
	Out       string `yaml:"out"`
	Package   string `yaml:"package"`
	Signature string `yaml:"signature"`
	Name      string `yaml:"name"`
}

func (gc GroupConfig) toConfig(dryRun bool) *Config {
	return &Config{
		Group:     gc.Group,
		Out:       gc.Out,
		Package:   gc.Package,
		Signature: gc.Signature,
		Name:      gc.Name,
		DryRun:    dryRun,
	}
}

// LoadConfigFile reads a YAML batch file. Unknown keys are rejected so typos
// fail loudly.
func LoadConfigFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if len(fc.Groups) == 0 {
		return nil, errors.Errorf("config %s lists no groups", path)
	}
	return &fc, nil
}
