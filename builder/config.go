package builder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"omibyte.io/svdgen/generator"
)

// Config is the layout of a YAML configuration file. Generator options
// absent from the file keep their defaults.
type Config struct {
	Target    string            `yaml:"target"`
	Jobs      int               `yaml:"jobs"`
	Output    string            `yaml:"output"`
	Generator generator.Options `yaml:"generator"`
}

func DefaultConfig() Config {
	return Config{Generator: generator.DefaultOptions()}
}

func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Apply copies the configuration into opts.
func (c Config) Apply(opts Options) Options {
	opts.Generator = c.Generator
	if len(c.Target) > 0 {
		opts.Target = c.Target
	}
	if c.Jobs > 0 {
		opts.NumJobs = c.Jobs
	}
	if len(c.Output) > 0 {
		opts.Output = c.Output
	}
	return opts
}
