package utils

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of a computation.
// Both config.yaml and config.json are accepted (JSON is valid YAML).
type Config struct {
	C         float64 `yaml:"C"`         // Damping factor
	Threshold float64 `yaml:"Threshold"` // Largest rank change of a converged sweep
	Samples   int     `yaml:"Samples"`   // Pages visited by the random surfers
	Walkers   int     `yaml:"Walkers"`   // Independent random surfers
	Graph     string  `yaml:"Graph"`     // Corpus directory, edge list file or URL
	Output    string  `yaml:"Output"`    // Output file (stdout when empty)
}

var configFiles = []string{"config.yaml", "config.yml", "config.json"}

func DefaultConfig() Config {
	return Config{
		C:         0.85,
		Threshold: 1e-4,
		Samples:   10000,
		Walkers:   1,
	}
}

// LoadConfiguration reads the configuration at path or, when path is empty,
// the first of config.yaml, config.yml and config.json in the working
// directory. Missing keys keep their default value.
func LoadConfiguration(path string) (config Config, err error) {
	if path == "" {
		for _, candidate := range configFiles {
			if _, err = os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return config, fmt.Errorf("no configuration file found: %w", os.ErrNotExist)
		}
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read: %w", err)
	}
	config = DefaultConfig()
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return config, fmt.Errorf("parse: %w", err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if !(c.C > 0 && c.C < 1) {
		errs = append(errs, fmt.Errorf("C must be in (0, 1), got %v", c.C))
	}
	if !(c.Threshold > 0) {
		errs = append(errs, fmt.Errorf("Threshold must be positive, got %v", c.Threshold))
	}
	if c.Samples <= 0 {
		errs = append(errs, fmt.Errorf("Samples must be positive, got %d", c.Samples))
	}
	if c.Walkers <= 0 {
		errs = append(errs, fmt.Errorf("Walkers must be positive, got %d", c.Walkers))
	}
	return errors.Join(errs...)
}
