package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hephbuild/starconsole/internal/hconsole"
)

const (
	FileName      = ".starconsole.yml"
	LocalFileName = ".starconsole.local.yml"
)

type Config struct {
	Summary bool
	Sinks   []Sink
}

type Sink struct {
	Name    string
	Driver  string
	Enabled bool
	// Levels restricts the sink to these levels, all levels when empty.
	Levels  []hconsole.Level
	Options map[string]any
}

func (c Config) EnabledSinks() []Sink {
	var sinks []Sink
	for _, s := range c.Sinks {
		if s.Enabled {
			sinks = append(sinks, s)
		}
	}

	return sinks
}

func Default() Config {
	return Config{
		Sinks: []Sink{{
			Name:    "text",
			Driver:  "text",
			Enabled: true,
		}},
	}
}

// Load applies the config files found in root on top of the defaults. When
// path is set, it is the only file read and it must exist.
func Load(root, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		yamlCfg, err := ParseYAMLConfig(path)
		if err != nil {
			return cfg, err
		}

		return ApplyYAMLConfig(cfg, yamlCfg)
	}

	for _, p := range []string{FileName, LocalFileName} {
		yamlCfg, err := ParseYAMLConfig(filepath.Join(root, p))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return cfg, err
		}

		cfg, err = ApplyYAMLConfig(cfg, yamlCfg)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
