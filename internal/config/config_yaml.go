package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/hephbuild/starconsole/internal/hconsole"
)

type YAMLConfig struct {
	Summary *bool            `yaml:"summary"`
	Sinks   []YAMLConfigSink `yaml:"sinks"`
}

type YAMLConfigSink struct {
	Name    string         `yaml:"name"`
	Driver  string         `yaml:"driver"`
	Enabled *bool          `yaml:"enabled"`
	Levels  []string       `yaml:"levels"`
	Options map[string]any `yaml:"options,omitempty"`
}

func ParseYAMLConfig(filepath string) (YAMLConfig, error) {
	b, err := os.ReadFile(filepath)
	if err != nil {
		return YAMLConfig{}, err
	}

	var cfg YAMLConfig
	err = yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict())
	if err != nil {
		return YAMLConfig{}, fmt.Errorf("%v: %w", filepath, err)
	}

	return cfg, nil
}

func ApplyYAMLConfig(cfg Config, inc YAMLConfig) (Config, error) {
	if inc.Summary != nil {
		cfg.Summary = *inc.Summary
	}

	for _, incs := range inc.Sinks {
		if incs.Name == "" {
			return Config{}, fmt.Errorf("sink: name is required")
		}

		i := slices.IndexFunc(cfg.Sinks, func(s Sink) bool {
			return s.Name == incs.Name
		})

		if i < 0 {
			cfg.Sinks = append(cfg.Sinks, Sink{
				Name:    incs.Name,
				Driver:  incs.Name,
				Enabled: true,
			})
			i = len(cfg.Sinks) - 1
		}

		s := cfg.Sinks[i]
		if incs.Driver != "" {
			s.Driver = incs.Driver
		}
		if incs.Enabled != nil {
			s.Enabled = *incs.Enabled
		}
		if incs.Levels != nil {
			levels := make([]hconsole.Level, 0, len(incs.Levels))
			for _, name := range incs.Levels {
				level, err := hconsole.ParseLevel(name)
				if err != nil {
					return Config{}, fmt.Errorf("sink %v: %w", incs.Name, err)
				}
				levels = append(levels, level)
			}
			s.Levels = levels
		}
		if incs.Options != nil {
			options := make(map[string]any, len(s.Options)+len(incs.Options))
			maps.Copy(options, s.Options)
			maps.Copy(options, incs.Options)
			s.Options = options
		}
		cfg.Sinks[i] = s
	}

	return cfg, nil
}
