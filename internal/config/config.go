package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

const (
	DefaultListenAddr  = "127.0.0.1:8060"
	DefaultTheme       = "clinical"
	DefaultExportWidth = 1200
)

type Config struct {
	RowHeight   int     `yaml:"row_height"`
	MaxChannels int     `yaml:"max_channels"`
	ByCategory  bool    `yaml:"by_category"`
	Theme       string  `yaml:"theme"`
	ListenAddr  string  `yaml:"listen_addr"`
	SampleRate  float64 `yaml:"sample_rate"`
	ExportWidth int     `yaml:"export_width"`
}

func DefaultConfig() *Config {
	return &Config{
		RowHeight:   layout.DefaultRowHeight,
		MaxChannels: layout.DefaultMaxRows,
		Theme:       DefaultTheme,
		ListenAddr:  DefaultListenAddr,
		SampleRate:  recording.DefaultSampleRate,
		ExportWidth: DefaultExportWidth,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LayoutOptions translates the config into planner options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		RowHeight:  c.RowHeight,
		MaxRows:    c.MaxChannels,
		ByCategory: c.ByCategory,
	}
}
