// Package config loads and writes the .jacoscope.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the conventional config file location.
const DefaultPath = ".jacoscope.yaml"

// Config carries project-level settings. Every field has a working
// default; the file only needs to name what deviates.
type Config struct {
	// ReportName is the file name used by the recursive discovery tier.
	ReportName string `mapstructure:"reportName" yaml:"reportName,omitempty"`
	// ModuleReport is the report path probed under each target module.
	ModuleReport string `mapstructure:"moduleReport" yaml:"moduleReport,omitempty"`
	// RootReports are root-relative aggregate report paths in priority
	// order.
	RootReports []string `mapstructure:"rootReports" yaml:"rootReports,omitempty"`
	// StandardsFile is the document checked for a report-path directive.
	StandardsFile string `mapstructure:"standardsFile" yaml:"standardsFile,omitempty"`
	// Exclude holds extra class-exclusion regexps, layered on top of the
	// built-in noise patterns.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
	// Workers bounds the parse worker pool; 0 derives it from the CPU
	// count.
	Workers int `mapstructure:"workers" yaml:"workers,omitempty"`
	// HistoryPath is where recorded summaries are kept.
	HistoryPath string `mapstructure:"history" yaml:"history,omitempty"`
}

// Default returns the conventional Gradle-oriented configuration.
func Default() Config {
	return Config{
		ReportName:    "jacocoTestReport.xml",
		ModuleReport:  "build/reports/jacoco/test/jacocoTestReport.xml",
		RootReports:   []string{"build/reports/jacoco/root/jacocoRootReport.xml", "build/reports/jacoco/test/jacocoTestReport.xml", "target/site/jacoco/jacoco.xml"},
		StandardsFile: "TESTING_STANDARDS.md",
		HistoryPath:   ".jacoscope/history.json",
	}
}

// Loader reads config files from disk.
type Loader struct{}

// Exists reports whether a config file is present at path.
func (Loader) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the file at path over the defaults. Environment variables
// prefixed JACOSCOPE_ override file values.
func (Loader) Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("JACOSCOPE")
	v.AutomaticEnv()

	cfg := Default()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// otherwise.
func (l Loader) LoadOrDefault(path string) (Config, error) {
	exists, err := l.Exists(path)
	if err != nil {
		return Config{}, err
	}
	if !exists {
		return Default(), nil
	}
	return l.Load(path)
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("reportName", cfg.ReportName)
	v.SetDefault("moduleReport", cfg.ModuleReport)
	v.SetDefault("rootReports", cfg.RootReports)
	v.SetDefault("standardsFile", cfg.StandardsFile)
	v.SetDefault("exclude", cfg.Exclude)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("history", cfg.HistoryPath)
}

// Write emits a config file for the given settings.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
