// Package config provides configuration management for the pageseg command.
package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tsawler/pageseg/layout"
)

// Config holds all configuration settings for the pageseg command.
// Configuration precedence: CLI flags > Environment variables > Config file > Defaults
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// LogFormat is the log encoding, "console" or "json"
	LogFormat string

	// LogFile is an optional file receiving a copy of the log
	LogFile string

	// Format is the output encoding of region trees, "yaml" or "json"
	Format string

	// Workers is the number of pages segmented concurrently
	Workers int

	// PageTimeout bounds the time spent on one page (0 = no limit)
	PageTimeout time.Duration

	// Segmenter holds the segmentation thresholds
	Segmenter layout.SegmenterConfig
}

// Load reads configuration from multiple sources and returns a Config instance.
// Flags bound to v by the caller take precedence; v may be nil.
func Load(configFile string, v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errors.Wrap(err, "error reading config file")
		}
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".pageseg")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	v.SetEnvPrefix("PAGESEG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	config := &Config{
		LogLevel:    v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
		LogFile:     v.GetString("log-file"),
		Format:      v.GetString("format"),
		Workers:     v.GetInt("workers"),
		PageTimeout: v.GetDuration("page-timeout"),
		Segmenter: layout.SegmenterConfig{
			WhitespaceCount:            v.GetInt("segmenter.whitespace-count"),
			WhitespaceMinWidth:         v.GetFloat64("segmenter.whitespace-min-width"),
			WhitespaceMinHeight:        v.GetFloat64("segmenter.whitespace-min-height"),
			MaxTouchingObstacles:       v.GetInt("segmenter.max-touching-obstacles"),
			ObstacleOverlapRatio:       v.GetFloat64("segmenter.obstacle-overlap-ratio"),
			CandidateOverlapRatio:      v.GetFloat64("segmenter.candidate-overlap-ratio"),
			WhitespaceOverlapTolerance: v.GetFloat64("segmenter.whitespace-overlap-tolerance"),
			MaxQueueSize:               v.GetInt("segmenter.max-queue-size"),
			MaxIterations:              v.GetInt("segmenter.max-iterations"),
			ThinSideMargin:             v.GetFloat64("segmenter.thin-side-margin"),
			ThinSideLimit:              v.GetInt("segmenter.thin-side-limit"),
			LocalHeightRatio:           v.GetFloat64("segmenter.local-height-ratio"),
			ColumnGapMinWidth:          v.GetFloat64("segmenter.column-gap-min-width"),
			ColumnGapMinHeight:         v.GetFloat64("segmenter.column-gap-min-height"),
			SeparatorSpanRatio:         v.GetFloat64("segmenter.separator-span-ratio"),
			SeparatorAspectRatio:       v.GetFloat64("segmenter.separator-aspect-ratio"),
			ContainerMargin:            v.GetFloat64("segmenter.container-margin"),
			ContainerInsideRatio:       v.GetFloat64("segmenter.container-inside-ratio"),
			ContainerOutsideRatio:      v.GetFloat64("segmenter.container-outside-ratio"),
			SmallGraphicRatio:          v.GetFloat64("segmenter.small-graphic-ratio"),
			MergeDistance:              v.GetFloat64("segmenter.merge-distance"),
			MaxDepth:                   v.GetInt("segmenter.max-depth"),
			BlockHorizontalGap:         v.GetFloat64("segmenter.block-horizontal-gap"),
			BlockVerticalGap:           v.GetFloat64("segmenter.block-vertical-gap"),
			BlockScanStep:              v.GetFloat64("segmenter.block-scan-step"),
			CellSize:                   v.GetFloat64("segmenter.cell-size"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-file", "")
	v.SetDefault("format", "yaml")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("page-timeout", 0*time.Second)

	d := layout.DefaultSegmenterConfig()
	v.SetDefault("segmenter.whitespace-count", d.WhitespaceCount)
	v.SetDefault("segmenter.whitespace-min-width", d.WhitespaceMinWidth)
	v.SetDefault("segmenter.whitespace-min-height", d.WhitespaceMinHeight)
	v.SetDefault("segmenter.max-touching-obstacles", d.MaxTouchingObstacles)
	v.SetDefault("segmenter.obstacle-overlap-ratio", d.ObstacleOverlapRatio)
	v.SetDefault("segmenter.candidate-overlap-ratio", d.CandidateOverlapRatio)
	v.SetDefault("segmenter.whitespace-overlap-tolerance", d.WhitespaceOverlapTolerance)
	v.SetDefault("segmenter.max-queue-size", d.MaxQueueSize)
	v.SetDefault("segmenter.max-iterations", d.MaxIterations)
	v.SetDefault("segmenter.thin-side-margin", d.ThinSideMargin)
	v.SetDefault("segmenter.thin-side-limit", d.ThinSideLimit)
	v.SetDefault("segmenter.local-height-ratio", d.LocalHeightRatio)
	v.SetDefault("segmenter.column-gap-min-width", d.ColumnGapMinWidth)
	v.SetDefault("segmenter.column-gap-min-height", d.ColumnGapMinHeight)
	v.SetDefault("segmenter.separator-span-ratio", d.SeparatorSpanRatio)
	v.SetDefault("segmenter.separator-aspect-ratio", d.SeparatorAspectRatio)
	v.SetDefault("segmenter.container-margin", d.ContainerMargin)
	v.SetDefault("segmenter.container-inside-ratio", d.ContainerInsideRatio)
	v.SetDefault("segmenter.container-outside-ratio", d.ContainerOutsideRatio)
	v.SetDefault("segmenter.small-graphic-ratio", d.SmallGraphicRatio)
	v.SetDefault("segmenter.merge-distance", d.MergeDistance)
	v.SetDefault("segmenter.max-depth", d.MaxDepth)
	v.SetDefault("segmenter.block-horizontal-gap", d.BlockHorizontalGap)
	v.SetDefault("segmenter.block-vertical-gap", d.BlockVerticalGap)
	v.SetDefault("segmenter.block-scan-step", d.BlockScanStep)
	v.SetDefault("segmenter.cell-size", d.CellSize)
}

// Validate checks that the configuration is valid and internally consistent
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.Errorf("invalid log-level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.Errorf("invalid log-format %q, must be console or json", c.LogFormat)
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format != "yaml" && c.Format != "json" {
		return errors.Errorf("invalid format %q, must be yaml or json", c.Format)
	}

	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.PageTimeout < 0 {
		return errors.Errorf("page-timeout must not be negative, got %s", c.PageTimeout)
	}

	if err := c.Segmenter.Validate(); err != nil {
		return errors.Wrap(err, "invalid segmenter configuration")
	}

	return nil
}
