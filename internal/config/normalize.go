package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLoader()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	expanded, err := ExpandPath(c.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.DataDir = expanded
	return nil
}

func (c *Config) normalizeLoader() {
	if c.Loader.CSVSampleBytes <= 0 {
		c.Loader.CSVSampleBytes = defaultCSVSampleBytes
	}
	if c.Loader.DecimalSampleRows <= 0 {
		c.Loader.DecimalSampleRows = defaultDecimalSampleRows
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
