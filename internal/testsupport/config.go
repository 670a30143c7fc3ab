package testsupport

import (
	"path/filepath"
	"testing"

	"tablehash/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp data directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDateOnly toggles date-only temporal canonicalization on the test config.
func WithDateOnly(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.DateOnly = enabled
	}
}

// WithStoreHistory toggles fingerprint history recording on the test config.
func WithStoreHistory(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.StoreHistory = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
