package testsupport

import (
	"path/filepath"
	"testing"

	"nex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LockDir = filepath.Join(base, "locks")
	cfgVal.Paths.LogDir = ""

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

// WithExclusions sets the exclusion patterns on the test config.
func WithExclusions(patterns ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Exclude = append([]string(nil), patterns...)
	}
}

// WithoutProjectDetection disables project detection on the test config.
func WithoutProjectDetection() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.ProjectDetection = false
	}
}

// WithLogDir routes file logs into a temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}
