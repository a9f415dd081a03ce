package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateDuplicates(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		return errors.New("paths.lock_dir must be set")
	}
	return nil
}

func (c *Config) validateOrganize() error {
	for _, pattern := range c.Organize.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("organize.exclude: invalid glob pattern %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateDuplicates() error {
	if c.Duplicates.ChunkSizeKiB < 1 || c.Duplicates.ChunkSizeKiB > maxChunkSizeKiB {
		return fmt.Errorf("duplicates.chunk_size_kib: %d out of range (1-%d)", c.Duplicates.ChunkSizeKiB, maxChunkSizeKiB)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}
