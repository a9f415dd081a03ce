package config

const (
	defaultLockDirFallback = "~/.local/state/nex/locks"
	defaultPreviewLimit    = 5
	defaultChunkSizeKiB    = 64
	maxChunkSizeKiB        = 64 * 1024
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
)

var defaultScriptExtensions = []string{"py"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	scripts := make([]string, len(defaultScriptExtensions))
	copy(scripts, defaultScriptExtensions)
	return Config{
		Paths: Paths{
			LockDir: defaultLockDir(),
		},
		Organize: Organize{
			ProjectDetection: true,
			ScriptExtensions: scripts,
			PreviewLimit:     defaultPreviewLimit,
		},
		Duplicates: Duplicates{
			ChunkSizeKiB: defaultChunkSizeKiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
